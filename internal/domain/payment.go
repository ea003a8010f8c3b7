package domain

// PaymentType описывает закрытый набор способов оплаты заказа.
type PaymentType string

const (
	// PaymentCash — оплата наличными при получении.
	PaymentCash PaymentType = "cash"
	// PaymentCard — оплата банковской картой.
	PaymentCard PaymentType = "card"
	// PaymentZD — оплата через ЗД (перевод).
	PaymentZD PaymentType = "zd"
)

// paymentCodes задаёт соответствие внешних числовых кодов типам оплаты.
var paymentCodes = map[int32]PaymentType{
	0: PaymentCash,
	1: PaymentCard,
	2: PaymentZD,
}

// PaymentTypeFromCode переводит внешний числовой код в тип оплаты.
// Код вне диапазона — ошибка валидации, а не «тихий» дефолт.
func PaymentTypeFromCode(code int32) (PaymentType, error) {
	pt, ok := paymentCodes[code]
	if !ok {
		return "", ErrPaymentTypeInvalid
	}
	return pt, nil
}

// Code возвращает внешний числовой код типа оплаты; -1 для неизвестного значения.
func (p PaymentType) Code() int32 {
	for code, pt := range paymentCodes {
		if pt == p {
			return code
		}
	}
	return -1
}

// Valid сообщает, принадлежит ли значение закрытому набору типов оплаты.
func (p PaymentType) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentZD:
		return true
	}
	return false
}
