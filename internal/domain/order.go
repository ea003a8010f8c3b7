package domain

import (
	"strings"
	"time"
)

// Order агрегирует заказ вместе с получателем и позициями.
// Получатель обязателен: заказ без Receiver в хранилище не существует.
type Order struct {
	ID         int64
	CustomerID *int64
	OrderDate  time.Time
	Promocode  string
	// TotalSumMinor — итоговая сумма заказа в минимальных денежных единицах.
	TotalSumMinor int64
	PaymentType   PaymentType
	IsPaid        bool
	Comment       string
	Receiver      Receiver
	Details       []OrderDetail
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Receiver — получатель заказа. RepeatCount фиксируется в момент
// создания заказа ("это N-й заказ на данный телефон") и далее не пересчитывается.
type Receiver struct {
	ID          int64
	OrderID     int64
	Name        string
	Phone       string
	Address     string
	RepeatCount int32
}

// OrderDetail — одна позиция заказа.
type OrderDetail struct {
	ID       int64
	OrderID  int64
	CandleID int64
	Quantity int32
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if strings.TrimSpace(o.Receiver.Phone) == "" {
		errs = append(errs, ErrReceiverPhoneRequired)
	} else if !PhoneWellFormed(o.Receiver.Phone) {
		errs = append(errs, ErrReceiverPhoneMalformed)
	}
	if strings.TrimSpace(o.Receiver.Name) == "" {
		errs = append(errs, ErrReceiverNameRequired)
	}
	if o.TotalSumMinor < 0 {
		errs = append(errs, ErrTotalSumNegative)
	}
	if !o.PaymentType.Valid() {
		errs = append(errs, ErrPaymentTypeInvalid)
	}
	for _, d := range o.Details {
		if d.CandleID <= 0 {
			errs = append(errs, ErrDetailCandleRequired)
		}
		if d.Quantity <= 0 {
			errs = append(errs, ErrDetailQtyInvalid)
		}
	}

	return errs
}

// NormalizePhone убирает окружающие пробелы перед сравнением номеров.
// Другая нормализация (регистр, пунктуация) сознательно не выполняется.
func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}

// PhoneWellFormed проверяет структурную корректность номера телефона:
// минимум пять цифр, допускаются только цифры, пробелы и знаки "+-()".
func PhoneWellFormed(phone string) bool {
	digits := 0
	for _, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == '-' || r == '(' || r == ')' || r == ' ':
		default:
			return false
		}
	}
	return digits >= 5
}
