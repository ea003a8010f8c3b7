package domain

import "errors"

var (
	// Ошибка отсутствующего имени свечи.
	ErrCandleNameRequired = errors.New("candle name is required")
	// Ошибка отрицательной себестоимости или цены.
	ErrPriceNegative = errors.New("price must be non-negative")
	// Ошибка некорректного диаметра фитиля (<= 0).
	ErrWickDiameterInvalid = errors.New("wick diameter must be greater than zero")
	// Ошибка некорректной массы воска (<= 0).
	ErrWaxGramsInvalid = errors.New("wax grams must be greater than zero")
	// Ошибка отсутствующего телефона получателя.
	ErrReceiverPhoneRequired = errors.New("receiver phone is required")
	// Ошибка структурно некорректного телефона получателя.
	ErrReceiverPhoneMalformed = errors.New("receiver phone is malformed")
	// Ошибка отсутствующего имени получателя.
	ErrReceiverNameRequired = errors.New("receiver name is required")
	// Ошибка отрицательной суммы заказа.
	ErrTotalSumNegative = errors.New("total sum must be non-negative")
	// Ошибка кода оплаты вне закрытого набора {cash, card, zd}.
	ErrPaymentTypeInvalid = errors.New("payment type is invalid")
	// Ошибка позиции заказа без ссылки на свечу.
	ErrDetailCandleRequired = errors.New("order detail requires candle reference")
	// Ошибка некорректного количества в позиции (<= 0).
	ErrDetailQtyInvalid = errors.New("order detail qty must be greater than zero")

	// ErrCandleNotFound возвращается, если свеча не найдена в хранилище.
	ErrCandleNotFound = errors.New("candle not found")
	// ErrCandleExists сигнализирует о дубликате уникального имени свечи.
	ErrCandleExists = errors.New("candle already exists")
	// ErrCategoryNotFound возвращается, если категория не найдена.
	ErrCategoryNotFound = errors.New("candle category not found")
	// ErrCategoryExists сигнализирует о дубликате имени категории.
	ErrCategoryExists = errors.New("candle category already exists")
	// ErrIngredientNotFound возвращается, если у свечи нет записи состава.
	ErrIngredientNotFound = errors.New("candle ingredient not found")
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")
	// ErrReceiverNotFound возвращается, если у заказа нет получателя.
	ErrReceiverNotFound = errors.New("receiver not found")
	// ErrOrderIDMismatch — идентификатор в payload не совпадает с идентификатором операции.
	ErrOrderIDMismatch = errors.New("order id mismatch")
)

// IsNotFound проверяет, относится ли ошибка к классу "запись не найдена".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCandleNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrIngredientNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrReceiverNotFound)
}
