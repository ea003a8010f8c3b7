package domain

import "time"

// Контракты шлюза хранения. Каждый вызов фиксируется независимо:
// атомарность ограничена одним вызовом, многошаговые последовательности
// выстраивают менеджеры агрегатов.

// CandleRepository описывает требования к хранилищу свечей.
type CandleRepository interface {
	// List возвращает все свечи, отсортированные по идентификатору.
	List() ([]Candle, error)
	// Get возвращает свечу или ErrCandleNotFound, если её нет.
	Get(id int64) (Candle, error)
	// GetByName ищет свечу по уникальному имени.
	GetByName(name string) (Candle, error)
	// ListByCategory возвращает свечи указанной категории.
	ListByCategory(categoryID int64) ([]Candle, error)
	// ExistsByName проверяет занятость уникального имени.
	ExistsByName(name string) (bool, error)
	// Create сохраняет новую свечу и возвращает её с присвоенным идентификатором.
	Create(c Candle) (Candle, error)
	// Update перезаписывает скалярные поля и ссылку на категорию.
	Update(c Candle) error
	// Delete удаляет строку свечи; ErrCandleNotFound, если её нет.
	Delete(id int64) error
}

// CategoryRepository описывает требования к хранилищу категорий.
type CategoryRepository interface {
	List() ([]CandleCategory, error)
	Get(id int64) (CandleCategory, error)
	GetByName(name string) (CandleCategory, error)
	ExistsByName(name string) (bool, error)
	Create(c CandleCategory) (CandleCategory, error)
	Update(c CandleCategory) error
	Delete(id int64) error
}

// IngredientRepository описывает требования к хранилищу составов свечей.
// Запись состава никогда не создаётся отдельно от свечи.
type IngredientRepository interface {
	// GetByCandle возвращает состав свечи или ErrIngredientNotFound.
	GetByCandle(candleID int64) (CandleIngredient, error)
	Create(i CandleIngredient) (CandleIngredient, error)
	Delete(id int64) error
}

// OrderRepository описывает требования к хранилищу заказов.
// Хранит только строку заказа: получатель и позиции живут в своих репозиториях.
type OrderRepository interface {
	List() ([]Order, error)
	// Get возвращает строку заказа или ErrOrderNotFound, если её нет.
	Get(id int64) (Order, error)
	ListByCustomer(customerID int64) ([]Order, error)
	// ListByDate возвращает заказы за календарный день (время отбрасывается).
	ListByDate(date time.Time) ([]Order, error)
	ListByMinSum(minMinor int64) ([]Order, error)
	ListByMaxSum(maxMinor int64) ([]Order, error)
	Exists(id int64) (bool, error)
	Create(o Order) (Order, error)
	Update(o Order) error
	Delete(id int64) error
}

// ReceiverRepository описывает требования к хранилищу получателей.
type ReceiverRepository interface {
	// GetByOrder возвращает получателя заказа или ErrReceiverNotFound.
	GetByOrder(orderID int64) (Receiver, error)
	// CountByPhone возвращает число получателей с точно таким (trimmed) номером.
	CountByPhone(phone string) (int, error)
	// ListByPhone возвращает получателей с указанным номером.
	ListByPhone(phone string) ([]Receiver, error)
	Create(r Receiver) (Receiver, error)
	Delete(id int64) error
}

// OrderDetailRepository описывает требования к хранилищу позиций заказов.
type OrderDetailRepository interface {
	ListByOrder(orderID int64) ([]OrderDetail, error)
	Create(d OrderDetail) (OrderDetail, error)
	// DeleteByOrder удаляет все позиции заказа и возвращает число удалённых строк.
	// Отсутствие позиций — не ошибка.
	DeleteByOrder(orderID int64) (int, error)
}
