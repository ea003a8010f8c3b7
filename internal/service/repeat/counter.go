package repeat

import (
	"fmt"

	"github.com/road23/candleshop/internal/domain"
)

// Counter вычисляет порядковый номер заказа для телефона получателя:
// сколько получателей с таким номером уже есть в хранилище, плюс один.
// Значение фиксируется на создаваемом получателе и далее не пересчитывается.
type Counter struct {
	receivers domain.ReceiverRepository
}

// NewCounter создаёт счётчик повторных заказов.
func NewCounter(receivers domain.ReceiverRepository) *Counter {
	return &Counter{receivers: receivers}
}

// Next возвращает номер для нового получателя с указанным телефоном.
// Номер сравнивается после обрезки окружающих пробелов; другая нормализация
// не выполняется.
func (c *Counter) Next(phone string) (int32, error) {
	count, err := c.receivers.CountByPhone(domain.NormalizePhone(phone))
	if err != nil {
		return 0, fmt.Errorf("count receivers by phone: %w", err)
	}
	return int32(count) + 1, nil
}
