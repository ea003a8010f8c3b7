package memory

import (
	"sort"
	"sync"

	"github.com/road23/candleshop/internal/domain"
)

// receiverRepositoryInMemory — простая in-memory реализация ReceiverRepository.
type receiverRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.Receiver
	nextID int64
}

// NewReceiverRepository возвращает in-memory репозиторий получателей.
func NewReceiverRepository() domain.ReceiverRepository {
	return &receiverRepositoryInMemory{
		items: make(map[int64]domain.Receiver),
	}
}

// GetByOrder возвращает получателя заказа или ErrReceiverNotFound.
func (r *receiverRepositoryInMemory) GetByOrder(orderID int64) (domain.Receiver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rc := range r.items {
		if rc.OrderID == orderID {
			return rc, nil
		}
	}
	return domain.Receiver{}, domain.ErrReceiverNotFound
}

// CountByPhone считает получателей с точно совпадающим (trimmed) номером.
func (r *receiverRepositoryInMemory) CountByPhone(phone string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	phone = domain.NormalizePhone(phone)
	count := 0
	for _, rc := range r.items {
		if domain.NormalizePhone(rc.Phone) == phone {
			count++
		}
	}
	return count, nil
}

// ListByPhone возвращает получателей с указанным (trimmed) номером.
func (r *receiverRepositoryInMemory) ListByPhone(phone string) ([]domain.Receiver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	phone = domain.NormalizePhone(phone)
	result := make([]domain.Receiver, 0)
	for _, rc := range r.items {
		if domain.NormalizePhone(rc.Phone) == phone {
			result = append(result, rc)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Create сохраняет получателя, присваивая следующий идентификатор.
func (r *receiverRepositoryInMemory) Create(rc domain.Receiver) (domain.Receiver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	rc.ID = r.nextID
	r.items[rc.ID] = rc
	return rc, nil
}

// Delete удаляет получателя.
func (r *receiverRepositoryInMemory) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrReceiverNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.ReceiverRepository = (*receiverRepositoryInMemory)(nil)
