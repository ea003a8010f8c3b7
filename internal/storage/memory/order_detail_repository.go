package memory

import (
	"sort"
	"sync"

	"github.com/road23/candleshop/internal/domain"
)

// orderDetailRepositoryInMemory — простая in-memory реализация OrderDetailRepository.
type orderDetailRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.OrderDetail
	nextID int64
}

// NewOrderDetailRepository возвращает in-memory репозиторий позиций заказов.
func NewOrderDetailRepository() domain.OrderDetailRepository {
	return &orderDetailRepositoryInMemory{
		items: make(map[int64]domain.OrderDetail),
	}
}

// ListByOrder возвращает позиции заказа в порядке возрастания идентификаторов.
func (r *orderDetailRepositoryInMemory) ListByOrder(orderID int64) ([]domain.OrderDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.OrderDetail, 0)
	for _, d := range r.items {
		if d.OrderID == orderID {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Create сохраняет позицию, присваивая следующий идентификатор.
func (r *orderDetailRepositoryInMemory) Create(d domain.OrderDetail) (domain.OrderDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	d.ID = r.nextID
	r.items[d.ID] = d
	return d, nil
}

// DeleteByOrder удаляет все позиции заказа; отсутствие позиций — не ошибка.
func (r *orderDetailRepositoryInMemory) DeleteByOrder(orderID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, d := range r.items {
		if d.OrderID == orderID {
			delete(r.items, id)
			removed++
		}
	}
	return removed, nil
}

var _ domain.OrderDetailRepository = (*orderDetailRepositoryInMemory)(nil)
