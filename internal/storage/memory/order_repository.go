package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/road23/candleshop/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
// Хранит только строки заказов: получатели и позиции живут в своих репозиториях,
// целостность агрегата выстраивает менеджер.
type orderRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.Order
	nextID int64
}

// NewOrderRepository возвращает in-memory репозиторий заказов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[int64]domain.Order),
	}
}

func (r *orderRepositoryInMemory) List() ([]domain.Order, error) {
	return r.filter(func(domain.Order) bool { return true })
}

// Get возвращает строку заказа или ErrOrderNotFound, если её нет.
func (r *orderRepositoryInMemory) Get(id int64) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return o, nil
}

func (r *orderRepositoryInMemory) ListByCustomer(customerID int64) ([]domain.Order, error) {
	return r.filter(func(o domain.Order) bool {
		return o.CustomerID != nil && *o.CustomerID == customerID
	})
}

// ListByDate сравнивает только календарную дату, время отбрасывается.
func (r *orderRepositoryInMemory) ListByDate(date time.Time) ([]domain.Order, error) {
	y, m, d := date.Date()
	return r.filter(func(o domain.Order) bool {
		oy, om, od := o.OrderDate.Date()
		return oy == y && om == m && od == d
	})
}

func (r *orderRepositoryInMemory) ListByMinSum(minMinor int64) ([]domain.Order, error) {
	return r.filter(func(o domain.Order) bool { return o.TotalSumMinor >= minMinor })
}

func (r *orderRepositoryInMemory) ListByMaxSum(maxMinor int64) ([]domain.Order, error) {
	return r.filter(func(o domain.Order) bool { return o.TotalSumMinor <= maxMinor })
}

func (r *orderRepositoryInMemory) Exists(id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok, nil
}

// Create сохраняет строку заказа, присваивая следующий идентификатор.
// Вложенные Receiver/Details не сохраняются: это зона ответственности менеджера.
func (r *orderRepositoryInMemory) Create(o domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	o.ID = r.nextID
	o.Receiver = domain.Receiver{}
	o.Details = nil
	r.items[o.ID] = o
	return o, nil
}

// Update перезаписывает строку заказа.
func (r *orderRepositoryInMemory) Update(o domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[o.ID]; !ok {
		return domain.ErrOrderNotFound
	}
	o.Receiver = domain.Receiver{}
	o.Details = nil
	r.items[o.ID] = o
	return nil
}

// Delete удаляет строку заказа.
func (r *orderRepositoryInMemory) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *orderRepositoryInMemory) filter(keep func(domain.Order) bool) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0)
	for _, o := range r.items {
		if keep(o) {
			result = append(result, o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
