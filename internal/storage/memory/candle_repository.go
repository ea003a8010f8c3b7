package memory

import (
	"sort"
	"sync"

	"github.com/road23/candleshop/internal/domain"
)

// candleRepositoryInMemory — простая in-memory реализация CandleRepository.
type candleRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.Candle
	nextID int64
}

// NewCandleRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewCandleRepository() domain.CandleRepository {
	return &candleRepositoryInMemory{
		items: make(map[int64]domain.Candle),
	}
}

// List возвращает все свечи в порядке возрастания идентификаторов.
func (r *candleRepositoryInMemory) List() ([]domain.Candle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Candle, 0, len(r.items))
	for _, c := range r.items {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Get возвращает свечу или ErrCandleNotFound, если её нет.
func (r *candleRepositoryInMemory) Get(id int64) (domain.Candle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok {
		return domain.Candle{}, domain.ErrCandleNotFound
	}
	return c, nil
}

// GetByName ищет свечу по уникальному имени.
func (r *candleRepositoryInMemory) GetByName(name string) (domain.Candle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.items {
		if c.Name == name {
			return c, nil
		}
	}
	return domain.Candle{}, domain.ErrCandleNotFound
}

// ListByCategory возвращает свечи указанной категории.
func (r *candleRepositoryInMemory) ListByCategory(categoryID int64) ([]domain.Candle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Candle, 0)
	for _, c := range r.items {
		if c.CategoryID == categoryID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ExistsByName проверяет занятость уникального имени.
func (r *candleRepositoryInMemory) ExistsByName(name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.items {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// Create сохраняет свечу, присваивая следующий идентификатор.
func (r *candleRepositoryInMemory) Create(c domain.Candle) (domain.Candle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Name == c.Name {
			return domain.Candle{}, domain.ErrCandleExists
		}
	}

	r.nextID++
	c.ID = r.nextID
	// Сохраняем копию, чтобы избежать непредсказуемых мутаций извне.
	r.items[c.ID] = c
	return c, nil
}

// Update перезаписывает свечу целиком.
func (r *candleRepositoryInMemory) Update(c domain.Candle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[c.ID]; !ok {
		return domain.ErrCandleNotFound
	}
	r.items[c.ID] = c
	return nil
}

// Delete удаляет строку свечи.
func (r *candleRepositoryInMemory) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrCandleNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.CandleRepository = (*candleRepositoryInMemory)(nil)
