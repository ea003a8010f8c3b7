package memory

import (
	"sync"

	"github.com/road23/candleshop/internal/domain"
)

// ingredientRepositoryInMemory — простая in-memory реализация IngredientRepository.
// Уникальность candle_id воспроизводит ограничение схемы: не более одной
// записи состава на свечу.
type ingredientRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.CandleIngredient
	nextID int64
}

// NewIngredientRepository возвращает in-memory репозиторий составов.
func NewIngredientRepository() domain.IngredientRepository {
	return &ingredientRepositoryInMemory{
		items: make(map[int64]domain.CandleIngredient),
	}
}

// GetByCandle возвращает состав свечи или ErrIngredientNotFound, если его нет.
func (r *ingredientRepositoryInMemory) GetByCandle(candleID int64) (domain.CandleIngredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, i := range r.items {
		if i.CandleID == candleID {
			return i, nil
		}
	}
	return domain.CandleIngredient{}, domain.ErrIngredientNotFound
}

// Create сохраняет состав, отклоняя вторую запись для той же свечи.
func (r *ingredientRepositoryInMemory) Create(i domain.CandleIngredient) (domain.CandleIngredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.CandleID == i.CandleID {
			return domain.CandleIngredient{}, domain.ErrCandleExists
		}
	}

	r.nextID++
	i.ID = r.nextID
	r.items[i.ID] = i
	return i, nil
}

// Delete удаляет запись состава.
func (r *ingredientRepositoryInMemory) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrIngredientNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.IngredientRepository = (*ingredientRepositoryInMemory)(nil)
