package memory

import (
	"sort"
	"sync"

	"github.com/road23/candleshop/internal/domain"
)

// categoryRepositoryInMemory — простая in-memory реализация CategoryRepository.
type categoryRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.CandleCategory
	nextID int64
}

// NewCategoryRepository возвращает in-memory репозиторий категорий.
func NewCategoryRepository() domain.CategoryRepository {
	return &categoryRepositoryInMemory{
		items: make(map[int64]domain.CandleCategory),
	}
}

func (r *categoryRepositoryInMemory) List() ([]domain.CandleCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.CandleCategory, 0, len(r.items))
	for _, c := range r.items {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *categoryRepositoryInMemory) Get(id int64) (domain.CandleCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok {
		return domain.CandleCategory{}, domain.ErrCategoryNotFound
	}
	return c, nil
}

func (r *categoryRepositoryInMemory) GetByName(name string) (domain.CandleCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.items {
		if c.Name == name {
			return c, nil
		}
	}
	return domain.CandleCategory{}, domain.ErrCategoryNotFound
}

func (r *categoryRepositoryInMemory) ExistsByName(name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.items {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *categoryRepositoryInMemory) Create(c domain.CandleCategory) (domain.CandleCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Name == c.Name {
			return domain.CandleCategory{}, domain.ErrCategoryExists
		}
	}

	r.nextID++
	c.ID = r.nextID
	r.items[c.ID] = c
	return c, nil
}

func (r *categoryRepositoryInMemory) Update(c domain.CandleCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[c.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	r.items[c.ID] = c
	return nil
}

func (r *categoryRepositoryInMemory) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.CategoryRepository = (*categoryRepositoryInMemory)(nil)
