// Package candle реализует менеджер агрегата "свеча + состав".
//
// Хранилище фиксирует каждый вызов независимо, поэтому инвариант 1:1
// (свеча никогда не существует без записи состава) выстраивается здесь:
// фиксированным порядком записей и компенсирующими удалениями при сбое.
package candle

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/road23/candleshop/internal/domain"
)

// Manager управляет жизненным циклом агрегата свечи.
type Manager struct {
	candles     domain.CandleRepository
	categories  domain.CategoryRepository
	ingredients domain.IngredientRepository
	logger      *log.Entry
}

// NewManager создаёт менеджер агрегата свечи.
func NewManager(
	candles domain.CandleRepository,
	categories domain.CategoryRepository,
	ingredients domain.IngredientRepository,
	logger *log.Entry,
) *Manager {
	if logger == nil {
		logger = log.New().WithField("component", "candle-manager")
	}
	return &Manager{
		candles:     candles,
		categories:  categories,
		ingredients: ingredients,
		logger:      logger,
	}
}

// Create сохраняет новую свечу вместе с составом.
// Ошибки: ErrCandleExists при занятом имени, ErrCategoryNotFound при
// нерезолвящейся категории. Для вызывающего операция атомарна: существуют
// либо обе записи, либо ни одной — при сбое на шаге состава созданная
// строка свечи удаляется компенсирующим шагом.
func (m *Manager) Create(categoryID int64, agg domain.CandleAggregate) (domain.CandleAggregate, error) {
	exists, err := m.candles.ExistsByName(agg.Candle.Name)
	if err != nil {
		return domain.CandleAggregate{}, fmt.Errorf("check candle name: %w", err)
	}
	if exists {
		return domain.CandleAggregate{}, domain.ErrCandleExists
	}

	category, err := m.categories.Get(categoryID)
	if err != nil {
		return domain.CandleAggregate{}, err
	}

	agg.Candle.CategoryID = category.ID
	created, err := m.candles.Create(agg.Candle)
	if err != nil {
		return domain.CandleAggregate{}, fmt.Errorf("create candle: %w", err)
	}

	agg.Ingredient.CandleID = created.ID
	ingredient, err := m.ingredients.Create(agg.Ingredient)
	if err != nil {
		// Компенсация: свеча без состава в хранилище остаться не должна.
		if delErr := m.candles.Delete(created.ID); delErr != nil {
			m.logger.WithError(delErr).WithField("candle_id", created.ID).
				Error("compensating candle delete failed, candle left without ingredient")
		}
		return domain.CandleAggregate{}, fmt.Errorf("create candle ingredient: %w", err)
	}

	return domain.CandleAggregate{
		Candle:       created,
		Ingredient:   ingredient,
		CategoryName: category.Name,
	}, nil
}

// Update обновляет свечу по идентификатору. Категория в payload указана
// по имени; нерезолвящееся имя, как и отсутствующая свеча, — NotFound.
// Состав заменяется целиком: старая запись удаляется до вставки новой,
// чтобы уникальность candle_id не нарушалась даже транзиентно.
func (m *Manager) Update(candleID int64, categoryName string, agg domain.CandleAggregate) (domain.CandleAggregate, error) {
	current, err := m.candles.Get(candleID)
	if err != nil {
		return domain.CandleAggregate{}, err
	}

	category, err := m.categories.GetByName(categoryName)
	if err != nil {
		return domain.CandleAggregate{}, err
	}

	if old, err := m.ingredients.GetByCandle(candleID); err == nil {
		if err := m.ingredients.Delete(old.ID); err != nil {
			return domain.CandleAggregate{}, fmt.Errorf("delete old ingredient: %w", err)
		}
	} else if !errors.Is(err, domain.ErrIngredientNotFound) {
		return domain.CandleAggregate{}, fmt.Errorf("lookup old ingredient: %w", err)
	}

	current.Name = agg.Candle.Name
	current.Description = agg.Candle.Description
	current.PhotoLink = agg.Candle.PhotoLink
	current.RealCostMinor = agg.Candle.RealCostMinor
	current.SellPriceMinor = agg.Candle.SellPriceMinor
	current.HeightCM = agg.Candle.HeightCM
	current.BurningTimeMins = agg.Candle.BurningTimeMins
	current.CategoryID = category.ID

	if err := m.candles.Update(current); err != nil {
		return domain.CandleAggregate{}, fmt.Errorf("update candle: %w", err)
	}

	agg.Ingredient.CandleID = candleID
	ingredient, err := m.ingredients.Create(agg.Ingredient)
	if err != nil {
		return domain.CandleAggregate{}, fmt.Errorf("recreate ingredient: %w", err)
	}

	return domain.CandleAggregate{
		Candle:       current,
		Ingredient:   ingredient,
		CategoryName: category.Name,
	}, nil
}

// Delete удаляет свечу и её состав. Порядок фиксирован: сначала свеча,
// затем состав; отсутствие записи состава — не ошибка.
func (m *Manager) Delete(candleID int64) error {
	if _, err := m.candles.Get(candleID); err != nil {
		return err
	}

	if err := m.candles.Delete(candleID); err != nil {
		return fmt.Errorf("delete candle: %w", err)
	}

	ingredient, err := m.ingredients.GetByCandle(candleID)
	if err != nil {
		if errors.Is(err, domain.ErrIngredientNotFound) {
			return nil
		}
		return fmt.Errorf("lookup ingredient: %w", err)
	}
	if err := m.ingredients.Delete(ingredient.ID); err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}

	return nil
}

// Get возвращает агрегат свечи с составом и именем категории.
func (m *Manager) Get(candleID int64) (domain.CandleAggregate, error) {
	c, err := m.candles.Get(candleID)
	if err != nil {
		return domain.CandleAggregate{}, err
	}
	return m.hydrate(c)
}

// GetByName возвращает агрегат по уникальному имени свечи.
func (m *Manager) GetByName(name string) (domain.CandleAggregate, error) {
	c, err := m.candles.GetByName(name)
	if err != nil {
		return domain.CandleAggregate{}, err
	}
	return m.hydrate(c)
}

// List возвращает все свечи каталога.
func (m *Manager) List() ([]domain.CandleAggregate, error) {
	candles, err := m.candles.List()
	if err != nil {
		return nil, fmt.Errorf("list candles: %w", err)
	}
	return m.hydrateAll(candles)
}

// ListByCategory возвращает свечи указанной категории.
func (m *Manager) ListByCategory(categoryID int64) ([]domain.CandleAggregate, error) {
	candles, err := m.candles.ListByCategory(categoryID)
	if err != nil {
		return nil, fmt.Errorf("list candles by category: %w", err)
	}
	return m.hydrateAll(candles)
}

// hydrate дополняет строку свечи составом и именем категории.
// Отсутствие состава на чтении — деградация данных: отражаем нулевым
// значением, а не ошибкой, чтобы каталог оставался читаемым.
func (m *Manager) hydrate(c domain.Candle) (domain.CandleAggregate, error) {
	agg := domain.CandleAggregate{Candle: c}

	if ingredient, err := m.ingredients.GetByCandle(c.ID); err == nil {
		agg.Ingredient = ingredient
	} else if !errors.Is(err, domain.ErrIngredientNotFound) {
		return domain.CandleAggregate{}, fmt.Errorf("load ingredient: %w", err)
	}

	if category, err := m.categories.Get(c.CategoryID); err == nil {
		agg.CategoryName = category.Name
	} else if !errors.Is(err, domain.ErrCategoryNotFound) {
		return domain.CandleAggregate{}, fmt.Errorf("load category: %w", err)
	}

	return agg, nil
}

func (m *Manager) hydrateAll(candles []domain.Candle) ([]domain.CandleAggregate, error) {
	result := make([]domain.CandleAggregate, 0, len(candles))
	for _, c := range candles {
		agg, err := m.hydrate(c)
		if err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	return result, nil
}
