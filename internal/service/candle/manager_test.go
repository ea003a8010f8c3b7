package candle

import (
	"errors"
	"testing"

	"github.com/road23/candleshop/internal/domain"
	"github.com/road23/candleshop/internal/storage/memory"
)

// failingIngredients отклоняет создание состава, имитируя сбой хранилища.
type failingIngredients struct {
	domain.IngredientRepository
}

func (f *failingIngredients) Create(domain.CandleIngredient) (domain.CandleIngredient, error) {
	return domain.CandleIngredient{}, errors.New("storage write failed")
}

func newTestManager() (*Manager, domain.CandleRepository, domain.CategoryRepository, domain.IngredientRepository) {
	candles := memory.NewCandleRepository()
	categories := memory.NewCategoryRepository()
	ingredients := memory.NewIngredientRepository()
	return NewManager(candles, categories, ingredients, nil), candles, categories, ingredients
}

func testAggregate(name string) domain.CandleAggregate {
	return domain.CandleAggregate{
		Candle: domain.Candle{
			Name:            name,
			Description:     "лаванда и бергамот",
			RealCostMinor:   10000,
			SellPriceMinor:  25000,
			HeightCM:        10,
			BurningTimeMins: 300,
		},
		Ingredient: domain.CandleIngredient{
			WickDiameterCM: 1,
			WaxNeededGram:  180,
		},
	}
}

func TestManagerCreate(t *testing.T) {
	mgr, _, categories, ingredients := newTestManager()
	category, err := categories.Create(domain.CandleCategory{Name: "Ароматические"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	agg, err := mgr.Create(category.ID, testAggregate("Лавандовый сон"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if agg.Candle.ID == 0 {
		t.Fatal("expected assigned candle id")
	}
	if agg.Ingredient.CandleID != agg.Candle.ID {
		t.Fatalf("expected ingredient bound to candle %d, got %d", agg.Candle.ID, agg.Ingredient.CandleID)
	}
	if agg.CategoryName != "Ароматические" {
		t.Fatalf("expected category name, got %q", agg.CategoryName)
	}

	// Состав обязан существовать сразу после создания свечи.
	if _, err := ingredients.GetByCandle(agg.Candle.ID); err != nil {
		t.Fatalf("ingredient missing after create: %v", err)
	}
}

func TestManagerCreate_DuplicateName(t *testing.T) {
	mgr, _, categories, _ := newTestManager()
	category, err := categories.Create(domain.CandleCategory{Name: "Ароматические"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	if _, err := mgr.Create(category.ID, testAggregate("Лавандовый сон")); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := mgr.Create(category.ID, testAggregate("Лавандовый сон")); !errors.Is(err, domain.ErrCandleExists) {
		t.Fatalf("expected ErrCandleExists, got %v", err)
	}
}

func TestManagerCreate_UnknownCategory(t *testing.T) {
	mgr, _, _, _ := newTestManager()

	if _, err := mgr.Create(99, testAggregate("Цитрус")); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestManagerCreate_CompensatesOnIngredientFailure(t *testing.T) {
	candles := memory.NewCandleRepository()
	categories := memory.NewCategoryRepository()
	mgr := NewManager(candles, categories, &failingIngredients{}, nil)

	category, err := categories.Create(domain.CandleCategory{Name: "Ароматические"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	if _, err := mgr.Create(category.ID, testAggregate("Цитрус")); err == nil {
		t.Fatal("expected create to fail")
	}

	// Компенсация: строки свечи без состава остаться не должно.
	if _, err := candles.GetByName("Цитрус"); !errors.Is(err, domain.ErrCandleNotFound) {
		t.Fatalf("expected candle row to be compensated away, got %v", err)
	}
}

func TestManagerUpdate_ReplacesIngredient(t *testing.T) {
	mgr, _, categories, ingredients := newTestManager()
	category, err := categories.Create(domain.CandleCategory{Name: "Ароматические"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	created, err := mgr.Create(category.ID, testAggregate("Лавандовый сон"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	payload := testAggregate("Лавандовый сон 2.0")
	payload.Ingredient.WaxNeededGram = 210
	updated, err := mgr.Update(created.Candle.ID, "Ароматические", payload)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Candle.Name != "Лавандовый сон 2.0" {
		t.Fatalf("expected renamed candle, got %q", updated.Candle.Name)
	}

	stored, err := ingredients.GetByCandle(created.Candle.ID)
	if err != nil {
		t.Fatalf("ingredient missing after update: %v", err)
	}
	if stored.WaxNeededGram != 210 {
		t.Fatalf("expected replaced ingredient, got %+v", stored)
	}
	if stored.ID == created.Ingredient.ID {
		t.Fatal("expected a fresh ingredient row after update")
	}
}

func TestManagerUpdate_UnknownCategoryName(t *testing.T) {
	mgr, _, categories, _ := newTestManager()
	category, err := categories.Create(domain.CandleCategory{Name: "Ароматические"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	created, err := mgr.Create(category.ID, testAggregate("Хвоя"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := mgr.Update(created.Candle.ID, "Несуществующая", testAggregate("Хвоя")); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestManagerDelete_RemovesBothRows(t *testing.T) {
	mgr, candles, categories, ingredients := newTestManager()
	category, err := categories.Create(domain.CandleCategory{Name: "Ароматические"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	created, err := mgr.Create(category.ID, testAggregate("Ваниль"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := mgr.Delete(created.Candle.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := candles.Get(created.Candle.ID); !errors.Is(err, domain.ErrCandleNotFound) {
		t.Fatalf("expected candle gone, got %v", err)
	}
	if _, err := ingredients.GetByCandle(created.Candle.ID); !errors.Is(err, domain.ErrIngredientNotFound) {
		t.Fatalf("expected ingredient gone, got %v", err)
	}

	if err := mgr.Delete(created.Candle.ID); !errors.Is(err, domain.ErrCandleNotFound) {
		t.Fatalf("expected ErrCandleNotFound on repeated delete, got %v", err)
	}
}

func TestManagerGet_HydratesAggregate(t *testing.T) {
	mgr, _, categories, _ := newTestManager()
	category, err := categories.Create(domain.CandleCategory{Name: "Ароматические"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	created, err := mgr.Create(category.ID, testAggregate("Хвоя"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	agg, err := mgr.Get(created.Candle.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if agg.Ingredient.WaxNeededGram != 180 || agg.CategoryName != "Ароматические" {
		t.Fatalf("expected hydrated aggregate, got %+v", agg)
	}
}
