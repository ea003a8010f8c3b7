package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/road23/candleshop/internal/domain"
	"github.com/road23/candleshop/internal/storage/memory"
	"github.com/road23/candleshop/internal/storage/postgres"
)

// Dependencies содержит шлюз хранилища приложения: по одному
// репозиторию на сущность. Каждая операция репозитория фиксируется
// в хранилище независимо.
type Dependencies struct {
	Candles     domain.CandleRepository
	Categories  domain.CategoryRepository
	Ingredients domain.IngredientRepository
	Orders      domain.OrderRepository
	Receivers   domain.ReceiverRepository
	Details     domain.OrderDetailRepository

	// Store не nil только для PostgreSQL-хранилища.
	Store  *postgres.Store
	Logger *log.Entry
}

// NewDependencies собирает шлюз хранилища. Непустой DSN подключает
// PostgreSQL и применяет миграции; иначе используется in-memory реализация.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	if cfg.PostgresDSN == "" {
		logger.Info("postgres DSN не задан, используется in-memory хранилище")
		return &Dependencies{
			Candles:     memory.NewCandleRepository(),
			Categories:  memory.NewCategoryRepository(),
			Ingredients: memory.NewIngredientRepository(),
			Orders:      memory.NewOrderRepository(),
			Receivers:   memory.NewReceiverRepository(),
			Details:     memory.NewOrderDetailRepository(),
			Logger:      logger,
		}, nil
	}

	store, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := store.MigrateUp(ctx, 0); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	logger.Info("postgres хранилище подключено, миграции применены")

	return &Dependencies{
		Candles:     postgres.NewCandleRepository(store),
		Categories:  postgres.NewCategoryRepository(store),
		Ingredients: postgres.NewIngredientRepository(store),
		Orders:      postgres.NewOrderRepository(store),
		Receivers:   postgres.NewReceiverRepository(store),
		Details:     postgres.NewOrderDetailRepository(store),
		Store:       store,
		Logger:      logger,
	}, nil
}

// Close освобождает ресурсы хранилища.
func (d *Dependencies) Close() error {
	if d.Store != nil {
		return d.Store.Close()
	}
	return nil
}
