// Package orchestrator координирует агрегатные операции: проверяет
// предусловия, делегирует менеджерам агрегатов и транслирует их исходы
// в небольшой набор результатов для оболочки. Сам оркестратор в
// хранилище ничего не пишет.
package orchestrator

import (
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/road23/candleshop/internal/domain"
	"github.com/road23/candleshop/internal/messaging/kafka"
	"github.com/road23/candleshop/internal/metrics"
	"github.com/road23/candleshop/internal/service/candle"
	"github.com/road23/candleshop/internal/service/order"
)

const (
	aggregateCandle   = "candle"
	aggregateCategory = "category"
	aggregateOrder    = "order"

	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// Orchestrator — координатор запросов поверх менеджеров агрегатов.
type Orchestrator struct {
	candles    *candle.Manager
	orders     *order.Manager
	candleRepo domain.CandleRepository
	categories domain.CategoryRepository
	logger     *log.Entry
	metrics    *metrics.AggregateMetrics
	producer   *kafka.Producer // опциональный Kafka producer для событий агрегатов
}

// NewOrchestrator создаёт рабочий экземпляр оркестратора.
func NewOrchestrator(
	candles *candle.Manager,
	orders *order.Manager,
	candleRepo domain.CandleRepository,
	categories domain.CategoryRepository,
	logger *log.Entry,
) *Orchestrator {
	if logger == nil {
		logger = log.New().WithField("component", "orchestrator")
	}
	return &Orchestrator{
		candles:    candles,
		orders:     orders,
		candleRepo: candleRepo,
		categories: categories,
		logger:     logger,
		metrics:    metrics.NewAggregateMetrics(),
	}
}

// NewOrchestratorWithKafka создаёт оркестратор, публикующий события агрегатов в Kafka.
func NewOrchestratorWithKafka(
	candles *candle.Manager,
	orders *order.Manager,
	candleRepo domain.CandleRepository,
	categories domain.CategoryRepository,
	producer *kafka.Producer,
	logger *log.Entry,
) *Orchestrator {
	o := NewOrchestrator(candles, orders, candleRepo, categories, logger)
	o.producer = producer
	return o
}

// NewOrchestratorWithoutMetrics создаёт оркестратор без метрик (для тестов).
func NewOrchestratorWithoutMetrics(
	candles *candle.Manager,
	orders *order.Manager,
	candleRepo domain.CandleRepository,
	categories domain.CategoryRepository,
	logger *log.Entry,
) *Orchestrator {
	o := NewOrchestrator(candles, orders, candleRepo, categories, logger)
	o.metrics = nil
	return o
}

// --- Свечи ---

// Candles возвращает все свечи каталога.
func (o *Orchestrator) Candles() Result {
	return o.read(func() (interface{}, error) { return o.candles.List() })
}

// CandleByID возвращает свечу по идентификатору.
func (o *Orchestrator) CandleByID(id int64) Result {
	return o.read(func() (interface{}, error) { return o.candles.Get(id) })
}

// CandleByName возвращает свечу по уникальному имени.
func (o *Orchestrator) CandleByName(name string) Result {
	return o.read(func() (interface{}, error) { return o.candles.GetByName(name) })
}

// CandlesByCategory возвращает свечи категории.
func (o *Orchestrator) CandlesByCategory(categoryID int64) Result {
	return o.read(func() (interface{}, error) { return o.candles.ListByCategory(categoryID) })
}

// CreateCandle проверяет payload и создаёт агрегат свечи.
func (o *Orchestrator) CreateCandle(categoryID int64, agg domain.CandleAggregate) Result {
	if errs := agg.ValidateInvariants(); len(errs) > 0 {
		return Invalid(messages(errs)...)
	}
	return o.mutate(aggregateCandle, opCreate, func() (interface{}, int64, error) {
		created, err := o.candles.Create(categoryID, agg)
		return created, created.Candle.ID, err
	}, kafka.TopicCatalogEvents, kafka.EventTypeCandleCreated)
}

// UpdateCandle проверяет payload и заменяет агрегат свечи.
func (o *Orchestrator) UpdateCandle(candleID int64, categoryName string, agg domain.CandleAggregate) Result {
	if errs := agg.ValidateInvariants(); len(errs) > 0 {
		return Invalid(messages(errs)...)
	}
	return o.mutate(aggregateCandle, opUpdate, func() (interface{}, int64, error) {
		updated, err := o.candles.Update(candleID, categoryName, agg)
		return updated, candleID, err
	}, kafka.TopicCatalogEvents, kafka.EventTypeCandleUpdated)
}

// DeleteCandle удаляет агрегат свечи.
func (o *Orchestrator) DeleteCandle(candleID int64) Result {
	return o.mutate(aggregateCandle, opDelete, func() (interface{}, int64, error) {
		return nil, candleID, o.candles.Delete(candleID)
	}, kafka.TopicCatalogEvents, kafka.EventTypeCandleDeleted)
}

// --- Категории ---

// Categories возвращает все категории.
func (o *Orchestrator) Categories() Result {
	return o.read(func() (interface{}, error) { return o.categories.List() })
}

// CategoryByID возвращает категорию по идентификатору.
func (o *Orchestrator) CategoryByID(id int64) Result {
	return o.read(func() (interface{}, error) { return o.categories.Get(id) })
}

// CreateCategory создаёт категорию с уникальным именем.
func (o *Orchestrator) CreateCategory(name string) Result {
	if name == "" {
		return Invalid("category name is required")
	}
	exists, err := o.categories.ExistsByName(name)
	if err != nil {
		return o.failure(err)
	}
	if exists {
		return Conflict(domain.ErrCategoryExists.Error())
	}
	return o.mutate(aggregateCategory, opCreate, func() (interface{}, int64, error) {
		created, err := o.categories.Create(domain.CandleCategory{Name: name})
		return created, created.ID, err
	}, "", "")
}

// UpdateCategory переименовывает категорию.
func (o *Orchestrator) UpdateCategory(id int64, name string) Result {
	if name == "" {
		return Invalid("category name is required")
	}
	return o.mutate(aggregateCategory, opUpdate, func() (interface{}, int64, error) {
		current, err := o.categories.Get(id)
		if err != nil {
			return nil, id, err
		}
		current.Name = name
		return current, id, o.categories.Update(current)
	}, "", "")
}

// DeleteCategory удаляет категорию без свечей.
func (o *Orchestrator) DeleteCategory(id int64) Result {
	candles, err := o.candleRepo.ListByCategory(id)
	if err != nil {
		return o.failure(err)
	}
	if len(candles) > 0 {
		return Conflict("category still has candles")
	}
	return o.mutate(aggregateCategory, opDelete, func() (interface{}, int64, error) {
		return nil, id, o.categories.Delete(id)
	}, "", "")
}

// --- Заказы ---

// Orders возвращает все заказы.
func (o *Orchestrator) Orders() Result {
	return o.read(func() (interface{}, error) { return o.orders.List() })
}

// OrderByID возвращает заказ по идентификатору.
func (o *Orchestrator) OrderByID(id int64) Result {
	return o.read(func() (interface{}, error) { return o.orders.Get(id) })
}

// OrdersByCustomer возвращает заказы клиента.
func (o *Orchestrator) OrdersByCustomer(customerID int64) Result {
	return o.read(func() (interface{}, error) { return o.orders.ListByCustomer(customerID) })
}

// OrdersByPhone возвращает заказы по телефону получателя.
func (o *Orchestrator) OrdersByPhone(phone string) Result {
	return o.read(func() (interface{}, error) { return o.orders.ListByPhone(phone) })
}

// OrdersByDate возвращает заказы за календарный день.
func (o *Orchestrator) OrdersByDate(date time.Time) Result {
	return o.read(func() (interface{}, error) { return o.orders.ListByDate(date) })
}

// OrdersByMinSum возвращает заказы с суммой не меньше указанной.
func (o *Orchestrator) OrdersByMinSum(minMinor int64) Result {
	return o.read(func() (interface{}, error) { return o.orders.ListByMinSum(minMinor) })
}

// OrdersByMaxSum возвращает заказы с суммой не больше указанной.
func (o *Orchestrator) OrdersByMaxSum(maxMinor int64) Result {
	return o.read(func() (interface{}, error) { return o.orders.ListByMaxSum(maxMinor) })
}

// CreateOrder проверяет payload (структура, существование свечей в позициях)
// и создаёт агрегат заказа.
func (o *Orchestrator) CreateOrder(ord domain.Order) Result {
	if errs := ord.ValidateInvariants(); len(errs) > 0 {
		return Invalid(messages(errs)...)
	}
	if res, ok := o.checkDetailCandles(ord.Details); !ok {
		return res
	}
	return o.mutate(aggregateOrder, opCreate, func() (interface{}, int64, error) {
		created, err := o.orders.Create(ord)
		return created, created.ID, err
	}, kafka.TopicOrderEvents, kafka.EventTypeOrderCreated)
}

// UpdateOrder проверяет payload и заменяет агрегат заказа целиком.
func (o *Orchestrator) UpdateOrder(orderID int64, ord domain.Order) Result {
	if errs := ord.ValidateInvariants(); len(errs) > 0 {
		return Invalid(messages(errs)...)
	}
	if res, ok := o.checkDetailCandles(ord.Details); !ok {
		return res
	}
	return o.mutate(aggregateOrder, opUpdate, func() (interface{}, int64, error) {
		updated, err := o.orders.Update(orderID, ord)
		return updated, orderID, err
	}, kafka.TopicOrderEvents, kafka.EventTypeOrderUpdated)
}

// DeleteOrder удаляет агрегат заказа.
func (o *Orchestrator) DeleteOrder(orderID int64) Result {
	return o.mutate(aggregateOrder, opDelete, func() (interface{}, int64, error) {
		return nil, orderID, o.orders.Delete(orderID)
	}, kafka.TopicOrderEvents, kafka.EventTypeOrderDeleted)
}

// checkDetailCandles убеждается, что каждая позиция ссылается на существующую свечу.
func (o *Orchestrator) checkDetailCandles(details []domain.OrderDetail) (Result, bool) {
	for _, d := range details {
		if _, err := o.candleRepo.Get(d.CandleID); err != nil {
			if errors.Is(err, domain.ErrCandleNotFound) {
				return Invalid("order detail references unknown candle"), false
			}
			return o.failure(err), false
		}
	}
	return Result{}, true
}

// read выполняет операцию чтения и транслирует её исход.
func (o *Orchestrator) read(fn func() (interface{}, error)) Result {
	payload, err := fn()
	if err != nil {
		return o.failure(err)
	}
	return OK(payload)
}

// mutate выполняет агрегатную запись: метрики вокруг вызова менеджера,
// трансляция исхода, публикация события при успехе.
func (o *Orchestrator) mutate(
	aggregate, op string,
	fn func() (interface{}, int64, error),
	topic string,
	eventType kafka.EventType,
) Result {
	start := time.Now()
	if o.metrics != nil {
		o.metrics.RecordStarted(aggregate, op)
	}

	payload, aggregateID, err := fn()
	if err != nil {
		if o.metrics != nil {
			o.metrics.RecordFailed(aggregate, op, time.Since(start))
		}
		return o.failure(err)
	}

	if o.metrics != nil {
		o.metrics.RecordCompleted(aggregate, op, time.Since(start))
	}
	if topic != "" {
		o.publishEvent(topic, eventType, aggregateID, map[string]interface{}{
			"aggregate": aggregate,
			"op":        op,
		})
	}
	return OK(payload)
}

// failure переводит ошибку менеджера/хранилища в исход операции.
func (o *Orchestrator) failure(err error) Result {
	switch {
	case domain.IsNotFound(err):
		return NotFound(err.Error())
	case errors.Is(err, domain.ErrCandleExists), errors.Is(err, domain.ErrCategoryExists):
		return Conflict(err.Error())
	case errors.Is(err, domain.ErrOrderIDMismatch):
		return Invalid(err.Error())
	}
	o.logger.WithError(err).Error("aggregate operation failed")
	return Internal(err.Error())
}

// publishEvent отправляет событие агрегата, если producer настроен.
func (o *Orchestrator) publishEvent(topic string, eventType kafka.EventType, aggregateID int64, metadata map[string]interface{}) {
	if o.producer == nil {
		return
	}
	event := kafka.NewAggregateEvent(uuid.NewString(), eventType, aggregateID, metadata)
	if err := o.producer.PublishEvent(topic, event.EventID, event); err != nil {
		// Публикация события не входит в гарантию операции: ошибка логируется.
		o.logger.WithError(err).WithField("event_type", eventType).Warn("failed to publish aggregate event")
	}
}

func messages(errs []error) []string {
	result := make([]string, 0, len(errs))
	for _, err := range errs {
		result = append(result, err.Error())
	}
	return result
}
