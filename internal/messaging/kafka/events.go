package kafka

import "time"

// EventType определяет тип события жизненного цикла агрегата.
type EventType string

const (
	// События заказов.
	EventTypeOrderCreated EventType = "order.created"
	EventTypeOrderUpdated EventType = "order.updated"
	EventTypeOrderDeleted EventType = "order.deleted"

	// События каталога.
	EventTypeCandleCreated EventType = "candle.created"
	EventTypeCandleUpdated EventType = "candle.updated"
	EventTypeCandleDeleted EventType = "candle.deleted"
)

// Topics для Kafka.
const (
	TopicOrderEvents   = "candleshop.order.events"
	TopicCatalogEvents = "candleshop.catalog.events"
)

// AggregateEvent представляет событие жизненного цикла агрегата.
type AggregateEvent struct {
	EventID     string                 `json:"event_id"`
	EventType   EventType              `json:"event_type"`
	AggregateID int64                  `json:"aggregate_id"`
	Timestamp   time.Time              `json:"timestamp"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// NewAggregateEvent создаёт новое событие агрегата.
func NewAggregateEvent(eventID string, eventType EventType, aggregateID int64, metadata map[string]interface{}) *AggregateEvent {
	return &AggregateEvent{
		EventID:     eventID,
		EventType:   eventType,
		AggregateID: aggregateID,
		Timestamp:   time.Now(),
		Metadata:    metadata,
	}
}
