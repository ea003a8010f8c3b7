package app

import (
	"github.com/road23/candleshop/internal/messaging/kafka"
	"github.com/road23/candleshop/internal/service/candle"
	"github.com/road23/candleshop/internal/service/orchestrator"
	"github.com/road23/candleshop/internal/service/order"
	"github.com/road23/candleshop/internal/service/repeat"
)

// createOrchestrator собирает менеджеры агрегатов поверх шлюза хранилища
// и оркестратор с или без Kafka в зависимости от наличия producer.
func createOrchestrator(deps *Dependencies, kafkaProducer *kafka.Producer) *orchestrator.Orchestrator {
	candleMgr := candle.NewManager(
		deps.Candles,
		deps.Categories,
		deps.Ingredients,
		deps.Logger.WithField("component", "candle-manager"),
	)
	counter := repeat.NewCounter(deps.Receivers)
	orderMgr := order.NewManager(
		deps.Orders,
		deps.Receivers,
		deps.Details,
		counter,
		deps.Logger.WithField("component", "order-manager"),
	)

	if kafkaProducer != nil {
		return orchestrator.NewOrchestratorWithKafka(
			candleMgr,
			orderMgr,
			deps.Candles,
			deps.Categories,
			kafkaProducer,
			deps.Logger.WithField("component", "orchestrator"),
		)
	}

	return orchestrator.NewOrchestrator(
		candleMgr,
		orderMgr,
		deps.Candles,
		deps.Categories,
		deps.Logger.WithField("component", "orchestrator"),
	)
}
