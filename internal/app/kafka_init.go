package app

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/road23/candleshop/internal/messaging/kafka"
)

// splitBrokers разбирает список брокеров из конфигурации
// ("host1:9092, host2:9092") в срез адресов без пробелов.
func splitBrokers(brokers string) []string {
	var list []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			list = append(list, b)
		}
	}
	return list
}

// initEventProducer подключает издателя событий жизненного цикла агрегатов.
// Публикация событий необязательна для работы магазина: при пустом списке
// брокеров или недоступной Kafka возвращается nil и сервис работает без неё.
func initEventProducer(brokers string, logger *log.Entry) *kafka.Producer {
	list := splitBrokers(brokers)
	if len(list) == 0 {
		return nil
	}

	producer, err := kafka.NewProducer(list)
	if err != nil {
		logger.WithError(err).Warn("kafka недоступна, события агрегатов публиковаться не будут")
		return nil
	}

	logger.WithField("brokers", list).Info("издатель событий агрегатов подключён")
	return producer
}

// closeEventProducer закрывает издателя событий, если он был подключён.
func closeEventProducer(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("ошибка при закрытии издателя событий")
	}
}
