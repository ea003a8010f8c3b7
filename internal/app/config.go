package app

import "os"

// Config описывает настройки запуска приложения.
type Config struct {
	// HTTPAddr — адрес основного REST-сервера.
	HTTPAddr string
	// MetricsAddr — адрес служебного сервера (/metrics, /healthz, /livez).
	MetricsAddr string
	// PostgresDSN — строка подключения к PostgreSQL.
	// Пустое значение переключает хранилище на in-memory реализацию.
	PostgresDSN string
	// KafkaBrokers — список брокеров через запятую; пусто — без Kafka.
	KafkaBrokers string
}

// DefaultConfig возвращает базовые адреса сервиса.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
	}
}

// ConfigFromEnv читает настройки из переменных окружения,
// подставляя значения по умолчанию для незаданных.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("SHOP_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("SHOP_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	cfg.PostgresDSN = os.Getenv("SHOP_POSTGRES_DSN")
	cfg.KafkaBrokers = os.Getenv("KAFKA_BROKERS")
	return cfg
}
