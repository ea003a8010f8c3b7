package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AggregateMetrics содержит метрики операций над агрегатами.
type AggregateMetrics struct {
	// Счётчики исходов по агрегату и операции.
	opsStarted   *prometheus.CounterVec
	opsCompleted *prometheus.CounterVec
	opsFailed    *prometheus.CounterVec

	// Гистограмма времени выполнения операции.
	opDuration *prometheus.HistogramVec

	// Gauge для выполняющихся операций.
	activeOps prometheus.Gauge
}

// NewAggregateMetrics создаёт новый экземпляр метрик агрегатных операций.
func NewAggregateMetrics() *AggregateMetrics {
	return newAggregateMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newAggregateMetricsWithRegisterer(registerer prometheus.Registerer) *AggregateMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	labels := []string{"aggregate", "op"}
	return &AggregateMetrics{
		opsStarted: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "candleshop_aggregate_ops_started_total",
			Help: "Total number of aggregate operations started",
		}, labels),
		opsCompleted: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "candleshop_aggregate_ops_completed_total",
			Help: "Total number of aggregate operations completed successfully",
		}, labels),
		opsFailed: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "candleshop_aggregate_ops_failed_total",
			Help: "Total number of aggregate operations failed",
		}, labels),
		opDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "candleshop_aggregate_op_duration_seconds",
			Help:    "Duration of aggregate operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, labels),
		activeOps: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "candleshop_aggregate_active_ops",
			Help: "Number of aggregate operations currently in flight",
		}),
	}
}

// RecordStarted увеличивает счётчик запущенных операций.
func (m *AggregateMetrics) RecordStarted(aggregate, op string) {
	m.opsStarted.WithLabelValues(aggregate, op).Inc()
	m.activeOps.Inc()
}

// RecordCompleted фиксирует успешное завершение операции.
func (m *AggregateMetrics) RecordCompleted(aggregate, op string, duration time.Duration) {
	m.opsCompleted.WithLabelValues(aggregate, op).Inc()
	m.opDuration.WithLabelValues(aggregate, op).Observe(duration.Seconds())
	m.activeOps.Dec()
}

// RecordFailed фиксирует неуспешное завершение операции.
func (m *AggregateMetrics) RecordFailed(aggregate, op string, duration time.Duration) {
	m.opsFailed.WithLabelValues(aggregate, op).Inc()
	m.opDuration.WithLabelValues(aggregate, op).Observe(duration.Seconds())
	m.activeOps.Dec()
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}
