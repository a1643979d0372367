package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReturnMetrics содержит метрики операций над возвратами.
type ReturnMetrics struct {
	// Счётчики переходов
	returnsCreated   prometheus.Counter
	returnsReceived  *prometheus.CounterVec
	returnsFulfilled prometheus.Counter
	returnsCanceled  prometheus.Counter
	operationsFailed *prometheus.CounterVec

	// Суммы и длительности
	refundAmount      prometheus.Histogram
	operationDuration *prometheus.HistogramVec
	versionConflicts  prometheus.Counter

	// Счётчики событий timeline и outbox
	timelineEvents prometheus.Counter
	outboxEvents   prometheus.Counter

	// Gauge для операций в работе
	inFlight prometheus.Gauge
}

// NewReturnMetrics создаёт метрики в регистре по умолчанию.
func NewReturnMetrics() *ReturnMetrics {
	return NewReturnMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewReturnMetricsWithRegisterer создаёт метрики в заданном регистре.
// Повторная регистрация переиспользует уже зарегистрированные коллекторы.
func NewReturnMetricsWithRegisterer(registerer prometheus.Registerer) *ReturnMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &ReturnMetrics{
		returnsCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "rms_returns_created_total",
			Help: "Total number of returns created",
		}),
		returnsReceived: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "rms_returns_received_total",
			Help: "Total number of return receipts grouped by resulting status",
		}, []string{"status"}),
		returnsFulfilled: registerCounter(registerer, prometheus.CounterOpts{
			Name: "rms_returns_fulfilled_total",
			Help: "Total number of return shipments created",
		}),
		returnsCanceled: registerCounter(registerer, prometheus.CounterOpts{
			Name: "rms_returns_canceled_total",
			Help: "Total number of returns canceled",
		}),
		operationsFailed: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "rms_return_operations_failed_total",
			Help: "Total number of failed return operations grouped by operation and error kind",
		}, []string{"operation", "kind"}),
		refundAmount: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "rms_return_refund_amount_minor",
			Help:    "Refund amounts of created returns in minor units",
			Buckets: prometheus.ExponentialBuckets(100, 4, 8),
		}),
		operationDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "rms_return_operation_duration_seconds",
			Help:    "Duration of return operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
		versionConflicts: registerCounter(registerer, prometheus.CounterOpts{
			Name: "rms_return_version_conflicts_total",
			Help: "Total number of optimistic locking conflicts retried",
		}),
		timelineEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "rms_timeline_events_total",
			Help: "Total number of timeline events recorded",
		}),
		outboxEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "rms_outbox_events_total",
			Help: "Total number of outbox events enqueued",
		}),
		inFlight: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "rms_return_operations_in_flight",
			Help: "Number of return operations currently executing",
		}),
	}
}

func register[C prometheus.Collector](registerer prometheus.Registerer, name string, collector C) C {
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(C)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", name))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector %q: %v", name, err))
	}
	return collector
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	return register[prometheus.Counter](registerer, opts.Name, prometheus.NewCounter(opts))
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	return register(registerer, opts.Name, prometheus.NewCounterVec(opts, labels))
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	return register[prometheus.Gauge](registerer, opts.Name, prometheus.NewGauge(opts))
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	return register[prometheus.Histogram](registerer, opts.Name, prometheus.NewHistogram(opts))
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	return register(registerer, opts.Name, prometheus.NewHistogramVec(opts, labels))
}

// RecordCreated учитывает созданный возврат и его сумму.
func (m *ReturnMetrics) RecordCreated(refundAmount int64) {
	m.returnsCreated.Inc()
	m.refundAmount.Observe(float64(refundAmount))
}

// RecordReceived учитывает приёмку с итоговым статусом.
func (m *ReturnMetrics) RecordReceived(status string) {
	m.returnsReceived.WithLabelValues(status).Inc()
}

// RecordFulfilled учитывает созданную обратную отправку.
func (m *ReturnMetrics) RecordFulfilled() {
	m.returnsFulfilled.Inc()
}

// RecordCanceled учитывает отмену возврата.
func (m *ReturnMetrics) RecordCanceled() {
	m.returnsCanceled.Inc()
}

// RecordFailed учитывает неуспешную операцию.
func (m *ReturnMetrics) RecordFailed(operation, kind string) {
	m.operationsFailed.WithLabelValues(operation, kind).Inc()
}

// RecordVersionConflict учитывает конфликт optimistic locking.
func (m *ReturnMetrics) RecordVersionConflict() {
	m.versionConflicts.Inc()
}

// RecordDuration записывает длительность операции.
func (m *ReturnMetrics) RecordDuration(operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordTimelineEvent увеличивает счётчик событий timeline.
func (m *ReturnMetrics) RecordTimelineEvent() {
	m.timelineEvents.Inc()
}

// RecordOutboxEvent увеличивает счётчик событий outbox.
func (m *ReturnMetrics) RecordOutboxEvent() {
	m.outboxEvents.Inc()
}

// OperationStarted увеличивает количество операций в работе.
func (m *ReturnMetrics) OperationStarted() {
	m.inFlight.Inc()
}

// OperationFinished уменьшает количество операций в работе.
func (m *ReturnMetrics) OperationFinished() {
	m.inFlight.Dec()
}
