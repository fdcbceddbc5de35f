package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LifecycleMetrics содержит метрики операций жизненного цикла заказа.
type LifecycleMetrics struct {
	// Счётчики операций
	ordersCreated      prometheus.Counter
	statusUpdates      *prometheus.CounterVec
	invalidTransitions prometheus.Counter
	createFailed       prometheus.Counter
	updateFailed       prometheus.Counter

	// Счётчики уведомлений
	notifications      *prometheus.CounterVec
	notificationErrors prometheus.Counter

	// Гистограмма времени операций
	operationDuration *prometheus.HistogramVec
}

// NewLifecycleMetrics создаёт метрики на default-регистраторе.
func NewLifecycleMetrics() *LifecycleMetrics {
	return newLifecycleMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newLifecycleMetricsWithRegisterer(registerer prometheus.Registerer) *LifecycleMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &LifecycleMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "burger_orders_created_total",
			Help: "Total number of orders created",
		}),
		statusUpdates: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "burger_order_status_updates_total",
			Help: "Total number of successful status updates grouped by new status",
		}, []string{"status"}),
		invalidTransitions: registerCounter(registerer, prometheus.CounterOpts{
			Name: "burger_order_invalid_transitions_total",
			Help: "Total number of status updates rejected by the transition policy",
		}),
		createFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "burger_order_create_failed_total",
			Help: "Total number of failed order creations",
		}),
		updateFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "burger_order_update_failed_total",
			Help: "Total number of status updates failed in the repository",
		}),
		notifications: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "burger_notifications_total",
			Help: "Total number of lifecycle notifications emitted grouped by event type",
		}, []string{"event_type"}),
		notificationErrors: registerCounter(registerer, prometheus.CounterOpts{
			Name: "burger_notification_errors_total",
			Help: "Total number of notification sink delivery errors",
		}),
		operationDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "burger_order_operation_duration_seconds",
			Help:    "Duration of lifecycle operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
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

// RecordOrderCreated увеличивает счётчик созданных заказов.
func (m *LifecycleMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
}

// RecordStatusUpdate увеличивает счётчик успешных смен статуса.
func (m *LifecycleMetrics) RecordStatusUpdate(status string) {
	m.statusUpdates.WithLabelValues(status).Inc()
}

// RecordInvalidTransition увеличивает счётчик отклонённых переходов.
func (m *LifecycleMetrics) RecordInvalidTransition() {
	m.invalidTransitions.Inc()
}

// RecordCreateFailed увеличивает счётчик неудачных созданий заказа.
func (m *LifecycleMetrics) RecordCreateFailed() {
	m.createFailed.Inc()
}

// RecordUpdateFailed увеличивает счётчик неудачных записей статуса.
func (m *LifecycleMetrics) RecordUpdateFailed() {
	m.updateFailed.Inc()
}

// RecordNotification увеличивает счётчик отправленных уведомлений.
func (m *LifecycleMetrics) RecordNotification(eventType string) {
	m.notifications.WithLabelValues(eventType).Inc()
}

// RecordNotificationError увеличивает счётчик ошибок доставки уведомлений.
func (m *LifecycleMetrics) RecordNotificationError() {
	m.notificationErrors.Inc()
}

// RecordOperationDuration записывает длительность операции жизненного цикла.
func (m *LifecycleMetrics) RecordOperationDuration(operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
