// Package monitor отслеживает изменения заказов и рассылает уведомления.
package monitor

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"

	"github.com/prograshaco/burger-oms/internal/domain"
)

const defaultPollInterval = 5 * time.Second

var (
	detectorCycles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "burger_detector_cycles_total",
		Help: "Total number of change detector cycles grouped by result.",
	}, []string{"result"})
	detectorNotifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "burger_detector_notifications_total",
		Help: "Total number of notifications emitted by the change detector.",
	}, []string{"event_type"})
	detectorObservedOrders = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "burger_detector_observed_orders",
		Help: "Number of orders in the detector's last successful snapshot.",
	})
)

// DetectorOptions задаёт параметры change detector.
type DetectorOptions struct {
	Logger        *log.Entry
	SnapshotStore domain.SnapshotStore
	PollInterval  time.Duration
}

// Option настраивает Detector.
type Option func(*DetectorOptions)

// WithLogger задаёт logger для детектора.
func WithLogger(logger *log.Entry) Option {
	return func(opts *DetectorOptions) {
		opts.Logger = logger
	}
}

// WithSnapshotStore задаёт внешнее хранилище снимка между рестартами.
func WithSnapshotStore(store domain.SnapshotStore) Option {
	return func(opts *DetectorOptions) {
		opts.SnapshotStore = store
	}
}

// WithPollInterval задаёт частоту опроса заказов.
func WithPollInterval(interval time.Duration) Option {
	return func(opts *DetectorOptions) {
		opts.PollInterval = interval
	}
}

// Detector периодически сравнивает состояние заказов с последним снимком
// и публикует уведомления о новых заказах и сменах статуса.
type Detector struct {
	repo         domain.OrderRepository
	sink         domain.NotificationSink
	store        domain.SnapshotStore
	logger       *log.Entry
	pollInterval time.Duration

	snapshot domain.Snapshot
	primed   bool
	restored bool
}

// NewDetector создаёт change detector.
func NewDetector(repo domain.OrderRepository, sink domain.NotificationSink, options ...Option) *Detector {
	opts := DetectorOptions{
		PollInterval: defaultPollInterval,
	}
	for _, option := range options {
		option(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "change-detector")
	}

	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}

	return &Detector{
		repo:         repo,
		sink:         sink,
		store:        opts.SnapshotStore,
		logger:       logger,
		pollInterval: opts.PollInterval,
	}
}

// Run запускает периодический опрос заказов до отмены ctx.
func (d *Detector) Run(ctx context.Context) {
	if d.repo == nil || d.sink == nil {
		d.logger.Warn("change detector is disabled: repo or sink is nil")
		return
	}

	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	d.ProcessOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.ProcessOnce(ctx)
		}
	}
}

// ProcessOnce выполняет один цикл наблюдения.
func (d *Detector) ProcessOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	d.restoreSnapshot()

	orders, err := d.repo.GetAll()
	if err != nil {
		// Снимок остаётся нетронутым: пропущенные изменения
		// будут замечены на следующем успешном цикле.
		d.logger.WithError(err).Warn("failed to fetch orders for change detection")
		detectorCycles.WithLabelValues("fetch_error").Inc()
		return
	}

	current := domain.NewSnapshot(orders)

	if !d.primed {
		// Первый успешный цикл только фиксирует базовую линию,
		// существующие заказы не считаются новыми.
		d.replaceSnapshot(current)
		detectorCycles.WithLabelValues("primed").Inc()
		d.logger.WithField("orders", current.Len()).Info("change detector primed initial snapshot")
		return
	}

	for _, order := range orders {
		if ctx.Err() != nil {
			return
		}

		previous := d.snapshot.Statuses[order.ID]
		switch {
		case !d.snapshot.Has(order.ID):
			d.emit(domain.NewOrderEvent(order.ID, order.UserName, order.Total))
		case previous != order.Status:
			d.emit(domain.StatusChangedEvent(order.ID, order.Status, order.UserName))
		}
	}

	d.replaceSnapshot(current)
	detectorCycles.WithLabelValues("ok").Inc()
}

// restoreSnapshot однократно пытается восстановить снимок из внешнего
// хранилища, чтобы после рестарта не рассылать повторные уведомления.
func (d *Detector) restoreSnapshot() {
	if d.restored {
		return
	}
	d.restored = true

	if d.store == nil {
		return
	}

	snapshot, ok, err := d.store.Load()
	if err != nil {
		d.logger.WithError(err).Warn("failed to restore detector snapshot, starting from scratch")
		return
	}
	if !ok {
		return
	}

	d.snapshot = snapshot
	d.primed = true
	detectorObservedOrders.Set(float64(snapshot.Len()))
	d.logger.WithField("orders", snapshot.Len()).Info("restored detector snapshot")
}

func (d *Detector) replaceSnapshot(snapshot domain.Snapshot) {
	d.snapshot = snapshot
	d.primed = true
	detectorObservedOrders.Set(float64(snapshot.Len()))

	if d.store == nil {
		return
	}
	if err := d.store.Save(snapshot); err != nil {
		// Потеря снимка грозит лишь повторными уведомлениями после
		// рестарта, поэтому ошибка не прерывает цикл.
		d.logger.WithError(err).Warn("failed to persist detector snapshot")
	}
}

func (d *Detector) emit(event domain.Event) {
	if err := d.sink.Notify(event); err != nil {
		d.logger.WithError(err).WithFields(log.Fields{
			"event_type": event.Type,
			"order_id":   event.OrderID,
		}).Warn("failed to deliver change notification")
		return
	}
	detectorNotifications.WithLabelValues(string(event.Type)).Inc()
}
