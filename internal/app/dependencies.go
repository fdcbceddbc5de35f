package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/prograshaco/burger-oms/internal/domain"
	"github.com/prograshaco/burger-oms/internal/messaging/kafka"
	"github.com/prograshaco/burger-oms/internal/notify"
	"github.com/prograshaco/burger-oms/internal/service/currency"
	"github.com/prograshaco/burger-oms/internal/service/lifecycle"
	"github.com/prograshaco/burger-oms/internal/service/monitor"
	"github.com/prograshaco/burger-oms/internal/storage/postgres"
)

// Dependencies содержит собранные компоненты сервиса. Lifecycle и
// Currency отдаются встраивающему API-слою.
type Dependencies struct {
	Repo          domain.OrderRepository
	SnapshotStore domain.SnapshotStore
	Sink          domain.NotificationSink
	Lifecycle     *lifecycle.Service
	Detector      *monitor.Detector
	Currency      *currency.Service
	Logger        *log.Entry

	pgStore       *postgres.Store
	kafkaProducer *kafka.Producer
	closeFns      []func()
}

// NewDependencies собирает зависимости по конфигурации. Postgres, Redis
// и Kafka опциональны: пустые значения включают in-memory/log режим.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{Logger: logger}

	repo, pgStore, err := initOrderRepository(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		return nil, err
	}
	deps.Repo = repo
	deps.pgStore = pgStore
	if pgStore != nil {
		deps.closeFns = append(deps.closeFns, func() {
			if err := pgStore.Close(); err != nil {
				logger.WithError(err).Warn("failed to close postgres store")
			}
		})
	}

	snapshotStore, closeSnapshots, err := initSnapshotStore(ctx, cfg.RedisAddr, cfg.RedisSnapshotKey, logger)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.SnapshotStore = snapshotStore
	deps.closeFns = append(deps.closeFns, closeSnapshots)

	producer := initKafkaProducer(cfg.KafkaBrokers, logger)
	deps.kafkaProducer = producer
	if producer != nil {
		deps.closeFns = append(deps.closeFns, func() { closeKafka(producer, logger) })
	}

	deps.Sink = buildSink(producer, cfg.KafkaTopic, logger)
	deps.Lifecycle = lifecycle.NewService(repo, deps.Sink, logger.WithField("component", "lifecycle"))
	deps.Detector = monitor.NewDetector(
		repo,
		deps.Sink,
		monitor.WithSnapshotStore(snapshotStore),
		monitor.WithPollInterval(cfg.DetectorPollInterval),
		monitor.WithLogger(logger.WithField("component", "change-detector")),
	)
	deps.Currency = currency.NewService(currency.WithLogger(logger.WithField("component", "currency-service")))

	return deps, nil
}

// PostgresStore возвращает стор для health check, nil в in-memory режиме.
func (d *Dependencies) PostgresStore() *postgres.Store {
	return d.pgStore
}

// Close освобождает ресурсы в обратном порядке создания.
func (d *Dependencies) Close() {
	for i := len(d.closeFns) - 1; i >= 0; i-- {
		d.closeFns[i]()
	}
	d.closeFns = nil
}

// buildSink собирает цепочку доставки уведомлений: лог всегда,
// Kafka — при наличии продюсера.
func buildSink(producer *kafka.Producer, topic string, logger *log.Entry) domain.NotificationSink {
	logSink := notify.NewLogSink(logger.WithField("component", "notification-log-sink"))
	if producer == nil {
		return logSink
	}
	return notify.NewFanoutSink(
		logger.WithField("component", "notification-fanout"),
		logSink,
		kafka.NewSink(producer, topic),
	)
}
