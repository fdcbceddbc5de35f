package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/prograshaco/burger-oms/internal/domain"
	"github.com/prograshaco/burger-oms/internal/storage/memory"
	"github.com/prograshaco/burger-oms/internal/storage/postgres"
	redisstore "github.com/prograshaco/burger-oms/internal/storage/redis"
)

// initOrderRepository выбирает хранилище заказов: PostgreSQL при наличии
// DSN, иначе in-memory. Возвращает store для health check и закрытия.
func initOrderRepository(ctx context.Context, dsn string, logger *log.Entry) (domain.OrderRepository, *postgres.Store, error) {
	if dsn == "" {
		logger.Info("postgres is not configured, using in-memory order repository")
		return memory.NewOrderRepository(), nil, nil
	}

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := store.MigrateUp(ctx); err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	logger.Info("postgres order repository initialized")
	return postgres.NewOrderRepository(store), store, nil
}

// initSnapshotStore выбирает хранилище снимка детектора: Redis при наличии
// адреса, иначе in-memory (снимок теряется при рестарте).
func initSnapshotStore(ctx context.Context, addr, key string, logger *log.Entry) (domain.SnapshotStore, func(), error) {
	if addr == "" {
		logger.Info("redis is not configured, detector snapshot is kept in memory")
		return memory.NewSnapshotStore(), func() {}, nil
	}

	client, err := redisstore.Open(ctx, addr)
	if err != nil {
		return nil, nil, err
	}

	logger.WithField("addr", addr).Info("redis snapshot store initialized")
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.WithError(err).Warn("failed to close redis client")
		}
	}
	return redisstore.NewSnapshotStore(client, key), closeFn, nil
}
