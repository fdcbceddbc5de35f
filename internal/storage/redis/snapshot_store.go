// Package redis хранит снимок детектора изменений между рестартами.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prograshaco/burger-oms/internal/domain"
)

const (
	defaultSnapshotKey = "burger:detector:snapshot"
	opTimeout          = 3 * time.Second
)

type snapshotStore struct {
	client *redis.Client
	key    string
}

// NewSnapshotStore создаёт SnapshotStore поверх Redis.
// Пустой key заменяется значением по умолчанию.
func NewSnapshotStore(client *redis.Client, key string) domain.SnapshotStore {
	if key == "" {
		key = defaultSnapshotKey
	}
	return &snapshotStore{client: client, key: key}
}

// Open подключается к Redis и проверяет доступность.
func Open(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

func (s *snapshotStore) Load() (domain.Snapshot, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Snapshot{}, false, nil
		}
		return domain.Snapshot{}, false, fmt.Errorf("load snapshot: %w", err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	if snapshot.Statuses == nil {
		snapshot.Statuses = make(map[string]domain.OrderStatus)
	}

	return snapshot, true, nil
}

func (s *snapshotStore) Save(snapshot domain.Snapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	return nil
}

var _ domain.SnapshotStore = (*snapshotStore)(nil)
