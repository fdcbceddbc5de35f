package redis

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/prograshaco/burger-oms/internal/domain"
)

func openRedisForIntegrationTest(t *testing.T) *goredis.Client {
	t.Helper()

	addr := strings.TrimSpace(os.Getenv("BURGER_REDIS_TEST_ADDR"))
	if addr == "" {
		t.Skip("BURGER_REDIS_TEST_ADDR is not set, skipping redis integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := Open(ctx, addr)
	if err != nil {
		t.Fatalf("open redis: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestSnapshotStore_Integration_RoundTrip(t *testing.T) {
	client := openRedisForIntegrationTest(t)
	store := NewSnapshotStore(client, "burger:test:snapshot")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Del(ctx, "burger:test:snapshot").Err(); err != nil {
		t.Fatalf("cleanup key: %v", err)
	}

	if _, ok, err := store.Load(); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	snapshot := domain.Snapshot{Statuses: map[string]domain.OrderStatus{
		"order_1": domain.OrderStatusPending,
		"order_2": domain.OrderStatusReady,
	}}
	if err := store.Save(snapshot); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	loaded, ok, err := store.Load()
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if !ok {
		t.Fatal("snapshot must be present after save")
	}
	if loaded.Len() != 2 || loaded.Statuses["order_2"] != domain.OrderStatusReady {
		t.Fatalf("unexpected snapshot: %+v", loaded)
	}
}
