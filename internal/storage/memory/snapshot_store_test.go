package memory

import (
	"testing"

	"github.com/prograshaco/burger-oms/internal/domain"
)

func TestSnapshotStore_LoadEmpty(t *testing.T) {
	store := NewSnapshotStore()

	_, ok, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatal("fresh store must report no snapshot")
	}
}

func TestSnapshotStore_SaveAndLoad(t *testing.T) {
	store := NewSnapshotStore()

	snapshot := domain.Snapshot{Statuses: map[string]domain.OrderStatus{
		"order_1": domain.OrderStatusPending,
		"order_2": domain.OrderStatusReady,
	}}
	if err := store.Save(snapshot); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, ok, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatal("snapshot must be present after save")
	}
	if loaded.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", loaded.Len())
	}
	if loaded.Statuses["order_2"] != domain.OrderStatusReady {
		t.Fatalf("unexpected status: %s", loaded.Statuses["order_2"])
	}
}

func TestSnapshotStore_Isolation(t *testing.T) {
	store := NewSnapshotStore()

	snapshot := domain.Snapshot{Statuses: map[string]domain.OrderStatus{
		"order_1": domain.OrderStatusPending,
	}}
	if err := store.Save(snapshot); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Мутация исходной карты не должна влиять на сохранённый снимок.
	snapshot.Statuses["order_1"] = domain.OrderStatusCancelled

	loaded, _, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Statuses["order_1"] != domain.OrderStatusPending {
		t.Fatal("stored snapshot must be isolated from caller mutations")
	}

	// И мутация загруженной копии не должна влиять на хранилище.
	loaded.Statuses["order_1"] = domain.OrderStatusDelivered

	reloaded, _, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if reloaded.Statuses["order_1"] != domain.OrderStatusPending {
		t.Fatal("loaded snapshot must be a copy")
	}
}
