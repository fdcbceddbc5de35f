package memory

import (
	"errors"
	"strings"
	"testing"

	"github.com/prograshaco/burger-oms/internal/domain"
)

func makeInput(userName string) domain.NewOrder {
	return domain.NewOrder{
		UserID:   "user-1",
		UserName: userName,
		Items:    `[{"name":"Hamburguesa Doble","quantity":1,"price":18.5}]`,
		Total:    18.5,
	}
}

func TestCreateAndGetByID(t *testing.T) {
	repo := NewOrderRepository()

	orderID, err := repo.Create(makeInput("Ana"))
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if !strings.HasPrefix(orderID, "order_") {
		t.Fatalf("unexpected order id format: %s", orderID)
	}

	order, err := repo.GetByID(orderID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if order.Status != domain.OrderStatusPending {
		t.Fatalf("new order must be pending, got %s", order.Status)
	}
	if order.UserName != "Ana" {
		t.Fatalf("unexpected user name: %s", order.UserName)
	}
	if order.CreatedAt.IsZero() || order.UpdatedAt.IsZero() {
		t.Fatal("timestamps must be set on create")
	}
}

func TestCreate_NegativeTotal(t *testing.T) {
	repo := NewOrderRepository()

	input := makeInput("Ana")
	input.Total = -5

	if _, err := repo.Create(input); !errors.Is(err, domain.ErrTotalNegative) {
		t.Fatalf("expected ErrTotalNegative, got %v", err)
	}

	orders, err := repo.GetAll()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("rejected order must not be persisted, got %v", orders)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo := NewOrderRepository()

	if _, err := repo.GetByID("order_missing"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := NewOrderRepository()

	orderID, err := repo.Create(makeInput("Ana"))
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if err := repo.UpdateStatus(orderID, domain.OrderStatusConfirmed); err != nil {
		t.Fatalf("update status: %v", err)
	}

	order, err := repo.GetByID(orderID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if order.Status != domain.OrderStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", order.Status)
	}

	if err := repo.UpdateStatus("order_missing", domain.OrderStatusReady); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestGetAll_Sorted(t *testing.T) {
	repo := NewOrderRepository()

	ids := make(map[string]bool)
	for i := 0; i < 5; i++ {
		id, err := repo.Create(makeInput("Ana"))
		if err != nil {
			t.Fatalf("create order: %v", err)
		}
		ids[id] = true
	}

	orders, err := repo.GetAll()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(orders) != 5 {
		t.Fatalf("expected 5 orders, got %d", len(orders))
	}
	for _, order := range orders {
		if !ids[order.ID] {
			t.Fatalf("unexpected order id %s", order.ID)
		}
	}
	for i := 1; i < len(orders); i++ {
		prev, cur := orders[i-1], orders[i]
		if cur.CreatedAt.After(prev.CreatedAt) {
			t.Fatal("orders must be sorted newest first")
		}
		if cur.CreatedAt.Equal(prev.CreatedAt) && cur.ID > prev.ID {
			t.Fatal("ties must be broken by id descending")
		}
	}
}

func TestGetByStatus(t *testing.T) {
	repo := NewOrderRepository()

	first, err := repo.Create(makeInput("Ana"))
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	second, err := repo.Create(makeInput("Luis"))
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if err := repo.UpdateStatus(second, domain.OrderStatusReady); err != nil {
		t.Fatalf("update status: %v", err)
	}

	ready, err := repo.GetByStatus(domain.OrderStatusReady)
	if err != nil {
		t.Fatalf("get by status: %v", err)
	}
	if len(ready) != 1 || ready[0].ID != second {
		t.Fatalf("expected only %s in ready, got %v", second, ready)
	}

	pending, err := repo.GetByStatus(domain.OrderStatusPending)
	if err != nil {
		t.Fatalf("get by status: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != first {
		t.Fatalf("expected only %s in pending, got %v", first, pending)
	}
}
