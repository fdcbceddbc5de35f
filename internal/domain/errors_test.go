package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prograshaco/burger-oms/internal/domain"
)

func TestInvalidTransitionError(t *testing.T) {
	err := &domain.InvalidTransitionError{
		From: domain.OrderStatusDelivered,
		To:   domain.OrderStatusPending,
	}

	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatal("typed error must match ErrInvalidTransition")
	}
	if !domain.IsInvalidTransition(err) {
		t.Fatal("IsInvalidTransition must report true")
	}

	var typed *domain.InvalidTransitionError
	wrapped := fmt.Errorf("update status: %w", err)
	if !errors.As(wrapped, &typed) {
		t.Fatal("errors.As must unwrap the typed error")
	}
	if typed.From != domain.OrderStatusDelivered || typed.To != domain.OrderStatusPending {
		t.Fatalf("unexpected from/to: %s -> %s", typed.From, typed.To)
	}

	want := "status transition not allowed: delivered -> pending"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestIsStoreUnavailable(t *testing.T) {
	wrapped := fmt.Errorf("get all orders: %w", domain.ErrStoreUnavailable)
	if !domain.IsStoreUnavailable(wrapped) {
		t.Fatal("wrapped ErrStoreUnavailable must be detected")
	}
	if domain.IsStoreUnavailable(domain.ErrOrderNotFound) {
		t.Fatal("ErrOrderNotFound is not a store availability error")
	}
}
