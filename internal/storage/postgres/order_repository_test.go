package postgres

import (
	"errors"
	"testing"

	"github.com/prograshaco/burger-oms/internal/domain"
)

func TestCreate_NegativeTotal(t *testing.T) {
	t.Parallel()

	// Валидация срабатывает до обращения к базе, поэтому живое
	// соединение здесь не нужно.
	repo := &orderRepository{}

	_, err := repo.Create(domain.NewOrder{
		UserID:   "user-1",
		UserName: "Ana",
		Total:    -5,
	})
	if !errors.Is(err, domain.ErrTotalNegative) {
		t.Fatalf("expected ErrTotalNegative, got %v", err)
	}
}
