package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prograshaco/burger-oms/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Order
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[string]domain.Order),
	}
}

// GetAll возвращает все заказы, новые первыми.
func (r *orderRepositoryInMemory) GetAll() ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		result = append(result, order)
	}
	sortNewestFirst(result)

	return result, nil
}

// GetByStatus возвращает заказы с указанным статусом, новые первыми.
func (r *orderRepositoryInMemory) GetByStatus(status domain.OrderStatus) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0)
	for _, order := range r.items {
		if order.Status != status {
			continue
		}
		result = append(result, order)
	}
	sortNewestFirst(result)

	return result, nil
}

// GetByID возвращает заказ или ErrOrderNotFound, если его нет.
func (r *orderRepositoryInMemory) GetByID(id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

// Create генерирует новый id, выставляет начальный статус и сохраняет заказ.
func (r *orderRepositoryInMemory) Create(input domain.NewOrder) (string, error) {
	if input.Total < 0 {
		return "", domain.ErrTotalNegative
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	order := domain.Order{
		ID:          "order_" + uuid.NewString(),
		UserID:      input.UserID,
		UserName:    input.UserName,
		UserEmail:   input.UserEmail,
		UserPhone:   input.UserPhone,
		UserAddress: input.UserAddress,
		Items:       input.Items,
		Total:       input.Total,
		Status:      domain.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.items[order.ID] = order

	return order.ID, nil
}

// UpdateStatus безусловно записывает новый статус заказа.
func (r *orderRepositoryInMemory) UpdateStatus(orderID string, newStatus domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.items[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Status = newStatus
	order.UpdatedAt = time.Now().UTC()
	r.items[orderID] = order

	return nil
}

func sortNewestFirst(orders []domain.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID > orders[j].ID
	})
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
