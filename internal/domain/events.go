package domain

import "time"

// EventType определяет тип события жизненного цикла заказа.
type EventType string

const (
	// EventTypeNewOrder — в системе появился новый заказ.
	EventTypeNewOrder EventType = "order.new"
	// EventTypeStatusChanged — у заказа изменился статус.
	EventTypeStatusChanged EventType = "order.status_changed"
)

// Event описывает событие жизненного цикла, передаваемое в NotificationSink.
// Поле NewStatus заполнено только для EventTypeStatusChanged.
type Event struct {
	Type         EventType   `json:"event_type"`
	OrderID      string      `json:"order_id"`
	CustomerName string      `json:"customer_name"`
	Total        float64     `json:"total,omitempty"`
	NewStatus    OrderStatus `json:"new_status,omitempty"`
	OccurredAt   time.Time   `json:"occurred_at"`
}

// NewOrderEvent создаёт событие появления нового заказа.
func NewOrderEvent(orderID, customerName string, total float64) Event {
	return Event{
		Type:         EventTypeNewOrder,
		OrderID:      orderID,
		CustomerName: customerName,
		Total:        total,
		OccurredAt:   time.Now().UTC(),
	}
}

// StatusChangedEvent создаёт событие смены статуса заказа.
func StatusChangedEvent(orderID string, newStatus OrderStatus, customerName string) Event {
	return Event{
		Type:         EventTypeStatusChanged,
		OrderID:      orderID,
		CustomerName: customerName,
		NewStatus:    newStatus,
		OccurredAt:   time.Now().UTC(),
	}
}
