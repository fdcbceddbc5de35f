package kafka

import (
	"time"

	"github.com/prograshaco/burger-oms/internal/domain"
)

// Topics для Kafka
const (
	TopicOrderEvents = "burger.order.events"
)

// OrderEventEnvelope — формат сообщения в topic заказов.
type OrderEventEnvelope struct {
	EventType    string    `json:"event_type"`
	OrderID      string    `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	Total        float64   `json:"total,omitempty"`
	NewStatus    string    `json:"new_status,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
	PublishedAt  time.Time `json:"published_at"`
}

// NewOrderEventEnvelope оборачивает доменное событие для публикации.
func NewOrderEventEnvelope(event domain.Event) OrderEventEnvelope {
	return OrderEventEnvelope{
		EventType:    string(event.Type),
		OrderID:      event.OrderID,
		CustomerName: event.CustomerName,
		Total:        event.Total,
		NewStatus:    string(event.NewStatus),
		OccurredAt:   event.OccurredAt,
		PublishedAt:  time.Now().UTC(),
	}
}
