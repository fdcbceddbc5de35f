package kafka

import (
	"fmt"

	"github.com/prograshaco/burger-oms/internal/domain"
)

// eventPublisher — минимальный контракт продюсера, выделен для тестов.
type eventPublisher interface {
	Publish(topic, key string, payload interface{}) error
}

// Sink публикует доменные события заказов в Kafka topic.
type Sink struct {
	publisher eventPublisher
	topic     string
}

// NewSink создаёт NotificationSink поверх Kafka producer.
func NewSink(producer *Producer, topic string) *Sink {
	if topic == "" {
		topic = TopicOrderEvents
	}
	sink := &Sink{topic: topic}
	if producer != nil {
		sink.publisher = producer
	}
	return sink
}

// Notify публикует событие, ключ партиционирования — id заказа.
func (s *Sink) Notify(event domain.Event) error {
	if s == nil || s.publisher == nil {
		return fmt.Errorf("kafka sink is not initialized")
	}
	return s.publisher.Publish(s.topic, event.OrderID, NewOrderEventEnvelope(event))
}

var _ domain.NotificationSink = (*Sink)(nil)
