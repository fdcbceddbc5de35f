package kafka

import (
	"encoding/json"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"

	"github.com/prograshaco/burger-oms/internal/domain"
)

func TestSink_Notify(t *testing.T) {
	t.Parallel()

	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var envelope OrderEventEnvelope
		if err := json.Unmarshal(value, &envelope); err != nil {
			return err
		}
		if envelope.EventType != string(domain.EventTypeNewOrder) {
			t.Errorf("expected event type %s, got %s", domain.EventTypeNewOrder, envelope.EventType)
		}
		if envelope.OrderID != "order_1" {
			t.Errorf("expected order_1, got %s", envelope.OrderID)
		}
		if envelope.PublishedAt.IsZero() {
			t.Error("published_at must be set")
		}
		return nil
	})

	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-sink-test"),
	}
	sink := NewSink(producer, "")

	err := sink.Notify(domain.NewOrderEvent("order_1", "Ana", 18.5))
	if err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSink_NotifyProducerError(t *testing.T) {
	t.Parallel()

	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-sink-test"),
	}
	sink := NewSink(producer, TopicOrderEvents)

	err := sink.Notify(domain.StatusChangedEvent("order_2", domain.OrderStatusReady, "Luis"))
	if err == nil {
		t.Fatal("expected notify error, got nil")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSink_NotifyNilProducer(t *testing.T) {
	t.Parallel()

	sink := NewSink(nil, TopicOrderEvents)
	if err := sink.Notify(domain.NewOrderEvent("order_3", "Eva", 10)); err == nil {
		t.Fatal("expected error for nil producer")
	}
}
