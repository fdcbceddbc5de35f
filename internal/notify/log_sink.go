// Package notify содержит простые реализации NotificationSink.
package notify

import (
	log "github.com/sirupsen/logrus"

	"github.com/prograshaco/burger-oms/internal/domain"
)

// LogSink пишет уведомления в структурированный лог. Используется как
// sink по умолчанию, когда Kafka не сконфигурирована.
type LogSink struct {
	logger *log.Entry
}

// NewLogSink создаёт sink поверх logrus.
func NewLogSink(logger *log.Entry) *LogSink {
	if logger == nil {
		logger = log.WithField("component", "notification-log-sink")
	}
	return &LogSink{logger: logger}
}

// Notify логирует событие. Никогда не возвращает ошибку.
func (s *LogSink) Notify(event domain.Event) error {
	fields := log.Fields{
		"event_type":    event.Type,
		"order_id":      event.OrderID,
		"customer_name": event.CustomerName,
	}
	switch event.Type {
	case domain.EventTypeNewOrder:
		fields["total"] = event.Total
		s.logger.WithFields(fields).Info("new order received")
	case domain.EventTypeStatusChanged:
		fields["new_status"] = event.NewStatus
		fields["status_label"] = domain.DisplayName(event.NewStatus)
		s.logger.WithFields(fields).Info("order status changed")
	default:
		s.logger.WithFields(fields).Info("order event")
	}
	return nil
}

var _ domain.NotificationSink = (*LogSink)(nil)

// FanoutSink доставляет события нескольким sink'ам по очереди.
// Ошибка одного получателя не мешает остальным.
type FanoutSink struct {
	sinks  []domain.NotificationSink
	logger *log.Entry
}

// NewFanoutSink создаёт составной sink.
func NewFanoutSink(logger *log.Entry, sinks ...domain.NotificationSink) *FanoutSink {
	if logger == nil {
		logger = log.WithField("component", "notification-fanout")
	}
	return &FanoutSink{sinks: sinks, logger: logger}
}

// Notify рассылает событие всем получателям, возвращает последнюю ошибку.
func (s *FanoutSink) Notify(event domain.Event) error {
	var lastErr error
	for _, sink := range s.sinks {
		if sink == nil {
			continue
		}
		if err := sink.Notify(event); err != nil {
			s.logger.WithError(err).WithField("order_id", event.OrderID).Warn("notification sink failed")
			lastErr = err
		}
	}
	return lastErr
}

var _ domain.NotificationSink = (*FanoutSink)(nil)
