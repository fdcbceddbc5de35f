package app

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/prograshaco/burger-oms/internal/messaging/kafka"
)

// initKafkaProducer инициализирует Kafka producer если brokers не пустой.
// Возвращает nil если brokers пустой или подключение не удалось: сервис
// в этом случае продолжает работу без Kafka.
func initKafkaProducer(brokers string, logger *log.Entry) *kafka.Producer {
	if brokers == "" {
		return nil
	}

	brokerList := strings.Split(brokers, ",")
	producer, err := kafka.NewProducer(brokerList, nil)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return nil
	}

	logger.WithField("brokers", brokerList).Info("kafka producer initialized")
	return producer
}

// closeKafka закрывает Kafka producer если он не nil.
func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}
