package app

import (
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Config описывает настройки запуска сервиса.
type Config struct {
	MetricsAddr string

	// Пустой PostgresDSN означает in-memory хранилище заказов.
	PostgresDSN string

	// Пустой RedisAddr означает in-memory снимок детектора.
	RedisAddr        string
	RedisSnapshotKey string

	// Пустой KafkaBrokers означает работу без Kafka, только log sink.
	KafkaBrokers string
	KafkaTopic   string

	DetectorPollInterval time.Duration
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() Config {
	return Config{
		MetricsAddr:          ":9090",
		DetectorPollInterval: 5 * time.Second,
	}
}

// ConfigFromEnv читает конфигурацию из переменных окружения BURGER_*.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("BURGER_METRICS_ADDR")); v != "" {
		cfg.MetricsAddr = v
	}
	cfg.PostgresDSN = strings.TrimSpace(os.Getenv("BURGER_POSTGRES_DSN"))
	cfg.RedisAddr = strings.TrimSpace(os.Getenv("BURGER_REDIS_ADDR"))
	cfg.RedisSnapshotKey = strings.TrimSpace(os.Getenv("BURGER_REDIS_SNAPSHOT_KEY"))
	cfg.KafkaBrokers = strings.TrimSpace(os.Getenv("BURGER_KAFKA_BROKERS"))
	cfg.KafkaTopic = strings.TrimSpace(os.Getenv("BURGER_KAFKA_TOPIC"))

	if v := strings.TrimSpace(os.Getenv("BURGER_DETECTOR_POLL_INTERVAL")); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil || interval <= 0 {
			log.WithField("value", v).Warn("invalid BURGER_DETECTOR_POLL_INTERVAL, using default")
		} else {
			cfg.DetectorPollInterval = interval
		}
	}

	return cfg
}
