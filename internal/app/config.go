package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/vladislavdragonenkov/returns/internal/messaging/kafka"
)

const (
	// StorageDriverMemory хранит данные в памяти процесса (заказы берутся из фикстур).
	StorageDriverMemory = "memory"
	// StorageDriverPostgres хранит данные в PostgreSQL.
	StorageDriverPostgres = "postgres"

	envPrefix      = "RMS"
	configFileName = "rms"
)

// Config описывает настройки запуска return-service.
type Config struct {
	GRPCAddr    string
	MetricsAddr string

	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool
	FixturesPath        string

	KafkaBrokers       []string
	KafkaClientID      string
	KafkaGroupID       string
	KafkaEventsTopic   string
	KafkaReceiptsTopic string
	KafkaDLQTopic      string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
	OutboxRetryDelay   time.Duration

	IdempotencyCleanupInterval  time.Duration
	IdempotencyCleanupBatchSize int

	DefaultLocationID string
	LogLevel          string
	ShutdownTimeout   time.Duration
}

// DefaultConfig возвращает настройки для локального запуска на in-memory хранилище.
func DefaultConfig() Config {
	return Config{
		GRPCAddr:                    ":50051",
		MetricsAddr:                 ":9090",
		StorageDriver:               StorageDriverMemory,
		PostgresAutoMigrate:         true,
		KafkaClientID:               "return-service",
		KafkaGroupID:                "return-service",
		KafkaEventsTopic:            kafka.TopicReturnEvents,
		KafkaReceiptsTopic:          kafka.TopicWarehouseReceipts,
		KafkaDLQTopic:               kafka.TopicDeadLetterQueue,
		OutboxPollInterval:          time.Second,
		OutboxBatchSize:             100,
		OutboxMaxAttempts:           3,
		OutboxRetryDelay:            200 * time.Millisecond,
		IdempotencyCleanupInterval:  10 * time.Minute,
		IdempotencyCleanupBatchSize: 500,
		LogLevel:                    "info",
		ShutdownTimeout:             5 * time.Second,
	}
}

// LoadConfig собирает Config из значений по умолчанию, YAML-файла и переменных окружения RMS_*.
// Пустой path означает поиск rms.yaml в текущем каталоге; отсутствие файла не ошибка.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/rms")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{
		GRPCAddr:                    v.GetString("grpc_addr"),
		MetricsAddr:                 v.GetString("metrics_addr"),
		StorageDriver:               strings.ToLower(strings.TrimSpace(v.GetString("storage_driver"))),
		PostgresDSN:                 v.GetString("postgres_dsn"),
		PostgresAutoMigrate:         v.GetBool("postgres_auto_migrate"),
		FixturesPath:                v.GetString("fixtures_path"),
		KafkaBrokers:                splitList(v.GetStringSlice("kafka_brokers")),
		KafkaClientID:               v.GetString("kafka_client_id"),
		KafkaGroupID:                v.GetString("kafka_group_id"),
		KafkaEventsTopic:            v.GetString("kafka_events_topic"),
		KafkaReceiptsTopic:          v.GetString("kafka_receipts_topic"),
		KafkaDLQTopic:               v.GetString("kafka_dlq_topic"),
		RedisAddr:                   v.GetString("redis_addr"),
		RedisPassword:               v.GetString("redis_password"),
		RedisDB:                     v.GetInt("redis_db"),
		OutboxPollInterval:          v.GetDuration("outbox_poll_interval"),
		OutboxBatchSize:             v.GetInt("outbox_batch_size"),
		OutboxMaxAttempts:           v.GetInt("outbox_max_attempts"),
		OutboxRetryDelay:            v.GetDuration("outbox_retry_delay"),
		IdempotencyCleanupInterval:  v.GetDuration("idempotency_cleanup_interval"),
		IdempotencyCleanupBatchSize: v.GetInt("idempotency_cleanup_batch_size"),
		DefaultLocationID:           v.GetString("default_location_id"),
		LogLevel:                    v.GetString("log_level"),
		ShutdownTimeout:             v.GetDuration("shutdown_timeout"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults регистрирует ключи в viper: AutomaticEnv видит только известные ключи.
func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("grpc_addr", cfg.GRPCAddr)
	v.SetDefault("metrics_addr", cfg.MetricsAddr)
	v.SetDefault("storage_driver", cfg.StorageDriver)
	v.SetDefault("postgres_dsn", cfg.PostgresDSN)
	v.SetDefault("postgres_auto_migrate", cfg.PostgresAutoMigrate)
	v.SetDefault("fixtures_path", cfg.FixturesPath)
	v.SetDefault("kafka_brokers", []string{})
	v.SetDefault("kafka_client_id", cfg.KafkaClientID)
	v.SetDefault("kafka_group_id", cfg.KafkaGroupID)
	v.SetDefault("kafka_events_topic", cfg.KafkaEventsTopic)
	v.SetDefault("kafka_receipts_topic", cfg.KafkaReceiptsTopic)
	v.SetDefault("kafka_dlq_topic", cfg.KafkaDLQTopic)
	v.SetDefault("redis_addr", cfg.RedisAddr)
	v.SetDefault("redis_password", cfg.RedisPassword)
	v.SetDefault("redis_db", cfg.RedisDB)
	v.SetDefault("outbox_poll_interval", cfg.OutboxPollInterval)
	v.SetDefault("outbox_batch_size", cfg.OutboxBatchSize)
	v.SetDefault("outbox_max_attempts", cfg.OutboxMaxAttempts)
	v.SetDefault("outbox_retry_delay", cfg.OutboxRetryDelay)
	v.SetDefault("idempotency_cleanup_interval", cfg.IdempotencyCleanupInterval)
	v.SetDefault("idempotency_cleanup_batch_size", cfg.IdempotencyCleanupBatchSize)
	v.SetDefault("default_location_id", cfg.DefaultLocationID)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("shutdown_timeout", cfg.ShutdownTimeout)
}

// splitList принимает и YAML-список, и строку "a,b" из переменной окружения.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate проверяет согласованность настроек.
func (c Config) Validate() error {
	var errs []error

	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			errs = append(errs, errors.New("postgres storage driver requires postgres_dsn"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported storage driver %q", c.StorageDriver))
	}

	if c.GRPCAddr == "" {
		errs = append(errs, errors.New("grpc_addr is required"))
	}
	if c.OutboxPollInterval <= 0 {
		errs = append(errs, errors.New("outbox_poll_interval must be positive"))
	}
	if c.OutboxBatchSize <= 0 {
		errs = append(errs, errors.New("outbox_batch_size must be positive"))
	}
	if c.OutboxMaxAttempts <= 0 {
		errs = append(errs, errors.New("outbox_max_attempts must be positive"))
	}
	if c.OutboxRetryDelay < 0 {
		errs = append(errs, errors.New("outbox_retry_delay must not be negative"))
	}
	if c.IdempotencyCleanupInterval <= 0 {
		errs = append(errs, errors.New("idempotency_cleanup_interval must be positive"))
	}
	if c.IdempotencyCleanupBatchSize <= 0 {
		errs = append(errs, errors.New("idempotency_cleanup_batch_size must be positive"))
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaGroupID == "" {
		errs = append(errs, errors.New("kafka_group_id is required when kafka_brokers are set"))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Level разбирает LogLevel; пустое значение означает info.
func (c Config) Level() (log.Level, error) {
	if strings.TrimSpace(c.LogLevel) == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log_level: %w", err)
	}
	return level, nil
}
