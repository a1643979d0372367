package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/returns/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/returns/internal/health"
	"github.com/vladislavdragonenkov/returns/internal/metrics"
	"github.com/vladislavdragonenkov/returns/internal/service/fulfillment"
	"github.com/vladislavdragonenkov/returns/internal/service/inventory"
	"github.com/vladislavdragonenkov/returns/internal/service/returns"
	"github.com/vladislavdragonenkov/returns/internal/service/shipping"
	"github.com/vladislavdragonenkov/returns/internal/service/tax"
	"github.com/vladislavdragonenkov/returns/internal/storage/memory"
	"github.com/vladislavdragonenkov/returns/internal/storage/postgres"
	redisstore "github.com/vladislavdragonenkov/returns/internal/storage/redis"
)

// runtimeDependencies — хранилища, выбранные по конфигурации.
type runtimeDependencies struct {
	tx              domain.TxManager
	outboxRepo      domain.OutboxRepository
	idempotencyRepo domain.IdempotencyRepository
	checkers        map[string]healthcheck.Checker
	closers         []func() error
}

// closeFn закрывает подключения в обратном порядке открытия.
func (d *runtimeDependencies) closeFn() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}

// outboxSource отдаёт outbox вне транзакций сервиса.
type outboxSource interface {
	Outbox() domain.OutboxRepository
}

// initRuntimeDependencies открывает хранилище возвратов и хранилище ключей идемпотентности.
func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	deps := &runtimeDependencies{checkers: make(map[string]healthcheck.Checker)}

	switch cfg.StorageDriver {
	case StorageDriverMemory:
		store := memory.NewStore()
		if cfg.FixturesPath != "" {
			if err := memory.LoadFixturesFile(store, cfg.FixturesPath); err != nil {
				return nil, fmt.Errorf("load fixtures: %w", err)
			}
			logger.WithField("path", cfg.FixturesPath).Info("memory fixtures loaded")
		}
		deps.tx = store
		deps.idempotencyRepo = memory.NewIdempotencyRepository()
		setOutbox(deps, store)

	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, errors.New("postgres storage driver requires postgres_dsn")
		}
		store, err := postgres.Open(ctx, cfg.PostgresDSN, postgres.WithLogger(logger.WithField("component", "postgres")))
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, store.Close)

		if cfg.PostgresAutoMigrate {
			applied, err := store.MigrateUp(ctx, 0)
			if err != nil {
				_ = deps.closeFn()
				return nil, fmt.Errorf("auto migrate: %w", err)
			}
			logger.WithField("applied", applied).Info("postgres migrations are up to date")
		}

		deps.tx = store
		deps.idempotencyRepo = postgres.NewIdempotencyRepository(store)
		deps.checkers["postgres"] = healthcheck.NewSimpleChecker("postgres", store.Ping)
		setOutbox(deps, store)

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if cfg.RedisAddr != "" {
		client, err := redisstore.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			_ = deps.closeFn()
			return nil, err
		}
		deps.closers = append(deps.closers, client.Close)
		deps.idempotencyRepo = redisstore.NewIdempotencyRepository(client)
		deps.checkers["redis"] = healthcheck.NewSimpleChecker("redis", func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
		logger.WithField("addr", cfg.RedisAddr).Info("idempotency keys are stored in redis")
	}

	return deps, nil
}

func setOutbox(deps *runtimeDependencies, source outboxSource) {
	deps.outboxRepo = source.Outbox()
}

// newReturnsService собирает машину состояний возврата с адаптерами склада и фулфилмента.
func newReturnsService(deps *runtimeDependencies, cfg Config, registerer prometheus.Registerer, logger *log.Entry) *returns.Service {
	registry := fulfillment.NewRegistry(fulfillment.WithLogger(logger.WithField("component", "fulfillment")))
	registry.Register(fulfillment.ManualProvider{})

	return returns.NewService(deps.tx, returns.Collaborators{
		Tax:         tax.NewService(),
		Shipping:    shipping.NewService(),
		Inventory:   inventory.NewService(logger.WithField("component", "inventory")),
		Fulfillment: registry,
	},
		returns.WithLogger(logger.WithField("component", "returns")),
		returns.WithMetrics(metrics.NewReturnMetricsWithRegisterer(registerer)),
		returns.WithDefaultLocation(cfg.DefaultLocationID),
	)
}
