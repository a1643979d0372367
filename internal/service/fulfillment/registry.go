// Package fulfillment выбирает провайдера обратной отправки и вызывает его
// с повторами и circuit breaker.
package fulfillment

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

const (
	defaultBreakerFailures = 5
	defaultBreakerReset    = 30 * time.Second
)

// Option настраивает Registry.
type Option func(*Registry)

// WithLogger задаёт logger реестра.
func WithLogger(logger *log.Entry) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRetryConfig задаёт политику повторов.
func WithRetryConfig(cfg RetryConfig) Option {
	return func(r *Registry) {
		r.retry = cfg
	}
}

// WithBreaker задаёт параметры circuit breaker для каждого провайдера.
func WithBreaker(maxFailures int, resetTimeout time.Duration) Option {
	return func(r *Registry) {
		r.breakerFailures = maxFailures
		r.breakerReset = resetTimeout
	}
}

type entry struct {
	provider domain.FulfillmentProvider
	breaker  *CircuitBreaker
}

// Registry хранит провайдеров по идентификатору.
type Registry struct {
	mu              sync.RWMutex
	providers       map[string]entry
	logger          *log.Entry
	retry           RetryConfig
	breakerFailures int
	breakerReset    time.Duration
}

// NewRegistry создаёт реестр провайдеров.
func NewRegistry(options ...Option) *Registry {
	r := &Registry{
		providers:       make(map[string]entry),
		logger:          log.WithField("component", "fulfillment"),
		retry:           DefaultRetryConfig(),
		breakerFailures: defaultBreakerFailures,
		breakerReset:    defaultBreakerReset,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Register добавляет провайдера; повторная регистрация заменяет прежнего.
func (r *Registry) Register(provider domain.FulfillmentProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := provider.Identifier()
	r.providers[id] = entry{
		provider: provider,
		breaker:  NewCircuitBreaker(r.breakerFailures, r.breakerReset, r.logger.WithField("provider_id", id)),
	}
}

// CreateReturn создаёт обратную отправку у провайдера providerID.
func (r *Registry) CreateReturn(ctx context.Context, providerID string, data domain.ReturnFulfillment) (map[string]any, error) {
	r.mu.RLock()
	e, ok := r.providers[providerID]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("provider %q: %w", providerID, domain.ErrFulfillmentProviderNotFound)
	}

	logger := r.logger.WithFields(log.Fields{
		"provider_id": providerID,
		"return_id":   data.Return.ID,
	})

	var shippingData map[string]any
	err := e.breaker.Execute("create_return", func() error {
		return retry(ctx, r.retry, logger, func() error {
			out, err := e.provider.CreateReturn(ctx, data)
			if err != nil {
				return err
			}
			shippingData = out
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("provider %q create return: %w", providerID, err)
	}
	return shippingData, nil
}

var _ domain.FulfillmentService = (*Registry)(nil)
