// Package returns реализует жизненный цикл возврата: оформление, отправку,
// приёмку, отмену и правку. Каждая операция выполняется в одной транзакции.
package returns

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vladislavdragonenkov/returns/internal/domain"
	"github.com/vladislavdragonenkov/returns/internal/metrics"
)

const (
	opCreate   = "create"
	opReceive  = "receive"
	opFulfill  = "fulfill"
	opCancel   = "cancel"
	opUpdate   = "update"
	opRetrieve = "retrieve"
	opList     = "list"

	defaultConflictRetries = 3
	defaultConflictBackoff = 10 * time.Millisecond
)

var tracer = otel.Tracer("github.com/vladislavdragonenkov/returns/internal/service/returns")

// Collaborators — внешние сервисы, которые вызываются внутри транзакции возврата.
type Collaborators struct {
	Tax         domain.TaxService
	Shipping    domain.ShippingService
	Inventory   domain.InventoryService
	Fulfillment domain.FulfillmentService
}

// Options задаёт параметры сервиса.
type Options struct {
	Logger            *log.Entry
	Metrics           *metrics.ReturnMetrics
	Now               func() time.Time
	DefaultLocationID string
	ConflictRetries   int
	ConflictBackoff   time.Duration
}

// Option настраивает Service.
type Option func(*Options)

// WithLogger задаёт logger сервиса.
func WithLogger(logger *log.Entry) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithMetrics включает prometheus-метрики.
func WithMetrics(m *metrics.ReturnMetrics) Option {
	return func(opts *Options) {
		opts.Metrics = m
	}
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(opts *Options) {
		opts.Now = now
	}
}

// WithDefaultLocation задаёт складскую локацию, если ни запрос, ни возврат её не содержат.
func WithDefaultLocation(locationID string) Option {
	return func(opts *Options) {
		opts.DefaultLocationID = locationID
	}
}

// WithConflictRetries задаёт число попыток транзакции при конфликте версий.
func WithConflictRetries(attempts int, backoff time.Duration) Option {
	return func(opts *Options) {
		opts.ConflictRetries = attempts
		opts.ConflictBackoff = backoff
	}
}

// Service — машина состояний возврата.
type Service struct {
	tx              domain.TxManager
	tax             domain.TaxService
	shipping        domain.ShippingService
	inventory       domain.InventoryService
	fulfillment     domain.FulfillmentService
	logger          *log.Entry
	metrics         *metrics.ReturnMetrics
	now             func() time.Time
	defaultLocation string
	conflictRetries int
	conflictBackoff time.Duration
}

// NewService создаёт сервис возвратов.
func NewService(tx domain.TxManager, collab Collaborators, options ...Option) *Service {
	opts := Options{
		Now:             func() time.Time { return time.Now().UTC() },
		ConflictRetries: defaultConflictRetries,
		ConflictBackoff: defaultConflictBackoff,
	}
	for _, option := range options {
		option(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "returns")
	}
	if opts.ConflictRetries <= 0 {
		opts.ConflictRetries = 1
	}

	return &Service{
		tx:              tx,
		tax:             collab.Tax,
		shipping:        collab.Shipping,
		inventory:       collab.Inventory,
		fulfillment:     collab.Fulfillment,
		logger:          logger,
		metrics:         opts.Metrics,
		now:             opts.Now,
		defaultLocation: opts.DefaultLocationID,
		conflictRetries: opts.ConflictRetries,
		conflictBackoff: opts.ConflictBackoff,
	}
}

// execute выполняет fn в транзакции и повторяет её целиком при конфликте версий.
func (s *Service) execute(ctx context.Context, op string, attrs []attribute.KeyValue, fn func(ctx context.Context, uow domain.UnitOfWork) error) error {
	ctx, span := tracer.Start(ctx, "returns."+op, trace.WithAttributes(attrs...))
	defer span.End()

	start := time.Now()
	if s.metrics != nil {
		s.metrics.OperationStarted()
		defer s.metrics.OperationFinished()
	}

	var err error
	for attempt := 1; ; attempt++ {
		err = s.tx.WithinTx(ctx, fn)
		if err == nil || !domain.IsVersionConflict(err) || attempt >= s.conflictRetries {
			break
		}

		if s.metrics != nil {
			s.metrics.RecordVersionConflict()
		}
		s.logger.WithFields(log.Fields{
			"operation": op,
			"attempt":   attempt,
		}).Warn("version conflict detected, retrying")

		delay := s.conflictBackoff * time.Duration(1<<uint(attempt-1))
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case <-time.After(delay):
			continue
		}
		break
	}

	if s.metrics != nil {
		s.metrics.RecordDuration(op, time.Since(start))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if s.metrics != nil {
			s.metrics.RecordFailed(op, ErrorKind(err))
		}
	}
	return err
}

// emit пишет событие в outbox и timeline той же транзакцией.
func (s *Service) emit(ctx context.Context, uow domain.UnitOfWork, ret domain.Return, eventType domain.ReturnEventType, reason string) error {
	at := s.now()
	payload, err := json.Marshal(domain.NewReturnEvent(eventType, ret, at))
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}

	if _, err := uow.Outbox().Enqueue(ctx, domain.OutboxMessage{
		AggregateType: domain.AggregateTypeReturn,
		AggregateID:   ret.ID,
		EventType:     string(eventType),
		Payload:       payload,
		CreatedAt:     at,
	}); err != nil {
		return fmt.Errorf("enqueue %s event: %w", eventType, err)
	}

	if err := uow.Timeline().Append(ctx, domain.TimelineEvent{
		ReturnID: ret.ID,
		OrderID:  ret.OrderID,
		Type:     string(eventType),
		Reason:   reason,
		Occurred: at,
	}); err != nil {
		return fmt.Errorf("append %s timeline: %w", eventType, err)
	}
	return nil
}

// committed учитывает событие, записанное закоммиченной транзакцией.
func (s *Service) committed() {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordOutboxEvent()
	s.metrics.RecordTimelineEvent()
}

// parentOrder находит заказ возврата напрямую или через обмен/претензию.
func (s *Service) parentOrder(ctx context.Context, uow domain.UnitOfWork, ret domain.Return) (domain.Order, error) {
	orderID := ret.OrderID
	switch {
	case orderID != "":
	case ret.SwapID != "":
		sw, err := uow.Orders().GetSwap(ctx, ret.SwapID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("swap %s: %w", ret.SwapID, err)
		}
		orderID = sw.OrderID
	case ret.ClaimOrderID != "":
		cl, err := uow.Orders().GetClaim(ctx, ret.ClaimOrderID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("claim %s: %w", ret.ClaimOrderID, err)
		}
		orderID = cl.OrderID
	default:
		return domain.Order{}, domain.ErrOrderIDRequired
	}

	order, err := uow.Orders().Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order %s: %w", orderID, err)
	}
	return order, nil
}

// ErrorKind возвращает класс ошибки для метрик и логов.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case domain.IsNotFound(err):
		return "not_found"
	case domain.IsInvalidData(err):
		return "invalid_data"
	case domain.IsNotAllowed(err):
		return "not_allowed"
	case domain.IsVersionConflict(err):
		return "version_conflict"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "internal"
	}
}

func returnAttr(id string) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.String("return.id", id)}
}
