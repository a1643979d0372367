package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

// IdempotencyRepository держит ключи идемпотентности в памяти процесса.
type IdempotencyRepository struct {
	mu      sync.Mutex
	records map[string]domain.IdempotencyRecord
	now     func() time.Time
}

// NewIdempotencyRepository создаёт in-memory реализацию domain.IdempotencyRepository.
func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{
		records: make(map[string]domain.IdempotencyRecord),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Claim занимает ключ. Просроченная запись считается удалённой.
func (r *IdempotencyRepository) Claim(_ context.Context, claim domain.IdempotencyClaim) (domain.IdempotencyRecord, error) {
	claim = claim.Normalize()
	if err := claim.Validate(); err != nil {
		return domain.IdempotencyRecord{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if existing, ok := r.records[claim.Key]; ok && !existing.Expired(now) {
		return existing.Clone(), existing.Conflict(claim)
	}

	record := claim.Processing(now)
	r.records[claim.Key] = record
	return record, nil
}

func (r *IdempotencyRepository) Get(_ context.Context, key string) (domain.IdempotencyRecord, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.IdempotencyRecord{}, domain.ErrIdempotencyKeyRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[key]
	if !ok {
		return domain.IdempotencyRecord{}, domain.ErrIdempotencyKeyNotFound
	}
	return record.Clone(), nil
}

func (r *IdempotencyRepository) Complete(_ context.Context, key string, outcome domain.IdempotencyOutcome) error {
	return r.settle(key, domain.IdempotencyStatusDone, outcome)
}

func (r *IdempotencyRepository) Fail(_ context.Context, key string, outcome domain.IdempotencyOutcome) error {
	return r.settle(key, domain.IdempotencyStatusFailed, outcome)
}

// Release удаляет ключ; отсутствие ключа ошибкой не считается.
func (r *IdempotencyRepository) Release(_ context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.ErrIdempotencyKeyRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, key)
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(_ context.Context, before time.Time, limit int) (int, error) {
	if before.IsZero() {
		before = r.now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, record := range r.records {
		if !record.Expired(before) {
			continue
		}
		delete(r.records, key)
		removed++
		if limit > 0 && removed >= limit {
			break
		}
	}
	return removed, nil
}

func (r *IdempotencyRepository) settle(key string, status domain.IdempotencyStatus, outcome domain.IdempotencyOutcome) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.ErrIdempotencyKeyRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[key]
	if !ok {
		return domain.ErrIdempotencyKeyNotFound
	}
	r.records[key] = record.Settle(status, outcome, r.now())
	return nil
}

var _ domain.IdempotencyRepository = (*IdempotencyRepository)(nil)
