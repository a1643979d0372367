package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

type idempotencyRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewIdempotencyRepository создаёт PostgreSQL-реализацию IdempotencyRepository.
// Ключи живут вне транзакций возвратов: запись о запросе переживает откат операции.
func NewIdempotencyRepository(store *Store) domain.IdempotencyRepository {
	return &idempotencyRepository{db: store.DB(), now: store.now}
}

const idempotencySelect = `
	SELECT key, operation, return_id, request_hash, status, response, result_code, expires_at, created_at, updated_at
	FROM idempotency_keys
	WHERE key = $1
`

// Claim занимает ключ. Просроченный ключ перезаписывается, как если бы его уже удалил cleanup.
func (r *idempotencyRepository) Claim(ctx context.Context, claim domain.IdempotencyClaim) (domain.IdempotencyRecord, error) {
	claim = claim.Normalize()
	if err := claim.Validate(); err != nil {
		return domain.IdempotencyRecord{}, err
	}
	record := claim.Processing(r.now())

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO idempotency_keys (
			key, operation, return_id, request_hash, status, response, result_code, expires_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, NULL, 0, $6, $7, $7)
		ON CONFLICT (key) DO UPDATE
		SET operation = EXCLUDED.operation,
		    return_id = EXCLUDED.return_id,
		    request_hash = EXCLUDED.request_hash,
		    status = EXCLUDED.status,
		    response = NULL,
		    result_code = 0,
		    expires_at = EXCLUDED.expires_at,
		    created_at = EXCLUDED.created_at,
		    updated_at = EXCLUDED.updated_at
		WHERE idempotency_keys.expires_at <= $7
	`, record.Key, string(record.Operation), record.ReturnID, record.RequestHash,
		string(record.Status), record.ExpiresAt, record.CreatedAt)
	if err != nil {
		return domain.IdempotencyRecord{}, fmt.Errorf("claim idempotency key: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.IdempotencyRecord{}, fmt.Errorf("idempotency rows affected: %w", err)
	}
	if affected == 0 {
		existing, getErr := r.Get(ctx, record.Key)
		if getErr != nil {
			return domain.IdempotencyRecord{}, fmt.Errorf("load taken idempotency key: %w", getErr)
		}
		return existing, existing.Conflict(claim)
	}
	return record, nil
}

func (r *idempotencyRepository) Get(ctx context.Context, key string) (domain.IdempotencyRecord, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.IdempotencyRecord{}, domain.ErrIdempotencyKeyRequired
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var (
		record    domain.IdempotencyRecord
		operation string
		status    string
		response  []byte
	)
	err := r.db.QueryRowContext(ctx, idempotencySelect, key).Scan(
		&record.Key,
		&operation,
		&record.ReturnID,
		&record.RequestHash,
		&status,
		&response,
		&record.Code,
		&record.ExpiresAt,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.IdempotencyRecord{}, domain.ErrIdempotencyKeyNotFound
		}
		return domain.IdempotencyRecord{}, fmt.Errorf("get idempotency key: %w", err)
	}

	record.Operation = domain.IdempotencyOperation(operation)
	record.Status = domain.IdempotencyStatus(status)
	if !record.Operation.Valid() || !record.Status.Valid() {
		return domain.IdempotencyRecord{}, fmt.Errorf("idempotency key %s: operation %q status %q: %w",
			key, operation, status, domain.ErrIdempotencyOperationInvalid)
	}
	record.Response = append([]byte(nil), response...)
	return record, nil
}

func (r *idempotencyRepository) Complete(ctx context.Context, key string, outcome domain.IdempotencyOutcome) error {
	return r.settle(ctx, key, domain.IdempotencyStatusDone, outcome)
}

func (r *idempotencyRepository) Fail(ctx context.Context, key string, outcome domain.IdempotencyOutcome) error {
	return r.settle(ctx, key, domain.IdempotencyStatusFailed, outcome)
}

func (r *idempotencyRepository) Release(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.ErrIdempotencyKeyRequired
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM idempotency_keys WHERE key = $1`, key); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context, before time.Time, limit int) (int, error) {
	if before.IsZero() {
		before = r.now()
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var (
		res sql.Result
		err error
	)
	if limit > 0 {
		res, err = r.db.ExecContext(ctx, `
			DELETE FROM idempotency_keys
			WHERE key IN (
				SELECT key
				FROM idempotency_keys
				WHERE expires_at <= $1
				ORDER BY expires_at ASC
				LIMIT $2
			)
		`, before, limit)
	} else {
		res, err = r.db.ExecContext(ctx, `
			DELETE FROM idempotency_keys
			WHERE expires_at <= $1
		`, before)
	}
	if err != nil {
		return 0, fmt.Errorf("delete expired idempotency keys: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("idempotency rows affected: %w", err)
	}
	return int(affected), nil
}

// settle фиксирует итог. return_id заполняется только если итог его несёт,
// так ключ оформления привязывается к созданному возврату.
func (r *idempotencyRepository) settle(ctx context.Context, key string, status domain.IdempotencyStatus, outcome domain.IdempotencyOutcome) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.ErrIdempotencyKeyRequired
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE idempotency_keys
		SET status = $1,
		    response = $2,
		    result_code = $3,
		    return_id = COALESCE(NULLIF($4, ''), return_id),
		    updated_at = $5
		WHERE key = $6
	`,
		string(status),
		outcome.Response,
		outcome.Code,
		outcome.ReturnID,
		r.now(),
		key,
	)
	if err != nil {
		return fmt.Errorf("settle idempotency key: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("idempotency rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrIdempotencyKeyNotFound
	}
	return nil
}

var _ domain.IdempotencyRepository = (*idempotencyRepository)(nil)
