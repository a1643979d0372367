// Package redis хранит ключи идемпотентности в Redis, чтобы несколько реплик сервиса
// видели одно состояние.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

const (
	defaultKeyPrefix = "rms:idempotency:"
	opTimeout        = 2 * time.Second
)

// Поля хеша, в котором лежит запись о запросе.
const (
	fieldOperation   = "operation"
	fieldReturnID    = "return_id"
	fieldRequestHash = "request_hash"
	fieldStatus      = "status"
	fieldResponse    = "response"
	fieldCode        = "code"
	fieldExpiresAt   = "expires_at"
	fieldCreatedAt   = "created_at"
	fieldUpdatedAt   = "updated_at"
)

// claimScript занимает ключ, только если его ещё нет. ARGV[1] — TTL в миллисекундах,
// остальные аргументы — пары поле/значение.
var claimScript = goredis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1], unpack(ARGV, 2))
redis.call('PEXPIRE', KEYS[1], ARGV[1])
return 1
`)

// settleScript фиксирует итог на существующем ключе, не трогая TTL.
// Пустой ARGV[4] оставляет прежний return_id.
var settleScript = goredis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
redis.call('HSET', KEYS[1], 'status', ARGV[1], 'response', ARGV[2], 'code', ARGV[3], 'updated_at', ARGV[5])
if ARGV[4] ~= '' then
	redis.call('HSET', KEYS[1], 'return_id', ARGV[4])
end
return 1
`)

// IdempotencyRepository реализует domain.IdempotencyRepository поверх Redis.
// Запись хранится хешем, срок жизни задаётся TTL ключа, поэтому DeleteExpired ничего не делает.
type IdempotencyRepository struct {
	client    goredis.Cmdable
	keyPrefix string
	now       func() time.Time
}

// Option настраивает IdempotencyRepository.
type Option func(*IdempotencyRepository)

// WithKeyPrefix задаёт префикс ключей.
func WithKeyPrefix(prefix string) Option {
	return func(r *IdempotencyRepository) {
		if prefix != "" {
			r.keyPrefix = prefix
		}
	}
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(r *IdempotencyRepository) {
		if now != nil {
			r.now = now
		}
	}
}

// NewIdempotencyRepository создаёт репозиторий поверх готового клиента.
func NewIdempotencyRepository(client goredis.Cmdable, opts ...Option) *IdempotencyRepository {
	r := &IdempotencyRepository{
		client:    client,
		keyPrefix: defaultKeyPrefix,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Connect открывает клиент и проверяет доступность Redis.
func Connect(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", addr, err)
	}
	return client, nil
}

func (r *IdempotencyRepository) redisKey(key string) string {
	return r.keyPrefix + key
}

// Claim атомарно занимает ключ скриптом; при занятом ключе возвращает сохранённую запись.
func (r *IdempotencyRepository) Claim(ctx context.Context, claim domain.IdempotencyClaim) (domain.IdempotencyRecord, error) {
	claim = claim.Normalize()
	if err := claim.Validate(); err != nil {
		return domain.IdempotencyRecord{}, err
	}

	now := r.now()
	record := claim.Processing(now)
	ttl := record.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return domain.IdempotencyRecord{}, fmt.Errorf("idempotency key %s expires at %s, already in the past", claim.Key, record.ExpiresAt)
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	args := append([]any{ttl.Milliseconds()}, encodeFields(record)...)
	created, err := claimScript.Run(ctx, r.client, []string{r.redisKey(claim.Key)}, args...).Int()
	if err != nil {
		return domain.IdempotencyRecord{}, fmt.Errorf("claim idempotency key: %w", err)
	}
	if created == 0 {
		existing, getErr := r.Get(ctx, claim.Key)
		if getErr != nil {
			return domain.IdempotencyRecord{}, fmt.Errorf("load taken idempotency key: %w", getErr)
		}
		return existing, existing.Conflict(claim)
	}
	return record, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key string) (domain.IdempotencyRecord, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.IdempotencyRecord{}, domain.ErrIdempotencyKeyRequired
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	fields, err := r.client.HGetAll(ctx, r.redisKey(key)).Result()
	if err != nil {
		return domain.IdempotencyRecord{}, fmt.Errorf("get idempotency record: %w", err)
	}
	if len(fields) == 0 {
		return domain.IdempotencyRecord{}, domain.ErrIdempotencyKeyNotFound
	}
	return decodeFields(key, fields)
}

func (r *IdempotencyRepository) Complete(ctx context.Context, key string, outcome domain.IdempotencyOutcome) error {
	return r.settle(ctx, key, domain.IdempotencyStatusDone, outcome)
}

func (r *IdempotencyRepository) Fail(ctx context.Context, key string, outcome domain.IdempotencyOutcome) error {
	return r.settle(ctx, key, domain.IdempotencyStatusFailed, outcome)
}

// Release удаляет ключ, чтобы запрос можно было повторить.
func (r *IdempotencyRepository) Release(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.ErrIdempotencyKeyRequired
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := r.client.Del(ctx, r.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}

// DeleteExpired ничего не удаляет: Redis сам вытесняет ключи по TTL.
func (r *IdempotencyRepository) DeleteExpired(context.Context, time.Time, int) (int, error) {
	return 0, nil
}

func (r *IdempotencyRepository) settle(ctx context.Context, key string, status domain.IdempotencyStatus, outcome domain.IdempotencyOutcome) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.ErrIdempotencyKeyRequired
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	updated, err := settleScript.Run(ctx, r.client, []string{r.redisKey(key)},
		string(status),
		outcome.Response,
		outcome.Code,
		outcome.ReturnID,
		formatTime(r.now()),
	).Int()
	if err != nil {
		return fmt.Errorf("settle idempotency key: %w", err)
	}
	if updated == 0 {
		return domain.ErrIdempotencyKeyNotFound
	}
	return nil
}

// encodeFields раскладывает запись в пары поле/значение для HSET.
func encodeFields(record domain.IdempotencyRecord) []any {
	return []any{
		fieldOperation, string(record.Operation),
		fieldReturnID, record.ReturnID,
		fieldRequestHash, record.RequestHash,
		fieldStatus, string(record.Status),
		fieldResponse, string(record.Response),
		fieldCode, strconv.Itoa(record.Code),
		fieldExpiresAt, formatTime(record.ExpiresAt),
		fieldCreatedAt, formatTime(record.CreatedAt),
		fieldUpdatedAt, formatTime(record.UpdatedAt),
	}
}

func decodeFields(key string, fields map[string]string) (domain.IdempotencyRecord, error) {
	record := domain.IdempotencyRecord{
		Key:         key,
		Operation:   domain.IdempotencyOperation(fields[fieldOperation]),
		ReturnID:    fields[fieldReturnID],
		RequestHash: fields[fieldRequestHash],
		Status:      domain.IdempotencyStatus(fields[fieldStatus]),
	}
	if !record.Operation.Valid() || !record.Status.Valid() {
		return domain.IdempotencyRecord{}, fmt.Errorf("idempotency key %s: operation %q status %q: %w",
			key, fields[fieldOperation], fields[fieldStatus], domain.ErrIdempotencyOperationInvalid)
	}
	if response := fields[fieldResponse]; response != "" {
		record.Response = []byte(response)
	}

	var err error
	if code := fields[fieldCode]; code != "" {
		if record.Code, err = strconv.Atoi(code); err != nil {
			return domain.IdempotencyRecord{}, fmt.Errorf("idempotency key %s: code: %w", key, err)
		}
	}
	if record.ExpiresAt, err = parseTime(fields[fieldExpiresAt]); err != nil {
		return domain.IdempotencyRecord{}, fmt.Errorf("idempotency key %s: expires_at: %w", key, err)
	}
	if record.CreatedAt, err = parseTime(fields[fieldCreatedAt]); err != nil {
		return domain.IdempotencyRecord{}, fmt.Errorf("idempotency key %s: created_at: %w", key, err)
	}
	if record.UpdatedAt, err = parseTime(fields[fieldUpdatedAt]); err != nil {
		return domain.IdempotencyRecord{}, fmt.Errorf("idempotency key %s: updated_at: %w", key, err)
	}
	return record, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, value)
}

var _ domain.IdempotencyRepository = (*IdempotencyRepository)(nil)
