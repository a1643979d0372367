package redis

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

func TestFieldsCodec(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record := domain.IdempotencyRecord{
		Key:         "key-1",
		Operation:   domain.IdempotencyOpCreateReturn,
		ReturnID:    "ret-1",
		RequestHash: "hash-1",
		Status:      domain.IdempotencyStatusFailed,
		Response:    []byte(`{"code":3}`),
		Code:        3,
		ExpiresAt:   now.Add(time.Hour),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	pairs := encodeFields(record)
	require.Len(t, pairs, 18)
	fields := make(map[string]string, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		fields[pairs[i].(string)] = pairs[i+1].(string)
	}

	decoded, err := decodeFields("key-1", fields)
	require.NoError(t, err)
	assert.Equal(t, record, decoded)

	fields[fieldOperation] = "refund_order"
	_, err = decodeFields("key-1", fields)
	assert.ErrorIs(t, err, domain.ErrIdempotencyOperationInvalid)

	fields[fieldOperation] = string(domain.IdempotencyOpCreateReturn)
	fields[fieldExpiresAt] = "yesterday"
	_, err = decodeFields("key-1", fields)
	assert.ErrorContains(t, err, "expires_at")
}

func TestValidationSkipsRedis(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })
	repo := NewIdempotencyRepository(client)
	ctx := context.Background()

	_, err := repo.Claim(ctx, domain.IdempotencyClaim{Key: " ", Operation: domain.IdempotencyOpCreateReturn, RequestHash: "hash"})
	assert.ErrorIs(t, err, domain.ErrIdempotencyKeyRequired)
	_, err = repo.Claim(ctx, domain.IdempotencyClaim{Key: "key", Operation: "refund", RequestHash: "hash"})
	assert.ErrorIs(t, err, domain.ErrIdempotencyOperationInvalid)
	_, err = repo.Claim(ctx, domain.IdempotencyClaim{Key: "key", Operation: domain.IdempotencyOpCancelReturn, RequestHash: "hash"})
	assert.ErrorIs(t, err, domain.ErrReturnIDRequired)
	_, err = repo.Claim(ctx, domain.IdempotencyClaim{
		Key:         "key",
		Operation:   domain.IdempotencyOpCreateReturn,
		RequestHash: "hash",
		ExpiresAt:   time.Now().Add(-time.Minute),
	})
	assert.ErrorContains(t, err, "in the past")
	_, err = repo.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrIdempotencyKeyRequired)
	assert.ErrorIs(t, repo.Release(ctx, ""), domain.ErrIdempotencyKeyRequired)

	deleted, err := repo.DeleteExpired(ctx, time.Now(), 10)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestIdempotencyRepository_Redis(t *testing.T) {
	addr := os.Getenv("RMS_REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("RMS_REDIS_TEST_ADDR is not set")
	}

	ctx := context.Background()
	client, err := Connect(ctx, addr, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	prefix := "rms:test:" + time.Now().Format("150405.000000") + ":"
	repo := NewIdempotencyRepository(client, WithKeyPrefix(prefix))

	claim := domain.IdempotencyClaim{
		Key:         "key-1",
		Operation:   domain.IdempotencyOpCreateReturn,
		RequestHash: "hash-1",
		ExpiresAt:   time.Now().Add(time.Minute),
	}
	record, err := repo.Claim(ctx, claim)
	require.NoError(t, err)
	assert.Equal(t, domain.IdempotencyStatusProcessing, record.Status)

	_, err = repo.Claim(ctx, claim)
	assert.ErrorIs(t, err, domain.ErrIdempotencyKeyAlreadyExists)
	other := claim
	other.RequestHash = "hash-2"
	_, err = repo.Claim(ctx, other)
	assert.ErrorIs(t, err, domain.ErrIdempotencyHashMismatch)

	require.NoError(t, repo.Complete(ctx, "key-1", domain.IdempotencyOutcome{
		ReturnID: "ret-1",
		Response: []byte(`{"ok":true}`),
	}))
	stored, err := repo.Get(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, domain.IdempotencyStatusDone, stored.Status)
	assert.Equal(t, "ret-1", stored.ReturnID)
	assert.JSONEq(t, `{"ok":true}`, string(stored.Response))

	ttl, err := client.TTL(ctx, prefix+"key-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	assert.ErrorIs(t, repo.Fail(ctx, "key-404", domain.IdempotencyOutcome{Code: 13}), domain.ErrIdempotencyKeyNotFound)

	require.NoError(t, repo.Release(ctx, "key-1"))
	_, err = repo.Get(ctx, "key-1")
	assert.ErrorIs(t, err, domain.ErrIdempotencyKeyNotFound)
}
