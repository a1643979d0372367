package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/returns/internal/domain"
	"github.com/vladislavdragonenkov/returns/internal/storage/memory"
)

func receiveClaim(key, returnID, hash string) domain.IdempotencyClaim {
	return domain.IdempotencyClaim{
		Key:         key,
		Operation:   domain.IdempotencyOpReceiveReturn,
		ReturnID:    returnID,
		RequestHash: hash,
		ExpiresAt:   time.Now().UTC().Add(time.Hour),
	}
}

func TestIdempotencyRepository_ClaimAndGet(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewIdempotencyRepository()

	claimed, err := repo.Claim(ctx, receiveClaim(" idem-1 ", "ret-1", "hash-1"))
	require.NoError(t, err)
	assert.Equal(t, "idem-1", claimed.Key)
	assert.Equal(t, domain.IdempotencyStatusProcessing, claimed.Status)

	got, err := repo.Get(ctx, "idem-1")
	require.NoError(t, err)
	assert.Equal(t, domain.IdempotencyOpReceiveReturn, got.Operation)
	assert.Equal(t, "ret-1", got.ReturnID)
	assert.Equal(t, "hash-1", got.RequestHash)
}

func TestIdempotencyRepository_ClaimTakenKey(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewIdempotencyRepository()
	_, err := repo.Claim(ctx, receiveClaim("idem-2", "ret-1", "hash-a"))
	require.NoError(t, err)

	existing, err := repo.Claim(ctx, receiveClaim("idem-2", "ret-1", "hash-a"))
	assert.ErrorIs(t, err, domain.ErrIdempotencyKeyAlreadyExists)
	assert.Equal(t, domain.IdempotencyStatusProcessing, existing.Status)

	_, err = repo.Claim(ctx, receiveClaim("idem-2", "ret-1", "hash-b"))
	assert.ErrorIs(t, err, domain.ErrIdempotencyHashMismatch)

	_, err = repo.Claim(ctx, receiveClaim("idem-2", "ret-2", "hash-a"))
	assert.ErrorIs(t, err, domain.ErrIdempotencyHashMismatch)

	_, err = repo.Claim(ctx, domain.IdempotencyClaim{Key: "idem-3", Operation: domain.IdempotencyOpCancelReturn, RequestHash: "h"})
	assert.ErrorIs(t, err, domain.ErrReturnIDRequired)
}

func TestIdempotencyRepository_CompleteBindsCreatedReturn(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewIdempotencyRepository()
	claim := domain.IdempotencyClaim{Key: "idem-create", Operation: domain.IdempotencyOpCreateReturn, RequestHash: "hash"}

	_, err := repo.Claim(ctx, claim)
	require.NoError(t, err)
	require.NoError(t, repo.Complete(ctx, "idem-create", domain.IdempotencyOutcome{
		ReturnID: "ret-7",
		Response: []byte(`{"return":{"id":"ret-7"}}`),
	}))

	record, err := repo.Claim(ctx, claim)
	assert.ErrorIs(t, err, domain.ErrIdempotencyKeyAlreadyExists)
	assert.Equal(t, domain.IdempotencyStatusDone, record.Status)
	assert.Equal(t, "ret-7", record.ReturnID)
	assert.JSONEq(t, `{"return":{"id":"ret-7"}}`, string(record.Response))

	assert.ErrorIs(t, repo.Fail(ctx, "missing", domain.IdempotencyOutcome{Code: 5}), domain.ErrIdempotencyKeyNotFound)
}

func TestIdempotencyRepository_ReleaseFreesKey(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewIdempotencyRepository()

	_, err := repo.Claim(ctx, receiveClaim("idem-4", "ret-1", "hash"))
	require.NoError(t, err)
	require.NoError(t, repo.Release(ctx, "idem-4"))
	require.NoError(t, repo.Release(ctx, "idem-4"))

	_, err = repo.Claim(ctx, receiveClaim("idem-4", "ret-1", "hash"))
	assert.NoError(t, err)
}

func TestIdempotencyRepository_ExpiredKeys(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewIdempotencyRepository()

	expired := receiveClaim("idem-expired", "ret-1", "hash-old")
	expired.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	_, err := repo.Claim(ctx, expired)
	require.NoError(t, err)
	_, err = repo.Claim(ctx, receiveClaim("idem-active", "ret-1", "hash"))
	require.NoError(t, err)

	removed, err := repo.DeleteExpired(ctx, time.Now().UTC(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = repo.Get(ctx, "idem-expired")
	assert.ErrorIs(t, err, domain.ErrIdempotencyKeyNotFound)

	// Просроченный ключ занимается заново даже до очистки.
	_, err = repo.Claim(ctx, expired)
	require.NoError(t, err)
	_, err = repo.Claim(ctx, receiveClaim("idem-expired", "ret-1", "hash-new"))
	assert.NoError(t, err)
}
