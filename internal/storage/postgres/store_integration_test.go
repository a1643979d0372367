package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/returns/internal/domain"
	"github.com/vladislavdragonenkov/returns/internal/service/fulfillment"
	"github.com/vladislavdragonenkov/returns/internal/service/inventory"
	"github.com/vladislavdragonenkov/returns/internal/service/returns"
	"github.com/vladislavdragonenkov/returns/internal/service/shipping"
	"github.com/vladislavdragonenkov/returns/internal/service/tax"
	"github.com/vladislavdragonenkov/returns/internal/storage/postgres"
)

const seedSQL = `
INSERT INTO regions (id, name, currency, tax_rate) VALUES ('eu', 'Europe', 'eur', 0);
INSERT INTO tax_rates (region_id, code, name, rate) VALUES ('eu', 'vat', 'VAT', 10);
INSERT INTO orders (id, currency, status, fulfillment_status, payment_status, region_id, total, paid_total)
VALUES ('order-1', 'eur', 'completed', 'fulfilled', 'captured', 'eu', 600, 600);
INSERT INTO line_items (id, order_id, title, variant_id, unit_price, quantity)
VALUES ('li-1', 'order-1', 'Shirt', 'v-1', 100, 5), ('li-2', 'order-1', 'Hat', 'v-2', 50, 2);
INSERT INTO return_reasons (id, value, label) VALUES ('rr-size', 'wrong_size', 'Wrong size');
INSERT INTO shipping_options (id, name, provider_id, amount, is_return)
VALUES ('so-return', 'Return label', 'manual', 50, TRUE);
`

func integrationStore(t *testing.T) *postgres.Store {
	t.Helper()
	dsn := os.Getenv("RMS_POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("RMS_POSTGRES_TEST_DSN is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := log.New()
	logger.SetLevel(log.WarnLevel)
	store, err := postgres.Open(ctx, dsn, postgres.WithLogger(logger.WithField("component", "postgres-test")))
	require.NoError(t, err)

	_, err = store.MigrateDown(ctx, 3)
	require.NoError(t, err)
	applied, err := store.MigrateUp(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, 3, applied)

	_, err = store.DB().ExecContext(ctx, seedSQL)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = store.MigrateDown(context.Background(), 3)
		_ = store.Close()
	})
	return store
}

func TestStoreIntegration_ReturnLifecycle(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()

	logger := log.New().WithField("component", "returns-test")
	registry := fulfillment.NewRegistry(fulfillment.WithLogger(logger))
	registry.Register(fulfillment.ManualProvider{})
	svc := returns.NewService(store, returns.Collaborators{
		Tax:         tax.NewService(),
		Shipping:    shipping.NewService(),
		Inventory:   inventory.NewService(logger),
		Fulfillment: registry,
	}, returns.WithLogger(logger), returns.WithDefaultLocation("wh-1"))

	created, err := svc.Create(ctx, returns.CreateInput{
		OrderID:        "order-1",
		Items:          []returns.ItemInput{{ItemID: "li-1", Quantity: 2, ReasonID: "rr-size"}},
		ShippingMethod: &returns.ShippingInput{OptionID: "so-return"},
		IdempotencyKey: "create-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnStatusRequested, created.Status)
	assert.Equal(t, int64(145), created.RefundAmount)
	require.NotNil(t, created.ShippingMethod)

	_, err = svc.Fulfill(ctx, created.ID)
	require.NoError(t, err)

	received, err := svc.Receive(ctx, returns.ReceiveInput{
		ReturnID: created.ID,
		Items:    []returns.ItemInput{{ItemID: "li-1", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnStatusReceived, received.Status)
	require.NotNil(t, received.ReceivedAt)

	var returned int32
	require.NoError(t, store.DB().QueryRowContext(ctx,
		`SELECT returned_quantity FROM line_items WHERE id = 'li-1'`).Scan(&returned))
	assert.Equal(t, int32(2), returned)

	var stock int64
	require.NoError(t, store.DB().QueryRowContext(ctx,
		`SELECT quantity FROM stock_levels WHERE variant_id = 'v-1' AND location_id = 'wh-1'`).Scan(&stock))
	assert.Equal(t, int64(2), stock)

	timeline, err := svc.Timeline(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, timeline, 3)
	assert.Equal(t, "return.received", timeline[2].Type)

	pending, err := store.Outbox().PullPending(ctx, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, pending)

	_, err = svc.Create(ctx, returns.CreateInput{
		OrderID: "order-1",
		Items:   []returns.ItemInput{{ItemID: "li-1", Quantity: 4}},
	})
	assert.ErrorIs(t, err, domain.ErrReturnQuantityExceeded)
}

func TestStoreIntegration_Idempotency(t *testing.T) {
	store := integrationStore(t)
	repo := postgres.NewIdempotencyRepository(store)
	ctx := context.Background()

	claim := domain.IdempotencyClaim{
		Key:         "key-1",
		Operation:   domain.IdempotencyOpCreateReturn,
		RequestHash: "hash-1",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	_, err := repo.Claim(ctx, claim)
	require.NoError(t, err)
	other := claim
	other.RequestHash = "hash-2"
	_, err = repo.Claim(ctx, other)
	assert.ErrorIs(t, err, domain.ErrIdempotencyHashMismatch)

	require.NoError(t, repo.Complete(ctx, "key-1", domain.IdempotencyOutcome{
		ReturnID: "ret-1",
		Response: []byte(`{"ok":true}`),
	}))
	record, err := repo.Get(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, domain.IdempotencyStatusDone, record.Status)
	assert.Equal(t, "ret-1", record.ReturnID)

	deleted, err := repo.DeleteExpired(ctx, time.Now().Add(2*time.Hour), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
}

func TestStoreIntegration_MigrationStatus(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()

	status, err := store.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), status.Version)
	assert.Equal(t, 0, status.Pending)

	rolled, err := store.MigrateDown(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, rolled)

	status, err = store.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.Version)
	assert.Equal(t, 1, status.Pending)
}
