package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := log.New()
	logger.SetLevel(log.PanicLevel)
	store := NewStore(db,
		WithLogger(log.NewEntry(logger)),
		WithClock(func() time.Time { return fixedNow }),
	)
	return store, mock
}

func TestWithinTx_Commit(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO timeline_events`).
		WithArgs("ret-1", "order-1", "return.requested", "", fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := store.WithinTx(context.Background(), func(ctx context.Context, uow domain.UnitOfWork) error {
		return uow.Timeline().Append(ctx, domain.TimelineEvent{
			ReturnID: "ret-1", OrderID: "order-1", Type: "return.requested", Occurred: fixedNow,
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := store.WithinTx(context.Background(), func(context.Context, domain.UnitOfWork) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_SerializationFailureIsConflict(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE line_items SET returned_quantity`).
		WillReturnError(&pgconn.PgError{Code: "40001", Message: "could not serialize access"})
	mock.ExpectRollback()

	err := store.WithinTx(context.Background(), func(ctx context.Context, uow domain.UnitOfWork) error {
		return uow.LineItems().SetReturnedQuantity(ctx, "li-1", 2)
	})
	assert.True(t, domain.IsVersionConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_CanceledContext(t *testing.T) {
	store, mock := newMockStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.WithinTx(ctx, func(context.Context, domain.UnitOfWork) error {
		t.Fatal("fn must not run")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockAdjustUpsert(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO stock_levels`).
		WithArgs("v-1", "wh-1", int64(3), fixedNow).
		WillReturnRows(sqlmock.NewRows([]string{"quantity", "updated_at"}).AddRow(int64(10), fixedNow))
	mock.ExpectCommit()

	var level domain.StockLevel
	err := store.WithinTx(context.Background(), func(ctx context.Context, uow domain.UnitOfWork) error {
		var err error
		level, err = uow.Stock().Adjust(ctx, domain.StockAdjustment{VariantID: "v-1", LocationID: "wh-1", Delta: 3})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), level.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockGetMissingIsZero(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT quantity, updated_at FROM stock_levels`).
		WithArgs("v-9", "").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectCommit()

	err := store.WithinTx(context.Background(), func(ctx context.Context, uow domain.UnitOfWork) error {
		level, err := uow.Stock().Get(ctx, "v-9", "")
		assert.Zero(t, level.Quantity)
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReturnReasonsWithChildren(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, value, label, COALESCE\(parent_id, ''\)\s+FROM return_reasons`).
		WithArgs("rr-size", "rr-missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "value", "label", "parent_id"}).
			AddRow("rr-size", "wrong_size", "Wrong size", "").
			AddRow("rr-size-small", "too_small", "Too small", "rr-size"))
	mock.ExpectCommit()

	var reasons []domain.ReturnReason
	err := store.WithinTx(context.Background(), func(ctx context.Context, uow domain.UnitOfWork) error {
		var err error
		reasons, err = uow.ReturnReasons().List(ctx, []string{"rr-size", "rr-missing"})
		return err
	})
	require.NoError(t, err)
	require.Len(t, reasons, 1)
	assert.True(t, reasons[0].IsCategory())
	assert.Equal(t, "rr-size-small", reasons[0].Children[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$1", placeholders(1, 1))
	assert.Equal(t, "$3, $4, $5", placeholders(3, 3))
	assert.Equal(t, "", placeholders(1, 0))
}

func TestJSONHelpers(t *testing.T) {
	data, err := marshalJSON(nil)
	require.NoError(t, err)
	assert.Nil(t, data)

	data, err = marshalJSON(map[string]any{"k": "v"})
	require.NoError(t, err)
	value, err := unmarshalJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "v", value["k"])

	_, err = unmarshalJSON([]byte("{broken"))
	assert.Error(t, err)
}

func TestErrorClassifiers(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(errors.New("x")))
	assert.True(t, isRetryable(&pgconn.PgError{Code: "40P01"}))
	assert.False(t, isRetryable(&pgconn.PgError{Code: "23505"}))
}
