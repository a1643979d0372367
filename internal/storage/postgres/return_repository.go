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

const returnColumns = `id, COALESCE(order_id, ''), COALESCE(swap_id, ''), COALESCE(claim_order_id, ''), status,
	shipping_data, location_id, refund_amount, received_at, no_notification, idempotency_key,
	metadata, version, created_at, updated_at`

type returnRepository struct {
	q   querier
	now func() time.Time
}

func (r *returnRepository) Create(ctx context.Context, ret *domain.Return) error {
	now := r.now()
	if ret.CreatedAt.IsZero() {
		ret.CreatedAt = now
	}
	if ret.UpdatedAt.IsZero() {
		ret.UpdatedAt = ret.CreatedAt
	}

	shippingData, err := marshalJSON(ret.ShippingData)
	if err != nil {
		return err
	}
	metadata, err := marshalJSON(ret.Metadata)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO returns (
			id, order_id, swap_id, claim_order_id, status, shipping_data, location_id,
			refund_amount, received_at, no_notification, idempotency_key, metadata,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		ret.ID, nullString(ret.OrderID), nullString(ret.SwapID), nullString(ret.ClaimOrderID),
		string(ret.Status), shippingData, ret.LocationID, ret.RefundAmount, ret.ReceivedAt,
		ret.NoNotification, ret.IdempotencyKey, metadata, ret.Version, ret.CreatedAt, ret.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrReturnVersionConflict
		}
		return fmt.Errorf("insert return: %w", err)
	}

	return r.insertItems(ctx, ret.ID, ret.Items)
}

func (r *returnRepository) Get(ctx context.Context, id string) (domain.Return, error) {
	return r.getOne(ctx, `SELECT `+returnColumns+` FROM returns WHERE id = $1`, id)
}

// GetForUpdate блокирует строку возврата до конца транзакции.
func (r *returnRepository) GetForUpdate(ctx context.Context, id string) (domain.Return, error) {
	return r.getOne(ctx, `SELECT `+returnColumns+` FROM returns WHERE id = $1 FOR UPDATE`, id)
}

func (r *returnRepository) GetBySwap(ctx context.Context, swapID string) (domain.Return, error) {
	return r.getOne(ctx, `
		SELECT `+returnColumns+`
		FROM returns
		WHERE swap_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, swapID)
}

// Save обновляет возврат, если версия в базе совпадает с ret.Version, и перезаписывает строки.
func (r *returnRepository) Save(ctx context.Context, ret *domain.Return) error {
	shippingData, err := marshalJSON(ret.ShippingData)
	if err != nil {
		return err
	}
	metadata, err := marshalJSON(ret.Metadata)
	if err != nil {
		return err
	}
	updatedAt := r.now()

	res, err := r.q.ExecContext(ctx, `
		UPDATE returns
		SET status = $1,
		    shipping_data = $2,
		    location_id = $3,
		    refund_amount = $4,
		    received_at = $5,
		    no_notification = $6,
		    metadata = $7,
		    version = version + 1,
		    updated_at = $8
		WHERE id = $9
		  AND version = $10
	`,
		string(ret.Status), shippingData, ret.LocationID, ret.RefundAmount, ret.ReceivedAt,
		ret.NoNotification, metadata, updatedAt, ret.ID, ret.Version,
	)
	if err != nil {
		return fmt.Errorf("update return: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		exists, err := r.exists(ctx, ret.ID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrReturnNotFound
		}
		return domain.ErrReturnVersionConflict
	}

	if _, err := r.q.ExecContext(ctx, `DELETE FROM return_items WHERE return_id = $1`, ret.ID); err != nil {
		return fmt.Errorf("delete return items: %w", err)
	}
	if err := r.insertItems(ctx, ret.ID, ret.Items); err != nil {
		return err
	}

	ret.Version++
	ret.UpdatedAt = updatedAt
	return nil
}

func (r *returnRepository) List(ctx context.Context, filter domain.ReturnFilter, page domain.Page) ([]domain.Return, error) {
	page = page.Normalize()

	var (
		where []string
		args  []any
	)
	if filter.OrderID != "" {
		args = append(args, filter.OrderID)
		where = append(where, fmt.Sprintf("order_id = $%d", len(args)))
	}
	if filter.SwapID != "" {
		args = append(args, filter.SwapID)
		where = append(where, fmt.Sprintf("swap_id = $%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		where = append(where, "status IN ("+placeholders(len(args)+1, len(statuses))+")")
		args = append(args, stringArgs(statuses)...)
	}

	query := `SELECT ` + returnColumns + ` FROM returns`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	// OrderBy уже ограничен Normalize значениями created_at и updated_at.
	direction := "DESC"
	if page.Asc {
		direction = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s, id %s", page.OrderBy, direction, direction)
	args = append(args, page.Limit, page.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Return, 0)
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, ret)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate return rows: %w", err)
	}
	rows.Close()

	for i := range result {
		if err := r.hydrate(ctx, &result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *returnRepository) getOne(ctx context.Context, query string, arg string) (domain.Return, error) {
	ret, err := scanReturn(r.q.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Return{}, domain.ErrReturnNotFound
		}
		return domain.Return{}, err
	}
	if err := r.hydrate(ctx, &ret); err != nil {
		return domain.Return{}, err
	}
	return ret, nil
}

// hydrate загружает строки и доставку возврата.
func (r *returnRepository) hydrate(ctx context.Context, ret *domain.Return) error {
	items, err := r.loadItems(ctx, ret.ID)
	if err != nil {
		return err
	}
	ret.Items = items

	method, err := (&shippingRepository{q: r.q}).methodForReturn(ctx, ret.ID)
	if err != nil {
		return err
	}
	ret.ShippingMethod = method
	return nil
}

func (r *returnRepository) insertItems(ctx context.Context, returnID string, items []domain.ReturnItem) error {
	for i, item := range items {
		metadata, err := marshalJSON(item.Metadata)
		if err != nil {
			return err
		}
		if _, err := r.q.ExecContext(ctx, `
			INSERT INTO return_items (
				return_id, item_id, position, quantity, requested_quantity, received_quantity,
				is_requested, reason_id, note, metadata
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`,
			returnID, item.ItemID, i, item.Quantity, item.RequestedQuantity, item.ReceivedQuantity,
			item.IsRequested, nullString(item.ReasonID), item.Note, metadata,
		); err != nil {
			return fmt.Errorf("insert return item: %w", err)
		}
	}
	return nil
}

func (r *returnRepository) loadItems(ctx context.Context, returnID string) ([]domain.ReturnItem, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT item_id, quantity, requested_quantity, received_quantity, is_requested,
		       COALESCE(reason_id, ''), note, metadata
		FROM return_items
		WHERE return_id = $1
		ORDER BY position ASC
	`, returnID)
	if err != nil {
		return nil, fmt.Errorf("load return items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ReturnItem, 0)
	for rows.Next() {
		item := domain.ReturnItem{ReturnID: returnID}
		var metadata []byte
		if err := rows.Scan(
			&item.ItemID, &item.Quantity, &item.RequestedQuantity, &item.ReceivedQuantity,
			&item.IsRequested, &item.ReasonID, &item.Note, &metadata,
		); err != nil {
			return nil, fmt.Errorf("scan return item: %w", err)
		}
		if item.Metadata, err = unmarshalJSON(metadata); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate return items: %w", err)
	}
	return items, nil
}

func (r *returnRepository) exists(ctx context.Context, id string) (bool, error) {
	var found string
	err := r.q.QueryRowContext(ctx, `SELECT id FROM returns WHERE id = $1`, id).Scan(&found)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, fmt.Errorf("check return exists: %w", err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReturn(row rowScanner) (domain.Return, error) {
	var (
		ret          domain.Return
		status       string
		shippingData []byte
		metadata     []byte
		receivedAt   sql.NullTime
	)
	if err := row.Scan(
		&ret.ID, &ret.OrderID, &ret.SwapID, &ret.ClaimOrderID, &status,
		&shippingData, &ret.LocationID, &ret.RefundAmount, &receivedAt, &ret.NoNotification,
		&ret.IdempotencyKey, &metadata, &ret.Version, &ret.CreatedAt, &ret.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Return{}, err
		}
		return domain.Return{}, fmt.Errorf("scan return: %w", err)
	}

	ret.Status = domain.ReturnStatus(status)
	if receivedAt.Valid {
		at := receivedAt.Time.UTC()
		ret.ReceivedAt = &at
	}
	var err error
	if ret.ShippingData, err = unmarshalJSON(shippingData); err != nil {
		return domain.Return{}, err
	}
	if ret.Metadata, err = unmarshalJSON(metadata); err != nil {
		return domain.Return{}, err
	}
	return ret, nil
}

var _ domain.ReturnRepository = (*returnRepository)(nil)
