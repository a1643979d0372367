package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

// orderRepository читает заказы; движок возвратов их не изменяет.
type orderRepository struct {
	q querier
}

func (r *orderRepository) Get(ctx context.Context, id string) (domain.Order, error) {
	var (
		order             domain.Order
		status            string
		fulfillmentStatus string
		paymentStatus     string
		regionID          sql.NullString
		canceledAt        sql.NullTime
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT id, customer_id, currency, status, fulfillment_status, payment_status, region_id,
		       total, paid_total, refunded_total, canceled_at, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&order.ID, &order.CustomerID, &order.Currency, &status, &fulfillmentStatus, &paymentStatus,
		&regionID, &order.Total, &order.PaidTotal, &order.RefundedTotal, &canceledAt,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}
	order.Status = domain.OrderStatus(status)
	order.FulfillmentStatus = domain.FulfillmentStatus(fulfillmentStatus)
	order.PaymentStatus = domain.PaymentStatus(paymentStatus)
	if canceledAt.Valid {
		at := canceledAt.Time.UTC()
		order.CanceledAt = &at
	}
	order.ComputeRefundable()

	if regionID.Valid {
		if order.Region, err = r.loadRegion(ctx, regionID.String); err != nil {
			return domain.Order{}, err
		}
	}

	items := &lineItemRepository{q: r.q}
	if order.Items, err = items.query(ctx, `WHERE li.order_id = $1`, id); err != nil {
		return domain.Order{}, err
	}
	if order.Swaps, err = r.loadSwaps(ctx, id); err != nil {
		return domain.Order{}, err
	}
	for i := range order.Swaps {
		if order.Swaps[i].AdditionalItems, err = items.query(ctx, `WHERE li.swap_id = $1`, order.Swaps[i].ID); err != nil {
			return domain.Order{}, err
		}
	}
	if order.Claims, err = r.loadClaims(ctx, id); err != nil {
		return domain.Order{}, err
	}
	for i := range order.Claims {
		if order.Claims[i].AdditionalItems, err = items.query(ctx, `WHERE li.claim_order_id = $1`, order.Claims[i].ID); err != nil {
			return domain.Order{}, err
		}
	}
	return order, nil
}

func (r *orderRepository) GetSwap(ctx context.Context, id string) (domain.Swap, error) {
	var (
		sw         domain.Swap
		canceledAt sql.NullTime
	)
	err := r.q.QueryRowContext(ctx, `SELECT id, order_id, canceled_at FROM swaps WHERE id = $1`, id).
		Scan(&sw.ID, &sw.OrderID, &canceledAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Swap{}, domain.ErrSwapNotFound
		}
		return domain.Swap{}, fmt.Errorf("select swap: %w", err)
	}
	if canceledAt.Valid {
		at := canceledAt.Time.UTC()
		sw.CanceledAt = &at
	}
	return sw, nil
}

func (r *orderRepository) GetClaim(ctx context.Context, id string) (domain.Claim, error) {
	var (
		cl         domain.Claim
		canceledAt sql.NullTime
	)
	err := r.q.QueryRowContext(ctx, `SELECT id, order_id, canceled_at FROM claim_orders WHERE id = $1`, id).
		Scan(&cl.ID, &cl.OrderID, &canceledAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Claim{}, domain.ErrClaimNotFound
		}
		return domain.Claim{}, fmt.Errorf("select claim: %w", err)
	}
	if canceledAt.Valid {
		at := canceledAt.Time.UTC()
		cl.CanceledAt = &at
	}
	return cl, nil
}

func (r *orderRepository) loadRegion(ctx context.Context, id string) (domain.Region, error) {
	region := domain.Region{ID: id}
	if err := r.q.QueryRowContext(ctx, `
		SELECT name, currency, tax_rate FROM regions WHERE id = $1
	`, id).Scan(&region.Name, &region.Currency, &region.TaxRate); err != nil {
		return domain.Region{}, fmt.Errorf("select region: %w", err)
	}

	rows, err := r.q.QueryContext(ctx, `
		SELECT name, code, rate FROM tax_rates WHERE region_id = $1 ORDER BY code
	`, id)
	if err != nil {
		return domain.Region{}, fmt.Errorf("load tax rates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rate domain.TaxRate
		if err := rows.Scan(&rate.Name, &rate.Code, &rate.Rate); err != nil {
			return domain.Region{}, fmt.Errorf("scan tax rate: %w", err)
		}
		region.TaxRates = append(region.TaxRates, rate)
	}
	if err := rows.Err(); err != nil {
		return domain.Region{}, fmt.Errorf("iterate tax rates: %w", err)
	}
	return region, nil
}

func (r *orderRepository) loadSwaps(ctx context.Context, orderID string) ([]domain.Swap, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, order_id, canceled_at FROM swaps WHERE order_id = $1 ORDER BY id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load swaps: %w", err)
	}
	defer rows.Close()

	var swaps []domain.Swap
	for rows.Next() {
		var (
			sw         domain.Swap
			canceledAt sql.NullTime
		)
		if err := rows.Scan(&sw.ID, &sw.OrderID, &canceledAt); err != nil {
			return nil, fmt.Errorf("scan swap: %w", err)
		}
		if canceledAt.Valid {
			at := canceledAt.Time.UTC()
			sw.CanceledAt = &at
		}
		swaps = append(swaps, sw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate swaps: %w", err)
	}
	return swaps, nil
}

func (r *orderRepository) loadClaims(ctx context.Context, orderID string) ([]domain.Claim, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, order_id, canceled_at FROM claim_orders WHERE order_id = $1 ORDER BY id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load claims: %w", err)
	}
	defer rows.Close()

	var claims []domain.Claim
	for rows.Next() {
		var (
			cl         domain.Claim
			canceledAt sql.NullTime
		)
		if err := rows.Scan(&cl.ID, &cl.OrderID, &canceledAt); err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		if canceledAt.Valid {
			at := canceledAt.Time.UTC()
			cl.CanceledAt = &at
		}
		claims = append(claims, cl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate claims: %w", err)
	}
	return claims, nil
}

// lineItemRepository работает с позициями заказов, обменов и претензий.
type lineItemRepository struct {
	q querier
}

// lineItemSelect вычисляет ParentCanceled по владельцу позиции.
const lineItemSelect = `
	SELECT li.id, COALESCE(li.order_id, ''), COALESCE(li.swap_id, ''), COALESCE(li.claim_order_id, ''),
	       li.title, li.variant_id, li.product_id, li.unit_price, li.quantity, li.returned_quantity,
	       li.metadata,
	       COALESCE(o.canceled_at IS NOT NULL OR o.status = 'canceled', FALSE)
	       OR s.canceled_at IS NOT NULL
	       OR c.canceled_at IS NOT NULL
	FROM line_items li
	LEFT JOIN orders o ON o.id = li.order_id
	LEFT JOIN swaps s ON s.id = li.swap_id
	LEFT JOIN claim_orders c ON c.id = li.claim_order_id
`

func (r *lineItemRepository) Get(ctx context.Context, id string) (domain.LineItem, error) {
	return r.one(ctx, lineItemSelect+` WHERE li.id = $1`, id)
}

// GetForUpdate блокирует только строку позиции.
func (r *lineItemRepository) GetForUpdate(ctx context.Context, id string) (domain.LineItem, error) {
	return r.one(ctx, lineItemSelect+` WHERE li.id = $1 FOR UPDATE OF li`, id)
}

func (r *lineItemRepository) List(ctx context.Context, ids []string) ([]domain.LineItem, error) {
	if len(ids) == 0 {
		return []domain.LineItem{}, nil
	}
	rows, err := r.q.QueryContext(ctx,
		lineItemSelect+` WHERE li.id IN (`+placeholders(1, len(ids))+`) ORDER BY li.created_at, li.id`,
		stringArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer rows.Close()
	return r.collect(ctx, rows)
}

func (r *lineItemRepository) SetReturnedQuantity(ctx context.Context, id string, qty int32) error {
	res, err := r.q.ExecContext(ctx, `UPDATE line_items SET returned_quantity = $1 WHERE id = $2`, qty, id)
	if err != nil {
		return fmt.Errorf("update returned quantity: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrLineItemNotFound
	}
	return nil
}

// query выбирает позиции по условию where с одним аргументом.
func (r *lineItemRepository) query(ctx context.Context, where string, arg string) ([]domain.LineItem, error) {
	rows, err := r.q.QueryContext(ctx, lineItemSelect+where+` ORDER BY li.created_at, li.id`, arg)
	if err != nil {
		return nil, fmt.Errorf("load line items: %w", err)
	}
	defer rows.Close()
	return r.collect(ctx, rows)
}

func (r *lineItemRepository) one(ctx context.Context, query, id string) (domain.LineItem, error) {
	rows, err := r.q.QueryContext(ctx, query, id)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("select line item: %w", err)
	}
	defer rows.Close()

	items, err := r.collect(ctx, rows)
	if err != nil {
		return domain.LineItem{}, err
	}
	if len(items) == 0 {
		return domain.LineItem{}, domain.ErrLineItemNotFound
	}
	return items[0], nil
}

// collect сканирует позиции, закрывает rows и затем догружает налоговые строки.
func (r *lineItemRepository) collect(ctx context.Context, rows *sql.Rows) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0)
	for rows.Next() {
		var (
			item     domain.LineItem
			metadata []byte
		)
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.SwapID, &item.ClaimOrderID, &item.Title, &item.VariantID,
			&item.ProductID, &item.UnitPrice, &item.Quantity, &item.ReturnedQuantity, &metadata,
			&item.ParentCanceled,
		); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		var err error
		if item.Metadata, err = unmarshalJSON(metadata); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate line items: %w", err)
	}
	_ = rows.Close()

	for i := range items {
		lines, err := loadTaxLines(ctx, r.q, `SELECT name, code, rate FROM line_item_tax_lines WHERE item_id = $1 ORDER BY code`, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].TaxLines = lines
	}
	return items, nil
}

func loadTaxLines(ctx context.Context, q querier, query, ownerID string) ([]domain.TaxLine, error) {
	rows, err := q.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load tax lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.TaxLine
	for rows.Next() {
		var (
			line domain.TaxLine
			rate decimal.Decimal
		)
		if err := rows.Scan(&line.Name, &line.Code, &rate); err != nil {
			return nil, fmt.Errorf("scan tax line: %w", err)
		}
		line.Rate = rate
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tax lines: %w", err)
	}
	return lines, nil
}

var (
	_ domain.OrderRepository    = (*orderRepository)(nil)
	_ domain.LineItemRepository = (*lineItemRepository)(nil)
)
