package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

type returnReasonRepository struct {
	q querier
}

// List возвращает найденные причины вместе с дочерними; отсутствующие id пропускаются.
func (r *returnReasonRepository) List(ctx context.Context, ids []string) ([]domain.ReturnReason, error) {
	if len(ids) == 0 {
		return []domain.ReturnReason{}, nil
	}
	in := placeholders(1, len(ids))
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, value, label, COALESCE(parent_id, '')
		FROM return_reasons
		WHERE id IN (`+in+`) OR parent_id IN (`+in+`)
		ORDER BY id
	`, stringArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("list return reasons: %w", err)
	}
	defer rows.Close()

	all := make([]domain.ReturnReason, 0)
	for rows.Next() {
		var reason domain.ReturnReason
		if err := rows.Scan(&reason.ID, &reason.Value, &reason.Label, &reason.ParentID); err != nil {
			return nil, fmt.Errorf("scan return reason: %w", err)
		}
		all = append(all, reason)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate return reasons: %w", err)
	}

	byID := make(map[string]domain.ReturnReason, len(all))
	for _, reason := range all {
		byID[reason.ID] = reason
	}
	result := make([]domain.ReturnReason, 0, len(ids))
	for _, id := range ids {
		reason, ok := byID[id]
		if !ok {
			continue
		}
		for _, child := range all {
			if child.ParentID == id {
				reason.Children = append(reason.Children, child)
			}
		}
		result = append(result, reason)
	}
	return result, nil
}

type shippingRepository struct {
	q querier
}

func (r *shippingRepository) GetOption(ctx context.Context, id string) (domain.ShippingOption, error) {
	var (
		option domain.ShippingOption
		data   []byte
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT id, name, provider_id, amount, is_return, data
		FROM shipping_options
		WHERE id = $1
	`, id).Scan(&option.ID, &option.Name, &option.ProviderID, &option.Amount, &option.IsReturn, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ShippingOption{}, domain.ErrShippingOptionNotFound
		}
		return domain.ShippingOption{}, fmt.Errorf("select shipping option: %w", err)
	}
	if option.Data, err = unmarshalJSON(data); err != nil {
		return domain.ShippingOption{}, err
	}
	return option, nil
}

func (r *shippingRepository) CreateMethod(ctx context.Context, method domain.ShippingMethod) error {
	data, err := marshalJSON(method.Data)
	if err != nil {
		return err
	}
	if _, err := r.q.ExecContext(ctx, `
		INSERT INTO shipping_methods (id, shipping_option_id, return_id, provider_id, price, data)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, method.ID, method.ShippingOptionID, method.ReturnID, method.ProviderID, method.Price, data); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrReturnVersionConflict
		}
		return fmt.Errorf("insert shipping method: %w", err)
	}
	return r.SaveTaxLines(ctx, method.ID, method.TaxLines)
}

// SaveTaxLines заменяет налоговые строки способа доставки.
func (r *shippingRepository) SaveTaxLines(ctx context.Context, methodID string, lines []domain.TaxLine) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM shipping_method_tax_lines WHERE method_id = $1`, methodID); err != nil {
		return fmt.Errorf("delete shipping tax lines: %w", err)
	}
	for _, line := range lines {
		if _, err := r.q.ExecContext(ctx, `
			INSERT INTO shipping_method_tax_lines (method_id, code, name, rate)
			VALUES ($1,$2,$3,$4)
		`, methodID, line.Code, line.Name, line.Rate); err != nil {
			return fmt.Errorf("insert shipping tax line: %w", err)
		}
	}
	return nil
}

func (r *shippingRepository) methodForReturn(ctx context.Context, returnID string) (*domain.ShippingMethod, error) {
	var (
		method domain.ShippingMethod
		data   []byte
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT id, shipping_option_id, return_id, provider_id, price, data
		FROM shipping_methods
		WHERE return_id = $1
	`, returnID).Scan(&method.ID, &method.ShippingOptionID, &method.ReturnID, &method.ProviderID, &method.Price, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select shipping method: %w", err)
	}
	if method.Data, err = unmarshalJSON(data); err != nil {
		return nil, err
	}
	method.TaxLines, err = loadTaxLines(ctx, r.q,
		`SELECT name, code, rate FROM shipping_method_tax_lines WHERE method_id = $1 ORDER BY code`, method.ID)
	if err != nil {
		return nil, err
	}
	return &method, nil
}

type stockRepository struct {
	q   querier
	now func() time.Time
}

// Adjust атомарно изменяет остаток; отсутствующая запись создаётся.
func (r *stockRepository) Adjust(ctx context.Context, adj domain.StockAdjustment) (domain.StockLevel, error) {
	level := domain.StockLevel{VariantID: adj.VariantID, LocationID: adj.LocationID}
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO stock_levels (variant_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (variant_id, location_id)
		DO UPDATE SET quantity = stock_levels.quantity + EXCLUDED.quantity,
		              updated_at = EXCLUDED.updated_at
		RETURNING quantity, updated_at
	`, adj.VariantID, adj.LocationID, adj.Delta, r.now()).Scan(&level.Quantity, &level.UpdatedAt)
	if err != nil {
		return domain.StockLevel{}, fmt.Errorf("adjust stock: %w", err)
	}
	return level, nil
}

func (r *stockRepository) Get(ctx context.Context, variantID, locationID string) (domain.StockLevel, error) {
	level := domain.StockLevel{VariantID: variantID, LocationID: locationID}
	err := r.q.QueryRowContext(ctx, `
		SELECT quantity, updated_at FROM stock_levels WHERE variant_id = $1 AND location_id = $2
	`, variantID, locationID).Scan(&level.Quantity, &level.UpdatedAt)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return domain.StockLevel{}, fmt.Errorf("select stock level: %w", err)
	}
	return level, nil
}

var (
	_ domain.ReturnReasonRepository = (*returnReasonRepository)(nil)
	_ domain.ShippingRepository     = (*shippingRepository)(nil)
	_ domain.StockRepository        = (*stockRepository)(nil)
)
