package memory

import (
	"context"
	"sort"
	"time"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

type returnReasonRepository struct {
	st *state
}

// List возвращает найденные причины с дочерними причинами.
func (r *returnReasonRepository) List(_ context.Context, ids []string) ([]domain.ReturnReason, error) {
	result := make([]domain.ReturnReason, 0, len(ids))
	for _, id := range ids {
		reason, ok := r.st.reasons[id]
		if !ok {
			continue
		}
		reason.Children = nil
		for _, child := range r.st.reasons {
			if child.ParentID == reason.ID {
				reason.Children = append(reason.Children, child)
			}
		}
		sortByID(reason.Children, func(c domain.ReturnReason) string { return c.ID })
		result = append(result, reason)
	}
	return result, nil
}

type shippingRepository struct {
	st *state
}

func (r *shippingRepository) GetOption(_ context.Context, id string) (domain.ShippingOption, error) {
	option, ok := r.st.options[id]
	if !ok {
		return domain.ShippingOption{}, domain.ErrShippingOptionNotFound
	}
	return option, nil
}

func (r *shippingRepository) CreateMethod(_ context.Context, method domain.ShippingMethod) error {
	if _, exists := r.st.methods[method.ID]; exists {
		return domain.ErrReturnVersionConflict
	}
	method.Data = domain.CloneMetadata(method.Data)
	method.TaxLines = append([]domain.TaxLine(nil), method.TaxLines...)
	r.st.methods[method.ID] = method
	return nil
}

func (r *shippingRepository) SaveTaxLines(_ context.Context, methodID string, lines []domain.TaxLine) error {
	method, ok := r.st.methods[methodID]
	if !ok {
		return domain.ErrShippingOptionNotFound
	}
	method.TaxLines = append([]domain.TaxLine(nil), lines...)
	r.st.methods[methodID] = method
	return nil
}

type stockRepository struct {
	st  *state
	now func() time.Time
}

// Adjust изменяет остаток; отсутствующая запись создаётся с нуля.
func (r *stockRepository) Adjust(_ context.Context, adj domain.StockAdjustment) (domain.StockLevel, error) {
	key := stockKey{variantID: adj.VariantID, locationID: adj.LocationID}
	level, ok := r.st.stock[key]
	if !ok {
		level = domain.StockLevel{VariantID: adj.VariantID, LocationID: adj.LocationID}
	}
	level.Quantity += adj.Delta
	level.UpdatedAt = r.now()
	r.st.stock[key] = level
	return level, nil
}

func (r *stockRepository) Get(_ context.Context, variantID, locationID string) (domain.StockLevel, error) {
	level, ok := r.st.stock[stockKey{variantID: variantID, locationID: locationID}]
	if !ok {
		return domain.StockLevel{VariantID: variantID, LocationID: locationID}, nil
	}
	return level, nil
}

// timelineRepository хранит события возвратов в снимке транзакции.
type timelineRepository struct {
	st *state
}

// Append добавляет событие в хранилище.
func (r *timelineRepository) Append(_ context.Context, event domain.TimelineEvent) error {
	events := append(r.st.timeline[event.ReturnID], event)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Occurred.Before(events[j].Occurred)
	})
	r.st.timeline[event.ReturnID] = events
	return nil
}

// List возвращает события возврата в хронологическом порядке.
func (r *timelineRepository) List(_ context.Context, returnID string) ([]domain.TimelineEvent, error) {
	events := r.st.timeline[returnID]
	result := make([]domain.TimelineEvent, len(events))
	copy(result, events)
	return result, nil
}

var (
	_ domain.ReturnReasonRepository = (*returnReasonRepository)(nil)
	_ domain.ShippingRepository     = (*shippingRepository)(nil)
	_ domain.StockRepository        = (*stockRepository)(nil)
	_ domain.TimelineRepository     = (*timelineRepository)(nil)
)
