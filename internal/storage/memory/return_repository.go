package memory

import (
	"context"
	"sort"
	"time"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

// returnRepository хранит возвраты в снимке транзакции.
type returnRepository struct {
	st  *state
	now func() time.Time
}

// Create сохраняет новый возврат, если ID ещё не занят.
func (r *returnRepository) Create(_ context.Context, ret *domain.Return) error {
	if _, exists := r.st.returns[ret.ID]; exists {
		return domain.ErrReturnVersionConflict
	}
	now := r.now()
	if ret.CreatedAt.IsZero() {
		ret.CreatedAt = now
	}
	if ret.UpdatedAt.IsZero() {
		ret.UpdatedAt = ret.CreatedAt
	}
	r.st.returns[ret.ID] = cloneReturn(*ret)
	return nil
}

// Get возвращает возврат или ErrReturnNotFound.
func (r *returnRepository) Get(_ context.Context, id string) (domain.Return, error) {
	ret, ok := r.st.returns[id]
	if !ok {
		return domain.Return{}, domain.ErrReturnNotFound
	}
	return r.hydrate(ret), nil
}

// GetForUpdate совпадает с Get: транзакции in-memory хранилища уже сериализованы.
func (r *returnRepository) GetForUpdate(ctx context.Context, id string) (domain.Return, error) {
	return r.Get(ctx, id)
}

// GetBySwap возвращает самый свежий возврат по обмену.
func (r *returnRepository) GetBySwap(_ context.Context, swapID string) (domain.Return, error) {
	var (
		found domain.Return
		ok    bool
	)
	for _, ret := range r.st.returns {
		if ret.SwapID != swapID {
			continue
		}
		if !ok || ret.CreatedAt.After(found.CreatedAt) {
			found, ok = ret, true
		}
	}
	if !ok {
		return domain.Return{}, domain.ErrReturnNotFound
	}
	return r.hydrate(found), nil
}

// Save перезаписывает возврат, проверяя версию (optimistic locking).
func (r *returnRepository) Save(_ context.Context, ret *domain.Return) error {
	current, ok := r.st.returns[ret.ID]
	if !ok {
		return domain.ErrReturnNotFound
	}
	if current.Version != ret.Version {
		return domain.ErrReturnVersionConflict
	}
	ret.Version++
	ret.UpdatedAt = r.now()
	r.st.returns[ret.ID] = cloneReturn(*ret)
	return nil
}

// List фильтрует, сортирует и обрезает выборку возвратов.
func (r *returnRepository) List(_ context.Context, filter domain.ReturnFilter, page domain.Page) ([]domain.Return, error) {
	page = page.Normalize()

	statuses := make(map[domain.ReturnStatus]struct{}, len(filter.Statuses))
	for _, s := range filter.Statuses {
		statuses[s] = struct{}{}
	}

	result := make([]domain.Return, 0)
	for _, ret := range r.st.returns {
		if filter.OrderID != "" && ret.OrderID != filter.OrderID {
			continue
		}
		if filter.SwapID != "" && ret.SwapID != filter.SwapID {
			continue
		}
		if len(statuses) > 0 {
			if _, ok := statuses[ret.Status]; !ok {
				continue
			}
		}
		result = append(result, ret)
	}

	key := func(ret domain.Return) time.Time {
		if page.OrderBy == "updated_at" {
			return ret.UpdatedAt
		}
		return ret.CreatedAt
	}
	sort.Slice(result, func(i, j int) bool {
		ki, kj := key(result[i]), key(result[j])
		if !ki.Equal(kj) {
			if page.Asc {
				return ki.Before(kj)
			}
			return ki.After(kj)
		}
		if page.Asc {
			return result[i].ID < result[j].ID
		}
		return result[i].ID > result[j].ID
	})

	if page.Offset >= len(result) {
		return []domain.Return{}, nil
	}
	result = result[page.Offset:]
	if len(result) > page.Limit {
		result = result[:page.Limit]
	}
	for i := range result {
		result[i] = r.hydrate(result[i])
	}
	return result, nil
}

// hydrate подставляет доставку возврата и отдаёт независимую копию.
func (r *returnRepository) hydrate(ret domain.Return) domain.Return {
	ret = cloneReturn(ret)
	for _, m := range r.st.methods {
		if m.ReturnID == ret.ID {
			method := m
			method.TaxLines = append([]domain.TaxLine(nil), m.TaxLines...)
			method.Data = domain.CloneMetadata(m.Data)
			ret.ShippingMethod = &method
			break
		}
	}
	return ret
}

func cloneReturn(src domain.Return) domain.Return {
	dst := src
	dst.Items = make([]domain.ReturnItem, len(src.Items))
	for i, item := range src.Items {
		item.Metadata = domain.CloneMetadata(item.Metadata)
		dst.Items[i] = item
	}
	dst.ShippingMethod = nil
	dst.ShippingData = domain.CloneMetadata(src.ShippingData)
	dst.Metadata = domain.CloneMetadata(src.Metadata)
	if src.ReceivedAt != nil {
		at := *src.ReceivedAt
		dst.ReceivedAt = &at
	}
	return dst
}

func sortByID[T any](items []T, id func(T) string) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}

var _ domain.ReturnRepository = (*returnRepository)(nil)
