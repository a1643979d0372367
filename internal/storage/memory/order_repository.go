package memory

import (
	"context"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

// orderRepository собирает заказ из заголовка и позиций снимка.
type orderRepository struct {
	st *state
}

// Get возвращает заказ или ErrOrderNotFound, если его нет.
func (r *orderRepository) Get(_ context.Context, id string) (domain.Order, error) {
	order, ok := r.st.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}

	swapIdx := make(map[string]int)
	claimIdx := make(map[string]int)
	for _, sw := range r.st.swaps {
		if sw.OrderID != id {
			continue
		}
		swapIdx[sw.ID] = len(order.Swaps)
		order.Swaps = append(order.Swaps, sw)
	}
	for _, cl := range r.st.claims {
		if cl.OrderID != id {
			continue
		}
		claimIdx[cl.ID] = len(order.Claims)
		order.Claims = append(order.Claims, cl)
	}

	// Порядок позиций соответствует порядку добавления.
	for _, itemID := range r.st.itemOrder {
		item := r.st.lineItems[itemID]
		switch {
		case item.SwapID != "":
			if i, ok := swapIdx[item.SwapID]; ok {
				order.Swaps[i].AdditionalItems = append(order.Swaps[i].AdditionalItems, item)
			}
		case item.ClaimOrderID != "":
			if i, ok := claimIdx[item.ClaimOrderID]; ok {
				order.Claims[i].AdditionalItems = append(order.Claims[i].AdditionalItems, item)
			}
		case item.OrderID == id:
			order.Items = append(order.Items, item)
		}
	}

	sortByID(order.Swaps, func(s domain.Swap) string { return s.ID })
	sortByID(order.Claims, func(c domain.Claim) string { return c.ID })
	return order, nil
}

// GetSwap возвращает обмен или ErrSwapNotFound.
func (r *orderRepository) GetSwap(_ context.Context, id string) (domain.Swap, error) {
	sw, ok := r.st.swaps[id]
	if !ok {
		return domain.Swap{}, domain.ErrSwapNotFound
	}
	return sw, nil
}

// GetClaim возвращает претензию или ErrClaimNotFound.
func (r *orderRepository) GetClaim(_ context.Context, id string) (domain.Claim, error) {
	cl, ok := r.st.claims[id]
	if !ok {
		return domain.Claim{}, domain.ErrClaimNotFound
	}
	return cl, nil
}

// lineItemRepository работает с позициями заказов, обменов и претензий.
type lineItemRepository struct {
	st *state
}

func (r *lineItemRepository) Get(_ context.Context, id string) (domain.LineItem, error) {
	item, ok := r.st.lineItems[id]
	if !ok {
		return domain.LineItem{}, domain.ErrLineItemNotFound
	}
	item.ParentCanceled = r.parentCanceled(item)
	return item, nil
}

// GetForUpdate совпадает с Get: транзакции in-memory хранилища уже сериализованы.
func (r *lineItemRepository) GetForUpdate(ctx context.Context, id string) (domain.LineItem, error) {
	return r.Get(ctx, id)
}

func (r *lineItemRepository) List(ctx context.Context, ids []string) ([]domain.LineItem, error) {
	result := make([]domain.LineItem, 0, len(ids))
	for _, id := range ids {
		item, err := r.Get(ctx, id)
		if err != nil {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

func (r *lineItemRepository) SetReturnedQuantity(_ context.Context, id string, qty int32) error {
	item, ok := r.st.lineItems[id]
	if !ok {
		return domain.ErrLineItemNotFound
	}
	item.ReturnedQuantity = qty
	r.st.lineItems[id] = item
	return nil
}

func (r *lineItemRepository) parentCanceled(item domain.LineItem) bool {
	switch {
	case item.SwapID != "":
		sw, ok := r.st.swaps[item.SwapID]
		return ok && sw.CanceledAt != nil
	case item.ClaimOrderID != "":
		cl, ok := r.st.claims[item.ClaimOrderID]
		return ok && cl.CanceledAt != nil
	default:
		order, ok := r.st.orders[item.OrderID]
		return ok && order.Canceled()
	}
}

var (
	_ domain.OrderRepository    = (*orderRepository)(nil)
	_ domain.LineItemRepository = (*lineItemRepository)(nil)
)
