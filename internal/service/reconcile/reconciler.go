// Package reconcile сопоставляет запрошенные строки возврата с позициями заказа,
// включая дополнительные позиции обменов и претензий.
package reconcile

import (
	"fmt"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

// RequestedItem — строка из запроса на возврат или приёмку.
type RequestedItem struct {
	ItemID   string
	Quantity int32
	ReasonID string
	Note     string
}

// Line — результат сопоставления строки с позицией заказа.
type Line struct {
	Item     domain.LineItem
	Quantity int32
	ReasonID string
	Note     string
	Metadata map[string]any
}

// Transform превращает найденную позицию (или nil) в строку результата.
// (nil, nil) исключает строку из результата, ошибка прерывает сопоставление.
type Transform func(item *domain.LineItem, req RequestedItem) (*Line, error)

// Pool собирает позиции заказа, его обменов и претензий в один список.
// ParentCanceled выставляется для позиций отменённого владельца.
func Pool(order domain.Order) []domain.LineItem {
	size := len(order.Items)
	for _, s := range order.Swaps {
		size += len(s.AdditionalItems)
	}
	for _, c := range order.Claims {
		size += len(c.AdditionalItems)
	}

	pool := make([]domain.LineItem, 0, size)
	orderCanceled := order.Canceled()
	for _, item := range order.Items {
		item.ParentCanceled = item.ParentCanceled || orderCanceled
		pool = append(pool, item)
	}
	for _, s := range order.Swaps {
		for _, item := range s.AdditionalItems {
			item.ParentCanceled = item.ParentCanceled || s.CanceledAt != nil
			pool = append(pool, item)
		}
	}
	for _, c := range order.Claims {
		for _, item := range c.AdditionalItems {
			item.ParentCanceled = item.ParentCanceled || c.CanceledAt != nil
			pool = append(pool, item)
		}
	}
	return pool
}

// Resolve ищет каждую запрошенную позицию в pool и применяет transform.
func Resolve(pool []domain.LineItem, requested []RequestedItem, transform Transform) ([]Line, error) {
	index := make(map[string]int, len(pool))
	for i := range pool {
		index[pool[i].ID] = i
	}

	lines := make([]Line, 0, len(requested))
	for _, req := range requested {
		var item *domain.LineItem
		if i, ok := index[req.ItemID]; ok {
			found := pool[i]
			item = &found
		}

		line, err := transform(item, req)
		if err != nil {
			return nil, err
		}
		if line == nil {
			continue
		}
		lines = append(lines, *line)
	}
	return lines, nil
}

// ValidateReturnLine — transform для оформления возврата.
func ValidateReturnLine(item *domain.LineItem, req RequestedItem) (*Line, error) {
	return validate(item, req, 0)
}

// ValidateReturnLineWithCredit — transform для приёмки: количество, уже учтённое
// этим возвратом, снова считается доступным.
func ValidateReturnLineWithCredit(credit map[string]int32) Transform {
	return func(item *domain.LineItem, req RequestedItem) (*Line, error) {
		return validate(item, req, credit[req.ItemID])
	}
}

// Lookup — transform для подготовки отправки: отсутствующие позиции пропускаются.
func Lookup(item *domain.LineItem, req RequestedItem) (*Line, error) {
	if item == nil {
		return nil, nil
	}
	return &Line{
		Item:     *item,
		Quantity: req.Quantity,
		ReasonID: req.ReasonID,
		Note:     req.Note,
		Metadata: domain.CloneMetadata(item.Metadata),
	}, nil
}

func validate(item *domain.LineItem, req RequestedItem, credit int32) (*Line, error) {
	if item == nil {
		return nil, fmt.Errorf("item %s: %w", req.ItemID, domain.ErrInvalidLineItem)
	}
	if item.ParentCanceled {
		return nil, fmt.Errorf("item %s: %w", req.ItemID, domain.ErrCanceledLineItem)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("item %s: %w", req.ItemID, domain.ErrItemQtyInvalid)
	}
	if req.Quantity > item.Returnable()+credit {
		return nil, fmt.Errorf("item %s: requested %d, returnable %d: %w",
			req.ItemID, req.Quantity, item.Returnable()+credit, domain.ErrReturnQuantityExceeded)
	}

	return &Line{
		Item:     *item,
		Quantity: req.Quantity,
		ReasonID: req.ReasonID,
		Note:     req.Note,
		Metadata: domain.CloneMetadata(item.Metadata),
	}, nil
}
