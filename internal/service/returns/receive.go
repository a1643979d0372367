package returns

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vladislavdragonenkov/returns/internal/domain"
	"github.com/vladislavdragonenkov/returns/internal/service/reconcile"
	"github.com/vladislavdragonenkov/returns/internal/service/refund"
)

// Receive фиксирует фактически полученные позиции.
//
// Повторная приёмка идемпотентна: returned_quantity и склад меняются только
// на разницу между новым и ранее учтённым полученным количеством.
func (s *Service) Receive(ctx context.Context, in ReceiveInput) (domain.Return, error) {
	if in.ReturnID == "" {
		return domain.Return{}, domain.ErrReturnIDRequired
	}
	requested, err := toRequested(in.Items)
	if err != nil {
		return domain.Return{}, err
	}

	attrs := append(returnAttr(in.ReturnID),
		attribute.Bool("allow_mismatch", in.AllowMismatch),
		attribute.Int("items.count", len(in.Items)),
	)

	var received domain.Return
	err = s.execute(ctx, opReceive, attrs, func(ctx context.Context, uow domain.UnitOfWork) error {
		received = domain.Return{}

		ret, err := uow.Returns().GetForUpdate(ctx, in.ReturnID)
		if err != nil {
			return err
		}
		switch ret.Status {
		case domain.ReturnStatusCanceled:
			return domain.ErrReturnCanceled
		case domain.ReturnStatusReceived:
			return domain.ErrReturnAlreadyReceived
		}

		order, err := s.parentOrder(ctx, uow, ret)
		if err != nil {
			return err
		}

		previous := make(map[string]int32, len(ret.Items))
		credit := make(map[string]int32, len(ret.Items))
		for _, item := range ret.Items {
			previous[item.ItemID] = item.ReceivedQuantity
			if item.Requested() {
				credit[item.ItemID] = item.ReceivedQuantity
			}
		}

		lines, err := reconcile.Resolve(reconcile.Pool(order), requested, reconcile.ValidateReturnLineWithCredit(credit))
		if err != nil {
			return err
		}

		ret.Items = mergeReceived(ret.ID, ret.Items, lines)

		status := domain.ReturnStatusReceived
		if mismatch(ret.Items, lines) && !in.AllowMismatch {
			status = domain.ReturnStatusRequiresAction
		}
		if !ret.Status.CanTransitionTo(status) {
			return fmt.Errorf("%s -> %s: %w", ret.Status, status, domain.ErrInvalidTransition)
		}
		ret.Status = status

		if in.RefundAmount != nil {
			ret.RefundAmount, err = refund.Resolve(order, nil, in.RefundAmount)
			if err != nil {
				return err
			}
		}

		ret.LocationID = s.location(in.LocationID, ret.LocationID)
		now := s.now()
		ret.ReceivedAt = &now

		if err := uow.Returns().Save(ctx, &ret); err != nil {
			return fmt.Errorf("save return: %w", err)
		}

		pool := make(map[string]domain.LineItem, len(lines))
		for _, line := range lines {
			pool[line.Item.ID] = line.Item
		}
		for _, item := range ret.Items {
			delta := item.ReceivedQuantity - previous[item.ItemID]
			if delta == 0 {
				continue
			}
			if err := s.applyReceipt(ctx, uow, item, pool[item.ItemID], delta, ret.LocationID); err != nil {
				return err
			}
		}

		eventType := domain.EventReturnReceived
		if status == domain.ReturnStatusRequiresAction {
			eventType = domain.EventReturnRequiresAction
		}
		if err := s.emit(ctx, uow, ret, eventType, ""); err != nil {
			return err
		}
		received = ret
		return nil
	})
	if err != nil {
		return domain.Return{}, err
	}

	s.committed()
	if s.metrics != nil {
		s.metrics.RecordReceived(string(received.Status))
	}
	s.logger.WithFields(log.Fields{
		"return_id":   received.ID,
		"status":      received.Status,
		"location_id": received.LocationID,
	}).Info("return received")

	return received, nil
}

// applyReceipt переносит разницу полученного количества на позицию заказа и склад.
func (s *Service) applyReceipt(ctx context.Context, uow domain.UnitOfWork, item domain.ReturnItem, lineItem domain.LineItem, delta int32, locationID string) error {
	if item.Requested() {
		current, err := uow.LineItems().GetForUpdate(ctx, item.ItemID)
		if err != nil {
			return fmt.Errorf("line item %s: %w", item.ItemID, err)
		}
		returned := current.ReturnedQuantity + delta
		if returned < 0 {
			returned = 0
		}
		if err := uow.LineItems().SetReturnedQuantity(ctx, item.ItemID, returned); err != nil {
			return fmt.Errorf("line item %s: %w", item.ItemID, err)
		}
	}

	if lineItem.VariantID == "" {
		return nil
	}
	if err := s.inventory.AdjustInventory(ctx, uow, lineItem.VariantID, locationID, delta); err != nil {
		return fmt.Errorf("adjust inventory for %s: %w", lineItem.VariantID, err)
	}
	return nil
}

// mergeReceived накладывает полученные строки на строки возврата. Строки вне
// исходного запроса добавляются с RequestedQuantity = 0. IsRequested
// пересчитывается только у строк этой приёмки, остальные сохраняют прежний флаг.
func mergeReceived(returnID string, items []domain.ReturnItem, lines []reconcile.Line) []domain.ReturnItem {
	merged := make([]domain.ReturnItem, len(items), len(items)+len(lines))
	copy(merged, items)

	index := make(map[string]int, len(merged))
	for i, item := range merged {
		index[item.ItemID] = i
	}

	for _, line := range lines {
		i, ok := index[line.Item.ID]
		if !ok {
			merged = append(merged, domain.ReturnItem{
				ReturnID: returnID,
				ItemID:   line.Item.ID,
				Metadata: line.Metadata,
			})
			i = len(merged) - 1
			index[line.Item.ID] = i
		}

		item := &merged[i]
		item.Quantity = line.Quantity
		item.ReceivedQuantity = line.Quantity
		item.IsRequested = item.Requested() && item.ReceivedQuantity == item.RequestedQuantity
		if line.ReasonID != "" {
			item.ReasonID = line.ReasonID
		}
		if line.Note != "" {
			item.Note = line.Note
		}
	}
	return merged
}

// mismatch сообщает, что хотя бы одна строка этой приёмки разошлась с запросом.
// Запрошенные строки, которых нет в приёмке, на статус не влияют.
func mismatch(items []domain.ReturnItem, lines []reconcile.Line) bool {
	received := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		received[line.Item.ID] = struct{}{}
	}
	for _, item := range items {
		if _, ok := received[item.ItemID]; ok && !item.IsRequested {
			return true
		}
	}
	return false
}

// location выбирает локацию приёмки: из запроса, из возврата или по умолчанию.
func (s *Service) location(requested, current string) string {
	switch {
	case requested != "":
		return requested
	case current != "":
		return current
	default:
		return s.defaultLocation
	}
}
