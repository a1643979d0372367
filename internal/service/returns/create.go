package returns

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vladislavdragonenkov/returns/internal/domain"
	"github.com/vladislavdragonenkov/returns/internal/service/reconcile"
	"github.com/vladislavdragonenkov/returns/internal/service/refund"
)

// Create оформляет возврат в статусе requested.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Return, error) {
	if in.OrderID == "" && in.SwapID == "" && in.ClaimOrderID == "" {
		return domain.Return{}, domain.ErrOrderIDRequired
	}
	if len(in.Items) == 0 {
		return domain.Return{}, domain.ErrItemsRequired
	}
	requested, err := toRequested(in.Items)
	if err != nil {
		return domain.Return{}, err
	}

	attrs := []attribute.KeyValue{
		attribute.String("order.id", in.OrderID),
		attribute.String("swap.id", in.SwapID),
		attribute.Int("items.count", len(in.Items)),
	}

	var created domain.Return
	err = s.execute(ctx, opCreate, attrs, func(ctx context.Context, uow domain.UnitOfWork) error {
		created = domain.Return{}

		for _, req := range requested {
			item, err := uow.LineItems().Get(ctx, req.ItemID)
			if err != nil {
				if domain.IsNotFound(err) {
					return fmt.Errorf("item %s: %w", req.ItemID, domain.ErrInvalidLineItem)
				}
				return err
			}
			if item.ParentCanceled {
				return fmt.Errorf("item %s: %w", req.ItemID, domain.ErrCanceledLineItem)
			}
		}

		ret := domain.Return{
			ID:             uuid.NewString(),
			OrderID:        in.OrderID,
			SwapID:         in.SwapID,
			ClaimOrderID:   in.ClaimOrderID,
			Status:         domain.ReturnStatusRequested,
			LocationID:     in.LocationID,
			NoNotification: in.NoNotification,
			IdempotencyKey: in.IdempotencyKey,
			Metadata:       domain.CloneMetadata(in.Metadata),
		}
		if ret.SwapID != "" {
			ret.OrderID = ""
		}

		order, err := s.parentOrder(ctx, uow, domain.Return{
			OrderID:      in.OrderID,
			SwapID:       in.SwapID,
			ClaimOrderID: in.ClaimOrderID,
		})
		if err != nil {
			return err
		}
		if err := order.ValidateReturnable(); err != nil {
			return fmt.Errorf("order %s: %w", order.ID, err)
		}

		lines, err := reconcile.Resolve(reconcile.Pool(order), requested, reconcile.ValidateReturnLine)
		if err != nil {
			return err
		}
		if err := s.validateReasons(ctx, uow, lines); err != nil {
			return err
		}

		refundLines := make([]refund.Line, 0, len(lines))
		ret.Items = make([]domain.ReturnItem, 0, len(lines))
		for _, line := range lines {
			refundLines = append(refundLines, refund.FromLineItem(line.Item, line.Quantity))
			ret.Items = append(ret.Items, domain.ReturnItem{
				ReturnID:          ret.ID,
				ItemID:            line.Item.ID,
				Quantity:          line.Quantity,
				RequestedQuantity: line.Quantity,
				IsRequested:       true,
				ReasonID:          line.ReasonID,
				Note:              line.Note,
				Metadata:          line.Metadata,
			})
		}

		ret.RefundAmount, err = refund.Resolve(order, refundLines, in.RefundAmount)
		if err != nil {
			return err
		}

		if err := uow.Returns().Create(ctx, &ret); err != nil {
			return fmt.Errorf("create return: %w", err)
		}

		if in.ShippingMethod != nil {
			method, err := s.attachShipping(ctx, uow, order, ret.ID, *in.ShippingMethod)
			if err != nil {
				return err
			}
			ret.ShippingMethod = &method
			if in.RefundAmount == nil {
				ret.RefundAmount = refund.ApplyShipping(ret.RefundAmount, refund.ShippingTotal(method.Price, method.TaxLines))
			}
			if err := uow.Returns().Save(ctx, &ret); err != nil {
				return fmt.Errorf("save return: %w", err)
			}
		}

		if err := s.emit(ctx, uow, ret, domain.EventReturnRequested, ""); err != nil {
			return err
		}
		created = ret
		return nil
	})
	if err != nil {
		return domain.Return{}, err
	}

	s.committed()
	if s.metrics != nil {
		s.metrics.RecordCreated(created.RefundAmount)
	}
	s.logger.WithFields(log.Fields{
		"return_id":     created.ID,
		"order_id":      created.OrderID,
		"swap_id":       created.SwapID,
		"refund_amount": created.RefundAmount,
	}).Info("return requested")

	return created, nil
}

// attachShipping создаёт доставку возврата и её налоговые строки.
func (s *Service) attachShipping(ctx context.Context, uow domain.UnitOfWork, order domain.Order, returnID string, in ShippingInput) (domain.ShippingMethod, error) {
	method, err := s.shipping.CreateShippingMethod(ctx, uow, in.OptionID, in.Data, domain.ShippingMethodConfig{
		Price:    in.Price,
		ReturnID: returnID,
	})
	if err != nil {
		return domain.ShippingMethod{}, err
	}

	calc, err := s.tax.GetCalculationContext(ctx, uow, order)
	if err != nil {
		return domain.ShippingMethod{}, fmt.Errorf("tax context: %w", err)
	}
	taxLines, err := s.tax.CreateShippingTaxLines(ctx, uow, method, calc)
	if err != nil {
		return domain.ShippingMethod{}, fmt.Errorf("shipping tax lines: %w", err)
	}
	method.TaxLines = taxLines
	return method, nil
}

// validateReasons отклоняет причины-категории.
func (s *Service) validateReasons(ctx context.Context, uow domain.UnitOfWork, lines []reconcile.Line) error {
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.ReasonID != "" {
			ids = append(ids, line.ReasonID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	reasons, err := uow.ReturnReasons().List(ctx, ids)
	if err != nil {
		return fmt.Errorf("list return reasons: %w", err)
	}
	for _, reason := range reasons {
		if reason.IsCategory() {
			return fmt.Errorf("reason %s: %w", reason.Value, domain.ErrReturnReasonCategory)
		}
	}
	return nil
}

// toRequested переводит строки запроса во вход сопоставления. Повторы и
// неположительные количества отклоняются.
func toRequested(items []ItemInput) ([]reconcile.RequestedItem, error) {
	seen := make(map[string]struct{}, len(items))
	out := make([]reconcile.RequestedItem, 0, len(items))
	for _, item := range items {
		if item.ItemID == "" {
			return nil, domain.ErrInvalidLineItem
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item %s: quantity %d: %w", item.ItemID, item.Quantity, domain.ErrItemQtyInvalid)
		}
		if _, dup := seen[item.ItemID]; dup {
			return nil, fmt.Errorf("item %s: %w", item.ItemID, domain.ErrDuplicateLineItem)
		}
		seen[item.ItemID] = struct{}{}
		out = append(out, reconcile.RequestedItem{
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
			ReasonID: item.ReasonID,
			Note:     item.Note,
		})
	}
	return out, nil
}
