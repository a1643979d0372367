package returns

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/returns/internal/domain"
	"github.com/vladislavdragonenkov/returns/internal/service/reconcile"
	"github.com/vladislavdragonenkov/returns/internal/service/refund"
)

// Fulfill создаёт обратную отправку у провайдера доставки возврата.
// Возврат без доставки возвращается без изменений.
func (s *Service) Fulfill(ctx context.Context, returnID string) (domain.Return, error) {
	if returnID == "" {
		return domain.Return{}, domain.ErrReturnIDRequired
	}

	var (
		fulfilled domain.Return
		emitted   bool
		// Провайдер вызывается не больше одного раза за вызов Fulfill: повтор
		// транзакции после конфликта версий переиспользует выпущенную отправку.
		shippingData map[string]any
		labeled      bool
	)
	err := s.execute(ctx, opFulfill, returnAttr(returnID), func(ctx context.Context, uow domain.UnitOfWork) error {
		fulfilled, emitted = domain.Return{}, false

		ret, err := uow.Returns().GetForUpdate(ctx, returnID)
		if err != nil {
			return err
		}
		if ret.Status == domain.ReturnStatusCanceled {
			return domain.ErrReturnCanceled
		}
		if ret.Fulfilled() {
			return domain.ErrReturnAlreadyFulfilled
		}
		if ret.ShippingMethod == nil {
			fulfilled = ret
			return nil
		}

		ids := make([]string, 0, len(ret.Items))
		requested := make([]reconcile.RequestedItem, 0, len(ret.Items))
		for _, item := range ret.Items {
			ids = append(ids, item.ItemID)
			requested = append(requested, reconcile.RequestedItem{
				ItemID:   item.ItemID,
				Quantity: item.Quantity,
				ReasonID: item.ReasonID,
				Note:     item.Note,
			})
		}
		lineItems, err := uow.LineItems().List(ctx, ids)
		if err != nil {
			return fmt.Errorf("list line items: %w", err)
		}
		lines, err := reconcile.Resolve(lineItems, requested, reconcile.Lookup)
		if err != nil {
			return err
		}

		data := domain.ReturnFulfillment{
			Return:         ret,
			ShippingMethod: *ret.ShippingMethod,
			Items:          make([]domain.FulfillmentItem, 0, len(lines)),
		}
		for _, line := range lines {
			item, _ := ret.Item(line.Item.ID)
			data.Items = append(data.Items, domain.FulfillmentItem{ReturnItem: item, LineItem: line.Item})
		}

		if !labeled {
			shippingData, err = s.fulfillment.CreateReturn(ctx, ret.ShippingMethod.ProviderID, data)
			if err != nil {
				return fmt.Errorf("fulfillment provider %s: %w", ret.ShippingMethod.ProviderID, err)
			}
			labeled = true
		}
		ret.ShippingData = shippingData

		if err := uow.Returns().Save(ctx, &ret); err != nil {
			return fmt.Errorf("save return: %w", err)
		}
		if err := s.emit(ctx, uow, ret, domain.EventReturnFulfilled, ""); err != nil {
			return err
		}
		fulfilled, emitted = ret, true
		return nil
	})
	if err != nil {
		return domain.Return{}, err
	}
	if !emitted {
		s.logger.WithField("return_id", returnID).Debug("return has no shipping method, nothing to fulfill")
		return fulfilled, nil
	}

	s.committed()
	if s.metrics != nil {
		s.metrics.RecordFulfilled()
	}
	s.logger.WithFields(log.Fields{
		"return_id":   fulfilled.ID,
		"provider_id": fulfilled.ShippingMethod.ProviderID,
	}).Info("return fulfilled")

	return fulfilled, nil
}

// Cancel отменяет возврат, который ещё не принят.
func (s *Service) Cancel(ctx context.Context, returnID, reason string) (domain.Return, error) {
	if returnID == "" {
		return domain.Return{}, domain.ErrReturnIDRequired
	}

	var canceled domain.Return
	err := s.execute(ctx, opCancel, returnAttr(returnID), func(ctx context.Context, uow domain.UnitOfWork) error {
		canceled = domain.Return{}

		ret, err := uow.Returns().GetForUpdate(ctx, returnID)
		if err != nil {
			return err
		}
		switch ret.Status {
		case domain.ReturnStatusCanceled:
			return domain.ErrReturnCanceled
		case domain.ReturnStatusReceived:
			return domain.ErrReturnAlreadyReceived
		}
		if !ret.Status.CanTransitionTo(domain.ReturnStatusCanceled) {
			return fmt.Errorf("%s -> %s: %w", ret.Status, domain.ReturnStatusCanceled, domain.ErrInvalidTransition)
		}

		ret.Status = domain.ReturnStatusCanceled
		if err := uow.Returns().Save(ctx, &ret); err != nil {
			return fmt.Errorf("save return: %w", err)
		}
		if err := s.emit(ctx, uow, ret, domain.EventReturnCanceled, reason); err != nil {
			return err
		}
		canceled = ret
		return nil
	})
	if err != nil {
		return domain.Return{}, err
	}

	s.committed()
	if s.metrics != nil {
		s.metrics.RecordCanceled()
	}
	s.logger.WithFields(log.Fields{
		"return_id": canceled.ID,
		"reason":    reason,
	}).Info("return canceled")

	return canceled, nil
}

// Update применяет патч к возврату. Metadata сливается с текущими значениями,
// остальные заданные поля перезаписываются. У принятого возврата можно менять
// только Metadata и NoNotification.
func (s *Service) Update(ctx context.Context, returnID string, in UpdateInput) (domain.Return, error) {
	if returnID == "" {
		return domain.Return{}, domain.ErrReturnIDRequired
	}

	var updated domain.Return
	err := s.execute(ctx, opUpdate, returnAttr(returnID), func(ctx context.Context, uow domain.UnitOfWork) error {
		updated = domain.Return{}

		ret, err := uow.Returns().GetForUpdate(ctx, returnID)
		if err != nil {
			return err
		}
		if ret.Status == domain.ReturnStatusCanceled {
			return domain.ErrReturnCanceled
		}
		if ret.Status == domain.ReturnStatusReceived && (in.LocationID != nil || in.RefundAmount != nil) {
			return domain.ErrReturnAlreadyReceived
		}
		if in.empty() {
			updated = ret
			return nil
		}

		if len(in.Metadata) > 0 {
			ret.Metadata = domain.MergeMetadata(ret.Metadata, in.Metadata)
		}
		if in.LocationID != nil {
			ret.LocationID = *in.LocationID
		}
		if in.NoNotification != nil {
			ret.NoNotification = *in.NoNotification
		}
		if in.RefundAmount != nil {
			order, err := s.parentOrder(ctx, uow, ret)
			if err != nil {
				return err
			}
			if ret.RefundAmount, err = refund.Resolve(order, nil, in.RefundAmount); err != nil {
				return err
			}
		}

		if err := uow.Returns().Save(ctx, &ret); err != nil {
			return fmt.Errorf("save return: %w", err)
		}
		if err := s.emit(ctx, uow, ret, domain.EventReturnUpdated, ""); err != nil {
			return err
		}
		updated = ret
		return nil
	})
	if err != nil {
		return domain.Return{}, err
	}
	if in.empty() {
		return updated, nil
	}

	s.committed()
	s.logger.WithField("return_id", updated.ID).Debug("return updated")
	return updated, nil
}
