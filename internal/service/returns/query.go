package returns

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

// Retrieve возвращает возврат по идентификатору.
func (s *Service) Retrieve(ctx context.Context, returnID string) (domain.Return, error) {
	if returnID == "" {
		return domain.Return{}, domain.ErrReturnIDRequired
	}

	var ret domain.Return
	err := s.execute(ctx, opRetrieve, returnAttr(returnID), func(ctx context.Context, uow domain.UnitOfWork) error {
		var err error
		ret, err = uow.Returns().Get(ctx, returnID)
		return err
	})
	return ret, err
}

// RetrieveBySwap возвращает возврат, оформленный по обмену.
func (s *Service) RetrieveBySwap(ctx context.Context, swapID string) (domain.Return, error) {
	if swapID == "" {
		return domain.Return{}, domain.ErrSwapNotFound
	}

	var ret domain.Return
	attrs := []attribute.KeyValue{attribute.String("swap.id", swapID)}
	err := s.execute(ctx, opRetrieve, attrs, func(ctx context.Context, uow domain.UnitOfWork) error {
		var err error
		ret, err = uow.Returns().GetBySwap(ctx, swapID)
		return err
	})
	return ret, err
}

// List возвращает возвраты по фильтру. По умолчанию: created_at DESC, 50 записей.
func (s *Service) List(ctx context.Context, filter domain.ReturnFilter, page domain.Page) ([]domain.Return, error) {
	page = page.Normalize()

	var rets []domain.Return
	attrs := []attribute.KeyValue{
		attribute.String("order.id", filter.OrderID),
		attribute.Int("page.limit", page.Limit),
		attribute.Int("page.offset", page.Offset),
	}
	err := s.execute(ctx, opList, attrs, func(ctx context.Context, uow domain.UnitOfWork) error {
		var err error
		rets, err = uow.Returns().List(ctx, filter, page)
		return err
	})
	return rets, err
}

// Timeline возвращает историю событий возврата.
func (s *Service) Timeline(ctx context.Context, returnID string) ([]domain.TimelineEvent, error) {
	if returnID == "" {
		return nil, domain.ErrReturnIDRequired
	}

	var events []domain.TimelineEvent
	err := s.execute(ctx, opRetrieve, returnAttr(returnID), func(ctx context.Context, uow domain.UnitOfWork) error {
		if _, err := uow.Returns().Get(ctx, returnID); err != nil {
			return err
		}
		var err error
		events, err = uow.Timeline().List(ctx, returnID)
		return err
	})
	return events, err
}
