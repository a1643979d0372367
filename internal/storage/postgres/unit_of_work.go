package postgres

import (
	"time"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

// unitOfWork отдаёт репозитории, работающие в одной транзакции.
type unitOfWork struct {
	q   querier
	now func() time.Time
}

func (u *unitOfWork) Returns() domain.ReturnRepository {
	return &returnRepository{q: u.q, now: u.now}
}

func (u *unitOfWork) Orders() domain.OrderRepository { return &orderRepository{q: u.q} }

func (u *unitOfWork) LineItems() domain.LineItemRepository { return &lineItemRepository{q: u.q} }

func (u *unitOfWork) ReturnReasons() domain.ReturnReasonRepository {
	return &returnReasonRepository{q: u.q}
}

func (u *unitOfWork) Shipping() domain.ShippingRepository { return &shippingRepository{q: u.q} }

func (u *unitOfWork) Stock() domain.StockRepository { return &stockRepository{q: u.q, now: u.now} }

func (u *unitOfWork) Outbox() domain.OutboxRepository { return &outboxRepository{q: u.q, now: u.now} }

func (u *unitOfWork) Timeline() domain.TimelineRepository { return &timelineRepository{q: u.q} }

var (
	_ domain.UnitOfWork = (*unitOfWork)(nil)
	_ domain.TxManager  = (*Store)(nil)
)
