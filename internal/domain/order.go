package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает жизненный цикл родительского заказа.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusArchived       OrderStatus = "archived"
	OrderStatusCanceled       OrderStatus = "canceled"
	OrderStatusRequiresAction OrderStatus = "requires_action"
)

// FulfillmentStatus отражает состояние отгрузки заказа.
type FulfillmentStatus string

const (
	FulfillmentStatusNotFulfilled       FulfillmentStatus = "not_fulfilled"
	FulfillmentStatusPartiallyFulfilled FulfillmentStatus = "partially_fulfilled"
	FulfillmentStatusFulfilled          FulfillmentStatus = "fulfilled"
	FulfillmentStatusPartiallyShipped   FulfillmentStatus = "partially_shipped"
	FulfillmentStatusShipped            FulfillmentStatus = "shipped"
	FulfillmentStatusPartiallyReturned  FulfillmentStatus = "partially_returned"
	FulfillmentStatusReturned           FulfillmentStatus = "returned"
	FulfillmentStatusCanceled           FulfillmentStatus = "canceled"
	FulfillmentStatusRequiresAction     FulfillmentStatus = "requires_action"
)

// TaxRate — ставка налога региона в процентах.
type TaxRate struct {
	Name string
	Code string
	Rate decimal.Decimal
}

// TaxLine — налог, применённый к позиции или способу доставки.
type TaxLine struct {
	Name string
	Code string
	Rate decimal.Decimal
}

// Region задаёт валюту и налоговый контекст заказа.
type Region struct {
	ID       string
	Name     string
	Currency string
	// TaxRate применяется к позициям без собственных налоговых строк.
	TaxRate  decimal.Decimal
	TaxRates []TaxRate
}

// LineItem представляет одну позицию заказа, обмена или претензии.
type LineItem struct {
	ID           string
	OrderID      string
	SwapID       string
	ClaimOrderID string
	Title        string
	VariantID    string
	ProductID    string
	// UnitPrice — цена за единицу в минимальных денежных единицах.
	UnitPrice        int64
	Quantity         int32
	ReturnedQuantity int32
	TaxLines         []TaxLine
	Metadata         map[string]any
	// ParentCanceled заполняется репозиторием: владелец позиции (заказ, обмен или претензия) отменён.
	ParentCanceled bool
}

// Returnable возвращает количество единиц, которые ещё можно вернуть.
func (li LineItem) Returnable() int32 {
	rest := li.Quantity - li.ReturnedQuantity
	if rest < 0 {
		return 0
	}
	return rest
}

// Swap — обмен внутри заказа со своими дополнительными позициями.
type Swap struct {
	ID              string
	OrderID         string
	AdditionalItems []LineItem
	CanceledAt      *time.Time
}

// Claim — претензия по заказу со своими дополнительными позициями.
type Claim struct {
	ID              string
	OrderID         string
	AdditionalItems []LineItem
	CanceledAt      *time.Time
}

// Order агрегирует состояние заказа, к которому привязываются возвраты.
// Движок возвратов читает заказ, но не изменяет его.
type Order struct {
	ID                string
	CustomerID        string
	Currency          string
	Status            OrderStatus
	FulfillmentStatus FulfillmentStatus
	PaymentStatus     PaymentStatus
	Items             []LineItem
	Swaps             []Swap
	Claims            []Claim
	Region            Region
	Total             int64
	PaidTotal         int64
	RefundedTotal     int64
	// RefundableAmount = PaidTotal - RefundedTotal, не бывает отрицательной.
	RefundableAmount int64
	CanceledAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Canceled сообщает, отменён ли заказ.
func (o *Order) Canceled() bool {
	return o.CanceledAt != nil || o.Status == OrderStatusCanceled
}

// ComputeRefundable пересчитывает RefundableAmount по оплаченной и возвращённой суммам.
func (o *Order) ComputeRefundable() {
	o.RefundableAmount = o.PaidTotal - o.RefundedTotal
	if o.RefundableAmount < 0 {
		o.RefundableAmount = 0
	}
}

// ValidateReturnable проверяет, что заказ отгружен и оплачен, а значит по нему можно оформить возврат.
func (o *Order) ValidateReturnable() error {
	switch o.FulfillmentStatus {
	case FulfillmentStatusNotFulfilled, FulfillmentStatusReturned:
		return ErrOrderNotReturnable
	}
	if o.PaymentStatus != PaymentStatusCaptured {
		return ErrOrderNotReturnable
	}
	return nil
}
