package domain

import "time"

// ReturnEventType — тип события жизненного цикла возврата.
type ReturnEventType string

const (
	EventReturnRequested      ReturnEventType = "return.requested"
	EventReturnReceived       ReturnEventType = "return.received"
	EventReturnRequiresAction ReturnEventType = "return.requires_action"
	EventReturnFulfilled      ReturnEventType = "return.fulfilled"
	EventReturnCanceled       ReturnEventType = "return.canceled"
	EventReturnUpdated        ReturnEventType = "return.updated"
)

// AggregateTypeReturn — тип агрегата в outbox.
const AggregateTypeReturn = "return"

// ReturnEventItem — строка возврата в событии.
type ReturnEventItem struct {
	ItemID            string `json:"item_id"`
	Quantity          int32  `json:"quantity"`
	RequestedQuantity int32  `json:"requested_quantity"`
	ReceivedQuantity  int32  `json:"received_quantity"`
	IsRequested       bool   `json:"is_requested"`
}

// ReturnEvent — полезная нагрузка outbox-сообщения о возврате.
type ReturnEvent struct {
	EventType      ReturnEventType   `json:"event_type"`
	ReturnID       string            `json:"return_id"`
	OrderID        string            `json:"order_id,omitempty"`
	SwapID         string            `json:"swap_id,omitempty"`
	ClaimOrderID   string            `json:"claim_order_id,omitempty"`
	Status         ReturnStatus      `json:"status"`
	RefundAmount   int64             `json:"refund_amount"`
	LocationID     string            `json:"location_id,omitempty"`
	NoNotification bool              `json:"no_notification"`
	Items          []ReturnEventItem `json:"items"`
	OccurredAt     time.Time         `json:"occurred_at"`
}

// NewReturnEvent снимает состояние возврата в событие.
func NewReturnEvent(eventType ReturnEventType, ret Return, at time.Time) ReturnEvent {
	items := make([]ReturnEventItem, 0, len(ret.Items))
	for _, item := range ret.Items {
		items = append(items, ReturnEventItem{
			ItemID:            item.ItemID,
			Quantity:          item.Quantity,
			RequestedQuantity: item.RequestedQuantity,
			ReceivedQuantity:  item.ReceivedQuantity,
			IsRequested:       item.IsRequested,
		})
	}
	return ReturnEvent{
		EventType:      eventType,
		ReturnID:       ret.ID,
		OrderID:        ret.OrderID,
		SwapID:         ret.SwapID,
		ClaimOrderID:   ret.ClaimOrderID,
		Status:         ret.Status,
		RefundAmount:   ret.RefundAmount,
		LocationID:     ret.LocationID,
		NoNotification: ret.NoNotification,
		Items:          items,
		OccurredAt:     at,
	}
}
