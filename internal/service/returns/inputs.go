package returns

// ItemInput — строка запроса на оформление или приёмку возврата.
type ItemInput struct {
	ItemID   string
	Quantity int32
	ReasonID string
	Note     string
}

// ShippingInput — способ обратной доставки.
type ShippingInput struct {
	OptionID string
	// Price переопределяет стоимость способа доставки.
	Price *int64
	Data  map[string]any
}

// CreateInput — параметры оформления возврата.
type CreateInput struct {
	OrderID        string
	SwapID         string
	ClaimOrderID   string
	Items          []ItemInput
	ShippingMethod *ShippingInput
	// RefundAmount — явная сумма к возврату. nil означает расчёт по позициям за вычетом доставки.
	RefundAmount   *int64
	NoNotification bool
	IdempotencyKey string
	LocationID     string
	Metadata       map[string]any
}

// ReceiveInput — параметры приёмки возврата на складе.
type ReceiveInput struct {
	ReturnID      string
	Items         []ItemInput
	RefundAmount  *int64
	AllowMismatch bool
	LocationID    string
}

// UpdateInput — патч возврата. nil-поля не меняются, Metadata сливается с текущими.
type UpdateInput struct {
	Metadata       map[string]any
	LocationID     *string
	NoNotification *bool
	RefundAmount   *int64
}

func (in UpdateInput) empty() bool {
	return len(in.Metadata) == 0 && in.LocationID == nil && in.NoNotification == nil && in.RefundAmount == nil
}
