package domain

import "time"

// ReturnStatus описывает жизненный цикл возврата.
type ReturnStatus string

const (
	// ReturnStatusRequested — возврат оформлен, товары ещё не получены.
	ReturnStatusRequested ReturnStatus = "requested"
	// ReturnStatusReceived — товары получены и совпали с запросом (или расхождение разрешено).
	ReturnStatusReceived ReturnStatus = "received"
	// ReturnStatusRequiresAction — полученное не совпало с запрошенным, нужна ручная проверка.
	ReturnStatusRequiresAction ReturnStatus = "requires_action"
	// ReturnStatusCanceled — возврат отменён.
	ReturnStatusCanceled ReturnStatus = "canceled"
)

var returnTransitions = map[ReturnStatus][]ReturnStatus{
	ReturnStatusRequested:      {ReturnStatusReceived, ReturnStatusRequiresAction, ReturnStatusCanceled},
	ReturnStatusRequiresAction: {ReturnStatusReceived, ReturnStatusRequiresAction, ReturnStatusCanceled},
}

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s ReturnStatus) Valid() bool {
	switch s {
	case ReturnStatusRequested, ReturnStatusReceived, ReturnStatusRequiresAction, ReturnStatusCanceled:
		return true
	default:
		return false
	}
}

// Terminal сообщает, что из статуса нет переходов.
func (s ReturnStatus) Terminal() bool {
	return s == ReturnStatusReceived || s == ReturnStatusCanceled
}

// CanTransitionTo проверяет переход по таблице статусов.
func (s ReturnStatus) CanTransitionTo(next ReturnStatus) bool {
	for _, allowed := range returnTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ReturnItem — строка возврата, ссылающаяся на позицию заказа.
type ReturnItem struct {
	ReturnID string
	ItemID   string
	// Quantity — текущее количество строки: при оформлении запрошенное, после приёмки полученное.
	Quantity int32
	// RequestedQuantity фиксируется при оформлении и не меняется при приёмке. 0 у строк, пришедших без запроса.
	RequestedQuantity int32
	ReceivedQuantity  int32
	// IsRequested истинно, пока полученное количество совпадает с запрошенным.
	IsRequested bool
	ReasonID    string
	Note        string
	Metadata    map[string]any
}

// Requested сообщает, была ли строка частью исходного запроса.
func (ri ReturnItem) Requested() bool {
	return ri.RequestedQuantity > 0
}

// Return агрегирует состояние возврата.
type Return struct {
	ID string
	// OrderID пуст, если возврат оформлен по обмену.
	OrderID        string
	SwapID         string
	ClaimOrderID   string
	Status         ReturnStatus
	Items          []ReturnItem
	ShippingMethod *ShippingMethod
	ShippingData   map[string]any
	LocationID     string
	// RefundAmount — сумма к возврату в минимальных денежных единицах.
	RefundAmount   int64
	ReceivedAt     *time.Time
	NoNotification bool
	IdempotencyKey string
	Metadata       map[string]any
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Item возвращает строку возврата по идентификатору позиции заказа.
func (r *Return) Item(itemID string) (ReturnItem, bool) {
	for _, item := range r.Items {
		if item.ItemID == itemID {
			return item, true
		}
	}
	return ReturnItem{}, false
}

// Fulfilled сообщает, что по возврату уже создана отправка.
func (r *Return) Fulfilled() bool {
	return len(r.ShippingData) > 0
}

// ReturnReason — причина возврата. Причина с дочерними элементами является категорией.
type ReturnReason struct {
	ID       string
	Value    string
	Label    string
	ParentID string
	Children []ReturnReason
}

// IsCategory сообщает, что причина является категорией и не может быть указана в строке.
func (r ReturnReason) IsCategory() bool {
	return len(r.Children) > 0
}

// ShippingOption — способ доставки, доступный для возвратов.
type ShippingOption struct {
	ID         string
	Name       string
	ProviderID string
	Amount     int64
	IsReturn   bool
	Data       map[string]any
}

// ShippingMethod — конкретная доставка, созданная для возврата.
type ShippingMethod struct {
	ID               string
	ShippingOptionID string
	ReturnID         string
	ProviderID       string
	Price            int64
	Data             map[string]any
	TaxLines         []TaxLine
}

// ReturnFilter задаёт условия выборки возвратов.
type ReturnFilter struct {
	OrderID  string
	SwapID   string
	Statuses []ReturnStatus
}

// Page задаёт пагинацию и сортировку выборки.
type Page struct {
	Offset int
	Limit  int
	// OrderBy — поле сортировки (created_at или updated_at).
	OrderBy string
	// Asc включает сортировку по возрастанию, по умолчанию сортировка по убыванию.
	Asc bool
}

// Значения пагинации по умолчанию.
const (
	DefaultPageLimit   = 50
	DefaultPageOrderBy = "created_at"
)

// Normalize подставляет значения по умолчанию.
func (p Page) Normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.OrderBy != "created_at" && p.OrderBy != "updated_at" {
		p.OrderBy = DefaultPageOrderBy
	}
	return p
}
