package domain

// PaymentStatus описывает состояние оплаты заказа.
type PaymentStatus string

const (
	// PaymentStatusNotPaid — оплата ещё не проводилась.
	PaymentStatusNotPaid PaymentStatus = "not_paid"
	// PaymentStatusAwaiting — платёж инициирован, но не подтверждён.
	PaymentStatusAwaiting PaymentStatus = "awaiting"
	// PaymentStatusAuthorized — сумма зарезервирована у провайдера.
	PaymentStatusAuthorized PaymentStatus = "authorized"
	// PaymentStatusCaptured — деньги списаны в пользу мерчанта.
	PaymentStatusCaptured PaymentStatus = "captured"
	// PaymentStatusPartiallyRefunded — часть суммы возвращена клиенту.
	PaymentStatusPartiallyRefunded PaymentStatus = "partially_refunded"
	// PaymentStatusRefunded — вся сумма возвращена клиенту.
	PaymentStatusRefunded PaymentStatus = "refunded"
	// PaymentStatusCanceled — платёж отменён.
	PaymentStatusCanceled PaymentStatus = "canceled"
	// PaymentStatusRequiresAction — провайдер требует ручного вмешательства.
	PaymentStatusRequiresAction PaymentStatus = "requires_action"
)

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusNotPaid, PaymentStatusAwaiting, PaymentStatusAuthorized, PaymentStatusCaptured,
		PaymentStatusPartiallyRefunded, PaymentStatusRefunded, PaymentStatusCanceled, PaymentStatusRequiresAction:
		return true
	default:
		return false
	}
}
