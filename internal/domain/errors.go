package domain

import "errors"

// Классы ошибок. Конкретные ошибки ниже оборачивают один из них,
// поэтому транспорт может сопоставлять код ответа через errors.Is.
var (
	// ErrNotFound — запрошенная сущность отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrInvalidData — входные данные нарушают структурные правила.
	ErrInvalidData = errors.New("invalid data")
	// ErrNotAllowed — данные корректны, но операция запрещена текущим состоянием.
	ErrNotAllowed = errors.New("not allowed")
)

// kindError связывает конкретную ошибку с её классом.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func newKindError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

var (
	// ErrReturnNotFound возвращается, если возврат не найден в репозитории.
	ErrReturnNotFound = newKindError(ErrNotFound, "return not found")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = newKindError(ErrNotFound, "order not found")
	// ErrSwapNotFound возвращается, если обмен не найден.
	ErrSwapNotFound = newKindError(ErrNotFound, "swap not found")
	// ErrClaimNotFound возвращается, если претензия не найдена.
	ErrClaimNotFound = newKindError(ErrNotFound, "claim not found")
	// ErrLineItemNotFound возвращается, если позиция заказа не найдена.
	ErrLineItemNotFound = newKindError(ErrNotFound, "line item not found")
	// ErrShippingOptionNotFound возвращается, если способ доставки не найден.
	ErrShippingOptionNotFound = newKindError(ErrNotFound, "shipping option not found")
	// ErrFulfillmentProviderNotFound — для способа доставки не зарегистрирован провайдер.
	ErrFulfillmentProviderNotFound = newKindError(ErrNotFound, "fulfillment provider not found")

	// ErrOrderIDRequired — не указан заказ, к которому относится возврат.
	ErrOrderIDRequired = newKindError(ErrInvalidData, "order_id is required")
	// ErrReturnIDRequired — не указан идентификатор возврата.
	ErrReturnIDRequired = newKindError(ErrInvalidData, "return_id is required")
	// ErrItemsRequired — возврат должен содержать хотя бы одну позицию.
	ErrItemsRequired = newKindError(ErrInvalidData, "return must contain at least one item")
	// ErrInvalidLineItem — запрошенная позиция отсутствует в заказе.
	ErrInvalidLineItem = newKindError(ErrInvalidData, "return contains invalid line item")
	// ErrDuplicateLineItem — одна позиция указана в запросе несколько раз.
	ErrDuplicateLineItem = newKindError(ErrInvalidData, "return contains duplicate line item")
	// ErrItemQtyInvalid — нулевое или отрицательное количество в строке возврата.
	ErrItemQtyInvalid = newKindError(ErrInvalidData, "item quantity must be positive")
	// ErrCanceledLineItem — позиция принадлежит отменённому заказу, обмену или претензии.
	ErrCanceledLineItem = newKindError(ErrInvalidData, "cannot create a return for a canceled item")
	// ErrRefundExceedsRefundable — явная сумма возврата больше доступной к возврату.
	ErrRefundExceedsRefundable = newKindError(ErrInvalidData, "cannot refund more than the original payment")
	// ErrRefundNegative — явная сумма возврата отрицательна.
	ErrRefundNegative = newKindError(ErrInvalidData, "refund amount must be non-negative")
	// ErrReturnReasonCategory — причина возврата является категорией с дочерними причинами.
	ErrReturnReasonCategory = newKindError(ErrInvalidData, "cannot apply return reason category")

	// ErrReturnQuantityExceeded — запрошено больше, чем осталось доступно к возврату.
	ErrReturnQuantityExceeded = newKindError(ErrNotAllowed, "cannot return more items than have been purchased")
	// ErrReturnCanceled — операция над отменённым возвратом.
	ErrReturnCanceled = newKindError(ErrNotAllowed, "return is canceled")
	// ErrReturnAlreadyReceived — возврат уже принят.
	ErrReturnAlreadyReceived = newKindError(ErrNotAllowed, "return has already been received")
	// ErrReturnAlreadyFulfilled — для возврата уже создана отправка.
	ErrReturnAlreadyFulfilled = newKindError(ErrNotAllowed, "return has already been fulfilled")
	// ErrOrderNotReturnable — заказ не отгружен, уже возвращён или оплата не списана.
	ErrOrderNotReturnable = newKindError(ErrNotAllowed, "order is not eligible for a return")
	// ErrInvalidTransition — переход статуса не разрешён таблицей переходов.
	ErrInvalidTransition = newKindError(ErrNotAllowed, "invalid return status transition")

	// ErrReturnVersionConflict сигнализирует о конфликте версий при сохранении.
	ErrReturnVersionConflict = errors.New("return version conflict")
	// ErrFulfillmentTemporary — временная ошибка провайдера отправки, можно повторить попытку.
	ErrFulfillmentTemporary = errors.New("fulfillment provider temporary error")
	// ErrCircuitOpen — провайдер временно отключён circuit breaker'ом.
	ErrCircuitOpen = errors.New("circuit breaker is open")
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// Ошибки idempotency-хранилища.
var (
	ErrIdempotencyKeyRequired         = errors.New("idempotency key is required")
	ErrIdempotencyRequestHashRequired = errors.New("idempotency request hash is required")
	ErrIdempotencyKeyNotFound         = errors.New("idempotency key not found")
	ErrIdempotencyKeyAlreadyExists    = errors.New("idempotency key already exists")
	ErrIdempotencyHashMismatch        = errors.New("idempotency key reused with different request")
	ErrIdempotencyOperationInvalid    = errors.New("idempotency operation is unknown")
)

// IsVersionConflict проверяет, является ли ошибка конфликтом версий.
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrReturnVersionConflict)
}

// IsIdempotencyConflict сообщает, что ключ уже занят (тем же или другим запросом).
func IsIdempotencyConflict(err error) bool {
	return errors.Is(err, ErrIdempotencyKeyAlreadyExists) || errors.Is(err, ErrIdempotencyHashMismatch)
}

// IsNotFound проверяет принадлежность ошибки классу NotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsInvalidData проверяет принадлежность ошибки классу InvalidData.
func IsInvalidData(err error) bool { return errors.Is(err, ErrInvalidData) }

// IsNotAllowed проверяет принадлежность ошибки классу NotAllowed.
func IsNotAllowed(err error) bool { return errors.Is(err, ErrNotAllowed) }
