package domain

import (
	"strings"
	"time"
)

// DefaultIdempotencyTTL — срок жизни ключа, если заявка не задала свой.
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyOperation — мутирующая операция над возвратом, которую защищает ключ.
type IdempotencyOperation string

const (
	IdempotencyOpCreateReturn  IdempotencyOperation = "create_return"
	IdempotencyOpReceiveReturn IdempotencyOperation = "receive_return"
	IdempotencyOpFulfillReturn IdempotencyOperation = "fulfill_return"
	IdempotencyOpCancelReturn  IdempotencyOperation = "cancel_return"
)

// Valid проверяет, что операция относится к поддерживаемым.
func (o IdempotencyOperation) Valid() bool {
	switch o {
	case IdempotencyOpCreateReturn, IdempotencyOpReceiveReturn, IdempotencyOpFulfillReturn, IdempotencyOpCancelReturn:
		return true
	default:
		return false
	}
}

// TargetsExistingReturn сообщает, что операция применяется к уже оформленному возврату.
func (o IdempotencyOperation) TargetsExistingReturn() bool {
	return o.Valid() && o != IdempotencyOpCreateReturn
}

// IdempotencyStatus описывает жизненный цикл ключа идемпотентности.
type IdempotencyStatus string

const (
	// IdempotencyStatusProcessing означает, что операция над возвратом ещё выполняется.
	IdempotencyStatusProcessing IdempotencyStatus = "processing"
	// IdempotencyStatusDone означает, что операция завершилась и её ответ сохранён.
	IdempotencyStatusDone IdempotencyStatus = "done"
	// IdempotencyStatusFailed означает детерминированный отказ, который повтор получит снова.
	IdempotencyStatusFailed IdempotencyStatus = "failed"
)

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s IdempotencyStatus) Valid() bool {
	switch s {
	case IdempotencyStatusProcessing, IdempotencyStatusDone, IdempotencyStatusFailed:
		return true
	default:
		return false
	}
}

// IdempotencyClaim — заявка на ключ перед выполнением операции над возвратом.
type IdempotencyClaim struct {
	Key       string
	Operation IdempotencyOperation
	// ReturnID пуст у оформления: возврата ещё нет, он появится в итоге операции.
	ReturnID    string
	RequestHash string
	ExpiresAt   time.Time
}

// Normalize убирает пробелы по краям ключа, хэша и id возврата.
func (c IdempotencyClaim) Normalize() IdempotencyClaim {
	c.Key = strings.TrimSpace(c.Key)
	c.ReturnID = strings.TrimSpace(c.ReturnID)
	c.RequestHash = strings.TrimSpace(c.RequestHash)
	return c
}

// Validate проверяет нормализованную заявку.
func (c IdempotencyClaim) Validate() error {
	switch {
	case c.Key == "":
		return ErrIdempotencyKeyRequired
	case c.RequestHash == "":
		return ErrIdempotencyRequestHashRequired
	case !c.Operation.Valid():
		return ErrIdempotencyOperationInvalid
	case c.Operation.TargetsExistingReturn() && c.ReturnID == "":
		return ErrReturnIDRequired
	}
	return nil
}

// Processing строит запись, которую заявка занимает в хранилище.
func (c IdempotencyClaim) Processing(now time.Time) IdempotencyRecord {
	expiresAt := c.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = now.Add(DefaultIdempotencyTTL)
	}
	return IdempotencyRecord{
		Key:         c.Key,
		Operation:   c.Operation,
		ReturnID:    c.ReturnID,
		RequestHash: c.RequestHash,
		Status:      IdempotencyStatusProcessing,
		ExpiresAt:   expiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IdempotencyOutcome — итог операции, который сохраняется под ключом для повторов.
type IdempotencyOutcome struct {
	// ReturnID — возврат, затронутый операцией. У оформления это созданный возврат.
	ReturnID string
	// Response — сериализованный ответ или описание отказа.
	Response []byte
	// Code — код результата транспорта (gRPC code).
	Code int
}

// IdempotencyRecord хранит состояние операции над возвратом, выполненной по idempotency-key.
type IdempotencyRecord struct {
	Key         string
	Operation   IdempotencyOperation
	ReturnID    string
	RequestHash string
	Status      IdempotencyStatus
	Response    []byte
	Code        int
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Conflict объясняет, почему заявка не может занять уже существующую запись:
// ErrIdempotencyKeyAlreadyExists для того же запроса к тому же возврату,
// ErrIdempotencyHashMismatch для любого другого.
func (r IdempotencyRecord) Conflict(c IdempotencyClaim) error {
	if r.Operation != c.Operation || r.RequestHash != c.RequestHash {
		return ErrIdempotencyHashMismatch
	}
	if c.ReturnID != "" && r.ReturnID != "" && r.ReturnID != c.ReturnID {
		return ErrIdempotencyHashMismatch
	}
	return ErrIdempotencyKeyAlreadyExists
}

// Expired сообщает, что срок ключа истёк к моменту now.
func (r IdempotencyRecord) Expired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}

// Clone возвращает копию записи с собственным буфером ответа.
func (r IdempotencyRecord) Clone() IdempotencyRecord {
	r.Response = append([]byte(nil), r.Response...)
	return r
}

// Settle фиксирует итог операции. Пустой ReturnID итога не затирает id из заявки.
func (r IdempotencyRecord) Settle(status IdempotencyStatus, outcome IdempotencyOutcome, now time.Time) IdempotencyRecord {
	r.Status = status
	r.Response = append([]byte(nil), outcome.Response...)
	r.Code = outcome.Code
	if outcome.ReturnID != "" {
		r.ReturnID = outcome.ReturnID
	}
	r.UpdatedAt = now
	return r
}
