package domain

import (
	"context"
	"time"
)

// ReturnRepository описывает требования к хранилищу возвратов.
type ReturnRepository interface {
	// Create сохраняет новый возврат вместе со строками.
	Create(ctx context.Context, ret *Return) error
	// Get возвращает возврат по идентификатору или ErrReturnNotFound.
	Get(ctx context.Context, id string) (Return, error)
	// GetForUpdate читает возврат и блокирует его до конца транзакции.
	GetForUpdate(ctx context.Context, id string) (Return, error)
	// GetBySwap возвращает возврат, созданный по обмену.
	GetBySwap(ctx context.Context, swapID string) (Return, error)
	// Save применяет обновления с учётом optimistic locking и увеличивает ret.Version.
	Save(ctx context.Context, ret *Return) error
	// List возвращает возвраты по фильтру с пагинацией.
	List(ctx context.Context, filter ReturnFilter, page Page) ([]Return, error)
}

// OrderRepository даёт доступ на чтение к заказам и их обменам/претензиям.
type OrderRepository interface {
	// Get возвращает заказ с позициями, обменами, претензиями и регионом.
	Get(ctx context.Context, id string) (Order, error)
	// GetSwap возвращает обмен без дополнительных позиций.
	GetSwap(ctx context.Context, id string) (Swap, error)
	// GetClaim возвращает претензию без дополнительных позиций.
	GetClaim(ctx context.Context, id string) (Claim, error)
}

// LineItemRepository описывает доступ к позициям заказов.
type LineItemRepository interface {
	// Get возвращает позицию с признаком отмены владельца.
	Get(ctx context.Context, id string) (LineItem, error)
	// GetForUpdate читает позицию и блокирует её до конца транзакции.
	GetForUpdate(ctx context.Context, id string) (LineItem, error)
	// List возвращает найденные позиции; отсутствующие идентификаторы пропускаются.
	List(ctx context.Context, ids []string) ([]LineItem, error)
	// SetReturnedQuantity обновляет количество возвращённых единиц.
	SetReturnedQuantity(ctx context.Context, id string, qty int32) error
}

// ReturnReasonRepository отдаёт причины возврата вместе с дочерними причинами.
type ReturnReasonRepository interface {
	List(ctx context.Context, ids []string) ([]ReturnReason, error)
}

// ShippingRepository хранит способы доставки и созданные для возвратов доставки.
type ShippingRepository interface {
	GetOption(ctx context.Context, id string) (ShippingOption, error)
	CreateMethod(ctx context.Context, method ShippingMethod) error
	SaveTaxLines(ctx context.Context, methodID string, lines []TaxLine) error
}

// StockRepository ведёт остатки по вариантам и локациям.
type StockRepository interface {
	// Adjust изменяет остаток на delta и возвращает новое значение.
	Adjust(ctx context.Context, adj StockAdjustment) (StockLevel, error)
	Get(ctx context.Context, variantID, locationID string) (StockLevel, error)
}

// UnitOfWork — явный дескриптор транзакции. Все репозитории, полученные из него,
// работают в одной транзакции; коллабораторы получают тот же дескриптор.
type UnitOfWork interface {
	Returns() ReturnRepository
	Orders() OrderRepository
	LineItems() LineItemRepository
	ReturnReasons() ReturnReasonRepository
	Shipping() ShippingRepository
	Stock() StockRepository
	Outbox() OutboxRepository
	Timeline() TimelineRepository
}

// TxManager выполняет fn в транзакции: commit при nil, rollback при ошибке.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
}

// OutboxRepository позволяет сохранять события для последующей публикации.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg OutboxMessage) (OutboxMessage, error)
	PullPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	Stats(ctx context.Context) (OutboxStats, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
}

// TimelineRepository хранит события жизненного цикла возвратов.
type TimelineRepository interface {
	Append(ctx context.Context, event TimelineEvent) error
	List(ctx context.Context, returnID string) ([]TimelineEvent, error)
}

// IdempotencyRepository хранит ключи идемпотентности операций над возвратами.
type IdempotencyRepository interface {
	// Claim занимает ключ под операцию. Занятый ключ возвращается вместе
	// с ошибкой IdempotencyRecord.Conflict; просроченный перезаписывается.
	Claim(ctx context.Context, claim IdempotencyClaim) (IdempotencyRecord, error)
	Get(ctx context.Context, key string) (IdempotencyRecord, error)
	// Complete сохраняет успешный итог операции.
	Complete(ctx context.Context, key string, outcome IdempotencyOutcome) error
	// Fail сохраняет детерминированный отказ: повтор с тем же ключом получит его же.
	Fail(ctx context.Context, key string, outcome IdempotencyOutcome) error
	// Release освобождает ключ после временной ошибки, чтобы повтор выполнил операцию заново.
	Release(ctx context.Context, key string) error
	DeleteExpired(ctx context.Context, before time.Time, limit int) (int, error)
}
