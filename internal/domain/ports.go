package domain

import (
	"context"
	"time"
)

// CalculationContext — налоговый контекст заказа.
type CalculationContext struct {
	Currency string
	Region   Region
	TaxRates []TaxRate
}

// TaxService рассчитывает налоги в рамках транзакции возврата.
type TaxService interface {
	// GetCalculationContext собирает налоговый контекст заказа.
	GetCalculationContext(ctx context.Context, uow UnitOfWork, order Order) (CalculationContext, error)
	// CreateShippingTaxLines создаёт и сохраняет налоговые строки доставки.
	CreateShippingTaxLines(ctx context.Context, uow UnitOfWork, method ShippingMethod, calc CalculationContext) ([]TaxLine, error)
}

// ShippingMethodConfig задаёт параметры создаваемой доставки.
type ShippingMethodConfig struct {
	// Price переопределяет стоимость способа доставки, nil — берётся из способа.
	Price    *int64
	ReturnID string
}

// ShippingService создаёт доставки для возвратов.
type ShippingService interface {
	CreateShippingMethod(ctx context.Context, uow UnitOfWork, optionID string, data map[string]any, cfg ShippingMethodConfig) (ShippingMethod, error)
}

// InventoryService изменяет складские остатки в рамках транзакции возврата.
type InventoryService interface {
	// AdjustInventory изменяет остаток варианта на локации на delta единиц.
	AdjustInventory(ctx context.Context, uow UnitOfWork, variantID, locationID string, delta int32) error
}

// FulfillmentItem — строка возврата вместе с деталями позиции заказа.
type FulfillmentItem struct {
	ReturnItem
	LineItem LineItem
}

// ReturnFulfillment — данные, которые получает провайдер отправки.
type ReturnFulfillment struct {
	Return         Return
	ShippingMethod ShippingMethod
	Items          []FulfillmentItem
}

// FulfillmentProvider создаёт обратную отправку у конкретного перевозчика.
type FulfillmentProvider interface {
	Identifier() string
	// CreateReturn возвращает данные отправки (трек, этикетка и т.п.).
	CreateReturn(ctx context.Context, data ReturnFulfillment) (map[string]any, error)
}

// FulfillmentService выбирает провайдера по идентификатору и создаёт отправку.
type FulfillmentService interface {
	CreateReturn(ctx context.Context, providerID string, data ReturnFulfillment) (map[string]any, error)
}

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(ctx context.Context, event OutboxMessage) error
}

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}

// OutboxStats описывает текущее состояние backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}
