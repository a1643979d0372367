package fulfillment

import (
	"context"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

// ManualProviderID — идентификатор провайдера ручной отправки.
const ManualProviderID = "manual"

// ManualProvider не обращается к перевозчику: возвращает этикетку,
// которую склад печатает сам.
type ManualProvider struct{}

// Identifier возвращает идентификатор провайдера.
func (ManualProvider) Identifier() string { return ManualProviderID }

// CreateReturn формирует данные отправки из строк возврата.
func (ManualProvider) CreateReturn(_ context.Context, data domain.ReturnFulfillment) (map[string]any, error) {
	items := make([]map[string]any, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, map[string]any{
			"item_id":    item.ItemID,
			"quantity":   item.Quantity,
			"title":      item.LineItem.Title,
			"variant_id": item.LineItem.VariantID,
			"product_id": item.LineItem.ProductID,
		})
	}

	return map[string]any{
		"provider":           ManualProviderID,
		"label_id":           "manual-" + data.Return.ID,
		"shipping_method_id": data.ShippingMethod.ID,
		"items":              items,
	}, nil
}

var _ domain.FulfillmentProvider = ManualProvider{}
