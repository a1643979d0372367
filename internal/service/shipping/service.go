// Package shipping создаёт доставки для возвратов.
package shipping

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

// Service — коллаборатор доставки поверх ShippingRepository транзакции.
type Service struct{}

// NewService создаёт сервис доставки.
func NewService() *Service {
	return &Service{}
}

// CreateShippingMethod создаёт доставку по способу optionID. Цена из cfg
// переопределяет стоимость способа.
func (s *Service) CreateShippingMethod(ctx context.Context, uow domain.UnitOfWork, optionID string, data map[string]any, cfg domain.ShippingMethodConfig) (domain.ShippingMethod, error) {
	option, err := uow.Shipping().GetOption(ctx, optionID)
	if err != nil {
		return domain.ShippingMethod{}, fmt.Errorf("shipping option %s: %w", optionID, err)
	}

	price := option.Amount
	if cfg.Price != nil {
		price = *cfg.Price
	}

	method := domain.ShippingMethod{
		ID:               uuid.NewString(),
		ShippingOptionID: option.ID,
		ReturnID:         cfg.ReturnID,
		ProviderID:       option.ProviderID,
		Price:            price,
		Data:             domain.MergeMetadata(option.Data, data),
	}
	if err := uow.Shipping().CreateMethod(ctx, method); err != nil {
		return domain.ShippingMethod{}, fmt.Errorf("create shipping method: %w", err)
	}
	return method, nil
}

var _ domain.ShippingService = (*Service)(nil)
