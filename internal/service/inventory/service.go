package inventory

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

// Service ведёт складские остатки через StockRepository текущей транзакции.
type Service struct {
	logger *log.Entry
}

// NewService создаёт адаптер склада.
func NewService(logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "inventory")
	}
	return &Service{logger: logger}
}

// AdjustInventory изменяет остаток варианта на локации на delta единиц.
func (s *Service) AdjustInventory(ctx context.Context, uow domain.UnitOfWork, variantID, locationID string, delta int32) error {
	adj := domain.StockAdjustment{VariantID: variantID, LocationID: locationID, Delta: int64(delta)}
	if errs := adj.Validate(); len(errs) > 0 {
		return fmt.Errorf("adjust inventory: %w", errors.Join(errs...))
	}

	level, err := uow.Stock().Adjust(ctx, adj)
	if err != nil {
		return fmt.Errorf("adjust stock %s@%s: %w", variantID, locationID, err)
	}

	s.logger.WithFields(log.Fields{
		"variant_id":  variantID,
		"location_id": locationID,
		"delta":       delta,
		"quantity":    level.Quantity,
	}).Debug("stock adjusted")
	return nil
}

var _ domain.InventoryService = (*Service)(nil)
