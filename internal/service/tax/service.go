// Package tax строит налоговый контекст заказа и налоговые строки доставки.
package tax

import (
	"context"
	"fmt"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

// Service — налоговый коллаборатор на ставках региона.
type Service struct{}

// NewService создаёт налоговый сервис.
func NewService() *Service {
	return &Service{}
}

// GetCalculationContext возвращает ставки региона. Если у региона нет списка ставок,
// используется ставка по умолчанию.
func (s *Service) GetCalculationContext(_ context.Context, _ domain.UnitOfWork, order domain.Order) (domain.CalculationContext, error) {
	calc := domain.CalculationContext{
		Currency: order.Currency,
		Region:   order.Region,
		TaxRates: append([]domain.TaxRate(nil), order.Region.TaxRates...),
	}
	if len(calc.TaxRates) == 0 && !order.Region.TaxRate.IsZero() {
		calc.TaxRates = []domain.TaxRate{{Name: "default", Code: "default", Rate: order.Region.TaxRate}}
	}
	return calc, nil
}

// CreateShippingTaxLines превращает ставки контекста в налоговые строки доставки и сохраняет их.
func (s *Service) CreateShippingTaxLines(ctx context.Context, uow domain.UnitOfWork, method domain.ShippingMethod, calc domain.CalculationContext) ([]domain.TaxLine, error) {
	lines := make([]domain.TaxLine, 0, len(calc.TaxRates))
	for _, rate := range calc.TaxRates {
		lines = append(lines, domain.TaxLine{Name: rate.Name, Code: rate.Code, Rate: rate.Rate})
	}
	if err := uow.Shipping().SaveTaxLines(ctx, method.ID, lines); err != nil {
		return nil, fmt.Errorf("save shipping tax lines: %w", err)
	}
	return lines, nil
}

var _ domain.TaxService = (*Service)(nil)
