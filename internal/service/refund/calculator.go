// Package refund считает суммы к возврату. Все функции чистые и работают
// в минимальных денежных единицах.
package refund

import (
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Line — позиция, участвующая в расчёте.
type Line struct {
	UnitPrice int64
	Quantity  int32
	TaxLines  []domain.TaxLine
}

// FromLineItem строит Line из позиции заказа и возвращаемого количества.
func FromLineItem(item domain.LineItem, qty int32) Line {
	return Line{UnitPrice: item.UnitPrice, Quantity: qty, TaxLines: item.TaxLines}
}

// Tax возвращает round(amount × rate / 100) с округлением половины от нуля.
func Tax(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(rate).Div(hundred).Round(0).IntPart()
}

// LineTotal возвращает стоимость позиции с налогами. Позиции без налоговых
// строк облагаются ставкой региона.
func LineTotal(line Line, region domain.Region) int64 {
	subtotal := line.UnitPrice * int64(line.Quantity)
	if len(line.TaxLines) == 0 {
		return subtotal + Tax(subtotal, region.TaxRate)
	}

	total := subtotal
	for _, tl := range line.TaxLines {
		total += Tax(subtotal, tl.Rate)
	}
	return total
}

// RefundTotal суммирует стоимость позиций и ограничивает результат доступной к возврату суммой.
func RefundTotal(order domain.Order, lines []Line) int64 {
	var total int64
	for _, line := range lines {
		total += LineTotal(line, order.Region)
	}
	if total > order.RefundableAmount {
		total = order.RefundableAmount
	}
	if total < 0 {
		total = 0
	}
	return total
}

// ShippingTotal возвращает стоимость доставки с налогами.
func ShippingTotal(price int64, taxLines []domain.TaxLine) int64 {
	total := price
	for _, tl := range taxLines {
		total += Tax(price, tl.Rate)
	}
	return total
}

// Resolve выбирает итоговую сумму: явную (с проверкой границ) или вычисленную.
func Resolve(order domain.Order, lines []Line, override *int64) (int64, error) {
	if override == nil {
		return RefundTotal(order, lines), nil
	}
	if *override < 0 {
		return 0, domain.ErrRefundNegative
	}
	if *override > order.RefundableAmount {
		return 0, domain.ErrRefundExceedsRefundable
	}
	return *override, nil
}

// ApplyShipping вычитает стоимость обратной доставки, не опускаясь ниже нуля.
func ApplyShipping(refund, shippingTotal int64) int64 {
	rest := refund - shippingTotal
	if rest < 0 {
		return 0
	}
	return rest
}
