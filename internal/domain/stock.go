package domain

import (
	"errors"
	"time"
)

var (
	// ErrStockVariantRequired — не указан вариант товара для движения по складу.
	ErrStockVariantRequired = errors.New("stock variant_id is required")
	// ErrStockDeltaZero — движение с нулевым количеством не имеет смысла.
	ErrStockDeltaZero = errors.New("stock delta must be non-zero")
)

// StockLevel — остаток варианта товара на складской локации.
// Пустой LocationID обозначает локацию по умолчанию.
type StockLevel struct {
	VariantID  string
	LocationID string
	Quantity   int64
	UpdatedAt  time.Time
}

// StockAdjustment описывает одно движение остатков.
type StockAdjustment struct {
	VariantID  string
	LocationID string
	Delta      int64
}

// Validate проверяет корректность движения и возвращает список замечаний.
func (a StockAdjustment) Validate() []error {
	var errs []error

	if a.VariantID == "" {
		errs = append(errs, ErrStockVariantRequired)
	}
	if a.Delta == 0 {
		errs = append(errs, ErrStockDeltaZero)
	}

	return errs
}
