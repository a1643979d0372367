package inventory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

// Adjustment — один записанный вызов AdjustInventory.
type Adjustment struct {
	VariantID  string
	LocationID string
	Delta      int32
}

// MockService — конфигурируемая заглушка InventoryService для тестов.
type MockService struct {
	mu sync.Mutex

	AdjustErr error
	Calls     []Adjustment
}

// NewMockService возвращает mock с успешным сценарием по умолчанию.
func NewMockService() *MockService {
	return &MockService{}
}

// AdjustInventory записывает вызов и возвращает заранее настроенную ошибку.
func (m *MockService) AdjustInventory(_ context.Context, _ domain.UnitOfWork, variantID, locationID string, delta int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, Adjustment{VariantID: variantID, LocationID: locationID, Delta: delta})
	return m.AdjustErr
}

// Adjustments возвращает копию записанных вызовов.
func (m *MockService) Adjustments() []Adjustment {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Adjustment(nil), m.Calls...)
}

var _ domain.InventoryService = (*MockService)(nil)
