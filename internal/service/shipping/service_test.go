package shipping_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/returns/internal/domain"
	"github.com/vladislavdragonenkov/returns/internal/service/shipping"
	"github.com/vladislavdragonenkov/returns/internal/storage/memory"
)

func TestCreateShippingMethod(t *testing.T) {
	store := memory.NewStore()
	store.SeedShippingOption(domain.ShippingOption{ID: "opt-1", ProviderID: "manual", Amount: 70, Data: map[string]any{"zone": "eu"}})
	svc := shipping.NewService()

	err := store.WithinTx(context.Background(), func(ctx context.Context, uow domain.UnitOfWork) error {
		method, err := svc.CreateShippingMethod(ctx, uow, "opt-1", nil, domain.ShippingMethodConfig{ReturnID: "ret-1"})
		require.NoError(t, err)
		assert.NotEmpty(t, method.ID)
		assert.Equal(t, int64(70), method.Price)
		assert.Equal(t, "manual", method.ProviderID)
		assert.Equal(t, "eu", method.Data["zone"])

		price := int64(50)
		method, err = svc.CreateShippingMethod(ctx, uow, "opt-1", map[string]any{"box": "s"}, domain.ShippingMethodConfig{Price: &price, ReturnID: "ret-2"})
		require.NoError(t, err)
		assert.Equal(t, int64(50), method.Price)
		assert.Equal(t, "s", method.Data["box"])

		_, err = svc.CreateShippingMethod(ctx, uow, "missing", nil, domain.ShippingMethodConfig{})
		assert.ErrorIs(t, err, domain.ErrShippingOptionNotFound)
		assert.True(t, domain.IsNotFound(err))
		return nil
	})
	require.NoError(t, err)
}
