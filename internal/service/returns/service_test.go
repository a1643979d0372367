package returns_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/returns/internal/domain"
	"github.com/vladislavdragonenkov/returns/internal/metrics"
	"github.com/vladislavdragonenkov/returns/internal/service/fulfillment"
	"github.com/vladislavdragonenkov/returns/internal/service/inventory"
	"github.com/vladislavdragonenkov/returns/internal/service/returns"
	"github.com/vladislavdragonenkov/returns/internal/service/shipping"
	"github.com/vladislavdragonenkov/returns/internal/service/tax"
	"github.com/vladislavdragonenkov/returns/internal/storage/memory"
)

type fixture struct {
	store     *memory.Store
	inventory *inventory.MockService
	registry  *prometheus.Registry
	service   *returns.Service
}

func quietLogger() *log.Entry {
	logger := log.New()
	logger.SetLevel(log.PanicLevel)
	return log.NewEntry(logger)
}

func newFixture(t *testing.T, extra ...returns.Option) *fixture {
	t.Helper()

	store := memory.NewStore()
	store.SeedOrder(domain.Order{
		ID:                "order-1",
		Currency:          "eur",
		FulfillmentStatus: domain.FulfillmentStatusFulfilled,
		PaymentStatus:     domain.PaymentStatusCaptured,
		PaidTotal:         1000,
		Region: domain.Region{
			ID:       "eu",
			TaxRates: []domain.TaxRate{{Name: "VAT", Code: "vat", Rate: decimal.NewFromInt(10)}},
		},
		Items: []domain.LineItem{
			{ID: "li-1", Title: "Shirt", UnitPrice: 100, Quantity: 5, VariantID: "v-1"},
			{ID: "li-2", Title: "Hat", UnitPrice: 50, Quantity: 2, VariantID: "v-2"},
			{ID: "li-3", Title: "Gift card", UnitPrice: 20, Quantity: 1},
		},
		Swaps: []domain.Swap{
			{ID: "swap-1", AdditionalItems: []domain.LineItem{{ID: "li-s1", UnitPrice: 80, Quantity: 1, VariantID: "v-s1"}}},
		},
	})
	canceled := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.SeedOrder(domain.Order{
		ID:                "order-canceled",
		FulfillmentStatus: domain.FulfillmentStatusFulfilled,
		PaymentStatus:     domain.PaymentStatusCaptured,
		PaidTotal:         100,
		CanceledAt:        &canceled,
		Items:             []domain.LineItem{{ID: "li-x", UnitPrice: 100, Quantity: 1}},
	})
	store.SeedOrder(domain.Order{
		ID:                "order-unpaid",
		FulfillmentStatus: domain.FulfillmentStatusFulfilled,
		PaymentStatus:     domain.PaymentStatusAwaiting,
		Items:             []domain.LineItem{{ID: "li-u", UnitPrice: 100, Quantity: 1}},
	})
	store.SeedReturnReason(domain.ReturnReason{ID: "rr-size", Value: "wrong_size"})
	store.SeedReturnReason(domain.ReturnReason{ID: "rr-size-small", Value: "too_small", ParentID: "rr-size"})
	store.SeedReturnReason(domain.ReturnReason{ID: "rr-damaged", Value: "damaged"})
	store.SeedShippingOption(domain.ShippingOption{
		ID: "so-return", Name: "Return label", ProviderID: fulfillment.ManualProviderID, Amount: 50, IsReturn: true,
	})

	registry := fulfillment.NewRegistry(fulfillment.WithLogger(quietLogger()))
	registry.Register(fulfillment.ManualProvider{})

	inv := inventory.NewMockService()
	reg := prometheus.NewRegistry()
	m := metrics.NewReturnMetricsWithRegisterer(reg)

	options := append([]returns.Option{
		returns.WithLogger(quietLogger()),
		returns.WithMetrics(m),
		returns.WithDefaultLocation("wh-default"),
	}, extra...)

	svc := returns.NewService(store, returns.Collaborators{
		Tax:         tax.NewService(),
		Shipping:    shipping.NewService(),
		Inventory:   inv,
		Fulfillment: registry,
	}, options...)

	return &fixture{store: store, inventory: inv, registry: reg, service: svc}
}

func (f *fixture) lineItem(t *testing.T, id string) domain.LineItem {
	t.Helper()
	var item domain.LineItem
	err := f.store.WithinTx(context.Background(), func(ctx context.Context, uow domain.UnitOfWork) error {
		var err error
		item, err = uow.LineItems().Get(ctx, id)
		return err
	})
	require.NoError(t, err)
	return item
}

// counter суммирует значения счётчика name с совпадающими метками.
func (f *fixture) counter(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := f.registry.Gather()
	require.NoError(t, err)

	var total float64
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if matchLabels(metric, labels) {
				total += metric.GetCounter().GetValue()
			}
		}
	}
	return total
}

func matchLabels(metric *dto.Metric, labels map[string]string) bool {
	matched := 0
	for _, pair := range metric.GetLabel() {
		if want, ok := labels[pair.GetName()]; ok {
			if want != pair.GetValue() {
				return false
			}
			matched++
		}
	}
	return matched == len(labels)
}

func (f *fixture) create(t *testing.T, items ...returns.ItemInput) domain.Return {
	t.Helper()
	ret, err := f.service.Create(context.Background(), returns.CreateInput{OrderID: "order-1", Items: items})
	require.NoError(t, err)
	return ret
}

func TestCreate_RoundTrip(t *testing.T) {
	f := newFixture(t)

	ret := f.create(t, returns.ItemInput{ItemID: "li-1", Quantity: 2, ReasonID: "rr-damaged", Note: "torn"})

	assert.Equal(t, domain.ReturnStatusRequested, ret.Status)
	assert.Equal(t, "order-1", ret.OrderID)
	require.Len(t, ret.Items, 1)
	assert.Equal(t, int32(2), ret.Items[0].Quantity)
	assert.Equal(t, int32(2), ret.Items[0].RequestedQuantity)
	assert.True(t, ret.Items[0].IsRequested)
	assert.Equal(t, "rr-damaged", ret.Items[0].ReasonID)
	assert.Equal(t, int64(200), ret.RefundAmount)

	stored, err := f.service.Retrieve(context.Background(), ret.ID)
	require.NoError(t, err)
	assert.Equal(t, ret.Items, stored.Items)
	assert.Equal(t, 1.0, f.counter(t, "rms_returns_created_total", nil))
}

func TestCreate_RefundWithShipping(t *testing.T) {
	f := newFixture(t)

	ret, err := f.service.Create(context.Background(), returns.CreateInput{
		OrderID:        "order-1",
		Items:          []returns.ItemInput{{ItemID: "li-1", Quantity: 3}},
		ShippingMethod: &returns.ShippingInput{OptionID: "so-return"},
	})
	require.NoError(t, err)

	require.NotNil(t, ret.ShippingMethod)
	assert.Equal(t, int64(50), ret.ShippingMethod.Price)
	require.Len(t, ret.ShippingMethod.TaxLines, 1)
	assert.Equal(t, int64(245), ret.RefundAmount)

	stored, err := f.service.Retrieve(context.Background(), ret.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ShippingMethod)
	assert.Equal(t, fulfillment.ManualProviderID, stored.ShippingMethod.ProviderID)
	assert.Equal(t, int64(245), stored.RefundAmount)
}

func TestCreate_ExplicitRefundIgnoresShipping(t *testing.T) {
	f := newFixture(t)
	amount := int64(280)

	ret, err := f.service.Create(context.Background(), returns.CreateInput{
		OrderID:        "order-1",
		Items:          []returns.ItemInput{{ItemID: "li-1", Quantity: 3}},
		ShippingMethod: &returns.ShippingInput{OptionID: "so-return"},
		RefundAmount:   &amount,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(280), ret.RefundAmount)
}

func TestCreate_SwapItemClearsOrderID(t *testing.T) {
	f := newFixture(t)

	ret, err := f.service.Create(context.Background(), returns.CreateInput{
		OrderID: "order-1",
		SwapID:  "swap-1",
		Items:   []returns.ItemInput{{ItemID: "li-s1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Empty(t, ret.OrderID)
	assert.Equal(t, "swap-1", ret.SwapID)

	bySwap, err := f.service.RetrieveBySwap(context.Background(), "swap-1")
	require.NoError(t, err)
	assert.Equal(t, ret.ID, bySwap.ID)

	// Заказ находится через обмен.
	_, err = f.service.Receive(context.Background(), returns.ReceiveInput{
		ReturnID: ret.ID,
		Items:    []returns.ItemInput{{ItemID: "li-s1", Quantity: 1}},
	})
	require.NoError(t, err)
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input returns.CreateInput
		err   error
		kind  error
	}{
		{
			name:  "no order",
			input: returns.CreateInput{Items: []returns.ItemInput{{ItemID: "li-1", Quantity: 1}}},
			err:   domain.ErrOrderIDRequired,
			kind:  domain.ErrInvalidData,
		},
		{
			name:  "no items",
			input: returns.CreateInput{OrderID: "order-1"},
			err:   domain.ErrItemsRequired,
			kind:  domain.ErrInvalidData,
		},
		{
			name:  "unknown item",
			input: returns.CreateInput{OrderID: "order-1", Items: []returns.ItemInput{{ItemID: "nope", Quantity: 1}}},
			err:   domain.ErrInvalidLineItem,
			kind:  domain.ErrInvalidData,
		},
		{
			name: "duplicate item",
			input: returns.CreateInput{OrderID: "order-1", Items: []returns.ItemInput{
				{ItemID: "li-1", Quantity: 1}, {ItemID: "li-1", Quantity: 1},
			}},
			err:  domain.ErrDuplicateLineItem,
			kind: domain.ErrInvalidData,
		},
		{
			name:  "canceled order",
			input: returns.CreateInput{OrderID: "order-canceled", Items: []returns.ItemInput{{ItemID: "li-x", Quantity: 1}}},
			err:   domain.ErrCanceledLineItem,
			kind:  domain.ErrInvalidData,
		},
		{
			name:  "over quantity",
			input: returns.CreateInput{OrderID: "order-1", Items: []returns.ItemInput{{ItemID: "li-2", Quantity: 3}}},
			err:   domain.ErrReturnQuantityExceeded,
			kind:  domain.ErrNotAllowed,
		},
		{
			name:  "negative quantity",
			input: returns.CreateInput{OrderID: "order-1", Items: []returns.ItemInput{{ItemID: "li-2", Quantity: -1}}},
			err:   domain.ErrItemQtyInvalid,
			kind:  domain.ErrInvalidData,
		},
		{
			name:  "zero quantity",
			input: returns.CreateInput{OrderID: "order-1", Items: []returns.ItemInput{{ItemID: "li-1", Quantity: 0}}},
			err:   domain.ErrItemQtyInvalid,
			kind:  domain.ErrInvalidData,
		},
		{
			name:  "unpaid order",
			input: returns.CreateInput{OrderID: "order-unpaid", Items: []returns.ItemInput{{ItemID: "li-u", Quantity: 1}}},
			err:   domain.ErrOrderNotReturnable,
			kind:  domain.ErrNotAllowed,
		},
		{
			name: "reason category",
			input: returns.CreateInput{OrderID: "order-1", Items: []returns.ItemInput{
				{ItemID: "li-1", Quantity: 1, ReasonID: "rr-size"},
			}},
			err:  domain.ErrReturnReasonCategory,
			kind: domain.ErrInvalidData,
		},
		{
			name: "refund over refundable",
			input: returns.CreateInput{
				OrderID:      "order-1",
				Items:        []returns.ItemInput{{ItemID: "li-1", Quantity: 1}},
				RefundAmount: ptr(int64(1001)),
			},
			err:  domain.ErrRefundExceedsRefundable,
			kind: domain.ErrInvalidData,
		},
		{
			name: "unknown shipping option",
			input: returns.CreateInput{
				OrderID:        "order-1",
				Items:          []returns.ItemInput{{ItemID: "li-1", Quantity: 1}},
				ShippingMethod: &returns.ShippingInput{OptionID: "missing"},
			},
			err:  domain.ErrShippingOptionNotFound,
			kind: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.service.Create(context.Background(), tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, tt.kind)

			rets, listErr := f.service.List(context.Background(), domain.ReturnFilter{}, domain.Page{})
			require.NoError(t, listErr)
			assert.Empty(t, rets, "failed create must roll back")
			assert.Empty(t, f.store.AllPending())
		})
	}
}

func TestReceive_AllMatching(t *testing.T) {
	f := newFixture(t)
	ret := f.create(t,
		returns.ItemInput{ItemID: "li-1", Quantity: 2},
		returns.ItemInput{ItemID: "li-3", Quantity: 1},
	)

	received, err := f.service.Receive(context.Background(), returns.ReceiveInput{
		ReturnID: ret.ID,
		Items: []returns.ItemInput{
			{ItemID: "li-1", Quantity: 2},
			{ItemID: "li-3", Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ReturnStatusReceived, received.Status)
	assert.Equal(t, "wh-default", received.LocationID)
	require.NotNil(t, received.ReceivedAt)
	for _, item := range received.Items {
		assert.True(t, item.IsRequested, item.ItemID)
	}
	assert.Equal(t, int32(2), f.lineItem(t, "li-1").ReturnedQuantity)
	assert.Equal(t, int32(1), f.lineItem(t, "li-3").ReturnedQuantity)

	// li-3 без варианта на склад не попадает.
	assert.Equal(t, []inventory.Adjustment{{VariantID: "v-1", LocationID: "wh-default", Delta: 2}}, f.inventory.Adjustments())
}

func TestReceive_Mismatch(t *testing.T) {
	tests := []struct {
		name          string
		items         []returns.ItemInput
		allowMismatch bool
		status        domain.ReturnStatus
	}{
		{
			name:   "fewer than requested",
			items:  []returns.ItemInput{{ItemID: "li-1", Quantity: 1}},
			status: domain.ReturnStatusRequiresAction,
		},
		{
			name:   "unrequested line",
			items:  []returns.ItemInput{{ItemID: "li-1", Quantity: 2}, {ItemID: "li-2", Quantity: 1}},
			status: domain.ReturnStatusRequiresAction,
		},
		{
			name:          "mismatch allowed",
			items:         []returns.ItemInput{{ItemID: "li-1", Quantity: 1}},
			allowMismatch: true,
			status:        domain.ReturnStatusReceived,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ret := f.create(t, returns.ItemInput{ItemID: "li-1", Quantity: 2})

			received, err := f.service.Receive(context.Background(), returns.ReceiveInput{
				ReturnID:      ret.ID,
				Items:         tt.items,
				AllowMismatch: tt.allowMismatch,
				LocationID:    "wh-1",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.status, received.Status)
			assert.Equal(t, "wh-1", received.LocationID)

			item, ok := received.Item("li-1")
			require.True(t, ok)
			assert.Equal(t, int32(2), item.RequestedQuantity)
		})
	}
}

func TestReceive_StatusFollowsReceivedLinesOnly(t *testing.T) {
	f := newFixture(t)
	ret := f.create(t,
		returns.ItemInput{ItemID: "li-1", Quantity: 2},
		returns.ItemInput{ItemID: "li-2", Quantity: 1},
	)

	received, err := f.service.Receive(context.Background(), returns.ReceiveInput{
		ReturnID: ret.ID,
		Items:    []returns.ItemInput{{ItemID: "li-1", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnStatusReceived, received.Status)

	pending, ok := received.Item("li-2")
	require.True(t, ok)
	assert.True(t, pending.IsRequested)
	assert.Equal(t, int32(1), pending.RequestedQuantity)
	assert.Equal(t, int32(0), pending.ReceivedQuantity)

	assert.Equal(t, int32(2), f.lineItem(t, "li-1").ReturnedQuantity)
	assert.Equal(t, int32(0), f.lineItem(t, "li-2").ReturnedQuantity)
}

func TestReceive_RejectsZeroQuantity(t *testing.T) {
	f := newFixture(t)
	ret := f.create(t, returns.ItemInput{ItemID: "li-1", Quantity: 1})

	_, err := f.service.Receive(context.Background(), returns.ReceiveInput{
		ReturnID: ret.ID,
		Items:    []returns.ItemInput{{ItemID: "li-1", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrItemQtyInvalid)
	assert.ErrorIs(t, err, domain.ErrInvalidData)

	stored, err := f.service.Retrieve(context.Background(), ret.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnStatusRequested, stored.Status)
	assert.Empty(t, f.inventory.Adjustments())
}

func TestReceive_ConcurrentAppliesOnce(t *testing.T) {
	f := newFixture(t)
	ret := f.create(t, returns.ItemInput{ItemID: "li-1", Quantity: 2})

	const workers = 8
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		rejected  atomic.Int32
	)
	start := make(chan struct{})
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.service.Receive(context.Background(), returns.ReceiveInput{
				ReturnID: ret.ID,
				Items:    []returns.ItemInput{{ItemID: "li-1", Quantity: 2}},
			})
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, domain.ErrReturnAlreadyReceived):
				rejected.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(workers-1), rejected.Load())
	assert.Equal(t, int32(2), f.lineItem(t, "li-1").ReturnedQuantity)
	assert.Equal(t, []inventory.Adjustment{{VariantID: "v-1", LocationID: "wh-default", Delta: 2}}, f.inventory.Adjustments())

	stored, err := f.service.Retrieve(context.Background(), ret.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnStatusReceived, stored.Status)
}

func TestReceive_UnrequestedLineAdjustsStockOnly(t *testing.T) {
	f := newFixture(t)
	ret := f.create(t, returns.ItemInput{ItemID: "li-1", Quantity: 2})

	received, err := f.service.Receive(context.Background(), returns.ReceiveInput{
		ReturnID: ret.ID,
		Items:    []returns.ItemInput{{ItemID: "li-1", Quantity: 2}, {ItemID: "li-2", Quantity: 1}},
	})
	require.NoError(t, err)

	extra, ok := received.Item("li-2")
	require.True(t, ok)
	assert.False(t, extra.IsRequested)
	assert.Equal(t, int32(0), extra.RequestedQuantity)
	assert.Equal(t, int32(1), extra.ReceivedQuantity)

	assert.Equal(t, int32(0), f.lineItem(t, "li-2").ReturnedQuantity)
	assert.Contains(t, f.inventory.Adjustments(), inventory.Adjustment{VariantID: "v-2", LocationID: "wh-default", Delta: 1})
}

func TestReceive_RepeatIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ret := f.create(t, returns.ItemInput{ItemID: "li-1", Quantity: 3})
	ctx := context.Background()

	first, err := f.service.Receive(ctx, returns.ReceiveInput{
		ReturnID: ret.ID,
		Items:    []returns.ItemInput{{ItemID: "li-1", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnStatusRequiresAction, first.Status)
	assert.Equal(t, int32(2), f.lineItem(t, "li-1").ReturnedQuantity)

	// Та же приёмка ещё раз ничего не меняет.
	second, err := f.service.Receive(ctx, returns.ReceiveInput{
		ReturnID: ret.ID,
		Items:    []returns.ItemInput{{ItemID: "li-1", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnStatusRequiresAction, second.Status)
	assert.Equal(t, int32(2), f.lineItem(t, "li-1").ReturnedQuantity)

	// Досланная единица доводит приёмку до совпадения.
	third, err := f.service.Receive(ctx, returns.ReceiveInput{
		ReturnID: ret.ID,
		Items:    []returns.ItemInput{{ItemID: "li-1", Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnStatusReceived, third.Status)
	assert.Equal(t, int32(3), f.lineItem(t, "li-1").ReturnedQuantity)

	assert.Equal(t, []inventory.Adjustment{
		{VariantID: "v-1", LocationID: "wh-default", Delta: 2},
		{VariantID: "v-1", LocationID: "wh-default", Delta: 1},
	}, f.inventory.Adjustments())

	_, err = f.service.Receive(ctx, returns.ReceiveInput{
		ReturnID: ret.ID,
		Items:    []returns.ItemInput{{ItemID: "li-1", Quantity: 3}},
	})
	assert.ErrorIs(t, err, domain.ErrReturnAlreadyReceived)
	assert.ErrorIs(t, err, domain.ErrNotAllowed)
}

func TestReceive_RefundOverride(t *testing.T) {
	f := newFixture(t)
	ret := f.create(t, returns.ItemInput{ItemID: "li-1", Quantity: 1})

	_, err := f.service.Receive(context.Background(), returns.ReceiveInput{
		ReturnID:     ret.ID,
		Items:        []returns.ItemInput{{ItemID: "li-1", Quantity: 1}},
		RefundAmount: ptr(int64(5000)),
	})
	assert.ErrorIs(t, err, domain.ErrRefundExceedsRefundable)

	received, err := f.service.Receive(context.Background(), returns.ReceiveInput{
		ReturnID:     ret.ID,
		Items:        []returns.ItemInput{{ItemID: "li-1", Quantity: 1}},
		RefundAmount: ptr(int64(70)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(70), received.RefundAmount)
}

func TestReceive_InventoryFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	ret := f.create(t, returns.ItemInput{ItemID: "li-1", Quantity: 1})
	f.inventory.AdjustErr = errors.New("warehouse offline")

	_, err := f.service.Receive(context.Background(), returns.ReceiveInput{
		ReturnID: ret.ID,
		Items:    []returns.ItemInput{{ItemID: "li-1", Quantity: 1}},
	})
	require.Error(t, err)

	stored, err := f.service.Retrieve(context.Background(), ret.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnStatusRequested, stored.Status)
	assert.Nil(t, stored.ReceivedAt)
	assert.Equal(t, int32(0), f.lineItem(t, "li-1").ReturnedQuantity)
}

func TestFulfill(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ret, err := f.service.Create(ctx, returns.CreateInput{
		OrderID:        "order-1",
		Items:          []returns.ItemInput{{ItemID: "li-1", Quantity: 1}},
		ShippingMethod: &returns.ShippingInput{OptionID: "so-return"},
	})
	require.NoError(t, err)

	fulfilled, err := f.service.Fulfill(ctx, ret.ID)
	require.NoError(t, err)
	assert.Equal(t, fulfillment.ManualProviderID, fulfilled.ShippingData["provider"])
	assert.Equal(t, "manual-"+ret.ID, fulfilled.ShippingData["label_id"])

	_, err = f.service.Fulfill(ctx, ret.ID)
	assert.ErrorIs(t, err, domain.ErrReturnAlreadyFulfilled)
	assert.Equal(t, 1.0, f.counter(t, "rms_returns_fulfilled_total", nil))
}

// countingFulfillment считает обращения к провайдеру отправки.
type countingFulfillment struct {
	calls int
}

func (c *countingFulfillment) CreateReturn(_ context.Context, _ string, data domain.ReturnFulfillment) (map[string]any, error) {
	c.calls++
	return map[string]any{"label_id": fmt.Sprintf("label-%s-%d", data.Return.ID, c.calls)}, nil
}

// conflictingTx выполняет fn и откатывает первые conflicts транзакций конфликтом версий.
type conflictingTx struct {
	domain.TxManager
	conflicts int
	calls     int
}

func (c *conflictingTx) WithinTx(ctx context.Context, fn func(ctx context.Context, uow domain.UnitOfWork) error) error {
	c.calls++
	return c.TxManager.WithinTx(ctx, func(ctx context.Context, uow domain.UnitOfWork) error {
		if err := fn(ctx, uow); err != nil {
			return err
		}
		if c.calls <= c.conflicts {
			return domain.ErrReturnVersionConflict
		}
		return nil
	})
}

func TestFulfill_ConflictRetryReusesLabel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ret, err := f.service.Create(ctx, returns.CreateInput{
		OrderID:        "order-1",
		Items:          []returns.ItemInput{{ItemID: "li-1", Quantity: 1}},
		ShippingMethod: &returns.ShippingInput{OptionID: "so-return"},
	})
	require.NoError(t, err)

	provider := &countingFulfillment{}
	tx := &conflictingTx{TxManager: f.store, conflicts: 2}
	svc := returns.NewService(tx, returns.Collaborators{
		Tax:         tax.NewService(),
		Shipping:    shipping.NewService(),
		Inventory:   f.inventory,
		Fulfillment: provider,
	}, returns.WithLogger(quietLogger()), returns.WithConflictRetries(3, time.Millisecond))

	fulfilled, err := svc.Fulfill(ctx, ret.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, tx.calls)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, "label-"+ret.ID+"-1", fulfilled.ShippingData["label_id"])

	stored, err := f.service.Retrieve(ctx, ret.ID)
	require.NoError(t, err)
	assert.Equal(t, "label-"+ret.ID+"-1", stored.ShippingData["label_id"])
}

func TestFulfill_WithoutShippingIsNoop(t *testing.T) {
	f := newFixture(t)
	ret := f.create(t, returns.ItemInput{ItemID: "li-1", Quantity: 1})
	pendingBefore := len(f.store.AllPending())

	fulfilled, err := f.service.Fulfill(context.Background(), ret.ID)
	require.NoError(t, err)
	assert.Empty(t, fulfilled.ShippingData)
	assert.Equal(t, ret.Version, fulfilled.Version)
	assert.Len(t, f.store.AllPending(), pendingBefore)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ret := f.create(t, returns.ItemInput{ItemID: "li-1", Quantity: 1})
	canceled, err := f.service.Cancel(ctx, ret.ID, "customer changed mind")
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnStatusCanceled, canceled.Status)

	_, err = f.service.Cancel(ctx, ret.ID, "")
	assert.ErrorIs(t, err, domain.ErrReturnCanceled)
	_, err = f.service.Fulfill(ctx, ret.ID)
	assert.ErrorIs(t, err, domain.ErrReturnCanceled)
	_, err = f.service.Receive(ctx, returns.ReceiveInput{ReturnID: ret.ID, Items: []returns.ItemInput{{ItemID: "li-1", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrReturnCanceled)
	_, err = f.service.Update(ctx, ret.ID, returns.UpdateInput{Metadata: map[string]any{"a": 1}})
	assert.ErrorIs(t, err, domain.ErrReturnCanceled)

	received := f.create(t, returns.ItemInput{ItemID: "li-2", Quantity: 1})
	_, err = f.service.Receive(ctx, returns.ReceiveInput{ReturnID: received.ID, Items: []returns.ItemInput{{ItemID: "li-2", Quantity: 1}}})
	require.NoError(t, err)
	_, err = f.service.Cancel(ctx, received.ID, "")
	assert.ErrorIs(t, err, domain.ErrReturnAlreadyReceived)
	assert.ErrorIs(t, err, domain.ErrNotAllowed)

	mismatched := f.create(t, returns.ItemInput{ItemID: "li-1", Quantity: 2})
	_, err = f.service.Receive(ctx, returns.ReceiveInput{ReturnID: mismatched.ID, Items: []returns.ItemInput{{ItemID: "li-1", Quantity: 1}}})
	require.NoError(t, err)
	canceled, err = f.service.Cancel(ctx, mismatched.ID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnStatusCanceled, canceled.Status)
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ret, err := f.service.Create(ctx, returns.CreateInput{
		OrderID:  "order-1",
		Items:    []returns.ItemInput{{ItemID: "li-1", Quantity: 1}},
		Metadata: map[string]any{"source": "web", "ticket": "T-1"},
	})
	require.NoError(t, err)

	location := "wh-9"
	silent := true
	updated, err := f.service.Update(ctx, ret.ID, returns.UpdateInput{
		Metadata:       map[string]any{"ticket": "T-2", "agent": "anna"},
		LocationID:     &location,
		NoNotification: &silent,
		RefundAmount:   ptr(int64(90)),
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"source": "web", "ticket": "T-2", "agent": "anna"}, updated.Metadata)
	assert.Equal(t, "wh-9", updated.LocationID)
	assert.True(t, updated.NoNotification)
	assert.Equal(t, int64(90), updated.RefundAmount)

	_, err = f.service.Update(ctx, ret.ID, returns.UpdateInput{RefundAmount: ptr(int64(-1))})
	assert.ErrorIs(t, err, domain.ErrRefundNegative)

	_, err = f.service.Receive(ctx, returns.ReceiveInput{ReturnID: ret.ID, Items: []returns.ItemInput{{ItemID: "li-1", Quantity: 1}}})
	require.NoError(t, err)

	_, err = f.service.Update(ctx, ret.ID, returns.UpdateInput{Metadata: map[string]any{"closed": true}})
	require.NoError(t, err)
	_, err = f.service.Update(ctx, ret.ID, returns.UpdateInput{LocationID: &location})
	assert.ErrorIs(t, err, domain.ErrReturnAlreadyReceived)
}

func TestRetrieve_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Retrieve(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrReturnNotFound)
	assert.True(t, domain.IsNotFound(err))

	_, err = f.service.RetrieveBySwap(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, "not_found", returns.ErrorKind(err))
}

func TestList_DefaultsAndFilter(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, returns.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	first := f.create(t, returns.ItemInput{ItemID: "li-1", Quantity: 1})
	second := f.create(t, returns.ItemInput{ItemID: "li-2", Quantity: 1})
	_, err := f.service.Cancel(ctx, second.ID, "")
	require.NoError(t, err)

	all, err := f.service.List(ctx, domain.ReturnFilter{OrderID: "order-1"}, domain.Page{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	requested, err := f.service.List(ctx, domain.ReturnFilter{Statuses: []domain.ReturnStatus{domain.ReturnStatusRequested}}, domain.Page{})
	require.NoError(t, err)
	require.Len(t, requested, 1)
	assert.Equal(t, first.ID, requested[0].ID)

	paged, err := f.service.List(ctx, domain.ReturnFilter{}, domain.Page{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, paged, 1)
}

func TestEvents_OutboxAndTimeline(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ret := f.create(t, returns.ItemInput{ItemID: "li-1", Quantity: 2})
	_, err := f.service.Receive(ctx, returns.ReceiveInput{ReturnID: ret.ID, Items: []returns.ItemInput{{ItemID: "li-1", Quantity: 2}}})
	require.NoError(t, err)

	pending := f.store.AllPending()
	require.Len(t, pending, 2)
	assert.Equal(t, string(domain.EventReturnRequested), pending[0].EventType)
	assert.Equal(t, string(domain.EventReturnReceived), pending[1].EventType)
	assert.Equal(t, domain.AggregateTypeReturn, pending[1].AggregateType)
	assert.Equal(t, ret.ID, pending[1].AggregateID)

	var event domain.ReturnEvent
	require.NoError(t, json.Unmarshal(pending[1].Payload, &event))
	assert.Equal(t, domain.ReturnStatusReceived, event.Status)
	require.Len(t, event.Items, 1)
	assert.Equal(t, int32(2), event.Items[0].ReceivedQuantity)

	timeline, err := f.service.Timeline(ctx, ret.ID)
	require.NoError(t, err)
	require.Len(t, timeline, 2)
	assert.Equal(t, string(domain.EventReturnRequested), timeline[0].Type)
	assert.Equal(t, string(domain.EventReturnReceived), timeline[1].Type)

	assert.Equal(t, 2.0, f.counter(t, "rms_outbox_events_total", nil))
	assert.Equal(t, 2.0, f.counter(t, "rms_timeline_events_total", nil))
}

func TestExecute_CanceledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.service.Create(ctx, returns.CreateInput{OrderID: "order-1", Items: []returns.ItemInput{{ItemID: "li-1", Quantity: 1}}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "canceled", returns.ErrorKind(err))
	assert.Equal(t, 1.0, f.counter(t, "rms_return_operations_failed_total", map[string]string{"operation": "create", "kind": "canceled"}))
}

func ptr[T any](v T) *T { return &v }

// flakyTx возвращает конфликт версий на первых failures вызовах.
type flakyTx struct {
	domain.TxManager
	failures int
	calls    int
}

func (f *flakyTx) WithinTx(ctx context.Context, fn func(ctx context.Context, uow domain.UnitOfWork) error) error {
	f.calls++
	if f.calls <= f.failures {
		return domain.ErrReturnVersionConflict
	}
	return f.TxManager.WithinTx(ctx, fn)
}

func TestExecute_RetriesVersionConflict(t *testing.T) {
	store := memory.NewStore()
	store.SeedOrder(domain.Order{
		ID:                "order-1",
		FulfillmentStatus: domain.FulfillmentStatusShipped,
		PaymentStatus:     domain.PaymentStatusCaptured,
		PaidTotal:         500,
		Items:             []domain.LineItem{{ID: "li-1", UnitPrice: 100, Quantity: 1}},
	})

	tests := []struct {
		name     string
		failures int
		wantErr  bool
	}{
		{name: "recovers", failures: 2},
		{name: "gives up", failures: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &flakyTx{TxManager: store, failures: tt.failures}
			svc := returns.NewService(tx, returns.Collaborators{Inventory: inventory.NewMockService()},
				returns.WithLogger(quietLogger()),
				returns.WithConflictRetries(3, time.Millisecond),
			)

			_, err := svc.Create(context.Background(), returns.CreateInput{
				OrderID: "order-1",
				Items:   []returns.ItemInput{{ItemID: "li-1", Quantity: 1}},
			})
			if tt.wantErr {
				assert.True(t, domain.IsVersionConflict(err))
				assert.Equal(t, 3, tx.calls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 3, tx.calls)
		})
	}
}
