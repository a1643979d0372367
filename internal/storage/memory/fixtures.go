package memory

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

// Fixtures — начальные данные in-memory хранилища в YAML.
type Fixtures struct {
	Orders          []orderFixture  `yaml:"orders"`
	ReturnReasons   []reasonFixture `yaml:"return_reasons"`
	ShippingOptions []optionFixture `yaml:"shipping_options"`
	Stock           []stockFixture  `yaml:"stock"`
}

type taxFixture struct {
	Name string `yaml:"name"`
	Code string `yaml:"code"`
	Rate string `yaml:"rate"`
}

type regionFixture struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Currency string       `yaml:"currency"`
	TaxRate  string       `yaml:"tax_rate"`
	TaxRates []taxFixture `yaml:"tax_rates"`
}

type itemFixture struct {
	ID               string         `yaml:"id"`
	Title            string         `yaml:"title"`
	VariantID        string         `yaml:"variant_id"`
	ProductID        string         `yaml:"product_id"`
	UnitPrice        int64          `yaml:"unit_price"`
	Quantity         int32          `yaml:"quantity"`
	ReturnedQuantity int32          `yaml:"returned_quantity"`
	TaxLines         []taxFixture   `yaml:"tax_lines"`
	Metadata         map[string]any `yaml:"metadata"`
}

type childFixture struct {
	ID              string        `yaml:"id"`
	Canceled        bool          `yaml:"canceled"`
	AdditionalItems []itemFixture `yaml:"additional_items"`
}

type orderFixture struct {
	ID                string         `yaml:"id"`
	CustomerID        string         `yaml:"customer_id"`
	Currency          string         `yaml:"currency"`
	Status            string         `yaml:"status"`
	FulfillmentStatus string         `yaml:"fulfillment_status"`
	PaymentStatus     string         `yaml:"payment_status"`
	Total             int64          `yaml:"total"`
	PaidTotal         int64          `yaml:"paid_total"`
	RefundedTotal     int64          `yaml:"refunded_total"`
	Canceled          bool           `yaml:"canceled"`
	Region            regionFixture  `yaml:"region"`
	Items             []itemFixture  `yaml:"items"`
	Swaps             []childFixture `yaml:"swaps"`
	Claims            []childFixture `yaml:"claims"`
}

type reasonFixture struct {
	ID       string `yaml:"id"`
	Value    string `yaml:"value"`
	Label    string `yaml:"label"`
	ParentID string `yaml:"parent_id"`
}

type optionFixture struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	ProviderID string `yaml:"provider_id"`
	Amount     int64  `yaml:"amount"`
	IsReturn   bool   `yaml:"is_return"`
}

type stockFixture struct {
	VariantID  string `yaml:"variant_id"`
	LocationID string `yaml:"location_id"`
	Quantity   int64  `yaml:"quantity"`
}

// LoadFixturesFile читает YAML-файл и наполняет хранилище.
func LoadFixturesFile(store *Store, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixtures: %w", err)
	}
	return LoadFixtures(store, raw)
}

// LoadFixtures разбирает YAML и наполняет хранилище.
func LoadFixtures(store *Store, raw []byte) error {
	var fx Fixtures
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	now := time.Now().UTC()
	for _, of := range fx.Orders {
		order, err := of.toDomain(now)
		if err != nil {
			return fmt.Errorf("order %s: %w", of.ID, err)
		}
		store.SeedOrder(order)
	}
	for _, rf := range fx.ReturnReasons {
		store.SeedReturnReason(domain.ReturnReason{ID: rf.ID, Value: rf.Value, Label: rf.Label, ParentID: rf.ParentID})
	}
	for _, sf := range fx.ShippingOptions {
		store.SeedShippingOption(domain.ShippingOption{
			ID: sf.ID, Name: sf.Name, ProviderID: sf.ProviderID, Amount: sf.Amount, IsReturn: sf.IsReturn,
		})
	}
	for _, st := range fx.Stock {
		store.SeedStock(domain.StockLevel{VariantID: st.VariantID, LocationID: st.LocationID, Quantity: st.Quantity})
	}
	return nil
}

func (of orderFixture) toDomain(now time.Time) (domain.Order, error) {
	region, err := of.Region.toDomain()
	if err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		ID:                of.ID,
		CustomerID:        of.CustomerID,
		Currency:          of.Currency,
		Status:            domain.OrderStatus(of.Status),
		FulfillmentStatus: domain.FulfillmentStatus(of.FulfillmentStatus),
		PaymentStatus:     domain.PaymentStatus(of.PaymentStatus),
		Total:             of.Total,
		PaidTotal:         of.PaidTotal,
		RefundedTotal:     of.RefundedTotal,
		Region:            region,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusCompleted
	}
	if of.Canceled {
		order.CanceledAt = &now
	}
	order.ComputeRefundable()

	if order.Items, err = itemsToDomain(of.Items); err != nil {
		return domain.Order{}, err
	}
	for _, sf := range of.Swaps {
		sw := domain.Swap{ID: sf.ID, OrderID: of.ID}
		if sf.Canceled {
			sw.CanceledAt = &now
		}
		if sw.AdditionalItems, err = itemsToDomain(sf.AdditionalItems); err != nil {
			return domain.Order{}, err
		}
		order.Swaps = append(order.Swaps, sw)
	}
	for _, cf := range of.Claims {
		cl := domain.Claim{ID: cf.ID, OrderID: of.ID}
		if cf.Canceled {
			cl.CanceledAt = &now
		}
		if cl.AdditionalItems, err = itemsToDomain(cf.AdditionalItems); err != nil {
			return domain.Order{}, err
		}
		order.Claims = append(order.Claims, cl)
	}
	return order, nil
}

func (rf regionFixture) toDomain() (domain.Region, error) {
	region := domain.Region{ID: rf.ID, Name: rf.Name, Currency: rf.Currency, TaxRate: decimal.Zero}
	if rf.TaxRate != "" {
		rate, err := decimal.NewFromString(rf.TaxRate)
		if err != nil {
			return domain.Region{}, fmt.Errorf("region tax_rate: %w", err)
		}
		region.TaxRate = rate
	}
	for _, tf := range rf.TaxRates {
		rate, err := decimal.NewFromString(tf.Rate)
		if err != nil {
			return domain.Region{}, fmt.Errorf("tax rate %s: %w", tf.Code, err)
		}
		region.TaxRates = append(region.TaxRates, domain.TaxRate{Name: tf.Name, Code: tf.Code, Rate: rate})
	}
	return region, nil
}

func itemsToDomain(items []itemFixture) ([]domain.LineItem, error) {
	result := make([]domain.LineItem, 0, len(items))
	for _, f := range items {
		item := domain.LineItem{
			ID:               f.ID,
			Title:            f.Title,
			VariantID:        f.VariantID,
			ProductID:        f.ProductID,
			UnitPrice:        f.UnitPrice,
			Quantity:         f.Quantity,
			ReturnedQuantity: f.ReturnedQuantity,
			Metadata:         f.Metadata,
		}
		for _, tf := range f.TaxLines {
			rate, err := decimal.NewFromString(tf.Rate)
			if err != nil {
				return nil, fmt.Errorf("item %s tax line %s: %w", f.ID, tf.Code, err)
			}
			item.TaxLines = append(item.TaxLines, domain.TaxLine{Name: tf.Name, Code: tf.Code, Rate: rate})
		}
		result = append(result, item)
	}
	return result, nil
}
