package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

type stockKey struct {
	variantID  string
	locationID string
}

// state — полный снимок данных. Транзакция работает с копией и при успехе
// подменяет ею текущий снимок.
type state struct {
	orders    map[string]domain.Order
	swaps     map[string]domain.Swap
	claims    map[string]domain.Claim
	lineItems map[string]domain.LineItem
	itemOrder []string
	returns   map[string]domain.Return
	reasons   map[string]domain.ReturnReason
	options   map[string]domain.ShippingOption
	methods   map[string]domain.ShippingMethod
	stock     map[stockKey]domain.StockLevel
	outbox    map[string]outboxRecord
	outboxSeq int64
	timeline  map[string][]domain.TimelineEvent
}

func newState() *state {
	return &state{
		orders:    make(map[string]domain.Order),
		swaps:     make(map[string]domain.Swap),
		claims:    make(map[string]domain.Claim),
		lineItems: make(map[string]domain.LineItem),
		returns:   make(map[string]domain.Return),
		reasons:   make(map[string]domain.ReturnReason),
		options:   make(map[string]domain.ShippingOption),
		methods:   make(map[string]domain.ShippingMethod),
		stock:     make(map[stockKey]domain.StockLevel),
		outbox:    make(map[string]outboxRecord),
		timeline:  make(map[string][]domain.TimelineEvent),
	}
}

// clone копирует карты. Значения в картах не изменяются на месте:
// репозитории всегда записывают новую копию значения.
func (s *state) clone() *state {
	c := &state{
		orders:    cloneMap(s.orders),
		swaps:     cloneMap(s.swaps),
		claims:    cloneMap(s.claims),
		lineItems: cloneMap(s.lineItems),
		itemOrder: append([]string(nil), s.itemOrder...),
		returns:   cloneMap(s.returns),
		reasons:   cloneMap(s.reasons),
		options:   cloneMap(s.options),
		methods:   cloneMap(s.methods),
		stock:     cloneMap(s.stock),
		outbox:    cloneMap(s.outbox),
		outboxSeq: s.outboxSeq,
		timeline:  make(map[string][]domain.TimelineEvent, len(s.timeline)),
	}
	for k, v := range s.timeline {
		c.timeline[k] = append([]domain.TimelineEvent(nil), v...)
	}
	return c
}

func cloneMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Store — in-memory хранилище для локальной разработки и тестов.
// Транзакции сериализуются одним мьютексом.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

// NewStore создаёт пустое in-memory хранилище.
func NewStore() *Store {
	return &Store{
		st:  newState(),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithinTx выполняет fn над копией данных и публикует её только при успехе.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, uow domain.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(ctx, &unitOfWork{st: work, now: s.now}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Outbox возвращает outbox-репозиторий вне транзакций (для outbox worker).
func (s *Store) Outbox() domain.OutboxRepository {
	return &lockedOutbox{store: s}
}

// SeedOrder добавляет заказ со всеми позициями, обменами и претензиями.
func (s *Store) SeedOrder(order domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	putItem := func(item domain.LineItem) {
		if _, exists := s.st.lineItems[item.ID]; !exists {
			s.st.itemOrder = append(s.st.itemOrder, item.ID)
		}
		item.TaxLines = append([]domain.TaxLine(nil), item.TaxLines...)
		item.Metadata = domain.CloneMetadata(item.Metadata)
		s.st.lineItems[item.ID] = item
	}

	for _, item := range order.Items {
		item.OrderID = order.ID
		putItem(item)
	}
	for _, sw := range order.Swaps {
		sw.OrderID = order.ID
		for _, item := range sw.AdditionalItems {
			item.SwapID = sw.ID
			putItem(item)
		}
		sw.AdditionalItems = nil
		s.st.swaps[sw.ID] = sw
	}
	for _, cl := range order.Claims {
		cl.OrderID = order.ID
		for _, item := range cl.AdditionalItems {
			item.ClaimOrderID = cl.ID
			putItem(item)
		}
		cl.AdditionalItems = nil
		s.st.claims[cl.ID] = cl
	}

	order.Items, order.Swaps, order.Claims = nil, nil, nil
	if order.RefundableAmount == 0 && order.PaidTotal > 0 {
		order.ComputeRefundable()
	}
	s.st.orders[order.ID] = order
}

// SeedReturnReason добавляет причину возврата. Дочерние причины задаются через ParentID.
func (s *Store) SeedReturnReason(reason domain.ReturnReason) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reason.Children = nil
	s.st.reasons[reason.ID] = reason
}

// SeedShippingOption добавляет способ доставки.
func (s *Store) SeedShippingOption(option domain.ShippingOption) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.options[option.ID] = option
}

// SeedStock задаёт остаток варианта на локации.
func (s *Store) SeedStock(level domain.StockLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	level.UpdatedAt = s.now()
	s.st.stock[stockKey{variantID: level.VariantID, locationID: level.LocationID}] = level
}

type unitOfWork struct {
	st  *state
	now func() time.Time
}

func (u *unitOfWork) Returns() domain.ReturnRepository {
	return &returnRepository{st: u.st, now: u.now}
}

func (u *unitOfWork) Orders() domain.OrderRepository { return &orderRepository{st: u.st} }

func (u *unitOfWork) LineItems() domain.LineItemRepository { return &lineItemRepository{st: u.st} }

func (u *unitOfWork) ReturnReasons() domain.ReturnReasonRepository {
	return &returnReasonRepository{st: u.st}
}

func (u *unitOfWork) Shipping() domain.ShippingRepository { return &shippingRepository{st: u.st} }

func (u *unitOfWork) Stock() domain.StockRepository {
	return &stockRepository{st: u.st, now: u.now}
}

func (u *unitOfWork) Outbox() domain.OutboxRepository {
	return &outboxRepository{st: u.st, now: u.now}
}

func (u *unitOfWork) Timeline() domain.TimelineRepository { return &timelineRepository{st: u.st} }

var (
	_ domain.TxManager  = (*Store)(nil)
	_ domain.UnitOfWork = (*unitOfWork)(nil)
)
