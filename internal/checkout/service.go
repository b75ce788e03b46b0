package checkout

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/woodenmart/internal/catalog"
	"github.com/example/woodenmart/internal/order"
	"github.com/example/woodenmart/internal/payments"
)

// EventPublisher publishes domain events keyed by aggregate id.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Config fixes the orchestrator's payment policy at construction time.
// A nil Processor selects simulated mode: payment is treated as
// immediately successful and the order is persisted as paid.
type Config struct {
	Processor        payments.SessionCreator
	SuccessURL       string
	CancelURL        string
	ProcessorTimeout time.Duration
}

// Service converts validated cart lines into a priced order, then either
// persists it (simulated mode) or hands off to the payment processor.
type Service struct {
	catalog   *catalog.Service
	orders    *order.Repository
	publisher EventPublisher
	cfg       Config
}

func NewService(catalogSvc *catalog.Service, orders *order.Repository, publisher EventPublisher, cfg Config) *Service {
	if cfg.ProcessorTimeout <= 0 {
		cfg.ProcessorTimeout = 15 * time.Second
	}
	return &Service{
		catalog:   catalogSvc,
		orders:    orders,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Simulated reports whether payment is simulated (no processor configured).
func (s *Service) Simulated() bool {
	return s.cfg.Processor == nil
}

// Outcome is the terminal result of a checkout: exactly one of Order
// (simulated mode) or RedirectURL (real mode) is set.
type Outcome struct {
	Order       *order.Order
	RedirectURL string
}

// Checkout prices the cart and produces one terminal outcome. Resolution
// is fail-fast: the first unresolvable product aborts the whole operation
// before any order is persisted or payment session created.
func (s *Service) Checkout(ctx context.Context, lines []CartLine, customerEmail string) (*Outcome, error) {
	if customerEmail == "" {
		return nil, ErrMissingEmail
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items, total, currency, err := s.priceCart(ctx, lines)
	if err != nil {
		return nil, err
	}

	if s.Simulated() {
		return s.completeSimulated(ctx, customerEmail, items, total, currency)
	}
	return s.createPaymentSession(ctx, customerEmail, items)
}

// priceCart resolves every line against the catalog, in input order.
// Unit prices always come from the freshly resolved product record,
// never from caller input. Both payment paths consume this one result.
func (s *Service) priceCart(ctx context.Context, lines []CartLine) ([]order.OrderItem, decimal.Decimal, string, error) {
	items := make([]order.OrderItem, 0, len(lines))
	total := decimal.Zero
	currency := ""

	for _, line := range lines {
		p, err := s.catalog.Get(ctx, line.ProductID)
		if err != nil {
			return nil, decimal.Zero, "", err
		}

		subtotal := p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, order.OrderItem{
			ProductID: p.ID,
			Title:     p.Title,
			UnitPrice: p.Price,
			Quantity:  line.Quantity,
			Subtotal:  subtotal,
			Currency:  p.Currency,
		})
		total = total.Add(subtotal)

		if currency == "" {
			currency = p.Currency
		}
	}
	if currency == "" {
		currency = catalog.DefaultCurrency
	}
	return items, total, currency, nil
}

// completeSimulated persists the order as paid and reports success.
func (s *Service) completeSimulated(ctx context.Context, customerEmail string, items []order.OrderItem, total decimal.Decimal, currency string) (*Outcome, error) {
	o := &order.Order{
		UserEmail: customerEmail,
		Items:     items,
		Total:     total,
		Currency:  currency,
		Status:    order.StatusPaid,
	}
	if err := s.orders.Insert(ctx, o); err != nil {
		return nil, err
	}

	s.publishPlaced(ctx, o)

	return &Outcome{Order: o}, nil
}

// createPaymentSession requests a hosted checkout session. No order is
// persisted here; order creation waits for a payment confirmation hook.
func (s *Service) createPaymentSession(ctx context.Context, customerEmail string, items []order.OrderItem) (*Outcome, error) {
	lineItems := make([]payments.LineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, payments.LineItem{
			Currency:   item.Currency,
			Name:       item.Title,
			UnitAmount: MinorUnits(item.UnitPrice),
			Quantity:   item.Quantity,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ProcessorTimeout)
	defer cancel()

	session, err := s.cfg.Processor.CreateSession(ctx, payments.SessionRequest{
		LineItems:     lineItems,
		SuccessURL:    s.cfg.SuccessURL,
		CancelURL:     s.cfg.CancelURL,
		CustomerEmail: customerEmail,
	})
	if err != nil {
		return nil, err
	}

	return &Outcome{RedirectURL: session.URL}, nil
}

// publishPlaced emits the order-placed event. Publishing is best effort;
// the order is already persisted and must not be rolled back over it.
func (s *Service) publishPlaced(ctx context.Context, o *order.Order) {
	if s.publisher == nil {
		return
	}
	envelope, err := order.NewPlacedEvent(o).Envelope()
	if err != nil {
		log.Printf("[Checkout] Failed to build order placed event for %s: %v", o.ID, err)
		return
	}
	if err := s.publisher.Publish(ctx, o.ID, envelope); err != nil {
		log.Printf("[Checkout] Failed to publish order placed event for %s: %v", o.ID, err)
	}
}

// MinorUnits converts a price into the currency's smallest denomination,
// as the payment processor requires (e.g. 100.00 -> 10000).
func MinorUnits(price decimal.Decimal) int64 {
	return price.Shift(2).Round(0).IntPart()
}
