// Package storefront ties the catalog, the cart engine and the order ledger
// into the one shopping session the process serves.
package storefront

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/restaurant-ordering/internal/cart"
	"github.com/jcmexdev/restaurant-ordering/internal/catalog"
	"github.com/jcmexdev/restaurant-ordering/internal/ledger"
)

// UnknownItemName labels lines and order items whose id is not in the catalog.
const UnknownItemName = "Unknown"

// Session owns the single cart of the process. Every method holds the
// session lock for its whole duration, so each operation is atomic for
// concurrent HTTP callers.
type Session struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	cart    *cart.Engine
	ledger  *ledger.Ledger
}

// NewSession starts a session with an empty cart.
func NewSession(c *catalog.Catalog, l *ledger.Ledger) *Session {
	return &Session{
		catalog: c,
		cart:    cart.NewEngine(c),
		ledger:  l,
	}
}

// CartLine is a cart line resolved against the catalog for display.
type CartLine struct {
	ItemID    string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
}

// CartView is everything a renderer needs to draw the cart.
type CartView struct {
	Lines     []CartLine
	Totals    cart.Totals
	ItemCount int
}

// Menu returns the catalog items matching filter.
func (s *Session) Menu(filter string) []catalog.Item {
	return s.catalog.Search(filter)
}

// Item looks up a single catalog item.
func (s *Session) Item(id string) (catalog.Item, bool) {
	return s.catalog.FindItem(id)
}

// ItemName resolves an id to its display name.
func (s *Session) ItemName(id string) string {
	if it, ok := s.catalog.FindItem(id); ok {
		return it.Name
	}
	return UnknownItemName
}

func (s *Session) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Session) AddItem(itemID string, quantity int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.AddItem(itemID, quantity); err != nil {
		return CartView{}, err
	}
	return s.view(), nil
}

func (s *Session) RemoveItem(itemID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.RemoveItem(itemID)
	return s.view()
}

func (s *Session) SetQuantity(itemID string, quantity int) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.SetQuantity(itemID, quantity)
	return s.view()
}

func (s *Session) ClearCart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	return s.view()
}

// PlaceOrder checks the cart out through the ledger.
func (s *Session) PlaceOrder(ctx context.Context, customerName string) (ledger.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.PlaceOrder(ctx, s.cart, customerName)
}

// History returns placed orders, newest first.
func (s *Session) History(ctx context.Context) []ledger.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.LoadHistory(ctx)
}

func (s *Session) OrderCount(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.OrderCount(ctx)
}

// view must be called with the lock held.
func (s *Session) view() CartView {
	lines := s.cart.Lines()
	out := make([]CartLine, 0, len(lines))
	for _, l := range lines {
		line := CartLine{ItemID: l.ItemID, Name: UnknownItemName, Quantity: l.Quantity}
		if it, ok := s.catalog.FindItem(l.ItemID); ok {
			line.Name = it.Name
			line.UnitPrice = it.UnitPrice
			line.LineTotal = it.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		}
		out = append(out, line)
	}
	return CartView{
		Lines:     out,
		Totals:    s.cart.ComputeTotals(),
		ItemCount: s.cart.TotalQuantity(),
	}
}
