// Package ledger turns a finished cart into an immutable order and keeps the
// newest-first order history in a key-value store.
package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/restaurant-ordering/internal/cart"
)

var (
	// ErrEmptyCart rejects a placement when the cart has no lines.
	ErrEmptyCart = errors.New("ledger: cart is empty")
	// ErrPersist means the history could not be written; the order was not placed.
	ErrPersist = errors.New("ledger: persist order history")
)

// Status of an order. Only StatusPlaced is ever assigned.
type Status string

const StatusPlaced Status = "placed"

// GuestName replaces a blank customer name.
const GuestName = "Guest"

// DefaultHistoryKey is the store key holding the serialized history.
const DefaultHistoryKey = "rms_orders_local_v1"

// Order is created once by PlaceOrder and never modified afterwards.
type Order struct {
	ID           string
	CustomerName string
	Lines        []cart.Line
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	GrandTotal   decimal.Decimal
	Status       Status
	PlacedAt     time.Time
}

// TotalQuantity sums the frozen line quantities.
func (o Order) TotalQuantity() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}

// ResolveCustomerName trims name and falls back to GuestName when blank.
func ResolveCustomerName(name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return GuestName
}
