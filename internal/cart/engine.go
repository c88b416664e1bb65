// Package cart holds the shopper's in-memory cart and computes its totals.
package cart

import (
	"errors"
	"fmt"

	"github.com/jcmexdev/restaurant-ordering/internal/catalog"
)

var (
	// ErrUnknownItem is returned when an item id cannot be resolved in the catalog.
	ErrUnknownItem = errors.New("cart: unknown item")
	// ErrInvalidQuantity is returned when an add asks for fewer than one unit
	// or would push a line past maxLineQuantity.
	ErrInvalidQuantity = errors.New("cart: invalid quantity")
)

// maxLineQuantity caps the units on a single line.
const maxLineQuantity = 999

// Lookup resolves catalog items by id. *catalog.Catalog satisfies it.
type Lookup interface {
	FindItem(id string) (catalog.Item, bool)
}

var _ Lookup = (*catalog.Catalog)(nil)

// Line is one (item, quantity) pairing in the cart.
type Line struct {
	ItemID   string
	Quantity int
}

// Engine owns the cart lines. Lines keep first-add order and there is at
// most one line per item id.
//
// Engine is not safe for concurrent use; callers serialize access.
type Engine struct {
	lookup Lookup
	lines  []Line
}

// NewEngine returns an empty cart resolving prices through lookup.
func NewEngine(lookup Lookup) *Engine {
	return &Engine{lookup: lookup}
}

// AddItem adds quantity units of itemID, merging into an existing line.
// An add that would leave the line above maxLineQuantity changes nothing.
func (e *Engine) AddItem(itemID string, quantity int) error {
	if quantity < 1 || quantity > maxLineQuantity {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	if _, ok := e.lookup.FindItem(itemID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}
	if i := e.index(itemID); i >= 0 {
		if e.lines[i].Quantity > maxLineQuantity-quantity {
			return fmt.Errorf("%w: line %q would exceed %d units", ErrInvalidQuantity, itemID, maxLineQuantity)
		}
		e.lines[i].Quantity += quantity
		return nil
	}
	e.lines = append(e.lines, Line{ItemID: itemID, Quantity: quantity})
	return nil
}

// RemoveItem deletes the line for itemID. Absent ids are ignored.
func (e *Engine) RemoveItem(itemID string) {
	i := e.index(itemID)
	if i < 0 {
		return
	}
	e.lines = append(e.lines[:i], e.lines[i+1:]...)
}

// SetQuantity overwrites the quantity of an existing line, clamped into
// [1, maxLineQuantity]; it never removes the line. Absent ids are ignored.
func (e *Engine) SetQuantity(itemID string, quantity int) {
	i := e.index(itemID)
	if i < 0 {
		return
	}
	e.lines[i].Quantity = min(max(1, quantity), maxLineQuantity)
}

// Clear empties the cart.
func (e *Engine) Clear() {
	e.lines = nil
}

// Restore replaces the cart content with lines. Used to undo a Clear when
// an order placement is rolled back.
func (e *Engine) Restore(lines []Line) {
	e.lines = cloneLines(lines)
}

// Lines returns a copy of the cart lines in insertion order.
func (e *Engine) Lines() []Line {
	return cloneLines(e.lines)
}

// Len reports the number of distinct lines.
func (e *Engine) Len() int { return len(e.lines) }

// IsEmpty reports whether the cart has no lines.
func (e *Engine) IsEmpty() bool { return len(e.lines) == 0 }

// TotalQuantity sums the quantities of every line.
func (e *Engine) TotalQuantity() int {
	total := 0
	for _, l := range e.lines {
		total += l.Quantity
	}
	return total
}

// Lookup exposes the catalog the engine resolves prices against.
func (e *Engine) Lookup() Lookup { return e.lookup }

func (e *Engine) index(itemID string) int {
	for i, l := range e.lines {
		if l.ItemID == itemID {
			return i
		}
	}
	return -1
}

func cloneLines(lines []Line) []Line {
	if len(lines) == 0 {
		return nil
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
