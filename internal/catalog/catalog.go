// Package catalog provides read-only access to the purchasable menu.
//
// A Catalog is built once at startup and never mutated afterwards, so it is
// safe to share between goroutines without locking.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidItem is returned by New when an item cannot be part of a catalog.
var ErrInvalidItem = errors.New("catalog: invalid item")

// Item is a single menu entry with a fixed unit price.
type Item struct {
	ID          string
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	ImageRef    string
}

// Catalog is an immutable, ordered list of items indexed by id.
type Catalog struct {
	items []Item
	byID  map[string]int
}

// New builds a catalog preserving the order of items. Blank ids, duplicate
// ids and negative prices are rejected.
func New(items ...Item) (*Catalog, error) {
	c := &Catalog{
		items: make([]Item, 0, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	for _, it := range items {
		if strings.TrimSpace(it.ID) == "" {
			return nil, fmt.Errorf("%w: blank id for %q", ErrInvalidItem, it.Name)
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidItem, it.ID)
		}
		if it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: negative price for %q", ErrInvalidItem, it.ID)
		}
		c.byID[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}
	return c, nil
}

// FindItem returns the item with the given id. The boolean is false when the
// id is unknown.
func (c *Catalog) FindItem(id string) (Item, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[idx], true
}

// Items returns every item in catalog order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len reports the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// Search returns the items whose name or description contains filter,
// ignoring case and surrounding whitespace. An empty filter matches all.
func (c *Catalog) Search(filter string) []Item {
	f := strings.ToLower(strings.TrimSpace(filter))
	if f == "" {
		return c.Items()
	}
	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		if strings.Contains(strings.ToLower(it.Name), f) ||
			strings.Contains(strings.ToLower(it.Description), f) {
			out = append(out, it)
		}
	}
	return out
}
