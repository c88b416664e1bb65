package storefront

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/restaurant-ordering/internal/cart"
	"github.com/jcmexdev/restaurant-ordering/internal/catalog"
	"github.com/jcmexdev/restaurant-ordering/internal/ledger"
	"github.com/jcmexdev/restaurant-ordering/internal/pkg/kvstore"
)

func newTestSession() *Session {
	return NewSession(catalog.DefaultMenu(), ledger.New(kvstore.NewMemory()))
}

func TestSessionCartView(t *testing.T) {
	s := newTestSession()

	view, err := s.AddItem("m4", 2)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(view.Lines))
	}
	line := view.Lines[0]
	if line.Name != "Garlic Naan" || !line.LineTotal.Equal(decimal.NewFromInt(98)) {
		t.Errorf("unexpected line %+v", line)
	}
	if view.ItemCount != 2 {
		t.Errorf("expected item count 2, got %d", view.ItemCount)
	}
	if cart.FormatMoney(view.Totals.GrandTotal) != "102.90" {
		t.Errorf("expected total 102.90, got %s", view.Totals.GrandTotal)
	}
}

func TestSessionRejectsUnknownItem(t *testing.T) {
	s := newTestSession()

	if _, err := s.AddItem("nope", 1); !errors.Is(err, cart.ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
	if got := s.Cart(); len(got.Lines) != 0 {
		t.Errorf("expected empty cart, got %+v", got.Lines)
	}
}

func TestSessionPlaceOrderFlow(t *testing.T) {
	s := newTestSession()
	ctx := context.Background()

	if _, err := s.PlaceOrder(ctx, "Ann"); !errors.Is(err, ledger.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	_, _ = s.AddItem("m1", 1)
	s.SetQuantity("m1", -3)
	if got := s.Cart().Lines[0].Quantity; got != 1 {
		t.Fatalf("expected clamped quantity 1, got %d", got)
	}

	order, err := s.PlaceOrder(ctx, "Ann")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if s.OrderCount(ctx) != 1 || s.History(ctx)[0].ID != order.ID {
		t.Error("expected the order at the head of the history")
	}
	if len(s.Cart().Lines) != 0 {
		t.Error("expected empty cart after placement")
	}
}

func TestSessionRemoveAndClear(t *testing.T) {
	s := newTestSession()
	_, _ = s.AddItem("m1", 1)
	_, _ = s.AddItem("m2", 1)

	if view := s.RemoveItem("m1"); len(view.Lines) != 1 || view.Lines[0].ItemID != "m2" {
		t.Errorf("unexpected cart after remove: %+v", view.Lines)
	}
	if view := s.ClearCart(); len(view.Lines) != 0 || view.ItemCount != 0 {
		t.Errorf("unexpected cart after clear: %+v", view)
	}
}

func TestSessionConcurrentAdds(t *testing.T) {
	s := newTestSession()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.AddItem("m5", 1)
		}()
	}
	wg.Wait()

	view := s.Cart()
	if len(view.Lines) != 1 || view.Lines[0].Quantity != 50 {
		t.Errorf("expected one line with 50 units, got %+v", view.Lines)
	}
}

func TestItemName(t *testing.T) {
	s := newTestSession()

	if got := s.ItemName("m6"); got != "Chocolate Brownie" {
		t.Errorf("ItemName(m6) = %q", got)
	}
	if got := s.ItemName("gone"); got != UnknownItemName {
		t.Errorf("ItemName(gone) = %q, want %q", got, UnknownItemName)
	}
}
