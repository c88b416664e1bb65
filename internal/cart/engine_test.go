package cart

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/restaurant-ordering/internal/catalog"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(catalog.DefaultMenu())
}

func TestAddItemMergesQuantities(t *testing.T) {
	e := newTestEngine(t)

	for _, q := range []int{1, 3, 2} {
		if err := e.AddItem("m1", q); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
	}

	want := []Line{{ItemID: "m1", Quantity: 6}}
	if diff := cmp.Diff(want, e.Lines()); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestAddItemKeepsFirstAddOrder(t *testing.T) {
	e := newTestEngine(t)

	_ = e.AddItem("m3", 1)
	_ = e.AddItem("m1", 1)
	_ = e.AddItem("m3", 2)
	_ = e.AddItem("m2", 1)

	want := []Line{
		{ItemID: "m3", Quantity: 3},
		{ItemID: "m1", Quantity: 1},
		{ItemID: "m2", Quantity: 1},
	}
	if diff := cmp.Diff(want, e.Lines()); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestAddItemRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		itemID  string
		qty     int
		wantErr error
	}{
		{"unknown id", "zz", 1, ErrUnknownItem},
		{"zero quantity", "m1", 0, ErrInvalidQuantity},
		{"negative quantity", "m1", -4, ErrInvalidQuantity},
		{"above line ceiling", "m1", maxLineQuantity + 1, ErrInvalidQuantity},
		{"max int", "m1", math.MaxInt, ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			err := e.AddItem(tt.itemID, tt.qty)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !e.IsEmpty() {
				t.Errorf("expected cart untouched, got %v", e.Lines())
			}
		})
	}
}

func TestAddItemRejectsMergePastCeiling(t *testing.T) {
	tests := []struct {
		name  string
		first int
		then  int
	}{
		{"one over", maxLineQuantity, 1},
		{"large second add", 1, maxLineQuantity},
		{"max int second add", 2, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			if err := e.AddItem("m4", tt.first); err != nil {
				t.Fatalf("first AddItem: %v", err)
			}

			if err := e.AddItem("m4", tt.then); !errors.Is(err, ErrInvalidQuantity) {
				t.Fatalf("expected ErrInvalidQuantity, got %v", err)
			}

			want := []Line{{ItemID: "m4", Quantity: tt.first}}
			if diff := cmp.Diff(want, e.Lines()); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
			if e.ComputeTotals().Subtotal.IsNegative() {
				t.Error("expected a non-negative subtotal")
			}
		})
	}
}

func TestAddItemUpToCeiling(t *testing.T) {
	e := newTestEngine(t)
	_ = e.AddItem("m4", maxLineQuantity-1)

	if err := e.AddItem("m4", 1); err != nil {
		t.Fatalf("AddItem to the ceiling: %v", err)
	}
	if got := e.TotalQuantity(); got != maxLineQuantity {
		t.Errorf("expected %d units, got %d", maxLineQuantity, got)
	}
}

func TestRemoveItem(t *testing.T) {
	e := newTestEngine(t)
	_ = e.AddItem("m1", 1)
	_ = e.AddItem("m2", 2)

	e.RemoveItem("absent")
	if e.Len() != 2 {
		t.Fatalf("removing an absent id must be a no-op, got %d lines", e.Len())
	}

	e.RemoveItem("m1")
	want := []Line{{ItemID: "m2", Quantity: 2}}
	if diff := cmp.Diff(want, e.Lines()); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestSetQuantityClampsToOne(t *testing.T) {
	for _, q := range []int{0, -1, -100} {
		e := newTestEngine(t)
		_ = e.AddItem("m2", 5)

		e.SetQuantity("m2", q)

		want := []Line{{ItemID: "m2", Quantity: 1}}
		if diff := cmp.Diff(want, e.Lines()); diff != "" {
			t.Errorf("SetQuantity(%d) mismatch (-want +got):\n%s", q, diff)
		}
	}
}

func TestSetQuantityClampsToCeiling(t *testing.T) {
	for _, q := range []int{maxLineQuantity + 1, math.MaxInt} {
		e := newTestEngine(t)
		_ = e.AddItem("m2", 1)
		_ = e.AddItem("m3", 1)

		e.SetQuantity("m2", q)
		e.SetQuantity("m3", q)

		if got := e.TotalQuantity(); got != 2*maxLineQuantity {
			t.Errorf("SetQuantity(%d): expected %d units, got %d", q, 2*maxLineQuantity, got)
		}
	}
}

func TestSetQuantity(t *testing.T) {
	e := newTestEngine(t)
	_ = e.AddItem("m2", 1)

	e.SetQuantity("m2", 7)
	e.SetQuantity("absent", 3)

	want := []Line{{ItemID: "m2", Quantity: 7}}
	if diff := cmp.Diff(want, e.Lines()); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestClearAndTotalQuantity(t *testing.T) {
	e := newTestEngine(t)
	if got := e.TotalQuantity(); got != 0 {
		t.Errorf("expected 0 for empty cart, got %d", got)
	}

	_ = e.AddItem("m1", 2)
	_ = e.AddItem("m5", 3)
	if got := e.TotalQuantity(); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}

	e.Clear()
	if !e.IsEmpty() || e.TotalQuantity() != 0 {
		t.Errorf("expected empty cart after Clear, got %v", e.Lines())
	}
}

func TestLinesIsACopy(t *testing.T) {
	e := newTestEngine(t)
	_ = e.AddItem("m1", 1)

	lines := e.Lines()
	lines[0].Quantity = 99

	if got := e.Lines()[0].Quantity; got != 1 {
		t.Errorf("mutating Lines() result changed the cart: quantity %d", got)
	}
}

func TestRestore(t *testing.T) {
	e := newTestEngine(t)
	_ = e.AddItem("m1", 2)
	saved := e.Lines()

	e.Clear()
	e.Restore(saved)

	if diff := cmp.Diff(saved, e.Lines()); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		add      map[string]int
		subtotal string
		tax      string
		total    string
	}{
		{"empty cart", nil, "0", "0", "0"},
		{"two naan", map[string]int{"m4": 2}, "98", "4.9", "102.9"},
		{"mixed", map[string]int{"m1": 1, "m2": 3, "m6": 1}, "875", "43.75", "918.75"},
		{"odd cents", map[string]int{"m5": 1}, "49", "2.45", "51.45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			for id, q := range tt.add {
				if err := e.AddItem(id, q); err != nil {
					t.Fatalf("AddItem: %v", err)
				}
			}

			got := e.ComputeTotals()
			want := Totals{
				Subtotal:   decimal.RequireFromString(tt.subtotal),
				Tax:        decimal.RequireFromString(tt.tax),
				GrandTotal: decimal.RequireFromString(tt.total),
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("totals mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeTotalsIdentities(t *testing.T) {
	e := newTestEngine(t)
	for i, id := range []string{"m1", "m2", "m3", "m4", "m5", "m6"} {
		_ = e.AddItem(id, i+1)

		got := e.ComputeTotals()
		if !got.Tax.Equal(got.Subtotal.Mul(TaxRate())) {
			t.Errorf("tax %s != subtotal %s * rate", got.Tax, got.Subtotal)
		}
		if !got.GrandTotal.Equal(got.Subtotal.Add(got.Tax)) {
			t.Errorf("total %s != subtotal %s + tax %s", got.GrandTotal, got.Subtotal, got.Tax)
		}
	}
}

func TestComputeTotalsSkipsUnresolvableLines(t *testing.T) {
	lines := []Line{{ItemID: "m4", Quantity: 1}, {ItemID: "ghost", Quantity: 10}}

	got := ComputeTotals(catalog.DefaultMenu(), lines)

	if !got.Subtotal.Equal(decimal.NewFromInt(49)) {
		t.Errorf("expected unknown line to count as zero, subtotal %s", got.Subtotal)
	}
}

func TestRoundedAndFormatMoney(t *testing.T) {
	totals := Totals{
		Subtotal:   decimal.RequireFromString("10.005"),
		Tax:        decimal.RequireFromString("0.50025"),
		GrandTotal: decimal.RequireFromString("10.50525"),
	}

	r := totals.Rounded()
	if got := FormatMoney(r.Subtotal); got != "10.01" {
		t.Errorf("subtotal: expected 10.01, got %s", got)
	}
	if got := FormatMoney(r.Tax); got != "0.50" {
		t.Errorf("tax: expected 0.50, got %s", got)
	}
	if got := FormatMoney(decimal.NewFromInt(98)); got != "98.00" {
		t.Errorf("expected 98.00, got %s", got)
	}
}

func TestTaxRateIsFivePercent(t *testing.T) {
	if !TaxRate().Equal(decimal.RequireFromString("0.05")) {
		t.Fatalf("TaxRate() = %s, want 0.05", TaxRate())
	}
}
