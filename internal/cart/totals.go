package cart

import "github.com/shopspring/decimal"

var taxRate = decimal.RequireFromString("0.05")

// TaxRate returns the flat GST applied to every subtotal.
func TaxRate() decimal.Decimal { return taxRate }

// Totals is derived from the cart on demand and never stored on its own.
// Values keep full precision; round with Rounded or FormatMoney for display.
type Totals struct {
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
}

// ComputeTotals prices every line against the catalog. Lines whose item
// cannot be resolved contribute zero.
func (e *Engine) ComputeTotals() Totals {
	return ComputeTotals(e.lookup, e.lines)
}

// ComputeTotals prices lines against lookup.
func ComputeTotals(lookup Lookup, lines []Line) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		item, ok := lookup.FindItem(l.ItemID)
		if !ok {
			continue
		}
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	tax := subtotal.Mul(taxRate)
	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: subtotal.Add(tax),
	}
}

// Rounded returns the totals rounded to two decimal places.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:   t.Subtotal.Round(2),
		Tax:        t.Tax.Round(2),
		GrandTotal: t.GrandTotal.Round(2),
	}
}

// FormatMoney renders d with exactly two decimal places.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
