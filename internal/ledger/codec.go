package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/restaurant-ordering/internal/cart"
)

// placedAtLayout is ISO-8601 with millisecond precision, the same shape the
// browser widget writes.
const placedAtLayout = "2006-01-02T15:04:05.000Z"

// orderRecord is the persisted shape of an Order. Money is written as JSON
// numbers so blobs stay readable by the browser widget.
type orderRecord struct {
	ID       string       `json:"id"`
	Customer string       `json:"customer"`
	Items    []lineRecord `json:"items"`
	Subtotal json.Number  `json:"subtotal"`
	GST      json.Number  `json:"gst"`
	Total    json.Number  `json:"total"`
	Status   string       `json:"status"`
	PlacedAt string       `json:"placedAt"`
}

type lineRecord struct {
	ItemID string `json:"itemId"`
	Qty    int    `json:"qty"`
}

func toRecord(o Order) orderRecord {
	items := make([]lineRecord, len(o.Lines))
	for i, l := range o.Lines {
		items[i] = lineRecord{ItemID: l.ItemID, Qty: l.Quantity}
	}
	return orderRecord{
		ID:       o.ID,
		Customer: o.CustomerName,
		Items:    items,
		Subtotal: json.Number(o.Subtotal.String()),
		GST:      json.Number(o.Tax.String()),
		Total:    json.Number(o.GrandTotal.String()),
		Status:   string(o.Status),
		PlacedAt: o.PlacedAt.UTC().Format(placedAtLayout),
	}
}

func fromRecord(r orderRecord) (Order, error) {
	subtotal, err := decimal.NewFromString(r.Subtotal.String())
	if err != nil {
		return Order{}, fmt.Errorf("order %q subtotal: %w", r.ID, err)
	}
	tax, err := decimal.NewFromString(r.GST.String())
	if err != nil {
		return Order{}, fmt.Errorf("order %q gst: %w", r.ID, err)
	}
	total, err := decimal.NewFromString(r.Total.String())
	if err != nil {
		return Order{}, fmt.Errorf("order %q total: %w", r.ID, err)
	}
	placedAt, err := time.Parse(time.RFC3339Nano, r.PlacedAt)
	if err != nil {
		return Order{}, fmt.Errorf("order %q placedAt: %w", r.ID, err)
	}

	lines := make([]cart.Line, len(r.Items))
	for i, it := range r.Items {
		lines[i] = cart.Line{ItemID: it.ItemID, Quantity: it.Qty}
	}
	return Order{
		ID:           r.ID,
		CustomerName: r.Customer,
		Lines:        lines,
		Subtotal:     subtotal,
		Tax:          tax,
		GrandTotal:   total,
		Status:       Status(r.Status),
		PlacedAt:     placedAt.UTC(),
	}, nil
}

// encodeOrder serializes a single order; used as the checkout log payload.
func encodeOrder(o Order) (string, error) {
	b, err := json.Marshal(toRecord(o))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// EncodeHistory serializes orders as one JSON array, order preserved.
func EncodeHistory(orders []Order) (string, error) {
	records := make([]orderRecord, len(orders))
	for i, o := range orders {
		records[i] = toRecord(o)
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("ledger: encode history: %w", err)
	}
	return string(b), nil
}

// DecodeHistory parses a stored blob. A JSON null decodes to an empty
// history; anything unparsable is an error the caller may choose to absorb.
func DecodeHistory(blob string) ([]Order, error) {
	var records []orderRecord
	if err := json.Unmarshal([]byte(blob), &records); err != nil {
		return nil, fmt.Errorf("ledger: decode history: %w", err)
	}
	orders := make([]Order, 0, len(records))
	for _, r := range records {
		o, err := fromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("ledger: decode history: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}
