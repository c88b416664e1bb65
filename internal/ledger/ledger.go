package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jcmexdev/restaurant-ordering/internal/cart"
	"github.com/jcmexdev/restaurant-ordering/internal/coordinator"
	"github.com/jcmexdev/restaurant-ordering/internal/coordinator/checkoutlog"
	"github.com/jcmexdev/restaurant-ordering/internal/pkg/kvstore"
	"github.com/jcmexdev/restaurant-ordering/internal/pkg/telemetry"
)

// Ledger appends placed orders to the history stored under one key.
//
// The whole history is rewritten on every placement. Two ledgers sharing a
// key overwrite each other's writes; nothing here detects that.
type Ledger struct {
	store kvstore.Store
	key   string
	log   checkoutlog.Repository
	now   func() time.Time
	newID func() string
}

// Option customizes a Ledger.
type Option func(*Ledger)

// WithHistoryKey overrides DefaultHistoryKey.
func WithHistoryKey(key string) Option {
	return func(l *Ledger) { l.key = key }
}

// WithCheckoutLog records placement transitions in repo.
func WithCheckoutLog(repo checkoutlog.Repository) Option {
	return func(l *Ledger) { l.log = repo }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDGenerator replaces the order id generator.
func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) { l.newID = newID }
}

// New returns a ledger persisting into store.
func New(store kvstore.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		key:   DefaultHistoryKey,
		now:   time.Now,
		newID: newOrderID,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// newOrderID returns a time-ordered id so ids sort by placement time.
func newOrderID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "o" + uuid.NewString()
	}
	return "o" + id.String()
}

// LoadHistory returns the stored orders, newest first. A missing key, an
// unreadable store or a corrupt blob all yield an empty history: lost history
// is tolerated, it is never an error for the caller.
func (l *Ledger) LoadHistory(ctx context.Context) []Order {
	_, _, history := l.readHistory(ctx)
	return history
}

// OrderCount is the number of orders in the history.
func (l *Ledger) OrderCount(ctx context.Context) int {
	return len(l.LoadHistory(ctx))
}

func (l *Ledger) readHistory(ctx context.Context) (raw string, found bool, history []Order) {
	raw, found, err := l.store.Get(ctx, l.key)
	if err != nil {
		slog.WarnContext(ctx, "order history unreadable, treating as empty", "key", l.key, "error", err)
		return "", false, []Order{}
	}
	if !found {
		return "", false, []Order{}
	}
	history, err = DecodeHistory(raw)
	if err != nil {
		slog.WarnContext(ctx, "order history corrupt, discarding", "key", l.key, "error", err)
		return raw, true, []Order{}
	}
	return raw, true, history
}

// PlaceOrder converts the cart into an order, prepends it to the history,
// persists the history and clears the cart.
//
// An empty cart is rejected with ErrEmptyCart and a line that no longer
// resolves in the catalog with cart.ErrUnknownItem; neither changes
// anything. When the history cannot be written the error wraps ErrPersist
// and the cart keeps its lines: an order is in the history if and only if
// the cart was cleared because of it.
func (l *Ledger) PlaceOrder(ctx context.Context, c *cart.Engine, customerName string) (Order, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "ledger.PlaceOrder")
	defer span.End()

	if c.IsEmpty() {
		span.SetStatus(codes.Error, "cart empty")
		return Order{}, ErrEmptyCart
	}

	lines := c.Lines()
	for _, line := range lines {
		if _, ok := c.Lookup().FindItem(line.ItemID); !ok {
			span.SetStatus(codes.Error, "unknown item")
			return Order{}, fmt.Errorf("%w: %q", cart.ErrUnknownItem, line.ItemID)
		}
	}

	totals := c.ComputeTotals()
	order := Order{
		ID:           l.newID(),
		CustomerName: ResolveCustomerName(customerName),
		Lines:        lines,
		Subtotal:     totals.Subtotal,
		Tax:          totals.Tax,
		GrandTotal:   totals.GrandTotal,
		Status:       StatusPlaced,
		PlacedAt:     l.now().UTC().Truncate(time.Millisecond),
	}
	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.Int("order.lines", len(order.Lines)),
		attribute.String("order.total", order.GrandTotal.String()),
	)

	previous, existed, history := l.readHistory(ctx)
	blob, err := EncodeHistory(append([]Order{order}, history...))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Order{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	payload, err := encodeOrder(order)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Order{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	steps := []coordinator.Step{
		&persistHistoryStep{store: l.store, key: l.key, blob: blob, previous: previous, existed: existed},
		&clearCartStep{cart: c, lines: lines},
	}
	if err := coordinator.NewOrchestrator(order.ID, steps, l.log, payload).Start(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "placement rolled back")
		return Order{}, err
	}

	slog.InfoContext(ctx, "order placed",
		"order_id", order.ID,
		"customer", order.CustomerName,
		"lines", len(order.Lines),
		"total", cart.FormatMoney(order.GrandTotal),
	)
	return order, nil
}
