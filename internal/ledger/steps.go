package ledger

import (
	"context"
	"fmt"

	"github.com/jcmexdev/restaurant-ordering/internal/cart"
	"github.com/jcmexdev/restaurant-ordering/internal/coordinator"
	"github.com/jcmexdev/restaurant-ordering/internal/pkg/kvstore"
)

var (
	_ coordinator.Step = (*persistHistoryStep)(nil)
	_ coordinator.Step = (*clearCartStep)(nil)
)

// persistHistoryStep overwrites the history blob. Its compensation puts the
// previous blob back, or removes the key when there was none.
type persistHistoryStep struct {
	store    kvstore.Store
	key      string
	blob     string
	previous string
	existed  bool
}

func (s *persistHistoryStep) Name() string { return "persist_history" }

func (s *persistHistoryStep) Execute(ctx context.Context) error {
	if err := s.store.Set(ctx, s.key, s.blob); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (s *persistHistoryStep) Compensate(ctx context.Context) error {
	if !s.existed {
		return s.store.Delete(ctx, s.key)
	}
	return s.store.Set(ctx, s.key, s.previous)
}

// clearCartStep empties the cart once the order is durable.
type clearCartStep struct {
	cart  *cart.Engine
	lines []cart.Line
}

func (s *clearCartStep) Name() string { return "clear_cart" }

func (s *clearCartStep) Execute(context.Context) error {
	s.cart.Clear()
	return nil
}

func (s *clearCartStep) Compensate(context.Context) error {
	s.cart.Restore(s.lines)
	return nil
}
