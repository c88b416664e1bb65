// Package coordinator runs a sequence of steps as one unit: either every
// step succeeds, or the completed ones are compensated in reverse order.
package coordinator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jcmexdev/restaurant-ordering/internal/coordinator/checkoutlog"
)

// Step is a single unit of work with an action that undoes it.
type Step interface {
	Name() string
	Execute(ctx context.Context) error
	Compensate(ctx context.Context) error
}

// Orchestrator executes steps for one order placement.
type Orchestrator struct {
	orderID string
	steps   []Step
	log     checkoutlog.Repository
	payload string
}

// NewOrchestrator builds an orchestrator. repo may be nil, in which case no
// transition is recorded. payload is stored on the STARTED entry.
func NewOrchestrator(orderID string, steps []Step, repo checkoutlog.Repository, payload string) *Orchestrator {
	return &Orchestrator{
		orderID: orderID,
		steps:   steps,
		log:     repo,
		payload: payload,
	}
}

// Start runs the steps sequentially. When a step fails every previously
// successful step is compensated, last first, and the step error is returned.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.record(ctx, checkoutlog.StatusStarted, "", o.payload, nil)

	var done []Step
	for _, step := range o.steps {
		slog.DebugContext(ctx, "executing checkout step", "order_id", o.orderID, "step", step.Name())
		if err := step.Execute(ctx); err != nil {
			slog.WarnContext(ctx, "checkout step failed, rolling back",
				"order_id", o.orderID, "step", step.Name(), "error", err)
			errs := append([]string{fmt.Sprintf("step %s failed: %v", step.Name(), err)}, o.rollback(ctx, done)...)
			o.record(ctx, checkoutlog.StatusFailed, step.Name(), "", errs)
			return err
		}
		done = append(done, step)
		o.record(ctx, checkoutlog.StatusStepDone, step.Name(), "", nil)
	}

	o.record(ctx, checkoutlog.StatusCompleted, "", "", nil)
	return nil
}

// rollback compensates steps LIFO and returns the compensation failures.
func (o *Orchestrator) rollback(ctx context.Context, steps []Step) []string {
	var errs []string
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		o.record(ctx, checkoutlog.StatusCompensating, step.Name(), "", nil)
		if err := step.Compensate(ctx); err != nil {
			slog.ErrorContext(ctx, "CRITICAL: failed to compensate checkout step",
				"order_id", o.orderID, "step", step.Name(), "error", err)
			errs = append(errs, fmt.Sprintf("compensation of %s failed: %v", step.Name(), err))
		}
	}
	return errs
}

// record appends to the checkout log. Log failures never fail the placement.
func (o *Orchestrator) record(ctx context.Context, status checkoutlog.Status, step, payload string, errs []string) {
	if o.log == nil {
		return
	}
	entry := checkoutlog.NewEntry(ctx, o.orderID, status, step, payload, errs)
	if err := o.log.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "failed to write checkout log", "order_id", o.orderID, "status", status, "error", err)
	}
}
