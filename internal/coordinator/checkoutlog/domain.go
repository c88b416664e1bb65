// Package checkoutlog records every transition an order placement goes
// through.
//
// The log is append-only. It lets an operator see where a placement stopped
// (for example a history write that failed and was rolled back) and jump
// from a row to the matching trace through trace_id.
package checkoutlog

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by readers when an order has no entries.
var ErrNotFound = errors.New("checkoutlog: order not found")

// Status is the lifecycle state of a placement at the time of an entry.
type Status string

const (
	StatusStarted      Status = "STARTED"
	StatusStepDone     Status = "STEP_DONE"
	StatusCompleted    Status = "COMPLETED"
	StatusCompensating Status = "COMPENSATING"
	StatusFailed       Status = "FAILED"
)

// Entry is one row of the checkout log.
type Entry struct {
	// OrderID identifies the placement; one order has several entries.
	OrderID string

	Status Status

	// CurrentStep is the step that just ran, failed or was compensated.
	CurrentStep string

	// Payload is the JSON order record, written on STARTED only.
	Payload string

	// ErrorMessages is a JSON array of failure details.
	ErrorMessages string

	TraceID string
	SpanID  string

	UpdatedAt time.Time
}

// Repository persists entries. Save appends; it never updates.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
}

// Reader reads the log back for one order.
type Reader interface {
	// GetLatest returns the newest entry, or an error wrapping ErrNotFound.
	GetLatest(ctx context.Context, orderID string) (*Entry, error)
	// List returns every entry, oldest first.
	List(ctx context.Context, orderID string) ([]*Entry, error)
}
