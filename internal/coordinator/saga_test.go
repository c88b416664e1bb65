package coordinator

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jcmexdev/restaurant-ordering/internal/coordinator/checkoutlog"
)

type memoryLog struct {
	entries []*checkoutlog.Entry
	err     error
}

func (m *memoryLog) Save(_ context.Context, e *checkoutlog.Entry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *memoryLog) statuses() []string {
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = string(e.Status) + ":" + e.CurrentStep
	}
	return out
}

// recordingStep appends its calls to a shared journal.
func recordingStep(name string, journal *[]string, fail bool) Step {
	return funcStep{
		StepName: name,
		ExecuteFn: func(context.Context) error {
			*journal = append(*journal, "exec "+name)
			if fail {
				return errors.New(name + " exploded")
			}
			return nil
		},
		CompensateFn: func(context.Context) error {
			*journal = append(*journal, "undo "+name)
			return nil
		},
	}
}

func TestStartRunsAllSteps(t *testing.T) {
	var journal []string
	log := &memoryLog{}
	o := NewOrchestrator("o1", []Step{
		recordingStep("a", &journal, false),
		recordingStep("b", &journal, false),
	}, log, `{"id":"o1"}`)

	if err := o.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if diff := cmp.Diff([]string{"exec a", "exec b"}, journal); diff != "" {
		t.Errorf("journal mismatch (-want +got):\n%s", diff)
	}
	wantLog := []string{"STARTED:", "STEP_DONE:a", "STEP_DONE:b", "COMPLETED:"}
	if diff := cmp.Diff(wantLog, log.statuses()); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
	if log.entries[0].Payload != `{"id":"o1"}` {
		t.Errorf("expected payload on STARTED entry, got %q", log.entries[0].Payload)
	}
}

func TestStartCompensatesInReverse(t *testing.T) {
	var journal []string
	log := &memoryLog{}
	o := NewOrchestrator("o1", []Step{
		recordingStep("a", &journal, false),
		recordingStep("b", &journal, false),
		recordingStep("c", &journal, true),
		recordingStep("d", &journal, false),
	}, log, "")

	err := o.Start(context.Background())
	if err == nil || err.Error() != "c exploded" {
		t.Fatalf("expected step error, got %v", err)
	}

	want := []string{"exec a", "exec b", "exec c", "undo b", "undo a"}
	if diff := cmp.Diff(want, journal); diff != "" {
		t.Errorf("journal mismatch (-want +got):\n%s", diff)
	}

	last := log.entries[len(log.entries)-1]
	if last.Status != checkoutlog.StatusFailed || last.CurrentStep != "c" {
		t.Errorf("unexpected final entry %+v", last)
	}
	if last.ErrorMessages != `["step c failed: c exploded"]` {
		t.Errorf("ErrorMessages = %s", last.ErrorMessages)
	}
}

func TestStartSurvivesLogFailuresAndNilLog(t *testing.T) {
	var journal []string
	steps := []Step{recordingStep("a", &journal, false)}

	if err := NewOrchestrator("o1", steps, &memoryLog{err: errors.New("disk full")}, "").Start(context.Background()); err != nil {
		t.Fatalf("log failure must not fail the run: %v", err)
	}
	if err := NewOrchestrator("o2", steps, nil, "").Start(context.Background()); err != nil {
		t.Fatalf("nil log must be allowed: %v", err)
	}
}

func TestCompensationFailureIsRecorded(t *testing.T) {
	log := &memoryLog{}
	steps := []Step{
		funcStep{
			StepName:     "a",
			CompensateFn: func(context.Context) error { return errors.New("stuck") },
		},
		funcStep{
			StepName:  "b",
			ExecuteFn: func(context.Context) error { return errors.New("nope") },
		},
	}

	if err := NewOrchestrator("o1", steps, log, "").Start(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	last := log.entries[len(log.entries)-1]
	want := `["step b failed: nope","compensation of a failed: stuck"]`
	if last.ErrorMessages != want {
		t.Errorf("ErrorMessages = %s, want %s", last.ErrorMessages, want)
	}
}

// funcStep adapts plain functions to Step.
type funcStep struct {
	StepName     string
	ExecuteFn    func(ctx context.Context) error
	CompensateFn func(ctx context.Context) error
}

func (s funcStep) Name() string { return s.StepName }

func (s funcStep) Execute(ctx context.Context) error {
	if s.ExecuteFn == nil {
		return nil
	}
	return s.ExecuteFn(ctx)
}

func (s funcStep) Compensate(ctx context.Context) error {
	if s.CompensateFn == nil {
		return nil
	}
	return s.CompensateFn(ctx)
}
