package runner

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/runstack/runstack/pkg/depgraph"
)

// recordingExecutor records invocation order and fails the configured units.
type recordingExecutor struct {
	ran  []string
	fail map[string]error
}

func (e *recordingExecutor) Execute(ctx context.Context, unit string) error {
	e.ran = append(e.ran, unit)
	return e.fail[unit]
}

func TestRun_AllSucceed(t *testing.T) {
	exec := &recordingExecutor{}

	res, err := Run(context.Background(), []string{"a.txt", "b.txt"}, exec, Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !slices.Equal(exec.ran, []string{"a.txt", "b.txt"}) {
		t.Errorf("ran = %v, want [a.txt b.txt]", exec.ran)
	}
	if !slices.Equal(res.Completed, []string{"a.txt", "b.txt"}) {
		t.Errorf("Completed = %v, want [a.txt b.txt]", res.Completed)
	}
	if res.RunID == "" {
		t.Error("RunID is empty")
	}
}

func TestRun_AbortsOnFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	exec := &recordingExecutor{fail: map[string]error{"a.txt": boom}}

	res, err := Run(context.Background(), []string{"a.txt", "b.txt"}, exec, Options{})

	if !slices.Equal(exec.ran, []string{"a.txt"}) {
		t.Errorf("ran = %v, want [a.txt] only", exec.ran)
	}
	if !errors.Is(err, ErrExecution) {
		t.Fatalf("Run() error = %v, want ErrExecution", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want wrapped cause", err)
	}

	var uerr *UnitError
	if !errors.As(err, &uerr) {
		t.Fatalf("Run() error = %T, want *UnitError", err)
	}
	if uerr.Unit != "a.txt" {
		t.Errorf("UnitError.Unit = %q, want %q", uerr.Unit, "a.txt")
	}
	if !slices.Equal(res.Failed, []string{"a.txt"}) {
		t.Errorf("Failed = %v, want [a.txt]", res.Failed)
	}
}

func TestRun_ContinueSkipsDependentsOfFailure(t *testing.T) {
	// b depends on a (fails), c is independent, d depends on b (skipped).
	deps := depgraph.Map{
		"b.txt": {"a.txt"},
		"d.txt": {"b.txt"},
		"c.txt": {},
	}
	boom := errors.New("boom")
	exec := &recordingExecutor{fail: map[string]error{"a.txt": boom}}

	res, err := Run(context.Background(), []string{"a.txt", "b.txt", "c.txt", "d.txt"}, exec, Options{
		ContinueOnFailure: true,
		Deps:              deps,
	})

	if !slices.Equal(exec.ran, []string{"a.txt", "c.txt"}) {
		t.Errorf("ran = %v, want [a.txt c.txt]", exec.ran)
	}
	if !slices.Equal(res.Skipped, []string{"b.txt", "d.txt"}) {
		t.Errorf("Skipped = %v, want [b.txt d.txt]", res.Skipped)
	}
	if !slices.Equal(res.Completed, []string{"c.txt"}) {
		t.Errorf("Completed = %v, want [c.txt]", res.Completed)
	}
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want wrapped first failure", err)
	}
}

func TestRun_ContinueReportsAllFailures(t *testing.T) {
	exec := &recordingExecutor{fail: map[string]error{
		"a.txt": errors.New("first"),
		"c.txt": errors.New("second"),
	}}

	res, err := Run(context.Background(), []string{"a.txt", "b.txt", "c.txt"}, exec, Options{
		ContinueOnFailure: true,
	})

	if !slices.Equal(res.Failed, []string{"a.txt", "c.txt"}) {
		t.Errorf("Failed = %v, want [a.txt c.txt]", res.Failed)
	}
	if err == nil || !errors.Is(err, ErrExecution) {
		t.Fatalf("Run() error = %v, want ErrExecution", err)
	}
}

func TestRun_EventsInOrder(t *testing.T) {
	var events []Event
	exec := &recordingExecutor{fail: map[string]error{"b.txt": errors.New("boom")}}

	_, _ = Run(context.Background(), []string{"a.txt", "b.txt"}, exec, Options{
		ContinueOnFailure: true,
		OnEvent:           func(ev Event) { events = append(events, ev) },
	})

	want := []struct {
		unit   string
		status Status
	}{
		{"a.txt", StatusRunning},
		{"a.txt", StatusOK},
		{"b.txt", StatusRunning},
		{"b.txt", StatusFailed},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, w := range want {
		if events[i].Unit != w.unit || events[i].Status != w.status {
			t.Errorf("event %d = %s/%s, want %s/%s", i, events[i].Unit, events[i].Status, w.unit, w.status)
		}
		if events[i].RunID == "" || events[i].Total != 2 {
			t.Errorf("event %d missing run metadata: %+v", i, events[i])
		}
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &recordingExecutor{}
	_, err := Run(ctx, []string{"a.txt"}, exec, Options{})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if len(exec.ran) != 0 {
		t.Errorf("ran = %v, want none after cancellation", exec.ran)
	}
}

func TestRun_EmptyOrder(t *testing.T) {
	res, err := Run(context.Background(), nil, &recordingExecutor{}, Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(res.Completed) != 0 {
		t.Errorf("Completed = %v, want empty", res.Completed)
	}
}
