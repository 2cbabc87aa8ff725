package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(now *time.Time) *CircuitBreaker {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   1,
	})
	b.now = func() time.Time { return *now }
	return b
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe to be rejected, got %v", err)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestCircuitBreaker_ExecuteIgnoresNonFailures(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)
	errBadRequest := errors.New("bad request")

	for i := 0; i < 3; i++ {
		err := b.Execute(func() error { return errBadRequest }, func(err error) bool {
			return !errors.Is(err, errBadRequest)
		})
		if !errors.Is(err, errBadRequest) {
			t.Fatalf("expected passthrough error, got %v", err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed breaker, got %s", state)
	}

	errTimeout := errors.New("timeout")
	_ = b.Execute(func() error { return errTimeout }, nil)
	_ = b.Execute(func() error { return errTimeout }, nil)
	if err := b.Execute(func() error { return nil }, nil); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open breaker to reject, got %v", err)
	}
}

func TestCircuitBreaker_ReportsTransitions(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var seen []string
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Second,
		HalfOpenMaxReq:   1,
		OnStateChange: func(from, to CircuitState) {
			seen = append(seen, string(from)+"->"+string(to))
		},
	})
	b.now = func() time.Time { return now }

	b.RecordFailure()
	now = now.Add(2 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe to pass: %v", err)
	}
	b.RecordFailure()

	want := []string{"closed->open", "open->half_open", "half_open->open"}
	if len(seen) != len(want) {
		t.Fatalf("unexpected transitions: %v", seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("transition %d: got %s want %s", i, seen[i], want[i])
		}
	}
}

func TestCircuitBreakerConfig_Defaults(t *testing.T) {
	cfg := CircuitBreakerConfig{FailureThreshold: -1}.withDefaults()
	if cfg.FailureThreshold != defaultFailureThreshold || cfg.OpenTimeout != defaultOpenTimeout || cfg.HalfOpenMaxReq != defaultHalfOpenProbes {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
