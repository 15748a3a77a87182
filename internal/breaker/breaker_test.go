// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/moodreel/internal/metrics"
)

var errBoom = errors.New("boom")

func fail() (interface{}, error) { return nil, errBoom }

func TestBreakerOpensAfterFailures(t *testing.T) {
	t.Parallel()

	b := New(DefaultConfig("test-opens"))
	if b.State() != gobreaker.StateClosed {
		t.Fatalf("initial state = %v, want closed", b.State())
	}

	for i := 0; i < 10; i++ {
		if _, err := b.Execute(fail); !errors.Is(err, errBoom) {
			t.Fatalf("call %d: err = %v, want errBoom", i, err)
		}
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("state = %v, want open after 100%% failures", b.State())
	}

	_, err := b.Execute(func() (interface{}, error) { return "unreachable", nil })
	if !IsRejected(err) {
		t.Errorf("err = %v, want rejection while open", err)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-opens")); got != 2 {
		t.Errorf("state gauge = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues("test-opens", "rejected")); got != 1 {
		t.Errorf("rejected counter = %v, want 1", got)
	}
}

func TestBreakerStaysClosedBelowThreshold(t *testing.T) {
	t.Parallel()

	b := New(DefaultConfig("test-below"))
	for i := 0; i < 20; i++ {
		fn := fail
		if i%2 == 0 {
			fn = func() (interface{}, error) { return i, nil }
		}
		_, _ = b.Execute(fn)
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want closed at 50%% failures", b.State())
	}
}

func TestBreakerIsSuccessful(t *testing.T) {
	t.Parallel()

	errMiss := errors.New("not found")
	cfg := DefaultConfig("test-successful")
	cfg.MinRequests = 2
	cfg.IsSuccessful = func(err error) bool { return err == nil || errors.Is(err, errMiss) }
	b := New(cfg)

	for i := 0; i < 5; i++ {
		if _, err := b.Execute(func() (interface{}, error) { return nil, errMiss }); !errors.Is(err, errMiss) {
			t.Fatalf("err = %v, want errMiss passed through", err)
		}
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want closed when errors count as successes", b.State())
	}
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig("test-recovery")
	cfg.MinRequests = 1
	cfg.MaxRequests = 1
	cfg.Timeout = 50 * time.Millisecond
	b := New(cfg)

	_, _ = b.Execute(fail)
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("state = %v, want open", b.State())
	}

	time.Sleep(80 * time.Millisecond)
	if b.State() != gobreaker.StateHalfOpen {
		t.Fatalf("state = %v, want half-open after timeout", b.State())
	}

	got, err := b.Execute(func() (interface{}, error) { return "ok", nil })
	if err != nil || got != "ok" {
		t.Fatalf("Execute() = %v, %v", got, err)
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want closed after successful probe", b.State())
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state gobreaker.State
		want  string
	}{
		{gobreaker.StateClosed, "closed"},
		{gobreaker.StateHalfOpen, "half-open"},
		{gobreaker.StateOpen, "open"},
		{gobreaker.State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := StateString(tt.state); got != tt.want {
			t.Errorf("StateString(%d) = %q, want %q", tt.state, got, tt.want)
		}
	}
}
