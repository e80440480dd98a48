package circuitbreaker

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

var errProvider = fmt.Errorf("provider down")

func failingCall() error    { return errProvider }
func succeedingCall() error { return nil }

func TestBreakerOpensAtThreshold(t *testing.T) {
	b := New(Config{Threshold: 3, Timeout: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := b.Call(ctx, failingCall); err != errProvider {
			t.Fatalf("Call() error = %v, want provider error", err)
		}
	}
	if b.State() != Open {
		t.Errorf("State() = %v after threshold failures, want open", b.State())
	}

	err := b.Call(ctx, succeedingCall)
	if err == nil || !strings.Contains(err.Error(), "circuit breaker is open") {
		t.Errorf("Call() error = %v, want open-circuit rejection", err)
	}
}

func TestBreakerSuccessResetsFailures(t *testing.T) {
	b := New(Config{Threshold: 3, Timeout: time.Minute})
	ctx := context.Background()

	_ = b.Call(ctx, failingCall)
	_ = b.Call(ctx, failingCall)
	_ = b.Call(ctx, succeedingCall)

	if b.Failures() != 0 {
		t.Errorf("Failures() = %d after success, want 0", b.Failures())
	}
	if b.State() != Closed {
		t.Errorf("State() = %v, want closed", b.State())
	}
}

func TestBreakerClosesAfterCooldownSuccess(t *testing.T) {
	b := New(Config{Threshold: 1, Timeout: 10 * time.Millisecond})
	ctx := context.Background()

	_ = b.Call(ctx, failingCall)
	if b.State() != Open {
		t.Fatalf("State() = %v, want open", b.State())
	}

	time.Sleep(20 * time.Millisecond)

	if err := b.Call(ctx, succeedingCall); err != nil {
		t.Fatalf("Call() error = %v after cooldown, want nil", err)
	}
	if b.State() != Closed {
		t.Errorf("State() = %v after trial success, want closed", b.State())
	}
}

func TestBreakerReopensOnTrialFailure(t *testing.T) {
	b := New(Config{Threshold: 2, Timeout: 10 * time.Millisecond})
	ctx := context.Background()

	_ = b.Call(ctx, failingCall)
	_ = b.Call(ctx, failingCall)

	time.Sleep(20 * time.Millisecond)

	// A single failure reopens the circuit while half-open, even though
	// the threshold is higher
	if err := b.Call(ctx, failingCall); err != errProvider {
		t.Fatalf("Call() error = %v, want provider error", err)
	}
	if b.State() != Open {
		t.Errorf("State() = %v after trial failure, want open", b.State())
	}
}

func TestBreakerReset(t *testing.T) {
	b := New(Config{Threshold: 1, Timeout: time.Minute})
	ctx := context.Background()

	_ = b.Call(ctx, failingCall)
	b.Reset()

	if b.State() != Closed || b.Failures() != 0 {
		t.Errorf("State() = %v, Failures() = %d after Reset, want closed and 0", b.State(), b.Failures())
	}
	if err := b.Call(ctx, succeedingCall); err != nil {
		t.Errorf("Call() error = %v after Reset, want nil", err)
	}
}

func TestBreakerHonorsCancelledContext(t *testing.T) {
	b := New(Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := b.Call(ctx, func() error { ran = true; return nil })
	if err != context.Canceled {
		t.Errorf("Call() error = %v, want context.Canceled", err)
	}
	if ran {
		t.Error("fn ran despite cancelled context")
	}
	if b.Failures() != 0 {
		t.Errorf("Failures() = %d, cancellation must not count as a provider failure", b.Failures())
	}
}
