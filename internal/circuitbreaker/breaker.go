// Package circuitbreaker short-circuits calls to an external provider that
// keeps failing, so one dead API does not tie up every dispatch in timeouts.
package circuitbreaker

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// State is the breaker's position in the failure cycle
type State int

const (
	// Closed passes calls through
	Closed State = iota
	// Open rejects calls until the cooldown elapses
	Open
	// HalfOpen lets a single trial call decide whether to close again
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config tunes a breaker. Zero values fall back to 5 consecutive failures
// and a 30 second cooldown.
type Config struct {
	Threshold int
	Timeout   time.Duration
}

// Breaker tracks consecutive failures for one provider
type Breaker struct {
	mu sync.Mutex

	threshold int
	cooldown  time.Duration

	state       State
	failures    int
	lastFailure time.Time
}

// New creates a closed breaker
func New(cfg Config) *Breaker {
	if cfg.Threshold <= 0 {
		cfg.Threshold = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Breaker{threshold: cfg.Threshold, cooldown: cfg.Timeout}
}

// Call runs fn unless the breaker is open. The fn error is returned
// unwrapped so callers keep their own error shaping.
func (b *Breaker) Call(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.allow(); err != nil {
		return err
	}

	err := fn()
	b.record(err)
	return err
}

// State reports the breaker's current position
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Failures reports the current consecutive-failure count
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

// Reset forces the breaker closed and clears the failure count
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = Closed
	b.failures = 0
}

func (b *Breaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == Open {
		if time.Since(b.lastFailure) < b.cooldown {
			return fmt.Errorf("circuit breaker is open")
		}
		b.state = HalfOpen
	}
	return nil
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.failures = 0
		b.state = Closed
		return
	}

	b.failures++
	b.lastFailure = time.Now()
	if b.state == HalfOpen || b.failures >= b.threshold {
		b.state = Open
	}
}
