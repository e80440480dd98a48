// Package ratelimit paces outbound sends so the account stays under
// WhatsApp's informal flood thresholds.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenBucket implements a token bucket rate limiter for outbound sends
type TokenBucket struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// NewTokenBucket creates a bucket allowing sendsPerWindow sends every
// windowSeconds, with bursts up to the full window allowance
func NewTokenBucket(sendsPerWindow, windowSeconds int) *TokenBucket {
	maxTokens := float64(sendsPerWindow)
	return &TokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: maxTokens / float64(windowSeconds),
		lastRefill: time.Now(),
	}
}

// Allow takes a token if one is available
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}
	return false
}

// Wait returns how long until the next token is available
func (tb *TokenBucket) Wait() time.Duration {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	if tb.tokens >= 1.0 {
		return 0
	}
	needed := 1.0 - tb.tokens
	return time.Duration(needed / tb.refillRate * float64(time.Second))
}

// Take blocks until a token is available or the context is done
func (tb *TokenBucket) Take(ctx context.Context) error {
	for {
		if tb.Allow() {
			return nil
		}
		wait := tb.Wait()
		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// refill adds tokens based on elapsed time. Caller holds the mutex.
func (tb *TokenBucket) refill() {
	now := time.Now()
	tb.tokens += now.Sub(tb.lastRefill).Seconds() * tb.refillRate
	if tb.tokens > tb.maxTokens {
		tb.tokens = tb.maxTokens
	}
	tb.lastRefill = now
}

// Reset refills the bucket to capacity
func (tb *TokenBucket) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.tokens = tb.maxTokens
	tb.lastRefill = time.Now()
}
