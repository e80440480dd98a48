package store

import (
	"testing"
	"time"
)

func TestSessionStore_SetGet(t *testing.T) {
	s := NewSessionStore(5 * time.Minute)

	s.Set("u1", "c1", StateCategory)

	state, ok := s.Get("u1", "c1")
	if !ok || state != StateCategory {
		t.Errorf("Get() = (%q, %v), want (%q, true)", state, ok, StateCategory)
	}

	// Different chat for the same sender is a different key
	if _, ok := s.Get("u1", "c2"); ok {
		t.Error("Get() for unrelated chat should return no state")
	}
}

func TestSessionStore_OverwriteReplacesState(t *testing.T) {
	s := NewSessionStore(5 * time.Minute)

	s.Set("u1", "c1", StateCategory)
	s.Set("u1", "c1", StatePrayer)

	state, ok := s.Get("u1", "c1")
	if !ok || state != StatePrayer {
		t.Errorf("Get() after overwrite = (%q, %v), want (%q, true)", state, ok, StatePrayer)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (overwrite must not add an entry)", s.Len())
	}
}

func TestSessionStore_ExpiryIsAuthoritative(t *testing.T) {
	s := NewSessionStore(5 * time.Minute)

	now := time.Now()
	s.SetClock(func() time.Time { return now })
	s.Set("u1", "c1", StateCulture)

	// Just before expiry the state is visible
	now = now.Add(5*time.Minute - time.Second)
	if state, ok := s.Get("u1", "c1"); !ok || state != StateCulture {
		t.Errorf("Get() before expiry = (%q, %v), want (%q, true)", state, ok, StateCulture)
	}

	// At and after expiry the state reads as absent even though no sweep ran
	now = now.Add(2 * time.Second)
	if _, ok := s.Get("u1", "c1"); ok {
		t.Error("Get() after expiry should return no state")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 (expired entry removed on Get)", s.Len())
	}
}

func TestSessionStore_SetRearmsExpiry(t *testing.T) {
	s := NewSessionStore(5 * time.Minute)

	now := time.Now()
	s.SetClock(func() time.Time { return now })

	s.Set("u1", "c1", StateCategory)
	now = now.Add(4 * time.Minute)
	s.Set("u1", "c1", StateCategory)

	// 4 minutes after the re-set the first expiry has long passed,
	// but the state must still be visible
	now = now.Add(4 * time.Minute)
	if _, ok := s.Get("u1", "c1"); !ok {
		t.Error("Get() should see the state, Set must re-arm expiry")
	}
}

func TestSessionStore_Sweep(t *testing.T) {
	s := NewSessionStore(5 * time.Minute)

	now := time.Now()
	s.SetClock(func() time.Time { return now })

	s.Set("u1", "c1", StateCategory)
	s.Set("u2", "c1", StatePrayer)

	now = now.Add(3 * time.Minute)
	s.Set("u3", "c1", StateCulture)

	now = now.Add(3 * time.Minute)
	removed := s.Sweep()
	if removed != 2 {
		t.Errorf("Sweep() removed %d entries, want 2", removed)
	}

	// The younger entry survives the sweep
	if state, ok := s.Get("u3", "c1"); !ok || state != StateCulture {
		t.Errorf("Get() after sweep = (%q, %v), want (%q, true)", state, ok, StateCulture)
	}
}

func TestSessionStore_Clear(t *testing.T) {
	s := NewSessionStore(5 * time.Minute)

	s.Set("u1", "c1", StatePrayer)
	s.Clear("u1", "c1")

	if _, ok := s.Get("u1", "c1"); ok {
		t.Error("Get() after Clear should return no state")
	}
}
