package store

import (
	"sync"
	"time"
)

// Named session states. A session tags the next bare-number reply from the
// same (sender, chat) pair as a menu selection.
const (
	StateCategory = "category"
	StateCulture  = "culture"
	StatePrayer   = "prayer"
)

// SessionStore tracks per-(sender, chat) conversation state with absolute
// expiry. Implementations must be safe for concurrent use.
type SessionStore interface {
	Set(sender, chat, state string)
	Get(sender, chat string) (string, bool)
	Clear(sender, chat string)
	Sweep() int
	Len() int
}

type sessionKey struct {
	Sender string
	Chat   string
}

type sessionEntry struct {
	State  string
	Expiry time.Time
}

// MemorySessionStore is the in-process SessionStore. Expiry is checked on
// every Get, so a stale entry can never be observed even before the periodic
// sweep removes it.
type MemorySessionStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[sessionKey]sessionEntry
}

// NewSessionStore creates a session store with the given TTL
func NewSessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[sessionKey]sessionEntry),
	}
}

// SetClock replaces the time source, for tests
func (s *MemorySessionStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Set stores a state for the pair, replacing any prior state and its expiry
func (s *MemorySessionStore) Set(sender, chat, state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionKey{Sender: sender, Chat: chat}] = sessionEntry{
		State:  state,
		Expiry: s.now().Add(s.ttl),
	}
}

// Get returns the active state for the pair. An expired entry reads as
// absent and is removed on the spot.
func (s *MemorySessionStore) Get(sender, chat string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey{Sender: sender, Chat: chat}
	entry, ok := s.entries[key]
	if !ok {
		return "", false
	}
	if !s.now().Before(entry.Expiry) {
		delete(s.entries, key)
		return "", false
	}
	return entry.State, true
}

// Clear removes any state for the pair
func (s *MemorySessionStore) Clear(sender, chat string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionKey{Sender: sender, Chat: chat})
}

// Sweep removes all expired entries and returns how many were removed.
// The maintenance scheduler calls this periodically; a sweep only ever
// deletes entries whose stored expiry has actually passed, so it can never
// race away a state that was re-set after the sweep was scheduled.
func (s *MemorySessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, entry := range s.entries {
		if !now.Before(entry.Expiry) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired or not
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
