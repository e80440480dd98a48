package store

import (
	"sync"
)

// DedupLedger remembers recently handled message identifiers so a
// redelivered event is not processed twice. Bounded: once the ledger grows
// past its high-water mark it is compacted down to the most recently
// recorded identifiers. An identifier evicted by compaction may be
// reprocessed; that is the accepted bounded-memory trade-off.
type DedupLedger interface {
	Seen(id string) bool
	Record(id string)
	Len() int
}

// MemoryDedupLedger is the in-process DedupLedger
type MemoryDedupLedger struct {
	mu        sync.Mutex
	ids       map[string]struct{}
	order     []string
	highWater int
	lowWater  int
}

// NewDedupLedger creates a ledger that compacts to lowWater entries when
// it grows past highWater entries
func NewDedupLedger(highWater, lowWater int) *MemoryDedupLedger {
	return &MemoryDedupLedger{
		ids:       make(map[string]struct{}),
		highWater: highWater,
		lowWater:  lowWater,
	}
}

// Seen reports whether the identifier is in the retention window
func (l *MemoryDedupLedger) Seen(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.ids[id]
	return ok
}

// Record adds the identifier. Recording an identifier that is already
// present is a no-op, keeping its original recency position.
func (l *MemoryDedupLedger) Record(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.ids[id]; ok {
		return
	}

	l.ids[id] = struct{}{}
	l.order = append(l.order, id)

	if len(l.order) > l.highWater {
		l.compact()
	}
}

// compact retains only the lowWater most recently recorded identifiers.
// Caller holds the mutex.
func (l *MemoryDedupLedger) compact() {
	keep := l.order[len(l.order)-l.lowWater:]

	l.ids = make(map[string]struct{}, len(keep))
	for _, id := range keep {
		l.ids[id] = struct{}{}
	}

	// Copy so the discarded prefix can be collected
	l.order = append(make([]string, 0, l.lowWater), keep...)
}

// Len returns the number of retained identifiers
func (l *MemoryDedupLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}
