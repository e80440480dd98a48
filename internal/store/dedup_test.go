package store

import (
	"fmt"
	"testing"
)

func TestDedupLedger_SeenAfterRecord(t *testing.T) {
	l := NewDedupLedger(1000, 500)

	if l.Seen("MSG1") {
		t.Error("Seen() before Record should be false")
	}

	l.Record("MSG1")

	if !l.Seen("MSG1") {
		t.Error("Seen() after Record should be true")
	}
}

func TestDedupLedger_RecordIdempotent(t *testing.T) {
	l := NewDedupLedger(1000, 500)

	l.Record("MSG1")
	l.Record("MSG1")
	l.Record("MSG1")

	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after duplicate records", l.Len())
	}
}

func TestDedupLedger_CompactionKeepsMostRecent(t *testing.T) {
	l := NewDedupLedger(1000, 500)

	for i := 0; i <= 1000; i++ {
		l.Record(fmt.Sprintf("MSG%d", i))
	}

	// Recording the 1001st identifier pushes the ledger past the high-water
	// mark and compacts it down to the 500 most recent
	if l.Len() != 500 {
		t.Fatalf("Len() after compaction = %d, want 500", l.Len())
	}

	if l.Seen("MSG0") {
		t.Error("Seen() for oldest identifier should be false after compaction")
	}
	if !l.Seen("MSG1000") {
		t.Error("Seen() for newest identifier should be true after compaction")
	}
	if !l.Seen("MSG501") {
		t.Error("Seen() for the oldest retained identifier should be true")
	}
	if l.Seen("MSG500") {
		t.Error("Seen() for the newest evicted identifier should be false")
	}
}

func TestDedupLedger_EvictedIDMayBeReprocessed(t *testing.T) {
	l := NewDedupLedger(10, 5)

	l.Record("MSG0")
	for i := 1; i <= 10; i++ {
		l.Record(fmt.Sprintf("MSG%d", i))
	}

	// MSG0 was evicted by compaction, so re-recording it works again
	if l.Seen("MSG0") {
		t.Fatal("MSG0 should have been evicted")
	}
	l.Record("MSG0")
	if !l.Seen("MSG0") {
		t.Error("Seen() should be true after re-recording an evicted identifier")
	}
}
