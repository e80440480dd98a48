package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read error log: %v", err)
	}
	return string(data)
}

func TestLogErrorWithDispatchID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")
	logger := NewErrorLogger(path)

	err := logger.LogErrorWithDispatchID("API", "provider call failed", fmt.Errorf("timeout"), "d-123")
	if err != nil {
		t.Fatalf("LogErrorWithDispatchID() error = %v", err)
	}

	entry := readLog(t, path)
	for _, want := range []string{"ERROR: provider call failed", "Type: API", "Dispatch ID: d-123", "Details: timeout", "Stack Trace:"} {
		if !strings.Contains(entry, want) {
			t.Errorf("log entry missing %q:\n%s", want, entry)
		}
	}
}

func TestLogErrorOmitsEmptyDispatchID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")
	logger := NewErrorLogger(path)

	if err := logger.LogError("Database", "vacuum failed", nil); err != nil {
		t.Fatalf("LogError() error = %v", err)
	}

	entry := readLog(t, path)
	if strings.Contains(entry, "Dispatch ID:") {
		t.Errorf("entry carries a dispatch ID line without an ID:\n%s", entry)
	}
	if strings.Contains(entry, "Details:") {
		t.Errorf("entry carries a details line without an underlying error:\n%s", entry)
	}
}
