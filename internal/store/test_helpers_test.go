package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/sortscope/internal/trace"
)

// createTestStore creates a new temporary store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecording records a small trace that exercises swaps,
// replacements and quiet steps.
func createTestRecording(t *testing.T, algorithm string) *trace.Recording {
	t.Helper()
	rec, err := trace.Record(trace.RecordOptions{
		Initiator: "permutation",
		Algorithm: algorithm,
		N:         12,
		Seed:      ^uint64(0),
	})
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	return rec
}
