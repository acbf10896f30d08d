package store

import (
	"path/filepath"
	"testing"
)

// createTestStore creates a new temp-dir store for testing.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestConversion creates a conversion with fixed hashes.
func createTestConversion(dir Direction, input, binaryHash string) Conversion {
	return Conversion{
		Direction:   dir,
		InputPath:   input,
		OutputPath:  input + ".out",
		TextFormat:  "json",
		ScriptHash:  "script-hash",
		BinaryHash:  binaryHash,
		Records:     3,
		Bytes:       44,
		ToolVersion: "0.1.0",
	}
}
