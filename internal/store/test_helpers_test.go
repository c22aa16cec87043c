package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/bracket/internal/ir"
)

// createTestStore creates a new file-backed store in a temp dir.
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

// createTestSession writes a session with minimal required fields.
func createTestSession(t *testing.T, s *Store, id string, seq int64) ir.SessionRecord {
	t.Helper()
	sess := ir.SessionRecord{
		ID:         id,
		Name:       "test-" + id,
		Entrants:   []string{"A", "B", "C", "D"},
		Seed:       42,
		SpecHash:   "test-hash",
		CreatedSeq: seq,
	}
	if err := s.WriteSession(context.Background(), sess); err != nil {
		t.Fatalf("WriteSession() failed: %v", err)
	}
	return sess
}

// createTestResult builds a result record with a content-addressed id.
func createTestResult(sessionID string, seq int64, matchID int, winner string) ir.ResultRecord {
	return ir.ResultRecord{
		ID:        ir.MustResultID(sessionID, seq, matchID, winner),
		SessionID: sessionID,
		Seq:       seq,
		MatchID:   matchID,
		Requested: winner,
		Kind:      "explicit",
		Winner:    winner,
	}
}
