package session

import (
	"github.com/roach88/bracket/internal/bracket"
	"github.com/roach88/bracket/internal/ir"
)

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Name returns the tournament name.
func (s *Session) Name() string { return s.name }

// Seed returns the seed of the session's random source.
func (s *Session) Seed() uint64 { return s.seed }

// SpecHash returns the content hash of name, entrants and seed.
func (s *Session) SpecHash() string { return s.specHash }

// Seq returns the last logical clock value used by the session.
func (s *Session) Seq() int64 { return s.clock.Current() }

// Rounds returns the number of rounds in the bracket.
func (s *Session) Rounds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Rounds()
}

// Entrants returns the bracket slots, including byes.
func (s *Session) Entrants() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Entrants()
}

// Byes returns the number of BYE slots.
func (s *Session) Byes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Byes()
}

// Matches lists every match ordered by id.
func (s *Session) Matches() []bracket.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Matches()
}

// Pending returns the ids of matches that can be recorded now.
func (s *Session) Pending() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Pending()
}

// WouldMeet returns the earliest match at which p1 and p2 would meet.
func (s *Session) WouldMeet(p1, p2 string) (bracket.Meeting, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.WouldMeet(p1, p2)
}

// PathToFinal returns the ids of the matches above player's slot.
func (s *Session) PathToFinal(player string) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.PathToFinal(player)
}

// Champion returns the winner of the final, if decided.
func (s *Session) Champion() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Champion()
}

// Snapshot returns the bracket listing as ir rows.
func (s *Session) Snapshot() []ir.MatchRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotRows(s.tree.Matches())
}

// SnapshotHash hashes the current listing. Two sessions with equal hashes
// show the same sides and winners everywhere.
func (s *Session) SnapshotHash() (string, error) {
	return ir.SnapshotHash(s.Snapshot())
}

func snapshotRows(matches []bracket.Match) []ir.MatchRow {
	rows := make([]ir.MatchRow, len(matches))
	for i, m := range matches {
		rows[i] = ir.MatchRow{
			ID:     m.ID,
			Round:  m.Round,
			Left:   m.Left,
			Right:  m.Right,
			Winner: m.Winner,
		}
	}
	return rows
}
