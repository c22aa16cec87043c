package cli

import (
	"fmt"
	"io"

	"github.com/roach88/bracket/internal/bracket"
	"github.com/roach88/bracket/internal/session"
)

// SessionView is the JSON form of a session and its bracket.
type SessionView struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Seed     uint64          `json:"seed"`
	SpecHash string          `json:"spec_hash"`
	Rounds   int             `json:"rounds"`
	Byes     int             `json:"byes"`
	Matches  []bracket.Match `json:"matches"`
	Champion string          `json:"champion,omitempty"`
}

func newSessionView(s *session.Session) SessionView {
	champ, _ := s.Champion()
	return SessionView{
		ID:       s.ID(),
		Name:     s.Name(),
		Seed:     s.Seed(),
		SpecHash: s.SpecHash(),
		Rounds:   s.Rounds(),
		Byes:     s.Byes(),
		Matches:  s.Matches(),
		Champion: champ,
	}
}

// label renders an unset label as "?".
func label(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

// renderSession writes the session header and its bracket grouped by round.
//
//	open (session 0190..., seed 42)
//	Round 1
//	  [1] A vs B -> A
//	  [2] C 7-3 D -> C
//	Round 2
//	  [3] A vs C -> ?
//	Champion: ?
func renderSession(w io.Writer, v SessionView) {
	fmt.Fprintf(w, "%s (session %s, seed %d)\n", v.Name, v.ID, v.Seed)
	renderMatches(w, v.Matches)
	fmt.Fprintf(w, "Champion: %s\n", label(v.Champion))
}

func renderMatches(w io.Writer, matches []bracket.Match) {
	round := 0
	for _, m := range matches {
		if m.Round != round {
			round = m.Round
			fmt.Fprintf(w, "Round %d\n", round)
		}
		fmt.Fprintf(w, "  %s\n", renderMatch(m))
	}
}

func renderMatch(m bracket.Match) string {
	if m.Scored {
		return fmt.Sprintf("[%d] %s %d-%d %s -> %s",
			m.ID, label(m.Left), m.LeftScore, m.RightScore, label(m.Right), label(m.Winner))
	}
	return fmt.Sprintf("[%d] %s vs %s -> %s", m.ID, label(m.Left), label(m.Right), label(m.Winner))
}

// renderOutcome writes one recorded result.
func renderOutcome(w io.Writer, o bracket.Outcome) {
	switch o.Kind {
	case bracket.OutcomeScored:
		fmt.Fprintf(w, "Match %d: %s wins %d-%d\n", o.MatchID, o.Winner, o.LeftScore, o.RightScore)
	case bracket.OutcomeBye:
		fmt.Fprintf(w, "Match %d: %s advances on a bye\n", o.MatchID, o.Winner)
	default:
		fmt.Fprintf(w, "Match %d: %s wins\n", o.MatchID, o.Winner)
	}
}
