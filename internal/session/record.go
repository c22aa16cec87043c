package session

import (
	"context"
	"fmt"

	"github.com/roach88/bracket/internal/bracket"
	"github.com/roach88/bracket/internal/ir"
)

// Record decides match matchID (see bracket.Tree.RecordResult) and persists
// the result. An empty winner requests a randomized result.
//
// If the result cannot be persisted the tree is restored from the requests
// accepted so far and the clock is not advanced, so a failed Record leaves
// the session as it was.
func (s *Session) Record(ctx context.Context, matchID int, winner string) (bracket.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record(ctx, matchID, winner)
}

func (s *Session) record(ctx context.Context, matchID int, winner string) (bracket.Outcome, error) {
	out, err := s.tree.RecordResult(matchID, winner)
	if err != nil {
		s.logger.Debug("result rejected", "match", matchID, "winner", winner, "error", err)
		return bracket.Outcome{}, err
	}

	seq := s.clock.Current() + 1
	if s.store != nil {
		if err := s.persist(ctx, seq, matchID, winner, out); err != nil {
			if rerr := s.rebuild(); rerr != nil {
				s.logger.Error("rollback failed", "error", rerr)
			}
			return bracket.Outcome{}, fmt.Errorf("persist result for match %d: %w", matchID, err)
		}
	}
	s.clock.Next()
	s.applied = append(s.applied, request{matchID: matchID, requested: winner})

	s.logger.Debug("result recorded",
		"match", matchID,
		"kind", string(out.Kind),
		"winner", out.Winner,
		"seq", seq,
	)
	return out, nil
}

func (s *Session) persist(ctx context.Context, seq int64, matchID int, winner string, out bracket.Outcome) error {
	id, err := ir.ResultID(s.id, seq, matchID, winner)
	if err != nil {
		return err
	}
	return s.store.WriteResult(ctx, ir.ResultRecord{
		ID:         id,
		SessionID:  s.id,
		Seq:        seq,
		MatchID:    matchID,
		Requested:  winner,
		Kind:       string(out.Kind),
		Winner:     out.Winner,
		Scored:     out.Kind == bracket.OutcomeScored,
		LeftScore:  out.LeftScore,
		RightScore: out.RightScore,
	})
}

// PlayAll records a randomized result for every playable match, lowest id
// first, until the bracket has a champion. Returns the outcomes in order.
func (s *Session) PlayAll(ctx context.Context) ([]bracket.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var outcomes []bracket.Outcome
	for {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		pending := s.tree.Pending()
		if len(pending) == 0 {
			return outcomes, nil
		}
		out, err := s.record(ctx, pending[0], "")
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, out)
	}
}
