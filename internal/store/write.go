package store

import (
	"context"
	"fmt"

	"github.com/roach88/bracket/internal/ir"
)

// WriteSession inserts a session record.
// Returns an error if a session with the same id already exists.
func (s *Store) WriteSession(ctx context.Context, sess ir.SessionRecord) error {
	entrantsJSON, err := marshalEntrants(sess.Entrants)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions
		(id, name, entrants, seed, spec_hash, created_seq, engine_version)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		sess.ID,
		sess.Name,
		entrantsJSON,
		seedToDB(sess.Seed),
		sess.SpecHash,
		sess.CreatedSeq,
		ir.EngineVersion,
	)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// WriteResult inserts a result record.
//
// Uses ON CONFLICT(id) DO NOTHING: writing the same record twice is a no-op.
// A different record for an already stored match or seq violates the
// UNIQUE constraints and returns an error. The session must exist.
func (s *Store) WriteResult(ctx context.Context, res ir.ResultRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO results
		(id, session_id, seq, match_id, requested, kind, winner, scored, left_score, right_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		res.ID,
		res.SessionID,
		res.Seq,
		res.MatchID,
		res.Requested,
		res.Kind,
		res.Winner,
		boolToDB(res.Scored),
		res.LeftScore,
		res.RightScore,
	)
	if err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
