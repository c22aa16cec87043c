package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/bracket/internal/ir"
)

// ReadSession returns the session with the given id.
// Returns ErrSessionNotFound if it doesn't exist.
func (s *Store) ReadSession(ctx context.Context, id string) (ir.SessionRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, entrants, seed, spec_hash, created_seq
		FROM sessions
		WHERE id = ?
	`, id)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.SessionRecord{}, fmt.Errorf("read session %s: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		return ir.SessionRecord{}, fmt.Errorf("read session %s: %w", id, err)
	}
	return sess, nil
}

// ListSessions returns all sessions ordered by creation seq, then id.
// Returns an empty slice (not nil) if there are none.
func (s *Store) ListSessions(ctx context.Context) ([]ir.SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, entrants, seed, spec_hash, created_seq
		FROM sessions
		ORDER BY created_seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []ir.SessionRecord{}
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// ReadResults returns the results of a session in replay order:
// ORDER BY seq ASC, id ASC COLLATE BINARY.
// Returns an empty slice (not nil) if there are none.
func (s *Store) ReadResults(ctx context.Context, sessionID string) ([]ir.ResultRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, seq, match_id, requested, kind, winner, scored, left_score, right_score
		FROM results
		WHERE session_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	results := []ir.ResultRecord{}
	for rows.Next() {
		var res ir.ResultRecord
		var scored int
		if err := rows.Scan(
			&res.ID,
			&res.SessionID,
			&res.Seq,
			&res.MatchID,
			&res.Requested,
			&res.Kind,
			&res.Winner,
			&scored,
			&res.LeftScore,
			&res.RightScore,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		res.Scored = scored != 0
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return results, nil
}

// LastSeq returns the highest seq used by the session, counting its creation,
// or 0 if the session has no records.
func (s *Store) LastSeq(ctx context.Context, sessionID string) (int64, error) {
	var seq sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(seq) FROM (
			SELECT created_seq AS seq FROM sessions WHERE id = ?
			UNION ALL
			SELECT seq FROM results WHERE session_id = ?
		)
	`, sessionID, sessionID).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	if !seq.Valid {
		return 0, nil
	}
	return seq.Int64, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(sc scanner) (ir.SessionRecord, error) {
	var sess ir.SessionRecord
	var entrantsJSON string
	var seed int64
	if err := sc.Scan(&sess.ID, &sess.Name, &entrantsJSON, &seed, &sess.SpecHash, &sess.CreatedSeq); err != nil {
		return ir.SessionRecord{}, err
	}

	entrants, err := unmarshalEntrants(entrantsJSON)
	if err != nil {
		return ir.SessionRecord{}, fmt.Errorf("scan session: %w", err)
	}
	sess.Entrants = entrants
	sess.Seed = seedFromDB(seed)
	return sess, nil
}
