package session

import (
	"errors"
	"fmt"
)

// ReplayError reports a stored session that does not rebuild to the same
// bracket: a stored request fails on replay, or produces a different outcome.
type ReplayError struct {
	SessionID string
	Seq       int64
	MatchID   int

	// Expected and Actual describe the stored and replayed outcomes.
	Expected string
	Actual   string

	// Err is the replay failure, if the request itself failed.
	Err error
}

// Error implements the error interface.
func (e *ReplayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("REPLAY_DIVERGED: session=%s seq=%d match=%d: %v", e.SessionID, e.Seq, e.MatchID, e.Err)
	}
	return fmt.Sprintf("REPLAY_DIVERGED: session=%s seq=%d match=%d: expected %s, got %s",
		e.SessionID, e.Seq, e.MatchID, e.Expected, e.Actual)
}

func (e *ReplayError) Unwrap() error {
	return e.Err
}

// IsReplayError returns true if err is or wraps a *ReplayError.
func IsReplayError(err error) bool {
	var re *ReplayError
	return errors.As(err, &re)
}
