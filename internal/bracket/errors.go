package bracket

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes bracket errors.
type ErrorCode string

const (
	// ErrCodeInput indicates an unusable entrant list.
	ErrCodeInput ErrorCode = "INPUT"

	// ErrCodeLookup indicates an unknown match id.
	ErrCodeLookup ErrorCode = "LOOKUP"

	// ErrCodeState indicates the match cannot be recorded in its current state
	// (already decided, void, or contenders not yet known).
	ErrCodeState ErrorCode = "STATE"

	// ErrCodeValidation indicates a winner that is not one of the two contenders.
	ErrCodeValidation ErrorCode = "VALIDATION"
)

// Sentinels for errors.Is. An *Error matches the sentinel with the same code.
var (
	ErrInput      = &Error{Code: ErrCodeInput}
	ErrLookup     = &Error{Code: ErrCodeLookup}
	ErrState      = &Error{Code: ErrCodeState}
	ErrValidation = &Error{Code: ErrCodeValidation}
)

// Error is returned by every failing bracket operation. No operation mutates
// the tree before returning an Error.
type Error struct {
	Code    ErrorCode
	Message string

	// MatchID is the match the error refers to, or 0.
	MatchID int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.MatchID != 0 {
		return fmt.Sprintf("%s: %s (match=%d)", e.Code, e.Message, e.MatchID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not a bracket error.
func CodeOf(err error) ErrorCode {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

func inputError(format string, args ...any) *Error {
	return &Error{Code: ErrCodeInput, Message: fmt.Sprintf(format, args...)}
}

func lookupError(matchID int) *Error {
	return &Error{Code: ErrCodeLookup, Message: "unknown match", MatchID: matchID}
}

func stateError(matchID int, msg string) *Error {
	return &Error{Code: ErrCodeState, Message: msg, MatchID: matchID}
}

func validationError(matchID int, winner, left, right string) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("winner %q is neither %q nor %q", winner, left, right),
		MatchID: matchID,
	}
}
