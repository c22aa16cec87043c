package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/bracket/internal/bracket"
	"github.com/roach88/bracket/internal/ir"
)

// Validation error codes (E100-E199)
const (
	ErrTournamentNameEmpty = "E101" // name is required
	ErrNoEntrants          = "E102" // at least one entrant required
	ErrEntrantEmpty        = "E103" // entrant id must be non-empty
	ErrEntrantReserved     = "E104" // entrant id collides with the bye marker
	ErrResultMatchRange    = "E105" // result match id outside 1..size-1
	ErrDuplicateResult     = "E106" // two results for the same match
	ErrUnknownWinner       = "E107" // result winner is not an entrant
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a compiled tournament without building it.
// Returns all errors found (does not fail-fast).
//
// Checks that need bracket state (a winner that is an entrant but not a
// contender of that match) are left to the bracket itself.
func Validate(spec *ir.TournamentSpec) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(spec.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "name is required and must be non-empty",
			Code:    ErrTournamentNameEmpty,
		})
	}

	if len(spec.Entrants) == 0 {
		errs = append(errs, ValidationError{
			Field:   "entrants",
			Message: "at least one entrant is required",
			Code:    ErrNoEntrants,
		})
	}

	known := make(map[string]bool, len(spec.Entrants))
	for i, e := range spec.Entrants {
		known[e] = true
		switch e {
		case "":
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("entrants[%d]", i),
				Message: "entrant id must be non-empty",
				Code:    ErrEntrantEmpty,
			})
		case bracket.Bye:
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("entrants[%d]", i),
				Message: fmt.Sprintf("entrant id %q is reserved for byes", bracket.Bye),
				Code:    ErrEntrantReserved,
			})
		}
	}

	matchCount := bracket.NextPowerOfTwo(len(spec.Entrants)) - 1
	seen := make(map[int]bool, len(spec.Results))
	for i, r := range spec.Results {
		field := fmt.Sprintf("results[%d]", i)
		if r.Match < 1 || r.Match > matchCount {
			errs = append(errs, ValidationError{
				Field:   field + ".match",
				Message: fmt.Sprintf("match %d out of range 1..%d", r.Match, matchCount),
				Code:    ErrResultMatchRange,
			})
		}
		if seen[r.Match] {
			errs = append(errs, ValidationError{
				Field:   field + ".match",
				Message: fmt.Sprintf("duplicate result for match %d", r.Match),
				Code:    ErrDuplicateResult,
			})
		}
		seen[r.Match] = true

		if r.Winner != "" && !known[r.Winner] {
			errs = append(errs, ValidationError{
				Field:   field + ".winner",
				Message: fmt.Sprintf("winner %q is not an entrant", r.Winner),
				Code:    ErrUnknownWinner,
			})
		}
	}

	return errs
}
