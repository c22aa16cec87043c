package compiler

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/bracket/internal/ir"
)

// LoadTournamentFile compiles a .cue file and returns its `tournament` field.
//
//	tournament: {
//		name: "club open"
//		entrants: ["A", "B", "C", "D", "E"]
//		seed: 42
//		results: [{match: 1, winner: "A"}, {match: 2}]
//	}
func LoadTournamentFile(path string) (*ir.TournamentSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return LoadTournament(data, path)
}

// LoadTournament compiles CUE source; filename is used in error positions.
func LoadTournament(src []byte, filename string) (*ir.TournamentSpec, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	tv := v.LookupPath(cue.ParsePath("tournament"))
	if !tv.Exists() {
		return nil, &CompileError{
			Field:   "tournament",
			Message: "tournament is required",
			Pos:     v.Pos(),
		}
	}
	return CompileTournament(tv)
}

// CompileTournament parses a CUE value into a TournamentSpec.
//
// The value should be the tournament struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`tournament: { ... }`)
//	spec, err := CompileTournament(v.LookupPath(cue.ParsePath("tournament")))
func CompileTournament(v cue.Value) (*ir.TournamentSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &ir.TournamentSpec{}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{
			Field:   "name",
			Message: "name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	spec.Name = name

	spec.Entrants, err = parseEntrants(v)
	if err != nil {
		return nil, err
	}

	seedVal := v.LookupPath(cue.ParsePath("seed"))
	if seedVal.Exists() {
		if seedVal.IncompleteKind() != cue.IntKind {
			return nil, &CompileError{
				Field:   "seed",
				Message: fmt.Sprintf("seed must be an int, got %v", seedVal.IncompleteKind()),
				Pos:     seedVal.Pos(),
			}
		}
		seed, err := seedVal.Uint64()
		if err != nil {
			return nil, &CompileError{
				Field:   "seed",
				Message: "seed must be a non-negative 64-bit int",
				Pos:     seedVal.Pos(),
			}
		}
		spec.Seed = &seed
	}

	spec.Results, err = parseResults(v)
	if err != nil {
		return nil, err
	}

	return spec, nil
}

// parseEntrants reads the required, non-empty entrants list.
func parseEntrants(v cue.Value) ([]string, error) {
	entVal := v.LookupPath(cue.ParsePath("entrants"))
	if !entVal.Exists() {
		return nil, &CompileError{
			Field:   "entrants",
			Message: "entrants is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := entVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var entrants []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, &CompileError{
				Field:   fmt.Sprintf("entrants[%d]", len(entrants)),
				Message: "entrant must be a string",
				Pos:     iter.Value().Pos(),
			}
		}
		entrants = append(entrants, s)
	}
	if len(entrants) == 0 {
		return nil, &CompileError{
			Field:   "entrants",
			Message: "at least one entrant is required",
			Pos:     entVal.Pos(),
		}
	}
	return entrants, nil
}

// parseResults reads the optional preset results list.
func parseResults(v cue.Value) ([]ir.ResultSpec, error) {
	resVal := v.LookupPath(cue.ParsePath("results"))
	if !resVal.Exists() {
		return nil, nil
	}

	iter, err := resVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var results []ir.ResultSpec
	for iter.Next() {
		item := iter.Value()
		field := fmt.Sprintf("results[%d]", len(results))

		matchVal := item.LookupPath(cue.ParsePath("match"))
		if !matchVal.Exists() {
			return nil, &CompileError{
				Field:   field + ".match",
				Message: "match is required",
				Pos:     item.Pos(),
			}
		}
		match, err := matchVal.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}

		r := ir.ResultSpec{Match: int(match)}
		if winVal := item.LookupPath(cue.ParsePath("winner")); winVal.Exists() {
			r.Winner, err = winVal.String()
			if err != nil {
				return nil, formatCUEError(err)
			}
		}
		results = append(results, r)
	}
	return results, nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	positions := errors.Positions(first)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
