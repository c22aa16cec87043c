package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/bracket/internal/bracket"
	"github.com/roach88/bracket/internal/ir"
	"github.com/roach88/bracket/internal/session"
	"github.com/roach88/bracket/internal/store"
	"github.com/roach88/bracket/internal/testutil"
)

// DefaultSeed seeds scenarios that don't set one.
const DefaultSeed uint64 = 1

// Harness is the scenario execution engine.
// It runs one scenario against one session with a fixed id and seed.
type Harness struct {
	session *session.Session
	logger  *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Step failures and assertion failures are reported in the result; the
// returned error is for scenarios that cannot run at all (such as an
// unusable entrant list).
//
// Execution flow:
// 1. Create fresh in-memory database
// 2. Create the session with a fixed id and seed
// 3. Execute steps, checking expected errors
// 4. Evaluate assertions against the final bracket
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	seed := DefaultSeed
	if scenario.Seed != nil {
		seed = *scenario.Seed
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sess, err := session.New(ctx, st, ir.TournamentSpec{
		Name:     scenario.Name,
		Entrants: scenario.Entrants,
		Seed:     &seed,
	},
		session.WithIDGenerator(testutil.NewFixedIDGenerator(scenario.SessionID)),
		session.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	h := &Harness{
		session: sess,
		logger:  logger,
	}

	result := NewResult()
	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}
	result.Matches = sess.Matches()

	actx := &AssertionContext{Session: sess}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeSteps runs all steps in order.
//
// A bracket error is a step outcome, checked against expect_error. Any other
// error (persistence, cancellation) aborts the scenario.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		if step.Play {
			if err := h.executePlay(ctx, i, step, result); err != nil {
				return err
			}
			continue
		}

		out, err := h.session.Record(ctx, step.Record, step.Winner)
		if err != nil {
			code := bracket.CodeOf(err)
			if code == "" {
				return fmt.Errorf("step %d: %w", i, err)
			}
			result.AddErrorTrace(h.session.Seq(), step.Record, step.Winner, code)
			if step.ExpectError == "" {
				result.AddError(fmt.Sprintf("steps[%d]: unexpected error: %v", i, err))
			} else if string(code) != step.ExpectError {
				result.AddError(fmt.Sprintf("steps[%d]: expected error %s, got %v", i, step.ExpectError, err))
			}
			continue
		}

		result.AddRecordTrace(h.session.Seq(), step.Winner, out)
		if step.ExpectError != "" {
			result.AddError(fmt.Sprintf("steps[%d]: expected error %s, got %s winner %q",
				i, step.ExpectError, out.Kind, out.Winner))
		}
	}
	return nil
}

// executePlay plays every remaining match and traces each outcome.
func (h *Harness) executePlay(ctx context.Context, index int, step Step, result *Result) error {
	seq := h.session.Seq()
	outcomes, err := h.session.PlayAll(ctx)
	for _, out := range outcomes {
		seq++
		result.AddRecordTrace(seq, "", out)
	}
	if err != nil {
		if bracket.CodeOf(err) == "" {
			return fmt.Errorf("step %d: %w", index, err)
		}
		result.AddError(fmt.Sprintf("steps[%d]: play: %v", index, err))
		return nil
	}
	if step.ExpectError != "" {
		result.AddError(fmt.Sprintf("steps[%d]: expected error %s from play", index, step.ExpectError))
	}
	h.logger.Debug("played remaining matches", "count", len(outcomes))
	return nil
}
