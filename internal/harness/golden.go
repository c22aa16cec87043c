package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/bracket/internal/bracket"
	"github.com/roach88/bracket/internal/ir"
)

// Snapshot captures the trace and final bracket of a scenario execution.
// All fields use canonical JSON serialization for deterministic comparison.
type Snapshot struct {
	ScenarioName string
	Trace        []TraceEvent
	Matches      []bracket.Match
}

// toCanonicalMap converts a Snapshot to a map[string]any for canonical JSON
// serialization. Zero-valued optional trace fields are omitted.
func (s *Snapshot) toCanonicalMap() map[string]any {
	traceList := make([]any, len(s.Trace))
	for i, event := range s.Trace {
		eventMap := map[string]any{
			"type":  event.Type,
			"seq":   event.Seq,
			"match": event.Match,
		}
		if event.Requested != "" {
			eventMap["requested"] = event.Requested
		}
		if event.Kind != "" {
			eventMap["kind"] = event.Kind
		}
		if event.Winner != "" {
			eventMap["winner"] = event.Winner
		}
		if event.Scored {
			eventMap["left_score"] = event.LeftScore
			eventMap["right_score"] = event.RightScore
		}
		if event.Code != "" {
			eventMap["code"] = event.Code
		}
		traceList[i] = eventMap
	}

	rows := make([]ir.MatchRow, len(s.Matches))
	for i, m := range s.Matches {
		rows[i] = ir.MatchRow{ID: m.ID, Round: m.Round, Left: m.Left, Right: m.Right, Winner: m.Winner}
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"trace":         traceList,
		"matches":       ir.MatchRowsCanonical(rows),
	}
}

// MarshalSnapshot renders a result as canonical JSON.
func MarshalSnapshot(scenarioName string, result *Result) ([]byte, error) {
	snapshot := Snapshot{
		ScenarioName: scenarioName,
		Trace:        result.Trace,
		Matches:      result.Matches,
	}
	return ir.MarshalCanonical(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an already computed result against a golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
