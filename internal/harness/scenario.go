package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/bracket/internal/bracket"
)

// Scenario defines a bracket scenario: entrants, a sequence of recorded
// results and assertions on the final bracket.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Entrants are the bracket entrants in slot order.
	Entrants []string `yaml:"entrants"`

	// Seed fixes the random source. Defaults to DefaultSeed.
	Seed *uint64 `yaml:"seed,omitempty"`

	// Steps are recorded in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final bracket.
	Assertions []Assertion `yaml:"assertions"`

	// SessionID is an optional fixed session id.
	// If empty, defaults to "test-session-default".
	SessionID string `yaml:"session_id,omitempty"`
}

// Step records one result, or plays every remaining match.
type Step struct {
	// Record is the match id to decide.
	Record int `yaml:"record,omitempty"`

	// Winner is the requested winner. Empty asks for randomized scores.
	Winner string `yaml:"winner,omitempty"`

	// Play plays every remaining match with randomized scores.
	Play bool `yaml:"play,omitempty"`

	// ExpectError is the expected error code (INPUT, LOOKUP, STATE or
	// VALIDATION). If empty the step must succeed.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Assertion validates the final bracket.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Match is the match id (winner, sides, would_meet).
	Match int `yaml:"match,omitempty"`

	// Expect is the expected label (winner, champion). "?" means unset.
	Expect string `yaml:"expect,omitempty"`

	// Left and Right are the expected sides (sides). "?" means unset.
	Left  string `yaml:"left,omitempty"`
	Right string `yaml:"right,omitempty"`

	// Players are the two players (would_meet, never_meet).
	Players []string `yaml:"players,omitempty"`

	// Round is the expected meeting round (would_meet). Zero skips the check.
	Round int `yaml:"round,omitempty"`

	// Player and Path are the player and expected match ids (path).
	Player string `yaml:"player,omitempty"`
	Path   []int  `yaml:"path,omitempty"`

	// Count is the expected number (rounds, byes).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertWinner    = "winner"
	AssertSides     = "sides"
	AssertChampion  = "champion"
	AssertWouldMeet = "would_meet"
	AssertNeverMeet = "never_meet"
	AssertPath      = "path"
	AssertRounds    = "rounds"
	AssertByes      = "byes"
)

// Unset is the scenario spelling of an unset label.
const Unset = "?"

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Entrants) == 0 {
		return fmt.Errorf("entrants list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Play == (step.Record != 0) {
			return fmt.Errorf("steps[%d]: exactly one of record or play is required", i)
		}
		if step.Play && step.Winner != "" {
			return fmt.Errorf("steps[%d]: winner is not allowed with play", i)
		}
		switch bracket.ErrorCode(step.ExpectError) {
		case "", bracket.ErrCodeInput, bracket.ErrCodeLookup, bracket.ErrCodeState, bracket.ErrCodeValidation:
		default:
			return fmt.Errorf("steps[%d]: unknown error code %q", i, step.ExpectError)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertWinner:
		if a.Match == 0 || a.Expect == "" {
			return fmt.Errorf("assertions[%d]: match and expect are required for winner", index)
		}
	case AssertSides:
		if a.Match == 0 || a.Left == "" || a.Right == "" {
			return fmt.Errorf("assertions[%d]: match, left and right are required for sides", index)
		}
	case AssertChampion:
		if a.Expect == "" {
			return fmt.Errorf("assertions[%d]: expect is required for champion", index)
		}
	case AssertWouldMeet:
		if len(a.Players) != 2 || a.Match == 0 {
			return fmt.Errorf("assertions[%d]: two players and match are required for would_meet", index)
		}
	case AssertNeverMeet:
		if len(a.Players) != 2 {
			return fmt.Errorf("assertions[%d]: two players are required for never_meet", index)
		}
	case AssertPath:
		if a.Player == "" {
			return fmt.Errorf("assertions[%d]: player is required for path", index)
		}
	case AssertRounds, AssertByes:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
