package harness

import "github.com/roach88/bracket/internal/bracket"

// Trace event types.
const (
	EventRecord = "record"
	EventError  = "error"
)

// TraceEvent is one step outcome: a recorded result or a rejected request.
type TraceEvent struct {
	Type       string `json:"type"` // "record" or "error"
	Seq        int64  `json:"seq"`
	Match      int    `json:"match"`
	Requested  string `json:"requested,omitempty"`
	Kind       string `json:"kind,omitempty"`
	Winner     string `json:"winner,omitempty"`
	Scored     bool   `json:"scored,omitempty"`
	LeftScore  int    `json:"left_score,omitempty"`
	RightScore int    `json:"right_score,omitempty"`
	Code       string `json:"code,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success: every step behaved as
	// expected and every assertion held.
	Pass bool `json:"pass"`

	// Trace contains every step outcome in order.
	Trace []TraceEvent `json:"trace"`

	// Matches is the final bracket listing.
	Matches []bracket.Match `json:"matches"`

	// Errors contains step and assertion failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddRecordTrace adds a recorded result to the trace.
func (r *Result) AddRecordTrace(seq int64, requested string, out bracket.Outcome) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:       EventRecord,
		Seq:        seq,
		Match:      out.MatchID,
		Requested:  requested,
		Kind:       string(out.Kind),
		Winner:     out.Winner,
		Scored:     out.Kind == bracket.OutcomeScored,
		LeftScore:  out.LeftScore,
		RightScore: out.RightScore,
	})
}

// AddErrorTrace adds a rejected request to the trace. Rejected requests do
// not advance the clock, so seq is the last issued value.
func (r *Result) AddErrorTrace(seq int64, matchID int, requested string, code bracket.ErrorCode) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:      EventError,
		Seq:       seq,
		Match:     matchID,
		Requested: requested,
		Code:      string(code),
	})
}
