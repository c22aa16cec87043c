package ir

// TournamentSpec is the declarative definition of a tournament, as read from
// a tournament file or a scenario.
type TournamentSpec struct {
	Name     string   `json:"name"`
	Entrants []string `json:"entrants"`

	// Seed fixes the random source for unscored matches. Nil means the
	// session picks one.
	Seed *uint64 `json:"seed,omitempty"`

	// Results are applied in order right after the bracket is built.
	Results []ResultSpec `json:"results,omitempty"`
}

// ResultSpec requests one recorded result. An empty Winner asks for a
// randomized (scored) result.
type ResultSpec struct {
	Match  int    `json:"match"`
	Winner string `json:"winner,omitempty"`
}

// SessionRecord is a persisted tournament session.
type SessionRecord struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Entrants []string `json:"entrants"`
	Seed     uint64   `json:"seed"`
	SpecHash string   `json:"spec_hash"`

	// CreatedSeq is the logical clock value at creation.
	CreatedSeq int64 `json:"created_seq"`
}

// ResultRecord is one persisted call to RecordResult.
//
// Requested is the winner argument as given ("" when omitted); Winner is the
// outcome. Replay re-issues Requested and checks it reproduces Winner and
// the scores.
type ResultRecord struct {
	ID         string `json:"id"`
	SessionID  string `json:"session_id"`
	Seq        int64  `json:"seq"`
	MatchID    int    `json:"match_id"`
	Requested  string `json:"requested"`
	Kind       string `json:"kind"`
	Winner     string `json:"winner"`
	Scored     bool   `json:"scored"`
	LeftScore  int    `json:"left_score"`
	RightScore int    `json:"right_score"`
}

// MatchRow is the flattened form of a bracket match used in snapshots.
type MatchRow struct {
	ID     int    `json:"id"`
	Round  int    `json:"round"`
	Left   string `json:"left"`
	Right  string `json:"right"`
	Winner string `json:"winner"`
}

// toCanonical converts a MatchRow for MarshalCanonical.
func (m MatchRow) toCanonical() map[string]any {
	return map[string]any{
		"id":     m.ID,
		"round":  m.Round,
		"left":   m.Left,
		"right":  m.Right,
		"winner": m.Winner,
	}
}

// MatchRowsCanonical converts rows to a value MarshalCanonical accepts.
func MatchRowsCanonical(rows []MatchRow) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r.toCanonical()
	}
	return out
}
