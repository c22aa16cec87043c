package bracket

// Bye is the placeholder entrant used to pad the bracket. It never wins a match.
const Bye = "BYE"

// OutcomeKind describes how a match was decided.
type OutcomeKind string

const (
	OutcomeBye      OutcomeKind = "bye"
	OutcomeExplicit OutcomeKind = "explicit"
	OutcomeScored   OutcomeKind = "scored"
)

// node is one arena slot. Leaves have left == right == -1.
type node struct {
	matchID int
	left    int
	right   int
	round   int

	// label is the entrant of a leaf.
	label string

	// sides are the displayed contenders, "" while unknown.
	sides [2]string

	winner string
	scored bool
	scores [2]int
}

func (n *node) isLeaf() bool {
	return n.left < 0
}

// Match is a read-only view of one internal node.
type Match struct {
	ID     int    `json:"id"`
	Round  int    `json:"round"`
	Left   string `json:"left"`
	Right  string `json:"right"`
	Winner string `json:"winner"`

	Scored     bool `json:"scored"`
	LeftScore  int  `json:"left_score"`
	RightScore int  `json:"right_score"`
}

// Decided reports whether the match has a winner.
func (m Match) Decided() bool {
	return m.Winner != ""
}

// Void reports whether both sides of the match are byes.
func (m Match) Void() bool {
	return m.Left == Bye && m.Right == Bye
}

// Outcome is the result of a successful RecordResult.
type Outcome struct {
	MatchID    int         `json:"match"`
	Kind       OutcomeKind `json:"kind"`
	Winner     string      `json:"winner"`
	LeftScore  int         `json:"left_score,omitempty"`
	RightScore int         `json:"right_score,omitempty"`
}

// ResultEvent is emitted when a match is decided by randomized scores.
type ResultEvent struct {
	MatchID    int
	Left       string
	LeftScore  int
	Right      string
	RightScore int
	Winner     string
}

// Observer receives result events. It is called synchronously after
// propagation completes.
type Observer func(ResultEvent)

// Meeting is the answer to WouldMeet.
type Meeting struct {
	MatchID int
	Round   int
}
