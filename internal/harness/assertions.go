package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/bracket/internal/bracket"
	"github.com/roach88/bracket/internal/session"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for i, event := range e.Trace {
		switch event.Type {
		case EventRecord:
			fmt.Fprintf(&buf, "  [%d] match %d: %s %s\n", i+1, event.Match, event.Kind, event.Winner)
		case EventError:
			fmt.Fprintf(&buf, "  [%d] match %d: error %s\n", i+1, event.Match, event.Code)
		}
	}

	return buf.String()
}

// label renders an unset label as Unset.
func label(s string) string {
	if s == "" {
		return Unset
	}
	return s
}

func assertWinner(sess *session.Session, a Assertion, trace []TraceEvent) error {
	m, err := findMatch(sess, a.Match)
	if err != nil {
		return err
	}
	if got := label(m.Winner); got != a.Expect {
		return &AssertionError{
			Type:     AssertWinner,
			Expected: fmt.Sprintf("match %d winner %s", a.Match, a.Expect),
			Actual:   fmt.Sprintf("match %d winner %s", a.Match, got),
			Trace:    trace,
		}
	}
	return nil
}

func assertSides(sess *session.Session, a Assertion, trace []TraceEvent) error {
	m, err := findMatch(sess, a.Match)
	if err != nil {
		return err
	}
	left, right := label(m.Left), label(m.Right)
	if left != a.Left || right != a.Right {
		return &AssertionError{
			Type:     AssertSides,
			Expected: fmt.Sprintf("match %d: %s vs %s", a.Match, a.Left, a.Right),
			Actual:   fmt.Sprintf("match %d: %s vs %s", a.Match, left, right),
			Trace:    trace,
		}
	}
	return nil
}

func assertChampion(sess *session.Session, a Assertion, trace []TraceEvent) error {
	champ, _ := sess.Champion()
	if got := label(champ); got != a.Expect {
		return &AssertionError{
			Type:     AssertChampion,
			Expected: a.Expect,
			Actual:   got,
			Trace:    trace,
		}
	}
	return nil
}

func assertWouldMeet(sess *session.Session, a Assertion, trace []TraceEvent) error {
	p1, p2 := a.Players[0], a.Players[1]
	m, ok := sess.WouldMeet(p1, p2)
	actual := "never"
	if ok {
		actual = fmt.Sprintf("match %d round %d", m.MatchID, m.Round)
	}
	if !ok || m.MatchID != a.Match || (a.Round != 0 && m.Round != a.Round) {
		expected := fmt.Sprintf("match %d", a.Match)
		if a.Round != 0 {
			expected += fmt.Sprintf(" round %d", a.Round)
		}
		return &AssertionError{
			Type:     AssertWouldMeet,
			Expected: fmt.Sprintf("%s and %s meet at %s", p1, p2, expected),
			Actual:   actual,
			Trace:    trace,
		}
	}
	return nil
}

func assertNeverMeet(sess *session.Session, a Assertion, trace []TraceEvent) error {
	p1, p2 := a.Players[0], a.Players[1]
	if m, ok := sess.WouldMeet(p1, p2); ok {
		return &AssertionError{
			Type:     AssertNeverMeet,
			Expected: fmt.Sprintf("%s and %s never meet", p1, p2),
			Actual:   fmt.Sprintf("meet at match %d round %d", m.MatchID, m.Round),
			Trace:    trace,
		}
	}
	return nil
}

func assertPath(sess *session.Session, a Assertion, trace []TraceEvent) error {
	got := sess.PathToFinal(a.Player)
	want := a.Path
	if want == nil {
		want = []int{}
	}
	if !slices.Equal(got, want) {
		return &AssertionError{
			Type:     AssertPath,
			Expected: fmt.Sprintf("%s path %v", a.Player, want),
			Actual:   fmt.Sprintf("%s path %v", a.Player, got),
			Trace:    trace,
		}
	}
	return nil
}

func assertCount(typ string, got, want int, trace []TraceEvent) error {
	if got != want {
		return &AssertionError{
			Type:     typ,
			Expected: fmt.Sprintf("%d", want),
			Actual:   fmt.Sprintf("%d", got),
			Trace:    trace,
		}
	}
	return nil
}

func findMatch(sess *session.Session, matchID int) (bracket.Match, error) {
	for _, m := range sess.Matches() {
		if m.ID == matchID {
			return m, nil
		}
	}
	return bracket.Match{}, fmt.Errorf("unknown match %d", matchID)
}

// AssertionContext provides context for evaluating assertions.
type AssertionContext struct {
	Session *session.Session
}

// EvaluateAssertions evaluates all assertions against the session.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	if actx == nil || actx.Session == nil {
		return []string{"assertions require a session"}
	}
	sess := actx.Session

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertWinner:
			err = assertWinner(sess, assertion, result.Trace)
		case AssertSides:
			err = assertSides(sess, assertion, result.Trace)
		case AssertChampion:
			err = assertChampion(sess, assertion, result.Trace)
		case AssertWouldMeet:
			err = assertWouldMeet(sess, assertion, result.Trace)
		case AssertNeverMeet:
			err = assertNeverMeet(sess, assertion, result.Trace)
		case AssertPath:
			err = assertPath(sess, assertion, result.Trace)
		case AssertRounds:
			err = assertCount(AssertRounds, sess.Rounds(), assertion.Count, result.Trace)
		case AssertByes:
			err = assertCount(AssertByes, sess.Byes(), assertion.Count, result.Trace)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, fmt.Sprintf("assertion[%d]: %v", i, err))
		}
	}

	return errors
}
