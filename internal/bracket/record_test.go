package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bracket/internal/testutil"
)

func newEight(t *testing.T, opts ...Option) *Tree {
	t.Helper()
	tree, err := New(eight, append([]Option{WithSeed(42)}, opts...)...)
	require.NoError(t, err)
	return tree
}

func TestRecordResult_ExplicitWinnerPropagates(t *testing.T) {
	tree := newEight(t)

	out, err := tree.RecordResult(1, "A")
	require.NoError(t, err)
	assert.Equal(t, Outcome{MatchID: 1, Kind: OutcomeExplicit, Winner: "A"}, out)

	m1, _ := tree.Match(1)
	assert.Equal(t, "A", m1.Winner)

	m5, _ := tree.Match(5)
	assert.Equal(t, "A", m5.Left)
	assert.Empty(t, m5.Right)
}

func TestRecordResult_UnknownMatch(t *testing.T) {
	tree := newEight(t)

	for _, id := range []int{-1, 0, 8, 100} {
		_, err := tree.RecordResult(id, "A")
		assert.ErrorIs(t, err, ErrLookup, "match %d", id)
	}
}

func TestRecordResult_AlreadyDecidedLeavesTreeUnchanged(t *testing.T) {
	tree := newEight(t)
	_, err := tree.RecordResult(1, "A")
	require.NoError(t, err)

	before := tree.Matches()
	_, err = tree.RecordResult(1, "B")
	assert.ErrorIs(t, err, ErrState)
	_, err = tree.RecordResult(1, "")
	assert.ErrorIs(t, err, ErrState)
	assert.Equal(t, before, tree.Matches())
}

func TestRecordResult_InvalidWinnerLeavesTreeUnchanged(t *testing.T) {
	tree := newEight(t)

	before := tree.Matches()
	_, err := tree.RecordResult(1, "C")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, ErrCodeValidation, CodeOf(err))
	assert.Equal(t, before, tree.Matches())

	// Matching is exact.
	_, err = tree.RecordResult(1, "a")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRecordResult_ContendersNotDecided(t *testing.T) {
	tree := newEight(t)

	_, err := tree.RecordResult(5, "A")
	assert.ErrorIs(t, err, ErrState)

	_, err = tree.RecordResult(1, "A")
	require.NoError(t, err)
	_, err = tree.RecordResult(5, "A")
	assert.ErrorIs(t, err, ErrState, "right side still open")
}

func TestRecordResult_ScoredLeftWinsTie(t *testing.T) {
	var events []ResultEvent
	tree := newEight(t,
		WithSource(testutil.NewScriptedSource(7, 7)),
		WithObserver(func(e ResultEvent) { events = append(events, e) }),
	)

	out, err := tree.RecordResult(2, "")
	require.NoError(t, err)
	assert.Equal(t, OutcomeScored, out.Kind)
	assert.Equal(t, "C", out.Winner)
	assert.Equal(t, 7, out.LeftScore)
	assert.Equal(t, 7, out.RightScore)

	m2, _ := tree.Match(2)
	assert.True(t, m2.Scored)
	assert.Equal(t, 7, m2.LeftScore)
	assert.Equal(t, 7, m2.RightScore)

	require.Len(t, events, 1)
	assert.Equal(t, ResultEvent{MatchID: 2, Left: "C", LeftScore: 7, Right: "D", RightScore: 7, Winner: "C"}, events[0])
}

func TestRecordResult_ScoredHigherWins(t *testing.T) {
	src := testutil.NewScriptedSource(3, 9, 15, 0)
	tree := newEight(t, WithSource(src))

	out, err := tree.RecordResult(1, "")
	require.NoError(t, err)
	assert.Equal(t, "B", out.Winner)

	out, err = tree.RecordResult(2, "")
	require.NoError(t, err)
	assert.Equal(t, "C", out.Winner)
	assert.Equal(t, 0, src.Remaining())
}

func TestRecordResult_ExplicitWinnerDrawsNoScores(t *testing.T) {
	src := testutil.NewScriptedSource()
	tree := newEight(t, WithSource(src))

	_, err := tree.RecordResult(1, "B")
	require.NoError(t, err)

	m1, _ := tree.Match(1)
	assert.False(t, m1.Scored)
}

func TestRecordResult_ByeIgnoresWinnerArgument(t *testing.T) {
	tree, err := New([]string{"A", "B", "C"}, WithSource(testutil.NewScriptedSource()))
	require.NoError(t, err)

	m2, _ := tree.Match(2)
	require.Equal(t, "C", m2.Left)
	require.Equal(t, Bye, m2.Right)

	out, err := tree.RecordResult(2, "nobody")
	require.NoError(t, err)
	assert.Equal(t, OutcomeBye, out.Kind)
	assert.Equal(t, "C", out.Winner)

	out, err = tree.RecordResult(1, "A")
	require.NoError(t, err)

	m3, _ := tree.Match(3)
	assert.Equal(t, "A", m3.Left)
	assert.Equal(t, "C", m3.Right)
	assert.Equal(t, OutcomeExplicit, out.Kind)
}

func TestRecordResult_ByeCascade(t *testing.T) {
	tree, err := New([]string{"A", "B", "C", "D", "E"}, WithSeed(3))
	require.NoError(t, err)

	_, err = tree.RecordResult(1, "A")
	require.NoError(t, err)

	m3, _ := tree.Match(3)
	assert.Equal(t, "E", m3.Winner, "first-round bye resolved by propagation")

	m4, _ := tree.Match(4)
	assert.True(t, m4.Void())
	assert.Empty(t, m4.Winner, "a void match never gets a winner")

	m6, _ := tree.Match(6)
	assert.Equal(t, "E", m6.Left)
	assert.Equal(t, Bye, m6.Right)
	assert.Equal(t, "E", m6.Winner, "bye cascades once the void match resolves")

	_, err = tree.RecordResult(4, "")
	assert.ErrorIs(t, err, ErrState)
	_, err = tree.RecordResult(6, "")
	assert.ErrorIs(t, err, ErrState)

	m7, _ := tree.Match(7)
	assert.Empty(t, m7.Left)
	assert.Equal(t, "E", m7.Right)
}

func TestRecordResult_ByeNeverWins(t *testing.T) {
	for n := 1; n <= 20; n++ {
		tree, err := New(players(n), WithSeed(uint64(n)))
		require.NoError(t, err)

		playAll(t, tree)

		for _, m := range tree.Matches() {
			assert.NotEqual(t, Bye, m.Winner, "n=%d match %d", n, m.ID)
		}
		champ, ok := tree.Champion()
		assert.True(t, ok, "n=%d", n)
		assert.NotEqual(t, Bye, champ)
	}
}

func TestRecordResult_SameSeedSameResults(t *testing.T) {
	a := newEight(t)
	b := newEight(t)

	playAll(t, a)
	playAll(t, b)

	assert.Equal(t, a.Matches(), b.Matches())
}

func TestPropagate_Idempotent(t *testing.T) {
	tree, err := New(players(11), WithSeed(9))
	require.NoError(t, err)

	_, err = tree.RecordResult(1, "")
	require.NoError(t, err)
	_, err = tree.RecordResult(2, "P3")
	require.NoError(t, err)

	tree.Propagate()
	once := tree.Matches()
	tree.Propagate()
	assert.Equal(t, once, tree.Matches())
}

func TestPending(t *testing.T) {
	tree, err := New([]string{"A", "B", "C", "D", "E"}, WithSeed(1))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, tree.Pending())

	_, err = tree.RecordResult(1, "A")
	require.NoError(t, err)
	assert.Equal(t, []int{2}, tree.Pending())
}

// playAll records every pending match with randomized scores until none remain.
func playAll(t *testing.T, tree *Tree) {
	t.Helper()
	for {
		pending := tree.Pending()
		if len(pending) == 0 {
			return
		}
		_, err := tree.RecordResult(pending[0], "")
		require.NoError(t, err)
	}
}
