package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bracket/internal/bracket"
	"github.com/roach88/bracket/internal/ir"
	"github.com/roach88/bracket/internal/store"
	"github.com/roach88/bracket/internal/testutil"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "bracket.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func seed(v uint64) *uint64 { return &v }

func eightSpec() ir.TournamentSpec {
	return ir.TournamentSpec{
		Name:     "open",
		Entrants: []string{"A", "B", "C", "D", "E", "F", "G", "H"},
		Seed:     seed(42),
	}
}

func TestNew_PersistsSession(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	s, err := New(ctx, st, eightSpec(), WithIDGenerator(testutil.NewFixedIDGenerator("s-1")))
	require.NoError(t, err)
	assert.Equal(t, "s-1", s.ID())
	assert.Equal(t, uint64(42), s.Seed())
	assert.Equal(t, 3, s.Rounds())
	assert.Equal(t, int64(1), s.Seq())

	rec, err := st.ReadSession(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "open", rec.Name)
	assert.Equal(t, s.SpecHash(), rec.SpecHash)
	assert.Equal(t, eightSpec().Entrants, rec.Entrants)
}

func TestNew_DefaultsNameAndSeed(t *testing.T) {
	s, err := New(context.Background(), nil, ir.TournamentSpec{Entrants: []string{"A", "B"}})
	require.NoError(t, err)

	assert.Equal(t, DefaultName, s.Name())
	assert.Len(t, s.ID(), 36, "UUIDv7 string")
}

func TestNew_EmptyEntrants(t *testing.T) {
	_, err := New(context.Background(), nil, ir.TournamentSpec{Name: "x"})
	assert.ErrorIs(t, err, bracket.ErrInput)
}

func TestNew_AppliesPresetResults(t *testing.T) {
	spec := eightSpec()
	spec.Results = []ir.ResultSpec{{Match: 1, Winner: "A"}, {Match: 2}}

	s, err := New(context.Background(), nil, spec, WithIDGenerator(testutil.NewFixedIDGenerator("s-1")))
	require.NoError(t, err)

	matches := s.Matches()
	assert.Equal(t, "A", matches[0].Winner)
	assert.True(t, matches[1].Scored)
	assert.Equal(t, "A", matches[4].Left)
}

func TestNew_BadPresetResult(t *testing.T) {
	spec := eightSpec()
	spec.Results = []ir.ResultSpec{{Match: 1, Winner: "Z"}}

	_, err := New(context.Background(), nil, spec)
	require.Error(t, err)
	assert.ErrorIs(t, err, bracket.ErrValidation)
	assert.Contains(t, err.Error(), "preset result 1")
}

func TestRecord_PersistsAndAdvancesClock(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	s, err := New(ctx, st, eightSpec(), WithIDGenerator(testutil.NewFixedIDGenerator("s-1")))
	require.NoError(t, err)

	_, err = s.Record(ctx, 1, "A")
	require.NoError(t, err)
	out, err := s.Record(ctx, 2, "")
	require.NoError(t, err)
	assert.Equal(t, bracket.OutcomeScored, out.Kind)

	results, err := st.ReadResults(ctx, "s-1")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(2), results[0].Seq)
	assert.Equal(t, "A", results[0].Winner)
	assert.Equal(t, "explicit", results[0].Kind)
	assert.Equal(t, int64(3), results[1].Seq)
	assert.Empty(t, results[1].Requested)
	assert.True(t, results[1].Scored)
	assert.Equal(t, out.LeftScore, results[1].LeftScore)
	assert.Equal(t, out.RightScore, results[1].RightScore)
}

func TestRecord_RejectedResultNotPersisted(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	s, err := New(ctx, st, eightSpec(), WithIDGenerator(testutil.NewFixedIDGenerator("s-1")))
	require.NoError(t, err)

	_, err = s.Record(ctx, 1, "C")
	assert.ErrorIs(t, err, bracket.ErrValidation)
	_, err = s.Record(ctx, 9, "")
	assert.ErrorIs(t, err, bracket.ErrLookup)

	results, err := st.ReadResults(ctx, "s-1")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, int64(1), s.Seq(), "rejected results do not consume seq")
}

func TestRecord_StoreFailureLeavesBracketUnchanged(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	s, err := New(ctx, st, eightSpec(), WithIDGenerator(testutil.NewFixedIDGenerator("s-1")))
	require.NoError(t, err)
	before := s.Matches()

	require.NoError(t, st.Close())

	_, err = s.Record(ctx, 1, "A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist result for match 1")

	assert.Equal(t, before, s.Matches())
	assert.Empty(t, s.Matches()[0].Winner)
	assert.Empty(t, s.Matches()[4].Left)
	assert.Equal(t, int64(1), s.Seq())
	assert.Contains(t, s.Pending(), 1)
}

func TestRecord_FailedWriteKeepsRandomSequence(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	s, err := New(ctx, st, eightSpec(), WithIDGenerator(testutil.NewFixedIDGenerator("s-1")))
	require.NoError(t, err)

	// Occupy seq 2 so the next result write violates UNIQUE(session_id, seq).
	_, err = st.DB().Exec(`INSERT INTO results (id, session_id, seq, match_id, requested, kind, winner)
		VALUES ('blocker', 's-1', 2, 4, 'G', 'explicit', 'G')`)
	require.NoError(t, err)

	_, err = s.Record(ctx, 1, "")
	require.Error(t, err)
	assert.Empty(t, s.Matches()[0].Winner)
	assert.Equal(t, int64(1), s.Seq())

	_, err = st.DB().Exec(`DELETE FROM results WHERE id = 'blocker'`)
	require.NoError(t, err)

	got, err := s.Record(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.Seq())

	ref, err := New(ctx, nil, eightSpec())
	require.NoError(t, err)
	want, err := ref.Record(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, want, got, "the discarded draw is not consumed")

	resumed, err := Resume(ctx, st, "s-1")
	require.NoError(t, err)
	assert.Equal(t, s.Matches(), resumed.Matches())
}

func TestResume_DecomposedEntrant(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	jose := "Jose\u0301" // NFD: "e" + combining acute
	spec := ir.TournamentSpec{Name: "nfd", Entrants: []string{jose, "B"}, Seed: seed(1)}
	s, err := New(ctx, st, spec, WithIDGenerator(testutil.NewFixedIDGenerator("s-1")))
	require.NoError(t, err)
	_, err = s.Record(ctx, 1, jose)
	require.NoError(t, err)

	resumed, err := Resume(ctx, st, "s-1")
	require.NoError(t, err)
	assert.Equal(t, []string{jose, "B"}, resumed.Entrants())
	assert.Equal(t, s.SpecHash(), resumed.SpecHash())

	champ, ok := resumed.Champion()
	require.True(t, ok)
	assert.Equal(t, jose, champ)
}

func TestResume_RecordsDecomposedEntrant(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	jose := "Jose\u0301"
	spec := ir.TournamentSpec{Name: "nfd", Entrants: []string{"A", jose, "C", "D"}, Seed: seed(1)}
	_, err := New(ctx, st, spec, WithIDGenerator(testutil.NewFixedIDGenerator("s-1")))
	require.NoError(t, err)

	resumed, err := Resume(ctx, st, "s-1")
	require.NoError(t, err)
	_, err = resumed.Record(ctx, 1, jose)
	require.NoError(t, err)

	m, ok := resumed.WouldMeet(jose, "D")
	require.True(t, ok)
	assert.Equal(t, 3, m.MatchID)
}

func TestResume_ReplaysToSameBracket(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	s, err := New(ctx, st, eightSpec(), WithIDGenerator(testutil.NewFixedIDGenerator("s-1")))
	require.NoError(t, err)
	_, err = s.Record(ctx, 1, "B")
	require.NoError(t, err)
	_, err = s.PlayAll(ctx)
	require.NoError(t, err)

	want, err := s.SnapshotHash()
	require.NoError(t, err)

	resumed, err := Resume(ctx, st, "s-1")
	require.NoError(t, err)
	got, err := resumed.SnapshotHash()
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, s.Matches(), resumed.Matches())
	assert.Equal(t, s.Seq(), resumed.Seq())

	champ, ok := resumed.Champion()
	assert.True(t, ok)
	assert.Len(t, resumed.PathToFinal(champ), 3)
}

func TestResume_ContinuesRecording(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	s, err := New(ctx, st, eightSpec(), WithIDGenerator(testutil.NewFixedIDGenerator("s-1")))
	require.NoError(t, err)
	_, err = s.Record(ctx, 1, "")
	require.NoError(t, err)

	resumed, err := Resume(ctx, st, "s-1")
	require.NoError(t, err)
	_, err = resumed.Record(ctx, 2, "")
	require.NoError(t, err)

	// The same sequence of requests on an uninterrupted session draws the same scores.
	ref, err := New(ctx, nil, eightSpec())
	require.NoError(t, err)
	_, err = ref.Record(ctx, 1, "")
	require.NoError(t, err)
	_, err = ref.Record(ctx, 2, "")
	require.NoError(t, err)

	assert.Equal(t, ref.Matches(), resumed.Matches())
}

func TestResume_NotFound(t *testing.T) {
	st := openStore(t)

	_, err := Resume(context.Background(), st, "missing")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestResume_DetectsDivergence(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	s, err := New(ctx, st, eightSpec(), WithIDGenerator(testutil.NewFixedIDGenerator("s-1")))
	require.NoError(t, err)
	_, err = s.Record(ctx, 1, "A")
	require.NoError(t, err)

	_, err = st.DB().Exec(`UPDATE results SET winner = 'B' WHERE session_id = 's-1'`)
	require.NoError(t, err)

	_, err = Resume(ctx, st, "s-1")
	require.Error(t, err)
	assert.True(t, IsReplayError(err))
	assert.Contains(t, err.Error(), "expected explicit B, got explicit A")
}

func TestResume_DetectsTamperedSeed(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	_, err := New(ctx, st, eightSpec(), WithIDGenerator(testutil.NewFixedIDGenerator("s-1")))
	require.NoError(t, err)

	_, err = st.DB().Exec(`UPDATE sessions SET seed = 7 WHERE id = 's-1'`)
	require.NoError(t, err)

	_, err = Resume(ctx, st, "s-1")
	assert.True(t, IsReplayError(err))
}

func TestPlayAll_ProducesChampion(t *testing.T) {
	ctx := context.Background()
	spec := ir.TournamentSpec{Name: "odd", Entrants: []string{"A", "B", "C", "D", "E"}, Seed: seed(5)}

	var events []bracket.ResultEvent
	s, err := New(ctx, nil, spec, WithObserver(func(e bracket.ResultEvent) {
		events = append(events, e)
	}))
	require.NoError(t, err)

	outcomes, err := s.PlayAll(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, outcomes)
	assert.Empty(t, s.Pending())

	champ, ok := s.Champion()
	require.True(t, ok)
	assert.NotEqual(t, bracket.Bye, champ)

	scored := 0
	for _, o := range outcomes {
		if o.Kind == bracket.OutcomeScored {
			scored++
		}
	}
	assert.Equal(t, scored, len(events))
}

func TestPlayAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := New(context.Background(), nil, eightSpec())
	require.NoError(t, err)

	_, err = s.PlayAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWouldMeetAndPath(t *testing.T) {
	ctx := context.Background()
	spec := eightSpec()
	spec.Results = []ir.ResultSpec{
		{Match: 1, Winner: "A"}, {Match: 2, Winner: "D"},
		{Match: 3, Winner: "F"}, {Match: 4, Winner: "H"},
	}
	s, err := New(ctx, nil, spec)
	require.NoError(t, err)

	m, ok := s.WouldMeet("A", "D")
	require.True(t, ok)
	assert.Equal(t, bracket.Meeting{MatchID: 5, Round: 2}, m)

	m, ok = s.WouldMeet("A", "F")
	require.True(t, ok)
	assert.Equal(t, bracket.Meeting{MatchID: 7, Round: 3}, m)

	_, ok = s.WouldMeet("A", "A")
	assert.False(t, ok)

	assert.Equal(t, []int{1, 5, 7}, s.PathToFinal("A"))
}
