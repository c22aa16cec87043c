package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordAll records explicit winners by match id.
func recordAll(t *testing.T, tree *Tree, winners map[int]string, order ...int) {
	t.Helper()
	for _, id := range order {
		_, err := tree.RecordResult(id, winners[id])
		require.NoError(t, err, "match %d", id)
	}
}

func TestWouldMeet_EightPlayerExample(t *testing.T) {
	tree := newEight(t)
	recordAll(t, tree, map[int]string{1: "A", 2: "D", 3: "F", 4: "H"}, 1, 2, 3, 4)

	m, ok := tree.WouldMeet("A", "D")
	require.True(t, ok)
	assert.Equal(t, Meeting{MatchID: 5, Round: 2}, m)

	m, ok = tree.WouldMeet("A", "F")
	require.True(t, ok)
	assert.Equal(t, Meeting{MatchID: 7, Round: 3}, m)

	m, ok = tree.WouldMeet("F", "A")
	require.True(t, ok)
	assert.Equal(t, 7, m.MatchID, "order of players does not matter")

	_, ok = tree.WouldMeet("A", "A")
	assert.False(t, ok)
}

func TestWouldMeet_NeverMeet(t *testing.T) {
	tree, err := New([]string{"A", "B", "C"}, WithSeed(1))
	require.NoError(t, err)

	_, ok := tree.WouldMeet("A", "Z")
	assert.False(t, ok, "unknown identifier")
	_, ok = tree.WouldMeet("Z", "Y")
	assert.False(t, ok)
	_, ok = tree.WouldMeet("C", Bye)
	assert.False(t, ok, "BYE is never a player")
	_, ok = tree.WouldMeet("", "A")
	assert.False(t, ok)
}

func TestWouldMeet_BeforeAnyResult(t *testing.T) {
	tree := newEight(t)

	m, ok := tree.WouldMeet("A", "B")
	require.True(t, ok)
	assert.Equal(t, Meeting{MatchID: 1, Round: 1}, m)

	m, ok = tree.WouldMeet("C", "H")
	require.True(t, ok)
	assert.Equal(t, Meeting{MatchID: 7, Round: 3}, m)
}

func TestWouldMeet_DuplicateIdentifiers(t *testing.T) {
	tree, err := New([]string{"A", "B", "A", "C"}, WithSeed(1))
	require.NoError(t, err)

	m, ok := tree.WouldMeet("A", "B")
	require.True(t, ok)
	assert.Equal(t, 1, m.MatchID, "lowest meeting point wins")

	m, ok = tree.WouldMeet("A", "C")
	require.True(t, ok)
	assert.Equal(t, 2, m.MatchID)

	_, ok = tree.WouldMeet("A", "A")
	assert.False(t, ok)
}

func TestPathToFinal_Champion(t *testing.T) {
	tree := newEight(t)
	recordAll(t, tree,
		map[int]string{1: "A", 2: "D", 3: "F", 4: "H", 5: "A", 6: "F", 7: "A"},
		1, 2, 3, 4, 5, 6, 7)

	champ, ok := tree.Champion()
	require.True(t, ok)
	require.Equal(t, "A", champ)

	path := tree.PathToFinal(champ)
	assert.Equal(t, []int{1, 5, 7}, path)
	assert.Len(t, path, tree.Rounds())
	assert.Equal(t, 7, path[len(path)-1])

	assert.Equal(t, []int{3, 6, 7}, tree.PathToFinal("F"))
}

func TestPathToFinal_Unknown(t *testing.T) {
	tree := newEight(t)

	path := tree.PathToFinal("Z")
	assert.NotNil(t, path)
	assert.Empty(t, path)
	assert.Empty(t, tree.PathToFinal(Bye))
}

func TestPathToFinal_DuplicateIdentifiersAscending(t *testing.T) {
	tree, err := New([]string{"A", "B", "A", "C"}, WithSeed(1))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, tree.PathToFinal("A"))
}

func TestPathToFinal_WithByes(t *testing.T) {
	tree, err := New([]string{"A", "B", "C", "D", "E"}, WithSeed(1))
	require.NoError(t, err)

	assert.Equal(t, []int{3, 6, 7}, tree.PathToFinal("E"))
}

func TestDepthAndRound(t *testing.T) {
	tree := newEight(t)

	assert.Equal(t, 1, tree.Depth(7))
	assert.Equal(t, 2, tree.Depth(5))
	assert.Equal(t, 3, tree.Depth(1))
	assert.Equal(t, 0, tree.Depth(0))
	assert.Equal(t, 0, tree.Depth(99))

	assert.Equal(t, 1, tree.Round(1))
	assert.Equal(t, 2, tree.Round(6))
	assert.Equal(t, 3, tree.Round(7))
	assert.Equal(t, 0, tree.Round(99))

	for _, m := range tree.Matches() {
		assert.Equal(t, m.Round, tree.Round(m.ID))
		assert.Equal(t, tree.Rounds()-tree.Depth(m.ID)+1, m.Round)
	}

	meet, ok := tree.WouldMeet("A", "H")
	require.True(t, ok)
	assert.Equal(t, tree.Round(meet.MatchID), meet.Round)
	assert.Equal(t, 1, tree.Depth(meet.MatchID))
}

func TestMatch_Unknown(t *testing.T) {
	tree := newEight(t)

	_, err := tree.Match(8)
	assert.ErrorIs(t, err, ErrLookup)
	assert.Contains(t, err.Error(), "match=8")
}

func TestChampion_Undecided(t *testing.T) {
	tree := newEight(t)

	_, ok := tree.Champion()
	assert.False(t, ok)
}
