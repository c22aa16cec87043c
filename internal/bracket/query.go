package bracket

import "sort"

// Matches lists every match ordered by id, which is also round order.
func (t *Tree) Matches() []Match {
	out := make([]Match, 0, t.size-1)
	for i := t.size; i < len(t.nodes); i++ {
		out = append(out, t.view(i))
	}
	return out
}

// Match returns the view of a single match.
func (t *Tree) Match(matchID int) (Match, error) {
	idx := t.index(matchID)
	if idx < 0 {
		return Match{}, lookupError(matchID)
	}
	return t.view(idx), nil
}

func (t *Tree) view(i int) Match {
	n := &t.nodes[i]
	m := Match{
		ID:     n.matchID,
		Round:  n.round,
		Left:   n.sides[0],
		Right:  n.sides[1],
		Winner: n.winner,
		Scored: n.scored,
	}
	if n.scored {
		m.LeftScore, m.RightScore = n.scores[0], n.scores[1]
	}
	return m
}

// Pending returns the ids of matches that RecordResult would accept now.
func (t *Tree) Pending() []int {
	var ids []int
	for i := t.size; i < len(t.nodes); i++ {
		n := &t.nodes[i]
		if n.winner != "" {
			continue
		}
		l, r := n.sides[0], n.sides[1]
		if l == "" || r == "" || (l == Bye && r == Bye) {
			continue
		}
		ids = append(ids, n.matchID)
	}
	return ids
}

// Champion returns the winner of the final. With a single entrant that
// entrant is the champion without playing.
func (t *Tree) Champion() (string, bool) {
	w := t.resolved(t.root())
	if w == "" || w == Bye {
		return "", false
	}
	return w, true
}

// Depth returns the breadth-first distance of a match from the final, with the
// final at depth 1. It returns 0 if the match is not part of the tree.
// Depth is the root-relative round number; Round is the one players see.
func (t *Tree) Depth(matchID int) int {
	target := t.index(matchID)
	if target < 0 {
		return 0
	}
	type item struct{ idx, depth int }
	queue := []item{{t.root(), 1}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.idx == target {
			return cur.depth
		}
		n := &t.nodes[cur.idx]
		if n.isLeaf() {
			continue
		}
		queue = append(queue, item{n.left, cur.depth + 1}, item{n.right, cur.depth + 1})
	}
	return 0
}

// Round returns the play-order round of a match (first round = 1, final =
// Rounds()), or 0 if the match is not part of the tree. It is
// Rounds() - Depth(matchID) + 1, and is the round Match and Meeting report.
func (t *Tree) Round(matchID int) int {
	d := t.Depth(matchID)
	if d == 0 {
		return 0
	}
	return t.rounds - d + 1
}

// WouldMeet returns the earliest match at which p1 and p2 would face each
// other: the lowest match with one player below its left side and the other
// below its right side. Players are matched by identifier. It reports false
// when p1 == p2, when either is BYE, or when either never appears.
func (t *Tree) WouldMeet(p1, p2 string) (Meeting, bool) {
	if p1 == p2 || p1 == "" || p2 == "" || p1 == Bye || p2 == Bye {
		return Meeting{}, false
	}
	idx, _ := t.lca(t.root(), p1, p2)
	if idx < 0 {
		return Meeting{}, false
	}
	n := &t.nodes[idx]
	return Meeting{MatchID: n.matchID, Round: n.round}, true
}

// found bits for lca.
const (
	foundP1 = 1 << iota
	foundP2
	foundBoth = foundP1 | foundP2
)

// lca returns the meeting match within the subtree at i (or -1) and which
// players appear under i.
func (t *Tree) lca(i int, p1, p2 string) (int, int) {
	n := &t.nodes[i]
	if n.isLeaf() {
		switch n.label {
		case p1:
			return -1, foundP1
		case p2:
			return -1, foundP2
		}
		return -1, 0
	}

	li, lf := t.lca(n.left, p1, p2)
	if li >= 0 {
		return li, foundBoth
	}
	ri, rf := t.lca(n.right, p1, p2)
	if ri >= 0 {
		return ri, foundBoth
	}
	if (lf&foundP1 != 0 && rf&foundP2 != 0) || (lf&foundP2 != 0 && rf&foundP1 != 0) {
		return i, foundBoth
	}
	return -1, lf | rf
}

// PathToFinal returns, in ascending round order, the id of every match whose
// subtree holds player. The result is empty if player is not an entrant.
func (t *Tree) PathToFinal(player string) []int {
	path := []int{}
	if player == "" || player == Bye {
		return path
	}
	t.collectPath(t.root(), player, &path)
	// Duplicate identifiers interleave two paths in post-order.
	sort.Ints(path)
	return path
}

// collectPath walks the subtree at i in post-order and reports whether player
// appears in it.
func (t *Tree) collectPath(i int, player string, path *[]int) bool {
	n := &t.nodes[i]
	if n.isLeaf() {
		return n.label == player
	}
	inLeft := t.collectPath(n.left, player, path)
	inRight := t.collectPath(n.right, player, path)
	if inLeft || inRight {
		*path = append(*path, n.matchID)
		return true
	}
	return false
}
