package bracket

// Tree is a single-elimination bracket over a fixed set of entrants.
type Tree struct {
	nodes     []node
	size      int // number of leaves, a power of two
	entrants  int // real entrants, excluding byes
	rounds    int
	src       Source
	observers []Observer
}

// Option configures a Tree.
type Option func(*Tree)

// WithSource sets the random source used for unscored matches.
func WithSource(src Source) Option {
	return func(t *Tree) {
		t.src = src
	}
}

// WithSeed seeds the random source used for unscored matches.
func WithSeed(seed uint64) Option {
	return func(t *Tree) {
		t.src = NewSource(seed)
	}
}

// WithObserver registers an observer for randomized results.
func WithObserver(o Observer) Option {
	return func(t *Tree) {
		if o != nil {
			t.observers = append(t.observers, o)
		}
	}
}

// NextPowerOfTwo returns the smallest power of two >= n (1 for n <= 1).
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// New builds a bracket for the given entrants, in order.
//
// BYE slots are appended after the entrants until the slot count is a power of
// two. Match ids start at 1 and are assigned round by round, left to right.
// Returns an ErrInput error if entrants is empty or contains an empty or
// reserved identifier.
func New(entrants []string, opts ...Option) (*Tree, error) {
	if len(entrants) == 0 {
		return nil, inputError("entrant list is empty")
	}
	for i, e := range entrants {
		if e == "" {
			return nil, inputError("entrant %d has an empty identifier", i+1)
		}
		if e == Bye {
			return nil, inputError("entrant %d uses the reserved identifier %q", i+1, Bye)
		}
	}

	size := NextPowerOfTwo(len(entrants))
	t := &Tree{
		nodes:    make([]node, 0, 2*size-1),
		size:     size,
		entrants: len(entrants),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.src == nil {
		t.src = defaultSource()
	}

	layer := make([]int, 0, size)
	for i := 0; i < size; i++ {
		label := Bye
		if i < len(entrants) {
			label = entrants[i]
		}
		t.nodes = append(t.nodes, node{left: -1, right: -1, label: label})
		layer = append(layer, i)
	}

	matchID := 0
	for len(layer) > 1 {
		t.rounds++
		parents := make([]int, 0, len(layer)/2)
		for i := 0; i < len(layer); i += 2 {
			matchID++
			n := node{
				matchID: matchID,
				left:    layer[i],
				right:   layer[i+1],
				round:   t.rounds,
			}
			n.sides[0] = t.nodes[n.left].label
			n.sides[1] = t.nodes[n.right].label
			t.nodes = append(t.nodes, n)
			parents = append(parents, len(t.nodes)-1)
		}
		layer = parents
	}

	return t, nil
}

// root returns the index of the final, or of the single leaf when there is
// only one entrant.
func (t *Tree) root() int {
	return len(t.nodes) - 1
}

// index returns the arena index of a match, or -1 if it doesn't exist.
func (t *Tree) index(matchID int) int {
	if matchID < 1 || matchID > t.size-1 {
		return -1
	}
	return t.size + matchID - 1
}

// resolved returns the label a node contributes to its parent: the leaf
// entrant, the winner, BYE for a void match, or "" while undecided.
func (t *Tree) resolved(i int) string {
	n := &t.nodes[i]
	if n.isLeaf() {
		return n.label
	}
	if n.winner != "" {
		return n.winner
	}
	if n.sides[0] == Bye && n.sides[1] == Bye {
		return Bye
	}
	return ""
}

// Size returns the padded slot count.
func (t *Tree) Size() int {
	return t.size
}

// Rounds returns the number of rounds (0 for a single entrant).
func (t *Tree) Rounds() int {
	return t.rounds
}

// MatchCount returns the number of matches, size-1.
func (t *Tree) MatchCount() int {
	return t.size - 1
}

// Entrants returns the slot labels in bracket order, including byes.
func (t *Tree) Entrants() []string {
	out := make([]string, t.size)
	for i := 0; i < t.size; i++ {
		out[i] = t.nodes[i].label
	}
	return out
}

// Byes returns the number of BYE slots.
func (t *Tree) Byes() int {
	return t.size - t.entrants
}
