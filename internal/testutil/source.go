package testutil

import (
	"fmt"
	"sync"
)

// ScriptedSource replays a fixed list of values as random draws.
//
// Use it to force specific scores for randomized matches, e.g. a tie:
//
//	src := testutil.NewScriptedSource(7, 7)
//	tree, _ := bracket.New(players, bracket.WithSource(src))
//
// IntN panics if the script is exhausted or a value is out of range, which
// surfaces a test that draws more often than it expects.
type ScriptedSource struct {
	mu     sync.Mutex
	values []int
	idx    int
}

// NewScriptedSource creates a source that returns values in order.
func NewScriptedSource(values ...int) *ScriptedSource {
	return &ScriptedSource{values: values}
}

// IntN returns the next scripted value.
func (s *ScriptedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.idx >= len(s.values) {
		panic("ScriptedSource: all values consumed")
	}
	v := s.values[s.idx]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("ScriptedSource: value %d out of range [0,%d)", v, n))
	}
	s.idx++
	return v
}

// Remaining returns how many values have not been drawn yet.
func (s *ScriptedSource) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values) - s.idx
}
