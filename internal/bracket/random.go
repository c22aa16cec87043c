package bracket

import (
	"math/rand/v2"
	"time"
)

// MaxScore is the highest score a randomized match can draw. Scores are drawn
// uniformly from [0, MaxScore].
const MaxScore = 15

// Source supplies randomness for unscored matches. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a PCG-backed source for the given seed. Two sources with
// the same seed produce the same scores.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func defaultSource() Source {
	return NewSource(uint64(time.Now().UnixNano()))
}

func drawScore(src Source) int {
	return src.IntN(MaxScore + 1)
}
