package generator

import (
	"math/rand/v2"

	"lotomania/internal/lotto"
)

// Source is the randomness used by construction and mutation.
// *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewSource returns a PCG-backed source. Equal seeds yield equal streams.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// drawInto adds up to k numbers chosen uniformly without replacement from
// pool minus what dst already holds. It returns how many were added.
func drawInto(src Source, dst *lotto.Set, pool lotto.Set, k int) int {
	avail := pool.Without(*dst).Numbers()
	k = min(k, len(avail))
	for i := 0; i < k; i++ {
		j := i + src.IntN(len(avail)-i)
		avail[i], avail[j] = avail[j], avail[i]
		dst.Add(avail[i])
	}
	return max(k, 0)
}

// pickFrom returns a uniformly chosen member of s, or -1 when s is empty.
func pickFrom(src Source, s lotto.Set) int {
	n := s.Len()
	if n == 0 {
		return -1
	}
	return s.Nth(src.IntN(n))
}
