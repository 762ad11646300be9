package history

import (
	"context"
	"math/rand/v2"
	"slices"

	"lotomania/internal/lotto"
)

// Store is the append-only corpus of past draws.
type Store interface {
	// All returns every draw, most recent contest first.
	All(ctx context.Context) ([]lotto.Draw, error)
	// Append adds draws whose contest is not stored yet and reports how many were new.
	Append(ctx context.Context, draws ...lotto.Draw) (int, error)
	Get(ctx context.Context, contest int) (lotto.Draw, bool, error)
}

// Synthetic returns n random but reproducible draws numbered n..1, most recent first.
// It stands in for real history when nothing has been collected yet.
func Synthetic(n int, seed uint64) []lotto.Draw {
	r := rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
	out := make([]lotto.Draw, 0, max(n, 0))
	for i := n; i >= 1; i-- {
		nums := r.Perm(lotto.Universe)[:lotto.DrawSize]
		slices.Sort(nums)
		out = append(out, lotto.Draw{Contest: i, Numbers: nums})
	}
	return out
}

func sortRecentFirst(draws []lotto.Draw) {
	slices.SortFunc(draws, func(a, b lotto.Draw) int { return b.Contest - a.Contest })
}
