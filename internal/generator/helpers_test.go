package generator

import (
	"testing"

	"lotomania/internal/lotto"
	"lotomania/internal/stats"
)

var referenceNumbers = []int{3, 8, 12, 17, 21, 25, 33, 38, 42, 47, 51, 56, 60, 64, 71, 77, 82, 88, 93, 99}

func referenceDraw() lotto.Draw {
	return lotto.Draw{Contest: 2700, Date: "14/10/2026", Numbers: referenceNumbers}
}

// syntheticHistory returns n reproducible draws, most recent first.
func syntheticHistory(n int, seed uint64) []lotto.Draw {
	src := NewSource(seed)
	all := lotto.Set{}.Complement()
	out := make([]lotto.Draw, n)
	for i := range out {
		var s lotto.Set
		drawInto(src, &s, all, lotto.DrawSize)
		out[i] = lotto.Draw{Contest: 2699 - i, Numbers: s.Numbers()}
	}
	return out
}

func fastHeuristics() Heuristics {
	h := DefaultHeuristics()
	h.Population = 12
	h.Generations = 4
	return h
}

func newTestGenerator(t *testing.T, seed uint64) *Generator {
	t.Helper()
	g, err := New(fastHeuristics(), WithSeed(seed))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func assertValidGame(t *testing.T, game []string) lotto.Set {
	t.Helper()
	if len(game) != lotto.GameSize {
		t.Fatalf("game has %d numbers, want %d", len(game), lotto.GameSize)
	}
	nums, err := lotto.ParseAll(game)
	if err != nil {
		t.Fatalf("game holds invalid number: %v", err)
	}
	set := lotto.SetOf(nums...)
	if set.Len() != lotto.GameSize {
		t.Fatalf("game holds duplicates: %v", game)
	}
	for _, g := range game {
		if len(g) != 2 {
			t.Fatalf("number %q is not zero-padded", g)
		}
	}
	return set
}

func testProfile(t *testing.T) *stats.FrequencyProfile {
	t.Helper()
	return stats.Analyze(WithReference(referenceDraw(), syntheticHistory(50, 7)), stats.DefaultTierOptions())
}
