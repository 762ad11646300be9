package generator

import (
	"context"
	"errors"
	"testing"

	"lotomania/internal/lotto"
)

func newTestEngine(t *testing.T, h Heuristics, seed uint64) *Engine {
	t.Helper()
	profile := testProfile(t)
	strategy := h.Profiles[StrategyBalanced]
	return NewEngine(
		NewConstructor(profile, strategy),
		NewScorer(profile, referenceDraw().Set(), strategy, h.Weights),
		NewSource(seed),
		h,
	)
}

func TestEngine_Optimize(t *testing.T) {
	fixed := lotto.SetOf(referenceNumbers[:5]...)

	tests := []struct {
		name        string
		generations int
	}{
		{"BestOfPopulation", 0},
		{"Generational", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := fastHeuristics()
			h.Generations = tt.generations
			e := newTestEngine(t, h, 21)

			best, err := e.Optimize(context.Background(), fixed)
			if err != nil {
				t.Fatalf("Optimize() error = %v", err)
			}
			if best.Set.Len() != lotto.GameSize {
				t.Errorf("best size = %d", best.Set.Len())
			}
			if best.Set.Intersect(fixed) != fixed {
				t.Error("best lost fixed numbers")
			}
			if got := e.scorer.Score(best.Set); got != best.Fitness {
				t.Errorf("reported fitness %v, rescored %v", best.Fitness, got)
			}
		})
	}
}

func TestEngine_ElitismNeverLosesBest(t *testing.T) {
	// Same seed, so the initial population is identical; extra generations
	// can only keep or improve the elite.
	h := fastHeuristics()
	h.Generations = 0
	base, err := newTestEngine(t, h, 8).Optimize(context.Background(), lotto.Set{})
	if err != nil {
		t.Fatal(err)
	}

	h.Generations = 25
	evolved, err := newTestEngine(t, h, 8).Optimize(context.Background(), lotto.Set{})
	if err != nil {
		t.Fatal(err)
	}
	if evolved.Fitness < base.Fitness {
		t.Errorf("evolved fitness %v below initial best %v", evolved.Fitness, base.Fitness)
	}
}

func TestEngine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine(t, fastHeuristics(), 1).Optimize(ctx, lotto.Set{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Optimize() error = %v, want context.Canceled", err)
	}
}
