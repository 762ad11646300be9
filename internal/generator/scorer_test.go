package generator

import (
	"math"
	"testing"

	"lotomania/internal/lotto"
	"lotomania/internal/stats"
)

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, n)
	}
	return out
}

// fixedTierProfile puts 0..19 in Hot and 60..79 in Cold.
func fixedTierProfile() *stats.FrequencyProfile {
	p := &stats.FrequencyProfile{Hot: seq(0, 19), Cold: seq(60, 79)}
	p.Warm = append(seq(20, 59), seq(80, 99)...)
	return p
}

// balancedCandidate has 25 even numbers and 5 numbers in every decade.
func balancedCandidate() lotto.Set {
	var s lotto.Set
	for d := 0; d < 10; d++ {
		start := d * 10
		if d%2 == 1 {
			start += 5
		}
		for n := start; n < start+5; n++ {
			s.Add(n)
		}
	}
	return s
}

func TestScorer_BalanceBeatsEmptyBucket(t *testing.T) {
	reference := lotto.SetOf(append(seq(5, 14), seq(25, 34)...)...)
	for _, st := range Strategies {
		t.Run(string(st), func(t *testing.T) {
			s := NewScorer(fixedTierProfile(), reference, DefaultProfiles()[st], DefaultHeuristics().Weights)

			a := balancedCandidate()
			b := a.Without(lotto.SetOf(seq(95, 99)...)).Union(lotto.SetOf(seq(45, 49)...))
			if b.Len() != lotto.GameSize {
				t.Fatalf("setup: b has %d numbers", b.Len())
			}

			ba, bb := s.Breakdown(a), s.Breakdown(b)
			if ba.Even != 25 || bb.Even != 25 {
				t.Fatalf("setup: parity %d/%d, want 25/25", ba.Even, bb.Even)
			}
			if ba.Shared != bb.Shared || ba.Tiers != bb.Tiers {
				t.Fatalf("setup: candidates differ outside buckets: %+v vs %+v", ba, bb)
			}
			if ba.Buckets != 50 {
				t.Errorf("balanced buckets = %v, want 50", ba.Buckets)
			}
			if ba.Total < bb.Total {
				t.Errorf("balanced candidate scored %v, below %v", ba.Total, bb.Total)
			}
		})
	}
}

func TestScorer_Terms(t *testing.T) {
	w := DefaultHeuristics().Weights
	profile := fixedTierProfile()
	a := balancedCandidate()

	t.Run("Parity", func(t *testing.T) {
		s := NewScorer(profile, lotto.Set{}, Profile{}, w)
		if got := s.Breakdown(a).Parity; got != 10 {
			t.Errorf("perfect parity = %v, want 10", got)
		}
		allEven := lotto.Set{}
		for n := 0; n < lotto.Universe; n += 2 {
			allEven.Add(n)
		}
		if got := s.Breakdown(allEven).Parity; got != -15 {
			t.Errorf("all even parity = %v, want -15", got)
		}
	})

	t.Run("OverlapSweetSpot", func(t *testing.T) {
		tests := []struct {
			shared int
			want   float64
		}{
			{0, -9}, {3, 0}, {4, -1}, {5, -4},
		}
		members := a.Numbers()
		for _, tt := range tests {
			ref := lotto.SetOf(members[:tt.shared]...)
			s := NewScorer(profile, ref, Profile{}, w)
			if got := s.Breakdown(a).Overlap; got != tt.want {
				t.Errorf("overlap %d scored %v, want %v", tt.shared, got, tt.want)
			}
		}
	})

	t.Run("ConsecutiveBand", func(t *testing.T) {
		s := NewScorer(profile, lotto.Set{}, Profile{}, w)
		b := s.Breakdown(a)
		if b.Pairs != 44 {
			t.Fatalf("pairs = %d, want 44", b.Pairs)
		}
		if b.Consecutive != -19.5 {
			t.Errorf("consecutive = %v, want -19.5", b.Consecutive)
		}

		// Every other number: no adjacent pairs at all.
		var spread lotto.Set
		for n := 1; n < lotto.Universe; n += 2 {
			spread.Add(n)
		}
		if got := s.Breakdown(spread).Consecutive; got != -1 {
			t.Errorf("no pairs scored %v, want -1", got)
		}
	})

	t.Run("HotCap", func(t *testing.T) {
		// 10 hot and 10 cold members.
		capped := NewScorer(profile, lotto.Set{}, Profile{HotWeight: 1, ColdWeight: 1, HotCap: 6}, w)
		open := NewScorer(profile, lotto.Set{}, Profile{HotWeight: 1, ColdWeight: 1}, w)
		if got := open.Breakdown(a).Tiers; got != 0 {
			t.Errorf("uncapped tiers = %v, want 0", got)
		}
		if got := capped.Breakdown(a).Tiers; got != -8 {
			t.Errorf("capped tiers = %v, want -8", got)
		}
	})
}

func TestScorer_Pure(t *testing.T) {
	s := NewScorer(testProfile(t), referenceDraw().Set(), DefaultProfiles()[StrategyBalanced], DefaultHeuristics().Weights)
	c := NewConstructor(testProfile(t), DefaultProfiles()[StrategyBalanced]).Build(NewSource(1), lotto.Set{})
	first := s.Score(c)
	for i := 0; i < 5; i++ {
		if got := s.Score(c); math.Abs(got-first) > 0 {
			t.Fatalf("score changed between calls: %v then %v", first, got)
		}
	}
	b := s.Breakdown(c)
	if sum := b.Parity + b.Buckets + b.Overlap + b.Consecutive + b.Tiers; math.Abs(sum-b.Total) > 1e-9 {
		t.Errorf("terms sum to %v, total is %v", sum, b.Total)
	}
}
