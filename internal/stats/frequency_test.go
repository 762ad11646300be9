package stats

import (
	"slices"
	"testing"

	"lotomania/internal/lotto"
)

func draw(contest int, nums ...int) lotto.Draw {
	return lotto.Draw{Contest: contest, Numbers: nums}
}

func rangeDraw(contest, start int) lotto.Draw {
	nums := make([]int, lotto.DrawSize)
	for i := range nums {
		nums[i] = (start + i) % lotto.Universe
	}
	return draw(contest, nums...)
}

func TestAnalyze_CountsAndRanking(t *testing.T) {
	history := []lotto.Draw{
		rangeDraw(3, 0),  // 0..19
		rangeDraw(2, 10), // 10..29
		rangeDraw(1, 15), // 15..34
	}
	p := Analyze(history, DefaultTierOptions())

	if p.Draws != 3 {
		t.Errorf("Draws = %d, want 3", p.Draws)
	}
	tests := []struct {
		n, want int
	}{
		{0, 1}, {10, 2}, {15, 3}, {19, 3}, {20, 2}, {34, 1}, {35, 0}, {99, 0},
	}
	for _, tt := range tests {
		if got := p.Count(tt.n); got != tt.want {
			t.Errorf("Count(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}

	// 15..19 drawn three times lead the ranking in ascending order.
	if got := p.Ranking[:5]; !slices.Equal(got, []int{15, 16, 17, 18, 19}) {
		t.Errorf("Ranking head = %v", got)
	}
	// Never-drawn numbers tail the ranking, ties by ascending number.
	if got := p.Ranking[lotto.Universe-1]; got != 99 {
		t.Errorf("Ranking tail = %d, want 99", got)
	}
}

func TestAnalyze_TiersPartitionUniverse(t *testing.T) {
	history := []lotto.Draw{rangeDraw(2, 40), rangeDraw(1, 50)}
	p := Analyze(history, DefaultTierOptions())

	if len(p.Hot) != 20 || len(p.Warm) != 60 || len(p.Cold) != 20 {
		t.Fatalf("tier sizes = %d/%d/%d, want 20/60/20", len(p.Hot), len(p.Warm), len(p.Cold))
	}

	seen := make(map[int]int)
	for _, tier := range [][]int{p.Hot, p.Warm, p.Cold} {
		for _, n := range tier {
			seen[n]++
		}
	}
	if len(seen) != lotto.Universe {
		t.Fatalf("tiers cover %d numbers, want %d", len(seen), lotto.Universe)
	}
	for n, c := range seen {
		if c != 1 {
			t.Errorf("number %d appears in %d tiers", n, c)
		}
	}

	for _, n := range p.Hot {
		if p.TierOf(n) != TierHot {
			t.Errorf("TierOf(%d) = %v, want hot", n, p.TierOf(n))
		}
	}
	for _, n := range p.Cold {
		if p.TierOf(n) != TierCold {
			t.Errorf("TierOf(%d) = %v, want cold", n, p.TierOf(n))
		}
	}
	if p.HotSet().Intersect(p.ColdSet()).Len() != 0 {
		t.Error("hot and cold overlap")
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	var history []lotto.Draw
	for i := 0; i < 30; i++ {
		history = append(history, rangeDraw(100-i, (i*7)%lotto.Universe))
	}

	a := Analyze(history, DefaultTierOptions())
	b := Analyze(history, DefaultTierOptions())

	if a.Counts != b.Counts {
		t.Error("counts differ between runs")
	}
	if !slices.Equal(a.Hot, b.Hot) || !slices.Equal(a.Warm, b.Warm) || !slices.Equal(a.Cold, b.Cold) {
		t.Error("tiers differ between runs")
	}
	if !slices.Equal(a.KeyNumbers, b.KeyNumbers) {
		t.Error("key numbers differ between runs")
	}
}

func TestAnalyze_KeyNumbers(t *testing.T) {
	t.Run("RecurringNumbersBackfilledFromHot", func(t *testing.T) {
		// 0..4 appear in all five recent draws; the rest of each draw rotates.
		var history []lotto.Draw
		for i := 0; i < 5; i++ {
			nums := []int{0, 1, 2, 3, 4}
			for j := 0; j < 15; j++ {
				nums = append(nums, 20+i*15+j)
			}
			history = append(history, draw(10-i, nums...))
		}
		p := Analyze(history, DefaultTierOptions())

		if len(p.KeyNumbers) != 12 {
			t.Fatalf("len(KeyNumbers) = %d, want 12", len(p.KeyNumbers))
		}
		if !slices.Equal(p.KeyNumbers[:5], []int{0, 1, 2, 3, 4}) {
			t.Errorf("recurring head = %v", p.KeyNumbers[:5])
		}
		keys := p.KeySet()
		if keys.Len() != len(p.KeyNumbers) {
			t.Error("key numbers contain duplicates")
		}
		hot := p.HotSet()
		for _, n := range p.KeyNumbers[5:] {
			if !hot.Has(n) {
				t.Errorf("backfilled key %d is not hot", n)
			}
		}
	})

	t.Run("OnlyRecentWindowCounts", func(t *testing.T) {
		// 80..99 recur three times but only outside the five-draw window.
		history := []lotto.Draw{
			rangeDraw(20, 0), rangeDraw(19, 0), rangeDraw(18, 0),
			rangeDraw(17, 20), rangeDraw(16, 40),
			rangeDraw(15, 80), rangeDraw(14, 80), rangeDraw(13, 80),
		}
		p := Analyze(history, DefaultTierOptions())
		if len(p.KeyNumbers) != 20 {
			t.Fatalf("len(KeyNumbers) = %d, want 20", len(p.KeyNumbers))
		}
		for _, n := range p.KeyNumbers {
			if n >= 20 {
				t.Errorf("key %d did not recur inside the window", n)
			}
		}
	})

	t.Run("CappedAtMax", func(t *testing.T) {
		opts := DefaultTierOptions()
		opts.KeyMax = 4
		opts.KeyMin = 10
		var history []lotto.Draw
		for i := 0; i < 5; i++ {
			history = append(history, rangeDraw(5-i, 0))
		}
		p := Analyze(history, opts)
		if len(p.KeyNumbers) != 4 {
			t.Errorf("len(KeyNumbers) = %d, want 4", len(p.KeyNumbers))
		}
	})

	t.Run("EmptyHistory", func(t *testing.T) {
		p := Analyze(nil, DefaultTierOptions())
		if p.Draws != 0 {
			t.Errorf("Draws = %d", p.Draws)
		}
		if !slices.Equal(p.KeyNumbers, p.Hot[:12]) {
			t.Errorf("KeyNumbers = %v, want first twelve hot", p.KeyNumbers)
		}
	})
}

func TestAnalyze_CustomSplit(t *testing.T) {
	opts := DefaultTierOptions()
	opts.HotSize, opts.ColdSize = 30, 30
	p := Analyze([]lotto.Draw{rangeDraw(1, 0)}, opts)
	if len(p.Hot) != 30 || len(p.Warm) != 40 || len(p.Cold) != 30 {
		t.Errorf("tier sizes = %d/%d/%d, want 30/40/30", len(p.Hot), len(p.Warm), len(p.Cold))
	}
}

func TestFrequencyProfile_Rank(t *testing.T) {
	p := Analyze([]lotto.Draw{rangeDraw(2, 0), rangeDraw(1, 10)}, DefaultTierOptions())
	got := p.Rank([]int{50, 5, 12, 3})
	want := []int{12, 5, 3, 50}
	if !slices.Equal(got, want) {
		t.Errorf("Rank() = %v, want %v", got, want)
	}
}

func TestFrequencyProfile_Summarize(t *testing.T) {
	p := Analyze([]lotto.Draw{rangeDraw(1, 0)}, DefaultTierOptions())
	s := p.Summarize()
	if s.MeanCount != 0.2 {
		t.Errorf("MeanCount = %v, want 0.2", s.MeanCount)
	}
	if s.Hot[0] != "00" || len(s.Cold) != 20 {
		t.Errorf("unexpected summary: %+v", s)
	}
}
