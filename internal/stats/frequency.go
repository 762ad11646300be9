package stats

import (
	"cmp"
	"slices"

	"lotomania/internal/lotto"
)

// Tier is a frequency band of the number universe.
type Tier int

const (
	TierWarm Tier = iota
	TierHot
	TierCold
)

func (t Tier) String() string {
	switch t {
	case TierHot:
		return "hot"
	case TierCold:
		return "cold"
	default:
		return "warm"
	}
}

// TierOptions controls how the universe is partitioned and how key numbers are picked.
type TierOptions struct {
	HotSize      int `yaml:"hot_size" json:"hot_size"`
	ColdSize     int `yaml:"cold_size" json:"cold_size"`
	KeyWindow    int `yaml:"key_window" json:"key_window"`       // most recent draws inspected
	KeyThreshold int `yaml:"key_threshold" json:"key_threshold"` // occurrences inside the window
	KeyMin       int `yaml:"key_min" json:"key_min"`             // backfilled from Hot up to this size
	KeyMax       int `yaml:"key_max" json:"key_max"`
}

// DefaultTierOptions is the 20/60/20 split with a five-draw key window.
func DefaultTierOptions() TierOptions {
	return TierOptions{
		HotSize:      20,
		ColdSize:     20,
		KeyWindow:    5,
		KeyThreshold: 3,
		KeyMin:       12,
		KeyMax:       20,
	}
}

func (o TierOptions) normalized() TierOptions {
	o.HotSize = clamp(o.HotSize, 0, lotto.Universe)
	o.ColdSize = clamp(o.ColdSize, 0, lotto.Universe-o.HotSize)
	o.KeyWindow = max(o.KeyWindow, 0)
	o.KeyMax = clamp(o.KeyMax, 0, lotto.Universe)
	o.KeyMin = clamp(o.KeyMin, 0, o.KeyMax)
	return o
}

// FrequencyProfile is the read-only result of analysing a history corpus.
type FrequencyProfile struct {
	Draws      int                  `json:"draws"`
	Counts     [lotto.Universe]int  `json:"counts"`
	Ranking    [lotto.Universe]int  `json:"ranking"` // numbers by count descending, ties by number
	Tiers      [lotto.Universe]Tier `json:"-"`
	Hot        []int                `json:"hot"`
	Warm       []int                `json:"warm"`
	Cold       []int                `json:"cold"`
	KeyNumbers []int                `json:"key_numbers"`
}

// Analyze counts every number across the corpus (most recent draw first) and
// partitions the universe into tiers. It is deterministic for a given input.
func Analyze(history []lotto.Draw, opts TierOptions) *FrequencyProfile {
	opts = opts.normalized()
	p := &FrequencyProfile{Draws: len(history)}

	for _, d := range history {
		for _, n := range d.Numbers {
			if lotto.InRange(n) {
				p.Counts[n]++
			}
		}
	}

	for i := range p.Ranking {
		p.Ranking[i] = i
	}
	slices.SortStableFunc(p.Ranking[:], func(a, b int) int {
		return cmp.Compare(p.Counts[b], p.Counts[a])
	})

	p.Hot = slices.Clone(p.Ranking[:opts.HotSize])
	p.Warm = slices.Clone(p.Ranking[opts.HotSize : lotto.Universe-opts.ColdSize])
	p.Cold = slices.Clone(p.Ranking[lotto.Universe-opts.ColdSize:])
	for _, n := range p.Hot {
		p.Tiers[n] = TierHot
	}
	for _, n := range p.Cold {
		p.Tiers[n] = TierCold
	}

	p.KeyNumbers = keyNumbers(history, p.Hot, opts)
	return p
}

// keyNumbers picks numbers that recur inside the recent window, then tops the
// list up from the hot tier.
func keyNumbers(history []lotto.Draw, hot []int, opts TierOptions) []int {
	window := history[:min(opts.KeyWindow, len(history))]

	var recent [lotto.Universe]int
	for _, d := range window {
		for _, n := range d.Numbers {
			if lotto.InRange(n) {
				recent[n]++
			}
		}
	}

	var picked lotto.Set
	keys := make([]int, 0, opts.KeyMax)
	for n := 0; n < lotto.Universe; n++ {
		if opts.KeyThreshold > 0 && recent[n] >= opts.KeyThreshold {
			keys = append(keys, n)
		}
	}
	slices.SortStableFunc(keys, func(a, b int) int {
		return cmp.Compare(recent[b], recent[a])
	})
	if len(keys) > opts.KeyMax {
		keys = keys[:opts.KeyMax]
	}
	for _, n := range keys {
		picked.Add(n)
	}

	for _, n := range hot {
		if len(keys) >= opts.KeyMin {
			break
		}
		if picked.Add(n) {
			keys = append(keys, n)
		}
	}
	return keys
}

// Count returns how often n was drawn.
func (p *FrequencyProfile) Count(n int) int {
	if !lotto.InRange(n) {
		return 0
	}
	return p.Counts[n]
}

// TierOf returns the tier n belongs to.
func (p *FrequencyProfile) TierOf(n int) Tier {
	if !lotto.InRange(n) {
		return TierWarm
	}
	return p.Tiers[n]
}

// Rank orders a subset of numbers by count descending. Ties keep input order.
func (p *FrequencyProfile) Rank(nums []int) []int {
	out := slices.Clone(nums)
	slices.SortStableFunc(out, func(a, b int) int {
		return cmp.Compare(p.Count(b), p.Count(a))
	})
	return out
}

// HotSet, WarmSet and ColdSet expose the tiers as sets.
func (p *FrequencyProfile) HotSet() lotto.Set  { return lotto.SetOf(p.Hot...) }
func (p *FrequencyProfile) WarmSet() lotto.Set { return lotto.SetOf(p.Warm...) }
func (p *FrequencyProfile) ColdSet() lotto.Set { return lotto.SetOf(p.Cold...) }

// KeySet returns the key numbers as a set.
func (p *FrequencyProfile) KeySet() lotto.Set { return lotto.SetOf(p.KeyNumbers...) }

// Summary condenses the count distribution.
type Summary struct {
	Draws       int      `json:"draws"`
	MeanCount   float64  `json:"mean_count"`
	MedianCount float64  `json:"median_count"`
	StdDev      float64  `json:"std_dev"`
	Hot         []string `json:"hot"`
	Warm        []string `json:"warm"`
	Cold        []string `json:"cold"`
	KeyNumbers  []string `json:"key_numbers"`
}

// Summarize renders the profile for narratives, tools and charts.
func (p *FrequencyProfile) Summarize() Summary {
	counts := p.Counts[:]
	return Summary{
		Draws:       p.Draws,
		MeanCount:   Mean(counts),
		MedianCount: Median(counts),
		StdDev:      StdDev(counts),
		Hot:         lotto.FormatAll(p.Hot),
		Warm:        lotto.FormatAll(p.Warm),
		Cold:        lotto.FormatAll(p.Cold),
		KeyNumbers:  lotto.FormatAll(p.KeyNumbers),
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
