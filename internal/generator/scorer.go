package generator

import (
	"math"

	"lotomania/internal/lotto"
	"lotomania/internal/stats"
)

// Breakdown is the per-term contribution to a fitness value.
type Breakdown struct {
	Parity      float64 `json:"parity"`
	Buckets     float64 `json:"buckets"`
	Overlap     float64 `json:"overlap"`
	Consecutive float64 `json:"consecutive"`
	Tiers       float64 `json:"tiers"`
	Total       float64 `json:"total"`

	Even      int `json:"even"`
	Shared    int `json:"shared"`
	Pairs     int `json:"pairs"`
	HotCount  int `json:"hot"`
	ColdCount int `json:"cold"`
}

// Scorer rates candidates. It holds no mutable state and never modifies its inputs.
type Scorer struct {
	reference lotto.Set
	hot       lotto.Set
	cold      lotto.Set
	profile   Profile
	w         Weights
}

func NewScorer(fp *stats.FrequencyProfile, reference lotto.Set, p Profile, w Weights) *Scorer {
	return &Scorer{
		reference: reference,
		hot:       fp.HotSet(),
		cold:      fp.ColdSet(),
		profile:   p,
		w:         w,
	}
}

// Score returns the fitness of c. Higher is better.
func (s *Scorer) Score(c lotto.Set) float64 {
	return s.Breakdown(c).Total
}

// Breakdown computes every term of the fitness.
func (s *Scorer) Breakdown(c lotto.Set) Breakdown {
	var b Breakdown
	var buckets [lotto.Universe / 10]int

	prev := -2
	c.Each(func(n int) {
		if n%2 == 0 {
			b.Even++
		}
		buckets[n/10]++
		if n == prev+1 {
			b.Pairs++
		}
		prev = n
	})

	half := lotto.GameSize / 2
	b.Parity = s.w.Parity * (10 - math.Abs(float64(b.Even-half)))

	ideal := lotto.GameSize / len(buckets)
	for _, count := range buckets {
		if count < 1 || count > s.w.BucketMax {
			b.Buckets -= s.w.Bucket * s.w.BucketPenalty
			continue
		}
		b.Buckets += s.w.Bucket * float64(ideal-absInt(count-ideal))
	}

	b.Shared = c.Intersect(s.reference).Len()
	d := float64(b.Shared - s.w.OverlapTarget)
	b.Overlap = -s.w.Overlap * d * d

	switch {
	case b.Pairs < s.w.ConsecutiveMin:
		b.Consecutive = -s.w.Consecutive * float64(s.w.ConsecutiveMin-b.Pairs)
	case b.Pairs > s.w.ConsecutiveMax:
		b.Consecutive = -s.w.Consecutive * float64(b.Pairs-s.w.ConsecutiveMax)
	}

	b.HotCount = c.Intersect(s.hot).Len()
	b.ColdCount = c.Intersect(s.cold).Len()
	b.Tiers = s.profile.HotWeight*float64(b.HotCount) - s.profile.ColdWeight*float64(b.ColdCount)
	if s.profile.HotCap > 0 && b.HotCount > s.profile.HotCap {
		b.Tiers -= s.w.CapPenalty * float64(b.HotCount-s.profile.HotCap)
	}

	b.Total = b.Parity + b.Buckets + b.Overlap + b.Consecutive + b.Tiers
	return b
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
