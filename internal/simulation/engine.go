package simulation

import (
	"lotomania/internal/generator"
	"lotomania/internal/lotto"
)

// Engine performs the Monte-Carlo baseline: uniformly random games against
// uniformly random draws.
type Engine struct {
	src generator.Source
}

// Result holds the hit distribution of a set of games.
type Result struct {
	Games       int            `json:"games"`
	Mean        float64        `json:"mean_hits"`
	P50         int            `json:"p50"`
	P85         int            `json:"p85"`
	P95         int            `json:"p95"`
	PayingShare float64        `json:"paying_share"`
	ByHits      map[string]int `json:"by_hits"`
}

func NewEngine(seed uint64) *Engine {
	return &Engine{src: generator.NewSource(seed)}
}

// Run performs the requested number of trials and returns the hit histogram.
func (e *Engine) Run(trials int) *Histogram {
	h := &Histogram{}
	perm := make([]int, lotto.Universe)
	for i := range perm {
		perm[i] = i
	}

	for i := 0; i < trials; i++ {
		game := e.sample(perm, lotto.GameSize)
		draw := e.sample(perm, lotto.DrawSize)
		h.Add(game.Intersect(draw).Len())
	}
	return h
}

func (e *Engine) sample(perm []int, k int) lotto.Set {
	e.src.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
	return lotto.SetOf(perm[:k]...)
}
