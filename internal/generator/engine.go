package generator

import (
	"cmp"
	"context"
	"slices"

	"lotomania/internal/lotto"
)

// Scored pairs a candidate with its fitness.
type Scored struct {
	Set     lotto.Set
	Fitness float64
}

// Engine runs the generational search for one base game at a time.
type Engine struct {
	constructor *Constructor
	scorer      *Scorer
	src         Source
	population  int
	generations int
	elite       int
}

func NewEngine(c *Constructor, s *Scorer, src Source, h Heuristics) *Engine {
	return &Engine{
		constructor: c,
		scorer:      s,
		src:         src,
		population:  max(h.Population, 1),
		generations: max(h.Generations, 0),
		elite:       h.EliteSize(),
	}
}

// Optimize evolves a population and returns the fittest candidate. Fixed
// numbers are present in every member. Cancellation is observed between
// generations.
func (e *Engine) Optimize(ctx context.Context, fixed lotto.Set) (Scored, error) {
	if err := ctx.Err(); err != nil {
		return Scored{}, err
	}

	pop := make([]Scored, e.population)
	for i := range pop {
		c := e.constructor.Build(e.src, fixed)
		pop[i] = Scored{Set: c, Fitness: e.scorer.Score(c)}
	}

	for g := 0; g < e.generations; g++ {
		if err := ctx.Err(); err != nil {
			return Scored{}, err
		}
		rank(pop)
		for i := e.elite; i < len(pop); i++ {
			parent := pop[e.src.IntN(e.elite)].Set
			child := Mutate(e.src, parent, fixed)
			pop[i] = Scored{Set: child, Fitness: e.scorer.Score(child)}
		}
	}

	rank(pop)
	return pop[0], nil
}

// rank sorts by fitness descending; equal fitness keeps arena order.
func rank(pop []Scored) {
	slices.SortStableFunc(pop, func(a, b Scored) int {
		return cmp.Compare(b.Fitness, a.Fitness)
	})
}

// Mutate swaps one non-fixed member of c for a number outside it. When every
// member is fixed, or nothing lies outside, c is returned unchanged.
func Mutate(src Source, c lotto.Set, fixed lotto.Set) lotto.Set {
	removable := c.Without(fixed)
	outside := c.Complement()
	if removable.Len() == 0 || outside.Len() == 0 {
		return c
	}
	c.Remove(pickFrom(src, removable))
	c.Add(pickFrom(src, outside))
	return c
}
