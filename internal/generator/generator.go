package generator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"lotomania/internal/lotto"
	"lotomania/internal/metrics"
	"lotomania/internal/stats"
)

// Batch is a finished set of games. It is only ever returned complete.
type Batch struct {
	ID         string                  `json:"id"`
	CreatedAt  time.Time               `json:"created_at"`
	Reference  int                     `json:"reference_contest"`
	Target     int                     `json:"target_contest,omitempty"`
	Strategy   Strategy                `json:"strategy"`
	Mirrored   bool                    `json:"mirrored"`
	Fixed      []string                `json:"fixed"`
	KeyNumbers []string                `json:"key_numbers"`
	Games      [][]string              `json:"games"`
	Fitness    []float64               `json:"fitness"`
	Seed       uint64                  `json:"seed"`
	Analysis   string                  `json:"analysis"`
	Profile    *stats.FrequencyProfile `json:"-"`
}

// Sets returns the games as number sets.
func (b *Batch) Sets() []lotto.Set {
	out := make([]lotto.Set, 0, len(b.Games))
	for _, g := range b.Games {
		nums, err := lotto.ParseAll(g)
		if err != nil {
			continue
		}
		out = append(out, lotto.SetOf(nums...))
	}
	return out
}

// Generator turns a configuration, a reference draw and a history corpus into a Batch.
// Runs are serialized: a second call waits until the first has returned.
type Generator struct {
	mu         sync.Mutex
	heuristics Heuristics
	seed       uint64
	now        func() time.Time
}

type Option func(*Generator)

// WithSeed fixes the default random seed. GameConfig.Seed still takes precedence.
func WithSeed(seed uint64) Option {
	return func(g *Generator) { g.seed = seed }
}

// WithClock overrides time.Now, used for batch timestamps and time-derived seeds.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func New(h Heuristics, opts ...Option) (*Generator, error) {
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("invalid heuristics: %w", err)
	}
	g := &Generator{heuristics: h, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Heuristics returns the active tuning.
func (g *Generator) Heuristics() Heuristics {
	return g.heuristics
}

// Generate builds exactly cfg.NumGames games. On error no batch is returned.
func (g *Generator) Generate(ctx context.Context, cfg GameConfig, reference lotto.Draw, history []lotto.Draw) (*Batch, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	start := time.Now()
	batch, strategy, err := g.generate(ctx, cfg, reference, history)

	best := 0.0
	if batch != nil {
		for i, f := range batch.Fitness {
			if i == 0 || f > best {
				best = f
			}
		}
	}
	metrics.RecordBatch(string(strategy), time.Since(start), best, err)

	if err != nil {
		log.Warn().Err(err).Str("strategy", string(cfg.Strategy)).Msg("Batch generation failed")
		return nil, err
	}
	log.Info().
		Str("batch", batch.ID).
		Str("strategy", string(batch.Strategy)).
		Int("games", len(batch.Games)).
		Int("contest", batch.Reference).
		Float64("fitness", best).
		Dur("elapsed", time.Since(start)).
		Msg("Batch generated")
	return batch, nil
}

// generate also returns the canonical strategy, empty when cfg was rejected.
func (g *Generator) generate(ctx context.Context, cfg GameConfig, reference lotto.Draw, history []lotto.Draw) (*Batch, Strategy, error) {
	cfg, err := cfg.Normalize(g.heuristics)
	if err != nil {
		return nil, "", err
	}
	if err := reference.Validate(); err != nil {
		return nil, cfg.Strategy, fmt.Errorf("reference draw: %w", err)
	}

	corpus := WithReference(reference, history)
	profile := stats.Analyze(corpus, g.heuristics.Tiers)
	fixed := FixedNumbers(profile, reference, cfg.FixedNumbers)
	strategy := g.heuristics.Profiles[cfg.Strategy]

	seed := cfg.Seed
	if seed == 0 {
		seed = g.seed
	}
	if seed == 0 {
		seed = uint64(g.now().UnixNano())
	}
	src := NewSource(seed)

	log.Debug().
		Int("draws", len(corpus)).
		Int("contest", reference.Contest).
		Ints("fixed", fixed).
		Uint64("seed", seed).
		Msg("Frequency profile ready")

	fixedSet := lotto.SetOf(fixed...)
	scorer := NewScorer(profile, reference.Set(), strategy, g.heuristics.Weights)
	engine := NewEngine(NewConstructor(profile, strategy), scorer, src, g.heuristics)

	games := make([]lotto.Set, 0, cfg.NumGames)
	fitness := make([]float64, 0, cfg.NumGames)
	for i := 0; i < cfg.BaseGames() && len(games) < cfg.NumGames; i++ {
		best, err := engine.Optimize(ctx, fixedSet)
		if err != nil {
			return nil, cfg.Strategy, err
		}
		games = append(games, best.Set)
		fitness = append(fitness, best.Fitness)

		if cfg.MirrorBet && len(games) < cfg.NumGames {
			m := best.Set.Mirror()
			games = append(games, m)
			fitness = append(fitness, scorer.Score(m))
		}
	}
	games, fitness = games[:cfg.NumGames], fitness[:cfg.NumGames]

	fixedText := lotto.FormatAll(fixed)
	keyText := lotto.FormatAll(profile.KeyNumbers)
	b := &Batch{
		ID:         uuid.NewString(),
		CreatedAt:  g.now(),
		Reference:  reference.Contest,
		Target:     cfg.TargetContest,
		Strategy:   cfg.Strategy,
		Mirrored:   cfg.MirrorBet,
		Fixed:      fixedText,
		KeyNumbers: keyText,
		Games:      make([][]string, len(games)),
		Fitness:    fitness,
		Seed:       seed,
		Analysis:   Narrative(cfg, fixedText, keyText),
		Profile:    profile,
	}
	for i, s := range games {
		b.Games[i] = s.Strings()
	}
	return b, cfg.Strategy, nil
}

// WithReference prepends the reference draw unless history already holds its contest.
func WithReference(reference lotto.Draw, history []lotto.Draw) []lotto.Draw {
	for _, d := range history {
		if reference.Contest != 0 && d.Contest == reference.Contest {
			return history
		}
	}
	out := make([]lotto.Draw, 0, len(history)+1)
	out = append(out, reference)
	return append(out, history...)
}

// FixedNumbers picks the k most frequent numbers of the reference draw. Ties
// keep the draw's own order.
func FixedNumbers(profile *stats.FrequencyProfile, reference lotto.Draw, k int) []int {
	ranked := profile.Rank(reference.Numbers)
	k = max(0, min(k, len(ranked)))
	return ranked[:k]
}
