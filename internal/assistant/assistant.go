// Package assistant ties the generator, the checker and the draw sources into
// the operations exposed by the CLI, the MCP server and the HTTP API.
package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"lotomania/internal/checker"
	"lotomania/internal/generator"
	"lotomania/internal/history"
	"lotomania/internal/lotto"
	"lotomania/internal/simulation"
	"lotomania/internal/stats"
)

// SyntheticDraws is the size of the stand-in corpus used while no history exists.
const SyntheticDraws = 50

// ErrNoGames is returned when a check request contains no valid game.
var ErrNoGames = errors.New("no valid games found in input")

// Results is the draw lookup the assistant depends on. results.Service satisfies it.
type Results interface {
	Latest(ctx context.Context) (lotto.Draw, error)
	Refresh(ctx context.Context) (lotto.Draw, error)
	ByContest(ctx context.Context, contest int) (lotto.Draw, error)
}

// Assistant is safe for concurrent use.
type Assistant struct {
	gen      *generator.Generator
	results  Results
	history  history.Store
	gameCost float64
}

// New wires the assistant. gameCost <= 0 falls back to checker.DefaultGameCost.
func New(gen *generator.Generator, res Results, hist history.Store, gameCost float64) *Assistant {
	if gameCost <= 0 {
		gameCost = checker.DefaultGameCost
	}
	return &Assistant{gen: gen, results: res, history: hist, gameCost: gameCost}
}

// Heuristics exposes the generator tunables.
func (a *Assistant) Heuristics() generator.Heuristics { return a.gen.Heuristics() }

// Corpus returns the stored history, or a synthetic one when nothing was collected yet.
func (a *Assistant) Corpus(ctx context.Context) ([]lotto.Draw, error) {
	draws, err := a.history.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if len(draws) == 0 {
		log.Warn().Int("draws", SyntheticDraws).Msg("History is empty, analysing a synthetic corpus")
		return history.Synthetic(SyntheticDraws, 1), nil
	}
	return draws, nil
}

// Reference resolves the draw games are built against. Contest 0 means the
// latest one. When the source fails, the most recent stored draw is used.
func (a *Assistant) Reference(ctx context.Context, contest int) (lotto.Draw, error) {
	var (
		d   lotto.Draw
		err error
	)
	if contest > 0 {
		d, err = a.results.ByContest(ctx, contest)
	} else {
		d, err = a.results.Latest(ctx)
	}
	if err == nil {
		return d, nil
	}
	if ctx.Err() != nil {
		return lotto.Draw{}, ctx.Err()
	}

	corpus, cerr := a.history.All(ctx)
	if cerr != nil || len(corpus) == 0 {
		return lotto.Draw{}, fmt.Errorf("resolve reference contest: %w", err)
	}
	if contest > 0 {
		for _, h := range corpus {
			if h.Contest == contest {
				h.Partial = true
				return h, nil
			}
		}
		return lotto.Draw{}, fmt.Errorf("resolve reference contest %d: %w", contest, err)
	}
	log.Warn().Err(err).Int("contest", corpus[0].Contest).Msg("Draw source unavailable, using most recent stored draw")
	ref := corpus[0]
	ref.Partial = true
	return ref, nil
}

// Generate builds a batch against the reference contest (0 = latest).
func (a *Assistant) Generate(ctx context.Context, cfg generator.GameConfig, referenceContest int) (*generator.Batch, error) {
	if _, err := cfg.Normalize(a.gen.Heuristics()); err != nil {
		return nil, err
	}
	ref, err := a.Reference(ctx, referenceContest)
	if err != nil {
		return nil, err
	}
	corpus, err := a.Corpus(ctx)
	if err != nil {
		return nil, err
	}
	return a.gen.Generate(ctx, cfg, ref, corpus)
}

// Check parses free-form games and checks them against one contest (0 = latest).
func (a *Assistant) Check(ctx context.Context, text string, contest int) (*checker.ContestReport, error) {
	games := checker.ParseGames(text)
	if len(games) == 0 {
		return nil, ErrNoGames
	}

	var (
		d   lotto.Draw
		err error
	)
	if contest > 0 {
		d, err = a.results.ByContest(ctx, contest)
	} else {
		d, err = a.results.Latest(ctx)
	}
	if err != nil {
		return nil, err
	}

	res := checker.Check(games, d)
	return &checker.ContestReport{
		Contest: d.Contest,
		Date:    d.Date,
		Partial: d.Partial,
		Results: res,
		Summary: checker.Summarize(res, a.gameCost),
	}, nil
}

// CheckRange checks free-form games against every contest in [from, to].
func (a *Assistant) CheckRange(ctx context.Context, text string, from, to int) (*checker.RangeReport, error) {
	games := checker.ParseGames(text)
	if len(games) == 0 {
		return nil, ErrNoGames
	}
	return checker.CheckRange(ctx, games, from, to, a.results, a.gameCost)
}

// Result returns one draw (0 = latest).
func (a *Assistant) Result(ctx context.Context, contest int) (lotto.Draw, error) {
	if contest > 0 {
		return a.results.ByContest(ctx, contest)
	}
	return a.results.Latest(ctx)
}

// Analyze profiles the most recent window draws of the corpus (0 = all of it).
func (a *Assistant) Analyze(ctx context.Context, window int) (*stats.FrequencyProfile, error) {
	corpus, err := a.Corpus(ctx)
	if err != nil {
		return nil, err
	}
	if window > 0 && window < len(corpus) {
		corpus = corpus[:window]
	}
	return stats.Analyze(corpus, a.gen.Heuristics().Tiers), nil
}

// Refresh fetches the latest result past the cache and records it in history.
func (a *Assistant) Refresh(ctx context.Context) (lotto.Draw, error) {
	d, err := a.results.Refresh(ctx)
	if err != nil {
		return lotto.Draw{}, err
	}
	added, err := a.history.Append(ctx, d)
	if err != nil {
		return d, fmt.Errorf("append contest %d to history: %w", d.Contest, err)
	}
	log.Info().Int("contest", d.Contest).Bool("new", added > 0).Msg("Latest result refreshed")
	return d, nil
}

// Backtest replays recent contests of the corpus, generating each batch only
// from the draws that preceded it, and compares the hits to random games.
func (a *Assistant) Backtest(ctx context.Context, cfg simulation.WalkForwardConfig) (simulation.WalkForwardResult, error) {
	if _, err := cfg.Game.Normalize(a.gen.Heuristics()); err != nil {
		return simulation.WalkForwardResult{}, err
	}
	corpus, err := a.Corpus(ctx)
	if err != nil {
		return simulation.WalkForwardResult{}, err
	}
	return simulation.NewWalkForwardEngine(a.gen, corpus).Execute(ctx, cfg)
}
