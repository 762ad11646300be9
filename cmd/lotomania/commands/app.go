package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"lotomania/internal/assistant"
	"lotomania/internal/cache"
	"lotomania/internal/generator"
	"lotomania/internal/history"
	"lotomania/internal/results"
)

// app is the wired dependency graph shared by every subcommand.
type app struct {
	assistant *assistant.Assistant
	closers   []io.Closer
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close resource")
		}
	}
}

func buildApp(ctx context.Context) (*app, error) {
	a := &app{}

	store, err := openCache(ctx, a)
	if err != nil {
		return nil, err
	}

	hist, err := openHistory(ctx, a)
	if err != nil {
		a.Close()
		return nil, err
	}

	h, err := cfg.Heuristics()
	if err != nil {
		a.Close()
		return nil, err
	}
	gen, err := generator.New(h, generator.WithSeed(cfg.Seed))
	if err != nil {
		a.Close()
		return nil, err
	}

	service := results.NewService(results.NewClient(cfg.Results), store, hist)
	a.assistant = assistant.New(gen, service, hist, cfg.GameCost)
	return a, nil
}

func openCache(ctx context.Context, a *app) (cache.Store, error) {
	if cfg.RedisEnabled() {
		rs := cache.NewRedisStore(cfg.Redis, cfg.LatestTTL)
		err := rs.Ping(ctx)
		if err == nil {
			a.closers = append(a.closers, rs)
			log.Debug().Str("addr", cfg.Redis.Addr).Msg("Using Redis result cache")
			return cache.NewSerialized(rs), nil
		}
		_ = rs.Close()
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, falling back to file cache")
	}

	fs, err := cache.NewFileStore(cfg.CacheDir, cfg.LatestTTL)
	if err != nil {
		return nil, fmt.Errorf("open result cache: %w", err)
	}
	return cache.NewSerialized(fs), nil
}

func openHistory(ctx context.Context, a *app) (history.Store, error) {
	if cfg.HistoryDSN != "" {
		pg, err := history.OpenPostgres(ctx, cfg.HistoryDSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pg)
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		log.Debug().Msg("Using Postgres history store")
		return pg, nil
	}

	fs, err := history.OpenFile(cfg.HistoryPath)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return fs, nil
}
