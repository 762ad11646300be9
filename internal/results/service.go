package results

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"lotomania/internal/lotto"
	"lotomania/internal/metrics"
)

// Cache stores fetched results. Per-contest entries never expire; the latest
// entry is only returned while fresh.
type Cache interface {
	Get(ctx context.Context, contest int) (lotto.Draw, bool)
	Put(ctx context.Context, d lotto.Draw) error
	Latest(ctx context.Context) (lotto.Draw, bool)
	PutLatest(ctx context.Context, d lotto.Draw) error
}

// HistoryLookup is the local corpus consulted when the source is unreachable.
type HistoryLookup interface {
	Get(ctx context.Context, contest int) (lotto.Draw, bool, error)
}

// Service layers caching and the offline fallback over a Source.
type Service struct {
	source  Source
	cache   Cache
	history HistoryLookup
}

// NewService wires a source with an optional cache and history fallback.
func NewService(src Source, cache Cache, history HistoryLookup) *Service {
	return &Service{source: src, cache: cache, history: history}
}

// Latest serves the cached latest result while it is fresh.
func (s *Service) Latest(ctx context.Context) (lotto.Draw, error) {
	if s.cache != nil {
		if d, ok := s.cache.Latest(ctx); ok {
			metrics.RecordCacheHit("latest")
			metrics.RecordFetch("cache", nil)
			return d, nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh fetches the latest result regardless of the cache and stores it.
func (s *Service) Refresh(ctx context.Context) (lotto.Draw, error) {
	d, err := s.source.Latest(ctx)
	metrics.RecordFetch("remote", err)
	if err != nil {
		return lotto.Draw{}, err
	}
	log.Info().Int("contest", d.Contest).Msg("Fetched latest result")

	if s.cache != nil {
		if err := s.cache.PutLatest(ctx, d); err != nil {
			log.Warn().Err(err).Msg("Failed to cache latest result")
		}
		if err := s.cache.Put(ctx, d); err != nil {
			log.Warn().Err(err).Int("contest", d.Contest).Msg("Failed to cache result")
		}
	}
	return d, nil
}

// ByContest serves a historical result. When the source is unreachable it
// falls back to the local corpus and flags the draw as partial.
func (s *Service) ByContest(ctx context.Context, contest int) (lotto.Draw, error) {
	if s.cache != nil {
		if d, ok := s.cache.Get(ctx, contest); ok {
			metrics.RecordCacheHit("contest")
			metrics.RecordFetch("cache", nil)
			return d, nil
		}
	}

	d, err := s.source.ByContest(ctx, contest)
	metrics.RecordFetch("remote", err)
	if err == nil {
		if s.cache != nil {
			if err := s.cache.Put(ctx, d); err != nil {
				log.Warn().Err(err).Int("contest", contest).Msg("Failed to cache result")
			}
		}
		return d, nil
	}

	if !errors.Is(err, ErrNetwork) || s.history == nil {
		return lotto.Draw{}, err
	}

	h, ok, herr := s.history.Get(ctx, contest)
	metrics.RecordFetch("history", herr)
	if herr != nil {
		log.Warn().Err(herr).Int("contest", contest).Msg("History lookup failed")
		return lotto.Draw{}, err
	}
	if !ok {
		return lotto.Draw{}, err
	}

	log.Warn().Err(err).Int("contest", contest).Msg("Source unreachable, serving history without prize data")
	h.Partial = true
	h.Prizes = nil
	h.NextJackpot = ""
	return h, nil
}
