package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"lotomania/internal/lotto"
)

type latestEntry struct {
	FetchedAt time.Time  `json:"fetched_at"`
	Draw      lotto.Draw `json:"draw"`
}

// FileStore keeps one JSON document per contest plus latest.json.
type FileStore struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string, ttl time.Duration) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultLatestTTL
	}
	return &FileStore{dir: dir, ttl: ttl, now: time.Now}, nil
}

// WithClock replaces time.Now, for expiry tests.
func (s *FileStore) WithClock(now func() time.Time) *FileStore {
	s.now = now
	return s
}

func (s *FileStore) contestPath(contest int) string {
	return filepath.Join(s.dir, fmt.Sprintf("result_%d.json", contest))
}

func (s *FileStore) latestPath() string {
	return filepath.Join(s.dir, "latest.json")
}

func (s *FileStore) Get(_ context.Context, contest int) (lotto.Draw, bool) {
	var d lotto.Draw
	if !readJSON(s.contestPath(contest), &d) {
		return lotto.Draw{}, false
	}
	log.Debug().Int("contest", contest).Msg("Cache hit")
	return d, true
}

func (s *FileStore) Put(_ context.Context, d lotto.Draw) error {
	if d.Partial {
		return nil
	}
	return writeJSON(s.contestPath(d.Contest), d)
}

func (s *FileStore) Latest(context.Context) (lotto.Draw, bool) {
	var e latestEntry
	if !readJSON(s.latestPath(), &e) {
		return lotto.Draw{}, false
	}
	if age := s.now().Sub(e.FetchedAt); age >= s.ttl {
		log.Debug().Dur("age", age).Msg("Latest result expired")
		return lotto.Draw{}, false
	}
	return e.Draw, true
}

func (s *FileStore) PutLatest(_ context.Context, d lotto.Draw) error {
	return writeJSON(s.latestPath(), latestEntry{FetchedAt: s.now(), Draw: d})
}

func readJSON(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("Failed to read cache entry")
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Skipping corrupt cache entry")
		return false
	}
	return true
}

// writeJSON replaces path atomically through a temp file.
func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp cache file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename cache file: %w", err)
	}
	return nil
}
