package history

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"

	"lotomania/internal/lotto"
)

// FileStore keeps the corpus in a JSONL file, one draw per line.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	draws []lotto.Draw // most recent first
	index map[int]int  // contest -> position in draws
}

// OpenFile loads path if it exists. A missing file is an empty corpus.
func OpenFile(path string) (*FileStore, error) {
	s := &FileStore{path: path, index: make(map[int]int)}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer file.Close()

	var draws []lotto.Draw
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var d lotto.Draw
		if err := json.Unmarshal(scanner.Bytes(), &d); err != nil {
			log.Warn().Err(err).Str("path", s.path).Msg("Skipping invalid JSON line in history")
			continue
		}
		if err := d.Validate(); err != nil {
			log.Warn().Err(err).Msg("Skipping invalid draw in history")
			continue
		}
		draws = append(draws, d)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading history: %w", err)
	}

	s.draws, s.index, _ = merge(s.draws, s.index, draws)
	log.Info().Str("path", s.path).Int("count", len(s.draws)).Msg("Loaded draw history")
	return nil
}

// merge returns draws and index extended with unseen contests, recent first.
// The inputs are left untouched.
func merge(draws []lotto.Draw, index map[int]int, incoming []lotto.Draw) ([]lotto.Draw, map[int]int, int) {
	out := slices.Clone(draws)
	seen := make(map[int]bool, len(incoming))
	added := 0
	for _, d := range incoming {
		if _, ok := index[d.Contest]; ok || seen[d.Contest] {
			continue
		}
		d.Partial = false
		out = append(out, d)
		seen[d.Contest] = true
		added++
	}
	if added == 0 {
		return draws, index, 0
	}
	sortRecentFirst(out)
	idx := make(map[int]int, len(out))
	for i, d := range out {
		idx[d.Contest] = i
	}
	return out, idx, added
}

func (s *FileStore) All(context.Context) ([]lotto.Draw, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.draws), nil
}

func (s *FileStore) Get(_ context.Context, contest int) (lotto.Draw, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[contest]
	if !ok {
		return lotto.Draw{}, false, nil
	}
	return s.draws[i], true, nil
}

// Append validates, deduplicates by contest and persists when anything changed.
func (s *FileStore) Append(_ context.Context, draws ...lotto.Draw) (int, error) {
	for _, d := range draws {
		if err := d.Validate(); err != nil {
			return 0, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged, index, added := merge(s.draws, s.index, draws)
	if added == 0 {
		return 0, nil
	}
	if err := save(s.path, merged); err != nil {
		return 0, err
	}
	s.draws, s.index = merged, index
	log.Info().Int("added", added).Int("count", len(s.draws)).Msg("History updated")
	return added, nil
}

func save(path string, draws []lotto.Draw) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create history dir: %w", err)
	}

	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)
	for _, d := range draws {
		if err := encoder.Encode(d); err != nil {
			file.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("failed to encode draw: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush writer: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename history file: %w", err)
	}
	return nil
}
