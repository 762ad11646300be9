package generator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidConfig is wrapped by every ConfigError.
var ErrInvalidConfig = errors.New("invalid game configuration")

// ConfigError describes a rejected GameConfig field.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

const DefaultNumGames = 20

// GameConfig is the validated user intent for one batch.
type GameConfig struct {
	NumGames      int      `json:"numGames"`
	FixedNumbers  int      `json:"fixedNumbers"`
	MirrorBet     bool     `json:"mirrorBet"`
	Strategy      Strategy `json:"closingStrategy"`
	TargetContest int      `json:"targetConcurso,omitempty"`
	Seed          uint64   `json:"seed,omitempty"` // 0 uses the generator default
}

// DefaultGameConfig is 20 balanced games with nothing fixed and no mirror.
func DefaultGameConfig() GameConfig {
	return GameConfig{NumGames: DefaultNumGames, Strategy: StrategyBalanced}
}

// BoolText is a form boolean. JSON input may carry it as true/false or as a string.
type BoolText string

func (b *BoolText) UnmarshalJSON(data []byte) error {
	switch v := bytes.TrimSpace(data); {
	case bytes.Equal(v, []byte("null")):
		*b = ""
	case bytes.Equal(v, []byte("true")), bytes.Equal(v, []byte("false")):
		*b = BoolText(v)
	default:
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return fmt.Errorf("mirrorBet: expected boolean or string, got %s", v)
		}
		*b = BoolText(s)
	}
	return nil
}

// RawConfig is the string-typed form submitted by forms and tools.
type RawConfig struct {
	NumGames        string   `json:"numGames"`
	FixedNumbers    string   `json:"fixedNumbers"`
	MirrorBet       BoolText `json:"mirrorBet"`
	ClosingStrategy string `json:"closingStrategy"`
	TargetContest   string `json:"targetConcurso"`
	Seed            string `json:"seed"`
}

// ParseConfig converts raw input into a GameConfig. Empty fields take defaults.
// The result still needs Normalize against the active heuristics.
func ParseConfig(raw RawConfig) (GameConfig, error) {
	cfg := DefaultGameConfig()
	var err error

	if cfg.NumGames, err = parseCount("numGames", raw.NumGames, DefaultNumGames); err != nil {
		return GameConfig{}, err
	}
	if cfg.FixedNumbers, err = parseCount("fixedNumbers", raw.FixedNumbers, 0); err != nil {
		return GameConfig{}, err
	}
	if cfg.TargetContest, err = parseCount("targetConcurso", raw.TargetContest, 0); err != nil {
		return GameConfig{}, err
	}
	if cfg.Strategy, err = ParseStrategy(raw.ClosingStrategy); err != nil {
		return GameConfig{}, err
	}

	if v := strings.TrimSpace(string(raw.MirrorBet)); v != "" {
		if cfg.MirrorBet, err = strconv.ParseBool(v); err != nil {
			return GameConfig{}, &ConfigError{Field: "mirrorBet", Value: string(raw.MirrorBet), Reason: "not a boolean"}
		}
	}
	if v := strings.TrimSpace(raw.Seed); v != "" {
		if cfg.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return GameConfig{}, &ConfigError{Field: "seed", Value: raw.Seed, Reason: "not an unsigned integer"}
		}
	}
	return cfg, nil
}

func parseCount(field, raw string, def int) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ConfigError{Field: field, Value: raw, Reason: "not a number"}
	}
	if n < 0 {
		return 0, &ConfigError{Field: field, Value: raw, Reason: "must not be negative"}
	}
	return n, nil
}

// Normalize rejects impossible values and clamps fixedNumbers into range.
func (c GameConfig) Normalize(h Heuristics) (GameConfig, error) {
	if c.NumGames < 1 {
		return GameConfig{}, &ConfigError{Field: "numGames", Value: strconv.Itoa(c.NumGames), Reason: "must be at least 1"}
	}
	if c.FixedNumbers < 0 {
		return GameConfig{}, &ConfigError{Field: "fixedNumbers", Value: strconv.Itoa(c.FixedNumbers), Reason: "must not be negative"}
	}
	if c.Strategy == "" {
		c.Strategy = StrategyBalanced
	}
	st, err := ParseStrategy(string(c.Strategy))
	if err != nil {
		return GameConfig{}, err
	}
	c.Strategy = st
	if c.NumGames > h.MaxGames {
		return GameConfig{}, &ConfigError{Field: "numGames", Value: strconv.Itoa(c.NumGames), Reason: fmt.Sprintf("must be at most %d", h.MaxGames)}
	}
	c.FixedNumbers = min(c.FixedNumbers, h.MaxFixed)
	return c, nil
}

// BaseGames is how many games are constructed; mirrors fill the rest.
func (c GameConfig) BaseGames() int {
	if c.MirrorBet {
		return (c.NumGames + 1) / 2
	}
	return c.NumGames
}
