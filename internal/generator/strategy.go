package generator

import (
	"fmt"
	"strings"
)

// Strategy is the closing strategy selector.
type Strategy string

const (
	StrategyBalanced Strategy = "balanced"
	StrategyHighTier Strategy = "high-tier"
	StrategyMaxTier  Strategy = "max-tier"
)

// Strategies lists the accepted strategies in presentation order.
var Strategies = []Strategy{StrategyBalanced, StrategyHighTier, StrategyMaxTier}

var strategyAliases = map[string]Strategy{
	"":          StrategyBalanced,
	"balanced":  StrategyBalanced,
	"high-tier": StrategyHighTier,
	"high_tier": StrategyHighTier,
	"target_18": StrategyHighTier,
	"max-tier":  StrategyMaxTier,
	"max_tier":  StrategyMaxTier,
	"target_20": StrategyMaxTier,
}

// ParseStrategy resolves a strategy name or one of its legacy aliases.
func ParseStrategy(s string) (Strategy, error) {
	if st, ok := strategyAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st, nil
	}
	return "", &ConfigError{Field: "closingStrategy", Value: s, Reason: "unknown strategy"}
}

// StrategyNames returns the canonical names, used for schema enums and help text.
func StrategyNames() []string {
	out := make([]string, len(Strategies))
	for i, s := range Strategies {
		out[i] = string(s)
	}
	return out
}

// Profile is the preset a strategy applies to construction and scoring.
type Profile struct {
	HotDraws   int     `yaml:"hot_draws" json:"hot_draws"`
	ColdDraws  int     `yaml:"cold_draws" json:"cold_draws"`
	HotWeight  float64 `yaml:"hot_weight" json:"hot_weight"`
	ColdWeight float64 `yaml:"cold_weight" json:"cold_weight"`
	HotCap     int     `yaml:"hot_cap" json:"hot_cap"` // 0 disables the over-concentration penalty
}

func (p Profile) validate(name Strategy) error {
	if p.HotDraws < 0 || p.ColdDraws < 0 {
		return fmt.Errorf("profile %s: tier draws must not be negative", name)
	}
	if p.HotCap < 0 {
		return fmt.Errorf("profile %s: hot cap must not be negative", name)
	}
	return nil
}

// DefaultProfiles returns the built-in strategy presets.
func DefaultProfiles() map[Strategy]Profile {
	return map[Strategy]Profile{
		StrategyBalanced: {HotDraws: 8, ColdDraws: 8, HotWeight: 0.3, ColdWeight: 0.3, HotCap: 12},
		StrategyHighTier: {HotDraws: 10, ColdDraws: 10, HotWeight: 0.6, ColdWeight: 0.6, HotCap: 14},
		StrategyMaxTier:  {HotDraws: 15, ColdDraws: 5, HotWeight: 1.0, ColdWeight: 1.0},
	}
}
