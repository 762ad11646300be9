package generator

import (
	"errors"
	"fmt"

	"lotomania/internal/lotto"
	"lotomania/internal/stats"
)

// Weights tunes the scorer terms.
type Weights struct {
	Parity         float64 `yaml:"parity" json:"parity"`
	Bucket         float64 `yaml:"bucket" json:"bucket"`
	BucketPenalty  float64 `yaml:"bucket_penalty" json:"bucket_penalty"`
	BucketMax      int     `yaml:"bucket_max" json:"bucket_max"`
	Overlap        float64 `yaml:"overlap" json:"overlap"`
	OverlapTarget  int     `yaml:"overlap_target" json:"overlap_target"`
	Consecutive    float64 `yaml:"consecutive" json:"consecutive"`
	ConsecutiveMin int     `yaml:"consecutive_min" json:"consecutive_min"`
	ConsecutiveMax int     `yaml:"consecutive_max" json:"consecutive_max"`
	CapPenalty     float64 `yaml:"cap_penalty" json:"cap_penalty"`
}

// FixedCeiling bounds MaxFixed so every game keeps at least 35 free numbers.
const FixedCeiling = 15

// Heuristics holds every tunable constant of the generation pipeline.
type Heuristics struct {
	Population    int                  `yaml:"population" json:"population"`
	Generations   int                  `yaml:"generations" json:"generations"`
	EliteFraction float64              `yaml:"elite_fraction" json:"elite_fraction"`
	MaxFixed      int                  `yaml:"max_fixed" json:"max_fixed"`
	MaxGames      int                  `yaml:"max_games" json:"max_games"`
	Tiers         stats.TierOptions    `yaml:"tiers" json:"tiers"`
	Weights       Weights              `yaml:"weights" json:"weights"`
	Profiles      map[Strategy]Profile `yaml:"profiles" json:"profiles"`
}

// DefaultHeuristics returns the stock configuration.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		Population:    100,
		Generations:   100,
		EliteFraction: 0.10,
		MaxFixed:      FixedCeiling,
		MaxGames:      500,
		Tiers:         stats.DefaultTierOptions(),
		Weights: Weights{
			Parity:         1,
			Bucket:         1,
			BucketPenalty:  5,
			BucketMax:      8,
			Overlap:        1,
			OverlapTarget:  3,
			Consecutive:    0.5,
			ConsecutiveMin: 2,
			ConsecutiveMax: 5,
			CapPenalty:     2,
		},
		Profiles: DefaultProfiles(),
	}
}

// Validate reports every inconsistency found, joined.
func (h Heuristics) Validate() error {
	var errs []error
	if h.Population < 1 {
		errs = append(errs, errors.New("population must be at least 1"))
	}
	if h.Generations < 0 {
		errs = append(errs, errors.New("generations must not be negative"))
	}
	if h.EliteFraction <= 0 || h.EliteFraction > 1 {
		errs = append(errs, fmt.Errorf("elite fraction %.2f outside (0,1]", h.EliteFraction))
	}
	if h.MaxFixed < 0 || h.MaxFixed > FixedCeiling {
		errs = append(errs, fmt.Errorf("max fixed %d outside [0,%d]", h.MaxFixed, FixedCeiling))
	}
	if h.MaxGames < 1 {
		errs = append(errs, errors.New("max games must be at least 1"))
	}
	if h.Tiers.HotSize < 0 || h.Tiers.ColdSize < 0 || h.Tiers.HotSize+h.Tiers.ColdSize > lotto.Universe {
		errs = append(errs, fmt.Errorf("tier sizes %d/%d do not fit the universe", h.Tiers.HotSize, h.Tiers.ColdSize))
	}
	if h.Weights.ConsecutiveMin > h.Weights.ConsecutiveMax {
		errs = append(errs, errors.New("consecutive band is inverted"))
	}
	for _, s := range Strategies {
		p, ok := h.Profiles[s]
		if !ok {
			errs = append(errs, fmt.Errorf("missing profile for strategy %s", s))
			continue
		}
		if err := p.validate(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// EliteSize is the number of survivors carried unchanged between generations.
func (h Heuristics) EliteSize() int {
	return max(1, min(h.Population, int(float64(h.Population)*h.EliteFraction)))
}
