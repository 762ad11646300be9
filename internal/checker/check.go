package checker

import (
	"github.com/rs/zerolog/log"

	"lotomania/internal/lotto"
)

// MinPrizeHits is the lowest non-zero hit count Lotomania pays. Zero hits also pays.
const MinPrizeHits = 15

// GameResult is the outcome of one game against one draw.
type GameResult struct {
	Index      int      `json:"index"`
	Contest    int      `json:"contest"`
	Numbers    []string `json:"numbers"`
	Hits       int      `json:"hits"`
	HitNumbers []string `json:"hit_numbers"`
	Prize      float64  `json:"prize"`
	PrizeText  string   `json:"prize_text"`
	PrizeKnown bool     `json:"prize_known"`
}

// Winning reports whether the hit count is in a paying tier.
func (r GameResult) Winning() bool {
	return r.Hits == 0 || r.Hits >= MinPrizeHits
}

// Check intersects every game with the draw and looks up the prize row whose
// hit count matches. Draws without prize data yield PrizeKnown=false.
func Check(games []Game, d lotto.Draw) []GameResult {
	drawn := d.Set()
	hasPrizes := d.HasPrizeData()

	out := make([]GameResult, len(games))
	for i, g := range games {
		hit := g.Set().Intersect(drawn)
		r := GameResult{
			Index:      i,
			Contest:    d.Contest,
			Numbers:    g.Strings(),
			Hits:       hit.Len(),
			HitNumbers: hit.Strings(),
			PrizeKnown: hasPrizes,
			PrizeText:  unavailable,
		}
		if hasPrizes {
			r.PrizeText = lotto.FormatAmount(0)
			if tier, ok := d.PrizeFor(r.Hits); ok {
				amount, err := lotto.ParseAmount(tier.Prize)
				if err != nil {
					log.Warn().Err(err).Int("contest", d.Contest).Int("hits", r.Hits).Msg("Unreadable prize amount")
					r.PrizeKnown = false
					r.PrizeText = unavailable
				} else {
					r.Prize = amount
					r.PrizeText = lotto.FormatAmount(amount)
				}
			}
		}
		out[i] = r
	}
	return out
}
