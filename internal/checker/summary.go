package checker

import (
	"math"

	"lotomania/internal/lotto"
)

const unavailable = "data unavailable"

// DefaultGameCost is the price of one Lotomania bet in reais.
const DefaultGameCost = 3.00

// Summary aggregates results across games, and across contests for ranges.
type Summary struct {
	Games              int         `json:"games"`
	Won                float64     `json:"won"`
	Spent              float64     `json:"spent"`
	Net                float64     `json:"net"`
	PrizeDataAvailable bool        `json:"prize_data_available"`
	Winners            int         `json:"winners"`
	BestHits           int         `json:"best_hits"`
	ByHits             map[int]int `json:"by_hits"`
}

// Summarize totals a set of results at gameCost per checked game.
func Summarize(results []GameResult, gameCost float64) Summary {
	s := Summary{
		Games:              len(results),
		PrizeDataAvailable: true,
		ByHits:             make(map[int]int),
	}
	for _, r := range results {
		s.ByHits[r.Hits]++
		s.BestHits = max(s.BestHits, r.Hits)
		if !r.PrizeKnown {
			s.PrizeDataAvailable = false
			continue
		}
		s.Won += r.Prize
		if r.Prize > 0 {
			s.Winners++
		}
	}
	s.Spent = roundCents(float64(s.Games) * gameCost)
	s.Won = roundCents(s.Won)
	s.Net = roundCents(s.Won - s.Spent)
	return s
}

// Merge folds o into s.
func (s Summary) Merge(o Summary) Summary {
	out := Summary{
		Games:              s.Games + o.Games,
		Won:                roundCents(s.Won + o.Won),
		Spent:              roundCents(s.Spent + o.Spent),
		PrizeDataAvailable: s.PrizeDataAvailable && o.PrizeDataAvailable,
		Winners:            s.Winners + o.Winners,
		BestHits:           max(s.BestHits, o.BestHits),
		ByHits:             make(map[int]int),
	}
	for k, v := range s.ByHits {
		out.ByHits[k] += v
	}
	for k, v := range o.ByHits {
		out.ByHits[k] += v
	}
	out.Net = roundCents(out.Won - out.Spent)
	return out
}

// WonText renders the prize total, or "data unavailable" when any draw lacked prizes.
func (s Summary) WonText() string {
	if !s.PrizeDataAvailable {
		return unavailable
	}
	return lotto.FormatAmount(s.Won)
}

// SpentText renders the amount spent.
func (s Summary) SpentText() string {
	return lotto.FormatAmount(s.Spent)
}

// NetText renders the net result, or "data unavailable".
func (s Summary) NetText() string {
	if !s.PrizeDataAvailable {
		return unavailable
	}
	return lotto.FormatAmount(s.Net)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
