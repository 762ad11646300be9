package checker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"lotomania/internal/lotto"
	"lotomania/internal/results"
)

// MaxRange bounds how many contests one range check may fetch.
const MaxRange = 200

// Fetcher loads one contest. results.Service satisfies it.
type Fetcher interface {
	ByContest(ctx context.Context, contest int) (lotto.Draw, error)
}

// ContestReport is the check of every game against one contest.
type ContestReport struct {
	Contest int          `json:"contest"`
	Date    string       `json:"date,omitempty"`
	Partial bool         `json:"partial,omitempty"`
	Results []GameResult `json:"results"`
	Summary Summary      `json:"summary"`
}

// RangeReport aggregates a contest range.
type RangeReport struct {
	From     int             `json:"from"`
	To       int             `json:"to"`
	Contests []ContestReport `json:"contests"`
	Missing  []int           `json:"missing,omitempty"`
	Total    Summary         `json:"total"`
}

// CheckRange checks games against every contest in [from, to]. Contests that
// have no result yet are reported as missing; any other fetch error aborts.
func CheckRange(ctx context.Context, games []Game, from, to int, f Fetcher, gameCost float64) (*RangeReport, error) {
	if from < 1 || to < from {
		return nil, fmt.Errorf("invalid contest range %d-%d", from, to)
	}
	if to-from+1 > MaxRange {
		return nil, fmt.Errorf("contest range %d-%d exceeds %d contests", from, to, MaxRange)
	}

	var (
		mu      sync.Mutex
		reports []ContestReport
		missing []int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for contest := from; contest <= to; contest++ {
		g.Go(func() error {
			d, err := f.ByContest(gctx, contest)
			if errors.Is(err, results.ErrNotFound) {
				mu.Lock()
				missing = append(missing, contest)
				mu.Unlock()
				return nil
			}
			if err != nil {
				return fmt.Errorf("contest %d: %w", contest, err)
			}

			res := Check(games, d)
			r := ContestReport{
				Contest: d.Contest,
				Date:    d.Date,
				Partial: d.Partial,
				Results: res,
				Summary: Summarize(res, gameCost),
			}
			mu.Lock()
			reports = append(reports, r)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Contest < reports[j].Contest })
	sort.Ints(missing)

	report := &RangeReport{From: from, To: to, Contests: reports, Missing: missing}
	report.Total = Summary{PrizeDataAvailable: true, ByHits: map[int]int{}}
	for _, r := range reports {
		report.Total = report.Total.Merge(r.Summary)
	}

	log.Info().
		Int("from", from).
		Int("to", to).
		Int("checked", len(reports)).
		Int("missing", len(missing)).
		Msg("Contest range checked")
	return report, nil
}
