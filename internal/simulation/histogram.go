package simulation

import (
	"lotomania/internal/lotto"
)

// Histogram tracks how many games reached each hit count (0..20).
type Histogram struct {
	Counts [lotto.DrawSize + 1]int
	Total  int
}

// NewHistogram creates a histogram from a list of hit counts.
func NewHistogram(hits ...int) *Histogram {
	h := &Histogram{}
	for _, n := range hits {
		h.Add(n)
	}
	return h
}

// Add records one game. Out-of-range values are ignored.
func (h *Histogram) Add(hits int) {
	if hits < 0 || hits > lotto.DrawSize {
		return
	}
	h.Counts[hits]++
	h.Total++
}

// Merge folds o into h.
func (h *Histogram) Merge(o *Histogram) {
	for i, c := range o.Counts {
		h.Counts[i] += c
	}
	h.Total += o.Total
}

// Mean is the average hit count, 0 for an empty histogram.
func (h *Histogram) Mean() float64 {
	if h.Total == 0 {
		return 0
	}
	sum := 0
	for hits, c := range h.Counts {
		sum += hits * c
	}
	return float64(sum) / float64(h.Total)
}

// Percentile returns the smallest hit count whose cumulative share reaches p (0..1).
func (h *Histogram) Percentile(p float64) int {
	if h.Total == 0 {
		return 0
	}
	target := p * float64(h.Total)
	cum := 0
	for hits, c := range h.Counts {
		cum += c
		if float64(cum) >= target && c > 0 {
			return hits
		}
	}
	return lotto.DrawSize
}

// PayingShare is the fraction of games in a paying tier (0 hits or 15+).
func (h *Histogram) PayingShare() float64 {
	if h.Total == 0 {
		return 0
	}
	paying := h.Counts[0]
	for hits := 15; hits <= lotto.DrawSize; hits++ {
		paying += h.Counts[hits]
	}
	return float64(paying) / float64(h.Total)
}

// Summary renders the histogram for reports.
func (h *Histogram) Summary() Result {
	byHits := make(map[string]int)
	for hits, c := range h.Counts {
		if c > 0 {
			byHits[lotto.FormatNumber(hits)] = c
		}
	}
	return Result{
		Games:       h.Total,
		Mean:        h.Mean(),
		P50:         h.Percentile(0.50),
		P85:         h.Percentile(0.85),
		P95:         h.Percentile(0.95),
		PayingShare: h.PayingShare(),
		ByHits:      byHits,
	}
}
