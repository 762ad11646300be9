package visuals

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"lotomania/internal/checker"
	"lotomania/internal/lotto"
	"lotomania/internal/stats"
)

// GenerateFrequencyChart creates a Mermaid bar chart of draw counts per number,
// grouped by decade so the x-axis stays readable.
func GenerateFrequencyChart(p *stats.FrequencyProfile) string {
	if p == nil || p.Draws == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0
	for n := 0; n < lotto.Universe; n++ {
		labels = append(labels, fmt.Sprintf("\"%s\"", lotto.FormatNumber(n)))
		values = append(values, fmt.Sprintf("%d", p.Counts[n]))
		maxVal = max(maxVal, p.Counts[n])
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"Number Frequency (%d draws)\"\n", p.Draws))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Times Drawn\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateDecadeChart sums counts per decade bucket.
func GenerateDecadeChart(p *stats.FrequencyProfile) string {
	if p == nil || p.Draws == 0 {
		return ""
	}

	var buckets [lotto.Universe / 10]int
	for n, c := range p.Counts {
		buckets[n/10] += c
	}

	var labels []string
	var values []string
	maxVal := 0
	for i, c := range buckets {
		labels = append(labels, fmt.Sprintf("\"%02d-%02d\"", i*10, i*10+9))
		values = append(values, fmt.Sprintf("%d", c))
		maxVal = max(maxVal, c)
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Draws per Decade\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Numbers Drawn\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateHitChart creates a Mermaid bar chart of how many games reached each hit count.
func GenerateHitChart(s checker.Summary) string {
	if s.Games == 0 || len(s.ByHits) == 0 {
		return ""
	}

	hits := make([]int, 0, len(s.ByHits))
	for h := range s.ByHits {
		hits = append(hits, h)
	}
	sort.Ints(hits)

	var labels []string
	var values []string
	maxVal := 0
	for _, h := range hits {
		labels = append(labels, fmt.Sprintf("\"%d\"", h))
		values = append(values, fmt.Sprintf("%d", s.ByHits[h]))
		maxVal = max(maxVal, s.ByHits[h])
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Games by Hit Count\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis \"Hits\" [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Games\" 0 --> %d\n", maxVal+1))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateFitnessChart plots the fitness of every game in a batch.
func GenerateFitnessChart(fitness []float64) string {
	if len(fitness) == 0 {
		return ""
	}

	var labels []string
	var values []string
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, f := range fitness {
		labels = append(labels, fmt.Sprintf("%d", i+1))
		values = append(values, fmt.Sprintf("%.1f", f))
		lo, hi = math.Min(lo, f), math.Max(hi, f)
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Fitness per Game\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Fitness\" %d --> %d\n", int(math.Floor(lo))-1, int(math.Ceil(hi))+1))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}
