package checker

import (
	"io"
	"strings"
)

// Export renders games one per line with comma-separated padded numbers.
// The output parses back through ParseGames unchanged.
func Export(games [][]string) string {
	var b strings.Builder
	for _, g := range games {
		b.WriteString(strings.Join(g, ", "))
		b.WriteByte('\n')
	}
	return b.String()
}

// ExportGames is Export for parsed games.
func ExportGames(games []Game) string {
	rendered := make([][]string, len(games))
	for i, g := range games {
		rendered[i] = g.Strings()
	}
	return Export(rendered)
}

// WriteExport writes the export format to w.
func WriteExport(w io.Writer, games [][]string) error {
	_, err := io.WriteString(w, Export(games))
	return err
}
