package checker

import (
	"regexp"
	"strings"

	"lotomania/internal/lotto"
)

var separators = regexp.MustCompile(`[,;\s]+`)

// Game is one submitted bet in first-seen order.
type Game []int

// Set returns the game as a number set.
func (g Game) Set() lotto.Set {
	return lotto.SetOf(g...)
}

// Strings renders the game zero-padded.
func (g Game) Strings() []string {
	return lotto.FormatAll(g)
}

// ParseGames reads one game per line. Numbers may be separated by commas,
// semicolons or whitespace. Tokens that are not numbers in range are dropped,
// repeats within a line are ignored and lines left empty are skipped.
func ParseGames(text string) []Game {
	var games []Game
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var seen lotto.Set
		var g Game
		for _, tok := range separators.Split(line, -1) {
			n, err := lotto.ParseNumber(tok)
			if err != nil {
				continue
			}
			if seen.Add(n) {
				g = append(g, n)
			}
		}
		if len(g) > 0 {
			games = append(games, g)
		}
	}
	return games
}

// FromStrings converts rendered games, such as a generated batch, into Games.
func FromStrings(rendered [][]string) ([]Game, error) {
	out := make([]Game, 0, len(rendered))
	for _, r := range rendered {
		nums, err := lotto.ParseAll(r)
		if err != nil {
			return nil, err
		}
		out = append(out, nums)
	}
	return out, nil
}
