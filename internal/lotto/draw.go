package lotto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidDraw is returned when a draw does not hold exactly 20 distinct playable numbers.
var ErrInvalidDraw = errors.New("invalid draw")

// PrizeTier is one row of an official prize table.
type PrizeTier struct {
	Hits    int    `json:"acertos"`
	Winners int    `json:"vencedores"`
	Prize   string `json:"premio"`
}

// Numbers serializes as zero-padded strings and accepts strings or integers on input.
type Numbers []int

func (n Numbers) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatAll(n))
}

func (n *Numbers) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Numbers, 0, len(raw))
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		var token string
		if len(item) > 0 && item[0] == '"' {
			if err := json.Unmarshal(item, &token); err != nil {
				return err
			}
		} else {
			token = string(item)
		}
		v, err := ParseNumber(token)
		if err != nil {
			return err
		}
		out = append(out, v)
	}
	*n = out
	return nil
}

// Draw is one official result. Partial draws come from the local historical
// dataset and carry no prize information.
type Draw struct {
	Contest     int         `json:"concurso"`
	Date        string      `json:"data,omitempty"`
	Numbers     Numbers     `json:"numeros"`
	NextJackpot string      `json:"acumuladoProximoConcurso,omitempty"`
	Prizes      []PrizeTier `json:"premiacao,omitempty"`
	Partial     bool        `json:"parcial,omitempty"`
}

// Validate checks the 20-distinct-numbers invariant.
func (d Draw) Validate() error {
	if len(d.Numbers) != DrawSize {
		return fmt.Errorf("%w: contest %d has %d numbers, want %d", ErrInvalidDraw, d.Contest, len(d.Numbers), DrawSize)
	}
	var seen Set
	for _, n := range d.Numbers {
		if !InRange(n) {
			return fmt.Errorf("%w: contest %d has out-of-range number %d", ErrInvalidDraw, d.Contest, n)
		}
		if !seen.Add(n) {
			return fmt.Errorf("%w: contest %d repeats number %s", ErrInvalidDraw, d.Contest, FormatNumber(n))
		}
	}
	return nil
}

// Set returns the drawn numbers as a Set.
func (d Draw) Set() Set {
	return SetOf(d.Numbers...)
}

// Formatted returns the drawn numbers zero-padded, in draw order.
func (d Draw) Formatted() []string {
	return FormatAll(d.Numbers)
}

// HasPrizeData reports whether the prize table can be trusted for payouts.
func (d Draw) HasPrizeData() bool {
	return !d.Partial && len(d.Prizes) > 0
}

// PrizeFor looks up the prize table row for the given hit count.
func (d Draw) PrizeFor(hits int) (PrizeTier, bool) {
	for _, p := range d.Prizes {
		if p.Hits == hits {
			return p, true
		}
	}
	return PrizeTier{}, false
}

// Label is a short human identifier, e.g. "Concurso 2650 (12/08/2024)".
func (d Draw) Label() string {
	label := "Concurso " + strconv.Itoa(d.Contest)
	if d.Date != "" {
		label += " (" + d.Date + ")"
	}
	return label
}
