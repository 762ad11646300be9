package lotto

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts a Brazilian currency string ("R$ 1.234.567,89") into a float.
// Plain decimal input ("1234.5") is accepted too.
func ParseAmount(s string) (float64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "R$")
	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, "\u00a0", "")
	if clean == "" {
		return 0, fmt.Errorf("empty amount")
	}
	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return v, nil
}

// FormatAmount renders v as "R$ 1.234,56".
func FormatAmount(v float64) string {
	neg := v < 0
	cents := int64(math.Round(math.Abs(v) * 100))
	whole := strconv.FormatInt(cents/100, 10)

	var sb strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(r)
	}

	sign := ""
	if neg && cents != 0 {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, sb.String(), cents%100)
}
