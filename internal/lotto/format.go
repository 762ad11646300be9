package lotto

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidNumber is returned when a token is not a playable number.
var ErrInvalidNumber = errors.New("invalid number")

// FormatNumber renders n as a two-digit, zero-padded string.
func FormatNumber(n int) string {
	return fmt.Sprintf("%02d", n)
}

// FormatAll renders every number with FormatNumber, keeping order.
func FormatAll(nums []int) []string {
	out := make([]string, len(nums))
	for i, n := range nums {
		out[i] = FormatNumber(n)
	}
	return out
}

// ParseNumber accepts "7", "07" or " 07 " and rejects anything outside 0..99.
func ParseNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	if !InRange(n) {
		return 0, fmt.Errorf("%w: %d out of range", ErrInvalidNumber, n)
	}
	return n, nil
}

// ParseAll parses every token, failing on the first invalid one.
func ParseAll(tokens []string) ([]int, error) {
	out := make([]int, 0, len(tokens))
	for _, t := range tokens {
		n, err := ParseNumber(t)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
