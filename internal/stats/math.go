package stats

import (
	"math"
	"slices"
)

// Median finds the median value in a slice of integers.
func Median(values []int) float64 {
	if len(values) == 0 {
		return 0
	}

	// Work on a copy to avoid mutating the original
	temp := slices.Clone(values)
	slices.Sort(temp)

	n := len(temp)
	if n%2 == 1 {
		return float64(temp[n/2])
	}
	return float64(temp[n/2-1]+temp[n/2]) / 2.0
}

// Mean returns the arithmetic mean of the values.
func Mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// StdDev returns the population standard deviation of the values.
func StdDev(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	acc := 0.0
	for _, v := range values {
		d := float64(v) - mean
		acc += d * d
	}
	return math.Sqrt(acc / float64(len(values)))
}
