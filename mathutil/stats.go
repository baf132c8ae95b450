// stats.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mathutil

import (
	"math"
	"slices"
)

// Percentile returns the percent-th percentile of v (0 <= percent <= 100),
// using the same rank-interpolation scheme as the original astmops'
// functions.cpp::percentile: v is sorted first (the input is left
// untouched), exact ranks average their two bracketing samples and
// fractional ranks take the upper bracketing sample.
func Percentile(v []float64, percent float64) float64 {
	if len(v) == 0 || percent < 0 || percent > 100 {
		return math.NaN()
	}
	if len(v) == 1 {
		return v[0]
	}

	sorted := slices.Clone(v)
	slices.Sort(sorted)

	if percent == 0 {
		return sorted[0]
	}
	if percent == 100 {
		return sorted[len(sorted)-1]
	}

	n := len(sorted)
	rank := percent / 100.0 * float64(n)

	if rank >= float64(n-1) {
		return sorted[n-1]
	}

	intPart, fractPart := math.Modf(rank)
	idx := int(intPart) - 1
	if idx < 0 {
		idx = 0
	}

	if fractPart != 0 {
		return sorted[idx+1]
	}
	return (sorted[idx] + sorted[idx+1]) / 2.0
}

// Mean returns the arithmetic mean of v, or NaN if v is empty.
func Mean(v []float64) float64 {
	if len(v) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// StdDev returns the sample standard deviation of v (N-1 denominator), 0
// for a single sample, or NaN if v is empty.
func StdDev(v []float64) float64 {
	n := len(v)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return 0.0
	}

	m := Mean(v)
	var sqSum float64
	for _, x := range v {
		d := x - m
		sqSum += d * d
	}
	return math.Sqrt(sqSum / float64(n-1))
}
