// numeric.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mathutil

import "golang.org/x/exp/constraints"

// Clamp restricts x to the range [low, high].
func Clamp[T constraints.Ordered](x, low, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

// Min returns the smaller of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
