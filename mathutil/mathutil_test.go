// mathutil_test.go
// Copyright(c) 2023 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mathutil

import (
	"math"
	"testing"
)

func TestPointInPolygon(t *testing.T) {
	type testCase struct {
		name     string
		point    Point2
		polygon  []Point2
		expected bool
	}

	testCases := []testCase{
		{
			name:     "PointInsideSimpleSquare",
			point:    Point2{1, 1},
			polygon:  []Point2{{0, 0}, {0, 2}, {2, 2}, {2, 0}},
			expected: true,
		},
		{
			name:     "PointToLeftOfQuad",
			point:    Point2{-.2, 0.2},
			polygon:  []Point2{{.01, 1}, {20, 2}, {20, -2}, {.01, -1}},
			expected: false,
		},
		{
			name:     "PointOutsideSimpleSquare",
			point:    Point2{3, 3},
			polygon:  []Point2{{0, 0}, {0, 2}, {2, 2}, {2, 0}},
			expected: false,
		},
		{
			name:     "PointByVertex",
			point:    Point2{-0.001, 0},
			polygon:  []Point2{{0, 0}, {0, 2}, {2, 2}, {2, 0}},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PointInPolygon(tc.point, tc.polygon); got != tc.expected {
				t.Errorf("%s: got %v, expected %v", tc.name, got, tc.expected)
			}
		})
	}
}

func TestGeoToLocalENUOrigin(t *testing.T) {
	ref := GeoPoint{LatDeg: 40.5, LonDeg: -3.5, AltM: 600}
	enu := GeoToLocalENU(ref, ref)

	const eps = 1e-6
	if math.Abs(enu.East) > eps || math.Abs(enu.North) > eps || math.Abs(enu.Up) > eps {
		t.Errorf("reference point should map to the ENU origin, got %+v", enu)
	}
}

func TestGeoToLocalENUOffset(t *testing.T) {
	ref := GeoPoint{LatDeg: 40.5, LonDeg: -3.5, AltM: 600}
	// Roughly 100m north: 1 degree of latitude is about 111.3km here.
	north := GeoPoint{LatDeg: 40.5 + 100.0/111300.0, LonDeg: -3.5, AltM: 600}

	enu := GeoToLocalENU(north, ref)
	if math.Abs(enu.North-100) > 1.0 {
		t.Errorf("expected ~100m north offset, got %v", enu.North)
	}
	if math.Abs(enu.East) > 1.0 {
		t.Errorf("expected ~0m east offset, got %v", enu.East)
	}
}

func TestPercentile(t *testing.T) {
	v := []float64{15, 20, 35, 40, 50}

	// Worked example: 40th percentile of a 5-element sorted set. The rank
	// 0.4*5 = 2 is exact, so the two bracketing samples are averaged.
	if got := Percentile(v, 40); got != 27.5 {
		t.Errorf("Percentile(40) = %v, want 27.5", got)
	}
	if got := Percentile(v, 0); got != 15 {
		t.Errorf("Percentile(0) = %v, want 15", got)
	}
	if got := Percentile(v, 100); got != 50 {
		t.Errorf("Percentile(100) = %v, want 50", got)
	}
	if got := Percentile(nil, 50); !math.IsNaN(got) {
		t.Errorf("Percentile of empty slice should be NaN, got %v", got)
	}
	if got := Percentile([]float64{42}, 50); got != 42 {
		t.Errorf("Percentile of a single-element slice should be that element, got %v", got)
	}
}

func TestMeanStdDev(t *testing.T) {
	v := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := Mean(v); got != 5 {
		t.Errorf("Mean = %v, want 5", got)
	}
	if got := StdDev(v); math.Abs(got-2.1380899) > 1e-5 {
		t.Errorf("StdDev = %v, want ~2.13809", got)
	}
	if got := StdDev([]float64{3}); got != 0 {
		t.Errorf("StdDev of single-element slice = %v, want 0", got)
	}
	if got := Mean(nil); !math.IsNaN(got) {
		t.Errorf("Mean of empty slice should be NaN, got %v", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5,0,10) = %v, want 5", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Errorf("Clamp(-1,0,10) = %v, want 0", got)
	}
	if got := Clamp(11, 0, 10); got != 10 {
		t.Errorf("Clamp(11,0,10) = %v, want 10", got)
	}
}
