// poly.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mathutil

import "math"

// Point2 is a point in a 2D Cartesian plane (meters, in practice ENU
// east/north).
type Point2 [2]float64

// PointInPolygon reports whether p is inside the polygon described by pts
// using the odd-even (ray casting) rule. It assumes the last vertex does
// not repeat the first, so the edge from pts[len(pts)-1] to pts[0] is
// included in the test.
func PointInPolygon(p Point2, pts []Point2) bool {
	inside := false
	for i := 0; i < len(pts); i++ {
		p0, p1 := pts[i], pts[(i+1)%len(pts)]
		if (p0[1] <= p[1] && p[1] < p1[1]) || (p1[1] <= p[1] && p[1] < p0[1]) {
			x := p0[0] + (p[1]-p0[1])*(p1[0]-p0[0])/(p1[1]-p0[1])
			if x > p[0] {
				inside = !inside
			}
		}
	}
	return inside
}

// Distance2 returns the Euclidean distance between two points in the
// plane.
func Distance2(a, b Point2) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return math.Sqrt(dx*dx + dy*dy)
}
