// geodesy.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package mathutil collects the small numeric building blocks astmops
// needs: WGS-84 geodesy, point-in-polygon, and the generic percentile /
// clamp helpers the performance evaluator runs over distance and gap
// distributions.
package mathutil

import "math"

// WGS-84 ellipsoid constants.
const (
	WGS84A  = 6378137.0        // semi-major axis, meters
	WGS84E2 = 0.00669437999013 // first eccentricity squared
)

// GeoPoint is a geographic position: latitude and longitude in degrees,
// altitude in meters above the ellipsoid.
type GeoPoint struct {
	LatDeg float64
	LonDeg float64
	AltM   float64
}

// ECEF is a position in Earth-Centered, Earth-Fixed Cartesian coordinates,
// in meters.
type ECEF struct {
	X, Y, Z float64
}

// ENU is a position in a local East-North-Up tangent plane, in meters,
// relative to some reference point.
type ENU struct {
	East, North, Up float64
}

// TransverseRadius returns the WGS-84 prime vertical radius of curvature
// (meters) at the given geodetic latitude, in radians.
func TransverseRadius(latRad float64) float64 {
	s := math.Sin(latRad)
	return WGS84A / math.Sqrt(1-WGS84E2*s*s)
}

// GeoToECEF converts a geographic position to ECEF coordinates.
func GeoToECEF(p GeoPoint) ECEF {
	phi := p.LatDeg * math.Pi / 180
	lambda := p.LonDeg * math.Pi / 180

	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	sinLambda, cosLambda := math.Sin(lambda), math.Cos(lambda)

	n := TransverseRadius(phi)

	return ECEF{
		X: (p.AltM + n) * cosPhi * cosLambda,
		Y: (p.AltM + n) * cosPhi * sinLambda,
		Z: (p.AltM + (1-WGS84E2)*n) * sinPhi,
	}
}

// ECEFToLocalENU converts an ECEF position to local ENU coordinates
// relative to the tangent plane centered at ref.
func ECEFToLocalENU(ecef ECEF, ref GeoPoint) ENU {
	ecefRef := GeoToECEF(ref)

	phi := ref.LatDeg * math.Pi / 180
	lambda := ref.LonDeg * math.Pi / 180

	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	sinLambda, cosLambda := math.Sin(lambda), math.Cos(lambda)

	xd := ecef.X - ecefRef.X
	yd := ecef.Y - ecefRef.Y
	zd := ecef.Z - ecefRef.Z

	return ENU{
		East:  -sinLambda*xd + cosLambda*yd,
		North: -sinPhi*cosLambda*xd - sinPhi*sinLambda*yd + cosPhi*zd,
		Up:    cosPhi*cosLambda*xd + cosPhi*sinLambda*yd + sinPhi*zd,
	}
}

// GeoToLocalENU converts a geographic position directly to local ENU
// coordinates relative to ref. This is the conversion the CAT21 target
// report extractor and Aerodrome.GeoToLocal (aerodrome geometry and DGPS
// reference positions) use to turn lat/lon/alt into the flat Cartesian
// plane the rest of the pipeline operates on.
func GeoToLocalENU(p, ref GeoPoint) ENU {
	return ECEFToLocalENU(GeoToECEF(p), ref)
}

// DMSToDeg converts a degrees/minutes/seconds angle to decimal degrees.
func DMSToDeg(deg, min, sec float64) float64 {
	return deg + min/60.0 + sec/3600.0
}
