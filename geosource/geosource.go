// geosource.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package geosource reads the aerodrome-geometry file stage C's locator
// needs: a reference point plus per-area-kind named polygon rings in
// geographic (lat, lon) coordinates, converted to an *aerodrome.Aerodrome
// with its polygons already projected to local ENU meters.
package geosource

import (
	"fmt"
	"io"
	"os"

	"github.com/avsurv/astmops/aerodrome"
	"github.com/avsurv/astmops/mathutil"
	"github.com/avsurv/astmops/util"
)

// vertex is one (lat, lon) ring point, geographic degrees.
type vertex struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// geometry is the on-disk shape: a WGS-84 reference point plus one named
// ring set per area kind. Every ring must close (first vertex == last).
type geometry struct {
	ReferencePoint struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
		Alt float64 `json:"alt"`
	} `json:"referencePoint"`

	Areas struct {
		Runway    map[string][]vertex `json:"runway"`
		Taxiway   map[string][]vertex `json:"taxiway"`
		ApronLane map[string][]vertex `json:"apronLane"`
		Stand     map[string][]vertex `json:"stand"`
		Airborne1 map[string][]vertex `json:"airborne1"`
		Airborne2 map[string][]vertex `json:"airborne2"`
	} `json:"areas"`
}

// Load reads an aerodrome geometry file from path and builds the
// corresponding *aerodrome.Aerodrome, with every ring already projected
// to local ENU meters relative to the file's reference point.
func Load(path string) (*aerodrome.Aerodrome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses an aerodrome geometry document from r.
func Read(r io.Reader) (*aerodrome.Aerodrome, error) {
	var g geometry
	if err := util.UnmarshalJSON(r, &g); err != nil {
		return nil, fmt.Errorf("geosource: %w", err)
	}

	arp := mathutil.GeoPoint{
		LatDeg: g.ReferencePoint.Lat,
		LonDeg: g.ReferencePoint.Lon,
		AltM:   g.ReferencePoint.Alt,
	}
	ad := aerodrome.New(arp)

	adders := []struct {
		rings map[string][]vertex
		add   func(name string, pgn aerodrome.Polygon) error
	}{
		{g.Areas.Runway, ad.AddRunwayElement},
		{g.Areas.Taxiway, ad.AddTaxiwayElement},
		{g.Areas.ApronLane, ad.AddApronLaneElement},
		{g.Areas.Stand, ad.AddStandElement},
		{g.Areas.Airborne1, ad.AddAirborne1Element},
		{g.Areas.Airborne2, ad.AddAirborne2Element},
	}

	for _, a := range adders {
		for name, ring := range a.rings {
			pgn, err := toPolygon(ad, ring)
			if err != nil {
				return nil, fmt.Errorf("geosource: %q: %w", name, err)
			}
			if err := a.add(name, pgn); err != nil {
				return nil, fmt.Errorf("geosource: %w", err)
			}
		}
	}

	return ad, nil
}

func toPolygon(ad *aerodrome.Aerodrome, ring []vertex) (aerodrome.Polygon, error) {
	if len(ring) == 0 {
		return nil, fmt.Errorf("empty polygon")
	}
	pgn := make(aerodrome.Polygon, len(ring))
	for i, v := range ring {
		pgn[i] = ad.GeoToLocal(mathutil.GeoPoint{LatDeg: v.Lat, LonDeg: v.Lon})
	}
	return pgn, nil
}
