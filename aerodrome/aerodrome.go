// aerodrome.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aerodrome

import (
	"fmt"
	"sort"

	"github.com/avsurv/astmops/mathutil"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Polygon is a closed ring of vertices in local ENU meters (first vertex
// equal to last, per spec.md's Aerodrome invariant).
type Polygon []mathutil.Point2

// elements maps a named area entry (e.g. a runway designator) to the one
// or more polygons that make it up.
type elements map[string][]Polygon

// Aerodrome holds the geographic reference point and the six named-area
// polygon collections (runway, taxiway, apron lane, stand, and the two
// airborne layers) that the locator tests target report positions
// against.
type Aerodrome struct {
	ARP mathutil.GeoPoint

	runway    elements
	taxiway   elements
	apronLane elements
	stand     elements
	airborne1 elements
	airborne2 elements
}

// New returns an empty Aerodrome referenced to arp.
func New(arp mathutil.GeoPoint) *Aerodrome {
	return &Aerodrome{
		ARP:       arp,
		runway:    elements{},
		taxiway:   elements{},
		apronLane: elements{},
		stand:     elements{},
		airborne1: elements{},
		airborne2: elements{},
	}
}

func addElement(col elements, name string, pgn Polygon) error {
	if len(pgn) == 0 {
		return fmt.Errorf("%q: empty polygon", name)
	}
	first, last := pgn[0], pgn[len(pgn)-1]
	if first != last {
		return fmt.Errorf("%q: polygon is not closed (first vertex != last)", name)
	}
	col[name] = append(col[name], pgn)
	return nil
}

func (a *Aerodrome) AddRunwayElement(name string, pgn Polygon) error {
	return addElement(a.runway, name, pgn)
}

func (a *Aerodrome) AddTaxiwayElement(name string, pgn Polygon) error {
	return addElement(a.taxiway, name, pgn)
}

func (a *Aerodrome) AddApronLaneElement(name string, pgn Polygon) error {
	return addElement(a.apronLane, name, pgn)
}

func (a *Aerodrome) AddStandElement(name string, pgn Polygon) error {
	return addElement(a.stand, name, pgn)
}

func (a *Aerodrome) AddAirborne1Element(name string, pgn Polygon) error {
	return addElement(a.airborne1, name, pgn)
}

func (a *Aerodrome) AddAirborne2Element(name string, pgn Polygon) error {
	return addElement(a.airborne2, name, pgn)
}

// HasAnyElements reports whether at least one polygon has been added to
// any collection. The locator requires this before it can be called.
func (a *Aerodrome) HasAnyElements() bool {
	return len(a.runway) > 0 || len(a.taxiway) > 0 || len(a.apronLane) > 0 ||
		len(a.stand) > 0 || len(a.airborne1) > 0 || len(a.airborne2) > 0
}

// HasAllElements reports whether every collection has at least one
// polygon.
func (a *Aerodrome) HasAllElements() bool {
	return len(a.runway) > 0 && len(a.taxiway) > 0 && len(a.apronLane) > 0 &&
		len(a.stand) > 0 && len(a.airborne1) > 0 && len(a.airborne2) > 0
}

// GeoToLocal converts a geographic position to local ENU meters relative
// to the aerodrome's ARP.
func (a *Aerodrome) GeoToLocal(p mathutil.GeoPoint) mathutil.Point2 {
	enu := mathutil.GeoToLocalENU(p, a.ARP)
	return mathutil.Point2{enu.East, enu.North}
}

func collectionContainsPoint(polys []Polygon, pt mathutil.Point2) bool {
	for _, pgn := range polys {
		if mathutil.PointInPolygon(pt, []mathutil.Point2(pgn)) {
			return true
		}
	}
	return false
}

// areasContainingPoint returns the name of the first entry of col, taken
// in the given order, whose polygon set contains pt, if any. The
// original source's std::optional<QString> is modeled as (string, bool).
func areasContainingPoint(col elements, pt mathutil.Point2, order []string) (string, bool) {
	for _, name := range order {
		if collectionContainsPoint(col[name], pt) {
			return name, true
		}
	}
	return "", false
}

// namesOf returns col's keys sorted by name, so the locator's lookup
// order is deterministic and doesn't depend on Go's randomized map
// iteration.
func namesOf(col elements) []string {
	names := make([]string, 0, len(col))
	for name := range col {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// airborneLayerHeightGateM is the altitude (meters) above which the
// locator no longer considers a point to be in Airborne1/Airborne2 (2500
// ft, per the original source's "hgt <= 762" gate).
const airborneLayerHeightGateM = 762.0

// LocatePoint returns the NamedArea containing pos, testing the ground
// layers (Runway, Taxiway, ApronLane, Stand) in that order when onGround
// is true, or the airborne layers (Airborne1, Airborne2, gated by
// altitude) when false. Returns (None, "") if nothing matches. The
// Aerodrome must HasAnyElements(); calling this otherwise is a caller
// error.
func (a *Aerodrome) LocatePoint(pos mathutil.Point2, altM float64, onGround bool) NamedArea {
	if !a.HasAnyElements() {
		panic("aerodrome.LocatePoint: aerodrome has no elements")
	}

	if onGround {
		if name, ok := areasContainingPoint(a.runway, pos, namesOf(a.runway)); ok {
			return NamedArea{Area: Runway, Name: name}
		}
		if name, ok := areasContainingPoint(a.taxiway, pos, namesOf(a.taxiway)); ok {
			return NamedArea{Area: Taxiway, Name: name}
		}
		if name, ok := areasContainingPoint(a.apronLane, pos, namesOf(a.apronLane)); ok {
			return NamedArea{Area: ApronLane, Name: name}
		}
		if name, ok := areasContainingPoint(a.stand, pos, namesOf(a.stand)); ok {
			return NamedArea{Area: Stand, Name: name}
		}
		return NamedArea{}
	}

	if altM <= airborneLayerHeightGateM {
		if name, ok := areasContainingPoint(a.airborne1, pos, namesOf(a.airborne1)); ok {
			return NamedArea{Area: Airborne1, Name: name}
		}
		if name, ok := areasContainingPoint(a.airborne2, pos, namesOf(a.airborne2)); ok {
			return NamedArea{Area: Airborne2, Name: name}
		}
	}
	return NamedArea{}
}

///////////////////////////////////////////////////////////////////////////
// Locator

// lookupKey is the (position, altitude, ground-flag) tuple the locator
// caches results under. Position and altitude are rounded to the nearest
// meter: tracks that
// loiter in one area produce many repeat lookups at effectively the same
// spot, and the area partition is coarse relative to a meter.
type lookupKey struct {
	x, y     int64
	alt      int64
	onGround bool
}

func keyFor(pos mathutil.Point2, altM float64, onGround bool) lookupKey {
	return lookupKey{x: round(pos[0]), y: round(pos[1]), alt: round(altM), onGround: onGround}
}

func round(v float64) int64 {
	if v < 0 {
		return int64(v - 0.5)
	}
	return int64(v + 0.5)
}

// Locator wraps an Aerodrome with an LRU cache of recent point lookups,
// avoiding repeat odd-even polygon scans for tracks that loiter in one
// area (the same role the teacher gives an LRU cache for repeated navdata
// lookups).
type Locator struct {
	aerodrome *Aerodrome
	cache     *lru.Cache[lookupKey, NamedArea]
}

// NewLocator returns a Locator over ad with a cache sized for cacheSize
// distinct recent positions.
func NewLocator(ad *Aerodrome, cacheSize int) *Locator {
	if cacheSize <= 0 {
		cacheSize = 4096
	}
	c, err := lru.New[lookupKey, NamedArea](cacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which we've
		// already guarded against.
		panic(err)
	}
	return &Locator{aerodrome: ad, cache: c}
}

// Locate returns the NamedArea containing pos, using the cache when
// possible.
func (l *Locator) Locate(pos mathutil.Point2, altM float64, onGround bool) NamedArea {
	key := keyFor(pos, altM, onGround)
	if v, ok := l.cache.Get(key); ok {
		return v
	}
	v := l.aerodrome.LocatePoint(pos, altM, onGround)
	l.cache.Add(key, v)
	return v
}
