// aerodrome_test.go
// Copyright(c) 2023 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aerodrome

import (
	"testing"

	"github.com/avsurv/astmops/mathutil"
)

func square(x0, x1, y0, y1 float64) Polygon {
	return Polygon{
		{x0, y0}, {x0, y1}, {x1, y1}, {x1, y0}, {x0, y0},
	}
}

func testAerodrome(t *testing.T) *Aerodrome {
	t.Helper()
	a := New(mathutil.GeoPoint{})
	if err := a.AddRunwayElement("09/27", square(-50, 550, -1, 1)); err != nil {
		t.Fatal(err)
	}
	if err := a.AddTaxiwayElement("A", square(290, 410, -1, 1)); err != nil {
		t.Fatal(err)
	}
	return a
}

func TestAreaBelongsToGroup(t *testing.T) {
	cases := []struct {
		area  Area
		group Area
		want  bool
	}{
		{Runway, Manoeuvering, true},
		{Taxiway, Manoeuvering, true},
		{Stand, Manoeuvering, false},
		{Stand, Apron, true},
		{Runway, Ground, true},
		{Airborne1, Ground, false},
		{Airborne1, Airborne, true},
		{None, All, false},
		{Runway, All, true},
	}
	for _, c := range cases {
		if got := c.area.BelongsToGroup(c.group); got != c.want {
			t.Errorf("%v.BelongsToGroup(%v) = %v, want %v", c.area, c.group, got, c.want)
		}
	}
}

func TestLocatePointRunwayThenTaxiway(t *testing.T) {
	a := testAerodrome(t)

	na := a.LocatePoint(mathutil.Point2{0, 0}, 0, true)
	if na.Area != Runway || na.Name != "09/27" {
		t.Errorf("got %v, want Runway/09/27", na)
	}

	na = a.LocatePoint(mathutil.Point2{350, 0}, 0, true)
	if na.Area != Taxiway || na.Name != "A" {
		t.Errorf("got %v, want Taxiway/A", na)
	}

	na = a.LocatePoint(mathutil.Point2{1000, 1000}, 0, true)
	if na.Area != None {
		t.Errorf("got %v, want None", na)
	}
}

func TestLocatePointAirborneHeightGate(t *testing.T) {
	a := New(mathutil.GeoPoint{})
	if err := a.AddAirborne1Element("CTR", square(-1000, 1000, -1000, 1000)); err != nil {
		t.Fatal(err)
	}

	na := a.LocatePoint(mathutil.Point2{0, 0}, 500, false)
	if na.Area != Airborne1 {
		t.Errorf("got %v, want Airborne1 below the height gate", na)
	}

	na = a.LocatePoint(mathutil.Point2{0, 0}, 1000, false)
	if na.Area != None {
		t.Errorf("got %v, want None above the height gate", na)
	}
}

func TestAddElementRejectsUnclosedPolygon(t *testing.T) {
	a := New(mathutil.GeoPoint{})
	open := Polygon{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	if err := a.AddRunwayElement("bad", open); err == nil {
		t.Error("expected an error for a non-closed polygon")
	}
}

func TestHasAnyAllElements(t *testing.T) {
	a := New(mathutil.GeoPoint{})
	if a.HasAnyElements() {
		t.Error("empty aerodrome should not HasAnyElements")
	}
	if err := a.AddRunwayElement("09/27", square(-50, 550, -1, 1)); err != nil {
		t.Fatal(err)
	}
	if !a.HasAnyElements() {
		t.Error("aerodrome with a runway should HasAnyElements")
	}
	if a.HasAllElements() {
		t.Error("aerodrome with only a runway should not HasAllElements")
	}
}

func TestLocatorCachesLookups(t *testing.T) {
	a := testAerodrome(t)
	l := NewLocator(a, 16)

	na1 := l.Locate(mathutil.Point2{0, 0}, 0, true)
	na2 := l.Locate(mathutil.Point2{0, 0}, 0, true)
	if na1 != na2 {
		t.Errorf("cached lookup mismatch: %v != %v", na1, na2)
	}
	if na1.Area != Runway {
		t.Errorf("got %v, want Runway", na1)
	}
}
