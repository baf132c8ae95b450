// area.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package aerodrome models the airport surface as a set of named polygon
// collections in local ENU meters, and implements the area locator
// (point-in-polygon area tagging, stage C of the pipeline).
package aerodrome

import "fmt"

// Area is a bitfield-compatible enum partitioning the aerodrome surface
// into leaves (Runway, Taxiway, ApronLane, Stand, Airborne1, Airborne2)
// and groups formed by ORing leaves together.
type Area uint16

const (
	None Area = 0

	Airborne1 Area = 1 << 0
	Airborne2 Area = 1 << 1
	Airborne  Area = Airborne1 | Airborne2

	Runway       Area = 1 << 8
	Taxiway      Area = 1 << 9
	Manoeuvering Area = Runway | Taxiway

	Stand     Area = 1 << 12
	ApronLane Area = 1 << 13
	Apron     Area = Stand | ApronLane

	Movement Area = Manoeuvering | Apron
	Ground   Area = Movement

	All Area = Airborne | Ground
)

var areaNames = map[Area]string{
	None:         "None",
	Airborne1:    "Airborne1",
	Airborne2:    "Airborne2",
	Airborne:     "Airborne",
	Runway:       "Runway",
	Taxiway:      "Taxiway",
	Manoeuvering: "Manoeuvering",
	Stand:        "Stand",
	ApronLane:    "ApronLane",
	Apron:        "Apron",
	Movement:     "Movement",
	All:          "All",
}

func (a Area) String() string {
	if s, ok := areaNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Area(%#04x)", uint16(a))
}

// BelongsToGroup reports whether a belongs to group g: a is non-None and
// g has every bit of a set ((a | g) == g).
func (a Area) BelongsToGroup(g Area) bool {
	return a != None && (a|g) == g
}

// GroundLeaves and AirborneLeaves list every named-area leaf kind, in the
// order the locator tests them for ground and airborne targets.
var GroundLeaves = []Area{Runway, Taxiway, ApronLane, Stand}
var AirborneLeaves = []Area{Airborne1, Airborne2}

// GroupAreas lists the group-level aggregations a result document reports
// alongside each leaf, per spec §4.F's "group area" reporting view.
var GroupAreas = []Area{Manoeuvering, Apron, Movement, Airborne, All}

// NamedArea pairs an Area with the name of the specific polygon entry
// that matched (e.g. Runway, "09L/27R"). The zero value is (None, "").
type NamedArea struct {
	Area Area
	Name string
}

// FullName mirrors the original source's NamedArea::fullName: the area's
// symbolic name, plus "_"+Name when Name is non-empty.
func (n NamedArea) FullName() string {
	if n.Name == "" {
		return n.Area.String()
	}
	return n.Area.String() + "_" + n.Name
}
