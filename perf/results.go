// results.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package perf

import (
	"github.com/avsurv/astmops/aerodrome"
	"github.com/avsurv/astmops/trafficperiod"
)

// Results holds every per-(metric, NamedArea) counter the evaluator
// accumulates. Grouping raw leaves into report-level group areas (per
// spec's "group area" reporting view) is left to the result package,
// which also owns text/JSON formatting; Results exposes only the raw
// counters.
type Results struct {
	PicP95 float64

	SmrRPA  map[aerodrome.NamedArea]*RPACounter
	SmrUR   map[aerodrome.NamedArea]*URCounter
	SmrPD   map[aerodrome.NamedArea]*PDCounter
	SmrPFD2 map[aerodrome.NamedArea]*PFD2Counter

	MlatRPA  map[aerodrome.NamedArea]*RPACounter
	MlatUR   map[aerodrome.NamedArea]*URCounter
	MlatPD   map[aerodrome.NamedArea]*PDCounter
	MlatPFD  map[aerodrome.NamedArea]*PFDCounter
	MlatPID  map[aerodrome.NamedArea]*IDCounter // ident attribute
	MlatP3A  map[aerodrome.NamedArea]*IDCounter // mode-3A attribute
	MlatPLG  map[aerodrome.NamedArea]*PLGCounter

	// pfd2Periods accumulates the TrafficPeriodCollection PFD2 derives
	// its n_u/n_etr denominators from, seeded from every reference
	// subtrack regardless of whether it was ever matched.
	pfd2Periods map[aerodrome.NamedArea]*trafficperiod.Collection
}

func newResults(picP95 float64) *Results {
	return &Results{
		PicP95:      picP95,
		SmrRPA:      map[aerodrome.NamedArea]*RPACounter{},
		SmrUR:       map[aerodrome.NamedArea]*URCounter{},
		SmrPD:       map[aerodrome.NamedArea]*PDCounter{},
		SmrPFD2:     map[aerodrome.NamedArea]*PFD2Counter{},
		MlatRPA:     map[aerodrome.NamedArea]*RPACounter{},
		MlatUR:      map[aerodrome.NamedArea]*URCounter{},
		MlatPD:      map[aerodrome.NamedArea]*PDCounter{},
		MlatPFD:     map[aerodrome.NamedArea]*PFDCounter{},
		MlatPID:     map[aerodrome.NamedArea]*IDCounter{},
		MlatP3A:     map[aerodrome.NamedArea]*IDCounter{},
		MlatPLG:     map[aerodrome.NamedArea]*PLGCounter{},
		pfd2Periods: map[aerodrome.NamedArea]*trafficperiod.Collection{},
	}
}

func (r *Results) pfd2PeriodsFor(na aerodrome.NamedArea) *trafficperiod.Collection {
	c, ok := r.pfd2Periods[na]
	if !ok {
		c = trafficperiod.NewCollection()
		r.pfd2Periods[na] = c
	}
	return c
}

func rpaFor(m map[aerodrome.NamedArea]*RPACounter, na aerodrome.NamedArea) *RPACounter {
	c, ok := m[na]
	if !ok {
		c = &RPACounter{}
		m[na] = c
	}
	return c
}

func urFor(m map[aerodrome.NamedArea]*URCounter, na aerodrome.NamedArea) *URCounter {
	c, ok := m[na]
	if !ok {
		c = &URCounter{}
		m[na] = c
	}
	return c
}

func pdFor(m map[aerodrome.NamedArea]*PDCounter, na aerodrome.NamedArea) *PDCounter {
	c, ok := m[na]
	if !ok {
		c = &PDCounter{}
		m[na] = c
	}
	return c
}

func pfd2For(m map[aerodrome.NamedArea]*PFD2Counter, na aerodrome.NamedArea) *PFD2Counter {
	c, ok := m[na]
	if !ok {
		c = &PFD2Counter{}
		m[na] = c
	}
	return c
}

func pfdFor(m map[aerodrome.NamedArea]*PFDCounter, na aerodrome.NamedArea) *PFDCounter {
	c, ok := m[na]
	if !ok {
		c = &PFDCounter{}
		m[na] = c
	}
	return c
}

func idFor(m map[aerodrome.NamedArea]*IDCounter, na aerodrome.NamedArea) *IDCounter {
	c, ok := m[na]
	if !ok {
		c = &IDCounter{}
		m[na] = c
	}
	return c
}

func plgFor(m map[aerodrome.NamedArea]*PLGCounter, na aerodrome.NamedArea) *PLGCounter {
	c, ok := m[na]
	if !ok {
		c = &PLGCounter{}
		m[na] = c
	}
	return c
}
