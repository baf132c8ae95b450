// document.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package result folds the perf package's raw per-NamedArea counters
// into the reporting hierarchy spec.md §6 describes for each metric —
// group_area -> (primary statistics, sub-areas -> per-sub-area
// statistics) — and formats the result as plain-text tables or as the
// {"type": "astmops 1.0", "<metric>": {...}} JSON document.
package result

import (
	"sort"

	"github.com/avsurv/astmops/aerodrome"
	"github.com/avsurv/astmops/perf"
)

// DocumentType is the fixed "type" discriminator the JSON document's
// root object carries.
const DocumentType = "astmops 1.0"

// Metric is one sub-area row: a primary percentage plus the sample
// count it was computed from.
type Metric struct {
	Area    string
	Percent float64 // NaN if undefined (division by zero)
	N       int
}

// RPAMetric is one sub-area row for the RPA metric, which reports a
// distance distribution instead of a percentage.
type RPAMetric struct {
	Area   string
	Mean   float64
	StdDev float64
	P95    float64
	N      int
}

// PercentGroup is one group-area entry: its own aggregated statistics
// plus the leaf sub-areas belonging to it.
type PercentGroup struct {
	Area     string
	Percent  float64
	N        int
	SubAreas []Metric
}

// RPAGroup is PercentGroup's RPA-shaped counterpart.
type RPAGroup struct {
	Area     string
	Mean     float64
	StdDev   float64
	P95      float64
	N        int
	SubAreas []RPAMetric
}

// Document is the full evaluator report: one series of group entries
// per metric named in spec.md §6's "Outbound — results" list.
type Document struct {
	PicP95 float64

	ED116RPA []RPAGroup
	ED116UR  []PercentGroup
	ED116PD  []PercentGroup
	ED116PFD []PercentGroup

	ED117RPA        []RPAGroup
	ED117UR         []PercentGroup
	ED117PD         []PercentGroup
	ED117PFD        []PercentGroup
	ED117PIDIdent   []PercentGroup
	ED117PIDMode3A  []PercentGroup
	ED117PFIDIdent  []PercentGroup
	ED117PFIDMode3A []PercentGroup
	ED117PLG        []PercentGroup
}

// Build folds res into a Document.
func Build(res *perf.Results) *Document {
	return &Document{
		PicP95: res.PicP95,

		ED116RPA: rpaGroups(res.SmrRPA),
		ED116UR:  urGroups(res.SmrUR),
		ED116PD:  pdGroups(res.SmrPD),
		ED116PFD: pfd2Groups(res.SmrPFD2),

		ED117RPA:        rpaGroups(res.MlatRPA),
		ED117UR:         urGroups(res.MlatUR),
		ED117PD:         pdGroups(res.MlatPD),
		ED117PFD:        pfdGroups(res.MlatPFD),
		ED117PIDIdent:   idGroups(res.MlatPID, idPID),
		ED117PIDMode3A:  idGroups(res.MlatP3A, idPID),
		ED117PFIDIdent:  idGroups(res.MlatPID, idPFID),
		ED117PFIDMode3A: idGroups(res.MlatP3A, idPFID),
		ED117PLG:        plgGroups(res.MlatPLG),
	}
}

func idPID(c *perf.IDCounter) (float64, int)  { return c.PIDPercentage(), c.NItr }
func idPFID(c *perf.IDCounter) (float64, int) { return c.PFIDPercentage(), c.NItr }

func sortMetrics(m []Metric) {
	sort.Slice(m, func(i, j int) bool { return m[i].Area < m[j].Area })
}

func sortRPAMetrics(m []RPAMetric) {
	sort.Slice(m, func(i, j int) bool { return m[i].Area < m[j].Area })
}

// namedAreasIn returns the NamedAreas in areas whose Area belongs to
// group g.
func namedAreasIn(areas map[aerodrome.NamedArea]bool, g aerodrome.Area) []aerodrome.NamedArea {
	var out []aerodrome.NamedArea
	for na := range areas {
		if na.Area.BelongsToGroup(g) {
			out = append(out, na)
		}
	}
	return out
}

func areaSet[C any](m map[aerodrome.NamedArea]C) map[aerodrome.NamedArea]bool {
	s := make(map[aerodrome.NamedArea]bool, len(m))
	for na := range m {
		s[na] = true
	}
	return s
}
