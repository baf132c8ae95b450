// write.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package result

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/iancoleman/orderedmap"
)

// WriteText renders d as a columnar plain-text report: one table per
// metric, group rows followed by their indented sub-area rows, in the
// teacher's tabwriter idiom.
func WriteText(w io.Writer, d *Document) error {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)

	fmt.Fprintf(tw, "PIC P95 reference threshold\t%s\n\n", fmtDistance(d.PicP95))

	writeRPATable(tw, "ED116RPA", d.ED116RPA)
	writeTable(tw, "ED116UR", d.ED116UR)
	writeTable(tw, "ED116PD", d.ED116PD)
	writeTable(tw, "ED116PFD", d.ED116PFD)

	writeRPATable(tw, "ED117RPA", d.ED117RPA)
	writeTable(tw, "ED117UR", d.ED117UR)
	writeTable(tw, "ED117PD", d.ED117PD)
	writeTable(tw, "ED117PFD", d.ED117PFD)
	writeTable(tw, "ED117PID_Ident", d.ED117PIDIdent)
	writeTable(tw, "ED117PID_Mode3A", d.ED117PIDMode3A)
	writeTable(tw, "ED117PFID_Ident", d.ED117PFIDIdent)
	writeTable(tw, "ED117PFID_Mode3A", d.ED117PFIDMode3A)
	writeTable(tw, "ED117PLG", d.ED117PLG)

	return tw.Flush()
}

func writeTable(tw *tabwriter.Writer, name string, groups []PercentGroup) {
	if len(groups) == 0 {
		return
	}
	fmt.Fprintf(tw, "%s\tAREA\t%%\tN\n", name)
	for _, g := range groups {
		fmt.Fprintf(tw, "\t%s\t%s\t%d\n", g.Area, fmtPercent(g.Percent), g.N)
		for _, r := range g.SubAreas {
			fmt.Fprintf(tw, "\t  %s\t%s\t%d\n", r.Area, fmtPercent(r.Percent), r.N)
		}
	}
	fmt.Fprintln(tw)
}

func writeRPATable(tw *tabwriter.Writer, name string, groups []RPAGroup) {
	if len(groups) == 0 {
		return
	}
	fmt.Fprintf(tw, "%s\tAREA\tMEAN\tSTDDEV\tP95\tN\n", name)
	for _, g := range groups {
		fmt.Fprintf(tw, "\t%s\t%s\t%s\t%s\t%d\n", g.Area, fmtDistance(g.Mean), fmtDistance(g.StdDev), fmtDistance(g.P95), g.N)
		for _, r := range g.SubAreas {
			fmt.Fprintf(tw, "\t  %s\t%s\t%s\t%s\t%d\n", r.Area, fmtDistance(r.Mean), fmtDistance(r.StdDev), fmtDistance(r.P95), r.N)
		}
	}
	fmt.Fprintln(tw)
}

func fmtPercent(p float64) string {
	if math.IsNaN(p) {
		return "NaN"
	}
	return fmt.Sprintf("%.2f", p*100)
}

func fmtDistance(d float64) string {
	if math.IsNaN(d) {
		return "NaN"
	}
	return fmt.Sprintf("%.2f", d)
}

// WriteJSON renders d as {"type": "astmops 1.0", "<metric>": {...}}
// per spec.md §6, using an OrderedMap so group/sub-area keys keep a
// stable, human-sensible order instead of Go's randomized map order.
func WriteJSON(w io.Writer, d *Document) error {
	doc := orderedmap.New()
	doc.Set("type", DocumentType)
	doc.Set("picP95", jsonFloat(d.PicP95))

	doc.Set("ED116RPA", rpaGroupsJSON(d.ED116RPA))
	doc.Set("ED116UR", percentGroupsJSON(d.ED116UR))
	doc.Set("ED116PD", percentGroupsJSON(d.ED116PD))
	doc.Set("ED116PFD", percentGroupsJSON(d.ED116PFD))

	doc.Set("ED117RPA", rpaGroupsJSON(d.ED117RPA))
	doc.Set("ED117UR", percentGroupsJSON(d.ED117UR))
	doc.Set("ED117PD", percentGroupsJSON(d.ED117PD))
	doc.Set("ED117PFD", percentGroupsJSON(d.ED117PFD))
	doc.Set("ED117PID_Ident", percentGroupsJSON(d.ED117PIDIdent))
	doc.Set("ED117PID_Mode3A", percentGroupsJSON(d.ED117PIDMode3A))
	doc.Set("ED117PFID_Ident", percentGroupsJSON(d.ED117PFIDIdent))
	doc.Set("ED117PFID_Mode3A", percentGroupsJSON(d.ED117PFIDMode3A))
	doc.Set("ED117PLG", percentGroupsJSON(d.ED117PLG))

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func percentGroupsJSON(groups []PercentGroup) *orderedmap.OrderedMap {
	m := orderedmap.New()
	for _, g := range groups {
		gm := orderedmap.New()
		gm.Set("percent", jsonFloat(g.Percent))
		gm.Set("n", g.N)
		gm.Set("subAreas", metricsJSON(g.SubAreas))
		m.Set(g.Area, gm)
	}
	return m
}

func rpaGroupsJSON(groups []RPAGroup) *orderedmap.OrderedMap {
	m := orderedmap.New()
	for _, g := range groups {
		gm := orderedmap.New()
		gm.Set("mean", jsonFloat(g.Mean))
		gm.Set("stddev", jsonFloat(g.StdDev))
		gm.Set("p95", jsonFloat(g.P95))
		gm.Set("n", g.N)
		gm.Set("subAreas", rpaMetricsJSON(g.SubAreas))
		m.Set(g.Area, gm)
	}
	return m
}

func metricsJSON(rows []Metric) *orderedmap.OrderedMap {
	m := orderedmap.New()
	for _, r := range rows {
		rm := orderedmap.New()
		rm.Set("percent", jsonFloat(r.Percent))
		rm.Set("n", r.N)
		m.Set(r.Area, rm)
	}
	return m
}

func rpaMetricsJSON(rows []RPAMetric) *orderedmap.OrderedMap {
	m := orderedmap.New()
	for _, r := range rows {
		rm := orderedmap.New()
		rm.Set("mean", jsonFloat(r.Mean))
		rm.Set("stddev", jsonFloat(r.StdDev))
		rm.Set("p95", jsonFloat(r.P95))
		rm.Set("n", r.N)
		m.Set(r.Area, rm)
	}
	return m
}

// jsonFloat rounds f to 2 decimals (spec.md's fixed numeric formatting)
// and renders NaN as null: encoding/json cannot marshal NaN directly,
// and spec.md's failure semantics calls for NaN on division-by-zero,
// which a reader expects to see as an absent value.
func jsonFloat(f float64) interface{} {
	if math.IsNaN(f) {
		return nil
	}
	return math.Round(f*100) / 100
}
