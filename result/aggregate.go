// aggregate.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package result

import (
	"github.com/avsurv/astmops/aerodrome"
	"github.com/avsurv/astmops/mathutil"
	"github.com/avsurv/astmops/perf"
)

// Every *Groups function below produces one PercentGroup/RPAGroup per
// aerodrome.GroupAreas entry: the group's own statistics are a
// counter-sum (not an average-of-percentages) over the leaves
// BelongsToGroup reports as members, recomputed via the same
// Percentage() the leaf counters themselves use, and those leaves are
// listed verbatim as SubAreas.

func urGroups(m map[aerodrome.NamedArea]*perf.URCounter) []PercentGroup {
	areas := areaSet(m)
	out := make([]PercentGroup, 0, len(aerodrome.GroupAreas))
	for _, g := range aerodrome.GroupAreas {
		leaves := namedAreasIn(areas, g)
		sub := make([]Metric, 0, len(leaves))
		var etr, tr int
		for _, na := range leaves {
			c := m[na]
			etr += c.NEtr
			tr += c.NTr
			sub = append(sub, Metric{Area: na.FullName(), Percent: c.Percentage(), N: c.NEtr})
		}
		sortMetrics(sub)
		sum := &perf.URCounter{NEtr: etr, NTr: tr}
		out = append(out, PercentGroup{Area: g.String(), Percent: sum.Percentage(), N: etr, SubAreas: sub})
	}
	return out
}

func pdGroups(m map[aerodrome.NamedArea]*perf.PDCounter) []PercentGroup {
	areas := areaSet(m)
	out := make([]PercentGroup, 0, len(aerodrome.GroupAreas))
	for _, g := range aerodrome.GroupAreas {
		leaves := namedAreasIn(areas, g)
		sub := make([]Metric, 0, len(leaves))
		var ntr, nup int
		for _, na := range leaves {
			c := m[na]
			ntr += c.NTr
			nup += c.NUp
			sub = append(sub, Metric{Area: na.FullName(), Percent: c.Percentage(), N: c.NUp})
		}
		sortMetrics(sub)
		sum := &perf.PDCounter{NTr: ntr, NUp: nup}
		out = append(out, PercentGroup{Area: g.String(), Percent: sum.Percentage(), N: nup, SubAreas: sub})
	}
	return out
}

func pfd2Groups(m map[aerodrome.NamedArea]*perf.PFD2Counter) []PercentGroup {
	areas := areaSet(m)
	out := make([]PercentGroup, 0, len(aerodrome.GroupAreas))
	for _, g := range aerodrome.GroupAreas {
		leaves := namedAreasIn(areas, g)
		sub := make([]Metric, 0, len(leaves))
		var ntr, netr, nu int
		for _, na := range leaves {
			c := m[na]
			ntr += c.NTr
			netr += c.NEtr
			nu += c.NU
			sub = append(sub, Metric{Area: na.FullName(), Percent: c.Percentage(), N: c.NU})
		}
		sortMetrics(sub)
		sum := &perf.PFD2Counter{NTr: ntr, NEtr: netr, NU: nu}
		out = append(out, PercentGroup{Area: g.String(), Percent: sum.Percentage(), N: nu, SubAreas: sub})
	}
	return out
}

func pfdGroups(m map[aerodrome.NamedArea]*perf.PFDCounter) []PercentGroup {
	areas := areaSet(m)
	out := make([]PercentGroup, 0, len(aerodrome.GroupAreas))
	for _, g := range aerodrome.GroupAreas {
		leaves := namedAreasIn(areas, g)
		sub := make([]Metric, 0, len(leaves))
		var nftr, ntr int
		for _, na := range leaves {
			c := m[na]
			nftr += c.NFtr
			ntr += c.NTr
			sub = append(sub, Metric{Area: na.FullName(), Percent: c.Percentage(), N: c.NTr})
		}
		sortMetrics(sub)
		sum := &perf.PFDCounter{NFtr: nftr, NTr: ntr}
		out = append(out, PercentGroup{Area: g.String(), Percent: sum.Percentage(), N: ntr, SubAreas: sub})
	}
	return out
}

func idGroups(m map[aerodrome.NamedArea]*perf.IDCounter, pct func(*perf.IDCounter) (float64, int)) []PercentGroup {
	areas := areaSet(m)
	out := make([]PercentGroup, 0, len(aerodrome.GroupAreas))
	for _, g := range aerodrome.GroupAreas {
		leaves := namedAreasIn(areas, g)
		sub := make([]Metric, 0, len(leaves))
		sum := &perf.IDCounter{}
		for _, na := range leaves {
			c := m[na]
			sum.NItr += c.NItr
			sum.NCitr += c.NCitr
			sum.NEitr += c.NEitr
			p, n := pct(c)
			sub = append(sub, Metric{Area: na.FullName(), Percent: p, N: n})
		}
		sortMetrics(sub)
		p, n := pct(sum)
		out = append(out, PercentGroup{Area: g.String(), Percent: p, N: n, SubAreas: sub})
	}
	return out
}

func plgGroups(m map[aerodrome.NamedArea]*perf.PLGCounter) []PercentGroup {
	areas := areaSet(m)
	out := make([]PercentGroup, 0, len(aerodrome.GroupAreas))
	for _, g := range aerodrome.GroupAreas {
		leaves := namedAreasIn(areas, g)
		sub := make([]Metric, 0, len(leaves))
		var ng, ntr int
		for _, na := range leaves {
			c := m[na]
			ng += c.NG
			ntr += c.NTr
			sub = append(sub, Metric{Area: na.FullName(), Percent: c.Percentage(), N: c.NTr})
		}
		sortMetrics(sub)
		sum := &perf.PLGCounter{NG: ng, NTr: ntr}
		out = append(out, PercentGroup{Area: g.String(), Percent: sum.Percentage(), N: ntr, SubAreas: sub})
	}
	return out
}

func rpaGroups(m map[aerodrome.NamedArea]*perf.RPACounter) []RPAGroup {
	areas := areaSet(m)
	out := make([]RPAGroup, 0, len(aerodrome.GroupAreas))
	for _, g := range aerodrome.GroupAreas {
		leaves := namedAreasIn(areas, g)
		sub := make([]RPAMetric, 0, len(leaves))
		var distances []float64
		for _, na := range leaves {
			c := m[na]
			distances = append(distances, c.Distances...)
			sub = append(sub, RPAMetric{Area: na.FullName(), Mean: c.Mean(), StdDev: c.StdDev(), P95: c.Percentile(95), N: c.N()})
		}
		sortRPAMetrics(sub)
		out = append(out, RPAGroup{
			Area:     g.String(),
			Mean:     mathutil.Mean(distances),
			StdDev:   mathutil.StdDev(distances),
			P95:      mathutil.Percentile(distances, 95),
			N:        len(distances),
			SubAreas: sub,
		})
	}
	return out
}
