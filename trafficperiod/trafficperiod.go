// trafficperiod.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package trafficperiod implements the TrafficPeriod/Collection
// abstraction used by the PFD2 (Smr false-detection) metric: half-open time intervals carrying the set of mode-S
// addresses present during them, merged into a disjoint, chronologically
// sorted collection.
package trafficperiod

import (
	"math"
	"sort"
	"time"

	"github.com/avsurv/astmops/track"
)

// Period is a half-open time interval [Begin, End) carrying the set of
// mode-S addresses seen during it. The zero value is invalid.
type Period struct {
	Begin, End time.Time
	traffic    map[uint32]bool
}

// New returns the period [begin, end) with no traffic, or an invalid
// zero Period if begin is not strictly before end.
func New(begin, end time.Time) Period {
	return NewWithTraffic(begin, end, nil)
}

// NewWithTraffic returns the period [begin, end) seeded with traffic,
// or an invalid zero Period if begin is not strictly before end.
func NewWithTraffic(begin, end time.Time, traffic map[uint32]bool) Period {
	if begin.IsZero() || end.IsZero() || !begin.Before(end) {
		return Period{}
	}
	p := Period{Begin: begin, End: end, traffic: map[uint32]bool{}}
	for addr := range traffic {
		p.traffic[addr] = true
	}
	return p
}

// FromTrack returns the period spanning trk, carrying its mode-S
// address, or an invalid zero Period if trk has none or is empty.
func FromTrack(trk *track.Track) Period {
	if trk.IsEmpty() || !trk.HasModeS {
		return Period{}
	}
	return NewWithTraffic(trk.BeginTimestamp(), trk.EndTimestamp(), map[uint32]bool{trk.ModeS: true})
}

// IsValid reports whether p has a positive duration and non-empty
// traffic.
func (p Period) IsValid() bool {
	return !p.Begin.IsZero() && !p.End.IsZero() && p.Begin.Before(p.End) && len(p.traffic) > 0
}

// Duration returns the period's span in seconds.
func (p Period) Duration() float64 {
	return p.End.Sub(p.Begin).Seconds()
}

// TrafficCount returns the number of distinct mode-S addresses.
func (p Period) TrafficCount() int { return len(p.traffic) }

// Traffic returns a copy of p's mode-S address set.
func (p Period) Traffic() map[uint32]bool {
	out := make(map[uint32]bool, len(p.traffic))
	for addr := range p.traffic {
		out[addr] = true
	}
	return out
}

// HasTarget reports whether addr was present during p.
func (p Period) HasTarget(addr uint32) bool { return p.traffic[addr] }

// CoversTimestamp reports whether dt falls within [Begin, End).
func (p Period) CoversTimestamp(dt time.Time) bool {
	if !p.IsValid() {
		return false
	}
	return !dt.Before(p.Begin) && dt.Before(p.End)
}

// Overlaps reports whether p and other's spans intersect.
func (p Period) Overlaps(other Period) bool {
	return p.Begin.Before(other.End) && other.Begin.Before(p.End)
}

// ExpectedUpdates returns floor(duration * freq), the number of
// updates expected at freq Hz over p's span.
func (p Period) ExpectedUpdates(freq float64) int {
	return int(math.Floor(p.Duration() * freq))
}

// ExpectedTargetReports returns ExpectedUpdates(freq) times the number
// of distinct targets present, the number of target reports expected
// from every target updating at freq Hz.
func (p Period) ExpectedTargetReports(freq float64) int {
	return p.ExpectedUpdates(freq) * p.TrafficCount()
}

func sortByBegin(periods []Period) {
	sort.Slice(periods, func(i, j int) bool { return periods[i].Begin.Before(periods[j].Begin) })
}
