// collection.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package trafficperiod

import (
	"sort"
	"time"

	"github.com/avsurv/astmops/track"
)

// Collection is a disjoint, chronologically sorted set of Periods
// covering the union of every Period ever added; any insertion that
// overlaps existing periods splits and re-merges them so the result
// stays disjoint.
type Collection struct {
	periods []Period
}

// NewCollection returns an empty Collection.
func NewCollection() *Collection { return &Collection{} }

// Add inserts p, splitting p and any periods it overlaps at the union
// of their endpoints and unioning traffic over each resulting atomic
// sub-interval; invalid periods are ignored.
func (c *Collection) Add(p Period) {
	if !p.IsValid() {
		return
	}

	var overlapping, rest []Period
	for _, existing := range c.periods {
		if p.Overlaps(existing) {
			overlapping = append(overlapping, existing)
		} else {
			rest = append(rest, existing)
		}
	}

	if len(overlapping) == 0 {
		rest = append(rest, p)
		sortByBegin(rest)
		c.periods = rest
		return
	}

	group := append(overlapping, p)

	endpointSet := map[time.Time]bool{}
	for _, g := range group {
		endpointSet[g.Begin] = true
		endpointSet[g.End] = true
	}
	endpoints := make([]time.Time, 0, len(endpointSet))
	for ts := range endpointSet {
		endpoints = append(endpoints, ts)
	}
	sort.Slice(endpoints, func(i, j int) bool { return endpoints[i].Before(endpoints[j]) })

	for i := 0; i+1 < len(endpoints); i++ {
		segBegin, segEnd := endpoints[i], endpoints[i+1]
		if !segBegin.Before(segEnd) {
			continue
		}

		traffic := map[uint32]bool{}
		for _, g := range group {
			if !g.Begin.After(segBegin) && !segEnd.After(g.End) {
				for addr := range g.traffic {
					traffic[addr] = true
				}
			}
		}

		if len(traffic) > 0 {
			rest = append(rest, NewWithTraffic(segBegin, segEnd, traffic))
		}
	}

	sortByBegin(rest)
	c.periods = rest
}

// AddTrack adds the period derived from trk (see FromTrack).
func (c *Collection) AddTrack(trk *track.Track) {
	c.Add(FromTrack(trk))
}

// AddTrackCollection adds the period derived from every track in col.
func (c *Collection) AddTrackCollection(col *track.Collection) {
	for _, trk := range col.Tracks() {
		c.AddTrack(trk)
	}
}

// Periods returns the collection's periods in chronological order.
func (c *Collection) Periods() []Period {
	out := make([]Period, len(c.periods))
	copy(out, c.periods)
	return out
}

func (c *Collection) IsEmpty() bool { return len(c.periods) == 0 }
func (c *Collection) Size() int     { return len(c.periods) }

func (c *Collection) BeginTimestamp() time.Time {
	if c.IsEmpty() {
		return time.Time{}
	}
	return c.periods[0].Begin
}

func (c *Collection) EndTimestamp() time.Time {
	if c.IsEmpty() {
		return time.Time{}
	}
	return c.periods[len(c.periods)-1].End
}

// Duration returns the sum of every period's duration.
func (c *Collection) Duration() float64 {
	var total float64
	for _, p := range c.periods {
		total += p.Duration()
	}
	return total
}

// ExpectedUpdates returns the sum of every period's ExpectedUpdates.
func (c *Collection) ExpectedUpdates(freq float64) int {
	var total int
	for _, p := range c.periods {
		total += p.ExpectedUpdates(freq)
	}
	return total
}

// ExpectedTargetReports returns the sum of every period's
// ExpectedTargetReports.
func (c *Collection) ExpectedTargetReports(freq float64) int {
	var total int
	for _, p := range c.periods {
		total += p.ExpectedTargetReports(freq)
	}
	return total
}

// CoversTimestamp reports whether any period covers dt.
func (c *Collection) CoversTimestamp(dt time.Time) bool {
	for _, p := range c.periods {
		if p.CoversTimestamp(dt) {
			return true
		}
	}
	return false
}

// Overlaps reports whether p overlaps any period in the collection.
func (c *Collection) Overlaps(p Period) bool {
	for _, existing := range c.periods {
		if p.Overlaps(existing) {
			return true
		}
	}
	return false
}

// RemoveSmallPeriods drops every period whose duration is below
// minDuration seconds.
func (c *Collection) RemoveSmallPeriods(minDuration float64) {
	kept := c.periods[:0]
	for _, p := range c.periods {
		if p.Duration() >= minDuration {
			kept = append(kept, p)
		}
	}
	c.periods = kept
}
