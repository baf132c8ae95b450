// track.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package track implements the Track Builder (stage D of the pipeline):
// it aggregates Target Reports per (SystemType, track_number) into
// Tracks, groups Tracks into TrackCollections, and provides the
// intersect/resample/average/split operations the associator and
// performance evaluator run over them.
package track

import (
	"math"
	"sort"
	"time"

	"github.com/avsurv/astmops/aerodrome"
	"github.com/avsurv/astmops/record"
	"github.com/avsurv/astmops/targetreport"
)

// bounds is a [min, max] pair, NaN until the first sample arrives.
type bounds struct {
	Min, Max float64
}

func newBounds() bounds { return bounds{Min: math.NaN(), Max: math.NaN()} }

func (b *bounds) observe(v float64) {
	if math.IsNaN(v) {
		return
	}
	if math.IsNaN(b.Min) || v < b.Min {
		b.Min = v
	}
	if math.IsNaN(b.Max) || v > b.Max {
		b.Max = v
	}
}

// Track is a continuous sequence of Target Reports for one target,
// indexed chronologically by timestamp. All contained reports share
// SystemType and TrackNumber; << silently ignores a report that doesn't.
type Track struct {
	SystemType  record.SystemType
	TrackNumber uint16

	ModeS    uint32
	HasModeS bool

	samples map[time.Time]targetreport.TargetReport
	order   []time.Time // kept sorted; samples sharing a timestamp keep insertion order

	begin, end time.Time

	nareas map[aerodrome.NamedArea]bool
	types  map[targetreport.TargetType]bool

	xBounds, yBounds, zBounds bounds
}

// New returns an empty Track for (st, tn).
func New(st record.SystemType, tn uint16) *Track {
	return &Track{
		SystemType: st,
		TrackNumber: tn,
		samples:    map[time.Time]targetreport.TargetReport{},
		nareas:     map[aerodrome.NamedArea]bool{},
		types:      map[targetreport.TargetType]bool{},
		xBounds:    newBounds(),
		yBounds:    newBounds(),
		zBounds:    newBounds(),
	}
}

// NewWithModeS returns an empty Track for (st, tn), tagged with mode-S
// address ms (ignored if it doesn't fit 24 bits).
func NewWithModeS(ms uint32, st record.SystemType, tn uint16) *Track {
	t := New(st, tn)
	t.SetModeS(ms)
	return t
}

// SetModeS assigns ms to the track if it fits a 24-bit Mode-S address.
func (t *Track) SetModeS(ms uint32) {
	if ms <= 0xFFFFFF {
		t.ModeS, t.HasModeS = ms, true
	}
}

// Add inserts tr into the track if it belongs (matching SystemType and
// TrackNumber), updating every derived aggregate.
func (t *Track) Add(tr targetreport.TargetReport) {
	if tr.SystemType != t.SystemType || tr.TrackNumber != t.TrackNumber {
		return
	}

	if _, exists := t.samples[tr.Timestamp]; !exists {
		t.insertSorted(tr.Timestamp)
	}
	t.samples[tr.Timestamp] = tr

	if t.begin.IsZero() || tr.Timestamp.Before(t.begin) {
		t.begin = tr.Timestamp
	}
	if t.end.IsZero() || tr.Timestamp.After(t.end) {
		t.end = tr.Timestamp
	}

	t.xBounds.observe(tr.X)
	t.yBounds.observe(tr.Y)
	if tr.HasZ {
		t.zBounds.observe(tr.Z)
	}

	t.nareas[tr.NamedArea] = true
	t.types[tr.TargetType] = true

	if !t.HasModeS && tr.HasModeS {
		t.ModeS, t.HasModeS = tr.ModeS, true
	}
}

// AddAll inserts every report in trs, in order.
func (t *Track) AddAll(trs []targetreport.TargetReport) {
	for _, tr := range trs {
		t.Add(tr)
	}
}

func (t *Track) insertSorted(ts time.Time) {
	i := sort.Search(len(t.order), func(i int) bool { return !t.order[i].Before(ts) })
	t.order = append(t.order, time.Time{})
	copy(t.order[i+1:], t.order[i:])
	t.order[i] = ts
}

// IsEmpty reports whether the track has no samples.
func (t *Track) IsEmpty() bool { return len(t.order) == 0 }

// Size returns the number of samples.
func (t *Track) Size() int { return len(t.order) }

// Reports returns the track's samples in chronological order.
func (t *Track) Reports() []targetreport.TargetReport {
	out := make([]targetreport.TargetReport, 0, len(t.order))
	for _, ts := range t.order {
		out = append(out, t.samples[ts])
	}
	return out
}

// Timestamps returns the track's sample timestamps in chronological order.
func (t *Track) Timestamps() []time.Time {
	out := make([]time.Time, len(t.order))
	copy(out, t.order)
	return out
}

// At returns the sample at exactly ts, if any.
func (t *Track) At(ts time.Time) (targetreport.TargetReport, bool) {
	tr, ok := t.samples[ts]
	return tr, ok
}

func (t *Track) BeginTimestamp() time.Time { return t.begin }
func (t *Track) EndTimestamp() time.Time   { return t.end }

// Duration returns the track's time span in seconds, or NaN if empty.
func (t *Track) Duration() float64 {
	if t.begin.IsZero() || t.end.IsZero() {
		return math.NaN()
	}
	return t.end.Sub(t.begin).Seconds()
}

// CoversTimestamp reports whether ts falls within [begin, end].
func (t *Track) CoversTimestamp(ts time.Time) bool {
	if t.begin.IsZero() || t.end.IsZero() {
		return false
	}
	return !ts.Before(t.begin) && !ts.After(t.end)
}

func (t *Track) XBounds() (float64, float64) { return t.xBounds.Min, t.xBounds.Max }
func (t *Track) YBounds() (float64, float64) { return t.yBounds.Min, t.yBounds.Max }
func (t *Track) ZBounds() (float64, float64) { return t.zBounds.Min, t.zBounds.Max }

// NamedAreas returns the set of distinct NamedAreas crossed.
func (t *Track) NamedAreas() map[aerodrome.NamedArea]bool {
	out := make(map[aerodrome.NamedArea]bool, len(t.nareas))
	for k := range t.nareas {
		out[k] = true
	}
	return out
}

// TargetTypes returns the set of distinct TargetType hints seen.
func (t *Track) TargetTypes() map[targetreport.TargetType]bool {
	out := make(map[targetreport.TargetType]bool, len(t.types))
	for k := range t.types {
		out[k] = true
	}
	return out
}

// Clone returns a deep copy of t: mutating the copy's samples, bounds, or
// sets never affects t.
func (t *Track) Clone() *Track {
	c := New(t.SystemType, t.TrackNumber)
	if t.HasModeS {
		c.SetModeS(t.ModeS)
	}
	c.AddAll(t.Reports())
	return c
}

// Intersect keeps only the samples of t whose timestamp lies within
// other's [begin, end] span.
func (t *Track) Intersect(other *Track) {
	if t.IsEmpty() {
		return
	}
	kept := New(t.SystemType, t.TrackNumber)
	if t.HasModeS {
		kept.SetModeS(t.ModeS)
	}
	for _, tr := range t.Reports() {
		if !tr.Timestamp.Before(other.begin) && !tr.Timestamp.After(other.end) {
			kept.Add(tr)
		}
	}
	*t = *kept
}
