// collection.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package track

import (
	"sort"
	"time"

	"github.com/avsurv/astmops/aerodrome"
	"github.com/avsurv/astmops/record"
	"github.com/avsurv/astmops/targetreport"
)

// Collection is an ordered set of Tracks sharing one SystemType, indexed
// by begin timestamp. Carries an optional mode-S address (first seen
// wins).
type Collection struct {
	SystemType record.SystemType

	ModeS    uint32
	HasModeS bool

	tracks      map[uint16]*Track
	order       []uint16 // track numbers, kept sorted by begin timestamp
	begin, end  time.Time

	nareas map[aerodrome.NamedArea]bool
	types  map[targetreport.TargetType]bool
}

// NewCollection returns an empty Collection for st.
func NewCollection(st record.SystemType) *Collection {
	return &Collection{
		SystemType: st,
		tracks:     map[uint16]*Track{},
		nareas:     map[aerodrome.NamedArea]bool{},
		types:      map[targetreport.TargetType]bool{},
	}
}

// NewCollectionWithModeS returns an empty Collection for st, tagged with
// mode-S address ms.
func NewCollectionWithModeS(ms uint32, st record.SystemType) *Collection {
	c := NewCollection(st)
	c.SetModeS(ms)
	return c
}

func (c *Collection) SetModeS(ms uint32) {
	if ms <= 0xFFFFFF {
		c.ModeS, c.HasModeS = ms, true
	}
}

// Add inserts t, skipping it if its SystemType doesn't match, it's empty,
// or its track number is already present.
func (c *Collection) Add(t *Track) {
	if c.SystemType == record.UnknownSystem || t.SystemType == record.UnknownSystem || t.IsEmpty() {
		return
	}
	if t.SystemType != c.SystemType || c.ContainsTrackNumber(t.TrackNumber) {
		return
	}

	c.tracks[t.TrackNumber] = t
	c.insertSorted(t.TrackNumber)

	if c.begin.IsZero() || t.BeginTimestamp().Before(c.begin) {
		c.begin = t.BeginTimestamp()
	}
	if c.end.IsZero() || t.EndTimestamp().After(c.end) {
		c.end = t.EndTimestamp()
	}

	for na := range t.NamedAreas() {
		c.nareas[na] = true
	}
	for tt := range t.TargetTypes() {
		c.types[tt] = true
	}

	if !c.HasModeS && t.HasModeS {
		c.ModeS, c.HasModeS = t.ModeS, true
	}
}

func (c *Collection) insertSorted(tn uint16) {
	begin := func(n uint16) time.Time { return c.tracks[n].BeginTimestamp() }
	i := sort.Search(len(c.order), func(i int) bool { return !begin(c.order[i]).Before(begin(tn)) })
	c.order = append(c.order, 0)
	copy(c.order[i+1:], c.order[i:])
	c.order[i] = tn
}

// TrackNumbers returns the set of track numbers in the collection.
func (c *Collection) TrackNumbers() map[uint16]bool {
	out := make(map[uint16]bool, len(c.tracks))
	for tn := range c.tracks {
		out[tn] = true
	}
	return out
}

// Tracks returns the collection's tracks ordered by begin timestamp.
func (c *Collection) Tracks() []*Track {
	out := make([]*Track, 0, len(c.order))
	for _, tn := range c.order {
		out = append(out, c.tracks[tn])
	}
	return out
}

// Track returns the track numbered tn, if present.
func (c *Collection) Track(tn uint16) (*Track, bool) {
	t, ok := c.tracks[tn]
	return t, ok
}

// MakeSubCollection returns a new Collection containing only the tracks
// whose number appears in tns (in tns' order, duplicates/missing
// skipped after first insertion).
func (c *Collection) MakeSubCollection(tns []uint16) *Collection {
	var sub *Collection
	if c.HasModeS {
		sub = NewCollectionWithModeS(c.ModeS, c.SystemType)
	} else {
		sub = NewCollection(c.SystemType)
	}
	for _, tn := range tns {
		if t, ok := c.tracks[tn]; ok {
			sub.Add(t)
		}
	}
	return sub
}

func (c *Collection) ContainsTrackNumber(tn uint16) bool {
	_, ok := c.tracks[tn]
	return ok
}

func (c *Collection) IsEmpty() bool { return len(c.tracks) == 0 }
func (c *Collection) Size() int     { return len(c.tracks) }

func (c *Collection) BeginTimestamp() time.Time { return c.begin }
func (c *Collection) EndTimestamp() time.Time   { return c.end }

// CoversTimestamp reports whether any track in the collection covers ts.
func (c *Collection) CoversTimestamp(ts time.Time) bool {
	for _, t := range c.tracks {
		if t.CoversTimestamp(ts) {
			return true
		}
	}
	return false
}

// TrackAtTimestamp returns the first track (in begin-timestamp order)
// that covers ts.
func (c *Collection) TrackAtTimestamp(ts time.Time) (*Track, bool) {
	for _, tn := range c.order {
		if t := c.tracks[tn]; t.CoversTimestamp(ts) {
			return t, true
		}
	}
	return nil, false
}

func (c *Collection) NamedAreas() map[aerodrome.NamedArea]bool {
	out := make(map[aerodrome.NamedArea]bool, len(c.nareas))
	for k := range c.nareas {
		out[k] = true
	}
	return out
}

func (c *Collection) TargetTypes() map[targetreport.TargetType]bool {
	out := make(map[targetreport.TargetType]bool, len(c.types))
	for k := range c.types {
		out[k] = true
	}
	return out
}
