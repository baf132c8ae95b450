// builder.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package track

import (
	"sort"

	"github.com/avsurv/astmops/record"
	"github.com/avsurv/astmops/targetreport"
)

// Builder implements the Track Builder (stage D of the pipeline): it
// groups a stream of Target Reports into per-(SystemType, track_number)
// Tracks, deriving bounds and lifetime metadata incrementally as each
// report arrives.
type Builder struct {
	tracks map[record.SystemType]map[uint16]*Track
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{tracks: map[record.SystemType]map[uint16]*Track{}}
}

// Add routes tr into the Track for its (SystemType, TrackNumber),
// creating one on first sight, and returns that Track.
func (b *Builder) Add(tr targetreport.TargetReport) *Track {
	if b.tracks[tr.SystemType] == nil {
		b.tracks[tr.SystemType] = map[uint16]*Track{}
	}
	t, ok := b.tracks[tr.SystemType][tr.TrackNumber]
	if !ok {
		t = New(tr.SystemType, tr.TrackNumber)
		b.tracks[tr.SystemType][tr.TrackNumber] = t
	}
	t.Add(tr)
	return t
}

// Tracks returns every accumulated Track for st, ordered by begin
// timestamp, then by track number.
func (b *Builder) Tracks(st record.SystemType) []*Track {
	tns := make([]uint16, 0, len(b.tracks[st]))
	for tn := range b.tracks[st] {
		tns = append(tns, tn)
	}
	sort.Slice(tns, func(i, j int) bool {
		bi, bj := b.tracks[st][tns[i]].BeginTimestamp(), b.tracks[st][tns[j]].BeginTimestamp()
		if bi.Equal(bj) {
			return tns[i] < tns[j]
		}
		return bi.Before(bj)
	})
	out := make([]*Track, len(tns))
	for i, tn := range tns {
		out[i] = b.tracks[st][tn]
	}
	return out
}

// All returns every accumulated Track across every SystemType, ordered
// by SystemType then begin timestamp.
func (b *Builder) All() []*Track {
	sts := make([]record.SystemType, 0, len(b.tracks))
	for st := range b.tracks {
		sts = append(sts, st)
	}
	sort.Slice(sts, func(i, j int) bool { return sts[i] < sts[j] })

	var out []*Track
	for _, st := range sts {
		out = append(out, b.Tracks(st)...)
	}
	return out
}

// Collection builds a Collection holding every Track of st (see
// NewCollection).
func (b *Builder) Collection(st record.SystemType) *Collection {
	c := NewCollection(st)
	for _, t := range b.Tracks(st) {
		c.Add(t)
	}
	return c
}
