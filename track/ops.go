// ops.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package track

import (
	"sort"
	"time"

	"github.com/avsurv/astmops/targetreport"
)

// HaveTimeIntersection reports whether a and b's [begin, end) spans
// overlap.
func HaveTimeIntersection(a, b *Track) bool {
	return a.begin.Before(b.end) && b.begin.Before(a.end)
}

// HaveSpaceIntersection reports whether a and b's XYZ bounding boxes
// overlap.
func HaveSpaceIntersection(a, b *Track) bool {
	ax0, ax1 := a.XBounds()
	bx0, bx1 := b.XBounds()
	ay0, ay1 := a.YBounds()
	by0, by1 := b.YBounds()
	az0, az1 := a.ZBounds()
	bz0, bz1 := b.ZBounds()
	return ax0 <= bx1 && bx0 <= ax1 &&
		ay0 <= by1 && by0 <= ay1 &&
		az0 <= bz1 && bz0 <= az1
}

// HaveSpaceTimeIntersection reports whether a and b overlap in both time
// and space.
func HaveSpaceTimeIntersection(a, b *Track) bool {
	return HaveTimeIntersection(a, b) && HaveSpaceIntersection(a, b)
}

// Intersect returns the subset of intersectee's reports whose timestamps
// fall within [intersector.begin, intersector.end], or (nil, false) if
// there is no time overlap or the result would be empty.
func Intersect(intersectee, intersector *Track) (*Track, bool) {
	if !HaveTimeIntersection(intersectee, intersector) || intersector.Size() < 2 {
		return nil, false
	}

	t := New(intersectee.SystemType, intersectee.TrackNumber)
	if intersectee.HasModeS {
		t.SetModeS(intersectee.ModeS)
	}

	for _, tr := range intersectee.Reports() {
		if !tr.Timestamp.Before(intersector.begin) && !tr.Timestamp.After(intersector.end) {
			t.Add(tr)
		}
	}

	if t.IsEmpty() {
		return nil, false
	}
	return t, true
}

// Resample returns a Track sampled at exactly the given timestamps: an
// exact match is copied, otherwise x/y/z are linearly interpolated
// between the strictly-bracketing samples (skipped if either is
// missing). Timestamps outside trk's coverage are skipped.
func Resample(trk *Track, timestamps []time.Time) *Track {
	t := New(trk.SystemType, trk.TrackNumber)
	if trk.HasModeS {
		t.SetModeS(trk.ModeS)
	}

	for _, ts := range timestamps {
		if !trk.CoversTimestamp(ts) {
			continue
		}
		if exact, ok := trk.At(ts); ok {
			t.Add(exact)
			continue
		}

		lowerIdx := sort.Search(len(trk.order), func(i int) bool { return !trk.order[i].Before(ts) }) - 1
		upperIdx := lowerIdx + 1
		if lowerIdx < 0 || upperIdx >= len(trk.order) {
			continue
		}

		trL := trk.samples[trk.order[lowerIdx]]
		trU := trk.samples[trk.order[upperIdx]]

		dtTotal := trU.Timestamp.Sub(trL.Timestamp).Seconds()
		dtSample := ts.Sub(trL.Timestamp).Seconds()
		if dtTotal <= 0 || dtSample <= 0 {
			continue
		}
		f := dtSample / dtTotal

		interp := trL
		interp.Timestamp = ts
		interp.X = trL.X + f*(trU.X-trL.X)
		interp.Y = trL.Y + f*(trU.Y-trL.Y)
		if trL.HasZ && trU.HasZ {
			interp.Z = trL.Z + f*(trU.Z-trL.Z)
			interp.HasZ = true
		}

		t.Add(interp)
	}

	return t
}

// Average returns a copy of trk where every sample's (x, y) is replaced
// by the arithmetic mean of the samples within tw/2 of it (at least 2
// samples in the window; otherwise the original position is kept).
func Average(trk *Track, tw float64) *Track {
	out := trk.Clone()
	halfWindow := time.Duration(tw / 2 * float64(time.Second))

	for _, ts := range out.order {
		from := ts.Add(-halfWindow)
		to := ts.Add(halfWindow)

		var sumX, sumY float64
		var n int
		for _, srcTs := range trk.order {
			if srcTs.Before(from) || srcTs.After(to) {
				continue
			}
			s := trk.samples[srcTs]
			sumX += s.X
			sumY += s.Y
			n++
		}

		if n >= 2 {
			sample := out.samples[ts]
			sample.X = sumX / float64(n)
			sample.Y = sumY / float64(n)
			out.samples[ts] = sample
		}
	}

	return out
}

// SplitMode selects how SplitTrackByArea decides the area has changed.
type SplitMode int

const (
	// SplitByArea compares only the bitfield Area.
	SplitByArea SplitMode = iota
	// SplitByNamedArea compares the full (Area, Name) pair.
	SplitByNamedArea
)

// SplitTrackByArea walks trk's reports in time order and emits one Track
// per maximal run of reports sharing the same area (per mode), starting
// a new subtrack each time the area changes. The sum of subtrack sizes
// equals trk's size, and each subtrack's NamedAreas() has exactly one
// element.
func SplitTrackByArea(trk *Track, mode SplitMode) []*Track {
	var out []*Track

	newSub := func() *Track {
		t := New(trk.SystemType, trk.TrackNumber)
		if trk.HasModeS {
			t.SetModeS(trk.ModeS)
		}
		return t
	}

	changed := func(a, b targetreport.TargetReport) bool {
		if mode == SplitByNamedArea {
			return a.NamedArea != b.NamedArea
		}
		return a.NamedArea.Area != b.NamedArea.Area
	}

	sub := newSub()
	var last targetreport.TargetReport
	first := true

	for _, tr := range trk.Reports() {
		if first {
			sub.Add(tr)
			last = tr
			first = false
			continue
		}
		if changed(tr, last) {
			out = append(out, sub)
			sub = newSub()
		}
		sub.Add(tr)
		last = tr
	}
	out = append(out, sub)

	return out
}
