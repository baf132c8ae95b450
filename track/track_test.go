// track_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package track

import (
	"testing"
	"time"

	"github.com/avsurv/astmops/aerodrome"
	"github.com/avsurv/astmops/record"
	"github.com/avsurv/astmops/targetreport"
)

func tr(st record.SystemType, tn uint16, t time.Time, x, y float64, area aerodrome.Area) targetreport.TargetReport {
	return targetreport.TargetReport{
		SystemType:  st,
		TrackNumber: tn,
		Timestamp:   t,
		X:           x,
		Y:           y,
		NamedArea:   aerodrome.NamedArea{Area: area},
	}
}

func ts(s int) time.Time {
	return time.Date(2020, 5, 5, 10, 0, s, 0, time.UTC)
}

func TestTrackAddIgnoresMismatchedReport(t *testing.T) {
	trk := New(record.Smr, 1)
	trk.Add(tr(record.Smr, 2, ts(0), 0, 0, aerodrome.Runway))
	if !trk.IsEmpty() {
		t.Error("expected mismatched track number to be ignored")
	}
}

func TestTrackBoundsAndTimestamps(t *testing.T) {
	trk := New(record.Smr, 1)
	trk.Add(tr(record.Smr, 1, ts(0), 10, 20, aerodrome.Runway))
	trk.Add(tr(record.Smr, 1, ts(5), -5, 30, aerodrome.Runway))

	if x0, x1 := trk.XBounds(); x0 != -5 || x1 != 10 {
		t.Errorf("XBounds = %v,%v, want -5,10", x0, x1)
	}
	if trk.Duration() != 5 {
		t.Errorf("Duration = %v, want 5", trk.Duration())
	}
	if !trk.CoversTimestamp(ts(3)) {
		t.Error("expected ts(3) to be covered")
	}
}

func TestHaveTimeIntersection(t *testing.T) {
	a := New(record.Smr, 1)
	a.Add(tr(record.Smr, 1, ts(0), 0, 0, aerodrome.Runway))
	a.Add(tr(record.Smr, 1, ts(10), 0, 0, aerodrome.Runway))

	b := New(record.Mlat, 2)
	b.Add(tr(record.Mlat, 2, ts(5), 0, 0, aerodrome.Runway))
	b.Add(tr(record.Mlat, 2, ts(15), 0, 0, aerodrome.Runway))

	if !HaveTimeIntersection(a, b) {
		t.Error("expected overlapping spans to intersect")
	}

	c := New(record.Mlat, 3)
	c.Add(tr(record.Mlat, 3, ts(20), 0, 0, aerodrome.Runway))
	c.Add(tr(record.Mlat, 3, ts(30), 0, 0, aerodrome.Runway))

	if HaveTimeIntersection(a, c) {
		t.Error("expected disjoint spans not to intersect")
	}
}

func TestIntersect(t *testing.T) {
	a := New(record.Smr, 1)
	for s := 0; s <= 20; s += 5 {
		a.Add(tr(record.Smr, 1, ts(s), float64(s), 0, aerodrome.Runway))
	}

	b := New(record.Mlat, 2)
	b.Add(tr(record.Mlat, 2, ts(5), 0, 0, aerodrome.Runway))
	b.Add(tr(record.Mlat, 2, ts(15), 0, 0, aerodrome.Runway))

	got, ok := Intersect(a, b)
	if !ok {
		t.Fatal("expected intersection")
	}
	if got.Size() != 3 { // ts(5), ts(10), ts(15)
		t.Errorf("Size() = %d, want 3", got.Size())
	}
}

func TestResampleInterpolates(t *testing.T) {
	trk := New(record.Smr, 1)
	trk.Add(tr(record.Smr, 1, ts(0), 0, 0, aerodrome.Runway))
	trk.Add(tr(record.Smr, 1, ts(10), 100, 200, aerodrome.Runway))

	out := Resample(trk, []time.Time{ts(5)})
	if out.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", out.Size())
	}
	sample, _ := out.At(ts(5))
	if sample.X != 50 || sample.Y != 100 {
		t.Errorf("interpolated (X,Y) = (%v,%v), want (50,100)", sample.X, sample.Y)
	}
}

func TestResampleSkipsOutOfCoverage(t *testing.T) {
	trk := New(record.Smr, 1)
	trk.Add(tr(record.Smr, 1, ts(0), 0, 0, aerodrome.Runway))
	trk.Add(tr(record.Smr, 1, ts(10), 100, 200, aerodrome.Runway))

	out := Resample(trk, []time.Time{ts(50)})
	if out.Size() != 0 {
		t.Errorf("expected out-of-coverage timestamp to be skipped, got size %d", out.Size())
	}
}

func TestAverageSmooths(t *testing.T) {
	trk := New(record.Mlat, 1)
	trk.Add(tr(record.Mlat, 1, ts(0), 0, 0, aerodrome.Stand))
	trk.Add(tr(record.Mlat, 1, ts(1), 10, 10, aerodrome.Stand))
	trk.Add(tr(record.Mlat, 1, ts(2), 20, 20, aerodrome.Stand))

	out := Average(trk, 5)
	sample, _ := out.At(ts(1))
	if sample.X != 10 || sample.Y != 10 {
		t.Errorf("smoothed middle sample = (%v,%v), want (10,10)", sample.X, sample.Y)
	}
}

func TestSplitTrackByArea(t *testing.T) {
	trk := New(record.Smr, 1)
	trk.Add(tr(record.Smr, 1, ts(0), 0, 0, aerodrome.Runway))
	trk.Add(tr(record.Smr, 1, ts(1), 0, 0, aerodrome.Runway))
	trk.Add(tr(record.Smr, 1, ts(2), 0, 0, aerodrome.Taxiway))
	trk.Add(tr(record.Smr, 1, ts(3), 0, 0, aerodrome.Taxiway))
	trk.Add(tr(record.Smr, 1, ts(4), 0, 0, aerodrome.Stand))

	subs := SplitTrackByArea(trk, SplitByArea)
	if len(subs) != 3 {
		t.Fatalf("got %d subtracks, want 3", len(subs))
	}

	total := 0
	for _, s := range subs {
		if len(s.NamedAreas()) != 1 {
			t.Errorf("subtrack has %d distinct areas, want 1", len(s.NamedAreas()))
		}
		total += s.Size()
	}
	if total != trk.Size() {
		t.Errorf("subtrack sizes sum to %d, want %d", total, trk.Size())
	}
}

func TestCollectionAddAndSubCollection(t *testing.T) {
	col := NewCollection(record.Smr)

	t1 := New(record.Smr, 1)
	t1.Add(tr(record.Smr, 1, ts(0), 0, 0, aerodrome.Runway))
	col.Add(t1)

	t2 := New(record.Smr, 2)
	t2.Add(tr(record.Smr, 2, ts(10), 0, 0, aerodrome.Runway))
	col.Add(t2)

	if col.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", col.Size())
	}

	sub := col.MakeSubCollection([]uint16{2})
	if sub.Size() != 1 || !sub.ContainsTrackNumber(2) {
		t.Errorf("sub-collection does not contain exactly track 2")
	}
}

func TestCollectionSetAddMatch(t *testing.T) {
	set := NewCollectionSet(0xABCDEF, record.Adsb)

	ref := NewWithModeS(0xABCDEF, record.Adsb, 1)
	ref.Add(tr(record.Adsb, 1, ts(0), 0, 0, aerodrome.Airborne1))
	ref.Add(tr(record.Adsb, 1, ts(10), 0, 0, aerodrome.Airborne1))

	smr := New(record.Smr, 9)
	smr.Add(tr(record.Smr, 9, ts(1), 0, 0, aerodrome.Runway))
	smr.Add(tr(record.Smr, 9, ts(9), 0, 0, aerodrome.Runway))

	set.AddMatch(ref, smr)

	if !set.IsValid() {
		t.Fatal("expected a valid set after adding a reference track")
	}
	matches := set.MatchesForRefTrack(1)
	if len(matches) != 1 || matches[0].Size() != 1 {
		t.Fatalf("expected one matched Smr collection with one track, got %+v", matches)
	}
}
