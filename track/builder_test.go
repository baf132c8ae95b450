// builder_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package track

import (
	"testing"

	"github.com/avsurv/astmops/aerodrome"
	"github.com/avsurv/astmops/record"
)

func TestBuilderGroupsByTrackNumber(t *testing.T) {
	b := NewBuilder()
	b.Add(tr(record.Smr, 1, ts(0), 0, 0, aerodrome.Runway))
	b.Add(tr(record.Smr, 1, ts(1), 1, 1, aerodrome.Runway))
	b.Add(tr(record.Smr, 2, ts(0), 5, 5, aerodrome.Taxiway))

	trks := b.Tracks(record.Smr)
	if len(trks) != 2 {
		t.Fatalf("Tracks(Smr) = %d tracks, want 2", len(trks))
	}
	if trks[0].TrackNumber != 1 || trks[0].Size() != 2 {
		t.Errorf("track 1 = %+v, want 2 samples", trks[0])
	}
	if trks[1].TrackNumber != 2 || trks[1].Size() != 1 {
		t.Errorf("track 2 = %+v, want 1 sample", trks[1])
	}
}

func TestBuilderSeparatesBySystemType(t *testing.T) {
	b := NewBuilder()
	b.Add(tr(record.Smr, 1, ts(0), 0, 0, aerodrome.Runway))
	b.Add(tr(record.Mlat, 1, ts(0), 0, 0, aerodrome.Runway))

	if len(b.Tracks(record.Smr)) != 1 || len(b.Tracks(record.Mlat)) != 1 {
		t.Fatalf("expected one track per system type, got Smr=%d Mlat=%d",
			len(b.Tracks(record.Smr)), len(b.Tracks(record.Mlat)))
	}
	if len(b.All()) != 2 {
		t.Errorf("All() = %d, want 2", len(b.All()))
	}
}

func TestBuilderCollectionHoldsEveryTrack(t *testing.T) {
	b := NewBuilder()
	b.Add(tr(record.Smr, 1, ts(0), 0, 0, aerodrome.Runway))
	b.Add(tr(record.Smr, 2, ts(1), 0, 0, aerodrome.Runway))

	c := b.Collection(record.Smr)
	if c.Size() != 2 {
		t.Errorf("Collection(Smr).Size() = %d, want 2", c.Size())
	}
}
