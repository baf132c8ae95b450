// trafficperiod_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package trafficperiod

import (
	"testing"
	"time"
)

func at(hh, mm, ss int) time.Time {
	return time.Date(2021, 6, 1, hh, mm, ss, 0, time.UTC)
}

func mustPeriod(t *testing.T, begin, end time.Time, addrs ...uint32) Period {
	t.Helper()
	set := map[uint32]bool{}
	for _, a := range addrs {
		set[a] = true
	}
	p := NewWithTraffic(begin, end, set)
	if !p.IsValid() {
		t.Fatalf("expected valid period [%v,%v)", begin, end)
	}
	return p
}

func TestPeriodInvalidWhenBeginNotBeforeEnd(t *testing.T) {
	p := New(at(10, 0, 10), at(10, 0, 0))
	if p.IsValid() {
		t.Error("expected invalid period when begin >= end")
	}
}

func TestPeriodExpectedCounts(t *testing.T) {
	p := mustPeriod(t, at(10, 0, 0), at(10, 0, 10), 1, 2)
	if got := p.ExpectedUpdates(1.0); got != 10 {
		t.Errorf("ExpectedUpdates = %d, want 10", got)
	}
	if got := p.ExpectedTargetReports(1.0); got != 20 {
		t.Errorf("ExpectedTargetReports = %d, want 20", got)
	}
}

// TestCollectionOverlapMerging mirrors the spec's worked example:
// A=[10:00:00,10:00:10){1}, B=[10:00:14,10:00:18){2},
// C=[10:00:08,10:00:20){3} merge into five disjoint atomic periods.
func TestCollectionOverlapMerging(t *testing.T) {
	col := NewCollection()
	col.Add(mustPeriod(t, at(10, 0, 0), at(10, 0, 10), 1))
	col.Add(mustPeriod(t, at(10, 0, 14), at(10, 0, 18), 2))
	col.Add(mustPeriod(t, at(10, 0, 8), at(10, 0, 20), 3))

	periods := col.Periods()
	if len(periods) != 5 {
		t.Fatalf("got %d periods, want 5: %+v", len(periods), periods)
	}

	want := []struct {
		begin, end time.Time
		addrs      []uint32
	}{
		{at(10, 0, 0), at(10, 0, 8), []uint32{1}},
		{at(10, 0, 8), at(10, 0, 10), []uint32{1, 3}},
		{at(10, 0, 10), at(10, 0, 14), []uint32{3}},
		{at(10, 0, 14), at(10, 0, 18), []uint32{2, 3}},
		{at(10, 0, 18), at(10, 0, 20), []uint32{3}},
	}

	for i, w := range want {
		p := periods[i]
		if !p.Begin.Equal(w.begin) || !p.End.Equal(w.end) {
			t.Errorf("period %d = [%v,%v), want [%v,%v)", i, p.Begin, p.End, w.begin, w.end)
		}
		if p.TrafficCount() != len(w.addrs) {
			t.Errorf("period %d traffic count = %d, want %d", i, p.TrafficCount(), len(w.addrs))
		}
		for _, a := range w.addrs {
			if !p.HasTarget(a) {
				t.Errorf("period %d missing address %#x", i, a)
			}
		}
	}
}

func TestCollectionDisjointNoOverlapAppends(t *testing.T) {
	col := NewCollection()
	col.Add(mustPeriod(t, at(9, 0, 0), at(9, 0, 5), 1))
	col.Add(mustPeriod(t, at(9, 1, 0), at(9, 1, 5), 2))

	if col.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", col.Size())
	}
}

func TestCollectionRemoveSmallPeriods(t *testing.T) {
	col := NewCollection()
	col.Add(mustPeriod(t, at(9, 0, 0), at(9, 0, 1), 1))
	col.Add(mustPeriod(t, at(9, 1, 0), at(9, 1, 30), 2))

	col.RemoveSmallPeriods(5)
	if col.Size() != 1 {
		t.Fatalf("Size() = %d, want 1 after removing the 1s period", col.Size())
	}
}

func TestCollectionExpectedUpdatesSumsAcrossPeriods(t *testing.T) {
	col := NewCollection()
	col.Add(mustPeriod(t, at(9, 0, 0), at(9, 0, 10), 1))
	col.Add(mustPeriod(t, at(9, 1, 0), at(9, 1, 5), 2))

	if got := col.ExpectedUpdates(1.0); got != 15 {
		t.Errorf("ExpectedUpdates = %d, want 15", got)
	}
}
