// collectionset.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package track

import (
	"sort"

	"github.com/avsurv/astmops/record"
)

// CollectionSet bundles a reference Collection (the preferred reference
// system type) with the test Collections of other SystemTypes that
// matched it, plus a match graph mapping (test SystemType, reference
// track number) to the ordered list of matched test track numbers.
type CollectionSet struct {
	ModeS      uint32
	RefSysType record.SystemType

	ref     *Collection
	testCol map[record.SystemType]*Collection

	// matches[testSystemType][refTrackNumber] = matched test track numbers,
	// sorted by test track begin timestamp.
	matches map[record.SystemType]map[uint16][]uint16
}

// NewCollectionSet returns an empty CollectionSet keyed by modeS, whose
// reference system type is refSt.
func NewCollectionSet(modeS uint32, refSt record.SystemType) *CollectionSet {
	return &CollectionSet{
		ModeS:      modeS,
		RefSysType: refSt,
		ref:        NewCollectionWithModeS(modeS, refSt),
		testCol:    map[record.SystemType]*Collection{},
		matches:    map[record.SystemType]map[uint16][]uint16{},
	}
}

// Add routes t into the reference collection if it matches RefSysType,
// else into the appropriate test collection.
func (s *CollectionSet) Add(t *Track) {
	if s.RefSysType == record.UnknownSystem || t.SystemType == record.UnknownSystem || t.IsEmpty() {
		return
	}

	if t.SystemType == s.RefSysType {
		if !s.ref.ContainsTrackNumber(t.TrackNumber) {
			s.ref.Add(t)
		}
		return
	}

	col, ok := s.testCol[t.SystemType]
	if !ok {
		col = NewCollection(t.SystemType)
		s.testCol[t.SystemType] = col
	}
	if !col.ContainsTrackNumber(t.TrackNumber) {
		col.Add(t)
	}
}

// AddCollection routes every track of c (see Add).
func (s *CollectionSet) AddCollection(c *Collection) {
	if c.SystemType == record.UnknownSystem {
		return
	}
	for _, t := range c.Tracks() {
		s.Add(t)
	}
}

// AddMatch records a match between reference track tRef and test track
// tTst, inserting both into their collections (if not already present)
// and re-sorting the match list for tRef's system/track pair by test
// track begin timestamp.
func (s *CollectionSet) AddMatch(tRef, tTst *Track) {
	if s.RefSysType == record.UnknownSystem ||
		tRef.SystemType == record.UnknownSystem || tRef.IsEmpty() ||
		tTst.SystemType == record.UnknownSystem || tTst.IsEmpty() ||
		tRef.SystemType != s.RefSysType || tRef.SystemType == tTst.SystemType {
		return
	}

	if s.containsMatch(tTst.SystemType, tRef.TrackNumber, tTst.TrackNumber) {
		return
	}

	s.Add(tRef)
	s.Add(tTst)

	st := tTst.SystemType
	if s.matches[st] == nil {
		s.matches[st] = map[uint16][]uint16{}
	}
	s.matches[st][tRef.TrackNumber] = append(s.matches[st][tRef.TrackNumber], tTst.TrackNumber)

	col := s.testCol[st]
	list := s.matches[st][tRef.TrackNumber]
	sort.Slice(list, func(i, j int) bool {
		ti, _ := col.Track(list[i])
		tj, _ := col.Track(list[j])
		return ti.BeginTimestamp().Before(tj.BeginTimestamp())
	})
}

func (s *CollectionSet) containsMatch(st record.SystemType, refTn, tstTn uint16) bool {
	byRef, ok := s.matches[st]
	if !ok {
		return false
	}
	for _, tn := range byRef[refTn] {
		if tn == tstTn {
			return true
		}
	}
	return false
}

// TestCollections returns every test Collection, sorted by begin
// timestamp.
func (s *CollectionSet) TestCollections() []*Collection {
	out := make([]*Collection, 0, len(s.testCol))
	for _, c := range s.testCol {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BeginTimestamp().Before(out[j].BeginTimestamp()) })
	return out
}

// RefCollection returns the reference Collection.
func (s *CollectionSet) RefCollection() *Collection { return s.ref }

// MatchesForRefTrack returns, for every test SystemType with a match
// list for refTn, the sub-collection of matched test tracks.
func (s *CollectionSet) MatchesForRefTrack(refTn uint16) []*Collection {
	var out []*Collection
	for st, byRef := range s.matches {
		if tns, ok := byRef[refTn]; ok {
			out = append(out, s.testCol[st].MakeSubCollection(tns))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BeginTimestamp().Before(out[j].BeginTimestamp()) })
	return out
}

// MatchesForRefTrackAndSystem returns the sub-collection of st's tracks
// matched to refTn, if any.
func (s *CollectionSet) MatchesForRefTrackAndSystem(refTn uint16, st record.SystemType) (*Collection, bool) {
	byRef, ok := s.matches[st]
	if !ok {
		return nil, false
	}
	tns, ok := byRef[refTn]
	if !ok {
		return nil, false
	}
	return s.testCol[st].MakeSubCollection(tns), true
}

// Collection returns the reference collection if st == RefSysType, else
// the test collection for st.
func (s *CollectionSet) Collection(st record.SystemType) (*Collection, bool) {
	if st == s.RefSysType {
		return s.ref, true
	}
	c, ok := s.testCol[st]
	return c, ok
}

func (s *CollectionSet) HasCollection(st record.SystemType) bool {
	_, ok := s.testCol[st]
	return ok
}

func (s *CollectionSet) HasRefData() bool  { return !s.ref.IsEmpty() }
func (s *CollectionSet) HasTestData() bool { return len(s.testCol) > 0 }

// IsValid reports whether the set has a known reference system type and
// non-empty reference data.
func (s *CollectionSet) IsValid() bool {
	return s.RefSysType != record.UnknownSystem && s.HasRefData()
}

func (s *CollectionSet) IsEmpty() bool {
	return s.ref.IsEmpty() && len(s.testCol) == 0
}

// Size returns the number of test collections.
func (s *CollectionSet) Size() int { return len(s.testCol) }
