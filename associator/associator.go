// associator.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package associator implements the Track Associator (stage E of the
// pipeline): it groups Tracks into per-mode-S reference/test
// collections and matches test Tracks against reference Tracks by
// mode-S identity (Mlat) or by resampled positional similarity
// (everything else).
package associator

import (
	"math"
	"sort"

	"github.com/avsurv/astmops/log"
	"github.com/avsurv/astmops/record"
	"github.com/avsurv/astmops/track"
)

// dmax is the maximum Euclidean distance, in meters, between a
// resampled reference sample and its matched test sample for the pair
// to count as "ok" in a similarity score.
const dmax = 30.0

// threshold is the minimum fraction of "ok" pairs required for a
// similarity-based match to be recorded.
const threshold = 0.70

// Associator accumulates Tracks of every SystemType and, on Run,
// produces one CollectionSet per reference mode-S address.
type Associator struct {
	log *log.Logger

	tstTracks map[record.SystemType]map[uint16]*track.Track

	// refCandidates[modeS][systemType] holds every reference Track seen
	// for that (mode-S, system type) pair, pending the Dgps-over-Adsb
	// precedence resolved at Run.
	refCandidates map[uint32]map[record.SystemType][]*track.Track
}

// New returns an empty Associator.
func New(logger *log.Logger) *Associator {
	return &Associator{
		log:           logger,
		tstTracks:     map[record.SystemType]map[uint16]*track.Track{},
		refCandidates: map[uint32]map[record.SystemType][]*track.Track{},
	}
}

// AddData routes t into the test-track index (Smr, Mlat) or the
// reference-track candidate pool (Adsb, Dgps — both require a mode-S
// address; reference tracks without one are ignored).
func (a *Associator) AddData(t *track.Track) {
	if t == nil || t.IsEmpty() {
		return
	}

	switch t.SystemType {
	case record.Smr, record.Mlat:
		if a.tstTracks[t.SystemType] == nil {
			a.tstTracks[t.SystemType] = map[uint16]*track.Track{}
		}
		a.tstTracks[t.SystemType][t.TrackNumber] = t

	case record.Adsb, record.DgpsSystem:
		if !t.HasModeS {
			a.log.Debugf("dropping reference track %d/%d: no mode-S address", t.SystemType, t.TrackNumber)
			return
		}
		if a.refCandidates[t.ModeS] == nil {
			a.refCandidates[t.ModeS] = map[record.SystemType][]*track.Track{}
		}
		a.refCandidates[t.ModeS][t.SystemType] = append(a.refCandidates[t.ModeS][t.SystemType], t)
	}
}

// Run builds one CollectionSet per reference mode-S address and
// returns the valid ones (non-empty reference collection). It does not
// consume Associator's internal state; calling Run again after more
// AddData calls is safe and recomputes from scratch.
func (a *Associator) Run() []*track.CollectionSet {
	modeSList := make([]uint32, 0, len(a.refCandidates))
	for ms := range a.refCandidates {
		modeSList = append(modeSList, ms)
	}
	sort.Slice(modeSList, func(i, j int) bool { return modeSList[i] < modeSList[j] })

	var sets []*track.CollectionSet

	for _, ms := range modeSList {
		cands := a.refCandidates[ms]

		refSt := record.Adsb
		if len(cands[record.DgpsSystem]) > 0 {
			refSt = record.DgpsSystem
		}
		refTracks := cands[refSt]
		if len(refTracks) == 0 {
			continue
		}

		set := track.NewCollectionSet(ms, refSt)

		for _, tRef := range refTracks {
			if tRef.IsEmpty() {
				continue
			}
			set.Add(tRef)
			a.matchAgainst(set, tRef, ms)
		}

		if set.IsValid() {
			sets = append(sets, set)
		}
	}

	return sets
}

// matchAgainst runs phase 2 of the associator for one reference Track
// against every known test Track.
func (a *Associator) matchAgainst(set *track.CollectionSet, tRef *track.Track, ms uint32) {
	for _, tstSt := range []record.SystemType{record.Smr, record.Mlat} {
		tns := make([]uint16, 0, len(a.tstTracks[tstSt]))
		for tn := range a.tstTracks[tstSt] {
			tns = append(tns, tn)
		}
		sort.Slice(tns, func(i, j int) bool { return tns[i] < tns[j] })

		for _, tn := range tns {
			tTst := a.tstTracks[tstSt][tn]
			if tTst.IsEmpty() {
				continue
			}

			if tstSt == record.Mlat && tTst.HasModeS {
				if tTst.ModeS != ms {
					continue
				}
				set.Add(tTst)
				if track.HaveTimeIntersection(tTst, tRef) {
					set.AddMatch(tRef, tTst)
				}
				continue
			}

			if !track.HaveTimeIntersection(tTst, tRef) {
				continue
			}

			tIntersected, ok := track.Intersect(tTst, tRef)
			if !ok {
				continue
			}

			tResampled := track.Resample(tRef, tIntersected.Timestamps())
			dist := euclideanDistances(tIntersected, tResampled)
			sc, ok := similarityScore(dist)
			if !ok {
				continue
			}
			if sc >= threshold {
				set.AddMatch(tRef, tTst)
			}
		}
	}
}

// euclideanDistances returns, for every timestamp a and b share, the
// planar distance between their (x, y) samples.
func euclideanDistances(a, b *track.Track) []float64 {
	var dist []float64
	for _, ts := range a.Timestamps() {
		sa, _ := a.At(ts)
		sb, ok := b.At(ts)
		if !ok {
			continue
		}
		dx := sa.X - sb.X
		dy := sa.Y - sb.Y
		dist = append(dist, math.Sqrt(dx*dx+dy*dy))
	}
	return dist
}

// similarityScore returns the fraction of dist values within dmax, or
// (0, false) if dist is empty.
func similarityScore(dist []float64) (float64, bool) {
	if len(dist) == 0 {
		return 0, false
	}
	nOk := 0
	for _, d := range dist {
		if d <= dmax {
			nOk++
		}
	}
	return float64(nOk) / float64(len(dist)), true
}
