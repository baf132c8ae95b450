// evaluator.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package perf

import (
	"math"
	"sort"
	"time"

	"github.com/avsurv/astmops/aerodrome"
	"github.com/avsurv/astmops/config"
	"github.com/avsurv/astmops/log"
	"github.com/avsurv/astmops/record"
	"github.com/avsurv/astmops/targetreport"
	"github.com/avsurv/astmops/track"
)

// minSubtrackDuration is the shortest reference subtrack, in seconds,
// the evaluator bothers scoring.
const minSubtrackDuration = 1.0

// mlatPfdFalseDistance is the distance, in meters, beyond which a
// resampled Mlat sample counts as a false detection.
const mlatPfdFalseDistance = 50.0

// standAverageWindow is the smoothing window, in seconds, applied to
// Mlat test tracks on Stand areas before computing RPA.
const standAverageWindow = 5.0

// plgStandThreshold/plgDefaultThreshold are the PLG gap thresholds, in
// seconds: 15s on Stand, 3s everywhere else.
const (
	plgStandThreshold   = 15.0
	plgDefaultThreshold = 3.0
)

// Evaluator implements stage F: it consumes TrackCollectionSets and
// accumulates RPA/UR/PD/PFD/PID/PFID/PLG counters per (NamedArea,
// test SystemType).
type Evaluator struct {
	log *log.Logger

	rpaPercentile        float64
	pdPeriods            config.PDPeriods
	updateRateHz         float64
	silencePeriodSeconds float64

	sets []*track.CollectionSet
}

// New returns an Evaluator that gates RPA reference quality at
// rpaPercentile (spec default 95), sizes the per-area PD IntervalCounter
// windows from pdPeriods, scales expected-update counts by
// updateRateHz, and prunes traffic periods shorter than
// silencePeriodSeconds before folding them into PFD2.
func New(rpaPercentile float64, pdPeriods config.PDPeriods, updateRateHz, silencePeriodSeconds float64, logger *log.Logger) *Evaluator {
	return &Evaluator{
		log:                  logger,
		rpaPercentile:        rpaPercentile,
		pdPeriods:            pdPeriods,
		updateRateHz:         updateRateHz,
		silencePeriodSeconds: silencePeriodSeconds,
	}
}

// AddData accumulates s for the next Run.
func (e *Evaluator) AddData(s *track.CollectionSet) {
	if s == nil || !s.IsValid() {
		return
	}
	e.sets = append(e.sets, s)
}

// Run computes every metric over the accumulated sets and returns the
// resulting per-area counters.
func (e *Evaluator) Run() *Results {
	picP95 := picThreshold(e.sets, e.rpaPercentile)
	res := newResults(picP95)

	for _, s := range e.sets {
		for _, tRef := range s.RefCollection().Tracks() {
			e.evalRefTrack(res, s, tRef, picP95)
		}
	}

	e.finalizePFD2(res)
	return res
}

func (e *Evaluator) evalRefTrack(res *Results, s *track.CollectionSet, tRef *track.Track, picP95 float64) {
	subtracks := track.SplitTrackByArea(tRef, track.SplitByNamedArea)

	for _, subR := range subtracks {
		if subR.Duration() < minSubtrackDuration {
			continue
		}
		narea := soleNamedArea(subR)

		res.pfd2PeriodsFor(narea).AddTrack(subR)

		for _, tstSys := range [...]record.SystemType{record.Smr, record.Mlat} {
			nEtr := int(math.Floor(subR.Duration() * e.updateRateHz))
			ur := urFor(urMapFor(res, tstSys), narea)
			ur.Add(nEtr, 0)

			matched, ok := s.MatchesForRefTrackAndSystem(tRef.TrackNumber, tstSys)
			if !ok {
				continue
			}

			pdCtr := NewIntervalCounter(e.periodForArea(tstSys, narea.Area), subR.BeginTimestamp())
			pdFed := false
			plg := newPLGGapState()

			for _, tTst := range matched.Tracks() {
				tTstI, ok := track.Intersect(tTst, subR)
				if !ok {
					continue
				}
				pdFed = true

				ur.Add(0, tTstI.Size())
				if tstSys == record.Smr {
					pfd2For(res.SmrPFD2, narea).Add(tTstI.Size(), 0, 0)
				}

				for _, tr := range tTstI.Reports() {
					if !math.IsNaN(tr.X) && !math.IsNaN(tr.Y) {
						pdCtr.Update(tr.Timestamp)
					}
				}

				e.evalRPA(res, tstSys, narea, subR, tTstI, picP95)

				if tstSys == record.Mlat {
					e.evalPFD(res, narea, subR, tTstI)
					e.evalPID(res, narea, subR, tTstI)
					e.evalPLG(res, narea, plg, tTstI)
				}
			}

			if pdFed {
				valid, total := pdCtr.Finish(subR.EndTimestamp())
				pdFor(pdMapFor(res, tstSys), narea).Add(valid, total)
			}
		}
	}
}

func urMapFor(res *Results, st record.SystemType) map[aerodrome.NamedArea]*URCounter {
	if st == record.Smr {
		return res.SmrUR
	}
	return res.MlatUR
}

func pdMapFor(res *Results, st record.SystemType) map[aerodrome.NamedArea]*PDCounter {
	if st == record.Smr {
		return res.SmrPD
	}
	return res.MlatPD
}

func rpaMapFor(res *Results, st record.SystemType) map[aerodrome.NamedArea]*RPACounter {
	if st == record.Smr {
		return res.SmrRPA
	}
	return res.MlatRPA
}

// soleNamedArea returns the single NamedArea a by-area subtrack
// crosses (SplitTrackByArea guarantees exactly one).
func soleNamedArea(subR *track.Track) aerodrome.NamedArea {
	for na := range subR.NamedAreas() {
		return na
	}
	return aerodrome.NamedArea{}
}

// periodForArea returns the IntervalCounter period, in seconds, for
// (tstSys, area): Smr is always 1s; Mlat varies by area per the
// configured PDPeriods (ED117 defaults: Runway/Airborne 1s, Stand 5s,
// ApronLane/Taxiway/other 2s).
func (e *Evaluator) periodForArea(tstSys record.SystemType, area aerodrome.Area) float64 {
	if tstSys == record.Smr {
		return 1.0
	}
	switch area {
	case aerodrome.Runway, aerodrome.Airborne1, aerodrome.Airborne2:
		return e.pdPeriods.RunwaySeconds
	case aerodrome.Stand:
		return e.pdPeriods.ApronSeconds
	default:
		return e.pdPeriods.OtherSeconds
	}
}

// evalRPA implements the Relative Position Accuracy metric.
func (e *Evaluator) evalRPA(res *Results, tstSys record.SystemType, narea aerodrome.NamedArea, subR, tTstI *track.Track, picP95 float64) {
	filtered := filterByQuality(subR, picP95)
	if filtered.IsEmpty() {
		return
	}

	testTrack := tTstI
	if tstSys == record.Mlat && narea.Area == aerodrome.Stand {
		testTrack = track.Average(tTstI, standAverageWindow)
	}

	resampled := track.Resample(filtered, testTrack.Timestamps())
	ctr := rpaFor(rpaMapFor(res, tstSys), narea)

	for _, ts := range testTrack.Timestamps() {
		test, ok := testTrack.At(ts)
		if !ok {
			continue
		}
		ref, ok := resampled.At(ts)
		if !ok {
			continue
		}
		dx := test.X - ref.X
		dy := test.Y - ref.Y
		ctr.Add(math.Sqrt(dx*dx + dy*dy))
	}
}

// filterByQuality returns the subset of trk's reports meeting the PIC
// quality baseline.
func filterByQuality(trk *track.Track, picP95 float64) *track.Track {
	out := track.New(trk.SystemType, trk.TrackNumber)
	if trk.HasModeS {
		out.SetModeS(trk.ModeS)
	}
	for _, tr := range trk.Reports() {
		if meetsQualityBaseline(tr, picP95) {
			out.Add(tr)
		}
	}
	return out
}

// evalPFD implements the Mlat Probability of False Detection metric.
func (e *Evaluator) evalPFD(res *Results, narea aerodrome.NamedArea, subR, tTstI *track.Track) {
	resampled := track.Resample(subR, tTstI.Timestamps())
	ctr := pfdFor(res.MlatPFD, narea)

	for _, ts := range tTstI.Timestamps() {
		test, ok := tTstI.At(ts)
		if !ok {
			continue
		}
		ref, ok := resampled.At(ts)
		if !ok {
			continue
		}
		dx := test.X - ref.X
		dy := test.Y - ref.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		ctr.Add(dist > mlatPfdFalseDistance, 1)
	}
}

// evalPID implements the Mlat PID/PFID metrics (ident and mode-3A
// tracked independently, sharing the bracketing-sample lookup).
func (e *Evaluator) evalPID(res *Results, narea aerodrome.NamedArea, subR, tTstI *track.Track) {
	timestamps := subR.Timestamps()

	for _, ts := range tTstI.Timestamps() {
		test, _ := tTstI.At(ts)
		if !test.HasIdent && !test.HasMode3A {
			continue
		}

		l, u, ok := bracket(subR, timestamps, ts)
		if !ok {
			continue
		}

		if l.HasIdent && u.HasIdent {
			c := idFor(res.MlatPID, narea)
			c.AddAttempt()
			if test.HasIdent && (test.Ident == l.Ident || test.Ident == u.Ident) {
				c.AddCorrect()
			} else {
				c.AddFalse()
			}
		}

		if l.HasMode3A && u.HasMode3A {
			c := idFor(res.MlatP3A, narea)
			c.AddAttempt()
			if test.HasMode3A && (test.Mode3A == l.Mode3A || test.Mode3A == u.Mode3A) {
				c.AddCorrect()
			} else {
				c.AddFalse()
			}
		}
	}
}

// bracket returns the pair of subR samples strictly bracketing ts (or
// the exact sample at ts, repeated as both), using timestamps as subR's
// pre-fetched, sorted sample timestamps.
func bracket(subR *track.Track, timestamps []time.Time, ts time.Time) (targetreport.TargetReport, targetreport.TargetReport, bool) {
	if exact, ok := subR.At(ts); ok {
		return exact, exact, true
	}

	idx := sort.Search(len(timestamps), func(i int) bool { return !timestamps[i].Before(ts) }) - 1
	if idx < 0 || idx+1 >= len(timestamps) {
		return targetreport.TargetReport{}, targetreport.TargetReport{}, false
	}
	l, _ := subR.At(timestamps[idx])
	u, _ := subR.At(timestamps[idx+1])
	return l, u, true
}

// plgGapState carries the "last sample seen" cursor for the PLG metric
// across every Mlat test track intersecting one reference subtrack, so a
// gap spanning a test-track boundary is still detected and every sample
// (including the very first) is counted into NTr.
type plgGapState struct {
	first  bool
	lastTS time.Time
}

func newPLGGapState() *plgGapState {
	return &plgGapState{first: true}
}

// evalPLG implements the Mlat Probability of Largest Gap metric. state
// must be shared across every tTstI intersecting the same reference
// subtrack (one per call to evalRefTrack's per-subR, per-tstSys loop).
func (e *Evaluator) evalPLG(res *Results, narea aerodrome.NamedArea, state *plgGapState, tTstI *track.Track) {
	threshold := plgDefaultThreshold
	if narea.Area == aerodrome.Stand {
		threshold = plgStandThreshold
	}

	ctr := plgFor(res.MlatPLG, narea)

	for _, tr := range tTstI.Reports() {
		if state.first {
			state.lastTS = tr.Timestamp
			state.first = false
			ctr.Add(false)
			continue
		}

		gap := tr.Timestamp.Sub(state.lastTS).Seconds()
		ctr.Add(gap >= threshold)
		state.lastTS = tr.Timestamp
	}
}

// finalizePFD2 prunes traffic periods shorter than
// silencePeriodSeconds, then folds every area's remaining
// TrafficPeriodCollection into its Smr PFD2 counter's n_u/n_etr
// denominators.
func (e *Evaluator) finalizePFD2(res *Results) {
	for narea, periods := range res.pfd2Periods {
		periods.RemoveSmallPeriods(e.silencePeriodSeconds)
		ctr := pfd2For(res.SmrPFD2, narea)
		ctr.NU = periods.ExpectedUpdates(e.updateRateHz)
		ctr.NEtr = periods.ExpectedTargetReports(e.updateRateHz)
	}
}
