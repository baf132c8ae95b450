// rollover.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package record

import (
	"math"
	"time"
)

// dayTdiffSeconds is the 24h-10s tolerance band used to distinguish a
// genuine midnight rollover (or a delayed pre-rollover sample) from an
// ordinary small backjump.
const dayTdiffSeconds = 24*3600 - 10

func isCloseToMidnight(t time.Time) bool {
	h, m, s := t.Clock()
	secOfDay := h*3600 + m*60 + s
	return secOfDay >= 23*3600+59*60+50
}

// rolloverState is the per-RecordType midnight-rollover state machine:
// the last normalized timestamp seen for this RecordType and the number
// of days that have been added to compensate for rollovers so far.
// day_count only ever increases.
type rolloverState struct {
	initialized bool
	lastTime    time.Time
	dayCount    int
}

// rolloverOutcome reports which of the informational/warning conditions
// step 4 of §4.A fired, for the caller to log.
type rolloverOutcome struct {
	RolloverDetected bool
	DelayedSample    bool
	BackjumpWarning  bool
}

// normalize applies the midnight-rollover state machine to baseTime (the
// datetime assembled from session_date + time-of-day, before any rollover
// compensation) and returns the corrected, monotonic-within-tolerance
// timestamp.
func (s *rolloverState) normalize(baseTime time.Time) (time.Time, rolloverOutcome) {
	dt := baseTime
	if s.dayCount > 0 {
		dt = dt.AddDate(0, 0, s.dayCount)
	}

	var out rolloverOutcome
	saveTod := true

	if !s.initialized {
		s.initialized = true
	} else {
		tdiff := dt.Sub(s.lastTime).Seconds()

		switch {
		case math.Abs(tdiff) >= dayTdiffSeconds:
			if tdiff < 0 {
				if isCloseToMidnight(s.lastTime) {
					s.dayCount++
					// dt already carries the previous dayCount days.
					dt = dt.AddDate(0, 0, 1)
					out.RolloverDetected = true
				}
				// else: unreliable data; no correction applied.
			} else if isCloseToMidnight(dt) {
				dt = dt.AddDate(0, 0, -1)
				saveTod = false
				out.DelayedSample = true
			}
		case math.Abs(tdiff) <= 10:
			if tdiff < 0 {
				out.BackjumpWarning = true
			}
		}
	}

	if saveTod {
		s.lastTime = dt
	}
	return dt, out
}
