// counters.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package perf implements the Performance Evaluator (stage F of the
// pipeline): it consumes TrackCollectionSets and, per (metric,
// NamedArea), accumulates the RPA/UR/PD/PFD/PID/PFID/PLG counters
// defined by ED-116 (Smr) / ED-117 (Mlat).
package perf

import (
	"math"
	"time"

	"github.com/avsurv/astmops/mathutil"
)

// URCounter accumulates the Update Rate metric: expected vs. observed
// test-track samples inside a reference subtrack.
type URCounter struct {
	NEtr, NTr int
}

func (c *URCounter) Add(nEtr, nTr int) {
	c.NEtr += nEtr
	c.NTr += nTr
}

// Percentage returns clamp(NTr/NEtr, 0, 1), or NaN if NEtr is zero.
func (c URCounter) Percentage() float64 {
	if c.NEtr == 0 {
		return math.NaN()
	}
	return mathutil.Clamp(float64(c.NTr)/float64(c.NEtr), 0, 1)
}

// PDCounter accumulates the Probability of Detection metric via
// IntervalCounter.finish results.
type PDCounter struct {
	NTr, NUp int
}

func (c *PDCounter) Add(valid, total int) {
	c.NTr += valid
	c.NUp += total
}

// Percentage returns clamp(NTr/NUp, 0, 1), or NaN if NUp is zero.
func (c PDCounter) Percentage() float64 {
	if c.NUp == 0 {
		return math.NaN()
	}
	return mathutil.Clamp(float64(c.NTr)/float64(c.NUp), 0, 1)
}

// PFD2Counter accumulates the Smr Probability of False Detection
// metric, driven by a reference TrafficPeriodCollection rather than
// per-sample distances.
type PFD2Counter struct {
	NTr, NEtr, NU int
}

func (c *PFD2Counter) Add(nTr, nEtr, nU int) {
	c.NTr += nTr
	c.NEtr += nEtr
	c.NU += nU
}

// Percentage returns max((NTr-NEtr)/NU, 0), or NaN if NU is zero.
func (c PFD2Counter) Percentage() float64 {
	if c.NU == 0 {
		return math.NaN()
	}
	return math.Max(float64(c.NTr-c.NEtr)/float64(c.NU), 0)
}

// PFDCounter accumulates the Mlat Probability of False Detection
// metric, driven by per-sample distance thresholding.
type PFDCounter struct {
	NFtr, NTr int
}

func (c *PFDCounter) Add(isFalse bool, n int) {
	if isFalse {
		c.NFtr += n
	}
	c.NTr += n
}

// Percentage returns clamp(NFtr/NTr, 0, 1), or NaN if NTr is zero.
func (c PFDCounter) Percentage() float64 {
	if c.NTr == 0 {
		return math.NaN()
	}
	return mathutil.Clamp(float64(c.NFtr)/float64(c.NTr), 0, 1)
}

// IDCounter accumulates either PID (correct identification) or PFID
// (false identification); which one is decided by how the caller
// increments NCitr/NEitr.
type IDCounter struct {
	NItr, NCitr, NEitr int
}

func (c *IDCounter) AddAttempt() { c.NItr++ }
func (c *IDCounter) AddCorrect() { c.NCitr++ }
func (c *IDCounter) AddFalse()   { c.NEitr++ }

// PIDPercentage returns clamp(NCitr/NItr, 0, 1), or NaN if NItr is zero.
func (c IDCounter) PIDPercentage() float64 {
	if c.NItr == 0 {
		return math.NaN()
	}
	return mathutil.Clamp(float64(c.NCitr)/float64(c.NItr), 0, 1)
}

// PFIDPercentage returns clamp(NEitr/NItr, 0, 1), or NaN if NItr is zero.
func (c IDCounter) PFIDPercentage() float64 {
	if c.NItr == 0 {
		return math.NaN()
	}
	return mathutil.Clamp(float64(c.NEitr)/float64(c.NItr), 0, 1)
}

// PLGCounter accumulates the Probability of Largest Gap metric.
type PLGCounter struct {
	NG, NTr int
}

func (c *PLGCounter) Add(isGap bool) {
	if isGap {
		c.NG++
	}
	c.NTr++
}

// Percentage returns clamp(NG/NTr, 0, 1), or NaN if NTr is zero.
func (c PLGCounter) Percentage() float64 {
	if c.NTr == 0 {
		return math.NaN()
	}
	return mathutil.Clamp(float64(c.NG)/float64(c.NTr), 0, 1)
}

// RPACounter accumulates Euclidean position-accuracy distances.
type RPACounter struct {
	Distances []float64
}

func (c *RPACounter) Add(d float64) { c.Distances = append(c.Distances, d) }

func (c RPACounter) Mean() float64       { return mathutil.Mean(c.Distances) }
func (c RPACounter) StdDev() float64     { return mathutil.StdDev(c.Distances) }
func (c RPACounter) Percentile(p float64) float64 {
	return mathutil.Percentile(c.Distances, p)
}
func (c RPACounter) N() int { return len(c.Distances) }

// IntervalCounter slides a fixed-period window across a reference
// subtrack's span, marking each interval "valid" the first time a test
// sample is observed inside it. finish reports (valid intervals,
// total intervals).
type IntervalCounter struct {
	start  time.Time
	period float64 // seconds

	valid map[int]bool
}

// NewIntervalCounter returns a counter for period seconds, anchored at
// start.
func NewIntervalCounter(period float64, start time.Time) *IntervalCounter {
	return &IntervalCounter{start: start, period: period, valid: map[int]bool{}}
}

func (c *IntervalCounter) intervalIndex(t time.Time) int {
	return int(math.Floor(t.Sub(c.start).Seconds() / c.period))
}

// Update marks the interval containing t as valid.
func (c *IntervalCounter) Update(t time.Time) {
	idx := c.intervalIndex(t)
	if idx < 0 {
		return
	}
	c.valid[idx] = true
}

// Finish closes the counter at end and returns (valid, total)
// intervals across [start, end). total is the number of whole or
// partial periods spanning [start, end).
func (c *IntervalCounter) Finish(end time.Time) (valid, total int) {
	total = int(math.Ceil(end.Sub(c.start).Seconds() / c.period))
	if total < 0 {
		total = 0
	}
	for idx := range c.valid {
		if idx < total {
			valid++
		}
	}
	return valid, total
}
