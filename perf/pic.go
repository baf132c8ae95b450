// pic.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package perf

import (
	"math"

	"github.com/avsurv/astmops/mathutil"
	"github.com/avsurv/astmops/targetreport"
	"github.com/avsurv/astmops/track"
)

// referenceIntegrityVersion is the only integrity version this
// evaluator treats as a quality baseline (ASTERIX I210/Ver = 2).
const referenceIntegrityVersion = 2

// picThreshold scans every reference Target Report across sets with
// IntegrityVersion == 2 and a valid IntegrityCategory, and returns the
// configured percentile of that PIC distribution. Returns NaN if no
// report qualifies.
func picThreshold(sets []*track.CollectionSet, percentile float64) float64 {
	var pics []float64
	for _, s := range sets {
		for _, trk := range s.RefCollection().Tracks() {
			for _, tr := range trk.Reports() {
				if tr.HasIntegrityVersion && tr.IntegrityVersion == referenceIntegrityVersion &&
					tr.HasIntegrityCategory {
					pics = append(pics, float64(tr.IntegrityCategory))
				}
			}
		}
	}
	if len(pics) == 0 {
		return math.NaN()
	}
	return mathutil.Percentile(pics, percentile)
}

// meetsQualityBaseline reports whether tr qualifies as a reference
// quality-baseline sample: version 2 and PIC >= picP95.
func meetsQualityBaseline(tr targetreport.TargetReport, picP95 float64) bool {
	if math.IsNaN(picP95) {
		return false
	}
	return tr.HasIntegrityVersion && tr.IntegrityVersion == referenceIntegrityVersion &&
		tr.HasIntegrityCategory && float64(tr.IntegrityCategory) >= picP95
}
