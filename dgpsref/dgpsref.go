// dgpsref.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package dgpsref reads the DGPS reference file (Dgps processing mode
// only): tabular (timestamp, lat, lon, alt, speed, heading) records,
// converted into a reference *track.Track tagged with the configured
// mode-S address. Speed and heading are read but not retained; a Target
// Report only needs position and timestamp.
package dgpsref

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/avsurv/astmops/aerodrome"
	"github.com/avsurv/astmops/mathutil"
	"github.com/avsurv/astmops/record"
	"github.com/avsurv/astmops/targetreport"
	"github.com/avsurv/astmops/track"
)

// dgpsTrackNumber is the fixed track number assigned to the synthesized
// DGPS reference track: there is exactly one per session, and nothing
// downstream keys on a particular value.
const dgpsTrackNumber = 1

// Load reads a DGPS reference file from path and builds the reference
// Track for modeS, projecting every (lat, lon) to ad's local ENU frame.
// sessionDate anchors each record's time-of-day column the same way the
// Record Interpreter anchors ASTERIX ToDs (spec.md §4.A step 4).
func Load(path string, ad *aerodrome.Aerodrome, modeS uint32, sessionDate time.Time) (*track.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, ad, modeS, sessionDate)
}

// Read parses a DGPS reference file from r.
func Read(r io.Reader, ad *aerodrome.Aerodrome, modeS uint32, sessionDate time.Time) (*track.Track, error) {
	base := time.Date(sessionDate.Year(), sessionDate.Month(), sessionDate.Day(), 0, 0, 0, 0, time.UTC)
	t := track.NewWithModeS(modeS, record.DgpsSystem, dgpsTrackNumber)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
		if len(fields) < 4 {
			return nil, fmt.Errorf("dgpsref: line %d: want at least 4 fields (tod, lat, lon, alt), got %d", lineNo, len(fields))
		}

		todSeconds, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("dgpsref: line %d: timestamp: %w", lineNo, err)
		}
		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("dgpsref: line %d: latitude: %w", lineNo, err)
		}
		lon, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("dgpsref: line %d: longitude: %w", lineNo, err)
		}
		alt, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("dgpsref: line %d: altitude: %w", lineNo, err)
		}
		// fields[4] (speed) and fields[5] (heading), when present, are
		// part of the documented tabular format but unused here.

		pos := ad.GeoToLocal(mathutil.GeoPoint{LatDeg: lat, LonDeg: lon, AltM: alt})
		t.Add(targetreport.TargetReport{
			SystemType:  record.DgpsSystem,
			Timestamp:   base.Add(time.Duration(todSeconds * float64(time.Second))),
			TrackNumber: dgpsTrackNumber,
			OnGround:    true,
			X:           pos[0],
			Y:           pos[1],
			ModeS:       modeS,
			HasModeS:    true,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return t, nil
}
