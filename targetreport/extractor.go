// extractor.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package targetreport

import (
	"strconv"
	"strings"

	"github.com/avsurv/astmops/log"
	"github.com/avsurv/astmops/mathutil"
	"github.com/avsurv/astmops/record"
)

const ftToM = 0.3048
const flToM = ftToM * 100

// Extractor implements stage B: per-SystemType keep/drop policy and
// projection from a classified Record to a TargetReport.
type Extractor struct {
	arp      mathutil.GeoPoint
	excluded map[uint32]bool
	log      *log.Logger

	counters map[record.SystemType]*InOutCounter
}

// NewExtractor returns an Extractor that converts CAT21 geographic
// positions to local ENU meters relative to arp, dropping any Mlat/Adsb
// target report whose mode-S address is in excluded.
func NewExtractor(arp mathutil.GeoPoint, excluded map[uint32]bool, logger *log.Logger) *Extractor {
	if excluded == nil {
		excluded = map[uint32]bool{}
	}
	return &Extractor{
		arp:      arp,
		excluded: excluded,
		log:      logger,
		counters: map[record.SystemType]*InOutCounter{
			record.Smr:  {},
			record.Mlat: {},
			record.Adsb: {},
		},
	}
}

// Counters returns the current in/out counter for st. The zero value is
// returned for a SystemType that never appeared.
func (e *Extractor) Counters(st record.SystemType) InOutCounter {
	if c, ok := e.counters[st]; ok {
		return *c
	}
	return InOutCounter{}
}

// Extract runs stage B on one classified record. It returns (nil, false)
// if the record is dropped.
func (e *Extractor) Extract(rec *record.Record) (*TargetReport, bool) {
	if rec.Type.IsUnknown() {
		return nil, false
	}

	c, ok := e.counters[rec.Type.System]
	if !ok {
		c = &InOutCounter{}
		e.counters[rec.Type.System] = c
	}
	c.In++

	if !e.isRecordToBeKept(rec) {
		return nil, false
	}

	tr, ok := e.makeTargetReport(rec)
	if !ok {
		e.log.Warnf("dropping record %#x: target report missing a mandatory field", rec.CRC)
		return nil, false
	}

	c.Out++
	return tr, true
}

func (e *Extractor) isRecordToBeKept(rec *record.Record) bool {
	if rec.Type.IsUnknown() {
		return false
	}
	if rec.Type.Message == record.ServiceMessage {
		return false
	}
	if rec.Type.Message != record.TargetReport {
		return false
	}

	switch rec.Type.System {
	case record.Smr:
		return true

	case record.Mlat:
		addr, ok := hexField(rec.Fields, "I220", "TAddr")
		if !ok {
			e.log.Debugf("dropping record %#x: Mlat target report without target address", rec.CRC)
			return false
		}
		if e.excluded[addr] {
			return false
		}
		tot, ok := uintField(rec.Fields, "I020", "TOT")
		if !ok {
			e.log.Debugf("dropping record %#x: Mlat target report without TOT", rec.CRC)
			return false
		}
		// TOT: 0 undetermined, 1 aircraft, 2 ground vehicle, 3 helicopter.
		return tot == 1 || tot == 3

	case record.Adsb:
		addr, ok := hexField(rec.Fields, "I080", "TAddr")
		if !ok {
			e.log.Debugf("dropping record %#x: Adsb target report without target address", rec.CRC)
			return false
		}
		if e.excluded[addr] {
			return false
		}
		ecat, ok := uintField(rec.Fields, "I020", "ECAT")
		if !ok {
			e.log.Debugf("dropping record %#x: Adsb target report without ECAT", rec.CRC)
			return false
		}
		// ECAT: 1-5 fixed-wing classes, 10 rotorcraft.
		return (ecat >= 1 && ecat <= 5) || ecat == 10

	default:
		return false
	}
}

// targetTypeFor derives the TargetType hint from the same TOT/ECAT field
// the keep-decision already consulted; Smr carries no such signal.
func targetTypeFor(rec *record.Record) TargetType {
	switch rec.Type.System {
	case record.Mlat:
		if tot, ok := uintField(rec.Fields, "I020", "TOT"); ok && (tot == 1 || tot == 3) {
			return Aircraft
		}
	case record.Adsb:
		if ecat, ok := uintField(rec.Fields, "I020", "ECAT"); ok && ((ecat >= 1 && ecat <= 5) || ecat == 10) {
			return Aircraft
		}
	}
	return UnknownTarget
}

func (e *Extractor) makeTargetReport(rec *record.Record) (*TargetReport, bool) {
	sac, ok := uintField(rec.Fields, "I010", "SAC")
	if !ok {
		return nil, false
	}
	sic, ok := uintField(rec.Fields, "I010", "SIC")
	if !ok {
		return nil, false
	}

	tr := &TargetReport{
		SystemType: rec.Type.System,
		DataSource: record.DataSrcId{Sac: uint8(sac), Sic: uint8(sic)},
		Timestamp:  rec.Timestamp,
		TargetType: targetTypeFor(rec),
	}

	if rec.Category == 10 {
		if !e.fillCat10(rec, tr) {
			return nil, false
		}
	} else {
		if !e.fillCat21(rec, tr) {
			return nil, false
		}
	}

	return tr, true
}

func (e *Extractor) fillCat10(rec *record.Record, tr *TargetReport) bool {
	trkNb, ok := uintField(rec.Fields, "I161", "TrkNb")
	if !ok {
		return false
	}
	tr.TrackNumber = uint16(trkNb)

	if rec.Type.System == record.Smr {
		// By definition, SMR targets are always on the ground.
		tr.OnGround = true
	} else {
		gbs, ok := uintField(rec.Fields, "I020", "GBS")
		if !ok {
			return false
		}
		tr.OnGround = gbs != 0
	}

	x, ok := floatField(rec.Fields, "I042", "X")
	if !ok {
		return false
	}
	y, ok := floatField(rec.Fields, "I042", "Y")
	if !ok {
		return false
	}
	tr.X, tr.Y = x, y

	if rec.Type.System == record.Mlat {
		modeS, ok := hexField(rec.Fields, "I220", "TAddr")
		if !ok {
			return false
		}
		tr.ModeS, tr.HasModeS = modeS, true

		if v, ok := octField(rec.Fields, "I060", "Mod3A"); ok {
			tr.Mode3A, tr.HasMode3A = uint16(v), true
		}
		if ident, ok := rec.Fields.Get("I245", "TId"); ok && strings.TrimSpace(ident) != "" {
			tr.Ident, tr.HasIdent = ident, true
		}
	}

	return true
}

func (e *Extractor) fillCat21(rec *record.Record, tr *TargetReport) bool {
	trkNb, ok := uintField(rec.Fields, "I161", "TrackN")
	if !ok {
		return false
	}
	tr.TrackNumber = uint16(trkNb)

	gbs, ok := uintField(rec.Fields, "I040", "GBS")
	if !ok {
		return false
	}
	tr.OnGround = gbs != 0

	lat, latOk := floatField(rec.Fields, "I131", "Lat")
	if !latOk {
		lat, latOk = floatField(rec.Fields, "I130", "Lat")
	}
	if !latOk {
		return false
	}

	lon, lonOk := floatField(rec.Fields, "I131", "Lon")
	if !lonOk {
		lon, lonOk = floatField(rec.Fields, "I130", "Lon")
	}
	if !lonOk {
		return false
	}

	var h float64
	if mh, ok := floatField(rec.Fields, "I091", "MHeight"); ok {
		h = mh
	} else if fl, ok := floatField(rec.Fields, "I145", "FL"); ok {
		h = fl * flToM
	}

	enu := mathutil.GeoToLocalENU(mathutil.GeoPoint{LatDeg: lat, LonDeg: lon, AltM: h}, e.arp)
	tr.X, tr.Y, tr.Z = enu.East, enu.North, enu.Up
	tr.HasZ = true

	modeS, ok := hexField(rec.Fields, "I080", "TAddr")
	if !ok {
		return false
	}
	tr.ModeS, tr.HasModeS = modeS, true

	if v, ok := octField(rec.Fields, "I070", "Mode3A"); ok {
		tr.Mode3A, tr.HasMode3A = uint16(v), true
	}
	if ident, ok := rec.Fields.Get("I245", "TId"); ok && strings.TrimSpace(ident) != "" {
		tr.Ident, tr.HasIdent = ident, true
	}

	if v, ok := uintField(rec.Fields, "I210", "Ver"); ok {
		tr.IntegrityVersion, tr.HasIntegrityVersion = int(v), true
	}
	if v, ok := uintField(rec.Fields, "I090", "PIC"); ok {
		tr.IntegrityCategory, tr.HasIntegrityCategory = int(v), true
	}

	return true
}

func floatField(f recordfieldGetter, item, element string) (float64, bool) {
	s, ok := f.Get(item, element)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func uintField(f recordfieldGetter, item, element string) (uint64, bool) {
	s, ok := f.Get(item, element)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 64)
	return v, err == nil
}

func hexField(f recordfieldGetter, item, element string) (uint32, bool) {
	s, ok := f.Get(item, element)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 32)
	return uint32(v), err == nil
}

func octField(f recordfieldGetter, item, element string) (uint64, bool) {
	s, ok := f.Get(item, element)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 8, 32)
	return v, err == nil
}

type recordfieldGetter interface {
	Get(item, element string) (string, bool)
}
