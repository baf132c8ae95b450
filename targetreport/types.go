// types.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package targetreport implements the Target-Report Extractor (stage B of
// the pipeline): it filters classified records down to the ones worth
// evaluating and projects them into the normalized TargetReport shape
// every downstream stage consumes.
package targetreport

import (
	"time"

	"github.com/avsurv/astmops/aerodrome"
	"github.com/avsurv/astmops/record"
)

// TargetType hints at what kind of surface/airborne entity produced a
// target report. Derived from the same TOT (Mlat)/ECAT (Adsb) codes stage
// B already reads to decide whether to keep the record; Smr carries no
// such signal and is always Unknown.
type TargetType int

const (
	UnknownTarget TargetType = iota
	FixedTransponder
	GroundVehicle
	Aircraft
)

func (t TargetType) String() string {
	switch t {
	case FixedTransponder:
		return "FixedTransponder"
	case GroundVehicle:
		return "GroundVehicle"
	case Aircraft:
		return "Aircraft"
	default:
		return "Unknown"
	}
}

// TargetReport is the normalized observation stage B emits. NamedArea is
// left at its zero value until stage C locates the report.
type TargetReport struct {
	SystemType record.SystemType
	DataSource record.DataSrcId
	Timestamp  time.Time

	TrackNumber uint16

	OnGround bool
	X, Y     float64
	Z        float64
	HasZ     bool

	ModeS     uint32
	HasModeS  bool
	Mode3A    uint16
	HasMode3A bool
	Ident     string
	HasIdent  bool

	TargetType TargetType
	NamedArea  aerodrome.NamedArea

	// IntegrityVersion and IntegrityCategory are the ADS-B reference-
	// quality filter keys (spec.md §4.F's PIC-threshold pre-pass):
	// populated only for Adsb target reports that carry them.
	IntegrityVersion     int
	HasIntegrityVersion  bool
	IntegrityCategory    int
	HasIntegrityCategory bool
}

// InOutCounter tracks, per SystemType, how many classified records were
// offered to the extractor (In) versus how many survived as Target
// Reports (Out); the difference is diagnostic, not an error.
type InOutCounter struct {
	In, Out int
}
