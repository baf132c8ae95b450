// types.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package record implements the Record Interpreter (stage A of the
// pipeline): it classifies decoded surveillance records by sensor type
// and purpose, validates them against a category-specific field schema,
// and normalizes their timestamp, including midnight rollover.
package record

import (
	"time"

	"github.com/avsurv/astmops/recordfield"
)

// SystemType identifies which kind of sensor (or reference source)
// produced a record.
type SystemType int

const (
	UnknownSystem SystemType = iota
	Smr
	Mlat
	Adsb
	DgpsSystem
)

func (s SystemType) String() string {
	switch s {
	case Smr:
		return "Smr"
	case Mlat:
		return "Mlat"
	case Adsb:
		return "Adsb"
	case DgpsSystem:
		return "Dgps"
	default:
		return "Unknown"
	}
}

// MessageType distinguishes a positional target report from a sensor
// service/status message.
type MessageType int

const (
	UnknownMessage MessageType = iota
	TargetReport
	ServiceMessage
)

func (m MessageType) String() string {
	switch m {
	case TargetReport:
		return "TargetReport"
	case ServiceMessage:
		return "ServiceMessage"
	default:
		return "Unknown"
	}
}

// RecordType is the (SystemType, MessageType) pair a record is classified
// into; it is Unknown if either half is Unknown.
type RecordType struct {
	System  SystemType
	Message MessageType
}

func (rt RecordType) IsUnknown() bool {
	return rt.System == UnknownSystem || rt.Message == UnknownMessage
}

// DataSrcId identifies the physical sensor that emitted a record.
type DataSrcId struct {
	Sac, Sic uint8
}

// Input is a decoded record as delivered by the (out-of-scope) collector:
// a category, the emitting sensor's data-source id, an optional
// CRC/identifier used in diagnostics, and the two-level field map. The
// time of day travels inside the field map (I140 for CAT10, I071/I073/
// I077 for CAT21) and is turned into a timestamp by the Interpreter.
type Input struct {
	Category   uint8
	DataSource DataSrcId
	CRC        uint32
	Fields     recordfield.Map
}

// Record is a classified, timestamp-normalized record ready for stage B.
type Record struct {
	Category   uint8
	DataSource DataSrcId
	CRC        uint32
	Fields     recordfield.Map

	Type      RecordType
	Timestamp time.Time // absolute, UTC, normalized for midnight rollover
}
