// config.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package config loads and validates the astmops run configuration: the
// session date, processing mode, per-SystemType SIC sets, and the
// numeric thresholds the performance evaluator uses.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ProcessingMode selects where the reference track for association comes
// from.
type ProcessingMode int

const (
	// ToO (test-of-opportunity): the reference track is derived from
	// ADS-B like any other sensor.
	ToO ProcessingMode = iota
	// Dgps: the reference track is supplied out-of-band by a DGPS-equipped
	// vehicle; ADS-B target reports are dropped at stage A.
	Dgps
)

func (m ProcessingMode) String() string {
	switch m {
	case ToO:
		return "ToO"
	case Dgps:
		return "Dgps"
	default:
		return "Unknown"
	}
}

func (m ProcessingMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *ProcessingMode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "ToO", "":
		*m = ToO
	case "Dgps":
		*m = Dgps
	default:
		return fmt.Errorf("%s: unknown processing_mode", s)
	}
	return nil
}

// PDPeriods gives the IntervalCounter period, in seconds, used by the
// MLAT probability-of-detection metric for each named-area group. Runway
// and Airborne use the ED-117 "runway" period; Stand/ApronLane/Taxiway
// fall back to apron/other defaults when not explicitly configured.
type PDPeriods struct {
	RunwaySeconds   float64 `json:"runway_seconds"`
	ApronSeconds    float64 `json:"apron_seconds"`
	OtherSeconds    float64 `json:"other_seconds"`
}

// DefaultPDPeriods returns the ED-116/ED-117 default probability-of-
// detection interval periods (astmops.h's MOPS::ED117 namespace).
func DefaultPDPeriods() PDPeriods {
	return PDPeriods{
		RunwaySeconds: 1.0,
		ApronSeconds:  5.0,
		OtherSeconds:  2.0,
	}
}

// Config is the full set of options a run needs, loaded from JSON.
type Config struct {
	Date           string         `json:"date"`
	ProcessingMode ProcessingMode `json:"processing_mode"`

	SmrSics  []uint8 `json:"smr_sics"`
	MlatSics []uint8 `json:"mlat_sics"`
	AdsbSics []uint8 `json:"adsb_sics"`

	DgpsTargetAddress uint32 `json:"dgps_target_address"`

	RpaPicPercentile     float64   `json:"rpa_pic_percentile"`
	SilencePeriodSeconds float64   `json:"silence_period_seconds"`
	PDPeriods            PDPeriods `json:"pd_periods"`
	UpdateRateTargetHz   float64   `json:"update_rate_target_hz"`

	ExcludedAddressesFile string `json:"excluded_addresses_file"`
	AerodromeFile         string `json:"aerodrome_file"`
	DgpsReferenceFile     string `json:"dgps_reference_file"`

	// SessionDate is the parsed form of Date, filled in by Validate.
	SessionDate time.Time `json:"-"`
}

// Error is a fatal, startup-time configuration problem: a malformed date,
// overlapping sic-sets, an out-of-range percentile, or an unreadable
// input file. Per spec, only configuration and geometry errors abort the
// pipeline.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return "configuration error: " + e.Msg }

func configErrorf(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// Default returns a Config with every MOPS default applied
// (astmops.h's MOPS namespace), to be overridden by Load/JSON fields that
// are explicitly set.
func Default() Config {
	return Config{
		ProcessingMode:       ToO,
		RpaPicPercentile:     95, // spec.md §6; the original source's defaultRpaPicPercentile of 75 is superseded.
		SilencePeriodSeconds: 60.0,
		PDPeriods:            DefaultPDPeriods(),
		UpdateRateTargetHz:   1.0,
	}
}

// Load reads and validates a Config from a JSON file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, configErrorf("%s: %v", path, err)
	}

	c := Default()
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, configErrorf("%s: invalid JSON: %v", path, err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the invariants Load requires and fills in SessionDate.
// It is exported so callers building a Config programmatically (as tests
// do) can validate it the same way Load does.
func (c *Config) Validate() error {
	t, err := time.Parse("2006-01-02", c.Date)
	if err != nil {
		return configErrorf("date %q: %v", c.Date, err)
	}
	c.SessionDate = t

	if c.RpaPicPercentile < 0 || c.RpaPicPercentile > 100 {
		return configErrorf("rpa_pic_percentile %v out of range [0,100]", c.RpaPicPercentile)
	}

	if err := disjoint("smr_sics", c.SmrSics, "mlat_sics", c.MlatSics); err != nil {
		return err
	}
	if err := disjoint("smr_sics", c.SmrSics, "adsb_sics", c.AdsbSics); err != nil {
		return err
	}
	if err := disjoint("mlat_sics", c.MlatSics, "adsb_sics", c.AdsbSics); err != nil {
		return err
	}

	return nil
}

func disjoint(aname string, a []uint8, bname string, b []uint8) error {
	set := make(map[uint8]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		if set[v] {
			return configErrorf("%s and %s both contain sic %d", aname, bname, v)
		}
	}
	return nil
}
