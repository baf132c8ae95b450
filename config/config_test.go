// config_test.go
// Copyright(c) 2023 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValid(t *testing.T) {
	path := writeConfig(t, `{
		"date": "2020-05-05",
		"smr_sics": [7],
		"mlat_sics": [107],
		"adsb_sics": [219]
	}`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.RpaPicPercentile != 95 {
		t.Errorf("RpaPicPercentile = %v, want 95 (spec.md default, not the original's 75)", c.RpaPicPercentile)
	}
	if c.SilencePeriodSeconds != 60.0 {
		t.Errorf("SilencePeriodSeconds = %v, want 60", c.SilencePeriodSeconds)
	}
	if c.SessionDate.Year() != 2020 || c.SessionDate.Month() != 5 || c.SessionDate.Day() != 5 {
		t.Errorf("SessionDate = %v, want 2020-05-05", c.SessionDate)
	}
}

func TestLoadOverlappingSics(t *testing.T) {
	path := writeConfig(t, `{
		"date": "2020-05-05",
		"smr_sics": [7],
		"mlat_sics": [7],
		"adsb_sics": [219]
	}`)

	if _, err := Load(path); err == nil {
		t.Error("Load with overlapping sic-sets should fail")
	} else if _, ok := err.(*Error); !ok {
		t.Errorf("error should be *config.Error, got %T", err)
	}
}

func TestLoadInvalidDate(t *testing.T) {
	path := writeConfig(t, `{"date": "not-a-date"}`)
	if _, err := Load(path); err == nil {
		t.Error("Load with invalid date should fail")
	}
}

func TestLoadInvalidPercentile(t *testing.T) {
	path := writeConfig(t, `{"date": "2020-05-05", "rpa_pic_percentile": 150}`)
	if _, err := Load(path); err == nil {
		t.Error("Load with out-of-range percentile should fail")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}
