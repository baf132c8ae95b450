// record_test.go
// Copyright(c) 2023 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package record

import (
	"testing"
	"time"

	"github.com/avsurv/astmops/config"
	"github.com/avsurv/astmops/recordfield"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	c := config.Default()
	c.Date = "2020-05-05"
	c.SmrSics = []uint8{7}
	c.MlatSics = []uint8{107}
	c.AdsbSics = []uint8{219}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	return c
}

func smrTargetReportFields(tod string) recordfield.Map {
	f := recordfield.New()
	f.Set("I000", "MsgTyp", "1")
	f.Set("I010", "SAC", "0")
	f.Set("I010", "SIC", "7")
	f.Set("I020", "TYP", "3")
	f.Set("I140", "ToD", tod)
	f.Set("I161", "TrkNb", "301")
	f.Set("I270", "Len", "10")
	f.Set("I042", "X", "100")
	f.Set("I042", "Y", "0")
	return f
}

func TestInterpretAcceptsValidSmrTargetReport(t *testing.T) {
	interp := NewInterpreter(testConfig(t), nil)
	in := Input{
		Category:   10,
		DataSource: DataSrcId{Sac: 0, Sic: 7},
		CRC:        0x1234,
		Fields:     smrTargetReportFields("36000"),
	}

	rec, ok := interp.Interpret(in)
	if !ok {
		t.Fatal("expected record to be kept")
	}
	if rec.Type.System != Smr || rec.Type.Message != TargetReport {
		t.Errorf("got %v, want Smr/TargetReport", rec.Type)
	}
	wantTime := time.Date(2020, 5, 5, 10, 0, 0, 0, time.UTC)
	if !rec.Timestamp.Equal(wantTime) {
		t.Errorf("Timestamp = %v, want %v", rec.Timestamp, wantTime)
	}
}

func TestInterpretDropsUnsupportedCategory(t *testing.T) {
	interp := NewInterpreter(testConfig(t), nil)
	_, ok := interp.Interpret(Input{Category: 48, DataSource: DataSrcId{Sic: 7}})
	if ok {
		t.Error("expected category 48 to be dropped")
	}
}

func TestInterpretDropsMissingMandatoryField(t *testing.T) {
	interp := NewInterpreter(testConfig(t), nil)
	f := smrTargetReportFields("36000")
	// Drop I270, which smrTargetReportFields sets as mandatory for a Smr
	// target report; reconstruct the map without it.
	incomplete := recordfield.New()
	incomplete.Set("I000", "MsgTyp", "1")
	incomplete.Set("I010", "SAC", "0")
	incomplete.Set("I010", "SIC", "7")
	incomplete.Set("I020", "TYP", "3")
	incomplete.Set("I140", "ToD", "36000")
	incomplete.Set("I161", "TrkNb", "301")
	incomplete.Set("I042", "X", "100")
	incomplete.Set("I042", "Y", "0")
	_ = f

	_, ok := interp.Interpret(Input{
		Category:   10,
		DataSource: DataSrcId{Sic: 7},
		Fields:     incomplete,
	})
	if ok {
		t.Error("expected record missing I270 to be dropped")
	}
}

func TestInterpretMidnightRollover(t *testing.T) {
	interp := NewInterpreter(testConfig(t), nil)

	// First record just before midnight.
	in1 := Input{Category: 10, DataSource: DataSrcId{Sic: 7}, Fields: smrTargetReportFields("86395")} // 23:59:55
	rec1, ok := interp.Interpret(in1)
	if !ok {
		t.Fatal("expected first record to be kept")
	}

	// Second record just after midnight (ToD wraps to a small value).
	in2 := Input{Category: 10, DataSource: DataSrcId{Sic: 7}, Fields: smrTargetReportFields("5")} // 00:00:05
	rec2, ok := interp.Interpret(in2)
	if !ok {
		t.Fatal("expected second record to be kept")
	}

	if !rec2.Timestamp.After(rec1.Timestamp) {
		t.Errorf("rollover not applied: rec1=%v rec2=%v", rec1.Timestamp, rec2.Timestamp)
	}
	if rec2.Timestamp.Sub(rec1.Timestamp) != 10*time.Second {
		t.Errorf("expected a 10s gap across the rollover, got %v", rec2.Timestamp.Sub(rec1.Timestamp))
	}
}

func TestInterpretDgpsModeDropsAdsb(t *testing.T) {
	c := testConfig(t)
	c.ProcessingMode = config.Dgps
	interp := NewInterpreter(c, nil)

	f := recordfield.New()
	f.Set("I010", "SAC", "0")
	f.Set("I010", "SIC", "219")
	f.Set("I073", "ToD", "36000")

	_, ok := interp.Interpret(Input{Category: 21, DataSource: DataSrcId{Sic: 219}, Fields: f})
	if ok {
		t.Error("expected Adsb target report to be dropped in Dgps mode")
	}
}
