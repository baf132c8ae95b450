// document_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package result

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/avsurv/astmops/aerodrome"
	"github.com/avsurv/astmops/perf"
)

func rwy() aerodrome.NamedArea  { return aerodrome.NamedArea{Area: aerodrome.Runway, Name: "09"} }
func taxi() aerodrome.NamedArea { return aerodrome.NamedArea{Area: aerodrome.Taxiway, Name: "A"} }

func sampleResults() *perf.Results {
	rpa := &perf.RPACounter{}
	rpa.Add(1.0)
	rpa.Add(3.0)

	ur := &perf.URCounter{}
	ur.Add(10, 8)

	pd := &perf.PDCounter{}
	pd.Add(9, 10)

	pfd2 := &perf.PFD2Counter{}
	pfd2.Add(8, 10, 10)

	return &perf.Results{
		PicP95:  8,
		SmrRPA:  map[aerodrome.NamedArea]*perf.RPACounter{rwy(): rpa},
		SmrUR:   map[aerodrome.NamedArea]*perf.URCounter{rwy(): ur},
		SmrPD:   map[aerodrome.NamedArea]*perf.PDCounter{rwy(): pd},
		SmrPFD2: map[aerodrome.NamedArea]*perf.PFD2Counter{rwy(): pfd2},

		MlatRPA: map[aerodrome.NamedArea]*perf.RPACounter{},
		MlatUR:  map[aerodrome.NamedArea]*perf.URCounter{},
		MlatPD:  map[aerodrome.NamedArea]*perf.PDCounter{},
		MlatPFD: map[aerodrome.NamedArea]*perf.PFDCounter{},
		MlatPID: map[aerodrome.NamedArea]*perf.IDCounter{},
		MlatP3A: map[aerodrome.NamedArea]*perf.IDCounter{},
		MlatPLG: map[aerodrome.NamedArea]*perf.PLGCounter{},
	}
}

func findGroup(t *testing.T, groups []PercentGroup, area string) PercentGroup {
	t.Helper()
	for _, g := range groups {
		if g.Area == area {
			return g
		}
	}
	t.Fatalf("no group %q among %+v", area, groups)
	return PercentGroup{}
}

func TestBuildLeafMatchesCounters(t *testing.T) {
	d := Build(sampleResults())

	manoeuvering := findGroup(t, d.ED116PD, aerodrome.Manoeuvering.String())
	if len(manoeuvering.SubAreas) != 1 || manoeuvering.SubAreas[0].Area != rwy().FullName() {
		t.Fatalf("unexpected Manoeuvering sub-areas: %+v", manoeuvering.SubAreas)
	}
	if manoeuvering.N != 10 {
		t.Errorf("Manoeuvering PD.N = %d, want 10", manoeuvering.N)
	}

	rpaGroup := findGroup2(t, d.ED116RPA, aerodrome.Manoeuvering.String())
	if rpaGroup.Mean != 2.0 {
		t.Errorf("RPA mean = %v, want 2.0", rpaGroup.Mean)
	}
}

func findGroup2(t *testing.T, groups []RPAGroup, area string) RPAGroup {
	t.Helper()
	for _, g := range groups {
		if g.Area == area {
			return g
		}
	}
	t.Fatalf("no RPA group %q among %+v", area, groups)
	return RPAGroup{}
}

func TestBuildGroupAggregatesAcrossLeaves(t *testing.T) {
	res := sampleResults()
	pd2 := &perf.PDCounter{}
	pd2.Add(2, 2)
	res.SmrPD[taxi()] = pd2

	d := Build(res)

	manoeuvering := findGroup(t, d.ED116PD, aerodrome.Manoeuvering.String())
	if manoeuvering.N != 12 {
		t.Errorf("Manoeuvering PD.N = %d, want 12 (10 runway + 2 taxiway)", manoeuvering.N)
	}
	if len(manoeuvering.SubAreas) != 2 {
		t.Errorf("expected 2 sub-areas (runway, taxiway), got %+v", manoeuvering.SubAreas)
	}
}

func TestWriteTextProducesNonEmptyTable(t *testing.T) {
	d := Build(sampleResults())
	var buf bytes.Buffer
	if err := WriteText(&buf, d); err != nil {
		t.Fatalf("WriteText error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "ED116RPA") || !strings.Contains(out, rwy().FullName()) {
		t.Errorf("expected text report to mention ED116RPA and %s, got:\n%s", rwy().FullName(), out)
	}
}

func TestWriteJSONRendersNaNAsNull(t *testing.T) {
	res := sampleResults()
	empty := &perf.PDCounter{}
	res.SmrPD[taxi()] = empty // NTr=0/NUp=0 -> Percentage() is NaN

	d := Build(res)
	var buf bytes.Buffer
	if err := WriteJSON(&buf, d); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if decoded["type"] != DocumentType {
		t.Errorf("type = %v, want %q", decoded["type"], DocumentType)
	}

	ed116pd, ok := decoded["ED116PD"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected ED116PD object, got %T", decoded["ED116PD"])
	}
	manoeuvering, ok := ed116pd[aerodrome.Manoeuvering.String()].(map[string]interface{})
	if !ok {
		t.Fatalf("expected a %s group, got %+v", aerodrome.Manoeuvering.String(), ed116pd)
	}
	subAreas := manoeuvering["subAreas"].(map[string]interface{})

	taxiRow, ok := subAreas[taxi().FullName()].(map[string]interface{})
	if !ok {
		t.Fatalf("expected a sub-area row for %s, got %+v", taxi().FullName(), subAreas)
	}
	if taxiRow["percent"] != nil {
		t.Errorf("expected NaN PD percentage to render as null, got %v", taxiRow["percent"])
	}
}

func TestJsonFloatRoundsAndHandlesNaN(t *testing.T) {
	if v := jsonFloat(math.NaN()); v != nil {
		t.Errorf("jsonFloat(NaN) = %v, want nil", v)
	}
	if v := jsonFloat(0.12345); v != 0.12 {
		t.Errorf("jsonFloat(0.12345) = %v, want 0.12", v)
	}
}
