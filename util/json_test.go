// util/json_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"strings"
	"testing"
)

type jsonTestPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func TestUnmarshalJSONRoundTrips(t *testing.T) {
	var p jsonTestPoint
	if err := UnmarshalJSON(strings.NewReader(`{"lat": 52.3, "lon": 4.76}`), &p); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if p.Lat != 52.3 || p.Lon != 4.76 {
		t.Errorf("got %+v, want {52.3 4.76}", p)
	}
}

func TestUnmarshalJSONReportsLineAndCharacterOnSyntaxError(t *testing.T) {
	var p jsonTestPoint
	err := UnmarshalJSON(strings.NewReader("{\n  \"lat\": ,\n}"), &p)
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q does not name the offending line", err)
	}
}

func TestUnmarshalJSONBytesReportsTypeMismatch(t *testing.T) {
	var p jsonTestPoint
	err := UnmarshalJSONBytes([]byte(`{"lat": "not a number", "lon": 4.76}`), &p)
	if err == nil {
		t.Fatal("expected a type error")
	}
	if !strings.Contains(err.Error(), "lat") {
		t.Errorf("error %q does not name the offending field", err)
	}
}
