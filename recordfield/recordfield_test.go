// recordfield_test.go
// Copyright(c) 2023 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package recordfield

import "testing"

func TestSetGet(t *testing.T) {
	m := New()
	m.Set("I010", "SAC", "0")
	m.Set("I010", "SIC", "7")

	if v, ok := m.Get("I010", "SIC"); !ok || v != "7" {
		t.Errorf("Get(I010,SIC) = %q, %v; want 7, true", v, ok)
	}
	if _, ok := m.Get("I010", "missing"); ok {
		t.Errorf("Get(I010,missing) unexpectedly found")
	}
	if _, ok := m.Get("missing", "SIC"); ok {
		t.Errorf("Get(missing,SIC) unexpectedly found")
	}
	if !m.Has("I010", "SAC") {
		t.Errorf("Has(I010,SAC) = false, want true")
	}
	if !m.HasItem("I010") {
		t.Errorf("HasItem(I010) = false, want true")
	}
	if m.HasItem("I020") {
		t.Errorf("HasItem(I020) = true, want false")
	}
}

func TestItemsOrder(t *testing.T) {
	m := New()
	m.Set("I010", "SAC", "0")
	m.Set("I140", "ToD", "3600")
	m.Set("I020", "TYP", "3")

	got := m.Items()
	want := []string{"I010", "I140", "I020"}
	if len(got) != len(want) {
		t.Fatalf("Items() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Items()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
