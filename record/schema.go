// schema.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package record

import "github.com/avsurv/astmops/recordfield"

// schema is a minimum-fields schema for one RecordType: every item in
// Mandatory must be present, and every list in Disjunctive must have at
// least one of its items present.
type schema struct {
	Mandatory   []string
	Disjunctive [][]string
}

func (s schema) satisfiedBy(f recordfield.Map) bool {
	for _, item := range s.Mandatory {
		if !f.HasItem(item) {
			return false
		}
	}
	for _, group := range s.Disjunctive {
		ok := false
		for _, item := range group {
			if f.HasItem(item) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// schemas holds the exact Cat10 schemas from spec.md §4.A.3. Cat21
// TargetReport has no schema here: the spec defers its minimum fields to
// the extractor, noting the original source's CAT21 hasMinimumDataItems
// branch was an empty fall-through (see SPEC_FULL.md / DESIGN.md open
// question).
var schemas = map[RecordType]schema{
	{System: UnknownSystem, Message: ServiceMessage}: {
		Mandatory: []string{"I000", "I010", "I140", "I550"},
	},
	{System: Smr, Message: TargetReport}: {
		Mandatory:   []string{"I000", "I010", "I020", "I140", "I161", "I270"},
		Disjunctive: [][]string{{"I040", "I041", "I042"}},
	},
	{System: Mlat, Message: TargetReport}: {
		Mandatory:   []string{"I000", "I010", "I020", "I140", "I161", "I220"},
		Disjunctive: [][]string{{"I041", "I042"}, {"I060", "I245"}},
	},
}

// cat10ServiceMessageSchema returns the SystemType-agnostic CAT10
// ServiceMessage schema above, registered under the UnknownSystem key: the
// service-message schema in spec.md doesn't vary by system type, so every
// ServiceMessage is looked up under that one key.
func cat10ServiceMessageSchema() schema {
	return schemas[RecordType{System: UnknownSystem, Message: ServiceMessage}]
}

// schemaFor returns the schema that applies to rt, and whether one
// exists. CAT21 TargetReport has none (see schemas' doc comment): it
// always passes the stage A schema check and relies on the extractor's
// own required-field check.
func schemaFor(rt RecordType) (schema, bool) {
	if rt.Message == ServiceMessage {
		return cat10ServiceMessageSchema(), true
	}
	s, ok := schemas[rt]
	return s, ok
}
