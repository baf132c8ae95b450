// recordfield.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package recordfield implements the two-level, order-preserving
// field/value map a decoded surveillance record is built from: item name
// (e.g. "I010") to sub-field name (e.g. "SIC") to textual value.
package recordfield

import "github.com/iancoleman/orderedmap"

// Map is a read-only two-level textual field map: item name -> element
// name -> value. It deliberately does not model a Go type per ASTERIX
// data item; callers use Has/Get against item/element name pairs, per the
// "polymorphism over record fields" design note.
type Map struct {
	items *orderedmap.OrderedMap
}

// New returns an empty Map.
func New() Map {
	return Map{items: orderedmap.New()}
}

// Set stores value under item/element, creating the item's sub-map if
// this is its first field.
func (m Map) Set(item, element, value string) {
	sub, ok := m.items.Get(item)
	var om *orderedmap.OrderedMap
	if ok {
		om = sub.(*orderedmap.OrderedMap)
	} else {
		om = orderedmap.New()
		m.items.Set(item, om)
	}
	om.Set(element, value)
}

// Has reports whether item/element is present in the map.
func (m Map) Has(item, element string) bool {
	_, ok := m.Get(item, element)
	return ok
}

// HasItem reports whether any element of item is present in the map.
func (m Map) HasItem(item string) bool {
	_, ok := m.items.Get(item)
	return ok
}

// Get returns the textual value at item/element and whether it was
// present.
func (m Map) Get(item, element string) (string, bool) {
	sub, ok := m.items.Get(item)
	if !ok {
		return "", false
	}
	om, ok := sub.(*orderedmap.OrderedMap)
	if !ok {
		return "", false
	}
	v, ok := om.Get(element)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Items returns the item names present in the map, in insertion order.
func (m Map) Items() []string {
	return m.items.Keys()
}
