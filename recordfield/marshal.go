// marshal.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package recordfield

import (
	"encoding/json"

	"github.com/iancoleman/orderedmap"
	"github.com/vmihailenco/msgpack/v5"
)

// MarshalJSON defers to the underlying OrderedMap, which preserves item
// and element insertion order the way the original wire records do.
func (m Map) MarshalJSON() ([]byte, error) {
	if m.items == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m.items)
}

// UnmarshalJSON rebuilds m from a JSON object of the same
// item -> element -> value shape MarshalJSON produces.
func (m *Map) UnmarshalJSON(b []byte) error {
	om := orderedmap.New()
	if err := json.Unmarshal(b, om); err != nil {
		return err
	}
	// orderedmap decodes nested objects as OrderedMap values; store them
	// as pointers, the form Set and Get use.
	for _, name := range om.Keys() {
		sub, _ := om.Get(name)
		if v, ok := sub.(orderedmap.OrderedMap); ok {
			om.Set(name, &v)
		}
	}
	m.items = om
	return nil
}

// element/item are the ordered wire-level building blocks
// EncodeMsgpack/DecodeMsgpack use; msgpack has no native notion of an
// ordered map, so Map round-trips through this explicit slice shape
// instead of relying on a third-party OrderedMap codec.
type element struct {
	Name  string
	Value string
}

type item struct {
	Name     string
	Elements []element
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (m Map) EncodeMsgpack(enc *msgpack.Encoder) error {
	var items []item
	if m.items != nil {
		for _, name := range m.items.Keys() {
			sub, _ := m.items.Get(name)
			om, ok := sub.(*orderedmap.OrderedMap)
			if !ok {
				continue
			}
			it := item{Name: name}
			for _, elName := range om.Keys() {
				v, _ := om.Get(elName)
				s, _ := v.(string)
				it.Elements = append(it.Elements, element{Name: elName, Value: s})
			}
			items = append(items, it)
		}
	}
	return enc.Encode(items)
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (m *Map) DecodeMsgpack(dec *msgpack.Decoder) error {
	var items []item
	if err := dec.Decode(&items); err != nil {
		return err
	}

	out := New()
	for _, it := range items {
		for _, el := range it.Elements {
			out.Set(it.Name, el.Name, el.Value)
		}
	}
	*m = out
	return nil
}
