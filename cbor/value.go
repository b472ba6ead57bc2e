// Copyright 2026 HCert Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cbor

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Kind identifies which member of the Value union is populated.
type Kind uint8

const (
	KindInteger Kind = iota
	KindByteString
	KindTextString
	KindArray
	KindMap
	KindBool
	KindNull
	KindFloat
	KindTag
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindByteString:
		return "byte string"
	case KindTextString:
		return "text string"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindFloat:
		return "float"
	case KindTag:
		return "tag"
	default:
		return fmt.Sprintf("unknown kind %d", uint8(k))
	}
}

// Pair is a single map entry. Map entries are kept in encoding order and
// duplicate keys are preserved.
type Pair struct {
	Key   Value
	Value Value
}

// Value is a decoded CBOR item. It is a tagged union: Kind() selects which
// accessor is meaningful. Values are built only by Decode and are not
// modified afterwards; accessors returning slices expose the decoder-owned
// backing storage and must be treated as read-only.
type Value struct {
	kind       Kind
	intVal     int64
	floatVal   float64
	boolVal    bool
	textVal    string
	bytesVal   []byte
	items      []Value
	pairs      []Pair
	tagNumber  uint64
	tagContent *Value
}

// Kind reports which union member is populated.
func (v Value) Kind() Kind {
	return v.kind
}

// Int returns the integer value. Valid only for KindInteger.
func (v Value) Int() int64 {
	return v.intVal
}

// Float returns the floating-point value. Valid only for KindFloat.
func (v Value) Float() float64 {
	return v.floatVal
}

// Bool returns the boolean value. Valid only for KindBool.
func (v Value) Bool() bool {
	return v.boolVal
}

// Text returns the text string value. Valid only for KindTextString.
func (v Value) Text() string {
	return v.textVal
}

// Bytes returns the byte string value. Valid only for KindByteString.
func (v Value) Bytes() []byte {
	return v.bytesVal
}

// Items returns the array elements in encoding order. Valid only for
// KindArray.
func (v Value) Items() []Value {
	return v.items
}

// Pairs returns the map entries in encoding order, duplicates included.
// Valid only for KindMap.
func (v Value) Pairs() []Pair {
	return v.pairs
}

// Tag returns the tag number and tagged content. Valid only for KindTag.
func (v Value) Tag() (uint64, Value) {
	if v.tagContent == nil {
		return v.tagNumber, Value{kind: KindNull}
	}
	return v.tagNumber, *v.tagContent
}

// MarshalJSON renders the value as a JSON AST, mostly useful for debug
// dumps and test assertions.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInteger:
		return json.Marshal(map[string]int64{"int": v.intVal})
	case KindByteString:
		return json.Marshal(
			map[string]string{"bytes": hex.EncodeToString(v.bytesVal)},
		)
	case KindTextString:
		return json.Marshal(map[string]string{"string": v.textVal})
	case KindArray:
		items := v.items
		if items == nil {
			items = []Value{}
		}
		return json.Marshal(map[string][]Value{"list": items})
	case KindMap:
		entries := make([]map[string]Value, 0, len(v.pairs))
		for _, pair := range v.pairs {
			entries = append(
				entries,
				map[string]Value{"k": pair.Key, "v": pair.Value},
			)
		}
		return json.Marshal(map[string]any{"map": entries})
	case KindBool:
		return json.Marshal(map[string]bool{"bool": v.boolVal})
	case KindNull:
		return []byte("null"), nil
	case KindFloat:
		return json.Marshal(map[string]float64{"float": v.floatVal})
	case KindTag:
		_, content := v.Tag()
		return json.Marshal(
			map[string]any{"tag": v.tagNumber, "content": content},
		)
	default:
		return nil, fmt.Errorf("cannot marshal %s", v.kind)
	}
}
