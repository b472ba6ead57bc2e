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

// Read-only lookup helpers for navigating a decoded tree without a schema.
// Absence is reported via the bool result; type enforcement belongs to the
// caller, which knows which fields are contractually required.

// MapGetInt returns the value for an integer map key. When the map holds
// duplicate keys the first entry in encoding order wins. Returns false for
// non-map values and absent keys.
func (v Value) MapGetInt(key int64) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	for _, pair := range v.pairs {
		if pair.Key.kind == KindInteger && pair.Key.intVal == key {
			return pair.Value, true
		}
	}
	return Value{}, false
}

// MapGetText returns the value for a text-string map key. When the map
// holds duplicate keys the first entry in encoding order wins. Returns
// false for non-map values and absent keys.
func (v Value) MapGetText(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	for _, pair := range v.pairs {
		if pair.Key.kind == KindTextString && pair.Key.textVal == key {
			return pair.Value, true
		}
	}
	return Value{}, false
}

// Index returns the array element at idx. Returns false for non-array
// values and out-of-range indexes.
func (v Value) Index(idx int) (Value, bool) {
	if v.kind != KindArray || idx < 0 || idx >= len(v.items) {
		return Value{}, false
	}
	return v.items[idx], true
}
