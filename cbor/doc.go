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

// Package cbor provides a structural CBOR decoder for health certificate
// payloads.
//
// Decode parses a byte buffer into a Value tree in a single pass. Value is
// a tagged union over the CBOR data model (integers, strings, arrays,
// ordered maps, bools, null, floats, tags); callers switch on Kind() and
// navigate with the MapGetInt/MapGetText/Index helpers. Maps keep their
// entries in encoding order and tolerate duplicate keys.
//
// DecodeOptions bounds nesting depth and total element count so a
// corrupted or hostile document cannot exhaust stack or memory.
//
// Encode wraps github.com/fxamacker/cbor/v2 with deterministic map
// ordering. It exists for constructing test fixtures and debug tooling,
// not as part of the decode pipeline.
package cbor
