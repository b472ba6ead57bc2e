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

package dcc

import "fmt"

// MissingClaimError is returned when a contractually required key is absent.
// Path locates the enclosing value (for example "v[1]" for the second
// vaccination record) and is empty for top-level claims.
type MissingClaimError struct {
	Path string
	Key  string
}

func (e MissingClaimError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("missing required claim %q", e.Key)
	}
	return fmt.Sprintf("missing required claim %q in %s", e.Key, e.Path)
}

// TypeMismatchError is returned when a claim value's CBOR type does not
// match the field it maps to.
type TypeMismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf(
		"claim %s: expected %s, got %s",
		e.Path,
		e.Expected,
		e.Actual,
	)
}
