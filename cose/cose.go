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

// Package cose extracts the claims payload from a COSE_Sign1 envelope
// without verifying its signature.
package cose

import (
	"fmt"

	"github.com/hcertlabs/godcc/cbor"
)

// COSE_Sign1 tag number per RFC 9052
const Sign1TagNumber = 18

// Common header labels per RFC 9052 section 3.1
const (
	headerLabelAlgorithm = 1
	headerLabelKeyID     = 4
)

// UnexpectedShapeError is returned when the decoded top-level value is not
// a 4-element COSE_Sign1 array with the expected element types.
type UnexpectedShapeError struct {
	Reason string
}

func (e UnexpectedShapeError) Error() string {
	return fmt.Sprintf("unexpected COSE envelope shape: %s", e.Reason)
}

// UnverifiedSign1 is the destructured envelope. Nothing in it has been
// cryptographically checked: the protected header and signature are carried
// for inspection only and the payload still needs CBOR decoding.
type UnverifiedSign1 struct {
	Protected []byte
	Payload   []byte
	Signature []byte

	// Algorithm and KeyID are pulled from the protected header when it
	// decodes cleanly. They identify the (unverified) signer.
	Algorithm int64
	KeyID     []byte
}

// ExtractSign1 destructures a decoded COSE_Sign1 envelope: protected header
// bytes, unprotected header map (unused), payload bytes, and signature
// bytes. An enclosing COSE_Sign1 semantic tag is unwrapped first.
func ExtractSign1(v cbor.Value) (*UnverifiedSign1, error) {
	if v.Kind() == cbor.KindTag {
		number, content := v.Tag()
		if number != Sign1TagNumber {
			return nil, UnexpectedShapeError{
				Reason: fmt.Sprintf(
					"tag %d, expected COSE_Sign1 tag %d",
					number,
					Sign1TagNumber,
				),
			}
		}
		v = content
	}
	if v.Kind() != cbor.KindArray {
		return nil, UnexpectedShapeError{
			Reason: fmt.Sprintf("top-level %s, expected array", v.Kind()),
		}
	}
	items := v.Items()
	if len(items) != 4 {
		return nil, UnexpectedShapeError{
			Reason: fmt.Sprintf("array of %d elements, expected 4", len(items)),
		}
	}
	elementKinds := []struct {
		name string
		kind cbor.Kind
	}{
		{name: "protected header", kind: cbor.KindByteString},
		{name: "unprotected header", kind: cbor.KindMap},
		{name: "payload", kind: cbor.KindByteString},
		{name: "signature", kind: cbor.KindByteString},
	}
	for i, expected := range elementKinds {
		if items[i].Kind() != expected.kind {
			return nil, UnexpectedShapeError{
				Reason: fmt.Sprintf(
					"%s is %s, expected %s",
					expected.name,
					items[i].Kind(),
					expected.kind,
				),
			}
		}
	}
	ret := &UnverifiedSign1{
		Protected: items[0].Bytes(),
		Payload:   items[2].Bytes(),
		Signature: items[3].Bytes(),
	}
	ret.decodeProtectedHeader()
	return ret, nil
}

// decodeProtectedHeader populates Algorithm and KeyID from the protected
// header bytes. The header is informational here, so decode problems leave
// the fields zeroed rather than failing the extraction.
func (s *UnverifiedSign1) decodeProtectedHeader() {
	if len(s.Protected) == 0 {
		return
	}
	header, err := cbor.Decode(s.Protected, cbor.DecodeOptions{})
	if err != nil {
		return
	}
	if alg, ok := header.MapGetInt(headerLabelAlgorithm); ok &&
		alg.Kind() == cbor.KindInteger {
		s.Algorithm = alg.Int()
	}
	if kid, ok := header.MapGetInt(headerLabelKeyID); ok &&
		kid.Kind() == cbor.KindByteString {
		s.KeyID = kid.Bytes()
	}
}
