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

import (
	"fmt"

	"github.com/hcertlabs/godcc/cbor"
)

// CWT claim keys per RFC 8392, plus the hcert container key assigned to
// the EU DCC scheme
const (
	claimKeyIssuer    = 1
	claimKeyExpiresAt = 4
	claimKeyIssuedAt  = 6
	claimKeyHcert     = -260
)

// Schema version key inside the hcert container; 1 selects the EU DCC v1
// claims map
const hcertSchemaV1 = 1

// MapClaims maps a decoded CWT claim set into Claims. The administrative
// claims (issuer, issued-at, expiry) are optional; the hcert container and
// its v1 claims map are required.
func MapClaims(v cbor.Value) (*Claims, error) {
	if v.Kind() != cbor.KindMap {
		return nil, TypeMismatchError{
			Path:     "claims",
			Expected: cbor.KindMap.String(),
			Actual:   v.Kind().String(),
		}
	}
	ret := &Claims{}
	if iss, ok := v.MapGetInt(claimKeyIssuer); ok {
		if iss.Kind() != cbor.KindTextString {
			return nil, TypeMismatchError{
				Path:     "1",
				Expected: cbor.KindTextString.String(),
				Actual:   iss.Kind().String(),
			}
		}
		ret.Issuer = iss.Text()
	}
	if exp, ok := v.MapGetInt(claimKeyExpiresAt); ok {
		if exp.Kind() != cbor.KindInteger {
			return nil, TypeMismatchError{
				Path:     "4",
				Expected: cbor.KindInteger.String(),
				Actual:   exp.Kind().String(),
			}
		}
		ret.ExpiresAt = exp.Int()
	}
	if iat, ok := v.MapGetInt(claimKeyIssuedAt); ok {
		if iat.Kind() != cbor.KindInteger {
			return nil, TypeMismatchError{
				Path:     "6",
				Expected: cbor.KindInteger.String(),
				Actual:   iat.Kind().String(),
			}
		}
		ret.IssuedAt = iat.Int()
	}
	hcert, ok := v.MapGetInt(claimKeyHcert)
	if !ok {
		return nil, MissingClaimError{Key: "-260"}
	}
	if hcert.Kind() != cbor.KindMap {
		return nil, TypeMismatchError{
			Path:     "-260",
			Expected: cbor.KindMap.String(),
			Actual:   hcert.Kind().String(),
		}
	}
	inner, ok := hcert.MapGetInt(hcertSchemaV1)
	if !ok {
		return nil, MissingClaimError{Path: "-260", Key: "1"}
	}
	cert, err := MapCertificate(inner)
	if err != nil {
		return nil, err
	}
	ret.Certificate = cert
	return ret, nil
}

// MapCertificate maps the hcert v1 claims map into a Certificate. Claim
// paths in errors are relative to that map. Unrecognized keys are ignored;
// values pass through unchanged with no aliasing or normalization.
func MapCertificate(v cbor.Value) (*Certificate, error) {
	if v.Kind() != cbor.KindMap {
		return nil, TypeMismatchError{
			Path:     "hcert",
			Expected: cbor.KindMap.String(),
			Actual:   v.Kind().String(),
		}
	}
	ret := &Certificate{}
	var err error
	if ret.Version, err = requireText(v, "", "ver"); err != nil {
		return nil, err
	}
	if ret.DateOfBirth, err = requireText(v, "", "dob"); err != nil {
		return nil, err
	}
	if ret.Name, err = mapName(v); err != nil {
		return nil, err
	}
	if ret.Vaccinations, err = mapRecords(v, "v", mapVaccineRecord); err != nil {
		return nil, err
	}
	if ret.Recoveries, err = mapRecords(v, "r", mapRecoveryRecord); err != nil {
		return nil, err
	}
	if ret.Tests, err = mapRecords(v, "t", mapTestRecord); err != nil {
		return nil, err
	}
	return ret, nil
}

func mapName(claims cbor.Value) (Name, error) {
	var ret Name
	nam, ok := claims.MapGetText("nam")
	if !ok {
		return ret, MissingClaimError{Key: "nam"}
	}
	if nam.Kind() != cbor.KindMap {
		return ret, TypeMismatchError{
			Path:     "nam",
			Expected: cbor.KindMap.String(),
			Actual:   nam.Kind().String(),
		}
	}
	var err error
	if ret.Surname, err = optionalText(nam, "nam", "fn"); err != nil {
		return ret, err
	}
	if ret.SurnameTransliterated, err = optionalText(nam, "nam", "fnt"); err != nil {
		return ret, err
	}
	if ret.GivenName, err = optionalText(nam, "nam", "gn"); err != nil {
		return ret, err
	}
	if ret.GivenNameTransliterated, err = optionalText(nam, "nam", "gnt"); err != nil {
		return ret, err
	}
	return ret, nil
}

// mapRecords maps one of the v/r/t record arrays. An absent array maps to
// an empty (never nil) slice; a present one must be an array of maps.
func mapRecords[T any](
	claims cbor.Value,
	key string,
	mapFunc func(cbor.Value, string) (T, error),
) ([]T, error) {
	ret := []T{}
	arr, ok := claims.MapGetText(key)
	if !ok {
		return ret, nil
	}
	if arr.Kind() != cbor.KindArray {
		return nil, TypeMismatchError{
			Path:     key,
			Expected: cbor.KindArray.String(),
			Actual:   arr.Kind().String(),
		}
	}
	for i, item := range arr.Items() {
		path := fmt.Sprintf("%s[%d]", key, i)
		if item.Kind() != cbor.KindMap {
			return nil, TypeMismatchError{
				Path:     path,
				Expected: cbor.KindMap.String(),
				Actual:   item.Kind().String(),
			}
		}
		rec, err := mapFunc(item, path)
		if err != nil {
			return nil, err
		}
		ret = append(ret, rec)
	}
	return ret, nil
}

func mapVaccineRecord(v cbor.Value, path string) (VaccineRecord, error) {
	var ret VaccineRecord
	var err error
	if ret.Target, err = requireText(v, path, "tg"); err != nil {
		return ret, err
	}
	if ret.Prophylaxis, err = requireText(v, path, "vp"); err != nil {
		return ret, err
	}
	if ret.Product, err = requireText(v, path, "mp"); err != nil {
		return ret, err
	}
	if ret.Manufacturer, err = requireText(v, path, "ma"); err != nil {
		return ret, err
	}
	if ret.DoseNumber, err = requireInt(v, path, "dn"); err != nil {
		return ret, err
	}
	if ret.SeriesDoses, err = requireInt(v, path, "sd"); err != nil {
		return ret, err
	}
	if ret.Date, err = requireText(v, path, "dt"); err != nil {
		return ret, err
	}
	if ret.Country, err = requireText(v, path, "co"); err != nil {
		return ret, err
	}
	if ret.Issuer, err = requireText(v, path, "is"); err != nil {
		return ret, err
	}
	if ret.CertificateID, err = requireText(v, path, "ci"); err != nil {
		return ret, err
	}
	return ret, nil
}

func mapRecoveryRecord(v cbor.Value, path string) (RecoveryRecord, error) {
	var ret RecoveryRecord
	var err error
	if ret.Target, err = requireText(v, path, "tg"); err != nil {
		return ret, err
	}
	if ret.FirstPositiveTest, err = requireText(v, path, "fr"); err != nil {
		return ret, err
	}
	if ret.Country, err = requireText(v, path, "co"); err != nil {
		return ret, err
	}
	if ret.Issuer, err = requireText(v, path, "is"); err != nil {
		return ret, err
	}
	if ret.ValidFrom, err = requireText(v, path, "df"); err != nil {
		return ret, err
	}
	if ret.ValidUntil, err = requireText(v, path, "du"); err != nil {
		return ret, err
	}
	if ret.CertificateID, err = requireText(v, path, "ci"); err != nil {
		return ret, err
	}
	return ret, nil
}

func mapTestRecord(v cbor.Value, path string) (TestRecord, error) {
	var ret TestRecord
	var err error
	if ret.Target, err = requireText(v, path, "tg"); err != nil {
		return ret, err
	}
	if ret.TestType, err = requireText(v, path, "tt"); err != nil {
		return ret, err
	}
	if ret.TestName, err = optionalText(v, path, "nm"); err != nil {
		return ret, err
	}
	if ret.Manufacturer, err = optionalText(v, path, "ma"); err != nil {
		return ret, err
	}
	if ret.SampleCollectedAt, err = requireText(v, path, "sc"); err != nil {
		return ret, err
	}
	if ret.Result, err = requireText(v, path, "tr"); err != nil {
		return ret, err
	}
	if ret.TestingCentre, err = optionalText(v, path, "tc"); err != nil {
		return ret, err
	}
	if ret.Country, err = requireText(v, path, "co"); err != nil {
		return ret, err
	}
	if ret.Issuer, err = requireText(v, path, "is"); err != nil {
		return ret, err
	}
	if ret.CertificateID, err = requireText(v, path, "ci"); err != nil {
		return ret, err
	}
	return ret, nil
}

func joinPath(path string, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func requireText(v cbor.Value, path string, key string) (string, error) {
	val, ok := v.MapGetText(key)
	if !ok {
		return "", MissingClaimError{Path: path, Key: key}
	}
	if val.Kind() != cbor.KindTextString {
		return "", TypeMismatchError{
			Path:     joinPath(path, key),
			Expected: cbor.KindTextString.String(),
			Actual:   val.Kind().String(),
		}
	}
	return val.Text(), nil
}

func optionalText(v cbor.Value, path string, key string) (string, error) {
	val, ok := v.MapGetText(key)
	if !ok || val.Kind() == cbor.KindNull {
		return "", nil
	}
	if val.Kind() != cbor.KindTextString {
		return "", TypeMismatchError{
			Path:     joinPath(path, key),
			Expected: cbor.KindTextString.String(),
			Actual:   val.Kind().String(),
		}
	}
	return val.Text(), nil
}

func requireInt(v cbor.Value, path string, key string) (int64, error) {
	val, ok := v.MapGetText(key)
	if !ok {
		return 0, MissingClaimError{Path: path, Key: key}
	}
	if val.Kind() != cbor.KindInteger {
		return 0, TypeMismatchError{
			Path:     joinPath(path, key),
			Expected: cbor.KindInteger.String(),
			Actual:   val.Kind().String(),
		}
	}
	return val.Int(), nil
}
