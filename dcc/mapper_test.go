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

package dcc_test

import (
	"errors"
	"testing"

	"github.com/hcertlabs/godcc/cbor"
	"github.com/hcertlabs/godcc/dcc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toValue(t *testing.T, data any) cbor.Value {
	t.Helper()
	encoded, err := cbor.Encode(data)
	require.NoError(t, err)
	v, err := cbor.Decode(encoded, cbor.DecodeOptions{})
	require.NoError(t, err)
	return v
}

func nameClaims() map[string]any {
	return map[string]any{
		"fn":  "Di Caprio",
		"fnt": "DI<CAPRIO",
		"gn":  "Marilù Teresa",
		"gnt": "MARILU<TERESA",
	}
}

func vaccineClaims() map[string]any {
	return map[string]any{
		"tg": "840539006",
		"vp": "1119349007",
		"mp": "EU/1/20/1528",
		"ma": "ORG-100030215",
		"dn": int64(2),
		"sd": int64(2),
		"dt": "2021-06-08",
		"co": "IT",
		"is": "IT",
		"ci": "01ITE7300E1AB2A84C719004F103DCB1F70A#6",
	}
}

func hcertClaims() map[string]any {
	return map[string]any{
		"ver": "1.0.0",
		"nam": nameClaims(),
		"dob": "1977-06-16",
		"v":   []any{vaccineClaims()},
	}
}

func cwtClaims(hcert map[string]any) map[any]any {
	return map[any]any{
		1:    "IT",
		4:    int64(1656285405),
		6:    int64(1624749405),
		-260: map[int64]any{1: hcert},
	}
}

func TestMapClaims(t *testing.T) {
	claims, err := dcc.MapClaims(toValue(t, cwtClaims(hcertClaims())))
	require.NoError(t, err)
	assert.Equal(t, "IT", claims.Issuer)
	assert.Equal(t, int64(1656285405), claims.ExpiresAt)
	assert.Equal(t, int64(1624749405), claims.IssuedAt)
	require.NotNil(t, claims.Certificate)
	assert.Equal(t, "1.0.0", claims.Certificate.Version)
}

func TestMapClaimsAdministrativeOptional(t *testing.T) {
	claims, err := dcc.MapClaims(
		toValue(t, map[any]any{-260: map[int64]any{1: hcertClaims()}}),
	)
	require.NoError(t, err)
	assert.Empty(t, claims.Issuer)
	assert.Zero(t, claims.ExpiresAt)
	assert.Zero(t, claims.IssuedAt)
	require.NotNil(t, claims.Certificate)
}

func TestMapClaimsMissingHcert(t *testing.T) {
	_, err := dcc.MapClaims(toValue(t, map[any]any{1: "IT"}))
	var missingErr dcc.MissingClaimError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, dcc.MissingClaimError{Key: "-260"}, missingErr)
}

func TestMapClaimsMissingSchemaKey(t *testing.T) {
	_, err := dcc.MapClaims(
		toValue(t, map[any]any{-260: map[int64]any{2: hcertClaims()}}),
	)
	var missingErr dcc.MissingClaimError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, dcc.MissingClaimError{Path: "-260", Key: "1"}, missingErr)
}

func TestMapClaimsNotAMap(t *testing.T) {
	_, err := dcc.MapClaims(toValue(t, []any{int64(1)}))
	var mismatchErr dcc.TypeMismatchError
	require.True(t, errors.As(err, &mismatchErr))
	assert.Equal(t, "claims", mismatchErr.Path)
}

func TestMapCertificateVaccination(t *testing.T) {
	cert, err := dcc.MapCertificate(toValue(t, hcertClaims()))
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cert.Version)
	assert.Equal(t, "1977-06-16", cert.DateOfBirth)
	assert.Equal(t, dcc.Name{
		Surname:                 "Di Caprio",
		SurnameTransliterated:   "DI<CAPRIO",
		GivenName:               "Marilù Teresa",
		GivenNameTransliterated: "MARILU<TERESA",
	}, cert.Name)
	require.Len(t, cert.Vaccinations, 1)
	assert.Equal(t, dcc.VaccineRecord{
		Target:        "840539006",
		Prophylaxis:   "1119349007",
		Product:       "EU/1/20/1528",
		Manufacturer:  "ORG-100030215",
		DoseNumber:    2,
		SeriesDoses:   2,
		Date:          "2021-06-08",
		Country:       "IT",
		Issuer:        "IT",
		CertificateID: "01ITE7300E1AB2A84C719004F103DCB1F70A#6",
	}, cert.Vaccinations[0])
	// Absent record arrays map to empty, never nil
	require.NotNil(t, cert.Recoveries)
	require.NotNil(t, cert.Tests)
	assert.Empty(t, cert.Recoveries)
	assert.Empty(t, cert.Tests)
}

func TestMapCertificateRecovery(t *testing.T) {
	claims := map[string]any{
		"ver": "1.0.0",
		"nam": nameClaims(),
		"dob": "1977-06-16",
		"r": []any{
			map[string]any{
				"tg": "840539006",
				"fr": "2021-05-02",
				"co": "IT",
				"is": "IT",
				"df": "2021-05-17",
				"du": "2021-10-29",
				"ci": "01ITA65E2BD36C9E4900B0273D2E7C92EEB9#1",
			},
		},
	}
	cert, err := dcc.MapCertificate(toValue(t, claims))
	require.NoError(t, err)
	require.Len(t, cert.Recoveries, 1)
	assert.Equal(t, dcc.RecoveryRecord{
		Target:            "840539006",
		FirstPositiveTest: "2021-05-02",
		Country:           "IT",
		Issuer:            "IT",
		ValidFrom:         "2021-05-17",
		ValidUntil:        "2021-10-29",
		CertificateID:     "01ITA65E2BD36C9E4900B0273D2E7C92EEB9#1",
	}, cert.Recoveries[0])
	assert.Empty(t, cert.Vaccinations)
	assert.Empty(t, cert.Tests)
}

func TestMapCertificateTest(t *testing.T) {
	claims := map[string]any{
		"ver": "1.0.0",
		"nam": nameClaims(),
		"dob": "1977-06-16",
		"t": []any{
			map[string]any{
				"tg": "840539006",
				"tt": "LP6464-4",
				"nm": "Roche LightCycler qPCR",
				"ma": "1232",
				"sc": "2021-05-03T10:27:15Z",
				"tr": "260415000",
				"tc": "Policlinico Umberto I",
				"co": "IT",
				"is": "IT",
				"ci": "01IT053059F7676042D9BEE9F874C4901F9B#3",
			},
		},
	}
	cert, err := dcc.MapCertificate(toValue(t, claims))
	require.NoError(t, err)
	require.Len(t, cert.Tests, 1)
	assert.Equal(t, dcc.TestRecord{
		Target:            "840539006",
		TestType:          "LP6464-4",
		TestName:          "Roche LightCycler qPCR",
		Manufacturer:      "1232",
		SampleCollectedAt: "2021-05-03T10:27:15Z",
		Result:            "260415000",
		TestingCentre:     "Policlinico Umberto I",
		Country:           "IT",
		Issuer:            "IT",
		CertificateID:     "01IT053059F7676042D9BEE9F874C4901F9B#3",
	}, cert.Tests[0])
}

func TestMapCertificateTestOptionalFields(t *testing.T) {
	claims := map[string]any{
		"ver": "1.0.0",
		"nam": nameClaims(),
		"dob": "1977-06-16",
		"t": []any{
			map[string]any{
				"tg": "840539006",
				"tt": "LP217198-3",
				"sc": "2021-05-03T10:27:15Z",
				"tr": "260415000",
				"co": "IT",
				"is": "IT",
				"ci": "01IT053059F7676042D9BEE9F874C4901F9B#3",
			},
		},
	}
	cert, err := dcc.MapCertificate(toValue(t, claims))
	require.NoError(t, err)
	require.Len(t, cert.Tests, 1)
	assert.Empty(t, cert.Tests[0].TestName)
	assert.Empty(t, cert.Tests[0].Manufacturer)
	assert.Empty(t, cert.Tests[0].TestingCentre)
}

func TestMapCertificateMissingVersion(t *testing.T) {
	claims := hcertClaims()
	delete(claims, "ver")
	_, err := dcc.MapCertificate(toValue(t, claims))
	var missingErr dcc.MissingClaimError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, dcc.MissingClaimError{Key: "ver"}, missingErr)
}

func TestMapCertificateMissingRecordField(t *testing.T) {
	first := vaccineClaims()
	second := vaccineClaims()
	delete(second, "ci")
	claims := hcertClaims()
	claims["v"] = []any{first, second}
	_, err := dcc.MapCertificate(toValue(t, claims))
	var missingErr dcc.MissingClaimError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(
		t,
		dcc.MissingClaimError{Path: "v[1]", Key: "ci"},
		missingErr,
	)
}

func TestMapCertificateTypeMismatch(t *testing.T) {
	testDefs := []struct {
		name          string
		mutate        func(claims map[string]any)
		expectedError dcc.TypeMismatchError
	}{
		{
			name: "dose count encoded as text",
			mutate: func(claims map[string]any) {
				claims["v"].([]any)[0].(map[string]any)["dn"] = "2"
			},
			expectedError: dcc.TypeMismatchError{
				Path:     "v[0].dn",
				Expected: "integer",
				Actual:   "text string",
			},
		},
		{
			name: "record array encoded as map",
			mutate: func(claims map[string]any) {
				claims["v"] = map[string]any{"dn": int64(2)}
			},
			expectedError: dcc.TypeMismatchError{
				Path:     "v",
				Expected: "array",
				Actual:   "map",
			},
		},
		{
			name: "record element not a map",
			mutate: func(claims map[string]any) {
				claims["v"] = []any{"not a record"}
			},
			expectedError: dcc.TypeMismatchError{
				Path:     "v[0]",
				Expected: "map",
				Actual:   "text string",
			},
		},
		{
			name: "name encoded as text",
			mutate: func(claims map[string]any) {
				claims["nam"] = "Di Caprio"
			},
			expectedError: dcc.TypeMismatchError{
				Path:     "nam",
				Expected: "map",
				Actual:   "text string",
			},
		},
		{
			name: "date of birth encoded as integer",
			mutate: func(claims map[string]any) {
				claims["dob"] = int64(19770616)
			},
			expectedError: dcc.TypeMismatchError{
				Path:     "dob",
				Expected: "text string",
				Actual:   "integer",
			},
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			claims := hcertClaims()
			testDef.mutate(claims)
			_, err := dcc.MapCertificate(toValue(t, claims))
			require.Error(t, err)
			var mismatchErr dcc.TypeMismatchError
			require.True(t, errors.As(err, &mismatchErr))
			assert.Equal(t, testDef.expectedError, mismatchErr)
		})
	}
}

func TestMapCertificateUnknownKeysIgnored(t *testing.T) {
	claims := hcertClaims()
	claims["future-field"] = "ignored"
	claims["v"].([]any)[0].(map[string]any)["xx"] = int64(99)
	cert, err := dcc.MapCertificate(toValue(t, claims))
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cert.Version)
	require.Len(t, cert.Vaccinations, 1)
}
