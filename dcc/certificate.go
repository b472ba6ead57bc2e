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

// Package dcc maps decoded health certificate claims into typed records.
package dcc

// Certificate is a decoded EU Digital COVID Certificate. The three record
// slices are always non-nil; a certificate of one kind carries empty slices
// for the other two.
type Certificate struct {
	Version      string           `json:"ver"`
	Name         Name             `json:"nam"`
	DateOfBirth  string           `json:"dob"`
	Vaccinations []VaccineRecord  `json:"v"`
	Recoveries   []RecoveryRecord `json:"r"`
	Tests        []TestRecord     `json:"t"`
}

// Name holds the subject's surname and given name together with their
// ICAO 9303 transliterations. The short JSON keys are the wire-format
// field names; presentation layers may label them however they like.
type Name struct {
	Surname                 string `json:"fn"`
	SurnameTransliterated   string `json:"fnt"`
	GivenName               string `json:"gn"`
	GivenNameTransliterated string `json:"gnt"`
}

// VaccineRecord is a single vaccination event.
type VaccineRecord struct {
	Target        string `json:"tg"`
	Prophylaxis   string `json:"vp"`
	Product       string `json:"mp"`
	Manufacturer  string `json:"ma"`
	DoseNumber    int64  `json:"dn"`
	SeriesDoses   int64  `json:"sd"`
	Date          string `json:"dt"`
	Country       string `json:"co"`
	Issuer        string `json:"is"`
	CertificateID string `json:"ci"`
}

// RecoveryRecord attests recovery from infection.
type RecoveryRecord struct {
	Target            string `json:"tg"`
	FirstPositiveTest string `json:"fr"`
	Country           string `json:"co"`
	Issuer            string `json:"is"`
	ValidFrom         string `json:"df"`
	ValidUntil        string `json:"du"`
	CertificateID     string `json:"ci"`
}

// TestRecord is a single test event. TestName, Manufacturer, and
// TestingCentre are optional in the schema and empty when absent.
type TestRecord struct {
	Target            string `json:"tg"`
	TestType          string `json:"tt"`
	TestName          string `json:"nm,omitempty"`
	Manufacturer      string `json:"ma,omitempty"`
	SampleCollectedAt string `json:"sc"`
	Result            string `json:"tr"`
	TestingCentre     string `json:"tc,omitempty"`
	Country           string `json:"co"`
	Issuer            string `json:"is"`
	CertificateID     string `json:"ci"`
}

// Claims is the CWT claim set wrapping the certificate. Issuer, IssuedAt,
// and ExpiresAt are administrative and may be zero; timestamps are unix
// seconds.
type Claims struct {
	Issuer      string
	IssuedAt    int64
	ExpiresAt   int64
	Certificate *Certificate
}
