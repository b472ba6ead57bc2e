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

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hcertlabs/godcc"
	"github.com/hcertlabs/godcc/cmd/common"
	"github.com/hcertlabs/godcc/dcc"
)

type decodeFlags struct {
	*common.GlobalFlags
	jsonOutput bool
}

func main() {
	// Parse commandline
	f := decodeFlags{
		GlobalFlags: common.NewGlobalFlags(),
	}
	f.Flagset.BoolVar(
		&f.jsonOutput,
		"json",
		false,
		"emit the certificate as JSON",
	)
	f.Parse()
	token, err := f.ReadToken()
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	var opts []godcc.Option
	if f.Verbose {
		opts = append(opts, godcc.WithLogger(f.Logger()))
	}
	cert, err := godcc.Decode(token, opts...)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	if f.jsonOutput {
		out, err := json.MarshalIndent(cert, "", "  ")
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}
	printCertificate(cert)
}

func printCertificate(cert *dcc.Certificate) {
	fmt.Printf("Schema version: %s\n", cert.Version)
	fmt.Printf(
		"Surname:        %s (%s)\n",
		cert.Name.Surname,
		cert.Name.SurnameTransliterated,
	)
	fmt.Printf(
		"Given name:     %s (%s)\n",
		cert.Name.GivenName,
		cert.Name.GivenNameTransliterated,
	)
	fmt.Printf("Date of birth:  %s\n", cert.DateOfBirth)
	for i, rec := range cert.Vaccinations {
		fmt.Printf("\nVaccination #%d:\n", i+1)
		fmt.Printf("  Disease target: %s\n", rec.Target)
		fmt.Printf("  Product:        %s (%s)\n", rec.Product, rec.Manufacturer)
		fmt.Printf("  Dose:           %d of %d\n", rec.DoseNumber, rec.SeriesDoses)
		fmt.Printf("  Date:           %s\n", rec.Date)
		fmt.Printf("  Country:        %s\n", rec.Country)
		fmt.Printf("  Issuer:         %s\n", rec.Issuer)
		fmt.Printf("  Certificate ID: %s\n", rec.CertificateID)
	}
	for i, rec := range cert.Recoveries {
		fmt.Printf("\nRecovery #%d:\n", i+1)
		fmt.Printf("  Disease target: %s\n", rec.Target)
		fmt.Printf("  First positive: %s\n", rec.FirstPositiveTest)
		fmt.Printf("  Valid:          %s to %s\n", rec.ValidFrom, rec.ValidUntil)
		fmt.Printf("  Country:        %s\n", rec.Country)
		fmt.Printf("  Issuer:         %s\n", rec.Issuer)
		fmt.Printf("  Certificate ID: %s\n", rec.CertificateID)
	}
	for i, rec := range cert.Tests {
		fmt.Printf("\nTest #%d:\n", i+1)
		fmt.Printf("  Disease target: %s\n", rec.Target)
		fmt.Printf("  Test type:      %s\n", rec.TestType)
		if rec.TestName != "" {
			fmt.Printf("  Test name:      %s\n", rec.TestName)
		}
		fmt.Printf("  Sample taken:   %s\n", rec.SampleCollectedAt)
		fmt.Printf("  Result:         %s\n", rec.Result)
		fmt.Printf("  Country:        %s\n", rec.Country)
		fmt.Printf("  Issuer:         %s\n", rec.Issuer)
		fmt.Printf("  Certificate ID: %s\n", rec.CertificateID)
	}
}
