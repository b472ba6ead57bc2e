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

// dcc-inspect runs the decode pipeline stage by stage and dumps the token
// envelope: COSE header fields, CWT administrative claims, and the raw
// claims tree as JSON. Useful when a token fails to map cleanly.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/hcertlabs/godcc"
	"github.com/hcertlabs/godcc/base45"
	"github.com/hcertlabs/godcc/cbor"
	"github.com/hcertlabs/godcc/cmd/common"
	"github.com/hcertlabs/godcc/cose"
	"github.com/hcertlabs/godcc/inflate"
)

func main() {
	f := common.NewGlobalFlags()
	f.Parse()
	token, err := f.ReadToken()
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	body := strings.TrimRightFunc(token, unicode.IsSpace)
	body = strings.TrimPrefix(body, godcc.TokenPrefix)
	compressed, err := base45.Decode(body)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	envelopeBytes, err := inflate.Decompress(compressed)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	envelopeValue, err := cbor.Decode(envelopeBytes, cbor.DecodeOptions{})
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	envelope, err := cose.ExtractSign1(envelopeValue)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Compressed size:   %d\n", len(compressed))
	fmt.Printf("Envelope size:     %d\n", len(envelopeBytes))
	fmt.Printf("Algorithm:         %d\n", envelope.Algorithm)
	fmt.Printf("Key ID:            %s\n", hex.EncodeToString(envelope.KeyID))
	fmt.Printf("Signature size:    %d (not verified)\n", len(envelope.Signature))
	claims, err := cbor.Decode(envelope.Payload, cbor.DecodeOptions{})
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	if exp, ok := claims.MapGetInt(4); ok && exp.Kind() == cbor.KindInteger {
		fmt.Printf(
			"Expires:           %s\n",
			time.Unix(exp.Int(), 0).UTC().Format(time.RFC3339),
		)
	}
	if iat, ok := claims.MapGetInt(6); ok && iat.Kind() == cbor.KindInteger {
		fmt.Printf(
			"Issued:            %s\n",
			time.Unix(iat.Int(), 0).UTC().Format(time.RFC3339),
		)
	}
	out, err := json.MarshalIndent(claims, "", "  ")
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nClaims:\n%s\n", string(out))
}
