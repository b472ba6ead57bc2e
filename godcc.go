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

// Package godcc decodes EU Digital COVID Certificate tokens into typed
// records. The pipeline is text prefix handling, base45 decoding, deflate
// decompression, CBOR parsing, COSE envelope extraction, and claim mapping.
// The embedded signature is carried but never verified.
package godcc

import (
	"strings"
	"unicode"

	"github.com/hcertlabs/godcc/base45"
	"github.com/hcertlabs/godcc/cbor"
	"github.com/hcertlabs/godcc/cose"
	"github.com/hcertlabs/godcc/dcc"
	"github.com/hcertlabs/godcc/inflate"
)

// TokenPrefix is the literal marker carried by QR-encoded tokens. It is
// stripped when present; bare base45 payloads are accepted too.
const TokenPrefix = "HC1:"

// Token is a fully decoded certificate token, including the unverified
// envelope and administrative claims that Decode discards. Timestamps are
// unix seconds and zero when the claim is absent.
type Token struct {
	// Algorithm and KeyID identify the unverified signer from the COSE
	// protected header.
	Algorithm int64
	KeyID     []byte

	Issuer      string
	IssuedAt    int64
	ExpiresAt   int64
	Certificate *dcc.Certificate
}

// Decode decodes a certificate token into its Certificate. The first
// pipeline stage to fail aborts the decode and its error is returned
// unchanged.
func Decode(token string, opts ...Option) (*dcc.Certificate, error) {
	ret, err := DecodeToken(token, opts...)
	if err != nil {
		return nil, err
	}
	return ret.Certificate, nil
}

// DecodeToken decodes a certificate token, keeping the unverified envelope
// and administrative claims alongside the Certificate.
func DecodeToken(token string, opts ...Option) (*Token, error) {
	cfg := newConfig(opts...)
	logger := cfg.logger
	// QR scanners often append a trailing newline
	token = strings.TrimRightFunc(token, unicode.IsSpace)
	token = strings.TrimPrefix(token, TokenPrefix)
	compressed, err := base45.Decode(token)
	if err != nil {
		return nil, err
	}
	logger.Debug(
		"decoded base45 payload",
		"component", "godcc",
		"input_chars", len(token),
		"output_bytes", len(compressed),
	)
	envelopeBytes, err := inflate.Decompress(compressed)
	if err != nil {
		return nil, err
	}
	logger.Debug(
		"decompressed envelope",
		"component", "godcc",
		"output_bytes", len(envelopeBytes),
	)
	envelopeValue, err := cbor.Decode(envelopeBytes, cfg.decodeOptions())
	if err != nil {
		return nil, err
	}
	envelope, err := cose.ExtractSign1(envelopeValue)
	if err != nil {
		return nil, err
	}
	logger.Debug(
		"extracted COSE_Sign1 envelope",
		"component", "godcc",
		"payload_bytes", len(envelope.Payload),
		"algorithm", envelope.Algorithm,
	)
	claimsValue, err := cbor.Decode(envelope.Payload, cfg.decodeOptions())
	if err != nil {
		return nil, err
	}
	claims, err := dcc.MapClaims(claimsValue)
	if err != nil {
		return nil, err
	}
	logger.Debug(
		"mapped certificate claims",
		"component", "godcc",
		"issuer", claims.Issuer,
		"vaccinations", len(claims.Certificate.Vaccinations),
		"recoveries", len(claims.Certificate.Recoveries),
		"tests", len(claims.Certificate.Tests),
	)
	return &Token{
		Algorithm:   envelope.Algorithm,
		KeyID:       envelope.KeyID,
		Issuer:      claims.Issuer,
		IssuedAt:    claims.IssuedAt,
		ExpiresAt:   claims.ExpiresAt,
		Certificate: claims.Certificate,
	}, nil
}
