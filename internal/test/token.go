package test

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"

	"github.com/hcertlabs/godcc/base45"
	"github.com/hcertlabs/godcc/cbor"
)

// placeholder signature bytes; nothing in the decode path inspects them
var fakeSignature = []byte{0xde, 0xad, 0xbe, 0xef}

// MakeToken builds a complete HC1: token around the given CWT claim set:
// CBOR-encodes it, wraps it in an unsigned COSE_Sign1 envelope (tag 18),
// zlib-compresses, and base45-encodes. Panics on failure, which makes it
// usable inline in tests.
func MakeToken(claims any) string {
	return "HC1:" + base45.Encode(zlibCompress(MakeEnvelope(claims)))
}

// MakeTokenRawDeflate is MakeToken without the zlib framing.
func MakeTokenRawDeflate(claims any) string {
	return "HC1:" + base45.Encode(deflateCompress(MakeEnvelope(claims)))
}

// MakeRawToken compresses and base45-encodes an arbitrary CBOR document,
// skipping the COSE envelope. Useful for malformed-envelope tests.
func MakeRawToken(document any) string {
	encoded, err := cbor.Encode(document)
	if err != nil {
		panic(fmt.Sprintf("error encoding document: %s", err))
	}
	return "HC1:" + base45.Encode(zlibCompress(encoded))
}

// MakeEnvelope CBOR-encodes a COSE_Sign1 envelope around the given CWT
// claim set. The protected header carries alg ES256 (-7) and a fixed key
// ID; the signature is garbage.
func MakeEnvelope(claims any) []byte {
	payload, err := cbor.Encode(claims)
	if err != nil {
		panic(fmt.Sprintf("error encoding claims: %s", err))
	}
	protected, err := cbor.Encode(map[int64]any{
		1: int64(-7),
		4: []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
	})
	if err != nil {
		panic(fmt.Sprintf("error encoding protected header: %s", err))
	}
	envelope, err := cbor.Encode(cbor.Tag{
		Number: 18,
		Content: []any{
			protected,
			map[int64]any{},
			payload,
			fakeSignature,
		},
	})
	if err != nil {
		panic(fmt.Sprintf("error encoding envelope: %s", err))
	}
	return envelope
}

func zlibCompress(data []byte) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		panic(fmt.Sprintf("error compressing: %s", err))
	}
	if err := zw.Close(); err != nil {
		panic(fmt.Sprintf("error compressing: %s", err))
	}
	return buf.Bytes()
}

func deflateCompress(data []byte) []byte {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		panic(fmt.Sprintf("error creating deflate writer: %s", err))
	}
	if _, err := fw.Write(data); err != nil {
		panic(fmt.Sprintf("error compressing: %s", err))
	}
	if err := fw.Close(); err != nil {
		panic(fmt.Sprintf("error compressing: %s", err))
	}
	return buf.Bytes()
}
