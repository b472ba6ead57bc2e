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

// Package inflate decompresses the deflate payload of a health certificate
// token. Real-world tokens carry a zlib framing header, but raw deflate
// streams are accepted as well.
package inflate

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

// Tokens hold a single small CBOR document. A decompressed size anywhere
// near this limit means corrupted or hostile input.
const maxDecompressedSize = 32 << 20

// zlib CMF byte for the deflate method with a 32 KiB window, the only
// framing observed in the wild
const zlibHeaderByte = 0x78

// DecompressError is returned when the compressed stream is structurally
// corrupt or exceeds the decompressed size limit.
type DecompressError struct {
	Err error
}

func (e DecompressError) Error() string {
	return fmt.Sprintf("inflate failure: %s", e.Err)
}

func (e DecompressError) Unwrap() error {
	return e.Err
}

// Decompress inflates data into its decompressed form. Zlib framing is
// detected by its header byte; anything else is treated as a raw deflate
// stream.
func Decompress(data []byte) ([]byte, error) {
	var reader io.ReadCloser
	if len(data) > 0 && data[0] == zlibHeaderByte {
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, DecompressError{Err: err}
		}
		reader = zr
	} else {
		reader = flate.NewReader(bytes.NewReader(data))
	}
	defer reader.Close()
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(reader, maxDecompressedSize+1))
	if err != nil {
		return nil, DecompressError{Err: err}
	}
	if n > maxDecompressedSize {
		return nil, DecompressError{
			Err: fmt.Errorf("decompressed size exceeds %d bytes", maxDecompressedSize),
		}
	}
	return buf.Bytes(), nil
}
