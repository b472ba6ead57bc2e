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

package base45

import (
	"bytes"
	"testing"
)

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x00})
	f.Add([]byte{0xff})
	f.Add([]byte("AB"))
	f.Add([]byte("Hello!!"))
	f.Add([]byte{0x78, 0x9c, 0x01, 0x02, 0x03})

	f.Fuzz(func(t *testing.T, data []byte) {
		decoded, err := Decode(Encode(data))
		if err != nil {
			t.Fatalf("round trip failed: %s", err)
		}
		if !bytes.Equal(data, decoded) {
			t.Fatalf("round trip mismatch: %x != %x", data, decoded)
		}
	})
}

func FuzzDecode(f *testing.F) {
	f.Add("BB8")
	f.Add("%69 VD92EX0")
	f.Add("HC1:NCF")

	f.Fuzz(func(t *testing.T, data string) {
		_, _ = Decode(data)
		// Should not panic - that's the test
	})
}
