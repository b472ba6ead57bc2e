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

// Package base45 implements the base45 text encoding (RFC 9285) used by
// QR-code health certificate tokens. Input is processed in groups of three
// characters producing two bytes, with an optional trailing two-character
// group producing one byte.
package base45

import "fmt"

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// reverse lookup from byte to alphabet index, -1 for bytes outside the alphabet
var reverseTable = func() [256]int16 {
	var table [256]int16
	for i := range table {
		table[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		table[alphabet[i]] = int16(i)
	}
	return table
}()

// InvalidDataError is returned when input is not valid base45: a character
// outside the alphabet, an impossible length, or a group value that exceeds
// the representable range for its size.
type InvalidDataError struct {
	Offset int
	Reason string
}

func (e InvalidDataError) Error() string {
	return fmt.Sprintf("invalid base45 data at offset %d: %s", e.Offset, e.Reason)
}

// Decode converts base45 text into the raw bytes it encodes.
func Decode(data string) ([]byte, error) {
	if len(data)%3 == 1 {
		return nil, InvalidDataError{
			Offset: len(data) - 1,
			Reason: "input length mod 3 cannot be 1",
		}
	}
	ret := make([]byte, 0, (len(data)/3)*2+1)
	for i := 0; i < len(data); i += 3 {
		groupLen := min(len(data)-i, 3)
		var group [3]int
		for j := 0; j < groupLen; j++ {
			idx := reverseTable[data[i+j]]
			if idx < 0 {
				return nil, InvalidDataError{
					Offset: i + j,
					Reason: fmt.Sprintf("character %q not in alphabet", data[i+j]),
				}
			}
			group[j] = int(idx)
		}
		if groupLen == 3 {
			val := group[0] + 45*group[1] + 45*45*group[2]
			if val > 0xffff {
				return nil, InvalidDataError{
					Offset: i,
					Reason: fmt.Sprintf("group value %d exceeds 65535", val),
				}
			}
			ret = append(ret, byte(val/256), byte(val%256))
		} else {
			val := group[0] + 45*group[1]
			if val > 0xff {
				return nil, InvalidDataError{
					Offset: i,
					Reason: fmt.Sprintf("trailing group value %d exceeds 255", val),
				}
			}
			ret = append(ret, byte(val))
		}
	}
	return ret, nil
}

// Encode converts raw bytes into base45 text. Pairs of bytes become three
// characters and a trailing single byte becomes two.
func Encode(data []byte) string {
	ret := make([]byte, 0, (len(data)/2)*3+2)
	for i := 0; i < len(data); i += 2 {
		if len(data)-i >= 2 {
			val := int(data[i])*256 + int(data[i+1])
			ret = append(
				ret,
				alphabet[val%45],
				alphabet[(val/45)%45],
				alphabet[val/(45*45)],
			)
		} else {
			val := int(data[i])
			ret = append(ret, alphabet[val%45], alphabet[val/45])
		}
	}
	return string(ret)
}
