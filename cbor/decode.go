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

package cbor

import (
	"fmt"
	"math"

	"github.com/x448/float16"
)

// Major types per RFC 8949 section 3
const (
	majorUnsignedInt = 0
	majorNegativeInt = 1
	majorByteString  = 2
	majorTextString  = 3
	majorArray       = 4
	majorMap         = 5
	majorTag         = 6
	majorSimple      = 7
)

const breakMarker = 0xff

// Defaults for DecodeOptions. The depth bound matches deeply-nested
// real-world payloads with plenty of headroom; the element bound caps total
// allocation for adversarial input.
const (
	DefaultMaxDepth    = 64
	DefaultMaxElements = 1 << 20
)

// DecodeOptions bounds resource usage while decoding. Zero values select
// the defaults.
type DecodeOptions struct {
	// MaxDepth is the maximum nesting depth of arrays, maps, and tags.
	MaxDepth int
	// MaxElements is the maximum total number of items in the document.
	MaxElements int
}

func (o DecodeOptions) withDefaults() DecodeOptions {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxElements <= 0 {
		o.MaxElements = DefaultMaxElements
	}
	return o
}

// MalformedError is returned for any structurally invalid CBOR: truncated
// input, reserved encodings, or input exceeding the configured bounds.
type MalformedError struct {
	Offset int
	Reason string
}

func (e MalformedError) Error() string {
	return fmt.Sprintf("malformed CBOR at offset %d: %s", e.Offset, e.Reason)
}

// Decode parses data as a single CBOR item consuming the entire buffer.
// The returned Value tree is freshly allocated and owned by the caller.
func Decode(data []byte, opts DecodeOptions) (Value, error) {
	d := &decoder{
		data: data,
		opts: opts.withDefaults(),
	}
	v, err := d.decodeItem(0)
	if err != nil {
		return Value{}, err
	}
	if d.pos != len(data) {
		return Value{}, MalformedError{
			Offset: d.pos,
			Reason: "trailing data after item",
		}
	}
	return v, nil
}

type decoder struct {
	data     []byte
	pos      int
	elements int
	opts     DecodeOptions
}

func (d *decoder) malformed(offset int, format string, args ...any) error {
	return MalformedError{
		Offset: offset,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (d *decoder) readByte() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, d.malformed(d.pos, "unexpected end of input")
	}
	b := d.data[d.pos]
	d.pos++
	return b, nil
}

func (d *decoder) readBytes(n uint64) ([]byte, error) {
	if n > uint64(len(d.data)-d.pos) {
		return nil, d.malformed(
			d.pos,
			"need %d bytes but only %d remain",
			n,
			len(d.data)-d.pos,
		)
	}
	ret := d.data[d.pos : d.pos+int(n)]
	d.pos += int(n)
	return ret, nil
}

// readArg reads the additional-info argument following a head byte.
// Additional info 0-23 is the value itself, 24-27 select a 1/2/4/8 byte
// big-endian value, 31 marks an indefinite length, and 28-30 are reserved.
func (d *decoder) readArg(ai byte) (uint64, bool, error) {
	switch {
	case ai <= 23:
		return uint64(ai), false, nil
	case ai >= 24 && ai <= 27:
		numBytes := 1 << (ai - 24)
		raw, err := d.readBytes(uint64(numBytes))
		if err != nil {
			return 0, false, err
		}
		var val uint64
		for _, b := range raw {
			val = val<<8 | uint64(b)
		}
		return val, false, nil
	case ai == 31:
		return 0, true, nil
	default:
		return 0, false, d.malformed(
			d.pos-1,
			"reserved additional info %d",
			ai,
		)
	}
}

// peekBreak consumes a pending break marker if one is next.
func (d *decoder) peekBreak() bool {
	if d.pos < len(d.data) && d.data[d.pos] == breakMarker {
		d.pos++
		return true
	}
	return false
}

func (d *decoder) countElement() error {
	d.elements++
	if d.elements > d.opts.MaxElements {
		return d.malformed(
			d.pos,
			"document exceeds %d elements",
			d.opts.MaxElements,
		)
	}
	return nil
}

func (d *decoder) decodeItem(depth int) (Value, error) {
	if depth > d.opts.MaxDepth {
		return Value{}, d.malformed(
			d.pos,
			"nesting exceeds depth %d",
			d.opts.MaxDepth,
		)
	}
	if err := d.countElement(); err != nil {
		return Value{}, err
	}
	headOffset := d.pos
	head, err := d.readByte()
	if err != nil {
		return Value{}, err
	}
	major := head >> 5
	arg, indefinite, err := d.readArg(head & 0x1f)
	if err != nil {
		return Value{}, err
	}
	if indefinite {
		switch major {
		case majorByteString, majorTextString, majorArray, majorMap:
			// allowed
		case majorSimple:
			// 0xff: a break marker outside an indefinite container
			return Value{}, d.malformed(headOffset, "unexpected break marker")
		default:
			return Value{}, d.malformed(
				headOffset,
				"indefinite length not allowed for major type %d",
				major,
			)
		}
	}
	switch major {
	case majorUnsignedInt:
		if arg > math.MaxInt64 {
			return Value{}, d.malformed(
				headOffset,
				"unsigned integer %d overflows int64",
				arg,
			)
		}
		return Value{kind: KindInteger, intVal: int64(arg)}, nil
	case majorNegativeInt:
		if arg > math.MaxInt64 {
			return Value{}, d.malformed(
				headOffset,
				"negative integer -%d overflows int64",
				arg,
			)
		}
		return Value{kind: KindInteger, intVal: -1 - int64(arg)}, nil
	case majorByteString:
		data, err := d.decodeString(majorByteString, arg, indefinite)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindByteString, bytesVal: data}, nil
	case majorTextString:
		data, err := d.decodeString(majorTextString, arg, indefinite)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindTextString, textVal: string(data)}, nil
	case majorArray:
		items, err := d.decodeArray(depth, arg, indefinite)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindArray, items: items}, nil
	case majorMap:
		pairs, err := d.decodeMap(depth, arg, indefinite)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindMap, pairs: pairs}, nil
	case majorTag:
		content, err := d.decodeItem(depth + 1)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindTag, tagNumber: arg, tagContent: &content}, nil
	default:
		return d.decodeSimple(headOffset, head&0x1f, arg)
	}
}

// decodeString reads a definite-length string body, or concatenates the
// definite-length chunks of an indefinite string. Chunks must share the
// enclosing major type and cannot themselves be indefinite.
func (d *decoder) decodeString(
	major byte,
	length uint64,
	indefinite bool,
) ([]byte, error) {
	if !indefinite {
		raw, err := d.readBytes(length)
		if err != nil {
			return nil, err
		}
		// Copy out of the input buffer so the returned tree has no aliasing
		// into caller-provided storage.
		ret := make([]byte, len(raw))
		copy(ret, raw)
		return ret, nil
	}
	var ret []byte
	for {
		if d.peekBreak() {
			return ret, nil
		}
		chunkOffset := d.pos
		head, err := d.readByte()
		if err != nil {
			return nil, err
		}
		if head>>5 != major {
			return nil, d.malformed(
				chunkOffset,
				"indefinite string chunk has major type %d, expected %d",
				head>>5,
				major,
			)
		}
		chunkLen, chunkIndefinite, err := d.readArg(head & 0x1f)
		if err != nil {
			return nil, err
		}
		if chunkIndefinite {
			return nil, d.malformed(
				chunkOffset,
				"nested indefinite string chunk",
			)
		}
		chunk, err := d.readBytes(chunkLen)
		if err != nil {
			return nil, err
		}
		ret = append(ret, chunk...)
	}
}

func (d *decoder) decodeArray(
	depth int,
	length uint64,
	indefinite bool,
) ([]Value, error) {
	if indefinite {
		items := []Value{}
		for {
			if d.peekBreak() {
				return items, nil
			}
			item, err := d.decodeItem(depth + 1)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	}
	if length > uint64(len(d.data)-d.pos) {
		// Every element takes at least one byte, so the declared length
		// cannot exceed the remaining input. Checked before allocation.
		return nil, d.malformed(
			d.pos,
			"declared array length %d exceeds remaining input",
			length,
		)
	}
	items := make([]Value, 0, length)
	for i := uint64(0); i < length; i++ {
		item, err := d.decodeItem(depth + 1)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (d *decoder) decodeMap(
	depth int,
	length uint64,
	indefinite bool,
) ([]Pair, error) {
	if indefinite {
		pairs := []Pair{}
		for {
			if d.peekBreak() {
				return pairs, nil
			}
			pair, err := d.decodePair(depth)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, pair)
		}
	}
	if length > uint64(len(d.data)-d.pos)/2 {
		return nil, d.malformed(
			d.pos,
			"declared map length %d exceeds remaining input",
			length,
		)
	}
	pairs := make([]Pair, 0, length)
	for i := uint64(0); i < length; i++ {
		pair, err := d.decodePair(depth)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// decodePair decodes one map entry. Key uniqueness is not enforced:
// duplicate keys are kept in encoding order for the caller to resolve.
func (d *decoder) decodePair(depth int) (Pair, error) {
	key, err := d.decodeItem(depth + 1)
	if err != nil {
		return Pair{}, err
	}
	val, err := d.decodeItem(depth + 1)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Key: key, Value: val}, nil
}

func (d *decoder) decodeSimple(
	headOffset int,
	ai byte,
	arg uint64,
) (Value, error) {
	switch ai {
	case 20:
		return Value{kind: KindBool, boolVal: false}, nil
	case 21:
		return Value{kind: KindBool, boolVal: true}, nil
	case 22, 23:
		// null and undefined both map to null
		return Value{kind: KindNull}, nil
	case 25:
		f := float16.Frombits(uint16(arg))
		return Value{kind: KindFloat, floatVal: float64(f.Float32())}, nil
	case 26:
		f := math.Float32frombits(uint32(arg))
		return Value{kind: KindFloat, floatVal: float64(f)}, nil
	case 27:
		return Value{kind: KindFloat, floatVal: math.Float64frombits(arg)}, nil
	default:
		return Value{}, d.malformed(
			headOffset,
			"unsupported simple value %d",
			arg,
		)
	}
}
