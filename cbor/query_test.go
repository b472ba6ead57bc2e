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

package cbor_test

import (
	"testing"

	"github.com/hcertlabs/godcc/cbor"
	"github.com/hcertlabs/godcc/internal/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeValue(t *testing.T, cborHex string) cbor.Value {
	t.Helper()
	v, err := cbor.Decode(test.DecodeHexString(cborHex), cbor.DecodeOptions{})
	require.NoError(t, err)
	return v
}

func TestMapGetInt(t *testing.T) {
	// {1: "a", -260: {1: "b"}}
	v := decodeValue(t, "a2016161390103a1016162")

	val, ok := v.MapGetInt(1)
	require.True(t, ok)
	assert.Equal(t, cbor.KindTextString, val.Kind())
	assert.Equal(t, "a", val.Text())

	inner, ok := v.MapGetInt(-260)
	require.True(t, ok)
	require.Equal(t, cbor.KindMap, inner.Kind())
	val, ok = inner.MapGetInt(1)
	require.True(t, ok)
	assert.Equal(t, "b", val.Text())

	_, ok = v.MapGetInt(2)
	assert.False(t, ok)
}

func TestMapGetText(t *testing.T) {
	// {"ver": "1.0.0", "v": []}
	v := decodeValue(t, "a26376657265312e302e30617680")

	val, ok := v.MapGetText("ver")
	require.True(t, ok)
	assert.Equal(t, "1.0.0", val.Text())

	arr, ok := v.MapGetText("v")
	require.True(t, ok)
	assert.Equal(t, cbor.KindArray, arr.Kind())
	assert.Empty(t, arr.Items())

	_, ok = v.MapGetText("dob")
	assert.False(t, ok)
}

// Duplicate keys resolve first-wins through the query helpers while the
// pair list keeps both entries.
func TestMapGetDuplicateKeys(t *testing.T) {
	// {1: 2, 1: 3}
	v := decodeValue(t, "a201020103")
	val, ok := v.MapGetInt(1)
	require.True(t, ok)
	assert.Equal(t, int64(2), val.Int())
	assert.Len(t, v.Pairs(), 2)
}

func TestMapGetWrongShape(t *testing.T) {
	v := decodeValue(t, "83010203")
	_, ok := v.MapGetInt(1)
	assert.False(t, ok)
	_, ok = v.MapGetText("ver")
	assert.False(t, ok)
}

func TestIndex(t *testing.T) {
	v := decodeValue(t, "83010203")

	val, ok := v.Index(0)
	require.True(t, ok)
	assert.Equal(t, int64(1), val.Int())

	val, ok = v.Index(2)
	require.True(t, ok)
	assert.Equal(t, int64(3), val.Int())

	_, ok = v.Index(3)
	assert.False(t, ok)
	_, ok = v.Index(-1)
	assert.False(t, ok)

	// Index on a non-array
	_, ok = decodeValue(t, "a0").Index(0)
	assert.False(t, ok)
}
