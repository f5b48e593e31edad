// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unixdj/qrencode/coding"
)

func structuredInput(t *testing.T, v coding.Version, l coding.Level, data []byte) *coding.Input {
	t.Helper()
	in, err := coding.NewInput(v, l)
	require.NoError(t, err)
	require.NoError(t, Bytes(in, data))
	return in
}

func testData(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7 + 3)
	}
	return b
}

func TestStructured(t *testing.T) {
	data := testData(60)
	in := structuredInput(t, 1, coding.H, data)
	set, err := Structured(in)
	require.NoError(t, err)

	// 1-H holds 72 data bits: 20 header bits, 12 segment header
	// bits and 5 bytes
	require.Len(t, set.Inputs, 12)
	var par byte
	var joined []byte
	for i, p := range set.Inputs {
		segs := p.Segments()
		require.Len(t, segs, 2)
		assert.Equal(t, coding.Segment{
			Mode: coding.StructuredAppend,
			Data: []byte{12, byte(i + 1), set.Parity},
		}, segs[0])
		assert.Equal(t, coding.Byte, segs[1].Mode)
		assert.Len(t, segs[1].Data, 5)
		joined = append(joined, segs[1].Data...)
		par ^= p.Parity()

		_, err := coding.Encode(p)
		require.NoError(t, err, "symbol %d", i+1)
		assert.Equal(t, coding.Version(1), p.Version())
	}
	assert.Equal(t, data, joined)
	assert.Equal(t, in.Parity(), set.Parity)
	assert.Equal(t, set.Parity, par)

	// the input is untouched
	assert.Equal(t, []coding.Segment{{Mode: coding.Byte, Data: data}}, in.Segments())
}

func TestStructuredSingle(t *testing.T) {
	set, err := Structured(structuredInput(t, 1, coding.H, []byte("abc")))
	require.NoError(t, err)
	require.Len(t, set.Inputs, 1)
	assert.Equal(t, []coding.Segment{{Mode: coding.Byte, Data: []byte("abc")}},
		set.Inputs[0].Segments())
	assert.Equal(t, byte('a'^'b'^'c'), set.Parity)
}

func TestStructuredMixed(t *testing.T) {
	in, err := coding.NewInput(2, coding.M)
	require.NoError(t, err)
	require.NoError(t, in.AppendECI(UTF8ECI))
	require.NoError(t, in.Append(coding.Numeric, bytes.Repeat([]byte("0123456789"), 12)))
	require.NoError(t, in.Append(coding.Alphanumeric, []byte("STRUCTURED APPEND")))
	require.NoError(t, in.Append(coding.Byte, testData(40)))
	require.NoError(t, in.SetFNC1First())

	set, err := Structured(in)
	require.NoError(t, err)
	require.Greater(t, len(set.Inputs), 1)

	var data [4][]byte
	for i, p := range set.Inputs {
		fnc1, ok := p.FNC1()
		assert.True(t, ok)
		assert.Equal(t, coding.FNC1First, fnc1.Mode)
		segs := p.Segments()
		assert.Equal(t, coding.StructuredAppend, segs[0].Mode)
		for _, seg := range segs[1:] {
			if seg.Mode == coding.ECI {
				assert.Equal(t, 0, i)
				continue
			}
			data[seg.Mode] = append(data[seg.Mode], seg.Data...)
		}
		b, err := p.BitStream()
		require.NoError(t, err, "symbol %d", i+1)
		assert.Equal(t, coding.Version(2), p.Version())
		assert.Equal(t, coding.Version(2).DataBytes(coding.M)*8, b.Len())
	}
	assert.Equal(t, bytes.Repeat([]byte("0123456789"), 12), data[coding.Numeric])
	assert.Equal(t, []byte("STRUCTURED APPEND"), data[coding.Alphanumeric])
	assert.Equal(t, testData(40), data[coding.Byte])
}

func TestStructuredFNC1(t *testing.T) {
	in := structuredInput(t, 1, coding.H, testData(30))
	require.NoError(t, in.SetFNC1First())
	set, err := Structured(in)
	require.NoError(t, err)
	// 4 FNC1 bits leave room for 4 bytes
	assert.Len(t, set.Inputs, 8)
	for _, p := range set.Inputs {
		_, ok := p.FNC1()
		assert.True(t, ok)
	}
}

func TestStructuredErrors(t *testing.T) {
	_, err := Structured(structuredInput(t, 1, coding.H, testData(100)))
	assert.ErrorIs(t, err, ErrTooMany)
	assert.ErrorIs(t, err, coding.ErrCapacity)

	_, err = Structured(structuredInput(t, 0, coding.L, testData(10)))
	assert.ErrorIs(t, err, coding.ErrVersion)

	in, err := coding.NewInput(1, coding.L)
	require.NoError(t, err)
	_, err = Structured(in)
	assert.ErrorIs(t, err, coding.ErrEmpty)

	in, err = coding.NewMicroInput(coding.M4, coding.L)
	require.NoError(t, err)
	require.NoError(t, Bytes(in, []byte("abc")))
	_, err = Structured(in)
	assert.ErrorIs(t, err, coding.ErrMicro)

}

func TestStructuredECI(t *testing.T) {
	// an ECI header that doesn't fit moves to the next symbol whole
	in, err := coding.NewInput(1, coding.H)
	require.NoError(t, err)
	require.NoError(t, in.SetFNC1Second(1))
	require.NoError(t, Bytes(in, []byte("abc")))
	require.NoError(t, in.AppendECI(999999))
	require.NoError(t, Bytes(in, []byte("de")))
	set, err := Structured(in)
	require.NoError(t, err)
	require.Len(t, set.Inputs, 3)
	var modes [][]coding.Mode
	for _, p := range set.Inputs {
		var m []coding.Mode
		for _, seg := range p.Segments() {
			m = append(m, seg.Mode)
		}
		modes = append(modes, m)
	}
	assert.Equal(t, [][]coding.Mode{
		{coding.StructuredAppend, coding.Byte},
		{coding.StructuredAppend, coding.ECI},
		{coding.StructuredAppend, coding.Byte},
	}, modes)
}
