// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unixdj/qrencode/gf256"
)

func TestRawCode(t *testing.T) {
	data := []byte{32, 91, 11, 120, 209, 114, 220, 77, 67, 64, 236, 17, 236, 17, 236, 17}
	r, err := NewRawCode(gf256.Default, data, 1, M)
	require.NoError(t, err)
	require.Len(t, r.Blocks, 1)
	cw := r.Codewords()
	require.Len(t, cw, 26)
	assert.Equal(t, data, cw[:16])
	assert.Equal(t, []byte{196, 35, 39, 119, 235, 215, 231, 226, 93, 23}, cw[16:])

	_, err = NewRawCode(gf256.Default, data[:15], 1, M)
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = NewRawCode(gf256.Default, data, M1, H)
	assert.ErrorIs(t, err, ErrLevel)
}

func TestRawCodeCheck(t *testing.T) {
	e := NewEncoder(nil)
	in := helloInput(t)
	require.NoError(t, e.Check(in))

	r, err := e.Raw(in)
	require.NoError(t, err)
	require.NoError(t, r.Check(gf256.Default))
	r.Blocks[0].ECC[3] ^= 1
	assert.Error(t, r.Check(gf256.Default))
}

func TestRawCodeInterleave(t *testing.T) {
	// 5-Q: two blocks of 15 and two of 16 data codewords
	v, l := Version(5), Q
	n := v.DataBytes(l)
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	r, err := NewRawCode(gf256.Default, data, v, l)
	require.NoError(t, err)
	require.Len(t, r.Blocks, 4)
	for i, want := range []int{15, 15, 16, 16} {
		assert.Len(t, r.Blocks[i].Data, want)
		assert.Len(t, r.Blocks[i].ECC, 18)
		s := gf256.Default.Syndromes(append(bytes.Clone(r.Blocks[i].Data), r.Blocks[i].ECC...), 18)
		assert.Equal(t, make([]byte, 18), s, "block %d", i)
	}
	cw := r.Codewords()
	require.Len(t, cw, v.Words())
	assert.Equal(t, []byte{0, 15, 30, 46, 1, 16, 31, 47}, cw[:8])
	// the last data codewords come from the longer blocks only
	assert.Equal(t, []byte{44, 60, 45, 61}, cw[n-4:n])
	assert.Equal(t, r.Blocks[0].ECC[0], cw[n])
	assert.Equal(t, r.Blocks[3].ECC[17], cw[len(cw)-1])
}

func helloInput(t *testing.T) *Input {
	t.Helper()
	return newInput(t, 1, M, helloWorld)
}

func TestEncode(t *testing.T) {
	c, err := Encode(helloInput(t))
	require.NoError(t, err)
	assert.Equal(t, Version(1), c.Version)
	assert.Equal(t, M, c.Level)
	assert.Equal(t, 21, c.Width)
	require.Len(t, c.Modules, 21*21)
	assert.True(t, c.Dark(8, 13))
	assert.Equal(t, KindDarkModule, c.Kind(8, 13))
	assert.Equal(t, KindFinder, c.Kind(0, 0))
	assert.False(t, c.Dark(-1, 0))
	assert.False(t, c.Dark(0, 21))

	// the chosen mask has the lowest penalty, and the lowest
	// number among equals
	e := NewEncoder(nil)
	for m := 0; m < 8; m++ {
		mc, err := e.EncodeMask(helloInput(t), m)
		require.NoError(t, err)
		assert.Equal(t, m, mc.Mask)
		if m < c.Mask {
			assert.Greater(t, mc.Penalty, c.Penalty, "mask %d", m)
		} else {
			assert.GreaterOrEqual(t, mc.Penalty, c.Penalty, "mask %d", m)
		}
		if m == c.Mask {
			if diff := cmp.Diff(c, mc); diff != "" {
				t.Errorf("mask %d mismatch (-auto +fixed):\n%s", m, diff)
			}
		}
	}

	again, err := e.Encode(helloInput(t))
	require.NoError(t, err)
	if diff := cmp.Diff(c, again); diff != "" {
		t.Errorf("encoding not deterministic (-first +second):\n%s", diff)
	}
}

func TestEncodeFormat(t *testing.T) {
	c, err := Encode(helloInput(t))
	require.NoError(t, err)
	f := &Frame{Version: c.Version, Width: c.Width, Cells: make([]Cell, len(c.Modules))}
	for i, m := range c.Modules {
		f.Cells[i] = Cell{m&1 != 0, Kind(m >> 1)}
	}
	a, b := readFormat(f)
	assert.Equal(t, FormatInfo(M, c.Mask), a)
	assert.Equal(t, FormatInfo(M, c.Mask), b)
}

func TestEncodeMicro(t *testing.T) {
	in, err := NewMicroInput(M2, L)
	require.NoError(t, err)
	require.NoError(t, in.Append(Numeric, []byte("01234567")))
	c, err := Encode(in)
	require.NoError(t, err)
	assert.Equal(t, M2, c.Version)
	assert.Equal(t, 13, c.Width)
	assert.Less(t, c.Mask, 4)
	assert.LessOrEqual(t, c.Penalty, 0)
	assert.Equal(t, KindTiming, c.Kind(12, 0))

	for m := 0; m < 4; m++ {
		mc, err := NewEncoder(nil).EncodeMask(in, m)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, mc.Penalty, c.Penalty)
	}
	_, err = NewEncoder(nil).EncodeMask(in, 4)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestEncodeErrors(t *testing.T) {
	_, err := NewEncoder(nil).EncodeMask(helloInput(t), 8)
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = NewEncoder(nil).EncodeMask(helloInput(t), -1)
	assert.ErrorIs(t, err, ErrInvalid)

	in := newInput(t, 0, H, Segment{Mode: Byte, Data: bytes.Repeat([]byte{0}, 2000)})
	_, err = Encode(in)
	assert.ErrorIs(t, err, ErrCapacity)
}

func BenchmarkEncode(b *testing.B) {
	in, err := NewInput(0, M)
	if err != nil {
		b.Fatal(err)
	}
	if err := in.Append(Byte, bytes.Repeat([]byte("https://example.com/"), 20)); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Encode(in); err != nil {
			b.Fatal(err)
		}
	}
}
