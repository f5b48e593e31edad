// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	qr "github.com/unixdj/qrencode"
	"github.com/unixdj/qrencode/coding"
	"github.com/unixdj/qrencode/split"
)

func defaults() settings {
	return settings{mask: -1, scale: 4, border: -1, eci: -1, appID: -1}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		set  func(*settings)
		ok   bool
	}{
		{"defaults", func(*settings) {}, true},
		{"fnc1 both", func(s *settings) { s.gs1, s.appID = true, 5 }, false},
		{"micro multi", func(s *settings) { s.micro, s.multi, s.version = true, true, 1 }, false},
		{"micro eci", func(s *settings) { s.micro, s.eci = true, 26 }, false},
		{"micro fnc1", func(s *settings) { s.micro, s.gs1 = true, true }, false},
		{"micro version", func(s *settings) { s.micro, s.version = true, 5 }, false},
		{"micro", func(s *settings) { s.micro, s.version = true, 4 }, true},
		{"multi", func(s *settings) { s.multi = true }, false},
		{"multi version", func(s *settings) { s.multi, s.version = true, 3 }, true},
	}
	for _, tt := range tests {
		s := defaults()
		tt.set(&s)
		if err := s.check(); tt.ok {
			assert.NoError(t, err, tt.name)
		} else {
			assert.Error(t, err, tt.name)
		}
	}
}

func TestPrepare(t *testing.T) {
	tests := []struct {
		name string
		set  func(*settings)
		text string
		data []byte
		eci  int
		hint coding.Mode
	}{
		{"ascii", func(*settings) {}, "hello", []byte("hello"), -1, coding.Byte},
		{"latin1", func(*settings) {}, "café", []byte("caf\xe9"), -1, coding.Byte},
		{"utf8", func(*settings) {}, "漢字", []byte("漢字"), split.UTF8ECI, coding.Byte},
		{"eci", func(s *settings) { s.eci = 3 }, "café", []byte("café"), 3, coding.Byte},
		{"sjis", func(s *settings) { s.sjis = true }, "漢字",
			[]byte{0x8a, 0xbf, 0x8e, 0x9a}, -1, coding.Kanji},
		{"sjis katakana", func(s *settings) { s.sjis = true }, "ｱ漢",
			[]byte{0xb1, 0x8a, 0xbf}, split.ShiftJISECI, coding.Kanji},
		{"sjis ascii", func(s *settings) { s.sjis = true }, "AB",
			[]byte("AB"), -1, coding.Kanji},
	}
	for _, tt := range tests {
		s := defaults()
		tt.set(&s)
		data, eci, hint, err := prepare(&s, tt.text)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.data, data, tt.name)
		assert.Equal(t, tt.eci, eci, tt.name)
		assert.Equal(t, tt.hint, hint, tt.name)
	}

	s := defaults()
	s.sjis = true
	_, _, _, err := prepare(&s, "é")
	assert.ErrorIs(t, err, split.ErrNotEncodable)
}

func TestInput(t *testing.T) {
	s := defaults()
	s.gs1 = true
	s.level = coding.Q
	in, err := input(&s, []byte("01049123451234591597033130128"), split.UTF8ECI, coding.Byte)
	require.NoError(t, err)
	assert.Equal(t, coding.Q, in.Level())
	_, ok := in.FNC1()
	assert.True(t, ok)
	want := []coding.Segment{
		{Mode: coding.ECI, ECI: split.UTF8ECI},
		{Mode: coding.Numeric, Data: []byte("01049123451234591597033130128")},
	}
	if diff := cmp.Diff(want, in.Segments()); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}

	s = defaults()
	s.byteOnly = true
	in, err = input(&s, []byte("12345"), -1, coding.Byte)
	require.NoError(t, err)
	require.Equal(t, 1, in.Len())
	assert.Equal(t, coding.Byte, in.Segments()[0].Mode)
}

func TestEncode(t *testing.T) {
	enc, err := qr.New()
	require.NoError(t, err)
	log := zap.NewNop()

	s := defaults()
	syms, err := encode(enc, &s, "HELLO WORLD", log)
	require.NoError(t, err)
	require.Len(t, syms, 1)
	assert.Equal(t, qr.Version(1), syms[0].Version)

	s = defaults()
	s.micro = true
	syms, err = encode(enc, &s, "12345", log)
	require.NoError(t, err)
	assert.Equal(t, qr.M1, syms[0].Version)

	s.version = 3
	syms, err = encode(enc, &s, "12345", log)
	require.NoError(t, err)
	assert.Equal(t, qr.M3, syms[0].Version)

	// The UTF-8 ECI is dropped for Micro QR.
	s.version = 0
	syms, err = encode(enc, &s, "漢字", log)
	require.NoError(t, err)
	assert.Equal(t, qr.M3, syms[0].Version)

	s = defaults()
	s.multi, s.version, s.level, s.byteOnly = true, 1, coding.H, true
	syms, err = encode(enc, &s, strings.Repeat("0123456789", 6), log)
	require.NoError(t, err)
	assert.Len(t, syms, 12)

	s = defaults()
	s.level = coding.H
	_, err = encode(enc, &s, strings.Repeat("x", 3000), log)
	assert.ErrorIs(t, err, qr.ErrCapacityExceeded)
}

// microSymbol returns the M1 symbol for "1", 11 modules wide.
func microSymbol(t *testing.T) *qr.Symbol {
	sym, err := qr.EncodeTextMicro([]byte("1"), 0, qr.L, coding.Byte, true)
	require.NoError(t, err)
	require.Equal(t, 11, sym.Width)
	return sym
}

func TestWritePBM(t *testing.T) {
	sym := microSymbol(t)
	s := defaults()
	s.scale = 2

	var b bytes.Buffer
	require.NoError(t, writePBM(&b, sym, &s))
	header := "P4\n30 30\n"
	require.True(t, strings.HasPrefix(b.String(), header))
	img := b.Bytes()[len(header):]
	require.Len(t, img, 30*4)
	row := func(i int) []byte { return img[i*4 : i*4+4] }
	assert.Equal(t, []byte{0, 0, 0, 0}, row(0))
	// Module row 0 starts at pixel row 4 after two quiet zone
	// modules; the finder's top edge is 7 dark modules.
	assert.Equal(t, byte(0x0f), row(4)[0])
	assert.Equal(t, byte(0xff), row(4)[1])
	assert.Equal(t, row(4), row(5))

	s.reverse = true
	s.border = 0
	b.Reset()
	require.NoError(t, writePBM(&b, sym, &s))
	header = "P4\n22 22\n"
	require.True(t, strings.HasPrefix(b.String(), header))
	img = b.Bytes()[len(header):]
	require.Len(t, img, 22*3)
	// Reversed finder edge: 14 light pixels.
	assert.Equal(t, []byte{0x00, 0x03}, img[:2])
}

func TestWriteText(t *testing.T) {
	sym := microSymbol(t)
	s := defaults()

	var b bytes.Buffer
	require.NoError(t, writeASCII(&b, sym, &s))
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	require.Len(t, lines, 15)
	for _, line := range lines {
		assert.Len(t, line, 30)
	}
	assert.Equal(t, strings.Repeat(" ", 30), lines[0])
	assert.Equal(t, "    ##############  ", lines[2][:20])

	b.Reset()
	require.NoError(t, writeUTF8(&b, sym, &s))
	assert.Equal(t, sym.String(), b.String())

	s.border = 0
	b.Reset()
	require.NoError(t, writeUTF8(&b, sym, &s))
	lines = strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	// The last line holds only row 10.
	for _, r := range lines[5] {
		assert.Contains(t, []rune{' ', '▀'}, r)
	}
}

func TestProfile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "qr.yaml")
	require.NoError(t, os.WriteFile(name, []byte(`
level: q
version: 7
type: ascii
scale: 8
micro: false
ignore_case: true
`), 0666))

	p, err := loadProfile(name)
	require.NoError(t, err)
	s := defaults()
	// -v given on the command line
	require.NoError(t, p.apply(&s, func(f any) bool { return f == 'v' }))
	assert.Equal(t, coding.Q, s.level)
	assert.Equal(t, 0, s.version)
	assert.Equal(t, "ascii", s.format)
	assert.Equal(t, 8, s.scale)
	assert.True(t, s.upper)
	assert.Equal(t, -1, s.mask)

	bad := map[string]string{
		"unknown.yaml": "colour: red\n",
		"level.yaml":   "level: x\n",
		"mask.yaml":    "mask: 8\n",
		"type.yaml":    "type: png\n",
	}
	for file, text := range bad {
		name := filepath.Join(dir, file)
		require.NoError(t, os.WriteFile(name, []byte(text), 0666))
		p, err := loadProfile(name)
		if err == nil {
			s := defaults()
			err = p.apply(&s, func(any) bool { return false })
		}
		assert.Error(t, err, file)
	}

	_, err = loadProfile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyProfile(t *testing.T) {
	s := defaults()
	require.NoError(t, applyProfile("", &s, func(any) bool { return false }))
	assert.Equal(t, defaults(), s)

	name := filepath.Join(t.TempDir(), "micro.yaml")
	require.NoError(t, os.WriteFile(name, []byte("micro: true\nlevel: m\nborder: 1\n"), 0666))
	require.NoError(t, applyProfile(name, &s, func(f any) bool { return f == 'l' }))
	assert.True(t, s.micro)
	assert.Equal(t, coding.L, s.level)
	assert.Equal(t, 1, s.border)

	err := applyProfile(filepath.Join(t.TempDir(), "missing.yaml"), &s,
		func(any) bool { return false })
	assert.ErrorIs(t, err, os.ErrNotExist)
}
