// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "strconv"

// A Mode is a QR segment encoding mode.
type Mode int

// Encoding modes.  Numeric to Kanji are data modes; the rest encode
// headers.
const (
	Numeric          Mode = iota // digits 0-9
	Alphanumeric                 // 0-9, A-Z, space, $%*+-./:
	Byte                         // any data
	Kanji                        // Shift JIS double byte characters
	StructuredAppend             // structured append header
	ECI                          // extended channel interpretation
	FNC1First                    // FNC1 in 1st position
	FNC1Second                   // FNC1 in 2nd position
)

// A modeInfo describes the encoding of a Mode.
//
// Data are encoded in groups of up to len(bits)-1 bytes; bits[n] is
// the length in bits of an n byte group, 0 if an n byte group is
// invalid.
type modeInfo struct {
	name      string
	indicator uint32 // 4 bit mode indicator for QR codes

	// count lists lengths of the character count field in four
	// Micro QR and three QR version size classes.
	count [7]byte

	bits  []byte
	valid func([]byte) bool
	enc   func([]byte) uint32 // encode one group
}

const alphamask uint64 = 0x07fffffe_07ffec31 // SPACE $% *+ -./ [0-9] : [A-Z]

// Alphanumeric encoding table.  Used after validation.
// "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
var alpha = [64]byte{
	00, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, // 0x40
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 00, 00, 00, 00, 00, // 0x50
	36, 00, 00, 00, 37, 38, 00, 00, 00, 00, 39, 40, 00, 41, 42, 43, // 0x20
	00, 01, 02, 03, 04, 05, 06, 07, 010, 9, 44, 00, 00, 00, 00, 00, // 0x30
}

// IsDigit reports whether c is encodable in Numeric mode.
func IsDigit(c byte) bool { return c-'0' < 10 }

// IsAlnum reports whether c is encodable in Alphanumeric mode.
func IsAlnum(c byte) bool {
	return c >= ' ' && alphamask>>(c-' ')&1 != 0
}

// IsKanji reports whether the big endian Shift JIS double byte
// character hi, lo is encodable in Kanji mode.
func IsKanji(hi, lo byte) bool {
	w := uint16(hi)<<8 | uint16(lo)
	if w < 0x8140 || w > 0x9ffc && w < 0xe040 || w > 0xebbf {
		return false
	}
	return lo >= 0x40 && lo <= 0xfc && lo != 0x7f
}

func validBytes(is func(byte) bool) func([]byte) bool {
	return func(p []byte) bool {
		for _, c := range p {
			if !is(c) {
				return false
			}
		}
		return true
	}
}

var modes = [...]modeInfo{
	Numeric: {
		name:      "numeric",
		indicator: 1,
		count:     [7]byte{3, 4, 5, 6, 10, 12, 14},
		bits:      []byte{0, 4, 7, 10},
		valid:     validBytes(IsDigit),
		enc: func(p []byte) uint32 {
			var v uint32
			for _, c := range p {
				v = v*10 + uint32(c-'0')
			}
			return v
		},
	},
	Alphanumeric: {
		name:      "alphanumeric",
		indicator: 2,
		count:     [7]byte{0, 3, 4, 5, 9, 11, 13},
		bits:      []byte{0, 6, 11},
		valid:     validBytes(IsAlnum),
		enc: func(p []byte) uint32 {
			v := uint32(alpha[p[0]&0x3f])
			if len(p) == 2 {
				v = v*45 + uint32(alpha[p[1]&0x3f])
			}
			return v
		},
	},
	Byte: {
		name:      "byte",
		indicator: 4,
		count:     [7]byte{0, 0, 4, 5, 8, 16, 16},
		bits:      []byte{0, 8},
		valid:     func([]byte) bool { return true },
		enc:       func(p []byte) uint32 { return uint32(p[0]) },
	},
	Kanji: {
		name:      "kanji",
		indicator: 8,
		count:     [7]byte{0, 0, 3, 4, 8, 10, 12},
		bits:      []byte{0, 0, 13},
		valid: func(p []byte) bool {
			if len(p)&1 != 0 {
				return false
			}
			for i := 0; i < len(p); i += 2 {
				if !IsKanji(p[i], p[i+1]) {
					return false
				}
			}
			return true
		},
		enc: func(p []byte) uint32 {
			return uint32(p[0]&^0xc0)*0xc0 + uint32(p[1]) - 0x100
		},
	},
	StructuredAppend: {
		name:      "structured-append",
		indicator: 3,
		valid: func(p []byte) bool {
			return len(p) == 3 && p[1] >= 1 && p[1] <= p[0] &&
				p[0] <= MaxStructured
		},
	},
	ECI: {
		name:      "eci",
		indicator: 7,
	},
	FNC1First: {
		name:      "fnc1-in-1st-position",
		indicator: 5,
		valid:     func(p []byte) bool { return len(p) == 0 },
	},
	FNC1Second: {
		name:      "fnc1-in-2nd-position",
		indicator: 9,
		valid:     func(p []byte) bool { return len(p) == 1 },
	},
}

func (mode Mode) info() *modeInfo {
	if mode >= 0 && int(mode) < len(modes) {
		return &modes[mode]
	}
	return nil
}

func (mode Mode) String() string {
	if m := mode.info(); m != nil {
		return m.name
	}
	return strconv.Itoa(int(mode))
}

// IsData reports whether mode is Numeric, Alphanumeric, Byte or Kanji.
func (mode Mode) IsData() bool { return mode >= Numeric && mode <= Kanji }

// Valid reports whether data is encodable in mode.  Data modes
// reject empty data.
func (mode Mode) Valid(data []byte) bool {
	m := mode.info()
	if m == nil || m.valid == nil {
		return false
	}
	if mode.IsData() && len(data) == 0 {
		return false
	}
	return m.valid(data)
}

// LengthBits returns the length of the character count field of mode
// in version v, or 0 if the mode has none or is not available.
// Version 0 is treated as version 1.
func LengthBits(mode Mode, v Version) int {
	if !mode.IsData() {
		return 0
	}
	return int(modes[mode].count[v.SizeClass()])
}

// MaxWords returns the maximum number of bytes a single segment of
// mode can hold in version v, or 0 for modes that cannot be split.
func MaxWords(mode Mode, v Version) int {
	n := LengthBits(mode, v)
	if n == 0 {
		return 0
	}
	n = 1<<n - 1
	if mode == Kanji {
		n *= 2
	}
	return n
}

// payloadBits returns the length in bits of n bytes encoded in mode,
// excluding the header.
func (m *modeInfo) payloadBits(n int) int {
	g := len(m.bits) - 1
	return n/g*int(m.bits[g]) + int(m.bits[n%g])
}

// indicatorBits returns the length of the mode indicator in version v.
func indicatorBits(v Version) int {
	if v.IsMicro() {
		return int(v - M1)
	}
	return 4
}

// LengthOfCode returns the largest number of bytes of mode data that
// fit in a segment of at most bits bits, header included, in version
// v.  It returns 0 for non-data modes or if nothing fits.
func LengthOfCode(mode Mode, v Version, bits int) int {
	if !mode.IsData() {
		return 0
	}
	m := &modes[mode]
	payload := bits - indicatorBits(v) - LengthBits(mode, v)
	if payload <= 0 {
		return 0
	}
	g := len(m.bits) - 1
	full := int(m.bits[g])
	n := payload / full * g
	rem := payload % full
	for k := g - 1; k > 0; k-- {
		if m.bits[k] != 0 && rem >= int(m.bits[k]) {
			n += k
			break
		}
	}
	return min(n, MaxWords(mode, v))
}
