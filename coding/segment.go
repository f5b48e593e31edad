// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// MaxECI is the largest ECI assignment number.
const MaxECI = 999999

// A Segment describes a QR code segment.
//
// Data holds the payload for data modes, {count, index, parity} for
// StructuredAppend and the application indicator for FNC1Second.
// ECI holds the assignment number for ECI.
type Segment struct {
	Mode Mode
	Data []byte
	ECI  uint32
}

// check validates seg.
func (seg Segment) check() error {
	switch {
	case seg.Mode == ECI:
		if seg.ECI > MaxECI {
			return ErrECI
		}
	case seg.Mode.info() == nil:
		return ErrMode
	case seg.Mode.IsData() && len(seg.Data) == 0:
		return ErrEmpty
	case seg.Mode == StructuredAppend && !seg.Mode.Valid(seg.Data):
		return ErrHeader
	case !seg.Mode.Valid(seg.Data):
		return &SegmentError{seg.Mode, seg.Data}
	}
	return nil
}

// chars returns the character count of a data segment.
func (seg Segment) chars() int {
	if seg.Mode == Kanji {
		return len(seg.Data) / 2
	}
	return len(seg.Data)
}

// eciBits returns the length of the ECI designator.
func eciBits(n uint32) int {
	switch {
	case n < 1<<7:
		return 8
	case n < 1<<14:
		return 16
	}
	return 24
}

// EstimateBits returns an estimate of the encoded length of seg in
// version v, including headers.  Long data segments are counted as
// split in chunks.  Version 0 is treated as version 1.
func (seg Segment) EstimateBits(v Version) int {
	if v == 0 {
		v = MinVersion
	}
	switch seg.Mode {
	case StructuredAppend:
		return 20
	case ECI:
		return 4 + eciBits(seg.ECI)
	case FNC1First:
		return 4
	case FNC1Second:
		return 12
	}
	m := seg.Mode.info()
	if m == nil || !seg.Mode.IsData() {
		return 0
	}
	bits := m.payloadBits(len(seg.Data))
	l := LengthBits(seg.Mode, v)
	if v.IsMicro() {
		return bits + l + indicatorBits(v)
	}
	n := MaxWords(seg.Mode, v)
	num := (len(seg.Data) + n - 1) / n
	return bits + num*(4+l)
}

// Encode appends seg encoded for version v to b.  Data segments
// longer than a character count field allows are written as several
// segments.
func (seg Segment) Encode(b *BitStream, v Version) error {
	m := seg.Mode.info()
	if m == nil {
		return ErrMode
	}
	if v.IsMicro() && !seg.Mode.IsData() {
		return &CompatError{seg.Mode, v}
	}
	if v == 0 {
		v = MinVersion
	}
	switch seg.Mode {
	case StructuredAppend:
		b.AppendBits(m.indicator, 4)
		b.AppendBits(uint32(seg.Data[1]-1), 4)
		b.AppendBits(uint32(seg.Data[0]-1), 4)
		b.AppendBits(uint32(seg.Data[2]), 8)
		return nil
	case ECI:
		b.AppendBits(m.indicator, 4)
		switch n := seg.ECI; eciBits(n) {
		case 8:
			b.AppendBits(n, 8)
		case 16:
			b.AppendBits(0x8000|n, 16)
		default:
			b.AppendBits(0xc00000|n, 24)
		}
		return nil
	case FNC1First:
		b.AppendBits(m.indicator, 4)
		return nil
	case FNC1Second:
		b.AppendBits(m.indicator, 4)
		b.AppendBits(uint32(seg.Data[0]), 8)
		return nil
	}

	l := LengthBits(seg.Mode, v)
	if l == 0 {
		return &CompatError{seg.Mode, v}
	}
	if n := MaxWords(seg.Mode, v); len(seg.Data) > n {
		head := Segment{Mode: seg.Mode, Data: seg.Data[:n]}
		if err := head.Encode(b, v); err != nil {
			return err
		}
		return Segment{Mode: seg.Mode, Data: seg.Data[n:]}.Encode(b, v)
	}
	if v.IsMicro() {
		b.AppendBits(uint32(seg.Mode), indicatorBits(v))
	} else {
		b.AppendBits(m.indicator, 4)
	}
	b.AppendBits(uint32(seg.chars()), l)
	g := len(m.bits) - 1
	p := seg.Data
	for ; len(p) >= g; p = p[g:] {
		b.AppendBits(m.enc(p[:g]), int(m.bits[g]))
	}
	if len(p) != 0 {
		if m.bits[len(p)] == 0 {
			panic("qr: " + m.name + " mode internal error")
		}
		b.AppendBits(m.enc(p), int(m.bits[len(p)]))
	}
	return nil
}

// Bits returns the exact encoded length of seg in version v.
func (seg Segment) Bits(v Version) (int, error) {
	var b BitStream
	if err := seg.Encode(&b, v); err != nil {
		return 0, err
	}
	return b.Len(), nil
}

// Parity returns the structured append parity of seg: the xor of all
// payload bytes of a data segment, or 0 for any other segment.
func (seg Segment) Parity() byte {
	var par byte
	if seg.Mode.IsData() {
		for _, c := range seg.Data {
			par ^= c
		}
	}
	return par
}
