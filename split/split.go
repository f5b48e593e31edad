// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package split splits text into QR code segments and large inputs
into structured append symbols.

Text picks segment modes greedily, looking ahead past each run of
characters of one class to see whether merging it into a neighbouring
run of a more general mode costs fewer bits than a mode switch.  The
costs are those of the QR segment encodings:

	Mode           Bits per group   Group
	Numeric        10               3 digits
	Alphanumeric   11               2 characters
	Byte            8               1 byte
	Kanji          13               1 Shift JIS character (2 bytes)

plus the mode indicator and the character count field of every
segment.  Ties keep the current mode.
*/
package split // import "github.com/unixdj/qrencode/split"

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"

	"github.com/unixdj/qrencode/coding"
)

// ECI assignment numbers.
const (
	ShiftJISECI = 20 // Shift JIS
	UTF8ECI     = 26 // UTF-8
)

var (
	ErrNotEncodable = fmt.Errorf("%w: text not encodable in character set", coding.ErrInvalid)
	ErrTooMany      = fmt.Errorf("%w: more than %d structured append symbols",
		coding.ErrCapacity, coding.MaxStructured)
)

// Character classes.
const (
	classEnd   = iota // end of text
	classNum          // digit
	classAlnum        // non-digit alphanumeric
	classByte         // anything else
	classKanji        // Shift JIS double byte character
)

// chartbl bits: 0000 0ban
//
//	n: digit
//	a: alphanumeric
//	b: byte, always set
const (
	nu = 7 // numeric
	al = 6 // alphanumeric
	by = 4 // byte
)

var chartbl = [128]byte{
	by, by, by, by, by, by, by, by, by, by, by, by, by, by, by, by, // 0x00
	by, by, by, by, by, by, by, by, by, by, by, by, by, by, by, by, // 0x10
	al, by, by, by, al, al, by, by, by, by, al, al, by, al, al, al, // 0x20
	nu, nu, nu, nu, nu, nu, nu, nu, nu, nu, al, by, by, by, by, by, // 0x30
	by, al, al, al, al, al, al, al, al, al, al, al, al, al, al, al, // 0x40
	al, al, al, al, al, al, al, al, al, al, al, by, by, by, by, by, // 0x50
	by, by, by, by, by, by, by, by, by, by, by, by, by, by, by, by, // 0x60
	by, by, by, by, by, by, by, by, by, by, by, by, by, by, by, by, // 0x70
}

// Payload lengths in bits of n bytes.
func numBits(n int) int   { return n/3*10 + [3]int{0, 4, 7}[n%3] }
func alnumBits(n int) int { return n/2*11 + n%2*6 }
func byteBits(n int) int  { return n * 8 }

// A splitter holds the state of a Text call.
type splitter struct {
	in         *coding.Input
	text       []byte
	kanji      bool // Kanji hint
	ln, la, l8 int  // character count field lengths
}

// class returns the class of the character at text[i].
func (s *splitter) class(i int) int {
	if i >= len(s.text) {
		return classEnd
	}
	c := s.text[i]
	if c < 0x80 {
		switch chartbl[c] {
		case nu:
			return classNum
		case al:
			return classAlnum
		}
		return classByte
	}
	if s.kanji && i+1 < len(s.text) && coding.IsKanji(c, s.text[i+1]) {
		return classKanji
	}
	return classByte
}

func (s *splitter) isAlnum(i int) bool {
	c := s.class(i)
	return c == classNum || c == classAlnum
}

// Each eat method appends a segment starting at text[p] and returns
// its length.

func (s *splitter) eatNum(p int) (int, error) {
	q := p
	for s.class(q) == classNum {
		q++
	}
	run := q - p
	switch s.class(q) {
	case classByte:
		if numBits(run)+4+s.ln+byteBits(1)-byteBits(run+1) > 0 {
			return s.eatByte(p)
		}
	case classAlnum:
		if numBits(run)+4+s.ln+alnumBits(1)-alnumBits(run+1) > 0 {
			return s.eatAlnum(p)
		}
	}
	return run, s.in.Append(coding.Numeric, s.text[p:q])
}

func (s *splitter) eatAlnum(p int) (int, error) {
	q := p
	for s.isAlnum(q) {
		if s.class(q) != classNum {
			q++
			continue
		}
		r := q
		for s.class(r) == classNum {
			r++
		}
		sw := 0
		if s.isAlnum(r) {
			sw = 4 + s.la
		}
		if alnumBits(q-p)+numBits(r-q)+4+s.ln+sw-alnumBits(r-p) < 0 {
			break
		}
		q = r
	}
	run := q - p
	if s.class(q) == classByte || s.class(q) == classKanji {
		if alnumBits(run)+4+s.la+byteBits(1)-byteBits(run+1) > 0 {
			return s.eatByte(p)
		}
	}
	return run, s.in.Append(coding.Alphanumeric, s.text[p:q])
}

func (s *splitter) eatKanji(p int) (int, error) {
	q := p
	for s.class(q) == classKanji {
		q += 2
	}
	return q - p, s.in.Append(coding.Kanji, s.text[p:q])
}

func (s *splitter) eatByte(p int) (int, error) {
	q := p + 1
loop:
	for q < len(s.text) {
		switch s.class(q) {
		case classKanji:
			break loop
		case classNum, classAlnum:
			r := q
			cost := numBits
			l := s.ln
			if s.class(q) == classNum {
				for s.class(r) == classNum {
					r++
				}
			} else {
				for s.isAlnum(r) {
					r++
				}
				cost, l = alnumBits, s.la
			}
			sw := 0
			if s.class(r) == classByte {
				sw = 4 + s.l8
			}
			if byteBits(q-p)+cost(r-q)+4+l+sw-byteBits(r-p) < 0 {
				break loop
			}
			q = r
		default:
			q++
		}
	}
	return q - p, s.in.Append(coding.Byte, s.text[p:q])
}

// Text appends text to in as a sequence of segments.  The hint must
// be Byte, or Kanji to encode valid Shift JIS double byte characters
// in Kanji mode.  Unless caseSensitive is set, lower case ASCII
// letters outside Kanji characters are converted to upper case, which
// lets more of the text use Alphanumeric mode.
//
// The character count field lengths are those of the version of in;
// version 0 is treated as version 1.
func Text(in *coding.Input, text []byte, hint coding.Mode, caseSensitive bool) error {
	if hint != coding.Byte && hint != coding.Kanji {
		return fmt.Errorf("%w %s as hint", coding.ErrMode, hint)
	}
	if len(text) == 0 {
		return coding.ErrEmpty
	}
	v := in.Version()
	s := &splitter{
		in:    in,
		text:  text,
		kanji: hint == coding.Kanji,
		ln:    coding.LengthBits(coding.Numeric, v),
		la:    coding.LengthBits(coding.Alphanumeric, v),
		l8:    coding.LengthBits(coding.Byte, v),
	}
	if !caseSensitive {
		s.text = s.upper()
	}
	for p := 0; p < len(s.text); {
		var (
			n   int
			err error
		)
		switch s.class(p) {
		case classNum:
			n, err = s.eatNum(p)
		case classAlnum:
			n, err = s.eatAlnum(p)
		case classKanji:
			n, err = s.eatKanji(p)
		default:
			n, err = s.eatByte(p)
		}
		if err != nil {
			return err
		}
		p += n
	}
	return nil
}

// upper returns a copy of the text with a-z outside Kanji characters
// converted to upper case.
func (s *splitter) upper() []byte {
	t := make([]byte, len(s.text))
	copy(t, s.text)
	for i := 0; i < len(t); i++ {
		if s.class(i) == classKanji {
			i++
		} else if 'a' <= t[i] && t[i] <= 'z' {
			t[i] -= 'a' - 'A'
		}
	}
	return t
}

// Bytes appends data to in as a single Byte mode segment.
func Bytes(in *coding.Input, data []byte) error {
	if len(data) == 0 {
		return coding.ErrEmpty
	}
	return in.Append(coding.Byte, data)
}

// ShiftJIS converts UTF-8 text to Shift JIS, for use with the Kanji
// hint.
func ShiftJIS(s string) ([]byte, error) {
	b, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: shift jis: %v", ErrNotEncodable, err)
	}
	return b, nil
}

// Charset returns s in the default QR character set ISO 8859-1 and
// ECI 0 if every character of s is in Latin-1, otherwise s unchanged
// and UTF8ECI.
func Charset(s string) ([]byte, uint32) {
	if b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s)); err == nil {
		return b, 0
	}
	return []byte(s), UTF8ECI
}
