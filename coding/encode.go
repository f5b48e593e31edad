// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"

	"github.com/unixdj/qrencode/gf256"
)

// A Code is an encoded QR or Micro QR code.
//
// Modules holds Width×Width bytes, row by row.  Bit 0 of each byte is
// set for a dark module; bits 1-4 hold the module's Kind.
type Code struct {
	Version Version
	Level   Level
	Mask    int
	Penalty int // penalty of the chosen mask, see Frame.Penalty
	Width   int
	Modules []byte
}

// Dark reports whether the module at column x, row y is dark.
// Coordinates outside the code are light.
func (c *Code) Dark(x, y int) bool {
	return 0 <= x && x < c.Width && 0 <= y && y < c.Width &&
		c.Modules[y*c.Width+x]&1 != 0
}

// Kind returns the function of the module at column x, row y.
func (c *Code) Kind(x, y int) Kind {
	return Kind(c.Modules[y*c.Width+x] >> 1)
}

func newCode(f *Frame, l Level, mask, pen int) *Code {
	c := &Code{
		Version: f.Version,
		Level:   l,
		Mask:    mask,
		Penalty: pen,
		Width:   f.Width,
		Modules: make([]byte, len(f.Cells)),
	}
	for i, m := range f.Cells {
		b := byte(m.Kind) << 1
		if m.Dark {
			b |= 1
		}
		c.Modules[i] = b
	}
	return c
}

// Encoder encodes Inputs into Codes.
type Encoder struct {
	codec *gf256.Codec
}

// NewEncoder returns an Encoder computing check codewords with c.
// If c is nil, gf256.Default is used.
func NewEncoder(c *gf256.Codec) *Encoder {
	if c == nil {
		c = gf256.Default
	}
	return &Encoder{codec: c}
}

// Raw returns the error correction blocks of in.  For QR codes the
// version of in is resolved.
func (e *Encoder) Raw(in *Input) (*RawCode, error) {
	data, err := in.Bytes()
	if err != nil {
		return nil, err
	}
	return NewRawCode(e.codec, data, in.Version(), in.Level())
}

// Check recomputes the blocks of in and verifies their syndromes.
func (e *Encoder) Check(in *Input) error {
	r, err := e.Raw(in)
	if err != nil {
		return err
	}
	return r.Check(e.codec)
}

// Frame returns the unmasked frame with the data and check codewords
// of in placed.  For QR codes the version of in is resolved.
func (e *Encoder) Frame(in *Input) (*Frame, error) {
	r, err := e.Raw(in)
	if err != nil {
		return nil, err
	}
	f := NewFrame(in.Version())
	f.Fill(r)
	return f, nil
}

// Encode encodes in, choosing the mask with the lowest penalty.
// Ties are resolved in favour of the lower mask number.
func (e *Encoder) Encode(in *Input) (*Code, error) {
	f, err := e.Frame(in)
	if err != nil {
		return nil, err
	}
	var best *Frame
	mask, pen := 0, 0
	for m := 0; m < Masks(f.Version); m++ {
		mf := f.Clone()
		mf.Mask(in.Level(), m)
		if p := mf.Penalty(); best == nil || p < pen {
			best, mask, pen = mf, m, p
		}
	}
	return newCode(best, in.Level(), mask, pen), nil
}

// EncodeMask encodes in using the given mask.
func (e *Encoder) EncodeMask(in *Input, mask int) (*Code, error) {
	f, err := e.Frame(in)
	if err != nil {
		return nil, err
	}
	if mask < 0 || mask >= Masks(f.Version) {
		return nil, fmt.Errorf("%w: mask %d for version %s",
			ErrInvalid, mask, f.Version)
	}
	f.Mask(in.Level(), mask)
	return newCode(f, in.Level(), mask, f.Penalty()), nil
}

// Encode encodes in with a default Encoder.
func Encode(in *Input) (*Code, error) {
	return NewEncoder(nil).Encode(in)
}
