// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split

import (
	"fmt"

	"github.com/unixdj/qrencode/coding"
)

// Length of the structured append header in bits.
const headerBits = 20

// A StructuredSet is an Input split into up to 16 Inputs, to be
// encoded as structured append symbols.
type StructuredSet struct {
	Inputs []*coding.Input
	Parity byte // xor of all data bytes
}

// Structured splits in into Inputs of the same version and level,
// each small enough to be encoded with a structured append header.
// If the data fits in one symbol, the only Input has no header;
// otherwise every Input starts with a header carrying the symbol
// count, its index and the parity of the whole data.  FNC1 mode is
// set in every Input.
//
// The version of in must be set and not Micro QR.  A segment that
// doesn't fit in the space left in a symbol is cut in two; ECI and
// other header segments are moved to the next symbol whole.  Any
// structured append header in in is dropped.
func Structured(in *coding.Input) (*StructuredSet, error) {
	if in.IsMicro() {
		return nil, coding.ErrMicro
	}
	v, l := in.Version(), in.Level()
	if v == 0 {
		return nil, fmt.Errorf("%w: structured append needs a fixed version",
			coding.ErrVersion)
	}
	if in.Len() == 0 {
		return nil, coding.ErrEmpty
	}
	fnc1, hasFNC1 := in.FNC1()
	maxbits := v.DataBytes(l)*8 - headerBits
	if hasFNC1 {
		maxbits -= fnc1.EstimateBits(v)
	}

	set := &StructuredSet{Parity: in.Parity()}
	newInput := func() (*coding.Input, error) {
		p, err := coding.NewInput(v, l)
		if err == nil && hasFNC1 {
			err = p.AppendSegment(fnc1)
		}
		return p, err
	}
	cur, err := newInput()
	if err != nil {
		return nil, err
	}
	segs := in.Segments()
	bits := 0
	for i := 0; i < len(segs); {
		seg := segs[i]
		if seg.Mode == coding.StructuredAppend {
			i++
			continue
		}
		if bits+seg.EstimateBits(v) <= maxbits {
			n, err := seg.Bits(v)
			if err != nil {
				return nil, err
			}
			if err := cur.AppendSegment(seg); err != nil {
				return nil, err
			}
			bits += n
			i++
			continue
		}
		n := 0
		if maxbits > bits {
			n = coding.LengthOfCode(seg.Mode, v, maxbits-bits)
		}
		switch {
		case n > 0:
			head := coding.Segment{Mode: seg.Mode, Data: seg.Data[:n:n]}
			if err := cur.AppendSegment(head); err != nil {
				return nil, err
			}
			segs[i] = coding.Segment{Mode: seg.Mode, Data: seg.Data[n:]}
		case cur.Len() == 0:
			return nil, fmt.Errorf("%w: %s segment does not fit in version %s-%s",
				coding.ErrCapacity, seg.Mode, v, l)
		}
		set.Inputs = append(set.Inputs, cur)
		if len(set.Inputs) >= coding.MaxStructured {
			return nil, ErrTooMany
		}
		if cur, err = newInput(); err != nil {
			return nil, err
		}
		bits = 0
	}
	set.Inputs = append(set.Inputs, cur)

	if count := len(set.Inputs); count > 1 {
		for i, p := range set.Inputs {
			if err := p.AppendStructuredHeader(count, i+1, set.Parity); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
