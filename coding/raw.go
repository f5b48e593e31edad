// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"

	"github.com/unixdj/qrencode/gf256"
)

// A Block is a Reed-Solomon block: data codewords and their check
// codewords.
type Block struct {
	Data []byte
	ECC  []byte
}

// A RawCode holds the error correction blocks of a code.
type RawCode struct {
	Version Version
	Level   Level
	Blocks  []Block
}

// NewRawCode splits data into blocks for version v and level l and
// computes check codewords with c.  len(data) must equal
// v.DataBytes(l).
func NewRawCode(c *gf256.Codec, data []byte, v Version, l Level) (*RawCode, error) {
	if !v.HasLevel(l) {
		return nil, ErrLevel
	}
	if n := v.DataBytes(l); len(data) != n {
		return nil, fmt.Errorf("%w: %d data codewords for %s-%s, want %d",
			ErrInvalid, len(data), v, l, n)
	}
	bs := v.BlockSpec(l)
	r := &RawCode{
		Version: v,
		Level:   l,
		Blocks:  make([]Block, bs.Count()),
	}
	for i := range r.Blocks {
		n := bs.D1
		if i >= bs.B1 {
			n = bs.D2
		}
		blk := data[:n:n]
		data = data[n:]
		ecc, err := c.ECC(blk, bs.ECC)
		if err != nil {
			return nil, fmt.Errorf("qr: version %s-%s: %w", v, l, err)
		}
		r.Blocks[i] = Block{Data: blk, ECC: ecc}
	}
	return r, nil
}

// Codewords returns the codewords in transmission order: data
// codewords of all blocks interleaved, then check codewords of all
// blocks interleaved.
func (r *RawCode) Codewords() []byte {
	last := r.Blocks[len(r.Blocks)-1]
	out := make([]byte, 0, r.Version.Words())
	for i := range last.Data {
		for _, b := range r.Blocks {
			if i < len(b.Data) {
				out = append(out, b.Data[i])
			}
		}
	}
	for i := range last.ECC {
		for _, b := range r.Blocks {
			out = append(out, b.ECC[i])
		}
	}
	return out
}

// Check verifies that every block is a valid codeword of c, that is,
// all its syndromes are zero.
func (r *RawCode) Check(c *gf256.Codec) error {
	for i, b := range r.Blocks {
		cw := append(b.Data[:len(b.Data):len(b.Data)], b.ECC...)
		for _, s := range c.Syndromes(cw, len(b.ECC)) {
			if s != 0 {
				return fmt.Errorf("qr: version %s-%s: block %d: nonzero syndrome",
					r.Version, r.Level, i)
			}
		}
	}
	return nil
}
