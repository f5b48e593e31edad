// Copyright 2010 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf256 implements arithmetic over the Galois Field GF(256)
// and Reed-Solomon check byte computation.
package gf256 // import "github.com/unixdj/qrencode/gf256"

import (
	"errors"
	"fmt"
	"sync"
)

// MaxECC is the maximum number of check bytes per block.
const MaxECC = 30

// ErrECCLength is returned for a check byte count outside 1..MaxECC.
var ErrECCLength = errors.New("gf256: invalid ECC length")

// A Field represents an instance of GF(256) defined by a specific
// polynomial.
type Field struct {
	log [256]byte // log[0] is unused
	exp [510]byte
}

// QR is the field used by QR codes: x⁸ + x⁴ + x³ + x² + 1 with α = 2.
var QR = NewField(0x11d, 2)

// Default is a Codec over QR shared by all callers that don't
// construct their own.
var Default = NewCodec(QR)

// NewField returns a new field corresponding to the polynomial poly
// and generator α.  The polynomial must be of degree 8 and α must
// generate the multiplicative group.
func NewField(poly, α int) *Field {
	if poly < 0x100 || poly >= 0x200 || α < 2 || α > 0xff {
		panic("gf256: invalid polynomial: " + fmt.Sprint(poly))
	}
	var f Field
	x := 1
	for i := 0; i < 255; i++ {
		if x == 0 || x == 1 && i != 0 {
			panic("gf256: invalid generator " + fmt.Sprint(α) +
				" for polynomial " + fmt.Sprint(poly))
		}
		f.exp[i] = byte(x)
		f.exp[i+255] = byte(x)
		f.log[x] = byte(i)
		x = mul(x, α, poly)
	}
	f.log[0] = 255
	return &f
}

// mul returns the product x*y mod poly, a GF(256) multiplication.
func mul(x, y, poly int) int {
	z := 0
	for x > 0 {
		if x&1 != 0 {
			z ^= y
		}
		x >>= 1
		y <<= 1
		if y&0x100 != 0 {
			y ^= poly
		}
	}
	return z
}

// Add returns the sum of x and y in the field.
func (f *Field) Add(x, y byte) byte { return x ^ y }

// Exp returns the base-α exponential of e in the field.
// If e < 0, Exp returns 0.
func (f *Field) Exp(e int) byte {
	if e < 0 {
		return 0
	}
	return f.exp[e%255]
}

// Log returns the base-α logarithm of x in the field.
// If x == 0, Log returns -1.
func (f *Field) Log(x byte) int {
	if x == 0 {
		return -1
	}
	return int(f.log[x])
}

// Inv returns the multiplicative inverse of x in the field.
// If x == 0, Inv returns 0.
func (f *Field) Inv(x byte) byte {
	if x == 0 {
		return 0
	}
	return f.exp[255-int(f.log[x])]
}

// Mul returns the product of x and y in the field.
func (f *Field) Mul(x, y byte) byte {
	if x == 0 || y == 0 {
		return 0
	}
	return f.exp[int(f.log[x])+int(f.log[y])]
}

// A Codec computes Reed-Solomon check bytes over a Field.  Generator
// polynomials are built on first use of each check byte count and
// shared afterwards; a Codec is safe for concurrent use.
type Codec struct {
	f   *Field
	gen [MaxECC + 1]struct {
		once sync.Once
		lg   []byte // log form, leading coefficient omitted, 255 for 0
	}
}

// NewCodec returns a Codec over f.
func NewCodec(f *Field) *Codec {
	return &Codec{f: f}
}

// Field returns the codec's field.
func (c *Codec) Field() *Field { return c.f }

// generator returns the coefficients of (x - α⁰)(x - α¹)...(x - αⁿ⁻¹)
// below the leading term, highest degree first, in log form.
func (c *Codec) generator(n int) []byte {
	g := &c.gen[n]
	g.once.Do(func() {
		f := c.f
		p := make([]byte, n+1)
		p[0] = 1
		for i := 0; i < n; i++ {
			a := f.exp[i]
			for j := i + 1; j > 0; j-- {
				p[j] ^= f.Mul(p[j-1], a)
			}
		}
		lg := make([]byte, n)
		for i := range lg {
			lg[i] = f.log[p[i+1]]
			if p[i+1] == 0 {
				lg[i] = 255
			}
		}
		g.lg = lg
	})
	return g.lg
}

// Generator returns the generator polynomial of degree n, highest
// degree first, including the leading 1.
func (c *Codec) Generator(n int) ([]byte, error) {
	if n < 1 || n > MaxECC {
		return nil, fmt.Errorf("%w: %d", ErrECCLength, n)
	}
	lg := c.generator(n)
	p := make([]byte, n+1)
	p[0] = 1
	for i, l := range lg {
		if l != 255 {
			p[i+1] = c.f.exp[l]
		}
	}
	return p, nil
}

// ECC returns n check bytes for data: the remainder of data·xⁿ
// divided by the generator polynomial of degree n.
func (c *Codec) ECC(data []byte, n int) ([]byte, error) {
	if n < 1 || n > MaxECC {
		return nil, fmt.Errorf("%w: %d", ErrECCLength, n)
	}
	f, lg := c.f, c.generator(n)
	ecc := make([]byte, n)
	for _, b := range data {
		fb := b ^ ecc[0]
		copy(ecc, ecc[1:])
		ecc[n-1] = 0
		if fb == 0 {
			continue
		}
		lf := int(f.log[fb])
		for i, l := range lg {
			if l != 255 {
				ecc[i] ^= f.exp[lf+int(l)]
			}
		}
	}
	return ecc, nil
}

// Syndromes evaluates the codeword cw, highest degree first, at the
// n roots of the generator polynomial of degree n.  All syndromes of
// a valid codeword are zero.
func (c *Codec) Syndromes(cw []byte, n int) []byte {
	f := c.f
	s := make([]byte, n)
	for i := range s {
		a := f.exp[i%255]
		var v byte
		for _, b := range cw {
			v = f.Mul(v, a) ^ b
		}
		s[i] = v
	}
	return s
}
