// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A BitStream is an append-only sequence of bits, packed most
// significant bit first.
type BitStream struct {
	b    []byte
	nbit int
}

// NewBitStream returns an empty BitStream with capacity for n bytes.
func NewBitStream(n int) *BitStream {
	return &BitStream{b: make([]byte, 0, n)}
}

// Reset empties b, keeping the buffer.
func (b *BitStream) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Len returns the number of bits in b.
func (b *BitStream) Len() int { return b.nbit }

// AppendBits appends the low nbit bits of v, most significant first.
// nbit must not exceed 32.
func (b *BitStream) AppendBits(v uint32, nbit int) {
	if nbit <= 0 {
		return
	}
	v <<= 32 - nbit
	if rem := -b.nbit & 7; rem != 0 {
		b.b[len(b.b)-1] |= byte(v >> (32 - rem))
		if rem >= nbit {
			b.nbit += nbit
			return
		}
		b.nbit += rem
		nbit -= rem
		v <<= rem
	}
	for n := nbit; n > 0; n -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
	}
	b.nbit += nbit
}

// AppendZeros appends n zero bits.
func (b *BitStream) AppendZeros(n int) {
	for ; n > 32; n -= 32 {
		b.AppendBits(0, 32)
	}
	b.AppendBits(0, n)
}

// AppendBytes appends the bytes of p, 8 bits each.
func (b *BitStream) AppendBytes(p []byte) {
	if b.nbit&7 == 0 {
		b.b = append(b.b, p...)
		b.nbit += len(p) * 8
		return
	}
	for _, c := range p {
		b.AppendBits(uint32(c), 8)
	}
}

// Append appends the bits of s.
func (b *BitStream) Append(s *BitStream) {
	n := s.nbit
	for _, c := range s.b {
		if n < 8 {
			b.AppendBits(uint32(c>>(8-n)), n)
			break
		}
		b.AppendBits(uint32(c), 8)
		n -= 8
	}
}

// Bytes returns the bits of b packed into bytes.  A final partial
// byte is padded with zero bits on the right.  The result shares
// storage with b.
func (b *BitStream) Bytes() []byte { return b.b }

// Bit returns bit i of b as 0 or 1.
func (b *BitStream) Bit(i int) byte {
	return b.b[i>>3] >> (7 &^ i) & 1
}
