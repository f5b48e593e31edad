// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A Filler visits the free modules of a Frame in data placement
// order: two-module wide columns from right to left, alternately
// upwards and downwards, skipping the vertical timing pattern.
type Filler struct {
	f        *Frame
	x, y     int
	dir, bit int
	done     bool
}

// NewFiller returns a Filler for f.
func NewFiller(f *Frame) *Filler {
	w := f.Width
	return &Filler{f: f, x: w - 1, y: w - 1, dir: -1, bit: -1}
}

// Next returns the coordinates of the next free module, or ok ==
// false when all have been visited.
func (p *Filler) Next() (x, y int, ok bool) {
	if p.done {
		return 0, 0, false
	}
	if p.bit == -1 {
		p.bit = 0
		return p.x, p.y, true
	}
	w := p.f.Width
	micro := p.f.Version.IsMicro()
	for {
		x, y := p.x, p.y
		if p.bit == 0 {
			x--
			p.bit = 1
		} else {
			x++
			y += p.dir
			p.bit = 0
		}
		if p.dir < 0 {
			if y < 0 {
				y = 0
				x -= 2
				p.dir = 1
				if !micro && x == 6 {
					x--
					y = 9
				}
			}
		} else if y == w {
			y = w - 1
			x -= 2
			p.dir = -1
			if !micro && x == 6 {
				x--
				y -= 8
			}
		}
		if x < 0 || y < 0 {
			p.done = true
			return 0, 0, false
		}
		p.x, p.y = x, y
		if !p.f.Cells[y*w+x].Kind.Reserved() {
			return x, y, true
		}
	}
}

// Free returns the number of free modules in f.
func (f *Frame) Free() int {
	n := 0
	for _, c := range f.Cells {
		if !c.Kind.Reserved() {
			n++
		}
	}
	return n
}

// place writes n bits of v, most significant first, to the next
// modules.
func (p *Filler) place(v byte, n int, k Kind) {
	for i := 7; i > 7-n; i-- {
		x, y, ok := p.Next()
		if !ok {
			panic("qr: internal error: frame full")
		}
		p.f.Cells[y*p.f.Width+x] = Cell{v>>i&1 != 0, k}
	}
}

// Fill places the codewords of r in f, followed by remainder bits.
func (f *Frame) Fill(r *RawCode) {
	p := NewFiller(f)
	v, l := r.Version, r.Level
	cw := r.Codewords()
	nd := v.DataBytes(l)
	for i, c := range cw[:nd] {
		n := 8
		if i == nd-1 && v.IsMicro() {
			n = v.DataBits(l) - (nd-1)*8
		}
		p.place(c, n, KindData)
	}
	for _, c := range cw[nd:] {
		p.place(c, 8, KindECC)
	}
	for i := 0; i < v.Remainder(); i++ {
		p.place(0, 1, KindECC)
	}
	if _, _, ok := p.Next(); ok {
		panic("qr: internal error: frame not full")
	}
}
