// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "sync"

// A Kind is the function of a module.
type Kind uint8

// Module kinds.  Kinds from KindFinder up are reserved: data are
// never placed there and masks don't apply.
const (
	KindData        Kind = iota // data codeword
	KindECC                     // check codeword or remainder bit
	KindFinder                  // finder pattern
	KindSeparator               // light border around finder patterns
	KindTiming                  // timing pattern
	KindAlignment               // alignment pattern
	KindFormat                  // format information
	KindVersionInfo             // version information
	KindDarkModule              // the fixed dark module
)

// Reserved reports whether modules of kind k are function patterns.
func (k Kind) Reserved() bool { return k >= KindFinder }

func (k Kind) String() string {
	names := [...]string{"data", "ecc", "finder", "separator", "timing",
		"alignment", "format", "version", "dark"}
	if int(k) < len(names) {
		return names[k]
	}
	return "invalid"
}

// A Cell is a module of a Frame.
type Cell struct {
	Dark bool
	Kind Kind
}

// A Frame is a square grid of modules, row by row.
type Frame struct {
	Version Version
	Width   int
	Cells   []Cell
}

// Frame templates with function patterns.  A template is created the
// first time a version is used.
var templates [M4 + 1]struct {
	once sync.Once
	f    *Frame
}

// NewFrame returns a frame for version v with all function patterns
// in place and the format information area reserved.  Data modules
// are light.
func NewFrame(v Version) *Frame {
	if !v.IsValid() {
		panic("qr: invalid version " + v.String())
	}
	t := &templates[v]
	t.once.Do(func() { t.f = buildFrame(v) })
	return t.f.Clone()
}

// Clone returns a deep copy of f.
func (f *Frame) Clone() *Frame {
	c := *f
	c.Cells = append([]Cell(nil), f.Cells...)
	return &c
}

// At returns the module at column x, row y.
func (f *Frame) At(x, y int) Cell { return f.Cells[y*f.Width+x] }

func (f *Frame) set(x, y int, dark bool, k Kind) {
	f.Cells[y*f.Width+x] = Cell{dark, k}
}

func buildFrame(v Version) *Frame {
	w := v.Width()
	f := &Frame{Version: v, Width: w, Cells: make([]Cell, w*w)}
	if v.IsMicro() {
		f.finder(0, 0)
		for i := 0; i < 8; i++ {
			f.set(7, i, false, KindSeparator)
			f.set(i, 7, false, KindSeparator)
		}
		for i := 1; i <= 8; i++ {
			f.set(i, 8, false, KindFormat)
			f.set(8, i, false, KindFormat)
		}
		for i := 8; i < w; i++ {
			f.set(i, 0, i&1 == 0, KindTiming)
			f.set(0, i, i&1 == 0, KindTiming)
		}
		return f
	}

	f.finder(0, 0)
	f.finder(w-7, 0)
	f.finder(0, w-7)
	for i := 0; i < 8; i++ {
		f.set(7, i, false, KindSeparator)
		f.set(w-8, i, false, KindSeparator)
		f.set(7, w-1-i, false, KindSeparator)
		f.set(i, 7, false, KindSeparator)
		f.set(w-1-i, 7, false, KindSeparator)
		f.set(i, w-8, false, KindSeparator)
	}
	for i := 0; i < 9; i++ {
		f.set(i, 8, false, KindFormat)
		f.set(8, i, false, KindFormat)
	}
	for i := 0; i < 8; i++ {
		f.set(w-1-i, 8, false, KindFormat)
		f.set(8, w-1-i, false, KindFormat)
	}
	for i := 8; i < w-8; i++ {
		f.set(i, 6, i&1 == 0, KindTiming)
		f.set(6, i, i&1 == 0, KindTiming)
	}

	pos := v.AlignmentPositions()
	last := len(pos) - 1
	for i, y := range pos {
		for j, x := range pos {
			if i == 0 && (j == 0 || j == last) || j == 0 && i == last {
				continue // finder pattern
			}
			f.alignment(x, y)
		}
	}

	if vp := VersionPattern(v); vp != 0 {
		for i := 0; i < 18; i++ {
			d := vp>>i&1 != 0
			f.set(i/3, w-11+i%3, d, KindVersionInfo)
			f.set(w-11+i%3, i/3, d, KindVersionInfo)
		}
	}

	f.set(8, w-8, true, KindDarkModule)
	return f
}

// finder draws a 7x7 finder pattern at upper left x, y.
func (f *Frame) finder(x, y int) {
	for dy := 0; dy < 7; dy++ {
		for dx := 0; dx < 7; dx++ {
			ring := max(abs(dx-3), abs(dy-3))
			f.set(x+dx, y+dy, ring != 2, KindFinder)
		}
	}
}

// alignment draws a 5x5 alignment pattern centred at x, y.
func (f *Frame) alignment(x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			ring := max(abs(dx), abs(dy))
			f.set(x+dx, y+dy, ring != 1, KindAlignment)
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
