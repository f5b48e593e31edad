// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunLength(t *testing.T) {
	line := func(s string) func(int) bool {
		return func(i int) bool { return s[i] == '#' }
	}
	runs := make([]int, 16)
	tests := []struct {
		line string
		want []int
	}{
		{"##.", []int{-1, 2, 1}},
		{"..#", []int{2, 1}},
		{"#.#.#", []int{-1, 1, 1, 1, 1, 1}},
		{"......", []int{6}},
	}
	for _, tt := range tests {
		n := runLength(runs, len(tt.line), line(tt.line))
		assert.Equal(t, tt.want, runs[:n], "line %q", tt.line)
	}
}

func TestRunPenalty(t *testing.T) {
	tests := []struct {
		runs []int
		want int
	}{
		{[]int{4, 1, 1, 3, 1, 1, 4}, 40},
		{[]int{-1, 7}, 5},
		{[]int{5}, 3},
		{[]int{4}, 0},
		{[]int{1, 1, 1, 3, 1, 1, 1}, 40}, // at both edges
		{[]int{1, 1, 1, 1, 1, 3, 1, 1, 1, 1, 1}, 0},
		{[]int{1, 1, 1, 1, 1, 3, 1, 1, 4}, 40},
		{[]int{1, 1, 4, 1, 1, 3, 1, 1, 1, 1, 1}, 40},
		{[]int{2, 2, 2, 6, 2, 2, 8}, 50},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, runPenalty(tt.runs, 3, 40), "runs %v", tt.runs)
	}
}

// readFormat reads the format word copy next to the top left finder
// pattern.
func readFormat(f *Frame) (a, b uint16) {
	w := f.Width
	bit := func(x, y, i int) uint16 {
		if f.At(x, y).Dark {
			return 1 << i
		}
		return 0
	}
	for i := 0; i < 8; i++ {
		b |= bit(w-1-i, 8, i)
		y := i
		if i >= 6 {
			y++
		}
		a |= bit(8, y, i)
	}
	for i := 0; i < 7; i++ {
		b |= bit(8, w-7+i, i+8)
		x := 6 - i
		if i == 0 {
			x = 7
		}
		a |= bit(x, 8, i+8)
	}
	return a, b
}

func TestMaskFormat(t *testing.T) {
	for l := L; l <= H; l++ {
		for m := 0; m < 8; m++ {
			f := NewFrame(2)
			f.Mask(l, m)
			a, b := readFormat(f)
			assert.Equal(t, FormatInfo(l, m), a, "level %s mask %d", l, m)
			assert.Equal(t, FormatInfo(l, m), b, "level %s mask %d", l, m)
		}
	}

	f := NewFrame(M3)
	f.Mask(M, 2)
	var fb uint16
	for i := 0; i < 8; i++ {
		if f.At(8, i+1).Dark {
			fb |= 1 << i
		}
	}
	for i := 0; i < 7; i++ {
		if f.At(7-i, 8).Dark {
			fb |= 1 << (i + 8)
		}
	}
	assert.Equal(t, MicroFormatInfo(M3, M, 2), fb)
}

func TestMaskData(t *testing.T) {
	for _, v := range []Version{1, 7, M2} {
		for m := 0; m < Masks(v); m++ {
			orig := NewFrame(v)
			f := orig.Clone()
			f.Mask(L, m)
			mf := maskFunc[m]
			if v.IsMicro() {
				mf = maskFunc[[4]int{1, 4, 6, 7}[m]]
			}
			for y := 0; y < f.Width; y++ {
				for x := 0; x < f.Width; x++ {
					c, o := f.At(x, y), orig.At(x, y)
					switch {
					case o.Kind == KindFormat:
						assert.Equal(t, KindFormat, c.Kind)
					case o.Kind.Reserved():
						assert.Equal(t, o, c, "version %s mask %d at %d,%d", v, m, x, y)
					default:
						assert.Equal(t, mf(x, y), c.Dark, "version %s mask %d at %d,%d", v, m, x, y)
					}
				}
			}
		}
	}
}

func TestMaskFunc(t *testing.T) {
	// upper left 6x6 of each mask, dark when true
	want := [8][6]string{
		{"#.#.#.", ".#.#.#", "#.#.#.", ".#.#.#", "#.#.#.", ".#.#.#"},
		{"######", "......", "######", "......", "######", "......"},
		{"#..#..", "#..#..", "#..#..", "#..#..", "#..#..", "#..#.."},
		{"#..#..", "..#..#", ".#..#.", "#..#..", "..#..#", ".#..#."},
		{"###...", "###...", "...###", "...###", "###...", "###..."},
		{"######", "#.....", "#..#..", "#.#.#.", "#..#..", "#....."},
		{"######", "###...", "##.##.", "#.#.#.", "#.##.#", "#...##"},
		{"#.#.#.", "...###", "#...##", ".#.#.#", "###...", ".###.."},
	}
	for m, rows := range want {
		for y, row := range rows {
			for x := range row {
				assert.Equal(t, row[x] == '#', maskFunc[m](x, y),
					"mask %d at %d,%d", m, x, y)
			}
		}
	}
}

func TestMicroPenalty(t *testing.T) {
	f := NewFrame(M2)
	w := f.Width
	assert.Equal(t, 0, f.Penalty())
	for i := 1; i < w; i++ {
		f.Cells[(w-1)*w+i].Dark = true
	}
	f.Cells[3*w+w-1].Dark = true
	// h = 12, v = 2 including the shared corner
	assert.Equal(t, -(2*16 + 12), f.Penalty())
}

func TestPenalty(t *testing.T) {
	// all light: N1 runs, N2 boxes, N4 balance
	f := &Frame{Version: 1, Width: 21, Cells: make([]Cell, 21*21)}
	n1 := 2 * 21 * (3 + 21 - 5)
	n2 := 20 * 20 * 3
	n4 := 10 * 10
	assert.Equal(t, n1+n2+n4, f.Penalty())
}
