// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Mask patterns:
//
//	0: ▄▀▄▀▄▀▄▀▄▀▄▀  1: ▄▄▄▄▄▄▄▄▄▄▄▄  2:  ██ ██ ██ ██  3: ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//
//	4:    ███   ███  5:  ▄▄▄▄▄ ▄▄▄▄▄  6:    ▄▄▄   ▄▄▄  7: ▄█▄▀ ▀▄█▄▀ ▀
//	   ███   ███         █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	      ███   ███      ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
//	   ███   ███         ▄▄▄▄▄ ▄▄▄▄▄        ▄▄▄   ▄▄▄     ▄█▄▀ ▀▄█▄▀ ▀
//	      ███   ███      █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	   ███   ███         ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
//
// Micro QR masks 0-3 are QR masks 1, 4, 6 and 7.
var maskFunc = [8]func(x, y int) bool{
	func(x, y int) bool { return (x+y)&1 == 0 },
	func(x, y int) bool { return y&1 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (y/2+x/3)&1 == 0 },
	func(x, y int) bool { return (x*y)&1+(x*y)%3 == 0 },
	func(x, y int) bool { return ((x*y)&1+(x*y)%3)&1 == 0 },
	func(x, y int) bool { return ((x*y)%3+(x+y)&1)&1 == 0 },
}

// Masks returns the number of masks for version v.
func Masks(v Version) int {
	if v.IsMicro() {
		return 4
	}
	return 8
}

// Mask applies mask to the data modules of f and writes the format
// information for level l.
func (f *Frame) Mask(l Level, mask int) {
	w := f.Width
	mf := maskFunc[mask&7]
	if f.Version.IsMicro() {
		mf = maskFunc[[4]int{1, 4, 6, 7}[mask&3]]
	}
	for y := 0; y < w; y++ {
		row := f.Cells[y*w : (y+1)*w]
		for x := range row {
			if !row[x].Kind.Reserved() && mf(x, y) {
				row[x].Dark = !row[x].Dark
			}
		}
	}
	if f.Version.IsMicro() {
		f.writeMicroFormat(MicroFormatInfo(f.Version, l, mask))
	} else {
		f.writeFormat(FormatInfo(l, mask))
	}
}

// writeFormat writes the two copies of the 15 bit format word,
// least significant bit first.
func (f *Frame) writeFormat(fb uint16) {
	w := f.Width
	for i := 0; i < 8; i++ {
		d := fb&1 != 0
		f.set(w-1-i, 8, d, KindFormat)
		if i < 6 {
			f.set(8, i, d, KindFormat)
		} else {
			f.set(8, i+1, d, KindFormat)
		}
		fb >>= 1
	}
	for i := 0; i < 7; i++ {
		d := fb&1 != 0
		f.set(8, w-7+i, d, KindFormat)
		if i == 0 {
			f.set(7, 8, d, KindFormat)
		} else {
			f.set(6-i, 8, d, KindFormat)
		}
		fb >>= 1
	}
}

// writeMicroFormat writes the Micro QR format word, least
// significant bit first.
func (f *Frame) writeMicroFormat(fb uint16) {
	for i := 0; i < 8; i++ {
		f.set(8, i+1, fb&1 != 0, KindFormat)
		fb >>= 1
	}
	for i := 0; i < 7; i++ {
		f.set(7-i, 8, fb&1 != 0, KindFormat)
		fb >>= 1
	}
}

// Penalty returns the penalty value for a QR code, or the negative
// evaluation score for a Micro QR code.  The value is used for
// choosing the mask: lower is better.
func (f *Frame) Penalty() int {
	w := f.Width
	cells := f.Cells

	if f.Version.IsMicro() {
		// Micro QR code evaluation score: min(v,h)*16+max(v,h)
		//   v = number of dark modules in right side edge
		//   h = number of dark modules in lower side edge
		// v and h exclude timing modules.
		var v, h int
		for i := 1; i < w; i++ {
			if cells[(w-1)*w+i].Dark {
				h++
			}
			if cells[i*w+w-1].Dark {
				v++
			}
		}
		if h > v {
			h, v = v, h
		}
		return -(h<<4 + v)
	}

	// Total penalty is the sum of penalties for runs and boxes
	// of same-colour modules, finder-like patterns and colour
	// balance.
	//
	//   - N1: for runs of n modules, n>=5 -> n-2
	//   - N2: for possibly overlapping 2x2 boxes -> 3
	//   - N3: for 1:1:3:1:1 dark:light:dark:light:dark runs with
	//     a light run of 4 on either side -> 40
	//   - N4: for every full 5% of deviation from 50% dark -> 10
	const (
		N1 = 3
		N2 = 3
		N3 = 40
		N4 = 10
	)

	p := 0
	dark := 0
	for _, c := range cells {
		if c.Dark {
			dark++
		}
	}
	sq := w * w
	ratio := (200*dark + sq) / sq / 2
	p += abs(ratio-50) / 5 * N4

	for y := 1; y < w; y++ {
		for x := 1; x < w; x++ {
			c := cells[y*w+x].Dark
			if c == cells[y*w+x-1].Dark && c == cells[(y-1)*w+x].Dark &&
				c == cells[(y-1)*w+x-1].Dark {
				p += N2
			}
		}
	}

	runs := make([]int, w+1)
	for y := 0; y < w; y++ {
		n := runLength(runs, w, func(i int) bool { return cells[y*w+i].Dark })
		p += runPenalty(runs[:n], N1, N3)
	}
	for x := 0; x < w; x++ {
		n := runLength(runs, w, func(i int) bool { return cells[i*w+x].Dark })
		p += runPenalty(runs[:n], N1, N3)
	}
	return p
}

// runLength stores the lengths of same-colour runs of a line of w
// modules in runs and returns their number.  Runs alternate light,
// dark, starting with light; a line starting with a dark module gets
// a -1 placeholder light run.
func runLength(runs []int, w int, dark func(int) bool) int {
	head := 0
	if dark(0) {
		runs[0] = -1
		head = 1
	}
	runs[head] = 1
	prev := dark(0)
	for i := 1; i < w; i++ {
		if d := dark(i); d != prev {
			head++
			runs[head] = 1
			prev = d
		} else {
			runs[head]++
		}
	}
	return head + 1
}

// runPenalty returns the N1 and N3 penalties of a line.
func runPenalty(runs []int, n1, n3 int) int {
	p := 0
	n := len(runs)
	for i, r := range runs {
		if r >= 5 {
			p += n1 + r - 5
		}
		if i&1 == 0 || i < 3 || i >= n-2 || r%3 != 0 {
			continue
		}
		fact := r / 3
		if runs[i-2] != fact || runs[i-1] != fact ||
			runs[i+1] != fact || runs[i+2] != fact {
			continue
		}
		if i == 3 || runs[i-3] >= 4*fact {
			p += n3
		} else if i+4 >= n || runs[i+3] >= 4*fact {
			p += n3
		}
	}
	return p
}
