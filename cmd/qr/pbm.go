// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"io"
	"strconv"

	qr "github.com/unixdj/qrencode"
)

// quietZone returns the quiet zone width for sym.
func (s *settings) quietZone(sym *qr.Symbol) int {
	if s.border < 0 {
		return sym.QuietZone()
	}
	return s.border
}

// writePBM writes a raw Portable Bit Map image of sym to w, for use
// with netpbm.
func writePBM(w io.Writer, sym *qr.Symbol, s *settings) error {
	b := bufio.NewWriter(w)
	bord := s.quietZone(sym)
	scale := s.scale
	length := scale * (sym.Width + bord*2)
	ls := strconv.Itoa(length)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}
	row := make([]byte, (length+7)/8)
	for y := -bord; y < sym.Width+bord; y++ {
		pbmRow(row, sym, y, bord, scale, s.reverse)
		for i := 0; i < scale; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
	}
	return b.Flush()
}

// pbmRow packs module row y of sym, with bord modules of quiet zone on
// each side, into row at scale bits per module.  Set bits are black.
func pbmRow(row []byte, sym *qr.Symbol, y, bord, scale int, rev bool) {
	clear(row)
	n := (sym.Width + bord*2) * scale
	for i := 0; i < n; i++ {
		if sym.Dark(i/scale-bord, y) != rev {
			row[i>>3] |= 0x80 >> (i & 7)
		}
	}
}
