// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"io"

	qr "github.com/unixdj/qrencode"
)

// halfBlocks is indexed by the colours of the upper and lower module,
// dark as bit 1 and 0.
var halfBlocks = [4]string{" ", "▄", "▀", "█"}

// writeUTF8 draws sym with Unicode half blocks, two module rows per
// line.  Dark modules are drawn in the foreground colour unless
// colours are reversed.
func writeUTF8(w io.Writer, sym *qr.Symbol, s *settings) error {
	b := bufio.NewWriter(w)
	bord := s.quietZone(sym)
	dark := func(x, y int) int {
		if y >= sym.Width+bord || sym.Dark(x, y) == s.reverse {
			return 0
		}
		return 1
	}
	for y := -bord; y < sym.Width+bord; y += 2 {
		for x := -bord; x < sym.Width+bord; x++ {
			b.WriteString(halfBlocks[dark(x, y)<<1|dark(x, y+1)])
		}
		b.WriteByte('\n')
	}
	return b.Flush()
}

// writeASCII draws sym with two characters per module, "##" for dark
// and spaces for light.
func writeASCII(w io.Writer, sym *qr.Symbol, s *settings) error {
	bord := s.quietZone(sym)
	pix := sym.Width + 2*bord
	b := make([]byte, 0, (pix*2+1)*pix)
	for y := -bord; y < sym.Width+bord; y++ {
		for x := -bord; x < sym.Width+bord; x++ {
			if sym.Dark(x, y) != s.reverse {
				b = append(b, "##"...)
			} else {
				b = append(b, "  "...)
			}
		}
		b = append(b, '\n')
	}
	_, err := w.Write(b)
	return err
}
