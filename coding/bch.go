// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// BCH(15,5) and BCH(18,6) codes for format and version information.

// calcFormat returns fb with the 10 bit BCH remainder appended.
// The data bits must be in bits 10-14.
func calcFormat(fb uint16) uint16 {
	const formatPoly = 0x537
	rem := fb
	for i := 4; i >= 0; i-- {
		if rem&((1<<10)<<i) != 0 {
			rem ^= formatPoly << i
		}
	}
	return fb | rem
}

// calcVersion returns the 18 bit version information word for v.
func calcVersion(v int) uint32 {
	const versionPoly = 0x1f25
	rem := uint32(v) << 12
	for i := 5; i >= 0; i-- {
		if rem&((1<<12)<<i) != 0 {
			rem ^= versionPoly << i
		}
	}
	return uint32(v)<<12 | rem
}

var (
	ftab  [4][8]uint16 // QR format words by level and mask
	mftab [8][4]uint16 // Micro QR format words by symbol number and mask
	vtab  [MaxVersion + 1]uint32
)

func init() {
	for l := range ftab {
		for m := range ftab[l] {
			fb := uint16(l^1) << 13 // L=01, M=00, Q=11, H=10
			fb |= uint16(m) << 10
			ftab[l][m] = calcFormat(fb) ^ 0x5412
		}
	}
	for i := range mftab {
		for m := range mftab[i] {
			fb := uint16(i)<<12 | uint16(m)<<10
			mftab[i][m] = calcFormat(fb) ^ 0x4445
		}
	}
	for v := 7; v <= int(MaxVersion); v++ {
		vtab[v] = calcVersion(v)
	}
}

// FormatInfo returns the 15 bit format information word for a QR
// code with level l and mask.
func FormatInfo(l Level, mask int) uint16 {
	return ftab[l][mask&7]
}

// microSymbol returns the Micro QR symbol number for v and l, or -1.
func microSymbol(v Version, l Level) int {
	if !v.IsMicro() || !v.HasLevel(l) {
		return -1
	}
	return max(int(v-M1)*2-1, 0) + int(l)
}

// MicroFormatInfo returns the 15 bit format information word for a
// Micro QR code with version v, level l and mask, or 0 if the level
// is not available in the version.
func MicroFormatInfo(v Version, l Level, mask int) uint16 {
	i := microSymbol(v, l)
	if i < 0 {
		return 0
	}
	return mftab[i][mask&3]
}

// VersionPattern returns the 18 bit version information word for v,
// or 0 for versions below 7.
func VersionPattern(v Version) uint32 {
	if v < 7 || v > MaxVersion {
		return 0
	}
	return vtab[v]
}
