// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Tables from JIS X0510:2004, indexed by Version.

// capacity lists modules on a side, total codewords, remainder bits
// and check codewords per level.  For Micro QR levels not available
// in the version the check count equals the total, leaving no data.
var capacity = [M4 + 1]struct {
	width     int
	words     int
	remainder int
	ec        [4]int
}{
	{0, 0, 0, [4]int{0, 0, 0, 0}},
	{21, 26, 0, [4]int{7, 10, 13, 17}}, // 1
	{25, 44, 7, [4]int{10, 16, 22, 28}},
	{29, 70, 7, [4]int{15, 26, 36, 44}},
	{33, 100, 7, [4]int{20, 36, 52, 64}},
	{37, 134, 7, [4]int{26, 48, 72, 88}}, // 5
	{41, 172, 7, [4]int{36, 64, 96, 112}},
	{45, 196, 0, [4]int{40, 72, 108, 130}},
	{49, 242, 0, [4]int{48, 88, 132, 156}},
	{53, 292, 0, [4]int{60, 110, 160, 192}},
	{57, 346, 0, [4]int{72, 130, 192, 224}}, // 10
	{61, 404, 0, [4]int{80, 150, 224, 264}},
	{65, 466, 0, [4]int{96, 176, 260, 308}},
	{69, 532, 0, [4]int{104, 198, 288, 352}},
	{73, 581, 3, [4]int{120, 216, 320, 384}},
	{77, 655, 3, [4]int{132, 240, 360, 432}}, // 15
	{81, 733, 3, [4]int{144, 280, 408, 480}},
	{85, 815, 3, [4]int{168, 308, 448, 532}},
	{89, 901, 3, [4]int{180, 338, 504, 588}},
	{93, 991, 3, [4]int{196, 364, 546, 650}},
	{97, 1085, 3, [4]int{224, 416, 600, 700}}, // 20
	{101, 1156, 4, [4]int{224, 442, 644, 750}},
	{105, 1258, 4, [4]int{252, 476, 690, 816}},
	{109, 1364, 4, [4]int{270, 504, 750, 900}},
	{113, 1474, 4, [4]int{300, 560, 810, 960}},
	{117, 1588, 4, [4]int{312, 588, 870, 1050}}, // 25
	{121, 1706, 4, [4]int{336, 644, 952, 1110}},
	{125, 1828, 4, [4]int{360, 700, 1020, 1200}},
	{129, 1921, 3, [4]int{390, 728, 1050, 1260}},
	{133, 2051, 3, [4]int{420, 784, 1140, 1350}},
	{137, 2185, 3, [4]int{450, 812, 1200, 1440}}, // 30
	{141, 2323, 3, [4]int{480, 868, 1290, 1530}},
	{145, 2465, 3, [4]int{510, 924, 1350, 1620}},
	{149, 2611, 3, [4]int{540, 980, 1440, 1710}},
	{153, 2761, 3, [4]int{570, 1036, 1530, 1800}},
	{157, 2876, 0, [4]int{570, 1064, 1590, 1890}}, // 35
	{161, 3034, 0, [4]int{600, 1120, 1680, 1980}},
	{165, 3196, 0, [4]int{630, 1204, 1770, 2100}},
	{169, 3362, 0, [4]int{660, 1260, 1860, 2220}},
	{173, 3532, 0, [4]int{720, 1316, 1950, 2310}},
	{177, 3706, 0, [4]int{750, 1372, 2040, 2430}}, // 40
	{11, 5, 0, [4]int{2, 5, 5, 5}},                // M1
	{13, 10, 0, [4]int{5, 6, 10, 10}},             // M2
	{15, 17, 0, [4]int{6, 8, 17, 17}},             // M3
	{17, 24, 0, [4]int{8, 10, 14, 24}},            // M4
}

// eccTable lists the number of blocks of the two block sizes.
var eccTable = [MaxVersion + 1][4][2]int{
	{{0, 0}, {0, 0}, {0, 0}, {0, 0}},
	{{1, 0}, {1, 0}, {1, 0}, {1, 0}}, // 1
	{{1, 0}, {1, 0}, {1, 0}, {1, 0}},
	{{1, 0}, {1, 0}, {2, 0}, {2, 0}},
	{{1, 0}, {2, 0}, {2, 0}, {4, 0}},
	{{1, 0}, {2, 0}, {2, 2}, {2, 2}}, // 5
	{{2, 0}, {4, 0}, {4, 0}, {4, 0}},
	{{2, 0}, {4, 0}, {2, 4}, {4, 1}},
	{{2, 0}, {2, 2}, {4, 2}, {4, 2}},
	{{2, 0}, {3, 2}, {4, 4}, {4, 4}},
	{{2, 2}, {4, 1}, {6, 2}, {6, 2}}, // 10
	{{4, 0}, {1, 4}, {4, 4}, {3, 8}},
	{{2, 2}, {6, 2}, {4, 6}, {7, 4}},
	{{4, 0}, {8, 1}, {8, 4}, {12, 4}},
	{{3, 1}, {4, 5}, {11, 5}, {11, 5}},
	{{5, 1}, {5, 5}, {5, 7}, {11, 7}}, // 15
	{{5, 1}, {7, 3}, {15, 2}, {3, 13}},
	{{1, 5}, {10, 1}, {1, 15}, {2, 17}},
	{{5, 1}, {9, 4}, {17, 1}, {2, 19}},
	{{3, 4}, {3, 11}, {17, 4}, {9, 16}},
	{{3, 5}, {3, 13}, {15, 5}, {15, 10}}, // 20
	{{4, 4}, {17, 0}, {17, 6}, {19, 6}},
	{{2, 7}, {17, 0}, {7, 16}, {34, 0}},
	{{4, 5}, {4, 14}, {11, 14}, {16, 14}},
	{{6, 4}, {6, 14}, {11, 16}, {30, 2}},
	{{8, 4}, {8, 13}, {7, 22}, {22, 13}}, // 25
	{{10, 2}, {19, 4}, {28, 6}, {33, 4}},
	{{8, 4}, {22, 3}, {8, 26}, {12, 28}},
	{{3, 10}, {3, 23}, {4, 31}, {11, 31}},
	{{7, 7}, {21, 7}, {1, 37}, {19, 26}},
	{{5, 10}, {19, 10}, {15, 25}, {23, 25}}, // 30
	{{13, 3}, {2, 29}, {42, 1}, {23, 28}},
	{{17, 0}, {10, 23}, {10, 35}, {19, 35}},
	{{17, 1}, {14, 21}, {29, 19}, {11, 46}},
	{{13, 6}, {14, 23}, {44, 7}, {59, 1}},
	{{12, 7}, {12, 26}, {39, 14}, {22, 41}}, // 35
	{{6, 14}, {6, 34}, {46, 10}, {2, 64}},
	{{17, 4}, {29, 14}, {49, 10}, {24, 46}},
	{{4, 18}, {13, 32}, {48, 14}, {42, 32}},
	{{20, 4}, {40, 7}, {43, 22}, {10, 67}},
	{{19, 6}, {18, 31}, {34, 34}, {20, 61}}, // 40
}

// align lists the first two alignment pattern centres after the one
// in the timing pattern.  The rest follow at the same distance.
var align = [MaxVersion + 1][2]int{
	{0, 0},
	{0, 0}, {18, 0}, {22, 0}, {26, 0}, {30, 0}, //  1- 5
	{34, 0}, {22, 38}, {24, 42}, {26, 46}, {28, 50}, //  6-10
	{30, 54}, {32, 58}, {34, 62}, {26, 46}, {26, 48}, // 11-15
	{26, 50}, {30, 54}, {30, 56}, {30, 58}, {34, 62}, // 16-20
	{28, 50}, {26, 50}, {30, 54}, {28, 54}, {32, 58}, // 21-25
	{30, 58}, {34, 62}, {26, 50}, {30, 54}, {26, 52}, // 26-30
	{30, 56}, {34, 60}, {30, 58}, {34, 62}, {30, 54}, // 31-35
	{24, 50}, {28, 54}, {32, 58}, {26, 54}, {30, 58}, // 36-40
}

func (v Version) index() int {
	if !v.IsValid() {
		return 0
	}
	return int(v)
}

// Words returns the total number of codewords, data and check, in a
// code of version v.
func (v Version) Words() int { return capacity[v.index()].words }

// Remainder returns the number of remainder bits in a code of
// version v.
func (v Version) Remainder() int { return capacity[v.index()].remainder }

// ECCBytes returns the number of check codewords for version v and
// level l.
func (v Version) ECCBytes(l Level) int {
	if l < L || l > H {
		return 0
	}
	return capacity[v.index()].ec[l]
}

// DataBytes returns the number of data codewords for version v and
// level l, counting a Micro QR half codeword as a whole one.
func (v Version) DataBytes(l Level) int {
	if l < L || l > H {
		return 0
	}
	c := &capacity[v.index()]
	return c.words - c.ec[l]
}

// DataBits returns the number of data bits that can be
// stored in a QR code with the given version and level.
func (v Version) DataBits(l Level) int {
	n := v.DataBytes(l) * 8
	if v >= M1 && n != 0 {
		n -= int(v) & 1 << 2
	}
	return n
}

// HasLevel reports whether level l is available in version v.
func (v Version) HasLevel(l Level) bool {
	return v.IsValid() && v.DataBytes(l) > 0
}

// Blocks describes the error correction block structure: B1 blocks
// of D1 data codewords followed by B2 blocks of D2 = D1+1 data
// codewords, every block with ECC check codewords.
type Blocks struct {
	B1, D1 int
	ECC    int
	B2, D2 int
}

// Count returns the total number of blocks.
func (b Blocks) Count() int { return b.B1 + b.B2 }

// BlockSpec returns the block structure for version v and level l.
// Micro QR codes have a single block.
func (v Version) BlockSpec(l Level) Blocks {
	data, ecc := v.DataBytes(l), v.ECCBytes(l)
	if v.IsMicro() || data == 0 {
		return Blocks{B1: 1, D1: data, ECC: ecc}
	}
	b1, b2 := eccTable[v][l][0], eccTable[v][l][1]
	if b2 == 0 {
		return Blocks{B1: b1, D1: data / b1, ECC: ecc / b1}
	}
	n := b1 + b2
	return Blocks{B1: b1, D1: data / n, ECC: ecc / n, B2: b2, D2: data/n + 1}
}

// AlignmentPositions returns the row and column coordinates of
// alignment pattern centres, including the one in the timing
// pattern, or nil if v has none.
func (v Version) AlignmentPositions() []int {
	if v < 2 || v > MaxVersion {
		return nil
	}
	a0, a1 := align[v][0], align[v][1]
	if a1 == 0 {
		return []int{6, a0}
	}
	d := a1 - a0
	n := (v.Width()-a0)/d + 1
	p := make([]int, 1, n+1)
	p[0] = 6
	for i := 0; i < n; i++ {
		p = append(p, a0+i*d)
	}
	return p
}

// MinimumVersion returns the smallest QR version with at least n data
// codewords at level l.  If none is large enough, it returns
// MaxVersion.
func MinimumVersion(n int, l Level) Version {
	for v := MinVersion; v <= MaxVersion; v++ {
		if v.DataBytes(l) >= n {
			return v
		}
	}
	return MaxVersion
}
