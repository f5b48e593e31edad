// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "bytes"

// MaxStructured is the maximum number of structured append symbols.
const MaxStructured = 16

// An Input is an ordered list of segments to be encoded in one code,
// with the code's version and error correction level.
//
// The version of a QR code Input is a lower bound: the encoder picks
// the smallest version at least as large that fits the data, and
// records it.  The version of a Micro QR code Input is fixed.
type Input struct {
	segs    []Segment
	version Version
	level   Level
	micro   bool
	fnc1    Segment // FNC1First or FNC1Second if set
}

// NewInput returns an empty QR code Input.  Version 0 selects the
// smallest fitting version.
func NewInput(v Version, l Level) (*Input, error) {
	if v < 0 || v > MaxVersion {
		return nil, ErrVersion
	}
	if l < L || l > H {
		return nil, ErrLevel
	}
	return &Input{version: v, level: l}, nil
}

// NewMicroInput returns an empty Micro QR code Input.
func NewMicroInput(v Version, l Level) (*Input, error) {
	if err := checkMicro(v, l); err != nil {
		return nil, err
	}
	return &Input{version: v, level: l, micro: true}, nil
}

func checkMicro(v Version, l Level) error {
	switch {
	case !v.IsMicro():
		return ErrVersion
	case l < L || l > H:
		return ErrLevel
	case !v.HasLevel(l):
		return &LevelError{v, l}
	}
	return nil
}

// Version returns the version of in.  For QR codes it's the version
// resolved by the last successful encoding, or the requested one.
func (in *Input) Version() Version { return in.version }

// Level returns the error correction level of in.
func (in *Input) Level() Level { return in.level }

// IsMicro reports whether in is a Micro QR code Input.
func (in *Input) IsMicro() bool { return in.micro }

// Len returns the number of segments in in.
func (in *Input) Len() int { return len(in.segs) }

// Segments returns a copy of the segment list.  FNC1 is not included.
func (in *Input) Segments() []Segment {
	return append([]Segment(nil), in.segs...)
}

// FNC1 returns the FNC1 segment and whether it is set.
func (in *Input) FNC1() (Segment, bool) {
	return in.fnc1, in.fnc1.Mode == FNC1First || in.fnc1.Mode == FNC1Second
}

// SetVersion sets the version of a QR code Input.
func (in *Input) SetVersion(v Version) error {
	if in.micro {
		return ErrMicro
	}
	if v < 0 || v > MaxVersion {
		return ErrVersion
	}
	in.version = v
	return nil
}

// SetLevel sets the error correction level of a QR code Input.
func (in *Input) SetLevel(l Level) error {
	if in.micro {
		return ErrMicro
	}
	if l < L || l > H {
		return ErrLevel
	}
	in.level = l
	return nil
}

// SetVersionAndLevel sets both the version and the error correction
// level, validating the combination for the Input's symbology.
func (in *Input) SetVersionAndLevel(v Version, l Level) error {
	if in.micro {
		if err := checkMicro(v, l); err != nil {
			return err
		}
	} else {
		if v < 0 || v > MaxVersion {
			return ErrVersion
		}
		if l < L || l > H {
			return ErrLevel
		}
	}
	in.version, in.level = v, l
	return nil
}

// Append appends a copy of data as a segment of the data mode.
func (in *Input) Append(mode Mode, data []byte) error {
	if !mode.IsData() {
		return ErrMode
	}
	return in.AppendSegment(Segment{Mode: mode, Data: bytes.Clone(data)})
}

// AppendECI appends an ECI header with assignment number n.
func (in *Input) AppendECI(n uint32) error {
	return in.AppendSegment(Segment{Mode: ECI, ECI: n})
}

// AppendStructuredHeader sets the structured append header, placed
// before all other segments: symbol index of count, both 1-based,
// and parity.
func (in *Input) AppendStructuredHeader(count, index int, parity byte) error {
	if count < 1 || count > MaxStructured || index < 1 || index > count {
		return ErrHeader
	}
	return in.AppendSegment(Segment{
		Mode: StructuredAppend,
		Data: []byte{byte(count), byte(index), parity},
	})
}

// SetFNC1First marks the data as formatted per GS1.
func (in *Input) SetFNC1First() error {
	return in.AppendSegment(Segment{Mode: FNC1First})
}

// SetFNC1Second marks the data as formatted per an industry
// application identified by appID.
func (in *Input) SetFNC1Second(appID byte) error {
	return in.AppendSegment(Segment{Mode: FNC1Second, Data: []byte{appID}})
}

// AppendSegment validates seg and adds it to in.  Structured append
// headers replace any previous one at the front; FNC1 segments set
// the FNC1 mode.  Header segments are rejected for Micro QR.
// seg.Data is not copied.
func (in *Input) AppendSegment(seg Segment) error {
	if err := seg.check(); err != nil {
		return err
	}
	if in.micro && !seg.Mode.IsData() {
		return ErrMicro
	}
	switch seg.Mode {
	case StructuredAppend:
		if len(in.segs) != 0 && in.segs[0].Mode == StructuredAppend {
			in.segs[0] = seg
		} else {
			in.segs = append([]Segment{seg}, in.segs...)
		}
	case FNC1First, FNC1Second:
		in.fnc1 = seg
	default:
		in.segs = append(in.segs, seg)
	}
	return nil
}

// Clone returns a copy of in.  Segment data is shared.
func (in *Input) Clone() *Input {
	c := *in
	c.segs = in.Segments()
	return &c
}

// Parity returns the xor of all data segment bytes.
func (in *Input) Parity() byte {
	var par byte
	for _, seg := range in.segs {
		par ^= seg.Parity()
	}
	return par
}

// list returns the segments to encode, with FNC1 inserted after a
// leading structured append or ECI header.
func (in *Input) list() []Segment {
	if _, ok := in.FNC1(); !ok {
		return in.segs
	}
	i := 0
	if len(in.segs) != 0 {
		if m := in.segs[0].Mode; m == StructuredAppend || m == ECI {
			i = 1
		}
	}
	segs := make([]Segment, 0, len(in.segs)+1)
	segs = append(segs, in.segs[:i]...)
	segs = append(segs, in.fnc1)
	return append(segs, in.segs[i:]...)
}

// EstimateBits returns an estimate of the encoded length of in at
// version v.
func (in *Input) EstimateBits(v Version) int {
	n := 0
	for _, seg := range in.list() {
		n += seg.EstimateBits(v)
	}
	return n
}

// EstimateVersion returns the estimated minimum QR version for in.
// The character count field lengths depend on the version, so the
// estimate is iterated until it stops growing.  For Micro QR it
// returns the Input's version.
func (in *Input) EstimateVersion() Version {
	if in.micro {
		return in.version
	}
	var v, prev Version
	for {
		prev = v
		v = MinimumVersion((in.EstimateBits(prev)+7)/8, in.level)
		if v <= prev {
			return v
		}
	}
}

func (in *Input) createBitStream(v Version) (*BitStream, error) {
	b := NewBitStream(v.DataBytes(in.level))
	for _, seg := range in.list() {
		if err := seg.Encode(b, v); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// BitStream returns the encoded and padded bit stream.  For QR codes
// the version grows until the data fits and is recorded in in.
func (in *Input) BitStream() (*BitStream, error) {
	if len(in.segs) == 0 {
		return nil, ErrEmpty
	}
	if in.micro {
		b, err := in.createBitStream(in.version)
		if err != nil {
			return nil, err
		}
		if err := padMicro(b, in.version, in.level); err != nil {
			return nil, err
		}
		return b, nil
	}
	v := max(in.version, in.EstimateVersion())
	for {
		b, err := in.createBitStream(v)
		if err != nil {
			return nil, err
		}
		if nv := MinimumVersion((b.Len()+7)/8, in.level); nv > v {
			v = nv
			continue
		}
		if err := pad(b, v, in.level); err != nil {
			return nil, err
		}
		in.version = v
		return b, nil
	}
}

// Bytes returns the encoded and padded data codewords.  For Micro QR
// versions M1 and M3 the last codeword holds 4 bits in its high
// nibble.
func (in *Input) Bytes() ([]byte, error) {
	b, err := in.BitStream()
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// pad appends the terminator and pad codewords to fill a QR code.
func pad(b *BitStream, v Version, l Level) error {
	maxbits := v.DataBytes(l) * 8
	bits := b.Len()
	switch {
	case bits > maxbits:
		return &CapacityError{v, l, bits, maxbits}
	case maxbits-bits <= 4:
		b.AppendZeros(maxbits - bits)
		return nil
	}
	words := (bits + 4 + 7) / 8
	b.AppendZeros(words*8 - bits)
	padWords(b, maxbits/8-words)
	return nil
}

// padMicro appends the terminator and pad codewords to fill a Micro
// QR code.  The terminator is 2v+1 bits long; a final half codeword
// is zero filled.
func padMicro(b *BitStream, v Version, l Level) error {
	maxbits := v.DataBits(l)
	maxwords := maxbits / 8
	bits := b.Len()
	term := int(v-M1+1)*2 + 1
	switch {
	case bits > maxbits:
		return &CapacityError{v, l, bits, maxbits}
	case maxbits-bits <= term:
		b.AppendZeros(maxbits - bits)
		return nil
	}
	words := (bits + term + 7) / 8
	if words >= maxwords {
		b.AppendZeros(maxbits - bits)
		return nil
	}
	b.AppendZeros(words*8 - bits)
	padWords(b, maxwords-words)
	b.AppendZeros(maxbits - maxwords*8)
	return nil
}

// padWords appends n pad codewords 0xec, 0x11, 0xec...
func padWords(b *BitStream, n int) {
	for i := 0; i < n; i++ {
		b.AppendBits(uint32(0xec^0xfd*(i&1)), 8)
	}
}
