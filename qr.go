// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes QR codes and Micro QR codes.

Text is split into segments of the most compact modes, encoded at the
requested error correction level into the smallest fitting version,
and masked with the pattern of the lowest penalty.  Data too large for
one symbol can be spread over up to 16 structured append symbols,
which are encoded in parallel.

Lower level control over segments, versions and masks is available
in the coding and split packages.
*/
package qr // import "github.com/unixdj/qrencode"

import (
	"errors"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/unixdj/qrencode/coding"
	"github.com/unixdj/qrencode/gf256"
	"github.com/unixdj/qrencode/split"
)

// Error classes.  Every error returned by the package wraps one of
// them.
var (
	ErrInvalidArgument  = coding.ErrInvalid
	ErrCapacityExceeded = coding.ErrCapacity
)

type (
	// A Version denotes a QR or Micro QR version.
	Version = coding.Version
	// A Level denotes an error correction level.
	// From least to most tolerant of errors, they are L, M, Q, H.
	Level = coding.Level
)

// Error correction levels.
const (
	L = coding.L // 7% of codewords can be restored
	M = coding.M // 15%
	Q = coding.Q // 25%
	H = coding.H // 30%
)

// Micro QR versions.
const (
	M1 = coding.M1
	M2 = coding.M2
	M3 = coding.M3
	M4 = coding.M4
)

// A Symbol is an encoded QR or Micro QR code, a square of Width×Width
// modules.
type Symbol struct {
	Version Version
	Level   Level
	Mask    int
	Width   int

	// Modules holds the modules row by row.  Bit 0 of each byte
	// is set for a dark module; bits 1-4 hold the coding.Kind.
	Modules []byte
}

func newSymbol(c *coding.Code) *Symbol {
	return &Symbol{
		Version: c.Version,
		Level:   c.Level,
		Mask:    c.Mask,
		Width:   c.Width,
		Modules: c.Modules,
	}
}

// Dark reports whether the module at column x, row y is dark.
// Coordinates outside the symbol are light.
func (s *Symbol) Dark(x, y int) bool {
	return 0 <= x && x < s.Width && 0 <= y && y < s.Width &&
		s.Modules[y*s.Width+x]&1 != 0
}

// QuietZone returns the minimum width of the light margin around the
// symbol: 4 modules for QR codes, 2 for Micro QR codes.
func (s *Symbol) QuietZone() int {
	if s.Version.IsMicro() {
		return 2
	}
	return 4
}

// String returns a preview of the symbol with its quiet zone for
// dark-on-light terminals, two rows of modules per line drawn with
// Unicode half blocks.
func (s *Symbol) String() string {
	var b strings.Builder
	q := s.QuietZone()
	for y := -q; y < s.Width+q; y += 2 {
		for x := -q; x < s.Width+q; x++ {
			b.WriteString(halfBlocks[s.pair(x, y)])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// halfBlocks is indexed by the colours of the upper and lower
// module, dark as bit 1 and 0.
var halfBlocks = [4]string{" ", "▄", "▀", "█"}

func (s *Symbol) pair(x, y int) int {
	n := 0
	if s.Dark(x, y) {
		n |= 2
	}
	if s.Dark(x, y+1) {
		n |= 1
	}
	return n
}

// An Encoder encodes symbols.  It's safe for concurrent use.
type Encoder struct {
	codec *gf256.Codec
	enc   *coding.Encoder
	log   *zap.Logger
	conc  int // structured append parallelism
	mask  int // forced mask, or -1
}

// New returns an Encoder configured with opts.
func New(opts ...Option) (*Encoder, error) {
	e := &Encoder{
		codec: gf256.Default,
		log:   zap.NewNop(),
		conc:  runtime.GOMAXPROCS(0),
		mask:  -1,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.enc = coding.NewEncoder(e.codec)
	return e, nil
}

var std, _ = New()

// Encode encodes in.  The version of a QR code Input is resolved to
// the smallest one at least as large as requested that fits the data.
func (e *Encoder) Encode(in *coding.Input) (*Symbol, error) {
	var (
		c   *coding.Code
		err error
	)
	if e.mask >= 0 {
		c, err = e.enc.EncodeMask(in, e.mask)
	} else {
		c, err = e.enc.Encode(in)
	}
	if err != nil {
		return nil, err
	}
	e.log.Debug("encoded symbol",
		zap.Stringer("version", c.Version),
		zap.Stringer("level", c.Level),
		zap.Int("segments", in.Len()),
		zap.Int("mask", c.Mask),
		zap.Int("penalty", c.Penalty))
	if e.log.Core().Enabled(zap.DebugLevel) {
		if err := e.enc.Check(in); err != nil {
			e.log.Error("check codewords", zap.Error(err))
		} else {
			e.log.Debug("check codewords verified")
		}
	}
	return newSymbol(c), nil
}

// EncodeText encodes text as a QR code of version v or larger at
// level l.  Version 0 picks the smallest fitting version.  The text is
// split into segments as by split.Text with the given hint and case
// sensitivity.
func (e *Encoder) EncodeText(text []byte, v Version, l Level, hint coding.Mode, caseSensitive bool) (*Symbol, error) {
	in, err := coding.NewInput(v, l)
	if err != nil {
		return nil, err
	}
	if err := split.Text(in, text, hint, caseSensitive); err != nil {
		return nil, err
	}
	return e.Encode(in)
}

// EncodeBytes encodes data in a single Byte mode segment as a QR
// code of version v or larger at level l.
func (e *Encoder) EncodeBytes(data []byte, v Version, l Level) (*Symbol, error) {
	in, err := coding.NewInput(v, l)
	if err != nil {
		return nil, err
	}
	if err := split.Bytes(in, data); err != nil {
		return nil, err
	}
	return e.Encode(in)
}

// EncodeTextMicro encodes text as the smallest Micro QR code of
// version v or larger that has level l and fits the text.  Version 0
// means M1.  The text is split anew for every version tried.
func (e *Encoder) EncodeTextMicro(text []byte, v Version, l Level, hint coding.Mode, caseSensitive bool) (*Symbol, error) {
	return e.encodeMicro(v, l, func(in *coding.Input) error {
		return split.Text(in, text, hint, caseSensitive)
	})
}

// EncodeBytesMicro is like EncodeTextMicro but encodes data in a single
// Byte mode segment.
func (e *Encoder) EncodeBytesMicro(data []byte, v Version, l Level) (*Symbol, error) {
	return e.encodeMicro(v, l, func(in *coding.Input) error {
		return split.Bytes(in, data)
	})
}

func (e *Encoder) encodeMicro(v Version, l Level, fill func(*coding.Input) error) (*Symbol, error) {
	if v == 0 {
		v = M1
	}
	if !v.IsMicro() {
		return nil, coding.ErrVersion
	}
	if l < L || l > H {
		return nil, coding.ErrLevel
	}
	var last error = &coding.LevelError{Version: M4, Level: l}
	for ; v <= M4; v++ {
		if !v.HasLevel(l) {
			continue
		}
		in, err := coding.NewMicroInput(v, l)
		if err != nil {
			return nil, err
		}
		if err := fill(in); err != nil {
			return nil, err
		}
		sym, err := e.Encode(in)
		if err == nil {
			return sym, nil
		}
		if !errors.Is(err, ErrCapacityExceeded) {
			return nil, err
		}
		e.log.Debug("micro version too small",
			zap.Stringer("version", v), zap.Error(err))
		last = err
	}
	return nil, last
}

// EncodeStructured splits in with split.Structured and encodes the
// parts as structured append symbols, returned in order.  The version
// of in must be set; every symbol has that version.
func (e *Encoder) EncodeStructured(in *coding.Input) ([]*Symbol, error) {
	set, err := split.Structured(in)
	if err != nil {
		return nil, err
	}
	e.log.Debug("structured append split",
		zap.Int("symbols", len(set.Inputs)),
		zap.Uint8("parity", set.Parity))

	syms := make([]*Symbol, len(set.Inputs))
	var g errgroup.Group
	g.SetLimit(e.conc)
	for i, p := range set.Inputs {
		i, p := i, p
		g.Go(func() error {
			sym, err := e.Encode(p)
			syms[i] = sym
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return syms, nil
}

// EncodeStructuredText splits text as by split.Text and encodes it in
// structured append symbols of version v at level l.
func (e *Encoder) EncodeStructuredText(text []byte, v Version, l Level, hint coding.Mode, caseSensitive bool) ([]*Symbol, error) {
	in, err := coding.NewInput(v, l)
	if err != nil {
		return nil, err
	}
	if err := split.Text(in, text, hint, caseSensitive); err != nil {
		return nil, err
	}
	return e.EncodeStructured(in)
}

// EncodeStructuredBytes encodes data in structured append symbols of
// version v at level l.
func (e *Encoder) EncodeStructuredBytes(data []byte, v Version, l Level) ([]*Symbol, error) {
	in, err := coding.NewInput(v, l)
	if err != nil {
		return nil, err
	}
	if err := split.Bytes(in, data); err != nil {
		return nil, err
	}
	return e.EncodeStructured(in)
}

// Encode encodes in with the default Encoder.
func Encode(in *coding.Input) (*Symbol, error) { return std.Encode(in) }

// EncodeText encodes text with the default Encoder.
// See Encoder.EncodeText.
func EncodeText(text []byte, v Version, l Level, hint coding.Mode, caseSensitive bool) (*Symbol, error) {
	return std.EncodeText(text, v, l, hint, caseSensitive)
}

// EncodeBytes encodes data with the default Encoder.
func EncodeBytes(data []byte, v Version, l Level) (*Symbol, error) {
	return std.EncodeBytes(data, v, l)
}

// EncodeTextMicro encodes text with the default Encoder.
// See Encoder.EncodeTextMicro.
func EncodeTextMicro(text []byte, v Version, l Level, hint coding.Mode, caseSensitive bool) (*Symbol, error) {
	return std.EncodeTextMicro(text, v, l, hint, caseSensitive)
}

// EncodeBytesMicro encodes data with the default Encoder.
func EncodeBytesMicro(data []byte, v Version, l Level) (*Symbol, error) {
	return std.EncodeBytesMicro(data, v, l)
}

// EncodeStructured encodes in with the default Encoder.
func EncodeStructured(in *coding.Input) ([]*Symbol, error) {
	return std.EncodeStructured(in)
}

// EncodeStructuredText encodes text with the default Encoder.
func EncodeStructuredText(text []byte, v Version, l Level, hint coding.Mode, caseSensitive bool) ([]*Symbol, error) {
	return std.EncodeStructuredText(text, v, l, hint, caseSensitive)
}

// EncodeStructuredBytes encodes data with the default Encoder.
func EncodeStructuredBytes(data []byte, v Version, l Level) ([]*Symbol, error) {
	return std.EncodeStructuredBytes(data, v, l)
}
