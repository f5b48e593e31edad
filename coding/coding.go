// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR and Micro QR coding details:
// symbol tables, segment encoding, bit stream assembly, error
// correction, module placement and masking.
package coding // import "github.com/unixdj/qrencode/coding"

import (
	"errors"
	"fmt"
	"strconv"
)

// Error classes.  Every error returned by the package wraps one of
// them.
var (
	ErrInvalid  = errors.New("qr: invalid argument")
	ErrCapacity = errors.New("qr: data too large")
)

// argError is an ErrInvalid with a description.
type argError string

func (e argError) Error() string { return "qr: invalid " + string(e) }
func (e argError) Unwrap() error { return ErrInvalid }

var (
	ErrLevel   error = argError("level")
	ErrVersion error = argError("version")
	ErrMode    error = argError("mode")
	ErrECI     error = argError("eci number")
	ErrHeader  error = argError("structured append header")
	ErrMicro   error = argError("operation for micro qr code")
	ErrEmpty   error = argError("empty data")
)

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 pixels on a side,
// a Micro QR code with version Mv 2v+9 pixels.
// Versions run in two sequences, from M1 to M4 and from 1 to 40:
// the larger the version, the more information the code can store.
// Version 0 lets the encoder pick the smallest fitting QR version.
type Version int

// Code versions.
const (
	// Micro QR versions
	M1 Version = MaxVersion + 1 + iota
	M2
	M3
	M4

	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string {
	switch {
	case v == 0:
		return "auto"
	case v >= M1 && v <= M4:
		return []string{"M1", "M2", "M3", "M4"}[v-M1]
	}
	return strconv.Itoa(int(v))
}

// IsMicro reports whether v is a Micro QR version.
func (v Version) IsMicro() bool { return v >= M1 && v <= M4 }

// IsValid reports whether v is a QR or Micro QR version.
func (v Version) IsValid() bool { return v >= MinVersion && v <= M4 }

// Micro QR and QR version size classes.
const (
	ClassM1 = iota // Micro QR version M1
	ClassM2        // Micro QR version M2
	ClassM3        // Micro QR version M3
	ClassM4        // Micro QR version M4
	Class0         // QR versions 1 to 9
	Class1         // QR versions 10 to 26
	Class2         // QR versions 27 to 40
)

// SizeClass returns the size class of v, as documented under ClassM1.
// Version 0 belongs to Class0.
func (v Version) SizeClass() int {
	if v <= 9 {
		return Class0
	}
	if v <= 26 {
		return Class1
	}
	if v <= 40 {
		return Class2
	}
	return int(v - M1)
}

// Width returns the number of modules on a side.
func (v Version) Width() int {
	if v.IsMicro() {
		return int(v-M1)*2 + 11
	}
	return int(v)*4 + 17
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 7% of codewords can be restored
	M              // 15%
	Q              // 25%
	H              // 30%
)

func (l Level) String() string {
	if L <= l && l <= H {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// ParseLevel returns the Level named by s.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "L", "l":
		return L, nil
	case "M", "m":
		return M, nil
	case "Q", "q":
		return Q, nil
	case "H", "h":
		return H, nil
	}
	return 0, fmt.Errorf("%w %q", ErrLevel, s)
}

// SegmentError represents data not encodable in a Mode.
type SegmentError struct {
	Mode Mode
	Data []byte
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("qr: non-%s data %#q", e.Mode, e.Data)
}

func (e *SegmentError) Unwrap() error { return ErrInvalid }

// LevelError represents an error correction level not available in
// a Micro QR version.
type LevelError struct {
	Version Version
	Level   Level
}

func (e *LevelError) Error() string {
	return fmt.Sprintf("qr: level %s not available in version %s",
		e.Level, e.Version)
}

func (e *LevelError) Unwrap() error { return ErrInvalid }

// CompatError represents an incompatibility between Mode and Version.
// A larger Micro QR version may accept the Mode.
type CompatError struct {
	Mode
	Version
}

func (e *CompatError) Error() string {
	return fmt.Sprintf("qr: mode %s not encodable in version %s",
		e.Mode, e.Version)
}

func (e *CompatError) Unwrap() error { return ErrCapacity }

// CapacityError represents a bit stream too long for a version.
type CapacityError struct {
	Version Version
	Level   Level
	Bits    int // length of the bit stream
	Max     int // data capacity
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("qr: cannot encode %d bits into %d-bit code %s-%s",
		e.Bits, e.Max, e.Version, e.Level)
}

func (e *CapacityError) Unwrap() error { return ErrCapacity }
