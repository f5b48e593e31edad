// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/unixdj/qrencode/gf256"
)

// An Option configures an Encoder.
type Option func(*Encoder) error

// WithLogger sets the logger.  Encoders log chosen versions, masks
// and structured append splits at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(e *Encoder) error {
		if log == nil {
			log = zap.NewNop()
		}
		e.log = log
		return nil
	}
}

// WithCodec sets the Reed-Solomon codec computing check codewords.
// The codec must be over the QR field.
func WithCodec(c *gf256.Codec) Option {
	return func(e *Encoder) error {
		if c == nil {
			return fmt.Errorf("%w: nil codec", ErrInvalidArgument)
		}
		e.codec = c
		return nil
	}
}

// WithConcurrency limits the number of structured append symbols
// encoded in parallel.
func WithConcurrency(n int) Option {
	return func(e *Encoder) error {
		if n < 1 {
			return fmt.Errorf("%w: concurrency %d", ErrInvalidArgument, n)
		}
		e.conc = n
		return nil
	}
}

// WithMask forces every symbol to use the given mask instead of the
// one with the lowest penalty.  A negative mask restores automatic
// selection.  Micro QR codes have masks 0-3, QR codes 0-7.
func WithMask(mask int) Option {
	return func(e *Encoder) error {
		if mask > 7 {
			return fmt.Errorf("%w: mask %d", ErrInvalidArgument, mask)
		}
		e.mask = max(mask, -1)
		return nil
	}
}
