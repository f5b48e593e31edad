// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"go.uber.org/zap"

	qr "github.com/unixdj/qrencode"
	"github.com/unixdj/qrencode/coding"
	"github.com/unixdj/qrencode/split"
)

// prepare converts text to the bytes to encode and picks the ECI
// designator (-1 for none) and the segmentation hint.
//
//	-k:      Shift JIS, Kanji hint, Shift JIS ECI if needed
//	-E n:    UTF-8 as is, ECI n
//	default: ISO 8859-1 if possible, otherwise UTF-8 with its ECI
func prepare(s *settings, text string) (data []byte, eci int, hint coding.Mode, err error) {
	switch {
	case s.sjis:
		data, err = split.ShiftJIS(text)
		return data, sjisECI(data), coding.Kanji, err
	case s.eci >= 0:
		return []byte(text), s.eci, coding.Byte, nil
	}
	data, n := split.Charset(text)
	eci = int(n)
	if n == 0 {
		eci = -1
	}
	return data, eci, coding.Byte, nil
}

// sjisECI returns the Shift JIS ECI designator if data has bytes
// outside ASCII that are not part of a Kanji mode character, such as
// half-width katakana, and -1 otherwise.
func sjisECI(data []byte) int {
	for i := 0; i < len(data); i++ {
		switch {
		case data[i] < 0x80:
		case i+1 < len(data) && coding.IsKanji(data[i], data[i+1]):
			i++
		default:
			return split.ShiftJISECI
		}
	}
	return -1
}

// input builds a QR code Input holding data.
func input(s *settings, data []byte, eci int, hint coding.Mode) (*coding.Input, error) {
	in, err := coding.NewInput(coding.Version(s.version), s.level)
	if err != nil {
		return nil, err
	}
	if eci >= 0 {
		if err := in.AppendECI(uint32(eci)); err != nil {
			return nil, err
		}
	}
	switch {
	case s.gs1:
		err = in.SetFNC1First()
	case s.appID >= 0:
		err = in.SetFNC1Second(byte(s.appID))
	}
	if err != nil {
		return nil, err
	}
	if s.byteOnly {
		err = split.Bytes(in, data)
	} else {
		err = split.Text(in, data, hint, !s.upper)
	}
	return in, err
}

// encode encodes text per s.
func encode(enc *qr.Encoder, s *settings, text string, log *zap.Logger) ([]*qr.Symbol, error) {
	data, eci, hint, err := prepare(s, text)
	if err != nil {
		return nil, err
	}
	log.Debug("prepared input",
		zap.Int("bytes", len(data)),
		zap.Int("eci", eci),
		zap.Stringer("hint", hint))

	if s.micro {
		if eci >= 0 {
			log.Warn("ECI not supported in Micro QR, encoding without",
				zap.Int("eci", eci))
		}
		var v coding.Version
		if s.version > 0 {
			v = coding.M1 + coding.Version(s.version-1)
		}
		var sym *qr.Symbol
		if s.byteOnly {
			sym, err = enc.EncodeBytesMicro(data, v, s.level)
		} else {
			sym, err = enc.EncodeTextMicro(data, v, s.level, hint, !s.upper)
		}
		if err != nil {
			return nil, err
		}
		return []*qr.Symbol{sym}, nil
	}

	in, err := input(s, data, eci, hint)
	if err != nil {
		return nil, err
	}
	if s.multi {
		return enc.EncodeStructured(in)
	}
	sym, err := enc.Encode(in)
	if err != nil {
		return nil, err
	}
	return []*qr.Symbol{sym}, nil
}
