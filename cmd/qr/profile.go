// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/unixdj/qrencode/coding"
)

// A profile holds defaults for command line flags.  Unset fields
// leave the defaults alone.
//
//	level: q
//	micro: true
//	type: pbm
//	scale: 8
type profile struct {
	Level      *string `yaml:"level"`
	Version    *int    `yaml:"version"`
	Mask       *int    `yaml:"mask"`
	Type       *string `yaml:"type"`
	Scale      *int    `yaml:"scale"`
	Border     *int    `yaml:"border"`
	Reverse    *bool   `yaml:"reverse"`
	ECI        *int    `yaml:"eci"`
	ByteOnly   *bool   `yaml:"byte"`
	ShiftJIS   *bool   `yaml:"shift_jis"`
	IgnoreCase *bool   `yaml:"ignore_case"`
	Micro      *bool   `yaml:"micro"`
}

func loadProfile(name string) (*profile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var p profile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &p, nil
}

// applyProfile loads the profile in the named file, if any, and
// applies it to s.
func applyProfile(name string, s *settings, isSet func(any) bool) error {
	if name == "" {
		return nil
	}
	p, err := loadProfile(name)
	if err != nil {
		return err
	}
	return p.apply(s, isSet)
}

// apply copies the profile values of flags not set on the command
// line, as reported by isSet, to s.
func (p *profile) apply(s *settings, isSet func(any) bool) error {
	if p.Level != nil && !isSet('l') {
		l, err := coding.ParseLevel(*p.Level)
		if err != nil {
			return fmt.Errorf("profile: %w", err)
		}
		s.level = l
	}
	ints := []struct {
		flag     rune
		v        *int
		dst      *int
		min, max int
	}{
		{'v', p.Version, &s.version, 0, int(coding.MaxVersion)},
		{'m', p.Mask, &s.mask, -1, 7},
		{'s', p.Scale, &s.scale, 1, 256},
		{'b', p.Border, &s.border, -1, 1000},
		{'E', p.ECI, &s.eci, -1, coding.MaxECI},
	}
	for _, f := range ints {
		if f.v == nil || isSet(f.flag) {
			continue
		}
		if *f.v < f.min || *f.v > f.max {
			return fmt.Errorf("profile: -%c value %d out of range %d..%d",
				f.flag, *f.v, f.min, f.max)
		}
		*f.dst = *f.v
	}
	if p.Type != nil && !isSet('t') {
		if !slices.Contains(formats, *p.Type) {
			return fmt.Errorf("profile: unknown type %q", *p.Type)
		}
		s.format = *p.Type
	}
	bools := []struct {
		flag rune
		v    *bool
		dst  *bool
	}{
		{'r', p.Reverse, &s.reverse},
		{'8', p.ByteOnly, &s.byteOnly},
		{'k', p.ShiftJIS, &s.sjis},
		{'i', p.IgnoreCase, &s.upper},
		{'M', p.Micro, &s.micro},
	}
	for _, f := range bools {
		if f.v != nil && !isSet(f.flag) {
			*f.dst = *f.v
		}
	}
	return nil
}
