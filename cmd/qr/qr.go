// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Qr encodes text as QR codes.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
	"go.uber.org/zap"

	qr "github.com/unixdj/qrencode"
	"github.com/unixdj/qrencode/coding"
)

// settings holds the command line configuration.
type settings struct {
	level    coding.Level // error correction level
	version  int          // QR version, or Micro QR version number
	mask     int          // forced mask, or -1
	format   string       // output format
	scale    int          // PBM pixels per module
	border   int          // quiet zone, or -1 for the standard one
	reverse  bool         // reverse colours
	eci      int          // ECI designator, or -1
	appID    int          // FNC1 second position application, or -1
	gs1      bool         // FNC1 first position
	byteOnly bool         // byte mode only
	sjis     bool         // Shift JIS conversion and Kanji mode
	upper    bool         // convert to upper case
	micro    bool         // Micro QR
	multi    bool         // structured append
}

var g = settings{
	mask:   -1,
	scale:  4,
	border: -1,
	eci:    -1,
	appID:  -1,
}

var (
	fn          string // output file name
	fext        string // output file name suffix
	profileFile string // YAML profile
	debug       bool   // debug logging
)

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	prog := cl.Program()
	ul := []string{cl.UsageLine() + " [string ...]"}
	ml := max(70-len("Usage: ")-1-len(prog), 0)
	for i := 0; len(ul[i]) > ml; i++ {
		s := ul[i]
		n := ml - 1
		for n > 0 && (s[n] != ' ' || s[n+1] != '[') {
			n--
		}
		if n <= 0 {
			break
		}
		ul = append(ul, s[n+1:])
		ul[i] = s[:n]
		ml = 60
	}
	fmt.Fprint(w, "QR code generator\nUsage: ", prog, " ",
		strings.Join(ul, "\n          "), `
If no string is given, data is read from standard input and the final
newline is stripped.  Text representable in ISO 8859-1 is encoded as
such, any other text as UTF-8 with an ECI header.

`)
	var b bytes.Buffer
	cl.PrintOptions(&b)
	bb := b.Bytes()
	for _, def := range []string{" [-1]", " [-1]", " [256]"} {
		if n := bytes.Index(bb, []byte(def)); n >= 0 {
			w.Write(bb[:n])
			bb = bb[n+len(def):]
		}
	}
	w.Write(bb)
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`qr version 0.9.0
Copyright (c) 2011 The Go Authors
Copyright (c) 2024 Vadim Vygonets`)
	os.Exit(0)
}

var formats = []string{"utf8", "ascii", "pbm"}

var writers = map[string]func(io.Writer, *qr.Symbol, *settings) error{
	"utf8":  writeUTF8,
	"ascii": writeASCII,
	"pbm":   writePBM,
}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	getopt.Flag(&g.byteOnly, '8', "encode entire data in byte mode")
	getopt.Flag(&g.sjis, 'k', "convert input to Shift JIS and "+
		"encode kanji in kanji mode")
	getopt.Flag(&g.upper, 'i', "ignore case, convert input to uppercase")
	getopt.Flag(&g.micro, 'M', "encode a Micro QR code")
	getopt.Flag(&g.multi, 'S', "encode structured append symbols "+
		"(multiple QR codes); requires -v")
	getopt.Flag(&g.reverse, 'r', "reverse colours")
	getopt.Flag(&g.gs1, 'F', "set FNC1 in first position (GS1)")
	getopt.Flag(&debug, 'd', "log debugging information")
	getopt.Flag(&profileFile, 'C', "read defaults from YAML profile", "file")
	fno := getopt.Flag(&fn, 'o', `output file, or "-" for `+
		`standard output; with -S, "-01", "-02" etc. is appended `+
		`to the filename before suffix`, "file")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, "l",
		"error correction level, lowest to highest", "l|m|q|h")
	ver := getopt.Unsigned('v', 0, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 0, Max: 40},
		"minimum QR version, or Micro QR version 1-4 with -M; "+
			"exact version with -S", "ver")
	mask := getopt.Signed('m', -1, &getopt.SignedLimit{Base: 0, Bits: 8, Min: 0, Max: 7},
		"use the given mask instead of the best one", "mask")
	eci := getopt.Signed('E', -1, &getopt.SignedLimit{Base: 0, Bits: 21, Min: 0, Max: 999999},
		"encode ECI segment with the given value; "+
			"the input is encoded as is", "eci")
	app := getopt.Unsigned('A', 256, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 0, Max: 0},
		"set FNC1 in second position to the given application id", "id")
	scale := getopt.Unsigned('s', 4, &getopt.UnsignedLimit{Base: 0, Bits: 16, Min: 1, Max: 256},
		"image pixels per module for type pbm", "scale")
	border := getopt.Signed('b', -1, &getopt.SignedLimit{Base: 0, Bits: 16, Min: 0, Max: 1000},
		"quiet zone in modules [4 (2 for Micro)]", "margin")
	ff := getopt.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+
		`; if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise pbm`, "type")

	getopt.Parse()
	if err := applyProfile(profileFile, &g, getopt.IsSet); err != nil {
		log.Fatalln(err)
	}
	if getopt.IsSet('l') {
		g.level = coding.Level(strings.Index("lmqhLMQH", *lev) & 3)
	}
	if getopt.IsSet('v') {
		g.version = int(*ver)
	}
	if getopt.IsSet('m') {
		g.mask = int(*mask)
	}
	if getopt.IsSet('E') {
		g.eci = int(*eci)
	}
	if getopt.IsSet('s') {
		g.scale = int(*scale)
	}
	if getopt.IsSet('b') {
		g.border = int(*border)
	}
	if *app < 256 {
		g.appID = int(*app)
	}
	if *ff != "" {
		g.format = *ff
	}
	if err := g.check(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
	}
	if g.format == "" {
		if !fno.Seen() && isatty.IsTerminal(os.Stdout.Fd()) {
			g.format = "utf8"
		} else {
			g.format = "pbm"
		}
	}
	if fn == "-" {
		fn = ""
	}
}

// check reports incompatible settings.
func (s *settings) check() error {
	if s.gs1 && s.appID >= 0 {
		return fmt.Errorf("-F and -A are incompatible")
	}
	if s.micro {
		switch {
		case s.multi:
			return fmt.Errorf("-M and -S are incompatible")
		case s.eci >= 0:
			return fmt.Errorf("-M and -E are incompatible")
		case s.gs1 || s.appID >= 0:
			return fmt.Errorf("-M and FNC1 are incompatible")
		case s.version > 4:
			return fmt.Errorf("micro QR version %d out of range", s.version)
		}
	}
	if s.multi && s.version == 0 {
		return fmt.Errorf("-S requires -v")
	}
	return nil
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func main() {
	log.SetFlags(0)
	parseFlags()

	logger, err := newLogger()
	if err != nil {
		log.Fatalln(err)
	}
	defer logger.Sync()

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}

	opts := []qr.Option{qr.WithLogger(logger)}
	if g.mask >= 0 {
		opts = append(opts, qr.WithMask(g.mask))
	}
	enc, err := qr.New(opts...)
	if err != nil {
		log.Fatalln(err)
	}
	syms, err := encode(enc, &g, s, logger)
	if err != nil {
		logger.Sync()
		log.Fatalln(err)
	}
	if len(syms) > 1 {
		fext = path.Ext(fn)
		fn = fn[:len(fn)-len(fext)]
		for i, sym := range syms {
			write(i, sym)
		}
	} else {
		write(-1, syms[0])
	}
}

// write writes the i'th symbol of a structured append set, or the
// only symbol if i is negative.
func write(i int, sym *qr.Symbol) {
	name := fn
	open := name != "" || fext != ""
	var w = os.Stdout
	if open {
		if i >= 0 {
			name = fmt.Sprintf("%s-%02d%s", name, i+1, fext)
		}
		var err error
		if w, err = os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			log.Fatalln(err)
		}
	}
	err := writers[g.format](w, sym, &g)
	if open && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatalln(err)
	}
}
