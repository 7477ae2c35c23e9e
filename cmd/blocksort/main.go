// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command blocksort applies the block-sorting transform to standard input and
// writes the result to standard output.
//
// Example usage:
//	$ blocksort - < input.txt > input.bs       # Forward transform
//	$ blocksort + < input.bs > output.txt      # Inverse transform
//	$ blocksort -codec xz -verify - < input.txt > input.bs.xz
//	$ blocksort -codec xz + < input.bs.xz > output.txt
//
// The mode argument must come after all flags.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dsnet/blocksort"
	"github.com/dsnet/blocksort/internal/codec"
	"github.com/dsnet/blocksort/mtf"
	strconv "github.com/dsnet/golib/unitconv"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var stageToMode = map[string]blocksort.Mode{
	"all": blocksort.ModeFull,
	"bwt": blocksort.ModeBWT,
	"mtf": blocksort.ModeMTF,
}

// options holds the parsed command line.
type options struct {
	forward  bool
	strategy mtf.Strategy
	mode     blocksort.Mode
	codec    string
	level    int
	maxSize  int64 // Largest plaintext block; zero means unlimited
	verify   bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, verbose, err := parseArgs(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "blocksort: %v\n", err)
		return exitUsage
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	bw := bufio.NewWriter(stdout)
	if opts.forward {
		err = forward(logger, opts, stdin, bw)
	} else {
		err = inverse(logger, opts, stdin, bw)
	}
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		logger.Error("transform failed", "forward", opts.forward, "error", err)
		return exitError
	}
	return exitOK
}

func parseArgs(args []string, stderr io.Writer) (opts options, verbose bool, err error) {
	fs := flag.NewFlagSet("blocksort", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: blocksort [flags] -|+\n\n")
		fmt.Fprintf(stderr, "  -\tapply the forward transform\n")
		fmt.Fprintf(stderr, "  +\tapply the inverse transform\n\n")
		fs.PrintDefaults()
	}
	f0 := fs.String("mtf", "tree", "Move-to-front strategy (linear or tree)")
	f1 := fs.String("stage", "all", "Stages to apply (all, bwt, or mtf)")
	f2 := fs.String("codec", "none", fmt.Sprintf("Outer compressor %v", codec.Names()))
	f3 := fs.Int("level", codec.DefaultLevel, "Outer compressor level (0 is the codec default)")
	f4 := fs.String("max-size", "", "Reject blocks larger than this size (e.g., 64Mi or 1M)")
	f5 := fs.Bool("verify", false, "Check that the forward output decodes to the input")
	f6 := fs.Bool("v", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return opts, false, err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return opts, false, fmt.Errorf("expected exactly one mode argument")
	}
	switch fs.Arg(0) {
	case "-":
		opts.forward = true
	case "+":
		opts.forward = false
	default:
		fs.Usage()
		return opts, false, fmt.Errorf("illegal mode argument %q", fs.Arg(0))
	}

	if opts.strategy, err = mtf.ParseStrategy(*f0); err != nil {
		return opts, false, err
	}
	var ok bool
	if opts.mode, ok = stageToMode[*f1]; !ok {
		return opts, false, fmt.Errorf("invalid stage %q", *f1)
	}
	opts.codec = *f2
	opts.level = *f3
	if *f4 != "" {
		nf, err := strconv.ParsePrefix(*f4, strconv.AutoParse)
		if err != nil || nf < 1 {
			return opts, false, fmt.Errorf("invalid max-size %q", *f4)
		}
		opts.maxSize = int64(nf)
	}
	opts.verify = *f5
	if opts.verify && !opts.forward {
		return opts, false, fmt.Errorf("-verify only applies to the forward transform")
	}
	return opts, *f6, nil
}

// readInput reads all of r, failing if it exceeds maxSize bytes.
func readInput(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		return io.ReadAll(r)
	}
	b, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > maxSize {
		return nil, fmt.Errorf("input exceeds maximum size of %d bytes", maxSize)
	}
	return b, nil
}

func forward(logger *slog.Logger, opts options, r io.Reader, w io.Writer) error {
	input, err := readInput(r, opts.maxSize)
	if err != nil {
		return err
	}

	start := time.Now()
	var stream bytes.Buffer
	wconf := &blocksort.WriterConfig{Strategy: opts.strategy, Mode: opts.mode}
	if err := blocksort.Compress(&stream, bytes.NewReader(input), wconf); err != nil {
		return err
	}
	logger.Debug("block transformed",
		"input", len(input), "output", stream.Len(),
		"strategy", opts.strategy, "elapsed", time.Since(start))

	if opts.verify {
		want := xxhash.Sum64(input)
		d := xxhash.New()
		rconf := &blocksort.ReaderConfig{Strategy: opts.strategy, Mode: opts.mode}
		if err := blocksort.Decompress(d, bytes.NewReader(stream.Bytes()), rconf); err != nil {
			return fmt.Errorf("verification failed: %v", err)
		}
		if got := d.Sum64(); got != want {
			return fmt.Errorf("verification failed: digest %016x, want %016x", got, want)
		}
		logger.Debug("block verified", "xxhash", fmt.Sprintf("%016x", want))
	}

	cw, err := codec.NewWriter(opts.codec, w, opts.level)
	if err != nil {
		return err
	}
	if _, err := stream.WriteTo(cw); err != nil {
		return err
	}
	return cw.Close()
}

func inverse(logger *slog.Logger, opts options, r io.Reader, w io.Writer) error {
	cr, err := codec.NewReader(opts.codec, r)
	if err != nil {
		return err
	}
	defer cr.Close()

	var src io.Reader = cr
	if opts.maxSize > 0 {
		limit := opts.maxSize
		if opts.mode != blocksort.ModeMTF {
			limit += 4 // Origin pointer
		}
		b, err := readInput(cr, limit)
		if err != nil {
			return err
		}
		src = bytes.NewReader(b)
	}

	start := time.Now()
	rconf := &blocksort.ReaderConfig{Strategy: opts.strategy, Mode: opts.mode}
	zr, err := blocksort.NewReader(src, rconf)
	if err != nil {
		return err
	}
	n, err := io.Copy(w, zr)
	if err != nil {
		return err
	}
	logger.Debug("block restored",
		"input", zr.InputOffset, "output", n,
		"strategy", opts.strategy, "elapsed", time.Since(start))
	return zr.Close()
}
