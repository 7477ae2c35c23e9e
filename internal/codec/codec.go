// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package codec is a registry of general-purpose compressors that may be
// layered on top of a block-sorted stream.
//
// The block-sorting stage only rearranges bytes; an entropy coder is needed
// to actually shrink them. This package lets the command line tool pick one
// by name without the core packages depending on any of them.
package codec

import (
	"fmt"
	"io"
	"sort"

	"github.com/dsnet/blocksort/internal/errors"
)

// DefaultLevel selects the codec's own default compression level.
const DefaultLevel = 0

type Encoder func(w io.Writer, lvl int) (io.WriteCloser, error)
type Decoder func(r io.Reader) (io.ReadCloser, error)

var (
	encoders = make(map[string]Encoder)
	decoders = make(map[string]Decoder)
)

// Register makes a codec available under the given name.
func Register(name string, enc Encoder, dec Decoder) {
	if _, dup := encoders[name]; dup {
		panic("codec: duplicate registration of " + name)
	}
	encoders[name] = enc
	decoders[name] = dec
}

// Names returns the sorted names of all registered codecs.
func Names() []string {
	var s []string
	for k := range encoders {
		s = append(s, k)
	}
	sort.Strings(s)
	return s
}

// NewWriter returns a compressor for the named codec writing to w.
func NewWriter(name string, w io.Writer, lvl int) (io.WriteCloser, error) {
	enc, ok := encoders[name]
	if !ok {
		return nil, errorf(errors.Invalid, "unknown codec %q", name)
	}
	return enc(w, lvl)
}

// NewReader returns a decompressor for the named codec reading from r.
func NewReader(name string, r io.Reader) (io.ReadCloser, error) {
	dec, ok := decoders[name]
	if !ok {
		return nil, errorf(errors.Invalid, "unknown codec %q", name)
	}
	return dec(r)
}

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "codec", Msg: fmt.Sprintf(f, a...)}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func init() {
	Register("none",
		func(w io.Writer, lvl int) (io.WriteCloser, error) {
			return nopWriteCloser{w}, nil
		},
		func(r io.Reader) (io.ReadCloser, error) {
			return io.NopCloser(r), nil
		})
}
