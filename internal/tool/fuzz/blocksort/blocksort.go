// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

package blocksort

import (
	"bytes"
	"io/ioutil"

	"github.com/dsnet/blocksort"
	"github.com/dsnet/blocksort/internal/errors"
	"github.com/dsnet/blocksort/mtf"
)

func Fuzz(data []byte) int {
	data, ok := testDecoders(data)
	for _, s := range []mtf.Strategy{mtf.LinearStrategy, mtf.TreeStrategy} {
		testEncoder(data, s)
	}
	if ok {
		return 1 // Favor valid inputs
	}
	return 0
}

func decode(data []byte, s mtf.Strategy) ([]byte, error) {
	rd, err := blocksort.NewReader(bytes.NewReader(data), &blocksort.ReaderConfig{Strategy: s})
	if err != nil {
		panic(err)
	}
	b, err := ioutil.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	return b, rd.Close()
}

// testDecoders tests that the input is handled identically by the linear and
// tree move-to-front strategies. Both may reject the input, but only as
// corrupted.
func testDecoders(data []byte) ([]byte, bool) {
	lb, lerr := decode(data, mtf.LinearStrategy)
	tb, terr := decode(data, mtf.TreeStrategy)

	switch {
	case lerr == nil && terr == nil:
		if !bytes.Equal(lb, tb) {
			panic("mismatching bytes")
		}
		return lb, true
	case lerr != nil && terr != nil:
		if !errors.IsCorrupted(lerr) {
			panic(lerr)
		}
		if !errors.IsCorrupted(terr) {
			panic(terr)
		}
		return nil, false
	case lerr != nil:
		panic(lerr)
	default:
		panic(terr)
	}
}

// testEncoder encodes the input data with the given strategy and then checks
// that both strategies decode the output back to the input.
func testEncoder(data []byte, s mtf.Strategy) {
	bb := new(bytes.Buffer)
	wr, err := blocksort.NewWriter(bb, &blocksort.WriterConfig{Strategy: s})
	if err != nil {
		panic(err)
	}
	n, err := wr.Write(data)
	if n != len(data) || err != nil {
		panic(err)
	}
	if err := wr.Close(); err != nil {
		panic(err)
	}

	b, ok := testDecoders(bb.Bytes())
	if len(data) > 0 && !ok {
		panic("decoder error")
	}
	if !bytes.Equal(b, data) {
		panic("mismatching bytes")
	}
}
