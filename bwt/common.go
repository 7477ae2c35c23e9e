// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bwt implements the Burrows-Wheeler block transform over circular
// suffixes of a byte string.
//
// The forward transform sorts every rotation of the input and emits the last
// column of the sorted rotation matrix together with the row holding the
// original string. The inverse transform recovers the input from those two
// values alone using the LF-mapping, without sorting anything.
//
// References:
//	http://www.hpl.hp.com/techreports/Compaq-DEC/SRC-RR-124.pdf
//	https://algs4.cs.princeton.edu/lectures/55DataCompression.pdf
package bwt

import (
	"fmt"

	"github.com/dsnet/blocksort/internal"
	"github.com/dsnet/blocksort/internal/errors"
)

// numSyms is the size of the byte alphabet.
const numSyms = internal.AlphabetSize

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "bwt", Msg: fmt.Sprintf(f, a...)}
}

func panicf(c int, f string, a ...interface{}) {
	errors.Panic(errorf(c, f, a...))
}
