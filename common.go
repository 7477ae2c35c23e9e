// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package blocksort implements the block-sorting stage of a BWT compressor.
//
// Compression reads the whole input as a single block, applies the
// Burrows-Wheeler transform and then move-to-front recoding. Decompression
// undoes both stages in the reverse order. The output is meant to be handed
// to an entropy coder; this package does not compress by itself.
//
// Stream format:
//	origin  uint32 (big-endian) // Sorted position of the original rotation
//	ranks   [n]uint8            // Move-to-front rank of each transformed byte
//
// The block length n is not stored; it is the number of bytes that follow the
// origin pointer. An empty input produces an empty stream.
package blocksort

import (
	"fmt"

	"github.com/dsnet/blocksort/internal/errors"
)

// Compression stack:
//	Burrows-Wheeler transform (BWT)
//	Move-to-front transform   (MTF)
//
// References:
//	http://www.hpl.hp.com/techreports/Compaq-DEC/SRC-RR-124.pdf
//	https://en.wikipedia.org/wiki/Move-to-front_transform

const (
	hdrSize = 4 // Size of the origin pointer

	// maxBlockSize is the largest block whose origin fits in the header.
	maxBlockSize = 1<<32 - 1
)

// Mode selects which stages a Writer applies and a Reader undoes.
type Mode int

const (
	ModeFull Mode = iota // Burrows-Wheeler transform followed by move-to-front
	ModeBWT              // Burrows-Wheeler transform only
	ModeMTF              // Move-to-front only; no origin pointer is stored
)

func (m Mode) hasBWT() bool { return m != ModeMTF }
func (m Mode) hasMTF() bool { return m != ModeBWT }

func (m Mode) valid() bool { return m >= ModeFull && m <= ModeMTF }

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "blocksort", Msg: fmt.Sprintf(f, a...)}
}

// errWrap converts a lower-level errors.Error to be one from this package.
// The replaceCode passed in will be used to replace the code for any errors
// with the errors.Invalid code.
//
// For the Reader, set this to errors.Corrupted.
// For the Writer, set this to errors.Internal.
func errWrap(err error, replaceCode int) error {
	if cerr, ok := err.(errors.Error); ok {
		if errors.IsInvalid(cerr) {
			cerr.Code = replaceCode
		}
		err = errorf(cerr.Code, "%s", cerr.Msg)
	}
	return err
}

var errClosed = errorf(errors.Closed, "")
