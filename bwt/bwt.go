// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import "github.com/dsnet/blocksort/internal/errors"

// Transformer performs the forward and inverse Burrows-Wheeler transform.
// The zero value is ready for use. A Transformer caches its working buffers
// between calls and must not be used concurrently.
//
// Encode and Decode report problems by panicking with an errors.Error;
// callers are expected to recover them with errors.Recover.
type Transformer struct {
	sorter suffixSorter
	buf    []byte
	sa     []int
	next   []int
}

// Encode applies the forward transform to buf in place and returns the
// origin pointer, which is the sorted position of the untransformed rotation.
// It returns -1 if buf is empty.
func (bwt *Transformer) Encode(buf []byte) (ptr int) {
	if len(buf) == 0 {
		return -1
	}

	// Step 1: Sort all rotations of a private copy of the input.
	n := len(buf)
	bwt.buf = append(bwt.buf[:0], buf...)
	bwt.sa = bwt.sorter.Sort(bwt.buf, bwt.sa)

	// Step 2: The output is the last column of the sorted rotation matrix,
	// which is the character preceding each rotation's starting offset.
	ptr = -1
	for i, idx := range bwt.sa {
		if idx == 0 {
			ptr = i
			idx = n
		}
		buf[i] = bwt.buf[idx-1]
	}
	if ptr < 0 {
		panicf(errors.Internal, "no rotation starts at offset zero")
	}
	return ptr
}

// Decode applies the inverse transform to buf in place, where ptr is the
// origin pointer returned by Encode.
func (bwt *Transformer) Decode(buf []byte, ptr int) {
	if len(buf) == 0 {
		return
	}
	if ptr < 0 || ptr >= len(buf) {
		panicf(errors.Corrupted, "origin pointer %d out of range [0, %d)", ptr, len(buf))
	}

	// Step 1: Count the symbols and convert the counts into the offset of
	// each symbol's first row in the sorted first column.
	var c [numSyms]int
	for _, v := range buf {
		c[v]++
	}
	var sum int
	for i, v := range c {
		sum += v
		c[i] = sum - v
	}

	// Step 2: Build the LF-mapping. The i-th occurrence of a symbol in the
	// last column is the i-th occurrence of that symbol in the first column,
	// so row c[b] is followed by row i in the original text.
	if cap(bwt.next) < len(buf) {
		bwt.next = make([]int, len(buf))
	}
	next := bwt.next[:len(buf)]
	for i, b := range buf {
		next[c[b]] = i
		c[b]++
	}

	// Step 3: Walk the mapping from the origin row.
	bwt.buf = append(bwt.buf[:0], buf...)
	pos := next[ptr]
	for i := range buf {
		buf[i] = bwt.buf[pos]
		pos = next[pos]
	}
}

// Transform returns the Burrows-Wheeler transform of text along with the
// index of the original rotation in sorted order. The text is not modified.
func Transform(text []byte) (first int, code []byte, err error) {
	defer errors.Recover(&err)
	if len(text) == 0 {
		return -1, nil, errorf(errors.Invalid, "empty text")
	}
	var bwt Transformer
	code = append([]byte(nil), text...)
	first = bwt.Encode(code)
	return first, code, nil
}

// InverseTransform recovers the original text from its transform.
// The code is not modified.
func InverseTransform(first int, code []byte) (text []byte, err error) {
	defer errors.Recover(&err)
	if len(code) == 0 {
		return nil, errorf(errors.Invalid, "empty code")
	}
	var bwt Transformer
	text = append([]byte(nil), code...)
	bwt.Decode(text, first)
	return text, nil
}
