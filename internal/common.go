// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package internal holds the alphabet constants shared by the block-sorting
// stages.
package internal

// AlphabetSize is the number of distinct symbols in a byte stream.
const AlphabetSize = 256

// IdentityLUT returns the input key itself.
var IdentityLUT [AlphabetSize]byte

func init() {
	for i := range IdentityLUT {
		IdentityLUT[i] = uint8(i)
	}
}

