// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

package bwt

import "bytes"

// Fuzz checks that the inverse transform recovers every input.
func Fuzz(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	first, code, err := Transform(data)
	if err != nil {
		panic(err)
	}
	text, err := InverseTransform(first, code)
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(text, data) {
		panic("mismatching bytes")
	}
	return 1
}
