// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package mtf

import "github.com/dsnet/blocksort/internal"

// Linear is a move-to-front coder that keeps the recency list in a flat
// table. Each operation scans and shifts at most R entries.
type Linear struct {
	dict [R]uint8
}

// NewLinear returns a Linear coder holding the identity ordering.
func NewLinear() *Linear {
	m := new(Linear)
	m.Reset()
	return m
}

func (m *Linear) Reset() {
	m.dict = internal.IdentityLUT
}

func (m *Linear) Encode(sym byte) byte {
	var idx uint8 // Reverse lookup idx in dict
	for di, dv := range m.dict {
		if dv == sym {
			idx = uint8(di)
			break
		}
	}
	copy(m.dict[1:], m.dict[:idx])
	m.dict[0] = sym
	return idx
}

func (m *Linear) Decode(idx byte) byte {
	sym := m.dict[idx] // Forward lookup sym in dict
	copy(m.dict[1:], m.dict[:idx])
	m.dict[0] = sym
	return sym
}
