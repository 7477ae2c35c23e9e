// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package mtf implements move-to-front recoding of byte streams.
//
// A move-to-front coder keeps the 256 byte values in most-recently-used
// order. Encoding replaces each symbol by its current position in that list
// and then moves it to the front; decoding does the reverse. After a
// Burrows-Wheeler transform, the output is dominated by small values and
// long runs of zeros.
//
// Two strategies are provided. Linear scans and shifts a 256-entry table and
// costs O(R) per symbol. Tree keeps the symbols in an order-statistic
// structure and costs O(log R) per symbol. Both produce identical output, so
// a stream encoded with one may be decoded with the other.
package mtf

import (
	"fmt"
	"strings"

	"github.com/dsnet/blocksort/internal"
	"github.com/dsnet/blocksort/internal/errors"
)

// R is the size of the symbol alphabet.
const R = internal.AlphabetSize

// Coder is a stateful move-to-front coder. A freshly created or reset Coder
// holds the identity ordering, where rank i holds symbol i.
type Coder interface {
	// Encode returns the current rank of sym and moves sym to the front.
	Encode(sym byte) (rank byte)

	// Decode returns the symbol at rank and moves it to the front.
	Decode(rank byte) (sym byte)

	// Reset restores the identity ordering.
	Reset()
}

// Strategy selects a Coder implementation.
type Strategy int

const (
	DefaultStrategy Strategy = iota // Same as TreeStrategy
	LinearStrategy
	TreeStrategy
)

var strategyNames = map[Strategy]string{
	DefaultStrategy: "default",
	LinearStrategy:  "linear",
	TreeStrategy:    "tree",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy converts a strategy name into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	for k, v := range strategyNames {
		if strings.EqualFold(s, v) {
			return k, nil
		}
	}
	return 0, errorf(errors.Invalid, "unknown strategy %q", s)
}

// New returns a Coder for the given strategy.
func New(s Strategy) (Coder, error) {
	switch s {
	case LinearStrategy:
		return NewLinear(), nil
	case DefaultStrategy, TreeStrategy:
		return NewTree(0), nil
	default:
		return nil, errorf(errors.Invalid, "unknown strategy %v", s)
	}
}

// EncodeBytes encodes every symbol of src in order and appends the ranks
// to dst. The dst slice may be src[:0] to encode in place.
func EncodeBytes(c Coder, dst, src []byte) []byte {
	for _, sym := range src {
		dst = append(dst, c.Encode(sym))
	}
	return dst
}

// DecodeBytes decodes every rank of src in order and appends the symbols
// to dst. The dst slice may be src[:0] to decode in place.
func DecodeBytes(c Coder, dst, src []byte) []byte {
	for _, rank := range src {
		dst = append(dst, c.Decode(rank))
	}
	return dst
}

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "mtf", Msg: fmt.Sprintf(f, a...)}
}
