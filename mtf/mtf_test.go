// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package mtf

import (
	"bytes"
	"testing"

	"github.com/dsnet/blocksort/internal/errors"
	"github.com/dsnet/blocksort/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

// coders returns a fresh instance of every strategy under test.
func coders() map[string]Coder {
	return map[string]Coder{
		"linear":    NewLinear(),
		"tree":      NewTree(0),
		"treeSmall": NewTree(R + 1),
		"treeOdd":   NewTree(R + 37),
	}
}

func TestMoveToFront(t *testing.T) {
	var vectors = []struct {
		input  []byte
		output []byte
	}{{
		input:  []byte{},
		output: []byte{},
	}, {
		input:  []byte{'x'},
		output: []byte{0x78},
	}, {
		input:  []byte{2, 2, 2, 2, 2, 2, 2, 2, 2, 2},
		output: []byte{2, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	}, {
		input:  []byte{9, 8, 7, 6, 5, 4, 3, 2, 1},
		output: []byte{9, 9, 9, 9, 9, 9, 9, 9, 9},
	}, {
		input:  []byte{42, 47, 42, 47, 42, 47, 42, 47},
		output: []byte{42, 47, 1, 1, 1, 1, 1, 1},
	}, {
		input:  []byte{255, 0, 255, 0, 128},
		output: []byte{255, 1, 1, 1, 129},
	}, {
		input:  []byte("ABRACADABRA!"),
		output: []byte{0x41, 0x42, 0x52, 0x02, 0x44, 0x01, 0x45, 0x01, 0x04, 0x04, 0x02, 0x26},
	}, {
		input:  []byte("ARD!RCAAAABB"),
		output: []byte{0x41, 0x52, 0x45, 0x24, 0x02, 0x45, 0x04, 0x00, 0x00, 0x00, 0x45, 0x00},
	}}

	for i, v := range vectors {
		for name, c := range coders() {
			output := EncodeBytes(c, nil, v.input)
			if diff := cmp.Diff(v.output, output, cmpEmpty); diff != "" {
				t.Errorf("test %d, %s, output mismatch (-want +got):\n%s", i, name, diff)
			}
			c.Reset()
			input := DecodeBytes(c, nil, output)
			if diff := cmp.Diff(v.input, input, cmpEmpty); diff != "" {
				t.Errorf("test %d, %s, input mismatch (-want +got):\n%s", i, name, diff)
			}
		}
	}
}

// cmpEmpty treats nil and empty byte slices as equal.
var cmpEmpty = cmp.Comparer(func(x, y []byte) bool { return bytes.Equal(x, y) })

func TestCrossStrategy(t *testing.T) {
	var vectors = [][]byte{
		testutil.NewRand(0).Bytes(1 << 12),
		testutil.Repeats(0, 1<<14),
		testutil.ResizeData([]byte("she sells sea shells by the sea shore"), 1<<13),
		bytes.Repeat([]byte{0}, 1000),
	}

	for i, v := range vectors {
		want := EncodeBytes(NewLinear(), nil, v)
		for name, c := range coders() {
			got := EncodeBytes(c, nil, v)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("test %d, %s, encoding differs from linear (-want +got):\n%s", i, name, diff)
			}

			// Every decoder must invert every encoder.
			for dname, d := range coders() {
				if output := DecodeBytes(d, nil, got); !bytes.Equal(output, v) {
					t.Errorf("test %d, encode with %s, decode with %s: round trip mismatch", i, name, dname)
				}
			}
		}
	}
}

func TestInPlace(t *testing.T) {
	input := testutil.Repeats(1, 4096)
	buf := append([]byte(nil), input...)
	buf = EncodeBytes(NewTree(0), buf[:0], buf)
	if want := EncodeBytes(NewLinear(), nil, input); !bytes.Equal(buf, want) {
		t.Fatalf("in-place encoding mismatch")
	}
	buf = DecodeBytes(NewLinear(), buf[:0], buf)
	if !bytes.Equal(buf, input) {
		t.Fatalf("in-place decoding mismatch")
	}
}

func TestTreeRebuild(t *testing.T) {
	var vectors = []struct {
		keySpace int
		input    []byte
	}{
		{R + 1, testutil.NewRand(1).Bytes(5000)},
		{R + 1, testutil.Repeats(1, 5000)},
		{R + 2, bytes.Repeat([]byte{7}, 3000)},
		{2 * R, testutil.NewRand(2).Bytes(1 << 14)},
		{0, testutil.Repeats(2, 3*defaultKeySpace)},
	}

	for i, v := range vectors {
		enc, dec := NewTree(v.keySpace), NewTree(v.keySpace)
		ref := NewLinear()

		// Compare symbol by symbol so that any divergence is reported at the
		// step where it happens, including steps that trigger a rebuild.
		for j, sym := range v.input {
			before := enc.rebuilds
			got, want := enc.Encode(sym), ref.Encode(sym)
			if got != want {
				t.Errorf("test %d, step %d (rebuilds %d->%d), rank mismatch: got %d, want %d",
					i, j, before, enc.rebuilds, got, want)
				break
			}
			if out := dec.Decode(got); out != sym {
				t.Errorf("test %d, step %d, symbol mismatch: got %d, want %d", i, j, out, sym)
				break
			}
		}
		if enc.rebuilds == 0 || dec.rebuilds == 0 {
			t.Errorf("test %d, no rebuild occurred: encoder %d, decoder %d", i, enc.rebuilds, dec.rebuilds)
		}
		if enc.rebuilds != dec.rebuilds {
			t.Errorf("test %d, rebuild count mismatch: encoder %d, decoder %d", i, enc.rebuilds, dec.rebuilds)
		}

		// The recency order must survive the rebuilds exactly.
		for r := 0; r < R; r++ {
			if got, want := enc.syms[enc.tree.search(r)], ref.dict[r]; got != want {
				t.Errorf("test %d, rank %d, symbol mismatch after rebuilds: got %d, want %d", i, r, got, want)
				break
			}
		}
	}
}

func TestReset(t *testing.T) {
	for name, c := range coders() {
		EncodeBytes(c, nil, testutil.NewRand(3).Bytes(2000))
		c.Reset()
		for sym := 0; sym < R; sym++ {
			// Encoding symbols in descending order from the identity ordering
			// always finds the next symbol at the last rank.
			if got := c.Encode(byte(R - 1 - sym)); int(got) != R-1 {
				t.Errorf("%s, Encode(%d) = %d, want %d", name, R-1-sym, got, R-1)
				break
			}
		}
	}
	if tr := NewTree(R + 1); tr.rebuilds != 0 {
		t.Errorf("new tree reports %d rebuilds", tr.rebuilds)
	}
}

func TestStrategy(t *testing.T) {
	var vectors = []struct {
		name string
		want Strategy
		ok   bool
	}{
		{"linear", LinearStrategy, true},
		{"TREE", TreeStrategy, true},
		{"default", DefaultStrategy, true},
		{"splay", 0, false},
		{"", 0, false},
	}

	for i, v := range vectors {
		got, err := ParseStrategy(v.name)
		if v.ok != (err == nil) {
			t.Errorf("test %d, ParseStrategy(%q) error: got %v", i, v.name, err)
			continue
		}
		if !v.ok {
			if !errors.IsInvalid(err) {
				t.Errorf("test %d, error mismatch: got %v, want invalid argument", i, err)
			}
			continue
		}
		if got != v.want {
			t.Errorf("test %d, ParseStrategy(%q) = %v, want %v", i, v.name, got, v.want)
		}
		if got.String() != v.want.String() {
			t.Errorf("test %d, String mismatch: got %q, want %q", i, got.String(), v.want.String())
		}
	}

	for _, s := range []Strategy{DefaultStrategy, LinearStrategy, TreeStrategy} {
		if _, err := New(s); err != nil {
			t.Errorf("New(%v), unexpected error: %v", s, err)
		}
	}
	if _, err := New(Strategy(42)); !errors.IsInvalid(err) {
		t.Errorf("New(42), error mismatch: got %v, want invalid argument", err)
	}
	if got := Strategy(42).String(); got != "Strategy(42)" {
		t.Errorf("String() = %q, want %q", got, "Strategy(42)")
	}
}

func TestShuffledSymbols(t *testing.T) {
	for i := 0; i < 8; i++ {
		syms := testutil.NewRand(i).Symbols(R)
		for name, c := range coders() {
			// After one pass over a permutation, the recency list is the
			// permutation reversed, so a second pass always finds the next
			// symbol at the last rank.
			EncodeBytes(c, nil, syms)
			for j, sym := range syms {
				if got := c.Encode(sym); int(got) != R-1 {
					t.Errorf("test %d, %s, step %d, Encode(%d) = %d, want %d", i, name, j, sym, got, R-1)
					break
				}
			}

			c.Reset()
			if output := DecodeBytes(c, nil, EncodeBytes(NewLinear(), nil, syms)); !bytes.Equal(output, syms) {
				t.Errorf("test %d, %s, round trip mismatch", i, name)
			}
		}
	}
}

func TestNewTreeKeySpace(t *testing.T) {
	newTree := func(keySpace int) (m *Tree, err error) {
		defer errors.Recover(&err)
		return NewTree(keySpace), nil
	}

	var vectors = []struct {
		keySpace int
		ok       bool
	}{
		{0, true},
		{R + 1, true},
		{R, false},
		{1, false},
		{-5, false},
	}

	for i, v := range vectors {
		m, err := newTree(v.keySpace)
		if v.ok != (err == nil) {
			t.Errorf("test %d, NewTree(%d) error: got %v", i, v.keySpace, err)
			continue
		}
		if !v.ok && !errors.IsInvalid(err) {
			t.Errorf("test %d, error mismatch: got %v, want invalid argument", i, err)
		}
		if v.ok && m == nil {
			t.Errorf("test %d, NewTree(%d) returned nil", i, v.keySpace)
		}
	}
}

func benchmarkEncode(b *testing.B, c Coder) {
	input := testutil.Repeats(0, 1<<16)
	buf := make([]byte, 0, len(input))
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Reset()
		buf = EncodeBytes(c, buf[:0], input)
	}
}

func BenchmarkEncodeLinear(b *testing.B) { benchmarkEncode(b, NewLinear()) }
func BenchmarkEncodeTree(b *testing.B)   { benchmarkEncode(b, NewTree(0)) }
