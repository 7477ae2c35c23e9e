// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dsnet/blocksort/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func runCmd(args []string, input []byte) (code int, stdout, stderr []byte) {
	var wo, we bytes.Buffer
	code = run(args, bytes.NewReader(input), &wo, &we)
	return code, wo.Bytes(), we.Bytes()
}

func TestForward(t *testing.T) {
	code, out, _ := runCmd([]string{"-"}, []byte("ABRACADABRA!"))
	assert.Equal(t, exitOK, code)
	want := testutil.MustDecodeStreamGen("D32:3 X:415245240245040000004500")
	assert.Equal(t, want, out)

	code, out, _ = runCmd([]string{"-stage", "bwt", "-"}, []byte("ABRACADABRA!"))
	assert.Equal(t, exitOK, code)
	assert.Equal(t, testutil.MustDecodeStreamGen("D32:3 S:ARD!RCAAAABB"), out)

	code, out, _ = runCmd([]string{"-"}, nil)
	assert.Equal(t, exitOK, code)
	assert.Len(t, out, 0)
}

func TestRoundTrip(t *testing.T) {
	input := testutil.Repeats(0, 1<<13)
	var vectors = [][]string{
		{},
		{"-mtf", "linear"},
		{"-stage", "mtf"},
		{"-codec", "flate", "-level", "9"},
		{"-codec", "zstd"},
		{"-codec", "xz"},
	}

	for i, v := range vectors {
		fwd := append(append([]string{"-verify", "-v"}, v...), "-")
		code, stream, stderr := runCmd(fwd, input)
		if code != exitOK {
			t.Errorf("test %d, forward exit code %d: %s", i, code, stderr)
			continue
		}
		if !strings.Contains(string(stderr), "block verified") {
			t.Errorf("test %d, missing verification log: %s", i, stderr)
		}

		inv := append(append([]string{}, v...), "+")
		code, output, stderr := runCmd(inv, stream)
		if code != exitOK {
			t.Errorf("test %d, inverse exit code %d: %s", i, code, stderr)
			continue
		}
		if !bytes.Equal(output, input) {
			t.Errorf("test %d, output data mismatch", i)
		}
	}
}

func TestUsage(t *testing.T) {
	var vectors = [][]string{
		{},
		{"x"},
		{"-", "+"},
		{"-mtf", "splay", "-"},
		{"-stage", "rle", "-"},
		{"-max-size", "lots", "-"},
		{"-verify", "+"},
		{"-bogus", "-"},
	}

	for i, v := range vectors {
		if code, _, _ := runCmd(v, []byte("data")); code != exitUsage {
			t.Errorf("test %d, %q, exit code: got %d, want %d", i, v, code, exitUsage)
		}
	}
}

func TestFailures(t *testing.T) {
	var vectors = []struct {
		args  []string
		input []byte
	}{
		{[]string{"+"}, []byte{0, 0}},                         // Truncated origin pointer
		{[]string{"+"}, []byte{0, 0, 0, 9, 'a', 'b'}},         // Origin pointer past the end
		{[]string{"-max-size", "1k", "-"}, make([]byte, 1001)}, // Input too large
		{[]string{"-codec", "lz4", "-"}, []byte("data")},      // Unknown codec
		{[]string{"-codec", "zstd", "+"}, []byte("not zstd")}, // Bad outer stream
	}

	for i, v := range vectors {
		code, _, stderr := runCmd(v.args, v.input)
		if code != exitError {
			t.Errorf("test %d, exit code: got %d, want %d", i, code, exitError)
		}
		if !strings.Contains(string(stderr), "transform failed") {
			t.Errorf("test %d, missing error log: %s", i, stderr)
		}
	}

	code, out, _ := runCmd([]string{"-max-size", "1k", "-"}, make([]byte, 1000))
	assert.Equal(t, exitOK, code)
	assert.Len(t, out, 1000+4)
}

func TestMaxSizeInverse(t *testing.T) {
	var vectors = []struct {
		args []string // Flags shared by both directions
		size int
		ok   bool
	}{
		{[]string{}, 1000, true},
		{[]string{}, 1001, false},
		{[]string{"-stage", "mtf"}, 1000, true},
		{[]string{"-stage", "mtf"}, 1001, false},
		{[]string{"-codec", "zstd"}, 1000, true},
		{[]string{"-codec", "zstd"}, 1001, false},
	}

	for i, v := range vectors {
		input := testutil.Repeats(i, v.size)
		code, stream, stderr := runCmd(append(append([]string{}, v.args...), "-"), input)
		if code != exitOK {
			t.Errorf("test %d, forward exit code %d: %s", i, code, stderr)
			continue
		}

		inv := append(append([]string{}, v.args...), "-max-size", "1k", "+")
		code, output, stderr := runCmd(inv, stream)
		if !v.ok {
			if code != exitError || !strings.Contains(string(stderr), "exceeds maximum size") {
				t.Errorf("test %d, exit code %d, want %d: %s", i, code, exitError, stderr)
			}
			continue
		}
		if code != exitOK {
			t.Errorf("test %d, inverse exit code %d: %s", i, code, stderr)
			continue
		}
		assert.Equal(t, input, output, "test %d", i)
	}
}
