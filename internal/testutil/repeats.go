// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

// Repeats generates n bytes of data where the bulk of the content is a copy
// of some earlier content. Such data has long shared contexts, which is the
// case block-sorting transforms are designed for, and it also exercises the
// deep comparisons of rotation sorting.
func Repeats(seed, n int) []byte {
	r := NewRand(seed)
	b := make([]byte, 0, n)

	randLen := func() int {
		switch p := r.Intn(100); {
		case p < 15: // 4..8
			return 4 + r.Intn(4)
		case p < 30: // 8..16
			return 8 + r.Intn(8)
		case p < 45: // 16..32
			return 16 + r.Intn(16)
		case p < 60: // 32..64
			return 32 + r.Intn(32)
		case p < 75: // 64..128
			return 64 + r.Intn(64)
		default: // 128..256
			return 128 + r.Intn(128)
		}
	}

	randDist := func() int {
		var d int
		switch p := r.Intn(100); {
		case p < 20: // 1..4
			d = 1 + r.Intn(3)
		case p < 40: // 4..16
			d = 4 + r.Intn(12)
		case p < 60: // 16..256
			d = 16 + r.Intn(240)
		case p < 80: // 256..4096
			d = 256 + r.Intn(3840)
		default: // 4096..32768
			d = 4096 + r.Intn(28672)
		}
		if d > len(b) {
			d = len(b)
		}
		return d
	}

	writeRand := func(l int) {
		for i := 0; i < l; i++ {
			b = append(b, byte(r.Int()))
		}
	}

	writeCopy := func(d, l int) {
		for i := 0; i < l; i++ {
			b = append(b, b[len(b)-d])
		}
	}

	writeRand(randLen())
	for len(b) < n {
		if r.Intn(10) == 0 {
			writeRand(randLen())
		} else {
			writeCopy(randDist(), randLen())
		}
	}
	return b[:n]
}
