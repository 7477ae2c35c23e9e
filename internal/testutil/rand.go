// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
)

// Rand is a deterministic source of test data. Its output is the AES-CTR
// keystream for a key derived from the seed, so a given seed produces the
// same bytes on every platform and Go release.
type Rand struct {
	ks cipher.Stream
}

func NewRand(seed int) *Rand {
	var key, iv [aes.BlockSize]byte
	binary.LittleEndian.PutUint64(key[:], uint64(seed))
	blk, _ := aes.NewCipher(key[:])
	return &Rand{ks: cipher.NewCTR(blk, iv[:])}
}

// Int returns a non-negative pseudo-random int that fits in 62 bits.
func (r *Rand) Int() int {
	var b [8]byte
	r.ks.XORKeyStream(b[:], b[:])
	return int(binary.LittleEndian.Uint64(b[:]) >> 2)
}

func (r *Rand) Intn(n int) int {
	return r.Int() % n
}

// Bytes returns n pseudo-random bytes.
func (r *Rand) Bytes(n int) []byte {
	b := make([]byte, n)
	r.ks.XORKeyStream(b, b)
	return b
}

// Symbols returns the n symbols 0..n-1 in a pseudo-random order.
// It panics if n exceeds the byte alphabet.
func (r *Rand) Symbols(n int) []byte {
	if n > 256 {
		panic("too many symbols")
	}
	b := make([]byte, n)
	for i := range b {
		j := r.Intn(i + 1)
		b[i] = b[j]
		b[j] = byte(i)
	}
	return b
}
