// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package mtf

import (
	"math/bits"

	"github.com/dsnet/blocksort/internal"
	"github.com/dsnet/blocksort/internal/errors"
)

// defaultKeySpace is the number of keys a Tree hands out before it must
// renumber its symbols.
const defaultKeySpace = 1 << 14

// Tree is a move-to-front coder backed by an order-statistic structure.
//
// Every symbol owns a key from a bounded key space, and the recency order of
// the symbols is the order of their keys. Moving a symbol to the front gives
// it a key smaller than every key in use, taken from a counter that only
// decreases, so no other key changes. The occupied keys are tracked in a
// Fenwick tree, which answers the rank of a key and the key at a rank in
// O(log K) for a key space of size K.
//
// When the counter runs out, the symbols are renumbered with dense keys at
// the top of the key space in their current order, and the counter restarts
// below them.
type Tree struct {
	tree fenwick // Occupancy count of each key
	syms []uint8 // Symbol owning each key
	keys [R]int  // Key owned by each symbol
	next int     // Next key to hand out; always below every key in use

	rebuilds int // Number of times the keys were renumbered
}

// NewTree returns a Tree coder holding the identity ordering. The keySpace
// bounds the number of keys and must be larger than R; if zero, a default is
// used. Smaller key spaces use less memory but renumber more often.
//
// A key space that is too small is reported by panicking with an
// errors.Invalid error.
func NewTree(keySpace int) *Tree {
	if keySpace == 0 {
		keySpace = defaultKeySpace
	}
	if keySpace <= R {
		errors.Panic(errorf(errors.Invalid, "key space %d must exceed %d", keySpace, R))
	}
	m := &Tree{
		tree: make(fenwick, keySpace+1),
		syms: make([]uint8, keySpace),
	}
	m.Reset()
	return m
}

func (m *Tree) Reset() {
	m.renumber(internal.IdentityLUT[:])
	m.rebuilds = 0
}

func (m *Tree) Encode(sym byte) byte {
	rank := m.tree.count(m.keys[sym])
	m.moveToFront(sym)
	return uint8(rank)
}

func (m *Tree) Decode(rank byte) byte {
	sym := m.syms[m.tree.search(int(rank))]
	m.moveToFront(sym)
	return sym
}

func (m *Tree) moveToFront(sym uint8) {
	if m.next < 0 {
		m.rebuild()
	}
	m.tree.add(m.keys[sym], -1)
	m.keys[sym] = m.next
	m.syms[m.next] = sym
	m.tree.add(m.next, +1)
	m.next--
}

// rebuild renumbers the symbols while preserving their order.
func (m *Tree) rebuild() {
	var order [R]uint8
	for i := range order {
		order[i] = m.syms[m.tree.search(i)]
	}
	m.renumber(order[:])
	m.rebuilds++
}

// renumber assigns the symbols dense keys at the top of the key space, where
// order[i] is the symbol to be placed at rank i.
func (m *Tree) renumber(order []uint8) {
	for i := range m.tree {
		m.tree[i] = 0
	}
	base := len(m.syms) - R
	for i, sym := range order {
		m.keys[sym] = base + i
		m.syms[base+i] = sym
		m.tree.add(base+i, +1)
	}
	m.next = base - 1
}

// fenwick is a binary indexed tree of counts over the keys 0..len-2.
// The entry at index 0 is unused.
type fenwick []uint16

// add adds delta to the count of key.
func (f fenwick) add(key, delta int) {
	for i := key + 1; i < len(f); i += i & -i {
		f[i] += uint16(delta)
	}
}

// count returns the total count of all keys less than key.
func (f fenwick) count(key int) (n int) {
	for i := key; i > 0; i -= i & -i {
		n += int(f[i])
	}
	return n
}

// search returns the smallest key such that the count of all keys up to and
// including it exceeds n.
func (f fenwick) search(n int) int {
	var pos int
	for step := 1 << uint(bits.Len(uint(len(f)-1))-1); step > 0; step >>= 1 {
		if pos+step < len(f) && int(f[pos+step]) <= n {
			pos += step
			n -= int(f[pos])
		}
	}
	return pos
}
