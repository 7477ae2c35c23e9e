// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"sort"

	"github.com/dsnet/blocksort/internal/errors"
)

// The circular suffix array is computed with a 3-way radix quicksort
// (multikey quicksort) by Bentley and Sedgewick, adapted so that every
// character access wraps around the end of the text.
//
// The algorithm is O(n²) in the worst case, which is reached on highly
// repetitive inputs such as long runs of a single byte. For typical text the
// small alphabet keeps the common prefixes short and the sort fast.
//
// References:
//	https://www.cs.princeton.edu/~rs/strings/paper.pdf
//	https://algs4.cs.princeton.edu/51radix/Quick3string.java.html

// cutoff is the size below which a range is insertion sorted.
const cutoff = 3

// sortRange is a pending range index[lo..hi] whose rotations share their
// first d characters.
type sortRange struct {
	lo, hi, d int
}

// suffixSorter sorts the rotations of text. The zero value is ready for use
// and may be reused to avoid allocations.
type suffixSorter struct {
	text  []byte
	index []int
	stack []sortRange
}

// Sort computes the circular suffix array of text into index and returns it.
// The index slice is reused if it has enough capacity.
func (s *suffixSorter) Sort(text []byte, index []int) []int {
	n := len(text)
	if cap(index) < n {
		index = make([]int, n)
	}
	index = index[:n]
	for i := range index {
		index[i] = i
	}
	s.text, s.index = text, index
	s.sort()
	s.text, s.index = nil, nil
	return index
}

// sort is the iterative form of the recursive sort(lo, hi, d). Each range is
// disjoint from every other range on the stack, so the processing order does
// not affect the result.
func (s *suffixSorter) sort() {
	n := len(s.text)
	s.stack = append(s.stack[:0], sortRange{0, n - 1, 0})
	for len(s.stack) > 0 {
		r := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		lo, hi, d := r.lo, r.hi, r.d

		if d == n {
			// All n characters are equal, which only happens for periodic
			// text. Such rotations are ordered by their starting index.
			sort.Ints(s.index[lo : hi+1])
			continue
		}
		if hi <= lo+cutoff {
			s.insertion(lo, hi, d)
			continue
		}

		lt, gt := lo, hi
		v := s.charAt(s.index[lo], d)
		for i := lo + 1; i <= gt; {
			switch t := s.charAt(s.index[i], d); {
			case t < v:
				s.exch(lt, i)
				lt++
				i++
			case t > v:
				s.exch(i, gt)
				gt--
			default:
				i++
			}
		}

		// index[lo..lt-1] < v = index[lt..gt] < index[gt+1..hi]
		s.push(gt+1, hi, d)
		s.push(lt, gt, d+1)
		s.push(lo, lt-1, d)
	}
}

func (s *suffixSorter) push(lo, hi, d int) {
	if lo < hi {
		s.stack = append(s.stack, sortRange{lo, hi, d})
	}
}

// insertion sorts index[lo..hi], assuming all rotations agree on the first
// d characters.
func (s *suffixSorter) insertion(lo, hi, d int) {
	for i := lo; i <= hi; i++ {
		for j := i; j > lo && s.less(s.index[j], s.index[j-1], d); j-- {
			s.exch(j, j-1)
		}
	}
}

// less reports whether the rotation at i sorts before the rotation at j,
// comparing from the d-th character onwards. Equal rotations are ordered by
// their starting index.
func (s *suffixSorter) less(i, j, d int) bool {
	if i == j {
		return false
	}
	for n := len(s.text); d < n; d++ {
		ic, jc := s.charAt(i, d), s.charAt(j, d)
		if ic != jc {
			return ic < jc
		}
	}
	return i < j
}

// charAt returns the d-th character of the rotation starting at i.
func (s *suffixSorter) charAt(i, d int) byte {
	k := i + d
	if k >= len(s.text) {
		k -= len(s.text)
	}
	return s.text[k]
}

func (s *suffixSorter) exch(i, j int) {
	s.index[i], s.index[j] = s.index[j], s.index[i]
}

// SuffixArray returns the circular suffix array of text. The k-th entry is
// the starting offset of the k-th smallest rotation of text.
//
// The text must not be empty.
func SuffixArray(text []byte) ([]int, error) {
	if len(text) == 0 {
		return nil, errorf(errors.Invalid, "empty text")
	}
	var s suffixSorter
	return s.Sort(text, nil), nil
}

// CircularSuffixArray is the sorted order of all rotations of a text.
type CircularSuffixArray struct {
	index []int
}

// NewCircularSuffixArray sorts the rotations of text.
// The text must not be empty.
func NewCircularSuffixArray(text []byte) (*CircularSuffixArray, error) {
	index, err := SuffixArray(text)
	if err != nil {
		return nil, err
	}
	return &CircularSuffixArray{index: index}, nil
}

// Len reports the length of the text.
func (csa *CircularSuffixArray) Len() int {
	return len(csa.index)
}

// Index returns the starting offset of the i-th smallest rotation.
func (csa *CircularSuffixArray) Index(i int) (int, error) {
	if i < 0 || i >= len(csa.index) {
		return 0, errorf(errors.Invalid, "index %d out of range [0, %d)", i, len(csa.index))
	}
	return csa.index[i], nil
}
