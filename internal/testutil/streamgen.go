// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"bytes"
	"encoding/hex"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	reDec = regexp.MustCompile("^D[0-9]+:[0-9]+$")
	reHex = regexp.MustCompile("^H[0-9]+:[0-9a-fA-F]{1,16}$")
	reRaw = regexp.MustCompile("^X:[0-9a-fA-F]+$")
	reStr = regexp.MustCompile(`^S:\S+$`)
	reQnt = regexp.MustCompile("[*][0-9]+$")
)

// DecodeStreamGen decodes a StreamGen formatted string.
//
// The StreamGen format allows byte-streams to be generated from a series of
// tokens so that test vectors for the block-sorting wire format can be written
// by hand with comments describing each field.
//
// The format consists of a series of tokens separated by white space of any
// kind. The '#' character is used for commenting. Thus, any bytes on a given
// line that appear after the '#' character is ignored.
//
// A token of the pattern "D[0-9]+:[0-9]+" or "H[0-9]+:[0-9a-fA-F]{1,16}"
// represents either a decimal value or a hexadecimal value, respectively.
// The first number is the bit-length of the field, which must be a multiple
// of 8 between 8 and 64. The value is written in big-endian byte order.
//
// A token of the pattern "X:[0-9a-fA-F]+" represents literal bytes in
// hexadecimal format. A token of the pattern "S:..." represents the literal
// bytes of the text after the colon.
//
// A token decorator of the pattern "[*][0-9]+" may trail any token. This is
// a quantifier decorator which indicates that the current token is to be
// repeated some number of times.
//
// Example StreamGen file:
//	D32:3                # Origin pointer
//	X:41 X:00*3          # Move-to-front ranks
func DecodeStreamGen(str string) ([]byte, error) {
	var toks []string
	for _, s := range strings.Split(str, "\n") {
		if i := strings.IndexByte(s, '#'); i >= 0 {
			s = s[:i]
		}
		toks = append(toks, strings.Fields(s)...)
	}

	var bb bytes.Buffer
	for _, t := range toks {
		rep := 1
		if reQnt.MatchString(t) {
			i := strings.LastIndexByte(t, '*')
			tt, tn := t[:i], t[i+1:]
			n, err := strconv.Atoi(tn)
			if err != nil {
				return nil, errors.New("testutil: invalid quantified token: " + t)
			}
			t, rep = tt, n
		}

		var b []byte
		switch {
		case reDec.MatchString(t) || reHex.MatchString(t):
			i := strings.IndexByte(t, ':')
			tb, tn, tv := t[0], t[1:i], t[i+1:]

			base := 10
			if tb == 'H' {
				base = 16
			}

			n, err1 := strconv.Atoi(tn)
			v, err2 := strconv.ParseUint(tv, base, 64)
			if err1 != nil || err2 != nil || n == 0 || n > 64 || n%8 != 0 {
				return nil, errors.New("testutil: invalid numeric token: " + t)
			}
			if n < 64 && v&((1<<uint(n))-1) != v {
				return nil, errors.New("testutil: integer overflow on token: " + t)
			}
			for i := n - 8; i >= 0; i -= 8 {
				b = append(b, byte(v>>uint(i)))
			}
		case reRaw.MatchString(t):
			var err error
			if b, err = hex.DecodeString(t[2:]); err != nil {
				return nil, errors.New("testutil: invalid raw bytes token: " + t)
			}
		case reStr.MatchString(t):
			b = []byte(t[2:])
		default:
			return nil, errors.New("testutil: invalid token: " + t)
		}
		bb.Write(bytes.Repeat(b, rep))
	}
	return bb.Bytes(), nil
}

// MustDecodeStreamGen must decode a StreamGen formatted string or else panics.
func MustDecodeStreamGen(s string) []byte {
	b, err := DecodeStreamGen(s)
	if err != nil {
		panic(err)
	}
	return b
}
