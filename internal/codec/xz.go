// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package codec

import (
	"io"

	"github.com/ulikunitz/xz"
)

func init() {
	Register("xz",
		func(w io.Writer, lvl int) (io.WriteCloser, error) {
			// The xz format has no notion of levels, so lvl is ignored.
			return xz.NewWriter(w)
		},
		func(r io.Reader) (io.ReadCloser, error) {
			zr, err := xz.NewReader(r)
			if err != nil {
				return nil, err
			}
			return io.NopCloser(zr), nil
		})
}
