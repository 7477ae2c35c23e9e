// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package codec

import (
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
)

func init() {
	Register("flate",
		func(w io.Writer, lvl int) (io.WriteCloser, error) {
			if lvl == DefaultLevel {
				lvl = flate.DefaultCompression
			}
			return flate.NewWriter(w, lvl)
		},
		func(r io.Reader) (io.ReadCloser, error) {
			return flate.NewReader(r), nil
		})
	Register("zstd",
		func(w io.Writer, lvl int) (io.WriteCloser, error) {
			level := zstd.SpeedDefault
			if lvl != DefaultLevel {
				level = zstd.EncoderLevelFromZstd(lvl)
			}
			return zstd.NewWriter(w, zstd.WithEncoderLevel(level))
		},
		func(r io.Reader) (io.ReadCloser, error) {
			zr, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return zr.IOReadCloser(), nil
		})
}
