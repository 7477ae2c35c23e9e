// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package blocksort

import "io"

// Compress reads src until EOF and writes the transformed block to dst.
func Compress(dst io.Writer, src io.Reader, conf *WriterConfig) error {
	zw, err := NewWriter(dst, conf)
	if err != nil {
		return err
	}
	if _, err := io.Copy(zw, src); err != nil {
		return err
	}
	return zw.Close()
}

// Decompress reads a transformed block from src and writes the original
// bytes to dst.
func Decompress(dst io.Writer, src io.Reader, conf *ReaderConfig) error {
	zr, err := NewReader(src, conf)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, zr); err != nil {
		return err
	}
	return zr.Close()
}
