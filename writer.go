// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package blocksort

import (
	"encoding/binary"
	"io"

	"github.com/dsnet/blocksort/bwt"
	"github.com/dsnet/blocksort/internal/errors"
	"github.com/dsnet/blocksort/mtf"
)

// WriterConfig configures a Writer. The zero value selects the defaults.
type WriterConfig struct {
	Strategy mtf.Strategy // Move-to-front strategy
	Mode     Mode         // Stages to apply

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// A Writer buffers everything written to it and emits the transformed block
// when closed.
type Writer struct {
	InputOffset  int64 // Total number of bytes issued to Write
	OutputOffset int64 // Total number of bytes written to underlying io.Writer

	wr   io.Writer
	err  error
	mode Mode
	buf  []byte

	bwt bwt.Transformer
	mtf mtf.Coder
}

// NewWriter returns a new Writer writing to w.
func NewWriter(w io.Writer, conf *WriterConfig) (*Writer, error) {
	var strategy mtf.Strategy
	var mode Mode
	if conf != nil {
		strategy, mode = conf.Strategy, conf.Mode
	}
	if !mode.valid() {
		return nil, errorf(errors.Invalid, "unknown mode %d", mode)
	}
	coder, err := mtf.New(strategy)
	if err != nil {
		return nil, errWrap(err, errors.Invalid)
	}

	zw := &Writer{mode: mode, mtf: coder}
	zw.Reset(w)
	return zw, nil
}

// Reset discards the Writer's state and makes it equivalent to the result
// of a call to NewWriter, but writing to w instead.
func (zw *Writer) Reset(w io.Writer) {
	*zw = Writer{
		wr:   w,
		mode: zw.mode,
		buf:  zw.buf[:0],
		bwt:  zw.bwt,
		mtf:  zw.mtf,
	}
}

func (zw *Writer) Write(buf []byte) (int, error) {
	if zw.err != nil {
		return 0, zw.err
	}
	zw.buf = append(zw.buf, buf...)
	zw.InputOffset += int64(len(buf))
	return len(buf), nil
}

// Close transforms the buffered block and writes it out.
// It does not close the underlying io.Writer.
func (zw *Writer) Close() error {
	if zw.err == errClosed {
		return nil
	}
	if zw.err != nil {
		return zw.err
	}

	if uint64(len(zw.buf)) > maxBlockSize {
		zw.err = errorf(errors.Invalid, "block of %d bytes exceeds maximum of %d", len(zw.buf), uint64(maxBlockSize))
		return zw.err
	}
	if zw.err = zw.encodeBlock(); zw.err != nil {
		return zw.err
	}
	zw.err = errClosed
	zw.wr = nil // Release reference to underlying Writer
	return nil
}

func (zw *Writer) encodeBlock() (err error) {
	defer func() {
		if err != nil {
			err = errWrap(err, errors.Internal)
		}
	}()
	defer errors.Recover(&err)

	if len(zw.buf) == 0 {
		return nil
	}

	if zw.mode.hasBWT() {
		ptr := zw.bwt.Encode(zw.buf)
		var hdr [hdrSize]byte
		binary.BigEndian.PutUint32(hdr[:], uint32(ptr))
		if err := zw.write(hdr[:]); err != nil {
			return err
		}
	}
	if zw.mode.hasMTF() {
		zw.mtf.Reset()
		zw.buf = mtf.EncodeBytes(zw.mtf, zw.buf[:0], zw.buf)
	}
	return zw.write(zw.buf)
}

func (zw *Writer) write(buf []byte) error {
	n, err := zw.wr.Write(buf)
	zw.OutputOffset += int64(n)
	if err == nil && n < len(buf) {
		err = io.ErrShortWrite
	}
	return err
}
