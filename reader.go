// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package blocksort

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/dsnet/blocksort/bwt"
	"github.com/dsnet/blocksort/internal/errors"
	"github.com/dsnet/blocksort/mtf"
)

// ReaderConfig configures a Reader. The zero value selects the defaults.
//
// The Strategy need not match the one used by the Writer, since both
// strategies produce the same stream.
type ReaderConfig struct {
	Strategy mtf.Strategy // Move-to-front strategy
	Mode     Mode         // Stages to undo; must match the Writer

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// A Reader reads a transformed block and serves the original bytes.
// The whole underlying stream is consumed on the first call to Read.
type Reader struct {
	InputOffset  int64 // Total number of bytes read from underlying io.Reader
	OutputOffset int64 // Total number of bytes emitted from Read

	rd   io.Reader
	err  error
	mode Mode
	done bool         // Whether the block has been decoded
	bb   bytes.Buffer // Holds the entire block
	buf  []byte       // Decoded bytes not yet emitted

	bwt bwt.Transformer
	mtf mtf.Coder
}

// NewReader returns a new Reader reading from r.
func NewReader(r io.Reader, conf *ReaderConfig) (*Reader, error) {
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

	zr := &Reader{mode: mode, mtf: coder}
	zr.Reset(r)
	return zr, nil
}

// Reset discards the Reader's state and makes it equivalent to the result
// of a call to NewReader, but reading from r instead.
func (zr *Reader) Reset(r io.Reader) {
	*zr = Reader{
		rd:   r,
		mode: zr.mode,
		bb:   zr.bb,
		bwt:  zr.bwt,
		mtf:  zr.mtf,
	}
	zr.bb.Reset()
}

func (zr *Reader) Read(buf []byte) (int, error) {
	if zr.err != nil {
		return 0, zr.err
	}
	if !zr.done {
		if zr.err = zr.decodeBlock(); zr.err != nil {
			return 0, zr.err
		}
		zr.done = true
	}
	if len(zr.buf) == 0 {
		zr.err = io.EOF
		return 0, zr.err
	}
	n := copy(buf, zr.buf)
	zr.buf = zr.buf[n:]
	zr.OutputOffset += int64(n)
	return n, nil
}

// Close ends the decoding process.
// It does not close the underlying io.Reader.
func (zr *Reader) Close() error {
	if zr.err == errClosed {
		return nil
	}
	if zr.err != nil && zr.err != io.EOF {
		return zr.err
	}
	zr.err = errClosed
	zr.rd = nil // Release reference to underlying Reader
	return nil
}

func (zr *Reader) decodeBlock() (err error) {
	defer func() {
		if err != nil {
			err = errWrap(err, errors.Corrupted)
		}
	}()
	defer errors.Recover(&err)

	n, err := zr.bb.ReadFrom(zr.rd)
	zr.InputOffset += n
	if err != nil {
		return err
	}
	b := zr.bb.Bytes()
	if len(b) == 0 {
		return nil
	}

	var ptr uint32
	if zr.mode.hasBWT() {
		if len(b) < hdrSize {
			return errorf(errors.Corrupted, "truncated origin pointer")
		}
		ptr, b = binary.BigEndian.Uint32(b), b[hdrSize:]
		if len(b) == 0 {
			return errorf(errors.Corrupted, "origin pointer without block")
		}
		if uint64(ptr) >= uint64(len(b)) {
			return errorf(errors.Corrupted, "origin pointer %d beyond block of %d bytes", ptr, len(b))
		}
	}
	if zr.mode.hasMTF() {
		zr.mtf.Reset()
		b = mtf.DecodeBytes(zr.mtf, b[:0], b)
	}
	if zr.mode.hasBWT() {
		zr.bwt.Decode(b, int(ptr))
	}
	zr.buf = b
	return nil
}
