// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

// Package compression dispatches datatype.Compressor tags to codecs used
// when the storage manager persists serialized ArrayMetadata and
// FragmentMetadata blobs.
package compression

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/errs"

	"github.com/arraydb/storagecore/datatype"
)

// Error is the compression error class.
var Error = errs.Class("compression error")

// Compress encodes src under compressor c at the given level (ignored by
// codecs that don't support levels). NoCompression returns src unchanged.
func Compress(c datatype.Compressor, level int32, src []byte) ([]byte, error) {
	switch c {
	case datatype.NoCompression:
		return append([]byte(nil), src...), nil
	case datatype.Zstd:
		return compressZstd(level, src)
	default:
		return nil, Error.New("compressor %s not implemented", c)
	}
}

// Decompress reverses Compress for compressor c.
func Decompress(c datatype.Compressor, src []byte) ([]byte, error) {
	switch c {
	case datatype.NoCompression:
		return append([]byte(nil), src...), nil
	case datatype.Zstd:
		return decompressZstd(src)
	default:
		return nil, Error.New("compressor %s not implemented", c)
	}
}

func zstdLevel(level int32) zstd.EncoderLevel {
	switch {
	case level <= 0:
		return zstd.SpeedDefault
	case level == 1:
		return zstd.SpeedFastest
	case level >= 4:
		return zstd.SpeedBestCompression
	default:
		return zstd.SpeedBetterCompression
	}
}

func compressZstd(level int32, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstdLevel(level)))
	if err != nil {
		return nil, Error.Wrap(err)
	}
	if _, err := w.Write(src); err != nil {
		_ = w.Close()
		return nil, Error.Wrap(err)
	}
	if err := w.Close(); err != nil {
		return nil, Error.Wrap(err)
	}
	return buf.Bytes(), nil
}

func decompressZstd(src []byte) ([]byte, error) {
	r, err := zstd.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return out, nil
}
