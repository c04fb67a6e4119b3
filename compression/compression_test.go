// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package compression_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arraydb/storagecore/compression"
	"github.com/arraydb/storagecore/datatype"
)

func TestNoCompressionRoundTrip(t *testing.T) {
	src := []byte("array metadata blob")
	compressed, err := compression.Compress(datatype.NoCompression, 0, src)
	require.NoError(t, err)
	require.Equal(t, src, compressed)

	decompressed, err := compression.Decompress(datatype.NoCompression, compressed)
	require.NoError(t, err)
	require.Equal(t, src, decompressed)
}

func TestZstdRoundTrip(t *testing.T) {
	src := bytes(4096)
	compressed, err := compression.Compress(datatype.Zstd, 3, src)
	require.NoError(t, err)

	decompressed, err := compression.Decompress(datatype.Zstd, compressed)
	require.NoError(t, err)
	require.Equal(t, src, decompressed)
}

func TestUnsupportedCompressorErrors(t *testing.T) {
	_, err := compression.Compress(datatype.LZ4, 0, []byte("x"))
	require.Error(t, err)
}

func bytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i % 251)
	}
	return out
}
