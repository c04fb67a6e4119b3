// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package datatype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arraydb/storagecore/datatype"
)

func TestSizes(t *testing.T) {
	assert.EqualValues(t, 1, datatype.Int8.Size())
	assert.EqualValues(t, 2, datatype.Uint16.Size())
	assert.EqualValues(t, 4, datatype.Float32.Size())
	assert.EqualValues(t, 8, datatype.Float64.Size())
}

func TestCompressorFlagRoundTrip(t *testing.T) {
	var c datatype.Compressor
	require.NoError(t, c.Set("zstd"))
	assert.Equal(t, datatype.Zstd, c)
	assert.Equal(t, "zstd", c.String())

	require.Error(t, c.Set("not-a-compressor"))
}

func TestIsValid(t *testing.T) {
	assert.True(t, datatype.Float64.IsValid())
	assert.False(t, datatype.Datatype(200).IsValid())
	assert.True(t, datatype.Blosc.IsValid())
	assert.False(t, datatype.Compressor(200).IsValid())
}
