// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package arraymetadata_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arraydb/storagecore/arraymetadata"
	"github.com/arraydb/storagecore/bytesio"
	"github.com/arraydb/storagecore/datatype"
	"github.com/arraydb/storagecore/uri"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	m := arraymetadata.New(uri.New("/arrays/roundtrip"))
	m.SetArrayType(datatype.Dense)
	m.SetCellOrder(datatype.ColMajor)
	m.SetTileOrder(datatype.RowMajor)
	m.SetCapacity(777)
	m.SetCoordsCompression(datatype.Zstd, 5)
	m.SetDimensions([]arraymetadata.Dimension{
		arraymetadata.DimInt64("row", 0, 99, 10, true),
		arraymetadata.DimInt64("col", 0, 99, 10, true),
	})
	m.AddAttribute(arraymetadata.Attribute{
		Name:            "a1",
		Datatype:        datatype.Float64,
		CellValNum:      1,
		Compressor:      datatype.Gzip,
		CompressorLevel: 9,
	})
	m.AddAttribute(arraymetadata.Attribute{
		Name:       "a2",
		Datatype:   datatype.Uint8,
		CellValNum: datatype.VarNum,
		Compressor: datatype.NoCompression,
	})
	require.NoError(t, m.Init())

	buf := &bytesio.Buffer{}
	require.NoError(t, m.Serialize(buf))

	cbuf := bytesio.NewConstBuffer(buf.Bytes())
	got, err := arraymetadata.Deserialize(cbuf, m.ArrayURI())
	require.NoError(t, err)
	require.NoError(t, got.Init())

	require.Equal(t, m.ArrayType(), got.ArrayType())
	require.Equal(t, m.CellOrder(), got.CellOrder())
	require.Equal(t, m.TileOrder(), got.TileOrder())
	require.Equal(t, m.Capacity(), got.Capacity())
	require.Equal(t, m.DimNum(), got.DimNum())
	require.Equal(t, m.Dimensions(), got.Dimensions())
	require.Equal(t, m.Attributes(), got.Attributes())

	gotCompr, gotLevel := got.CoordsCompression()
	wantCompr, wantLevel := m.CoordsCompression()
	require.Equal(t, wantCompr, gotCompr)
	require.Equal(t, wantLevel, gotLevel)

	require.Equal(t, m.CellNumPerTile(), got.CellNumPerTile())
	require.Equal(t, m.CoordsSize(), got.CoordsSize())
}

func TestDeserializeRejectsTruncatedBuffer(t *testing.T) {
	m := arraymetadata.New(uri.New("/arrays/truncated"))
	m.SetArrayType(datatype.Sparse)
	m.SetDimensions([]arraymetadata.Dimension{arraymetadata.DimInt32("x", 0, 9, 0, false)})
	m.AddAttribute(arraymetadata.Attribute{Name: "v", Datatype: datatype.Int32, CellValNum: 1})
	require.NoError(t, m.Init())

	buf := &bytesio.Buffer{}
	require.NoError(t, m.Serialize(buf))

	truncated := buf.Bytes()[:len(buf.Bytes())-2]
	cbuf := bytesio.NewConstBuffer(truncated)
	_, err := arraymetadata.Deserialize(cbuf, m.ArrayURI())
	require.Error(t, err)
}
