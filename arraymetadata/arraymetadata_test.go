// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package arraymetadata_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arraydb/storagecore/arraymetadata"
	"github.com/arraydb/storagecore/datatype"
	"github.com/arraydb/storagecore/uri"
)

// newDense2x2 builds a dense 2-D schema with domain [0,3]x[0,3], tile
// extent [2,2], and one int32 attribute "v".
func newDense2x2(t *testing.T, cellOrder, tileOrder datatype.Layout) *arraymetadata.ArrayMetadata {
	t.Helper()
	m := arraymetadata.New(uri.New("/arrays/dense2x2"))
	m.SetArrayType(datatype.Dense)
	m.SetCellOrder(cellOrder)
	m.SetTileOrder(tileOrder)
	m.SetDimensions([]arraymetadata.Dimension{
		arraymetadata.DimInt32("x", 0, 3, 2, true),
		arraymetadata.DimInt32("y", 0, 3, 2, true),
	})
	m.AddAttribute(arraymetadata.Attribute{
		Name:       "v",
		Datatype:   datatype.Int32,
		CellValNum: 1,
		Compressor: datatype.NoCompression,
	})
	require.NoError(t, m.Init())
	return m
}

func TestInitComputesDerivedFields(t *testing.T) {
	m := newDense2x2(t, datatype.RowMajor, datatype.RowMajor)
	require.True(t, m.IsInitialized())
	require.EqualValues(t, 4, m.CellNumPerTile())
	require.EqualValues(t, 8, m.CoordsSize()) // 2 dims * 4 bytes
	require.EqualValues(t, 4, m.Geometry().TileNum())
}

func TestMutationAfterInitPanics(t *testing.T) {
	m := newDense2x2(t, datatype.RowMajor, datatype.RowMajor)
	require.Panics(t, func() { m.SetCapacity(5) })
}

func TestCheckRejectsDuplicateAttribute(t *testing.T) {
	m := arraymetadata.New(uri.New("/arrays/a"))
	m.SetDimensions([]arraymetadata.Dimension{arraymetadata.DimInt32("x", 0, 9, 10, true)})
	m.AddAttribute(arraymetadata.Attribute{Name: "v", Datatype: datatype.Int32, CellValNum: 1})
	m.AddAttribute(arraymetadata.Attribute{Name: "v", Datatype: datatype.Int32, CellValNum: 1})
	require.Error(t, m.Check())
}

func TestCheckRejectsReservedAttributeName(t *testing.T) {
	m := arraymetadata.New(uri.New("/arrays/a"))
	m.SetDimensions([]arraymetadata.Dimension{arraymetadata.DimInt32("x", 0, 9, 10, true)})
	m.AddAttribute(arraymetadata.Attribute{Name: arraymetadata.CoordsName, Datatype: datatype.Int32, CellValNum: 1})
	require.Error(t, m.Check())
}

func TestCheckRejectsNonDivisibleTileExtent(t *testing.T) {
	m := arraymetadata.New(uri.New("/arrays/a"))
	m.SetArrayType(datatype.Dense)
	m.SetDimensions([]arraymetadata.Dimension{arraymetadata.DimInt32("x", 0, 9, 4, true)}) // 10 % 4 != 0
	m.AddAttribute(arraymetadata.Attribute{Name: "v", Datatype: datatype.Int32, CellValNum: 1})
	require.Error(t, m.Init())
}

func TestCheckRequiresTileExtentForDense(t *testing.T) {
	m := arraymetadata.New(uri.New("/arrays/a"))
	m.SetArrayType(datatype.Dense)
	m.SetDimensions([]arraymetadata.Dimension{arraymetadata.DimInt32("x", 0, 9, 0, false)})
	m.AddAttribute(arraymetadata.Attribute{Name: "v", Datatype: datatype.Int32, CellValNum: 1})
	require.Error(t, m.Init())
}

func TestVarAttributeCellSizeIsSentinel(t *testing.T) {
	m := arraymetadata.New(uri.New("/arrays/a"))
	m.SetArrayType(datatype.Sparse)
	m.SetDimensions([]arraymetadata.Dimension{arraymetadata.DimInt32("x", 0, 9, 0, false)})
	m.AddAttribute(arraymetadata.Attribute{Name: "v", Datatype: datatype.Int32, CellValNum: datatype.VarNum})
	require.NoError(t, m.Init())
	require.Equal(t, datatype.VarSentinelSize, m.CellSize(0))
}

func TestCloneIsIndependent(t *testing.T) {
	m := newDense2x2(t, datatype.RowMajor, datatype.RowMajor)
	clone := m.Clone()
	require.True(t, clone.IsInitialized())
	require.Equal(t, m.CellNumPerTile(), clone.CellNumPerTile())
	require.NotSame(t, &m.Dimensions()[0].Lo[0], &clone.Dimensions()[0].Lo[0])
	require.NotSame(t, &m.Attributes()[0], &clone.Attributes()[0])
}
