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

// Scenario 1: dense 2-D, domain [0,3]x[0,3], tile extent [2,2], row-major
// cell and tile order.
func TestGeometryRowMajorScenario(t *testing.T) {
	m := newDense2x2(t, datatype.RowMajor, datatype.RowMajor)
	g := m.Geometry()

	require.EqualValues(t, 4, g.TileNum())

	pos, err := g.GetCellPos(arraymetadata.EncodeCoords([]int32{0, 0}))
	require.NoError(t, err)
	require.EqualValues(t, 0, pos)

	pos, err = g.GetCellPos(arraymetadata.EncodeCoords([]int32{1, 1}))
	require.NoError(t, err)
	require.EqualValues(t, 3, pos)

	pos, err = g.GetCellPos(arraymetadata.EncodeCoords([]int32{0, 1}))
	require.NoError(t, err)
	require.EqualValues(t, 1, pos)

	id, err := g.TileID(arraymetadata.EncodeCoords([]int32{2, 0}))
	require.NoError(t, err)
	require.EqualValues(t, 2, id)
}

// Scenario 2: same schema, col-major cell order.
func TestGeometryColMajorCellOrderScenario(t *testing.T) {
	m := newDense2x2(t, datatype.ColMajor, datatype.RowMajor)
	g := m.Geometry()

	pos, err := g.GetCellPos(arraymetadata.EncodeCoords([]int32{1, 0}))
	require.NoError(t, err)
	require.EqualValues(t, 1, pos)

	pos, err = g.GetCellPos(arraymetadata.EncodeCoords([]int32{0, 1}))
	require.NoError(t, err)
	require.EqualValues(t, 2, pos)
}

func TestGetCellPosOutOfDomainErrors(t *testing.T) {
	m := newDense2x2(t, datatype.RowMajor, datatype.RowMajor)
	g := m.Geometry()
	_, err := g.GetCellPos(arraymetadata.EncodeCoords([]int32{4, 0}))
	require.Error(t, err)
}

func TestSubarrayOverlapFullAndNone(t *testing.T) {
	m := newDense2x2(t, datatype.RowMajor, datatype.RowMajor)
	g := m.Geometry()

	a := arraymetadata.EncodeRange([]int32{0, 0}, []int32{3, 3})
	b := arraymetadata.EncodeRange([]int32{1, 1}, []int32{2, 2})
	out, kind, err := g.SubarrayOverlap(a, b)
	require.NoError(t, err)
	require.Equal(t, arraymetadata.OverlapFull, kind)
	require.Equal(t, b, out)

	c := arraymetadata.EncodeRange([]int32{0, 0}, []int32{0, 0})
	d := arraymetadata.EncodeRange([]int32{3, 3}, []int32{3, 3})
	_, kind, err = g.SubarrayOverlap(c, d)
	require.NoError(t, err)
	require.Equal(t, arraymetadata.OverlapNone, kind)
}

func TestExpandDomainAlignsToTiles(t *testing.T) {
	m := newDense2x2(t, datatype.RowMajor, datatype.RowMajor)
	g := m.Geometry()

	expanded, err := g.ExpandDomain(arraymetadata.EncodeRange([]int32{1, 1}, []int32{1, 1}))
	require.NoError(t, err)
	// a single-cell subarray inside tile (0,0) expands to the whole tile [0,1]x[0,1]
	require.Equal(t, arraymetadata.EncodeRange([]int32{0, 0}, []int32{1, 1}), expanded)
}

func TestIsContainedInTileSlabRowAndCol(t *testing.T) {
	m := newDense2x2(t, datatype.RowMajor, datatype.RowMajor)
	g := m.Geometry()

	within, err := g.IsContainedInTileSlabRow(arraymetadata.EncodeRange([]int32{0, 0}, []int32{1, 3}))
	require.NoError(t, err)
	require.True(t, within)

	notWithin, err := g.IsContainedInTileSlabRow(arraymetadata.EncodeRange([]int32{0, 0}, []int32{2, 3}))
	require.NoError(t, err)
	require.False(t, notWithin)

	within, err = g.IsContainedInTileSlabCol(arraymetadata.EncodeRange([]int32{0, 0}, []int32{3, 1}))
	require.NoError(t, err)
	require.True(t, within)
}

func TestGetNextCellCoordsExhaustiveDomainTraversal(t *testing.T) {
	m := newDense2x2(t, datatype.RowMajor, datatype.RowMajor)
	g := m.Geometry()

	domain := arraymetadata.EncodeRange([]int32{0, 0}, []int32{3, 3})
	c := arraymetadata.EncodeCoords([]int32{0, 0})
	steps := 1
	for {
		next, ok, err := g.GetNextCellCoords(domain, c)
		require.NoError(t, err)
		if !ok {
			break
		}
		c = next
		steps++
	}
	require.Equal(t, 16, steps) // 4x4 domain == 16 cells total
}

func TestGetNextTileCoordsTraversesAllTiles(t *testing.T) {
	m := newDense2x2(t, datatype.RowMajor, datatype.RowMajor)
	g := m.Geometry()

	domain := arraymetadata.EncodeRange([]int32{0, 0}, []int32{3, 3})
	c := []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0} // tile coords (0,0) as int64 pair
	steps := 1
	for {
		next, ok, err := g.GetNextTileCoords(domain, c)
		require.NoError(t, err)
		if !ok {
			break
		}
		c = next
		steps++
	}
	require.Equal(t, 4, steps)
}

func TestSparseGeometryHasNoTileConcept(t *testing.T) {
	m := arraymetadata.New(uri.New("/arrays/sparse"))
	m.SetArrayType(datatype.Sparse)
	m.SetDimensions([]arraymetadata.Dimension{
		arraymetadata.DimFloat64("x", 0, 100),
		arraymetadata.DimFloat64("y", 0, 100),
	})
	m.AddAttribute(arraymetadata.Attribute{Name: "v", Datatype: datatype.Float64, CellValNum: 1})
	require.NoError(t, m.Init())

	g := m.Geometry()
	require.EqualValues(t, 0, g.TileNum())
	require.EqualValues(t, 0, g.CellNumPerTile())
	_, _, ok := g.TileDomain()
	require.False(t, ok)

	_, err := g.GetCellPos(arraymetadata.EncodeCoords([]float64{1, 1}))
	require.Error(t, err)
}
