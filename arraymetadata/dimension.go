// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package arraymetadata

import "github.com/arraydb/storagecore/datatype"

// NewDimension builds a Dimension of coordinate type dt from typed lo/hi
// bounds and an optional tile extent, encoding them little-endian. T must
// match dt's width (e.g. dt=datatype.Int32 pairs with T=int32); callers
// almost always go through the Dim* convenience constructors below instead
// of calling this directly.
func NewDimension[T Number](name string, dt datatype.Datatype, lo, hi T, tileExtent T, hasExtent bool) Dimension {
	sz := int(dt.Size())
	d := Dimension{
		Name: name,
		Datatype: dt,
		Lo: make([]byte, sz),
		Hi: make([]byte, sz),
		HasTileExtent: hasExtent,
	}
	writeT(lo, d.Lo)
	writeT(hi, d.Hi)
	if hasExtent {
		d.TileExtent = make([]byte, sz)
		writeT(tileExtent, d.TileExtent)
	}
	return d
}

// DimInt64 builds an integer dense/sparse dimension over int64 bounds.
func DimInt64(name string, lo, hi, tileExtent int64, hasExtent bool) Dimension {
	return NewDimension[int64](name, datatype.Int64, lo, hi, tileExtent, hasExtent)
}

// DimInt32 builds an integer dense/sparse dimension over int32 bounds.
func DimInt32(name string, lo, hi, tileExtent int32, hasExtent bool) Dimension {
	return NewDimension[int32](name, datatype.Int32, lo, hi, tileExtent, hasExtent)
}

// DimFloat64 builds a sparse (only) dimension over float64 bounds.
func DimFloat64(name string, lo, hi float64) Dimension {
	return NewDimension[float64](name, datatype.Float64, lo, hi, 0, false)
}
