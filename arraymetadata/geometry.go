// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package arraymetadata

import "github.com/arraydb/storagecore/datatype"

// Overlap classifies the result of SubarrayOverlap.
type Overlap int

const (
	// OverlapNone means the two subarrays do not intersect.
	OverlapNone Overlap = iota
	// OverlapFull means a entirely contains b.
	OverlapFull
	// OverlapPartial means a and b partially intersect, non-contiguously.
	OverlapPartial
	// OverlapPartialContiguous means a and b partially intersect,
	// contiguously along the array's tile order.
	OverlapPartialContiguous
)

// Geometry is the type-erased coordinate-geometry algorithm set for one
// array's schema. Coordinates, subarrays and ranges are passed
// as raw little-endian byte slices sized dim_num*coord_size (subarrays and
// ranges are 2*dim_num*coord_size: lo,hi per dimension), mirroring
// a void* buffer convention, but dispatch happens once, at construction, to
// a monomorphized generic implementation rather than on every call.
type Geometry interface {
	// Datatype is the shared coordinate type of every dimension.
	Datatype() datatype.Datatype
	// DimNum is the number of dimensions.
	DimNum() int
	// CoordsSize is dim_num * coord-type size, in bytes.
	CoordsSize() uint64

	// CellNumPerTile is the dense per-tile cell count (product of tile
	// extents); 0 for sparse arrays.
	CellNumPerTile() uint64
	// TileDomain is the array domain mapped to integral tile coordinates;
	// ok is false for sparse arrays.
	TileDomain() (lo, hi []int64, ok bool)

	CellOrderCmp(a, b []byte) (int, error)
	TileOrderCmp(a, b []byte) (int, error)
	TileCellOrderCmp(a, b []byte) (int, error)

	TileID(cellCoords []byte) (uint64, error)
	GetCellPos(coords []byte) (uint64, error)

	GetNextCellCoords(domain, c []byte) (next []byte, ok bool, err error)
	GetPreviousCellCoords(domain, c []byte) (prev []byte, ok bool, err error)
	GetNextTileCoords(domain, c []byte) (next []byte, ok bool, err error)

	GetTilePos(tileCoords []byte) (uint64, error)
	GetTilePosInDomain(domain, tileCoords []byte) (uint64, error)

	GetSubarrayTileDomain(subarray []byte) (tileDomain []byte, subInTile []byte, err error)

	IsContainedInTileSlabRow(rng []byte) (bool, error)
	IsContainedInTileSlabCol(rng []byte) (bool, error)

	SubarrayOverlap(a, b []byte) (out []byte, kind Overlap, err error)

	TileNum() uint64
	TileNumInDomain(domain []byte) (uint64, error)
	TileNumInRange(rng []byte) (uint64, error)

	ExpandDomain(d []byte) ([]byte, error)
}

// buildGeometry dispatches on coordsType to construct the monomorphized
// Geometry implementation for m. It is safe to call before all derived
// fields (cellSizes, coordsSize,...) have been computed; it only reads the
// dimension/order/array-type fields.
func buildGeometry(m *ArrayMetadata) (Geometry, error) {
	if len(m.dims) == 0 {
		return nil, ErrSchema.New("array %q: cannot build geometry with no dimensions", m.arrayURI)
	}
	switch m.CoordsType() {
	case datatype.Int8:
		return newGenericGeometry[int8](m)
	case datatype.Uint8:
		return newGenericGeometry[uint8](m)
	case datatype.Int16:
		return newGenericGeometry[int16](m)
	case datatype.Uint16:
		return newGenericGeometry[uint16](m)
	case datatype.Int32:
		return newGenericGeometry[int32](m)
	case datatype.Uint32:
		return newGenericGeometry[uint32](m)
	case datatype.Int64:
		return newGenericGeometry[int64](m)
	case datatype.Uint64:
		return newGenericGeometry[uint64](m)
	case datatype.Float32:
		return newGenericGeometry[float32](m)
	case datatype.Float64:
		return newGenericGeometry[float64](m)
	default:
		return nil, ErrSchema.New("array %q: unsupported coordinate datatype", m.arrayURI)
	}
}
