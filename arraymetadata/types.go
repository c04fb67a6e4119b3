// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package arraymetadata

import (
	"github.com/arraydb/storagecore/datatype"
	"github.com/arraydb/storagecore/uri"
)

// CoordsName is the reserved attribute name for the implicit coordinates
// attribute; no user attribute may use it.
const CoordsName = "__coords"

// Dimension describes one axis of an array's domain. Lo/Hi/
// TileExtent hold the little-endian encoding of a single value of Datatype;
// they are decoded through Geometry rather than inspected directly, mirroring
// the original's void* domain/extent storage reshaped into a typed sum type
// (Design Note 2).
type Dimension struct {
	Name          string
	Datatype      datatype.Datatype
	Lo            []byte
	Hi            []byte
	TileExtent    []byte
	HasTileExtent bool
}

// Attribute describes one named, typed, per-cell value.
type Attribute struct {
	Name            string
	Datatype        datatype.Datatype
	CellValNum      uint32
	Compressor      datatype.Compressor
	CompressorLevel int32
}

// IsVar reports whether a has variable cell cardinality.
func (a Attribute) IsVar() bool { return a.CellValNum == datatype.VarNum }

// ArrayMetadata is the invariant bundle describing an array's schema plus,
// after Init, its derived geometry. It is mutable only until
// Init is called; thereafter every field is read-only (invariant I3).
type ArrayMetadata struct {
	arrayURI               uri.URI
	arrayType              datatype.ArrayType
	dims                   []Dimension
	attrs                  []Attribute
	cellOrder              datatype.Layout
	tileOrder              datatype.Layout
	capacity               uint64
	coordsCompression      datatype.Compressor
	coordsCompressionLevel int32

	initialized bool

	// derived, valid only once initialized is true (invariant I3)
	cellNumPerTile uint64
	cellSizes      []uint64
	coordsSize     uint64
	geometry       Geometry
}

// New returns an empty, mutable ArrayMetadata for arrayURI. Cell/tile order
// default to row-major and capacity defaults to 10000, matching the original's
// constructor defaults; callers override via the setters below before
// calling Init.
func New(arrayURI uri.URI) *ArrayMetadata {
	return &ArrayMetadata{
		arrayURI:  arrayURI,
		arrayType: datatype.Dense,
		cellOrder: datatype.RowMajor,
		tileOrder: datatype.RowMajor,
		capacity:  10000,
	}
}

func (m *ArrayMetadata) mustBeMutable() {
	if m.initialized {
		panic("arraymetadata: mutation after Init")
	}
}

// SetArrayType sets dense vs sparse.
func (m *ArrayMetadata) SetArrayType(t datatype.ArrayType) { m.mustBeMutable(); m.arrayType = t }

// SetCellOrder sets the intra-tile traversal order.
func (m *ArrayMetadata) SetCellOrder(l datatype.Layout) { m.mustBeMutable(); m.cellOrder = l }

// SetTileOrder sets the inter-tile traversal order.
func (m *ArrayMetadata) SetTileOrder(l datatype.Layout) { m.mustBeMutable(); m.tileOrder = l }

// SetCapacity sets the sparse-tile cell capacity.
func (m *ArrayMetadata) SetCapacity(c uint64) { m.mustBeMutable(); m.capacity = c }

// SetCoordsCompression sets the compressor applied to the coordinates
// attribute.
func (m *ArrayMetadata) SetCoordsCompression(c datatype.Compressor, level int32) {
	m.mustBeMutable()
	m.coordsCompression = c
	m.coordsCompressionLevel = level
}

// SetDimensions replaces the dimension list. All dimensions must share the
// same Datatype (invariant, see Check).
func (m *ArrayMetadata) SetDimensions(dims []Dimension) {
	m.mustBeMutable()
	m.dims = append([]Dimension(nil), dims...)
}

// AddAttribute appends attr to the schema.
func (m *ArrayMetadata) AddAttribute(attr Attribute) {
	m.mustBeMutable()
	m.attrs = append(m.attrs, attr)
}

// ArrayURI returns the array's identifier.
func (m *ArrayMetadata) ArrayURI() uri.URI { return m.arrayURI }

// ArrayType returns dense or sparse.
func (m *ArrayMetadata) ArrayType() datatype.ArrayType { return m.arrayType }

// DimNum returns the number of dimensions.
func (m *ArrayMetadata) DimNum() int { return len(m.dims) }

// Dimensions returns the dimension list; callers must not mutate it.
func (m *ArrayMetadata) Dimensions() []Dimension { return m.dims }

// Dimension returns the i-th dimension.
func (m *ArrayMetadata) Dimension(i int) Dimension { return m.dims[i] }

// AttributeNum returns the number of attributes.
func (m *ArrayMetadata) AttributeNum() int { return len(m.attrs) }

// Attributes returns the attribute list; callers must not mutate it.
func (m *ArrayMetadata) Attributes() []Attribute { return m.attrs }

// Attribute returns the attribute named name, and whether it was found.
func (m *ArrayMetadata) Attribute(name string) (Attribute, bool) {
	for _, a := range m.attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// CoordsType returns the (shared) coordinate datatype, or a zero value if
// there are no dimensions yet.
func (m *ArrayMetadata) CoordsType() datatype.Datatype {
	if len(m.dims) == 0 {
		return 0
	}
	return m.dims[0].Datatype
}

// CellOrder returns the intra-tile traversal order.
func (m *ArrayMetadata) CellOrder() datatype.Layout { return m.cellOrder }

// TileOrder returns the inter-tile traversal order.
func (m *ArrayMetadata) TileOrder() datatype.Layout { return m.tileOrder }

// Capacity returns the sparse-tile cell capacity.
func (m *ArrayMetadata) Capacity() uint64 { return m.capacity }

// CoordsCompression returns the coordinates compressor and level.
func (m *ArrayMetadata) CoordsCompression() (datatype.Compressor, int32) {
	return m.coordsCompression, m.coordsCompressionLevel
}

// IsInitialized reports whether Init has been called.
func (m *ArrayMetadata) IsInitialized() bool { return m.initialized }

// CellNumPerTile returns the dense per-tile cell count. Valid after Init.
func (m *ArrayMetadata) CellNumPerTile() uint64 { return m.cellNumPerTile }

// CellSize returns the fixed cell size of attribute i, or VarSentinelSize
// for variable-length attributes. Valid after Init.
func (m *ArrayMetadata) CellSize(i int) uint64 { return m.cellSizes[i] }

// CoordsSize returns dim_num * coord-type size. Valid after Init.
func (m *ArrayMetadata) CoordsSize() uint64 { return m.coordsSize }

// Geometry returns the coordinate-geometry algorithm set for this schema.
// Valid after Init.
func (m *ArrayMetadata) Geometry() Geometry { return m.geometry }

// DomainRange returns the whole domain range-encoded as
// [lo0,hi0,lo1,hi1,...], the same layout EncodeRange produces, suitable for
// passing to Geometry methods that take a range or subarray.
func (m *ArrayMetadata) DomainRange() []byte {
	out := make([]byte, 0, 2*len(m.dims)*int(m.dims[0].Datatype.Size()))
	for _, d := range m.dims {
		out = append(out, d.Lo...)
		out = append(out, d.Hi...)
	}
	return out
}

// Clone returns a deep, independent, still-initialized copy of m.
func (m *ArrayMetadata) Clone() *ArrayMetadata {
	out := *m
	out.dims = append([]Dimension(nil), m.dims...)
	for i, d := range out.dims {
		out.dims[i].Lo = append([]byte(nil), d.Lo...)
		out.dims[i].Hi = append([]byte(nil), d.Hi...)
		out.dims[i].TileExtent = append([]byte(nil), d.TileExtent...)
	}
	out.attrs = append([]Attribute(nil), m.attrs...)
	out.cellSizes = append([]uint64(nil), m.cellSizes...)
	return &out
}
