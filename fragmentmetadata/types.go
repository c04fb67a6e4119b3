// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package fragmentmetadata

import "github.com/arraydb/storagecore/uri"

// TileIndex is the per-tile bookkeeping a fragment carries: the tile's
// minimum bounding rectangle over written coordinates (range-encoded, see
// arraymetadata.EncodeRange) and the first/last cell coordinates actually
// written to the tile in cell order.
type TileIndex struct {
	MBR []byte
	BoundingCoords []byte
}

// AttributeIndex is one attribute's per-tile byte offsets and sizes within
// the fragment's data file.
type AttributeIndex struct {
	OffsetVec []uint64
	SizeVec []uint64
}

// FragmentMetadata is the per-fragment bounding box, tile index, and
// per-attribute layout. It is built once by load/Deserialize and
// never mutated afterwards.
type FragmentMetadata struct {
	fragmentURI uri.URI
	nonEmptyDomain []byte
	tiles []TileIndex
	attrs map[string]AttributeIndex
	attrNames []string // preserves serialization order
}

// New returns a FragmentMetadata holding the given bounds, tile index and
// attribute layout, ready to be serialized. fragmentURI must already encode
// <timestamp>_<pid> (see
// NewFragmentURI).
func New(fragmentURI uri.URI, nonEmptyDomain []byte, tiles []TileIndex, attrs map[string]AttributeIndex, attrNames []string) *FragmentMetadata {
	return &FragmentMetadata{
		fragmentURI: fragmentURI,
		nonEmptyDomain: append([]byte(nil), nonEmptyDomain...),
		tiles: append([]TileIndex(nil), tiles...),
		attrs: attrs,
		attrNames: append([]string(nil), attrNames...),
	}
}

// FragmentURI returns the fragment's directory URI.
func (f *FragmentMetadata) FragmentURI() uri.URI { return f.fragmentURI }

// NonEmptyDomain returns the tightest bounding box of written cells,
// range-encoded.
func (f *FragmentMetadata) NonEmptyDomain() []byte { return f.nonEmptyDomain }

// TileNum returns the number of tiles this fragment wrote.
func (f *FragmentMetadata) TileNum() int { return len(f.tiles) }

// Tile returns the i-th tile's index.
func (f *FragmentMetadata) Tile(i int) TileIndex { return f.tiles[i] }

// AttributeNames returns the attribute names covered by this fragment, in
// serialization order.
func (f *FragmentMetadata) AttributeNames() []string { return f.attrNames }

// Attribute returns attribute name's offset/size index, and whether it was
// found.
func (f *FragmentMetadata) Attribute(name string) (AttributeIndex, bool) {
	idx, ok := f.attrs[name]
	return idx, ok
}
