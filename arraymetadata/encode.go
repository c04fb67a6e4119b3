// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package arraymetadata

// EncodeCoords encodes a typed coordinate vector into the little-endian raw
// form Geometry methods take. Exported for callers (and tests) that build
// coordinates outside the codec, e.g. from a query's typed subarray.
func EncodeCoords[T Number](c []T) []byte {
	sz := sizeOf(*new(T))
	out := make([]byte, len(c)*sz)
	for i, v := range c {
		writeT[T](v, out[i*sz:(i+1)*sz])
	}
	return out
}

// EncodeRange encodes a typed [lo, hi] pair per dimension into the
// little-endian raw form Geometry methods take.
func EncodeRange[T Number](lo, hi []T) []byte {
	sz := sizeOf(*new(T))
	out := make([]byte, 2*len(lo)*sz)
	for i := range lo {
		writeT[T](lo[i], out[2*i*sz:2*i*sz+sz])
		writeT[T](hi[i], out[(2*i+1)*sz:(2*i+1)*sz+sz])
	}
	return out
}

// DecodeCoords decodes a raw coordinate vector back into typed form.
func DecodeCoords[T Number](raw []byte) []T {
	return decodeVector[T](raw, len(raw)/sizeOf(*new(T)))
}
