// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package arraymetadata

import (
	"encoding/binary"
	"math"
)

// Number is the coordinate type-set the geometry algorithms are
// monomorphized over, replacing the original's C++ template parameter
// (Design Note 1).
type Number interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

// readT decodes a single little-endian value of T from b, which must be
// exactly sizeof(T) bytes.
func readT[T Number](b []byte) T {
	var zero T
	switch any(zero).(type) {
	case int8:
		return T(int8(b[0]))
	case uint8:
		return T(b[0])
	case int16:
		return T(int16(binary.LittleEndian.Uint16(b)))
	case uint16:
		return T(binary.LittleEndian.Uint16(b))
	case int32:
		return T(int32(binary.LittleEndian.Uint32(b)))
	case uint32:
		return T(binary.LittleEndian.Uint32(b))
	case int64:
		return T(int64(binary.LittleEndian.Uint64(b)))
	case uint64:
		return T(binary.LittleEndian.Uint64(b))
	case float32:
		return T(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	case float64:
		return T(math.Float64frombits(binary.LittleEndian.Uint64(b)))
	default:
		panic("arraymetadata: unsupported coordinate type")
	}
}

// writeT encodes v little-endian into b, which must be exactly sizeof(T)
// bytes.
func writeT[T Number](v T, b []byte) {
	switch any(*new(T)).(type) {
	case int8:
		b[0] = byte(int8(v))
	case uint8:
		b[0] = byte(v)
	case int16:
		binary.LittleEndian.PutUint16(b, uint16(int16(v)))
	case uint16:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case int32:
		binary.LittleEndian.PutUint32(b, uint32(int32(v)))
	case uint32:
		binary.LittleEndian.PutUint32(b, uint32(v))
	case int64:
		binary.LittleEndian.PutUint64(b, uint64(int64(v)))
	case uint64:
		binary.LittleEndian.PutUint64(b, uint64(v))
	case float32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
	case float64:
		binary.LittleEndian.PutUint64(b, math.Float64bits(float64(v)))
	default:
		panic("arraymetadata: unsupported coordinate type")
	}
}

// decodeVector decodes n consecutive sizeof(T)-byte values from raw.
func decodeVector[T Number](raw []byte, n int) []T {
	out := make([]T, n)
	var zero T
	sz := sizeOf(zero)
	for i := 0; i < n; i++ {
		out[i] = readT[T](raw[i*sz : (i+1)*sz])
	}
	return out
}

func sizeOf[T Number](zero T) int {
	switch any(zero).(type) {
	case int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	default:
		return 8
	}
}
