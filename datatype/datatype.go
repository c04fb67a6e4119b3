// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

// Package datatype holds the small closed vocabularies shared across the
// storage engine: coordinate/attribute datatypes, compressors, array type,
// cell/tile layout, object type and query type.
package datatype

import "github.com/zeebo/errs"

// Error is the datatype error class, used for unknown enum values decoded
// from persisted metadata.
var Error = errs.Class("datatype error")

// Datatype enumerates the coordinate and attribute cell types. Wire values
// match the byte tag used by the ArrayMetadata codec.
type Datatype uint8

const (
	Int8 Datatype = iota
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
)

// VarNum is the cell_val_num sentinel meaning "variable length".
const VarNum uint32 = ^uint32(0)

// VarSentinelSize is the cell_sizes[] placeholder for variable-length
// attributes.
const VarSentinelSize uint64 = ^uint64(0)

// Size returns the fixed wire/in-memory size of a single value of d, in
// bytes.
func (d Datatype) Size() uint64 {
	switch d {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

// IsValid reports whether d is one of the ten supported datatypes.
func (d Datatype) IsValid() bool { return d <= Float64 }

// String implements fmt.Stringer.
func (d Datatype) String() string {
	switch d {
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Int64:
		return "int64"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "invalid"
	}
}

// ArrayType distinguishes dense from sparse arrays.
type ArrayType uint8

const (
	Dense ArrayType = iota
	Sparse
)

func (t ArrayType) String() string {
	if t == Sparse {
		return "sparse"
	}
	return "dense"
}

// Layout is the cell or tile traversal order.
type Layout uint8

const (
	RowMajor Layout = iota
	ColMajor
)

func (l Layout) String() string {
	if l == ColMajor {
		return "col-major"
	}
	return "row-major"
}

// Compressor enumerates the supported compressors for attributes and
// coordinates.
type Compressor uint8

const (
	NoCompression Compressor = iota
	Gzip
	Zstd
	LZ4
	RLE
	Bzip2
	DoubleDelta
	Blosc
)

func (c Compressor) String() string {
	switch c {
	case NoCompression:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	case RLE:
		return "rle"
	case Bzip2:
		return "bzip2"
	case DoubleDelta:
		return "double-delta"
	case Blosc:
		return "blosc"
	default:
		return "invalid"
	}
}

// IsValid reports whether c is a known compressor tag.
func (c Compressor) IsValid() bool { return c <= Blosc }

// ObjectType is the result of inspecting a URI's sentinel files.
type ObjectType uint8

const (
	ObjectInvalid ObjectType = iota
	ObjectGroup
	ObjectArray
	ObjectFragment
)

func (o ObjectType) String() string {
	switch o {
	case ObjectGroup:
		return "group"
	case ObjectArray:
		return "array"
	case ObjectFragment:
		return "fragment"
	default:
		return "invalid"
	}
}

// QueryType is read or write.
type QueryType uint8

const (
	Read QueryType = iota
	Write
)

func (q QueryType) String() string {
	if q == Write {
		return "write"
	}
	return "read"
}
