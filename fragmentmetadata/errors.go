// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

// Package fragmentmetadata holds per-fragment bounds, tile index and codec
// logic.
package fragmentmetadata

import "github.com/zeebo/errs"

// Error is the fragmentmetadata error class.
var Error = errs.Class("fragmentmetadata error")

// ErrDeserialize is returned when a read runs past the end of a fragment
// metadata blob.
var ErrDeserialize = errs.Class("deserialize error")
