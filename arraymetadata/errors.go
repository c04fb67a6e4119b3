// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package arraymetadata

import "github.com/zeebo/errs"

// Error is the default arraymetadata error class.
var Error = errs.Class("arraymetadata error")

// ErrSchema classifies invariant violations detected by Check/Init.
var ErrSchema = errs.Class("schema error")

// ErrDomain classifies coordinate/subarray values outside the array domain.
var ErrDomain = errs.Class("domain error")

// ErrDeserialize classifies codec failures.
var ErrDeserialize = errs.Class("deserialize error")
