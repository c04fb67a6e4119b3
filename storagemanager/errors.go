// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

// Package storagemanager implements the central coordinator: the array
// catalog, the fair lock manager, the K-priority-class (default two) async
// query scheduler, object lifecycle operations, and query init/submit/finalize.
package storagemanager

import "github.com/zeebo/errs"

// Error is the storagemanager error class.
var Error = errs.Class("storagemanager error")

// ErrNotFound covers array/fragment/attribute lookups that miss.
var ErrNotFound = errs.Class("not found")

// ErrAlreadyExists covers array_create on an existing array, or move
// without force onto an existing destination.
var ErrAlreadyExists = errs.Class("already exists")

// ErrInvalidState covers query_submit before query_init, double finalize.
var ErrInvalidState = errs.Class("invalid state")

// ErrDomain covers subarray-outside-domain validation failures at
// query_init.
var ErrDomain = errs.Class("domain error")
