// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

// Package catalog holds the StorageManager's per-array open state: the
// refcounted OpenArray and the fair reader/writer LockManager.
package catalog

import "github.com/zeebo/errs"

// Error is the catalog error class.
var Error = errs.Class("catalog error")

// ErrLock is returned when a caller unlocks an array it does not hold.
var ErrLock = errs.Class("lock error")
