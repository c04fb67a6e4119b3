// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

// Package vfs defines the virtual-filesystem capability set that the
// storage manager mediates all persistent I/O through. Backend
// implementations are external collaborators; this package only fixes the
// contract plus one reference backend (local) used to exercise it.
package vfs

import (
	"github.com/zeebo/errs"

	"github.com/arraydb/storagecore/uri"
)

// Error is the VFS error class. Concrete I/O failures are wrapped with this
// class and annotated with the offending path
var Error = errs.Class("vfs error")

// VFS is the capability set every backend must provide. All operations are
// synchronous; implementations must be safe for concurrent use by multiple
// goroutines.
type VFS interface {
	CreateDir(u uri.URI) error
	CreateFile(u uri.URI) error
	IsDir(u uri.URI) bool
	IsFile(u uri.URI) bool
	FileSize(u uri.URI) (uint64, error)
	Read(u uri.URI, offset uint64, dst []byte) error
	Write(u uri.URI, src []byte) error
	Sync(u uri.URI) error
	Remove(u uri.URI) error
	Move(src, dst uri.URI, force bool) error
	RemoveDir(u uri.URI) error
	Ls(u uri.URI) ([]uri.URI, error)
}

// Scheme is a URI scheme name, e.g. "file".
type Scheme = string
