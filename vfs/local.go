// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package vfs

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/arraydb/storagecore/uri"
)

// Local is a POSIX-backed VFS rooted at a directory on the local disk. It is
// the one reference backend used to exercise the VFS contract end to end;
// object-store backends are out of scope and register under their
// own scheme the same way.
type Local struct {
	log *zap.Logger
	root string
}

// NewLocal returns a Local VFS rooted at root. root is created if it does
// not already exist.
func NewLocal(log *zap.Logger, root string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, Error.Wrap(err)
	}
	return &Local{log: log, root: root}, nil
}

func (l *Local) nativePath(u uri.URI) string {
	return filepath.Join(l.root, filepath.FromSlash(u.Path()))
}

// CreateDir creates the directory at u, including parents.
func (l *Local) CreateDir(u uri.URI) error {
	if err := os.MkdirAll(l.nativePath(u), 0o755); err != nil {
		return Error.New("create_dir %q: %v", u, err)
	}
	return nil
}

// CreateFile creates an empty file at u, including parent directories.
func (l *Local) CreateFile(u uri.URI) error {
	if err := os.MkdirAll(filepath.Dir(l.nativePath(u)), 0o755); err != nil {
		return Error.New("create_file %q: %v", u, err)
	}
	f, err := os.OpenFile(l.nativePath(u), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return Error.New("create_file %q: %v", u, err)
	}
	return f.Close()
}

// IsDir reports whether u names a directory.
func (l *Local) IsDir(u uri.URI) bool {
	fi, err := os.Stat(l.nativePath(u))
	return err == nil && fi.IsDir()
}

// IsFile reports whether u names a regular file.
func (l *Local) IsFile(u uri.URI) bool {
	fi, err := os.Stat(l.nativePath(u))
	return err == nil && fi.Mode().IsRegular()
}

// FileSize returns the size in bytes of the file at u.
func (l *Local) FileSize(u uri.URI) (uint64, error) {
	fi, err := os.Stat(l.nativePath(u))
	if err != nil {
		return 0, Error.New("file_size %q: %v", u, err)
	}
	return uint64(fi.Size()), nil
}

// Read fills dst from the file at u starting at offset.
func (l *Local) Read(u uri.URI, offset uint64, dst []byte) error {
	f, err := os.Open(l.nativePath(u))
	if err != nil {
		return Error.New("read %q: %v", u, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Seek(int64(offset), io.SeekStart); err != nil {
		return Error.New("read %q: %v", u, err)
	}
	if _, err := io.ReadFull(f, dst); err != nil {
		return Error.New("read %q: %v", u, err)
	}
	return nil
}

// Write appends src to the file at u, creating it (and parent directories)
// if necessary.
func (l *Local) Write(u uri.URI, src []byte) error {
	if err := os.MkdirAll(filepath.Dir(l.nativePath(u)), 0o755); err != nil {
		return Error.New("write %q: %v", u, err)
	}
	f, err := os.OpenFile(l.nativePath(u), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return Error.New("write %q: %v", u, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(src); err != nil {
		return Error.New("write %q: %v", u, err)
	}
	return nil
}

// Sync flushes the file at u to stable storage.
func (l *Local) Sync(u uri.URI) error {
	f, err := os.OpenFile(l.nativePath(u), os.O_WRONLY, 0o644)
	if err != nil {
		return Error.New("sync %q: %v", u, err)
	}
	defer func() { _ = f.Close() }()

	if err := f.Sync(); err != nil {
		return Error.New("sync %q: %v", u, err)
	}
	return nil
}

// Remove deletes the file at u.
func (l *Local) Remove(u uri.URI) error {
	if err := os.Remove(l.nativePath(u)); err != nil && !os.IsNotExist(err) {
		return Error.New("remove %q: %v", u, err)
	}
	return nil
}

// RemoveDir recursively deletes the directory at u.
func (l *Local) RemoveDir(u uri.URI) error {
	if err := os.RemoveAll(l.nativePath(u)); err != nil {
		return Error.New("remove_dir %q: %v", u, err)
	}
	return nil
}

// Move renames src to dst. If dst exists and force is false, the move
// fails with AlreadyExistsError semantics.
func (l *Local) Move(src, dst uri.URI, force bool) error {
	dstPath := l.nativePath(dst)
	if !force {
		if _, err := os.Stat(dstPath); err == nil {
			return Error.New("move %q -> %q: destination exists", src, dst)
		}
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return Error.New("move %q -> %q: %v", src, dst, err)
	}
	if err := os.Rename(l.nativePath(src), dstPath); err != nil {
		return Error.New("move %q -> %q: %v", src, dst, err)
	}
	return nil
}

// Ls lists the immediate children of the directory at u, sorted by name.
func (l *Local) Ls(u uri.URI) ([]uri.URI, error) {
	entries, err := os.ReadDir(l.nativePath(u))
	if err != nil {
		return nil, Error.New("ls %q: %v", u, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	out := make([]uri.URI, 0, len(names))
	for _, n := range names {
		out = append(out, u.Join(n))
	}
	return out, nil
}

var _ VFS = (*Local)(nil)
