// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package storagemanager

import (
	"context"

	"go.uber.org/zap"

	"github.com/arraydb/storagecore/datatype"
	"github.com/arraydb/storagecore/uri"
)

// Sentinel file/dir names used to type an object on inspection: the actual
// names the original writes, not placeholders, so ObjectType round-trips
// against what GroupCreate/ArrayCreate actually leave on disk.
const (
	groupSentinelFile = "__tiledb_group"
	arrayMetadataFileName = "__array_metadata.tdb"
	fragmentMetadataFile = "__fragment_metadata.tdb"
)

// GroupCreate creates a directory at u plus the sentinel file marking it a
// group.
func (m *StorageManager) GroupCreate(ctx context.Context, u uri.URI) (err error) {
	defer mon.Task()(&ctx)(&err)

	if m.vfs.IsDir(u) {
		return ErrAlreadyExists.New("group %q already exists", u)
	}
	if err := m.vfs.CreateDir(u); err != nil {
		return Error.Wrap(err)
	}
	if err := m.vfs.CreateFile(u.Join(groupSentinelFile)); err != nil {
		return Error.Wrap(err)
	}
	m.log.Debug("group created", zap.String("uri", u.String()))
	return nil
}

// ObjectType inspects u's sentinel files and returns one of
// {group, array, fragment, invalid}.
func (m *StorageManager) ObjectType(ctx context.Context, u uri.URI) datatype.ObjectType {
	defer mon.Task()(&ctx)(nil)

	if !m.vfs.IsDir(u) {
		return datatype.ObjectInvalid
	}
	switch {
	case m.vfs.IsFile(u.Join(groupSentinelFile)):
		return datatype.ObjectGroup
	case m.vfs.IsFile(u.Join(arrayMetadataFileName)):
		return datatype.ObjectArray
	case m.vfs.IsFile(u.Join(fragmentMetadataFile)):
		return datatype.ObjectFragment
	default:
		return datatype.ObjectInvalid
	}
}

// RemovePath refuses to remove paths that are not recognized storagecore
// objects.
func (m *StorageManager) RemovePath(ctx context.Context, u uri.URI) (err error) {
	defer mon.Task()(&ctx)(&err)

	if m.ObjectType(ctx, u) == datatype.ObjectInvalid {
		return ErrNotFound.New("path %q is not a recognized object", u)
	}
	if err := m.vfs.RemoveDir(u); err != nil {
		return Error.Wrap(err)
	}
	return nil
}

// Move renames old to new, refusing when new exists unless force is set.
func (m *StorageManager) Move(ctx context.Context, oldURI, newURI uri.URI, force bool) (err error) {
	defer mon.Task()(&ctx)(&err)

	if !force && m.vfs.IsDir(newURI) {
		return ErrAlreadyExists.New("move %q -> %q: destination exists", oldURI, newURI)
	}
	if err := m.vfs.Move(oldURI, newURI, force); err != nil {
		return Error.Wrap(err)
	}
	return nil
}
