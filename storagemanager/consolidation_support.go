// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package storagemanager

import (
	"context"

	"github.com/arraydb/storagecore/uri"
)

// LockExclusive and UnlockExclusive expose the catalog's exclusive-lock
// primitive to a Consolidator, bypassing the
// shared-only locking query_init uses: consolidation needs exclusivity
// against every other query and against itself re-entering via
// query_init, so it talks to the lock manager directly rather than going
// through ArrayOpen/ArrayClose.
func (m *StorageManager) LockExclusive(arrayURI uri.URI) {
	m.lockManager.Lock(arrayURI, false)
}

// UnlockExclusive releases the lock taken by LockExclusive.
func (m *StorageManager) UnlockExclusive(arrayURI uri.URI) error {
	return m.lockManager.Unlock(arrayURI, false)
}

// RemoveFragment deletes a fragment directory outright, without requiring
// it to already carry its sentinel file: a consolidation that fails
// partway through writing a new fragment must be able to remove the
// incomplete directory it left behind.
func (m *StorageManager) RemoveFragment(ctx context.Context, fragmentURI uri.URI) (err error) {
	defer mon.Task()(&ctx)(&err)
	return m.vfs.RemoveDir(fragmentURI)
}
