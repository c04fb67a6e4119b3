// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

// Package consolidate implements the fragment-merging algorithm:
// exclusively lock an array, replay every existing fragment through
// one synthetic write query into a single new fragment, then swap it in
// for the ones it supersedes. It depends on storagemanager only through
// the narrow Manager interface below, so storagemanager can in turn depend
// on a Consolidator (via query.Consolidator) without an import cycle.
package consolidate

import (
	"context"
	"os"
	"time"

	"github.com/spacemonkeygo/monkit/v3"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/arraydb/storagecore/arraymetadata"
	"github.com/arraydb/storagecore/fragmentmetadata"
	"github.com/arraydb/storagecore/query"
	"github.com/arraydb/storagecore/uri"
)

var mon = monkit.Package()

// Error is the consolidate error class.
var Error = errs.Class("consolidate error")

// Manager is the slice of StorageManager a Consolidator needs: exclusive
// locking, a consistent read of an array's current metadata and fragment
// set, and the ability to remove a fragment directory. storagemanager's
// StorageManager satisfies this structurally; this package never imports
// it.
type Manager interface {
	LockExclusive(arrayURI uri.URI)
	UnlockExclusive(arrayURI uri.URI) error
	Load(ctx context.Context, arrayURI uri.URI) (*arraymetadata.ArrayMetadata, []*fragmentmetadata.FragmentMetadata, error)
	RemoveFragment(ctx context.Context, fragmentURI uri.URI) error
}

// QueryFactory builds the synthetic write query a Consolidator issues
// against targetFragmentURI. Query construction is
// caller-owned, mirroring query.Query's opacity to the core.
type QueryFactory func(arrayURI, targetFragmentURI uri.URI) query.Query

// Consolidator is the concrete query.Consolidator StorageManager invokes
// from ArrayConsolidate.
type Consolidator struct {
	log *zap.Logger
	mgr Manager
	newQuery QueryFactory
}

var _ query.Consolidator = (*Consolidator)(nil)

// New returns a Consolidator that merges fragments via mgr and newQuery.
func New(log *zap.Logger, mgr Manager, newQuery QueryFactory) *Consolidator {
	return &Consolidator{log: log, mgr: mgr, newQuery: newQuery}
}

// Consolidate runs the fragment-merging algorithm against arrayURI. It
// always releases the exclusive lock it takes, and on any failure after the
// target fragment directory may have been created, removes it before
// returning the error — the original fragment set is left untouched on
// every error path.
func (c *Consolidator) Consolidate(arrayURI uri.URI) (err error) {
	ctx := context.Background()
	defer mon.Task()(&ctx)(&err)

	c.mgr.LockExclusive(arrayURI)
	defer func() {
		if unlockErr := c.mgr.UnlockExclusive(arrayURI); unlockErr != nil && err == nil {
			err = Error.Wrap(unlockErr)
		}
	}()

	meta, fragments, err := c.mgr.Load(ctx, arrayURI)
	if err != nil {
		return Error.Wrap(err)
	}
	if len(fragments) < 2 {
		c.log.Debug("nothing to consolidate", zap.String("array", arrayURI.String()), zap.Int("fragments", len(fragments)))
		return nil
	}

	target := fragmentmetadata.NewFragmentURI(arrayURI, time.Now().UnixNano(), os.Getpid())

	q := c.newQuery(arrayURI, target)
	if err := q.Attach(meta, fragments); err != nil {
		return Error.Wrap(err)
	}
	if err := q.Submit(); err != nil {
		if rmErr := c.mgr.RemoveFragment(ctx, target); rmErr != nil {
			c.log.Error("failed to remove partial consolidation fragment",
				zap.String("fragment", target.String()), zap.Error(rmErr))
		}
		return Error.Wrap(err)
	}
	if err := q.Finalize(); err != nil {
		if rmErr := c.mgr.RemoveFragment(ctx, target); rmErr != nil {
			c.log.Error("failed to remove partial consolidation fragment",
				zap.String("fragment", target.String()), zap.Error(rmErr))
		}
		return Error.Wrap(err)
	}

	for _, f := range fragments {
		if err := c.mgr.RemoveFragment(ctx, f.FragmentURI()); err != nil {
			c.log.Warn("failed to remove superseded fragment",
				zap.String("fragment", f.FragmentURI().String()), zap.Error(err))
		}
	}
	c.log.Info("consolidated array",
		zap.String("array", arrayURI.String()),
		zap.Int("fragments_merged", len(fragments)),
		zap.String("target", target.String()))
	return nil
}
