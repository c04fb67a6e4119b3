// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package storagemanager

import (
	"sync"

	"github.com/spacemonkeygo/monkit/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arraydb/storagecore/catalog"
	"github.com/arraydb/storagecore/config"
	"github.com/arraydb/storagecore/query"
	"github.com/arraydb/storagecore/uri"
	"github.com/arraydb/storagecore/vfs"
)

var mon = monkit.Package()

// asyncItem is one query queued for asynchronous submission.
type asyncItem struct {
	q query.Query
	cb query.Callback
}

// queryState tracks the open-array/lock state a single query_init call
// established, so query_submit can validate ordering and query_finalize
// knows exactly what to release. Keyed by the Query's identity.
type queryState struct {
	arrayURI uri.URI
	openArray *catalog.OpenArray
	submitted bool
	finalized bool
}

// StorageManager is the central coordinator: it owns the VFS, the
// consolidator, the open-array catalog, the lock manager, and the K async
// worker queues (generalized from a hardcoded two async classes to a
// configurable K, default 2).
type StorageManager struct {
	log *zap.Logger
	cfg config.Config
	vfs vfs.VFS
	consolidator query.Consolidator

	openArrayMu sync.Mutex // open_array_mtx_
	openArrays map[string]*catalog.OpenArray

	lockManager *catalog.LockManager // owns locked_array_mtx_/locked_array_cv_

	queryMu sync.Mutex
	queries map[query.Query]*queryState

	asyncQueues []chan asyncItem
	asyncDone chan struct{}
	workers errgroup.Group
	closeOnce sync.Once
}

// New constructs a StorageManager and starts its K async worker goroutines,
// each running asyncProcessQueries(i), in the style of
// storagenode/pieces.Deleter's errgroup-based worker pool.
func New(log *zap.Logger, cfg config.Config, backend vfs.VFS, consolidator query.Consolidator) *StorageManager {
	classes := cfg.AsyncClasses
	if classes <= 0 {
		classes = 2
	}
	capacity := cfg.AsyncQueueCapacity
	if capacity <= 0 {
		capacity = 1000
	}

	m := &StorageManager{
		log: log,
		cfg: cfg,
		vfs: backend,
		consolidator: consolidator,
		openArrays: make(map[string]*catalog.OpenArray),
		lockManager: catalog.NewLockManager(),
		queries: make(map[query.Query]*queryState),
		asyncQueues: make([]chan asyncItem, classes),
		asyncDone: make(chan struct{}),
	}
	for i := range m.asyncQueues {
		m.asyncQueues[i] = make(chan asyncItem, capacity)
	}
	for i := range m.asyncQueues {
		i := i
		m.workers.Go(func() error {
			m.asyncProcessQueries(i)
			return nil
		})
	}
	return m
}

// Close signals shutdown, joins every worker goroutine, and logs (rather
// than asserts, per Go convention) if the catalog was not fully drained by
// callers first.
func (m *StorageManager) Close() error {
	var err error
	m.closeOnce.Do(func() {
		close(m.asyncDone)
		_ = m.workers.Wait()

		m.openArrayMu.Lock()
		remaining := len(m.openArrays)
		m.openArrayMu.Unlock()
		if remaining > 0 {
			m.log.Warn("storage manager closed with open arrays remaining", zap.Int("count", remaining))
		}
	})
	return err
}

// asyncProcessQueries is the worker loop: wait for work or shutdown, pop and
// process one item, loop. Shutdown drains neither queue: queued-but-unstarted
// items are silently dropped once asyncDone fires.
func (m *StorageManager) asyncProcessQueries(class int) {
	queue := m.asyncQueues[class]
	for {
		select {
		case item := <-queue:
			err := item.q.Submit()
			if item.cb != nil {
				item.cb(err)
			}
		case <-m.asyncDone:
			return
		}
	}
}
