// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package catalog

import (
	"sync"

	"github.com/arraydb/storagecore/uri"
)

// lockedArray tracks, for one array URI, the count of active shared
// holders, whether an exclusive holder is present, and the count of
// exclusive requests currently waiting. All
// fields are guarded by the owning LockManager's mutex; there is
// deliberately no per-entry mutex, mirroring a single shared
// mutex/cond pair across every array URI.
type lockedArray struct {
	shared           int
	exclusive        bool
	pendingExclusive int
}

// LockManager implements a fair reader/writer lock protocol
// across every array URI, grounded on the sync.Cond pattern
// storagenode/retain.Service uses for its own single-condition work queue.
type LockManager struct {
	mu     sync.Mutex
	cond   *sync.Cond
	arrays map[string]*lockedArray
}

// NewLockManager returns an empty LockManager.
func NewLockManager() *LockManager {
	m := &LockManager{arrays: make(map[string]*lockedArray)}
	m.cond = sync.NewCond(&m.mu)
	return m
}

func (m *LockManager) entryLocked(u uri.URI) *lockedArray {
	key := u.String()
	e, ok := m.arrays[key]
	if !ok {
		e = &lockedArray{}
		m.arrays[key] = e
	}
	return e
}

// Lock acquires a shared or exclusive hold on u: shared waits only for an
// exclusive holder or a pending exclusive request (fairness: a waiting
// exclusive request blocks new shared requests); exclusive waits for both
// the shared count to reach zero and any other exclusive holder to release.
func (m *LockManager) Lock(u uri.URI, shared bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entryLocked(u)

	if shared {
		for e.exclusive || e.pendingExclusive > 0 {
			m.cond.Wait()
		}
		e.shared++
		return
	}

	e.pendingExclusive++
	for e.exclusive || e.shared > 0 {
		m.cond.Wait()
	}
	e.pendingExclusive--
	e.exclusive = true
}

// Unlock releases a shared or exclusive hold on u and wakes any waiters.
// It returns ErrLock if u has no matching holder.
func (m *LockManager) Unlock(u uri.URI, shared bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.arrays[u.String()]
	if !ok {
		return ErrLock.New("array %q: not locked", u)
	}

	if shared {
		if e.shared == 0 {
			return ErrLock.New("array %q: no shared holder to release", u)
		}
		e.shared--
	} else {
		if !e.exclusive {
			return ErrLock.New("array %q: no exclusive holder to release", u)
		}
		e.exclusive = false
	}

	if e.shared == 0 && !e.exclusive && e.pendingExclusive == 0 {
		delete(m.arrays, u.String())
	}
	m.cond.Broadcast()
	return nil
}

// State returns u's current shared holder count and exclusive flag, for
// tests and diagnostics.
func (m *LockManager) State(u uri.URI) (shared int, exclusive bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.arrays[u.String()]
	if !ok {
		return 0, false
	}
	return e.shared, e.exclusive
}
