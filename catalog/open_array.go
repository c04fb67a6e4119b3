// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package catalog

import (
	"sync"

	"github.com/arraydb/storagecore/arraymetadata"
	"github.com/arraydb/storagecore/fragmentmetadata"
	"github.com/arraydb/storagecore/uri"
)

// OpenArray is the in-memory state for one currently-open array: its owned
// ArrayMetadata, the fragments it has loaded, and an open-reference count.
// It is created on the first query init for a URI and
// destroyed when the refcount returns to zero.
type OpenArray struct {
	mu        sync.Mutex
	meta      *arraymetadata.ArrayMetadata
	fragments []*fragmentmetadata.FragmentMetadata
	refCount  int
}

// NewOpenArray wraps an already-loaded ArrayMetadata and its fragment set
// with a refcount of zero; callers add the first reference via IncRef.
func NewOpenArray(meta *arraymetadata.ArrayMetadata, fragments []*fragmentmetadata.FragmentMetadata) *OpenArray {
	return &OpenArray{
		meta:      meta,
		fragments: fragments,
	}
}

// Metadata returns the array's schema and derived geometry.
func (o *OpenArray) Metadata() *arraymetadata.ArrayMetadata {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.meta
}

// Fragments returns the currently-loaded fragment set, ordered per
// fragmentmetadata canonical order.
func (o *OpenArray) Fragments() []*fragmentmetadata.FragmentMetadata {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]*fragmentmetadata.FragmentMetadata(nil), o.fragments...)
}

// FragmentURIs returns every loaded fragment's URI, irrespective of
// subarray overlap: fragment pruning by MBR is left to the query layer,
// so this method never filters by overlap.
func (o *OpenArray) FragmentURIs() []uri.URI {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]uri.URI, len(o.fragments))
	for i, f := range o.fragments {
		out[i] = f.FragmentURI()
	}
	return out
}

// AddFragment appends a newly-written fragment to the open array's set,
// e.g. after a write query commits.
func (o *OpenArray) AddFragment(f *fragmentmetadata.FragmentMetadata) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fragments = append(o.fragments, f)
}

// SetFragments replaces the fragment set wholesale, used by consolidation
// to swap superseded fragments for the new target.
func (o *OpenArray) SetFragments(fragments []*fragmentmetadata.FragmentMetadata) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fragments = fragments
}

// IncRef increments the open-reference count and returns the new value.
func (o *OpenArray) IncRef() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.refCount++
	return o.refCount
}

// DecRef decrements the open-reference count and returns the new value.
// Callers remove the OpenArray from the catalog once this reaches zero.
func (o *OpenArray) DecRef() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.refCount--
	return o.refCount
}

// RefCount returns the current open-reference count.
func (o *OpenArray) RefCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.refCount
}
