// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package query

import (
	"sync/atomic"

	"github.com/arraydb/storagecore/arraymetadata"
	"github.com/arraydb/storagecore/fragmentmetadata"
	"github.com/arraydb/storagecore/uri"
)

// Stub is a minimal Query implementation used by storagemanager and
// consolidate tests to exercise init/submit/finalize without a real
// execution engine, mirroring the fake stores storagenode/pieces tests
// build for Store.
type Stub struct {
	ArrayURIValue uri.URI
	TypeValue Type
	LayoutValue Layout
	SubarrayValue []byte
	AttributesValue []string
	ConsolFragmentURI uri.URI

	SubmitFunc func() error
	FinalizeFunc func() error

	attached int32
	submits int32
	finals int32

	meta *arraymetadata.ArrayMetadata
	fragments []*fragmentmetadata.FragmentMetadata
}

var _ Query = (*Stub)(nil)

func (s *Stub) ArrayURI() uri.URI { return s.ArrayURIValue }
func (s *Stub) Type() Type { return s.TypeValue }
func (s *Stub) Layout() Layout { return s.LayoutValue }
func (s *Stub) Subarray() []byte { return s.SubarrayValue }
func (s *Stub) Attributes() []string { return s.AttributesValue }
func (s *Stub) ConsolidationFragmentURI() uri.URI { return s.ConsolFragmentURI }

// Attach records the bound metadata/fragments and increments a counter
// tests can assert was called exactly once.
func (s *Stub) Attach(meta *arraymetadata.ArrayMetadata, fragments []*fragmentmetadata.FragmentMetadata) error {
	atomic.AddInt32(&s.attached, 1)
	s.meta = meta
	s.fragments = fragments
	return nil
}

// Submit runs SubmitFunc if set, else succeeds trivially.
func (s *Stub) Submit() error {
	atomic.AddInt32(&s.submits, 1)
	if s.SubmitFunc != nil {
		return s.SubmitFunc()
	}
	return nil
}

// Finalize runs FinalizeFunc if set, else succeeds trivially.
func (s *Stub) Finalize() error {
	atomic.AddInt32(&s.finals, 1)
	if s.FinalizeFunc != nil {
		return s.FinalizeFunc()
	}
	return nil
}

// AttachCount, SubmitCount, FinalizeCount report how many times each method
// ran, for test assertions.
func (s *Stub) AttachCount() int { return int(atomic.LoadInt32(&s.attached)) }
func (s *Stub) SubmitCount() int { return int(atomic.LoadInt32(&s.submits)) }
func (s *Stub) FinalizeCount() int { return int(atomic.LoadInt32(&s.finals)) }

// Metadata returns the metadata Attach most recently bound, for assertions.
func (s *Stub) Metadata() *arraymetadata.ArrayMetadata { return s.meta }

// Fragments returns the fragment set Attach most recently bound.
func (s *Stub) Fragments() []*fragmentmetadata.FragmentMetadata { return s.fragments }
