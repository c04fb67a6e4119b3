// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package storagemanager

import (
	"context"

	"github.com/arraydb/storagecore/arraymetadata"
	"github.com/arraydb/storagecore/query"
)

// QueryInit opens q's target array for the duration of the query, validates
// its attribute names and subarray against the array's schema, and attaches
// the open array's metadata and fragment set.
func (m *StorageManager) QueryInit(ctx context.Context, q query.Query) (err error) {
	defer mon.Task()(&ctx)(&err)

	arrayURI := q.ArrayURI()
	oa, err := m.ArrayOpen(ctx, arrayURI)
	if err != nil {
		return err
	}

	meta := oa.Metadata()
	if err := validateQuery(meta, q); err != nil {
		_ = m.ArrayClose(ctx, arrayURI)
		return err
	}

	if err := q.Attach(meta, oa.Fragments()); err != nil {
		_ = m.ArrayClose(ctx, arrayURI)
		return Error.Wrap(err)
	}

	m.queryMu.Lock()
	defer m.queryMu.Unlock()
	if _, exists := m.queries[q]; exists {
		_ = m.ArrayClose(ctx, arrayURI)
		return ErrInvalidState.New("query already initialized")
	}
	m.queries[q] = &queryState{arrayURI: arrayURI, openArray: oa}
	return nil
}

func validateQuery(meta *arraymetadata.ArrayMetadata, q query.Query) error {
	for _, name := range q.Attributes() {
		if name == arraymetadata.CoordsName {
			continue
		}
		if _, ok := meta.Attribute(name); !ok {
			return ErrNotFound.New("array %q has no attribute %q", q.ArrayURI(), name)
		}
	}

	subarray := q.Subarray()
	if len(subarray) == 0 {
		return nil
	}
	domain := meta.DomainRange()
	_, kind, err := meta.Geometry().SubarrayOverlap(domain, subarray)
	if err != nil {
		return ErrDomain.Wrap(err)
	}
	if kind != arraymetadata.OverlapFull {
		return ErrDomain.New("array %q: subarray is not contained in the domain", q.ArrayURI())
	}
	return nil
}

// QuerySubmit runs q synchronously in the caller's goroutine.
func (m *StorageManager) QuerySubmit(ctx context.Context, q query.Query) (err error) {
	defer mon.Task()(&ctx)(&err)

	if _, err := m.beginSubmit(q); err != nil {
		return err
	}
	return q.Submit()
}

// QuerySubmitAsync enqueues q onto async class class for a worker goroutine
// to submit, invoking cb with the result. class is clamped
// into [0, len(asyncQueues)).
func (m *StorageManager) QuerySubmitAsync(ctx context.Context, q query.Query, class int, cb query.Callback) (err error) {
	defer mon.Task()(&ctx)(&err)

	if _, err := m.beginSubmit(q); err != nil {
		return err
	}
	if class < 0 {
		class = 0
	}
	if class >= len(m.asyncQueues) {
		class = len(m.asyncQueues) - 1
	}
	m.asyncQueues[class] <- asyncItem{q: q, cb: cb}
	return nil
}

func (m *StorageManager) beginSubmit(q query.Query) (*queryState, error) {
	m.queryMu.Lock()
	defer m.queryMu.Unlock()

	st, ok := m.queries[q]
	if !ok {
		return nil, ErrInvalidState.New("query_submit called before query_init")
	}
	if st.submitted {
		return nil, ErrInvalidState.New("query already submitted")
	}
	st.submitted = true
	return st, nil
}

// QueryFinalize releases q's array lock and evicts its open-array reference,
// after calling q.Finalize. Finalize runs whether or not Submit ever
// succeeded, mirroring a best-effort cleanup on the error path.
func (m *StorageManager) QueryFinalize(ctx context.Context, q query.Query) (err error) {
	defer mon.Task()(&ctx)(&err)

	m.queryMu.Lock()
	st, ok := m.queries[q]
	if !ok {
		m.queryMu.Unlock()
		return ErrInvalidState.New("query_finalize called before query_init")
	}
	if st.finalized {
		m.queryMu.Unlock()
		return ErrInvalidState.New("query already finalized")
	}
	st.finalized = true
	delete(m.queries, q)
	m.queryMu.Unlock()

	finalizeErr := q.Finalize()
	closeErr := m.ArrayClose(ctx, st.arrayURI)
	if finalizeErr != nil {
		return Error.Wrap(finalizeErr)
	}
	if closeErr != nil {
		return closeErr
	}
	return nil
}
