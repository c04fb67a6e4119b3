// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

// Package query defines the opaque work-unit and consolidator contracts the
// storage manager schedules and invokes. Query
// execution itself — tile I/O, filter pipelines, result assembly — is out of
// scope; this package only fixes the shape the core needs to open arrays,
// validate requests, dispatch work, and release resources.
package query

import (
	"github.com/arraydb/storagecore/arraymetadata"
	"github.com/arraydb/storagecore/datatype"
	"github.com/arraydb/storagecore/fragmentmetadata"
	"github.com/arraydb/storagecore/uri"
)

// Type is read or write.
type Type = datatype.QueryType

// Layout is the traversal order a query's caller wants over its subarray.
type Layout = datatype.Layout

// Query is opaque to the storage manager: it is a caller-owned work unit
// that the core initializes with open-array state, submits for execution,
// and finalizes. Implementations perform the actual tile I/O.
type Query interface {
	// ArrayURI is the array this query targets.
	ArrayURI() uri.URI
	// Type is read or write.
	Type() Type
	// Layout is the caller-requested cell order for result delivery.
	Layout() Layout
	// Subarray is the requested rectangle, range-encoded
	// (2*dim_num*coord_size bytes, per arraymetadata.EncodeRange).
	Subarray() []byte
	// Attributes names the attributes this query reads or writes.
	Attributes() []string
	// ConsolidationFragmentURI is non-empty only for the synthetic write
	// query a Consolidator issues; it names the new fragment's target
	// directory.
	ConsolidationFragmentURI() uri.URI

	// Attach binds the opened array's metadata and fragment set to the
	// query. query_init calls this exactly once, after acquiring the
	// array's lock and validating Subarray/Attributes against meta.
	Attach(meta *arraymetadata.ArrayMetadata, fragments []*fragmentmetadata.FragmentMetadata) error

	// Submit runs the query to completion. query_submit calls it
	// synchronously in the caller's goroutine; the async worker calls it
	// from a scheduler goroutine. Submit must be safe to call at most once.
	Submit() error

	// Finalize releases any query-held resources. query_finalize calls it
	// after Submit (or without a Submit) but before releasing the array
	// lock and closing the array. A query whose Attach failed was never
	// registered by query_init, so query_finalize does not call it.
	Finalize() error
}

// Callback is invoked by query_submit_async once the query's Submit call
// returns, with that call's error (nil on success). There is no
// happens-before guarantee relating the callback to submit_async's return;
// the callback is the only synchronization signal.
type Callback func(err error)

// Consolidator merges an array's fragments into one. It is
// invoked by the storage manager; storagecore/consolidate provides the
// concrete implementation.
type Consolidator interface {
	Consolidate(arrayURI uri.URI) error
}
