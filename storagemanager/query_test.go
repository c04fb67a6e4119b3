// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package storagemanager_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arraydb/storagecore/arraymetadata"
	"github.com/arraydb/storagecore/datatype"
	"github.com/arraydb/storagecore/query"
	"github.com/arraydb/storagecore/storagemanager"
	"github.com/arraydb/storagecore/uri"
)

func newQuery(arrayURI uri.URI, attrs []string) *query.Stub {
	return &query.Stub{
		ArrayURIValue: arrayURI,
		TypeValue: datatype.Read,
		LayoutValue: datatype.RowMajor,
		AttributesValue: attrs,
	}
}

func TestQueryLifecycleInitSubmitFinalize(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	arrayURI := uri.New("/arrays/a")
	require.NoError(t, m.ArrayCreate(ctx, arrayURI, newSchema(arrayURI)))

	q := newQuery(arrayURI, []string{"v"})
	require.NoError(t, m.QueryInit(ctx, q))
	require.Equal(t, 1, q.AttachCount())

	require.NoError(t, m.QuerySubmit(ctx, q))
	require.Equal(t, 1, q.SubmitCount())

	require.NoError(t, m.QueryFinalize(ctx, q))
	require.Equal(t, 1, q.FinalizeCount())
}

func TestQuerySubmitBeforeInitErrors(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	q := newQuery(uri.New("/arrays/a"), nil)
	err := m.QuerySubmit(ctx, q)
	require.True(t, storagemanager.ErrInvalidState.Has(err))
}

func TestQueryDoubleFinalizeErrors(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	arrayURI := uri.New("/arrays/a")
	require.NoError(t, m.ArrayCreate(ctx, arrayURI, newSchema(arrayURI)))

	q := newQuery(arrayURI, []string{"v"})
	require.NoError(t, m.QueryInit(ctx, q))
	require.NoError(t, m.QueryFinalize(ctx, q))

	err := m.QueryFinalize(ctx, q)
	require.True(t, storagemanager.ErrInvalidState.Has(err))
}

func TestQueryInitRejectsUnknownAttribute(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	arrayURI := uri.New("/arrays/a")
	require.NoError(t, m.ArrayCreate(ctx, arrayURI, newSchema(arrayURI)))

	q := newQuery(arrayURI, []string{"nope"})
	err := m.QueryInit(ctx, q)
	require.True(t, storagemanager.ErrNotFound.Has(err))
}

func TestQueryInitRejectsOutOfDomainSubarray(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	arrayURI := uri.New("/arrays/a")
	require.NoError(t, m.ArrayCreate(ctx, arrayURI, newSchema(arrayURI)))

	q := newQuery(arrayURI, []string{"v"})
	q.SubarrayValue = arraymetadata.EncodeRange([]int32{0, 0}, []int32{10, 3})
	err := m.QueryInit(ctx, q)
	require.True(t, storagemanager.ErrDomain.Has(err))
}

// TestAsyncSubmitPreservesFIFOOrder reproduces the async scheduling scenario:
// five queries submitted to the same class complete their callbacks in
// submission order, since one goroutine drains the class's channel.
func TestAsyncSubmitPreservesFIFOOrder(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	arrayURI := uri.New("/arrays/a")
	require.NoError(t, m.ArrayCreate(ctx, arrayURI, newSchema(arrayURI)))

	const n = 5
	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		q := newQuery(arrayURI, []string{"v"})
		require.NoError(t, m.QueryInit(ctx, q))
		i := i
		require.NoError(t, m.QuerySubmitAsync(ctx, q, 0, func(err error) {
			require.NoError(t, err)
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			wg.Done()
		}))
	}

	wg.Wait()
	expected := make([]int, n)
	for i := range expected {
		expected[i] = i
	}
	require.Equal(t, expected, order)
}
