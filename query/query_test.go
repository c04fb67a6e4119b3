// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package query_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arraydb/storagecore/datatype"
	"github.com/arraydb/storagecore/query"
	"github.com/arraydb/storagecore/uri"
)

func TestStubTracksLifecycleCalls(t *testing.T) {
	s := &query.Stub{ArrayURIValue: uri.New("/arrays/a"), TypeValue: datatype.Read}

	require.NoError(t, s.Attach(nil, nil))
	require.NoError(t, s.Submit())
	require.NoError(t, s.Finalize())

	require.Equal(t, 1, s.AttachCount())
	require.Equal(t, 1, s.SubmitCount())
	require.Equal(t, 1, s.FinalizeCount())
}

func TestStubSubmitFuncOverride(t *testing.T) {
	called := false
	s := &query.Stub{SubmitFunc: func() error { called = true; return nil }}
	require.NoError(t, s.Submit())
	require.True(t, called)
}
