// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package vfs_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/arraydb/storagecore/uri"
	"github.com/arraydb/storagecore/vfs"
)

func newLocal(t *testing.T) *vfs.Local {
	t.Helper()
	l, err := vfs.NewLocal(zaptest.NewLogger(t), t.TempDir())
	require.NoError(t, err)
	return l
}

func TestLocalCreateWriteReadRoundTrip(t *testing.T) {
	l := newLocal(t)
	u := uri.New("/arrays/a/file.tdb")

	require.NoError(t, l.CreateFile(u))
	require.True(t, l.IsFile(u))
	require.False(t, l.IsDir(u))

	require.NoError(t, l.Write(u, []byte("hello ")))
	require.NoError(t, l.Write(u, []byte("world")))

	size, err := l.FileSize(u)
	require.NoError(t, err)
	require.EqualValues(t, len("hello world"), size)

	dst := make([]byte, 5)
	require.NoError(t, l.Read(u, 6, dst))
	require.Equal(t, "world", string(dst))
}

func TestLocalMoveRespectsForce(t *testing.T) {
	l := newLocal(t)
	src := uri.New("/a/src.tdb")
	dst := uri.New("/a/dst.tdb")

	require.NoError(t, l.CreateFile(src))
	require.NoError(t, l.CreateFile(dst))

	require.Error(t, l.Move(src, dst, false))
	require.NoError(t, l.Move(src, dst, true))
	require.False(t, l.IsFile(src))
	require.True(t, l.IsFile(dst))
}

func TestLocalLsSorted(t *testing.T) {
	l := newLocal(t)
	dir := uri.New("/a")
	require.NoError(t, l.CreateDir(dir))
	require.NoError(t, l.CreateFile(dir.Join("b")))
	require.NoError(t, l.CreateFile(dir.Join("a")))

	entries, err := l.Ls(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "a", entries[0].Base())
	require.Equal(t, "b", entries[1].Base())
}

func TestLocalRemoveDir(t *testing.T) {
	l := newLocal(t)
	dir := uri.New("/a")
	require.NoError(t, l.CreateDir(dir))
	require.NoError(t, l.CreateFile(dir.Join("f")))
	require.NoError(t, l.RemoveDir(dir))
	require.False(t, l.IsDir(dir))
}
