// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package fragmentmetadata_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arraydb/storagecore/arraymetadata"
	"github.com/arraydb/storagecore/bytesio"
	"github.com/arraydb/storagecore/fragmentmetadata"
	"github.com/arraydb/storagecore/uri"
)

func newFragment(t *testing.T) *fragmentmetadata.FragmentMetadata {
	t.Helper()
	fu := fragmentmetadata.NewFragmentURI(uri.New("/arrays/a"), 10, 100)
	tiles := []fragmentmetadata.TileIndex{
		{
			MBR: arraymetadata.EncodeRange([]int32{0, 0}, []int32{1, 1}),
			BoundingCoords: arraymetadata.EncodeRange([]int32{0, 0}, []int32{1, 1}),
		},
		{
			MBR: arraymetadata.EncodeRange([]int32{2, 0}, []int32{3, 1}),
			BoundingCoords: arraymetadata.EncodeRange([]int32{2, 0}, []int32{3, 1}),
		},
	}
	attrs := map[string]fragmentmetadata.AttributeIndex{
		"v": {OffsetVec: []uint64{0, 16}, SizeVec: []uint64{16, 16}},
	}
	return fragmentmetadata.New(fu, arraymetadata.EncodeRange([]int32{0, 0}, []int32{3, 1}), tiles, attrs, []string{"v"})
}

func TestFragmentMetadataRoundTrip(t *testing.T) {
	f := newFragment(t)

	buf := &bytesio.Buffer{}
	require.NoError(t, f.Serialize(buf))

	cbuf := bytesio.NewConstBuffer(buf.Bytes())
	got, err := fragmentmetadata.Deserialize(cbuf, f.FragmentURI())
	require.NoError(t, err)

	require.Equal(t, f.NonEmptyDomain(), got.NonEmptyDomain())
	require.Equal(t, f.TileNum(), got.TileNum())
	for i := 0; i < f.TileNum(); i++ {
		require.Equal(t, f.Tile(i), got.Tile(i))
	}
	require.Equal(t, f.AttributeNames(), got.AttributeNames())
	wantAttr, ok := f.Attribute("v")
	require.True(t, ok)
	gotAttr, ok := got.Attribute("v")
	require.True(t, ok)
	require.Equal(t, wantAttr, gotAttr)
}

func TestFragmentURIRoundTrip(t *testing.T) {
	fu := fragmentmetadata.NewFragmentURI(uri.New("/arrays/a"), 12345, 67)
	ts, pid, err := fragmentmetadata.ParseFragmentURI(fu)
	require.NoError(t, err)
	require.EqualValues(t, 12345, ts)
	require.Equal(t, 67, pid)
}

func TestParseFragmentURIRejectsMalformed(t *testing.T) {
	_, _, err := fragmentmetadata.ParseFragmentURI(uri.New("/arrays/a/not-a-fragment"))
	require.Error(t, err)
}

func TestSortURIsCanonicalOrder(t *testing.T) {
	base := uri.New("/arrays/a")
	uris := []uri.URI{
		fragmentmetadata.NewFragmentURI(base, 11, 100),
		fragmentmetadata.NewFragmentURI(base, 10, 100),
		fragmentmetadata.NewFragmentURI(base, 10, 50),
	}
	fragmentmetadata.SortURIs(uris)
	require.Equal(t, []uri.URI{
		fragmentmetadata.NewFragmentURI(base, 10, 50),
		fragmentmetadata.NewFragmentURI(base, 10, 100),
		fragmentmetadata.NewFragmentURI(base, 11, 100),
	}, uris)
}
