// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arraydb/storagecore/config"
	"github.com/arraydb/storagecore/datatype"
)

func TestDefaultConfig(t *testing.T) {
	c := config.DefaultConfig()
	require.Equal(t, "file:///var/lib/storagecore", c.RootURI)
	require.Equal(t, 2, c.AsyncClasses)
	require.Equal(t, 1000, c.AsyncQueueCapacity)
	require.Equal(t, datatype.NoCompression, c.MetadataCompressor)
}

func TestLoadOverlaysYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
root_uri: file:///data/arrays
async_classes: 4
metadata_compressor: zstd
metadata_compression_level: 5
`), 0o644))

	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "file:///data/arrays", c.RootURI)
	require.Equal(t, 4, c.AsyncClasses)
	require.Equal(t, datatype.Zstd, c.MetadataCompressor)
	require.EqualValues(t, 5, c.MetadataCompressionLevel)
	// fields absent from the overlay keep their flag defaults
	require.Equal(t, 1000, c.AsyncQueueCapacity)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := config.Load("/nonexistent/config.yaml")
	require.Error(t, err)
}
