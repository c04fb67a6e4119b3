// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

// Package config holds the storage manager's ambient configuration, using
// flat, pflag-tagged Config structs in the style of
// storagenode/retain.Config and storagenode/blobstore/filestore.Config.
package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/zeebo/errs"

	"github.com/arraydb/storagecore/datatype"
)

// Error is the config error class.
var Error = errs.Class("config error")

// Config configures one StorageManager instance.
type Config struct {
	// RootURI names the VFS root for arrays and groups. It is loaded and
	// stored only: StorageManager takes its VFS backend ready-made and
	// does not read this field.
	RootURI string `help:"root URI arrays and groups are resolved against" default:"file:///var/lib/storagecore"`
	// AsyncClasses is the number of async priority classes; two (user,
	// internal) remains the default.
	AsyncClasses int `help:"number of async query priority classes" default:"2"`
	// AsyncQueueCapacity bounds each async class's pending-query queue.
	AsyncQueueCapacity int `help:"per-class async query queue capacity" default:"1000"`
	// MetadataCompressor compresses ArrayMetadata/FragmentMetadata blobs at
	// rest.
	MetadataCompressor datatype.Compressor `help:"compressor for persisted metadata blobs (none/gzip/zstd/lz4/rle/bzip2/double-delta/blosc)" default:"none"`
	// MetadataCompressionLevel is passed to MetadataCompressor.
	MetadataCompressionLevel int32 `help:"compression level for persisted metadata blobs" default:"0"`
	// ConsolidationStepSize is the number of fragments a consolidation pass
	// should merge at most. It is loaded and stored only: consolidate's
	// Consolidator does not read it and merges every fragment in one pass.
	ConsolidationStepSize int `help:"maximum fragments merged by a single consolidation pass" default:"0"`
}

// DefaultConfig returns a Config populated with every field's default tag
// value, equivalent to SetupFlags on a fresh FlagSet followed by parsing no
// arguments.
func DefaultConfig() Config {
	fs := pflag.NewFlagSet("storagecore-defaults", pflag.ContinueOnError)
	var c Config
	c.SetupFlags(fs)
	return c
}

// SetupFlags registers every Config field on fs with literal flag names,
// defaults and help text that mirror each field's `help` and `default`
// struct tags (the tags themselves are not read), in the style of
// retain.Config's flag wiring.
func (c *Config) SetupFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.RootURI, "root-uri", "file:///var/lib/storagecore", "root URI arrays and groups are resolved against")
	fs.IntVar(&c.AsyncClasses, "async-classes", 2, "number of async query priority classes")
	fs.IntVar(&c.AsyncQueueCapacity, "async-queue-capacity", 1000, "per-class async query queue capacity")
	fs.Var(&c.MetadataCompressor, "metadata-compressor", "compressor for persisted metadata blobs")
	fs.Int32Var(&c.MetadataCompressionLevel, "metadata-compression-level", 0, "compression level for persisted metadata blobs")
	fs.IntVar(&c.ConsolidationStepSize, "consolidation-step-size", 0, "maximum fragments merged by a single consolidation pass (0 = unbounded)")
}

// Load reads path (YAML or any format viper supports) and overlays it onto
// a Config seeded with flag defaults, following the same viper overlay
// pattern used for other CLI config files.
func Load(path string) (Config, error) {
	c := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, Error.Wrap(err)
	}

	if v.IsSet("root_uri") {
		c.RootURI = v.GetString("root_uri")
	}
	if v.IsSet("async_classes") {
		c.AsyncClasses = v.GetInt("async_classes")
	}
	if v.IsSet("async_queue_capacity") {
		c.AsyncQueueCapacity = v.GetInt("async_queue_capacity")
	}
	if v.IsSet("metadata_compressor") {
		if err := c.MetadataCompressor.Set(v.GetString("metadata_compressor")); err != nil {
			return Config{}, Error.Wrap(err)
		}
	}
	if v.IsSet("metadata_compression_level") {
		c.MetadataCompressionLevel = int32(v.GetInt("metadata_compression_level"))
	}
	if v.IsSet("consolidation_step_size") {
		c.ConsolidationStepSize = v.GetInt("consolidation_step_size")
	}

	return c, nil
}
