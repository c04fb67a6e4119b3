// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package datatype

// Set implements pflag.Value, so a Compressor can be registered directly
// as a CLI flag value (e.g. for a default metadata-compression setting in
// config.Config).
func (c *Compressor) Set(s string) error {
	switch s {
	case "none":
		*c = NoCompression
	case "gzip":
		*c = Gzip
	case "zstd":
		*c = Zstd
	case "lz4":
		*c = LZ4
	case "rle":
		*c = RLE
	case "bzip2":
		*c = Bzip2
	case "double-delta":
		*c = DoubleDelta
	case "blosc":
		*c = Blosc
	default:
		return Error.New("invalid compressor %q", s)
	}
	return nil
}

// Type implements pflag.Value.
func (*Compressor) Type() string { return "datatype.Compressor" }
