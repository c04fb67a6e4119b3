// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package fragmentmetadata

import (
	"github.com/arraydb/storagecore/bytesio"
	"github.com/arraydb/storagecore/uri"
)

// Serialize writes f's on-disk representation to buf: non_empty_domain, the
// tile index, then per-attribute (offset_vec, size_vec). The
// fragment's own URI is not part of the wire format, matching how
// ArrayMetadata's codec omits array_uri; the caller (StorageManager.Load)
// already knows which fragment directory it read the blob from.
func (f *FragmentMetadata) Serialize(buf *bytesio.Buffer) error {
	buf.WriteUint32(uint32(len(f.nonEmptyDomain)))
	if _, err := buf.Write(f.nonEmptyDomain); err != nil {
		return Error.Wrap(err)
	}

	buf.WriteUint32(uint32(len(f.tiles)))
	for _, tile := range f.tiles {
		buf.WriteUint32(uint32(len(tile.MBR)))
		if _, err := buf.Write(tile.MBR); err != nil {
			return Error.Wrap(err)
		}
		buf.WriteUint32(uint32(len(tile.BoundingCoords)))
		if _, err := buf.Write(tile.BoundingCoords); err != nil {
			return Error.Wrap(err)
		}
	}

	buf.WriteUint32(uint32(len(f.attrNames)))
	for _, name := range f.attrNames {
		idx := f.attrs[name]
		buf.WriteString(name)
		buf.WriteUint32(uint32(len(idx.OffsetVec)))
		for _, v := range idx.OffsetVec {
			buf.WriteUint64(v)
		}
		buf.WriteUint32(uint32(len(idx.SizeVec)))
		for _, v := range idx.SizeVec {
			buf.WriteUint64(v)
		}
	}
	return nil
}

// Deserialize reads a FragmentMetadata previously written by Serialize,
// re-associating it with fragmentURI (supplied by the caller, mirroring
// arraymetadata.Deserialize).
func Deserialize(buf *bytesio.ConstBuffer, fragmentURI uri.URI) (*FragmentMetadata, error) {
	domainLen, err := buf.ReadUint32()
	if err != nil {
		return nil, ErrDeserialize.Wrap(err)
	}
	nonEmptyDomain := make([]byte, domainLen)
	if err := buf.Read(nonEmptyDomain); err != nil {
		return nil, ErrDeserialize.Wrap(err)
	}

	tileNum, err := buf.ReadUint32()
	if err != nil {
		return nil, ErrDeserialize.Wrap(err)
	}
	tiles := make([]TileIndex, tileNum)
	for i := range tiles {
		mbrLen, err := buf.ReadUint32()
		if err != nil {
			return nil, ErrDeserialize.Wrap(err)
		}
		mbr := make([]byte, mbrLen)
		if err := buf.Read(mbr); err != nil {
			return nil, ErrDeserialize.Wrap(err)
		}
		bcLen, err := buf.ReadUint32()
		if err != nil {
			return nil, ErrDeserialize.Wrap(err)
		}
		bc := make([]byte, bcLen)
		if err := buf.Read(bc); err != nil {
			return nil, ErrDeserialize.Wrap(err)
		}
		tiles[i] = TileIndex{MBR: mbr, BoundingCoords: bc}
	}

	attrNum, err := buf.ReadUint32()
	if err != nil {
		return nil, ErrDeserialize.Wrap(err)
	}
	attrs := make(map[string]AttributeIndex, attrNum)
	attrNames := make([]string, attrNum)
	for i := range attrNames {
		name, err := buf.ReadString()
		if err != nil {
			return nil, ErrDeserialize.Wrap(err)
		}
		offsetLen, err := buf.ReadUint32()
		if err != nil {
			return nil, ErrDeserialize.Wrap(err)
		}
		offsetVec := make([]uint64, offsetLen)
		for j := range offsetVec {
			offsetVec[j], err = buf.ReadUint64()
			if err != nil {
				return nil, ErrDeserialize.Wrap(err)
			}
		}
		sizeLen, err := buf.ReadUint32()
		if err != nil {
			return nil, ErrDeserialize.Wrap(err)
		}
		sizeVec := make([]uint64, sizeLen)
		for j := range sizeVec {
			sizeVec[j], err = buf.ReadUint64()
			if err != nil {
				return nil, ErrDeserialize.Wrap(err)
			}
		}
		attrNames[i] = name
		attrs[name] = AttributeIndex{OffsetVec: offsetVec, SizeVec: sizeVec}
	}

	return &FragmentMetadata{
		fragmentURI: fragmentURI,
		nonEmptyDomain: nonEmptyDomain,
		tiles: tiles,
		attrs: attrs,
		attrNames: attrNames,
	}, nil
}
