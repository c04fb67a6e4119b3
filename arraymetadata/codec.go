// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package arraymetadata

import (
	"github.com/arraydb/storagecore/bytesio"
	"github.com/arraydb/storagecore/datatype"
	"github.com/arraydb/storagecore/uri"
)

// Serialize writes m's on-disk representation to buf. m need
// not be initialized; Serialize only touches the schema fields, not the
// derived geometry (Deserialize reconstructs the latter by calling Init).
func (m *ArrayMetadata) Serialize(buf *bytesio.Buffer) error {
	buf.WriteUint8(uint8(m.arrayType))
	buf.WriteUint32(uint32(len(m.dims)))
	for _, d := range m.dims {
		buf.WriteString(d.Name)
		buf.WriteUint8(uint8(d.Datatype))
		if _, err := buf.Write(d.Lo); err != nil {
			return Error.Wrap(err)
		}
		if _, err := buf.Write(d.Hi); err != nil {
			return Error.Wrap(err)
		}
		if d.HasTileExtent {
			buf.WriteUint8(1)
			if _, err := buf.Write(d.TileExtent); err != nil {
				return Error.Wrap(err)
			}
		} else {
			buf.WriteUint8(0)
		}
	}
	buf.WriteUint8(uint8(m.cellOrder))
	buf.WriteUint8(uint8(m.tileOrder))
	buf.WriteUint64(m.capacity)
	buf.WriteUint8(uint8(m.coordsCompression))
	buf.WriteInt32(m.coordsCompressionLevel)
	buf.WriteUint32(uint32(len(m.attrs)))
	for _, a := range m.attrs {
		buf.WriteString(a.Name)
		buf.WriteUint8(uint8(a.Datatype))
		buf.WriteUint32(a.CellValNum)
		buf.WriteUint8(uint8(a.Compressor))
		buf.WriteInt32(a.CompressorLevel)
	}
	return nil
}

// Deserialize reads an ArrayMetadata previously written by Serialize,
// re-associating it with arrayURI (the URI is not itself part of the wire
// format; it is supplied by the caller, matching how StorageManager.Load
// already knows the array name it is loading). The result is uninitialized;
// callers must call Init before using its derived geometry.
func Deserialize(buf *bytesio.ConstBuffer, arrayURI uri.URI) (*ArrayMetadata, error) {
	m := New(arrayURI)

	arrayType, err := buf.ReadUint8()
	if err != nil {
		return nil, ErrDeserialize.Wrap(err)
	}
	m.arrayType = datatype.ArrayType(arrayType)

	dimNum, err := buf.ReadUint32()
	if err != nil {
		return nil, ErrDeserialize.Wrap(err)
	}
	dims := make([]Dimension, dimNum)
	for i := range dims {
		name, err := buf.ReadString()
		if err != nil {
			return nil, ErrDeserialize.Wrap(err)
		}
		dtByte, err := buf.ReadUint8()
		if err != nil {
			return nil, ErrDeserialize.Wrap(err)
		}
		dt := datatype.Datatype(dtByte)
		if !dt.IsValid() {
			return nil, ErrDeserialize.New("dimension %q: invalid datatype tag %d", name, dtByte)
		}
		sz := int(dt.Size())

		lo := make([]byte, sz)
		if err := buf.Read(lo); err != nil {
			return nil, ErrDeserialize.Wrap(err)
		}
		hi := make([]byte, sz)
		if err := buf.Read(hi); err != nil {
			return nil, ErrDeserialize.Wrap(err)
		}
		hasExtent, err := buf.ReadUint8()
		if err != nil {
			return nil, ErrDeserialize.Wrap(err)
		}
		var extent []byte
		if hasExtent == 1 {
			extent = make([]byte, sz)
			if err := buf.Read(extent); err != nil {
				return nil, ErrDeserialize.Wrap(err)
			}
		}
		dims[i] = Dimension{
			Name:          name,
			Datatype:      dt,
			Lo:            lo,
			Hi:            hi,
			TileExtent:    extent,
			HasTileExtent: hasExtent == 1,
		}
	}
	m.dims = dims

	cellOrder, err := buf.ReadUint8()
	if err != nil {
		return nil, ErrDeserialize.Wrap(err)
	}
	m.cellOrder = datatype.Layout(cellOrder)

	tileOrder, err := buf.ReadUint8()
	if err != nil {
		return nil, ErrDeserialize.Wrap(err)
	}
	m.tileOrder = datatype.Layout(tileOrder)

	m.capacity, err = buf.ReadUint64()
	if err != nil {
		return nil, ErrDeserialize.Wrap(err)
	}

	coordsCompression, err := buf.ReadUint8()
	if err != nil {
		return nil, ErrDeserialize.Wrap(err)
	}
	m.coordsCompression = datatype.Compressor(coordsCompression)

	m.coordsCompressionLevel, err = buf.ReadInt32()
	if err != nil {
		return nil, ErrDeserialize.Wrap(err)
	}

	attrNum, err := buf.ReadUint32()
	if err != nil {
		return nil, ErrDeserialize.Wrap(err)
	}
	attrs := make([]Attribute, attrNum)
	for i := range attrs {
		name, err := buf.ReadString()
		if err != nil {
			return nil, ErrDeserialize.Wrap(err)
		}
		dtByte, err := buf.ReadUint8()
		if err != nil {
			return nil, ErrDeserialize.Wrap(err)
		}
		cellValNum, err := buf.ReadUint32()
		if err != nil {
			return nil, ErrDeserialize.Wrap(err)
		}
		compressor, err := buf.ReadUint8()
		if err != nil {
			return nil, ErrDeserialize.Wrap(err)
		}
		level, err := buf.ReadInt32()
		if err != nil {
			return nil, ErrDeserialize.Wrap(err)
		}
		attrs[i] = Attribute{
			Name:            name,
			Datatype:        datatype.Datatype(dtByte),
			CellValNum:      cellValNum,
			Compressor:      datatype.Compressor(compressor),
			CompressorLevel: level,
		}
	}
	m.attrs = attrs

	return m, nil
}
