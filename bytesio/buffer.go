// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

// Package bytesio implements the append-only Buffer and cursor-style
// ConstBuffer used by the metadata codecs. All multi-byte
// values are little-endian.
package bytesio

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/errs"
)

// Error is the bytesio error class.
var Error = errs.Class("bytesio error")

// ErrDeserialize is returned when a ConstBuffer read runs past the end of
// its backing slice.
var ErrDeserialize = errs.Class("deserialize error")

// Buffer is a growable byte vector with an internal write offset.
type Buffer struct {
	data []byte
}

// NewBuffer returns an empty Buffer with capacity hint c.
func NewBuffer(c int) *Buffer {
	return &Buffer{data: make([]byte, 0, c)}
}

// Write appends p to the buffer, returning the number of bytes written.
func (b *Buffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

// Bytes returns the buffer's contents. The returned slice aliases the
// buffer and must not be mutated by the caller.
func (b *Buffer) Bytes() []byte { return b.data }

// Size returns the number of bytes written so far.
func (b *Buffer) Size() int { return len(b.data) }

// WriteUint8 appends a single byte.
func (b *Buffer) WriteUint8(v uint8) { b.data = append(b.data, v) }

// WriteUint32 appends v little-endian.
func (b *Buffer) WriteUint32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

// WriteInt32 appends v little-endian.
func (b *Buffer) WriteInt32(v int32) { b.WriteUint32(uint32(v)) }

// WriteUint64 appends v little-endian.
func (b *Buffer) WriteUint64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

// WriteInt64 appends v little-endian.
func (b *Buffer) WriteInt64(v int64) { b.WriteUint64(uint64(v)) }

// WriteFloat64 appends v as its IEEE-754 bit pattern, little-endian.
func (b *Buffer) WriteFloat64(v float64) { b.WriteUint64(math.Float64bits(v)) }

// WriteString appends a u32 length prefix followed by the raw bytes of s.
func (b *Buffer) WriteString(s string) {
	b.WriteUint32(uint32(len(s)))
	b.data = append(b.data, s...)
}

// ConstBuffer is a read cursor over an immutable byte slice.
type ConstBuffer struct {
	data   []byte
	offset int
}

// NewConstBuffer wraps data for sequential reads.
func NewConstBuffer(data []byte) *ConstBuffer {
	return &ConstBuffer{data: data}
}

// Remaining returns the number of unread bytes.
func (c *ConstBuffer) Remaining() int { return len(c.data) - c.offset }

func (c *ConstBuffer) need(n int) error {
	if c.Remaining() < n {
		return ErrDeserialize.New("need %d bytes, have %d", n, c.Remaining())
	}
	return nil
}

// Read copies the next len(dst) bytes into dst.
func (c *ConstBuffer) Read(dst []byte) error {
	if err := c.need(len(dst)); err != nil {
		return err
	}
	copy(dst, c.data[c.offset:c.offset+len(dst)])
	c.offset += len(dst)
	return nil
}

// ReadUint8 reads a single byte.
func (c *ConstBuffer) ReadUint8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.data[c.offset]
	c.offset++
	return v, nil
}

// ReadUint32 reads a little-endian uint32.
func (c *ConstBuffer) ReadUint32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.data[c.offset:])
	c.offset += 4
	return v, nil
}

// ReadInt32 reads a little-endian int32.
func (c *ConstBuffer) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

// ReadUint64 reads a little-endian uint64.
func (c *ConstBuffer) ReadUint64() (uint64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(c.data[c.offset:])
	c.offset += 8
	return v, nil
}

// ReadInt64 reads a little-endian int64.
func (c *ConstBuffer) ReadInt64() (int64, error) {
	v, err := c.ReadUint64()
	return int64(v), err
}

// ReadFloat64 reads an IEEE-754 double, little-endian.
func (c *ConstBuffer) ReadFloat64() (float64, error) {
	v, err := c.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadString reads a u32 length prefix followed by that many raw bytes.
func (c *ConstBuffer) ReadString() (string, error) {
	n, err := c.ReadUint32()
	if err != nil {
		return "", err
	}
	if err := c.need(int(n)); err != nil {
		return "", err
	}
	s := string(c.data[c.offset : c.offset+int(n)])
	c.offset += int(n)
	return s, nil
}
