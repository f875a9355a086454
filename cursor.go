// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pakpath

package pakpath

import (
	"encoding/binary"
	"fmt"
)

// Cursor is a bounded sequential/random reader over an immutable byte
// buffer. All multi-byte reads are little-endian. Reads past the buffer
// fail with ErrShortRead and leave the position unchanged, so callers can
// skip a bad record and continue with the next one.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor wraps data in a cursor positioned at offset zero.
// The cursor does not copy data; the caller must not mutate it.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Len returns the total buffer length.
func (c *Cursor) Len() int {
	return len(c.data)
}

// Offset returns the current read position.
func (c *Cursor) Offset() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Seek moves the read position to an absolute offset.
func (c *Cursor) Seek(off int) error {
	if off < 0 {
		panic(fmt.Sprintf("pakpath: negative seek offset %d", off))
	}
	if off > len(c.data) {
		return fmt.Errorf("%w: seek to %d in %d-byte buffer", ErrShortRead, off, len(c.data))
	}

	c.pos = off
	return nil
}

// Skip advances the read position by n bytes.
func (c *Cursor) Skip(n int) error {
	if n < 0 {
		panic(fmt.Sprintf("pakpath: negative skip length %d", n))
	}

	return c.Seek(c.pos + n)
}

// Peek returns the next n bytes without advancing the position.
// The returned slice aliases the underlying buffer.
func (c *Cursor) Peek(n int) ([]byte, error) {
	if n < 0 {
		panic(fmt.Sprintf("pakpath: negative peek length %d", n))
	}
	if c.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrShortRead, n, c.pos, c.Remaining())
	}

	return c.data[c.pos : c.pos+n], nil
}

// Bytes reads the next n bytes and advances the position.
// The returned slice aliases the underlying buffer.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	b, err := c.Peek(n)
	if err != nil {
		return nil, err
	}

	c.pos += n
	return b, nil
}

// Uint8 reads one byte.
func (c *Cursor) Uint8() (uint8, error) {
	b, err := c.Bytes(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// Uint16 reads a little-endian 16-bit integer.
func (c *Cursor) Uint16() (uint16, error) {
	b, err := c.Bytes(2)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(b), nil
}

// Uint32 reads a little-endian 32-bit integer.
func (c *Cursor) Uint32() (uint32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(b), nil
}

// Uint64 reads a little-endian 64-bit integer.
func (c *Cursor) Uint64() (uint64, error) {
	b, err := c.Bytes(8)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(b), nil
}
