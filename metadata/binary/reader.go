package binary

import (
	"encoding/binary"
)

// Reader reads metadata blob primitives from a byte slice with position tracking.
//
// Every Try method either consumes exactly the bytes of one value and reports
// true, or consumes nothing and reports false. A false result means the input
// ended before the value was complete.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a new Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the current position.
func (r *Reader) Offset() int {
	return r.pos
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.data) - r.pos
}

// CanRead reports whether at least n bytes remain.
func (r *Reader) CanRead(n int) bool {
	return n >= 0 && r.Len() >= n
}

// TryReadByte reads a single byte.
func (r *Reader) TryReadByte() (byte, bool) {
	if !r.CanRead(1) {
		return 0, false
	}
	b := r.data[r.pos]
	r.pos++
	return b, true
}

// TryReadBytes reads exactly n bytes. The returned slice aliases the input.
func (r *Reader) TryReadBytes(n int) ([]byte, bool) {
	if !r.CanRead(n) {
		return nil, false
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, true
}

// TryReadUint16 reads a little-endian uint16.
func (r *Reader) TryReadUint16() (uint16, bool) {
	b, ok := r.TryReadBytes(2)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint16(b), true
}

// TryReadUint32 reads a little-endian uint32.
func (r *Reader) TryReadUint32() (uint32, bool) {
	b, ok := r.TryReadBytes(4)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}

// TryReadCompressedUint32 reads a compressed unsigned integer.
func (r *Reader) TryReadCompressedUint32() (uint32, bool) {
	v, n, ok := DecodeCompressedUint32(r.data[r.pos:])
	if !ok {
		return 0, false
	}
	r.pos += n
	return v, true
}

// TryReadCompressedInt32 reads a compressed signed integer.
func (r *Reader) TryReadCompressedInt32() (int32, bool) {
	v, n, ok := DecodeCompressedInt32(r.data[r.pos:])
	if !ok {
		return 0, false
	}
	r.pos += n
	return v, true
}
