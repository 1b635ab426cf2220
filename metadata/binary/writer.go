package binary

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Writer provides buffered writing utilities for metadata blob encoding.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{buf: &bytes.Buffer{}}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

// WriteUint16 writes a little-endian uint16.
func (w *Writer) WriteUint16(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	w.buf.Write(buf[:])
}

// WriteUint32 writes a little-endian uint32.
func (w *Writer) WriteUint32(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.buf.Write(buf[:])
}

// WriteCompressedUint32 writes v as a compressed unsigned integer.
// Values above MaxCompressedUint32 are rejected and nothing is written.
func (w *Writer) WriteCompressedUint32(v uint32) error {
	var tmp [4]byte
	out, err := AppendCompressedUint32(tmp[:0], v)
	if err != nil {
		return err
	}
	w.buf.Write(out)
	return nil
}

// WriteCompressedInt32 writes v as a compressed signed integer.
func (w *Writer) WriteCompressedInt32(v int32) error {
	var tmp [4]byte
	out, err := AppendCompressedInt32(tmp[:0], v)
	if err != nil {
		return err
	}
	w.buf.Write(out)
	return nil
}

// WriteTo writes the buffered bytes to dst without draining the buffer.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	n, err := dst.Write(w.buf.Bytes())
	return int64(n), err
}
