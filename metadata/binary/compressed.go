package binary

import (
	"github.com/wippyai/clrmeta/errors"
)

// Compressed integer encoding used by metadata blobs.
//
//	0xxxxxxx                             7 bits,  values 0x00..0x7F
//	10xxxxxx xxxxxxxx                    14 bits, values 0x80..0x3FFF
//	110xxxxx xxxxxxxx xxxxxxxx xxxxxxxx  29 bits, values 0x4000..0x1FFFFFFF
//
// Multi-byte forms are big-endian.

// MaxCompressedUint32 is the largest value representable as a compressed integer.
const MaxCompressedUint32 = 0x1FFFFFFF

// Signed compressed integer bounds.
const (
	MinCompressedInt32 = -(1 << 28)
	MaxCompressedInt32 = 1<<28 - 1
)

// CompressedSize returns the number of bytes the compressed form of v occupies.
// It does not validate v; values above MaxCompressedUint32 report 4.
func CompressedSize(v uint32) int {
	switch {
	case v < 0x80:
		return 1
	case v < 0x4000:
		return 2
	default:
		return 4
	}
}

// CompressedSizeSigned returns the number of bytes the signed compressed form of v occupies.
func CompressedSizeSigned(v int32) int {
	switch {
	case v >= -(1<<6) && v < 1<<6:
		return 1
	case v >= -(1<<13) && v < 1<<13:
		return 2
	default:
		return 4
	}
}

// AppendCompressedUint32 appends the compressed form of v to dst.
func AppendCompressedUint32(dst []byte, v uint32) ([]byte, error) {
	switch {
	case v < 0x80:
		return append(dst, byte(v)), nil
	case v < 0x4000:
		return append(dst, byte(v>>8)|0x80, byte(v)), nil
	case v <= MaxCompressedUint32:
		return append(dst, byte(v>>24)|0xC0, byte(v>>16), byte(v>>8), byte(v)), nil
	default:
		return dst, errors.Overflow(errors.PhaseEncode, v, uint32(MaxCompressedUint32))
	}
}

// EncodeCompressedUint32 encodes v in its shortest compressed form.
func EncodeCompressedUint32(v uint32) ([]byte, error) {
	return AppendCompressedUint32(make([]byte, 0, 4), v)
}

// DecodeCompressedUint32 decodes a compressed integer from the start of data.
// It returns the value, the number of bytes consumed, and false when data is too short.
func DecodeCompressedUint32(data []byte) (uint32, int, bool) {
	if len(data) == 0 {
		return 0, 0, false
	}
	b := data[0]
	switch {
	case b&0x80 == 0:
		return uint32(b), 1, true
	case b&0x40 == 0:
		if len(data) < 2 {
			return 0, 0, false
		}
		return uint32(b&0x3F)<<8 | uint32(data[1]), 2, true
	default:
		if len(data) < 4 {
			return 0, 0, false
		}
		return uint32(b&0x1F)<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3]), 4, true
	}
}

// AppendCompressedInt32 appends the signed compressed form of v to dst.
// The value is rotated left by one bit so the sign lands in the lowest bit.
func AppendCompressedInt32(dst []byte, v int32) ([]byte, error) {
	if v < MinCompressedInt32 || v > MaxCompressedInt32 {
		return dst, errors.Overflow(errors.PhaseEncode, v, int32(MaxCompressedInt32))
	}
	var sign uint32
	if v < 0 {
		sign = 1
	}
	switch CompressedSizeSigned(v) {
	case 1:
		return append(dst, byte((uint32(v)&0x3F)<<1|sign)), nil
	case 2:
		u := (uint32(v)&0x1FFF)<<1 | sign
		return append(dst, byte(u>>8)|0x80, byte(u)), nil
	default:
		u := (uint32(v)&0x0FFFFFFF)<<1 | sign
		return append(dst, byte(u>>24)|0xC0, byte(u>>16), byte(u>>8), byte(u)), nil
	}
}

// DecodeCompressedInt32 decodes a signed compressed integer from the start of data.
func DecodeCompressedInt32(data []byte) (int32, int, bool) {
	u, n, ok := DecodeCompressedUint32(data)
	if !ok {
		return 0, 0, false
	}
	var mask uint32
	switch n {
	case 1:
		mask = 0x3F
	case 2:
		mask = 0x1FFF
	default:
		mask = 0x0FFFFFFF
	}
	v := u >> 1
	if u&1 != 0 {
		v |= ^mask
	}
	return int32(v), n, true
}
