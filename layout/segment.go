package layout

import (
	"io"
	"slices"

	"github.com/wippyai/clrmeta/errors"
)

// Segment is a relocatable chunk of the output image.
type Segment interface {
	// Offset is the position of the segment in the serialized file.
	Offset() uint32
	// RVA is the position of the segment once the image is mapped.
	RVA() uint32
	// CanUpdateOffsets reports whether UpdateOffsets may move the segment.
	CanUpdateOffsets() bool
	// UpdateOffsets places the segment. Both values change together or not at all.
	UpdateOffsets(offset, rva uint32) error
	// PhysicalSize is the exact number of bytes Write emits.
	PhysicalSize() uint32
	// VirtualSize is the footprint of the segment after mapping.
	VirtualSize() uint32
	// Write emits PhysicalSize bytes.
	Write(w io.Writer) error
}

// Align rounds v up to a multiple of alignment, which must be a power of
// two. Zero and one leave v unchanged.
func Align(v, alignment uint32) uint32 {
	if alignment <= 1 {
		return v
	}
	return (v + alignment - 1) &^ (alignment - 1)
}

func validAlignment(a uint32) bool {
	return a == 0 || a&(a-1) == 0
}

// Base holds the placement of a segment. Embed it and supply PhysicalSize,
// VirtualSize and Write to get a Segment.
type Base struct {
	offset uint32
	rva    uint32
	pinned bool
}

func (b *Base) Offset() uint32         { return b.offset }
func (b *Base) RVA() uint32            { return b.rva }
func (b *Base) CanUpdateOffsets() bool { return !b.pinned }

// Pin fixes the segment at its current placement. Later layout passes may
// only confirm that placement.
func (b *Base) Pin() {
	b.pinned = true
}

// UpdateOffsets places the segment. A pinned segment accepts only its
// current placement.
func (b *Base) UpdateOffsets(offset, rva uint32) error {
	if b.pinned && (offset != b.offset || rva != b.rva) {
		return errors.New(errors.PhaseLayout, errors.KindPinned).
			Value(offset).
			Detail("segment pinned at offset 0x%x rva 0x%x cannot move to offset 0x%x rva 0x%x",
				b.offset, b.rva, offset, rva).
			Build()
	}
	b.offset, b.rva = offset, rva
	return nil
}

// DataSegment is a segment backed by a byte slice.
type DataSegment struct {
	Base
	data []byte
}

// NewDataSegment creates a segment holding a copy of data.
func NewDataSegment(data []byte) *DataSegment {
	return &DataSegment{data: slices.Clone(data)}
}

func (d *DataSegment) Data() []byte         { return d.data }
func (d *DataSegment) PhysicalSize() uint32 { return uint32(len(d.data)) }
func (d *DataSegment) VirtualSize() uint32  { return uint32(len(d.data)) }

// SetData replaces the contents. If the size changes, any sequence holding
// the segment becomes stale until it is laid out again.
func (d *DataSegment) SetData(data []byte) {
	d.data = slices.Clone(data)
}

func (d *DataSegment) Write(w io.Writer) error {
	_, err := w.Write(d.data)
	return err
}

// VirtualSegment gives a segment a virtual size independent of its
// physical contents, such as a section whose tail is zero-filled on load.
type VirtualSegment struct {
	Segment
	virtualSize uint32
}

// NewVirtualSegment wraps physical with the given virtual size.
func NewVirtualSegment(physical Segment, virtualSize uint32) *VirtualSegment {
	return &VirtualSegment{Segment: physical, virtualSize: virtualSize}
}

// PhysicalContents returns the wrapped segment.
func (v *VirtualSegment) PhysicalContents() Segment {
	return v.Segment
}

func (v *VirtualSegment) VirtualSize() uint32 {
	return v.virtualSize
}

// SetVirtualSize changes the mapped footprint.
func (v *VirtualSegment) SetVirtualSize(size uint32) {
	v.virtualSize = size
}

// ZeroSegment is a run of zero bytes, used for explicit padding.
type ZeroSegment struct {
	Base
	size uint32
}

// NewZeroSegment creates size bytes of zero padding.
func NewZeroSegment(size uint32) *ZeroSegment {
	return &ZeroSegment{size: size}
}

func (z *ZeroSegment) PhysicalSize() uint32 { return z.size }
func (z *ZeroSegment) VirtualSize() uint32  { return z.size }

func (z *ZeroSegment) Write(w io.Writer) error {
	return writeZeroes(w, z.size)
}

var zeroes [512]byte

func writeZeroes(w io.Writer, n uint32) error {
	for n > 0 {
		chunk := min(n, uint32(len(zeroes)))
		if _, err := w.Write(zeroes[:chunk]); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// countingWriter counts bytes on their way to an underlying writer.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
