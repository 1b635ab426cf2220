package signature

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/wippyai/clrmeta/errors"
	"github.com/wippyai/clrmeta/metadata"
	"github.com/wippyai/clrmeta/metadata/binary"
)

// MaxArrayRank is the largest rank the runtime accepts for a general array.
const MaxArrayRank = 32

// ArrayDimension describes one dimension of a general array. Either bound
// may be absent.
type ArrayDimension struct {
	Size       *uint32
	LowerBound *int32
}

// Dimension is a convenience constructor for a dimension with a known size
// and lower bound.
func Dimension(size uint32, lowerBound int32) ArrayDimension {
	return ArrayDimension{Size: &size, LowerBound: &lowerBound}
}

// ArrayTypeSignature is a general array:
//
//	ARRAY Type Rank NumSizes Size* NumLoBounds LoBound*
//
// Sizes and lower bounds are stored for the leading dimensions only, so a
// dimension that has a size must not follow one that does not.
type ArrayTypeSignature struct {
	specification
	dimensions []ArrayDimension
}

// NewArray creates an array of base with the given dimensions.
func NewArray(base TypeSignature, dimensions ...ArrayDimension) (*ArrayTypeSignature, error) {
	s, err := newSpecification(metadata.ElementTypeArray, base)
	if err != nil {
		return nil, err
	}
	return &ArrayTypeSignature{specification: s, dimensions: slices.Clone(dimensions)}, nil
}

func (s *ArrayTypeSignature) ElementType() metadata.ElementType { return metadata.ElementTypeArray }
func (s *ArrayTypeSignature) IsValueType() bool                 { return false }
func (s *ArrayTypeSignature) Rank() int                         { return len(s.dimensions) }
func (s *ArrayTypeSignature) Dimensions() []ArrayDimension      { return slices.Clone(s.dimensions) }

// AddDimension appends a dimension.
func (s *ArrayTypeSignature) AddDimension(d ArrayDimension) {
	s.dimensions = append(s.dimensions, d)
}

func (s *ArrayTypeSignature) Name() string {
	return s.base.Name() + s.shape()
}

func (s *ArrayTypeSignature) FullName() string {
	return s.base.FullName() + s.shape()
}

func (s *ArrayTypeSignature) String() string {
	return s.FullName()
}

// shape renders [lo...hi,...]; a dimension with no bounds renders empty.
func (s *ArrayTypeSignature) shape() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, d := range s.dimensions {
		if i > 0 {
			b.WriteByte(',')
		}
		switch {
		case d.LowerBound != nil && d.Size != nil:
			lo := int64(*d.LowerBound)
			fmt.Fprintf(&b, "%d...%d", lo, lo+int64(*d.Size)-1)
		case d.LowerBound != nil:
			b.WriteString(strconv.FormatInt(int64(*d.LowerBound), 10))
			b.WriteString("...")
		case d.Size != nil:
			fmt.Fprintf(&b, "0...%d", int64(*d.Size)-1)
		}
	}
	b.WriteByte(']')
	return b.String()
}

func (s *ArrayTypeSignature) sizes() []uint32 {
	var out []uint32
	for _, d := range s.dimensions {
		if d.Size == nil {
			break
		}
		out = append(out, *d.Size)
	}
	return out
}

func (s *ArrayTypeSignature) lowerBounds() []int32 {
	var out []int32
	for _, d := range s.dimensions {
		if d.LowerBound == nil {
			break
		}
		out = append(out, *d.LowerBound)
	}
	return out
}

// Validate reports dimensions whose bounds cannot be represented because an
// earlier dimension leaves the same bound unspecified.
func (s *ArrayTypeSignature) Validate() error {
	sizes, bounds := len(s.sizes()), len(s.lowerBounds())
	for i, d := range s.dimensions {
		if (d.Size != nil && i >= sizes) || (d.LowerBound != nil && i >= bounds) {
			return errors.InvalidData(errors.PhaseEncode, []string{"Array", fmt.Sprintf("dim[%d]", i)},
				"bound follows a dimension without one")
		}
	}
	return nil
}

func (s *ArrayTypeSignature) PhysicalLength() uint32 {
	sizes, bounds := s.sizes(), s.lowerBounds()
	n := 1 + s.base.PhysicalLength() +
		uint32(binary.CompressedSize(uint32(len(s.dimensions)))) +
		uint32(binary.CompressedSize(uint32(len(sizes)))) +
		uint32(binary.CompressedSize(uint32(len(bounds))))
	for _, v := range sizes {
		n += uint32(binary.CompressedSize(v))
	}
	for _, v := range bounds {
		n += uint32(binary.CompressedSizeSigned(v))
	}
	return n
}

func (s *ArrayTypeSignature) Write(w *binary.Writer) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := s.writeWrapped(w, metadata.ElementTypeArray); err != nil {
		return err
	}
	if err := w.WriteCompressedUint32(uint32(len(s.dimensions))); err != nil {
		return err
	}
	sizes := s.sizes()
	if err := w.WriteCompressedUint32(uint32(len(sizes))); err != nil {
		return err
	}
	for _, v := range sizes {
		if err := w.WriteCompressedUint32(v); err != nil {
			return err
		}
	}
	bounds := s.lowerBounds()
	if err := w.WriteCompressedUint32(uint32(len(bounds))); err != nil {
		return err
	}
	for _, v := range bounds {
		if err := w.WriteCompressedInt32(v); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *ReadContext) readArray(r *binary.Reader, depth int) (TypeSignature, *errors.Error) {
	base, err := ctx.readType(r, depth+1)
	if err != nil {
		return nil, err
	}

	at := r.Offset()
	rank, ok := r.TryReadCompressedUint32()
	if !ok {
		return nil, errors.Truncated(at, "array rank")
	}
	if rank > MaxArrayRank {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			At(at).
			Value(rank).
			Detail("array rank %d exceeds %d", rank, MaxArrayRank).
			Build()
	}
	at = r.Offset()
	numSizes, ok := r.TryReadCompressedUint32()
	if !ok {
		return nil, errors.Truncated(at, "array size count")
	}
	if numSizes > rank {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			At(at).
			Detail("%d sizes for rank %d", numSizes, rank).
			Build()
	}
	if !r.CanRead(int(numSizes)) {
		return nil, errors.Truncated(at, fmt.Sprintf("%d array sizes", numSizes))
	}

	dims := make([]ArrayDimension, rank)
	for i := range numSizes {
		at = r.Offset()
		size, ok := r.TryReadCompressedUint32()
		if !ok {
			return nil, errors.Truncated(at, "array size")
		}
		dims[i].Size = &size
	}

	at = r.Offset()
	numBounds, ok := r.TryReadCompressedUint32()
	if !ok {
		return nil, errors.Truncated(at, "array lower bound count")
	}
	if numBounds > rank {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			At(at).
			Detail("%d lower bounds for rank %d", numBounds, rank).
			Build()
	}
	for i := range numBounds {
		at = r.Offset()
		bound, ok := r.TryReadCompressedInt32()
		if !ok {
			return nil, errors.Truncated(at, "array lower bound")
		}
		dims[i].LowerBound = &bound
	}

	return &ArrayTypeSignature{specification: specification{base: base}, dimensions: dims}, nil
}
