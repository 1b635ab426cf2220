package signature

import (
	"github.com/wippyai/clrmeta/errors"
	"github.com/wippyai/clrmeta/metadata"
	"github.com/wippyai/clrmeta/metadata/binary"
)

// specification holds what every single-base wrapper shares: one nested
// signature and the name and scope forwarding to it.
type specification struct {
	base TypeSignature
}

func (s *specification) BaseType() TypeSignature                   { return s.base }
func (s *specification) Namespace() string                         { return s.base.Namespace() }
func (s *specification) ResolutionScope() metadata.ResolutionScope { return s.base.ResolutionScope() }

// SetBaseType replaces the wrapped signature.
func (s *specification) SetBaseType(base TypeSignature) error {
	if base == nil {
		return errors.NilReference([]string{"BaseType"}, "base type")
	}
	s.base = base
	return nil
}

func (s *specification) writeWrapped(w *binary.Writer, et metadata.ElementType) error {
	w.Byte(byte(et))
	return s.base.Write(w)
}

func newSpecification(et metadata.ElementType, base TypeSignature) (specification, error) {
	if base == nil {
		return specification{}, errors.NilReference([]string{et.String()}, "base type")
	}
	return specification{base: base}, nil
}

// PointerTypeSignature is an unmanaged pointer: PTR Type.
type PointerTypeSignature struct{ specification }

// NewPointer creates a pointer to base.
func NewPointer(base TypeSignature) (*PointerTypeSignature, error) {
	s, err := newSpecification(metadata.ElementTypePtr, base)
	if err != nil {
		return nil, err
	}
	return &PointerTypeSignature{s}, nil
}

func (s *PointerTypeSignature) ElementType() metadata.ElementType { return metadata.ElementTypePtr }
func (s *PointerTypeSignature) Name() string                      { return s.base.Name() + "*" }
func (s *PointerTypeSignature) FullName() string                  { return s.base.FullName() + "*" }
func (s *PointerTypeSignature) IsValueType() bool                 { return false }
func (s *PointerTypeSignature) PhysicalLength() uint32            { return 1 + s.base.PhysicalLength() }
func (s *PointerTypeSignature) String() string                    { return s.FullName() }

func (s *PointerTypeSignature) Write(w *binary.Writer) error {
	return s.writeWrapped(w, metadata.ElementTypePtr)
}

// ByReferenceTypeSignature is a managed reference: BYREF Type.
type ByReferenceTypeSignature struct{ specification }

// NewByReference creates a managed reference to base.
func NewByReference(base TypeSignature) (*ByReferenceTypeSignature, error) {
	s, err := newSpecification(metadata.ElementTypeByRef, base)
	if err != nil {
		return nil, err
	}
	return &ByReferenceTypeSignature{s}, nil
}

func (s *ByReferenceTypeSignature) ElementType() metadata.ElementType { return metadata.ElementTypeByRef }
func (s *ByReferenceTypeSignature) Name() string                      { return s.base.Name() + "&" }
func (s *ByReferenceTypeSignature) FullName() string                  { return s.base.FullName() + "&" }
func (s *ByReferenceTypeSignature) IsValueType() bool                 { return false }
func (s *ByReferenceTypeSignature) PhysicalLength() uint32            { return 1 + s.base.PhysicalLength() }
func (s *ByReferenceTypeSignature) String() string                    { return s.FullName() }

func (s *ByReferenceTypeSignature) Write(w *binary.Writer) error {
	return s.writeWrapped(w, metadata.ElementTypeByRef)
}

// PinnedTypeSignature marks a local as pinned: PINNED Type.
type PinnedTypeSignature struct{ specification }

// NewPinned creates a pinned wrapper around base.
func NewPinned(base TypeSignature) (*PinnedTypeSignature, error) {
	s, err := newSpecification(metadata.ElementTypePinned, base)
	if err != nil {
		return nil, err
	}
	return &PinnedTypeSignature{s}, nil
}

func (s *PinnedTypeSignature) ElementType() metadata.ElementType { return metadata.ElementTypePinned }
func (s *PinnedTypeSignature) Name() string                      { return s.base.Name() + " pinned" }
func (s *PinnedTypeSignature) FullName() string                  { return s.base.FullName() + " pinned" }
func (s *PinnedTypeSignature) IsValueType() bool                 { return s.base.IsValueType() }
func (s *PinnedTypeSignature) PhysicalLength() uint32            { return 1 + s.base.PhysicalLength() }
func (s *PinnedTypeSignature) String() string                    { return s.FullName() }

func (s *PinnedTypeSignature) Write(w *binary.Writer) error {
	return s.writeWrapped(w, metadata.ElementTypePinned)
}

// SzArrayTypeSignature is a single-dimensional, zero-based array: SZARRAY Type.
type SzArrayTypeSignature struct{ specification }

// NewSzArray creates a vector of base.
func NewSzArray(base TypeSignature) (*SzArrayTypeSignature, error) {
	s, err := newSpecification(metadata.ElementTypeSzArray, base)
	if err != nil {
		return nil, err
	}
	return &SzArrayTypeSignature{s}, nil
}

func (s *SzArrayTypeSignature) ElementType() metadata.ElementType { return metadata.ElementTypeSzArray }
func (s *SzArrayTypeSignature) Name() string                      { return s.base.Name() + "[]" }
func (s *SzArrayTypeSignature) FullName() string                  { return s.base.FullName() + "[]" }
func (s *SzArrayTypeSignature) IsValueType() bool                 { return false }
func (s *SzArrayTypeSignature) PhysicalLength() uint32            { return 1 + s.base.PhysicalLength() }
func (s *SzArrayTypeSignature) String() string                    { return s.FullName() }

func (s *SzArrayTypeSignature) Write(w *binary.Writer) error {
	return s.writeWrapped(w, metadata.ElementTypeSzArray)
}

func (ctx *ReadContext) readWrapped(r *binary.Reader, et metadata.ElementType, depth int) (TypeSignature, *errors.Error) {
	base, err := ctx.readType(r, depth+1)
	if err != nil {
		return nil, err
	}
	s := specification{base: base}
	switch et {
	case metadata.ElementTypePtr:
		return &PointerTypeSignature{s}, nil
	case metadata.ElementTypeByRef:
		return &ByReferenceTypeSignature{s}, nil
	case metadata.ElementTypePinned:
		return &PinnedTypeSignature{s}, nil
	default:
		return &SzArrayTypeSignature{s}, nil
	}
}
