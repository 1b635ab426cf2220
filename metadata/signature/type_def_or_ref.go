package signature

import (
	"github.com/wippyai/clrmeta/errors"
	"github.com/wippyai/clrmeta/metadata"
	"github.com/wippyai/clrmeta/metadata/binary"
)

// TypeDefOrRefSignature is a direct reference to a class or value type:
// CLASS or VALUETYPE followed by a TypeDefOrRef coded index.
type TypeDefOrRefSignature struct {
	typ         metadata.TypeDefOrRef
	isValueType bool
}

// NewTypeDefOrRef creates a signature referencing t.
func NewTypeDefOrRef(t metadata.TypeDefOrRef, isValueType bool) (*TypeDefOrRefSignature, error) {
	if t == nil {
		return nil, errors.NilReference([]string{"TypeDefOrRef"}, "type")
	}
	return &TypeDefOrRefSignature{typ: t, isValueType: isValueType}, nil
}

func (s *TypeDefOrRefSignature) Name() string                              { return s.typ.Name() }
func (s *TypeDefOrRefSignature) Namespace() string                         { return s.typ.Namespace() }
func (s *TypeDefOrRefSignature) FullName() string                          { return s.typ.FullName() }
func (s *TypeDefOrRefSignature) ResolutionScope() metadata.ResolutionScope { return s.typ.ResolutionScope() }
func (s *TypeDefOrRefSignature) IsValueType() bool                         { return s.isValueType }
func (s *TypeDefOrRefSignature) Type() metadata.TypeDefOrRef               { return s.typ }

func (s *TypeDefOrRefSignature) ElementType() metadata.ElementType {
	if s.isValueType {
		return metadata.ElementTypeValueType
	}
	return metadata.ElementTypeClass
}

// SetType replaces the referenced type.
func (s *TypeDefOrRefSignature) SetType(t metadata.TypeDefOrRef) error {
	if t == nil {
		return errors.NilReference([]string{"TypeDefOrRef"}, "type")
	}
	s.typ = t
	return nil
}

func (s *TypeDefOrRefSignature) PhysicalLength() uint32 {
	return 1 + typeDefOrRefSize(s.typ)
}

func (s *TypeDefOrRefSignature) Write(w *binary.Writer) error {
	w.Byte(byte(s.ElementType()))
	return writeTypeDefOrRef(w, s.typ)
}

func (s *TypeDefOrRefSignature) String() string {
	return s.FullName()
}

func (ctx *ReadContext) readTypeDefOrRefSignature(r *binary.Reader, et metadata.ElementType) (TypeSignature, *errors.Error) {
	t, err := ctx.readTypeDefOrRef(r)
	if err != nil {
		return nil, err
	}
	return &TypeDefOrRefSignature{typ: t, isValueType: et == metadata.ElementTypeValueType}, nil
}
