package signature

import (
	"fmt"

	"github.com/wippyai/clrmeta/errors"
	"github.com/wippyai/clrmeta/metadata"
	"github.com/wippyai/clrmeta/metadata/binary"
)

// GenericParameterKind says whether a generic parameter belongs to a type or a method.
type GenericParameterKind uint8

const (
	GenericParameterType GenericParameterKind = iota
	GenericParameterMethod
)

// GenericParameterSignature references a generic parameter by position:
// VAR Number for type parameters, MVAR Number for method parameters.
type GenericParameterSignature struct {
	kind  GenericParameterKind
	index uint32
}

// NewGenericParameter creates a reference to the index-th generic parameter.
func NewGenericParameter(kind GenericParameterKind, index uint32) *GenericParameterSignature {
	return &GenericParameterSignature{kind: kind, index: index}
}

func (s *GenericParameterSignature) Kind() GenericParameterKind                { return s.kind }
func (s *GenericParameterSignature) Index() uint32                             { return s.index }
func (s *GenericParameterSignature) Namespace() string                         { return "" }
func (s *GenericParameterSignature) ResolutionScope() metadata.ResolutionScope { return nil }
func (s *GenericParameterSignature) IsValueType() bool                         { return false }

func (s *GenericParameterSignature) ElementType() metadata.ElementType {
	if s.kind == GenericParameterMethod {
		return metadata.ElementTypeMVar
	}
	return metadata.ElementTypeVar
}

// Name renders !n for type parameters and !!n for method parameters.
func (s *GenericParameterSignature) Name() string {
	if s.kind == GenericParameterMethod {
		return fmt.Sprintf("!!%d", s.index)
	}
	return fmt.Sprintf("!%d", s.index)
}

func (s *GenericParameterSignature) FullName() string {
	return s.Name()
}

func (s *GenericParameterSignature) String() string {
	return s.Name()
}

func (s *GenericParameterSignature) PhysicalLength() uint32 {
	return 1 + uint32(binary.CompressedSize(s.index))
}

func (s *GenericParameterSignature) Write(w *binary.Writer) error {
	w.Byte(byte(s.ElementType()))
	return w.WriteCompressedUint32(s.index)
}

func readGenericParameter(r *binary.Reader, et metadata.ElementType) (TypeSignature, *errors.Error) {
	start := r.Offset()
	index, ok := r.TryReadCompressedUint32()
	if !ok {
		return nil, errors.Truncated(start, "generic parameter index")
	}
	kind := GenericParameterType
	if et == metadata.ElementTypeMVar {
		kind = GenericParameterMethod
	}
	return &GenericParameterSignature{kind: kind, index: index}, nil
}
