package signature

import (
	"fmt"
	"slices"
	"strings"

	"github.com/wippyai/clrmeta/errors"
	"github.com/wippyai/clrmeta/metadata"
	"github.com/wippyai/clrmeta/metadata/binary"
)

// GenericInstanceTypeSignature is an instantiation of a generic type:
//
//	GENERICINST (CLASS | VALUETYPE) TypeDefOrRef ArgCount Type*
//
// The generic type is never nil and the encoded argument count is always
// the number of arguments held.
type GenericInstanceTypeSignature struct {
	genericType metadata.TypeDefOrRef
	arguments   []TypeSignature
	isValueType bool
}

// NewGenericInstance creates an instantiation of genericType with the given
// arguments. A nil genericType or argument is a caller error.
func NewGenericInstance(genericType metadata.TypeDefOrRef, isValueType bool, arguments ...TypeSignature) (*GenericInstanceTypeSignature, error) {
	if genericType == nil {
		return nil, errors.NilReference([]string{"GenericInst"}, "generic type")
	}
	for i, arg := range arguments {
		if arg == nil {
			return nil, errors.NilReference([]string{"GenericInst", argPath(i)}, "generic argument")
		}
	}
	return &GenericInstanceTypeSignature{
		genericType: genericType,
		isValueType: isValueType,
		arguments:   slices.Clone(arguments),
	}, nil
}

func (s *GenericInstanceTypeSignature) ElementType() metadata.ElementType {
	return metadata.ElementTypeGenericInst
}

// GenericType returns the generic type being instantiated.
func (s *GenericInstanceTypeSignature) GenericType() metadata.TypeDefOrRef {
	return s.genericType
}

// SetGenericType replaces the generic type being instantiated.
func (s *GenericInstanceTypeSignature) SetGenericType(t metadata.TypeDefOrRef) error {
	if t == nil {
		return errors.NilReference([]string{"GenericInst"}, "generic type")
	}
	s.genericType = t
	return nil
}

func (s *GenericInstanceTypeSignature) IsValueType() bool {
	return s.isValueType
}

// SetIsValueType changes the CLASS / VALUETYPE marker.
func (s *GenericInstanceTypeSignature) SetIsValueType(v bool) {
	s.isValueType = v
}

// Arguments returns a copy of the type arguments, in order.
func (s *GenericInstanceTypeSignature) Arguments() []TypeSignature {
	return slices.Clone(s.arguments)
}

// ArgumentCount returns the number of type arguments.
func (s *GenericInstanceTypeSignature) ArgumentCount() int {
	return len(s.arguments)
}

// Argument returns the i-th type argument.
func (s *GenericInstanceTypeSignature) Argument(i int) TypeSignature {
	return s.arguments[i]
}

// AddArgument appends a type argument.
func (s *GenericInstanceTypeSignature) AddArgument(arg TypeSignature) error {
	if arg == nil {
		return errors.NilReference([]string{"GenericInst", argPath(len(s.arguments))}, "generic argument")
	}
	s.arguments = append(s.arguments, arg)
	return nil
}

// SetArgument replaces the i-th type argument.
func (s *GenericInstanceTypeSignature) SetArgument(i int, arg TypeSignature) error {
	if i < 0 || i >= len(s.arguments) {
		return errors.New(errors.PhaseConstruct, errors.KindInvalidInput).
			Path("GenericInst", argPath(i)).
			Detail("argument index %d out of range (count %d)", i, len(s.arguments)).
			Build()
	}
	if arg == nil {
		return errors.NilReference([]string{"GenericInst", argPath(i)}, "generic argument")
	}
	s.arguments[i] = arg
	return nil
}

// Name renders Type<Arg1, Arg2> using each argument's full name.
func (s *GenericInstanceTypeSignature) Name() string {
	return s.genericType.Name() + s.argumentList()
}

// Namespace is the generic type's namespace.
func (s *GenericInstanceTypeSignature) Namespace() string {
	return s.genericType.Namespace()
}

// ResolutionScope is the generic type's resolution scope.
func (s *GenericInstanceTypeSignature) ResolutionScope() metadata.ResolutionScope {
	return s.genericType.ResolutionScope()
}

func (s *GenericInstanceTypeSignature) FullName() string {
	return s.genericType.FullName() + s.argumentList()
}

func (s *GenericInstanceTypeSignature) String() string {
	return s.FullName()
}

func (s *GenericInstanceTypeSignature) argumentList() string {
	var b strings.Builder
	b.WriteByte('<')
	for i, arg := range s.arguments {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.FullName())
	}
	b.WriteByte('>')
	return b.String()
}

func (s *GenericInstanceTypeSignature) PhysicalLength() uint32 {
	n := uint32(1) + // GENERICINST
		1 + // CLASS / VALUETYPE
		typeDefOrRefSize(s.genericType) +
		uint32(binary.CompressedSize(uint32(len(s.arguments))))
	for _, arg := range s.arguments {
		n += arg.PhysicalLength()
	}
	return n
}

func (s *GenericInstanceTypeSignature) Write(w *binary.Writer) error {
	w.Byte(byte(metadata.ElementTypeGenericInst))
	if s.isValueType {
		w.Byte(byte(metadata.ElementTypeValueType))
	} else {
		w.Byte(byte(metadata.ElementTypeClass))
	}
	if err := writeTypeDefOrRef(w, s.genericType); err != nil {
		return err
	}
	if err := w.WriteCompressedUint32(uint32(len(s.arguments))); err != nil {
		return err
	}
	for _, arg := range s.arguments {
		if err := arg.Write(w); err != nil {
			return err
		}
	}
	return nil
}

// readGenericInstance decodes everything after the GENERICINST tag. Any
// failure after the generic type resolves, including a missing argument
// count, abandons the whole node.
func (ctx *ReadContext) readGenericInstance(r *binary.Reader, depth int) (TypeSignature, *errors.Error) {
	markerAt := r.Offset()
	marker, ok := r.TryReadByte()
	if !ok {
		return nil, errors.Truncated(markerAt, "generic instance category")
	}
	et := metadata.ElementType(marker)
	if et != metadata.ElementTypeClass && et != metadata.ElementTypeValueType {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			At(markerAt).
			Value(marker).
			Detail("generic instance category must be Class or ValueType, got %s", et).
			Build()
	}

	genericType, err := ctx.readTypeDefOrRef(r)
	if err != nil {
		return nil, err
	}

	countAt := r.Offset()
	count, ok := r.TryReadCompressedUint32()
	if !ok {
		return nil, errors.Truncated(countAt, "generic argument count")
	}
	// Every argument takes at least one byte.
	if !r.CanRead(int(count)) {
		return nil, errors.Truncated(countAt, fmt.Sprintf("%d generic arguments", count))
	}

	sig := &GenericInstanceTypeSignature{
		genericType: genericType,
		isValueType: et == metadata.ElementTypeValueType,
		arguments:   make([]TypeSignature, 0, count),
	}
	for i := 0; i < int(count); i++ {
		arg, err := ctx.readType(r, depth+1)
		if err != nil {
			return nil, err.Within(argPath(i))
		}
		sig.arguments = append(sig.arguments, arg)
	}
	return sig, nil
}

func argPath(i int) string {
	return fmt.Sprintf("arg[%d]", i)
}
