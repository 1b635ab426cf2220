package signature

import (
	"go.uber.org/zap"

	"github.com/wippyai/clrmeta/errors"
	"github.com/wippyai/clrmeta/metadata"
	"github.com/wippyai/clrmeta/metadata/binary"
)

// DefaultMaxDepth bounds signature nesting when ReadContext.MaxDepth is zero.
const DefaultMaxDepth = 128

var typeDefOrRefEncoder = metadata.EncoderFor(metadata.TypeDefOrRefIndex)

// Signature is anything that serializes into a signature blob.
type Signature interface {
	// PhysicalLength returns the exact number of bytes Write emits.
	// It does not modify the signature.
	PhysicalLength() uint32
	Write(w *binary.Writer) error
}

// TypeSignature is one node of a type signature tree. The concrete types in
// this package are the only implementations.
type TypeSignature interface {
	Signature
	ElementType() metadata.ElementType
	Name() string
	Namespace() string
	FullName() string
	ResolutionScope() metadata.ResolutionScope
	IsValueType() bool
}

// ReadContext supplies what decoding needs beyond the bytes themselves.
// A ReadContext is not modified by reading and may be shared between
// concurrent readers when its Resolver is safe for concurrent use.
type ReadContext struct {
	// Resolver binds TypeDefOrRef coded indices to rows.
	Resolver metadata.MemberResolver
	// TypeSystem supplies the shared primitive instances.
	TypeSystem *TypeSystem
	// MaxDepth limits nesting; zero means DefaultMaxDepth.
	MaxDepth int
}

// NewReadContext creates a ReadContext with the default depth limit.
func NewReadContext(resolver metadata.MemberResolver, ts *TypeSystem) *ReadContext {
	return &ReadContext{Resolver: resolver, TypeSystem: ts}
}

func (ctx *ReadContext) maxDepth() int {
	if ctx.MaxDepth > 0 {
		return ctx.MaxDepth
	}
	return DefaultMaxDepth
}

// ReadTypeSignature decodes one type signature starting at the reader's
// position. Malformed, truncated or unresolvable input yields a nil
// signature and an error with PhaseDecode; it never panics. After a failure
// the reader's position is unspecified.
func ReadTypeSignature(ctx *ReadContext, r *binary.Reader) (TypeSignature, error) {
	start := r.Offset()
	sig, err := ctx.readType(r, 0)
	if err != nil {
		Logger().Debug("type signature decode failed",
			zap.Int("offset", start),
			zap.Error(err))
		return nil, err
	}
	return sig, nil
}

// ReadTypeSignatureBlob decodes a type signature that must span all of data.
func ReadTypeSignatureBlob(ctx *ReadContext, data []byte) (TypeSignature, error) {
	r := binary.NewReader(data)
	sig, err := ReadTypeSignature(ctx, r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			At(r.Offset()).
			Detail("%d trailing bytes after type signature", r.Len()).
			Build()
	}
	return sig, nil
}

func (ctx *ReadContext) readType(r *binary.Reader, depth int) (TypeSignature, *errors.Error) {
	start := r.Offset()
	if depth >= ctx.maxDepth() {
		return nil, errors.DepthExceeded(start, ctx.maxDepth())
	}

	tag, ok := r.TryReadByte()
	if !ok {
		return nil, errors.Truncated(start, "element type")
	}
	et := metadata.ElementType(tag)

	if et.IsPrimitive() {
		return ctx.readPrimitive(start, et)
	}

	var (
		sig TypeSignature
		err *errors.Error
	)
	switch et {
	case metadata.ElementTypeClass, metadata.ElementTypeValueType:
		sig, err = ctx.readTypeDefOrRefSignature(r, et)
	case metadata.ElementTypeGenericInst:
		sig, err = ctx.readGenericInstance(r, depth)
	case metadata.ElementTypePtr, metadata.ElementTypeByRef, metadata.ElementTypePinned, metadata.ElementTypeSzArray:
		sig, err = ctx.readWrapped(r, et, depth)
	case metadata.ElementTypeArray:
		sig, err = ctx.readArray(r, depth)
	case metadata.ElementTypeVar, metadata.ElementTypeMVar:
		sig, err = readGenericParameter(r, et)
	case metadata.ElementTypeCModReqd, metadata.ElementTypeCModOpt:
		sig, err = ctx.readCustomModifier(r, et, depth)
	case metadata.ElementTypeFnPtr, metadata.ElementTypeSentinel, metadata.ElementTypeBoxed:
		return nil, errors.New(errors.PhaseDecode, errors.KindUnsupported).
			At(start).
			Value(tag).
			Detail("%s signatures are not supported", et).
			Build()
	default:
		return nil, errors.InvalidTag(start, tag)
	}
	if err != nil {
		return nil, err.Within(et.String())
	}
	return sig, nil
}

func (ctx *ReadContext) readPrimitive(start int, et metadata.ElementType) (TypeSignature, *errors.Error) {
	if ctx.TypeSystem == nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindUnresolved).
			At(start).
			Detail("no type system to supply %s", et).
			Build()
	}
	sig, ok := ctx.TypeSystem.Primitive(et)
	if !ok {
		return nil, errors.InvalidTag(start, byte(et))
	}
	return sig, nil
}

// readTypeDefOrRef reads a TypeDefOrRef coded index and resolves it.
func (ctx *ReadContext) readTypeDefOrRef(r *binary.Reader) (metadata.TypeDefOrRef, *errors.Error) {
	start := r.Offset()
	value, ok := r.TryReadCompressedUint32()
	if !ok {
		return nil, errors.Truncated(start, "TypeDefOrRef coded index")
	}
	token, ok := typeDefOrRefEncoder.Decode(value)
	if !ok {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			At(start).
			Value(value).
			Detail("invalid TypeDefOrRef coded index 0x%x", value).
			Build()
	}
	if ctx.Resolver == nil {
		return nil, errors.Unresolved(start, token)
	}
	member, ok := ctx.Resolver.ResolveMember(token)
	if !ok {
		return nil, errors.Unresolved(start, token)
	}
	t, ok := member.(metadata.TypeDefOrRef)
	if !ok || t == nil {
		return nil, errors.Unresolved(start, token)
	}
	return t, nil
}

func typeDefOrRefValue(t metadata.TypeDefOrRef) (uint32, error) {
	token := t.Token()
	if token.IsNil() {
		return 0, errors.New(errors.PhaseEncode, errors.KindUnresolved).
			Type(t.FullName()).
			Detail("type has no metadata token").
			Build()
	}
	return typeDefOrRefEncoder.EncodeToken(token)
}

// typeDefOrRefSize is the compressed size of t's coded index. Types that
// cannot be encoded report 1; their Write fails, so no length contract applies.
func typeDefOrRefSize(t metadata.TypeDefOrRef) uint32 {
	v, err := typeDefOrRefValue(t)
	if err != nil {
		return 1
	}
	return uint32(binary.CompressedSize(v))
}

func writeTypeDefOrRef(w *binary.Writer, t metadata.TypeDefOrRef) error {
	v, err := typeDefOrRefValue(t)
	if err != nil {
		return err
	}
	return w.WriteCompressedUint32(v)
}

// Encode serializes sig into a new byte slice.
func Encode(sig Signature) ([]byte, error) {
	w := binary.NewWriter()
	if err := sig.Write(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// IsTypeOf reports whether sig names namespace.name.
func IsTypeOf(sig TypeSignature, namespace, name string) bool {
	return sig != nil && sig.Namespace() == namespace && sig.Name() == name
}

// ElementTypeDefOrRef walks through pointers, arrays, modifiers and generic
// instantiations to the type that sig is ultimately built on.
func ElementTypeDefOrRef(sig TypeSignature) (metadata.TypeDefOrRef, bool) {
	for sig != nil {
		switch s := sig.(type) {
		case *CorLibTypeSignature:
			return s.Type(), true
		case *TypeDefOrRefSignature:
			return s.Type(), true
		case *GenericInstanceTypeSignature:
			return s.GenericType(), true
		case wrapper:
			sig = s.BaseType()
		default:
			return nil, false
		}
	}
	return nil, false
}

// wrapper is a signature that decorates exactly one nested signature.
type wrapper interface {
	TypeSignature
	BaseType() TypeSignature
}
