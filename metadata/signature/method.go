package signature

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/clrmeta/errors"
	"github.com/wippyai/clrmeta/metadata/binary"
)

// CallingConvention is the first byte of a method signature: a calling
// convention in the low nibble plus attribute flags.
type CallingConvention byte

const (
	CallingConventionDefault  CallingConvention = 0x00
	CallingConventionC        CallingConvention = 0x01
	CallingConventionStdCall  CallingConvention = 0x02
	CallingConventionThisCall CallingConvention = 0x03
	CallingConventionFastCall CallingConvention = 0x04
	CallingConventionVarArg   CallingConvention = 0x05

	CallingConventionGeneric      CallingConvention = 0x10
	CallingConventionHasThis      CallingConvention = 0x20
	CallingConventionExplicitThis CallingConvention = 0x40

	callingConventionMask CallingConvention = 0x0F
)

// Kind returns the calling convention without attribute flags.
func (c CallingConvention) Kind() CallingConvention { return c & callingConventionMask }

func (c CallingConvention) IsGeneric() bool       { return c&CallingConventionGeneric != 0 }
func (c CallingConvention) HasThis() bool         { return c&CallingConventionHasThis != 0 }
func (c CallingConvention) HasExplicitThis() bool { return c&CallingConventionExplicitThis != 0 }

func (c CallingConvention) String() string {
	var parts []string
	if c.HasThis() {
		parts = append(parts, "instance")
	}
	if c.HasExplicitThis() {
		parts = append(parts, "explicit")
	}
	switch c.Kind() {
	case CallingConventionDefault:
		parts = append(parts, "default")
	case CallingConventionC:
		parts = append(parts, "unmanaged cdecl")
	case CallingConventionStdCall:
		parts = append(parts, "unmanaged stdcall")
	case CallingConventionThisCall:
		parts = append(parts, "unmanaged thiscall")
	case CallingConventionFastCall:
		parts = append(parts, "unmanaged fastcall")
	case CallingConventionVarArg:
		parts = append(parts, "vararg")
	default:
		parts = append(parts, fmt.Sprintf("callconv(0x%x)", byte(c.Kind())))
	}
	if c.IsGeneric() {
		parts = append(parts, "generic")
	}
	return strings.Join(parts, " ")
}

// MethodSignature describes a method's calling convention, generic arity,
// return type and parameter types:
//
//	CallConv [GenParamCount] ParamCount RetType Param*
type MethodSignature struct {
	callingConvention     CallingConvention
	genericParameterCount uint32
	returnType            TypeSignature
	parameterTypes        []TypeSignature
}

// NewMethodSignature creates a method signature. A nil return type or
// parameter type is a caller error.
func NewMethodSignature(cc CallingConvention, returnType TypeSignature, parameterTypes ...TypeSignature) (*MethodSignature, error) {
	if returnType == nil {
		return nil, errors.NilReference([]string{"Method", "return"}, "return type")
	}
	for i, p := range parameterTypes {
		if p == nil {
			return nil, errors.NilReference([]string{"Method", paramPath(i)}, "parameter type")
		}
	}
	return &MethodSignature{
		callingConvention: cc,
		returnType:        returnType,
		parameterTypes:    slices.Clone(parameterTypes),
	}, nil
}

func (m *MethodSignature) CallingConvention() CallingConvention { return m.callingConvention }
func (m *MethodSignature) ReturnType() TypeSignature            { return m.returnType }
func (m *MethodSignature) ParameterCount() int                  { return len(m.parameterTypes) }
func (m *MethodSignature) GenericParameterCount() uint32        { return m.genericParameterCount }
func (m *MethodSignature) HasThis() bool                        { return m.callingConvention.HasThis() }

// ParameterTypes returns a copy of the parameter types, in order.
func (m *MethodSignature) ParameterTypes() []TypeSignature {
	return slices.Clone(m.parameterTypes)
}

// ParameterType returns the i-th parameter type.
func (m *MethodSignature) ParameterType(i int) TypeSignature {
	return m.parameterTypes[i]
}

// SetGenericParameterCount sets the generic arity and the GENERIC flag
// with it; a count of zero clears the flag.
func (m *MethodSignature) SetGenericParameterCount(n uint32) {
	m.genericParameterCount = n
	if n > 0 {
		m.callingConvention |= CallingConventionGeneric
	} else {
		m.callingConvention &^= CallingConventionGeneric
	}
}

// SetReturnType replaces the return type.
func (m *MethodSignature) SetReturnType(t TypeSignature) error {
	if t == nil {
		return errors.NilReference([]string{"Method", "return"}, "return type")
	}
	m.returnType = t
	return nil
}

// SetParameterType replaces the i-th parameter type.
func (m *MethodSignature) SetParameterType(i int, t TypeSignature) error {
	if i < 0 || i >= len(m.parameterTypes) {
		return errors.New(errors.PhaseConstruct, errors.KindInvalidInput).
			Path("Method", paramPath(i)).
			Detail("parameter index %d out of range (count %d)", i, len(m.parameterTypes)).
			Build()
	}
	if t == nil {
		return errors.NilReference([]string{"Method", paramPath(i)}, "parameter type")
	}
	m.parameterTypes[i] = t
	return nil
}

// AddParameterType appends a parameter type.
func (m *MethodSignature) AddParameterType(t TypeSignature) error {
	if t == nil {
		return errors.NilReference([]string{"Method", paramPath(len(m.parameterTypes))}, "parameter type")
	}
	m.parameterTypes = append(m.parameterTypes, t)
	return nil
}

func (m *MethodSignature) PhysicalLength() uint32 {
	n := uint32(1) +
		uint32(binary.CompressedSize(uint32(len(m.parameterTypes)))) +
		m.returnType.PhysicalLength()
	if m.callingConvention.IsGeneric() {
		n += uint32(binary.CompressedSize(m.genericParameterCount))
	}
	for _, p := range m.parameterTypes {
		n += p.PhysicalLength()
	}
	return n
}

func (m *MethodSignature) Write(w *binary.Writer) error {
	w.Byte(byte(m.callingConvention))
	if m.callingConvention.IsGeneric() {
		if err := w.WriteCompressedUint32(m.genericParameterCount); err != nil {
			return err
		}
	}
	if err := w.WriteCompressedUint32(uint32(len(m.parameterTypes))); err != nil {
		return err
	}
	if err := m.returnType.Write(w); err != nil {
		return err
	}
	for _, p := range m.parameterTypes {
		if err := p.Write(w); err != nil {
			return err
		}
	}
	return nil
}

// String renders the signature in IL assembler order, for example
// "instance default System.Void (System.Int32, System.String)".
func (m *MethodSignature) String() string {
	var b strings.Builder
	b.WriteString(m.callingConvention.String())
	b.WriteByte(' ')
	b.WriteString(m.returnType.FullName())
	b.WriteString(" (")
	for i, p := range m.parameterTypes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.FullName())
	}
	b.WriteByte(')')
	return b.String()
}

// ReadMethodSignature decodes a method signature starting at the reader's
// position, with the same failure policy as ReadTypeSignature. Variable
// argument lists (SENTINEL) are not supported.
func ReadMethodSignature(ctx *ReadContext, r *binary.Reader) (*MethodSignature, error) {
	start := r.Offset()
	m, err := ctx.readMethod(r)
	if err != nil {
		Logger().Debug("method signature decode failed",
			zap.Int("offset", start),
			zap.Error(err))
		return nil, err
	}
	return m, nil
}

// ReadMethodSignatureBlob decodes a method signature that must span all of data.
func ReadMethodSignatureBlob(ctx *ReadContext, data []byte) (*MethodSignature, error) {
	r := binary.NewReader(data)
	m, err := ReadMethodSignature(ctx, r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			At(r.Offset()).
			Detail("%d trailing bytes after method signature", r.Len()).
			Build()
	}
	return m, nil
}

func (ctx *ReadContext) readMethod(r *binary.Reader) (*MethodSignature, *errors.Error) {
	at := r.Offset()
	b, ok := r.TryReadByte()
	if !ok {
		return nil, errors.Truncated(at, "calling convention")
	}
	cc := CallingConvention(b)
	if cc.Kind() > CallingConventionVarArg {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			At(at).
			Value(b).
			Detail("0x%02x is not a method calling convention", b).
			Build()
	}

	m := &MethodSignature{callingConvention: cc}
	if cc.IsGeneric() {
		at = r.Offset()
		if m.genericParameterCount, ok = r.TryReadCompressedUint32(); !ok {
			return nil, errors.Truncated(at, "generic parameter count")
		}
	}

	at = r.Offset()
	count, ok := r.TryReadCompressedUint32()
	if !ok {
		return nil, errors.Truncated(at, "parameter count")
	}
	// The return type plus every parameter takes at least one byte each.
	if !r.CanRead(int(count) + 1) {
		return nil, errors.Truncated(at, fmt.Sprintf("%d parameters", count))
	}

	ret, err := ctx.readType(r, 0)
	if err != nil {
		return nil, err.Within("return")
	}
	m.returnType = ret

	m.parameterTypes = make([]TypeSignature, 0, count)
	for i := 0; i < int(count); i++ {
		p, err := ctx.readType(r, 0)
		if err != nil {
			return nil, err.Within(paramPath(i))
		}
		m.parameterTypes = append(m.parameterTypes, p)
	}
	return m, nil
}

func paramPath(i int) string {
	return fmt.Sprintf("param[%d]", i)
}
