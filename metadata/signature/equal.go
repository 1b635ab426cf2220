package signature

import (
	"github.com/wippyai/clrmeta/metadata"
)

// Equal reports whether a and b describe the same type. Type references
// compare by full name and resolution scope name, so signatures read from
// different modules can match.
func Equal(a, b TypeSignature) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a == b {
		return true
	}
	if a.ElementType() != b.ElementType() {
		return false
	}

	switch x := a.(type) {
	case *CorLibTypeSignature:
		y := b.(*CorLibTypeSignature)
		return sameType(x.typ, y.typ)
	case *TypeDefOrRefSignature:
		y := b.(*TypeDefOrRefSignature)
		return sameType(x.typ, y.typ)
	case *GenericInstanceTypeSignature:
		y := b.(*GenericInstanceTypeSignature)
		if x.isValueType != y.isValueType || !sameType(x.genericType, y.genericType) ||
			len(x.arguments) != len(y.arguments) {
			return false
		}
		for i := range x.arguments {
			if !Equal(x.arguments[i], y.arguments[i]) {
				return false
			}
		}
		return true
	case *GenericParameterSignature:
		y := b.(*GenericParameterSignature)
		return x.index == y.index
	case *CustomModifierTypeSignature:
		y := b.(*CustomModifierTypeSignature)
		return sameType(x.modifier, y.modifier) && Equal(x.base, y.base)
	case *ArrayTypeSignature:
		y := b.(*ArrayTypeSignature)
		if len(x.dimensions) != len(y.dimensions) {
			return false
		}
		for i, d := range x.dimensions {
			e := y.dimensions[i]
			if !sameBound(d.Size, e.Size) || !sameBound(d.LowerBound, e.LowerBound) {
				return false
			}
		}
		return Equal(x.base, y.base)
	case wrapper:
		return Equal(x.BaseType(), b.(wrapper).BaseType())
	default:
		return false
	}
}

func sameType(a, b metadata.TypeDefOrRef) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.FullName() != b.FullName() {
		return false
	}
	sa, sb := a.ResolutionScope(), b.ResolutionScope()
	if sa == nil || sb == nil {
		return sa == sb
	}
	return sa.Name() == sb.Name()
}

func sameBound[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
