package signature

import (
	"github.com/wippyai/clrmeta/metadata"
)

var primitiveNames = []struct {
	name        string
	elementType metadata.ElementType
}{
	{"Void", metadata.ElementTypeVoid},
	{"Boolean", metadata.ElementTypeBoolean},
	{"Char", metadata.ElementTypeChar},
	{"SByte", metadata.ElementTypeI1},
	{"Byte", metadata.ElementTypeU1},
	{"Int16", metadata.ElementTypeI2},
	{"UInt16", metadata.ElementTypeU2},
	{"Int32", metadata.ElementTypeI4},
	{"UInt32", metadata.ElementTypeU4},
	{"Int64", metadata.ElementTypeI8},
	{"UInt64", metadata.ElementTypeU8},
	{"Single", metadata.ElementTypeR4},
	{"Double", metadata.ElementTypeR8},
	{"String", metadata.ElementTypeString},
	{"TypedReference", metadata.ElementTypeTypedByRef},
	{"IntPtr", metadata.ElementTypeI},
	{"UIntPtr", metadata.ElementTypeU},
	{"Object", metadata.ElementTypeObject},
}

// TypeSystem is the registry of primitive shortcut signatures for one
// corlib. Every decode of a primitive tag through the same TypeSystem
// returns the same instance. A TypeSystem is immutable and safe for
// concurrent use.
type TypeSystem struct {
	corlib metadata.ResolutionScope
	byTag  map[metadata.ElementType]*CorLibTypeSignature
	byName map[string]*CorLibTypeSignature
}

// NewTypeSystem creates the primitive registry for types defined in corlib.
func NewTypeSystem(corlib metadata.ResolutionScope) *TypeSystem {
	ts := &TypeSystem{
		corlib: corlib,
		byTag:  make(map[metadata.ElementType]*CorLibTypeSignature, len(primitiveNames)),
		byName: make(map[string]*CorLibTypeSignature, len(primitiveNames)),
	}
	for _, p := range primitiveNames {
		sig := &CorLibTypeSignature{
			typ:         metadata.NewTypeReference(corlib, "System", p.name),
			elementType: p.elementType,
		}
		ts.byTag[p.elementType] = sig
		ts.byName[p.name] = sig
	}
	return ts
}

// CorLib returns the scope the primitive types are defined in.
func (ts *TypeSystem) CorLib() metadata.ResolutionScope {
	return ts.corlib
}

// Primitive returns the shared signature for a primitive element type.
func (ts *TypeSystem) Primitive(et metadata.ElementType) (*CorLibTypeSignature, bool) {
	sig, ok := ts.byTag[et]
	return sig, ok
}

// Lookup returns the shared signature for namespace.name when it is a primitive.
func (ts *TypeSystem) Lookup(namespace, name string) (*CorLibTypeSignature, bool) {
	if namespace != "System" {
		return nil, false
	}
	sig, ok := ts.byName[name]
	return sig, ok
}

// FromType returns the shared primitive signature for t when t names a
// corlib primitive, and otherwise a class or value-type signature.
func (ts *TypeSystem) FromType(t metadata.TypeDefOrRef, isValueType bool) (TypeSignature, error) {
	if t != nil {
		if sig, ok := ts.Lookup(t.Namespace(), t.Name()); ok {
			return sig, nil
		}
	}
	sig, err := NewTypeDefOrRef(t, isValueType)
	if err != nil {
		return nil, err
	}
	return sig, nil
}

func (ts *TypeSystem) Void() *CorLibTypeSignature           { return ts.byTag[metadata.ElementTypeVoid] }
func (ts *TypeSystem) Boolean() *CorLibTypeSignature        { return ts.byTag[metadata.ElementTypeBoolean] }
func (ts *TypeSystem) Char() *CorLibTypeSignature           { return ts.byTag[metadata.ElementTypeChar] }
func (ts *TypeSystem) SByte() *CorLibTypeSignature          { return ts.byTag[metadata.ElementTypeI1] }
func (ts *TypeSystem) Byte() *CorLibTypeSignature           { return ts.byTag[metadata.ElementTypeU1] }
func (ts *TypeSystem) Int16() *CorLibTypeSignature          { return ts.byTag[metadata.ElementTypeI2] }
func (ts *TypeSystem) UInt16() *CorLibTypeSignature         { return ts.byTag[metadata.ElementTypeU2] }
func (ts *TypeSystem) Int32() *CorLibTypeSignature          { return ts.byTag[metadata.ElementTypeI4] }
func (ts *TypeSystem) UInt32() *CorLibTypeSignature         { return ts.byTag[metadata.ElementTypeU4] }
func (ts *TypeSystem) Int64() *CorLibTypeSignature          { return ts.byTag[metadata.ElementTypeI8] }
func (ts *TypeSystem) UInt64() *CorLibTypeSignature         { return ts.byTag[metadata.ElementTypeU8] }
func (ts *TypeSystem) Single() *CorLibTypeSignature         { return ts.byTag[metadata.ElementTypeR4] }
func (ts *TypeSystem) Double() *CorLibTypeSignature         { return ts.byTag[metadata.ElementTypeR8] }
func (ts *TypeSystem) TypedReference() *CorLibTypeSignature { return ts.byTag[metadata.ElementTypeTypedByRef] }
func (ts *TypeSystem) IntPtr() *CorLibTypeSignature         { return ts.byTag[metadata.ElementTypeI] }
func (ts *TypeSystem) UIntPtr() *CorLibTypeSignature        { return ts.byTag[metadata.ElementTypeU] }
func (ts *TypeSystem) Object() *CorLibTypeSignature         { return ts.byTag[metadata.ElementTypeObject] }

// StringType returns the System.String shortcut. It is not named String so
// that TypeSystem does not look like a fmt.Stringer.
func (ts *TypeSystem) StringType() *CorLibTypeSignature {
	return ts.byTag[metadata.ElementTypeString]
}
