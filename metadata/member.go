package metadata

import (
	"fmt"
	"slices"
)

// Member is any row of a metadata table.
type Member interface {
	Token() Token
}

// TokenAssigner is a member whose token is assigned by the table that stores it.
type TokenAssigner interface {
	Member
	AssignToken(Token)
}

// MemberResolver turns a token decoded from binary data into a live member.
type MemberResolver interface {
	ResolveMember(token Token) (Member, bool)
}

// MemberResolverFunc adapts a function to MemberResolver.
type MemberResolverFunc func(token Token) (Member, bool)

// ResolveMember calls f(token).
func (f MemberResolverFunc) ResolveMember(token Token) (Member, bool) {
	return f(token)
}

// ResolutionScope is a member that can own type references: a module,
// module reference, assembly reference or enclosing type reference.
type ResolutionScope interface {
	Member
	Name() string
}

// TypeDefOrRef is a type definition, type reference or type specification:
// anything a TypeDefOrRef coded index can point to.
type TypeDefOrRef interface {
	Member
	Name() string
	Namespace() string
	FullName() string
	ResolutionScope() ResolutionScope
	// Resolve returns the definition this type ultimately refers to.
	Resolve() (TypeDefOrRef, bool)
}

// JoinFullName joins a namespace and a type name with a dot.
func JoinFullName(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

// AssemblyVersion is the four-part version of an assembly.
type AssemblyVersion struct {
	Major    uint16
	Minor    uint16
	Build    uint16
	Revision uint16
}

func (v AssemblyVersion) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
}

// AssemblyReference is a row of the AssemblyRef table.
type AssemblyReference struct {
	name           string
	culture        string
	publicKeyToken []byte
	version        AssemblyVersion
	token          Token
}

// NewAssemblyReference creates an assembly reference. publicKeyToken may be nil
// for assemblies that are not strong-named.
func NewAssemblyReference(name string, version AssemblyVersion, publicKeyToken []byte) *AssemblyReference {
	return &AssemblyReference{
		name:           name,
		version:        version,
		publicKeyToken: slices.Clone(publicKeyToken),
	}
}

func (a *AssemblyReference) Token() Token              { return a.token }
func (a *AssemblyReference) AssignToken(t Token)       { a.token = t }
func (a *AssemblyReference) Name() string              { return a.name }
func (a *AssemblyReference) Version() AssemblyVersion  { return a.version }
func (a *AssemblyReference) Culture() string           { return a.culture }
func (a *AssemblyReference) SetCulture(culture string) { a.culture = culture }
func (a *AssemblyReference) PublicKeyToken() []byte    { return slices.Clone(a.publicKeyToken) }
func (a *AssemblyReference) HasPublicKeyToken() bool   { return len(a.publicKeyToken) > 0 }

// FullName renders the display name of the assembly.
func (a *AssemblyReference) FullName() string {
	culture := a.culture
	if culture == "" {
		culture = "neutral"
	}
	pkt := "null"
	if len(a.publicKeyToken) > 0 {
		pkt = fmt.Sprintf("%x", a.publicKeyToken)
	}
	return fmt.Sprintf("%s, Version=%s, Culture=%s, PublicKeyToken=%s", a.name, a.version, culture, pkt)
}

// ModuleReference is a row of the ModuleRef table, or the Module row when
// used as the scope of locally defined types.
type ModuleReference struct {
	name  string
	token Token
}

// NewModuleReference creates a module reference.
func NewModuleReference(name string) *ModuleReference {
	return &ModuleReference{name: name}
}

func (m *ModuleReference) Token() Token        { return m.token }
func (m *ModuleReference) AssignToken(t Token) { m.token = t }
func (m *ModuleReference) Name() string        { return m.name }

// TypeReference is a row of the TypeRef table.
type TypeReference struct {
	scope      ResolutionScope
	definition TypeDefOrRef
	namespace  string
	name       string
	token      Token
}

// NewTypeReference creates a reference to namespace.name in scope.
func NewTypeReference(scope ResolutionScope, namespace, name string) *TypeReference {
	return &TypeReference{scope: scope, namespace: namespace, name: name}
}

func (r *TypeReference) Token() Token                     { return r.token }
func (r *TypeReference) AssignToken(t Token)              { r.token = t }
func (r *TypeReference) Name() string                     { return r.name }
func (r *TypeReference) Namespace() string                { return r.namespace }
func (r *TypeReference) ResolutionScope() ResolutionScope { return r.scope }

// FullName returns namespace.name, with a nested type's enclosing type as prefix.
func (r *TypeReference) FullName() string {
	if outer, ok := r.scope.(*TypeReference); ok {
		return outer.FullName() + "+" + r.name
	}
	return JoinFullName(r.namespace, r.name)
}

// Bind records the definition this reference resolves to.
func (r *TypeReference) Bind(definition TypeDefOrRef) {
	r.definition = definition
}

// Resolve returns the bound definition.
func (r *TypeReference) Resolve() (TypeDefOrRef, bool) {
	if r.definition == nil {
		return nil, false
	}
	return r.definition, true
}

// TypeDefinition is a row of the TypeDef table.
type TypeDefinition struct {
	module        ResolutionScope
	declaringType *TypeDefinition
	namespace     string
	name          string
	token         Token
}

// NewTypeDefinition creates a type defined in module.
func NewTypeDefinition(module ResolutionScope, namespace, name string) *TypeDefinition {
	return &TypeDefinition{module: module, namespace: namespace, name: name}
}

// NewNestedTypeDefinition creates a type nested in declaringType.
func NewNestedTypeDefinition(declaringType *TypeDefinition, name string) *TypeDefinition {
	return &TypeDefinition{module: declaringType.module, declaringType: declaringType, name: name}
}

func (d *TypeDefinition) Token() Token                     { return d.token }
func (d *TypeDefinition) AssignToken(t Token)              { d.token = t }
func (d *TypeDefinition) Name() string                     { return d.name }
func (d *TypeDefinition) ResolutionScope() ResolutionScope { return d.module }
func (d *TypeDefinition) DeclaringType() *TypeDefinition   { return d.declaringType }
func (d *TypeDefinition) Resolve() (TypeDefOrRef, bool)    { return d, true }

// Namespace returns the namespace; nested types report their outermost type's namespace.
func (d *TypeDefinition) Namespace() string {
	if d.declaringType != nil {
		return d.declaringType.Namespace()
	}
	return d.namespace
}

func (d *TypeDefinition) FullName() string {
	if d.declaringType != nil {
		return d.declaringType.FullName() + "+" + d.name
	}
	return JoinFullName(d.namespace, d.name)
}
