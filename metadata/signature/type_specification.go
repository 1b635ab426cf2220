package signature

import (
	"github.com/wippyai/clrmeta/errors"
	"github.com/wippyai/clrmeta/metadata"
)

// TypeSpecification is a TypeSpec row: a type that can only be described
// by a signature, such as a generic instantiation or an array. It can be
// referenced through a TypeDefOrRef coded index like any other type.
type TypeSpecification struct {
	token     metadata.Token
	signature TypeSignature
}

// NewTypeSpecification creates a TypeSpec row for sig.
func NewTypeSpecification(sig TypeSignature) (*TypeSpecification, error) {
	if sig == nil {
		return nil, errors.NilReference([]string{"TypeSpec"}, "signature")
	}
	return &TypeSpecification{signature: sig}, nil
}

func (t *TypeSpecification) Token() metadata.Token                     { return t.token }
func (t *TypeSpecification) AssignToken(token metadata.Token)          { t.token = token }
func (t *TypeSpecification) Signature() TypeSignature                  { return t.signature }
func (t *TypeSpecification) Name() string                              { return t.signature.Name() }
func (t *TypeSpecification) Namespace() string                         { return t.signature.Namespace() }
func (t *TypeSpecification) FullName() string                          { return t.signature.FullName() }
func (t *TypeSpecification) ResolutionScope() metadata.ResolutionScope { return t.signature.ResolutionScope() }

// SetSignature replaces the described signature.
func (t *TypeSpecification) SetSignature(sig TypeSignature) error {
	if sig == nil {
		return errors.NilReference([]string{"TypeSpec"}, "signature")
	}
	t.signature = sig
	return nil
}

// Resolve resolves the type the signature is built on.
func (t *TypeSpecification) Resolve() (metadata.TypeDefOrRef, bool) {
	base, ok := ElementTypeDefOrRef(t.signature)
	if !ok {
		return nil, false
	}
	return base.Resolve()
}

func (t *TypeSpecification) String() string {
	return t.FullName()
}
