package signature

import (
	"fmt"
	"iter"

	"github.com/wippyai/clrmeta/errors"
)

// ParameterKind distinguishes the implicit parameter slots from ordinary ones.
type ParameterKind uint8

const (
	ParameterOrdinary ParameterKind = iota
	ParameterReturn
	ParameterThis
)

// Parameter is a view of one slot of a method signature. Ordinary
// parameters read and write through to the signature.
type Parameter struct {
	owner *ParameterCollection
	name  string
	index int
	kind  ParameterKind
}

func (p *Parameter) Kind() ParameterKind { return p.kind }
func (p *Parameter) Name() string        { return p.name }

// Index is the zero-based position among ordinary parameters, or -1 for
// the return and this slots.
func (p *Parameter) Index() int {
	if p.kind != ParameterOrdinary {
		return -1
	}
	return p.index
}

// Sequence is the metadata sequence number: 0 for the return value and
// 1-based for ordinary parameters. The this slot has no sequence and
// reports -1.
func (p *Parameter) Sequence() int {
	switch p.kind {
	case ParameterReturn:
		return 0
	case ParameterThis:
		return -1
	default:
		return p.index + 1
	}
}

// SetName renames the parameter.
func (p *Parameter) SetName(name string) {
	p.name = name
}

// ParameterType returns the current type of the slot.
func (p *Parameter) ParameterType() TypeSignature {
	switch p.kind {
	case ParameterReturn:
		return p.owner.signature.ReturnType()
	case ParameterThis:
		return p.owner.thisType
	default:
		return p.owner.signature.ParameterType(p.index)
	}
}

// SetParameterType replaces an ordinary parameter's type in the underlying
// method signature. The return and this slots are derived and cannot be
// assigned through a parameter.
func (p *Parameter) SetParameterType(t TypeSignature) error {
	switch p.kind {
	case ParameterReturn:
		return errors.Immutable([]string{"Parameters", "return"}, "return parameter type")
	case ParameterThis:
		return errors.Immutable([]string{"Parameters", "this"}, "this parameter type")
	}
	if t == nil {
		return errors.NilReference([]string{"Parameters", paramPath(p.index)}, "parameter type")
	}
	return p.owner.signature.SetParameterType(p.index, t)
}

func (p *Parameter) String() string {
	return fmt.Sprintf("%s %s", p.ParameterType().FullName(), p.name)
}

// ParameterCollection presents a method signature as named parameters,
// plus the implicit return and this slots.
type ParameterCollection struct {
	signature  *MethodSignature
	thisType   TypeSignature
	parameters []*Parameter
	ret        *Parameter
	this       *Parameter
}

// NewParameterCollection builds the parameter view of sig. names supplies
// parameter names by position; missing or empty names default to A_n.
// declaringType is required when sig has an implicit this; value types are
// passed by reference.
func NewParameterCollection(sig *MethodSignature, declaringType TypeSignature, names ...string) (*ParameterCollection, error) {
	if sig == nil {
		return nil, errors.NilReference([]string{"Parameters"}, "method signature")
	}
	c := &ParameterCollection{signature: sig}
	c.ret = &Parameter{owner: c, kind: ParameterReturn}

	if sig.HasThis() && !sig.CallingConvention().HasExplicitThis() {
		if declaringType == nil {
			return nil, errors.NilReference([]string{"Parameters", "this"}, "declaring type of an instance method")
		}
		c.thisType = declaringType
		if declaringType.IsValueType() {
			byRef, err := NewByReference(declaringType)
			if err != nil {
				return nil, err
			}
			c.thisType = byRef
		}
		c.this = &Parameter{owner: c, kind: ParameterThis, name: "this"}
	}

	c.parameters = make([]*Parameter, sig.ParameterCount())
	for i := range c.parameters {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		if name == "" {
			name = fmt.Sprintf("A_%d", i)
		}
		c.parameters[i] = &Parameter{owner: c, kind: ParameterOrdinary, index: i, name: name}
	}
	return c, nil
}

func (c *ParameterCollection) Signature() *MethodSignature { return c.signature }
func (c *ParameterCollection) ReturnParameter() *Parameter { return c.ret }
func (c *ParameterCollection) Len() int                    { return len(c.parameters) }

// ThisParameter returns the implicit this slot, or nil for static methods.
func (c *ParameterCollection) ThisParameter() *Parameter {
	return c.this
}

// At returns the i-th ordinary parameter.
func (c *ParameterCollection) At(i int) *Parameter {
	return c.parameters[i]
}

// All iterates over the ordinary parameters in order.
func (c *ParameterCollection) All() iter.Seq2[int, *Parameter] {
	return func(yield func(int, *Parameter) bool) {
		for i, p := range c.parameters {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Lookup finds an ordinary parameter by name.
func (c *ParameterCollection) Lookup(name string) (*Parameter, bool) {
	for _, p := range c.parameters {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}
