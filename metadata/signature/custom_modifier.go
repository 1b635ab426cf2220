package signature

import (
	"github.com/wippyai/clrmeta/errors"
	"github.com/wippyai/clrmeta/metadata"
	"github.com/wippyai/clrmeta/metadata/binary"
)

// CustomModifierTypeSignature attaches a required or optional modifier type
// to a base signature: (CMOD_REQD | CMOD_OPT) TypeDefOrRef Type.
type CustomModifierTypeSignature struct {
	specification
	modifier metadata.TypeDefOrRef
	required bool
}

// NewCustomModifier wraps base with a modreq (required) or modopt modifier.
func NewCustomModifier(required bool, modifier metadata.TypeDefOrRef, base TypeSignature) (*CustomModifierTypeSignature, error) {
	if modifier == nil {
		return nil, errors.NilReference([]string{"CustomModifier"}, "modifier type")
	}
	s, err := newSpecification(metadata.ElementTypeCModReqd, base)
	if err != nil {
		return nil, err
	}
	return &CustomModifierTypeSignature{specification: s, modifier: modifier, required: required}, nil
}

func (s *CustomModifierTypeSignature) IsRequired() bool                    { return s.required }
func (s *CustomModifierTypeSignature) ModifierType() metadata.TypeDefOrRef { return s.modifier }
func (s *CustomModifierTypeSignature) IsValueType() bool                   { return s.base.IsValueType() }

func (s *CustomModifierTypeSignature) ElementType() metadata.ElementType {
	if s.required {
		return metadata.ElementTypeCModReqd
	}
	return metadata.ElementTypeCModOpt
}

func (s *CustomModifierTypeSignature) Name() string {
	return s.base.Name() + s.suffix()
}

func (s *CustomModifierTypeSignature) FullName() string {
	return s.base.FullName() + s.suffix()
}

func (s *CustomModifierTypeSignature) String() string {
	return s.FullName()
}

func (s *CustomModifierTypeSignature) suffix() string {
	if s.required {
		return " modreq(" + s.modifier.FullName() + ")"
	}
	return " modopt(" + s.modifier.FullName() + ")"
}

func (s *CustomModifierTypeSignature) PhysicalLength() uint32 {
	return 1 + typeDefOrRefSize(s.modifier) + s.base.PhysicalLength()
}

func (s *CustomModifierTypeSignature) Write(w *binary.Writer) error {
	w.Byte(byte(s.ElementType()))
	if err := writeTypeDefOrRef(w, s.modifier); err != nil {
		return err
	}
	return s.base.Write(w)
}

func (ctx *ReadContext) readCustomModifier(r *binary.Reader, et metadata.ElementType, depth int) (TypeSignature, *errors.Error) {
	modifier, err := ctx.readTypeDefOrRef(r)
	if err != nil {
		return nil, err
	}
	base, err := ctx.readType(r, depth+1)
	if err != nil {
		return nil, err
	}
	return &CustomModifierTypeSignature{
		specification: specification{base: base},
		modifier:      modifier,
		required:      et == metadata.ElementTypeCModReqd,
	}, nil
}
