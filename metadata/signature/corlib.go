package signature

import (
	"github.com/wippyai/clrmeta/metadata"
	"github.com/wippyai/clrmeta/metadata/binary"
)

// CorLibTypeSignature is a primitive shortcut: a single element-type byte
// standing for a well-known corlib type. Instances are owned by a TypeSystem
// and shared, so pointer equality identifies the primitive.
type CorLibTypeSignature struct {
	typ         *metadata.TypeReference
	elementType metadata.ElementType
}

func (s *CorLibTypeSignature) ElementType() metadata.ElementType         { return s.elementType }
func (s *CorLibTypeSignature) Name() string                              { return s.typ.Name() }
func (s *CorLibTypeSignature) Namespace() string                         { return s.typ.Namespace() }
func (s *CorLibTypeSignature) FullName() string                          { return s.typ.FullName() }
func (s *CorLibTypeSignature) ResolutionScope() metadata.ResolutionScope { return s.typ.ResolutionScope() }
func (s *CorLibTypeSignature) IsValueType() bool                         { return s.elementType.IsValueType() }
func (s *CorLibTypeSignature) PhysicalLength() uint32                    { return 1 }

// Type returns the corlib type reference this shortcut stands for.
func (s *CorLibTypeSignature) Type() metadata.TypeDefOrRef {
	return s.typ
}

func (s *CorLibTypeSignature) Write(w *binary.Writer) error {
	w.Byte(byte(s.elementType))
	return nil
}

func (s *CorLibTypeSignature) String() string {
	return s.FullName()
}
