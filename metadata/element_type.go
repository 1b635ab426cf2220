package metadata

import "fmt"

// ElementType is the one-byte tag that starts every type signature.
type ElementType byte

const (
	ElementTypeEnd         ElementType = 0x00
	ElementTypeVoid        ElementType = 0x01
	ElementTypeBoolean     ElementType = 0x02
	ElementTypeChar        ElementType = 0x03
	ElementTypeI1          ElementType = 0x04
	ElementTypeU1          ElementType = 0x05
	ElementTypeI2          ElementType = 0x06
	ElementTypeU2          ElementType = 0x07
	ElementTypeI4          ElementType = 0x08
	ElementTypeU4          ElementType = 0x09
	ElementTypeI8          ElementType = 0x0A
	ElementTypeU8          ElementType = 0x0B
	ElementTypeR4          ElementType = 0x0C
	ElementTypeR8          ElementType = 0x0D
	ElementTypeString      ElementType = 0x0E
	ElementTypePtr         ElementType = 0x0F
	ElementTypeByRef       ElementType = 0x10
	ElementTypeValueType   ElementType = 0x11
	ElementTypeClass       ElementType = 0x12
	ElementTypeVar         ElementType = 0x13
	ElementTypeArray       ElementType = 0x14
	ElementTypeGenericInst ElementType = 0x15
	ElementTypeTypedByRef  ElementType = 0x16
	ElementTypeI           ElementType = 0x18
	ElementTypeU           ElementType = 0x19
	ElementTypeFnPtr       ElementType = 0x1B
	ElementTypeObject      ElementType = 0x1C
	ElementTypeSzArray     ElementType = 0x1D
	ElementTypeMVar        ElementType = 0x1E
	ElementTypeCModReqd    ElementType = 0x1F
	ElementTypeCModOpt     ElementType = 0x20
	ElementTypeInternal    ElementType = 0x21
	ElementTypeModifier    ElementType = 0x40
	ElementTypeSentinel    ElementType = 0x41
	ElementTypePinned      ElementType = 0x45
	ElementTypeType        ElementType = 0x50
	ElementTypeBoxed       ElementType = 0x51
	ElementTypeEnum        ElementType = 0x55
)

var elementTypeNames = map[ElementType]string{
	ElementTypeEnd:         "End",
	ElementTypeVoid:        "Void",
	ElementTypeBoolean:     "Boolean",
	ElementTypeChar:        "Char",
	ElementTypeI1:          "I1",
	ElementTypeU1:          "U1",
	ElementTypeI2:          "I2",
	ElementTypeU2:          "U2",
	ElementTypeI4:          "I4",
	ElementTypeU4:          "U4",
	ElementTypeI8:          "I8",
	ElementTypeU8:          "U8",
	ElementTypeR4:          "R4",
	ElementTypeR8:          "R8",
	ElementTypeString:      "String",
	ElementTypePtr:         "Ptr",
	ElementTypeByRef:       "ByRef",
	ElementTypeValueType:   "ValueType",
	ElementTypeClass:       "Class",
	ElementTypeVar:         "Var",
	ElementTypeArray:       "Array",
	ElementTypeGenericInst: "GenericInst",
	ElementTypeTypedByRef:  "TypedByRef",
	ElementTypeI:           "I",
	ElementTypeU:           "U",
	ElementTypeFnPtr:       "FnPtr",
	ElementTypeObject:      "Object",
	ElementTypeSzArray:     "SzArray",
	ElementTypeMVar:        "MVar",
	ElementTypeCModReqd:    "CModReqD",
	ElementTypeCModOpt:     "CModOpt",
	ElementTypeInternal:    "Internal",
	ElementTypeModifier:    "Modifier",
	ElementTypeSentinel:    "Sentinel",
	ElementTypePinned:      "Pinned",
	ElementTypeType:        "Type",
	ElementTypeBoxed:       "Boxed",
	ElementTypeEnum:        "Enum",
}

func (e ElementType) String() string {
	if name, ok := elementTypeNames[e]; ok {
		return name
	}
	return fmt.Sprintf("ElementType(0x%02x)", byte(e))
}

// IsPrimitive reports whether e is a corlib shortcut encoded as a single tag byte.
func (e ElementType) IsPrimitive() bool {
	switch e {
	case ElementTypeVoid, ElementTypeBoolean, ElementTypeChar,
		ElementTypeI1, ElementTypeU1, ElementTypeI2, ElementTypeU2,
		ElementTypeI4, ElementTypeU4, ElementTypeI8, ElementTypeU8,
		ElementTypeR4, ElementTypeR8, ElementTypeString,
		ElementTypeTypedByRef, ElementTypeI, ElementTypeU, ElementTypeObject:
		return true
	default:
		return false
	}
}

// IsValueType reports whether a primitive shortcut denotes a value type.
func (e ElementType) IsValueType() bool {
	switch e {
	case ElementTypeString, ElementTypeObject:
		return false
	default:
		return e.IsPrimitive()
	}
}
