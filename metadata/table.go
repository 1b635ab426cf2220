package metadata

import "fmt"

// TableIndex identifies one of the metadata tables.
type TableIndex uint8

const (
	TableModule                 TableIndex = 0x00
	TableTypeRef                TableIndex = 0x01
	TableTypeDef                TableIndex = 0x02
	TableFieldPtr               TableIndex = 0x03
	TableField                  TableIndex = 0x04
	TableMethodPtr              TableIndex = 0x05
	TableMethod                 TableIndex = 0x06
	TableParamPtr               TableIndex = 0x07
	TableParam                  TableIndex = 0x08
	TableInterfaceImpl          TableIndex = 0x09
	TableMemberRef              TableIndex = 0x0A
	TableConstant               TableIndex = 0x0B
	TableCustomAttribute        TableIndex = 0x0C
	TableFieldMarshal           TableIndex = 0x0D
	TableDeclSecurity           TableIndex = 0x0E
	TableClassLayout            TableIndex = 0x0F
	TableFieldLayout            TableIndex = 0x10
	TableStandAloneSig          TableIndex = 0x11
	TableEventMap               TableIndex = 0x12
	TableEventPtr               TableIndex = 0x13
	TableEvent                  TableIndex = 0x14
	TablePropertyMap            TableIndex = 0x15
	TablePropertyPtr            TableIndex = 0x16
	TableProperty               TableIndex = 0x17
	TableMethodSemantics        TableIndex = 0x18
	TableMethodImpl             TableIndex = 0x19
	TableModuleRef              TableIndex = 0x1A
	TableTypeSpec               TableIndex = 0x1B
	TableImplMap                TableIndex = 0x1C
	TableFieldRva               TableIndex = 0x1D
	TableEncLog                 TableIndex = 0x1E
	TableEncMap                 TableIndex = 0x1F
	TableAssembly               TableIndex = 0x20
	TableAssemblyProcessor      TableIndex = 0x21
	TableAssemblyOS             TableIndex = 0x22
	TableAssemblyRef            TableIndex = 0x23
	TableAssemblyRefProcessor   TableIndex = 0x24
	TableAssemblyRefOS          TableIndex = 0x25
	TableFile                   TableIndex = 0x26
	TableExportedType           TableIndex = 0x27
	TableManifestResource       TableIndex = 0x28
	TableNestedClass            TableIndex = 0x29
	TableGenericParam           TableIndex = 0x2A
	TableMethodSpec             TableIndex = 0x2B
	TableGenericParamConstraint TableIndex = 0x2C

	// TableCount is the number of defined tables.
	TableCount = 0x2D

	// TableUnused marks a coded index tag that references no table.
	TableUnused TableIndex = 0xFF
)

var tableNames = [TableCount]string{
	"Module", "TypeRef", "TypeDef", "FieldPtr", "Field", "MethodPtr", "Method", "ParamPtr",
	"Param", "InterfaceImpl", "MemberRef", "Constant", "CustomAttribute", "FieldMarshal",
	"DeclSecurity", "ClassLayout", "FieldLayout", "StandAloneSig", "EventMap", "EventPtr",
	"Event", "PropertyMap", "PropertyPtr", "Property", "MethodSemantics", "MethodImpl",
	"ModuleRef", "TypeSpec", "ImplMap", "FieldRva", "EncLog", "EncMap", "Assembly",
	"AssemblyProcessor", "AssemblyOS", "AssemblyRef", "AssemblyRefProcessor", "AssemblyRefOS",
	"File", "ExportedType", "ManifestResource", "NestedClass", "GenericParam", "MethodSpec",
	"GenericParamConstraint",
}

// Valid reports whether t names a defined table.
func (t TableIndex) Valid() bool {
	return t < TableCount
}

func (t TableIndex) String() string {
	if t.Valid() {
		return tableNames[t]
	}
	if t == TableUnused {
		return "Unused"
	}
	return fmt.Sprintf("Table(0x%02x)", uint8(t))
}
