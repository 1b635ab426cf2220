package metadata

import (
	"fmt"
	"math/bits"
	"slices"

	"github.com/wippyai/clrmeta/errors"
	"github.com/wippyai/clrmeta/metadata/binary"
)

// CodedIndex names a reference kind: a fixed, ordered set of tables that a
// single column or blob value may point into.
type CodedIndex uint8

const (
	TypeDefOrRefIndex CodedIndex = iota
	HasConstant
	HasCustomAttribute
	HasFieldMarshal
	HasDeclSecurity
	MemberRefParent
	HasSemantics
	MethodDefOrRef
	MemberForwarded
	Implementation
	CustomAttributeType
	ResolutionScopeIndex
	TypeOrMethodDef

	codedIndexCount
)

var codedIndexNames = [codedIndexCount]string{
	"TypeDefOrRef", "HasConstant", "HasCustomAttribute", "HasFieldMarshal", "HasDeclSecurity",
	"MemberRefParent", "HasSemantics", "MethodDefOrRef", "MemberForwarded", "Implementation",
	"CustomAttributeType", "ResolutionScope", "TypeOrMethodDef",
}

func (c CodedIndex) String() string {
	if c < codedIndexCount {
		return codedIndexNames[c]
	}
	return fmt.Sprintf("CodedIndex(%d)", uint8(c))
}

// CodedIndices lists every reference kind.
func CodedIndices() []CodedIndex {
	out := make([]CodedIndex, codedIndexCount)
	for i := range out {
		out[i] = CodedIndex(i)
	}
	return out
}

// IndexEncoder packs (table, row) pairs of one reference kind into a single
// integer: the row number shifted left by the tag width, or'ed with the
// table's position in the kind's table list. It holds no mutable state and
// is safe for concurrent use.
type IndexEncoder struct {
	tables  []TableIndex
	tagBits uint
	tagMask uint32
	kind    CodedIndex
}

// NewIndexEncoder creates an encoder for kind over the given ordered tables.
// TableUnused may fill tag positions that reference nothing.
func NewIndexEncoder(kind CodedIndex, tables ...TableIndex) *IndexEncoder {
	tagBits := uint(0)
	if len(tables) > 1 {
		tagBits = uint(bits.Len(uint(len(tables) - 1)))
	}
	return &IndexEncoder{
		kind:    kind,
		tables:  slices.Clone(tables),
		tagBits: tagBits,
		tagMask: 1<<tagBits - 1,
	}
}

var encoders = [codedIndexCount]*IndexEncoder{
	TypeDefOrRefIndex: NewIndexEncoder(TypeDefOrRefIndex, TableTypeDef, TableTypeRef, TableTypeSpec),
	HasConstant:       NewIndexEncoder(HasConstant, TableField, TableParam, TableProperty),
	HasCustomAttribute: NewIndexEncoder(HasCustomAttribute,
		TableMethod, TableField, TableTypeRef, TableTypeDef, TableParam, TableInterfaceImpl,
		TableMemberRef, TableModule, TableDeclSecurity, TableProperty, TableEvent, TableStandAloneSig,
		TableModuleRef, TableTypeSpec, TableAssembly, TableAssemblyRef, TableFile, TableExportedType,
		TableManifestResource, TableGenericParam, TableGenericParamConstraint, TableMethodSpec),
	HasFieldMarshal: NewIndexEncoder(HasFieldMarshal, TableField, TableParam),
	HasDeclSecurity: NewIndexEncoder(HasDeclSecurity, TableTypeDef, TableMethod, TableAssembly),
	MemberRefParent: NewIndexEncoder(MemberRefParent,
		TableTypeDef, TableTypeRef, TableModuleRef, TableMethod, TableTypeSpec),
	HasSemantics:    NewIndexEncoder(HasSemantics, TableEvent, TableProperty),
	MethodDefOrRef:  NewIndexEncoder(MethodDefOrRef, TableMethod, TableMemberRef),
	MemberForwarded: NewIndexEncoder(MemberForwarded, TableField, TableMethod),
	Implementation:  NewIndexEncoder(Implementation, TableFile, TableAssemblyRef, TableExportedType),
	CustomAttributeType: NewIndexEncoder(CustomAttributeType,
		TableUnused, TableUnused, TableMethod, TableMemberRef, TableUnused),
	ResolutionScopeIndex: NewIndexEncoder(ResolutionScopeIndex,
		TableModule, TableModuleRef, TableAssemblyRef, TableTypeRef),
	TypeOrMethodDef: NewIndexEncoder(TypeOrMethodDef, TableTypeDef, TableMethod),
}

// EncoderFor returns the shared encoder for kind, or nil for an unknown kind.
func EncoderFor(kind CodedIndex) *IndexEncoder {
	if kind >= codedIndexCount {
		return nil
	}
	return encoders[kind]
}

// Kind returns the reference kind this encoder handles.
func (e *IndexEncoder) Kind() CodedIndex {
	return e.kind
}

// TagBits returns the number of low bits holding the table tag.
func (e *IndexEncoder) TagBits() uint {
	return e.tagBits
}

// Tables returns the ordered candidate tables.
func (e *IndexEncoder) Tables() []TableIndex {
	return slices.Clone(e.tables)
}

// MaxRid returns the largest row number the encoder accepts.
func (e *IndexEncoder) MaxRid() uint32 {
	limit := uint32(0xFFFFFFFF) >> e.tagBits
	if limit > MaxRid {
		return MaxRid
	}
	return limit
}

// Encode packs table and rid into a coded index value.
// A zero rid encodes as 0, the conventional "no reference".
func (e *IndexEncoder) Encode(table TableIndex, rid uint32) (uint32, error) {
	if rid == 0 {
		return 0, nil
	}
	if table == TableUnused {
		return 0, errors.TableMismatch(errors.PhaseEncode, e.kind.String(), table.String())
	}
	tag := -1
	for i, t := range e.tables {
		if t == table {
			tag = i
			break
		}
	}
	if tag < 0 {
		return 0, errors.TableMismatch(errors.PhaseEncode, e.kind.String(), table.String())
	}
	if rid > e.MaxRid() {
		return 0, errors.Overflow(errors.PhaseEncode, rid, e.MaxRid())
	}
	return rid<<e.tagBits | uint32(tag), nil
}

// EncodeToken packs a metadata token into a coded index value.
func (e *IndexEncoder) EncodeToken(token Token) (uint32, error) {
	return e.Encode(token.Table(), token.Rid())
}

// Decode unpacks a coded index value into a token. It reports false when the
// tag selects no table or the row number does not fit a token. The value 0
// decodes to the nil token of the first candidate table.
func (e *IndexEncoder) Decode(value uint32) (Token, bool) {
	tag := value & e.tagMask
	if int(tag) >= len(e.tables) {
		return 0, false
	}
	table := e.tables[tag]
	rid := value >> e.tagBits
	if rid == 0 {
		if table == TableUnused {
			table = e.tables[0]
		}
		return NewToken(table, 0), true
	}
	if table == TableUnused || rid > MaxRid {
		return 0, false
	}
	return NewToken(table, rid), true
}

// IndexSize returns the width in bytes of a table column holding this coded
// index, given the row count of each table. Small tables use 2 bytes.
func (e *IndexEncoder) IndexSize(rowCount func(TableIndex) uint32) int {
	var largest uint32
	for _, t := range e.tables {
		if t == TableUnused {
			continue
		}
		if n := rowCount(t); n > largest {
			largest = n
		}
	}
	if largest < 1<<(16-e.tagBits) {
		return 2
	}
	return 4
}

// ReadColumn reads a little-endian table column of size bytes, as chosen by
// IndexSize, and decodes it.
func (e *IndexEncoder) ReadColumn(r *binary.Reader, size int) (Token, error) {
	start := r.Offset()
	var (
		value uint32
		ok    bool
	)
	switch size {
	case 2:
		var v uint16
		v, ok = r.TryReadUint16()
		value = uint32(v)
	case 4:
		value, ok = r.TryReadUint32()
	default:
		return 0, errors.InvalidInput(errors.PhaseDecode, fmt.Sprintf("coded index column width %d", size))
	}
	if !ok {
		return 0, errors.Truncated(start, e.kind.String()+" column")
	}
	token, ok := e.Decode(value)
	if !ok {
		return 0, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			At(start).
			Value(value).
			Detail("invalid %s coded index 0x%x", e.kind, value).
			Build()
	}
	return token, nil
}

// WriteColumn encodes token as a little-endian table column of size bytes.
// A value that does not fit a 2-byte column is an overflow.
func (e *IndexEncoder) WriteColumn(w *binary.Writer, token Token, size int) error {
	value, err := e.EncodeToken(token)
	if err != nil {
		return err
	}
	switch size {
	case 2:
		if value > 0xFFFF {
			return errors.Overflow(errors.PhaseEncode, value, uint32(0xFFFF))
		}
		w.WriteUint16(uint16(value))
	case 4:
		w.WriteUint32(value)
	default:
		return errors.InvalidInput(errors.PhaseEncode, fmt.Sprintf("coded index column width %d", size))
	}
	return nil
}
