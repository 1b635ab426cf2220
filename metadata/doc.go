// Package metadata defines the identifiers shared by every part of a managed
// executable's metadata: table indices, metadata tokens, element-type tags
// and coded indices, plus the row interfaces signatures refer to.
//
// # Coded Indices
//
// A coded index packs a (table, row) pair of one reference kind into a single
// integer. The low bits select the table from the kind's ordered list; the
// remaining bits carry the row number:
//
//	enc := metadata.EncoderFor(metadata.TypeDefOrRefIndex)
//	v, err := enc.EncodeToken(metadata.NewToken(metadata.TableTypeRef, 3)) // 0x0D
//	token, ok := enc.Decode(v)                                            // TypeRef[0x0003]
//
// The value 0 means "no reference". Encoders are shared, stateless and do not
// allocate on the success path.
//
// # Rows
//
// Table storage lives outside this package. Signatures only see rows through
// the Member, TypeDefOrRef and ResolutionScope interfaces, and turn decoded
// tokens into rows through a MemberResolver. MemberTable is a simple
// in-memory MemberResolver used by tools that build metadata from scratch.
package metadata
