// Package signature reads, builds and writes type and method signatures.
//
// A type signature is a tree of TypeSignature nodes. Each node starts with
// one element-type byte selecting its variant:
//
//	Primitive           tag                                  (Int32, String, ...)
//	Class / ValueType   tag TypeDefOrRef
//	GenericInst         tag (Class|ValueType) TypeDefOrRef Count Type*
//	Ptr / ByRef         tag Type
//	Pinned / SzArray    tag Type
//	Array               tag Type Rank NumSizes Size* NumLoBounds LoBound*
//	Var / MVar          tag Number
//	CModReqd / CModOpt  tag TypeDefOrRef Type
//
// Integers are compressed; see package binary. TypeDefOrRef is a coded
// index resolved through the ReadContext's MemberResolver.
//
// # Reading
//
// Decoding never panics. Truncated, malformed or unresolvable input makes
// the read fail with a *errors.Error in the decode phase whose Path names
// the node that failed, and no partial node is returned. A generic
// instantiation whose argument count or any argument cannot be read is
// abandoned as a whole.
//
//	ctx := signature.NewReadContext(tables, ts)
//	sig, err := signature.ReadTypeSignatureBlob(ctx, blob)
//
// Primitive tags decode to the shared instances owned by the TypeSystem, so
// sig == ts.Int32() tests for System.Int32.
//
// # Writing
//
// PhysicalLength computes the exact size Write emits without modifying the
// tree. BlobSegment places a signature in a layout.Sequence and checks that
// contract when written.
//
// # Construction
//
// Constructors reject nil required references with a construct-phase error
// rather than producing a node that cannot be written.
//
// Trees are not synchronized. Concurrent reads of a tree are safe; mutation
// must be serialized by the caller.
package signature
