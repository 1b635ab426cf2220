// Package clrmeta provides a Go implementation of the metadata signature
// layer of .NET (ECMA-335) assemblies.
//
// The library decodes and encodes type and method signature blobs, binds
// the tokens inside them to metadata rows, and lays out the serialized
// blobs as segments of an image being written.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	clrmeta/             Root package with the module version
//	├── metadata/        Tables, tokens, coded indices, element types and member rows
//	│   ├── binary/      Compressed integer codec, blob Reader and Writer
//	│   └── signature/   Type signature tree, method signatures, parameters, blob segments
//	├── layout/          Segments and the two-phase place/write segment sequence
//	├── resolver/        Assembly reference probing with an injected loader
//	├── errors/          Structured error types for debugging
//	└── cmd/sigdump/     Signature blob inspector
//
// # Quick Start
//
// Decode a signature blob and write it back:
//
//	tables := metadata.NewMemberTable()
//	ts := signature.NewTypeSystem(corlib)
//	ctx := signature.NewReadContext(tables, ts)
//
//	sig, err := signature.ReadTypeSignatureBlob(ctx, blob)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(sig.FullName()) // "System.Collections.Generic.List`1<System.Int32>"
//
//	out, err := signature.Encode(sig)
//
// # Error Handling
//
// Decoding never panics. Malformed, truncated or unresolvable input yields
// an *errors.Error with Phase "decode" and a path naming the failing node,
// for example "GenericInst.arg[1].SzArray". Misuse of the in-memory API
// (nil required references, writes to read-only parameter slots) fails
// immediately with Phase "construct". Layout protocol violations fail with
// Phase "layout" before any byte is written.
//
// # Thread Safety
//
// Decoding is safe for concurrent use when the ReadContext's resolver is;
// metadata.MemberTable and resolver.Resolver are. Signature trees and
// layout sequences are not synchronized and belong to one goroutine at a
// time.
package clrmeta
