package signature_test

import (
	"bytes"
	"errors"
	"testing"

	clrerrors "github.com/wippyai/clrmeta/errors"
	"github.com/wippyai/clrmeta/metadata"
	"github.com/wippyai/clrmeta/metadata/signature"
)

type fixture struct {
	t      *testing.T
	tables *metadata.MemberTable
	corlib *metadata.AssemblyReference
	app    *metadata.AssemblyReference
	ts     *signature.TypeSystem
	ctx    *signature.ReadContext
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tables := metadata.NewMemberTable()
	corlib := metadata.NewAssemblyReference("System.Runtime",
		metadata.AssemblyVersion{Major: 8},
		[]byte{0xb0, 0x3f, 0x5f, 0x7f, 0x11, 0xd5, 0x0a, 0x3a})
	app := metadata.NewAssemblyReference("App", metadata.AssemblyVersion{Major: 1}, nil)
	for _, a := range []*metadata.AssemblyReference{corlib, app} {
		if _, err := tables.Add(metadata.TableAssemblyRef, a); err != nil {
			t.Fatal(err)
		}
	}
	ts := signature.NewTypeSystem(corlib)
	return &fixture{
		t:      t,
		tables: tables,
		corlib: corlib,
		app:    app,
		ts:     ts,
		ctx:    signature.NewReadContext(tables, ts),
	}
}

// typeRef adds a TypeRef row scoped to the App assembly.
func (f *fixture) typeRef(namespace, name string) *metadata.TypeReference {
	f.t.Helper()
	ref := metadata.NewTypeReference(f.app, namespace, name)
	if _, err := f.tables.Add(metadata.TableTypeRef, ref); err != nil {
		f.t.Fatal(err)
	}
	return ref
}

func (f *fixture) decode(data []byte) signature.TypeSignature {
	f.t.Helper()
	sig, err := signature.ReadTypeSignatureBlob(f.ctx, data)
	if err != nil {
		f.t.Fatalf("decode % x: %v", data, err)
	}
	return sig
}

func encode(t *testing.T, sig signature.Signature) []byte {
	t.Helper()
	data, err := signature.Encode(sig)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return data
}

func assertBytes(t *testing.T, got, want []byte) {
	t.Helper()
	if !bytes.Equal(got, want) {
		t.Fatalf("bytes = % x, want % x", got, want)
	}
}

func assertKind(t *testing.T, err error, phase clrerrors.Phase, kind clrerrors.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s/%s error, got nil", phase, kind)
	}
	if !errors.Is(err, &clrerrors.Error{Phase: phase, Kind: kind}) {
		t.Fatalf("error = %v, want %s/%s", err, phase, kind)
	}
}
