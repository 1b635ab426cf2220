package signature_test

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/kr/pretty"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	clrerrors "github.com/wippyai/clrmeta/errors"
	"github.com/wippyai/clrmeta/metadata"
	"github.com/wippyai/clrmeta/metadata/binary"
	"github.com/wippyai/clrmeta/metadata/signature"
)

func TestPrimitivesAreShared(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		tag       byte
		want      *signature.CorLibTypeSignature
		fullName  string
		valueType bool
	}{
		{0x01, f.ts.Void(), "System.Void", true},
		{0x02, f.ts.Boolean(), "System.Boolean", true},
		{0x08, f.ts.Int32(), "System.Int32", true},
		{0x0E, f.ts.StringType(), "System.String", false},
		{0x16, f.ts.TypedReference(), "System.TypedReference", true},
		{0x18, f.ts.IntPtr(), "System.IntPtr", true},
		{0x1C, f.ts.Object(), "System.Object", false},
	}

	for _, tt := range tests {
		t.Run(tt.fullName, func(t *testing.T) {
			a := f.decode([]byte{tt.tag})
			b := f.decode([]byte{tt.tag})
			if a != signature.TypeSignature(tt.want) || a != b {
				t.Fatalf("decoded %p and %p, want shared %p", a, b, tt.want)
			}
			if a.FullName() != tt.fullName {
				t.Errorf("FullName = %q, want %q", a.FullName(), tt.fullName)
			}
			if a.IsValueType() != tt.valueType {
				t.Errorf("IsValueType = %v, want %v", a.IsValueType(), tt.valueType)
			}
			if a.ResolutionScope() != metadata.ResolutionScope(f.corlib) {
				t.Errorf("ResolutionScope = %v, want corlib", a.ResolutionScope())
			}
			assertBytes(t, encode(t, a), []byte{tt.tag})
		})
	}
}

func TestGenericInstanceZeroArguments(t *testing.T) {
	f := newFixture(t)
	list := f.typeRef("System.Collections.Generic", "List`1")

	gi, err := signature.NewGenericInstance(list, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x15, 0x12, 0x05, 0x00}
	assertBytes(t, encode(t, gi), want)
	if gi.PhysicalLength() != uint32(len(want)) {
		t.Errorf("PhysicalLength = %d, want %d", gi.PhysicalLength(), len(want))
	}

	decoded, ok := f.decode(want).(*signature.GenericInstanceTypeSignature)
	if !ok {
		t.Fatalf("decoded %T", decoded)
	}
	if decoded.ArgumentCount() != 0 || len(decoded.Arguments()) != 0 {
		t.Errorf("decoded %d arguments, want 0", decoded.ArgumentCount())
	}
	if decoded.GenericType() != metadata.TypeDefOrRef(list) {
		t.Errorf("GenericType = %v, want List`1", decoded.GenericType())
	}
	if decoded.IsValueType() {
		t.Error("decoded as value type")
	}
}

func TestGenericInstanceNested(t *testing.T) {
	f := newFixture(t)
	outer := f.typeRef("NS", "Outer`1")
	inner := f.typeRef("NS", "Inner`1")

	innerSig, err := signature.NewGenericInstance(inner, true, f.ts.Int32())
	if err != nil {
		t.Fatal(err)
	}
	outerSig, err := signature.NewGenericInstance(outer, false, innerSig)
	if err != nil {
		t.Fatal(err)
	}

	want := []byte{0x15, 0x12, 0x05, 0x01, 0x15, 0x11, 0x09, 0x01, 0x08}
	assertBytes(t, encode(t, outerSig), want)
	if got := outerSig.FullName(); got != "NS.Outer`1<NS.Inner`1<System.Int32>>" {
		t.Errorf("FullName = %q", got)
	}

	decoded := f.decode(want)
	if !signature.Equal(outerSig, decoded) {
		t.Fatalf("decoded %s, want %s", decoded.FullName(), outerSig.FullName())
	}
	arg := decoded.(*signature.GenericInstanceTypeSignature).Argument(0)
	innerDecoded, ok := arg.(*signature.GenericInstanceTypeSignature)
	if !ok {
		t.Fatalf("argument is %T", arg)
	}
	if !innerDecoded.IsValueType() {
		t.Error("inner instantiation lost its value-type marker")
	}
	if innerDecoded.Argument(0) != signature.TypeSignature(f.ts.Int32()) {
		t.Error("innermost argument is not the shared Int32")
	}
	assertBytes(t, encode(t, decoded), want)
}

func TestGenericInstanceArgumentOrder(t *testing.T) {
	f := newFixture(t)
	pair := f.typeRef("System", "ValueTuple`2")

	gi, err := signature.NewGenericInstance(pair, true, f.ts.Int32(), f.ts.StringType(), f.ts.Boolean())
	if err != nil {
		t.Fatal(err)
	}
	decoded := f.decode(encode(t, gi)).(*signature.GenericInstanceTypeSignature)

	var got []string
	for _, arg := range decoded.Arguments() {
		got = append(got, arg.Name())
	}
	want := []string{"Int32", "String", "Boolean"}
	if diff := pretty.Diff(want, got); len(diff) > 0 {
		t.Errorf("argument order: %v", diff)
	}
}

func TestGenericInstanceNames(t *testing.T) {
	f := newFixture(t)
	pair := f.typeRef("System", "ValueTuple`2")

	gi, err := signature.NewGenericInstance(pair, true, f.ts.Int32(), f.ts.StringType())
	if err != nil {
		t.Fatal(err)
	}
	if got, want := gi.Name(), "ValueTuple`2<System.Int32, System.String>"; got != want {
		t.Errorf("Name = %q, want %q", got, want)
	}
	if got, want := gi.FullName(), "System.ValueTuple`2<System.Int32, System.String>"; got != want {
		t.Errorf("FullName = %q, want %q", got, want)
	}
	if gi.Namespace() != "System" {
		t.Errorf("Namespace = %q", gi.Namespace())
	}
	if gi.ResolutionScope() != metadata.ResolutionScope(f.app) {
		t.Errorf("ResolutionScope = %v, want App", gi.ResolutionScope())
	}
	if !signature.IsTypeOf(gi, "System", "ValueTuple`2<System.Int32, System.String>") {
		t.Error("IsTypeOf mismatch")
	}
}

func TestNewGenericInstanceRejectsNil(t *testing.T) {
	f := newFixture(t)

	gi, err := signature.NewGenericInstance(nil, false, f.ts.Int32())
	if gi != nil {
		t.Fatal("partially built node returned")
	}
	assertKind(t, err, clrerrors.PhaseConstruct, clrerrors.KindNilReference)

	list := f.typeRef("System.Collections.Generic", "List`1")
	gi, err = signature.NewGenericInstance(list, false, f.ts.Int32(), nil)
	if gi != nil {
		t.Fatal("node with nil argument returned")
	}
	assertKind(t, err, clrerrors.PhaseConstruct, clrerrors.KindNilReference)

	gi, err = signature.NewGenericInstance(list, false)
	if err != nil {
		t.Fatal(err)
	}
	assertKind(t, gi.SetGenericType(nil), clrerrors.PhaseConstruct, clrerrors.KindNilReference)
	assertKind(t, gi.AddArgument(nil), clrerrors.PhaseConstruct, clrerrors.KindNilReference)
	assertKind(t, gi.SetArgument(0, f.ts.Int32()), clrerrors.PhaseConstruct, clrerrors.KindInvalidInput)
	if gi.GenericType() != metadata.TypeDefOrRef(list) {
		t.Error("failed SetGenericType modified the node")
	}
}

func TestGenericInstanceMutationKeepsCount(t *testing.T) {
	f := newFixture(t)
	dict := f.typeRef("System.Collections.Generic", "Dictionary`2")

	gi, err := signature.NewGenericInstance(dict, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := gi.AddArgument(f.ts.StringType()); err != nil {
		t.Fatal(err)
	}
	if err := gi.AddArgument(f.ts.Object()); err != nil {
		t.Fatal(err)
	}
	if err := gi.SetArgument(1, f.ts.Int64()); err != nil {
		t.Fatal(err)
	}

	assertBytes(t, encode(t, gi), []byte{0x15, 0x12, 0x05, 0x02, 0x0E, 0x0A})
	decoded := f.decode(encode(t, gi)).(*signature.GenericInstanceTypeSignature)
	if decoded.ArgumentCount() != 2 {
		t.Fatalf("ArgumentCount = %d, want 2", decoded.ArgumentCount())
	}
	if decoded.Argument(1) != signature.TypeSignature(f.ts.Int64()) {
		t.Errorf("argument 1 = %s", decoded.Argument(1).FullName())
	}
}

func TestDecodeTruncatedInput(t *testing.T) {
	f := newFixture(t)
	f.typeRef("NS", "Outer`1")
	f.typeRef("NS", "Inner`1")
	blob := []byte{0x15, 0x12, 0x05, 0x01, 0x15, 0x11, 0x09, 0x01, 0x08}

	for n := 0; n < len(blob); n++ {
		sig, err := signature.ReadTypeSignatureBlob(f.ctx, blob[:n])
		if sig != nil {
			t.Errorf("prefix %d: returned %s", n, sig.FullName())
		}
		if err == nil {
			t.Fatalf("prefix %d: no error", n)
		}
		e, ok := err.(*clrerrors.Error)
		if !ok {
			t.Fatalf("prefix %d: error type %T", n, err)
		}
		if e.Phase != clrerrors.PhaseDecode || e.Kind != clrerrors.KindTruncated {
			t.Errorf("prefix %d: %v", n, err)
		}
	}
}

func TestGenericInstanceAbandonedOnPartialRead(t *testing.T) {
	f := newFixture(t)
	f.typeRef("System.Collections.Generic", "List`1")

	tests := []struct {
		name string
		blob []byte
		kind clrerrors.Kind
		path []string
	}{
		{"missing count", []byte{0x15, 0x12, 0x05}, clrerrors.KindTruncated, []string{"GenericInst"}},
		{"bad argument", []byte{0x15, 0x12, 0x05, 0x01, 0x17}, clrerrors.KindInvalidTag, []string{"GenericInst", "arg[0]"}},
		{"missing second argument", []byte{0x15, 0x12, 0x05, 0x02, 0x08}, clrerrors.KindTruncated, []string{"GenericInst"}},
		{"bad category", []byte{0x15, 0x08, 0x05, 0x00}, clrerrors.KindInvalidData, []string{"GenericInst"}},
		{"unresolved generic type", []byte{0x15, 0x12, 0x09, 0x00}, clrerrors.KindUnresolved, []string{"GenericInst"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := binary.NewReader(tt.blob)
			sig, err := signature.ReadTypeSignature(f.ctx, r)
			if sig != nil {
				t.Fatalf("returned partial node %s", sig.FullName())
			}
			assertKind(t, err, clrerrors.PhaseDecode, tt.kind)
			if diff := pretty.Diff(tt.path, err.(*clrerrors.Error).Path); len(diff) > 0 {
				t.Errorf("path: %v", diff)
			}
		})
	}
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	f := newFixture(t)
	f.typeRef("NS", "Known")

	tests := []struct {
		name string
		blob []byte
		kind clrerrors.Kind
	}{
		{"end tag", []byte{0x00}, clrerrors.KindInvalidTag},
		{"undefined tag", []byte{0x17}, clrerrors.KindInvalidTag},
		{"function pointer", []byte{0x1B, 0x00}, clrerrors.KindUnsupported},
		{"sentinel", []byte{0x41}, clrerrors.KindUnsupported},
		{"boxed", []byte{0x51, 0x08}, clrerrors.KindUnsupported},
		{"unknown row", []byte{0x12, 0x7D}, clrerrors.KindUnresolved},
		{"null coded index", []byte{0x12, 0x00}, clrerrors.KindUnresolved},
		{"invalid coded index tag", []byte{0x12, 0x07}, clrerrors.KindInvalidData},
		{"trailing bytes", []byte{0x08, 0x08}, clrerrors.KindInvalidData},
		{"truncated coded index", []byte{0x11, 0xC0, 0x00}, clrerrors.KindTruncated},
		{"truncated generic parameter", []byte{0x13}, clrerrors.KindTruncated},
		{"modifier without base", []byte{0x1F, 0x05}, clrerrors.KindTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, err := signature.ReadTypeSignatureBlob(f.ctx, tt.blob)
			if sig != nil {
				t.Fatalf("decoded %s", sig.FullName())
			}
			assertKind(t, err, clrerrors.PhaseDecode, tt.kind)
		})
	}
}

func TestDecodeDepthLimit(t *testing.T) {
	f := newFixture(t)
	ctx := &signature.ReadContext{Resolver: f.tables, TypeSystem: f.ts, MaxDepth: 4}

	if _, err := signature.ReadTypeSignatureBlob(ctx, []byte{0x1D, 0x1D, 0x1D, 0x08}); err != nil {
		t.Fatalf("depth 4: %v", err)
	}
	_, err := signature.ReadTypeSignatureBlob(ctx, []byte{0x1D, 0x1D, 0x1D, 0x1D, 0x08})
	assertKind(t, err, clrerrors.PhaseDecode, clrerrors.KindDepthExceeded)

	deep := append(bytes.Repeat([]byte{0x0F}, signature.DefaultMaxDepth+10), 0x08)
	_, err = signature.ReadTypeSignatureBlob(f.ctx, deep)
	assertKind(t, err, clrerrors.PhaseDecode, clrerrors.KindDepthExceeded)
}

func TestPhysicalLengthMatchesWrite(t *testing.T) {
	f := newFixture(t)
	var refs []*metadata.TypeReference
	for i := range 40 {
		refs = append(refs, f.typeRef("NS", fmt.Sprintf("T%d", i)))
	}
	volatile := f.typeRef("System.Runtime.CompilerServices", "IsVolatile")
	list := f.typeRef("System.Collections.Generic", "List`1")
	lower := int32(-3)

	var sigs []signature.TypeSignature
	add := func(sig signature.TypeSignature, err error) signature.TypeSignature {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		sigs = append(sigs, sig)
		return sig
	}

	add(signature.NewTypeDefOrRef(refs[0], true))
	add(signature.NewTypeDefOrRef(refs[39], false))
	add(signature.NewPointer(f.ts.Int32()))
	add(signature.NewPinned(f.ts.Object()))
	vector := add(signature.NewSzArray(f.ts.StringType()))
	add(signature.NewArray(f.ts.Int32(), signature.Dimension(5, 0), signature.ArrayDimension{LowerBound: &lower}))
	add(signature.NewArray(f.ts.Double(), signature.Dimension(0x5000, -10000)))
	add(signature.NewArray(f.ts.Byte(), signature.ArrayDimension{}, signature.ArrayDimension{}))
	typeParam := add(signature.NewGenericParameter(signature.GenericParameterType, 0), nil)
	add(signature.NewGenericParameter(signature.GenericParameterMethod, 200), nil)
	modreq := add(signature.NewCustomModifier(true, volatile, f.ts.Int32()))
	add(signature.NewCustomModifier(false, refs[39], vector))
	inst := add(signature.NewGenericInstance(list, false, modreq, typeParam, vector))
	add(signature.NewByReference(inst))
	add(signature.NewGenericInstance(refs[38], true, inst, f.ts.UIntPtr()))

	for _, sig := range sigs {
		t.Run(sig.FullName(), func(t *testing.T) {
			data := encode(t, sig)
			if uint32(len(data)) != sig.PhysicalLength() {
				t.Fatalf("wrote %d bytes, PhysicalLength %d", len(data), sig.PhysicalLength())
			}
			decoded := f.decode(data)
			if !signature.Equal(sig, decoded) {
				t.Fatalf("round trip: got %s\n%# v", decoded.FullName(), pretty.Formatter(decoded))
			}
			assertBytes(t, encode(t, decoded), data)
		})
	}
}

func TestArrayShape(t *testing.T) {
	f := newFixture(t)
	lower := int32(-3)
	arr, err := signature.NewArray(f.ts.Int32(), signature.Dimension(5, 0), signature.ArrayDimension{LowerBound: &lower})
	if err != nil {
		t.Fatal(err)
	}

	want := []byte{0x14, 0x08, 0x02, 0x01, 0x05, 0x02, 0x00, 0x7B}
	assertBytes(t, encode(t, arr), want)
	if got := arr.Name(); got != "Int32[0...4,-3...]" {
		t.Errorf("Name = %q", got)
	}
	if got := arr.FullName(); got != "System.Int32[0...4,-3...]" {
		t.Errorf("FullName = %q", got)
	}

	decoded := f.decode(want).(*signature.ArrayTypeSignature)
	if decoded.Rank() != 2 {
		t.Fatalf("Rank = %d", decoded.Rank())
	}
	if diff := pretty.Diff(arr.Dimensions(), decoded.Dimensions()); len(diff) > 0 {
		t.Errorf("dimensions: %v", diff)
	}
}

func TestArrayRejectsInvalidShape(t *testing.T) {
	f := newFixture(t)

	gap, err := signature.NewArray(f.ts.Int32(), signature.ArrayDimension{}, signature.Dimension(2, 0))
	if err != nil {
		t.Fatal(err)
	}
	_, err = signature.Encode(gap)
	assertKind(t, err, clrerrors.PhaseEncode, clrerrors.KindInvalidData)

	_, err = signature.ReadTypeSignatureBlob(f.ctx, []byte{0x14, 0x08, 0x21, 0x00, 0x00})
	assertKind(t, err, clrerrors.PhaseDecode, clrerrors.KindInvalidData)

	_, err = signature.ReadTypeSignatureBlob(f.ctx, []byte{0x14, 0x08, 0x01, 0x02, 0x01, 0x01, 0x00})
	assertKind(t, err, clrerrors.PhaseDecode, clrerrors.KindInvalidData)

	_, err = signature.NewArray(nil)
	assertKind(t, err, clrerrors.PhaseConstruct, clrerrors.KindNilReference)
}

func TestWrapperNames(t *testing.T) {
	f := newFixture(t)
	volatile := f.typeRef("System.Runtime.CompilerServices", "IsVolatile")
	i32 := f.ts.Int32()

	ptr, _ := signature.NewPointer(i32)
	byRef, _ := signature.NewByReference(i32)
	pinned, _ := signature.NewPinned(byRef)
	vec, _ := signature.NewSzArray(ptr)
	modreq, _ := signature.NewCustomModifier(true, volatile, i32)
	modopt, _ := signature.NewCustomModifier(false, volatile, i32)

	tests := []struct {
		sig      signature.TypeSignature
		name     string
		fullName string
	}{
		{ptr, "Int32*", "System.Int32*"},
		{byRef, "Int32&", "System.Int32&"},
		{pinned, "Int32& pinned", "System.Int32& pinned"},
		{vec, "Int32*[]", "System.Int32*[]"},
		{modreq, "Int32 modreq(System.Runtime.CompilerServices.IsVolatile)", "System.Int32 modreq(System.Runtime.CompilerServices.IsVolatile)"},
		{modopt, "Int32 modopt(System.Runtime.CompilerServices.IsVolatile)", "System.Int32 modopt(System.Runtime.CompilerServices.IsVolatile)"},
		{signature.NewGenericParameter(signature.GenericParameterType, 0), "!0", "!0"},
		{signature.NewGenericParameter(signature.GenericParameterMethod, 1), "!!1", "!!1"},
	}
	for _, tt := range tests {
		if tt.sig.Name() != tt.name {
			t.Errorf("Name = %q, want %q", tt.sig.Name(), tt.name)
		}
		if tt.sig.FullName() != tt.fullName {
			t.Errorf("FullName = %q, want %q", tt.sig.FullName(), tt.fullName)
		}
	}

	if ptr.Namespace() != "System" || ptr.ResolutionScope() != metadata.ResolutionScope(f.corlib) {
		t.Error("pointer does not forward namespace and scope to its base")
	}
	if ptr.IsValueType() || pinned.IsValueType() != byRef.IsValueType() {
		t.Error("IsValueType mismatch")
	}
	if modreq.ElementType() != metadata.ElementTypeCModReqd || modopt.ElementType() != metadata.ElementTypeCModOpt {
		t.Error("modifier element types")
	}

	for _, ctor := range []func() error{
		func() error { _, err := signature.NewPointer(nil); return err },
		func() error { _, err := signature.NewByReference(nil); return err },
		func() error { _, err := signature.NewPinned(nil); return err },
		func() error { _, err := signature.NewSzArray(nil); return err },
		func() error { _, err := signature.NewCustomModifier(true, nil, i32); return err },
		func() error { _, err := signature.NewCustomModifier(true, volatile, nil); return err },
		func() error { return ptr.SetBaseType(nil) },
	} {
		assertKind(t, ctor(), clrerrors.PhaseConstruct, clrerrors.KindNilReference)
	}
}

func TestElementTypeDefOrRef(t *testing.T) {
	f := newFixture(t)
	list := f.typeRef("System.Collections.Generic", "List`1")

	inst, _ := signature.NewGenericInstance(list, false, f.ts.Int32())
	vec, _ := signature.NewSzArray(inst)
	ptr, _ := signature.NewPointer(vec)

	got, ok := signature.ElementTypeDefOrRef(ptr)
	if !ok || got != metadata.TypeDefOrRef(list) {
		t.Errorf("ElementTypeDefOrRef = %v, %v; want List`1", got, ok)
	}
	got, ok = signature.ElementTypeDefOrRef(f.ts.Int32())
	if !ok || got.FullName() != "System.Int32" {
		t.Errorf("primitive = %v, %v", got, ok)
	}

	param, _ := signature.NewPointer(signature.NewGenericParameter(signature.GenericParameterType, 0))
	if _, ok := signature.ElementTypeDefOrRef(param); ok {
		t.Error("generic parameter resolved to a type")
	}
}

func TestTypeSpecification(t *testing.T) {
	f := newFixture(t)
	list := f.typeRef("System.Collections.Generic", "List`1")
	inst, _ := signature.NewGenericInstance(list, false, f.ts.Int32())

	spec, err := signature.NewTypeSpecification(inst)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.tables.Add(metadata.TableTypeSpec, spec); err != nil {
		t.Fatal(err)
	}

	sig, err := signature.NewTypeDefOrRef(spec, false)
	if err != nil {
		t.Fatal(err)
	}
	assertBytes(t, encode(t, sig), []byte{0x12, 0x06})

	decoded := f.decode([]byte{0x12, 0x06}).(*signature.TypeDefOrRefSignature)
	if decoded.Type() != metadata.TypeDefOrRef(spec) {
		t.Fatalf("decoded type %v, want the TypeSpec row", decoded.Type())
	}
	if decoded.FullName() != "System.Collections.Generic.List`1<System.Int32>" {
		t.Errorf("FullName = %q", decoded.FullName())
	}

	if _, ok := spec.Resolve(); ok {
		t.Error("unbound reference resolved")
	}
	def := metadata.NewTypeDefinition(f.app, "System.Collections.Generic", "List`1")
	list.Bind(def)
	resolved, ok := spec.Resolve()
	if !ok || resolved != metadata.TypeDefOrRef(def) {
		t.Errorf("Resolve = %v, %v", resolved, ok)
	}

	_, err = signature.NewTypeSpecification(nil)
	assertKind(t, err, clrerrors.PhaseConstruct, clrerrors.KindNilReference)
}

func TestTypeSystemFromType(t *testing.T) {
	f := newFixture(t)

	got, err := f.ts.FromType(metadata.NewTypeReference(f.corlib, "System", "Int32"), true)
	if err != nil {
		t.Fatal(err)
	}
	if got != signature.TypeSignature(f.ts.Int32()) {
		t.Errorf("FromType(System.Int32) = %T, want shared primitive", got)
	}

	point := f.typeRef("Geometry", "Point")
	got, err = f.ts.FromType(point, true)
	if err != nil {
		t.Fatal(err)
	}
	if got.ElementType() != metadata.ElementTypeValueType || !got.IsValueType() {
		t.Errorf("FromType(Point) = %s", got.ElementType())
	}
	if _, ok := f.ts.Lookup("System", "Guid"); ok {
		t.Error("Guid reported as primitive")
	}
	if _, err := f.ts.FromType(nil, false); err == nil {
		t.Error("FromType(nil) succeeded")
	}
}

func TestEncodeRequiresToken(t *testing.T) {
	f := newFixture(t)
	loose := metadata.NewTypeReference(f.app, "NS", "Loose")
	sig, err := signature.NewTypeDefOrRef(loose, false)
	if err != nil {
		t.Fatal(err)
	}
	_, err = signature.Encode(sig)
	assertKind(t, err, clrerrors.PhaseEncode, clrerrors.KindUnresolved)
}

func TestDecodeFailureIsLogged(t *testing.T) {
	f := newFixture(t)
	core, logs := observer.New(zap.DebugLevel)
	signature.SetLogger(zap.New(core))
	t.Cleanup(func() { signature.SetLogger(zap.NewNop()) })

	if _, err := signature.ReadTypeSignatureBlob(f.ctx, []byte{0x15}); err == nil {
		t.Fatal("expected error")
	}
	entries := logs.FilterMessage("type signature decode failed").All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	if off := entries[0].ContextMap()["offset"]; off != int64(0) {
		t.Errorf("offset field = %v", off)
	}
}

func TestConcurrentDecode(t *testing.T) {
	f := newFixture(t)
	f.typeRef("NS", "Outer`1")
	f.typeRef("NS", "Inner`1")
	blob := []byte{0x15, 0x12, 0x05, 0x01, 0x15, 0x11, 0x09, 0x01, 0x08}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				sig, err := signature.ReadTypeSignatureBlob(f.ctx, blob)
				if err != nil {
					errs <- err
					return
				}
				inner := sig.(*signature.GenericInstanceTypeSignature).Argument(0)
				if inner.(*signature.GenericInstanceTypeSignature).Argument(0) != signature.TypeSignature(f.ts.Int32()) {
					errs <- fmt.Errorf("primitive not shared")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestEqual(t *testing.T) {
	f := newFixture(t)
	list := f.typeRef("System.Collections.Generic", "List`1")
	other := metadata.NewTypeReference(f.app, "System.Collections.Generic", "List`1")
	set := f.typeRef("System.Collections.Generic", "HashSet`1")

	a, _ := signature.NewGenericInstance(list, false, f.ts.Int32())
	b, _ := signature.NewGenericInstance(other, false, f.ts.Int32())
	c, _ := signature.NewGenericInstance(set, false, f.ts.Int32())
	d, _ := signature.NewGenericInstance(list, false, f.ts.Int64())
	one, _ := signature.NewArray(f.ts.Int32(), signature.Dimension(2, 0))
	two, _ := signature.NewArray(f.ts.Int32(), signature.Dimension(3, 0))

	tests := []struct {
		name string
		x, y signature.TypeSignature
		want bool
	}{
		{"same row", a, a, true},
		{"same name and scope", a, b, true},
		{"different generic type", a, c, false},
		{"different argument", a, d, false},
		{"different array size", one, two, false},
		{"type vs method parameter", signature.NewGenericParameter(signature.GenericParameterType, 0),
			signature.NewGenericParameter(signature.GenericParameterMethod, 0), false},
		{"nil", nil, a, false},
		{"both nil", nil, nil, true},
	}
	for _, tt := range tests {
		if got := signature.Equal(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: Equal = %v, want %v", tt.name, got, tt.want)
		}
	}
}
