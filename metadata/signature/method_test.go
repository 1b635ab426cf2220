package signature_test

import (
	"testing"

	clrerrors "github.com/wippyai/clrmeta/errors"
	"github.com/wippyai/clrmeta/metadata/signature"
)

func TestMethodSignatureRoundTrip(t *testing.T) {
	f := newFixture(t)

	m, err := signature.NewMethodSignature(signature.CallingConventionHasThis, f.ts.Void(), f.ts.Int32(), f.ts.StringType())
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x20, 0x02, 0x01, 0x08, 0x0E}
	data := encode(t, m)
	assertBytes(t, data, want)
	if m.PhysicalLength() != uint32(len(want)) {
		t.Errorf("PhysicalLength = %d, want %d", m.PhysicalLength(), len(want))
	}
	if got := m.String(); got != "instance default System.Void (System.Int32, System.String)" {
		t.Errorf("String = %q", got)
	}

	decoded, err := signature.ReadMethodSignatureBlob(f.ctx, data)
	if err != nil {
		t.Fatal(err)
	}
	if !decoded.HasThis() || decoded.ParameterCount() != 2 {
		t.Fatalf("decoded %s", decoded)
	}
	if decoded.ReturnType() != signature.TypeSignature(f.ts.Void()) {
		t.Error("return type is not the shared Void")
	}
	if decoded.ParameterType(1) != signature.TypeSignature(f.ts.StringType()) {
		t.Error("parameter 1 is not the shared String")
	}
}

func TestGenericMethodSignature(t *testing.T) {
	f := newFixture(t)
	mvar := signature.NewGenericParameter(signature.GenericParameterMethod, 0)

	m, err := signature.NewMethodSignature(signature.CallingConventionHasThis, mvar, mvar)
	if err != nil {
		t.Fatal(err)
	}
	m.SetGenericParameterCount(1)
	if !m.CallingConvention().IsGeneric() {
		t.Fatal("generic flag not set")
	}

	want := []byte{0x30, 0x01, 0x01, 0x1E, 0x00, 0x1E, 0x00}
	assertBytes(t, encode(t, m), want)

	decoded, err := signature.ReadMethodSignatureBlob(f.ctx, want)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.GenericParameterCount() != 1 {
		t.Errorf("GenericParameterCount = %d", decoded.GenericParameterCount())
	}
	if decoded.ReturnType().FullName() != "!!0" {
		t.Errorf("return type = %s", decoded.ReturnType().FullName())
	}

	m.SetGenericParameterCount(0)
	if m.CallingConvention().IsGeneric() {
		t.Error("generic flag kept with zero arity")
	}
	assertBytes(t, encode(t, m), []byte{0x20, 0x01, 0x1E, 0x00, 0x1E, 0x00})
}

func TestReadMethodSignatureErrors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		blob []byte
		kind clrerrors.Kind
	}{
		{"empty", nil, clrerrors.KindTruncated},
		{"no parameter count", []byte{0x00}, clrerrors.KindTruncated},
		{"missing parameter", []byte{0x00, 0x01, 0x01}, clrerrors.KindTruncated},
		{"missing generic arity", []byte{0x10}, clrerrors.KindTruncated},
		{"field calling convention", []byte{0x06, 0x00, 0x01}, clrerrors.KindInvalidData},
		{"sentinel", []byte{0x05, 0x02, 0x01, 0x08, 0x41, 0x08}, clrerrors.KindUnsupported},
		{"bad parameter", []byte{0x00, 0x01, 0x01, 0x17}, clrerrors.KindInvalidTag},
		{"trailing bytes", []byte{0x00, 0x00, 0x01, 0x01}, clrerrors.KindInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := signature.ReadMethodSignatureBlob(f.ctx, tt.blob)
			if m != nil {
				t.Fatalf("decoded %s", m)
			}
			assertKind(t, err, clrerrors.PhaseDecode, tt.kind)
		})
	}
}

func TestMethodSignatureRejectsNil(t *testing.T) {
	f := newFixture(t)

	_, err := signature.NewMethodSignature(signature.CallingConventionDefault, nil)
	assertKind(t, err, clrerrors.PhaseConstruct, clrerrors.KindNilReference)
	_, err = signature.NewMethodSignature(signature.CallingConventionDefault, f.ts.Void(), nil)
	assertKind(t, err, clrerrors.PhaseConstruct, clrerrors.KindNilReference)

	m, err := signature.NewMethodSignature(signature.CallingConventionDefault, f.ts.Void())
	if err != nil {
		t.Fatal(err)
	}
	assertKind(t, m.SetReturnType(nil), clrerrors.PhaseConstruct, clrerrors.KindNilReference)
	assertKind(t, m.AddParameterType(nil), clrerrors.PhaseConstruct, clrerrors.KindNilReference)
	assertKind(t, m.SetParameterType(0, f.ts.Int32()), clrerrors.PhaseConstruct, clrerrors.KindInvalidInput)
}

func TestCallingConventionString(t *testing.T) {
	tests := []struct {
		cc   signature.CallingConvention
		want string
	}{
		{signature.CallingConventionDefault, "default"},
		{signature.CallingConventionHasThis | signature.CallingConventionGeneric, "instance default generic"},
		{signature.CallingConventionVarArg, "vararg"},
		{signature.CallingConventionStdCall, "unmanaged stdcall"},
		{signature.CallingConventionHasThis | signature.CallingConventionExplicitThis, "instance explicit default"},
	}
	for _, tt := range tests {
		if got := tt.cc.String(); got != tt.want {
			t.Errorf("%#x.String() = %q, want %q", byte(tt.cc), got, tt.want)
		}
	}
}
