package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/clrmeta/metadata"
	"github.com/wippyai/clrmeta/metadata/signature"
)

type palette struct {
	title lipgloss.Style
	label lipgloss.Style
	kind  lipgloss.Style
	name  lipgloss.Style
	bytes lipgloss.Style
	ok    lipgloss.Style
	bad   lipgloss.Style
	help  lipgloss.Style
}

func colorPalette() palette {
	return palette{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		label: lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		kind:  lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		name:  lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		bytes: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		ok:    lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")),
		bad:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		help:  lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

func plainPalette() palette {
	s := lipgloss.NewStyle()
	return palette{title: s, label: s, kind: s, name: s, bytes: s, ok: s, bad: s, help: s}
}

// parseHex accepts bytes separated by whitespace or commas, with or
// without a 0x prefix.
func parseHex(s string) ([]byte, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	var b strings.Builder
	for _, f := range fields {
		f = strings.TrimPrefix(strings.TrimPrefix(f, "0x"), "0X")
		if len(f)%2 == 1 {
			f = "0" + f
		}
		b.WriteString(f)
	}
	data, err := hex.DecodeString(b.String())
	if err != nil {
		return nil, fmt.Errorf("parse hex: %w", err)
	}
	return data, nil
}

// placeholders binds every TypeDef, TypeRef and TypeSpec token to a member
// named after the token, so blobs decode without the tables they came from.
// A TypeSpec stands in as a class type of that name; its real signature
// lives in the blob heap, which sigdump never sees.
type placeholders struct {
	scope   *metadata.ModuleReference
	members map[metadata.Token]metadata.Member
	mu      sync.Mutex
}

func newPlaceholders() *placeholders {
	return &placeholders{
		scope:   metadata.NewModuleReference("sigdump"),
		members: make(map[metadata.Token]metadata.Member),
	}
}

func (p *placeholders) ResolveMember(token metadata.Token) (metadata.Member, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.members[token]; ok {
		return m, true
	}

	name := fmt.Sprintf("%s_%d", token.Table(), token.Rid())
	var m metadata.TokenAssigner
	switch token.Table() {
	case metadata.TableTypeRef:
		m = metadata.NewTypeReference(p.scope, "", name)
	case metadata.TableTypeDef:
		m = metadata.NewTypeDefinition(p.scope, "", name)
	case metadata.TableTypeSpec:
		inner, err := signature.NewTypeDefOrRef(metadata.NewTypeReference(p.scope, "", name), false)
		if err != nil {
			return nil, false
		}
		spec, err := signature.NewTypeSpecification(inner)
		if err != nil {
			return nil, false
		}
		m = spec
	default:
		return nil, false
	}
	m.AssignToken(token)
	p.members[token] = m
	return m, true
}

func newReadContext() *signature.ReadContext {
	corlib := metadata.NewAssemblyReference("System.Runtime", metadata.AssemblyVersion{}, nil)
	return signature.NewReadContext(newPlaceholders(), signature.NewTypeSystem(corlib))
}

// dump decodes data and writes the signature tree followed by the
// re-encoded bytes.
func dump(w io.Writer, data []byte, method bool, p palette) error {
	ctx := newReadContext()

	var (
		sig signature.Signature
		b   strings.Builder
	)
	if method {
		m, err := signature.ReadMethodSignatureBlob(ctx, data)
		if err != nil {
			return err
		}
		writeMethod(&b, m, p)
		sig = m
	} else {
		t, err := signature.ReadTypeSignatureBlob(ctx, data)
		if err != nil {
			return err
		}
		writeTree(&b, "signature", t, 0, p)
		sig = t
	}

	encoded, err := signature.Encode(sig)
	if err != nil {
		return err
	}
	fmt.Fprintf(&b, "\n%s %s\n", p.label.Render("encoded:"), p.bytes.Render(fmt.Sprintf("% X", encoded)))
	if bytes.Equal(encoded, data) {
		fmt.Fprintf(&b, "%s %s\n", p.label.Render("round trip:"), p.ok.Render("identical"))
	} else {
		fmt.Fprintf(&b, "%s %s\n", p.label.Render("round trip:"), p.bad.Render("differs"))
	}

	_, err = io.WriteString(w, b.String())
	return err
}

func writeMethod(b *strings.Builder, m *signature.MethodSignature, p palette) {
	fmt.Fprintf(b, "%s %s\n", p.label.Render("method:"), p.name.Render(m.String()))
	fmt.Fprintf(b, "  %s %s\n", p.label.Render("calling convention:"), p.kind.Render(m.CallingConvention().String()))
	if m.CallingConvention().IsGeneric() {
		fmt.Fprintf(b, "  %s %d\n", p.label.Render("generic parameters:"), m.GenericParameterCount())
	}
	writeTree(b, "return", m.ReturnType(), 1, p)
	for i, t := range m.ParameterTypes() {
		writeTree(b, fmt.Sprintf("param[%d]", i), t, 1, p)
	}
}

func writeTree(b *strings.Builder, label string, sig signature.TypeSignature, depth int, p palette) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s%s %s %s\n", indent,
		p.label.Render(label+":"),
		p.kind.Render(sig.ElementType().String()),
		p.name.Render(sig.FullName()))

	child := indent + "  "
	switch s := sig.(type) {
	case *signature.TypeDefOrRefSignature:
		writeTypeDefOrRef(b, child, "type", s.Type(), p)
	case *signature.GenericInstanceTypeSignature:
		writeTypeDefOrRef(b, child, "generic type", s.GenericType(), p)
		for i, arg := range s.Arguments() {
			writeTree(b, fmt.Sprintf("arg[%d]", i), arg, depth+1, p)
		}
	case *signature.CustomModifierTypeSignature:
		label := "modopt"
		if s.IsRequired() {
			label = "modreq"
		}
		writeTypeDefOrRef(b, child, label, s.ModifierType(), p)
		writeTree(b, "element", s.BaseType(), depth+1, p)
	case *signature.ArrayTypeSignature:
		fmt.Fprintf(b, "%s%s %d\n", child, p.label.Render("rank:"), s.Rank())
		writeTree(b, "element", s.BaseType(), depth+1, p)
	case interface{ BaseType() signature.TypeSignature }:
		writeTree(b, "element", s.BaseType(), depth+1, p)
	}
}

func writeTypeDefOrRef(b *strings.Builder, indent, label string, t metadata.TypeDefOrRef, p palette) {
	fmt.Fprintf(b, "%s%s %s %s\n", indent,
		p.label.Render(label+":"),
		p.kind.Render(t.Token().String()),
		p.name.Render(t.FullName()))
}
