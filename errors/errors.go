package errors

import (
	"fmt"
	"strings"
)

// Phase names the stage of signature or image processing that failed.
type Phase string

const (
	PhaseDecode    Phase = "decode"    // binary to signature tree
	PhaseEncode    Phase = "encode"    // signature tree to binary
	PhaseConstruct Phase = "construct" // programmatic construction and mutation
	PhaseLayout    Phase = "layout"    // segment placement and serialization
	PhaseResolve   Phase = "resolve"   // assembly and member resolution
	PhaseConfig    Phase = "config"    // configuration loading
)

// Kind classifies the failure independent of the phase.
type Kind string

const (
	KindTruncated      Kind = "truncated"
	KindOverflow       Kind = "overflow"
	KindInvalidData    Kind = "invalid_data"
	KindInvalidTag     Kind = "invalid_tag"
	KindUnresolved     Kind = "unresolved"
	KindDepthExceeded  Kind = "depth_exceeded"
	KindNilReference   Kind = "nil_reference"
	KindImmutable      Kind = "immutable"
	KindTableMismatch  Kind = "table_mismatch"
	KindUnsupported    Kind = "unsupported"
	KindNotPlaced      Kind = "not_placed"
	KindStaleLayout    Kind = "stale_layout"
	KindPinned         Kind = "pinned"
	KindLengthMismatch Kind = "length_mismatch"
	KindNotFound       Kind = "not_found"
	KindInvalidInput   Kind = "invalid_input"
)

// Error is returned by every package of the module. Path locates the
// failing node inside a signature tree or segment sequence.
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	Type      string
	Detail    string
	Path      []string
	Offset    int
	HasOffset bool
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.HasOffset {
		fmt.Fprintf(&b, " (offset %d)", e.Offset)
	}

	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
	}

	if e.Detail != "" {
		if e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap exposes Cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches an *Error target with the same Phase and Kind; other fields
// of the target are ignored.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Within returns a copy of e with segment prepended to its path.
// Decoders use it to record where in a nested tree a failure happened.
func (e *Error) Within(segment string) *Error {
	cp := *e
	cp.Path = append([]string{segment}, e.Path...)
	return &cp
}

// Builder assembles an Error field by field.
type Builder struct {
	err Error
}

// New starts a Builder for phase and kind.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path replaces the node path.
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Type records the full name of the type involved.
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// At sets the byte offset where the error was detected
func (b *Builder) At(offset int) *Builder {
	b.err.Offset = offset
	b.err.HasOffset = true
	return b
}

// Value records the offending tag, count or index.
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause chains err.
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail formats the message with fmt.Sprintf when args are given.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the error. The Builder must not be reused.
func (b *Builder) Build() *Error {
	return &b.err
}

// Shorthands for the failures the decoders and builders report most.

// Truncated creates an error for input that ends before a value is complete
func Truncated(offset int, what string) *Error {
	return &Error{
		Phase:     PhaseDecode,
		Kind:      KindTruncated,
		Offset:    offset,
		HasOffset: true,
		Detail:    fmt.Sprintf("unexpected end of data reading %s", what),
	}
}

// InvalidTag creates an error for an element type byte that starts no known signature
func InvalidTag(offset int, tag byte) *Error {
	return &Error{
		Phase:     PhaseDecode,
		Kind:      KindInvalidTag,
		Offset:    offset,
		HasOffset: true,
		Detail:    fmt.Sprintf("unexpected element type 0x%02x", tag),
		Value:     tag,
	}
}

// Unresolved creates an error for a reference that the member resolver could not bind
func Unresolved(offset int, token fmt.Stringer) *Error {
	return &Error{
		Phase:     PhaseDecode,
		Kind:      KindUnresolved,
		Offset:    offset,
		HasOffset: true,
		Detail:    fmt.Sprintf("cannot resolve %s", token),
		Value:     token,
	}
}

// DepthExceeded creates an error for signatures nested deeper than the configured limit
func DepthExceeded(offset, limit int) *Error {
	return &Error{
		Phase:     PhaseDecode,
		Kind:      KindDepthExceeded,
		Offset:    offset,
		HasOffset: true,
		Detail:    fmt.Sprintf("signature nesting exceeds %d levels", limit),
		Value:     limit,
	}
}

// NilReference creates an error for a required reference passed as nil
func NilReference(path []string, what string) *Error {
	return &Error{
		Phase:  PhaseConstruct,
		Kind:   KindNilReference,
		Path:   path,
		Detail: fmt.Sprintf("%s must not be nil", what),
	}
}

// Immutable creates an error for a write to a slot that is exposed read-only
func Immutable(path []string, what string) *Error {
	return &Error{
		Phase:  PhaseConstruct,
		Kind:   KindImmutable,
		Path:   path,
		Detail: fmt.Sprintf("%s cannot be modified", what),
	}
}

// Overflow reports a value that does not fit its encoding.
func Overflow(phase Phase, value any, limit any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("value %v exceeds %v", value, limit),
		Value:  value,
	}
}

// TableMismatch creates an error for a table that a coded index kind cannot reference
func TableMismatch(phase Phase, kind, table string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTableMismatch,
		Detail: fmt.Sprintf("coded index %s cannot reference table %s", kind, table),
		Value:  table,
	}
}

// Unsupported reports a construct the codec deliberately does not handle.
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidData reports well-formed bytes that describe an impossible shape.
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// NotFound reports a missing assembly, file or member.
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput reports an argument outside the accepted range.
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap attaches phase, kind and detail to an error from outside the module.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Layout creates a layout protocol error for the segment at index
func Layout(kind Kind, index int, detail string) *Error {
	return &Error{
		Phase:  PhaseLayout,
		Kind:   kind,
		Path:   []string{fmt.Sprintf("segment[%d]", index)},
		Detail: detail,
		Value:  index,
	}
}

// LengthMismatch creates an error for a writer that emitted a different byte count than it promised
func LengthMismatch(what string, want, got int) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindLengthMismatch,
		Detail: fmt.Sprintf("%s wrote %d bytes, expected %d", what, got, want),
		Value:  got,
	}
}
