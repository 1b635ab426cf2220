// Package errors provides structured error types for the clrmeta library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the path inside the signature tree or segment sequence,
// the byte offset of the failure when known, and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidData).
//		Path("GenericInst", "arg[1]").
//		At(12).
//		Detail("unexpected category marker 0x%02x", marker).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Truncated(offset, "compressed integer")
//	err := errors.NilReference([]string{"GenericInst"}, "generic type")
//
// Decoding untrusted input reports failures with PhaseDecode. Misuse of the
// in-memory API reports PhaseConstruct. Both implement errors.Is on Phase and Kind:
//
//	if errors.Is(err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindTruncated}) { ... }
package errors
