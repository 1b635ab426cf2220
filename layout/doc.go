// Package layout assigns file offsets and virtual addresses to relocatable
// chunks of an output image and serializes them.
//
// Placement is an explicit two-phase protocol. A layout pass walks an
// ordered Sequence and calls UpdateOffsets on every entry with running file
// and virtual cursors; Write then emits each entry at the offset it was
// given. A segment that changes size after placement makes the layout
// stale from that entry onwards, and Write refuses to emit stale or
// unplaced entries:
//
//	seq := layout.NewSequence()
//	seq.Add(header)
//	seq.AddAligned(blobs, 4, 0x1000)
//	if err := seq.UpdateOffsets(0, 0x2000); err != nil { ... }
//	if err := seq.Write(out); err != nil { ... }
//
// Entries are addressed by index, so re-layout after a resize is a forward
// scan with Relayout(i).
package layout
