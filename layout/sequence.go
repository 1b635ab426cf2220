package layout

import (
	stderrors "errors"
	"fmt"
	"io"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/clrmeta/errors"
)

// State is where an entry is in the place-then-write protocol.
type State uint8

const (
	StateUnplaced State = iota
	StatePlaced
	StateSerialized
)

func (s State) String() string {
	switch s {
	case StateUnplaced:
		return "unplaced"
	case StatePlaced:
		return "placed"
	case StateSerialized:
		return "serialized"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// entry records the placement a layout pass gave one segment, so a later
// size change can be detected before writing.
type entry struct {
	segment      Segment
	fileAlign    uint32
	virtualAlign uint32
	state        State
	offset       uint32
	rva          uint32
	physicalSize uint32
	virtualSize  uint32
}

func (e *entry) stale() bool {
	return e.state == StateUnplaced ||
		e.segment.PhysicalSize() != e.physicalSize ||
		e.segment.VirtualSize() != e.virtualSize ||
		e.segment.Offset() != e.offset ||
		e.segment.RVA() != e.rva
}

// Sequence is an ordered list of segments laid out back to back, each
// aligned to its own file and virtual alignment. A Sequence is itself a
// Segment and may be nested in another. It is not safe for concurrent use.
type Sequence struct {
	Base
	entries []entry
	placed  bool
}

// NewSequence creates an empty sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Len returns the number of entries.
func (s *Sequence) Len() int {
	return len(s.entries)
}

// At returns the i-th segment.
func (s *Sequence) At(i int) Segment {
	return s.entries[i].segment
}

// StateAt returns the protocol state of the i-th entry.
func (s *Sequence) StateAt(i int) State {
	return s.entries[i].state
}

// Add appends a segment with no alignment requirement and returns its index.
func (s *Sequence) Add(seg Segment) (int, error) {
	return s.AddAligned(seg, 1, 1)
}

// AddAligned appends a segment whose file offset and virtual address are
// rounded up to the given powers of two, and returns its index.
func (s *Sequence) AddAligned(seg Segment, fileAlign, virtualAlign uint32) (int, error) {
	if seg == nil {
		return -1, errors.NilReference([]string{fmt.Sprintf("segment[%d]", len(s.entries))}, "segment")
	}
	if !validAlignment(fileAlign) || !validAlignment(virtualAlign) {
		return -1, errors.Layout(errors.KindInvalidInput, len(s.entries),
			fmt.Sprintf("alignments %d and %d must be powers of two", fileAlign, virtualAlign))
	}
	s.entries = append(s.entries, entry{
		segment:      seg,
		fileAlign:    max(fileAlign, 1),
		virtualAlign: max(virtualAlign, 1),
	})
	return len(s.entries) - 1, nil
}

// UpdateOffsets places the sequence and lays out every entry from the
// given cursors.
func (s *Sequence) UpdateOffsets(offset, rva uint32) error {
	if err := s.Base.UpdateOffsets(offset, rva); err != nil {
		return err
	}
	s.placed = true
	return s.layoutFrom(0, offset, rva)
}

// Relayout re-runs the layout pass from entry i onwards, keeping the
// placement of earlier entries. Earlier entries must not be stale.
func (s *Sequence) Relayout(i int) error {
	if i < 0 || i > len(s.entries) {
		return errors.Layout(errors.KindInvalidInput, i, "relayout index out of range")
	}
	if !s.placed {
		return errors.Layout(errors.KindNotPlaced, i, "sequence has not been placed")
	}
	if first, ok := s.Stale(); ok && first < i {
		return errors.Layout(errors.KindStaleLayout, first,
			fmt.Sprintf("entry %d is stale; relayout must start at or before it", first))
	}
	offset, rva := s.Offset(), s.RVA()
	if i > 0 {
		prev := &s.entries[i-1]
		offset = prev.offset + prev.physicalSize
		rva = prev.rva + prev.virtualSize
	}
	return s.layoutFrom(i, offset, rva)
}

func (s *Sequence) layoutFrom(from int, offset, rva uint32) error {
	for i := from; i < len(s.entries); i++ {
		e := &s.entries[i]
		offset = Align(offset, e.fileAlign)
		rva = Align(rva, e.virtualAlign)
		if !e.segment.CanUpdateOffsets() {
			if e.segment.Offset() != offset || e.segment.RVA() != rva {
				e.state = StateUnplaced
				return errors.Layout(errors.KindPinned, i,
					fmt.Sprintf("fixed at offset 0x%x rva 0x%x, layout requires offset 0x%x rva 0x%x",
						e.segment.Offset(), e.segment.RVA(), offset, rva))
			}
		} else if err := e.segment.UpdateOffsets(offset, rva); err != nil {
			e.state = StateUnplaced
			var lerr *errors.Error
			if stderrors.As(err, &lerr) {
				return lerr.Within(fmt.Sprintf("segment[%d]", i))
			}
			return errors.Wrap(errors.PhaseLayout, errors.KindPinned, err, fmt.Sprintf("segment[%d]", i))
		}
		e.offset, e.rva = offset, rva
		e.physicalSize = e.segment.PhysicalSize()
		e.virtualSize = e.segment.VirtualSize()
		e.state = StatePlaced
		offset += e.physicalSize
		rva += e.virtualSize
	}
	Logger().Debug("layout pass",
		zap.Int("from", from),
		zap.Int("entries", len(s.entries)),
		zap.Uint32("end_offset", offset),
		zap.Uint32("end_rva", rva))
	return nil
}

// Stale returns the index of the first entry whose placement no longer
// matches its segment: never placed, resized, or moved by someone else.
func (s *Sequence) Stale() (int, bool) {
	for i := range s.entries {
		if s.entries[i].stale() {
			return i, true
		}
	}
	return -1, false
}

// Validate reports every entry that cannot be written as placed.
func (s *Sequence) Validate() error {
	var err error
	if !s.placed && len(s.entries) > 0 {
		err = multierr.Append(err, errors.New(errors.PhaseLayout, errors.KindNotPlaced).
			Detail("sequence has not been placed").
			Build())
	}
	for i := range s.entries {
		e := &s.entries[i]
		switch {
		case e.state == StateUnplaced:
			err = multierr.Append(err, errors.Layout(errors.KindNotPlaced, i, "segment has not been placed"))
		case e.stale():
			err = multierr.Append(err, errors.Layout(errors.KindStaleLayout, i,
				fmt.Sprintf("placed with size %d/%d, now %d/%d", e.physicalSize, e.virtualSize,
					e.segment.PhysicalSize(), e.segment.VirtualSize())))
		}
	}
	return err
}

// PhysicalSize is the number of bytes the sequence spans in the file,
// including alignment padding between entries. It is computed from current
// sizes and the current offset.
func (s *Sequence) PhysicalSize() uint32 {
	end := s.Offset()
	for i := range s.entries {
		e := &s.entries[i]
		end = Align(end, e.fileAlign) + e.segment.PhysicalSize()
	}
	return end - s.Offset()
}

// VirtualSize is the mapped footprint of the sequence, including alignment.
func (s *Sequence) VirtualSize() uint32 {
	end := s.RVA()
	for i := range s.entries {
		e := &s.entries[i]
		end = Align(end, e.virtualAlign) + e.segment.VirtualSize()
	}
	return end - s.RVA()
}

// Write emits every entry at its placed offset, zero-filling alignment
// gaps. It fails without writing anything when the layout is incomplete or
// stale, and fails when a segment emits a different number of bytes than
// its PhysicalSize.
func (s *Sequence) Write(w io.Writer) error {
	if err := s.Validate(); err != nil {
		return err
	}
	cursor := s.Offset()
	for i := range s.entries {
		e := &s.entries[i]
		if err := writeZeroes(w, e.offset-cursor); err != nil {
			return errors.Wrap(errors.PhaseLayout, errors.KindInvalidData, err, fmt.Sprintf("padding before segment[%d]", i))
		}
		cw := &countingWriter{w: w}
		if err := e.segment.Write(cw); err != nil {
			return err
		}
		if cw.n != int64(e.physicalSize) {
			return errors.LengthMismatch(fmt.Sprintf("segment[%d]", i), int(e.physicalSize), int(cw.n))
		}
		e.state = StateSerialized
		cursor = e.offset + e.physicalSize
	}
	return nil
}
