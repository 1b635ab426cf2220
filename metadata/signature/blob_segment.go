package signature

import (
	"io"

	"github.com/wippyai/clrmeta/errors"
	"github.com/wippyai/clrmeta/layout"
	"github.com/wippyai/clrmeta/metadata/binary"
)

// BlobSegment serializes one signature as a blob heap entry: a compressed
// length followed by the signature bytes.
type BlobSegment struct {
	layout.Base
	signature Signature
}

// NewBlobSegment creates a segment for sig.
func NewBlobSegment(sig Signature) (*BlobSegment, error) {
	if sig == nil {
		return nil, errors.NilReference([]string{"BlobSegment"}, "signature")
	}
	return &BlobSegment{signature: sig}, nil
}

// Signature returns the signature the segment serializes.
func (b *BlobSegment) Signature() Signature {
	return b.signature
}

func (b *BlobSegment) PhysicalSize() uint32 {
	n := b.signature.PhysicalLength()
	return uint32(binary.CompressedSize(n)) + n
}

func (b *BlobSegment) VirtualSize() uint32 {
	return b.PhysicalSize()
}

// Write emits the blob. A signature that writes a different number of bytes
// than its PhysicalLength is reported as a length mismatch and nothing is
// written.
func (b *BlobSegment) Write(w io.Writer) error {
	n := b.signature.PhysicalLength()
	bw := binary.NewWriter()
	if err := bw.WriteCompressedUint32(n); err != nil {
		return err
	}
	header := bw.Len()
	if err := b.signature.Write(bw); err != nil {
		return err
	}
	if got := bw.Len() - header; got != int(n) {
		return errors.LengthMismatch("signature", int(n), got)
	}
	_, err := bw.WriteTo(w)
	return err
}
