// Package binary implements the primitive encodings of metadata blobs:
// compressed unsigned and signed integers, plus a position-tracking Reader
// and a buffered Writer built on them.
//
// Decoding never fails loudly. Reader methods follow a try shape and report
// false when the input is too short, so a caller parsing untrusted data can
// stop cleanly:
//
//	r := binary.NewReader(blob)
//	n, ok := r.TryReadCompressedUint32()
//	if !ok {
//	    // truncated
//	}
//
// Encoding rejects values outside the representable range instead of
// truncating them:
//
//	w := binary.NewWriter()
//	if err := w.WriteCompressedUint32(count); err != nil {
//	    return err
//	}
package binary
