package verifier

import (
	"github.com/golang/snappy"
)

// Reports travel snappy raw (block format, no framing). Compress exists so
// that fixtures and clients produce blobs the verifier accepts; Decompress is
// the verify-path inverse.

// Compress encodes data in the snappy raw format.
func Compress(data []byte) []byte {
	return snappy.Encode(nil, data)
}

// Decompress decodes a snappy raw blob. The verify surface does not
// distinguish a malformed compression envelope from a malformed report
// encoding; both fold into the coarse verification failure.
func Decompress(compressed []byte) ([]byte, error) {
	return snappy.Decode(nil, compressed)
}
