package compress

import (
	"fmt"
	"math"

	"github.com/klauspost/compress/s2"

	"github.com/ndgpemu/ndgpemu/errs"
)

// S2Compressor stores tensor payloads as a single S2 block. It trades ratio
// for decode speed, which suits artifacts loaded at every process start.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes a float64 payload with the better-ratio S2 encoder.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeBetter(nil, data), nil
}

// Decompress decodes an S2 block after checking from its length prefix that
// it expands to whole float64 values within the container size limit.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, err
	}
	if uint64(n) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: s2 block expands to %d bytes", errs.ErrInvalidIndexOffsets, n)
	}
	if n%8 != 0 {
		return nil, fmt.Errorf("%w: s2 block expands to %d bytes, not whole float64 values", errs.ErrPayloadTruncated, n)
	}

	return s2.Decode(make([]byte, n), data)
}
