package encoding

import (
	"fmt"
	"iter"
	"math"

	"github.com/ndgpemu/ndgpemu/endian"
	"github.com/ndgpemu/ndgpemu/errs"
	"github.com/ndgpemu/ndgpemu/internal/pool"
)

// NumericRawEncoder encodes float64 values in their IEEE 754 representation.
//
// Values are appended to a pooled buffer in the byte order of the endian
// engine. Call Finish once the encoded bytes have been consumed to hand the
// buffer back to the pool.
type NumericRawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

// NewNumericRawEncoder creates a raw float encoder using the specified endian engine.
func NewNumericRawEncoder(engine endian.EndianEngine) *NumericRawEncoder {
	return &NumericRawEncoder{
		engine: engine,
		buf:    pool.GetArtifactBuffer(),
	}
}

// Write encodes a single value.
//
// Panics if Finish has been called.
func (e *NumericRawEncoder) Write(val float64) {
	e.WriteSlice([]float64{val})
}

// WriteSlice encodes a slice of values with a single buffer growth.
//
// Panics if Finish has been called.
func (e *NumericRawEncoder) WriteSlice(values []float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	valLen := len(values)
	e.count += valLen
	if valLen == 0 {
		return
	}

	startIdx := e.buf.Len()
	e.buf.ExtendOrGrow(valLen * 8)

	for i, v := range values {
		offset := startIdx + i*8
		e.engine.PutUint64(e.buf.Slice(offset, offset+8), math.Float64bits(v))
	}
}

// Bytes returns the encoded bytes.
//
// The returned slice references the internal buffer and is valid until the
// next write or Finish.
func (e *NumericRawEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of encoded values.
func (e *NumericRawEncoder) Len() int {
	return e.count
}

// Size returns the encoded size in bytes.
func (e *NumericRawEncoder) Size() int {
	if e.buf == nil {
		return 0
	}

	return e.buf.Len()
}

// Finish returns the buffer to the pool. The encoder is unusable afterwards.
func (e *NumericRawEncoder) Finish() {
	if e.buf != nil {
		pool.PutArtifactBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// NumericRawDecoder decodes byte slices produced by NumericRawEncoder.
//
// The decoder is stateless and returned by value.
type NumericRawDecoder struct {
	engine endian.EndianEngine
}

// NewNumericRawDecoder creates a decoder; engine must match the encoder's.
func NewNumericRawDecoder(engine endian.EndianEngine) NumericRawDecoder {
	return NumericRawDecoder{engine: engine}
}

// All yields count values decoded from data. It yields nothing when data is too short.
func (d NumericRawDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if count <= 0 || len(data) < count*8 {
			return
		}

		for i := range count {
			start := i * 8
			if !yield(math.Float64frombits(d.engine.Uint64(data[start : start+8]))) {
				return
			}
		}
	}
}

// At returns the value at index, or false when index is outside [0, count).
func (d NumericRawDecoder) At(data []byte, index int, count int) (float64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	start := index * 8
	if start+8 > len(data) {
		return 0, false
	}

	return math.Float64frombits(d.engine.Uint64(data[start : start+8])), true
}

// DecodeInto decodes len(dst) values from data into dst.
func (d NumericRawDecoder) DecodeInto(dst []float64, data []byte) error {
	if len(data) < len(dst)*8 {
		return fmt.Errorf("%w: need %d bytes, have %d", errs.ErrPayloadTruncated, len(dst)*8, len(data))
	}

	for i := range dst {
		start := i * 8
		dst[i] = math.Float64frombits(d.engine.Uint64(data[start : start+8]))
	}

	return nil
}
