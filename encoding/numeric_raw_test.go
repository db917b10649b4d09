package encoding

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndgpemu/ndgpemu/endian"
	"github.com/ndgpemu/ndgpemu/errs"
)

func TestNumericRawEncoder_NewEncoder(t *testing.T) {
	encoder := NewNumericRawEncoder(endian.GetLittleEndianEngine())
	defer encoder.Finish()

	require.Equal(t, 0, encoder.Len())
	require.Equal(t, 0, encoder.Size())
	require.Empty(t, encoder.Bytes())
}

func TestNumericRawEncoder_RoundTrip(t *testing.T) {
	values := []float64{3.14159, -2.71828, 0, math.Inf(1), math.SmallestNonzeroFloat64, 1e300}

	for _, engine := range []endian.EndianEngine{endian.GetLittleEndianEngine(), endian.GetBigEndianEngine()} {
		encoder := NewNumericRawEncoder(engine)
		encoder.Write(values[0])
		encoder.WriteSlice(values[1:])

		require.Equal(t, len(values), encoder.Len())
		require.Equal(t, len(values)*8, encoder.Size())

		data := slices.Clone(encoder.Bytes())
		encoder.Finish()

		decoder := NewNumericRawDecoder(engine)
		require.Equal(t, values, slices.Collect(decoder.All(data, len(values))))

		dst := make([]float64, len(values))
		require.NoError(t, decoder.DecodeInto(dst, data))
		require.Equal(t, values, dst)

		v, ok := decoder.At(data, 2, len(values))
		require.True(t, ok)
		require.Equal(t, values[2], v)
	}
}

func TestNumericRawEncoder_NaN(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	encoder := NewNumericRawEncoder(engine)
	defer encoder.Finish()

	encoder.Write(math.NaN())
	v, ok := NewNumericRawDecoder(engine).At(encoder.Bytes(), 0, 1)
	require.True(t, ok)
	require.True(t, math.IsNaN(v))
}

func TestNumericRawEncoder_WriteAfterFinish(t *testing.T) {
	encoder := NewNumericRawEncoder(endian.GetLittleEndianEngine())
	encoder.Finish()

	require.Equal(t, 0, encoder.Size())
	require.Panics(t, func() { encoder.Write(1) })
	require.Panics(t, func() { _ = encoder.Bytes() })
}

func TestNumericRawDecoder_Bounds(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	decoder := NewNumericRawDecoder(engine)
	data := make([]byte, 16)

	_, ok := decoder.At(data, -1, 2)
	require.False(t, ok)
	_, ok = decoder.At(data, 2, 2)
	require.False(t, ok)
	_, ok = decoder.At(data, 1, 3)
	require.True(t, ok)
	_, ok = decoder.At(data, 2, 3)
	require.False(t, ok)

	require.Empty(t, slices.Collect(decoder.All(data, 3)))
	require.ErrorIs(t, decoder.DecodeInto(make([]float64, 3), data), errs.ErrPayloadTruncated)
}

func BenchmarkNumericRawEncoder_WriteSlice(b *testing.B) {
	values := make([]float64, 4096)
	for i := range values {
		values[i] = float64(i) * 0.5
	}
	engine := endian.GetLittleEndianEngine()

	for b.Loop() {
		encoder := NewNumericRawEncoder(engine)
		encoder.WriteSlice(values)
		encoder.Finish()
	}
}
