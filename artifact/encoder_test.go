package artifact

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndgpemu/ndgpemu/errs"
	"github.com/ndgpemu/ndgpemu/format"
	"github.com/ndgpemu/ndgpemu/section"
)

func encodeBasis(t *testing.T, opts ...EncoderOption) []byte {
	t.Helper()

	enc, err := NewEncoder(format.KindBasis, append([]EncoderOption{WithModel(format.ModelPCA)}, opts...)...)
	require.NoError(t, err)

	components := make([]float64, 3*50)
	for i := range components {
		components[i] = math.Sin(float64(i) / 7)
	}
	require.NoError(t, enc.AddTensor(TensorComponents, 3, 50, components))
	require.NoError(t, enc.AddTensor(TensorMean, 1, 50, make([]float64, 50)))

	data, err := enc.Finish()
	require.NoError(t, err)

	return data
}

func TestEncoder_RoundTrip(t *testing.T) {
	compressions := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, comp := range compressions {
		for _, bigEndian := range []bool{false, true} {
			name := comp.String()
			opts := []EncoderOption{WithCompression(comp)}
			if bigEndian {
				name += "/big"
				opts = append(opts, WithBigEndian())
			}

			t.Run(name, func(t *testing.T) {
				data := encodeBasis(t, opts...)

				a, err := Decode(data)
				require.NoError(t, err)
				require.Equal(t, format.KindBasis, a.Kind())
				require.Equal(t, format.ModelPCA, a.Model())
				require.Equal(t, comp, a.Compression())
				require.Equal(t, bigEndian, a.IsBigEndian())
				require.Equal(t, []string{TensorComponents, TensorMean}, a.Names())

				components, err := a.Tensor(TensorComponents)
				require.NoError(t, err)
				require.Equal(t, 3, components.Rows)
				require.Equal(t, 50, components.Cols)
				require.Equal(t, math.Sin(10.0/7), components.Data[10])

				// re-encoding a decoded artifact keeps its settings
				again, err := Encode(a)
				require.NoError(t, err)
				require.Equal(t, data, again)
			})
		}
	}
}

func TestEncoder_Stats(t *testing.T) {
	enc, err := NewEncoder(format.KindGrid, WithCompression(format.CompressionZstd))
	require.NoError(t, err)
	require.NoError(t, enc.AddTensor(TensorValues, 1, 1000, make([]float64, 1000)))

	_, err = enc.Finish()
	require.NoError(t, err)

	stats := enc.Stats()
	require.Equal(t, format.CompressionZstd, stats.Algorithm)
	require.Equal(t, int64(8000), stats.OriginalSize)
	require.Less(t, stats.CompressedSize, stats.OriginalSize)
}

func TestEncoder_Errors(t *testing.T) {
	t.Run("regressor without model", func(t *testing.T) {
		_, err := NewEncoder(format.KindRegressor)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("invalid compression", func(t *testing.T) {
		_, err := NewEncoder(format.KindGrid, WithCompression(format.CompressionType(42)))
		require.Error(t, err)
	})

	t.Run("duplicate tensor", func(t *testing.T) {
		enc, err := NewEncoder(format.KindGrid)
		require.NoError(t, err)
		require.NoError(t, enc.AddTensor(TensorValues, 1, 2, []float64{1, 2}))
		require.ErrorIs(t, enc.AddTensor(TensorValues, 1, 2, []float64{1, 2}), errs.ErrDuplicateTensor)
	})

	t.Run("shape mismatch", func(t *testing.T) {
		enc, err := NewEncoder(format.KindGrid)
		require.NoError(t, err)
		require.ErrorIs(t, enc.AddTensor(TensorValues, 2, 2, []float64{1, 2}), errs.ErrShapeMismatch)
	})

	t.Run("use after finish", func(t *testing.T) {
		enc, err := NewEncoder(format.KindGrid)
		require.NoError(t, err)
		require.NoError(t, enc.AddTensor(TensorValues, 1, 2, []float64{1, 2}))
		_, err = enc.Finish()
		require.NoError(t, err)

		_, err = enc.Finish()
		require.ErrorIs(t, err, errs.ErrEncoderFinished)
		require.ErrorIs(t, enc.AddTensor("more", 1, 1, []float64{1}), errs.ErrEncoderFinished)
	})
}

func TestDecode_Corruption(t *testing.T) {
	data := encodeBasis(t, WithCompression(format.CompressionNone))
	header, err := section.ParseArtifactHeader(data)
	require.NoError(t, err)

	t.Run("short", func(t *testing.T) {
		_, err := Decode(data[:10])
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, err := Decode(data[:len(data)-8])
		require.ErrorIs(t, err, errs.ErrInvalidIndexOffsets)
	})

	t.Run("payload bit flip", func(t *testing.T) {
		corrupt := append([]byte(nil), data...)
		corrupt[header.PayloadOffset+3] ^= 0x10
		_, err := Decode(corrupt)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("renamed tensor", func(t *testing.T) {
		corrupt := append([]byte(nil), data...)
		// first byte of the first tensor name
		corrupt[header.NamesOffset+4] ^= 0x01
		_, err := Decode(corrupt)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("bad magic", func(t *testing.T) {
		corrupt := append([]byte(nil), data...)
		corrupt[1] = 0x12
		_, err := Decode(corrupt)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("unknown kind", func(t *testing.T) {
		corrupt := append([]byte(nil), data...)
		corrupt[2] = 0x7F
		_, err := Decode(corrupt)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})
}

func TestWriteFile_ReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.art")

	values, err := Vector(TensorValues, []float64{0.1, 0.2, 0.4})
	require.NoError(t, err)
	a, err := New(format.KindGrid, format.ModelNone, values)
	require.NoError(t, err)

	require.NoError(t, WriteFile(path, a, WithCompression(format.CompressionS2)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	read, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, format.CompressionS2, read.Compression())
	grid, err := read.Vector(TensorValues)
	require.NoError(t, err)
	require.Equal(t, []float64{0.1, 0.2, 0.4}, grid)

	_, err = ReadKind(path, format.KindBasisMean)
	require.ErrorIs(t, err, errs.ErrKindMismatch)

	_, err = ReadFile(filepath.Join(dir, "missing.art"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
