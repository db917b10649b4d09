package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndgpemu/ndgpemu/errs"
	"github.com/ndgpemu/ndgpemu/format"
)

func TestNewArtifactHeader(t *testing.T) {
	header := NewArtifactHeader(format.KindRegressor, format.ModelLinear)

	require.NotNil(t, header)
	require.Equal(t, uint32(IndexOffsetOffset), header.NamesOffset)
	require.Equal(t, uint32(0), header.TensorCount)
	require.Equal(t, uint16(MagicArtifactV1Opt), header.Flag.GetMagicNumber())
	require.True(t, header.Flag.IsLittleEndian())
	require.Equal(t, format.CompressionZstd, header.Flag.CompressionType())
	require.Equal(t, format.KindRegressor, header.Flag.ArtifactKind())
	require.Equal(t, format.ModelLinear, header.Flag.ModelType())
	require.NoError(t, header.Flag.Validate())
}

func TestArtifactHeader_Parse(t *testing.T) {
	for _, bigEndian := range []bool{false, true} {
		name := "little endian"
		if bigEndian {
			name = "big endian"
		}

		t.Run(name, func(t *testing.T) {
			original := NewArtifactHeader(format.KindBasis, format.ModelPCAWhitened)
			if bigEndian {
				original.Flag.WithBigEndian()
			}
			original.Flag.SetCompression(format.CompressionS2)
			original.TensorCount = 3
			original.NamesOffset = IndexOffsetOffset + 3*TensorIndexEntrySize
			original.PayloadOffset = 200
			original.PayloadSize = 4096
			original.Checksum = 0xDEADBEEFCAFEBABE

			data := original.Bytes()
			require.Len(t, data, HeaderSize)

			parsed := &ArtifactHeader{}
			require.NoError(t, parsed.Parse(data))
			require.Equal(t, *original, *parsed)
			require.Equal(t, bigEndian, parsed.Flag.IsBigEndian())
		})
	}

	t.Run("invalid size", func(t *testing.T) {
		err := (&ArtifactHeader{}).Parse([]byte{1, 2, 3})
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("invalid magic number", func(t *testing.T) {
		data := make([]byte, HeaderSize)
		err := (&ArtifactHeader{}).Parse(data)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("reserved bytes set", func(t *testing.T) {
		data := NewArtifactHeader(format.KindGrid, format.ModelNone).Bytes()
		data[6] = 1
		err := (&ArtifactHeader{}).Parse(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})
}

func TestParseArtifactHeader(t *testing.T) {
	header := NewArtifactHeader(format.KindGrid, format.ModelNone)
	header.TensorCount = 1

	// trailing data after the header is ignored
	data := append(header.Bytes(), 0xFF, 0xFF)
	parsed, err := ParseArtifactHeader(data)
	require.NoError(t, err)
	require.Equal(t, uint32(1), parsed.TensorCount)

	_, err = ParseArtifactHeader(data[:HeaderSize-1])
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}

func TestArtifactHeader_ValidateLayout(t *testing.T) {
	header := NewArtifactHeader(format.KindGrid, format.ModelNone)
	header.TensorCount = 2
	header.NamesOffset = IndexOffsetOffset + 2*TensorIndexEntrySize
	header.PayloadOffset = header.NamesOffset + 20
	header.PayloadSize = 80

	require.NoError(t, header.ValidateLayout(int(header.PayloadOffset+header.PayloadSize)))
	require.ErrorIs(t, header.ValidateLayout(int(header.PayloadOffset+header.PayloadSize)-1), errs.ErrInvalidIndexOffsets)

	header.NamesOffset++
	require.ErrorIs(t, header.ValidateLayout(int(header.PayloadOffset+header.PayloadSize)), errs.ErrInvalidIndexOffsets)
}
