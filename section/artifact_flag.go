package section

import (
	"github.com/ndgpemu/ndgpemu/endian"
	"github.com/ndgpemu/ndgpemu/errs"
	"github.com/ndgpemu/ndgpemu/format"
)

// ArtifactFlag holds the packed format fields at the start of the artifact header.
type ArtifactFlag struct {
	// Options is a packed field for various options.
	// Bit 1 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 0, 2 and 3 are reserved and must be 0.
	// Bits 4-15 are the magic number, 0xAE10 for artifact container v1.
	Options uint16

	// Kind is the format.ArtifactKind stored in the file.
	Kind uint8
	// Compression is the format.CompressionType of the payload.
	Compression uint8
	// Model is the format.ModelType of a regressor or basis artifact.
	Model uint8
}

var (
	validKinds = map[uint8]struct{}{
		uint8(format.KindRegressor): {},
		uint8(format.KindBasisMean): {},
		uint8(format.KindGrid):      {},
		uint8(format.KindBasis):     {},
	}

	validCompressions = map[uint8]struct{}{
		uint8(format.CompressionNone): {},
		uint8(format.CompressionZstd): {},
		uint8(format.CompressionS2):   {},
		uint8(format.CompressionLZ4):  {},
	}

	// validModels lists the model types each kind accepts.
	validModels = map[uint8]map[uint8]struct{}{
		uint8(format.KindRegressor): {
			uint8(format.ModelLinear):          {},
			uint8(format.ModelGaussianProcess): {},
		},
		uint8(format.KindBasis): {
			uint8(format.ModelPCA):         {},
			uint8(format.ModelPCAWhitened): {},
		},
		uint8(format.KindBasisMean): {uint8(format.ModelNone): {}},
		uint8(format.KindGrid):      {uint8(format.ModelNone): {}},
	}
)

// NewArtifactFlag creates a little-endian, zstd-compressed flag for the given kind and model.
func NewArtifactFlag(kind format.ArtifactKind, model format.ModelType) ArtifactFlag {
	flag := ArtifactFlag{
		Options:     MagicArtifactV1Opt,
		Kind:        uint8(kind),
		Compression: uint8(format.CompressionZstd),
		Model:       uint8(model),
	}
	flag.WithLittleEndian()

	return flag
}

// IsLittleEndian returns whether the data is little-endian.
func (f ArtifactFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the data is big-endian.
func (f ArtifactFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *ArtifactFlag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *ArtifactFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f ArtifactFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// ArtifactKind returns the stored artifact kind.
func (f ArtifactFlag) ArtifactKind() format.ArtifactKind {
	return format.ArtifactKind(f.Kind)
}

// CompressionType returns the payload compression.
func (f ArtifactFlag) CompressionType() format.CompressionType {
	return format.CompressionType(f.Compression)
}

// SetCompression sets the payload compression.
func (f *ArtifactFlag) SetCompression(compression format.CompressionType) {
	f.Compression = uint8(compression)
}

// ModelType returns the stored model type.
func (f ArtifactFlag) ModelType() format.ModelType {
	return format.ModelType(f.Model)
}

// Validate checks magic number, reserved bits, kind, compression and the kind/model pairing.
func (f ArtifactFlag) Validate() error {
	if f.GetMagicNumber() != MagicArtifactV1Opt {
		return errs.ErrInvalidMagicNumber
	}
	if f.Options&ReservedBitsMask != 0 {
		return errs.ErrInvalidHeaderFlags
	}
	if _, ok := validKinds[f.Kind]; !ok {
		return errs.ErrInvalidHeaderFlags
	}
	if _, ok := validCompressions[f.Compression]; !ok {
		return errs.ErrInvalidHeaderFlags
	}
	if _, ok := validModels[f.Kind][f.Model]; !ok {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}

// GetEndianEngine returns the endian engine matching the flag.
func (f ArtifactFlag) GetEndianEngine() endian.EndianEngine {
	return endian.Select(f.IsBigEndian())
}
