package artifact

import (
	"fmt"

	"github.com/ndgpemu/ndgpemu/format"
	"github.com/ndgpemu/ndgpemu/internal/options"
	"github.com/ndgpemu/ndgpemu/section"
)

// encoderConfig holds the header settings chosen through EncoderOption.
type encoderConfig struct {
	header *section.ArtifactHeader
}

func (c *encoderConfig) setCompression(comp format.CompressionType) error {
	switch comp {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		c.header.Flag.SetCompression(comp)
		return nil
	default:
		return fmt.Errorf("invalid payload compression: %v", comp)
	}
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*encoderConfig]

// WithCompression sets the payload compression. The default is zstd.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *encoderConfig) error {
		return c.setCompression(comp)
	})
}

// WithModel sets the model type recorded in the header.
func WithModel(model format.ModelType) EncoderOption {
	return options.NoError(func(c *encoderConfig) {
		c.header.Flag.Model = uint8(model)
	})
}

// WithLittleEndian stores the file little-endian. It is the default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *encoderConfig) {
		c.header.Flag.WithLittleEndian()
	})
}

// WithBigEndian stores the file big-endian.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *encoderConfig) {
		c.header.Flag.WithBigEndian()
	})
}
