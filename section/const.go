package section

const (
	// Bit masks of the Options field.
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	ReservedBitsMask = 0x000D // Mask for reserved bits (bits 0, 2, 3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicArtifactV1Opt is the version 1 magic number of the artifact container.
	MagicArtifactV1Opt = 0xAE10
)

// offset and section sizes in the artifact file
const (
	HeaderSize           = 32         // fixed header size in bytes
	TensorIndexEntrySize = 16         // fixed tensor index entry size in bytes
	IndexOffsetOffset    = HeaderSize // byte offset where the tensor index starts
	MaxTensorCount       = 1<<16 - 1  // tensor names are counted with a uint16
	MaxTensorNameLength  = 1<<16 - 1  // tensor names are length-prefixed with a uint16
)
