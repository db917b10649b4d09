package section

import (
	"github.com/ndgpemu/ndgpemu/errs"
	"github.com/ndgpemu/ndgpemu/format"
)

// ArtifactHeader is the fixed-size section at the start of an artifact file.
//
//	Bytes | Field         | Description
//	------|---------------|------------------------------------------------
//	0-1   | Options       | magic number and endianness (always little-endian)
//	2     | Kind          | format.ArtifactKind
//	3     | Compression   | format.CompressionType of the payload
//	4     | Model         | format.ModelType
//	5-7   | reserved      | zero
//	8-11  | TensorCount   | number of tensor index entries
//	12-15 | NamesOffset   | offset of the tensor names section
//	16-19 | PayloadOffset | offset of the (compressed) payload
//	20-23 | PayloadSize   | stored payload size in bytes
//	24-31 | Checksum      | xxHash64 of the stored payload
type ArtifactHeader struct {
	// Flag is the packed format field. Byte offset 0-4.
	Flag ArtifactFlag
	// TensorCount is the number of tensors in the artifact. Byte offset 8-11.
	TensorCount uint32
	// NamesOffset is the byte offset of the tensor names section, right after the index.
	NamesOffset uint32
	// PayloadOffset is the byte offset of the payload, right after the names section.
	PayloadOffset uint32
	// PayloadSize is the stored (possibly compressed) payload size.
	PayloadSize uint32
	// Checksum is the xxHash64 of the stored payload bytes.
	Checksum uint64
}

// NewArtifactHeader creates a header for the given kind and model.
// Counts, offsets and checksum are filled in by the encoder.
func NewArtifactHeader(kind format.ArtifactKind, model format.ModelType) *ArtifactHeader {
	return &ArtifactHeader{
		Flag:        NewArtifactFlag(kind, model),
		NamesOffset: IndexOffsetOffset,
	}
}

// Parse parses the header from a byte slice of exactly HeaderSize bytes.
func (h *ArtifactHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Options is always little-endian so the byte order can be read before it is known.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.Kind = data[2]
	h.Flag.Compression = data[3]
	h.Flag.Model = data[4]

	if data[5] != 0 || data[6] != 0 || data[7] != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	engine := h.Flag.GetEndianEngine()
	h.TensorCount = engine.Uint32(data[8:12])
	h.NamesOffset = engine.Uint32(data[12:16])
	h.PayloadOffset = engine.Uint32(data[16:20])
	h.PayloadSize = engine.Uint32(data[20:24])
	h.Checksum = engine.Uint64(data[24:32])

	return h.Flag.Validate()
}

// Bytes serializes the header.
func (h *ArtifactHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.Kind
	b[3] = h.Flag.Compression
	b[4] = h.Flag.Model

	engine := h.Flag.GetEndianEngine()
	engine.PutUint32(b[8:12], h.TensorCount)
	engine.PutUint32(b[12:16], h.NamesOffset)
	engine.PutUint32(b[16:20], h.PayloadOffset)
	engine.PutUint32(b[20:24], h.PayloadSize)
	engine.PutUint64(b[24:32], h.Checksum)

	return b
}

// ValidateLayout checks that the section offsets are consistent with a file of fileSize bytes.
func (h *ArtifactHeader) ValidateLayout(fileSize int) error {
	indexEnd := uint64(IndexOffsetOffset) + uint64(h.TensorCount)*TensorIndexEntrySize
	if uint64(h.NamesOffset) != indexEnd {
		return errs.ErrInvalidIndexOffsets
	}
	if h.PayloadOffset < h.NamesOffset {
		return errs.ErrInvalidIndexOffsets
	}
	if uint64(h.PayloadOffset)+uint64(h.PayloadSize) != uint64(fileSize) {
		return errs.ErrInvalidIndexOffsets
	}

	return nil
}

// ParseArtifactHeader parses an ArtifactHeader from the start of data.
func ParseArtifactHeader(data []byte) (ArtifactHeader, error) {
	if len(data) < HeaderSize {
		return ArtifactHeader{}, errs.ErrInvalidHeaderSize
	}

	h := ArtifactHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return ArtifactHeader{}, err
	}

	return h, nil
}
