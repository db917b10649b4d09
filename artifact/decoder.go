package artifact

import (
	"fmt"

	"github.com/ndgpemu/ndgpemu/compress"
	"github.com/ndgpemu/ndgpemu/encoding"
	"github.com/ndgpemu/ndgpemu/errs"
	"github.com/ndgpemu/ndgpemu/internal/hash"
	"github.com/ndgpemu/ndgpemu/section"
)

// maxTensorLen bounds the values of a single tensor (32 GiB of float64).
const maxTensorLen = 1 << 32

// Decode parses an artifact file produced by Encoder.
//
// The header, section offsets, tensor names and payload checksum are all
// verified; the returned artifact owns freshly allocated tensor data.
func Decode(data []byte) (*Artifact, error) {
	header, err := section.ParseArtifactHeader(data)
	if err != nil {
		return nil, err
	}
	if err := header.ValidateLayout(len(data)); err != nil {
		return nil, err
	}

	engine := header.Flag.GetEndianEngine()
	count := int(header.TensorCount)

	entries := make([]section.TensorIndexEntry, count)
	ids := make([]uint64, count)
	rawSize := 0
	for i := range count {
		offset := section.IndexOffsetOffset + i*section.TensorIndexEntrySize
		entry, err := section.ParseTensorIndexEntry(data[offset:offset+section.TensorIndexEntrySize], engine)
		if err != nil {
			return nil, err
		}
		if entry.Rows == 0 || entry.Cols == 0 {
			return nil, fmt.Errorf("%w: tensor %d has an empty shape", errs.ErrShapeMismatch, i)
		}
		if uint64(entry.Rows)*uint64(entry.Cols) > maxTensorLen {
			return nil, fmt.Errorf("%w: tensor %d has shape %dx%d", errs.ErrShapeMismatch, i, entry.Rows, entry.Cols)
		}
		entries[i] = entry
		ids[i] = entry.NameID
		rawSize += entry.ByteLen()
	}

	names, err := encoding.DecodeTensorNames(data[header.NamesOffset:header.PayloadOffset], engine)
	if err != nil {
		return nil, err
	}
	if err := encoding.VerifyTensorNames(names, ids); err != nil {
		return nil, err
	}

	stored := data[header.PayloadOffset:]
	if hash.Checksum(stored) != header.Checksum {
		return nil, errs.ErrChecksumMismatch
	}

	codec, err := compress.GetCodec(header.Flag.CompressionType())
	if err != nil {
		return nil, err
	}
	payload, err := codec.Decompress(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress tensor payload: %w", err)
	}
	if len(payload) != rawSize {
		return nil, fmt.Errorf("%w: payload holds %d bytes, index requires %d", errs.ErrPayloadTruncated, len(payload), rawSize)
	}

	a := &Artifact{
		kind:        header.Flag.ArtifactKind(),
		model:       header.Flag.ModelType(),
		compression: header.Flag.CompressionType(),
		bigEndian:   header.Flag.IsBigEndian(),
		tensors:     make([]Tensor, 0, count),
		index:       make(map[string]int, count),
	}

	decoder := encoding.NewNumericRawDecoder(engine)
	offset := 0
	for i, entry := range entries {
		values := make([]float64, entry.Len())
		if err := decoder.DecodeInto(values, payload[offset:]); err != nil {
			return nil, err
		}
		offset += entry.ByteLen()

		t := Tensor{Name: names[i], Rows: int(entry.Rows), Cols: int(entry.Cols), Data: values}
		if err := a.add(t); err != nil {
			return nil, err
		}
	}

	return a, nil
}
