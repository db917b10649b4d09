package encoding

import (
	"errors"
	"fmt"

	"github.com/ndgpemu/ndgpemu/endian"
	"github.com/ndgpemu/ndgpemu/errs"
	"github.com/ndgpemu/ndgpemu/internal/hash"
)

// MaxTensorNameLength is the longest tensor name a uint16 length prefix can hold.
const MaxTensorNameLength = 1<<16 - 1

// EncodeTensorNames encodes the tensor names section.
//
// Format:
//
//	count (uint16) | [len (uint16) | name bytes] * count
func EncodeTensorNames(names []string, engine endian.EndianEngine) ([]byte, error) {
	if len(names) > MaxTensorNameLength {
		return nil, fmt.Errorf("too many tensors: %d", len(names))
	}

	size := 2
	for _, name := range names {
		if len(name) == 0 {
			return nil, errors.New("empty tensor name")
		}
		if len(name) > MaxTensorNameLength {
			return nil, fmt.Errorf("tensor name length %d exceeds maximum %d", len(name), MaxTensorNameLength)
		}
		size += 2 + len(name)
	}

	buf := make([]byte, 0, size)
	buf = engine.AppendUint16(buf, uint16(len(names))) //nolint: gosec
	for _, name := range names {
		buf = engine.AppendUint16(buf, uint16(len(name))) //nolint: gosec
		buf = append(buf, name...)
	}

	return buf, nil
}

// DecodeTensorNames decodes the tensor names section written by EncodeTensorNames.
func DecodeTensorNames(data []byte, engine endian.EndianEngine) ([]string, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: tensor names section too short", errs.ErrPayloadTruncated)
	}

	count := int(engine.Uint16(data[0:2]))
	names := make([]string, 0, count)
	offset := 2

	for i := range count {
		if offset+2 > len(data) {
			return nil, fmt.Errorf("%w: tensor name %d length", errs.ErrPayloadTruncated, i)
		}
		n := int(engine.Uint16(data[offset : offset+2]))
		offset += 2

		if offset+n > len(data) {
			return nil, fmt.Errorf("%w: tensor name %d", errs.ErrPayloadTruncated, i)
		}
		names = append(names, string(data[offset:offset+n]))
		offset += n
	}

	return names, nil
}

// VerifyTensorNames checks that names hash to ids in order.
func VerifyTensorNames(names []string, ids []uint64) error {
	if len(names) != len(ids) {
		return fmt.Errorf("%w: %d names for %d index entries", errs.ErrInvalidIndexOffsets, len(names), len(ids))
	}

	for i, name := range names {
		if hash.ID(name) != ids[i] {
			return fmt.Errorf("%w: tensor %q does not match index entry %d", errs.ErrChecksumMismatch, name, i)
		}
	}

	return nil
}
