package section

import (
	"github.com/ndgpemu/ndgpemu/endian"
	"github.com/ndgpemu/ndgpemu/errs"
)

// TensorIndexEntry records one tensor in the artifact index section.
// It is a fixed size of 16 bytes.
//
// Tensor values are stored in the payload in index order as row-major float64,
// so the payload offset of each tensor is the running sum of Rows*Cols*8 over
// the preceding entries and is not stored on disk.
type TensorIndexEntry struct {
	// NameID is the xxHash64 of the tensor name.
	//
	// Offset: 0, Size: 8 bytes
	NameID uint64

	// Rows is the number of rows. Offset: 8, Size: 4 bytes
	Rows uint32

	// Cols is the number of columns. Offset: 12, Size: 4 bytes
	Cols uint32
}

// NewTensorIndexEntry creates an index entry.
func NewTensorIndexEntry(nameID uint64, rows, cols int) TensorIndexEntry {
	return TensorIndexEntry{
		NameID: nameID,
		Rows:   uint32(rows), //nolint: gosec
		Cols:   uint32(cols), //nolint: gosec
	}
}

// Len returns the number of values in the tensor.
func (e TensorIndexEntry) Len() int {
	return int(e.Rows) * int(e.Cols)
}

// ByteLen returns the raw payload size of the tensor.
func (e TensorIndexEntry) ByteLen() int {
	return e.Len() * 8
}

// Bytes returns the index entry as a byte slice.
func (e TensorIndexEntry) Bytes(engine endian.EndianEngine) []byte {
	var b [TensorIndexEntrySize]byte
	e.WriteToSlice(b[:], 0, engine)

	return b[:]
}

// WriteToSlice writes to a pre-allocated slice and returns the next position.
func (e TensorIndexEntry) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	engine.PutUint64(data[offset:offset+8], e.NameID)
	engine.PutUint32(data[offset+8:offset+12], e.Rows)
	engine.PutUint32(data[offset+12:offset+16], e.Cols)

	return offset + TensorIndexEntrySize
}

// ParseTensorIndexEntry parses a TensorIndexEntry from a byte slice.
//
// Returns errs.ErrInvalidIndexEntrySize if data is shorter than 16 bytes.
func ParseTensorIndexEntry(data []byte, engine endian.EndianEngine) (TensorIndexEntry, error) {
	if len(data) < TensorIndexEntrySize {
		return TensorIndexEntry{}, errs.ErrInvalidIndexEntrySize
	}

	return TensorIndexEntry{
		NameID: engine.Uint64(data[0:8]),
		Rows:   engine.Uint32(data[8:12]),
		Cols:   engine.Uint32(data[12:16]),
	}, nil
}
