package artifact

import (
	"fmt"
	"math"

	"github.com/ndgpemu/ndgpemu/compress"
	"github.com/ndgpemu/ndgpemu/encoding"
	"github.com/ndgpemu/ndgpemu/endian"
	"github.com/ndgpemu/ndgpemu/errs"
	"github.com/ndgpemu/ndgpemu/format"
	"github.com/ndgpemu/ndgpemu/internal/hash"
	"github.com/ndgpemu/ndgpemu/internal/options"
	"github.com/ndgpemu/ndgpemu/section"
)

// Encoder builds one artifact file.
//
// Tensors are added in storage order with AddTensor; Finish assembles the
// header, the tensor index, the names section and the compressed payload.
// An Encoder cannot be reused after Finish.
type Encoder struct {
	header  *section.ArtifactHeader
	engine  endian.EndianEngine
	values  *encoding.NumericRawEncoder
	entries []section.TensorIndexEntry
	names   []string
	ids     map[uint64]string
	stats   compress.CompressionStats
}

// NewEncoder creates an encoder for an artifact of the given kind.
func NewEncoder(kind format.ArtifactKind, opts ...EncoderOption) (*Encoder, error) {
	cfg := &encoderConfig{header: section.NewArtifactHeader(kind, format.ModelNone)}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if err := cfg.header.Flag.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s artifact with %s model", err, kind, cfg.header.Flag.ModelType())
	}

	engine := cfg.header.Flag.GetEndianEngine()

	return &Encoder{
		header: cfg.header,
		engine: engine,
		values: encoding.NewNumericRawEncoder(engine),
		ids:    make(map[uint64]string),
	}, nil
}

// AddTensor appends a rows×cols tensor given in row-major order.
func (e *Encoder) AddTensor(name string, rows, cols int, data []float64) error {
	if e.values == nil {
		return errs.ErrEncoderFinished
	}

	t, err := NewTensor(name, rows, cols, data)
	if err != nil {
		return err
	}
	if uint64(rows) > math.MaxUint32 || uint64(cols) > math.MaxUint32 {
		return fmt.Errorf("%w: tensor %q is too large", errs.ErrShapeMismatch, name)
	}
	if len(e.entries) >= section.MaxTensorCount {
		return fmt.Errorf("too many tensors: limit is %d", section.MaxTensorCount)
	}

	id := hash.ID(name)
	if prev, ok := e.ids[id]; ok {
		// equal names, or a 64-bit hash collision between two different names
		return fmt.Errorf("%w: %q collides with %q", errs.ErrDuplicateTensor, name, prev)
	}
	e.ids[id] = name

	e.entries = append(e.entries, section.NewTensorIndexEntry(id, t.Rows, t.Cols))
	e.names = append(e.names, name)
	e.values.WriteSlice(t.Data)

	return nil
}

// Add appends t.
func (e *Encoder) Add(t Tensor) error {
	return e.AddTensor(t.Name, t.Rows, t.Cols, t.Data)
}

// Finish returns the encoded artifact file and releases the encoder buffers.
func (e *Encoder) Finish() ([]byte, error) {
	if e.values == nil {
		return nil, errs.ErrEncoderFinished
	}
	defer func() {
		e.values.Finish()
		e.values = nil
	}()

	codec, err := compress.GetCodec(e.header.Flag.CompressionType())
	if err != nil {
		return nil, err
	}

	raw := e.values.Bytes()
	payload, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to compress tensor payload: %w", err)
	}
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("tensor payload of %d bytes exceeds the container limit", len(payload))
	}
	e.stats = compress.CompressionStats{
		Algorithm:      e.header.Flag.CompressionType(),
		OriginalSize:   int64(len(raw)),
		CompressedSize: int64(len(payload)),
	}

	namesSection, err := encoding.EncodeTensorNames(e.names, e.engine)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tensor names: %w", err)
	}

	indexSize := len(e.entries) * section.TensorIndexEntrySize
	header := *e.header
	header.TensorCount = uint32(len(e.entries))                           //nolint: gosec
	header.NamesOffset = uint32(section.IndexOffsetOffset + indexSize)    //nolint: gosec
	header.PayloadOffset = header.NamesOffset + uint32(len(namesSection)) //nolint: gosec
	header.PayloadSize = uint32(len(payload))                             //nolint: gosec
	header.Checksum = hash.Checksum(payload)

	out := make([]byte, int(header.PayloadOffset)+len(payload))
	offset := copy(out, header.Bytes())
	for _, entry := range e.entries {
		offset = entry.WriteToSlice(out, offset, e.engine)
	}
	offset += copy(out[offset:], namesSection)
	copy(out[offset:], payload)

	return out, nil
}

// Stats returns the payload compression statistics of the last Finish.
func (e *Encoder) Stats() compress.CompressionStats {
	return e.stats
}

// Encode encodes a into an artifact file. The artifact's kind, model,
// compression and byte order are used unless overridden by opts.
func Encode(a *Artifact, opts ...EncoderOption) ([]byte, error) {
	base := []EncoderOption{WithModel(a.Model()), WithCompression(a.Compression())}
	if a.IsBigEndian() {
		base = append(base, WithBigEndian())
	}

	enc, err := NewEncoder(a.Kind(), append(base, opts...)...)
	if err != nil {
		return nil, err
	}

	for _, t := range a.Tensors() {
		if err := enc.Add(t); err != nil {
			return nil, err
		}
	}

	return enc.Finish()
}
