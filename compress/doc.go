// Package compress provides the payload codecs of the artifact container.
//
// An artifact file stores the raw float64 values of its tensors in one
// payload; the header names the codec that compressed it:
//   - None: stored as-is, useful when inspecting files with a hex dump
//   - Zstd: best ratio, the default for `ndgpemu pack`
//   - S2: faster decoding, moderate ratio
//   - LZ4: fastest decoding
//
// Trained basis vectors and regression weights are dense floating point
// numbers, so ratios are modest (typically 1.1-1.5x); wavenumber grids
// sampled on a log scale compress better.
//
// Usage:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//
// All codecs are stateless values backed by pooled encoders and decoders and
// are safe for concurrent use.
package compress
