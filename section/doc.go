// Package section defines the binary layout of artifact container files.
//
// An artifact file stores the named float64 tensors of one trained artifact
// (the regressor, the basis, the basis mean or the wavenumber grid):
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                                │
//	│  - Flag (5 bytes): magic, endianness, kind,             │
//	│    compression, model                                   │
//	│  - TensorCount, NamesOffset, PayloadOffset,             │
//	│    PayloadSize (16 bytes)                               │
//	│  - Checksum (8 bytes): xxHash64 of the stored payload   │
//	├─────────────────────────────────────────────────────────┤
//	│ Index (N × 16 bytes)                                    │
//	│  - NameID (xxHash64 of the name), Rows, Cols            │
//	├─────────────────────────────────────────────────────────┤
//	│ Names (variable)                                        │
//	│  - count, then length-prefixed tensor names             │
//	├─────────────────────────────────────────────────────────┤
//	│ Payload (variable, optionally compressed)               │
//	│  - row-major float64 values in index order              │
//	└─────────────────────────────────────────────────────────┘
//
// The first two header bytes are always little-endian. Every other multi-byte
// field, and the payload, use the byte order recorded in the flag.
package section
