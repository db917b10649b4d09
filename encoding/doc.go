// Package encoding provides the value and name encoders of the artifact container.
//
// Tensor values are stored as raw IEEE 754 float64 in the byte order of the
// artifact header. Tensor names are stored as uint16 length-prefixed strings
// and verified against the xxHash64 ids in the tensor index.
package encoding
