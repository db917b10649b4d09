// Package errs defines the errors returned by ndgpemu.
//
// Input validation failures are reported with typed errors that carry the
// offending data (RangeError, MissingParameterError). Failures while loading
// trained artifacts are wrapped in ArtifactLoadError. The artifact container
// reports format problems with the sentinel values below, which callers can
// match with errors.Is through any amount of wrapping.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOutOfRange is matched by every *RangeError.
	ErrOutOfRange = errors.New("value outside the interpolation range")
	// ErrMissingParameter is matched by every *MissingParameterError.
	ErrMissingParameter = errors.New("missing cosmological parameters")
	// ErrArtifactLoad is matched by every *ArtifactLoadError.
	ErrArtifactLoad = errors.New("failed to load trained artifact")
	// ErrUnknownParameter is returned when a bound is requested for an unknown name.
	ErrUnknownParameter = errors.New("unknown parameter")
	// ErrInvalidExtrapolation is returned for an unrecognized extrapolation policy.
	ErrInvalidExtrapolation = errors.New("invalid extrapolation policy")
	// ErrDimensionMismatch is returned when a vector does not match the dimension a model expects.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrGridNotIncreasing is returned when an interpolation grid is not strictly increasing.
	ErrGridNotIncreasing = errors.New("grid is not strictly increasing")
	// ErrGridTooShort is returned when an interpolation grid has fewer than two knots.
	ErrGridTooShort = errors.New("grid needs at least two points")

	// ErrInvalidHeaderSize is returned when the artifact header is not 32 bytes.
	ErrInvalidHeaderSize = errors.New("invalid artifact header size")
	// ErrInvalidMagicNumber is returned when the header does not carry the artifact magic number.
	ErrInvalidMagicNumber = errors.New("invalid artifact magic number")
	// ErrInvalidHeaderFlags is returned when kind, model or compression fields are unknown.
	ErrInvalidHeaderFlags = errors.New("invalid artifact header flags")
	// ErrInvalidIndexEntrySize is returned when a tensor index entry is not 16 bytes.
	ErrInvalidIndexEntrySize = errors.New("invalid tensor index entry size")
	// ErrInvalidIndexOffsets is returned when header offsets do not describe a valid layout.
	ErrInvalidIndexOffsets = errors.New("invalid artifact section offsets")
	// ErrPayloadTruncated is returned when the payload is shorter than the index requires.
	ErrPayloadTruncated = errors.New("artifact payload truncated")
	// ErrChecksumMismatch is returned when the payload checksum does not match the header.
	ErrChecksumMismatch = errors.New("artifact payload checksum mismatch")
	// ErrTensorNotFound is returned when a required tensor is absent.
	ErrTensorNotFound = errors.New("tensor not found")
	// ErrDuplicateTensor is returned when a tensor name is added twice.
	ErrDuplicateTensor = errors.New("duplicate tensor name")
	// ErrShapeMismatch is returned when tensor data does not match its declared shape.
	ErrShapeMismatch = errors.New("tensor shape mismatch")
	// ErrKindMismatch is returned when an artifact file holds a different kind than expected.
	ErrKindMismatch = errors.New("artifact kind mismatch")
	// ErrUnsupportedModel is returned for a model type the loader cannot build.
	ErrUnsupportedModel = errors.New("unsupported model type")
	// ErrEncoderFinished is returned when an encoder is used after Finish.
	ErrEncoderFinished = errors.New("encoder already finished")
)

// RangeError reports a scalar or array input outside its declared interval.
type RangeError struct {
	// Param is the parameter name, e.g. "Om", "z", "H0rc" or "k".
	Param string
	// Value is the offending value. For arrays it is the first extreme found outside the range.
	Value float64
	// Min and Max are the inclusive bounds of the valid interval.
	Min, Max float64
	// Hint is an optional suffix appended to the message.
	Hint string
}

func (e *RangeError) Error() string {
	msg := fmt.Sprintf("parameter (%s=%g) outside the interpolation range: %s_range = [%g, %g]",
		e.Param, e.Value, e.Param, e.Min, e.Max)
	if e.Hint != "" {
		msg += "; " + e.Hint
	}

	return msg
}

// Is reports whether target is ErrOutOfRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// MissingParameterError reports every required key absent from a parameter set.
type MissingParameterError struct {
	// Keys holds the missing names in the fixed required-parameter order.
	Keys []string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("the following keys are missing from the cosmological parameters: [%s]",
		strings.Join(e.Keys, ", "))
}

// Is reports whether target is ErrMissingParameter.
func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}

// ArtifactLoadError wraps a failure to read or decode one trained artifact.
type ArtifactLoadError struct {
	// Artifact names the artifact role, e.g. "regressor" or "grid".
	Artifact string
	// Path is the file the artifact was read from, empty for in-memory sources.
	Path string
	// Err is the underlying cause.
	Err error
}

func (e *ArtifactLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load %s artifact: %v", e.Artifact, e.Err)
	}

	return fmt.Sprintf("load %s artifact from %s: %v", e.Artifact, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ArtifactLoadError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrArtifactLoad.
func (e *ArtifactLoadError) Is(target error) bool {
	return target == ErrArtifactLoad
}
