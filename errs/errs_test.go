package errs

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRangeError(t *testing.T) {
	err := &RangeError{Param: "Om", Value: 0.2, Min: 0.28, Max: 0.36}

	require.ErrorIs(t, err, ErrOutOfRange)
	require.Contains(t, err.Error(), "Om=0.2")
	require.Contains(t, err.Error(), "[0.28, 0.36]")

	wrapped := fmt.Errorf("predict: %w", err)
	var rangeErr *RangeError
	require.ErrorAs(t, wrapped, &rangeErr)
	require.Equal(t, "Om", rangeErr.Param)
	require.ErrorIs(t, wrapped, ErrOutOfRange)
}

func TestRangeError_Hint(t *testing.T) {
	err := &RangeError{Param: "k", Value: 1e-4, Min: 0.01, Max: 5, Hint: "set an extrapolation policy"}
	require.Contains(t, err.Error(), "; set an extrapolation policy")
}

func TestMissingParameterError(t *testing.T) {
	err := &MissingParameterError{Keys: []string{"h", "Ob"}}

	require.ErrorIs(t, err, ErrMissingParameter)
	require.NotErrorIs(t, err, ErrOutOfRange)
	require.Equal(t, "the following keys are missing from the cosmological parameters: [h, Ob]", err.Error())
}

func TestArtifactLoadError(t *testing.T) {
	t.Run("with path", func(t *testing.T) {
		err := &ArtifactLoadError{Artifact: "grid", Path: "/tmp/grid.art", Err: fs.ErrNotExist}

		require.ErrorIs(t, err, ErrArtifactLoad)
		require.ErrorIs(t, err, fs.ErrNotExist)
		require.Contains(t, err.Error(), "/tmp/grid.art")
	})

	t.Run("without path", func(t *testing.T) {
		err := &ArtifactLoadError{Artifact: "basis", Err: ErrShapeMismatch}

		require.True(t, errors.Is(err, ErrShapeMismatch))
		require.Equal(t, "load basis artifact: tensor shape mismatch", err.Error())
	})
}
