package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetFloat64Slice(t *testing.T) {
	t.Run("returns slice with correct size", func(t *testing.T) {
		slice, cleanup := GetFloat64Slice(7)
		defer cleanup()

		require.Len(t, slice, 7)
		require.GreaterOrEqual(t, cap(slice), 7)
	})

	t.Run("grows when capacity insufficient", func(t *testing.T) {
		_, cleanup1 := GetFloat64Slice(2)
		cleanup1()

		slice, cleanup2 := GetFloat64Slice(512)
		defer cleanup2()

		require.Len(t, slice, 512)
	})

	t.Run("zero size", func(t *testing.T) {
		slice, cleanup := GetFloat64Slice(0)
		defer cleanup()

		require.Empty(t, slice)
	})
}
