package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("no growth when capacity suffices", func(t *testing.T) {
		bb := NewByteBuffer(64)
		bb.Grow(32)
		require.Equal(t, 64, bb.Cap())
	})

	t.Run("small buffers grow by default size", func(t *testing.T) {
		bb := NewByteBuffer(8)
		_, _ = bb.Write([]byte("12345678"))
		bb.Grow(1)

		require.Equal(t, 8+ArtifactBufferDefaultSize, bb.Cap())
		require.Equal(t, []byte("12345678"), bb.Bytes())
	})

	t.Run("large request grows to fit", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(ArtifactBufferDefaultSize * 2)
		require.GreaterOrEqual(t, bb.Cap(), ArtifactBufferDefaultSize*2)
	})
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.ExtendOrGrow(16)

	require.Equal(t, 16, bb.Len())
	copy(bb.Slice(0, 16), bytes.Repeat([]byte{0xAB}, 16))
	require.Equal(t, byte(0xAB), bb.Bytes()[15])
}

func TestByteBuffer_SlicePanics(t *testing.T) {
	bb := NewByteBuffer(4)
	require.Panics(t, func() { bb.Slice(0, 5) })
	require.Panics(t, func() { bb.Slice(3, 2) })
}

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(32, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	_, _ = bb.Write([]byte("data"))
	p.Put(bb)

	again := p.Get()
	require.Equal(t, 0, again.Len())

	require.NotPanics(t, func() { p.Put(nil) })
	require.NotPanics(t, func() { p.Put(NewByteBuffer(128)) })

	buf := GetArtifactBuffer()
	require.NotNil(t, buf)
	PutArtifactBuffer(buf)
}
