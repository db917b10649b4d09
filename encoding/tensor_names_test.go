package encoding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndgpemu/ndgpemu/endian"
	"github.com/ndgpemu/ndgpemu/errs"
	"github.com/ndgpemu/ndgpemu/internal/hash"
)

func TestTensorNames_RoundTrip(t *testing.T) {
	names := []string{"coef", "intercept", "explained_variance"}

	for _, engine := range []endian.EndianEngine{endian.GetLittleEndianEngine(), endian.GetBigEndianEngine()} {
		data, err := EncodeTensorNames(names, engine)
		require.NoError(t, err)
		require.Len(t, data, 2+3*2+len("coef")+len("intercept")+len("explained_variance"))

		decoded, err := DecodeTensorNames(data, engine)
		require.NoError(t, err)
		require.Equal(t, names, decoded)
	}
}

func TestTensorNames_Empty(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	data, err := EncodeTensorNames(nil, engine)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0}, data)

	decoded, err := DecodeTensorNames(data, engine)
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestTensorNames_Invalid(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	_, err := EncodeTensorNames([]string{""}, engine)
	require.Error(t, err)

	_, err = EncodeTensorNames([]string{strings.Repeat("x", MaxTensorNameLength+1)}, engine)
	require.Error(t, err)

	data, err := EncodeTensorNames([]string{"values"}, engine)
	require.NoError(t, err)

	_, err = DecodeTensorNames(data[:1], engine)
	require.ErrorIs(t, err, errs.ErrPayloadTruncated)
	_, err = DecodeTensorNames(data[:3], engine)
	require.ErrorIs(t, err, errs.ErrPayloadTruncated)
	_, err = DecodeTensorNames(data[:len(data)-1], engine)
	require.ErrorIs(t, err, errs.ErrPayloadTruncated)
}

func TestVerifyTensorNames(t *testing.T) {
	names := []string{"mean", "components"}
	ids := []uint64{hash.ID("mean"), hash.ID("components")}

	require.NoError(t, VerifyTensorNames(names, ids))
	require.ErrorIs(t, VerifyTensorNames(names, ids[:1]), errs.ErrInvalidIndexOffsets)
	require.ErrorIs(t, VerifyTensorNames([]string{"components", "mean"}, ids), errs.ErrChecksumMismatch)
}
