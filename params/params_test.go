package params

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndgpemu/ndgpemu/errs"
)

func TestBounds_MinBelowMax(t *testing.T) {
	for name, b := range Bounds() {
		require.Less(t, b.Min, b.Max, name)
	}
}

func TestBounds_Copy(t *testing.T) {
	table := Bounds()
	table[Om] = Bound{Min: -1, Max: 1}

	b, err := Lookup(Om)
	require.NoError(t, err)
	require.Equal(t, Bound{Min: 0.28, Max: 0.36}, b)

	_, err = Lookup("w0")
	require.ErrorIs(t, err, errs.ErrUnknownParameter)
}

func TestRequired(t *testing.T) {
	require.Equal(t, []string{"Om", "ns", "As", "h", "Ob"}, Required())

	keys := Required()
	keys[0] = "x"
	require.Equal(t, Om, Required()[0])
}

func TestRescale_RoundTrip(t *testing.T) {
	for _, key := range Required() {
		b, err := Lookup(key)
		require.NoError(t, err)

		lo, err := Rescale(Cosmology{key: b.Min}, key)
		require.NoError(t, err)
		require.InDelta(t, 0, lo, 1e-12, key)

		hi, err := Rescale(Cosmology{key: b.Max}, key)
		require.NoError(t, err)
		require.InDelta(t, 1, hi, 1e-12, key)

		mid, err := Rescale(Cosmology{key: (b.Min + b.Max) / 2}, key)
		require.NoError(t, err)
		require.InDelta(t, 0.5, mid, 1e-9, key)
	}
}

func TestRescale_OutOfRange(t *testing.T) {
	scaled, err := Rescale(Cosmology{Om: 0.20}, Om)

	var rangeErr *errs.RangeError
	require.ErrorAs(t, err, &rangeErr)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
	require.Equal(t, Om, rangeErr.Param)
	require.Equal(t, 0.20, rangeErr.Value)
	require.Equal(t, 0.28, rangeErr.Min)
	require.Equal(t, 0.36, rangeErr.Max)
	require.InDelta(t, -1, scaled, 1e-9)
}

func TestRescale_NaN(t *testing.T) {
	for _, key := range Required() {
		t.Run(key, func(t *testing.T) {
			_, err := Rescale(Cosmology{key: math.NaN()}, key)

			var rangeErr *errs.RangeError
			require.ErrorAs(t, err, &rangeErr)
			require.Equal(t, key, rangeErr.Param)
			require.True(t, math.IsNaN(rangeErr.Value))
		})
	}
}

func TestRescale_Missing(t *testing.T) {
	_, err := Rescale(Cosmology{}, H)
	require.ErrorIs(t, err, errs.ErrMissingParameter)

	_, err = Rescale(Cosmology{"w0": -1}, "w0")
	require.ErrorIs(t, err, errs.ErrUnknownParameter)
}

func TestMissingKeys(t *testing.T) {
	cosmo := Cosmology{Om: 0.3, Ns: 0.96, As: 2e-9, "extra": 1}
	require.Equal(t, []string{H, Ob}, MissingKeys(cosmo))
	require.Equal(t, Required(), MissingKeys(nil))

	cosmo[H] = 0.7
	cosmo[Ob] = 0.05
	require.Empty(t, MissingKeys(cosmo))
}

func TestCheck(t *testing.T) {
	require.NoError(t, Check(Z, 0))
	require.NoError(t, Check(Z, 2))
	require.NoError(t, Check(H0rc, 0.2))
	require.ErrorIs(t, Check(Z, 2.5), errs.ErrOutOfRange)
	require.ErrorIs(t, Check(H0rc, 0.1), errs.ErrOutOfRange)
	require.ErrorIs(t, Check("w0", 0), errs.ErrUnknownParameter)
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want Policy
		ok   bool
	}{
		{"strict", PolicyStrict, true},
		{"WARN", PolicyWarn, true},
		{"", PolicyStrict, true},
		{"ignore", PolicyStrict, false},
	}

	for _, tt := range tests {
		got, ok := ParsePolicy(tt.in)
		require.Equal(t, tt.ok, ok, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}

	require.Equal(t, "warn", PolicyWarn.String())
	require.Equal(t, "unknown", Policy(9).String())
}
