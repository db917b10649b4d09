package spline

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndgpemu/ndgpemu/errs"
)

var (
	knots  = []float64{0.01, 0.1, 1, 5}
	values = []float64{1.0, 1.2, 1.1, 1.05}
)

func TestResample_Identity(t *testing.T) {
	for _, ext := range []Extrapolation{Extrapolate, Zeros, Raise, Const} {
		t.Run(ext.String(), func(t *testing.T) {
			out, err := Resample(knots, values, knots, ext)
			require.NoError(t, err)
			require.Equal(t, values, out)
		})
	}
}

func TestResample_Interior(t *testing.T) {
	out, err := Resample(knots, values, []float64{0.055, 3}, Raise)
	require.NoError(t, err)
	require.InDelta(t, 1.1, out[0], 1e-12)
	require.InDelta(t, 1.1+(1.05-1.1)*2/4, out[1], 1e-12)
}

func TestResample_Policies(t *testing.T) {
	below := 0.001
	above := 9.0

	tests := []struct {
		ext       Extrapolation
		wantBelow float64
		wantAbove float64
	}{
		{
			ext:       Extrapolate,
			wantBelow: 1.0 + (1.2-1.0)/(0.1-0.01)*(below-0.01),
			wantAbove: 1.1 + (1.05-1.1)/(5-1)*(above-1),
		},
		{ext: Zeros, wantBelow: 0, wantAbove: 0},
		{ext: Const, wantBelow: 1.0, wantAbove: 1.05},
	}

	for _, tt := range tests {
		t.Run(tt.ext.String(), func(t *testing.T) {
			out, err := Resample(knots, values, []float64{below, 0.1, above}, tt.ext)
			require.NoError(t, err)
			require.InDelta(t, tt.wantBelow, out[0], 1e-12)
			require.Equal(t, 1.2, out[1])
			require.InDelta(t, tt.wantAbove, out[2], 1e-12)
		})
	}
}

func TestResample_Raise(t *testing.T) {
	_, err := Resample(knots, values, []float64{0.5, 0.001}, Raise)

	var rangeErr *errs.RangeError
	require.ErrorAs(t, err, &rangeErr)
	require.Equal(t, "k", rangeErr.Param)
	require.Equal(t, 0.001, rangeErr.Value)
	require.Equal(t, 0.01, rangeErr.Min)
	require.Equal(t, 5.0, rangeErr.Max)
	require.Contains(t, err.Error(), "extrapolation")

	_, err = Resample(knots, values, []float64{6}, Raise)
	require.ErrorAs(t, err, &rangeErr)
	require.Equal(t, 6.0, rangeErr.Value)
}

func TestResample_EmptyQuery(t *testing.T) {
	out, err := Resample(knots, values, nil, Raise)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestResample_NaN(t *testing.T) {
	out, err := Resample(knots, values, []float64{math.NaN()}, Zeros)
	require.NoError(t, err)
	require.True(t, math.IsNaN(out[0]))
}

func TestResample_InvalidInput(t *testing.T) {
	_, err := Resample([]float64{1}, []float64{1}, nil, Raise)
	require.ErrorIs(t, err, errs.ErrGridTooShort)

	_, err = Resample([]float64{1, 1}, []float64{1, 2}, nil, Raise)
	require.ErrorIs(t, err, errs.ErrGridNotIncreasing)

	_, err = Resample([]float64{1, 2}, []float64{1}, nil, Raise)
	require.ErrorIs(t, err, errs.ErrDimensionMismatch)

	_, err = Resample(knots, values, nil, Extrapolation(7))
	require.ErrorIs(t, err, errs.ErrInvalidExtrapolation)
}

func TestParseExtrapolation(t *testing.T) {
	tests := []struct {
		in   string
		want Extrapolation
	}{
		{"", Raise},
		{"0", Extrapolate},
		{"extrapolate", Extrapolate},
		{"1", Zeros},
		{"Zeros", Zeros},
		{"2", Raise},
		{"raise", Raise},
		{"3", Const},
		{" const ", Const},
	}

	for _, tt := range tests {
		got, err := ParseExtrapolation(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseExtrapolation("4")
	require.ErrorIs(t, err, errs.ErrInvalidExtrapolation)
}

func TestExtrapolation_JSON(t *testing.T) {
	var req struct {
		Ext Extrapolation `json:"ext"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"ext":"const"}`), &req))
	require.Equal(t, Const, req.Ext)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	require.JSONEq(t, `{"ext":"const"}`, string(data))

	require.Error(t, json.Unmarshal([]byte(`{"ext":"linear"}`), &req))
}

func TestExtrapolation_JSONCodes(t *testing.T) {
	tests := []struct {
		input string
		want  Extrapolation
	}{
		{input: `{"ext":0}`, want: Extrapolate},
		{input: `{"ext":1}`, want: Zeros},
		{input: `{"ext": 3 }`, want: Const},
		{input: `{"ext":"2"}`, want: Raise},
		{input: `{"ext":"ZEROS"}`, want: Zeros},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var req struct {
				Ext *Extrapolation `json:"ext"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.input), &req))
			require.NotNil(t, req.Ext)
			require.Equal(t, tt.want, *req.Ext)
		})
	}

	for _, bad := range []string{`{"ext":4}`, `{"ext":1.5}`, `{"ext":-1}`, `{"ext":true}`, `{"ext":[1]}`} {
		t.Run(bad, func(t *testing.T) {
			var req struct {
				Ext Extrapolation `json:"ext"`
			}
			err := json.Unmarshal([]byte(bad), &req)
			require.ErrorIs(t, err, errs.ErrInvalidExtrapolation)
		})
	}

	var req struct {
		Ext *Extrapolation `json:"ext"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"ext":null}`), &req))
	require.Nil(t, req.Ext)
}
