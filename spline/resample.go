// Package spline resamples a curve known on a strictly increasing grid onto
// arbitrary query points with a degree-1 spline.
package spline

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/ndgpemu/ndgpemu/errs"
)

// RaiseHint is appended to range errors produced by the Raise policy.
const RaiseHint = `set an extrapolation rule with the "ext" keyword (extrapolate, zeros, raise or const)`

// Resampler evaluates a piecewise linear fit with an extrapolation policy.
type Resampler struct {
	pl  interp.PiecewiseLinear
	xs  []float64
	ys  []float64
	ext Extrapolation
}

// NewResampler fits xs, ys. xs must be strictly increasing with at least two points.
func NewResampler(xs, ys []float64, ext Extrapolation) (*Resampler, error) {
	if !ext.Valid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidExtrapolation, ext)
	}
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d knots, %d values", errs.ErrDimensionMismatch, len(xs), len(ys))
	}
	if err := ValidateGrid(xs); err != nil {
		return nil, err
	}

	r := &Resampler{xs: xs, ys: ys, ext: ext}
	if err := r.pl.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("fit piecewise linear spline: %w", err)
	}

	return r, nil
}

// Resample fits (xNative, yNative) and evaluates it at every xQuery.
func Resample(xNative, yNative, xQuery []float64, ext Extrapolation) ([]float64, error) {
	r, err := NewResampler(xNative, yNative, ext)
	if err != nil {
		return nil, err
	}

	return r.EvalAll(xQuery)
}

// Eval evaluates the spline at x.
func (r *Resampler) Eval(x float64) (float64, error) {
	if math.IsNaN(x) {
		return math.NaN(), nil
	}

	n := len(r.xs)
	lo, hi := r.xs[0], r.xs[n-1]
	if x >= lo && x <= hi {
		return r.pl.Predict(x), nil
	}

	switch r.ext {
	case Extrapolate:
		if x < lo {
			return line(r.xs[0], r.ys[0], r.xs[1], r.ys[1], x), nil
		}
		return line(r.xs[n-2], r.ys[n-2], r.xs[n-1], r.ys[n-1], x), nil
	case Zeros:
		return 0, nil
	case Const:
		if x < lo {
			return r.ys[0], nil
		}
		return r.ys[n-1], nil
	default:
		return 0, &errs.RangeError{Param: "k", Value: x, Min: lo, Max: hi, Hint: RaiseHint}
	}
}

// EvalAll evaluates the spline at every query point. Under Raise the whole
// query is rejected when any point is outside the knot range.
func (r *Resampler) EvalAll(xQuery []float64) ([]float64, error) {
	if r.ext == Raise {
		if err := CheckRange(r.xs, xQuery); err != nil {
			return nil, err
		}
	}

	out := make([]float64, len(xQuery))
	for i, x := range xQuery {
		v, err := r.Eval(x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// CheckRange reports a *errs.RangeError for the smallest or largest query
// point outside [grid[0], grid[len-1]].
func CheckRange(grid, xQuery []float64) error {
	if len(grid) == 0 || len(xQuery) == 0 {
		return nil
	}

	lo, hi := grid[0], grid[len(grid)-1]
	qMin, qMax := xQuery[0], xQuery[0]
	for _, x := range xQuery[1:] {
		qMin = math.Min(qMin, x)
		qMax = math.Max(qMax, x)
	}

	if qMin < lo {
		return &errs.RangeError{Param: "k", Value: qMin, Min: lo, Max: hi, Hint: RaiseHint}
	}
	if qMax > hi {
		return &errs.RangeError{Param: "k", Value: qMax, Min: lo, Max: hi, Hint: RaiseHint}
	}

	return nil
}

// ValidateGrid checks that xs has at least two strictly increasing values.
func ValidateGrid(xs []float64) error {
	if len(xs) < 2 {
		return errs.ErrGridTooShort
	}
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return fmt.Errorf("%w: x[%d]=%g, x[%d]=%g", errs.ErrGridNotIncreasing, i-1, xs[i-1], i, xs[i])
		}
	}

	return nil
}

func line(x0, y0, x1, y1, x float64) float64 {
	return y0 + (y1-y0)/(x1-x0)*(x-x0)
}
