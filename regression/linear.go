package regression

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/ndgpemu/ndgpemu/errs"
	"github.com/ndgpemu/ndgpemu/format"
)

// Linear implements y = coef · x + intercept.
type Linear struct {
	coef      *mat.Dense
	intercept []float64
}

var _ Regressor = (*Linear)(nil)

// NewLinear creates a linear regressor from an m×d coefficient matrix and an
// intercept of length m. A nil intercept means zero.
func NewLinear(coef *mat.Dense, intercept []float64) (*Linear, error) {
	if coef == nil {
		return nil, fmt.Errorf("%w: nil coefficient matrix", errs.ErrShapeMismatch)
	}

	m, _ := coef.Dims()
	if intercept == nil {
		intercept = make([]float64, m)
	}
	if len(intercept) != m {
		return nil, fmt.Errorf("%w: intercept length %d, want %d", errs.ErrShapeMismatch, len(intercept), m)
	}

	return &Linear{
		coef:      mat.DenseCopyOf(coef),
		intercept: slices.Clone(intercept),
	}, nil
}

// Predict evaluates the regressor.
func (l *Linear) Predict(features []float64) ([]float64, error) {
	if err := checkInput(l, features); err != nil {
		return nil, err
	}

	out := make([]float64, len(l.intercept))
	y := mat.NewVecDense(len(out), out)
	y.MulVec(l.coef, mat.NewVecDense(len(features), slices.Clone(features)))

	for i, b := range l.intercept {
		out[i] += b
	}

	return out, nil
}

// InputDim returns d.
func (l *Linear) InputDim() int {
	_, d := l.coef.Dims()
	return d
}

// OutputDim returns m.
func (l *Linear) OutputDim() int {
	return len(l.intercept)
}

// Type returns format.ModelLinear.
func (l *Linear) Type() format.ModelType {
	return format.ModelLinear
}
