package reduction

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/ndgpemu/ndgpemu/errs"
	"github.com/ndgpemu/ndgpemu/format"
)

// InverseTransformer maps a coefficient vector to the full output space.
type InverseTransformer interface {
	// InverseTransform returns a freshly allocated vector of length OutputDim.
	InverseTransform(coeffs []float64) ([]float64, error)
	// Components returns the expected coefficient vector length.
	Components() int
	// OutputDim returns the output vector length.
	OutputDim() int
	// Type returns the model type stored in artifact files.
	Type() format.ModelType
}

// PCA is the inverse of a (possibly whitened) principal component projection.
type PCA struct {
	// basis holds the component rows, pre-scaled when whitened.
	basis    *mat.Dense
	mean     []float64
	whitened bool
}

var _ InverseTransformer = (*PCA)(nil)

// NewPCA creates the inverse transform from c×D components and a mean of
// length D. A non-nil explainedVariance of length c makes it whitened.
func NewPCA(components *mat.Dense, mean, explainedVariance []float64) (*PCA, error) {
	if components == nil {
		return nil, fmt.Errorf("%w: nil components", errs.ErrShapeMismatch)
	}

	c, d := components.Dims()
	if len(mean) != d {
		return nil, fmt.Errorf("%w: mean length %d, components have %d columns", errs.ErrShapeMismatch, len(mean), d)
	}

	basis := mat.DenseCopyOf(components)
	if explainedVariance != nil {
		if len(explainedVariance) != c {
			return nil, fmt.Errorf("%w: explained variance length %d, want %d",
				errs.ErrShapeMismatch, len(explainedVariance), c)
		}
		for i, v := range explainedVariance {
			if v < 0 {
				return nil, fmt.Errorf("explained variance %d is negative: %g", i, v)
			}
			row := basis.RawRowView(i)
			s := math.Sqrt(v)
			for j := range row {
				row[j] *= s
			}
		}
	}

	return &PCA{
		basis:    basis,
		mean:     slices.Clone(mean),
		whitened: explainedVariance != nil,
	}, nil
}

// InverseTransform returns coeffs · components + mean.
func (p *PCA) InverseTransform(coeffs []float64) ([]float64, error) {
	if len(coeffs) != p.Components() {
		return nil, fmt.Errorf("%w: pca expects %d coefficients, got %d",
			errs.ErrDimensionMismatch, p.Components(), len(coeffs))
	}

	out := make([]float64, len(p.mean))
	x := mat.NewVecDense(len(out), out)
	x.MulVec(p.basis.T(), mat.NewVecDense(len(coeffs), slices.Clone(coeffs)))

	for i, m := range p.mean {
		out[i] += m
	}

	return out, nil
}

// Components returns c.
func (p *PCA) Components() int {
	c, _ := p.basis.Dims()
	return c
}

// OutputDim returns D.
func (p *PCA) OutputDim() int {
	return len(p.mean)
}

// Whitened reports whether the components are scaled by the explained variance.
func (p *PCA) Whitened() bool {
	return p.whitened
}

// Type returns format.ModelPCA or format.ModelPCAWhitened.
func (p *PCA) Type() format.ModelType {
	if p.whitened {
		return format.ModelPCAWhitened
	}

	return format.ModelPCA
}
