package regression

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/ndgpemu/ndgpemu/errs"
	"github.com/ndgpemu/ndgpemu/format"
)

// GaussianProcess evaluates the posterior mean of a trained Gaussian process:
//
//	y = (k(x, X_train) · alpha) * yStd + yMean
type GaussianProcess struct {
	xTrain *mat.Dense
	alpha  *mat.Dense
	kernel Kernel
	yMean  []float64
	yStd   []float64
}

var _ Regressor = (*GaussianProcess)(nil)

// NewGaussianProcess creates a Gaussian process regressor from the n×d
// training inputs, the n×m dual coefficients and the kernel. yMean and yStd
// undo target normalization; nil means 0 and 1.
func NewGaussianProcess(xTrain, alpha *mat.Dense, kernel Kernel, yMean, yStd []float64) (*GaussianProcess, error) {
	if xTrain == nil || alpha == nil || kernel == nil {
		return nil, fmt.Errorf("%w: gaussian process needs training inputs, alpha and a kernel", errs.ErrShapeMismatch)
	}

	n, d := xTrain.Dims()
	na, m := alpha.Dims()
	if na != n {
		return nil, fmt.Errorf("%w: alpha has %d rows, training inputs %d", errs.ErrShapeMismatch, na, n)
	}
	if kd := kernel.Dim(); kd != 0 && kd != d {
		return nil, fmt.Errorf("%w: kernel dimension %d, training inputs %d", errs.ErrShapeMismatch, kd, d)
	}

	if yMean == nil {
		yMean = make([]float64, m)
	}
	if yStd == nil {
		yStd = make([]float64, m)
		for i := range yStd {
			yStd[i] = 1
		}
	}
	if len(yMean) != m || len(yStd) != m {
		return nil, fmt.Errorf("%w: target normalization length %d/%d, want %d",
			errs.ErrShapeMismatch, len(yMean), len(yStd), m)
	}

	return &GaussianProcess{
		xTrain: mat.DenseCopyOf(xTrain),
		alpha:  mat.DenseCopyOf(alpha),
		kernel: kernel,
		yMean:  slices.Clone(yMean),
		yStd:   slices.Clone(yStd),
	}, nil
}

// Predict evaluates the posterior mean at features.
func (g *GaussianProcess) Predict(features []float64) ([]float64, error) {
	if err := checkInput(g, features); err != nil {
		return nil, err
	}

	n, _ := g.xTrain.Dims()
	k := make([]float64, n)
	for i := range n {
		k[i] = g.kernel.Eval(features, g.xTrain.RawRowView(i))
	}

	out := make([]float64, len(g.yMean))
	y := mat.NewVecDense(len(out), out)
	y.MulVec(g.alpha.T(), mat.NewVecDense(n, k))

	for i := range out {
		out[i] = out[i]*g.yStd[i] + g.yMean[i]
	}

	return out, nil
}

// InputDim returns d.
func (g *GaussianProcess) InputDim() int {
	_, d := g.xTrain.Dims()
	return d
}

// OutputDim returns m.
func (g *GaussianProcess) OutputDim() int {
	return len(g.yMean)
}

// Type returns format.ModelGaussianProcess.
func (g *GaussianProcess) Type() format.ModelType {
	return format.ModelGaussianProcess
}
