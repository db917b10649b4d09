package artifact

import (
	"fmt"

	"github.com/ndgpemu/ndgpemu/errs"
	"github.com/ndgpemu/ndgpemu/format"
	"github.com/ndgpemu/ndgpemu/reduction"
	"github.com/ndgpemu/ndgpemu/regression"
)

// Tensor names used by the trained artifacts.
const (
	TensorCoef              = "coef"
	TensorIntercept         = "intercept"
	TensorXTrain            = "x_train"
	TensorAlpha             = "alpha"
	TensorLengthScale       = "length_scale"
	TensorAmplitude         = "amplitude"
	TensorNu                = "nu"
	TensorYMean             = "y_mean"
	TensorYStd              = "y_std"
	TensorComponents        = "components"
	TensorMean              = "mean"
	TensorExplainedVariance = "explained_variance"
	TensorValues            = "values"
)

// BuildRegressor creates the regressor described by a regressor artifact.
func BuildRegressor(a *Artifact) (regression.Regressor, error) {
	if a.Kind() != format.KindRegressor {
		return nil, fmt.Errorf("%w: got %s, want %s", errs.ErrKindMismatch, a.Kind(), format.KindRegressor)
	}

	switch a.Model() {
	case format.ModelLinear:
		coef, err := a.Tensor(TensorCoef)
		if err != nil {
			return nil, err
		}
		var intercept []float64
		if a.Has(TensorIntercept) {
			if intercept, err = a.Vector(TensorIntercept); err != nil {
				return nil, err
			}
		}

		return regression.NewLinear(coef.Dense(), intercept)

	case format.ModelGaussianProcess:
		return buildGaussianProcess(a)

	default:
		return nil, fmt.Errorf("%w: %s regressor", errs.ErrUnsupportedModel, a.Model())
	}
}

func buildGaussianProcess(a *Artifact) (regression.Regressor, error) {
	xTrain, err := a.Tensor(TensorXTrain)
	if err != nil {
		return nil, err
	}
	alpha, err := a.Tensor(TensorAlpha)
	if err != nil {
		return nil, err
	}
	lengthScale, err := a.Vector(TensorLengthScale)
	if err != nil {
		return nil, err
	}
	amplitude, err := a.Scalar(TensorAmplitude)
	if err != nil {
		return nil, err
	}

	nu := regression.NuRBF
	if a.Has(TensorNu) {
		if nu, err = a.Scalar(TensorNu); err != nil {
			return nil, err
		}
	}

	var yMean, yStd []float64
	if a.Has(TensorYMean) {
		if yMean, err = a.Vector(TensorYMean); err != nil {
			return nil, err
		}
	}
	if a.Has(TensorYStd) {
		if yStd, err = a.Vector(TensorYStd); err != nil {
			return nil, err
		}
	}

	kernel, err := regression.NewKernel(lengthScale, amplitude, nu)
	if err != nil {
		return nil, err
	}

	return regression.NewGaussianProcess(xTrain.Dense(), alpha.Dense(), kernel, yMean, yStd)
}

// BuildBasis creates the inverse transform described by a basis artifact.
func BuildBasis(a *Artifact) (reduction.InverseTransformer, error) {
	if a.Kind() != format.KindBasis {
		return nil, fmt.Errorf("%w: got %s, want %s", errs.ErrKindMismatch, a.Kind(), format.KindBasis)
	}

	components, err := a.Tensor(TensorComponents)
	if err != nil {
		return nil, err
	}
	mean, err := a.Vector(TensorMean)
	if err != nil {
		return nil, err
	}

	switch a.Model() {
	case format.ModelPCA:
		return reduction.NewPCA(components.Dense(), mean, nil)
	case format.ModelPCAWhitened:
		variance, err := a.Vector(TensorExplainedVariance)
		if err != nil {
			return nil, err
		}
		return reduction.NewPCA(components.Dense(), mean, variance)
	default:
		return nil, fmt.Errorf("%w: %s basis", errs.ErrUnsupportedModel, a.Model())
	}
}

// BuildVector returns the values tensor of a basis-mean or grid artifact.
func BuildVector(a *Artifact, kind format.ArtifactKind) ([]float64, error) {
	if a.Kind() != kind {
		return nil, fmt.Errorf("%w: got %s, want %s", errs.ErrKindMismatch, a.Kind(), kind)
	}

	return a.Vector(TensorValues)
}
