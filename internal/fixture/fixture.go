// Package fixture builds a small synthetic emulator for tests: a linear
// regressor, a whitened PCA basis, a basis mean and a 20-point grid, plus an
// independent evaluation of the boost curve they define.
package fixture

import (
	"math"
	"os"
	"path/filepath"

	"github.com/ndgpemu/ndgpemu/artifact"
	"github.com/ndgpemu/ndgpemu/format"
	"github.com/ndgpemu/ndgpemu/params"
)

// Sizes of the synthetic emulator.
const (
	GridSize   = 20
	Components = 3
	Features   = 7
)

var explainedVariance = []float64{0.04, 0.01, 0.0025}

// Planck returns the Planck-like cosmology of the reference scenario.
func Planck() params.Cosmology {
	return params.Cosmology{
		params.Om: 0.3089,
		params.Ns: 0.9667,
		params.As: 2.066e-9,
		params.H:  0.6774,
		params.Ob: 0.0486,
	}
}

// Grid returns 20 log-spaced wavenumbers from 0.01 to 5.
func Grid() []float64 {
	grid := make([]float64, GridSize)
	for i := range grid {
		grid[i] = 0.01 * math.Pow(500, float64(i)/float64(GridSize-1))
	}
	grid[GridSize-1] = 5

	return grid
}

func coef() []float64 {
	c := make([]float64, Components*Features)
	for r := range Components {
		for j := range Features {
			c[r*Features+j] = 0.05 * math.Sin(float64(r+1)+0.7*float64(j))
		}
	}

	return c
}

func intercept() []float64 {
	return []float64{0.01, 0.02, 0.03}
}

func components() []float64 {
	c := make([]float64, Components*GridSize)
	for r := range Components {
		for j := range GridSize {
			c[r*GridSize+j] = math.Cos(0.3*float64((j+1)*(r+1))) / math.Sqrt(GridSize)
		}
	}

	return c
}

func pcaMean() []float64 {
	m := make([]float64, GridSize)
	for j := range m {
		m[j] = 0.002 * float64(j)
	}

	return m
}

// BasisMean returns the basis-mean vector.
func BasisMean() []float64 {
	grid := Grid()
	m := make([]float64, GridSize)
	for j, k := range grid {
		m[j] = -0.01 * math.Log10(k)
	}

	return m
}

// Artifacts returns the regressor, basis-mean, grid and basis artifacts.
func Artifacts() (regressor, basisMean, grid, basis *artifact.Artifact, err error) {
	coefT, err := artifact.NewTensor(artifact.TensorCoef, Components, Features, coef())
	if err != nil {
		return nil, nil, nil, nil, err
	}
	interceptT, err := artifact.Vector(artifact.TensorIntercept, intercept())
	if err != nil {
		return nil, nil, nil, nil, err
	}
	regressor, err = artifact.New(format.KindRegressor, format.ModelLinear, coefT, interceptT)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	meanT, err := artifact.Vector(artifact.TensorValues, BasisMean())
	if err != nil {
		return nil, nil, nil, nil, err
	}
	basisMean, err = artifact.New(format.KindBasisMean, format.ModelNone, meanT)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	gridT, err := artifact.Vector(artifact.TensorValues, Grid())
	if err != nil {
		return nil, nil, nil, nil, err
	}
	grid, err = artifact.New(format.KindGrid, format.ModelNone, gridT)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	componentsT, err := artifact.NewTensor(artifact.TensorComponents, Components, GridSize, components())
	if err != nil {
		return nil, nil, nil, nil, err
	}
	pcaMeanT, err := artifact.Vector(artifact.TensorMean, pcaMean())
	if err != nil {
		return nil, nil, nil, nil, err
	}
	varianceT, err := artifact.Vector(artifact.TensorExplainedVariance, explainedVariance)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	basis, err = artifact.New(format.KindBasis, format.ModelPCAWhitened, componentsT, pcaMeanT, varianceT)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return regressor, basisMean, grid, basis, nil
}

// WriteDir writes the four artifacts to dir under their default file names.
func WriteDir(dir string, opts ...artifact.EncoderOption) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	regressor, basisMean, grid, basis, err := Artifacts()
	if err != nil {
		return err
	}

	files := artifact.DefaultFiles()
	for name, a := range map[string]*artifact.Artifact{
		files.Regressor: regressor,
		files.BasisMean: basisMean,
		files.Grid:      grid,
		files.Basis:     basis,
	} {
		if err := artifact.WriteFile(filepath.Join(dir, name), a, opts...); err != nil {
			return err
		}
	}

	return nil
}

// Reference evaluates the boost curve of the synthetic emulator with plain
// loops, independently of the regression, reduction and artifact packages.
func Reference(h0rc, z float64, cosmo params.Cosmology) []float64 {
	scale := func(v, lo, hi float64) float64 { return (v - lo) / (hi - lo) }

	features := []float64{
		0.2 / h0rc,
		scale(cosmo[params.Om], 0.28, 0.36),
		scale(cosmo[params.Ns], 0.92, 1),
		scale(cosmo[params.As], 1.7e-9, 2.5e-9),
		scale(cosmo[params.H], 0.61, 0.73),
		scale(cosmo[params.Ob], 0.04, 0.06),
		1 / (1 + z),
	}

	c := coef()
	coeffs := intercept()
	for r := range Components {
		for j, f := range features {
			coeffs[r] += c[r*Features+j] * f
		}
	}

	comp := components()
	mean := pcaMean()
	basisMean := BasisMean()
	out := make([]float64, GridSize)
	for j := range GridSize {
		x := mean[j]
		for r := range Components {
			x += coeffs[r] * math.Sqrt(explainedVariance[r]) * comp[r*GridSize+j]
		}
		out[j] = math.Pow(10, -3*(x+basisMean[j])) + 1
	}

	return out
}
