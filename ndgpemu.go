// Package ndgpemu emulates the nDGP boost factor
//
//	B(k) = P_nDGP(k) / P_GR(k)
//
// as a function of the screening parameter H0rc, the redshift z and five
// cosmological parameters (Om, ns, As, h, Ob), by evaluating a pretrained
// surrogate model instead of running an N-body simulation.
//
// # Basic Usage
//
//	p, err := ndgpemu.Load("/path/to/artifacts")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cosmo := params.Cosmology{"Om": 0.3089, "ns": 0.9667, "As": 2.066e-9, "h": 0.6774, "Ob": 0.0486}
//	boost, err := p.Predict(1.0, 1.0, cosmo)
//
// Resampling onto custom wavenumbers:
//
//	boost, err := p.PredictAt(1.0, 1.0, cosmo, []float64{0.05, 0.1, 0.5}, spline.Const)
//
// # Package Structure
//
// This package provides top-level wrappers around the predictor and artifact
// packages. The artifact directory holds four files (regressor.art,
// basis_mean.art, grid.art and basis.art) in the container format of the
// section package; the ndgpemu command converts exported arrays into it.
package ndgpemu

import (
	"sync"

	"github.com/ndgpemu/ndgpemu/artifact"
	"github.com/ndgpemu/ndgpemu/internal/hash"
	"github.com/ndgpemu/ndgpemu/params"
	"github.com/ndgpemu/ndgpemu/predictor"
	"github.com/ndgpemu/ndgpemu/spline"
)

// Load reads the artifacts in dir and returns a predictor with the default options.
func Load(dir string, opts ...artifact.LoadOption) (*predictor.BoostPredictor, error) {
	store, err := artifact.Load(dir, opts...)
	if err != nil {
		return nil, err
	}

	return predictor.New(store)
}

// MustLoad is like Load but panics on error.
func MustLoad(dir string, opts ...artifact.LoadOption) *predictor.BoostPredictor {
	p, err := Load(dir, opts...)
	if err != nil {
		panic(err)
	}

	return p
}

// loaders caches one lazily loaded store per artifact directory.
var loaders sync.Map

func shared(dir string) (*predictor.BoostPredictor, error) {
	l, _ := loaders.LoadOrStore(dir, artifact.NewLoader(dir))
	store, err := l.(*artifact.Loader).Get()
	if err != nil {
		return nil, err
	}

	return predictor.New(store)
}

// Predict evaluates the boost factor on the native grid of the artifacts in dir.
//
// The artifacts are loaded on the first call for each dir and shared by all
// later calls, including a failed load.
func Predict(dir string, h0rc, z float64, cosmo params.Cosmology) ([]float64, error) {
	p, err := shared(dir)
	if err != nil {
		return nil, err
	}

	return p.Predict(h0rc, z, cosmo)
}

// PredictAt is like Predict but resamples the curve onto kOut.
func PredictAt(dir string, h0rc, z float64, cosmo params.Cosmology, kOut []float64, ext spline.Extrapolation) ([]float64, error) {
	p, err := shared(dir)
	if err != nil {
		return nil, err
	}

	return p.PredictAt(h0rc, z, cosmo, kOut, ext)
}

// TensorID returns the 64-bit id under which a tensor name is indexed in artifact files.
func TensorID(name string) uint64 {
	return hash.ID(name)
}
