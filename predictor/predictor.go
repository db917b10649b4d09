// Package predictor evaluates the nDGP boost factor B(k) = P_nDGP(k) / P_GR(k)
// from a loaded artifact store.
//
// A prediction runs the pipeline
//
//	inputs -> feature vector -> regressor -> inverse basis -> + basis mean
//	       -> 10^(-3x) + 1 -> optional resampling onto k_out
//
// The feature vector is [Wrc, Om', ns', As', h', Ob', a] where Wrc = 0.2/H0rc,
// the primed parameters are rescaled onto [0, 1] and a = 1/(1+z).
package predictor

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/ndgpemu/ndgpemu/artifact"
	"github.com/ndgpemu/ndgpemu/errs"
	"github.com/ndgpemu/ndgpemu/internal/options"
	"github.com/ndgpemu/ndgpemu/internal/pool"
	"github.com/ndgpemu/ndgpemu/params"
	"github.com/ndgpemu/ndgpemu/spline"
)

// BoostPredictor evaluates boost curves. It is immutable and safe for concurrent use.
type BoostPredictor struct {
	store  *artifact.Store
	policy params.Policy
	warn   func(error)
}

// New creates a predictor over store.
func New(store *artifact.Store, opts ...Option) (*BoostPredictor, error) {
	if store == nil {
		return nil, errors.New("predictor needs an artifact store")
	}

	cfg := &config{policy: params.PolicyStrict}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &BoostPredictor{
		store:  store,
		policy: cfg.policy,
		warn:   cfg.warn,
	}, nil
}

// Store returns the artifact store.
func (p *BoostPredictor) Store() *artifact.Store {
	return p.store
}

// Policy returns the range policy.
func (p *BoostPredictor) Policy() params.Policy {
	return p.policy
}

// Grid returns a copy of the native wavenumber grid.
func (p *BoostPredictor) Grid() []float64 {
	return slices.Clone(p.store.Grid())
}

// Predict returns the boost factor on the native grid for screening
// parameter h0rc, redshift z and cosmology cosmo.
func (p *BoostPredictor) Predict(h0rc, z float64, cosmo params.Cosmology) ([]float64, error) {
	features, cleanup := pool.GetFloat64Slice(artifact.FeatureDim)
	defer cleanup()

	if err := p.buildFeatures(features, h0rc, z, cosmo); err != nil {
		return nil, err
	}

	// features goes back to the pool on return.
	coeffs, err := p.store.Regressor().Predict(features)
	if err != nil {
		return nil, fmt.Errorf("regressor: %w", err)
	}

	curve, err := p.store.Basis().InverseTransform(coeffs)
	if err != nil {
		return nil, fmt.Errorf("inverse basis transform: %w", err)
	}

	for i, m := range p.store.BasisMean() {
		curve[i] = math.Pow(10, -3*(curve[i]+m)) + 1
	}

	return curve, nil
}

// PredictAt returns the boost factor resampled onto kOut with the given
// extrapolation policy. A nil kOut returns the native-grid curve.
//
// Under spline.Raise any kOut value outside the native grid fails with a
// *errs.RangeError naming the valid range.
func (p *BoostPredictor) PredictAt(h0rc, z float64, cosmo params.Cosmology, kOut []float64, ext spline.Extrapolation) ([]float64, error) {
	if !ext.Valid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidExtrapolation, ext)
	}

	curve, err := p.Predict(h0rc, z, cosmo)
	if err != nil {
		return nil, err
	}
	if kOut == nil {
		return curve, nil
	}

	grid := p.store.Grid()
	if ext == spline.Raise {
		if err := spline.CheckRange(grid, kOut); err != nil {
			return nil, err
		}
	}

	return spline.Resample(grid, curve, kOut, ext)
}

// buildFeatures validates the inputs and fills features.
func (p *BoostPredictor) buildFeatures(features []float64, h0rc, z float64, cosmo params.Cosmology) error {
	if err := p.check(params.Check(params.Z, z)); err != nil {
		return err
	}
	a := 1 / (1 + z)

	if err := p.check(params.Check(params.H0rc, h0rc)); err != nil {
		return err
	}
	// Wrc is the lower H0rc bound over H0rc, not a min-max rescale.
	h0rcBound, _ := params.Lookup(params.H0rc)
	features[0] = h0rcBound.Min / h0rc

	if missing := params.MissingKeys(cosmo); len(missing) > 0 {
		return &errs.MissingParameterError{Keys: missing}
	}

	for i, key := range params.Required() {
		scaled, err := params.Rescale(cosmo, key)
		if err = p.check(err); err != nil {
			return err
		}
		features[i+1] = scaled
	}
	features[len(features)-1] = a

	return nil
}

// check passes range errors to the warning handler under PolicyWarn.
// NaN inputs fail under either policy.
func (p *BoostPredictor) check(err error) error {
	if err == nil {
		return nil
	}

	var rangeErr *errs.RangeError
	if p.policy == params.PolicyWarn && errors.As(err, &rangeErr) && !math.IsNaN(rangeErr.Value) {
		if p.warn != nil {
			p.warn(err)
		}
		return nil
	}

	return err
}
