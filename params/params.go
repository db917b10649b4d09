// Package params holds the validity bounds of the emulator inputs and the
// min-max rescaling applied before they reach the regressor.
package params

import (
	"fmt"
	"maps"
	"slices"

	"github.com/ndgpemu/ndgpemu/errs"
)

// Parameter names.
const (
	H0rc = "H0rc"
	Om   = "Om"
	Ns   = "ns"
	As   = "As"
	H    = "h"
	Ob   = "Ob"
	A    = "a"
	Z    = "z"
)

// Bound is the inclusive interval a parameter was trained on.
type Bound struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether v lies in [Min, Max].
func (b Bound) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Rescale maps v linearly so that Min becomes 0 and Max becomes 1.
func (b Bound) Rescale(v float64) float64 {
	return (v - b.Min) / (b.Max - b.Min)
}

var bounds = map[string]Bound{
	H0rc: {Min: 0.2, Max: 20},
	Om:   {Min: 0.28, Max: 0.36},
	Ns:   {Min: 0.92, Max: 1},
	As:   {Min: 1.7e-9, Max: 2.5e-9},
	H:    {Min: 0.61, Max: 0.73},
	Ob:   {Min: 0.04, Max: 0.06},
	A:    {Min: 1.0 / 3, Max: 1},
	Z:    {Min: 0, Max: 2},
}

var required = []string{Om, Ns, As, H, Ob}

// Bounds returns a copy of the bounds table.
func Bounds() map[string]Bound {
	return maps.Clone(bounds)
}

// Lookup returns the bound of name.
func Lookup(name string) (Bound, error) {
	b, ok := bounds[name]
	if !ok {
		return Bound{}, fmt.Errorf("%w: %q", errs.ErrUnknownParameter, name)
	}

	return b, nil
}

// Required returns the cosmological parameters every prediction needs, in
// the order they enter the feature vector.
func Required() []string {
	return slices.Clone(required)
}

// Cosmology maps parameter names to values. Keys outside Required are ignored.
type Cosmology map[string]float64

// MissingKeys returns the required keys absent from cosmo in Required order.
func MissingKeys(cosmo Cosmology) []string {
	var missing []string
	for _, key := range required {
		if _, ok := cosmo[key]; !ok {
			missing = append(missing, key)
		}
	}

	return missing
}

// Check validates value against the bound of key.
func Check(key string, value float64) error {
	b, err := Lookup(key)
	if err != nil {
		return err
	}
	if !b.Contains(value) {
		return &errs.RangeError{Param: key, Value: value, Min: b.Min, Max: b.Max}
	}

	return nil
}

// Rescale returns cosmo[key] mapped onto [0, 1] by the bound of key.
//
// When the rescaled value falls outside [0, 1] it is returned together with a
// *errs.RangeError carrying the raw value.
func Rescale(cosmo Cosmology, key string) (float64, error) {
	b, err := Lookup(key)
	if err != nil {
		return 0, err
	}

	value, ok := cosmo[key]
	if !ok {
		return 0, &errs.MissingParameterError{Keys: []string{key}}
	}

	scaled := b.Rescale(value)
	// NaN fails both comparisons.
	if !(scaled >= 0 && scaled <= 1) {
		return scaled, &errs.RangeError{Param: key, Value: value, Min: b.Min, Max: b.Max}
	}

	return scaled, nil
}
