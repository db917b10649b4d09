package regression

import (
	"fmt"
	"math"
	"slices"

	"github.com/ndgpemu/ndgpemu/errs"
)

// Kernel is a stationary covariance function scaled by a constant amplitude.
type Kernel interface {
	// Eval returns k(x, y). Both vectors have the kernel's dimension.
	Eval(x, y []float64) float64
	// Dim returns the input dimension, or 0 for an isotropic kernel of any dimension.
	Dim() int
}

// Matern smoothness values with a closed form. NuRBF selects the squared exponential kernel.
const (
	NuRBF        = 0.0
	NuMaternHalf = 0.5
	NuMatern3_2  = 1.5
	NuMatern5_2  = 2.5
)

// StationaryKernel is amplitude * k(d), where d is the Euclidean distance
// after dividing each coordinate by its length scale.
type StationaryKernel struct {
	lengthScale []float64
	amplitude   float64
	nu          float64
}

var _ Kernel = (*StationaryKernel)(nil)

// NewKernel creates a kernel. lengthScale holds either one isotropic value
// or one value per input dimension. nu is NuRBF or one of the Matern values.
func NewKernel(lengthScale []float64, amplitude, nu float64) (*StationaryKernel, error) {
	if len(lengthScale) == 0 {
		return nil, fmt.Errorf("%w: empty length scale", errs.ErrShapeMismatch)
	}
	for _, l := range lengthScale {
		if !(l > 0) {
			return nil, fmt.Errorf("length scale must be positive, got %g", l)
		}
	}
	if !(amplitude > 0) {
		return nil, fmt.Errorf("kernel amplitude must be positive, got %g", amplitude)
	}

	switch nu {
	case NuRBF, NuMaternHalf, NuMatern3_2, NuMatern5_2:
	default:
		return nil, fmt.Errorf("%w: matern nu=%g", errs.ErrUnsupportedModel, nu)
	}

	return &StationaryKernel{
		lengthScale: slices.Clone(lengthScale),
		amplitude:   amplitude,
		nu:          nu,
	}, nil
}

// Dim returns the number of length scales, or 0 when isotropic.
func (k *StationaryKernel) Dim() int {
	if len(k.lengthScale) == 1 {
		return 0
	}

	return len(k.lengthScale)
}

// Eval returns k(x, y).
func (k *StationaryKernel) Eval(x, y []float64) float64 {
	var sq float64
	for i := range x {
		l := k.lengthScale[0]
		if len(k.lengthScale) > 1 {
			l = k.lengthScale[i]
		}
		d := (x[i] - y[i]) / l
		sq += d * d
	}

	switch k.nu {
	case NuMaternHalf:
		return k.amplitude * math.Exp(-math.Sqrt(sq))
	case NuMatern3_2:
		d := math.Sqrt(3 * sq)
		return k.amplitude * (1 + d) * math.Exp(-d)
	case NuMatern5_2:
		d := math.Sqrt(5 * sq)
		return k.amplitude * (1 + d + d*d/3) * math.Exp(-d)
	default:
		return k.amplitude * math.Exp(-0.5*sq)
	}
}
