package regression

import (
	"fmt"

	"github.com/ndgpemu/ndgpemu/errs"
	"github.com/ndgpemu/ndgpemu/format"
)

// Regressor maps a feature vector to a coefficient vector.
type Regressor interface {
	// Predict returns a freshly allocated vector of length OutputDim.
	//
	// features is only valid for the duration of the call: callers may reuse
	// it afterwards, so implementations must copy it if they need to keep it.
	Predict(features []float64) ([]float64, error)
	// InputDim returns the expected feature vector length.
	InputDim() int
	// OutputDim returns the length of the predicted vector.
	OutputDim() int
	// Type returns the model type stored in artifact files.
	Type() format.ModelType
}

func checkInput(r Regressor, features []float64) error {
	if len(features) != r.InputDim() {
		return fmt.Errorf("%w: %s regressor expects %d features, got %d",
			errs.ErrDimensionMismatch, r.Type(), r.InputDim(), len(features))
	}

	return nil
}
