package predictor

import (
	"fmt"

	"github.com/ndgpemu/ndgpemu/internal/options"
	"github.com/ndgpemu/ndgpemu/params"
)

type config struct {
	policy params.Policy
	warn   func(error)
}

// Option configures a BoostPredictor.
type Option = options.Option[*config]

// WithRangePolicy selects how out-of-range inputs are handled. The default is params.PolicyStrict.
func WithRangePolicy(policy params.Policy) Option {
	return options.New(func(c *config) error {
		switch policy {
		case params.PolicyStrict, params.PolicyWarn:
			c.policy = policy
			return nil
		default:
			return fmt.Errorf("invalid range policy: %v", policy)
		}
	})
}

// WithWarningHandler sets the function receiving out-of-range inputs under params.PolicyWarn.
// It may be called from several goroutines at once.
func WithWarningHandler(fn func(error)) Option {
	return options.NoError(func(c *config) {
		c.warn = fn
	})
}
