package params

import "strings"

// Policy selects how out-of-range inputs are handled.
type Policy uint8

const (
	// PolicyStrict rejects out-of-range inputs with a *errs.RangeError.
	PolicyStrict Policy = iota
	// PolicyWarn reports out-of-range inputs as warnings and evaluates anyway.
	PolicyWarn
)

// String returns the string representation of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicyWarn:
		return "warn"
	default:
		return "unknown"
	}
}

// ParsePolicy parses "strict" or "warn", case-insensitively.
func ParsePolicy(s string) (Policy, bool) {
	switch strings.ToLower(s) {
	case "strict", "":
		return PolicyStrict, true
	case "warn":
		return PolicyWarn, true
	default:
		return PolicyStrict, false
	}
}
