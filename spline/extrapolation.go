package spline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ndgpemu/ndgpemu/errs"
)

// Extrapolation selects the value returned for a query outside the knot range.
// The numeric codes are stable and accepted by ParseExtrapolation.
type Extrapolation uint8

const (
	// Extrapolate continues the first or last segment linearly.
	Extrapolate Extrapolation = 0
	// Zeros returns 0.
	Zeros Extrapolation = 1
	// Raise fails with a *errs.RangeError. It is the default.
	Raise Extrapolation = 2
	// Const returns the value at the nearest end knot.
	Const Extrapolation = 3
)

// Default is the policy used when none is given.
const Default = Raise

var extrapolationNames = map[Extrapolation]string{
	Extrapolate: "extrapolate",
	Zeros:       "zeros",
	Raise:       "raise",
	Const:       "const",
}

// String returns the string representation of the policy.
func (e Extrapolation) String() string {
	if name, ok := extrapolationNames[e]; ok {
		return name
	}

	return "unknown"
}

// Valid reports whether e is a known policy.
func (e Extrapolation) Valid() bool {
	_, ok := extrapolationNames[e]
	return ok
}

// ParseExtrapolation accepts a policy name or its numeric code ("0".."3").
// The empty string yields Default.
func ParseExtrapolation(s string) (Extrapolation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Default, nil
	case "0", "extrapolate":
		return Extrapolate, nil
	case "1", "zeros":
		return Zeros, nil
	case "2", "raise":
		return Raise, nil
	case "3", "const":
		return Const, nil
	default:
		return Default, fmt.Errorf("%w: %q", errs.ErrInvalidExtrapolation, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e Extrapolation) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidExtrapolation, e)
	}

	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Extrapolation) UnmarshalText(text []byte) error {
	v, err := ParseExtrapolation(string(text))
	if err != nil {
		return err
	}
	*e = v

	return nil
}

// UnmarshalJSON accepts a policy name or code as a JSON string, or the code
// as a bare JSON number.
func (e *Extrapolation) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		return e.UnmarshalText([]byte(name))
	}

	return e.UnmarshalText(data)
}
