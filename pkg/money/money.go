// Package money converts between wire amounts (major units, decimal) and the
// int64 minor units used everywhere else.
package money

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places kept in minor units.
const Scale = 2

// ErrInvalidAmount is returned for amounts that are not numbers or carry more precision than Scale.
var ErrInvalidAmount = errors.New("invalid amount")

// Amount is a wire amount. It accepts JSON numbers and numeric strings.
type Amount struct {
	Minor int64
	set   bool
}

// IsSet reports whether a value was decoded.
func (a Amount) IsSet() bool { return a.set }

// UnmarshalJSON parses a JSON number or numeric string into minor units.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		return nil
	}
	raw = bytes.Trim(raw, `"`)
	minor, err := Parse(string(raw))
	if err != nil {
		return err
	}
	a.Minor = minor
	a.set = true
	return nil
}

// MarshalJSON renders the amount as a bare JSON number in major units.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(Format(a.Minor)), nil
}

// Parse converts a decimal string in major units to minor units.
func Parse(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !d.Equal(d.Truncate(Scale)) {
		return 0, fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmount, Scale)
	}
	minor := d.Shift(Scale)
	if !minor.IsInteger() || minor.Abs().GreaterThan(decimal.NewFromInt(maxMinor)) {
		return 0, fmt.Errorf("%w: out of range", ErrInvalidAmount)
	}
	return minor.IntPart(), nil
}

const maxMinor = int64(1) << 53

// Format renders minor units as a decimal string in major units ("55", "12.5").
func Format(minor int64) string {
	return decimal.New(minor, -Scale).String()
}

// Number renders minor units as a json.Number so responses carry a bare number.
func Number(minor int64) json.Number {
	return json.Number(Format(minor))
}

// FromMinor wraps minor units as a wire Amount.
func FromMinor(minor int64) Amount {
	return Amount{Minor: minor, set: true}
}
