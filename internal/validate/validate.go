// Package validate holds the predicates that guard every property change
// before it reaches a drawing tool.
package validate

import (
	"math"

	"github.com/go-playground/validator/v10"
)

// hexColorTag: "#" plus exactly six hex digits. validator's hexcolor also
// accepts the 3, 4 and 8 digit forms, len=7 pins it to #rrggbb.
const hexColorTag = "len=7,hexcolor"

var validate = validator.New(validator.WithRequiredStructEnabled())

// InRange: reports whether min <= value <= max. Both bounds are inclusive.
// NaN is never in range.
func InRange(value, min, max float64) bool {
	if math.IsNaN(value) {
		return false
	}
	return value >= min && value <= max
}

// HexColor: reports whether value is a "#rrggbb" colour, case-insensitive.
func HexColor(value string) bool {
	return validate.Var(value, hexColorTag) == nil
}
