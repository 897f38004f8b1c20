// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

// Round rounds a value to two decimals, half away from zero, i.e. to represent
// real currency.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// WithinTolerance checks if two values are within a given tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// SameCents reports whether two amounts round to the same number of cents.
func SameCents(val1, val2 float64) bool {
	return WithinTolerance(Round(val1), Round(val2), constants.CurrencyTolerance/2)
}
