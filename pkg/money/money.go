package money

import "math"

// Money values live as int64 minor units (cents) inside the core and as
// decimal float64 at the API boundary.

// ToCents converts a boundary decimal amount to cents. Non-finite or
// negative inputs collapse to 0 instead of propagating NaN into totals.
func ToCents(amount float64) int64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0
	}
	return int64(math.Round(amount * 100))
}

// FromCents converts cents back to a decimal for API responses.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}
