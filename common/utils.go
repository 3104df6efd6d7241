package common

import "math"

// Coalesce returns the first value that is not the zero value of T.
// Config loading uses it to fall back to defaults for omitted fields.
//
// Parameters:
//   - values: candidate values in priority order
//
// Returns:
//   - T: the first non-zero value, or the zero value if every candidate is zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Sign returns 1 for values >= 0 and -1 otherwise. Zero maps to 1.
func Sign(v float32) float32 {
	if v >= 0 {
		return 1
	}
	return -1
}

// Clamp01 clamps v into [0, 1].
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// IsFinite reports whether every component of v is neither NaN nor infinite.
//
// Parameters:
//   - v: the components to check
//
// Returns:
//   - bool: true if all components are finite
func IsFinite(v ...float32) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
