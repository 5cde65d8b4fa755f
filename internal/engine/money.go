package engine

import "math"

// Epsilon is the monetary tolerance: any |x| below one cent is treated as
// zero to absorb floating-point rounding noise.
const Epsilon = 0.01

// Round2 rounds a monetary value to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// nearZero reports whether v is within Epsilon of zero.
func nearZero(v float64) bool {
	return math.Abs(v) < Epsilon
}
