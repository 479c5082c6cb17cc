package utils

import "math"

// NormalizeL2 normalizes the slice in place to unit L2 norm.
// If the norm is zero, the slice is unchanged.
func NormalizeL2(x []float32) {
	var sum float32
	for _, v := range x {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := float32(1.0 / math.Sqrt(float64(sum)))
	for i := range x {
		x[i] *= norm
	}
}

// Round4 rounds v to 4 decimal digits.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// Clamp01 clamps v into [0,1].
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
