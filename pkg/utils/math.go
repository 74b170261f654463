package utils

import "math"

// L2Norm returns the Euclidean norm of x, accumulated in float64.
func L2Norm(x []float32) float64 {
	var sum float64
	for _, v := range x {
		f := float64(v)
		sum += f * f
	}
	return math.Sqrt(sum)
}

// UnitVector returns a float64 copy of x scaled to unit L2 norm.
// If the norm is zero, the returned vector is all zeros.
func UnitVector(x []float32) []float64 {
	out := make([]float64, len(x))
	norm := L2Norm(x)
	if norm == 0 {
		return out
	}
	for i, v := range x {
		out[i] = float64(v) / norm
	}
	return out
}
