package utils

import "math"

// FormatFloat rounds f to the given number of decimal places. NaN and Inf
// pass through unchanged.
func FormatFloat(f float64, round int32) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	pow := math.Pow(10, float64(round))
	return math.Round(f*pow) / pow
}

// FormatFloats rounds every element of fs in a new slice.
func FormatFloats(fs []float64, round int32) []float64 {
	res := make([]float64, len(fs))
	for i, f := range fs {
		res[i] = FormatFloat(f, round)
	}
	return res
}
