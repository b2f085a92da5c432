package km

import "math"

func ListExp(data []float64) []float64 {
	res := make([]float64, len(data))
	for i, v := range data {
		res[i] = math.Exp(v)
	}
	return res
}

// allIntegral reports whether every weight is a whole number.
func allIntegral(weights []float64) bool {
	for _, w := range weights {
		if w != math.Trunc(w) {
			return false
		}
	}
	return true
}
