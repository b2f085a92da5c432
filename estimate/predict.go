package estimate

import "github.com/uyouii/survival-algorithms/model"

// PredictAt evaluates a fitted step function at arbitrary query times,
// holding the last value at or before each query time. Before the first
// timeline point the survival function is 1 and the cumulative density 0.
func PredictAt(series *model.Series, kind model.EstimateKind, times []float64) []float64 {
	res := make([]float64, len(times))
	for i, t := range times {
		j := searchLastAtOrBefore(series.Times, t)
		if j < 0 {
			if kind == model.SurvivalFunction {
				res[i] = 1
			}
			continue
		}
		res[i] = series.Values[j]
	}
	return res
}
