package estimate

import (
	"math"

	"github.com/uyouii/survival-algorithms/model"
)

// QthSurvivalTime returns the earliest timeline point where the estimate
// crosses q: the first time the survival function drops to q or below, or
// the first time the cumulative density reaches q or above. Returns +Inf
// when the estimate never crosses q.
func QthSurvivalTime(q float64, series *model.Series, kind model.EstimateKind) float64 {
	for i, v := range series.Values {
		if kind == model.CumulativeDensity {
			if v >= q {
				return series.Times[i]
			}
		} else if v <= q {
			return series.Times[i]
		}
	}
	return math.Inf(1)
}

// MedianSurvivalTime returns the time at which the estimate crosses one
// half, +Inf when it never does.
func MedianSurvivalTime(series *model.Series, kind model.EstimateKind) float64 {
	return QthSurvivalTime(0.5, series, kind)
}
