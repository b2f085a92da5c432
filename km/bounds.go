package km

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/uyouii/survival-algorithms/model"
)

// greenwoodBounds builds the confidence band around the point estimate
// using the exponential Greenwood formula. The bounds are computed in
// log(-log S) space, which is what keeps them inside [0, 1] without any
// clamping. Where the estimate equals exactly 1 the transform divides by
// log(1) = 0; both bounds collapse onto the point estimate there. Where it
// equals 0 the Inf arithmetic drives both bounds to 0 on its own.
func greenwoodBounds(series *model.Series, cumulativeVariance []float64,
	alpha float64, ciLabels []string) *model.ConfidenceBand {

	normalDist := distuv.Normal{Mu: 0, Sigma: 1}
	z := normalDist.Quantile(1 - alpha/2)

	upperLabel := fmt.Sprintf("%s_upper_%g", series.Label, 1-alpha)
	lowerLabel := fmt.Sprintf("%s_lower_%g", series.Label, 1-alpha)
	if len(ciLabels) == 2 {
		upperLabel, lowerLabel = ciLabels[0], ciLabels[1]
	}

	n := series.Len()
	band := &model.ConfidenceBand{
		UpperLabel: upperLabel,
		LowerLabel: lowerLabel,
		Times:      series.Times,
		Upper:      make([]float64, n),
		Lower:      make([]float64, n),
	}

	for i, s := range series.Values {
		v := math.Log(s)
		if v == 0 {
			band.Upper[i] = s
			band.Lower[i] = s
			continue
		}
		c := z * math.Sqrt(cumulativeVariance[i]) / v
		band.Upper[i] = math.Exp(-math.Exp(math.Log(-v) + c))
		band.Lower[i] = math.Exp(-math.Exp(math.Log(-v) - c))
	}

	return band
}
