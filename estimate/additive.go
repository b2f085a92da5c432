package estimate

import (
	"gonum.org/v1/gonum/floats"

	"github.com/uyouii/survival-algorithms/model"
)

// ContributionFunc maps the at-risk population and death count of every
// table row to a per-interval contribution term.
type ContributionFunc func(population, deaths []float64) []float64

// AdditiveEstimate accumulates per-interval contributions across the event
// table and reports the running sums on the given timeline. additiveF
// produces the log-estimate increments, additiveVar the cumulative-variance
// increments. Both outputs are aligned with timeline.
//
// In the forward direction (right censoring) row i contributes to every
// timeline point at or after Times[i]. With reverse set (left censoring)
// the accumulation runs backwards: the value at a point is the sum of
// contributions from strictly later rows, so the log estimate reaches zero
// at the latest time.
func AdditiveEstimate(table *model.EventTable, timeline []float64,
	additiveF, additiveVar ContributionFunc, reverse bool) (logEstimate, cumulativeVariance []float64) {

	n := table.Len()
	est := make([]float64, n)
	vr := make([]float64, n)

	if reverse {
		// population at risk seen from the right: total entrances minus
		// removals at strictly later times
		total := floats.Sum(table.Entrance)
		pop := make([]float64, n)
		var later float64
		for i := n - 1; i >= 0; i-- {
			pop[i] = total - later
			later += table.Removed[i]
		}

		f := additiveF(pop, table.Observed)
		v := additiveVar(pop, table.Observed)

		var cf, cv float64
		for i := n - 1; i >= 0; i-- {
			est[i] = cf
			vr[i] = cv
			cf += f[i]
			cv += v[i]
		}
	} else {
		f := additiveF(table.AtRisk, table.Observed)
		v := additiveVar(table.AtRisk, table.Observed)

		var cf, cv float64
		for i := 0; i < n; i++ {
			cf += f[i]
			cv += v[i]
			est[i] = cf
			vr[i] = cv
		}
	}

	// step-wise reindex onto the reporting timeline, zero before the
	// first table row
	logEstimate = make([]float64, len(timeline))
	cumulativeVariance = make([]float64, len(timeline))
	for i, t := range timeline {
		j := searchLastAtOrBefore(table.Times, t)
		if j < 0 {
			continue
		}
		logEstimate[i] = est[j]
		cumulativeVariance[i] = vr[j]
	}

	return logEstimate, cumulativeVariance
}
