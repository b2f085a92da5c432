package estimate

import (
	"fmt"
	"sort"

	"github.com/uyouii/survival-algorithms/common"
	"github.com/uyouii/survival-algorithms/model"
)

// PreprocessInputs normalizes raw fit inputs and builds the event table.
// events defaults to all ones (every event observed), weights to unit
// weights, and timeline to the distinct duration values. The returned
// slices are the normalized inputs in the same order.
func PreprocessInputs(durations, events, timeline, entry, weights []float64) (
	[]float64, []float64, []float64, []float64, *model.EventTable, error) {

	n := len(durations)
	if n == 0 {
		return nil, nil, nil, nil, nil, fmt.Errorf("empty durations: %w", common.ErrorInvalidValue)
	}

	if events == nil {
		events = InitOnes(n)
	} else if len(events) != n {
		return nil, nil, nil, nil, nil,
			fmt.Errorf("events length %d != durations length %d: %w", len(events), n, common.ErrorInvalidValue)
	}

	if weights == nil {
		weights = InitOnes(n)
	} else if len(weights) != n {
		return nil, nil, nil, nil, nil,
			fmt.Errorf("weights length %d != durations length %d: %w", len(weights), n, common.ErrorInvalidValue)
	}

	if entry != nil && len(entry) != n {
		return nil, nil, nil, nil, nil,
			fmt.Errorf("entry length %d != durations length %d: %w", len(entry), n, common.ErrorInvalidValue)
	}

	if timeline == nil {
		timeline = UniqueSorted(durations)
	} else {
		sorted := make([]float64, len(timeline))
		copy(sorted, timeline)
		sort.Float64s(sorted)
		timeline = sorted
	}

	table, err := SurvivalTableFromEvents(durations, events, entry, weights)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}

	return durations, events, timeline, entry, table, nil
}

// SurvivalTableFromEvents builds the per-time-point event table: one row
// per distinct time in the union of event/censoring times and entry times.
// When entry is nil every subject enters observation at time zero.
func SurvivalTableFromEvents(durations, events, entry, weights []float64) (*model.EventTable, error) {

	removed := map[float64]float64{}
	observed := map[float64]float64{}
	entrance := map[float64]float64{}

	for i, t := range durations {
		w := weights[i]
		removed[t] += w
		if events[i] != 0 {
			observed[t] += w
		}

		birth := 0.0
		if entry != nil {
			if entry[i] > t {
				return nil, fmt.Errorf("entry time %g after duration %g at index %d: %w",
					entry[i], t, i, common.ErrorInvalidValue)
			}
			birth = entry[i]
		}
		entrance[birth] += w
	}

	times := make([]float64, 0, len(removed)+len(entrance))
	for t := range removed {
		times = append(times, t)
	}
	for t := range entrance {
		if _, ok := removed[t]; !ok {
			times = append(times, t)
		}
	}
	sort.Float64s(times)

	n := len(times)
	table := &model.EventTable{
		Times:    times,
		Entrance: make([]float64, n),
		Removed:  make([]float64, n),
		Observed: make([]float64, n),
		Censored: make([]float64, n),
		AtRisk:   make([]float64, n),
	}

	var cumEnter, cumRemoved float64
	for i, t := range times {
		table.Entrance[i] = entrance[t]
		table.Removed[i] = removed[t]
		table.Observed[i] = observed[t]
		table.Censored[i] = removed[t] - observed[t]

		// at risk just before t: everyone entered through t minus
		// everyone removed strictly before t
		cumEnter += entrance[t]
		table.AtRisk[i] = cumEnter - cumRemoved
		cumRemoved += removed[t]
	}

	return table, nil
}
