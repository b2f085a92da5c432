package estimate

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uyouii/survival-algorithms/common"
	"github.com/uyouii/survival-algorithms/model"
)

// Kaplan-Meier style contribution terms, kept local so the scaffold is
// tested against plain functions.
func logRatio(population, deaths []float64) []float64 {
	res := make([]float64, len(population))
	for i := range population {
		res[i] = math.Log(population[i]-deaths[i]) - math.Log(population[i])
	}
	return res
}

func greenwoodTerm(population, deaths []float64) []float64 {
	res := make([]float64, len(population))
	for i := range population {
		v := deaths[i] / (population[i] * (population[i] - deaths[i]))
		if math.IsInf(v, 0) || math.IsNaN(v) {
			v = 0
		}
		res[i] = v
	}
	return res
}

func TestCheckNaNsOrInfs(t *testing.T) {
	assert.NoError(t, CheckNaNsOrInfs([]float64{1, 2, 3}))
	assert.NoError(t, CheckNaNsOrInfs(nil))

	err := CheckNaNsOrInfs([]float64{1, math.NaN(), 3})
	assert.True(t, errors.Is(err, common.ErrorInvalidValue))

	err = CheckNaNsOrInfs([]float64{math.Inf(1)})
	assert.True(t, errors.Is(err, common.ErrorInvalidValue))

	err = CheckNaNsOrInfs([]float64{math.Inf(-1)})
	assert.True(t, errors.Is(err, common.ErrorInvalidValue))
}

func TestSurvivalTableFromEvents(t *testing.T) {
	durations := []float64{5, 6, 6, 2, 4}
	events := []float64{1, 0, 1, 1, 1}

	table, err := SurvivalTableFromEvents(durations, events, nil, InitOnes(5))
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 2, 4, 5, 6}, table.Times)
	assert.Equal(t, []float64{5, 0, 0, 0, 0}, table.Entrance)
	assert.Equal(t, []float64{0, 1, 1, 1, 2}, table.Removed)
	assert.Equal(t, []float64{0, 1, 1, 1, 1}, table.Observed)
	assert.Equal(t, []float64{0, 0, 0, 0, 1}, table.Censored)
	assert.Equal(t, []float64{5, 5, 4, 3, 2}, table.AtRisk)
}

func TestSurvivalTableFromEventsWeighted(t *testing.T) {
	durations := []float64{5, 6, 6, 2, 4}
	events := []float64{1, 0, 1, 1, 1}
	weights := []float64{3, 3, 3, 3, 3}

	table, err := SurvivalTableFromEvents(durations, events, nil, weights)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 3, 3, 3, 6}, table.Removed)
	assert.Equal(t, []float64{0, 3, 3, 3, 3}, table.Observed)
	assert.Equal(t, []float64{15, 15, 12, 9, 6}, table.AtRisk)
}

func TestSurvivalTableFromEventsEntryRows(t *testing.T) {
	durations := []float64{4, 5}
	events := []float64{1, 1}
	entry := []float64{1, 3}

	table, err := SurvivalTableFromEvents(durations, events, entry, InitOnes(2))
	require.NoError(t, err)

	// entry times get their own rows
	assert.Equal(t, []float64{1, 3, 4, 5}, table.Times)
	assert.Equal(t, []float64{1, 1, 0, 0}, table.Entrance)
	assert.Equal(t, []float64{1, 2, 2, 1}, table.AtRisk)
	assert.Equal(t, []float64{1, 2, 1, 0}, table.NetPopulation())
}

func TestSurvivalTableFromEventsEntryAfterDuration(t *testing.T) {
	_, err := SurvivalTableFromEvents(
		[]float64{4, 5}, []float64{1, 1}, []float64{1, 7}, InitOnes(2))
	assert.True(t, errors.Is(err, common.ErrorInvalidValue))
}

func TestPreprocessInputsDefaults(t *testing.T) {
	durations := []float64{5, 6, 6, 2, 4}

	durs, events, timeline, entry, table, err := PreprocessInputs(durations, nil, nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, durations, durs)
	assert.Equal(t, []float64{1, 1, 1, 1, 1}, events)
	assert.Equal(t, []float64{2, 4, 5, 6}, timeline)
	assert.Nil(t, entry)
	assert.Equal(t, 5, table.Len())
}

func TestPreprocessInputsExplicitTimelineSorted(t *testing.T) {
	_, _, timeline, _, _, err := PreprocessInputs(
		[]float64{1, 2}, nil, []float64{5, 1, 3}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 5}, timeline)
}

func TestPreprocessInputsRejects(t *testing.T) {
	_, _, _, _, _, err := PreprocessInputs(nil, nil, nil, nil, nil)
	assert.True(t, errors.Is(err, common.ErrorInvalidValue))

	_, _, _, _, _, err = PreprocessInputs([]float64{1, 2}, []float64{1}, nil, nil, nil)
	assert.True(t, errors.Is(err, common.ErrorInvalidValue))

	_, _, _, _, _, err = PreprocessInputs([]float64{1, 2}, nil, nil, []float64{0}, nil)
	assert.True(t, errors.Is(err, common.ErrorInvalidValue))

	_, _, _, _, _, err = PreprocessInputs([]float64{1, 2}, nil, nil, nil, []float64{1})
	assert.True(t, errors.Is(err, common.ErrorInvalidValue))
}

func TestAdditiveEstimateForward(t *testing.T) {
	durations := []float64{5, 6, 6, 2, 4}
	events := []float64{1, 0, 1, 1, 1}
	timeline := []float64{2, 4, 5, 6}

	table, err := SurvivalTableFromEvents(durations, events, nil, InitOnes(5))
	require.NoError(t, err)

	logEst, cumVar := AdditiveEstimate(table, timeline, logRatio, greenwoodTerm, false)

	surv := make([]float64, len(logEst))
	for i, v := range logEst {
		surv[i] = math.Exp(v)
	}
	assert.InDeltaSlice(t, []float64{0.8, 0.6, 0.4, 0.2}, surv, 1e-12)

	expectedVar := []float64{
		1.0 / 20,
		1.0/20 + 1.0/12,
		1.0/20 + 1.0/12 + 1.0/6,
		1.0/20 + 1.0/12 + 1.0/6 + 1.0/2,
	}
	assert.InDeltaSlice(t, expectedVar, cumVar, 1e-12)
}

func TestAdditiveEstimateTimelinePad(t *testing.T) {
	durations := []float64{5, 6, 6, 2, 4}
	events := []float64{1, 0, 1, 1, 1}
	timeline := []float64{0, 2.5, 4, 7}

	table, err := SurvivalTableFromEvents(durations, events, nil, InitOnes(5))
	require.NoError(t, err)

	logEst, _ := AdditiveEstimate(table, timeline, logRatio, greenwoodTerm, false)

	surv := make([]float64, len(logEst))
	for i, v := range logEst {
		surv[i] = math.Exp(v)
	}
	assert.InDeltaSlice(t, []float64{1, 0.8, 0.6, 0.2}, surv, 1e-12)
}

func TestAdditiveEstimateReverse(t *testing.T) {
	durations := []float64{1, 2, 3}
	timeline := []float64{1, 2, 3}

	table, err := SurvivalTableFromEvents(durations, InitOnes(3), nil, InitOnes(3))
	require.NoError(t, err)

	logEst, _ := AdditiveEstimate(table, timeline, logRatio, greenwoodTerm, true)

	// with every event observed the reversed accumulation reproduces the
	// empirical distribution function
	cdf := make([]float64, len(logEst))
	for i, v := range logEst {
		cdf[i] = math.Exp(v)
	}
	assert.InDeltaSlice(t, []float64{1.0 / 3, 2.0 / 3, 1}, cdf, 1e-12)
}

func TestAdditiveEstimatePropagatesFullFailure(t *testing.T) {
	// all subjects observed, the last interval kills the whole risk set
	durations := []float64{1, 2}
	timeline := []float64{1, 2}

	table, err := SurvivalTableFromEvents(durations, InitOnes(2), nil, InitOnes(2))
	require.NoError(t, err)

	logEst, cumVar := AdditiveEstimate(table, timeline, logRatio, greenwoodTerm, false)

	assert.True(t, math.IsInf(logEst[1], -1))
	assert.False(t, math.IsInf(cumVar[1], 0))
	assert.False(t, math.IsNaN(cumVar[1]))
}

func TestQthSurvivalTime(t *testing.T) {
	surv := &model.Series{
		Times:  []float64{2, 4, 5, 6},
		Values: []float64{0.8, 0.6, 0.4, 0.2},
	}
	assert.Equal(t, 5.0, MedianSurvivalTime(surv, model.SurvivalFunction))
	assert.Equal(t, 2.0, QthSurvivalTime(0.8, surv, model.SurvivalFunction))

	flat := &model.Series{
		Times:  []float64{1, 2},
		Values: []float64{0.9, 0.8},
	}
	assert.True(t, math.IsInf(MedianSurvivalTime(flat, model.SurvivalFunction), 1))

	cdf := &model.Series{
		Times:  []float64{1, 2, 3},
		Values: []float64{1.0 / 3, 2.0 / 3, 1},
	}
	assert.Equal(t, 2.0, MedianSurvivalTime(cdf, model.CumulativeDensity))
}

func TestPredictAt(t *testing.T) {
	surv := &model.Series{
		Times:  []float64{2, 4, 5, 6},
		Values: []float64{0.8, 0.6, 0.4, 0.2},
	}

	got := PredictAt(surv, model.SurvivalFunction, []float64{0, 2, 3, 4.5, 6, 10})
	assert.InDeltaSlice(t, []float64{1, 0.8, 0.8, 0.6, 0.2, 0.2}, got, 1e-12)

	// the cumulative density starts at zero instead
	got = PredictAt(surv, model.CumulativeDensity, []float64{1})
	assert.Equal(t, []float64{0}, got)
}
