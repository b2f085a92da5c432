package km

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/uyouii/survival-algorithms/common"
	"github.com/uyouii/survival-algorithms/estimate"
	"github.com/uyouii/survival-algorithms/model"
	"github.com/uyouii/survival-algorithms/utils"
)

// KaplanMeierFitter estimates the survival distribution with the method of
// Kaplan and Meier from possibly right-censored, left-truncated, weighted
// duration data. With the left-censorship option it estimates the
// cumulative density instead. Optional inputs are set through the builder
// methods before calling Fit.
type KaplanMeierFitter struct {

	// Alpha is the significance level of the confidence band.
	Alpha float64

	// Optional inputs, set before Fit.
	timelineOpt    []float64
	entryOpt       []float64
	weightsOpt     []float64
	ciLabels       []string
	label          string
	leftCensorship bool

	// Fit results. Assigned together at the end of a successful Fit and
	// read-only afterwards.
	durations     []float64
	eventObserved []float64
	timeline      []float64
	entry         []float64
	eventTable    *model.EventTable
	kind          model.EstimateKind
	series        *model.Series
	confidence    *model.ConfidenceBand
	cumulativeVar []float64
	median        float64
	fitted        bool
}

// NewKaplanMeierFitter creates a fitter with the given significance level.
// Out-of-range alpha falls back to DefaultAlpha.
func NewKaplanMeierFitter(alpha float64) *KaplanMeierFitter {
	if alpha <= 0 || alpha >= 1 {
		alpha = DefaultAlpha
	}
	return &KaplanMeierFitter{
		Alpha: alpha,
		label: DefaultLabel,
	}
}

// Timeline sets explicit reporting times. When unset the distinct duration
// values are used.
func (kmf *KaplanMeierFitter) Timeline(timeline []float64) *KaplanMeierFitter {
	kmf.timelineOpt = timeline
	return kmf
}

// Entry sets per-subject entry times, enabling left truncation.
func (kmf *KaplanMeierFitter) Entry(entry []float64) *KaplanMeierFitter {
	kmf.entryOpt = entry
	return kmf
}

// Weights sets per-subject case weights.
func (kmf *KaplanMeierFitter) Weights(weights []float64) *KaplanMeierFitter {
	kmf.weightsOpt = weights
	return kmf
}

// Label names the estimate column.
func (kmf *KaplanMeierFitter) Label(label string) *KaplanMeierFitter {
	if label != "" {
		kmf.label = label
	}
	return kmf
}

// LeftCensorship switches the fitter to left-censored data, producing the
// cumulative density instead of the survival function.
func (kmf *KaplanMeierFitter) LeftCensorship(on bool) *KaplanMeierFitter {
	kmf.leftCensorship = on
	return kmf
}

// ConfidenceIntervalLabels sets custom names for the band columns as
// [upper, lower]. Must be exactly two labels; Fit rejects anything else.
func (kmf *KaplanMeierFitter) ConfidenceIntervalLabels(labels []string) *KaplanMeierFitter {
	kmf.ciLabels = labels
	return kmf
}

// Fit estimates the survival function (or cumulative density) of the given
// durations. eventObserved holds 1 where the event occurred at the
// duration and 0 where the subject was censored; nil means every event was
// observed. A failed fit leaves any previous results untouched; a
// successful fit replaces them entirely.
func (kmf *KaplanMeierFitter) Fit(ctx context.Context, durations, eventObserved []float64) error {
	logger := utils.GetLogger(ctx)

	if err := estimate.CheckNaNsOrInfs(durations); err != nil {
		return fmt.Errorf("durations: %w", err)
	}
	if eventObserved != nil {
		if err := estimate.CheckNaNsOrInfs(eventObserved); err != nil {
			return fmt.Errorf("event indicators: %w", err)
		}
	}
	if len(kmf.ciLabels) != 0 && len(kmf.ciLabels) != 2 {
		return fmt.Errorf("ci labels should be a length 2 list, got %d: %w",
			len(kmf.ciLabels), common.ErrorInvalidValue)
	}

	if kmf.weightsOpt != nil && !allIntegral(kmf.weightsOpt) {
		// propensity-score style weights: the estimate is still valid but
		// the naive variance underestimates, so the band is optimistic
		logger.Warn("weights are not integers, the naive variance estimates are biased,"+
			" estimate variances with Monte Carlo instead",
			zap.String("label", kmf.label))
	}

	durs, events, timeline, entry, table, err := estimate.PreprocessInputs(
		durations, eventObserved, kmf.timelineOpt, kmf.entryOpt, kmf.weightsOpt)
	if err != nil {
		return err
	}

	kind := model.SurvivalFunction
	if kmf.leftCensorship {
		kind = model.CumulativeDensity
	}

	if entry != nil {
		if err := checkEarlyTruncation(table); err != nil {
			return err
		}
	}

	logEst, cumVar := estimate.AdditiveEstimate(table, timeline, additiveF, additiveVar, kmf.leftCensorship)

	series := &model.Series{
		Label:  kmf.label,
		Times:  timeline,
		Values: ListExp(logEst),
	}
	band := greenwoodBounds(series, cumVar, kmf.Alpha, kmf.ciLabels)
	median := estimate.MedianSurvivalTime(series, kind)

	kmf.durations = durs
	kmf.eventObserved = events
	kmf.timeline = timeline
	kmf.entry = entry
	kmf.eventTable = table
	kmf.kind = kind
	kmf.series = series
	kmf.confidence = band
	kmf.cumulativeVar = cumVar
	kmf.median = median
	kmf.fitted = true
	return nil
}

// checkEarlyTruncation aborts when the net at-risk population hits zero
// within the first half of the event table. With so few early entry times
// the estimate would be forced to zero past that point by construction
// rather than by signal.
func checkEarlyTruncation(table *model.EventTable) error {
	half := table.Len() / 2
	net := table.NetPopulation()

	minIdx := -1
	for i := 0; i < half; i++ {
		if minIdx < 0 || net[i] < net[minIdx] {
			minIdx = i
		}
	}
	if minIdx >= 0 && net[minIdx] == 0 {
		return fmt.Errorf("too few early truncation times and too many events,"+
			" the estimate is zero for all times past %g,"+
			" recommend the Breslow-Fleming-Harrington estimator: %w",
			table.Times[minIdx], common.ErrorStatDegeneracy)
	}
	return nil
}

// additiveF is the log of the per-interval conditional survival
// probability, log(p-d) - log(p). When everyone at risk dies the term is
// -Inf: the survival curve is zero from that point on, which is propagated
// rather than treated as an error.
func additiveF(population, deaths []float64) []float64 {
	res := make([]float64, len(population))
	for i := range population {
		res[i] = math.Log(population[i]-deaths[i]) - math.Log(population[i])
	}
	return res
}

// additiveVar is the Greenwood variance term d / (p * (p - d)). An
// interval with an empty denominator carries no variance information, so a
// non-finite ratio is replaced with zero before accumulation.
func additiveVar(population, deaths []float64) []float64 {
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

// Fitted reports whether Fit has completed successfully.
func (kmf *KaplanMeierFitter) Fitted() bool {
	return kmf.fitted
}

// Kind reports which view the fitted estimate holds.
func (kmf *KaplanMeierFitter) Kind() model.EstimateKind {
	return kmf.kind
}

// Estimate returns the fitted point-estimate series.
func (kmf *KaplanMeierFitter) Estimate() *model.Series {
	return kmf.series
}

// ConfidenceInterval returns the fitted confidence band.
func (kmf *KaplanMeierFitter) ConfidenceInterval() *model.ConfidenceBand {
	return kmf.confidence
}

// Median returns the time at which the estimate crosses one half, +Inf
// when it never does.
func (kmf *KaplanMeierFitter) Median() float64 {
	return kmf.median
}

// CumulativeVariance returns the accumulated Greenwood variance of the log
// estimate at each timeline point.
func (kmf *KaplanMeierFitter) CumulativeVariance() []float64 {
	return kmf.cumulativeVar
}

// EventTable returns the event table the estimate was built from.
func (kmf *KaplanMeierFitter) EventTable() *model.EventTable {
	return kmf.eventTable
}

// Times returns the reporting times of the fitted estimate.
func (kmf *KaplanMeierFitter) Times() []float64 {
	return kmf.timeline
}

// SurvivalFunctionAtTimes evaluates the fitted step function at arbitrary
// query times, holding the last estimate at or before each time. An empty
// label falls back to the fitted label. Returns nil before a successful
// Fit.
func (kmf *KaplanMeierFitter) SurvivalFunctionAtTimes(times []float64, label string) *model.Series {
	if !kmf.fitted {
		return nil
	}
	if label == "" {
		label = kmf.label
	}
	ts := make([]float64, len(times))
	copy(ts, times)
	return &model.Series{
		Label:  label,
		Times:  ts,
		Values: estimate.PredictAt(kmf.series, kmf.kind, times),
	}
}
