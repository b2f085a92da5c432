package km

import (
	"context"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/uyouii/survival-algorithms/common"
	"github.com/uyouii/survival-algorithms/model"
	"github.com/uyouii/survival-algorithms/utils"
)

// CalculateSurvivalEstimate fits a Kaplan-Meier estimate over weighted
// duration records and returns the rounded transport form: the point
// estimate, its confidence band and the median survival time.
func CalculateSurvivalEstimate(ctx context.Context, records []model.DurationRecord,
	alpha float64) (*model.SurvivalEstimate, error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if err := recover(); err != nil {
			logger.Error("CalculateSurvivalEstimate recover panic error!", zap.Any("err", err),
				zap.String("panic info", utils.GetPanicInfo()), zap.Any("records", records))
		}
	}()

	durations, events, entries, weights := []float64{}, []float64{}, []float64{}, []float64{}
	hasEntry := false

	for _, record := range records {
		// negative durations can't be observation times, skip them
		if record.Duration < 0 {
			logger.Warn("skip record with negative duration",
				zap.Float64("duration", record.Duration))
			continue
		}

		weight := record.Weight
		if weight == 0 {
			weight = 1
		}

		durations = append(durations, record.Duration)
		events = append(events, record.Observed)
		entries = append(entries, record.Entry)
		weights = append(weights, weight)
		if record.Entry > 0 {
			hasEntry = true
		}
	}

	if len(durations) < KmMinFitSampleCnt {
		logger.Error("point too little, skip calculate", zap.Int("cnt", len(durations)))
		return nil, common.ErrorInvalidValue
	}

	kmf := NewKaplanMeierFitter(alpha).Weights(weights)
	if hasEntry {
		kmf.Entry(entries)
	}

	if err := kmf.Fit(ctx, durations, events); err != nil {
		logger.Error("kaplan meier fit failed", zap.Error(err))
		return nil, err
	}

	series := kmf.Estimate()
	band := kmf.ConfidenceInterval()

	logger.Info("CalculateSurvivalEstimate success",
		zap.Int("cnt", len(durations)),
		zap.Float64("mean duration", stat.Mean(durations, weights)),
		zap.Float64("median", kmf.Median()))

	return &model.SurvivalEstimate{
		Label:         series.Label,
		Times:         series.Times,
		Probabilities: utils.FormatFloats(series.Values, KmHelperRoundDigits),
		Upper:         utils.FormatFloats(band.Upper, KmHelperRoundDigits),
		Lower:         utils.FormatFloats(band.Lower, KmHelperRoundDigits),
		Median:        utils.FormatFloat(kmf.Median(), KmHelperRoundDigits),
	}, nil
}
