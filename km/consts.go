package km

const (
	DefaultAlpha = 0.05
	DefaultLabel = "KM_estimate"

	// KmMinFitSampleCnt is the smallest usable record count the helper
	// accepts; below this the estimate is noise.
	KmMinFitSampleCnt = 3

	// KmHelperRoundDigits is the decimal precision of helper output.
	KmHelperRoundDigits = 4
)
