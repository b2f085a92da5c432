package common

import "errors"

var (
	// ErrorInvalidValue marks rejected input: NaN/Inf values, mismatched
	// array lengths, malformed label pairs.
	ErrorInvalidValue = errors.New("invalid value")

	// ErrorStatDegeneracy marks a left-truncated sample with too few early
	// entry times for the ordinary Kaplan-Meier estimator.
	ErrorStatDegeneracy = errors.New("statistical degeneracy")
)
