package estimate

import (
	"fmt"
	"math"

	"github.com/uyouii/survival-algorithms/common"
)

// CheckNaNsOrInfs rejects arrays containing NaN or infinite values.
func CheckNaNsOrInfs(values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("value %v at index %d: %w", v, i, common.ErrorInvalidValue)
		}
	}
	return nil
}
