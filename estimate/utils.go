package estimate

import "sort"

func InitOnes(n int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = 1
	}
	return res
}

// CumSum returns the running sums of data in a new slice.
func CumSum(data []float64) []float64 {
	res := make([]float64, len(data))
	var run float64
	for i, v := range data {
		run += v
		res[i] = run
	}
	return res
}

// UniqueSorted returns the distinct values of data in ascending order.
func UniqueSorted(data []float64) []float64 {
	res := make([]float64, len(data))
	copy(res, data)
	sort.Float64s(res)

	j := 0
	for i := 0; i < len(res); i++ {
		if i == 0 || res[i] != res[i-1] {
			res[j] = res[i]
			j++
		}
	}
	return res[:j]
}

// searchLastAtOrBefore returns the index of the last element of times that
// is <= t, or -1 when t precedes every element. times must be sorted.
func searchLastAtOrBefore(times []float64, t float64) int {
	i := sort.SearchFloat64s(times, t)
	if i < len(times) && times[i] == t {
		return i
	}
	return i - 1
}
