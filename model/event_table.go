package model

// EventTable is the per-time-point event summary a survival estimate is
// built from. Columns are parallel slices, one entry per distinct time in
// Times (sorted ascending).
//
// AtRisk at each row equals cumulative entrances through that row minus
// cumulative removals from all strictly earlier rows. Counts may be
// fractional when case weights are in use.
type EventTable struct {
	Times []float64

	// Entrance counts subjects entering observation at this time.
	Entrance []float64

	// Removed counts subjects leaving at this time, deaths plus
	// censorings.
	Removed []float64

	// Observed counts deaths at this time.
	Observed []float64

	// Censored counts censorings at this time.
	Censored []float64

	// AtRisk is the population under observation just before this time.
	AtRisk []float64
}

func (t *EventTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Times)
}

// NetPopulation returns the running net population, the cumulative sum of
// entrances minus removals row by row.
func (t *EventTable) NetPopulation() []float64 {
	net := make([]float64, t.Len())
	var run float64
	for i := range net {
		run += t.Entrance[i] - t.Removed[i]
		net[i] = run
	}
	return net
}
