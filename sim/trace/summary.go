package trace

import "math"

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalEvents       int
	PeriodicEvents    int
	Campaigns         int
	FirstDate         float64
	LastDate          float64
	EventsPerCampaign map[int]int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields, NaN dates).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		FirstDate:         math.NaN(),
		LastDate:          math.NaN(),
		EventsPerCampaign: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalEvents = len(st.Events)
	for i, e := range st.Events {
		if e.Periodic {
			summary.PeriodicEvents++
		}
		summary.EventsPerCampaign[e.Campaign]++
		if i == 0 || e.Date < summary.FirstDate {
			summary.FirstDate = e.Date
		}
		if i == 0 || e.Date > summary.LastDate {
			summary.LastDate = e.Date
		}
	}
	summary.Campaigns = len(summary.EventsPerCampaign)

	return summary
}
