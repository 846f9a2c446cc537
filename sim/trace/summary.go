package trace

// Transition names the summary needs to recognize.
const (
	transitionEnqueue = "enqueue"
	transitionUnload  = "unload"
	phaseQueued       = "Queued"
)

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTransitions    int
	ByTransition        map[string]int // transition name → count
	QueuedArrivals      int            // arrivals that found every station busy
	ReleasedFromQueue   int            // parked trucks later admitted
	MeanQueueWait       float64        // minutes from enqueue to release, released trucks only
	MaxQueueWait        int64
	StationDistribution map[int]int // station ID → unload admissions
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ByTransition:        make(map[string]int),
		StationDistribution: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalTransitions = len(st.Transitions)
	parkedAt := make(map[int]int64) // truck ID → enqueue time
	var totalWait int64
	for _, r := range st.Transitions {
		summary.ByTransition[r.Transition]++
		switch r.Transition {
		case transitionEnqueue:
			summary.QueuedArrivals++
			parkedAt[r.TruckID] = r.Time
		case transitionUnload:
			summary.StationDistribution[r.StationID]++
			if r.From != phaseQueued {
				continue
			}
			summary.ReleasedFromQueue++
			if since, ok := parkedAt[r.TruckID]; ok {
				wait := r.Time - since
				totalWait += wait
				summary.MaxQueueWait = max(summary.MaxQueueWait, wait)
				delete(parkedAt, r.TruckID)
			}
		}
	}
	if summary.ReleasedFromQueue > 0 {
		summary.MeanQueueWait = float64(totalWait) / float64(summary.ReleasedFromQueue)
	}

	return summary
}
