// Package trace provides per-transition recording of a haul simulation run.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// TransitionRecord captures a single truck lifecycle transition.
type TransitionRecord struct {
	Time       int64
	TruckID    int
	Transition string // lifecycle transition name, e.g. "unload"
	From       string // phase before the transition
	To         string // phase after the transition
	StationID  int    // station involved, 0 when none
}
