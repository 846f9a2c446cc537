package sim

import "github.com/looplab/fsm"

// Truck is an autonomous haul vehicle. Only the Simulator mutates it; after
// Run returns, the counters are read by the statistics collector.
type Truck struct {
	ID int

	// UnloadingSite is the station the truck is assigned to or queued at (0 = none).
	UnloadingSite int

	CompletedTrips int     // unload admissions
	TravelingTime  int64   // minutes spent hauling, either direction
	UnloadingTime  int64   // minutes spent occupying a station
	MiningTimes    []int64 // one entry per mining episode

	loaded    bool
	lifecycle *fsm.FSM
}

// NewTruck creates a truck at the start of its cycle (ReadyToMine, empty).
func NewTruck(id int) *Truck {
	t := &Truck{ID: id}
	t.lifecycle = newLifecycle(t)
	return t
}

// Phase returns the truck's current lifecycle phase.
func (t *Truck) Phase() Phase {
	return Phase(t.lifecycle.Current())
}

// Loaded reports whether the truck is carrying a load.
func (t *Truck) Loaded() bool {
	return t.loaded
}

// TravelDone reports whether the truck is stationary at the end of a haul:
// at the mine ready to dig, or at the stations holding a load.
func (t *Truck) TravelDone() bool {
	switch t.Phase() {
	case PhaseReadyToMine, PhaseArrivedAtStation, PhaseQueued:
		return true
	}
	return false
}

// TotalMiningTime sums the recorded mining episodes.
func (t *Truck) TotalMiningTime() int64 {
	var total int64
	for _, m := range t.MiningTimes {
		total += m
	}
	return total
}

// BusyTime is the time spent traveling, mining, and unloading.
func (t *Truck) BusyTime() int64 {
	return t.TravelingTime + t.UnloadingTime + t.TotalMiningTime()
}
