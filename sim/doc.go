// Package sim provides the core discrete-event simulation engine for a fleet
// of haul trucks cycling between a mine and a set of unloading stations.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - lifecycle.go: Phase enumeration and the truck state machine
//   - event.go: the (time, truck ID) ordered event queue
//   - simulator.go: the event loop and per-phase transitions
//   - allocation.go: station selection, FIFO parking and release
//
// # Time
//
// All times are integer minutes of simulated time. A run starts at 0 with
// every truck driving out to the mine and halts at the first event at or
// past Config.Horizon.
//
// # Sub-packages
//
//   - sim/trace/: optional per-transition recording
//   - sim/stats/: statistics collection, CSV and metrics export
//   - sim/replica/: independent seeded replicas run concurrently
package sim
