package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"
)

// Phase is a truck's position in the haul cycle. A truck stays in a phase
// until its next event fires, except ReadyToTravel, which is entered and left
// within a single event.
type Phase string

const (
	// PhaseReadyToMine: driving empty to the mine; the next event starts mining.
	PhaseReadyToMine Phase = "ReadyToMine"
	// PhaseMining: loading at the mine; the next event ends the episode.
	PhaseMining Phase = "Mining"
	// PhaseReadyToTravel: just finished mining or unloading, about to leave.
	PhaseReadyToTravel Phase = "ReadyToTravel"
	// PhaseArrivedAtStation: hauling a load; the next event runs station allocation.
	PhaseArrivedAtStation Phase = "ArrivedAtStation"
	// PhaseQueued: parked in a station FIFO with no pending event.
	PhaseQueued Phase = "Queued"
	// PhaseUnloading: occupying a station; the next event ends the unload.
	PhaseUnloading Phase = "Unloading"
)

// Phases lists every phase in cycle order.
var Phases = []Phase{
	PhaseReadyToMine,
	PhaseMining,
	PhaseReadyToTravel,
	PhaseArrivedAtStation,
	PhaseQueued,
	PhaseUnloading,
}

// Lifecycle transition names.
const (
	TransitionBeginMining     = "begin_mining"
	TransitionFinishMining    = "finish_mining"
	TransitionHaul            = "haul"
	TransitionReturn          = "return"
	TransitionUnload          = "unload"
	TransitionEnqueue         = "enqueue"
	TransitionFinishUnloading = "finish_unloading"
)

// ErrInvalidTransition is returned when a truck is asked to make a move its
// current phase does not allow. It always indicates a scheduling bug.
var ErrInvalidTransition = errors.New("invalid truck transition")

var lifecycleEvents = fsm.Events{
	{Name: TransitionBeginMining, Src: []string{string(PhaseReadyToMine)}, Dst: string(PhaseMining)},
	{Name: TransitionFinishMining, Src: []string{string(PhaseMining)}, Dst: string(PhaseReadyToTravel)},
	{Name: TransitionHaul, Src: []string{string(PhaseReadyToTravel)}, Dst: string(PhaseArrivedAtStation)},
	{Name: TransitionReturn, Src: []string{string(PhaseReadyToTravel)}, Dst: string(PhaseReadyToMine)},
	{Name: TransitionEnqueue, Src: []string{string(PhaseArrivedAtStation)}, Dst: string(PhaseQueued)},
	{Name: TransitionUnload, Src: []string{string(PhaseArrivedAtStation), string(PhaseQueued)}, Dst: string(PhaseUnloading)},
	{Name: TransitionFinishUnloading, Src: []string{string(PhaseUnloading)}, Dst: string(PhaseReadyToTravel)},
}

// newLifecycle builds the phase machine for t. Entering Mining picks up a
// load and entering Unloading drops it, so Loaded() always agrees with the phase.
func newLifecycle(t *Truck) *fsm.FSM {
	return fsm.NewFSM(
		string(PhaseReadyToMine),
		lifecycleEvents,
		fsm.Callbacks{
			"enter_" + string(PhaseMining): func(_ context.Context, _ *fsm.Event) {
				t.loaded = true
			},
			"enter_" + string(PhaseUnloading): func(_ context.Context, _ *fsm.Event) {
				t.loaded = false
			},
		},
	)
}

// CanTransition reports whether from --name--> is an edge of the lifecycle.
func CanTransition(from Phase, name string) (Phase, bool) {
	for _, ev := range lifecycleEvents {
		if ev.Name != name {
			continue
		}
		for _, src := range ev.Src {
			if src == string(from) {
				return Phase(ev.Dst), true
			}
		}
	}
	return "", false
}

// fire applies a lifecycle transition to the truck.
func (t *Truck) fire(name string) error {
	if err := t.lifecycle.Event(context.Background(), name); err != nil {
		return fmt.Errorf("%w: truck %d %s in phase %s: %v", ErrInvalidTransition, t.ID, name, t.Phase(), err)
	}
	return nil
}
