// sim/simulator.go
package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/haul-sim/haul-sim/sim/trace"
)

// Simulator is the core object that holds simulation time, the fleet, the
// stations, and the event loop. It owns every entity for the lifetime of a run.
type Simulator struct {
	cfg   Config
	clock int64
	// events holds exactly one pending event per truck that is not Queued.
	events   *EventQueue
	trucks   []*Truck
	stations []*UnloadStation
	mining   MiningDurationSource
	rng      *PartitionedRNG
	trace    *trace.SimulationTrace

	eventsProcessed int
	started         bool
}

// Option customizes a Simulator at construction.
type Option func(*Simulator)

// WithMiningSource replaces the seeded uniform mining draw.
func WithMiningSource(src MiningDurationSource) Option {
	return func(s *Simulator) {
		s.mining = src
	}
}

// WithTrace records every lifecycle transition into st.
func WithTrace(st *trace.SimulationTrace) Option {
	return func(s *Simulator) {
		s.trace = st
	}
}

// NewSimulator validates cfg and builds the fleet and stations.
func NewSimulator(cfg Config, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulator{
		cfg:      cfg,
		events:   NewEventQueue(),
		trucks:   make([]*Truck, cfg.NumTrucks),
		stations: make([]*UnloadStation, cfg.NumStations),
		rng:      NewPartitionedRNG(NewSimulationKey(cfg.Seed)),
	}
	for i := range s.trucks {
		s.trucks[i] = NewTruck(i + 1)
	}
	for i := range s.stations {
		s.stations[i] = NewUnloadStation(i + 1)
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.mining == nil {
		s.mining = NewUniformMining(s.rng.ForSubsystem(SubsystemMining), cfg.MiningMin, cfg.MiningMax)
	}
	return s, nil
}

// Config returns the configuration the simulator was built with.
func (s *Simulator) Config() Config { return s.cfg }

// Clock returns the current simulated time. After Run it is the timestamp of
// the event that ended the run.
func (s *Simulator) Clock() int64 { return s.clock }

// Trucks returns the fleet, ordered by ID.
func (s *Simulator) Trucks() []*Truck { return s.trucks }

// Stations returns the unloading stations, ordered by ID.
func (s *Simulator) Stations() []*UnloadStation { return s.stations }

// PendingEvents returns the number of scheduled but unprocessed events.
func (s *Simulator) PendingEvents() int { return s.events.Len() }

// EventsProcessed returns the number of events handled before the horizon.
func (s *Simulator) EventsProcessed() int { return s.eventsProcessed }

// Run dispatches every truck toward the mine and processes events until the
// clock reaches the horizon. Events still pending at that point are discarded.
func (s *Simulator) Run() error {
	if s.started {
		return errors.New("simulator already ran")
	}
	s.dispatch()
	for {
		halted, err := s.advance()
		if err != nil {
			return err
		}
		if halted {
			break
		}
	}
	logrus.Infof("[t %05d] Simulation ended after %d events", s.clock, s.eventsProcessed)
	return nil
}

// dispatch sends every truck on the initial haul from the depot to the mine.
func (s *Simulator) dispatch() {
	s.started = true
	for _, t := range s.trucks {
		t.TravelingTime += s.cfg.TravelTime
		s.schedule(s.cfg.TravelTime, t)
	}
}

// advance pops one event and applies it. It reports true once the popped
// event is at or past the horizon; that event is dropped unprocessed.
func (s *Simulator) advance() (bool, error) {
	ev, err := s.events.Pop()
	if err != nil {
		return false, fmt.Errorf("[t %05d] %w", s.clock, err)
	}
	s.clock = ev.Time
	if s.clock >= s.cfg.Horizon {
		logrus.Infof("[t %05d] Horizon %d reached, %d events discarded", s.clock, s.cfg.Horizon, s.events.Len()+1)
		return true, nil
	}
	s.eventsProcessed++
	return false, s.step(ev.Truck)
}

func (s *Simulator) schedule(at int64, t *Truck) {
	s.events.Push(at, t)
}

// step applies the transition owed to t at the current clock.
func (s *Simulator) step(t *Truck) error {
	switch t.Phase() {
	case PhaseReadyToMine:
		return s.beginMining(t)
	case PhaseMining:
		return s.finishMining(t)
	case PhaseArrivedAtStation:
		return s.allocate(t)
	case PhaseUnloading:
		return s.finishUnloading(t)
	default:
		return fmt.Errorf("%w: truck %d has a pending event in phase %s", ErrInvalidTransition, t.ID, t.Phase())
	}
}

func (s *Simulator) beginMining(t *Truck) error {
	d := s.mining.MiningDuration()
	if err := s.transition(t, TransitionBeginMining, 0); err != nil {
		return err
	}
	t.MiningTimes = append(t.MiningTimes, d)
	logrus.Debugf("[t %05d] Truck %d mining for %d min", s.clock, t.ID, d)
	s.schedule(s.clock+d, t)
	return nil
}

func (s *Simulator) finishMining(t *Truck) error {
	if err := s.transition(t, TransitionFinishMining, 0); err != nil {
		return err
	}
	return s.travel(t)
}

// travel sends a ReadyToTravel truck to the stations if loaded, to the mine otherwise.
func (s *Simulator) travel(t *Truck) error {
	name := TransitionReturn
	if t.Loaded() {
		name = TransitionHaul
	}
	if err := s.transition(t, name, 0); err != nil {
		return err
	}
	t.TravelingTime += s.cfg.TravelTime
	s.schedule(s.clock+s.cfg.TravelTime, t)
	return nil
}

// startUnloading books st for t and schedules the end of the unload.
func (s *Simulator) startUnloading(t *Truck, st *UnloadStation) error {
	if err := s.transition(t, TransitionUnload, st.ID); err != nil {
		return err
	}
	st.admit(s.cfg.UnloadingTime)
	t.UnloadingSite = st.ID
	t.CompletedTrips++
	t.UnloadingTime += s.cfg.UnloadingTime
	logrus.Debugf("[t %05d] Truck %d unloading at station %d", s.clock, t.ID, st.ID)
	s.schedule(s.clock+s.cfg.UnloadingTime, t)
	return nil
}

func (s *Simulator) finishUnloading(t *Truck) error {
	site := t.UnloadingSite
	if err := s.transition(t, TransitionFinishUnloading, site); err != nil {
		return err
	}
	if err := s.travel(t); err != nil {
		return err
	}
	t.UnloadingSite = 0
	return s.release(site)
}

func (s *Simulator) transition(t *Truck, name string, station int) error {
	from := t.Phase()
	if err := t.fire(name); err != nil {
		return fmt.Errorf("[t %05d] %w", s.clock, err)
	}
	logrus.Debugf("[t %05d] Truck %d: %s -> %s", s.clock, t.ID, from, t.Phase())
	if s.trace != nil && s.trace.Config.Level == trace.TraceLevelTransitions {
		s.trace.RecordTransition(trace.TransitionRecord{
			Time:       s.clock,
			TruckID:    t.ID,
			Transition: name,
			From:       string(from),
			To:         string(t.Phase()),
			StationID:  station,
		})
	}
	return nil
}

// stationByID returns the station with the given ID, or nil.
func (s *Simulator) stationByID(id int) *UnloadStation {
	if id < 1 || id > len(s.stations) {
		return nil
	}
	return s.stations[id-1]
}
