package sim

import "github.com/sirupsen/logrus"

// allocate runs the station policy for a loaded truck that just arrived.
//
// An idle station (FreeAtTime <= now) is taken if one exists, preferring the
// lowest (FreeAtTime, ID). Otherwise the truck joins the FIFO of the station
// ranked lowest by (FreeAtTime, queue length, ID) and parks there with no
// pending event until a departing truck releases it.
func (s *Simulator) allocate(t *Truck) error {
	if st := s.pickIdleStation(); st != nil {
		return s.startUnloading(t, st)
	}

	st := s.pickQueueStation()
	logrus.Debugf("[t %05d] Truck %d: stations busy, queuing at station %d behind %d trucks",
		s.clock, t.ID, st.ID, st.QueueLen())
	if err := s.transition(t, TransitionEnqueue, st.ID); err != nil {
		return err
	}
	t.UnloadingSite = st.ID
	st.enqueue(t)
	for _, other := range s.stations {
		other.observeQueue()
	}
	return nil
}

// pickIdleStation returns the idle station with the lowest (FreeAtTime, ID), or nil.
func (s *Simulator) pickIdleStation() *UnloadStation {
	var best *UnloadStation
	for _, st := range s.stations {
		if !st.IsFree(s.clock) {
			continue
		}
		if best == nil || st.FreeAtTime < best.FreeAtTime ||
			(st.FreeAtTime == best.FreeAtTime && st.ID < best.ID) {
			best = st
		}
	}
	return best
}

// pickQueueStation ranks every station by (FreeAtTime, queue length, ID).
func (s *Simulator) pickQueueStation() *UnloadStation {
	best := s.stations[0]
	for _, st := range s.stations[1:] {
		switch {
		case st.FreeAtTime != best.FreeAtTime:
			if st.FreeAtTime < best.FreeAtTime {
				best = st
			}
		case st.QueueLen() != best.QueueLen():
			if st.QueueLen() < best.QueueLen() {
				best = st
			}
		case st.ID < best.ID:
			best = st
		}
	}
	return best
}

// release admits the head of the station's queue if the station is free.
// If it is still busy, the head stays parked until the next departure from
// this station checks again.
func (s *Simulator) release(stationID int) error {
	st := s.stationByID(stationID)
	if st == nil || st.QueueLen() == 0 || !st.IsFree(s.clock) {
		return nil
	}
	next := st.dequeue()
	logrus.Debugf("[t %05d] Truck %d released from station %d queue", s.clock, next.ID, st.ID)
	return s.startUnloading(next, st)
}
