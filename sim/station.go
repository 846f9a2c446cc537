package sim

import "fmt"

// UnloadStation models an unloading point that serves one truck at a time.
type UnloadStation struct {
	ID int
	// FreeAtTime is the earliest time the station can accept another truck.
	// It never decreases.
	FreeAtTime     int64
	TotalUnloads   int
	MaxQueueLength int

	queue WaitQueue
}

// NewUnloadStation creates an idle station with an empty queue.
func NewUnloadStation(id int) *UnloadStation {
	return &UnloadStation{ID: id}
}

// IsFree reports whether the station can accept a truck at now.
func (s *UnloadStation) IsFree(now int64) bool {
	return s.FreeAtTime <= now
}

// QueueLen returns the number of trucks parked at the station.
func (s *UnloadStation) QueueLen() int {
	return s.queue.Len()
}

// Queue returns the parked trucks, head first. Callers must not modify it.
func (s *UnloadStation) Queue() []*Truck {
	return s.queue.Items()
}

// Peek returns the head of the queue without removing it, or nil.
func (s *UnloadStation) Peek() *Truck {
	return s.queue.Peek()
}

// enqueue appends t to the back of the FIFO.
func (s *UnloadStation) enqueue(t *Truck) {
	s.queue.Enqueue(t)
}

// dequeue removes and returns the head of the FIFO, or nil.
func (s *UnloadStation) dequeue() *Truck {
	return s.queue.Dequeue()
}

// admit books the station for one unload: the busy window is advanced from
// the station's own FreeAtTime, not from the admitting truck's arrival.
func (s *UnloadStation) admit(unloadingTime int64) {
	s.FreeAtTime += unloadingTime
	s.TotalUnloads++
}

// observeQueue raises MaxQueueLength if the current depth exceeds it.
func (s *UnloadStation) observeQueue() {
	s.MaxQueueLength = max(s.MaxQueueLength, s.queue.Len())
}

func (s *UnloadStation) String() string {
	return fmt.Sprintf("station %d free@%d %s", s.ID, s.FreeAtTime, &s.queue)
}
