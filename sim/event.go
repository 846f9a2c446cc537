package sim

import (
	"container/heap"
	"errors"
)

// ErrEmptyQueue is returned when popping an event queue that has no events.
// The engine treats it as a scheduling bug: the horizon check should always
// end a run before the queue drains.
var ErrEmptyQueue = errors.New("event queue is empty")

// Event marks a truck as due for a state check at Time.
type Event struct {
	Time  int64
	Truck *Truck
}

// eventHeap implements heap.Interface ordered by (Time, Truck.ID).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].Truck.ID < h[j].Truck.ID
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = Event{}
	*h = old[0 : n-1]
	return item
}

// EventQueue is a min-priority queue of pending truck events with
// deterministic tie-breaking by truck ID.
type EventQueue struct {
	events eventHeap
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{events: make(eventHeap, 0)}
}

// Push schedules truck for a state check at time.
func (q *EventQueue) Push(time int64, truck *Truck) {
	heap.Push(&q.events, Event{Time: time, Truck: truck})
}

// Pop removes and returns the earliest event.
func (q *EventQueue) Pop() (Event, error) {
	if len(q.events) == 0 {
		return Event{}, ErrEmptyQueue
	}
	return heap.Pop(&q.events).(Event), nil
}

// Peek returns the earliest event without removing it.
func (q *EventQueue) Peek() (Event, bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	return q.events[0], true
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.events)
}
