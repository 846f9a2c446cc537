// Implements the WaitQueue, which holds the loaded trucks parked at a station.
// Trucks are enqueued when every station is busy on arrival

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue represents an unbounded FIFO of trucks waiting for one station.
// A truck in the queue has no pending event; it is moved out only by a
// departure from the same station.
type WaitQueue struct {
	queue []*Truck // FIFO queue of trucks
}

// Enqueue adds a truck to the back of the wait queue.
func (wq *WaitQueue) Enqueue(t *Truck) {
	wq.queue = append(wq.queue, t)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, t := range wq.queue {
		sb.WriteString(fmt.Sprint(t.ID))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of trucks in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Peek returns the truck at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Peek() *Truck {
	if len(wq.queue) == 0 {
		return nil
	}
	return wq.queue[0]
}

// Items returns the queue contents, head first.
// The returned slice is the queue's internal storage; callers MUST NOT
// append to or reslice it.
func (wq *WaitQueue) Items() []*Truck {
	return wq.queue
}

// Dequeue removes and returns the truck at the front of the queue, or nil.
func (wq *WaitQueue) Dequeue() *Truck {
	if len(wq.queue) == 0 {
		return nil
	}
	head := wq.queue[0]
	wq.queue[0] = nil
	wq.queue = wq.queue[1:]
	return head
}
