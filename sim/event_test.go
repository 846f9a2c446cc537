package sim

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueue_Pop_TimestampOrdering(t *testing.T) {
	// GIVEN events pushed out of time order
	q := NewEventQueue()
	q.Push(100, NewTruck(1))
	q.Push(50, NewTruck(2))
	q.Push(150, NewTruck(3))

	// WHEN popped
	// THEN they come back 50, 100, 150
	for _, want := range []int64{50, 100, 150} {
		ev, err := q.Pop()
		require.NoError(t, err)
		assert.Equal(t, want, ev.Time)
	}
	assert.Equal(t, 0, q.Len())
}

func TestEventQueue_Pop_EqualTimesBreakTiesByTruckID(t *testing.T) {
	// GIVEN three trucks due at the same time, pushed in reverse ID order
	q := NewEventQueue()
	q.Push(30, NewTruck(3))
	q.Push(30, NewTruck(1))
	q.Push(30, NewTruck(2))

	// WHEN popped
	// THEN truck IDs come back ascending
	for _, want := range []int{1, 2, 3} {
		ev, err := q.Pop()
		require.NoError(t, err)
		assert.Equal(t, want, ev.Truck.ID)
	}
}

func TestEventQueue_Pop_Empty_ReturnsErrEmptyQueue(t *testing.T) {
	q := NewEventQueue()
	_, err := q.Pop()
	if !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("Pop on empty queue: got %v, want ErrEmptyQueue", err)
	}
}

func TestEventQueue_Peek_DoesNotRemove(t *testing.T) {
	q := NewEventQueue()
	_, ok := q.Peek()
	assert.False(t, ok)

	q.Push(10, NewTruck(4))
	ev, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, int64(10), ev.Time)
	assert.Equal(t, 1, q.Len())
}

func TestEventQueue_RandomPushes_PopInKeyOrder(t *testing.T) {
	// GIVEN many events with colliding timestamps
	rng := rand.New(rand.NewSource(3))
	q := NewEventQueue()
	trucks := make([]*Truck, 200)
	for i := range trucks {
		trucks[i] = NewTruck(i + 1)
		q.Push(int64(rng.Intn(20)), trucks[i])
	}

	// WHEN drained
	// THEN every pop is >= the previous one in (time, truck ID) order
	prev, err := q.Pop()
	require.NoError(t, err)
	for q.Len() > 0 {
		ev, err := q.Pop()
		require.NoError(t, err)
		if ev.Time < prev.Time || (ev.Time == prev.Time && ev.Truck.ID < prev.Truck.ID) {
			t.Fatalf("out of order: (%d, %d) after (%d, %d)", ev.Time, ev.Truck.ID, prev.Time, prev.Truck.ID)
		}
		prev = ev
	}
}
