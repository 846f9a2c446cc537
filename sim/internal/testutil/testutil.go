// Package testutil provides shared test infrastructure for the haul simulator.
// It consolidates deterministic mining sources and assertion helpers used
// across sim/ and its sub-package tests. It does not import sim, so sim's own
// in-package tests can use it.
package testutil

import (
	"math"
	"testing"
)

// SequenceMining returns Durations in order, wrapping around when exhausted.
// It satisfies sim.MiningDurationSource.
type SequenceMining struct {
	Durations []int64
	next      int
}

// NewSequenceMining creates a SequenceMining over durations.
func NewSequenceMining(durations ...int64) *SequenceMining {
	return &SequenceMining{Durations: durations}
}

// MiningDuration returns the next duration in the sequence.
func (s *SequenceMining) MiningDuration() int64 {
	d := s.Durations[s.next%len(s.Durations)]
	s.next++
	return d
}

// Draws returns how many durations have been handed out.
func (s *SequenceMining) Draws() int {
	return s.next
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
