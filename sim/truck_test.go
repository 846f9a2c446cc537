package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruck_BusyTime_SumsAllActivities(t *testing.T) {
	// GIVEN a truck with two mining episodes and one trip booked
	tr := NewTruck(1)
	tr.MiningTimes = []int64{60, 245}
	tr.TravelingTime = 90
	tr.UnloadingTime = 5

	// THEN mining is summed and busy time adds travel and unloading
	assert.Equal(t, int64(305), tr.TotalMiningTime())
	assert.Equal(t, int64(400), tr.BusyTime())
}

func TestTruck_NoActivity_ZeroBusy(t *testing.T) {
	tr := NewTruck(2)
	assert.Equal(t, int64(0), tr.TotalMiningTime())
	assert.Equal(t, int64(0), tr.BusyTime())
}
