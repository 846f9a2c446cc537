package replica

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haul-sim/haul-sim/sim"
)

func replicaConfig() sim.Config {
	cfg := sim.NewConfig(8, 2, 42)
	cfg.Horizon = 1500
	return cfg
}

func TestRun_SameKey_IdenticalRegardlessOfParallelism(t *testing.T) {
	// GIVEN the same config run sequentially and with four workers
	cfg := replicaConfig()
	serial, err := Run(context.Background(), cfg, 6, 1)
	require.NoError(t, err)
	parallel, err := Run(context.Background(), cfg, 6, 4)
	require.NoError(t, err)

	// THEN every replica matches its counterpart exactly
	require.Len(t, serial, 6)
	require.Len(t, parallel, 6)
	for i := range serial {
		assert.Equal(t, i, serial[i].Index)
		assert.Equal(t, serial[i].Seed, parallel[i].Seed)
		assert.Equal(t, serial[i].Clock, parallel[i].Clock)
		assert.Equal(t, serial[i].Report, parallel[i].Report, "replica %d", i)
	}
	assert.Equal(t, Summarize(serial), Summarize(parallel))
}

func TestSeeds_DistinctAndStable(t *testing.T) {
	cfg := replicaConfig()
	a := Seeds(cfg, 5)
	b := Seeds(cfg, 8)

	assert.Equal(t, a, b[:5], "prefix must not depend on the replica count")
	seen := make(map[int64]bool)
	for _, s := range b {
		assert.False(t, seen[s], "duplicate seed %d", s)
		seen[s] = true
	}

	other := cfg
	other.Seed = 43
	assert.NotEqual(t, a, Seeds(other, 5))
}

func TestRun_ReplicaMatchesDirectRunWithDerivedSeed(t *testing.T) {
	cfg := replicaConfig()
	results, err := Run(context.Background(), cfg, 2, 0)
	require.NoError(t, err)

	direct := cfg
	direct.Seed = results[1].Seed
	s, err := sim.NewSimulator(direct)
	require.NoError(t, err)
	require.NoError(t, s.Run())
	assert.Equal(t, s.Clock(), results[1].Clock)
	assert.Equal(t, s.EventsProcessed(), results[1].EventsProcessed)
}

func TestRun_InvalidInputs(t *testing.T) {
	bad := replicaConfig()
	bad.NumStations = 0
	tests := []struct {
		name string
		cfg  sim.Config
		n    int
	}{
		{"zero replicas", replicaConfig(), 0},
		{"invalid config", bad, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Run(context.Background(), tc.cfg, tc.n, 1)
			assert.True(t, errors.Is(err, sim.ErrInvalidConfiguration), "got %v", err)
		})
	}
}

func TestRun_CancelledContext_ReturnsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, replicaConfig(), 3, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize_Spreads(t *testing.T) {
	results, err := Run(context.Background(), replicaConfig(), 4, 2)
	require.NoError(t, err)

	agg := Summarize(results)
	assert.Equal(t, 4, agg.Replicas)
	for _, sp := range []Spread{agg.TotalTrips, agg.MeanTruckUtilization, agg.MeanStationUtilization, agg.MaxQueueLength} {
		assert.LessOrEqual(t, sp.Min, sp.Mean)
		assert.LessOrEqual(t, sp.Mean, sp.Max)
	}
	assert.Greater(t, agg.TotalTrips.Min, 0.0)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Aggregate{}, Summarize(nil))
}

func TestAggregate_Print(t *testing.T) {
	var buf bytes.Buffer
	Aggregate{Replicas: 2, TotalTrips: Spread{Mean: 10, Min: 9, Max: 11}}.Print(&buf)
	out := buf.String()
	assert.Contains(t, out, "=== Replica Summary (2 runs) ===")
	assert.Contains(t, out, "Completed trips")
	assert.Contains(t, out, "10.00")
}
