package sim

import (
	"math"
	"testing"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// Same key+name produces same sequence
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	a := rng1.ForSubsystem(SubsystemReplica(3))
	b := rng2.ForSubsystem(SubsystemReplica(3))
	for i := 0; i < 3; i++ {
		if va, vb := a.Int63(), b.Int63(); va != vb {
			t.Fatalf("draw %d differs: %d vs %d", i, va, vb)
		}
	}
}

func TestPartitionedRNG_CachesInstances(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	if rng.ForSubsystem(SubsystemMining) != rng.ForSubsystem(SubsystemMining) {
		t.Error("expected the same *rand.Rand for repeated subsystem lookups")
	}
}

func TestPartitionedRNG_MiningUsesMasterSeed(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(99))
	if got := rng.DeriveSeed(SubsystemMining); got != 99 {
		t.Errorf("DeriveSeed(mining) = %d, want 99", got)
	}
	if got := rng.DeriveSeed(SubsystemReplica(0)); got == 99 {
		t.Error("replica seed must differ from the master seed")
	}
}

func TestPartitionedRNG_ReplicasAreIsolated(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	seen := make(map[int64]int)
	for i := 0; i < 50; i++ {
		seed := rng.DeriveSeed(SubsystemReplica(i))
		if prev, ok := seen[seed]; ok {
			t.Fatalf("replicas %d and %d share seed %d", prev, i, seed)
		}
		seen[seed] = i
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	key := NewSimulationKey(12345)
	if got := NewPartitionedRNG(key).Key(); got != key {
		t.Errorf("Key() = %d, want %d", got, key)
	}
}

// === Mining sources ===

func TestUniformMining_StaysWithinInclusiveRange(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(7)).ForSubsystem(SubsystemMining)
	src := NewUniformMining(rng, DefaultMiningMin, DefaultMiningMax)

	sawMin, sawMax := false, false
	for i := 0; i < 10000; i++ {
		d := src.MiningDuration()
		if d < DefaultMiningMin || d > DefaultMiningMax {
			t.Fatalf("draw %d = %d outside [%d, %d]", i, d, DefaultMiningMin, DefaultMiningMax)
		}
		sawMin = sawMin || d == DefaultMiningMin
		sawMax = sawMax || d == DefaultMiningMax
	}
	if !sawMin || !sawMax {
		t.Errorf("expected both range ends to be drawn (min=%v, max=%v)", sawMin, sawMax)
	}
}

func TestUniformMining_SinglePointRange(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(7)).ForSubsystem(SubsystemMining)
	src := NewUniformMining(rng, 60, 60)
	for i := 0; i < 10; i++ {
		if d := src.MiningDuration(); d != 60 {
			t.Fatalf("got %d, want 60", d)
		}
	}
}

func TestFixedMining(t *testing.T) {
	if got := FixedMining(60).MiningDuration(); got != 60 {
		t.Errorf("FixedMining(60) = %d", got)
	}
}
