package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two runs with the same SimulationKey and identical Config
// MUST produce identical truck and station counters.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemMining is the RNG subsystem for mining durations.
	// Uses the master seed directly so --seed maps onto the draw sequence.
	SubsystemMining = "mining"
)

// SubsystemReplica returns the subsystem name for Monte Carlo replica N.
func SubsystemReplica(id int) string {
	return fmt.Sprintf("replica_%d", id)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - For SubsystemMining: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.DeriveSeed(name)))
	p.subsystems[name] = rng
	return rng
}

// DeriveSeed returns the seed ForSubsystem would use for name, without
// creating an RNG. Replica runners use it to seed independent runs.
func (p *PartitionedRNG) DeriveSeed(name string) int64 {
	if name == SubsystemMining {
		return int64(p.key)
	}
	return int64(p.key) ^ fnv1a64(name)
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// === Mining duration sources ===

// MiningDurationSource yields the duration of the next mining episode, in minutes.
// It is the only source of randomness in a run.
type MiningDurationSource interface {
	MiningDuration() int64
}

// UniformMining draws durations uniformly from the inclusive range [Min, Max].
type UniformMining struct {
	Min, Max int64
	rng      *rand.Rand
}

// NewUniformMining returns a UniformMining backed by rng.
func NewUniformMining(rng *rand.Rand, lo, hi int64) *UniformMining {
	return &UniformMining{Min: lo, Max: hi, rng: rng}
}

// MiningDuration implements MiningDurationSource.
func (u *UniformMining) MiningDuration() int64 {
	return u.Min + u.rng.Int63n(u.Max-u.Min+1)
}

// FixedMining always returns the same duration. Useful for scenario runs
// where the draw is pinned to one end of the range.
type FixedMining int64

// MiningDuration implements MiningDurationSource.
func (f FixedMining) MiningDuration() int64 {
	return int64(f)
}
