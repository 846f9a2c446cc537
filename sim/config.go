package sim

import (
	"errors"
	"fmt"
)

// Default durations, in simulated minutes.
const (
	DefaultUnloadingTime int64 = 5
	DefaultTravelTime    int64 = 30
	DefaultMiningMin     int64 = 1 * 60
	DefaultMiningMax     int64 = 5 * 60
	DefaultHorizon       int64 = 72 * 60
)

// ErrInvalidConfiguration is returned for configurations that cannot be simulated.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Config groups the parameters of a single run. All durations are in minutes.
type Config struct {
	NumTrucks     int   // fleet size (must be > 0)
	NumStations   int   // unloading stations (must be > 0)
	Horizon       int64 // run halts at the first event at or past this time
	UnloadingTime int64 // exclusive station busy window per truck
	TravelTime    int64 // one-way haul between mine and stations
	MiningMin     int64 // inclusive lower bound of the mining draw
	MiningMax     int64 // inclusive upper bound of the mining draw
	Seed          int64 // master seed for the run's PartitionedRNG
}

// NewConfig returns a Config for the given fleet with default durations and horizon.
func NewConfig(numTrucks, numStations int, seed int64) Config {
	return Config{
		NumTrucks:     numTrucks,
		NumStations:   numStations,
		Horizon:       DefaultHorizon,
		UnloadingTime: DefaultUnloadingTime,
		TravelTime:    DefaultTravelTime,
		MiningMin:     DefaultMiningMin,
		MiningMax:     DefaultMiningMax,
		Seed:          seed,
	}
}

// Validate reports the first problem found, wrapped in ErrInvalidConfiguration.
func (c Config) Validate() error {
	switch {
	case c.NumTrucks <= 0:
		return fmt.Errorf("%w: number of trucks must be positive, got %d", ErrInvalidConfiguration, c.NumTrucks)
	case c.NumStations <= 0:
		return fmt.Errorf("%w: number of stations must be positive, got %d", ErrInvalidConfiguration, c.NumStations)
	case c.Horizon <= 0:
		return fmt.Errorf("%w: horizon must be positive, got %d", ErrInvalidConfiguration, c.Horizon)
	case c.UnloadingTime <= 0:
		return fmt.Errorf("%w: unloading time must be positive, got %d", ErrInvalidConfiguration, c.UnloadingTime)
	case c.TravelTime <= 0:
		return fmt.Errorf("%w: travel time must be positive, got %d", ErrInvalidConfiguration, c.TravelTime)
	case c.MiningMin <= 0:
		return fmt.Errorf("%w: minimum mining time must be positive, got %d", ErrInvalidConfiguration, c.MiningMin)
	case c.MiningMax < c.MiningMin:
		return fmt.Errorf("%w: mining range [%d, %d] is empty", ErrInvalidConfiguration, c.MiningMin, c.MiningMax)
	}
	return nil
}
