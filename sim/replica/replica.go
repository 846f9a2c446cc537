// Package replica runs independent seeded copies of a haul simulation
// concurrently and aggregates their reports.
package replica

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/haul-sim/haul-sim/sim"
	"github.com/haul-sim/haul-sim/sim/stats"
)

// Result is the outcome of one replica.
type Result struct {
	Index           int
	Seed            int64
	Clock           int64
	EventsProcessed int
	Report          *stats.Report
}

// Seeds returns the seed of each of n replicas derived from cfg.Seed.
// Replica i always receives the same seed, whatever the parallelism.
func Seeds(cfg sim.Config, n int) []int64 {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = rng.DeriveSeed(sim.SubsystemReplica(i))
	}
	return seeds
}

// Run executes n replicas of cfg with at most parallelism running at once.
// A parallelism of zero or less means one worker per replica. Results are
// ordered by replica index. ctx is checked before each replica starts; a
// replica that has started always runs to its horizon.
func Run(ctx context.Context, cfg sim.Config, n, parallelism int) ([]Result, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: replica count must be positive, got %d", sim.ErrInvalidConfiguration, n)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if parallelism <= 0 {
		parallelism = n
	}

	seeds := Seeds(cfg, n)
	results := make([]Result, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, seed := range seeds {
		i, seed := i, seed
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := runOne(cfg, i, seed)
			if err != nil {
				return fmt.Errorf("replica %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runOne(cfg sim.Config, index int, seed int64) (Result, error) {
	cfg.Seed = seed
	s, err := sim.NewSimulator(cfg)
	if err != nil {
		return Result{}, err
	}
	if err := s.Run(); err != nil {
		return Result{}, err
	}
	report, err := stats.FromSimulator(s)
	if err != nil {
		return Result{}, err
	}
	logrus.WithFields(logrus.Fields{
		"replica": index,
		"seed":    seed,
	}).Infof("Replica finished at t=%d after %d events", s.Clock(), s.EventsProcessed())
	return Result{
		Index:           index,
		Seed:            seed,
		Clock:           s.Clock(),
		EventsProcessed: s.EventsProcessed(),
		Report:          report,
	}, nil
}

// Spread summarizes one quantity across replicas.
type Spread struct {
	Mean float64
	Min  float64
	Max  float64
}

func spreadOf(values []float64) Spread {
	if len(values) == 0 {
		return Spread{}
	}
	sp := Spread{Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for _, v := range values {
		sum += v
		sp.Min = math.Min(sp.Min, v)
		sp.Max = math.Max(sp.Max, v)
	}
	sp.Mean = sum / float64(len(values))
	return sp
}

// Aggregate is the fleet summary of every replica reduced to spreads.
type Aggregate struct {
	Replicas               int
	TotalTrips             Spread
	MeanTruckUtilization   Spread
	MeanStationUtilization Spread
	MaxQueueLength         Spread
}

// Summarize reduces results to an Aggregate.
func Summarize(results []Result) Aggregate {
	trips := make([]float64, 0, len(results))
	truckUtil := make([]float64, 0, len(results))
	stationUtil := make([]float64, 0, len(results))
	maxQueue := make([]float64, 0, len(results))
	for _, r := range results {
		fs := r.Report.Fleet()
		trips = append(trips, float64(fs.TotalTrips))
		truckUtil = append(truckUtil, fs.MeanTruckUtilization)
		stationUtil = append(stationUtil, fs.MeanStationUtilization)
		maxQueue = append(maxQueue, float64(fs.MaxQueueLength))
	}
	return Aggregate{
		Replicas:               len(results),
		TotalTrips:             spreadOf(trips),
		MeanTruckUtilization:   spreadOf(truckUtil),
		MeanStationUtilization: spreadOf(stationUtil),
		MaxQueueLength:         spreadOf(maxQueue),
	}
}
