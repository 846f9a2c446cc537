// Package stats turns the final state of a haul simulation into per-truck and
// per-station tables. It makes no scheduling decisions; it only reads entities
// after sim.Simulator.Run has returned.
package stats

import (
	"errors"
	"math"

	"github.com/haul-sim/haul-sim/sim"
)

// ErrEmptyDataset is returned when there is nothing to compute utilization over.
var ErrEmptyDataset = errors.New("empty dataset")

// TruckRow holds the statistics of one truck.
type TruckRow struct {
	TruckID        int
	CompletedTrips int
	TravelingTime  int64
	UnloadingTime  int64
	MiningTime     int64
	BusyTime       int64
	AvgTripTime    float64 // busy time per completed trip, 0 without trips
	UtilizationPct float64
	IdleTime       int64 // horizon - busy time, floored at 0
	MiningEpisodes []int64
}

// StationRow holds the statistics of one unloading station.
type StationRow struct {
	StationID        int
	TotalUnloads     int
	BusyTime         int64
	IdleTime         int64 // horizon - busy time
	UtilizationPct   float64
	MaxQueueLength   int
	FinalQueueLength int
}

// Report is the collector's output for one run.
type Report struct {
	Horizon  int64
	Trucks   []TruckRow
	Stations []StationRow
}

// FromSimulator collects a report from a simulator that has finished running.
func FromSimulator(s *sim.Simulator) (*Report, error) {
	cfg := s.Config()
	return Collect(s.Trucks(), s.Stations(), cfg.Horizon, cfg.UnloadingTime)
}

// Collect computes the per-truck and per-station rows.
func Collect(trucks []*sim.Truck, stations []*sim.UnloadStation, horizon, unloadingTime int64) (*Report, error) {
	if len(trucks) == 0 || len(stations) == 0 || horizon <= 0 {
		return nil, ErrEmptyDataset
	}
	r := &Report{
		Horizon:  horizon,
		Trucks:   make([]TruckRow, 0, len(trucks)),
		Stations: make([]StationRow, 0, len(stations)),
	}
	for _, t := range trucks {
		r.Trucks = append(r.Trucks, truckRow(t, horizon))
	}
	for _, st := range stations {
		busy := int64(st.TotalUnloads) * unloadingTime
		r.Stations = append(r.Stations, StationRow{
			StationID:        st.ID,
			TotalUnloads:     st.TotalUnloads,
			BusyTime:         busy,
			IdleTime:         horizon - busy,
			UtilizationPct:   percent(busy, horizon),
			MaxQueueLength:   st.MaxQueueLength,
			FinalQueueLength: st.QueueLen(),
		})
	}
	return r, nil
}

func truckRow(t *sim.Truck, horizon int64) TruckRow {
	busy := t.BusyTime()
	row := TruckRow{
		TruckID:        t.ID,
		CompletedTrips: t.CompletedTrips,
		TravelingTime:  t.TravelingTime,
		UnloadingTime:  t.UnloadingTime,
		MiningTime:     t.TotalMiningTime(),
		BusyTime:       busy,
		UtilizationPct: percent(busy, horizon),
		IdleTime:       max(0, horizon-busy),
		MiningEpisodes: append([]int64(nil), t.MiningTimes...),
	}
	if t.CompletedTrips > 0 {
		row.AvgTripTime = float64(busy) / float64(t.CompletedTrips)
	}
	return row
}

func percent(part, whole int64) float64 {
	return float64(part) / float64(whole) * 100
}

// round3 rounds to three decimals, the precision of the exported tables.
func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

// FleetSummary aggregates a report across all entities.
type FleetSummary struct {
	TotalTrips             int
	MeanTripsPerTruck      float64
	MeanTruckUtilization   float64
	MeanStationUtilization float64
	TotalUnloads           int
	MaxQueueLength         int
	TrucksQueuedAtHalt     int
}

// Fleet computes the fleet-wide summary of r.
func (r *Report) Fleet() FleetSummary {
	var fs FleetSummary
	for _, t := range r.Trucks {
		fs.TotalTrips += t.CompletedTrips
		fs.MeanTruckUtilization += t.UtilizationPct
	}
	for _, st := range r.Stations {
		fs.TotalUnloads += st.TotalUnloads
		fs.MeanStationUtilization += st.UtilizationPct
		fs.MaxQueueLength = max(fs.MaxQueueLength, st.MaxQueueLength)
		fs.TrucksQueuedAtHalt += st.FinalQueueLength
	}
	if n := len(r.Trucks); n > 0 {
		fs.MeanTripsPerTruck = float64(fs.TotalTrips) / float64(n)
		fs.MeanTruckUtilization /= float64(n)
	}
	if n := len(r.Stations); n > 0 {
		fs.MeanStationUtilization /= float64(n)
	}
	return fs
}
