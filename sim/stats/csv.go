package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Output file names written by WriteCSV.
const (
	TruckCSVName   = "sim_truck_stats.csv"
	StationCSVName = "sim_station_stats.csv"
)

var truckHeader = []string{
	"truck_id",
	"completed_trips",
	"avg_trip_time [min]",
	"utilization_percent [%]",
	"idle_time [min]",
	"total_mining_time [min]",
	"traveling_time [min]",
	"unloading_time [min]",
}

var stationHeader = []string{
	"station_id",
	"total_unloads",
	"idle_time [min]",
	"utilization_percent [%]",
	"max_queue_length",
	"final_queue_length",
}

// WriteCSV writes the truck and station tables into dir and returns their paths.
func (r *Report) WriteCSV(dir string) (truckPath, stationPath string, err error) {
	truckPath = filepath.Join(dir, TruckCSVName)
	stationPath = filepath.Join(dir, StationCSVName)
	if err := writeFile(truckPath, r.WriteTruckCSV); err != nil {
		return "", "", err
	}
	if err := writeFile(stationPath, r.WriteStationCSV); err != nil {
		return "", "", err
	}
	return truckPath, stationPath, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// WriteTruckCSV writes the header and one row per truck.
func (r *Report) WriteTruckCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(truckHeader); err != nil {
		return err
	}
	for _, t := range r.Trucks {
		record := []string{
			strconv.Itoa(t.TruckID),
			strconv.Itoa(t.CompletedTrips),
			formatFloat(t.AvgTripTime),
			formatFloat(t.UtilizationPct),
			strconv.FormatInt(t.IdleTime, 10),
			strconv.FormatInt(t.MiningTime, 10),
			strconv.FormatInt(t.TravelingTime, 10),
			strconv.FormatInt(t.UnloadingTime, 10),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStationCSV writes the header and one row per station.
func (r *Report) WriteStationCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(stationHeader); err != nil {
		return err
	}
	for _, st := range r.Stations {
		record := []string{
			strconv.Itoa(st.StationID),
			strconv.Itoa(st.TotalUnloads),
			strconv.FormatInt(st.IdleTime, 10),
			formatFloat(st.UtilizationPct),
			strconv.Itoa(st.MaxQueueLength),
			strconv.Itoa(st.FinalQueueLength),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(round3(x), 'f', -1, 64)
}
