package stats

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haul-sim/haul-sim/sim"
)

func fixtureReport(t *testing.T) *Report {
	t.Helper()
	third := sim.NewTruck(2)
	third.TravelingTime = 100
	third.MiningTimes = []int64{200}
	third.CompletedTrips = 3
	r, err := Collect(
		[]*sim.Truck{fixtureTruck(1), third},
		[]*sim.UnloadStation{fixtureStation(1, 10, 3)},
		400, 5,
	)
	require.NoError(t, err)
	return r
}

func TestReport_WriteTruckCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, fixtureReport(t).WriteTruckCSV(&buf))

	want := "truck_id,completed_trips,avg_trip_time [min],utilization_percent [%],idle_time [min],total_mining_time [min],traveling_time [min],unloading_time [min]\n" +
		"1,2,140,70,120,180,90,10\n" +
		"2,3,100,75,100,200,100,0\n"
	assert.Equal(t, want, buf.String())
}

func TestReport_WriteStationCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, fixtureReport(t).WriteStationCSV(&buf))

	want := "station_id,total_unloads,idle_time [min],utilization_percent [%],max_queue_length,final_queue_length\n" +
		"1,10,350,12.5,3,0\n"
	assert.Equal(t, want, buf.String())
}

func TestFormatFloat_RoundsToThreeDecimals(t *testing.T) {
	assert.Equal(t, "33.333", formatFloat(100.0/3))
	assert.Equal(t, "0", formatFloat(0))
	assert.Equal(t, "66.667", formatFloat(200.0/3))
}

func TestReport_WriteCSV_CreatesBothFilesWithHeaderAndRows(t *testing.T) {
	// GIVEN a report and an empty directory
	dir := t.TempDir()
	r := fixtureReport(t)

	// WHEN written
	truckPath, stationPath, err := r.WriteCSV(dir)
	require.NoError(t, err)

	// THEN both files exist with a header plus one row per entity
	assert.Equal(t, filepath.Join(dir, TruckCSVName), truckPath)
	assert.Equal(t, filepath.Join(dir, StationCSVName), stationPath)
	for path, rows := range map[string]int{truckPath: len(r.Trucks), stationPath: len(r.Stations)} {
		f, err := os.Open(path)
		require.NoError(t, err)
		records, err := csv.NewReader(f).ReadAll()
		f.Close()
		require.NoError(t, err)
		assert.Len(t, records, rows+1, path)
	}
}

func TestReport_WriteCSV_MissingDirectory_ReturnsError(t *testing.T) {
	_, _, err := fixtureReport(t).WriteCSV(filepath.Join(t.TempDir(), "missing", "nested"))
	assert.Error(t, err)
}
