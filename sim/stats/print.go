package stats

import (
	"fmt"
	"io"

	"github.com/gosuri/uitable"
)

// Print renders the truck and station tables followed by the fleet summary.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Truck Stats ===")
	trucks := uitable.New()
	trucks.AddRow("TRUCK", "TRIPS", "AVG TRIP [min]", "UTIL [%]", "IDLE [min]", "MINING [min]")
	for _, t := range r.Trucks {
		trucks.AddRow(t.TruckID, t.CompletedTrips, round3(t.AvgTripTime), round3(t.UtilizationPct), t.IdleTime, t.MiningTime)
	}
	fmt.Fprintln(w, trucks)

	fmt.Fprintln(w, "\n=== Station Stats ===")
	stations := uitable.New()
	stations.AddRow("STATION", "UNLOADS", "IDLE [min]", "UTIL [%]", "MAX QUEUE", "FINAL QUEUE")
	for _, st := range r.Stations {
		stations.AddRow(st.StationID, st.TotalUnloads, st.IdleTime, round3(st.UtilizationPct), st.MaxQueueLength, st.FinalQueueLength)
	}
	fmt.Fprintln(w, stations)

	fs := r.Fleet()
	fmt.Fprintln(w, "\n=== Fleet Summary ===")
	summary := uitable.New()
	summary.AddRow("Horizon [min]:", r.Horizon)
	summary.AddRow("Completed trips:", fs.TotalTrips)
	summary.AddRow("Mean trips per truck:", fmt.Sprintf("%.2f", fs.MeanTripsPerTruck))
	summary.AddRow("Mean truck utilization [%]:", fmt.Sprintf("%.2f", fs.MeanTruckUtilization))
	summary.AddRow("Mean station utilization [%]:", fmt.Sprintf("%.2f", fs.MeanStationUtilization))
	summary.AddRow("Max queue length:", fs.MaxQueueLength)
	summary.AddRow("Trucks queued at halt:", fs.TrucksQueuedAtHalt)
	fmt.Fprintln(w, summary)
}
