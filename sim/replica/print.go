package replica

import (
	"fmt"
	"io"

	"github.com/gosuri/uitable"
)

// Print renders the aggregate as a table of mean, min and max per quantity.
func (a Aggregate) Print(w io.Writer) {
	fmt.Fprintf(w, "=== Replica Summary (%d runs) ===\n", a.Replicas)
	table := uitable.New()
	table.AddRow("QUANTITY", "MEAN", "MIN", "MAX")
	rows := []struct {
		name string
		sp   Spread
	}{
		{"Completed trips", a.TotalTrips},
		{"Truck utilization [%]", a.MeanTruckUtilization},
		{"Station utilization [%]", a.MeanStationUtilization},
		{"Max queue length", a.MaxQueueLength},
	}
	for _, row := range rows {
		table.AddRow(row.name,
			fmt.Sprintf("%.2f", row.sp.Mean),
			fmt.Sprintf("%.2f", row.sp.Min),
			fmt.Sprintf("%.2f", row.sp.Max))
	}
	fmt.Fprintln(w, table)
}
