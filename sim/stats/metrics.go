package stats

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// runMetrics exposes a Report as prometheus gauges. Values are a snapshot of
// the run's final state, not live counters.
type runMetrics struct {
	horizon          prometheus.Gauge
	truckTrips       *prometheus.GaugeVec
	truckUtilization *prometheus.GaugeVec
	truckIdle        *prometheus.GaugeVec
	miningEpisodes   prometheus.Histogram

	stationUnloads     *prometheus.GaugeVec
	stationUtilization *prometheus.GaugeVec
	stationMaxQueue    *prometheus.GaugeVec
	stationFinalQueue  *prometheus.GaugeVec
}

func newRunMetrics() *runMetrics {
	return &runMetrics{
		horizon: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "haulsim_horizon_minutes",
				Help: "Simulated horizon of the run.",
			},
		),
		truckTrips: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "haulsim_truck_completed_trips",
				Help: "Loads delivered by each truck.",
			},
			[]string{"truck"},
		),
		truckUtilization: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "haulsim_truck_utilization_percent",
				Help: "Busy time of each truck as a percentage of the horizon.",
			},
			[]string{"truck"},
		),
		truckIdle: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "haulsim_truck_idle_minutes",
				Help: "Horizon minus busy time of each truck, floored at zero.",
			},
			[]string{"truck"},
		),
		miningEpisodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "haulsim_mining_episode_minutes",
				Help:    "Duration of every mining episode across the fleet.",
				Buckets: prometheus.LinearBuckets(60, 30, 9), // 60 .. 300
			},
		),
		stationUnloads: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "haulsim_station_unloads",
				Help: "Unload operations admitted at each station.",
			},
			[]string{"station"},
		),
		stationUtilization: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "haulsim_station_utilization_percent",
				Help: "Booked unloading time of each station as a percentage of the horizon.",
			},
			[]string{"station"},
		),
		stationMaxQueue: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "haulsim_station_max_queue_length",
				Help: "Deepest FIFO observed at each station.",
			},
			[]string{"station"},
		),
		stationFinalQueue: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "haulsim_station_final_queue_length",
				Help: "Trucks still parked at each station when the run halted.",
			},
			[]string{"station"},
		),
	}
}

func (m *runMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.horizon, m.truckTrips, m.truckUtilization, m.truckIdle, m.miningEpisodes,
		m.stationUnloads, m.stationUtilization, m.stationMaxQueue, m.stationFinalQueue,
	}
}

func (m *runMetrics) observe(r *Report) {
	m.horizon.Set(float64(r.Horizon))
	for _, t := range r.Trucks {
		id := strconv.Itoa(t.TruckID)
		m.truckTrips.WithLabelValues(id).Set(float64(t.CompletedTrips))
		m.truckUtilization.WithLabelValues(id).Set(t.UtilizationPct)
		m.truckIdle.WithLabelValues(id).Set(float64(t.IdleTime))
		for _, d := range t.MiningEpisodes {
			m.miningEpisodes.Observe(float64(d))
		}
	}
	for _, st := range r.Stations {
		id := strconv.Itoa(st.StationID)
		m.stationUnloads.WithLabelValues(id).Set(float64(st.TotalUnloads))
		m.stationUtilization.WithLabelValues(id).Set(st.UtilizationPct)
		m.stationMaxQueue.WithLabelValues(id).Set(float64(st.MaxQueueLength))
		m.stationFinalQueue.WithLabelValues(id).Set(float64(st.FinalQueueLength))
	}
}

// Register publishes the report's values on reg.
func (r *Report) Register(reg prometheus.Registerer) error {
	m := newRunMetrics()
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	m.observe(r)
	return nil
}

// WriteMetrics writes the report in the node-exporter textfile format.
func (r *Report) WriteMetrics(path string) error {
	reg := prometheus.NewRegistry()
	if err := r.Register(reg); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, reg)
}
