package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/haul-sim/haul-sim/sim"
	"github.com/haul-sim/haul-sim/sim/replica"
	"github.com/haul-sim/haul-sim/sim/stats"
	"github.com/haul-sim/haul-sim/sim/trace"
)

// errMissingFleet is returned when neither flags nor a preset size the fleet.
var errMissingFleet = errors.New("number of trucks (-n) and stations (-m) are required")

var (
	// Scenario
	numTrucks   int    // Fleet size
	numStations int    // Unloading stations
	horizon     int64  // Simulated minutes before the run halts
	unloadTime  int64  // Minutes a truck occupies a station
	travelTime  int64  // One-way minutes between mine and stations
	miningMin   int64  // Lower bound of the uniform mining draw
	miningMax   int64  // Upper bound of the uniform mining draw
	seed        int64  // Master seed
	presetName  string // Named scenario from the presets file
	presetsFile string // Path to the presets YAML

	// Output
	logLevel    string // Log verbosity level
	logFile     string // Optional file receiving the log instead of stderr
	outputDir   string // Directory for the CSV reports
	summary     bool   // Print the stat tables to stdout
	metricsFile string // Optional prometheus textfile destination
	traceLevel  string // none | transitions

	// Monte Carlo
	replicas    int // Independent replicas; 1 runs a single simulation
	parallelism int // Replicas running at once; 0 means all
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "haul-sim",
	Short: "Discrete-event simulator for a mining haul-truck fleet",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the haul simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
		if logFile != "" {
			f, err := os.Create(logFile)
			if err != nil {
				logrus.Fatalf("Failed to open log file: %v", err)
			}
			defer f.Close()
			logrus.SetOutput(f)
		}

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level %q; valid levels: none, transitions", traceLevel)
		}

		var preset *Preset
		if presetName != "" {
			pf, err := loadPresets(presetsFile)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			p, err := pf.Lookup(presetName)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			preset = &p
		}

		cfg, err := resolveConfig(preset, cmd.Flags().Changed)
		if errors.Is(err, errMissingFleet) {
			_ = cmd.Usage()
			logrus.Fatalf("%v", err)
		}
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		logrus.Infof("Starting simulation: %d trucks, %d stations, horizon=%dmin, seed=%d",
			cfg.NumTrucks, cfg.NumStations, cfg.Horizon, cfg.Seed)
		startTime := time.Now()

		out := outputOptions{
			Dir:         outputDir,
			Summary:     summary,
			MetricsFile: metricsFile,
			TraceLevel:  trace.TraceLevel(traceLevel),
		}
		if replicas > 1 {
			err = runReplicas(cmd.Context(), os.Stdout, cfg, replicas, parallelism)
		} else {
			err = runSimulation(os.Stdout, cfg, out)
		}
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

// resolveConfig layers the scenario: built-in defaults, then the preset, then
// every flag the user set explicitly.
func resolveConfig(preset *Preset, changed func(name string) bool) (sim.Config, error) {
	cfg := sim.NewConfig(0, 0, seed)
	cfg.Horizon = horizon
	cfg.UnloadingTime = unloadTime
	cfg.TravelTime = travelTime
	cfg.MiningMin = miningMin
	cfg.MiningMax = miningMax
	cfg.NumTrucks = numTrucks
	cfg.NumStations = numStations

	if preset != nil {
		preset.apply(&cfg)
		overrides := []struct {
			flag string
			set  func()
		}{
			{"trucks", func() { cfg.NumTrucks = numTrucks }},
			{"stations", func() { cfg.NumStations = numStations }},
			{"horizon", func() { cfg.Horizon = horizon }},
			{"unload-time", func() { cfg.UnloadingTime = unloadTime }},
			{"travel-time", func() { cfg.TravelTime = travelTime }},
			{"mining-min", func() { cfg.MiningMin = miningMin }},
			{"mining-max", func() { cfg.MiningMax = miningMax }},
			{"seed", func() { cfg.Seed = seed }},
		}
		for _, o := range overrides {
			if changed(o.flag) {
				o.set()
			}
		}
	}

	if cfg.NumTrucks == 0 || cfg.NumStations == 0 {
		return cfg, errMissingFleet
	}
	return cfg, cfg.Validate()
}

// outputOptions selects what a single run writes.
type outputOptions struct {
	Dir         string
	Summary     bool
	MetricsFile string
	TraceLevel  trace.TraceLevel
}

// runSimulation runs one simulation and writes its reports.
func runSimulation(w io.Writer, cfg sim.Config, out outputOptions) error {
	var opts []sim.Option
	var st *trace.SimulationTrace
	if out.TraceLevel == trace.TraceLevelTransitions {
		st = trace.NewSimulationTrace(trace.TraceConfig{Level: out.TraceLevel})
		opts = append(opts, sim.WithTrace(st))
	}

	s, err := sim.NewSimulator(cfg, opts...)
	if err != nil {
		return err
	}
	if err := s.Run(); err != nil {
		return err
	}

	report, err := stats.FromSimulator(s)
	if err != nil {
		return err
	}
	truckPath, stationPath, err := report.WriteCSV(out.Dir)
	if err != nil {
		return err
	}
	logrus.Infof("Wrote %s and %s", truckPath, stationPath)

	if out.MetricsFile != "" {
		if err := report.WriteMetrics(out.MetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		logrus.Infof("Wrote metrics to %s", out.MetricsFile)
	}
	if out.Summary {
		report.Print(w)
	}
	if st != nil {
		printTraceSummary(w, trace.Summarize(st))
	}
	return nil
}

func printTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	fmt.Fprintln(w, "\n=== Trace Summary ===")
	fmt.Fprintf(w, "Transitions: %d\n", ts.TotalTransitions)
	fmt.Fprintf(w, "Queued arrivals: %d (released %d)\n", ts.QueuedArrivals, ts.ReleasedFromQueue)
	fmt.Fprintf(w, "Queue wait [min]: mean %.2f, max %d\n", ts.MeanQueueWait, ts.MaxQueueWait)
}

// runReplicas runs n seeded replicas and prints their aggregate.
func runReplicas(ctx context.Context, w io.Writer, cfg sim.Config, n, parallelism int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := replica.Run(ctx, cfg, n, parallelism)
	if err != nil {
		return err
	}
	replica.Summarize(results).Print(w)
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().IntVarP(&numTrucks, "trucks", "n", 0, "Number of haul trucks")
	runCmd.Flags().IntVarP(&numStations, "stations", "m", 0, "Number of unloading stations")
	runCmd.Flags().Int64Var(&horizon, "horizon", sim.DefaultHorizon, "Simulation horizon (in minutes)")
	runCmd.Flags().Int64Var(&unloadTime, "unload-time", sim.DefaultUnloadingTime, "Minutes a truck occupies a station")
	runCmd.Flags().Int64Var(&travelTime, "travel-time", sim.DefaultTravelTime, "One-way travel minutes between mine and stations")
	runCmd.Flags().Int64Var(&miningMin, "mining-min", sim.DefaultMiningMin, "Minimum mining minutes (inclusive)")
	runCmd.Flags().Int64Var(&miningMax, "mining-max", sim.DefaultMiningMax, "Maximum mining minutes (inclusive)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the mining duration draws")
	runCmd.Flags().StringVar(&presetName, "preset", "", "Named scenario from the presets file")
	runCmd.Flags().StringVar(&presetsFile, "presets-file", "defaults.yaml", "Path to the scenario presets YAML")

	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&logFile, "log-file", "", "Write the log to this file instead of stderr")
	runCmd.Flags().StringVar(&outputDir, "output-dir", ".", "Directory for the truck and station CSV reports")
	runCmd.Flags().BoolVar(&summary, "summary", false, "Print truck, station and fleet tables")
	runCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write prometheus textfile metrics to this path")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Transition trace level (none, transitions)")

	runCmd.Flags().IntVar(&replicas, "replicas", 1, "Independent seeded replicas to run")
	runCmd.Flags().IntVar(&parallelism, "parallelism", 0, "Replicas running at once (0 = all)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
