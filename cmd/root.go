package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ndes-sim/ndes/sim"
	"github.com/ndes-sim/ndes/sim/trace"
)

var (
	// CLI flags
	seed       int64   // Seed of the partitioned RNG
	until      float64 // Simulated duration of each campaign
	campaigns  int     // Number of independent campaigns
	logLevel   string  // Log verbosity level
	configPath string  // Optional YAML model file
	replay     bool    // Replay the first campaign's random draws in every campaign
	traceLevel string  // Event trace level
	traceMax   int     // Maximum number of stored trace records
	dumpDir    string  // Directory for gnuplot dumps
	dumpFormat string  // gnuplot or gnuplot-indexed
	sqlitePath string  // SQLite database for probe values
	promPath   string  // Prometheus textfile for probe aggregates
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "ndes",
	Short: "Discrete-event simulator with online statistics probes",
}

// runCmd runs the reference queueing model
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the single-server queue model",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := DefaultModelConfig()
		if configPath != "" {
			if cfg, err = loadModelConfig(configPath); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		applyFlags(cmd, &cfg)
		if err := cfg.validate(); err != nil {
			logrus.Fatalf("%v", err)
		}
		if !trace.IsValidTraceLevel(cfg.Trace) {
			logrus.Fatalf("Invalid trace level: %s", cfg.Trace)
		}

		logrus.Infof("Starting %d campaign(s) until %g, seed=%d, replay=%v", cfg.Campaigns, cfg.Until, cfg.Seed, cfg.Replay)
		startTime := time.Now()

		summary, err := runModel(cfg)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		printSummary(summary)

		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// applyFlags overrides file values with the flags the user set.
func applyFlags(cmd *cobra.Command, cfg *ModelConfig) {
	flags := cmd.Flags()
	if flags.Changed("seed") || configPath == "" {
		cfg.Seed = seed
	}
	if flags.Changed("until") {
		cfg.Until = until
	}
	if flags.Changed("campaigns") {
		cfg.Campaigns = campaigns
	}
	if flags.Changed("replay") {
		cfg.Replay = replay
	}
	if flags.Changed("trace") {
		cfg.Trace = traceLevel
	}
	if flags.Changed("dump-dir") {
		cfg.Dump.Dir = dumpDir
	}
	if flags.Changed("dump-format") {
		cfg.Dump.Format = dumpFormat
	}
	if flags.Changed("sqlite") {
		cfg.Dump.SQLite = sqlitePath
	}
	if flags.Changed("prometheus") {
		cfg.Dump.Prometheus = promPath
	}
}

// runSummary holds the cross-campaign results of runModel.
type runSummary struct {
	Campaigns    int
	SojournMeans []float64
	SojournCI95  float64 // across campaigns, NaN for one campaign
	Expected     float64
	Stats        sim.Stats
	Trace        *trace.TraceSummary
	TraceSkipped int
}

// runModel builds the simulator and the queue model, runs every campaign
// and exports probes after each of them.
func runModel(cfg ModelConfig) (*runSummary, error) {
	hook := sim.NewTraceHook(trace.TraceConfig{Level: trace.TraceLevel(cfg.Trace), MaxEvents: traceMax})
	s, err := sim.New(sim.WithSeed(cfg.Seed), sim.WithHook(hook))
	if err != nil {
		return nil, err
	}
	defer s.Close()

	model, err := newQueueModel(s, cfg)
	if err != nil {
		return nil, err
	}
	out, err := newExporter(cfg.Dump)
	if err != nil {
		return nil, err
	}

	var exportErr error
	s.RunCampaigns(cfg.Campaigns, cfg.Until, func(campaign int) {
		model.endCampaign(campaign)
		if exportErr == nil {
			exportErr = out.campaign(campaign, model.probes())
		}
	})
	s.LogStatus()
	if exportErr != nil {
		return nil, exportErr
	}
	if err := out.finish(append(model.probes(), model.campaignMeans)); err != nil {
		return nil, err
	}

	summary := &runSummary{
		Campaigns:    cfg.Campaigns,
		SojournMeans: model.campaignMeans.Values(),
		SojournCI95:  model.campaignMeans.ConfidenceInterval(),
		Expected:     model.expectedSojourn(),
		Stats:        s.Stats(),
	}
	if hook.Trace.Enabled() {
		summary.Trace = trace.Summarize(hook.Trace)
		summary.TraceSkipped = hook.Trace.Skipped
	}
	if cfg.Campaigns == 1 {
		summary.SojournCI95 = model.sojourn.ConfidenceInterval()
	}
	return summary, nil
}

func printSummary(r *runSummary) {
	fmt.Println("=== Simulation Summary ===")
	fmt.Printf("Campaigns          : %d\n", r.Campaigns)
	for i, m := range r.SojournMeans {
		fmt.Printf("Sojourn mean [%3d] : %.6g\n", i, m)
	}
	fmt.Printf("Sojourn CI95       : %.6g\n", r.SojournCI95)
	fmt.Printf("Expected (M/M/1)   : %.6g\n", r.Expected)
	fmt.Printf("Events fired       : %d\n", r.Stats.Fired)
	if r.Trace != nil {
		fmt.Printf("Traced events      : %d (%d skipped) over %d campaign(s)\n",
			r.Trace.TotalEvents, r.TraceSkipped, r.Trace.Campaigns)
	}
}

// Execute runs the CLI root command
func Execute() {
	// fatal log entries run the registered exit handlers (sink flushes)
	logrus.StandardLogger().ExitFunc = atexit.Exit
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

// init sets up CLI flags and subcommands
func init() {
	defaults := DefaultModelConfig()

	runCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed of the random streams")
	runCmd.Flags().Float64Var(&until, "until", defaults.Until, "Simulated duration of each campaign")
	runCmd.Flags().IntVar(&campaigns, "campaigns", defaults.Campaigns, "Number of independent campaigns")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML model file")
	runCmd.Flags().BoolVar(&replay, "replay", false, "Replay the first campaign's random draws in every campaign")

	// Tracing
	runCmd.Flags().StringVar(&traceLevel, "trace", defaults.Trace, "Event trace level (none, events)")
	runCmd.Flags().IntVar(&traceMax, "trace-max", 100000, "Maximum number of stored trace records (0 = unbounded)")

	// Probe export
	runCmd.Flags().StringVar(&dumpDir, "dump-dir", "", "Directory for per-campaign probe dumps")
	runCmd.Flags().StringVar(&dumpFormat, "dump-format", defaults.Dump.Format, "Dump format (gnuplot, gnuplot-indexed)")
	runCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "SQLite database for probe values (\"auto\" for a generated name)")
	runCmd.Flags().StringVar(&promPath, "prometheus", "", "Prometheus textfile for probe aggregates")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
