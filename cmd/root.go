package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aneeshdurg/toposim/sim"
	"github.com/aneeshdurg/toposim/sim/report"
	"github.com/aneeshdurg/toposim/sim/strategy"
	"github.com/aneeshdurg/toposim/sim/sweep"
	"github.com/aneeshdurg/toposim/sim/workload"
)

var (
	// shared flags
	logLevel     string // Log verbosity level
	topologyPath string // YAML/TOML shape file; empty = built-in SlimFly
	numGroups    int    // K, nodes per traffic matrix
	workers      int    // Worker pool size

	// reconfig flags
	interval            float64 // Seconds between matrices, reporting only
	showTransformations bool    // Print chosen configuration sequences
	strategyList        string  // Comma-separated strategies; empty = all
	staticConfig        int     // Configuration index held by the static baseline
	seed                int64   // Seed for the random baseline
	resultsPath         string  // File to save the YAML report to
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "toposim",
	Short: "Evaluate reconfiguration strategies for circuit-switched topologies",
}

// reconfigCmd evaluates every strategy over a directory of traffic matrices
var reconfigCmd = &cobra.Command{
	Use:     "reconfig <matrix-dir>",
	Aliases: []string{"run"},
	Short:   "Compare reconfiguration strategies over per-timestep traffic matrices",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		startTime := time.Now()

		shape := loadShape()
		names, err := strategy.ParseStrategies(strategyList)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if staticConfig < 0 || staticConfig >= shape.NumConfigurations() {
			logrus.Fatalf("--static-config %d out of range [0, %d)", staticConfig, shape.NumConfigurations())
		}

		matrices, err := workload.LoadMatrixDir(args[0], numGroups, workers)
		if err != nil {
			logrus.Fatalf("Failed to load traffic matrices: %v", err)
		}

		logrus.Infof("Evaluating %d configurations x %d timesteps with %d workers",
			shape.NumConfigurations(), len(matrices), workers)
		table, err := sweep.BuildCostTable(shape, matrices, workers)
		if err != nil {
			logrus.Fatalf("Cost evaluation failed: %v", err)
		}

		inputs := &strategy.Inputs{Shape: shape, Matrices: matrices, Costs: table}
		schedules, err := strategy.RunAll(names, strategy.Options{StaticConfig: staticConfig, Seed: seed}, inputs)
		if err != nil {
			logrus.Fatalf("Strategy evaluation failed: %v", err)
		}

		rep, err := report.New(table, schedules, report.Options{
			Interval:     interval,
			NumSwitches:  shape.NumSwitches(),
			StaticConfig: staticConfig,
		})
		if err != nil {
			logrus.Fatalf("Building report failed: %v", err)
		}
		rep.Print(os.Stdout, showTransformations)

		if resultsPath != "" {
			if err := rep.SaveYAML(resultsPath); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		logrus.Infof("Evaluation complete in %v.", time.Since(startTime))
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

func loadShape() *sim.Shape {
	shape, err := LoadTopology(topologyPath)
	if err != nil {
		logrus.Fatalf("Failed to load topology: %v", err)
	}
	if numGroups != shape.NumNodes() {
		logrus.Fatalf("--num-groups=%d but the topology has %d nodes", numGroups, shape.NumNodes())
	}
	if workers < 1 {
		logrus.Fatalf("--workers must be at least 1, got %d", workers)
	}
	return shape
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&topologyPath, "topology", "", "Topology shape file (.yaml/.yml/.toml); default is the 3-rack SlimFly")
	rootCmd.PersistentFlags().IntVar(&numGroups, "num-groups", 6, "Number of groups (nodes) per traffic matrix")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 32, "Worker pool size")

	reconfigCmd.Flags().Float64Var(&interval, "interval", 10, "Interval between each matrix in seconds (reporting only)")
	reconfigCmd.Flags().BoolVar(&showTransformations, "show-transformations", false, "Print the configuration sequence chosen by each strategy")
	reconfigCmd.Flags().StringVar(&strategyList, "strategies", "", "Comma-separated strategies to run (default: all)")
	reconfigCmd.Flags().IntVar(&staticConfig, "static-config", strategy.DefaultConfig, "Configuration index held by the static baseline")
	reconfigCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the random baseline")
	reconfigCmd.Flags().StringVar(&resultsPath, "results-path", "", "File to save the YAML report to")

	rootCmd.AddCommand(reconfigCmd)
}
