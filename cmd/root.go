package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/boarding-sim/boarding-sim/sim"
	"github.com/boarding-sim/boarding-sim/sim/search"
)

var (
	// CLI flags shared by run and optimize
	seed        int64  // Seed for passenger generation
	logLevel    string // Log verbosity level
	rows        int    // Cabin row count
	binCapacity int    // Overhead units per row
	passengers  int    // Passengers to board
	contract    string // Scheduling contract preset name
	maxTicks    int    // Non-termination guard
	layoutFile  string // Optional YAML layout preset file
	layoutName  string // Preset name within the layout file

	// optimize-only flags
	generations    int   // Generation count
	populationSize int   // Population size
	searchSeed     int64 // Seed for the search's own randomness
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "boarding-sim",
	Short: "Deterministic discrete-time aircraft boarding simulator",
}

// setupLogging applies the --log flag before any subcommand work.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveLayout builds the cabin configuration from flags, optionally
// overridden by a YAML preset.
func resolveLayout() sim.LayoutConfig {
	cfg := sim.DefaultLayoutConfig()
	cfg.Rows = rows
	cfg.BinCapacity = binCapacity
	if layoutFile != "" {
		if preset := GetLayoutConfig(layoutFile, layoutName); preset != nil {
			cfg = *preset
		} else {
			logrus.Fatalf("layout preset %q not found in %s", layoutName, layoutFile)
		}
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid layout: %v", err)
	}
	return cfg
}

// runCmd executes one boarding simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one boarding simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := resolveLayout()

		c, err := sim.LookupContract(contract)
		if err != nil {
			logrus.Fatalf("%v (valid: %v)", err, sim.ContractNames())
		}

		seq := sim.NewSequence(seed)
		manifest, err := sim.GeneratePassengers(passengers, cfg, seq)
		if err != nil {
			logrus.Fatalf("passenger generation failed: %v", err)
		}

		fn, err := c.Build(nil, seq)
		if err != nil {
			logrus.Fatalf("contract build failed: %v", err)
		}
		if report := sim.ValidateContract(fn, manifest, cfg); !report.Valid {
			for _, msg := range report.Errors {
				logrus.Errorf("contract rejected: %s", msg)
			}
			os.Exit(1)
		}

		layout, err := sim.NewLayout(cfg)
		if err != nil {
			logrus.Fatalf("layout construction failed: %v", err)
		}
		order := sim.BoardingOrder(manifest, cfg, fn)
		s, err := sim.NewSimulator(layout, manifest, order, maxTicks)
		if err != nil {
			logrus.Fatalf("simulator construction failed: %v", err)
		}

		logrus.Infof("Boarding %d passengers, %d rows, contract=%s, seed=%d", passengers, cfg.Rows, contract, seed)
		metrics := s.Run()
		metrics.Print()
	},
}

// optimizeCmd searches a contract's declared parameters with the
// evolutionary optimizer, reporting progress once per generation.
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Evolve a contract's numeric parameters to minimize boarding time",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := resolveLayout()

		c, err := sim.LookupContract(contract)
		if err != nil {
			logrus.Fatalf("%v (valid: %v)", err, sim.ContractNames())
		}

		opts := search.DefaultOptions()
		opts.Layout = cfg
		opts.PassengerCount = passengers
		opts.MaxTicks = maxTicks
		opts.SearchSeed = searchSeed
		if generations > 0 {
			opts.Generations = generations
		}
		if populationSize > 0 {
			opts.PopulationSize = populationSize
		}

		result, err := search.Optimize(context.Background(), c, opts, func(p search.Progress) {
			logrus.Infof("progress %.0f%%: best %.2f ticks, genome %v", p.PctComplete, p.BestFitness, p.BestGenome)
		})
		if err != nil {
			logrus.Fatalf("optimization failed: %v", err)
		}
		logrus.Infof("Best genome after %d generations: %v (%.2f ticks)", result.Generations, result.BestGenome, result.BestFitness)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, c := range []*cobra.Command{runCmd, optimizeCmd} {
		c.Flags().Int64Var(&seed, "seed", 42, "Seed for passenger generation")
		c.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
		c.Flags().IntVar(&rows, "rows", 30, "Cabin row count")
		c.Flags().IntVar(&binCapacity, "bin-capacity", 6, "Overhead bin units per row")
		c.Flags().IntVar(&passengers, "passengers", 150, "Number of passengers to board")
		c.Flags().StringVar(&contract, "contract", "back-to-front", "Scheduling contract preset")
		c.Flags().IntVar(&maxTicks, "max-ticks", sim.DefaultMaxTicks, "Non-termination guard (ticks)")
		c.Flags().StringVar(&layoutFile, "layout-file", "", "YAML layout preset file (overrides rows/bin-capacity)")
		c.Flags().StringVar(&layoutName, "layout", "narrowbody", "Preset name within --layout-file")
	}

	optimizeCmd.Flags().IntVar(&generations, "generations", 0, "Generation count (0 = default 20)")
	optimizeCmd.Flags().IntVar(&populationSize, "population", 0, "Population size (0 = default 50)")
	optimizeCmd.Flags().Int64Var(&searchSeed, "search-seed", 42, "Seed for the optimizer's own randomness")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(optimizeCmd)
}
