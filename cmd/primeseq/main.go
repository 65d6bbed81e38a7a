// Command primeseq searches for the smallest natural number a0 starting a
// length-n sequence a[i] = a[i-1] + i that contains no prime, verifies the
// answer independently and prints it.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/EmmanuelLazard/IBM-ponder-this-2024-03/internal/config"
	"github.com/EmmanuelLazard/IBM-ponder-this-2024-03/internal/logging"
	"github.com/EmmanuelLazard/IBM-ponder-this-2024-03/internal/report"
	"github.com/EmmanuelLazard/IBM-ponder-this-2024-03/internal/search"
	"github.com/EmmanuelLazard/IBM-ponder-this-2024-03/internal/window"
)

var (
	configPath  string
	strategy    string
	windowSize  int64
	startValue  int64
	threads     int
	verbose     bool
	outputDir   string
	noReport    bool
	memoryLimit int64
	writeConfig bool
)

var rootCmd = &cobra.Command{
	Use:   "primeseq n",
	Short: "Find the smallest prime-free start of the sequence a[i] = a[i-1] + i",
	Long: `primeseq searches the integer line for the smallest natural number a0 such
that none of the n terms a0, a0+1, a0+1+2, ... is prime. The search runs in
fixed-size primality windows and supports two elimination strategies
(backward crossing-out and direct window testing), optionally parallelized
across worker threads.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if writeConfig {
			return nil
		}
		if len(args) != 1 {
			return &argError{"expected exactly one argument: the sequence length n"}
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "primeseq.yaml", "configuration file path")
	flags.StringVar(&strategy, "strategy", "", "elimination strategy: backward or direct")
	flags.Int64Var(&windowSize, "window", 0, "window capacity in candidates (0 = config/default)")
	flags.Int64Var(&startValue, "start", 0, "lower search bound (0 = config/default)")
	flags.IntVar(&threads, "threads", 0, "worker threads, direct strategy only (0 = config/default)")
	flags.BoolVar(&verbose, "verbose", false, "verbose output")
	flags.StringVar(&outputDir, "output-dir", "", "report output directory (overrides config)")
	flags.BoolVar(&noReport, "no-report", false, "do not write the run report file")
	flags.Int64Var(&memoryLimit, "memory-limit", 0, "window table memory cap in MB (0 = config/default)")
	flags.BoolVar(&writeConfig, "write-config", false, "write a default config file and exit")
}

func run(cmd *cobra.Command, args []string) error {
	if writeConfig {
		if err := config.SaveDefault(configPath); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
		fmt.Printf("Default configuration written to %s\n", configPath)
		return nil
	}

	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || n < 1 {
		return &argError{fmt.Sprintf("n must be a positive integer, got %q", args[0])}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return &argError{err.Error()}
	}
	cfg.Search.N = n
	applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return &argError{err.Error()}
	}

	log := logging.New(cfg.Output.LogLevel, cfg.Output.Verbose)
	if cfg.LoadedFrom() != "" {
		log.Debugf("configuration loaded from %s", cfg.LoadedFrom())
	}

	eng, err := search.New(search.Options{
		N:               cfg.Search.N,
		Strategy:        search.Strategy(cfg.Search.Strategy),
		Start:           cfg.Search.Start,
		WindowSize:      cfg.Search.WindowSize,
		Threads:         cfg.Search.Threads,
		MaxTableEntries: cfg.MaxTableEntries(),
	}, log)
	if err != nil {
		return &argError{err.Error()}
	}

	res, err := eng.Run()
	if err != nil {
		var verr *search.VerificationError
		if errors.As(err, &verr) {
			log.Errorf("internal inconsistency: %v", verr)
		}
		var aerr *window.AllocationError
		if errors.As(err, &aerr) {
			log.Errorf("fatal: %v", aerr)
		}
		return &runError{err}
	}

	fmt.Printf("For n=%d, a start value of %d has been found\n", n, res.Answer)
	fmt.Printf("SUCCESS! %d is the correct answer.\n", res.Answer)
	log.Infof("scanned %d window(s), tested %d candidate(s), consumed %d prime(s) in %s",
		res.Counters.Windows, res.Counters.Candidates, res.Counters.Primes, res.Elapsed)

	if cfg.Output.SaveReport && !noReport {
		rep := report.New(n, cfg.Search.Strategy, cfg.Search.Threads,
			cfg.Search.Start, cfg.Search.WindowSize, res)
		path, err := report.Write(cfg.Output.Directory, cfg.Output.Prefix, rep)
		if err != nil {
			log.Warnf("could not write run report: %v", err)
		} else {
			log.Infof("run report written to %s", path)
		}
	}
	return nil
}

func applyOverrides(cfg *config.Config) {
	if strategy != "" {
		cfg.Search.Strategy = strategy
	}
	if windowSize > 0 {
		cfg.Search.WindowSize = windowSize
	}
	if startValue > 0 {
		cfg.Search.Start = startValue
	}
	if threads > 0 {
		cfg.Search.Threads = threads
	}
	if outputDir != "" {
		cfg.Output.Directory = outputDir
	}
	if memoryLimit > 0 {
		cfg.Limits.MemoryLimitMB = memoryLimit
	}
	if verbose {
		cfg.Output.Verbose = true
		cfg.Output.LogLevel = "debug"
	}
}

// argError marks bad arguments or configuration (exit 1).
type argError struct{ msg string }

func (e *argError) Error() string { return e.msg }

// runError marks a failure after the search started (exit 2): fatal
// allocation, prime source exhaustion or a verification mismatch.
type runError struct{ err error }

func (e *runError) Error() string { return e.err.Error() }
func (e *runError) Unwrap() error { return e.err }

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var rerr *runError
		if errors.As(err, &rerr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
