package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/okian/docket/internal/scenario"
	"github.com/okian/docket/pkg/logger"
	"github.com/spf13/cobra"
)

// Default configuration constants.
const (
	defaultNumCases    = 200
	defaultDays        = 10
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Scenario failed: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	config := &scenario.Config{}
	var logLevel string

	cmd := &cobra.Command{
		Use:   "docket-scenario",
		Short: "File random cases against a docket server and check the simulation",
		Example: `  docket-scenario
  docket-scenario --cases 1000 --days 30 --url http://localhost:9080
  docket-scenario --seed 7 --output cases.json --verbose`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			if err := logger.SetLevelString(logLevel); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), defaultTestTimeout)
			defer cancel()

			_, err := scenario.Run(ctx, config)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&config.BaseURL, "url", "http://localhost:9080", "Base URL of the service")
	flags.IntVar(&config.NumCases, "cases", defaultNumCases, "Number of cases to generate and file")
	flags.IntVar(&config.Days, "days", defaultDays, "Number of days to simulate")
	flags.IntVar(&config.Workers, "workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent submitters")
	flags.Uint64Var(&config.Seed, "seed", uint64(time.Now().UnixNano()), "Seed for case generation")
	flags.DurationVar(&config.Timeout, "timeout", defaultTimeout, "HTTP request timeout")
	flags.StringVar(&config.OutputFile, "output", "", "Write the generated cases to this JSON file")
	flags.BoolVarP(&config.Verbose, "verbose", "v", false, "Log every simulated day")
	flags.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	return cmd
}
