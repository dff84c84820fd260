package cli

import (
	"fmt"

	service "github.com/okian/docket/internal/app"
	"github.com/okian/docket/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSimulateCmd(app *App) *cobra.Command {
	var (
		days int
		seed int64
		rate float64
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate court days over the pending cases",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1")
			}
			ctx := cmd.Context()

			var opts []service.Option
			if cmd.Flags().Changed("seed") {
				opts = append(opts, service.WithSeed(seed))
			}
			if cmd.Flags().Changed("rate") {
				if rate < 0 || rate > 1 {
					return fmt.Errorf("--rate must be within [0, 1]")
				}
				opts = append(opts, service.WithAdjournmentRate(rate))
			}

			svc, err := app.startService(ctx, opts...)
			if err != nil {
				return err
			}
			defer svc.Stop()

			out := app.out()
			for i := 0; i < days; i++ {
				report, err := svc.RunDay(ctx)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprint(out, formatter.FormatDayReport(report)); err != nil {
					return err
				}
			}

			sim, err := svc.Simulation(ctx)
			if err != nil {
				return err
			}
			alloc, err := svc.Allocation(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, "\n", formatter.FormatSimulation(sim), "\n", formatter.FormatJudges(alloc.Judges))
			return err
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 1, "Number of days to simulate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 means time-based)")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Adjournment rate, overrides the configured one")
	return cmd
}
