package cli

import (
	"fmt"

	"github.com/okian/docket/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the prioritized case table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := app.startService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			dash, err := svc.Dashboard(ctx, limit)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(app.out(), formatter.FormatDashboard(dash))
			return err
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the top N cases")
	return cmd
}

func newAllocateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "allocate",
		Short: "Allocate pending cases to judges and show the judge table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := app.startService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			alloc, err := svc.Allocation(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(app.out(), formatter.FormatAllocation(alloc))
			return err
		},
	}
}
