package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the docket command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "docket",
		Short:         "Court-case triage, judge allocation and day simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd.Context())
		},
	}
	root.PersistentFlags().StringVarP(&app.ConfigPath, "config", "c", "", "YAML config file (overrides DOCKET_CONFIG)")

	root.AddCommand(
		newServeCmd(app),
		newDashboardCmd(app),
		newAllocateCmd(app),
		newSimulateCmd(app),
		newAddCmd(app),
		newDaysCmd(app),
	)

	return root
}
