package cli

import (
	"fmt"

	ledger "github.com/okian/docket/internal/adapters/ledger"
	"github.com/okian/docket/internal/cli/formatter"
	"github.com/okian/docket/internal/config"
	"github.com/okian/docket/internal/domain/types"
	"github.com/spf13/cobra"
)

func newDaysCmd(app *App) *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "days",
		Short: "Show the logged days of a simulation session",
		Long:  "Show the simulation days recorded in the SQLite ledger. Without --session the most recent session is shown.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config.Source != config.SourceSQLite {
				return fmt.Errorf("the day log needs source %q, got %q", config.SourceSQLite, app.Config.Source)
			}
			ctx := cmd.Context()

			l, err := ledger.Open(app.Config.LedgerPath)
			if err != nil {
				return fmt.Errorf("opening ledger: %w", err)
			}
			defer l.Close()

			if session == "" {
				if session, err = l.LatestSession(ctx); err != nil {
					return err
				}
			}
			days, err := l.Days(ctx, session)
			if err != nil {
				return err
			}

			rows := make([]types.DayReport, len(days))
			for i, d := range days {
				rows[i] = types.DayReport{
					SessionID:     d.SessionID,
					Day:           d.Day,
					Advanced:      d.Advanced,
					Adjourned:     d.Adjourned,
					NewlyDisposed: d.DisposedToday,
					DisposedTotal: d.DisposedTotal,
					Active:        d.Active,
					Unassigned:    d.Unassigned,
				}
			}
			_, err = fmt.Fprint(app.out(), formatter.FormatDayLog(session, rows))
			return err
		},
	}

	cmd.Flags().StringVarP(&session, "session", "s", "", "Session ID (defaults to the latest)")
	return cmd
}
