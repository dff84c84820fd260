package cli

import (
	"fmt"

	"github.com/okian/docket/internal/cli/formatter"
	intake "github.com/okian/docket/internal/domain/intake"
	"github.com/okian/docket/internal/domain/types"
	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var caseNo, offense, vulnerable, age, bail, underTrial string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "File a new case and append it to the case source",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := app.startService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			row, err := svc.AddCase(ctx, intake.Record{
				intake.FieldCaseNo:     caseNo,
				intake.FieldOffense:    offense,
				intake.FieldVulnerable: vulnerable,
				intake.FieldAge:        age,
				intake.FieldBailMatter: bail,
				intake.FieldUnderTrial: underTrial,
			})
			if err != nil {
				return err
			}

			out := app.out()
			fmt.Fprintf(out, "Filed %s with score %.2f at rank %d\n\n", row.CaseNo, row.Score, row.Rank)
			_, err = fmt.Fprint(out, formatter.FormatCases([]types.CaseRow{row}))
			return err
		},
	}

	cmd.Flags().StringVar(&caseNo, "case-no", "", "Case number")
	cmd.Flags().StringVar(&offense, "offense", "", "Heinous, Serious or Moderate")
	cmd.Flags().StringVar(&vulnerable, "vulnerable", "None", "None, Woman, Child, SeniorCitizen or DisabledPerson")
	cmd.Flags().StringVar(&age, "age", "", "Age of the case in years")
	cmd.Flags().StringVar(&bail, "bail", "No", "Bail matter (Yes/No)")
	cmd.Flags().StringVar(&underTrial, "under-trial", "No", "Under trial (Yes/No)")
	_ = cmd.MarkFlagRequired("case-no")
	_ = cmd.MarkFlagRequired("offense")
	_ = cmd.MarkFlagRequired("age")
	return cmd
}
