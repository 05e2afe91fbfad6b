package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/unations/tax-engine/internal/constants"
	"github.com/unations/tax-engine/internal/helpers"
)

func newPeriodCommand() *cobra.Command {
	var returnType string

	cmd := &cobra.Command{
		Use:   "period <label>",
		Short: "Show the bounds and due date of a filing period",
		Example: `  taxctl period --type monthly 2025-03
  taxctl period --type quarterly 2025-Q1
  taxctl period --type annual 2025`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := helpers.PeriodBounds(returnType, args[0])
			if err != nil {
				return err
			}
			due, err := helpers.DueDate(returnType, end)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "start: %s\n", start.Format(constants.DateLayout))
			fmt.Fprintf(w, "end:   %s (exclusive)\n", end.Format(constants.DateLayout))
			fmt.Fprintf(w, "due:   %s\n", due.Format(constants.DateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&returnType, "type", "quarterly", "return type: monthly, quarterly or annual")
	return cmd
}
