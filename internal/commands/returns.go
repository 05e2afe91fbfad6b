package commands

import (
	"github.com/spf13/cobra"
	"github.com/unations/tax-engine/internal/helpers"
	"github.com/unations/tax-engine/internal/types/api/params"
	"github.com/unations/tax-engine/internal/types/api/responses"
)

func newFileReturnCommand(opts *rootOptions) *cobra.Command {
	var entityID, returnType string

	cmd := &cobra.Command{
		Use:   "file-return <period>",
		Short: "Prepare a Draft return from the entity's recorded calculations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := helpers.PeriodBounds(returnType, args[0])
			if err != nil {
				return err
			}
			engine, err := opts.connect(cmd)
			if err != nil {
				return err
			}
			defer engine.Close()

			ret, err := engine.Filing.FileReturn(cmd.Context(), params.FileReturnParams{
				EntityID:   entityID,
				ReturnType: returnType,
				Period:     args[0],
				StartDate:  start,
				EndDate:    end,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), responses.NewTaxReturnResponse(*ret))
		},
	}

	cmd.Flags().StringVar(&entityID, "entity", "", "filing entity (required)")
	_ = cmd.MarkFlagRequired("entity")
	cmd.Flags().StringVar(&returnType, "type", "quarterly", "return type: monthly, quarterly or annual")
	return cmd
}

func newAssessCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "assess",
		Short: "Mark overdue remittances and reassess every entity's compliance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.connect(cmd)
			if err != nil {
				return err
			}
			defer engine.Close()

			results, err := engine.Compliance.RunAssessment(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), results)
		},
	}
}
