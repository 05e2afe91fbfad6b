package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/unations/tax-engine/internal/services"
	"github.com/unations/tax-engine/internal/types/api/responses"
)

func newRatesCommand(opts *rootOptions) *cobra.Command {
	var file string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "rates",
		Short: "List jurisdiction tax rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				cfg, err := opts.loadConfig()
				if err != nil {
					return err
				}
				file = cfg.Engine.RateTableFile
			}
			table := services.NewDefaultRateTable()
			if file != "" {
				var err error
				if table, err = services.LoadRateTableFile(file); err != nil {
					return err
				}
			}

			out := make([]responses.JurisdictionResponse, 0)
			for _, r := range table.ListRates() {
				out = append(out, responses.NewJurisdictionResponse(r))
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), responses.NewListResponse("jurisdiction", out))
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME\tGST\tHST\tPST\tQST\tOFF-RESERVE RELIEF")
			for _, j := range out {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", j.Code, j.Name,
					orDash(j.GST), orDash(j.HST), orDash(j.PST), orDash(j.QST),
					table.OffReserveReliefPercentage(j.Code).String())
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML rate table (defaults to RATE_TABLE_FILE or the built-in table)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func orDash(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "-"
	}
	return *s
}
