package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/unations/tax-engine/internal/helpers"
	"github.com/unations/tax-engine/internal/types/api/params"
	"github.com/unations/tax-engine/internal/types/api/responses"
	"github.com/unations/tax-engine/internal/types/business"
)

type calculateOptions struct {
	entityID     string
	buyerID      string
	jurisdiction string
	items        []string
	indigenous   []string
	claim        business.ExemptionClaim
}

func newCalculateCommand(opts *rootOptions) *cobra.Command {
	o := &calculateOptions{}

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate tax for a transaction",
		Example: `  taxctl calculate --entity acme --jurisdiction ON --item sku-1,2,19.99
  taxctl calculate --entity acme --jurisdiction MB --item sku-1,1,50 --status-card 1234567890 --on-reserve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := o.params()
			if err != nil {
				return err
			}
			engine, err := opts.connect(cmd)
			if err != nil {
				return err
			}
			defer engine.Close()

			calc, err := engine.Tax.CalculateTax(cmd.Context(), p)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), responses.NewTaxCalculationResponse(*calc))
		},
	}

	cmd.Flags().StringVar(&o.entityID, "entity", "", "selling entity (required)")
	_ = cmd.MarkFlagRequired("entity")
	cmd.Flags().StringVar(&o.jurisdiction, "jurisdiction", "", "jurisdiction code, e.g. ON (required)")
	_ = cmd.MarkFlagRequired("jurisdiction")
	cmd.Flags().StringVar(&o.buyerID, "buyer", "", "buyer identifier")
	cmd.Flags().StringArrayVar(&o.items, "item", nil, "line item as item_id,quantity,unit_price[,tax_code] (repeatable)")
	_ = cmd.MarkFlagRequired("item")
	cmd.Flags().StringSliceVar(&o.indigenous, "indigenous", nil, "item IDs that are Indigenous products")
	cmd.Flags().StringVar(&o.claim.StatusCardNumber, "status-card", "", "status card number claimed by the buyer")
	cmd.Flags().StringVar(&o.claim.BandNumber, "band", "", "band number claimed by the buyer")
	cmd.Flags().StringVar(&o.claim.TreatyNumber, "treaty", "", "treaty number claimed by the buyer")
	cmd.Flags().BoolVar(&o.claim.OnReserveDelivery, "on-reserve", false, "goods are delivered on reserve")
	return cmd
}

func (o *calculateOptions) params() (params.CalculateTaxParams, error) {
	indigenous := make(map[string]bool, len(o.indigenous))
	for _, id := range o.indigenous {
		indigenous[strings.TrimSpace(id)] = true
	}

	p := params.CalculateTaxParams{
		EntityID:     o.entityID,
		BuyerID:      o.buyerID,
		Jurisdiction: o.jurisdiction,
		Claim:        o.claim,
	}
	p.Claim.BuyerID = o.buyerID
	for i, raw := range o.items {
		item, err := parseLineItem(raw)
		if err != nil {
			return p, fmt.Errorf("--item %d: %w", i+1, err)
		}
		item.IsIndigenousProduct = indigenous[item.ItemID]
		p.LineItems = append(p.LineItems, item)
	}
	return p, nil
}

func parseLineItem(raw string) (business.LineItem, error) {
	parts := strings.Split(raw, ",")
	if len(parts) < 3 || len(parts) > 4 {
		return business.LineItem{}, fmt.Errorf("want item_id,quantity,unit_price[,tax_code], got %q", raw)
	}
	qty, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 32)
	if err != nil {
		return business.LineItem{}, fmt.Errorf("invalid quantity %q", parts[1])
	}
	price, err := helpers.ParseMoney(strings.TrimSpace(parts[2]))
	if err != nil {
		return business.LineItem{}, err
	}
	item := business.LineItem{
		ItemID:    strings.TrimSpace(parts[0]),
		Quantity:  uint32(qty),
		UnitPrice: price,
	}
	if len(parts) == 4 {
		item.TaxCode = strings.TrimSpace(parts[3])
	}
	return item, nil
}
