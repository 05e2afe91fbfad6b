package requests

import "time"

// LineItemRequest is a single priced line of a transaction. Unit prices are
// decimal strings with at most two fractional digits.
type LineItemRequest struct {
	ItemID              string `json:"item_id" binding:"required"`
	Description         string `json:"description,omitempty"`
	Quantity            uint32 `json:"quantity" binding:"required,gt=0"`
	UnitPrice           string `json:"unit_price" binding:"required"`
	TaxCode             string `json:"tax_code,omitempty"`
	IsIndigenousProduct bool   `json:"is_indigenous_product"`
}

// ExemptionClaimRequest carries the identifiers a buyer presents at checkout
type ExemptionClaimRequest struct {
	StatusCardNumber  string `json:"status_card_number,omitempty"`
	BandNumber        string `json:"band_number,omitempty"`
	TreatyNumber      string `json:"treaty_number,omitempty"`
	OnReserveDelivery bool   `json:"on_reserve_delivery"`
}

// CalculateTaxRequest represents the request to tax a transaction
type CalculateTaxRequest struct {
	EntityID     string                 `json:"entity_id" binding:"required"`
	BuyerID      string                 `json:"buyer_id,omitempty"`
	Jurisdiction string                 `json:"jurisdiction" binding:"required"`
	LineItems    []LineItemRequest      `json:"line_items" binding:"required,min=1,dive"`
	Exemption    *ExemptionClaimRequest `json:"exemption,omitempty"`
	TaxPointAt   *time.Time             `json:"tax_point_at,omitempty"`
}

// CorrectCalculationRequest re-prices a recorded calculation. Omitted
// jurisdiction and buyer fall back to the original record.
type CorrectCalculationRequest struct {
	EntityID     string                 `json:"entity_id" binding:"required"`
	BuyerID      string                 `json:"buyer_id,omitempty"`
	Jurisdiction string                 `json:"jurisdiction,omitempty"`
	LineItems    []LineItemRequest      `json:"line_items" binding:"required,min=1,dive"`
	Exemption    *ExemptionClaimRequest `json:"exemption,omitempty"`
}
