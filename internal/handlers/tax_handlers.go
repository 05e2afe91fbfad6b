package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/unations/tax-engine/internal/helpers"
	"github.com/unations/tax-engine/internal/interfaces"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/api/params"
	"github.com/unations/tax-engine/internal/types/api/requests"
	"github.com/unations/tax-engine/internal/types/api/responses"
	"github.com/unations/tax-engine/internal/types/business"
	"go.uber.org/zap"
)

// TaxHandler handles transaction tax HTTP requests
type TaxHandler struct {
	common     *CommonServices
	taxService interfaces.TaxService
	logger     *zap.Logger
}

// NewTaxHandler creates a handler with interface dependencies
func NewTaxHandler(common *CommonServices, taxService interfaces.TaxService, logger *zap.Logger) *TaxHandler {
	if logger == nil {
		logger = zap.L()
	}
	return &TaxHandler{common: common, taxService: taxService, logger: logger}
}

// CalculateTax godoc
// @Summary Calculate transaction tax
// @Description Taxes every line item of a transaction in one jurisdiction, applying any Indigenous exemption the buyer claims, and records the result
// @Tags tax
// @Accept json
// @Produce json
// @Param request body requests.CalculateTaxRequest true "Transaction to tax"
// @Success 201 {object} responses.TaxCalculationResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 422 {object} responses.ErrorResponse
// @Failure 503 {object} responses.ErrorResponse
// @Router /tax/calculations [post]
func (h *TaxHandler) CalculateTax(c *gin.Context) {
	var req requests.CalculateTaxRequest
	if err := bindJSON(c, &req); err != nil {
		h.common.HandleError(c, err, "Invalid request body")
		return
	}

	p, err := calculateTaxParams(req.EntityID, req.BuyerID, req.Jurisdiction, req.LineItems, req.Exemption)
	if err != nil {
		h.common.HandleError(c, err, "Invalid request body")
		return
	}
	p.TaxPointAt = req.TaxPointAt

	calc, err := h.taxService.CalculateTax(c.Request.Context(), p)
	if err != nil {
		h.common.HandleError(c, err, "Failed to calculate tax")
		return
	}
	sendSuccess(c, http.StatusCreated, responses.NewTaxCalculationResponse(*calc))
}

// GetCalculation godoc
// @Summary Get a recorded calculation
// @Tags tax
// @Produce json
// @Param calculation_id path string true "Calculation ID"
// @Success 200 {object} responses.TaxCalculationResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /tax/calculations/{calculation_id} [get]
func (h *TaxHandler) GetCalculation(c *gin.Context) {
	id, err := uuidParam(c, "calculation_id")
	if err != nil {
		h.common.HandleError(c, err, "Invalid calculation ID")
		return
	}

	calc, err := h.taxService.GetCalculation(c.Request.Context(), id)
	if err != nil {
		h.common.HandleError(c, err, "Failed to get calculation")
		return
	}
	sendSuccess(c, http.StatusOK, responses.NewTaxCalculationResponse(*calc))
}

// CorrectCalculation godoc
// @Summary Correct a recorded calculation
// @Description Re-prices a transaction at the original tax point. The correction references the calculation it supersedes; the original is never modified.
// @Tags tax
// @Accept json
// @Produce json
// @Param calculation_id path string true "Calculation ID"
// @Param request body requests.CorrectCalculationRequest true "Corrected transaction"
// @Success 201 {object} responses.TaxCalculationResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 422 {object} responses.ErrorResponse
// @Router /tax/calculations/{calculation_id}/corrections [post]
func (h *TaxHandler) CorrectCalculation(c *gin.Context) {
	id, err := uuidParam(c, "calculation_id")
	if err != nil {
		h.common.HandleError(c, err, "Invalid calculation ID")
		return
	}

	var req requests.CorrectCalculationRequest
	if err := bindJSON(c, &req); err != nil {
		h.common.HandleError(c, err, "Invalid request body")
		return
	}
	p, err := calculateTaxParams(req.EntityID, req.BuyerID, req.Jurisdiction, req.LineItems, req.Exemption)
	if err != nil {
		h.common.HandleError(c, err, "Invalid request body")
		return
	}

	calc, err := h.taxService.CorrectCalculation(c.Request.Context(), id, p)
	if err != nil {
		h.common.HandleError(c, err, "Failed to correct calculation")
		return
	}
	sendSuccess(c, http.StatusCreated, responses.NewTaxCalculationResponse(*calc))
}

// ListJurisdictions godoc
// @Summary List jurisdictions
// @Description Lists every jurisdiction in the rate table with its applicable rates
// @Tags tax
// @Produce json
// @Success 200 {object} responses.ListResponse[responses.JurisdictionResponse]
// @Router /tax/jurisdictions [get]
func (h *TaxHandler) ListJurisdictions(c *gin.Context) {
	rates := h.taxService.ListJurisdictions()
	out := make([]responses.JurisdictionResponse, 0, len(rates))
	for _, r := range rates {
		out = append(out, responses.NewJurisdictionResponse(r))
	}
	sendSuccess(c, http.StatusOK, responses.NewListResponse("jurisdiction", out))
}

func calculateTaxParams(entityID, buyerID, jurisdiction string, items []requests.LineItemRequest, claim *requests.ExemptionClaimRequest) (params.CalculateTaxParams, error) {
	p := params.CalculateTaxParams{
		EntityID:     strings.TrimSpace(entityID),
		BuyerID:      strings.TrimSpace(buyerID),
		Jurisdiction: jurisdiction,
		LineItems:    make([]business.LineItem, 0, len(items)),
	}

	var fields []taxerr.FieldError
	for i, item := range items {
		price, err := helpers.ParseMoney(item.UnitPrice)
		if err != nil {
			fields = append(fields, taxerr.FieldError{Field: fmt.Sprintf("line_items[%d].unit_price", i), Message: err.Error()})
			continue
		}
		p.LineItems = append(p.LineItems, business.LineItem{
			ItemID:              item.ItemID,
			Description:         item.Description,
			Quantity:            item.Quantity,
			UnitPrice:           price,
			TaxCode:             item.TaxCode,
			IsIndigenousProduct: item.IsIndigenousProduct,
		})
	}
	if len(fields) > 0 {
		return p, taxerr.InvalidRequest(fields...)
	}

	if claim != nil {
		p.Claim = business.ExemptionClaim{
			BuyerID:           p.BuyerID,
			StatusCardNumber:  claim.StatusCardNumber,
			BandNumber:        claim.BandNumber,
			TreatyNumber:      claim.TreatyNumber,
			OnReserveDelivery: claim.OnReserveDelivery,
		}
	}
	return p, nil
}
