package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unations/tax-engine/internal/interfaces"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/api/params"
	"github.com/unations/tax-engine/internal/types/api/requests"
	"github.com/unations/tax-engine/internal/types/api/responses"
	"github.com/unations/tax-engine/internal/types/business"
	"go.uber.org/zap"
)

// ExemptionHandler handles status card validation and exemption record maintenance
type ExemptionHandler struct {
	common      *CommonServices
	statusCards interfaces.StatusCardService
	logger      *zap.Logger
}

// NewExemptionHandler creates a handler with interface dependencies
func NewExemptionHandler(common *CommonServices, statusCards interfaces.StatusCardService, logger *zap.Logger) *ExemptionHandler {
	if logger == nil {
		logger = zap.L()
	}
	return &ExemptionHandler{common: common, statusCards: statusCards, logger: logger}
}

// ValidateStatusCard godoc
// @Summary Validate a status card
// @Description Checks a presented Certificate of Indian Status against the registry, registering cards seen for the first time
// @Tags exemptions
// @Accept json
// @Produce json
// @Param request body requests.ValidateStatusCardRequest true "Presented card"
// @Success 200 {object} responses.StatusCardValidationResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 503 {object} responses.ErrorResponse
// @Router /status-cards/validate [post]
func (h *ExemptionHandler) ValidateStatusCard(c *gin.Context) {
	var req requests.ValidateStatusCardRequest
	if err := bindJSON(c, &req); err != nil {
		h.common.HandleError(c, err, "Invalid request body")
		return
	}

	result, err := h.statusCards.ValidateStatusCard(c.Request.Context(), params.ValidateStatusCardParams{
		CardNumber:  req.CardNumber,
		HolderName:  req.HolderName,
		DateOfBirth: req.DateOfBirth,
		BandNumber:  req.BandNumber,
		ValidUntil:  req.ValidUntil,
	})
	if err != nil {
		h.common.HandleError(c, err, "Failed to validate status card")
		return
	}
	sendSuccess(c, http.StatusOK, responses.NewStatusCardValidationResponse(*result))
}

// UpdateStatusCardStatus godoc
// @Summary Change a status card's registry status
// @Description Suspends, revokes or reactivates a card. Cached exemption decisions for the card are invalidated.
// @Tags exemptions
// @Accept json
// @Produce json
// @Param card_number path string true "Status card number"
// @Param request body requests.UpdateStatusCardStatusRequest true "New status"
// @Success 200 {object} responses.StatusCardResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /status-cards/{card_number}/status [patch]
func (h *ExemptionHandler) UpdateStatusCardStatus(c *gin.Context) {
	var req requests.UpdateStatusCardStatusRequest
	if err := bindJSON(c, &req); err != nil {
		h.common.HandleError(c, err, "Invalid request body")
		return
	}

	record, err := h.statusCards.UpdateStatusCardStatus(c.Request.Context(), c.Param("card_number"), business.StatusCardStatus(req.Status))
	if err != nil {
		h.common.HandleError(c, err, "Failed to update status card")
		return
	}
	sendSuccess(c, http.StatusOK, responses.NewStatusCardResponse(*record))
}

// UpsertBandExemption godoc
// @Summary Record a band exemption
// @Description Creates or replaces a band council's registry entry. Omitted active defaults to true.
// @Tags exemptions
// @Accept json
// @Produce json
// @Param band_number path string true "Band number"
// @Param request body requests.UpsertBandExemptionRequest true "Band entry"
// @Success 200 {object} responses.BandExemptionResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /exemptions/bands/{band_number} [put]
func (h *ExemptionHandler) UpsertBandExemption(c *gin.Context) {
	var req requests.UpsertBandExemptionRequest
	if err := bindJSON(c, &req); err != nil {
		h.common.HandleError(c, err, "Invalid request body")
		return
	}

	record, err := h.statusCards.UpsertBandExemption(c.Request.Context(), params.UpsertBandExemptionParams{
		BandNumber:    c.Param("band_number"),
		BandName:      req.BandName,
		Jurisdictions: req.Jurisdictions,
		Active:        req.Active == nil || *req.Active,
		ValidFrom:     req.ValidFrom,
		ValidUntil:    req.ValidUntil,
	})
	if err != nil {
		h.common.HandleError(c, err, "Failed to save band exemption")
		return
	}
	sendSuccess(c, http.StatusOK, responses.NewBandExemptionResponse(*record))
}

// UpsertTreatyExemption godoc
// @Summary Record a treaty exemption
// @Description Creates or replaces the relief a treaty grants in one jurisdiction. Omitted active defaults to true.
// @Tags exemptions
// @Accept json
// @Produce json
// @Param treaty_number path string true "Treaty number"
// @Param request body requests.UpsertTreatyExemptionRequest true "Treaty entry"
// @Success 200 {object} responses.TreatyExemptionResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /exemptions/treaties/{treaty_number} [put]
func (h *ExemptionHandler) UpsertTreatyExemption(c *gin.Context) {
	var req requests.UpsertTreatyExemptionRequest
	if err := bindJSON(c, &req); err != nil {
		h.common.HandleError(c, err, "Invalid request body")
		return
	}

	taxTypes := make([]business.TaxType, 0, len(req.ExemptTaxTypes))
	for _, s := range req.ExemptTaxTypes {
		t, err := business.ParseTaxType(s)
		if err != nil {
			h.common.HandleError(c, taxerr.InvalidExemptionClaim(taxerr.FieldError{Field: "exempt_tax_types", Message: err.Error()}), "Invalid request body")
			return
		}
		taxTypes = append(taxTypes, t)
	}

	record, err := h.statusCards.UpsertTreatyExemption(c.Request.Context(), params.UpsertTreatyExemptionParams{
		TreatyNumber:   c.Param("treaty_number"),
		Jurisdiction:   req.Jurisdiction,
		ExemptTaxTypes: taxTypes,
		Percentage:     req.Percentage,
		Active:         req.Active == nil || *req.Active,
		ValidFrom:      req.ValidFrom,
		ValidUntil:     req.ValidUntil,
	})
	if err != nil {
		h.common.HandleError(c, err, "Failed to save treaty exemption")
		return
	}
	sendSuccess(c, http.StatusOK, responses.NewTreatyExemptionResponse(*record))
}
