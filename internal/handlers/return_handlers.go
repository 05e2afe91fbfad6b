package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/unations/tax-engine/internal/helpers"
	"github.com/unations/tax-engine/internal/interfaces"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/api/params"
	"github.com/unations/tax-engine/internal/types/api/requests"
	"github.com/unations/tax-engine/internal/types/api/responses"
	"github.com/unations/tax-engine/internal/types/business"
	"go.uber.org/zap"
)

// ReturnHandler handles tax return filing and remittance payment requests
type ReturnHandler struct {
	common    *CommonServices
	filing    interfaces.FilingService
	publisher interfaces.ReturnRequestPublisher
	logger    *zap.Logger
}

// NewReturnHandler creates a handler with interface dependencies. publisher
// receives batch period-close requests.
func NewReturnHandler(common *CommonServices, filing interfaces.FilingService, publisher interfaces.ReturnRequestPublisher, logger *zap.Logger) *ReturnHandler {
	if logger == nil {
		logger = zap.L()
	}
	return &ReturnHandler{common: common, filing: filing, publisher: publisher, logger: logger}
}

// FileReturn godoc
// @Summary Prepare a tax return
// @Description Aggregates the entity's calculations for the period into a Draft return. Dates default to the bounds of the period label (2025-03, 2025-Q1, 2025).
// @Tags returns
// @Accept json
// @Produce json
// @Param request body requests.FileReturnRequest true "Return period"
// @Success 201 {object} responses.TaxReturnResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Failure 503 {object} responses.ErrorResponse
// @Router /returns [post]
func (h *ReturnHandler) FileReturn(c *gin.Context) {
	var req requests.FileReturnRequest
	if err := bindJSON(c, &req); err != nil {
		h.common.HandleError(c, err, "Invalid request body")
		return
	}

	p := params.FileReturnParams{EntityID: req.EntityID, ReturnType: req.ReturnType, Period: req.Period}
	if req.StartDate != nil {
		p.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		p.EndDate = *req.EndDate
	}

	ret, err := h.filing.FileReturn(c.Request.Context(), p)
	if err != nil {
		h.common.HandleError(c, err, "Failed to prepare tax return")
		return
	}
	sendSuccess(c, http.StatusCreated, responses.NewTaxReturnResponse(*ret))
}

// BatchFileReturns godoc
// @Summary Queue period close for many entities
// @Description Queues one return preparation per entity for the same period. Returns are prepared asynchronously.
// @Tags returns
// @Accept json
// @Produce json
// @Param request body requests.BatchFileReturnsRequest true "Entities and period"
// @Success 202 {object} responses.BatchFileReturnsResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 503 {object} responses.ErrorResponse
// @Router /returns/batch [post]
func (h *ReturnHandler) BatchFileReturns(c *gin.Context) {
	var req requests.BatchFileReturnsRequest
	if err := bindJSON(c, &req); err != nil {
		h.common.HandleError(c, err, "Invalid request body")
		return
	}

	start, end, err := helpers.PeriodBounds(req.ReturnType, req.Period)
	if err != nil {
		h.common.HandleError(c, taxerr.InvalidRequest(taxerr.FieldError{Field: "period", Message: err.Error()}), "Invalid request body")
		return
	}

	entityIDs := lo.Uniq(lo.FilterMap(req.EntityIDs, func(id string, _ int) (string, bool) {
		id = strings.TrimSpace(id)
		return id, id != ""
	}))
	if len(entityIDs) == 0 {
		h.common.HandleError(c, taxerr.InvalidRequest(taxerr.FieldError{Field: "entity_ids", Message: "must contain at least one entity"}), "Invalid request body")
		return
	}

	period := strings.ToUpper(strings.TrimSpace(req.Period))
	for i, entityID := range entityIDs {
		err := h.publisher.PublishReturnRequest(c.Request.Context(), business.ReturnRequest{
			EntityID:    entityID,
			ReturnType:  req.ReturnType,
			Period:      period,
			StartDate:   start,
			EndDate:     end,
			RequestedBy: req.RequestedBy,
		})
		if err != nil {
			h.logger.Error("Batch period close stopped",
				zap.Int("queued", i),
				zap.Int("requested", len(entityIDs)),
				zap.Error(err))
			h.common.HandleError(c, taxerr.StoreUnavailable("queue return request", err), "Failed to queue return requests")
			return
		}
	}

	sendSuccess(c, http.StatusAccepted, responses.BatchFileReturnsResponse{
		Queued:    len(entityIDs),
		EntityIDs: entityIDs,
		Period:    period,
		StartDate: start,
		EndDate:   end,
	})
}

// GetReturn godoc
// @Summary Get a tax return
// @Tags returns
// @Produce json
// @Param return_id path string true "Return ID"
// @Success 200 {object} responses.TaxReturnResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /returns/{return_id} [get]
func (h *ReturnHandler) GetReturn(c *gin.Context) {
	id, err := uuidParam(c, "return_id")
	if err != nil {
		h.common.HandleError(c, err, "Invalid return ID")
		return
	}

	ret, err := h.filing.GetReturn(c.Request.Context(), id)
	if err != nil {
		h.common.HandleError(c, err, "Failed to get tax return")
		return
	}
	sendSuccess(c, http.StatusOK, responses.NewTaxReturnResponse(*ret))
}

// MarkReady godoc
// @Summary Mark a return reviewed
// @Description Moves a Draft return to Ready
// @Tags returns
// @Accept json
// @Produce json
// @Param return_id path string true "Return ID"
// @Param request body requests.MarkReadyRequest true "Reviewer"
// @Success 200 {object} responses.TaxReturnResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /returns/{return_id}/ready [post]
func (h *ReturnHandler) MarkReady(c *gin.Context) {
	id, err := uuidParam(c, "return_id")
	if err != nil {
		h.common.HandleError(c, err, "Invalid return ID")
		return
	}
	var req requests.MarkReadyRequest
	if err := bindJSON(c, &req); err != nil {
		h.common.HandleError(c, err, "Invalid request body")
		return
	}

	ret, err := h.filing.MarkReady(c.Request.Context(), params.MarkReadyParams{ReturnID: id, ReviewedBy: req.ReviewedBy})
	if err != nil {
		h.common.HandleError(c, err, "Failed to mark return ready")
		return
	}
	sendSuccess(c, http.StatusOK, responses.NewTaxReturnResponse(*ret))
}

// SubmitReturn godoc
// @Summary File a return
// @Description Submits a Draft or Ready return. A remittance is created when net tax is owing.
// @Tags returns
// @Accept json
// @Produce json
// @Param return_id path string true "Return ID"
// @Param request body requests.SubmitReturnRequest true "Approver"
// @Success 200 {object} responses.SubmitReturnResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Failure 503 {object} responses.ErrorResponse
// @Router /returns/{return_id}/submit [post]
func (h *ReturnHandler) SubmitReturn(c *gin.Context) {
	id, err := uuidParam(c, "return_id")
	if err != nil {
		h.common.HandleError(c, err, "Invalid return ID")
		return
	}
	var req requests.SubmitReturnRequest
	if err := bindJSON(c, &req); err != nil {
		h.common.HandleError(c, err, "Invalid request body")
		return
	}

	result, err := h.filing.SubmitReturn(c.Request.Context(), params.SubmitReturnParams{ReturnID: id, ApprovedBy: req.ApprovedBy})
	if err != nil {
		h.common.HandleError(c, err, "Failed to file tax return")
		return
	}
	sendSuccess(c, http.StatusOK, responses.NewSubmitReturnResponse(*result))
}

// AmendReturn godoc
// @Summary Amend a filed return
// @Description Prepares a new Draft version of a filed return from the period's current calculations
// @Tags returns
// @Produce json
// @Param return_id path string true "Return ID"
// @Success 201 {object} responses.TaxReturnResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /returns/{return_id}/amend [post]
func (h *ReturnHandler) AmendReturn(c *gin.Context) {
	id, err := uuidParam(c, "return_id")
	if err != nil {
		h.common.HandleError(c, err, "Invalid return ID")
		return
	}

	ret, err := h.filing.AmendReturn(c.Request.Context(), id)
	if err != nil {
		h.common.HandleError(c, err, "Failed to amend tax return")
		return
	}
	sendSuccess(c, http.StatusCreated, responses.NewTaxReturnResponse(*ret))
}

// RecordPayment godoc
// @Summary Record a remittance payment
// @Tags returns
// @Produce json
// @Param remittance_id path string true "Remittance ID"
// @Success 200 {object} responses.RemittanceResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /remittances/{remittance_id}/payments [post]
func (h *ReturnHandler) RecordPayment(c *gin.Context) {
	id, err := uuidParam(c, "remittance_id")
	if err != nil {
		h.common.HandleError(c, err, "Invalid remittance ID")
		return
	}

	rem, err := h.filing.RecordPayment(c.Request.Context(), id)
	if err != nil {
		h.common.HandleError(c, err, "Failed to record payment")
		return
	}
	sendSuccess(c, http.StatusOK, responses.NewRemittanceResponse(*rem))
}
