package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/unations/tax-engine/internal/interfaces"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/api/responses"
	"go.uber.org/zap"
)

// ComplianceHandler handles entity compliance requests
type ComplianceHandler struct {
	common     *CommonServices
	compliance interfaces.ComplianceService
	logger     *zap.Logger
}

// NewComplianceHandler creates a handler with interface dependencies
func NewComplianceHandler(common *CommonServices, compliance interfaces.ComplianceService, logger *zap.Logger) *ComplianceHandler {
	if logger == nil {
		logger = zap.L()
	}
	return &ComplianceHandler{common: common, compliance: compliance, logger: logger}
}

// GetCompliance godoc
// @Summary Check entity compliance
// @Description Recomputes and records the entity's filing and payment compliance
// @Tags compliance
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Success 200 {object} responses.ComplianceRecordResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 503 {object} responses.ErrorResponse
// @Router /compliance/{entity_id} [get]
func (h *ComplianceHandler) GetCompliance(c *gin.Context) {
	entityID := strings.TrimSpace(c.Param("entity_id"))
	if entityID == "" {
		h.common.HandleError(c, taxerr.InvalidRequest(taxerr.FieldError{Field: "entity_id", Message: "is required"}), "Invalid entity ID")
		return
	}

	record, err := h.compliance.CheckCompliance(c.Request.Context(), entityID)
	if err != nil {
		h.common.HandleError(c, err, "Failed to check compliance")
		return
	}
	sendSuccess(c, http.StatusOK, responses.NewComplianceRecordResponse(*record))
}
