package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unations/tax-engine/internal/types/api/responses"
)

// HealthHandler reports liveness
type HealthHandler struct {
	common *CommonServices
}

// NewHealthHandler creates a health handler
func NewHealthHandler(common *CommonServices) *HealthHandler {
	return &HealthHandler{common: common}
}

// Health godoc
// @Summary Health check
// @Description Reports that the API process is serving requests
// @Tags health
// @Produce json
// @Success 200 {object} responses.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	sendSuccess(c, http.StatusOK, responses.HealthResponse{Status: "ok", Stage: h.common.stage})
}
