package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"co2-predictor-service/internal/adapters/primary/http/dto"
)

// Health reports ready only once a model artifact is serving.
func (h *Handler) Health(c *gin.Context) {
	active := h.predictionSvc.Active()
	if active == nil {
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "no_model"})
		return
	}
	id := active.ID
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", ArtifactID: &id})
}
