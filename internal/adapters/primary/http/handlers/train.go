package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"co2-predictor-service/internal/adapters/primary/http/dto"
	"co2-predictor-service/internal/core/domain"
)

// Train fits a new artifact. The body is optional: without one the
// configured dataset is used. activate=true also makes it the serving model.
func (h *Handler) Train(c *gin.Context) {
	activate, err := strconv.ParseBool(c.DefaultQuery("activate", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activate flag"})
		return
	}

	var artifact *domain.ModelArtifact
	if hasBody(c.Request) {
		var req dto.TrainRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		artifact, err = h.trainingSvc.TrainRecords(c.Request.Context(), req.ToDomain())
	} else {
		artifact, err = h.trainingSvc.Train(c.Request.Context())
	}
	if err != nil {
		log.WithError(err).Error("train model failed")
		mapDomainError(c, err)
		return
	}

	if activate {
		if err := h.predictionSvc.Activate(artifact); err != nil {
			mapDomainError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, dto.ToArtifactResponse(artifact, h.activeID()))
}

// hasBody also reports chunked bodies, whose ContentLength is -1.
func hasBody(r *http.Request) bool {
	return r.Body != nil && r.Body != http.NoBody && r.ContentLength != 0
}
