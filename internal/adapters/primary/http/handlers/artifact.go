package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"co2-predictor-service/internal/adapters/primary/http/dto"
	output "co2-predictor-service/internal/core/ports/output"
	"co2-predictor-service/internal/core/services"
)

func (h *Handler) ListArtifacts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := services.NormalizeListFilter(output.ArtifactListFilter{
		SortBy: c.Query("sort_by"),
		Order:  c.Query("order"),
		Limit:  limit,
		Offset: offset,
	})

	artifacts, total, err := h.artifactSvc.List(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("list model artifacts failed")
		mapDomainError(c, err)
		return
	}

	activeID := h.activeID()
	items := make([]dto.ArtifactResponse, 0, len(artifacts))
	for _, a := range artifacts {
		items = append(items, dto.ToArtifactResponse(a, activeID))
	}

	c.JSON(http.StatusOK, dto.ListArtifactsResponse{
		Items:      items,
		Total:      total,
		PageSize:   filter.Limit,
		NextOffset: filter.Offset + len(items),
	})
}

func (h *Handler) GetLatestArtifact(c *gin.Context) {
	artifact, err := h.artifactSvc.Latest(c.Request.Context())
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToArtifactResponse(artifact, h.activeID()))
}

func (h *Handler) GetArtifact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artifact id"})
		return
	}

	artifact, err := h.artifactSvc.Get(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToArtifactResponse(artifact, h.activeID()))
}

func (h *Handler) ActivateArtifact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artifact id"})
		return
	}

	artifact, err := h.predictionSvc.ActivateByID(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).WithField("artifact_id", id).Error("activate model artifact failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToArtifactResponse(artifact, artifact.ID))
}

func (h *Handler) activeID() uuid.UUID {
	if active := h.predictionSvc.Active(); active != nil {
		return active.ID
	}
	return uuid.Nil
}
