package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"co2-predictor-service/internal/core/domain"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrArtifactNotFound),
		errors.Is(err, domain.ErrDatasetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Conflict errors
	case errors.Is(err, domain.ErrArtifactConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	// Bad request
	case errors.Is(err, domain.ErrInvalidArtifactID),
		errors.Is(err, domain.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Dataset cannot produce a model
	case errors.Is(err, domain.ErrInsufficientData),
		errors.Is(err, domain.ErrSingularMatrix),
		errors.Is(err, domain.ErrInvalidDataset):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	// Upstream download errors
	case errors.Is(err, domain.ErrFetchFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrInvalidArtifact):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
