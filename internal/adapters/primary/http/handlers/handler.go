package handlers

import (
	"github.com/gin-gonic/gin"

	"co2-predictor-service/internal/core/services"
)

type Handler struct {
	trainingSvc   *services.TrainingService
	artifactSvc   *services.ArtifactService
	predictionSvc *services.PredictionService
}

func New(
	trainingSvc *services.TrainingService,
	artifactSvc *services.ArtifactService,
	predictionSvc *services.PredictionService,
) *Handler {
	return &Handler{
		trainingSvc:   trainingSvc,
		artifactSvc:   artifactSvc,
		predictionSvc: predictionSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Predictions
	r.POST("/predict", h.Predict)
	r.POST("/predict/batch", h.PredictBatch)
	r.POST("/artifacts/:id/predict", h.PredictWithArtifact)

	// Training
	r.POST("/train", h.Train)

	// Artifacts
	r.GET("/artifacts", h.ListArtifacts)
	r.GET("/artifacts/latest", h.GetLatestArtifact)
	r.GET("/artifacts/:id", h.GetArtifact)
	r.POST("/artifacts/:id/activate", h.ActivateArtifact)

	r.GET("/healthz", h.Health)
}
