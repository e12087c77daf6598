package dto

import (
	"time"

	"github.com/google/uuid"

	"co2-predictor-service/internal/core/domain"
)

type TrainingSummaryResponse struct {
	Rows int     `json:"rows"`
	MSE  float64 `json:"mse"`
	R2   float64 `json:"r2"`
}

type ArtifactResponse struct {
	ID                uuid.UUID               `json:"id"`
	CreatedAt         time.Time               `json:"created_at"`
	Intercept         float64                 `json:"intercept"`
	CoefficientWeight float64                 `json:"coefficient_weight"`
	CoefficientVolume float64                 `json:"coefficient_volume"`
	Training          TrainingSummaryResponse `json:"training"`
	Active            bool                    `json:"active"`
}

type ListArtifactsResponse struct {
	Items      []ArtifactResponse `json:"items"`
	Total      int                `json:"total"`
	PageSize   int                `json:"page_size"`
	NextOffset int                `json:"next_offset"`
}

// ToArtifactResponse converts a, marking it active when its id matches activeID.
func ToArtifactResponse(a *domain.ModelArtifact, activeID uuid.UUID) ArtifactResponse {
	return ArtifactResponse{
		ID:                a.ID,
		CreatedAt:         a.CreatedAt,
		Intercept:         a.Intercept,
		CoefficientWeight: a.CoefficientWeight,
		CoefficientVolume: a.CoefficientVolume,
		Training: TrainingSummaryResponse{
			Rows: a.Training.Rows,
			MSE:  a.Training.MSE,
			R2:   a.Training.R2,
		},
		Active: activeID != uuid.Nil && a.ID == activeID,
	}
}

type HealthResponse struct {
	Status     string     `json:"status"`
	ArtifactID *uuid.UUID `json:"artifact_id,omitempty"`
}
