package dto

import (
	"github.com/google/uuid"

	"co2-predictor-service/internal/core/domain"
)

type PredictRequest struct {
	Weight *float64 `json:"weight" binding:"required"`
	Volume *float64 `json:"volume" binding:"required"`
}

func (r PredictRequest) ToDomain() domain.PredictionRequest {
	return domain.PredictionRequest{Weight: *r.Weight, Volume: *r.Volume}
}

type BatchPredictRequest struct {
	Items []PredictRequest `json:"items" binding:"required,min=1,max=1000,dive"`
}

func (r BatchPredictRequest) ToDomain() []domain.PredictionRequest {
	reqs := make([]domain.PredictionRequest, 0, len(r.Items))
	for _, item := range r.Items {
		reqs = append(reqs, item.ToDomain())
	}
	return reqs
}

type PredictionResponse struct {
	ArtifactID    uuid.UUID `json:"artifact_id"`
	Weight        float64   `json:"weight"`
	Volume        float64   `json:"volume"`
	PredictedCO2  float64   `json:"predicted_co2"`
	EmissionLevel string    `json:"emission_level"`
}

type BatchPredictionResponse struct {
	Items []PredictionResponse `json:"items"`
}

func ToPredictionResponse(p *domain.Prediction) PredictionResponse {
	return PredictionResponse{
		ArtifactID:    p.ArtifactID,
		Weight:        p.Weight,
		Volume:        p.Volume,
		PredictedCO2:  p.PredictedCO2,
		EmissionLevel: string(p.Level),
	}
}

func ToBatchPredictionResponse(ps []domain.Prediction) BatchPredictionResponse {
	items := make([]PredictionResponse, 0, len(ps))
	for i := range ps {
		items = append(items, ToPredictionResponse(&ps[i]))
	}
	return BatchPredictionResponse{Items: items}
}
