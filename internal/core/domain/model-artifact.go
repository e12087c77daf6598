package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ModelArtifact is the persisted output of training. Intercept and the two
// coefficients fully determine the predictor; the remaining fields identify
// the artifact and summarize the fit but never affect a prediction.
//
// An artifact is immutable once created. Retraining produces a new artifact
// with a new ID.
type ModelArtifact struct {
	ID                uuid.UUID       `json:"id" yaml:"id"`
	CreatedAt         time.Time       `json:"created_at" yaml:"created_at"`
	Intercept         float64         `json:"intercept" yaml:"intercept"`
	CoefficientWeight float64         `json:"coefficient_weight" yaml:"coefficient_weight"`
	CoefficientVolume float64         `json:"coefficient_volume" yaml:"coefficient_volume"`
	Training          TrainingSummary `json:"training" yaml:"training"`
}

// TrainingSummary describes the fit over the training snapshot.
type TrainingSummary struct {
	Rows int     `json:"rows" yaml:"rows"`
	MSE  float64 `json:"mse" yaml:"mse"`
	R2   float64 `json:"r2" yaml:"r2"`
}

// Validate checks that the three scalars are finite.
func (a *ModelArtifact) Validate() error {
	if a == nil {
		return fmt.Errorf("%w: nil artifact", ErrInvalidArtifact)
	}
	if !isFinite(a.Intercept) {
		return fmt.Errorf("%w: intercept is %v", ErrInvalidArtifact, a.Intercept)
	}
	if !isFinite(a.CoefficientWeight) {
		return fmt.Errorf("%w: coefficient_weight is %v", ErrInvalidArtifact, a.CoefficientWeight)
	}
	if !isFinite(a.CoefficientVolume) {
		return fmt.Errorf("%w: coefficient_volume is %v", ErrInvalidArtifact, a.CoefficientVolume)
	}
	return nil
}
