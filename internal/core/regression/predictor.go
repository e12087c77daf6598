package regression

import (
	"co2-predictor-service/internal/core/domain"
)

// Predict evaluates the affine model at (weight, volume). Inputs are not
// clamped to physically plausible ranges.
func Predict(artifact *domain.ModelArtifact, weight, volume float64) (float64, error) {
	if err := artifact.Validate(); err != nil {
		return 0, err
	}
	return artifact.Intercept +
		artifact.CoefficientWeight*weight +
		artifact.CoefficientVolume*volume, nil
}

// MeanSquaredError returns the mean squared residual of artifact over dataset.
func MeanSquaredError(artifact *domain.ModelArtifact, dataset domain.Dataset) (float64, error) {
	if len(dataset) == 0 {
		return 0, domain.ErrInsufficientData
	}
	var sum float64
	for _, rec := range dataset {
		p, err := Predict(artifact, rec.Weight, rec.Volume)
		if err != nil {
			return 0, err
		}
		d := rec.CO2 - p
		sum += d * d
	}
	return sum / float64(len(dataset)), nil
}

// Score returns the coefficient of determination R². A constant target gives
// 1 for a perfect fit and 0 otherwise.
func Score(artifact *domain.ModelArtifact, dataset domain.Dataset) (float64, error) {
	if len(dataset) == 0 {
		return 0, domain.ErrInsufficientData
	}
	var mean float64
	for _, rec := range dataset {
		mean += rec.CO2
	}
	mean /= float64(len(dataset))

	var ssRes, ssTot float64
	for _, rec := range dataset {
		p, err := Predict(artifact, rec.Weight, rec.Volume)
		if err != nil {
			return 0, err
		}
		ssRes += (rec.CO2 - p) * (rec.CO2 - p)
		ssTot += (rec.CO2 - mean) * (rec.CO2 - mean)
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1, nil
		}
		return 0, nil
	}
	return 1 - ssRes/ssTot, nil
}
