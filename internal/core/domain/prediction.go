package domain

import "github.com/google/uuid"

type EmissionLevel string

const (
	EmissionLevelLow    EmissionLevel = "LOW"
	EmissionLevelMedium EmissionLevel = "MEDIUM"
	EmissionLevelHigh   EmissionLevel = "HIGH"
)

// Emission band thresholds in g/km.
const (
	lowEmissionLimit    = 100.0
	mediumEmissionLimit = 200.0
)

// ClassifyEmission buckets a CO2 estimate into a coarse band.
func ClassifyEmission(co2 float64) EmissionLevel {
	switch {
	case co2 < lowEmissionLimit:
		return EmissionLevelLow
	case co2 < mediumEmissionLimit:
		return EmissionLevelMedium
	default:
		return EmissionLevelHigh
	}
}

type PredictionRequest struct {
	Weight float64
	Volume float64
}

type Prediction struct {
	ArtifactID   uuid.UUID
	Weight       float64
	Volume       float64
	PredictedCO2 float64
	Level        EmissionLevel
}
