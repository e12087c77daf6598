package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyEmission(t *testing.T) {
	tests := []struct {
		co2  float64
		want EmissionLevel
	}{
		{co2: -5, want: EmissionLevelLow},
		{co2: 99.99, want: EmissionLevelLow},
		{co2: 100, want: EmissionLevelMedium},
		{co2: 199.5, want: EmissionLevelMedium},
		{co2: 200, want: EmissionLevelHigh},
		{co2: 512, want: EmissionLevelHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyEmission(tt.co2), "co2=%v", tt.co2)
	}
}

func TestModelArtifact_Validate(t *testing.T) {
	ok := &ModelArtifact{Intercept: 1, CoefficientWeight: 0.1, CoefficientVolume: -0.2}
	assert.NoError(t, ok.Validate())

	var nilArtifact *ModelArtifact
	assert.ErrorIs(t, nilArtifact.Validate(), ErrInvalidArtifact)

	bad := []*ModelArtifact{
		{Intercept: math.NaN()},
		{CoefficientWeight: math.Inf(1)},
		{CoefficientVolume: math.Inf(-1)},
	}
	for _, a := range bad {
		assert.ErrorIs(t, a.Validate(), ErrInvalidArtifact)
	}
}

func TestRecord_Validate(t *testing.T) {
	assert.NoError(t, Record{Weight: 790, Volume: 1000, CO2: 99}.Validate())
	assert.ErrorIs(t, Record{Weight: math.NaN(), Volume: 1000, CO2: 99}.Validate(), ErrInvalidDataset)
}
