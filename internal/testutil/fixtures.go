package testutil

import "co2-predictor-service/internal/core/domain"

// ReferenceCars is a small, well-conditioned slice of the car dataset.
func ReferenceCars() domain.Dataset {
	return domain.Dataset{
		{Weight: 790, Volume: 1000, CO2: 99},
		{Weight: 1160, Volume: 1600, CO2: 95},
		{Weight: 929, Volume: 1600, CO2: 95},
		{Weight: 865, Volume: 1600, CO2: 90},
		{Weight: 1140, Volume: 1600, CO2: 105},
	}
}

// ReferencePrediction is the least-squares estimate for (1300 kg, 1300 cm³)
// on ReferenceCars.
const ReferencePrediction = 109.24319694522843
