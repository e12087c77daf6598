package domain

import (
	"fmt"
	"math"
)

// Record is one observed vehicle.
type Record struct {
	Weight float64 `json:"weight"` // kg
	Volume float64 `json:"volume"` // cm³
	CO2    float64 `json:"co2"`    // g/km
}

// Validate rejects non-finite values. Physical plausibility is not checked.
func (r Record) Validate() error {
	if !isFinite(r.Weight) || !isFinite(r.Volume) || !isFinite(r.CO2) {
		return fmt.Errorf("%w: non-finite value in record %+v", ErrInvalidDataset, r)
	}
	return nil
}

// Dataset is an ordered, read-only snapshot of records.
type Dataset []Record

func (d Dataset) Len() int { return len(d) }

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
