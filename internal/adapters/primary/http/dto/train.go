package dto

import "co2-predictor-service/internal/core/domain"

type RecordRequest struct {
	Weight *float64 `json:"weight" binding:"required"`
	Volume *float64 `json:"volume" binding:"required"`
	CO2    *float64 `json:"co2" binding:"required"`
}

// TrainRequest is optional; without it the configured dataset is used.
type TrainRequest struct {
	Records []RecordRequest `json:"records" binding:"required,min=1,dive"`
}

func (r TrainRequest) ToDomain() domain.Dataset {
	ds := make(domain.Dataset, 0, len(r.Records))
	for _, rec := range r.Records {
		ds = append(ds, domain.Record{Weight: *rec.Weight, Volume: *rec.Volume, CO2: *rec.CO2})
	}
	return ds
}
