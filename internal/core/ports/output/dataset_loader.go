package ports

import (
	"context"

	"co2-predictor-service/internal/core/domain"
)

// DatasetLoader provides the training snapshot. Absent data yields
// domain.ErrDatasetNotFound.
type DatasetLoader interface {
	Load(ctx context.Context) (domain.Dataset, error)
}
