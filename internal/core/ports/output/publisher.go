package ports

import (
	"context"

	"co2-predictor-service/internal/core/domain"
)

// ArtifactPublisher makes a freshly trained artifact visible outside this
// process, e.g. to serving replicas.
type ArtifactPublisher interface {
	Publish(ctx context.Context, artifact *domain.ModelArtifact) error
}
