package ports

import (
	"context"

	"github.com/google/uuid"

	"co2-predictor-service/internal/core/domain"
)

type ArtifactListFilter struct {
	SortBy string
	Order  string
	Limit  int
	Offset int
}

// ArtifactRepository stores immutable model artifacts. Save never overwrites:
// an existing ID yields domain.ErrArtifactConflict.
type ArtifactRepository interface {
	Save(ctx context.Context, artifact *domain.ModelArtifact) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ModelArtifact, error)
	Latest(ctx context.Context) (*domain.ModelArtifact, error)
	List(ctx context.Context, filter ArtifactListFilter) ([]*domain.ModelArtifact, int, error)
}
