package services

import (
	"context"

	"github.com/google/uuid"

	"co2-predictor-service/internal/core/domain"
	output "co2-predictor-service/internal/core/ports/output"
)

type ArtifactService struct {
	repo output.ArtifactRepository
}

func NewArtifactService(repo output.ArtifactRepository) *ArtifactService {
	return &ArtifactService{repo: repo}
}

func (s *ArtifactService) Get(ctx context.Context, id uuid.UUID) (*domain.ModelArtifact, error) {
	if id == uuid.Nil {
		return nil, domain.ErrInvalidArtifactID
	}
	return s.repo.GetByID(ctx, id)
}

func (s *ArtifactService) Latest(ctx context.Context) (*domain.ModelArtifact, error) {
	return s.repo.Latest(ctx)
}

func (s *ArtifactService) List(ctx context.Context, filter output.ArtifactListFilter) ([]*domain.ModelArtifact, int, error) {
	return s.repo.List(ctx, NormalizeListFilter(filter))
}

// NormalizeListFilter applies the default page size of 20, caps it at 100 and
// drops negative offsets.
func NormalizeListFilter(filter output.ArtifactListFilter) output.ArtifactListFilter {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter
}
