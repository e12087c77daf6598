package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"co2-predictor-service/internal/core/domain"
	"co2-predictor-service/internal/core/ports/output"
)

// MockArtifactRepo is a mock of ArtifactRepository.
type MockArtifactRepo struct {
	mock.Mock
}

func (m *MockArtifactRepo) Save(ctx context.Context, artifact *domain.ModelArtifact) error {
	args := m.Called(ctx, artifact)
	return args.Error(0)
}

func (m *MockArtifactRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ModelArtifact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelArtifact), args.Error(1)
}

func (m *MockArtifactRepo) Latest(ctx context.Context) (*domain.ModelArtifact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelArtifact), args.Error(1)
}

func (m *MockArtifactRepo) List(ctx context.Context, filter ports.ArtifactListFilter) ([]*domain.ModelArtifact, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.ModelArtifact), args.Int(1), args.Error(2)
}

// MockDatasetLoader is a mock of DatasetLoader.
type MockDatasetLoader struct {
	mock.Mock
}

func (m *MockDatasetLoader) Load(ctx context.Context) (domain.Dataset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Dataset), args.Error(1)
}

// MockFetcher is a mock of Fetcher.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url string, dstPath string) error {
	args := m.Called(ctx, url, dstPath)
	return args.Error(0)
}

// MockArtifactPublisher is a mock of ArtifactPublisher.
type MockArtifactPublisher struct {
	mock.Mock
}

func (m *MockArtifactPublisher) Publish(ctx context.Context, artifact *domain.ModelArtifact) error {
	args := m.Called(ctx, artifact)
	return args.Error(0)
}
