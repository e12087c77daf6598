package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"co2-predictor-service/internal/core/domain"
	output "co2-predictor-service/internal/core/ports/output"
	"co2-predictor-service/internal/core/regression"
)

const (
	defaultCacheSize  = 32
	defaultBatchLimit = 8
)

// PredictionService evaluates requests against the active artifact. The
// active artifact is replaced as a whole, so every request sees exactly one
// artifact.
type PredictionService struct {
	repo       output.ArtifactRepository
	active     atomic.Pointer[domain.ModelArtifact]
	cache      *lru.Cache[uuid.UUID, *domain.ModelArtifact]
	batchLimit int
}

func NewPredictionService(repo output.ArtifactRepository, cacheSize, batchLimit int) (*PredictionService, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	if batchLimit <= 0 {
		batchLimit = defaultBatchLimit
	}
	cache, err := lru.New[uuid.UUID, *domain.ModelArtifact](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create artifact cache: %w", err)
	}
	return &PredictionService{repo: repo, cache: cache, batchLimit: batchLimit}, nil
}

// Activate makes artifact the one used by Predict and PredictBatch.
func (s *PredictionService) Activate(artifact *domain.ModelArtifact) error {
	if err := artifact.Validate(); err != nil {
		return err
	}
	prev := s.active.Swap(artifact)
	if artifact.ID != uuid.Nil {
		s.cache.Add(artifact.ID, artifact)
	}

	entry := log.WithField("artifact_id", artifact.ID)
	if prev != nil {
		entry = entry.WithField("previous_artifact_id", prev.ID)
	}
	entry.Info("model artifact activated")
	return nil
}

// ActivateByID looks up a stored artifact and activates it.
func (s *PredictionService) ActivateByID(ctx context.Context, id uuid.UUID) (*domain.ModelArtifact, error) {
	artifact, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Activate(artifact); err != nil {
		return nil, err
	}
	return artifact, nil
}

// Active returns the active artifact or nil.
func (s *PredictionService) Active() *domain.ModelArtifact {
	return s.active.Load()
}

func (s *PredictionService) Predict(ctx context.Context, req domain.PredictionRequest) (*domain.Prediction, error) {
	artifact := s.active.Load()
	if artifact == nil {
		return nil, domain.ErrArtifactNotFound
	}
	return predict(artifact, req)
}

// PredictWith evaluates req against a specific stored artifact.
func (s *PredictionService) PredictWith(ctx context.Context, id uuid.UUID, req domain.PredictionRequest) (*domain.Prediction, error) {
	artifact, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return predict(artifact, req)
}

// PredictBatch evaluates all requests against one snapshot of the active
// artifact. Results keep the order of reqs.
func (s *PredictionService) PredictBatch(ctx context.Context, reqs []domain.PredictionRequest) ([]domain.Prediction, error) {
	artifact := s.active.Load()
	if artifact == nil {
		return nil, domain.ErrArtifactNotFound
	}

	out := make([]domain.Prediction, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchLimit)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := predict(artifact, req)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			out[i] = *p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PredictionService) lookup(ctx context.Context, id uuid.UUID) (*domain.ModelArtifact, error) {
	if id == uuid.Nil {
		return nil, domain.ErrInvalidArtifactID
	}
	if artifact, ok := s.cache.Get(id); ok {
		return artifact, nil
	}
	artifact, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Add(id, artifact)
	return artifact, nil
}

func predict(artifact *domain.ModelArtifact, req domain.PredictionRequest) (*domain.Prediction, error) {
	co2, err := regression.Predict(artifact, req.Weight, req.Volume)
	if err != nil {
		return nil, err
	}
	return &domain.Prediction{
		ArtifactID:   artifact.ID,
		Weight:       req.Weight,
		Volume:       req.Volume,
		PredictedCO2: co2,
		Level:        domain.ClassifyEmission(co2),
	}, nil
}
