package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"co2-predictor-service/internal/core/domain"
	output "co2-predictor-service/internal/core/ports/output"
	"co2-predictor-service/internal/core/regression"
)

type TrainingService struct {
	loader    output.DatasetLoader
	repo      output.ArtifactRepository
	publisher output.ArtifactPublisher
	now       func() time.Time
}

// NewTrainingService wires the trainer. publisher may be nil.
func NewTrainingService(
	loader output.DatasetLoader,
	repo output.ArtifactRepository,
	publisher output.ArtifactPublisher,
) *TrainingService {
	return &TrainingService{
		loader:    loader,
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// Train fits a new artifact on the configured dataset and persists it.
func (s *TrainingService) Train(ctx context.Context) (*domain.ModelArtifact, error) {
	if s.loader == nil {
		return nil, domain.ErrDatasetNotFound
	}
	dataset, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return s.TrainRecords(ctx, dataset)
}

// TrainRecords fits a new artifact on the given rows and persists it. Nothing
// is saved when the fit fails.
func (s *TrainingService) TrainRecords(ctx context.Context, dataset domain.Dataset) (*domain.ModelArtifact, error) {
	artifact, err := regression.Train(dataset)
	if err != nil {
		return nil, err
	}
	artifact.ID = uuid.New()
	artifact.CreatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, artifact); err != nil {
		return nil, fmt.Errorf("save artifact: %w", err)
	}

	log.WithFields(log.Fields{
		"artifact_id": artifact.ID,
		"rows":        artifact.Training.Rows,
		"mse":         artifact.Training.MSE,
		"r2":          artifact.Training.R2,
	}).Info("model trained")

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, artifact); err != nil {
			log.WithError(err).Warn("failed to publish model artifact")
		}
	}

	return artifact, nil
}
