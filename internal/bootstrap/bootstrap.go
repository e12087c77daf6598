// Package bootstrap decides where the serving artifact comes from: an
// existing stored artifact, a model file (local or downloaded), a published
// copy, or a fresh fit on the dataset.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"co2-predictor-service/internal/adapters/secondary/filestore"
	"co2-predictor-service/internal/core/domain"
	output "co2-predictor-service/internal/core/ports/output"
	"co2-predictor-service/internal/core/services"
)

// ArtifactSource is a read-only place an artifact may already be published.
type ArtifactSource interface {
	Load(ctx context.Context) (*domain.ModelArtifact, error)
}

type Options struct {
	ModelPath string
	DataPath  string
	ModelURL  string
	DataURL   string
}

type Driver struct {
	repo    output.ArtifactRepository
	trainer *services.TrainingService
	fetcher output.Fetcher
	source  ArtifactSource
	opts    Options
}

// New returns a driver. fetcher and source may be nil.
func New(
	repo output.ArtifactRepository,
	trainer *services.TrainingService,
	fetcher output.Fetcher,
	source ArtifactSource,
	opts Options,
) *Driver {
	return &Driver{repo: repo, trainer: trainer, fetcher: fetcher, source: source, opts: opts}
}

// EnsureArtifact returns an artifact to serve, trying in order: the
// repository, the model file (downloaded first if missing), the published
// source, and training on the dataset (downloaded first if missing).
func (d *Driver) EnsureArtifact(ctx context.Context) (*domain.ModelArtifact, error) {
	artifact, err := d.repo.Latest(ctx)
	if err == nil {
		log.WithField("artifact_id", artifact.ID).Info("using stored model artifact")
		return artifact, nil
	}
	if !errors.Is(err, domain.ErrArtifactNotFound) {
		return nil, fmt.Errorf("load latest artifact: %w", err)
	}

	d.fetchMissing(ctx)

	if artifact, err := d.fromModelFile(ctx); err == nil {
		return artifact, nil
	} else if !errors.Is(err, domain.ErrArtifactNotFound) {
		log.WithError(err).Warn("model file unusable, falling back")
	}

	if d.source != nil {
		artifact, err := d.source.Load(ctx)
		if err == nil {
			if err := d.store(ctx, artifact); err != nil {
				return nil, err
			}
			log.WithField("artifact_id", artifact.ID).Info("using published model artifact")
			return artifact, nil
		}
		if !errors.Is(err, domain.ErrArtifactNotFound) {
			log.WithError(err).Warn("published model artifact unavailable")
		}
	}

	log.Warn("model not found, training new model")
	artifact, err = d.trainer.Train(ctx)
	if errors.Is(err, domain.ErrDatasetNotFound) {
		return nil, fmt.Errorf("%w: no stored model, model file or dataset available", domain.ErrArtifactNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("train model: %w", err)
	}
	return artifact, nil
}

// fetchMissing downloads the model and dataset files that are absent locally.
// The downloads are independent and run concurrently. Failures are logged; the
// caller falls through to the next source.
func (d *Driver) fetchMissing(ctx context.Context) {
	if d.fetcher == nil {
		return
	}

	var g errgroup.Group
	for _, f := range []struct{ url, path, what string }{
		{d.opts.ModelURL, d.opts.ModelPath, "model"},
		{d.opts.DataURL, d.opts.DataPath, "dataset"},
	} {
		if f.url == "" || f.path == "" || exists(f.path) {
			continue
		}
		f := f
		g.Go(func() error {
			log.WithFields(log.Fields{"url": f.url, "path": f.path}).Infof("downloading %s", f.what)
			if err := d.fetcher.Fetch(ctx, f.url, f.path); err != nil {
				return fmt.Errorf("download %s: %w", f.what, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("failed to download file")
	}
}

func (d *Driver) fromModelFile(ctx context.Context) (*domain.ModelArtifact, error) {
	if d.opts.ModelPath == "" {
		return nil, domain.ErrArtifactNotFound
	}
	artifact, err := filestore.ReadFile(d.opts.ModelPath)
	if err != nil {
		return nil, err
	}
	if err := d.ImportFile(ctx, d.opts.ModelPath, artifact); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"artifact_id": artifact.ID,
		"path":        d.opts.ModelPath,
	}).Info("using model file")
	return artifact, nil
}

// ImportFile records an artifact read from path, such as a replaced model
// file. An artifact without an id gets one, and the id is written back to
// path so later reads of the same file map to the same stored artifact.
func (d *Driver) ImportFile(ctx context.Context, path string, artifact *domain.ModelArtifact) error {
	if artifact.ID == uuid.Nil {
		stamp(artifact)
		if err := filestore.WriteFile(path, artifact); err != nil {
			log.WithError(err).WithField("path", path).Warn("failed to record artifact id in model file")
		}
	}
	return d.store(ctx, artifact)
}

// store records an externally supplied artifact in the repository. A
// duplicate id means it is already stored.
func (d *Driver) store(ctx context.Context, artifact *domain.ModelArtifact) error {
	stamp(artifact)
	err := d.repo.Save(ctx, artifact)
	if err != nil && !errors.Is(err, domain.ErrArtifactConflict) {
		return fmt.Errorf("save artifact: %w", err)
	}
	return nil
}

// stamp fills in the id and creation time that hand-written files lack.
func stamp(artifact *domain.ModelArtifact) {
	if artifact.ID == uuid.Nil {
		artifact.ID = uuid.New()
	}
	if artifact.CreatedAt.IsZero() {
		artifact.CreatedAt = time.Now().UTC()
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
