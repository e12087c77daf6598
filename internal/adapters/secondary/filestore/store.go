package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"co2-predictor-service/internal/core/codec"
	"co2-predictor-service/internal/core/domain"
	output "co2-predictor-service/internal/core/ports/output"
)

// Store keeps one file per artifact in dir and mirrors the most recently
// saved artifact to currentPath. Both are written to a temp file first and
// renamed into place, so readers never observe a partial artifact.
type Store struct {
	dir         string
	currentPath string
	format      codec.Format
}

// NewStore uses the extension of currentPath to pick the encoding.
func NewStore(dir, currentPath string) (*Store, error) {
	format, err := codec.FormatFromPath(currentPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &Store{dir: dir, currentPath: currentPath, format: format}, nil
}

// CurrentPath is the file that always holds the latest artifact.
func (s *Store) CurrentPath() string {
	return s.currentPath
}

func (s *Store) Save(ctx context.Context, artifact *domain.ModelArtifact) error {
	if artifact.ID == uuid.Nil {
		return domain.ErrInvalidArtifactID
	}
	data, err := codec.Marshal(s.format, artifact)
	if err != nil {
		return err
	}

	path := s.pathFor(artifact.ID)
	if _, err := os.Stat(path); err == nil {
		return domain.ErrArtifactConflict
	}
	if err := WriteAtomic(path, data); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := WriteAtomic(s.currentPath, data); err != nil {
		return fmt.Errorf("write current artifact: %w", err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*domain.ModelArtifact, error) {
	return ReadFile(s.pathFor(id))
}

func (s *Store) Latest(ctx context.Context) (*domain.ModelArtifact, error) {
	return ReadFile(s.currentPath)
}

func (s *Store) List(ctx context.Context, filter output.ArtifactListFilter) ([]*domain.ModelArtifact, int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, 0, fmt.Errorf("read artifact dir: %w", err)
	}

	ext := "." + string(s.format)
	var all []*domain.ModelArtifact
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		if _, err := uuid.Parse(strings.TrimSuffix(e.Name(), ext)); err != nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		a, err := ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			return nil, 0, err
		}
		all = append(all, a)
	}

	sortArtifacts(all, filter.SortBy, filter.Order)

	total := len(all)
	start := filter.Offset
	if start > total {
		start = total
	}
	end := total
	if filter.Limit > 0 && start+filter.Limit < total {
		end = start + filter.Limit
	}
	return all[start:end], total, nil
}

func (s *Store) pathFor(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+"."+string(s.format))
}

// sortArtifacts orders by created_at (default) or r2, newest/highest first
// unless order is "asc".
func sortArtifacts(all []*domain.ModelArtifact, sortBy, order string) {
	less := func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) }
	if sortBy == "r2" {
		less = func(i, j int) bool { return all[i].Training.R2 < all[j].Training.R2 }
	}
	if strings.EqualFold(order, "asc") {
		sort.SliceStable(all, less)
		return
	}
	sort.SliceStable(all, func(i, j int) bool { return less(j, i) })
}

// ReadFile decodes the artifact at path. A missing file yields
// domain.ErrArtifactNotFound.
func ReadFile(path string) (*domain.ModelArtifact, error) {
	format, err := codec.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	a, err := codec.Unmarshal(format, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// WriteFile encodes artifact using the format implied by path.
func WriteFile(path string, artifact *domain.ModelArtifact) error {
	format, err := codec.FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := codec.Marshal(format, artifact)
	if err != nil {
		return err
	}
	return WriteAtomic(path, data)
}

// WriteAtomic replaces path with data via a temp file in the same directory.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

var _ output.ArtifactRepository = (*Store)(nil)
