// Package codec serializes model artifacts. Floats are written in shortest
// round-trip form, so decoding an encoded artifact restores every scalar
// bit for bit.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"co2-predictor-service/internal/core/domain"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// artifactRecord is the on-disk shape of an artifact.
type artifactRecord struct {
	ID                string         `json:"id" yaml:"id"`
	CreatedAt         string         `json:"created_at" yaml:"created_at"`
	Intercept         *float64       `json:"intercept" yaml:"intercept"`
	CoefficientWeight *float64       `json:"coefficient_weight" yaml:"coefficient_weight"`
	CoefficientVolume *float64       `json:"coefficient_volume" yaml:"coefficient_volume"`
	Training          trainingRecord `json:"training" yaml:"training"`
}

type trainingRecord struct {
	Rows int     `json:"rows" yaml:"rows"`
	MSE  float64 `json:"mse" yaml:"mse"`
	R2   float64 `json:"r2" yaml:"r2"`
}

func toRecord(a *domain.ModelArtifact) artifactRecord {
	intercept, cw, cv := a.Intercept, a.CoefficientWeight, a.CoefficientVolume
	rec := artifactRecord{
		Intercept:         &intercept,
		CoefficientWeight: &cw,
		CoefficientVolume: &cv,
		Training: trainingRecord{
			Rows: a.Training.Rows,
			MSE:  a.Training.MSE,
			R2:   a.Training.R2,
		},
	}
	if a.ID != uuid.Nil {
		rec.ID = a.ID.String()
	}
	if !a.CreatedAt.IsZero() {
		rec.CreatedAt = a.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return rec
}

// fromRecord rejects documents that lack any of the three coefficients, so an
// empty file or an unrelated JSON body never decodes as an all-zero model.
func fromRecord(rec artifactRecord) (*domain.ModelArtifact, error) {
	for _, field := range []struct {
		name  string
		value *float64
	}{
		{"intercept", rec.Intercept},
		{"coefficient_weight", rec.CoefficientWeight},
		{"coefficient_volume", rec.CoefficientVolume},
	} {
		if field.value == nil {
			return nil, fmt.Errorf("%w: missing %s", domain.ErrInvalidArtifact, field.name)
		}
	}
	a := &domain.ModelArtifact{
		Intercept:         *rec.Intercept,
		CoefficientWeight: *rec.CoefficientWeight,
		CoefficientVolume: *rec.CoefficientVolume,
		Training: domain.TrainingSummary{
			Rows: rec.Training.Rows,
			MSE:  rec.Training.MSE,
			R2:   rec.Training.R2,
		},
	}
	if rec.ID != "" {
		id, err := uuid.Parse(rec.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: id: %v", domain.ErrInvalidArtifact, err)
		}
		a.ID = id
	}
	if rec.CreatedAt != "" {
		ts, err := time.Parse(time.RFC3339Nano, rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: created_at: %v", domain.ErrInvalidArtifact, err)
		}
		a.CreatedAt = ts
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Marshal encodes a valid artifact.
func Marshal(format Format, a *domain.ModelArtifact) ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	rec := toRecord(a)
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal artifact json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("marshal artifact yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("marshal artifact yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}

// Unmarshal decodes and validates an artifact. Corrupt or non-finite content
// yields ErrInvalidArtifact.
func Unmarshal(format Format, data []byte) (*domain.ModelArtifact, error) {
	var rec artifactRecord
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArtifact, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArtifact, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	return fromRecord(rec)
}
