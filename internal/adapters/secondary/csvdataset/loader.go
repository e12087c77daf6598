package csvdataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"co2-predictor-service/internal/core/domain"
	output "co2-predictor-service/internal/core/ports/output"
)

// Required column names, matched case-insensitively. Other columns are ignored.
const (
	columnWeight = "weight"
	columnVolume = "volume"
	columnCO2    = "co2"
)

// Parse reads a header row followed by one row per vehicle.
func Parse(r io.Reader) (domain.Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidDataset)
		}
		return nil, fmt.Errorf("%w: read header: %v", domain.ErrInvalidDataset, err)
	}

	idx := map[string]int{columnWeight: -1, columnVolume: -1, columnCO2: -1}
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, ok := idx[key]; ok && idx[key] < 0 {
			idx[key] = i
		}
	}
	for _, name := range []string{columnWeight, columnVolume, columnCO2} {
		if idx[name] < 0 {
			return nil, fmt.Errorf("%w: missing column %q", domain.ErrInvalidDataset, name)
		}
	}

	var dataset domain.Dataset
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrInvalidDataset, line, err)
		}

		var rec domain.Record
		fields := []struct {
			name string
			dst  *float64
		}{
			{columnWeight, &rec.Weight},
			{columnVolume, &rec.Volume},
			{columnCO2, &rec.CO2},
		}
		for _, f := range fields {
			raw := strings.TrimSpace(row[idx[f.name]])
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %q: %q is not a number", domain.ErrInvalidDataset, line, f.name, raw)
			}
			*f.dst = v
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		dataset = append(dataset, rec)
	}

	return dataset, nil
}

type fileLoader struct {
	path string
}

// NewFileLoader returns a DatasetLoader reading a CSV file on every Load.
func NewFileLoader(path string) output.DatasetLoader {
	return &fileLoader{path: path}
}

func (l *fileLoader) Load(ctx context.Context) (domain.Dataset, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDatasetNotFound, l.path)
		}
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	dataset, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", l.path, err)
	}

	log.WithFields(log.Fields{
		"path": l.path,
		"rows": len(dataset),
	}).Debug("dataset loaded")

	return dataset, nil
}

var _ output.DatasetLoader = (*fileLoader)(nil)
