package domain

import "errors"

// ============================================================================
// Training Errors
// ============================================================================

var (
	ErrInsufficientData = errors.New("training dataset needs at least 3 rows")
	ErrSingularMatrix   = errors.New("design matrix is rank deficient: weight and volume are collinear")
	ErrInvalidDataset   = errors.New("invalid dataset")
	ErrDatasetNotFound  = errors.New("dataset not found")
)

// ============================================================================
// Artifact Errors
// ============================================================================

var (
	ErrArtifactNotFound  = errors.New("model artifact not found")
	ErrArtifactConflict  = errors.New("model artifact with this id already exists")
	ErrInvalidArtifact   = errors.New("invalid model artifact")
	ErrInvalidArtifactID = errors.New("model artifact ID is required")
)

// ============================================================================
// Collaborator Errors
// ============================================================================

var (
	ErrFetchFailed       = errors.New("remote fetch failed")
	ErrUnsupportedFormat = errors.New("unsupported artifact format")
)
