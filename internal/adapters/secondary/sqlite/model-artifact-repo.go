package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"co2-predictor-service/internal/core/domain"
	output "co2-predictor-service/internal/core/ports/output"
)

// created_at is stored as unix nanoseconds so ordering is numeric.
const schema = `
	CREATE TABLE IF NOT EXISTS model_artifact (
		id                 TEXT PRIMARY KEY,
		created_at         INTEGER NOT NULL,
		intercept          REAL NOT NULL,
		coefficient_weight REAL NOT NULL,
		coefficient_volume REAL NOT NULL,
		training_rows      INTEGER NOT NULL,
		training_mse       REAL NOT NULL,
		training_r2        REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS model_artifact_created_at_idx ON model_artifact (created_at DESC);
`

const selectColumns = `
	id, created_at, intercept, coefficient_weight, coefficient_volume,
	training_rows, training_mse, training_r2
`

var sortColumns = map[string]string{
	"":           "created_at",
	"created_at": "created_at",
	"r2":         "training_r2",
	"mse":        "training_mse",
}

type modelArtifactRepo struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return db, nil
}

func NewModelArtifactRepository(db *sql.DB) output.ArtifactRepository {
	return &modelArtifactRepo{db: db}
}

func (r *modelArtifactRepo) Save(ctx context.Context, a *domain.ModelArtifact) error {
	if err := a.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO model_artifact
			(id, created_at, intercept, coefficient_weight, coefficient_volume,
			 training_rows, training_mse, training_r2)
		VALUES (?,?,?,?,?,?,?,?)
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID.String(), encodeTime(a.CreatedAt), a.Intercept, a.CoefficientWeight, a.CoefficientVolume,
		a.Training.Rows, a.Training.MSE, a.Training.R2,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return domain.ErrArtifactConflict
		}
		return fmt.Errorf("create model artifact: %w", err)
	}
	return nil
}

func (r *modelArtifactRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ModelArtifact, error) {
	query := `SELECT ` + selectColumns + ` FROM model_artifact WHERE id = ?`
	a, err := scanArtifact(r.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("get model artifact by id: %w", err)
	}
	return a, nil
}

func (r *modelArtifactRepo) Latest(ctx context.Context) (*domain.ModelArtifact, error) {
	query := `SELECT ` + selectColumns + ` FROM model_artifact ORDER BY created_at DESC, id LIMIT 1`
	a, err := scanArtifact(r.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("get latest model artifact: %w", err)
	}
	return a, nil
}

func (r *modelArtifactRepo) List(ctx context.Context, filter output.ArtifactListFilter) ([]*domain.ModelArtifact, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM model_artifact`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count model artifacts: %w", err)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	dir := "DESC"
	if filter.Order == "asc" {
		dir = "ASC"
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM model_artifact
		ORDER BY %s %s, id
		LIMIT ? OFFSET ?
	`, selectColumns, column, dir)

	rows, err := r.db.QueryContext(ctx, query, limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list model artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []*domain.ModelArtifact
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan model artifact row: %w", err)
		}
		artifacts = append(artifacts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate model artifact rows: %w", err)
	}

	return artifacts, total, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArtifact(row scanner) (*domain.ModelArtifact, error) {
	var (
		a       domain.ModelArtifact
		id      string
		created int64
	)
	err := row.Scan(
		&id, &created, &a.Intercept, &a.CoefficientWeight, &a.CoefficientVolume,
		&a.Training.Rows, &a.Training.MSE, &a.Training.R2,
	)
	if err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: id: %v", domain.ErrInvalidArtifact, err)
	}
	a.ID = parsed
	a.CreatedAt = decodeTime(created)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// encodeTime maps the zero time to 0. UnixNano is undefined for it.
func encodeTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func decodeTime(ns int64) time.Time {
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns).UTC()
}
