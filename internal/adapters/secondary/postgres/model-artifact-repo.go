package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"co2-predictor-service/internal/core/domain"
	output "co2-predictor-service/internal/core/ports/output"
)

// Schema creates the artifact table. Coefficients are double precision, which
// stores float64 without loss.
const Schema = `
	CREATE TABLE IF NOT EXISTS model_artifact (
		id                 UUID PRIMARY KEY,
		created_at         TIMESTAMPTZ NOT NULL,
		intercept          DOUBLE PRECISION NOT NULL,
		coefficient_weight DOUBLE PRECISION NOT NULL,
		coefficient_volume DOUBLE PRECISION NOT NULL,
		training_rows      INTEGER NOT NULL,
		training_mse       DOUBLE PRECISION NOT NULL,
		training_r2        DOUBLE PRECISION NOT NULL
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
	pool *pgxpool.Pool
}

func NewModelArtifactRepository(pool *pgxpool.Pool) output.ArtifactRepository {
	return &modelArtifactRepo{pool: pool}
}

// EnsureSchema applies Schema.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply model_artifact schema: %w", err)
	}
	return nil
}

func (r *modelArtifactRepo) Save(ctx context.Context, a *domain.ModelArtifact) error {
	if err := a.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO model_artifact
			(id, created_at, intercept, coefficient_weight, coefficient_volume,
			 training_rows, training_mse, training_r2)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`
	_, err := r.pool.Exec(ctx, query,
		a.ID, a.CreatedAt, a.Intercept, a.CoefficientWeight, a.CoefficientVolume,
		a.Training.Rows, a.Training.MSE, a.Training.R2,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrArtifactConflict
		}
		return fmt.Errorf("create model artifact: %w", err)
	}
	return nil
}

func (r *modelArtifactRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ModelArtifact, error) {
	query := `SELECT ` + selectColumns + ` FROM model_artifact WHERE id = $1`
	a, err := scanArtifact(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("get model artifact by id: %w", err)
	}
	return a, nil
}

func (r *modelArtifactRepo) Latest(ctx context.Context) (*domain.ModelArtifact, error) {
	query := `SELECT ` + selectColumns + ` FROM model_artifact ORDER BY created_at DESC, id LIMIT 1`
	a, err := scanArtifact(r.pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("get latest model artifact: %w", err)
	}
	return a, nil
}

func (r *modelArtifactRepo) List(ctx context.Context, filter output.ArtifactListFilter) ([]*domain.ModelArtifact, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM model_artifact`).Scan(&total); err != nil {
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

	query := fmt.Sprintf(`
		SELECT %s
		FROM model_artifact
		ORDER BY %s %s, id
		LIMIT $1 OFFSET $2
	`, selectColumns, column, dir)

	rows, err := r.pool.Query(ctx, query, filter.Limit, filter.Offset)
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

func scanArtifact(row pgx.Row) (*domain.ModelArtifact, error) {
	var a domain.ModelArtifact
	err := row.Scan(
		&a.ID, &a.CreatedAt, &a.Intercept, &a.CoefficientWeight, &a.CoefficientVolume,
		&a.Training.Rows, &a.Training.MSE, &a.Training.R2,
	)
	if err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}
