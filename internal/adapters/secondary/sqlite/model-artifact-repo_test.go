package sqlite

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"co2-predictor-service/internal/core/domain"
	output "co2-predictor-service/internal/core/ports/output"
)

func newRepo(t *testing.T) output.ArtifactRepository {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewModelArtifactRepository(db)
}

func artifactAt(ts time.Time, r2 float64) *domain.ModelArtifact {
	return &domain.ModelArtifact{
		ID:                uuid.New(),
		CreatedAt:         ts,
		Intercept:         91.74109402276991,
		CoefficientWeight: 0.029544048176041778,
		CoefficientVolume: -0.016080892081842924,
		Training:          domain.TrainingSummary{Rows: 5, MSE: 12.183505139079644, R2: r2},
	}
}

func TestModelArtifactRepo_SaveAndGet(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	a := artifactAt(time.Date(2025, 2, 3, 4, 5, 6, 7, time.UTC), 0.51)

	require.NoError(t, repo.Save(ctx, a))
	assert.ErrorIs(t, repo.Save(ctx, a), domain.ErrArtifactConflict)

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.True(t, a.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, math.Float64bits(a.Intercept), math.Float64bits(got.Intercept))
	assert.Equal(t, math.Float64bits(a.CoefficientWeight), math.Float64bits(got.CoefficientWeight))
	assert.Equal(t, math.Float64bits(a.CoefficientVolume), math.Float64bits(got.CoefficientVolume))
	assert.Equal(t, a.Training, got.Training)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestModelArtifactRepo_ZeroCreatedAt(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	undated := artifactAt(time.Time{}, 0.4)
	dated := artifactAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 0.5)
	require.NoError(t, repo.Save(ctx, undated))
	require.NoError(t, repo.Save(ctx, dated))

	got, err := repo.GetByID(ctx, undated.ID)
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.IsZero(), "got %s", got.CreatedAt)

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, dated.ID, latest.ID)
}

func TestModelArtifactRepo_Latest(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.Latest(ctx)
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)

	base := time.Now().UTC()
	older := artifactAt(base, 0.2)
	newer := artifactAt(base.Add(time.Second), 0.1)
	require.NoError(t, repo.Save(ctx, newer))
	require.NoError(t, repo.Save(ctx, older))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)
}

func TestModelArtifactRepo_List(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		a := artifactAt(base.Add(time.Duration(i)*time.Hour), float64(5-i)/10)
		require.NoError(t, repo.Save(ctx, a))
		ids = append(ids, a.ID)
	}

	items, total, err := repo.List(ctx, output.ArtifactListFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, items, 2)
	assert.Equal(t, ids[3], items[0].ID)
	assert.Equal(t, ids[2], items[1].ID)

	items, _, err = repo.List(ctx, output.ArtifactListFilter{SortBy: "r2", Order: "asc", Limit: 1})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, ids[4], items[0].ID)

	items, _, err = repo.List(ctx, output.ArtifactListFilter{SortBy: "id; DROP TABLE model_artifact", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, items, 5)
}

func TestModelArtifactRepo_SaveInvalid(t *testing.T) {
	repo := newRepo(t)
	a := artifactAt(time.Now(), 0)
	a.CoefficientVolume = math.NaN()

	assert.ErrorIs(t, repo.Save(context.Background(), a), domain.ErrInvalidArtifact)
}
