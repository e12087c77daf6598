package services

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"co2-predictor-service/internal/core/domain"
	"co2-predictor-service/internal/testutil"
)

func newPredictionService(t *testing.T, repo *testutil.MockArtifactRepo) *PredictionService {
	t.Helper()
	svc, err := NewPredictionService(repo, 4, 2)
	require.NoError(t, err)
	return svc
}

func linearArtifact() *domain.ModelArtifact {
	return &domain.ModelArtifact{
		ID:                uuid.New(),
		Intercept:         10,
		CoefficientWeight: 0.05,
		CoefficientVolume: 0.02,
	}
}

func TestPredictionService_Predict_NoActiveArtifact(t *testing.T) {
	svc := newPredictionService(t, new(testutil.MockArtifactRepo))

	_, err := svc.Predict(context.Background(), domain.PredictionRequest{Weight: 1000, Volume: 1500})
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)

	_, err = svc.PredictBatch(context.Background(), []domain.PredictionRequest{{Weight: 1}})
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestPredictionService_Predict(t *testing.T) {
	svc := newPredictionService(t, new(testutil.MockArtifactRepo))
	a := linearArtifact()
	require.NoError(t, svc.Activate(a))

	p, err := svc.Predict(context.Background(), domain.PredictionRequest{Weight: 1000, Volume: 1500})
	require.NoError(t, err)
	assert.InDelta(t, 90.0, p.PredictedCO2, 1e-12)
	assert.Equal(t, domain.EmissionLevelLow, p.Level)
	assert.Equal(t, a.ID, p.ArtifactID)
}

func TestPredictionService_Activate_RejectsInvalid(t *testing.T) {
	svc := newPredictionService(t, new(testutil.MockArtifactRepo))
	good := linearArtifact()
	require.NoError(t, svc.Activate(good))

	err := svc.Activate(&domain.ModelArtifact{Intercept: math.NaN()})
	assert.ErrorIs(t, err, domain.ErrInvalidArtifact)
	assert.Same(t, good, svc.Active())
}

func TestPredictionService_PredictWith_CachesLookups(t *testing.T) {
	repo := new(testutil.MockArtifactRepo)
	svc := newPredictionService(t, repo)
	a := linearArtifact()
	repo.On("GetByID", mock.Anything, a.ID).Return(a, nil).Once()

	for i := 0; i < 3; i++ {
		p, err := svc.PredictWith(context.Background(), a.ID, domain.PredictionRequest{Weight: 3000, Volume: 5000})
		require.NoError(t, err)
		assert.InDelta(t, 260.0, p.PredictedCO2, 1e-12)
		assert.Equal(t, domain.EmissionLevelHigh, p.Level)
	}
	repo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestPredictionService_PredictWith_NotFound(t *testing.T) {
	repo := new(testutil.MockArtifactRepo)
	svc := newPredictionService(t, repo)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrArtifactNotFound)

	_, err := svc.PredictWith(context.Background(), id, domain.PredictionRequest{})
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)

	_, err = svc.PredictWith(context.Background(), uuid.Nil, domain.PredictionRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidArtifactID)
}

func TestPredictionService_ActivateByID(t *testing.T) {
	repo := new(testutil.MockArtifactRepo)
	svc := newPredictionService(t, repo)
	a := linearArtifact()
	repo.On("GetByID", mock.Anything, a.ID).Return(a, nil)

	got, err := svc.ActivateByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.Same(t, a, svc.Active())
}

func TestPredictionService_PredictBatch_PreservesOrder(t *testing.T) {
	svc := newPredictionService(t, new(testutil.MockArtifactRepo))
	require.NoError(t, svc.Activate(linearArtifact()))

	reqs := make([]domain.PredictionRequest, 50)
	for i := range reqs {
		reqs[i] = domain.PredictionRequest{Weight: float64(500 + 50*i), Volume: 1000}
	}

	out, err := svc.PredictBatch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, out, len(reqs))
	for i, p := range out {
		assert.Equal(t, reqs[i].Weight, p.Weight)
		assert.InDelta(t, 10+0.05*reqs[i].Weight+20, p.PredictedCO2, 1e-9)
	}
}

func TestPredictionService_PredictBatch_Cancelled(t *testing.T) {
	svc := newPredictionService(t, new(testutil.MockArtifactRepo))
	require.NoError(t, svc.Activate(linearArtifact()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.PredictBatch(ctx, []domain.PredictionRequest{{Weight: 1, Volume: 1}})
	assert.ErrorIs(t, err, context.Canceled)
}
