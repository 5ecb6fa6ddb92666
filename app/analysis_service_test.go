package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geomc/domain/core"
	"geomc/domain/load"
	"geomc/internal/errors"
	"geomc/internal/testkit"
)

func quietService() *AnalysisService {
	return NewAnalysisService(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAnalysisService_RunCanonicalScenario(t *testing.T) {
	ens := testkit.NewEnsemble(t, 300)
	profile := testkit.CanonicalProfile(t, ens)
	q1 := testkit.CenteredPointLoad(t, ens, 60)
	q2 := testkit.CenteredPointLoad(t, ens, 40)

	svc := quietService()
	result, err := svc.Run(context.Background(), AnalysisRequest{
		Profile:    profile,
		Loads:      []load.Load{q1, q2},
		X:          0,
		Y:          0,
		Elevations: []float64{-1, -2, -5},
	})
	require.NoError(t, err)

	assert.False(t, core.ID(result.RunID).IsEmpty())
	assert.Positive(t, result.Runtime)

	// per-layer samples: two layers, nine vectors of length N each
	require.Len(t, result.Samples, 2)
	for name, props := range result.Samples {
		require.Len(t, props, 9, "layer %s", name)
		for prop, vec := range props {
			assert.Len(t, vec, 300, "%s/%s", name, prop)
		}
	}

	// total field is the elementwise sum of the per-load fields
	require.Len(t, result.LoadFields, 2)
	require.NotNil(t, result.TotalStress)
	for i := range result.TotalStress.Elevations {
		for trial := 0; trial < result.TotalStress.Trials(); trial++ {
			want := result.LoadFields[0].At(i, trial) + result.LoadFields[1].At(i, trial)
			assert.InDelta(t, want, result.TotalStress.At(i, trial), 1e-9)
		}
	}
}

func TestAnalysisService_ProfileOnlyRun(t *testing.T) {
	ens := testkit.NewEnsemble(t, 50)
	profile := testkit.CanonicalProfile(t, ens)

	result, err := quietService().Run(context.Background(), AnalysisRequest{Profile: profile})
	require.NoError(t, err)
	assert.Nil(t, result.TotalStress)
	assert.Len(t, result.Samples, 2)
}

func TestAnalysisService_KeepsProvidedRunID(t *testing.T) {
	ens := testkit.NewEnsemble(t, 20)
	profile := testkit.CanonicalProfile(t, ens)

	runID := core.NewRunID()
	result, err := quietService().Run(context.Background(), AnalysisRequest{
		Profile: profile,
		RunID:   runID,
	})
	require.NoError(t, err)
	assert.Equal(t, runID, result.RunID)
}

func TestAnalysisService_ValidatesRequest(t *testing.T) {
	ens := testkit.NewEnsemble(t, 20)
	profile := testkit.CanonicalProfile(t, ens)
	svc := quietService()

	_, err := svc.Run(context.Background(), AnalysisRequest{})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = svc.Run(context.Background(), AnalysisRequest{
		Profile: profile,
		Loads:   []load.Load{testkit.CenteredPointLoad(t, ens, 100)},
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestAnalysisService_HonorsCancellation(t *testing.T) {
	ens := testkit.NewEnsemble(t, 20)
	profile := testkit.CanonicalProfile(t, ens)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := quietService().Run(ctx, AnalysisRequest{
		Profile:    profile,
		Loads:      []load.Load{testkit.CenteredPointLoad(t, ens, 100)},
		Elevations: []float64{-1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
