package lapseries

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racelogiq/strategy-engine/pkg/model"
	"github.com/racelogiq/strategy-engine/testsupport/basedata"
)

func TestMemoryRepository_RoundTrip(t *testing.T) {
	repo := NewMemoryRepository()
	series := basedata.SampleSeries()
	require.NoError(t, repo.AddSeries(series))

	got, err := repo.Series(context.Background(),
		basedata.SampleSessionID, basedata.SampleVehicleID)
	require.NoError(t, err)
	if diff := cmp.Diff(series, got); diff != "" {
		t.Errorf("series mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryRepository_RejectsInvalidSeries(t *testing.T) {
	repo := NewMemoryRepository()

	assert.Error(t, repo.AddSeries(&model.VehicleLapSeries{
		SessionID: "s1",
	}))
	assert.Error(t, repo.AddSeries(&model.VehicleLapSeries{
		VehicleID: "1",
	}))
}

func TestMemoryRepository_Vehicles(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.AddSeries(basedata.FlatSeries("20", 3, 91)))
	require.NoError(t, repo.AddSeries(basedata.FlatSeries("3", 3, 90)))
	require.NoError(t, repo.AddSeries(basedata.FlatSeries("14", 3, 92)))

	got, err := repo.Vehicles(context.Background(), basedata.SampleSessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"14", "20", "3"}, got)
}

func TestMemoryRepository_Errors(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.AddSeries(basedata.SampleSeries()))
	ctx := context.Background()

	_, err := repo.Series(ctx, "unknown", basedata.SampleVehicleID)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = repo.Series(ctx, basedata.SampleSessionID, "99")
	assert.ErrorIs(t, err, ErrUnknownVehicle)

	_, err = repo.Vehicles(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNoSession)
}
