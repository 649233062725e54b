//nolint:funlen // ok for tests
package lapseries

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSessionJSON = `{
  "sessionId": "monza-2025-r1",
  "trackName": "Monza",
  "totalLaps": 30,
  "laps": [
    {"vehicleId": "14", "lapNumber": 2, "lapTime": 92.5,
     "sectorTimes": [37.0, 32.4, 23.1], "deltaToBest": 0.5},
    {"vehicleId": "14", "lapNumber": 1, "lapTime": 92.0,
     "sectorTimes": [36.8, 32.2, 23.0], "deltaToBest": 0},
    {"vehicleId": "7", "lapNumber": 1, "lapTime": 93.0,
     "sectorTimes": [37.2, 32.5, 23.3], "deltaToBest": 0}
  ]
}`

func writeSessionFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t,
		os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadSessionFile(t *testing.T) {
	dir := t.TempDir()
	writeSessionFile(t, dir, "monza-2025-r1.json", sampleSessionJSON)

	got, err := LoadSessionFile(filepath.Join(dir, "monza-2025-r1.json"))
	require.NoError(t, err)
	assert.Equal(t, "monza-2025-r1", got.SessionID)
	assert.Equal(t, "Monza", got.TrackName)
	assert.Equal(t, 30, got.TotalLaps)
	require.Len(t, got.Series, 2)

	// records are regrouped per vehicle and sorted by lap number
	series := got.Series["14"]
	require.NotNil(t, series)
	require.Len(t, series.Laps, 2)
	assert.Equal(t, 1, series.Laps[0].LapNumber)
	assert.Equal(t, 2, series.Laps[1].LapNumber)
	assert.InDelta(t, 36.8, series.Laps[0].SectorTimes[0], 1e-9)
}

func TestLoadSessionFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	writeSessionFile(t, dir, "broken.json", `{"trackName": "Monza"}`)
	_, err := LoadSessionFile(filepath.Join(dir, "broken.json"))
	assert.Error(t, err)

	writeSessionFile(t, dir, "badlap.json", `{
	  "sessionId": "s1", "totalLaps": 10,
	  "laps": [{"vehicleId": "1", "lapNumber": 1, "lapTime": -5,
	            "sectorTimes": [1, 1, 1], "deltaToBest": 0}]
	}`)
	_, err = LoadSessionFile(filepath.Join(dir, "badlap.json"))
	assert.Error(t, err)

	writeSessionFile(t, dir, "badsectors.json", `{
	  "sessionId": "s1", "totalLaps": 10,
	  "laps": [{"vehicleId": "1", "lapNumber": 1, "lapTime": 90,
	            "sectorTimes": [40, 50], "deltaToBest": 0}]
	}`)
	_, err = LoadSessionFile(filepath.Join(dir, "badsectors.json"))
	assert.Error(t, err)

	writeSessionFile(t, dir, "garbage.json", `not json`)
	_, err = LoadSessionFile(filepath.Join(dir, "garbage.json"))
	assert.Error(t, err)
}

func TestFileRepository(t *testing.T) {
	dir := t.TempDir()
	writeSessionFile(t, dir, "monza-2025-r1.json", sampleSessionJSON)
	repo := NewFileRepository(dir)
	ctx := context.Background()

	series, err := repo.Series(ctx, "monza-2025-r1", "14")
	require.NoError(t, err)
	assert.Equal(t, 2, series.Len())

	vehicles, err := repo.Vehicles(ctx, "monza-2025-r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"14", "7"}, vehicles)

	session, err := repo.Session(ctx, "monza-2025-r1")
	require.NoError(t, err)
	assert.Equal(t, 30, session.TotalLaps)

	_, err = repo.Series(ctx, "monza-2025-r1", "99")
	assert.ErrorIs(t, err, ErrUnknownVehicle)

	_, err = repo.Series(ctx, "unknown", "14")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFileRepository_ServesFromCache(t *testing.T) {
	dir := t.TempDir()
	writeSessionFile(t, dir, "monza-2025-r1.json", sampleSessionJSON)
	repo := NewFileRepository(dir)
	ctx := context.Background()

	_, err := repo.Session(ctx, "monza-2025-r1")
	require.NoError(t, err)

	// the cached session must survive the file going away
	require.NoError(t, os.Remove(filepath.Join(dir, "monza-2025-r1.json")))
	session, err := repo.Session(ctx, "monza-2025-r1")
	require.NoError(t, err)
	assert.Equal(t, "Monza", session.TrackName)
}
