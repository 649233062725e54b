//nolint:funlen // ok for tests
package fuel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_Plan_NoPitNeeded(t *testing.T) {
	m := NewModel()

	got, err := m.Plan(10.0, []float64{0.5}, 10, 20)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got.ConsumptionPerLap, 1e-9)
	assert.Equal(t, 20, got.LapsOnCurrentFuel)
	assert.False(t, got.NeedsPit)
	assert.Nil(t, got.RecommendedPitLap)
	assert.Nil(t, got.FuelToAdd)
}

func TestModel_Plan_PitRequired(t *testing.T) {
	m := NewModel()

	got, err := m.Plan(2.0, []float64{0.5, 0.5, 0.5}, 10, 30)
	require.NoError(t, err)
	assert.True(t, got.NeedsPit)
	assert.Equal(t, 4, got.LapsOnCurrentFuel)
	require.NotNil(t, got.RecommendedPitLap)
	// one lap of buffer before running dry
	assert.Equal(t, 13, *got.RecommendedPitLap)
	require.NotNil(t, got.FuelToAdd)
	assert.InDelta(t, 8.5, *got.FuelToAdd, 1e-9)
}

func TestModel_Plan_ColdStartUsesDefault(t *testing.T) {
	m := NewModel()

	got, err := m.Plan(1.0, nil, 0, 40)
	require.NoError(t, err)
	assert.InDelta(t, DefaultConsumption, got.ConsumptionPerLap, 1e-9)
	assert.Equal(t, 12, got.LapsOnCurrentFuel)
	assert.True(t, got.NeedsPit)
}

func TestModel_Plan_SampleWindow(t *testing.T) {
	m := NewModel()

	// only the most recent five samples count
	samples := []float64{9, 9, 0.5, 0.5, 0.5, 0.5, 0.5}
	got, err := m.Plan(10.0, samples, 0, 10)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got.ConsumptionPerLap, 1e-9)
}

func TestModel_Plan_InvalidSamplesFallBack(t *testing.T) {
	m := NewModel()

	got, err := m.Plan(10.0, []float64{0, 0, 0}, 0, 10)
	require.NoError(t, err)
	assert.InDelta(t, DefaultConsumption, got.ConsumptionPerLap, 1e-9)
}

func TestModel_Plan_FuelToAddCappedByTank(t *testing.T) {
	m := NewModel(WithTankCapacity(5.0))

	got, err := m.Plan(1.0, []float64{0.5}, 0, 40)
	require.NoError(t, err)
	require.NotNil(t, got.FuelToAdd)
	assert.InDelta(t, 4.0, *got.FuelToAdd, 1e-9)
}

func TestModel_Plan_RoundsFuelToAdd(t *testing.T) {
	m := NewModel()

	got, err := m.Plan(0.2, []float64{0.123}, 0, 10)
	require.NoError(t, err)
	require.NotNil(t, got.RecommendedPitLap)
	assert.Equal(t, 1, *got.RecommendedPitLap)
	require.NotNil(t, got.FuelToAdd)
	// 9 laps at 0.123 l/lap, reported in hundredths
	assert.InDelta(t, 1.11, *got.FuelToAdd, 1e-9)
}

func TestModel_Plan_BadArgs(t *testing.T) {
	m := NewModel()

	_, err := m.Plan(10, nil, 0, 0)
	assert.Error(t, err)
	_, err = m.Plan(10, nil, -1, 10)
	assert.Error(t, err)
	_, err = m.Plan(10, nil, 11, 10)
	assert.Error(t, err)
	_, err = m.Plan(-1, nil, 0, 10)
	assert.Error(t, err)
}
