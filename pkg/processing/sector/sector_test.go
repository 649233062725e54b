//nolint:funlen // ok for tests
package sector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racelogiq/strategy-engine/pkg/model"
	"github.com/racelogiq/strategy-engine/testsupport/basedata"
)

func TestCoach_Opportunities(t *testing.T) {
	c := NewCoach()
	best := model.SectorTimes{30.0, 28.0, 25.0}
	current := model.SectorTimes{30.5, 28.253, 25.05}

	got := c.Opportunities(current, best)

	// the S3 loss of 0.05 sits below the significance threshold
	require.Len(t, got.Opportunities, 2)
	assert.Equal(t, "S1", got.Opportunities[0].Sector)
	assert.InDelta(t, 0.5, got.Opportunities[0].TimeLoss, 1e-9)
	assert.Equal(t, "S2", got.Opportunities[1].Sector)
	assert.InDelta(t, 0.253, got.Opportunities[1].TimeLoss, 1e-9)
	assert.InDelta(t, 0.753, got.TotalOpportunity, 1e-9)
	assert.NotEmpty(t, got.Opportunities[0].Suggestion)
}

func TestCoach_Opportunities_SortedByLoss(t *testing.T) {
	c := NewCoach()
	best := model.SectorTimes{30.0, 28.0, 25.0}
	current := model.SectorTimes{30.2, 28.9, 25.5}

	got := c.Opportunities(current, best)

	require.Len(t, got.Opportunities, 3)
	assert.Equal(t, "S2", got.Opportunities[0].Sector)
	assert.Equal(t, "S3", got.Opportunities[1].Sector)
	assert.Equal(t, "S1", got.Opportunities[2].Sector)
}

func TestCoach_Opportunities_PerfectLap(t *testing.T) {
	c := NewCoach()
	best := model.SectorTimes{30.0, 28.0, 25.0}

	got := c.Opportunities(best, best)

	assert.Empty(t, got.Opportunities)
	assert.Equal(t, 0.0, got.TotalOpportunity)
}

func TestCoach_OpportunitiesForLap(t *testing.T) {
	c := NewCoach()
	series := basedata.SampleSeries()

	got, err := c.OpportunitiesForLap(series, 15)
	require.NoError(t, err)
	assert.NotEmpty(t, got.Opportunities)

	_, err = c.OpportunitiesForLap(series, 99)
	assert.Error(t, err)
}

func TestPotentialCalculator_Potential(t *testing.T) {
	p := NewPotentialCalculator()
	series := &model.VehicleLapSeries{
		VehicleID: "1",
		Laps: []model.LapRecord{
			{LapNumber: 1, LapTime: 83.5, SectorTimes: model.SectorTimes{30.0, 28.0, 25.5}},
			{LapNumber: 2, LapTime: 84.0, SectorTimes: model.SectorTimes{30.5, 28.5, 25.0}},
		},
	}

	got, ok := p.Potential(series)
	require.True(t, ok)
	assert.InDelta(t, 83.0, got.TheoreticalBest, 1e-9)
	assert.InDelta(t, 83.5, got.ActualBest, 1e-9)
	assert.InDelta(t, 0.5, got.ImprovementPotential, 1e-9)
	assert.False(t, got.NearPerfect)
	assert.Equal(t, model.SectorTimes{30.0, 28.0, 25.0}, got.BestSectors)
}

func TestPotentialCalculator_Potential_NearPerfect(t *testing.T) {
	p := NewPotentialCalculator()
	series := &model.VehicleLapSeries{
		VehicleID: "1",
		Laps: []model.LapRecord{
			{LapNumber: 1, LapTime: 83.038, SectorTimes: model.SectorTimes{30.0, 28.0, 25.038}},
			{LapNumber: 2, LapTime: 83.7, SectorTimes: model.SectorTimes{30.5, 28.2, 25.0}},
		},
	}

	got, ok := p.Potential(series)
	require.True(t, ok)
	assert.InDelta(t, 0.038, got.ImprovementPotential, 1e-9)
	assert.True(t, got.NearPerfect)
}

func TestPotentialCalculator_Potential_ClampsNegative(t *testing.T) {
	p := NewPotentialCalculator()
	// lap time below the sector sum points to inconsistent timing data
	series := &model.VehicleLapSeries{
		VehicleID: "1",
		Laps: []model.LapRecord{
			{LapNumber: 1, LapTime: 82.0, SectorTimes: model.SectorTimes{30.0, 28.0, 25.0}},
		},
	}

	got, ok := p.Potential(series)
	require.True(t, ok)
	assert.Equal(t, 82.0, got.TheoreticalBest)
	assert.Equal(t, 0.0, got.ImprovementPotential)
	assert.True(t, got.NearPerfect)
}

func TestPotentialCalculator_Potential_Empty(t *testing.T) {
	p := NewPotentialCalculator()
	_, ok := p.Potential(&model.VehicleLapSeries{VehicleID: "1"})
	assert.False(t, ok)
}

func TestCoach_Degradation(t *testing.T) {
	c := NewCoach()
	series := basedata.SeriesFromLapTimes("1", 90, 90, 90, 92, 92, 92)

	got := c.Degradation(series)

	require.Len(t, got, model.NumSectors)
	s1 := got[0]
	assert.Equal(t, "S1", s1.Sector)
	assert.InDelta(t, 36.0, s1.EarlyAvg, 1e-9)
	assert.InDelta(t, 36.8, s1.LateAvg, 1e-9)
	assert.InDelta(t, 0.8, s1.Delta, 1e-9)
	assert.InDelta(t, 2.2222, s1.PercentChange, 1e-3)
}

func TestCoach_Degradation_TooFewLaps(t *testing.T) {
	c := NewCoach()
	assert.Nil(t, c.Degradation(basedata.SeriesFromLapTimes("1", 90, 90, 90, 90)))
}

func TestCoach_Performance(t *testing.T) {
	c := NewCoach()
	series := &model.VehicleLapSeries{
		VehicleID: "1",
		Laps: []model.LapRecord{
			{LapNumber: 1, LapTime: 83.0, SectorTimes: model.SectorTimes{30.0, 28.0, 25.0}},
			{LapNumber: 2, LapTime: 84.0, SectorTimes: model.SectorTimes{30.0, 29.0, 25.0}},
			{LapNumber: 3, LapTime: 85.0, SectorTimes: model.SectorTimes{30.0, 30.0, 25.0}},
		},
	}

	got, ok := c.Performance(series)
	require.True(t, ok)
	require.Len(t, got.Sectors, model.NumSectors)

	s2 := got.Sectors[1]
	assert.Equal(t, 28.0, s2.Best)
	assert.Equal(t, 30.0, s2.Worst)
	assert.InDelta(t, 29.0, s2.Average, 1e-9)
	assert.Equal(t, 30.0, s2.Current)
	assert.InDelta(t, 1.0, s2.Std, 1e-9)

	assert.Equal(t, "S1", got.Strongest)
	assert.Equal(t, "S2", got.Weakest)
}

func TestCoach_Performance_Empty(t *testing.T) {
	c := NewCoach()
	_, ok := c.Performance(&model.VehicleLapSeries{VehicleID: "1"})
	assert.False(t, ok)
}
