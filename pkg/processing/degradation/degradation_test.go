//nolint:funlen // ok for tests
package degradation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/racelogiq/strategy-engine/testsupport/basedata"
)

func TestEstimator_Fit_LinearWear(t *testing.T) {
	e := NewEstimator()
	got := e.Fit(basedata.SampleSeries())

	assert.InDelta(t, 0.05, got.Slope, 1e-9)
	assert.InDelta(t, -0.05, got.Intercept, 1e-9)
	assert.Equal(t, DefaultWindowSize, got.WindowSize)
	assert.Equal(t, DefaultWindowSize, got.ValidLaps)
	assert.Equal(t, 100, got.Confidence)
}

func TestEstimator_Fit_NotEnoughLaps(t *testing.T) {
	e := NewEstimator()
	got := e.Fit(basedata.LinearSeries("1", 1, 90.0, 0.1))

	assert.Equal(t, 0.0, got.Slope)
	assert.Equal(t, 0.0, got.Intercept)
	assert.Equal(t, 1, got.ValidLaps)
	assert.Equal(t, 0, got.Confidence)
}

func TestEstimator_Fit_ConfidenceGrowsWithLaps(t *testing.T) {
	tests := []struct {
		name string
		laps int
		want int
	}{
		{name: "two laps", laps: 2, want: 40},
		{name: "three laps", laps: 3, want: 60},
		{name: "window full", laps: 5, want: 100},
		{name: "more than window", laps: 10, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEstimator()
			got := e.Fit(basedata.LinearSeries("1", tt.laps, 90.0, 0.1))
			assert.Equal(t, tt.want, got.Confidence)
		})
	}
}

func TestEstimator_Fit_ResidualConfidence(t *testing.T) {
	e := NewEstimator(WithResidualConfidence())

	// a perfect linear trend explains all variance
	got := e.Fit(basedata.SampleSeries())
	assert.Equal(t, 100, got.Confidence)

	// constant deltas have no variance to explain, falls back to the
	// sample-size heuristic
	got = e.Fit(basedata.FlatSeries("1", 3, 90.0))
	assert.Equal(t, 60, got.Confidence)
}

func TestEstimator_Fit_WindowOption(t *testing.T) {
	e := NewEstimator(WithWindowSize(8))
	got := e.Fit(basedata.SampleSeries())

	assert.Equal(t, 8, got.WindowSize)
	assert.Equal(t, 8, got.ValidLaps)
	assert.InDelta(t, 0.05, got.Slope, 1e-9)
}

func TestEstimator_Profile(t *testing.T) {
	e := NewEstimator()
	series := basedata.SampleSeries()
	got := e.Profile(series)

	assert.Len(t, got, series.Len())
	first := got[0]
	assert.Equal(t, 1, first.LapNumber)
	assert.InDelta(t, 92.0, first.RollingAvg, 1e-9)
	assert.Equal(t, 0.0, first.DeltaToBest)
	assert.Equal(t, 0.0, first.LapToLapDelta)

	prevLife := 101.0
	for _, m := range got {
		assert.GreaterOrEqual(t, m.TireLifePct, 0.0)
		assert.LessOrEqual(t, m.TireLifePct, 100.0)
		assert.LessOrEqual(t, m.TireLifePct, prevLife)
		prevLife = m.TireLifePct
	}
	// lap 15 ends the assumed stint
	assert.Equal(t, 0.0, got[len(got)-1].TireLifePct)

	second := got[1]
	assert.InDelta(t, 0.05, second.LapToLapDelta, 1e-9)
	assert.InDelta(t, 92.025, second.RollingAvg, 1e-9)
}

func TestEstimator_Profile_Empty(t *testing.T) {
	e := NewEstimator()
	assert.Nil(t, e.Profile(basedata.LinearSeries("1", 0, 90.0, 0)))
}
