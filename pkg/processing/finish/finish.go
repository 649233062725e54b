package finish

import (
	"fmt"

	"github.com/racelogiq/strategy-engine/pkg/model"
)

type Option func(*Predictor)

// WithTrend adds a per-lap drift (s/lap) to every projected remaining lap,
// so a degrading stint pushes the finish time out. Default is the flat
// extrapolation at the current pace.
func WithTrend(perLap float64) Option {
	return func(p *Predictor) {
		p.trendPerLap = perLap
	}
}

type Predictor struct {
	trendPerLap float64
}

func NewPredictor(opts ...Option) *Predictor {
	ret := &Predictor{}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Project extrapolates the elapsed race time to the finish. A pure
// snapshot, recomputed per call.
func (p *Predictor) Project(
	pace model.PaceSnapshot, currentLap, totalLaps int, timeElapsed float64,
) (model.FinishProjection, error) {
	if totalLaps <= 0 {
		return model.FinishProjection{},
			fmt.Errorf("totalLaps must be positive, got %d", totalLaps)
	}
	if currentLap < 0 || currentLap > totalLaps {
		return model.FinishProjection{},
			fmt.Errorf("currentLap %d outside race of %d laps", currentLap, totalLaps)
	}
	if timeElapsed < 0 {
		return model.FinishProjection{},
			fmt.Errorf("negative elapsed time %f", timeElapsed)
	}
	if pace.CurrentPace <= 0 {
		return model.FinishProjection{},
			fmt.Errorf("non-positive current pace %f", pace.CurrentPace)
	}

	lapsRemaining := totalLaps - currentLap
	var timeRemaining float64
	for i := range lapsRemaining {
		timeRemaining += pace.CurrentPace + p.trendPerLap*float64(i)
	}
	ret := model.FinishProjection{
		PredictedFinishTime: timeElapsed + timeRemaining,
		TimeElapsed:         timeElapsed,
		TimeRemaining:       timeRemaining,
		LapsRemaining:       lapsRemaining,
		PredictedAvgLap:     pace.CurrentPace,
	}
	if lapsRemaining > 0 {
		ret.PredictedAvgLap = timeRemaining / float64(lapsRemaining)
	}
	return ret, nil
}

// FormatRaceTime renders seconds as h:mm:ss.ss for pit wall displays.
func FormatRaceTime(seconds float64) string {
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	rest := seconds - float64(hours*3600) - float64(minutes*60)
	return fmt.Sprintf("%d:%02d:%05.2f", hours, minutes, rest)
}
