package pace

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/racelogiq/strategy-engine/log"
	"github.com/racelogiq/strategy-engine/pkg/model"
)

const (
	// DefaultWindow is the size of the rolling window for pace metrics.
	DefaultWindow = 5
	// DefaultTrendEpsilon is the minimum window-to-window change (s) before
	// the pace counts as improving or degrading.
	DefaultTrendEpsilon = 0.05
	// DefaultConsistencyThreshold is the lap time standard deviation (s)
	// below which a stint counts as consistent.
	DefaultConsistencyThreshold = 0.5
)

type Option func(*Analyzer)

func WithWindow(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.window = n
		}
	}
}

func WithTrendEpsilon(epsilon float64) Option {
	return func(a *Analyzer) {
		if epsilon > 0 {
			a.trendEpsilon = epsilon
		}
	}
}

func WithConsistencyThreshold(threshold float64) Option {
	return func(a *Analyzer) {
		if threshold > 0 {
			a.consistencyThreshold = threshold
		}
	}
}

func WithLogger(arg *log.Logger) Option {
	return func(a *Analyzer) {
		a.l = arg
	}
}

type Analyzer struct {
	window               int
	trendEpsilon         float64
	consistencyThreshold float64
	l                    *log.Logger
}

func NewAnalyzer(opts ...Option) *Analyzer {
	ret := &Analyzer{
		window:               DefaultWindow,
		trendEpsilon:         DefaultTrendEpsilon,
		consistencyThreshold: DefaultConsistencyThreshold,
		l:                    log.Default().Named("pace"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Analyze computes the rolling pace metrics up to currentLap. The trend
// compares the recent window against the window before it; without a
// baseline window the trend is STABLE.
func (a *Analyzer) Analyze(
	series *model.VehicleLapSeries, currentLap int,
) (model.PaceSnapshot, error) {
	laps := series.UpTo(currentLap)
	if len(laps) == 0 {
		return model.PaceSnapshot{},
			fmt.Errorf("vehicle %s has no laps up to lap %d", series.VehicleID, currentLap)
	}
	recent := laps
	if len(recent) > a.window {
		recent = recent[len(recent)-a.window:]
	}
	recentTimes := lapTimes(recent)
	currentPace := stat.Mean(recentTimes, nil)

	best := laps[0].LapTime
	for _, l := range laps[1:] {
		if l.LapTime < best {
			best = l.LapTime
		}
	}

	ret := model.PaceSnapshot{
		VehicleID:   series.VehicleID,
		CurrentPace: currentPace,
		BestLap:     best,
		PaceDelta:   currentPace - best,
		Trend:       a.trend(laps),
	}
	if len(recentTimes) > 1 {
		ret.ConsistencyStd = stat.StdDev(recentTimes, nil)
	}
	ret.IsConsistent = ret.ConsistencyStd < a.consistencyThreshold
	return ret, nil
}

func (a *Analyzer) trend(laps []model.LapRecord) model.PaceTrend {
	if len(laps) <= a.window {
		return model.TrendStable
	}
	recent := laps[len(laps)-a.window:]
	baselineFrom := max(0, len(laps)-2*a.window)
	baseline := laps[baselineFrom : len(laps)-a.window]
	diff := stat.Mean(lapTimes(recent), nil) - stat.Mean(lapTimes(baseline), nil)
	switch {
	case diff < -a.trendEpsilon:
		return model.TrendImproving
	case diff > a.trendEpsilon:
		return model.TrendDegrading
	default:
		return model.TrendStable
	}
}

// Field computes a snapshot for every series and ranks them by current
// pace, fastest first. Vehicles without laps up to currentLap are skipped.
func (a *Analyzer) Field(
	seriesList []*model.VehicleLapSeries, currentLap int,
) ([]model.PaceSnapshot, error) {
	if len(seriesList) == 0 {
		return nil, fmt.Errorf("no series to rank")
	}
	ret := make([]model.PaceSnapshot, 0, len(seriesList))
	for _, series := range seriesList {
		snapshot, err := a.Analyze(series, currentLap)
		if err != nil {
			a.l.Debug("skipping vehicle without laps",
				log.String("vehicleId", series.VehicleID), log.Int("currentLap", currentLap))
			continue
		}
		ret = append(ret, snapshot)
	}
	slices.SortStableFunc(ret, func(x, y model.PaceSnapshot) int {
		switch {
		case x.CurrentPace < y.CurrentPace:
			return -1
		case x.CurrentPace > y.CurrentPace:
			return 1
		default:
			return 0
		}
	})
	for i := range ret {
		ret[i].RelativePosition = i + 1
		ret[i].TotalCompetitors = len(ret)
	}
	return ret, nil
}

func lapTimes(laps []model.LapRecord) []float64 {
	ret := make([]float64, 0, len(laps))
	for _, l := range laps {
		ret = append(ret, l.LapTime)
	}
	return ret
}
