package degradation

import (
	"math"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/racelogiq/strategy-engine/log"
	"github.com/racelogiq/strategy-engine/pkg/model"
)

const (
	// DefaultWindowSize is the number of most recent laps used for the fit.
	DefaultWindowSize = 5
	// MinValidLaps below this the estimator returns a zero-confidence model.
	MinValidLaps = 2

	confidencePerLap = 20

	// stint length assumption behind the tire life estimate
	typicalStintLaps = 15
	rollingWindow    = 3
)

type Option func(*Estimator)

func WithWindowSize(n int) Option {
	return func(e *Estimator) {
		if n >= MinValidLaps {
			e.windowSize = n
		}
	}
}

// WithResidualConfidence switches the confidence score from the sample-size
// heuristic min(100, n*20) to the fit quality (R squared * 100). The
// heuristic stays the default for compatibility with existing consumers.
func WithResidualConfidence() Option {
	return func(e *Estimator) {
		e.residualConfidence = true
	}
}

func WithLogger(arg *log.Logger) Option {
	return func(e *Estimator) {
		e.l = arg
	}
}

type Estimator struct {
	windowSize         int
	residualConfidence bool
	l                  *log.Logger
}

func NewEstimator(opts ...Option) *Estimator {
	ret := &Estimator{
		windowSize: DefaultWindowSize,
		l:          log.Default().Named("degradation"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Fit runs an ordinary least squares fit of delta-to-best against lap number
// over the most recent laps of the series. With fewer than MinValidLaps
// usable laps a zero-confidence model is returned; this is not an error.
func (e *Estimator) Fit(series *model.VehicleLapSeries) model.DegradationModel {
	valid := lo.Filter(series.Laps, func(l model.LapRecord, _ int) bool {
		return l.LapTime > 0 && l.DeltaToBest >= 0
	})
	if len(valid) > e.windowSize {
		valid = valid[len(valid)-e.windowSize:]
	}
	n := len(valid)
	if n < MinValidLaps {
		e.l.Debug("not enough laps for degradation fit",
			log.String("vehicleId", series.VehicleID), log.Int("valid", n))
		return model.DegradationModel{WindowSize: e.windowSize, ValidLaps: n}
	}

	xs := lo.Map(valid, func(l model.LapRecord, _ int) float64 {
		return float64(l.LapNumber)
	})
	ys := lo.Map(valid, func(l model.LapRecord, _ int) float64 {
		return l.DeltaToBest
	})
	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	return model.DegradationModel{
		Slope:      slope,
		Intercept:  intercept,
		WindowSize: e.windowSize,
		ValidLaps:  n,
		Confidence: e.confidence(xs, ys, intercept, slope),
	}
}

func (e *Estimator) confidence(xs, ys []float64, alpha, beta float64) int {
	heuristic := min(100, len(xs)*confidencePerLap)
	if !e.residualConfidence {
		return heuristic
	}
	rSquared := stat.RSquared(xs, ys, nil, alpha, beta)
	// constant deltas yield an undefined R squared
	if math.IsNaN(rSquared) {
		return heuristic
	}
	return int(math.Round(math.Max(0, rSquared) * 100))
}

// Profile computes the lap-by-lap degradation metrics of the series: a
// rolling average lap time, the delta to the overall best lap, the lap to
// lap delta and an estimated remaining tire life assuming linear wear over
// a typical stint.
func (e *Estimator) Profile(series *model.VehicleLapSeries) []model.StintLapMetric {
	if series.Len() == 0 {
		return nil
	}
	best, _ := series.BestLap()
	ret := make([]model.StintLapMetric, 0, series.Len())
	for i, l := range series.Laps {
		from := max(0, i-rollingWindow+1)
		var sum float64
		for _, w := range series.Laps[from : i+1] {
			sum += w.LapTime
		}
		metric := model.StintLapMetric{
			LapNumber:   l.LapNumber,
			LapTime:     l.LapTime,
			RollingAvg:  sum / float64(i+1-from),
			DeltaToBest: l.LapTime - best.LapTime,
			TireLifePct: tireLife(l.LapNumber),
		}
		if i > 0 {
			metric.LapToLapDelta = l.LapTime - series.Laps[i-1].LapTime
		}
		ret = append(ret, metric)
	}
	return ret
}

func tireLife(lapNumber int) float64 {
	life := 100 - (float64(lapNumber)/typicalStintLaps)*100
	return math.Min(100, math.Max(0, life))
}
