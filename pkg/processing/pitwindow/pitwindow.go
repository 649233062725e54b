package pitwindow

import (
	"fmt"
	"math"

	"github.com/racelogiq/strategy-engine/log"
	"github.com/racelogiq/strategy-engine/pkg/model"
)

const (
	// DefaultThreshold is the delta to best (s) beyond which tires are
	// considered no longer competitive.
	DefaultThreshold = 3.0
	// DefaultPitStopTime is the assumed time lost for a pit stop (s).
	DefaultPitStopTime = 45.0

	// SlopeEpsilon below this a slope counts as "no degradation".
	SlopeEpsilon = 0.01

	criticalLapsRemaining = 2
	// fresh tires still degrade, but at a fraction of the worn rate
	freshTireFactor = 0.3
	// staying out must cost more than this before a stop pays off
	minSavingToPit = 5.0
	minCostRate    = 0.01
)

type Option func(*Predictor)

func WithThreshold(threshold float64) Option {
	return func(p *Predictor) {
		if threshold > 0 {
			p.threshold = threshold
		}
	}
}

func WithPitStopTime(seconds float64) Option {
	return func(p *Predictor) {
		if seconds > 0 {
			p.pitStopTime = seconds
		}
	}
}

func WithLogger(arg *log.Logger) Option {
	return func(p *Predictor) {
		p.l = arg
	}
}

type Predictor struct {
	threshold   float64
	pitStopTime float64
	l           *log.Logger
}

func NewPredictor(opts ...Option) *Predictor {
	ret := &Predictor{
		threshold:   DefaultThreshold,
		pitStopTime: DefaultPitStopTime,
		l:           log.Default().Named("pitwindow"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Predict projects the lap at which the fitted delta-to-best crosses the
// acceptability threshold. A slope at or below SlopeEpsilon is treated as
// "no measurable degradation" and never as a division error.
func (p *Predictor) Predict(
	m model.DegradationModel, currentLap, totalLaps int,
) (model.PitPrediction, error) {
	if err := checkRaceArgs(currentLap, totalLaps); err != nil {
		return model.PitPrediction{}, err
	}
	ret := model.PitPrediction{
		Confidence:      m.Confidence,
		DegradationRate: m.Slope,
		Status:          model.PitStatusNone,
	}
	if m.Slope <= SlopeEpsilon {
		return ret, nil
	}

	currentDelta := m.DeltaAt(currentLap)
	ret.CurrentDelta = currentDelta
	lapsUntil := (p.threshold - currentDelta) / m.Slope
	lapsUntil = math.Min(math.Max(lapsUntil, 0), float64(totalLaps-currentLap))
	ret.LapsRemaining = int(math.Floor(lapsUntil))
	pitLap := currentLap + ret.LapsRemaining
	ret.PredictedPitLap = &pitLap

	switch {
	case ret.LapsRemaining <= criticalLapsRemaining:
		ret.Status = model.PitStatusCritical
	case pitLap < totalLaps:
		ret.Status = model.PitStatusRecommended
	default:
		ret.Status = model.PitStatusNone
	}
	p.l.Debug("pit prediction",
		log.Int("pitLap", pitLap),
		log.Int("lapsRemaining", ret.LapsRemaining),
		log.Float64("currentDelta", currentDelta),
		log.String("status", string(ret.Status)))
	return ret, nil
}

// CostScan weighs staying out on worn tires against pitting at each
// candidate lap. Time lost before a stop accumulates at the fitted rate;
// after the stop fresh tires are assumed to degrade at freshTireFactor of
// that rate. The scan recommends the stop only when it saves more than
// minSavingToPit seconds.
func (p *Predictor) CostScan(
	m model.DegradationModel, currentLap, totalLaps int,
) (model.PitCostAnalysis, error) {
	if err := checkRaceArgs(currentLap, totalLaps); err != nil {
		return model.PitCostAnalysis{}, err
	}
	rate := math.Max(m.Slope, minCostRate)
	lapsRemaining := totalLaps - currentLap
	timeLostNoPit := cumulativeLoss(rate, lapsRemaining)

	ret := model.PitCostAnalysis{
		OptimalPitLap:   currentLap + 1,
		DegradationRate: rate,
		TimeLostNoPit:   timeLostNoPit,
		TimeLostWithPit: timeLostNoPit,
	}
	found := false
	for pitLap := currentLap + 1; pitLap <= totalLaps-3; pitLap++ {
		lossBefore := cumulativeLoss(rate, pitLap-currentLap)
		lossAfter := cumulativeLoss(rate*freshTireFactor, totalLaps-pitLap)
		total := lossBefore + p.pitStopTime + lossAfter
		if !found || total < ret.TimeLostWithPit {
			found = true
			ret.TimeLostWithPit = total
			ret.OptimalPitLap = pitLap
		}
	}
	if !found {
		// race too short to fit a stop in
		return ret, nil
	}
	ret.TimeSaved = timeLostNoPit - ret.TimeLostWithPit
	ret.ShouldPit = ret.TimeSaved > minSavingToPit
	ret.LapsUntilPit = ret.OptimalPitLap - currentLap
	return ret, nil
}

// sum of rate*i for i in [0, laps)
func cumulativeLoss(rate float64, laps int) float64 {
	if laps <= 0 {
		return 0
	}
	return rate * float64(laps-1) * float64(laps) / 2
}

func checkRaceArgs(currentLap, totalLaps int) error {
	if totalLaps <= 0 {
		return fmt.Errorf("totalLaps must be positive, got %d", totalLaps)
	}
	if currentLap < 0 || currentLap > totalLaps {
		return fmt.Errorf("currentLap %d outside race of %d laps", currentLap, totalLaps)
	}
	return nil
}
