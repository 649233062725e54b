package sector

import (
	"github.com/racelogiq/strategy-engine/log"
	"github.com/racelogiq/strategy-engine/pkg/model"
)

// PerfectLapEpsilon below this remaining improvement counts as a
// near-perfect execution.
const PerfectLapEpsilon = 0.1

type PotentialOption func(*PotentialCalculator)

func WithPerfectLapEpsilon(epsilon float64) PotentialOption {
	return func(p *PotentialCalculator) {
		if epsilon > 0 {
			p.epsilon = epsilon
		}
	}
}

func WithPotentialLogger(arg *log.Logger) PotentialOption {
	return func(p *PotentialCalculator) {
		p.l = arg
	}
}

type PotentialCalculator struct {
	epsilon float64
	l       *log.Logger
}

func NewPotentialCalculator(opts ...PotentialOption) *PotentialCalculator {
	ret := &PotentialCalculator{
		epsilon: PerfectLapEpsilon,
		l:       log.Default().Named("sector"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Potential sums the personal best sector times into a theoretical best lap
// and reports the improvement still available. A negative raw value points
// to inconsistent sector vs lap timing; it is clamped to zero and logged.
func (p *PotentialCalculator) Potential(
	series *model.VehicleLapSeries,
) (model.LapPotential, bool) {
	best, ok := series.BestLap()
	if !ok {
		return model.LapPotential{}, false
	}
	bestSectors, _ := series.BestSectors()
	theoretical := bestSectors.Sum()
	improvement := best.LapTime - theoretical
	if improvement < 0 {
		p.l.Warn("sector sums exceed best lap time, clamping potential",
			log.String("vehicleId", series.VehicleID),
			log.Float64("theoreticalBest", theoretical),
			log.Float64("actualBest", best.LapTime))
		theoretical = best.LapTime
		improvement = 0
	}
	return model.LapPotential{
		TheoreticalBest:      theoretical,
		ActualBest:           best.LapTime,
		ImprovementPotential: improvement,
		NearPerfect:          improvement < p.epsilon,
		BestSectors:          bestSectors,
	}, true
}
