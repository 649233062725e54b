package sector

import (
	"fmt"
	"slices"

	"github.com/racelogiq/strategy-engine/log"
	"github.com/racelogiq/strategy-engine/pkg/model"
)

const (
	// SignificanceThreshold filters timing jitter: losses at or below this
	// are not worth coaching.
	SignificanceThreshold = 0.1
)

var sectorLabels = [model.NumSectors]string{"S1", "S2", "S3"}

// one fixed suggestion per sector, keyed by sector index
var suggestions = [model.NumSectors]string{
	"Focus on entry speed and early apex in the opening corners",
	"Check mid-corner speed and throttle application",
	"Maximize exit speed onto the main straight",
}

type CoachOption func(*Coach)

func WithSignificanceThreshold(threshold float64) CoachOption {
	return func(c *Coach) {
		if threshold > 0 {
			c.threshold = threshold
		}
	}
}

func WithCoachLogger(arg *log.Logger) CoachOption {
	return func(c *Coach) {
		c.l = arg
	}
}

type Coach struct {
	threshold float64
	l         *log.Logger
}

func NewCoach(opts ...CoachOption) *Coach {
	ret := &Coach{
		threshold: SignificanceThreshold,
		l:         log.Default().Named("sector"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Opportunities compares a lap's sector times against the personal best
// sectors and reports every significant loss, biggest first. An empty
// report means a perfect lap, not an error.
func (c *Coach) Opportunities(
	current, best model.SectorTimes,
) model.CoachingReport {
	ret := model.CoachingReport{Opportunities: []model.CoachingOpportunity{}}
	for i := range model.NumSectors {
		timeLoss := current[i] - best[i]
		if timeLoss <= c.threshold {
			continue
		}
		ret.Opportunities = append(ret.Opportunities, model.CoachingOpportunity{
			Sector:     sectorLabels[i],
			TimeLoss:   timeLoss,
			Suggestion: suggestions[i],
		})
		ret.TotalOpportunity += timeLoss
	}
	slices.SortStableFunc(ret.Opportunities,
		func(a, b model.CoachingOpportunity) int {
			switch {
			case a.TimeLoss > b.TimeLoss:
				return -1
			case a.TimeLoss < b.TimeLoss:
				return 1
			default:
				return 0
			}
		})
	return ret
}

// OpportunitiesForLap resolves the lap record and the personal best sectors
// from the series, then delegates to Opportunities.
func (c *Coach) OpportunitiesForLap(
	series *model.VehicleLapSeries, lapNumber int,
) (model.CoachingReport, error) {
	lap, ok := series.Lap(lapNumber)
	if !ok {
		return model.CoachingReport{},
			fmt.Errorf("vehicle %s has no lap %d", series.VehicleID, lapNumber)
	}
	best, _ := series.BestSectors()
	return c.Opportunities(lap.SectorTimes, best), nil
}
