package crosstrack

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/racelogiq/strategy-engine/pkg/model"
)

// Compare ranks the per-session summaries of one vehicle by best lap and
// reports each session's gap to the overall best, plus aggregate totals.
// Purely descriptive; no prediction.
func Compare(
	vehicleID string, summaries []model.SessionSummary,
) (model.CrossTrackComparison, error) {
	if vehicleID == "" {
		return model.CrossTrackComparison{}, errors.New("empty vehicle id")
	}
	for _, s := range summaries {
		if s.BestLap <= 0 {
			return model.CrossTrackComparison{},
				fmt.Errorf("session %s: non-positive best lap %f", s.SessionID, s.BestLap)
		}
	}
	ret := model.CrossTrackComparison{
		VehicleID: vehicleID,
		Sessions:  make([]model.RankedSession, 0, len(summaries)),
	}
	if len(summaries) == 0 {
		return ret, nil
	}

	ordered := make([]model.SessionSummary, len(summaries))
	copy(ordered, summaries)
	slices.SortStableFunc(ordered, func(a, b model.SessionSummary) int {
		switch {
		case a.BestLap < b.BestLap:
			return -1
		case a.BestLap > b.BestLap:
			return 1
		default:
			return 0
		}
	})
	overallBest := ordered[0].BestLap
	for i, s := range ordered {
		ret.Sessions = append(ret.Sessions, model.RankedSession{
			SessionSummary: s,
			Rank:           i + 1,
			GapToBest:      s.BestLap - overallBest,
		})
		ret.TotalLaps += s.LapsCompleted
	}
	ret.MeanAvgSpeed = stat.Mean(
		lo.Map(ordered, func(s model.SessionSummary, _ int) float64 {
			return s.AvgSpeed
		}), nil)
	return ret, nil
}

// Strongest returns the topN sessions with the fastest best laps.
func Strongest(
	summaries []model.SessionSummary, topN int,
) []model.SessionSummary {
	if topN <= 0 {
		return nil
	}
	ordered := make([]model.SessionSummary, len(summaries))
	copy(ordered, summaries)
	slices.SortStableFunc(ordered, func(a, b model.SessionSummary) int {
		switch {
		case a.BestLap < b.BestLap:
			return -1
		case a.BestLap > b.BestLap:
			return 1
		default:
			return 0
		}
	})
	if topN > len(ordered) {
		topN = len(ordered)
	}
	return ordered[:topN]
}

// Summarize builds a session summary from a lap series. Track name and
// average speed come from outside the series; the lap time coefficient of
// variation serves as the consistency figure.
func Summarize(
	series *model.VehicleLapSeries, trackName string, avgSpeed float64,
) (model.SessionSummary, error) {
	best, ok := series.BestLap()
	if !ok {
		return model.SessionSummary{},
			fmt.Errorf("vehicle %s: empty series for session %s",
				series.VehicleID, series.SessionID)
	}
	ret := model.SessionSummary{
		SessionID:     series.SessionID,
		TrackName:     trackName,
		BestLap:       best.LapTime,
		AvgSpeed:      avgSpeed,
		LapsCompleted: series.Len(),
	}
	if series.Len() > 1 {
		times := lo.Map(series.Laps, func(l model.LapRecord, _ int) float64 {
			return l.LapTime
		})
		ret.ConsistencyCV = stat.StdDev(times, nil) / stat.Mean(times, nil) * 100
	}
	return ret, nil
}
