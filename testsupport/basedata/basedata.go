package basedata

import (
	"github.com/racelogiq/strategy-engine/pkg/model"
)

const (
	SampleSessionID = "monza-2025-r1"
	SampleVehicleID = "14"
)

// LinearSeries builds laps whose time grows linearly from base by slope
// per lap, with sectors split 40/35/25. Lap 1 is the best lap.
func LinearSeries(vehicleID string, laps int, base, slope float64) *model.VehicleLapSeries {
	ret := &model.VehicleLapSeries{
		SessionID: SampleSessionID,
		VehicleID: vehicleID,
	}
	for i := 0; i < laps; i++ {
		lapTime := base + slope*float64(i)
		ret.Laps = append(ret.Laps, model.LapRecord{
			VehicleID: vehicleID,
			LapNumber: i + 1,
			LapTime:   lapTime,
			SectorTimes: model.SectorTimes{
				lapTime * 0.40,
				lapTime * 0.35,
				lapTime * 0.25,
			},
			DeltaToBest: slope * float64(i),
		})
	}
	return ret
}

// SampleSeries is a 15 lap stint with mild tire wear. Fitting the last
// 5 laps of it yields a slope of 0.05 s/lap.
func SampleSeries() *model.VehicleLapSeries {
	return LinearSeries(SampleVehicleID, 15, 92.0, 0.05)
}

// FlatSeries has identical lap times, so no degradation and perfect
// consistency.
func FlatSeries(vehicleID string, laps int, lapTime float64) *model.VehicleLapSeries {
	return LinearSeries(vehicleID, laps, lapTime, 0)
}

// SeriesFromLapTimes builds a series from explicit lap times, numbering
// laps from 1 and splitting sectors 40/35/25. Deltas are relative to the
// fastest of the given times.
func SeriesFromLapTimes(vehicleID string, lapTimes ...float64) *model.VehicleLapSeries {
	best := lapTimes[0]
	for _, t := range lapTimes {
		if t < best {
			best = t
		}
	}
	ret := &model.VehicleLapSeries{
		SessionID: SampleSessionID,
		VehicleID: vehicleID,
	}
	for i, t := range lapTimes {
		ret.Laps = append(ret.Laps, model.LapRecord{
			VehicleID: vehicleID,
			LapNumber: i + 1,
			LapTime:   t,
			SectorTimes: model.SectorTimes{
				t * 0.40,
				t * 0.35,
				t * 0.25,
			},
			DeltaToBest: t - best,
		})
	}
	return ret
}

// SampleSummaries covers three sessions on different tracks with distinct
// best laps.
func SampleSummaries() []model.SessionSummary {
	return []model.SessionSummary{
		{
			SessionID:     "spa-2025-r1",
			TrackName:     "Spa",
			BestLap:       136.2,
			AvgSpeed:      185.0,
			LapsCompleted: 24,
			ConsistencyCV: 0.8,
		},
		{
			SessionID:     SampleSessionID,
			TrackName:     "Monza",
			BestLap:       92.0,
			AvgSpeed:      201.5,
			LapsCompleted: 30,
			ConsistencyCV: 0.5,
		},
		{
			SessionID:     "zandvoort-2025-r2",
			TrackName:     "Zandvoort",
			BestLap:       95.4,
			AvgSpeed:      162.3,
			LapsCompleted: 28,
			ConsistencyCV: 1.2,
		},
	}
}
