package sector

import (
	"gonum.org/v1/gonum/stat"

	"github.com/racelogiq/strategy-engine/pkg/model"
)

const (
	earlyLateWindow       = 3
	minLapsForDegradation = 5
)

// Degradation compares each sector's first laps against its last laps to
// show where the stint loses time. Needs at least minLapsForDegradation
// laps, otherwise the result is empty.
func (c *Coach) Degradation(
	series *model.VehicleLapSeries,
) []model.SectorDegradation {
	if series.Len() < minLapsForDegradation {
		return nil
	}
	early := series.Laps[:earlyLateWindow]
	late := series.Laps[series.Len()-earlyLateWindow:]
	ret := make([]model.SectorDegradation, 0, model.NumSectors)
	for i := range model.NumSectors {
		earlyAvg := stat.Mean(sectorValues(early, i), nil)
		lateAvg := stat.Mean(sectorValues(late, i), nil)
		delta := lateAvg - earlyAvg
		ret = append(ret, model.SectorDegradation{
			Sector:        sectorLabels[i],
			EarlyAvg:      earlyAvg,
			LateAvg:       lateAvg,
			Delta:         delta,
			PercentChange: delta / earlyAvg * 100,
		})
	}
	return ret
}

// Performance summarizes each sector over the whole series and names the
// strongest and weakest sector, judged by how close the average runs to the
// personal best.
func (c *Coach) Performance(
	series *model.VehicleLapSeries,
) (model.SectorPerformance, bool) {
	if series.Len() == 0 {
		return model.SectorPerformance{}, false
	}
	lastLap := series.Laps[series.Len()-1]
	ret := model.SectorPerformance{
		Sectors: make([]model.SectorSummary, 0, model.NumSectors),
	}
	var strongest, weakest int
	var strongestSlack, weakestSlack float64
	for i := range model.NumSectors {
		values := sectorValues(series.Laps, i)
		summary := model.SectorSummary{
			Sector:  sectorLabels[i],
			Best:    minOf(values),
			Worst:   maxOf(values),
			Average: stat.Mean(values, nil),
			Current: lastLap.SectorTimes[i],
		}
		if len(values) > 1 {
			summary.Std = stat.StdDev(values, nil)
		}
		slack := summary.Average - summary.Best
		if i == 0 || slack < strongestSlack {
			strongest, strongestSlack = i, slack
		}
		if i == 0 || slack > weakestSlack {
			weakest, weakestSlack = i, slack
		}
		ret.Sectors = append(ret.Sectors, summary)
	}
	ret.Strongest = sectorLabels[strongest]
	ret.Weakest = sectorLabels[weakest]
	return ret, true
}

func sectorValues(laps []model.LapRecord, sectorIdx int) []float64 {
	ret := make([]float64, 0, len(laps))
	for _, l := range laps {
		ret = append(ret, l.SectorTimes[sectorIdx])
	}
	return ret
}

func minOf(values []float64) float64 {
	ret := values[0]
	for _, v := range values[1:] {
		if v < ret {
			ret = v
		}
	}
	return ret
}

func maxOf(values []float64) float64 {
	ret := values[0]
	for _, v := range values[1:] {
		if v > ret {
			ret = v
		}
	}
	return ret
}
