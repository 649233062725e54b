package model

// NumSectors is the number of timed track segments per lap (S1-S3).
const NumSectors = 3

// SectorTimes holds the split times of one lap in seconds.
type SectorTimes [NumSectors]float64

func (s SectorTimes) Sum() float64 {
	return s[0] + s[1] + s[2]
}

// LapRecord is one cleaned timing record. Sentinel and error values are
// filtered upstream; records are immutable once produced.
type LapRecord struct {
	VehicleID   string      `json:"vehicleId"`
	LapNumber   int         `json:"lapNumber"`
	LapTime     float64     `json:"lapTime"` // seconds
	SectorTimes SectorTimes `json:"sectorTimes"`
	DeltaToBest float64     `json:"deltaToBest"` // vs personal best at that point
}

// VehicleLapSeries is the ordered lap history of one vehicle in one session.
// Laps are unique and strictly increasing; the series is never mutated after
// it has been handed to the engine.
type VehicleLapSeries struct {
	SessionID string      `json:"sessionId"`
	VehicleID string      `json:"vehicleId"`
	Laps      []LapRecord `json:"laps"`
}

func (s *VehicleLapSeries) Len() int {
	return len(s.Laps)
}

// BestLap returns the fastest lap of the series.
func (s *VehicleLapSeries) BestLap() (LapRecord, bool) {
	if len(s.Laps) == 0 {
		return LapRecord{}, false
	}
	best := s.Laps[0]
	for _, l := range s.Laps[1:] {
		if l.LapTime < best.LapTime {
			best = l
		}
	}
	return best, true
}

// BestSectors returns the minimum observed time for each sector.
func (s *VehicleLapSeries) BestSectors() (SectorTimes, bool) {
	if len(s.Laps) == 0 {
		return SectorTimes{}, false
	}
	best := s.Laps[0].SectorTimes
	for _, l := range s.Laps[1:] {
		for i := range NumSectors {
			if l.SectorTimes[i] < best[i] {
				best[i] = l.SectorTimes[i]
			}
		}
	}
	return best, true
}

// UpTo returns the laps with LapNumber <= lap.
func (s *VehicleLapSeries) UpTo(lap int) []LapRecord {
	ret := make([]LapRecord, 0, len(s.Laps))
	for _, l := range s.Laps {
		if l.LapNumber <= lap {
			ret = append(ret, l)
		}
	}
	return ret
}

// Recent returns the last n laps (all laps when fewer are available).
func (s *VehicleLapSeries) Recent(n int) []LapRecord {
	if n >= len(s.Laps) {
		return s.Laps
	}
	return s.Laps[len(s.Laps)-n:]
}

// Lap returns the record with the given lap number.
func (s *VehicleLapSeries) Lap(lapNumber int) (LapRecord, bool) {
	for _, l := range s.Laps {
		if l.LapNumber == lapNumber {
			return l, true
		}
	}
	return LapRecord{}, false
}
