package lapseries

import (
	"context"
	"errors"
	"fmt"

	"github.com/racelogiq/strategy-engine/pkg/model"
)

var (
	ErrNoSession      = errors.New("no such session")
	ErrUnknownVehicle = errors.New("no such vehicle in session")
)

// Repository supplies ordered, already cleaned lap records for a vehicle in
// a session. Implementations are read-only for callers; the engine never
// writes back.
type Repository interface {
	Series(ctx context.Context, sessionID, vehicleID string) (
		*model.VehicleLapSeries, error)
	Vehicles(ctx context.Context, sessionID string) ([]string, error)
}

// ValidateSeries enforces the repository boundary contract: non-empty
// vehicle id, strictly increasing positive lap numbers, positive lap and
// sector times. Estimators rely on this and do not re-validate.
func ValidateSeries(s *model.VehicleLapSeries) error {
	if s.VehicleID == "" {
		return errors.New("empty vehicle id")
	}
	prev := 0
	for i := range s.Laps {
		l := &s.Laps[i]
		if l.LapNumber <= prev {
			return fmt.Errorf("lap numbers not strictly increasing at index %d (lap %d)",
				i, l.LapNumber)
		}
		if l.LapTime <= 0 {
			return fmt.Errorf("non-positive lap time on lap %d", l.LapNumber)
		}
		for sec := range model.NumSectors {
			if l.SectorTimes[sec] <= 0 {
				return fmt.Errorf("non-positive sector time S%d on lap %d", sec+1, l.LapNumber)
			}
		}
		if l.DeltaToBest < 0 {
			return fmt.Errorf("negative delta to best on lap %d", l.LapNumber)
		}
		prev = l.LapNumber
	}
	return nil
}
