package lapseries

import (
	"context"
	"fmt"
	"sort"

	"github.com/racelogiq/strategy-engine/pkg/model"
)

// MemoryRepository keeps sessions in memory. Used for fixtures and tests;
// series are validated once on insert and treated as frozen afterwards.
type MemoryRepository struct {
	sessions map[string]map[string]*model.VehicleLapSeries
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sessions: make(map[string]map[string]*model.VehicleLapSeries),
	}
}

func (r *MemoryRepository) AddSeries(s *model.VehicleLapSeries) error {
	if s.SessionID == "" {
		return fmt.Errorf("empty session id for vehicle %q", s.VehicleID)
	}
	if err := ValidateSeries(s); err != nil {
		return fmt.Errorf("invalid series for vehicle %q: %w", s.VehicleID, err)
	}
	byVehicle, ok := r.sessions[s.SessionID]
	if !ok {
		byVehicle = make(map[string]*model.VehicleLapSeries)
		r.sessions[s.SessionID] = byVehicle
	}
	byVehicle[s.VehicleID] = s
	return nil
}

func (r *MemoryRepository) Series(
	ctx context.Context, sessionID, vehicleID string,
) (*model.VehicleLapSeries, error) {
	byVehicle, ok := r.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSession, sessionID)
	}
	series, ok := byVehicle[vehicleID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVehicle, vehicleID)
	}
	return series, nil
}

func (r *MemoryRepository) Vehicles(
	ctx context.Context, sessionID string,
) ([]string, error) {
	byVehicle, ok := r.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSession, sessionID)
	}
	ret := make([]string, 0, len(byVehicle))
	for id := range byVehicle {
		ret = append(ret, id)
	}
	sort.Strings(ret)
	return ret, nil
}
