package service

import (
	"context"
	"fmt"

	"github.com/racelogiq/strategy-engine/log"
	"github.com/racelogiq/strategy-engine/pkg/config"
	"github.com/racelogiq/strategy-engine/pkg/model"
	"github.com/racelogiq/strategy-engine/pkg/processing/crosstrack"
	"github.com/racelogiq/strategy-engine/pkg/processing/degradation"
	"github.com/racelogiq/strategy-engine/pkg/processing/finish"
	"github.com/racelogiq/strategy-engine/pkg/processing/fuel"
	"github.com/racelogiq/strategy-engine/pkg/processing/pace"
	"github.com/racelogiq/strategy-engine/pkg/processing/pitwindow"
	"github.com/racelogiq/strategy-engine/pkg/processing/sector"
	"github.com/racelogiq/strategy-engine/pkg/repository/lapseries"
)

// ReportParams describes one strategy query for a vehicle.
type ReportParams struct {
	SessionID   string
	VehicleID   string
	CurrentLap  int
	TotalLaps   int
	CurrentFuel float64
	FuelSamples []float64 // liters per lap, most recent last
}

// StrategyReport bundles every estimator result for one vehicle at one
// point in the race.
type StrategyReport struct {
	VehicleID   string                    `json:"vehicleId"`
	CurrentLap  int                       `json:"currentLap"`
	TotalLaps   int                       `json:"totalLaps"`
	Degradation model.DegradationModel    `json:"degradation"`
	Pit         model.PitPrediction       `json:"pit"`
	PitCost     model.PitCostAnalysis     `json:"pitCost"`
	Fuel        model.FuelState           `json:"fuel"`
	Pace        model.PaceSnapshot        `json:"pace"`
	Finish      model.FinishProjection    `json:"finish"`
	Coaching    model.CoachingReport      `json:"coaching"`
	Potential   model.LapPotential        `json:"potential"`
	Sectors     model.SectorPerformance   `json:"sectors"`
	Profile     []model.StintLapMetric    `json:"profile,omitempty"`
	SectorWear  []model.SectorDegradation `json:"sectorWear,omitempty"`
}

// StrategyService wires the repository into the estimators. It holds no
// mutable state beyond the injected collaborators; every call is a fresh
// read-and-compute pass, safe for concurrent use.
type StrategyService struct {
	repo      lapseries.Repository
	estimator *degradation.Estimator
	predictor *pitwindow.Predictor
	coach     *sector.Coach
	potential *sector.PotentialCalculator
	fuel      *fuel.Model
	pace      *pace.Analyzer
	finish    *finish.Predictor
	l         *log.Logger
}

type Option func(*StrategyService)

func WithLogger(arg *log.Logger) Option {
	return func(s *StrategyService) {
		s.l = arg
	}
}

func WithDegradationEstimator(arg *degradation.Estimator) Option {
	return func(s *StrategyService) {
		s.estimator = arg
	}
}

func WithPitPredictor(arg *pitwindow.Predictor) Option {
	return func(s *StrategyService) {
		s.predictor = arg
	}
}

func WithFuelModel(arg *fuel.Model) Option {
	return func(s *StrategyService) {
		s.fuel = arg
	}
}

func WithPaceAnalyzer(arg *pace.Analyzer) Option {
	return func(s *StrategyService) {
		s.pace = arg
	}
}

// InitStrategyService builds a service with estimators configured from cfg.
// Options may replace individual estimators (mainly for tests).
func InitStrategyService(
	repo lapseries.Repository, cfg *config.Config, opts ...Option,
) *StrategyService {
	ret := &StrategyService{
		repo: repo,
		estimator: degradation.NewEstimator(
			degradation.WithWindowSize(orDefault(cfg.DegradationWindow, degradation.DefaultWindowSize))),
		predictor: pitwindow.NewPredictor(
			pitwindow.WithThreshold(cfg.PitThreshold),
			pitwindow.WithPitStopTime(cfg.PitStopTime)),
		coach:     sector.NewCoach(),
		potential: sector.NewPotentialCalculator(),
		fuel: fuel.NewModel(
			fuel.WithDefaultConsumption(cfg.DefaultConsumption),
			fuel.WithTankCapacity(cfg.TankCapacity)),
		pace: pace.NewAnalyzer(
			pace.WithWindow(orDefault(cfg.PaceWindow, pace.DefaultWindow))),
		finish: finish.NewPredictor(),
		l:      log.Default().Named("strategy"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func orDefault(val, def int) int {
	if val > 0 {
		return val
	}
	return def
}

// Report computes the full strategy picture for one vehicle. The series is
// cut off at CurrentLap so later laps of a recorded session cannot leak
// into the answer.
//
//nolint:funlen // orchestration of all estimators
func (s *StrategyService) Report(
	ctx context.Context, params ReportParams,
) (*StrategyReport, error) {
	if params.VehicleID == "" {
		return nil, fmt.Errorf("empty vehicle id")
	}
	if params.TotalLaps <= 0 {
		return nil, fmt.Errorf("totalLaps must be positive, got %d", params.TotalLaps)
	}
	full, err := s.repo.Series(ctx, params.SessionID, params.VehicleID)
	if err != nil {
		return nil, err
	}
	series := &model.VehicleLapSeries{
		SessionID: full.SessionID,
		VehicleID: full.VehicleID,
		Laps:      full.UpTo(params.CurrentLap),
	}

	ret := &StrategyReport{
		VehicleID:  params.VehicleID,
		CurrentLap: params.CurrentLap,
		TotalLaps:  params.TotalLaps,
	}
	ret.Degradation = s.estimator.Fit(series)
	if ret.Pit, err = s.predictor.Predict(
		ret.Degradation, params.CurrentLap, params.TotalLaps); err != nil {
		return nil, err
	}
	if ret.PitCost, err = s.predictor.CostScan(
		ret.Degradation, params.CurrentLap, params.TotalLaps); err != nil {
		return nil, err
	}
	if ret.Fuel, err = s.fuel.Plan(
		params.CurrentFuel, params.FuelSamples,
		params.CurrentLap, params.TotalLaps); err != nil {
		return nil, err
	}
	if ret.Pace, err = s.pace.Analyze(series, params.CurrentLap); err != nil {
		return nil, err
	}
	timeElapsed := 0.0
	for _, l := range series.Laps {
		timeElapsed += l.LapTime
	}
	if ret.Finish, err = s.finish.Project(
		ret.Pace, params.CurrentLap, params.TotalLaps, timeElapsed); err != nil {
		return nil, err
	}
	// no record for the current lap simply means nothing to coach yet
	if report, err := s.coach.OpportunitiesForLap(
		series, params.CurrentLap); err == nil {
		ret.Coaching = report
	} else {
		ret.Coaching = model.CoachingReport{
			Opportunities: []model.CoachingOpportunity{},
		}
	}
	ret.Potential, _ = s.potential.Potential(series)
	ret.Sectors, _ = s.coach.Performance(series)
	ret.Profile = s.estimator.Profile(series)
	ret.SectorWear = s.coach.Degradation(series)

	s.l.Debug("report computed",
		log.String("vehicleId", params.VehicleID),
		log.Int("laps", series.Len()),
		log.String("pitStatus", string(ret.Pit.Status)))
	return ret, nil
}

// FieldPace ranks every vehicle of the session by rolling pace.
func (s *StrategyService) FieldPace(
	ctx context.Context, sessionID string, currentLap int,
) ([]model.PaceSnapshot, error) {
	vehicles, err := s.repo.Vehicles(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	seriesList := make([]*model.VehicleLapSeries, 0, len(vehicles))
	for _, id := range vehicles {
		series, err := s.repo.Series(ctx, sessionID, id)
		if err != nil {
			return nil, err
		}
		seriesList = append(seriesList, series)
	}
	return s.pace.Field(seriesList, currentLap)
}

// CompareTracks ranks externally supplied per-session summaries.
func (s *StrategyService) CompareTracks(
	ctx context.Context, vehicleID string, summaries []model.SessionSummary,
) (model.CrossTrackComparison, error) {
	return crosstrack.Compare(vehicleID, summaries)
}

// SummarizeSession builds the cross-track summary of one session from the
// repository.
func (s *StrategyService) SummarizeSession(
	ctx context.Context, sessionID, vehicleID, trackName string, avgSpeed float64,
) (model.SessionSummary, error) {
	series, err := s.repo.Series(ctx, sessionID, vehicleID)
	if err != nil {
		return model.SessionSummary{}, err
	}
	return crosstrack.Summarize(series, trackName, avgSpeed)
}
