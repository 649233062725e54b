package lapseries

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ohler55/ojg/oj"

	"github.com/racelogiq/strategy-engine/log"
	"github.com/racelogiq/strategy-engine/pkg/model"
	"github.com/racelogiq/strategy-engine/pkg/utils/cache"
	"github.com/racelogiq/strategy-engine/pkg/utils/cache/loadercache"
)

// SessionData is one parsed session document, grouped by vehicle.
type SessionData struct {
	SessionID string
	TrackName string
	TotalLaps int
	Series    map[string]*model.VehicleLapSeries
}

// sessionDocument mirrors the on-disk layout: a flat list of lap records
// for all vehicles of the session.
type sessionDocument struct {
	SessionID string    `json:"sessionId"`
	TrackName string    `json:"trackName"`
	TotalLaps int       `json:"totalLaps"`
	Laps      []fileLap `json:"laps"`
}

type fileLap struct {
	VehicleID   string    `json:"vehicleId"`
	LapNumber   int       `json:"lapNumber"`
	LapTime     float64   `json:"lapTime"`
	SectorTimes []float64 `json:"sectorTimes"`
	DeltaToBest float64   `json:"deltaToBest"`
}

func (l *fileLap) toRecord() (model.LapRecord, error) {
	if len(l.SectorTimes) != model.NumSectors {
		return model.LapRecord{},
			fmt.Errorf("lap %d of vehicle %s: expected %d sector times, got %d",
				l.LapNumber, l.VehicleID, model.NumSectors, len(l.SectorTimes))
	}
	ret := model.LapRecord{
		VehicleID:   l.VehicleID,
		LapNumber:   l.LapNumber,
		LapTime:     l.LapTime,
		DeltaToBest: l.DeltaToBest,
	}
	copy(ret.SectorTimes[:], l.SectorTimes)
	return ret, nil
}

// LoadSessionFile reads and validates a single session document.
func LoadSessionFile(path string) (*SessionData, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc sessionDocument
	if err := oj.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("could not parse session file %s: %w", path, err)
	}
	if doc.SessionID == "" {
		return nil, fmt.Errorf("session file %s: missing sessionId", path)
	}
	ret := &SessionData{
		SessionID: doc.SessionID,
		TrackName: doc.TrackName,
		TotalLaps: doc.TotalLaps,
		Series:    make(map[string]*model.VehicleLapSeries),
	}
	for i := range doc.Laps {
		lap, err := doc.Laps[i].toRecord()
		if err != nil {
			return nil, fmt.Errorf("session file %s: %w", path, err)
		}
		series, ok := ret.Series[lap.VehicleID]
		if !ok {
			series = &model.VehicleLapSeries{
				SessionID: doc.SessionID,
				VehicleID: lap.VehicleID,
			}
			ret.Series[lap.VehicleID] = series
		}
		series.Laps = append(series.Laps, lap)
	}
	for _, series := range ret.Series {
		sort.Slice(series.Laps, func(i, j int) bool {
			return series.Laps[i].LapNumber < series.Laps[j].LapNumber
		})
		if err := ValidateSeries(series); err != nil {
			return nil, fmt.Errorf("session file %s: %w", path, err)
		}
	}
	return ret, nil
}

// FileRepository serves sessions from a directory holding one JSON document
// per session (<dir>/<sessionId>.json). Parsed sessions are cached; the
// cached value is treated as a frozen view.
type FileRepository struct {
	dir   string
	cache cache.Cache[string, SessionData]
	l     *log.Logger
}

type FileRepositoryOption func(*FileRepository)

func WithFileLogger(arg *log.Logger) FileRepositoryOption {
	return func(r *FileRepository) {
		r.l = arg
	}
}

func NewFileRepository(dir string, opts ...FileRepositoryOption) *FileRepository {
	ret := &FileRepository{dir: dir, l: log.Default().Named("lapseries")}
	for _, opt := range opts {
		opt(ret)
	}
	ret.cache = loadercache.New(
		loadercache.WithLoader(ret.loadSession),
		loadercache.WithExpiration[string, SessionData](0),
		loadercache.WithLogger[string, SessionData](ret.l),
	)
	return ret
}

func (r *FileRepository) loadSession(
	ctx context.Context, sessionID string,
) (*SessionData, error) {
	path := filepath.Join(r.dir, sessionID+".json")
	data, err := LoadSessionFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoSession, sessionID)
		}
		return nil, err
	}
	r.l.Debug("loaded session",
		log.String("sessionId", sessionID),
		log.Int("vehicles", len(data.Series)))
	return data, nil
}

func (r *FileRepository) Series(
	ctx context.Context, sessionID, vehicleID string,
) (*model.VehicleLapSeries, error) {
	data, err := r.cache.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	series, ok := data.Series[vehicleID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVehicle, vehicleID)
	}
	return series, nil
}

func (r *FileRepository) Vehicles(
	ctx context.Context, sessionID string,
) ([]string, error) {
	data, err := r.cache.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ret := make([]string, 0, len(data.Series))
	for id := range data.Series {
		ret = append(ret, id)
	}
	sort.Strings(ret)
	return ret, nil
}

// Session returns the full parsed session document.
func (r *FileRepository) Session(
	ctx context.Context, sessionID string,
) (*SessionData, error) {
	return r.cache.Get(ctx, sessionID)
}
