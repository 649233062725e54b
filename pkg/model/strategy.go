package model

// DegradationModel is the fitted trend of delta-to-best vs lap number.
// Derived value, recomputed per query.
type DegradationModel struct {
	Slope      float64 `json:"slope"` // seconds lost per lap
	Intercept  float64 `json:"intercept"`
	WindowSize int     `json:"windowSize"` // laps used for the fit
	ValidLaps  int     `json:"validLaps"`
	Confidence int     `json:"confidence"` // 0-100
}

// DeltaAt evaluates the fitted delta-to-best at the given lap.
func (m DegradationModel) DeltaAt(lap int) float64 {
	return m.Slope*float64(lap) + m.Intercept
}

type PitStatus string

const (
	PitStatusNone        PitStatus = "NO_PIT_NEEDED"
	PitStatusRecommended PitStatus = "PIT_RECOMMENDED"
	PitStatusCritical    PitStatus = "CRITICAL"
)

type PitPrediction struct {
	PredictedPitLap *int      `json:"predictedPitLap,omitempty"`
	LapsRemaining   int       `json:"lapsRemaining"`
	Confidence      int       `json:"confidence"`
	DegradationRate float64   `json:"degradationRate"`
	CurrentDelta    float64   `json:"currentDelta"`
	Status          PitStatus `json:"status"`
}

// PitCostAnalysis weighs staying out against pitting at the best candidate
// lap, assuming fresh tires degrade at a fraction of the current rate.
type PitCostAnalysis struct {
	ShouldPit       bool    `json:"shouldPit"`
	OptimalPitLap   int     `json:"optimalPitLap"`
	LapsUntilPit    int     `json:"lapsUntilPit"`
	TimeSaved       float64 `json:"timeSaved"`
	DegradationRate float64 `json:"degradationRate"`
	TimeLostNoPit   float64 `json:"timeLostNoPit"`
	TimeLostWithPit float64 `json:"timeLostWithPit"`
}

type CoachingOpportunity struct {
	Sector     string  `json:"sector"`
	TimeLoss   float64 `json:"timeLoss"` // seconds, > 0
	Suggestion string  `json:"suggestion"`
}

// CoachingReport is empty when the lap matched all personal bests within
// the significance threshold.
type CoachingReport struct {
	Opportunities    []CoachingOpportunity `json:"opportunities"`
	TotalOpportunity float64               `json:"totalOpportunity"`
}

type LapPotential struct {
	TheoreticalBest      float64     `json:"theoreticalBest"`
	ActualBest           float64     `json:"actualBest"`
	ImprovementPotential float64     `json:"improvementPotential"` // >= 0
	NearPerfect          bool        `json:"nearPerfect"`
	BestSectors          SectorTimes `json:"bestSectors"`
}

type FuelState struct {
	CurrentFuel       float64  `json:"currentFuel"` // liters
	ConsumptionPerLap float64  `json:"consumptionPerLap"`
	LapsOnCurrentFuel int      `json:"lapsOnCurrentFuel"`
	NeedsPit          bool     `json:"needsPit"`
	RecommendedPitLap *int     `json:"recommendedPitLap,omitempty"`
	FuelToAdd         *float64 `json:"fuelToAdd,omitempty"`
}

type PaceTrend string

const (
	TrendImproving PaceTrend = "IMPROVING"
	TrendDegrading PaceTrend = "DEGRADING"
	TrendStable    PaceTrend = "STABLE"
)

type PaceSnapshot struct {
	VehicleID        string    `json:"vehicleId"`
	CurrentPace      float64   `json:"currentPace"` // mean lap time, recent window
	BestLap          float64   `json:"bestLap"`
	PaceDelta        float64   `json:"paceDelta"` // >= 0
	Trend            PaceTrend `json:"trend"`
	ConsistencyStd   float64   `json:"consistencyStd"`
	IsConsistent     bool      `json:"isConsistent"`
	RelativePosition int       `json:"relativePosition,omitempty"`
	TotalCompetitors int       `json:"totalCompetitors,omitempty"`
}

type FinishProjection struct {
	PredictedFinishTime float64 `json:"predictedFinishTime"` // seconds
	TimeElapsed         float64 `json:"timeElapsed"`
	TimeRemaining       float64 `json:"timeRemaining"`
	LapsRemaining       int     `json:"lapsRemaining"`
	PredictedAvgLap     float64 `json:"predictedAvgLap"`
}

// StintLapMetric is one row of the lap-by-lap degradation profile.
type StintLapMetric struct {
	LapNumber     int     `json:"lapNumber"`
	LapTime       float64 `json:"lapTime"`
	RollingAvg    float64 `json:"rollingAvg"` // 3-lap window
	DeltaToBest   float64 `json:"deltaToBest"`
	LapToLapDelta float64 `json:"lapToLapDelta"` // 0 for the first lap
	TireLifePct   float64 `json:"tireLifePct"`   // 0-100
}

// SectorDegradation compares a sector's early laps against its late laps.
type SectorDegradation struct {
	Sector        string  `json:"sector"`
	EarlyAvg      float64 `json:"earlyAvg"`
	LateAvg       float64 `json:"lateAvg"`
	Delta         float64 `json:"delta"`
	PercentChange float64 `json:"percentChange"`
}

type SectorSummary struct {
	Sector  string  `json:"sector"`
	Best    float64 `json:"best"`
	Worst   float64 `json:"worst"`
	Average float64 `json:"average"`
	Std     float64 `json:"std"`
	Current float64 `json:"current"`
}

type SectorPerformance struct {
	Sectors   []SectorSummary `json:"sectors"`
	Strongest string          `json:"strongest"`
	Weakest   string          `json:"weakest"`
}

// SessionSummary is the per-session/track digest used by the cross track
// comparison. Supplied externally per session.
type SessionSummary struct {
	SessionID     string  `json:"sessionId"`
	TrackName     string  `json:"trackName"`
	BestLap       float64 `json:"bestLap"` // seconds
	AvgSpeed      float64 `json:"avgSpeed"`
	LapsCompleted int     `json:"lapsCompleted"`
	ConsistencyCV float64 `json:"consistencyCv"` // lap time CV%, 0 when unknown
}

type RankedSession struct {
	SessionSummary
	Rank      int     `json:"rank"`
	GapToBest float64 `json:"gapToBest"` // 0 for the best session
}

type CrossTrackComparison struct {
	VehicleID    string          `json:"vehicleId"`
	Sessions     []RankedSession `json:"sessions"`
	TotalLaps    int             `json:"totalLaps"`
	MeanAvgSpeed float64         `json:"meanAvgSpeed"`
}
