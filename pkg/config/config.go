package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	LogLevel           string  // sets the log level (zap log level values)
	LogFormat          string  // text vs json
	LogConfig          string  // path to log config file
	PitThreshold       float64 // delta to best (s) beyond which tires are no longer competitive
	DefaultConsumption float64 // fallback fuel consumption (l/lap) when no samples exist
	TankCapacity       float64 // fuel tank capacity (l)
	PitStopTime        float64 // assumed stationary+lane time for a pit stop (s)
	DegradationWindow  int     // number of recent laps used for the degradation fit
	PaceWindow         int     // number of recent laps used for pace analysis
)

// Config holds the configuration values which are used by the application
type Config struct {
	PitThreshold       float64
	DefaultConsumption float64
	TankCapacity       float64
	PitStopTime        float64
	DegradationWindow  int
	PaceWindow         int
}

// FromArgs collects the resolved CLI values into a Config.
func FromArgs() *Config {
	return &Config{
		PitThreshold:       PitThreshold,
		DefaultConsumption: DefaultConsumption,
		TankCapacity:       TankCapacity,
		PitStopTime:        PitStopTime,
		DegradationWindow:  DegradationWindow,
		PaceWindow:         PaceWindow,
	}
}
