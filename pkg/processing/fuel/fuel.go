package fuel

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/racelogiq/strategy-engine/log"
	"github.com/racelogiq/strategy-engine/pkg/model"
)

const (
	// DefaultConsumption is the fallback consumption (l/lap) on cold start,
	// before any samples have been collected.
	DefaultConsumption = 0.08
	// DefaultTankCapacity in liters.
	DefaultTankCapacity = 50.0
	// DefaultSampleWindow is how many of the most recent consumption
	// samples feed the average.
	DefaultSampleWindow = 5

	// always keep one lap of fuel in hand when picking the pit lap
	pitLapBuffer = 1
)

type Option func(*Model)

func WithDefaultConsumption(litersPerLap float64) Option {
	return func(m *Model) {
		if litersPerLap > 0 {
			m.defaultConsumption = litersPerLap
		}
	}
}

func WithTankCapacity(liters float64) Option {
	return func(m *Model) {
		if liters > 0 {
			m.tankCapacity = liters
		}
	}
}

func WithSampleWindow(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.sampleWindow = n
		}
	}
}

func WithLogger(arg *log.Logger) Option {
	return func(m *Model) {
		m.l = arg
	}
}

type Model struct {
	defaultConsumption float64
	tankCapacity       float64
	sampleWindow       int
	l                  *log.Logger
}

func NewModel(opts ...Option) *Model {
	ret := &Model{
		defaultConsumption: DefaultConsumption,
		tankCapacity:       DefaultTankCapacity,
		sampleWindow:       DefaultSampleWindow,
		l:                  log.Default().Named("fuel"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Plan extrapolates the recent consumption samples to the remaining race
// distance. With no samples the configured default rate is used; a missing
// history never fails the call.
func (m *Model) Plan(
	currentFuel float64, samples []float64, currentLap, totalLaps int,
) (model.FuelState, error) {
	if totalLaps <= 0 {
		return model.FuelState{}, fmt.Errorf("totalLaps must be positive, got %d", totalLaps)
	}
	if currentLap < 0 || currentLap > totalLaps {
		return model.FuelState{},
			fmt.Errorf("currentLap %d outside race of %d laps", currentLap, totalLaps)
	}
	if currentFuel < 0 {
		return model.FuelState{}, fmt.Errorf("negative fuel level %f", currentFuel)
	}

	consumption := m.consumptionPerLap(samples)
	lapsOnFuel := int(currentFuel / consumption)
	lapsRemaining := totalLaps - currentLap
	ret := model.FuelState{
		CurrentFuel:       currentFuel,
		ConsumptionPerLap: consumption,
		LapsOnCurrentFuel: lapsOnFuel,
		NeedsPit:          lapsOnFuel < lapsRemaining,
	}
	if !ret.NeedsPit {
		return ret, nil
	}

	pitLap := currentLap + max(1, lapsOnFuel-pitLapBuffer)
	toAdd := min(
		m.tankCapacity-currentFuel,
		float64(totalLaps-pitLap)*consumption,
	)
	toAdd = roundLiters(toAdd)
	ret.RecommendedPitLap = &pitLap
	ret.FuelToAdd = &toAdd
	m.l.Debug("fuel pit required",
		log.Int("pitLap", pitLap),
		log.Float64("fuelToAdd", toAdd),
		log.Float64("consumption", consumption))
	return ret, nil
}

func (m *Model) consumptionPerLap(samples []float64) float64 {
	if len(samples) == 0 {
		return m.defaultConsumption
	}
	if len(samples) > m.sampleWindow {
		samples = samples[len(samples)-m.sampleWindow:]
	}
	consumption := stat.Mean(samples, nil)
	if consumption <= 0 {
		return m.defaultConsumption
	}
	return consumption
}

// fuel rigs report in hundredths of a liter
func roundLiters(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
