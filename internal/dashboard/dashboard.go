package dashboard

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/THMSCMPG/AURA-MF/internal/common"
)

// Mocked telemetry shape. The fidelity levels and their noise/hotspot
// profiles are cosmetic demo values, unrelated to the panel solver.
const (
	gridSize       = 10
	baseTemp       = 45.0 // °C
	maxHistory     = 100
	minConfidence  = 0.80
	maxConfidence  = 0.99
	coldStartConf  = 0.85
	fidelityLevels = 3
)

var (
	hotspotIntensity = [fidelityLevels]float64{5.0, 3.0, 1.0}
	noiseLevel       = [fidelityLevels]float64{2.0, 1.0, 0.5}
	baseResidual     = [fidelityLevels]float64{1e-2, 1e-3, 1e-5}
)

// Telemetry is one mocked dashboard sample.
type Telemetry struct {
	TemperatureField [][]float64 `json:"temperature_field"`
	FidelityLevel    int         `json:"fidelity_level"`
	EnergyResiduals  float64     `json:"energy_residuals"`
	MLConfidence     float64     `json:"ml_confidence"`
	Timestamp        float64     `json:"timestamp"`
}

// State holds the mocked multi-fidelity telemetry feed. All access goes
// through the mutex; the fidelity history is bounded, so the state
// never grows with uptime. A background job advances it via Tick.
type State struct {
	mu sync.Mutex

	rng             *rand.Rand
	simTime         float64
	lastTick        time.Time
	fidelity        int
	fidelityHistory []int
}

// NewState creates a dashboard state seeded for its mocked randomness.
func NewState(seed int64) *State {
	return &State{
		rng:      rand.New(rand.NewSource(seed)),
		lastTick: time.Now(),
	}
}

// Tick advances simulated time by the wall-clock delta since the last
// tick and cycles the fidelity level on the demo schedule.
func (s *State) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.simTime += now.Sub(s.lastTick).Seconds()
	s.lastTick = now

	phase := math.Mod(s.simTime, 10)
	switch {
	case phase < 3:
		s.fidelity = 2
	case phase < 7:
		s.fidelity = 1
	default:
		s.fidelity = 0
	}

	s.fidelityHistory = append(s.fidelityHistory, s.fidelity)
	if len(s.fidelityHistory) > maxHistory {
		s.fidelityHistory = s.fidelityHistory[len(s.fidelityHistory)-maxHistory:]
	}
}

// SimTime reports the accumulated simulated time in seconds.
func (s *State) SimTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.simTime
}

// Sample produces one telemetry reading from the current state.
func (s *State) Sample() Telemetry {
	s.mu.Lock()
	defer s.mu.Unlock()

	field := s.temperatureField()
	return Telemetry{
		TemperatureField: field,
		FidelityLevel:    s.fidelity,
		EnergyResiduals:  s.energyResiduals(field),
		MLConfidence:     s.mlConfidence(),
		Timestamp:        common.Round(s.simTime, 2),
	}
}

// temperatureField generates a radial hotspot field with per-fidelity
// noise and a slow time variation. Caller holds the lock.
func (s *State) temperatureField() [][]float64 {
	hotspot := hotspotIntensity[s.fidelity]
	noise := noiseLevel[s.fidelity]
	center := float64(gridSize) / 2
	timeVar := 2.0 * math.Abs(0.5-math.Mod(s.simTime, 20)/20)

	field := make([][]float64, gridSize)
	for i := 0; i < gridSize; i++ {
		row := make([]float64, gridSize)
		for j := 0; j < gridSize; j++ {
			di, dj := float64(i)-center, float64(j)-center
			dist := math.Sqrt(di*di + dj*dj)
			radial := baseTemp + hotspot*(1-dist/center)
			jitter := (s.rng.Float64()*2 - 1) * noise
			row[j] = common.Round(radial+jitter+timeVar, 2)
		}
		field[i] = row
	}
	return field
}

// energyResiduals scales the per-fidelity base residual by the spread
// of the generated field.
func (s *State) energyResiduals(field [][]float64) float64 {
	var sum, n float64
	for _, row := range field {
		for _, t := range row {
			sum += t
			n++
		}
	}
	mean := sum / n

	var variance float64
	for _, row := range field {
		for _, t := range row {
			variance += (t - mean) * (t - mean)
		}
	}
	std := math.Sqrt(variance / n)

	return common.Round(baseResidual[s.fidelity]*(1+std/100), 8)
}

// mlConfidence derives a mock confidence from how often the fidelity
// level switched recently. Caller holds the lock.
func (s *State) mlConfidence() float64 {
	if len(s.fidelityHistory) < 5 {
		return coldStartConf
	}

	recent := s.fidelityHistory
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}

	switches := 0
	for i := 0; i < len(recent)-1; i++ {
		if recent[i] != recent[i+1] {
			switches++
		}
	}

	conf := 0.95 - float64(switches)*0.02 + (s.rng.Float64()*2-1)*0.02
	conf = math.Max(minConfidence, math.Min(maxConfidence, conf))
	return common.Round(conf, 3)
}
