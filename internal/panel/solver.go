package panel

import (
	"context"
	"time"
)

// Temperature safety interval. The explicit Euler update is only
// conditionally stable; the clamp keeps the field physical even when dt
// is large relative to the stiffest coefficient.
const (
	TempFloor = 200.0 // K
	TempCeil  = 450.0 // K
)

// epsPower guards the efficiency average against division by zero.
const epsPower = 1e-10

// snapshotInterval is the stepping period between history snapshots.
const snapshotInterval = 10

// Snapshot is a copy of both fields taken at one step of the run.
type Snapshot struct {
	Step        int  `json:"step"`
	Temperature Grid `json:"temperature_field"`
	Power       Grid `json:"power_field"`
}

// ResultSummary is the output contract of one run: the final fields
// plus scalar aggregates and wall-clock timing. It is created once at
// the end of a run and never mutated afterward.
type ResultSummary struct {
	TemperatureField Grid    `json:"temperature_field"`
	PowerField       Grid    `json:"power_field"`
	TemperatureMean  float64 `json:"temperature_mean"`
	TemperatureMax   float64 `json:"temperature_max"`
	TemperatureMin   float64 `json:"temperature_min"`
	PowerTotal       float64 `json:"power_total"`
	PowerMean        float64 `json:"power_mean"`
	EfficiencyAvg    float64 `json:"efficiency_avg"`
	RuntimeMS        float64 `json:"runtime_ms"`

	Snapshots []Snapshot `json:"-"`
}

// Solver owns the temperature and power grids for the lifetime of one
// run and drives the explicit forward-Euler stepping loop. A Solver is
// single-use and not safe for concurrent use; concurrent requests each
// get their own instance and share nothing.
type Solver struct {
	params ParameterSet

	temperature Grid
	power       Grid

	// per-step scratch fields, reused across steps
	qsolar Grid
	qconv  Grid
	qrad   Grid
	qcond  Grid

	snapshots []Snapshot
}

// NewSolver builds a solver over an already validated ParameterSet.
// The temperature field starts uniform at ambient; power starts zero.
func NewSolver(p ParameterSet) *Solver {
	return &Solver{
		params:      p,
		temperature: UniformGrid(p.NX, p.NY, p.AmbientTemperature),
		power:       NewGrid(p.NX, p.NY),
		qsolar:      NewGrid(p.NX, p.NY),
		qconv:       NewGrid(p.NX, p.NY),
		qrad:        NewGrid(p.NX, p.NY),
		qcond:       NewGrid(p.NX, p.NY),
	}
}

// Run advances the simulation through NSteps explicit Euler steps and
// returns the aggregate summary. The loop checks ctx between steps so
// callers can bound runaway requests.
func (s *Solver) Run(ctx context.Context) (*ResultSummary, error) {
	start := time.Now()
	p := s.params

	// mass of one cell, ρ·A·thickness
	mass := SiliconDensity * CellArea * PanelThickness
	heatCapacity := mass * SiliconSpecificHeat

	for step := 0; step < p.NSteps; step++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		SolarAbsorption(p, &s.qsolar)

		// Electrical output becomes this step's power field,
		// overwritten rather than accumulated.
		ElectricalGeneration(p, s.temperature, s.qsolar, &s.power)

		ConvectiveLoss(p, s.temperature, &s.qconv)
		RadiativeLoss(p, s.temperature, &s.qrad)
		Conduction(p, s.temperature, &s.qcond)

		// Net flux per cell. The energy removed as electricity uses the
		// nominal cell efficiency, not the derated η(T) that produced
		// the power field; the reference model keeps these distinct and
		// so do we.
		for i := range s.temperature.Data {
			qnet := (1.0-p.CellEfficiency)*s.qsolar.Data[i] -
				s.qconv.Data[i] - s.qrad.Data[i] + s.qcond.Data[i]
			s.temperature.Data[i] += qnet * p.Dt / heatCapacity
		}

		s.temperature.Clamp(TempFloor, TempCeil)

		if !s.temperature.IsFinite() || !s.power.IsFinite() {
			return nil, &ComputationError{Step: step, Message: "non-finite value in field"}
		}

		if step%snapshotInterval == 0 {
			s.snapshots = append(s.snapshots, Snapshot{
				Step:        step,
				Temperature: s.temperature.Clone(),
				Power:       s.power.Clone(),
			})
		}
	}

	return s.summarize(start), nil
}

func (s *Solver) summarize(start time.Time) *ResultSummary {
	SolarAbsorption(s.params, &s.qsolar)

	var effSum float64
	for i, pw := range s.power.Data {
		effSum += pw / (s.qsolar.Data[i] + epsPower)
	}

	return &ResultSummary{
		TemperatureField: s.temperature,
		PowerField:       s.power,
		TemperatureMean:  s.temperature.Mean(),
		TemperatureMax:   s.temperature.Max(),
		TemperatureMin:   s.temperature.Min(),
		PowerTotal:       s.power.Sum(),
		PowerMean:        s.power.Mean(),
		EfficiencyAvg:    effSum / float64(len(s.power.Data)),
		RuntimeMS:        float64(time.Since(start)) / float64(time.Millisecond),
		Snapshots:        s.snapshots,
	}
}
