package panel

import "math"

// Grid geometry and time-stepping defaults. The demo grid is fixed at
// 25×25 and the public API does not expose dt or n_steps.
const (
	DefaultGridNX = 25
	DefaultGridNY = 25
	DefaultDt     = 0.1
	DefaultSteps  = 100

	// MaxSteps is the hard ceiling on n_steps; the stepping loop is
	// synchronous per request and must stay bounded.
	MaxSteps = 100000
)

// Nominal parameter values served by the defaults endpoint.
const (
	DefaultSolarIrradiance     = 1000.0
	DefaultAmbientTemperature  = 300.0
	DefaultWindSpeed           = 1.0
	DefaultCellEfficiency      = 0.20
	DefaultThermalConductivity = 130.0
	DefaultAbsorptivity        = 0.95
	DefaultEmissivity          = 0.90
)

// ParameterSet is the validated, immutable bundle of physical and grid
// configuration for one simulation run. Construct it with
// NewParameterSet; the solver never mutates it.
type ParameterSet struct {
	NX int
	NY int

	SolarIrradiance     float64 // W/m²
	AmbientTemperature  float64 // K
	WindSpeed           float64 // m/s
	CellEfficiency      float64 // fraction
	ThermalConductivity float64 // W/(m·K)
	Absorptivity        float64 // fraction
	Emissivity          float64 // fraction

	Dt     float64 // s
	NSteps int
}

// DefaultParameters returns the nominal ParameterSet.
func DefaultParameters() ParameterSet {
	return ParameterSet{
		NX:                  DefaultGridNX,
		NY:                  DefaultGridNY,
		SolarIrradiance:     DefaultSolarIrradiance,
		AmbientTemperature:  DefaultAmbientTemperature,
		WindSpeed:           DefaultWindSpeed,
		CellEfficiency:      DefaultCellEfficiency,
		ThermalConductivity: DefaultThermalConductivity,
		Absorptivity:        DefaultAbsorptivity,
		Emissivity:          DefaultEmissivity,
		Dt:                  DefaultDt,
		NSteps:              DefaultSteps,
	}
}

// NewParameterSet builds a ParameterSet from a flat mapping of optional
// overrides; absent keys keep their nominal value. Grid dimensions, dt
// and n_steps are not overridable through the mapping. Returns a
// ValidationError for the first value outside its documented interval.
func NewParameterSet(overrides map[string]float64) (ParameterSet, error) {
	p := DefaultParameters()

	apply := func(key string, dst *float64) {
		if v, ok := overrides[key]; ok {
			*dst = v
		}
	}
	apply("solar_irradiance", &p.SolarIrradiance)
	apply("ambient_temperature", &p.AmbientTemperature)
	apply("wind_speed", &p.WindSpeed)
	apply("cell_efficiency", &p.CellEfficiency)
	apply("thermal_conductivity", &p.ThermalConductivity)
	apply("absorptivity", &p.Absorptivity)
	apply("emissivity", &p.Emissivity)

	if err := p.Validate(); err != nil {
		return ParameterSet{}, err
	}
	return p, nil
}

// Validate checks every physical field against its documented closed
// interval and the time-stepping fields against their bounds.
func (p ParameterSet) Validate() error {
	checks := []struct {
		field    string
		value    float64
		min, max float64
	}{
		{"solar_irradiance", p.SolarIrradiance, 800, 1200},
		{"ambient_temperature", p.AmbientTemperature, 280, 330},
		{"wind_speed", p.WindSpeed, 0, 10},
		{"cell_efficiency", p.CellEfficiency, 0.10, 0.30},
		{"thermal_conductivity", p.ThermalConductivity, 100, 200},
		{"absorptivity", p.Absorptivity, 0.85, 0.98},
		{"emissivity", p.Emissivity, 0.80, 0.95},
	}
	for _, c := range checks {
		if c.value < c.min || c.value > c.max {
			return &ValidationError{Field: c.field, Value: c.value, Min: c.min, Max: c.max}
		}
	}

	if p.NX <= 0 {
		return &ValidationError{Field: "nx", Value: float64(p.NX), Max: math.Inf(1)}
	}
	if p.NY <= 0 {
		return &ValidationError{Field: "ny", Value: float64(p.NY), Max: math.Inf(1)}
	}
	if p.Dt <= 0 {
		return &ValidationError{Field: "dt", Value: p.Dt, Max: math.Inf(1)}
	}
	if p.NSteps < 0 || p.NSteps > MaxSteps {
		return &ValidationError{Field: "n_steps", Value: float64(p.NSteps), Min: 0, Max: MaxSteps}
	}
	return nil
}

// Map returns the parameter set as the flat mapping served by the
// defaults endpoint.
func (p ParameterSet) Map() map[string]any {
	return map[string]any{
		"nx":                   p.NX,
		"ny":                   p.NY,
		"solar_irradiance":     p.SolarIrradiance,
		"ambient_temperature":  p.AmbientTemperature,
		"wind_speed":           p.WindSpeed,
		"cell_efficiency":      p.CellEfficiency,
		"thermal_conductivity": p.ThermalConductivity,
		"absorptivity":         p.Absorptivity,
		"emissivity":           p.Emissivity,
		"dt":                   p.Dt,
		"n_steps":              p.NSteps,
	}
}
