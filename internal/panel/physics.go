package panel

import "math"

// Physical constants shared by the field models. Cell geometry is fixed
// for the demo panel; keeping the values named keeps the discrete
// equations auditable against their continuous forms.
const (
	StefanBoltzmann = 5.67e-8 // W/(m²·K⁴)

	ReferenceTemp   = 298.15 // K, efficiency reference (25°C)
	TempCoefficient = 0.004  // /K, silicon efficiency derating

	SiliconDensity      = 2330.0 // kg/m³
	SiliconSpecificHeat = 700.0  // J/(kg·K)

	CellArea       = 0.01  // m² per cell
	CellDX         = 0.1   // m
	CellDY         = 0.1   // m
	PanelThickness = 0.002 // m

	SkyTempOffset = 10.0 // K below ambient

	MinEfficiency = 0.05
	MaxEfficiency = 0.30

	// MinConvection is the natural-convection floor on the heat
	// transfer coefficient when wind is negligible.
	MinConvection = 5.0 // W/(m²·K)
)

// SolarAbsorption fills dst with the absorbed solar power per cell (W).
// Absorption is uniform except for an exponential attenuation near the
// panel edges (shading/reflection losses); it depends only on geometry
// and configuration, never on temperature or time.
func SolarAbsorption(p ParameterSet, dst *Grid) {
	q0 := p.SolarIrradiance * p.Absorptivity * CellArea
	for i := 0; i < dst.NY; i++ {
		y := normalized(i, dst.NY)
		for j := 0; j < dst.NX; j++ {
			x := normalized(j, dst.NX)
			edge := 1.0 - 0.1*(math.Exp(-10*x)+math.Exp(-10*(1-x))+
				math.Exp(-10*y)+math.Exp(-10*(1-y)))
			dst.Set(i, j, q0*edge)
		}
	}
}

// normalized maps grid index k in [0, n-1] onto [0, 1].
func normalized(k, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(k) / float64(n-1)
}

// CellEfficiencyAt derates the nominal cell efficiency linearly with
// temperature and clips the result to its physical bounds.
func CellEfficiencyAt(p ParameterSet, temp float64) float64 {
	eta := p.CellEfficiency * (1.0 - TempCoefficient*(temp-ReferenceTemp))
	return math.Min(MaxEfficiency, math.Max(MinEfficiency, eta))
}

// ElectricalGeneration fills dst with the electrical power output per
// cell (W): the locally derated efficiency applied to the absorbed
// solar power.
func ElectricalGeneration(p ParameterSet, temp, qsolar Grid, dst *Grid) {
	for i, t := range temp.Data {
		dst.Data[i] = CellEfficiencyAt(p, t) * qsolar.Data[i]
	}
}

// ConvectionCoefficient returns the wind-speed dependent heat transfer
// coefficient h = 10.45 − v + 10√v, floored at the natural-convection
// minimum.
func ConvectionCoefficient(windSpeed float64) float64 {
	h := 10.45 - windSpeed + 10.0*math.Sqrt(windSpeed)
	return math.Max(MinConvection, h)
}

// ConvectiveLoss fills dst with the convective heat loss per cell (W),
// h·A·(T − T_amb).
func ConvectiveLoss(p ParameterSet, temp Grid, dst *Grid) {
	h := ConvectionCoefficient(p.WindSpeed)
	for i, t := range temp.Data {
		dst.Data[i] = h * CellArea * (t - p.AmbientTemperature)
	}
}

// RadiativeLoss fills dst with the radiative heat loss per cell (W)
// against a sky assumed SkyTempOffset kelvin below ambient:
// ε·σ·A·(T⁴ − T_sky⁴).
func RadiativeLoss(p ParameterSet, temp Grid, dst *Grid) {
	tsky := p.AmbientTemperature - SkyTempOffset
	tsky4 := tsky * tsky * tsky * tsky
	for i, t := range temp.Data {
		t4 := t * t * t * t
		dst.Data[i] = p.Emissivity * StefanBoltzmann * CellArea * (t4 - tsky4)
	}
}

// Conduction fills dst with the conductive heat flux per cell (W) from
// a 5-point finite-difference Laplacian of the temperature field. The
// grid is extended by replicating its border (zero-gradient boundary),
// so edge cells see themselves as their outside neighbor.
func Conduction(p ParameterSet, temp Grid, dst *Grid) {
	alpha := p.ThermalConductivity / (SiliconDensity * SiliconSpecificHeat)
	scale := alpha * SiliconDensity * SiliconSpecificHeat * CellArea * CellDX

	nx, ny := temp.NX, temp.NY
	for i := 0; i < ny; i++ {
		up, down := clampIndex(i-1, ny), clampIndex(i+1, ny)
		for j := 0; j < nx; j++ {
			left, right := clampIndex(j-1, nx), clampIndex(j+1, nx)
			c := temp.At(i, j)
			d2x := (temp.At(i, right) - 2*c + temp.At(i, left)) / (CellDX * CellDX)
			d2y := (temp.At(down, j) - 2*c + temp.At(up, j)) / (CellDY * CellDY)
			dst.Set(i, j, scale*(d2x+d2y))
		}
	}
}

func clampIndex(k, n int) int {
	if k < 0 {
		return 0
	}
	if k >= n {
		return n - 1
	}
	return k
}
