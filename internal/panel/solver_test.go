package panel

import (
	"context"
	"math"
	"testing"
)

func TestZeroStepsLeavesInitialState(t *testing.T) {
	p := DefaultParameters()
	p.NSteps = 0

	res, err := NewSolver(p).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, v := range res.TemperatureField.Data {
		if v != p.AmbientTemperature {
			t.Fatalf("cell %d: expected uniform ambient %g, got %g", i, p.AmbientTemperature, v)
		}
	}
	for i, v := range res.PowerField.Data {
		if v != 0 {
			t.Fatalf("cell %d: expected zero power before first step, got %g", i, v)
		}
	}
	if res.PowerTotal != 0 {
		t.Errorf("expected zero total power, got %g", res.PowerTotal)
	}
}

func TestDeterminism(t *testing.T) {
	p := DefaultParameters()

	r1, err := NewSolver(p).Run(context.Background())
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	r2, err := NewSolver(p).Run(context.Background())
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	for i := range r1.TemperatureField.Data {
		if r1.TemperatureField.Data[i] != r2.TemperatureField.Data[i] {
			t.Fatalf("temperature cell %d differs between identical runs", i)
		}
		if r1.PowerField.Data[i] != r2.PowerField.Data[i] {
			t.Fatalf("power cell %d differs between identical runs", i)
		}
	}
	if r1.TemperatureMean != r2.TemperatureMean || r1.PowerTotal != r2.PowerTotal ||
		r1.EfficiencyAvg != r2.EfficiencyAvg {
		t.Error("aggregate statistics differ between identical runs")
	}
}

func TestTemperatureBoundsInvariant(t *testing.T) {
	// Default parameters stay comfortably inside the interval.
	res, err := NewSolver(DefaultParameters()).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range res.TemperatureField.Data {
		if v < TempFloor || v > TempCeil {
			t.Fatalf("cell %d: temperature %g outside [%g, %g]", i, v, TempFloor, TempCeil)
		}
	}

	// An absurd time step makes explicit Euler blow up; the clamp must
	// still hold the field inside the safety interval.
	p := DefaultParameters()
	p.Dt = 1e4
	p.NSteps = 50
	res, err = NewSolver(p).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range res.TemperatureField.Data {
		if v < TempFloor || v > TempCeil {
			t.Fatalf("cell %d: clamp violated with large dt, got %g", i, v)
		}
	}
}

func TestPowerNonNegative(t *testing.T) {
	p := DefaultParameters()
	p.WindSpeed = 0
	p.SolarIrradiance = 1200

	res, err := NewSolver(p).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range res.PowerField.Data {
		if v < 0 {
			t.Fatalf("cell %d: negative power %g", i, v)
		}
	}
}

func TestEndToEndDefaultScenario(t *testing.T) {
	res, err := NewSolver(DefaultParameters()).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.TemperatureField.NX != 25 || res.TemperatureField.NY != 25 {
		t.Errorf("expected 25x25 field, got %dx%d", res.TemperatureField.NX, res.TemperatureField.NY)
	}
	if res.TemperatureMean < 295 || res.TemperatureMean > 330 {
		t.Errorf("mean temperature %g outside plausible band [295, 330]", res.TemperatureMean)
	}
	if res.PowerTotal <= 0 {
		t.Errorf("expected strictly positive total power, got %g", res.PowerTotal)
	}
	if res.EfficiencyAvg < MinEfficiency || res.EfficiencyAvg > MaxEfficiency {
		t.Errorf("efficiency %g outside [%g, %g]", res.EfficiencyAvg, MinEfficiency, MaxEfficiency)
	}
	if res.TemperatureMax < res.TemperatureMean || res.TemperatureMin > res.TemperatureMean {
		t.Error("aggregate ordering violated")
	}
	if res.RuntimeMS < 0 {
		t.Errorf("negative runtime %g", res.RuntimeMS)
	}
}

func TestSnapshotCadence(t *testing.T) {
	res, err := NewSolver(DefaultParameters()).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Snapshots) != 10 {
		t.Fatalf("expected 10 snapshots for 100 steps, got %d", len(res.Snapshots))
	}
	for i, snap := range res.Snapshots {
		if snap.Step != i*10 {
			t.Errorf("snapshot %d taken at step %d, expected %d", i, snap.Step, i*10)
		}
	}

	// Snapshots are copies, not views of the live grids.
	first := res.Snapshots[0].Temperature
	first.Set(0, 0, -1)
	if res.TemperatureField.At(0, 0) == -1 {
		t.Error("snapshot shares storage with the final field")
	}
}

func TestRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSolver(DefaultParameters()).Run(ctx)
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNonFiniteSurfacesComputationError(t *testing.T) {
	s := NewSolver(DefaultParameters())
	s.temperature.Data[0] = math.NaN()

	_, err := s.Run(context.Background())
	if err == nil {
		t.Fatal("expected an error for a non-finite field")
	}
	if _, ok := err.(*ComputationError); !ok {
		t.Fatalf("expected ComputationError, got %T", err)
	}
}
