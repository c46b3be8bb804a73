package panel

import (
	"encoding/json"
	"math"
	"testing"
)

func TestGridCloneIsIndependent(t *testing.T) {
	g := UniformGrid(3, 2, 1.5)
	c := g.Clone()
	c.Set(0, 0, 9)

	if g.At(0, 0) != 1.5 {
		t.Error("clone shares storage with the original")
	}
}

func TestGridAggregates(t *testing.T) {
	g := NewGrid(2, 2)
	copy(g.Data, []float64{1, 2, 3, 4})

	if g.Sum() != 10 || g.Mean() != 2.5 || g.Min() != 1 || g.Max() != 4 {
		t.Errorf("unexpected aggregates: sum=%g mean=%g min=%g max=%g",
			g.Sum(), g.Mean(), g.Min(), g.Max())
	}
}

func TestGridClamp(t *testing.T) {
	g := NewGrid(2, 2)
	copy(g.Data, []float64{-5, 0.5, 2, 100})
	g.Clamp(0, 10)

	want := []float64{0, 0.5, 2, 10}
	for i, v := range g.Data {
		if v != want[i] {
			t.Errorf("cell %d: expected %g, got %g", i, want[i], v)
		}
	}
}

func TestGridIsFinite(t *testing.T) {
	g := UniformGrid(2, 2, 1)
	if !g.IsFinite() {
		t.Error("finite grid reported non-finite")
	}
	g.Data[3] = math.Inf(1)
	if g.IsFinite() {
		t.Error("infinite value not detected")
	}
}

func TestGridMarshalsAsRows(t *testing.T) {
	g := NewGrid(2, 2)
	copy(g.Data, []float64{1, 2, 3, 4})

	raw, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != "[[1,2],[3,4]]" {
		t.Errorf("expected nested rows, got %s", raw)
	}
}
