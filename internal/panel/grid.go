package panel

import (
	"encoding/json"
	"math"
)

// Grid is a dense row-major ny×nx field of float64 samples. Row index i
// runs along y, column index j along x.
type Grid struct {
	NX   int
	NY   int
	Data []float64
}

// NewGrid allocates a zeroed nx×ny grid.
func NewGrid(nx, ny int) Grid {
	return Grid{NX: nx, NY: ny, Data: make([]float64, nx*ny)}
}

// UniformGrid allocates a grid with every cell set to v.
func UniformGrid(nx, ny int, v float64) Grid {
	g := NewGrid(nx, ny)
	for i := range g.Data {
		g.Data[i] = v
	}
	return g
}

func (g Grid) At(i, j int) float64 {
	return g.Data[i*g.NX+j]
}

func (g *Grid) Set(i, j int, v float64) {
	g.Data[i*g.NX+j] = v
}

// Clone returns a deep copy sharing no storage with g.
func (g Grid) Clone() Grid {
	c := Grid{NX: g.NX, NY: g.NY, Data: make([]float64, len(g.Data))}
	copy(c.Data, g.Data)
	return c
}

func (g Grid) Sum() float64 {
	var s float64
	for _, v := range g.Data {
		s += v
	}
	return s
}

func (g Grid) Mean() float64 {
	if len(g.Data) == 0 {
		return 0
	}
	return g.Sum() / float64(len(g.Data))
}

func (g Grid) Max() float64 {
	m := math.Inf(-1)
	for _, v := range g.Data {
		if v > m {
			m = v
		}
	}
	return m
}

func (g Grid) Min() float64 {
	m := math.Inf(1)
	for _, v := range g.Data {
		if v < m {
			m = v
		}
	}
	return m
}

// Clamp limits every cell to the closed interval [lo, hi].
func (g *Grid) Clamp(lo, hi float64) {
	for i, v := range g.Data {
		if v < lo {
			g.Data[i] = lo
		} else if v > hi {
			g.Data[i] = hi
		}
	}
}

// IsFinite reports whether every cell holds a finite value.
func (g Grid) IsFinite() bool {
	for _, v := range g.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Rows returns the grid as nested [ny][nx] rows, the shape the HTTP API
// serves fields in.
func (g Grid) Rows() [][]float64 {
	rows := make([][]float64, g.NY)
	for i := 0; i < g.NY; i++ {
		row := make([]float64, g.NX)
		copy(row, g.Data[i*g.NX:(i+1)*g.NX])
		rows[i] = row
	}
	return rows
}

// MarshalJSON encodes the grid as a nested row-major matrix.
func (g Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Rows())
}
