// Package render draws simulation result fields as PNG heatmaps for the
// dashboard response.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/THMSCMPG/AURA-MF/internal/panel"
)

const (
	cellPixels = 12 // square pixels per grid cell
	panelGap   = 16 // horizontal gap between the two fields
)

// Colormap stops approximating the palettes the dashboard frontend
// expects: a black-red-yellow-white ramp for temperature and a
// viridis-like ramp for power.
var (
	hotStops = []colorful.Color{
		{R: 0.0, G: 0.0, B: 0.0},
		{R: 0.9, G: 0.0, B: 0.0},
		{R: 1.0, G: 0.9, B: 0.0},
		{R: 1.0, G: 1.0, B: 1.0},
	}
	viridisStops = []colorful.Color{
		{R: 0.267, G: 0.005, B: 0.329},
		{R: 0.231, G: 0.322, B: 0.545},
		{R: 0.129, G: 0.569, B: 0.549},
		{R: 0.369, G: 0.788, B: 0.384},
		{R: 0.993, G: 0.906, B: 0.144},
	}
)

// Heatmap renders the temperature and power fields side by side and
// returns the encoded PNG.
func Heatmap(temperature, power panel.Grid) ([]byte, error) {
	if temperature.NX != power.NX || temperature.NY != power.NY {
		return nil, fmt.Errorf("render: field shapes differ (%dx%d vs %dx%d)",
			temperature.NX, temperature.NY, power.NX, power.NY)
	}

	width := 2*temperature.NX*cellPixels + panelGap
	height := temperature.NY * cellPixels

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.White)
		}
	}

	drawField(img, 0, temperature, hotStops)
	drawField(img, temperature.NX*cellPixels+panelGap, power, viridisStops)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// HeatmapBase64 renders the fields and returns the PNG base64-encoded,
// the form embedded in the simulate response.
func HeatmapBase64(temperature, power panel.Grid) (string, error) {
	raw, err := Heatmap(temperature, power)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// drawField paints one grid at the given x offset. Rows are flipped so
// row 0 sits at the bottom, matching the frontend's axis orientation.
func drawField(img *image.RGBA, xoff int, g panel.Grid, stops []colorful.Color) {
	lo, hi := g.Min(), g.Max()
	span := hi - lo
	for i := 0; i < g.NY; i++ {
		for j := 0; j < g.NX; j++ {
			t := 0.5
			if span > 0 {
				t = (g.At(i, j) - lo) / span
			}
			r, gr, b := sampleColormap(stops, t).RGB255()
			c := color.RGBA{R: r, G: gr, B: b, A: 255}

			py := (g.NY - 1 - i) * cellPixels
			px := xoff + j*cellPixels
			for dy := 0; dy < cellPixels; dy++ {
				for dx := 0; dx < cellPixels; dx++ {
					img.SetRGBA(px+dx, py+dy, c)
				}
			}
		}
	}
}

// sampleColormap interpolates the stops at t in [0, 1].
func sampleColormap(stops []colorful.Color, t float64) colorful.Color {
	if t <= 0 {
		return stops[0]
	}
	if t >= 1 {
		return stops[len(stops)-1]
	}
	pos := t * float64(len(stops)-1)
	i := int(pos)
	return stops[i].BlendRgb(stops[i+1], pos-float64(i))
}
