package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/THMSCMPG/AURA-MF/internal/panel"
)

func TestHeatmapEncodesPNG(t *testing.T) {
	temp := panel.UniformGrid(4, 4, 300)
	temp.Set(1, 1, 320)
	power := panel.UniformGrid(4, 4, 1.5)

	raw, err := Heatmap(temp, power)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}

	wantW := 2*4*cellPixels + panelGap
	wantH := 4 * cellPixels
	b := img.Bounds()
	if b.Dx() != wantW || b.Dy() != wantH {
		t.Errorf("expected %dx%d image, got %dx%d", wantW, wantH, b.Dx(), b.Dy())
	}
}

func TestHeatmapShapeMismatch(t *testing.T) {
	temp := panel.UniformGrid(4, 4, 300)
	power := panel.UniformGrid(5, 4, 1.0)

	if _, err := Heatmap(temp, power); err == nil {
		t.Fatal("expected an error for mismatched field shapes")
	}
}

func TestHeatmapBase64(t *testing.T) {
	temp := panel.UniformGrid(3, 3, 300)
	power := panel.UniformGrid(3, 3, 0)

	s, err := HeatmapBase64(temp, power)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s == "" {
		t.Fatal("expected non-empty base64 payload")
	}
}
