package export

import (
	"strings"
	"testing"
)

func TestBarsToSVG(t *testing.T) {
	svg := BarsToSVG([]int{3, 1, 2}, []int{1}, 300, 100)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not a complete svg document: %q", svg)
	}
	if n := strings.Count(svg, "<rect x="); n != 3 {
		t.Errorf("expected 3 bars, got %d", n)
	}
	if n := strings.Count(svg, activeColor); n != 1 {
		t.Errorf("expected 1 highlighted bar, got %d", n)
	}
	if BarsToSVG(nil, nil, 300, 100) != "" {
		t.Error("empty input should produce no document")
	}
}

func TestSeriesToSVG(t *testing.T) {
	svg := SeriesToSVG([]float64{6, 5, 3, 0}, 200, 100, "#fff")
	if !strings.Contains(svg, `stroke="#fff"`) {
		t.Error("stroke color not applied")
	}
	if n := strings.Count(svg, " L"); n != 3 {
		t.Errorf("expected 3 line segments, got %d", n)
	}
	if SeriesToSVG([]float64{1}, 200, 100, "#fff") != "" {
		t.Error("a single point cannot form a line")
	}
	flat := SeriesToSVG([]float64{2, 2}, 200, 100, "#fff")
	if strings.Contains(flat, "NaN") {
		t.Error("flat series must not divide by zero")
	}
}
